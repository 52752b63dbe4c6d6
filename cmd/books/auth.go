package main

import (
	"fmt"
	"os"

	"github.com/Veraticus/the-books-must-balance/internal/cli"
	"github.com/spf13/cobra"
)

func loginCmd() *cobra.Command {
	var username string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in to the backend",
		Long: `Exchange a username and password for an access and refresh token pair.

The tokens are stored in the local database and used by every other command.
Expired access tokens are refreshed automatically.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			settings := loadSettings()

			store, err := initStorage(ctx, settings)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			client, err := newClient(settings, store)
			if err != nil {
				return err
			}

			if _, err := store.Token(ctx); err == nil {
				cmd.Println(cli.FormatWarning("Ya hay una sesión iniciada, se reemplazará"))
			}

			prompter := cli.NewPrompter(os.Stdin, cmd.OutOrStdout())
			if username == "" {
				if username, err = prompter.Ask(ctx, "Usuario", ""); err != nil {
					return err
				}
			}
			password, err := prompter.Secret(ctx, "Contraseña")
			if err != nil {
				return err
			}

			if err := client.Login(ctx, username, password); err != nil {
				return err
			}
			cmd.Println(cli.FormatSuccess(fmt.Sprintf("Sesión iniciada como %s", username)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "user", "u", "", "username (prompted when empty)")
	return cmd
}

func logoutCmd() *cobra.Command {
	var keepCache bool

	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored tokens",
		Long:  `Remove the stored tokens and, unless --keep-cache is set, the cached table data.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx, loadSettings())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.ClearToken(ctx); err != nil {
				return err
			}
			if !keepCache {
				if err := store.ClearSnapshots(ctx); err != nil {
					return err
				}
			}
			cmd.Println(cli.FormatSuccess("Sesión cerrada"))
			return nil
		},
	}

	cmd.Flags().BoolVar(&keepCache, "keep-cache", false, "keep the cached table data")
	return cmd
}
