package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

type deleteResult struct {
	Success *bool  `json:"success"`
	Message string `json:"message"`
}

func resourcePath(resource string) string {
	return resource + "/"
}

func rowPath(resource string, id int) string {
	return fmt.Sprintf("%s/%d/", resource, id)
}

// ListRaw returns the JSON array of a resource.
func (c *Client) ListRaw(ctx context.Context, resource string) (json.RawMessage, error) {
	var raw json.RawMessage
	if err := c.get(ctx, resourcePath(resource), &raw); err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", resource, err)
	}
	return raw, nil
}

// Patch updates only the given fields of a row. The returned error message is
// the backend's own when it sent one.
func (c *Client) Patch(ctx context.Context, resource string, id int, fields map[string]any) error {
	return c.do(ctx, http.MethodPatch, rowPath(resource, id), fields, nil)
}

// Delete removes a row. A body with success false is a failure too.
func (c *Client) Delete(ctx context.Context, resource string, id int) error {
	var result deleteResult
	if err := c.do(ctx, http.MethodDelete, rowPath(resource, id), nil, &result); err != nil {
		return err
	}
	if result.Success != nil && !*result.Success {
		msg := result.Message
		if msg == "" {
			msg = fmt.Sprintf("Error al eliminar de %s", resource)
		}
		return &Error{Status: http.StatusOK, Message: msg}
	}
	return nil
}
