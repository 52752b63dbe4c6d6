package registry

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Veraticus/the-books-must-balance/internal/common"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

type fieldKind int

const (
	kindText fieldKind = iota
	kindAmount
	kindPercent
	kindCount
	kindDate
)

type editRule struct {
	tag  string
	kind fieldKind
}

// editable is the allow-list of inline-editable column keys with the
// validation tags applied to the draft before anything is sent.
var editable = map[string]editRule{
	"fecha":                 {kind: kindDate, tag: "required,datetime=2006-01-02"},
	"concepto":              {kind: kindText, tag: "max=255"},
	"numero_comprobante":    {kind: kindCount, tag: "omitempty,number"},
	"descuento_total":       {kind: kindPercent, tag: "omitempty,numeric"},
	"total":                 {kind: kindAmount, tag: "required,numeric"},
	"nombre":                {kind: kindText, tag: "required,max=255"},
	"contacto_mail":         {kind: kindText, tag: "omitempty,email,max=255"},
	"contacto_telefono":     {kind: kindText, tag: "omitempty,max=20"},
	"monto":                 {kind: kindAmount, tag: "required,numeric"},
	"tipo_producto":         {kind: kindText, tag: "required,max=255"},
	"precio_venta_unitario": {kind: kindAmount, tag: "required,numeric"},
	"costo_unitario":        {kind: kindAmount, tag: "required,numeric"},
	"cantidad":              {kind: kindCount, tag: "required,number"},
}

var validate = validator.New()

// IsEditable reports whether a column key is on the inline edit allow-list.
func IsEditable(key string) bool {
	_, ok := editable[key]
	return ok
}

// ValidateDraft checks an edit draft for field. The returned error wraps
// common.ErrValidation and reads "field: rule".
func ValidateDraft(field, draft string) error {
	rule, ok := editable[field]
	if !ok {
		return fmt.Errorf("%w: %s: not editable", common.ErrValidation, field)
	}
	draft = strings.TrimSpace(draft)

	if err := validate.Var(draft, rule.tag); err != nil {
		return fieldError(field, err)
	}

	switch rule.kind {
	case kindPercent:
		if draft == "" {
			return nil
		}
		pct, _ := strconv.ParseFloat(draft, 64)
		if err := validate.Var(pct, "gte=0,lte=100"); err != nil {
			return fieldError(field, err)
		}
	case kindAmount:
		amount, _ := strconv.ParseFloat(draft, 64)
		if err := validate.Var(amount, "gte=0"); err != nil {
			return fieldError(field, err)
		}
	case kindCount:
		if draft == "" {
			return nil
		}
		n, _ := strconv.Atoi(draft)
		if err := validate.Var(n, "gte=0"); err != nil {
			return fieldError(field, err)
		}
	}
	return nil
}

func fieldError(field string, err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return fmt.Errorf("%w: %s: %s", common.ErrValidation, field, verrs[0].Tag())
	}
	return fmt.Errorf("%w: %s: %v", common.ErrValidation, field, err)
}

// Coerce converts a validated draft into the JSON value sent for field:
// decimals for amounts, integers for counts and strings otherwise. Empty
// optional numbers become null.
func Coerce(field, draft string) (any, error) {
	rule, ok := editable[field]
	if !ok {
		return nil, fmt.Errorf("%w: %s: not editable", common.ErrValidation, field)
	}
	draft = strings.TrimSpace(draft)

	switch rule.kind {
	case kindAmount, kindPercent:
		if draft == "" {
			return nil, nil
		}
		d, err := decimal.NewFromString(draft)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: numeric", common.ErrValidation, field)
		}
		return d, nil
	case kindCount:
		if draft == "" {
			return nil, nil
		}
		n, err := strconv.Atoi(draft)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: number", common.ErrValidation, field)
		}
		return n, nil
	}
	return draft, nil
}
