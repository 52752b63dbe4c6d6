package model

import (
	"bytes"

	"github.com/shopspring/decimal"
)

// Amount is a money field that may be absent. Besides JSON null, the
// backend writes a missing amount as "NULL" or "".
type Amount struct {
	decimal.NullDecimal
}

// NewAmount returns a present amount.
func NewAmount(d decimal.Decimal) Amount {
	return Amount{decimal.NewNullDecimal(d)}
}

// UnmarshalJSON implements json.Unmarshaler.
func (a *Amount) UnmarshalJSON(data []byte) error {
	switch s := bytes.TrimSpace(data); {
	case bytes.Equal(s, []byte("null")), bytes.EqualFold(s, []byte(`"null"`)), bytes.Equal(s, []byte(`""`)):
		a.NullDecimal = decimal.NullDecimal{}
		return nil
	}
	return a.NullDecimal.UnmarshalJSON(data)
}
