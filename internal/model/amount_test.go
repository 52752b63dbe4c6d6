package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAmountUnmarshalJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		valid bool
	}{
		{name: "json null", input: `null`},
		{name: "NULL literal", input: `"NULL"`},
		{name: "lower case null literal", input: `"null"`},
		{name: "empty string", input: `""`},
		{name: "quoted number", input: `"12.50"`, want: "12.5", valid: true},
		{name: "bare number", input: `7`, want: "7", valid: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var a Amount
			require.NoError(t, json.Unmarshal([]byte(tt.input), &a))
			assert.Equal(t, tt.valid, a.Valid)
			if tt.valid {
				assert.Equal(t, tt.want, a.Decimal.String())
			}
		})
	}
}

func TestAmountRejectsGarbage(t *testing.T) {
	var a Amount
	assert.Error(t, json.Unmarshal([]byte(`"doce"`), &a))
}

func TestAmountInRowHelpers(t *testing.T) {
	var c Cuenta
	require.NoError(t, json.Unmarshal([]byte(`{"id":1,"monto":"NULL","saldo":"40"}`), &c))

	assert.False(t, c.Monto.Valid)
	assert.True(t, IsNullish(c.Monto))
	assert.True(t, IsZeroEquivalent(c.Monto))
	assert.Equal(t, "40", Stringify(c.Field("monto")))

	d, ok := ToDecimal(c.Field("monto"))
	require.True(t, ok)
	assert.Equal(t, "40", d.String())

	out, err := json.Marshal(c.Monto)
	require.NoError(t, err)
	assert.Equal(t, "null", string(out))
}
