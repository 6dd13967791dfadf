package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDivZeroDenominatorIsUndefined(t *testing.T) {
	r := Div(100, 0)
	assert.False(t, r.Valid)
	assert.Equal(t, NotAvailable, r.String())

	r = Div(0, 0)
	assert.False(t, r.Valid)
}

func TestDivAndPercent(t *testing.T) {
	assert.Equal(t, Ratio{Value: 0.5, Valid: true}, Div(1, 2))
	assert.Equal(t, Ratio{Value: 50, Valid: true}, Percent(1, 2))
	assert.False(t, Percent(1, 0).Valid)
}

func TestRatioJSON(t *testing.T) {
	b, err := json.Marshal(struct {
		A Ratio `json:"a"`
		B Ratio `json:"b"`
	}{A: Div(3, 4)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":0.75,"b":null}`, string(b))

	var out struct {
		A Ratio `json:"a"`
		B Ratio `json:"b"`
	}
	require.NoError(t, json.Unmarshal(b, &out))
	assert.Equal(t, Div(3, 4), out.A)
	assert.False(t, out.B.Valid)
}
