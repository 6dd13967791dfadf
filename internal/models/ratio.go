package models

import (
	"encoding/json"
	"math"
	"strconv"
)

// NotAvailable is how an undefined Ratio is displayed.
const NotAvailable = "N/A"

// Ratio is a metric that may be undefined because its denominator was zero.
// Undefined ratios encode as JSON null.
type Ratio struct {
	Value float64
	Valid bool
}

// Div returns num/den, or an undefined Ratio when den is zero or the result is not finite.
func Div(num, den float64) Ratio {
	if den == 0 {
		return Ratio{}
	}
	v := num / den
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Ratio{}
	}
	return Ratio{Value: v, Valid: true}
}

// Percent is Div scaled by 100.
func Percent(num, den float64) Ratio {
	r := Div(num, den)
	if r.Valid {
		r.Value *= 100
	}
	return r
}

func (r Ratio) String() string {
	if !r.Valid {
		return NotAvailable
	}
	return strconv.FormatFloat(r.Value, 'f', -1, 64)
}

func (r Ratio) MarshalJSON() ([]byte, error) {
	if !r.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(r.Value)
}

func (r *Ratio) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*r = Ratio{}
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*r = Ratio{Value: v, Valid: true}
	return nil
}
