package metrics

import (
	"encoding/json"
	"math"
)

// Ratio is a fractional change (growth) that may be undefined. A growth
// against a zero or missing base period has no meaningful value; rather than
// overloading a raw float NaN, Ratio carries validity explicitly so callers
// must handle the undefined case before formatting.
type Ratio struct {
	value float64
	valid bool
}

// NewRatio returns a defined ratio.
func NewRatio(v float64) Ratio {
	return Ratio{value: v, valid: true}
}

// UndefinedRatio returns the undefined sentinel.
func UndefinedRatio() Ratio {
	return Ratio{}
}

// Valid reports whether the ratio is defined.
func (r Ratio) Valid() bool {
	return r.valid
}

// Value returns the ratio value. It is only meaningful when Valid is true.
func (r Ratio) Value() float64 {
	return r.value
}

// Float64 returns the value, or NaN when the ratio is undefined, so the
// result can still flow through float arithmetic.
func (r Ratio) Float64() float64 {
	if !r.valid {
		return math.NaN()
	}
	return r.value
}

// MarshalJSON encodes an undefined ratio as null.
func (r Ratio) MarshalJSON() ([]byte, error) {
	if !r.valid {
		return []byte("null"), nil
	}
	return json.Marshal(r.value)
}

// UnmarshalJSON decodes null as the undefined sentinel.
func (r *Ratio) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*r = Ratio{}
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*r = NewRatio(v)
	return nil
}

// growth computes (current-previous)/previous, undefined when previous is
// exactly zero.
func growth(current, previous float64) Ratio {
	if previous == 0 {
		return UndefinedRatio()
	}
	return NewRatio((current - previous) / previous)
}
