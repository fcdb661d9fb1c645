package numinput

import (
	"database/sql"
	"math"
	"strconv"
)

// Value is a number or Empty. The zero Value is Empty.
type Value struct {
	n   float64
	set bool
}

// Empty means no value has been entered. It is distinct from zero.
var Empty = Value{}

// Number wraps f. NaN and infinities are not representable and become Empty.
func Number(f float64) Value {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Empty
	}
	return Value{n: f, set: true}
}

// ValueFromNull converts a nullable database column.
func ValueFromNull(n sql.NullFloat64) Value {
	if !n.Valid {
		return Empty
	}
	return Number(n.Float64)
}

func (v Value) IsEmpty() bool { return !v.set }

// Float returns the number and whether one is present.
func (v Value) Float() (float64, bool) { return v.n, v.set }

// NullFloat64 converts v for storage; Empty becomes NULL.
func (v Value) NullFloat64() sql.NullFloat64 {
	return sql.NullFloat64{Float64: v.n, Valid: v.set}
}

// String is the plain decimal form of v, "" for Empty.
func (v Value) String() string {
	if !v.set {
		return ""
	}
	return strconv.FormatFloat(v.n, 'f', -1, 64)
}

// Equal reports whether both values are Empty or hold the same number.
func (v Value) Equal(o Value) bool {
	return v.set == o.set && (!v.set || v.n == o.n)
}
