package expr

import (
	"strconv"

	"github.com/codeready-toolchain/governed-agent/internal/value"
)

// compare implements the operand coercion rules for each comparison
// operator: strict operators compare by value and type with no coercion;
// loose operators coerce numbers/strings/booleans before comparing, and
// ordering operators require both operands to be numeric after coercion.
func compare(op cmpOp, l, r value.Value) bool {
	switch op {
	case cmpEqStrict:
		return strictEqual(l, r)
	case cmpNeStrict:
		return !strictEqual(l, r)
	case cmpEq:
		return looseEqual(l, r)
	case cmpNe:
		return !looseEqual(l, r)
	case cmpGT, cmpGE, cmpLT, cmpLE:
		ln, lok := toNumber(l)
		rn, rok := toNumber(r)
		if !lok || !rok {
			return false
		}
		switch op {
		case cmpGT:
			return ln > rn
		case cmpGE:
			return ln >= rn
		case cmpLT:
			return ln < rn
		case cmpLE:
			return ln <= rn
		}
	}
	return false
}

func strictEqual(l, r value.Value) bool {
	if l.Kind() != r.Kind() {
		return false
	}
	switch l.Kind() {
	case value.KindUndefined, value.KindNull:
		return true
	case value.KindBool:
		lb, _ := l.AsBool()
		rb, _ := r.AsBool()
		return lb == rb
	case value.KindNumber:
		ln, _ := l.AsNumber()
		rn, _ := r.AsNumber()
		return ln == rn
	case value.KindString:
		ls, _ := l.AsString()
		rs, _ := r.AsString()
		return ls == rs
	default:
		// Arrays and maps have no defined equality in the predicate
		// language; treat as never equal, mirroring reference-type
		// semantics in the source language.
		return false
	}
}

// looseEqual implements the "==" coercion table: null equals only null or
// undefined; booleans compare as numeric 0/1; numeric-to-string comparisons
// convert the string to a number (NaN yields false); otherwise falls back
// to strict comparison.
func looseEqual(l, r value.Value) bool {
	if (l.IsNull() || l.IsUndefined()) && (r.IsNull() || r.IsUndefined()) {
		return true
	}
	if l.IsNull() || l.IsUndefined() || r.IsNull() || r.IsUndefined() {
		return false
	}
	if l.Kind() == r.Kind() {
		return strictEqual(l, r)
	}
	ln, lok := toNumber(l)
	rn, rok := toNumber(r)
	if lok && rok {
		return ln == rn
	}
	return false
}

// toNumber coerces a Value to float64 for loose comparison, following the
// documented table: numbers pass through; booleans become 0/1; strings are
// parsed as numbers (failure yields not-ok, modelling NaN as "not numeric").
func toNumber(v value.Value) (float64, bool) {
	switch v.Kind() {
	case value.KindNumber:
		n, _ := v.AsNumber()
		return n, true
	case value.KindBool:
		b, _ := v.AsBool()
		if b {
			return 1, true
		}
		return 0, true
	case value.KindString:
		s, _ := v.AsString()
		n, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}
