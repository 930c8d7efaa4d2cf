package interp

import "math"

// valuesEqual implements the "===" operator: numbers compare with a
// math.isclose-style tolerance (rel 1e-9, abs 0) rather than exactly,
// everything else compares structurally.
func valuesEqual(a, b Value) bool {
	switch av := a.(type) {
	case nil:
		return b == nil
	case Undefined:
		_, ok := b.(Undefined)
		return ok
	case float64:
		bv, ok := b.(float64)
		return ok && isClose(av, bv)
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	case []Value:
		bv, ok := b.([]Value)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !valuesEqual(av[i], bv[i]) {
				return false
			}
		}
		return true
	case *Map:
		bv, ok := b.(*Map)
		if !ok || av.Len() != bv.Len() {
			return false
		}
		for _, k := range av.Keys() {
			bval, ok := bv.Get(k)
			if !ok {
				return false
			}
			aval, _ := av.Get(k)
			if !valuesEqual(aval, bval) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func isClose(a, b float64) bool {
	const relTol = 1e-9
	const absTol = 0.0
	if a == b {
		return true
	}
	diff := math.Abs(a - b)
	return diff <= math.Max(relTol*math.Max(math.Abs(a), math.Abs(b)), absTol)
}
