package lisp

// Equals is the equality behind equal?. Numbers compare by value across
// integer and float, pairs compare element by element, and procedures only
// equal themselves.
func Equals(v1, v2 SExpression) bool {
	for {
		p1, isPair1 := v1.(*Pair)
		p2, isPair2 := v2.(*Pair)
		if !isPair1 || !isPair2 {
			break
		}
		if p1 == p2 {
			return true
		}
		if !Equals(p1.car, p2.car) {
			return false
		}
		v1, v2 = p1.cdr, p2.cdr
	}

	if isNumber(v1) && isNumber(v2) {
		i1, isInt1 := v1.(Integer)
		i2, isInt2 := v2.(Integer)
		if isInt1 && isInt2 {
			return i1 == i2
		}
		f1, _ := toFloat(v1)
		f2, _ := toFloat(v2)
		return f1 == f2
	}

	l1, isList1 := v1.(List)
	l2, isList2 := v2.(List)
	if isList1 || isList2 {
		return isList1 && isList2 && sliceEquals(l1, l2)
	}

	return v1 == v2
}

func sliceEquals(slice1, slice2 []SExpression) bool {
	if len(slice1) != len(slice2) {
		return false
	}
	for i := range slice1 {
		if !Equals(slice1[i], slice2[i]) {
			return false
		}
	}
	return true
}
