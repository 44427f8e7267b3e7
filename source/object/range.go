package object

// RangeElements enumerates a range. Integer ranges step by one; string
// ranges step through single-character endpoints by code point. Bounds of
// any other kind can't be enumerated.
func RangeElements(r *Range) ([]Object, bool) {
	switch start := r.Start.(type) {
	case *Integer:
		end, ok := r.End.(*Integer)
		if !ok {
			return nil, false
		}
		last := end.Value
		if !r.Inclusive {
			last--
		}
		var out []Object
		for i := start.Value; i <= last; i++ {
			out = append(out, &Integer{Value: i})
		}
		return out, true
	case *String:
		end, ok := r.End.(*String)
		if !ok {
			return nil, false
		}
		sr, er := []rune(start.Value), []rune(end.Value)
		if len(sr) != 1 || len(er) != 1 {
			return nil, false
		}
		last := er[0]
		if !r.Inclusive {
			last--
		}
		var out []Object
		for ch := sr[0]; ch <= last; ch++ {
			out = append(out, &String{Value: string(ch)})
		}
		return out, true
	}
	return nil, false
}

// RangeCovers reports whether a value falls between the range's endpoints,
// without enumerating it.
func RangeCovers(r *Range, v Object) bool {
	switch start := r.Start.(type) {
	case *Integer:
		end, ok := r.End.(*Integer)
		if !ok {
			return false
		}
		var x int64
		switch n := v.(type) {
		case *Integer:
			x = n.Value
		case *Float:
			if r.Inclusive {
				return float64(start.Value) <= n.Value && n.Value <= float64(end.Value)
			}
			return float64(start.Value) <= n.Value && n.Value < float64(end.Value)
		default:
			return false
		}
		if r.Inclusive {
			return start.Value <= x && x <= end.Value
		}
		return start.Value <= x && x < end.Value
	case *String:
		end, ok := r.End.(*String)
		if !ok {
			return false
		}
		s, ok := v.(*String)
		if !ok {
			return false
		}
		if r.Inclusive {
			return start.Value <= s.Value && s.Value <= end.Value
		}
		return start.Value <= s.Value && s.Value < end.Value
	}
	return false
}
