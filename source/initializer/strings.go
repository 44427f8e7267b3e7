package initializer

import (
	"strings"

	"github.com/edipofederle/sri-sub002/source/object"
	"github.com/edipofederle/sri-sub002/source/registry"
)

func addStringMethods(r *registry.Registry) {
	str := func(c *registry.Call) string {
		return c.Receiver.(*object.String).Value
	}
	oneStringArg := func(c *registry.Call, name string) (string, *object.Error) {
		if len(c.Args) != 1 {
			return "", makeErr(c, "eval/args", name, len(c.Args), 1)
		}
		s, ok := c.Args[0].(*object.String)
		if !ok {
			return "", makeErr(c, "eval/arith/operand", object.TrueType(c.Args[0]), "String")
		}
		return s.Value, nil
	}

	r.RegisterNative("String", "+", []string{"other"}, func(c *registry.Call) object.Object {
		other, err := oneStringArg(c, "+")
		if err != nil {
			return err
		}
		return &object.String{Value: str(c) + other}
	})
	r.RegisterNative("String", "*", []string{"count"}, func(c *registry.Call) object.Object {
		if len(c.Args) != 1 {
			return makeErr(c, "eval/args", "*", len(c.Args), 1)
		}
		n, ok := c.Args[0].(*object.Integer)
		if !ok || n.Value < 0 {
			return makeErr(c, "eval/string/mult")
		}
		return &object.String{Value: strings.Repeat(str(c), int(n.Value))}
	})
	r.RegisterNative("String", "length", nil, func(c *registry.Call) object.Object {
		return &object.Integer{Value: int64(len([]rune(str(c))))}
	})
	r.RegisterNative("String", "size", nil, func(c *registry.Call) object.Object {
		return &object.Integer{Value: int64(len([]rune(str(c))))}
	})
	r.RegisterNative("String", "upcase", nil, func(c *registry.Call) object.Object {
		return &object.String{Value: strings.ToUpper(str(c))}
	})
	r.RegisterNative("String", "downcase", nil, func(c *registry.Call) object.Object {
		return &object.String{Value: strings.ToLower(str(c))}
	})
	r.RegisterNative("String", "capitalize", nil, func(c *registry.Call) object.Object {
		s := str(c)
		if s == "" {
			return c.Receiver
		}
		runes := []rune(strings.ToLower(s))
		runes[0] = []rune(strings.ToUpper(string(runes[0])))[0]
		return &object.String{Value: string(runes)}
	})
	r.RegisterNative("String", "reverse", nil, func(c *registry.Call) object.Object {
		runes := []rune(str(c))
		for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
			runes[i], runes[j] = runes[j], runes[i]
		}
		return &object.String{Value: string(runes)}
	})
	r.RegisterNative("String", "strip", nil, func(c *registry.Call) object.Object {
		return &object.String{Value: strings.TrimSpace(str(c))}
	})
	r.RegisterNative("String", "chars", nil, func(c *registry.Call) object.Object {
		var out []object.Object
		for _, r := range str(c) {
			out = append(out, &object.String{Value: string(r)})
		}
		return object.ArrayFromSlice(out)
	})
	r.RegisterNative("String", "split", nil, func(c *registry.Call) object.Object {
		s := str(c)
		var parts []string
		if len(c.Args) == 0 {
			parts = strings.Fields(s)
		} else {
			sep, err := oneStringArg(c, "split")
			if err != nil {
				return err
			}
			parts = strings.Split(s, sep)
		}
		out := make([]object.Object, 0, len(parts))
		for _, p := range parts {
			out = append(out, &object.String{Value: p})
		}
		return object.ArrayFromSlice(out)
	})
	r.RegisterNative("String", "include?", []string{"substr"}, func(c *registry.Call) object.Object {
		sub, err := oneStringArg(c, "include?")
		if err != nil {
			return err
		}
		return object.MakeBool(strings.Contains(str(c), sub))
	})
	r.RegisterNative("String", "start_with?", []string{"prefix"}, func(c *registry.Call) object.Object {
		pre, err := oneStringArg(c, "start_with?")
		if err != nil {
			return err
		}
		return object.MakeBool(strings.HasPrefix(str(c), pre))
	})
	r.RegisterNative("String", "end_with?", []string{"suffix"}, func(c *registry.Call) object.Object {
		suf, err := oneStringArg(c, "end_with?")
		if err != nil {
			return err
		}
		return object.MakeBool(strings.HasSuffix(str(c), suf))
	})
	r.RegisterNative("String", "empty?", nil, func(c *registry.Call) object.Object {
		return object.MakeBool(str(c) == "")
	})
	r.RegisterNative("String", "to_s", nil, func(c *registry.Call) object.Object {
		return c.Receiver
	})
	r.RegisterNative("String", "to_sym", nil, func(c *registry.Call) object.Object {
		return &object.Symbol{Value: str(c)}
	})
	r.RegisterNative("String", "to_i", nil, func(c *registry.Call) object.Object {
		s := strings.TrimSpace(str(c))
		var n int64
		var neg bool
		i := 0
		if i < len(s) && (s[i] == '-' || s[i] == '+') {
			neg = s[i] == '-'
			i++
		}
		for ; i < len(s) && s[i] >= '0' && s[i] <= '9'; i++ {
			n = n*10 + int64(s[i]-'0')
		}
		if neg {
			n = -n
		}
		return &object.Integer{Value: n}
	})
	r.RegisterNative("String", "[]", []string{"index"}, func(c *registry.Call) object.Object {
		runes := []rune(str(c))
		switch len(c.Args) {
		case 1:
			switch idx := c.Args[0].(type) {
			case *object.Integer:
				i := normalizeIndex(idx.Value, len(runes))
				if i < 0 || i >= len(runes) {
					return object.NIL
				}
				return &object.String{Value: string(runes[i])}
			case *object.Range:
				lo, hi, ok := rangeBounds(idx, len(runes))
				if !ok {
					return object.NIL
				}
				return &object.String{Value: string(runes[lo:hi])}
			}
			return makeErr(c, "eval/arith/operand", object.TrueType(c.Args[0]), "Integer")
		case 2:
			start, ok1 := c.Args[0].(*object.Integer)
			count, ok2 := c.Args[1].(*object.Integer)
			if !ok1 || !ok2 {
				return makeErr(c, "eval/arith/operand", object.TrueType(c.Args[0]), "Integer")
			}
			i := normalizeIndex(start.Value, len(runes))
			if i < 0 || i > len(runes) || count.Value < 0 {
				return object.NIL
			}
			end := i + int(count.Value)
			if end > len(runes) {
				end = len(runes)
			}
			return &object.String{Value: string(runes[i:end])}
		}
		return makeErr(c, "eval/args", "[]", len(c.Args), 1)
	})
	r.RegisterNative("String", "<=>", []string{"other"}, func(c *registry.Call) object.Object {
		other, ok := c.Args[0].(*object.String)
		if !ok {
			return object.NIL
		}
		return &object.Integer{Value: int64(strings.Compare(str(c), other.Value))}
	})

	r.RegisterNative("Symbol", "to_s", nil, func(c *registry.Call) object.Object {
		return &object.String{Value: c.Receiver.(*object.Symbol).Value}
	})
	r.RegisterNative("Symbol", "to_sym", nil, func(c *registry.Call) object.Object {
		return c.Receiver
	})
	r.RegisterNative("Symbol", "length", nil, func(c *registry.Call) object.Object {
		return &object.Integer{Value: int64(len([]rune(c.Receiver.(*object.Symbol).Value)))}
	})
}

// Negative indices count back from the end, Ruby style.
func normalizeIndex(i int64, length int) int {
	if i < 0 {
		return length + int(i)
	}
	return int(i)
}

// rangeBounds clips an integer range against a collection of the given
// length, returning half-open bounds.
func rangeBounds(r *object.Range, length int) (int, int, bool) {
	start, ok := r.Start.(*object.Integer)
	if !ok {
		return 0, 0, false
	}
	end, ok := r.End.(*object.Integer)
	if !ok {
		return 0, 0, false
	}
	lo := normalizeIndex(start.Value, length)
	hi := normalizeIndex(end.Value, length)
	if r.Inclusive {
		hi++
	}
	if lo < 0 || lo > length {
		return 0, 0, false
	}
	if hi > length {
		hi = length
	}
	if hi < lo {
		hi = lo
	}
	return lo, hi, true
}
