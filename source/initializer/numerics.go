package initializer

import (
	"math"
	"math/big"
	"math/cmplx"

	"github.com/edipofederle/sri-sub002/source/object"
	"github.com/edipofederle/sri-sub002/source/registry"
)

// The tower, from narrowest to widest. Mixed-kind arithmetic promotes both
// operands to the wider kind before computing.
const (
	kindInteger = iota
	kindRational
	kindFloat
	kindComplex
)

func numericKind(o object.Object) (int, bool) {
	switch o.(type) {
	case *object.Integer:
		return kindInteger, true
	case *object.Rational:
		return kindRational, true
	case *object.Float:
		return kindFloat, true
	case *object.Complex:
		return kindComplex, true
	}
	return 0, false
}

func asRat(o object.Object) *big.Rat {
	switch n := o.(type) {
	case *object.Integer:
		return new(big.Rat).SetInt64(n.Value)
	case *object.Rational:
		return n.Value
	}
	return nil
}

func asFloat(o object.Object) float64 {
	switch n := o.(type) {
	case *object.Integer:
		return float64(n.Value)
	case *object.Rational:
		f, _ := n.Value.Float64()
		return f
	case *object.Float:
		return n.Value
	}
	return 0
}

func asComplex(o object.Object) complex128 {
	if n, ok := o.(*object.Complex); ok {
		return n.Value
	}
	return complex(asFloat(o), 0)
}

func normalizeRat(r *big.Rat) object.Object {
	if r.IsInt() && r.Num().IsInt64() {
		return &object.Integer{Value: r.Num().Int64()}
	}
	return &object.Rational{Value: r}
}

// Ruby's floor division: the quotient is rounded toward negative infinity
// and the remainder takes the sign of the divisor.
func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floorMod(a, b int64) int64 {
	m := a % b
	if m != 0 && ((m < 0) != (b < 0)) {
		m += b
	}
	return m
}

func addNumericMethods(r *registry.Registry) {
	arith := func(op string) registry.NativeFn {
		return func(c *registry.Call) object.Object {
			if len(c.Args) != 1 {
				return makeErr(c, "eval/args", op, len(c.Args), 1)
			}
			return numericArith(c, op, c.Receiver, c.Args[0])
		}
	}
	compare := func(op string) registry.NativeFn {
		return func(c *registry.Call) object.Object {
			if len(c.Args) != 1 {
				return makeErr(c, "eval/args", op, len(c.Args), 1)
			}
			return numericCompare(c, op, c.Receiver, c.Args[0])
		}
	}
	for _, op := range []string{"+", "-", "*", "/", "%", "**"} {
		r.RegisterNative("Numeric", op, []string{"other"}, arith(op))
	}
	for _, op := range []string{"<", ">", "<=", ">=", "<=>"} {
		r.RegisterNative("Numeric", op, []string{"other"}, compare(op))
	}

	r.RegisterNative("Numeric", "abs", nil, func(c *registry.Call) object.Object {
		switch n := c.Receiver.(type) {
		case *object.Integer:
			if n.Value < 0 {
				return &object.Integer{Value: -n.Value}
			}
			return n
		case *object.Rational:
			return normalizeRat(new(big.Rat).Abs(n.Value))
		case *object.Float:
			return &object.Float{Value: math.Abs(n.Value)}
		case *object.Complex:
			return &object.Float{Value: cmplx.Abs(n.Value)}
		}
		return noMethod(c, "abs")
	})
	r.RegisterNative("Numeric", "zero?", nil, func(c *registry.Call) object.Object {
		return object.MakeBool(object.Equals(c.Receiver, &object.Integer{Value: 0}))
	})
	r.RegisterNative("Numeric", "positive?", nil, func(c *registry.Call) object.Object {
		return realSign(c, func(s int) bool { return s > 0 })
	})
	r.RegisterNative("Numeric", "negative?", nil, func(c *registry.Call) object.Object {
		return realSign(c, func(s int) bool { return s < 0 })
	})

	r.RegisterNative("Numeric", "to_i", nil, func(c *registry.Call) object.Object {
		switch n := c.Receiver.(type) {
		case *object.Integer:
			return n
		case *object.Rational:
			q := new(big.Int).Quo(n.Value.Num(), n.Value.Denom())
			return &object.Integer{Value: q.Int64()}
		case *object.Float:
			return &object.Integer{Value: int64(n.Value)}
		}
		return noMethod(c, "to_i")
	})
	r.RegisterNative("Numeric", "to_f", nil, func(c *registry.Call) object.Object {
		if _, ok := c.Receiver.(*object.Complex); ok {
			return noMethod(c, "to_f")
		}
		return &object.Float{Value: asFloat(c.Receiver)}
	})
	r.RegisterNative("Numeric", "to_r", nil, func(c *registry.Call) object.Object {
		switch n := c.Receiver.(type) {
		case *object.Integer:
			return &object.Rational{Value: new(big.Rat).SetInt64(n.Value)}
		case *object.Rational:
			return n
		case *object.Float:
			rat := new(big.Rat).SetFloat64(n.Value)
			if rat == nil {
				return makeErr(c, "eval/arith/operand", "Float", "Rational")
			}
			return &object.Rational{Value: rat}
		}
		return noMethod(c, "to_r")
	})

	r.RegisterNative("Integer", "even?", nil, func(c *registry.Call) object.Object {
		return object.MakeBool(c.Receiver.(*object.Integer).Value%2 == 0)
	})
	r.RegisterNative("Integer", "odd?", nil, func(c *registry.Call) object.Object {
		return object.MakeBool(c.Receiver.(*object.Integer).Value%2 != 0)
	})
	r.RegisterNative("Integer", "succ", nil, func(c *registry.Call) object.Object {
		return &object.Integer{Value: c.Receiver.(*object.Integer).Value + 1}
	})
	r.RegisterNative("Integer", "pred", nil, func(c *registry.Call) object.Object {
		return &object.Integer{Value: c.Receiver.(*object.Integer).Value - 1}
	})
	r.RegisterNative("Integer", "times", nil, func(c *registry.Call) object.Object {
		n := c.Receiver.(*object.Integer).Value
		if c.Block == nil {
			return makeErr(c, "eval/flow/yield")
		}
		for i := int64(0); i < n; i++ {
			result := c.Yield(c.Block, []object.Object{&object.Integer{Value: i}})
			if bs, ok := result.(*object.BreakSignal); ok {
				return bs.Value
			}
			if yieldUnwound(result) {
				return result
			}
		}
		return c.Receiver
	})
	r.RegisterNative("Integer", "upto", []string{"limit"}, func(c *registry.Call) object.Object {
		if len(c.Args) != 1 {
			return makeErr(c, "eval/args", "upto", len(c.Args), 1)
		}
		limit, ok := c.Args[0].(*object.Integer)
		if !ok {
			return makeErr(c, "eval/arith/operand", object.TrueType(c.Args[0]), "Integer")
		}
		if c.Block == nil {
			return makeErr(c, "eval/flow/yield")
		}
		for i := c.Receiver.(*object.Integer).Value; i <= limit.Value; i++ {
			result := c.Yield(c.Block, []object.Object{&object.Integer{Value: i}})
			if bs, ok := result.(*object.BreakSignal); ok {
				return bs.Value
			}
			if yieldUnwound(result) {
				return result
			}
		}
		return c.Receiver
	})
	r.RegisterNative("Integer", "downto", []string{"limit"}, func(c *registry.Call) object.Object {
		if len(c.Args) != 1 {
			return makeErr(c, "eval/args", "downto", len(c.Args), 1)
		}
		limit, ok := c.Args[0].(*object.Integer)
		if !ok {
			return makeErr(c, "eval/arith/operand", object.TrueType(c.Args[0]), "Integer")
		}
		if c.Block == nil {
			return makeErr(c, "eval/flow/yield")
		}
		for i := c.Receiver.(*object.Integer).Value; i >= limit.Value; i-- {
			result := c.Yield(c.Block, []object.Object{&object.Integer{Value: i}})
			if bs, ok := result.(*object.BreakSignal); ok {
				return bs.Value
			}
			if yieldUnwound(result) {
				return result
			}
		}
		return c.Receiver
	})
	r.RegisterNative("Integer", "gcd", []string{"other"}, func(c *registry.Call) object.Object {
		if len(c.Args) != 1 {
			return makeErr(c, "eval/args", "gcd", len(c.Args), 1)
		}
		other, ok := c.Args[0].(*object.Integer)
		if !ok {
			return makeErr(c, "eval/arith/operand", object.TrueType(c.Args[0]), "Integer")
		}
		a := new(big.Int).SetInt64(c.Receiver.(*object.Integer).Value)
		b := new(big.Int).SetInt64(other.Value)
		return &object.Integer{Value: new(big.Int).GCD(nil, nil, a.Abs(a), b.Abs(b)).Int64()}
	})
	r.RegisterNative("Integer", "chr", nil, func(c *registry.Call) object.Object {
		return &object.String{Value: string(rune(c.Receiver.(*object.Integer).Value))}
	})

	r.RegisterNative("Float", "floor", nil, func(c *registry.Call) object.Object {
		return &object.Integer{Value: int64(math.Floor(c.Receiver.(*object.Float).Value))}
	})
	r.RegisterNative("Float", "ceil", nil, func(c *registry.Call) object.Object {
		return &object.Integer{Value: int64(math.Ceil(c.Receiver.(*object.Float).Value))}
	})
	r.RegisterNative("Float", "round", nil, func(c *registry.Call) object.Object {
		return &object.Integer{Value: int64(math.Round(c.Receiver.(*object.Float).Value))}
	})
	r.RegisterNative("Float", "nan?", nil, func(c *registry.Call) object.Object {
		return object.MakeBool(math.IsNaN(c.Receiver.(*object.Float).Value))
	})
	r.RegisterNative("Float", "infinite?", nil, func(c *registry.Call) object.Object {
		v := c.Receiver.(*object.Float).Value
		switch {
		case math.IsInf(v, 1):
			return &object.Integer{Value: 1}
		case math.IsInf(v, -1):
			return &object.Integer{Value: -1}
		}
		return object.NIL
	})

	r.RegisterNative("Rational", "numerator", nil, func(c *registry.Call) object.Object {
		return &object.Integer{Value: c.Receiver.(*object.Rational).Value.Num().Int64()}
	})
	r.RegisterNative("Rational", "denominator", nil, func(c *registry.Call) object.Object {
		return &object.Integer{Value: c.Receiver.(*object.Rational).Value.Denom().Int64()}
	})

	r.RegisterNative("Complex", "real", nil, func(c *registry.Call) object.Object {
		return &object.Float{Value: real(c.Receiver.(*object.Complex).Value)}
	})
	r.RegisterNative("Complex", "imaginary", nil, func(c *registry.Call) object.Object {
		return &object.Float{Value: imag(c.Receiver.(*object.Complex).Value)}
	})
}

func realSign(c *registry.Call, pred func(int) bool) object.Object {
	switch n := c.Receiver.(type) {
	case *object.Integer:
		switch {
		case n.Value > 0:
			return object.MakeBool(pred(1))
		case n.Value < 0:
			return object.MakeBool(pred(-1))
		}
		return object.MakeBool(pred(0))
	case *object.Rational:
		return object.MakeBool(pred(n.Value.Sign()))
	case *object.Float:
		switch {
		case n.Value > 0:
			return object.MakeBool(pred(1))
		case n.Value < 0:
			return object.MakeBool(pred(-1))
		}
		return object.MakeBool(pred(0))
	}
	return noMethod(c, "positive?")
}

func numericArith(c *registry.Call, op string, left, right object.Object) object.Object {
	lk, ok := numericKind(left)
	if !ok {
		return makeErr(c, "eval/arith/operand", object.TrueType(left), "Numeric")
	}
	rk, ok := numericKind(right)
	if !ok {
		return makeErr(c, "eval/arith/operand", object.TrueType(right), object.TrueType(left))
	}
	kind := lk
	if rk > kind {
		kind = rk
	}
	// Integer ** with a negative exponent yields a Rational; Rational **
	// with a fractional exponent drops to Float.
	if op == "**" {
		if kind == kindInteger {
			if e, ok := right.(*object.Integer); ok && e.Value < 0 {
				kind = kindRational
			}
		}
		if kind == kindRational {
			if _, ok := right.(*object.Rational); ok {
				kind = kindFloat
			}
		}
	}
	switch kind {
	case kindInteger:
		return integerArith(c, op, left.(*object.Integer).Value, right.(*object.Integer).Value)
	case kindRational:
		return rationalArith(c, op, left, right)
	case kindFloat:
		return floatArith(c, op, asFloat(left), asFloat(right))
	default:
		return complexArith(c, op, asComplex(left), asComplex(right))
	}
}

func integerArith(c *registry.Call, op string, a, b int64) object.Object {
	switch op {
	case "+":
		return &object.Integer{Value: a + b}
	case "-":
		return &object.Integer{Value: a - b}
	case "*":
		return &object.Integer{Value: a * b}
	case "/":
		if b == 0 {
			return makeErr(c, "eval/arith/div/int")
		}
		return &object.Integer{Value: floorDiv(a, b)}
	case "%":
		if b == 0 {
			return makeErr(c, "eval/arith/div/int")
		}
		return &object.Integer{Value: floorMod(a, b)}
	case "**":
		result := new(big.Int).Exp(big.NewInt(a), big.NewInt(b), nil)
		if !result.IsInt64() {
			// Past the width of an integer the result spills into a float,
			// keeping magnitude at the cost of precision.
			f, _ := new(big.Float).SetInt(result).Float64()
			return &object.Float{Value: f}
		}
		return &object.Integer{Value: result.Int64()}
	}
	return noMethod(c, op)
}

func rationalArith(c *registry.Call, op string, left, right object.Object) object.Object {
	a, b := asRat(left), asRat(right)
	switch op {
	case "+":
		return normalizeRat(new(big.Rat).Add(a, b))
	case "-":
		return normalizeRat(new(big.Rat).Sub(a, b))
	case "*":
		return normalizeRat(new(big.Rat).Mul(a, b))
	case "/":
		if b.Sign() == 0 {
			return makeErr(c, "eval/arith/div/int")
		}
		return normalizeRat(new(big.Rat).Quo(a, b))
	case "%":
		if b.Sign() == 0 {
			return makeErr(c, "eval/arith/div/int")
		}
		// a - b * floor(a/b)
		q := new(big.Rat).Quo(a, b)
		fl := new(big.Int).Quo(q.Num(), q.Denom())
		if q.Sign() < 0 && new(big.Int).Mul(fl, q.Denom()).Cmp(q.Num()) != 0 {
			fl.Sub(fl, big.NewInt(1))
		}
		prod := new(big.Rat).Mul(b, new(big.Rat).SetInt(fl))
		return normalizeRat(new(big.Rat).Sub(a, prod))
	case "**":
		e, ok := right.(*object.Integer)
		if !ok {
			return floatArith(c, op, asFloat(left), asFloat(right))
		}
		if e.Value >= 0 {
			num := new(big.Int).Exp(a.Num(), big.NewInt(e.Value), nil)
			den := new(big.Int).Exp(a.Denom(), big.NewInt(e.Value), nil)
			return normalizeRat(new(big.Rat).SetFrac(num, den))
		}
		if a.Sign() == 0 {
			return makeErr(c, "eval/arith/div/int")
		}
		num := new(big.Int).Exp(a.Denom(), big.NewInt(-e.Value), nil)
		den := new(big.Int).Exp(a.Num(), big.NewInt(-e.Value), nil)
		return normalizeRat(new(big.Rat).SetFrac(num, den))
	}
	return noMethod(c, op)
}

func floatArith(c *registry.Call, op string, a, b float64) object.Object {
	switch op {
	case "+":
		return &object.Float{Value: a + b}
	case "-":
		return &object.Float{Value: a - b}
	case "*":
		return &object.Float{Value: a * b}
	case "/":
		if b == 0 {
			return makeErr(c, "eval/arith/div/float")
		}
		return &object.Float{Value: a / b}
	case "%":
		if b == 0 {
			return makeErr(c, "eval/arith/div/float")
		}
		m := math.Mod(a, b)
		if m != 0 && (m < 0) != (b < 0) {
			m += b
		}
		return &object.Float{Value: m}
	case "**":
		return &object.Float{Value: math.Pow(a, b)}
	}
	return noMethod(c, op)
}

func complexArith(c *registry.Call, op string, a, b complex128) object.Object {
	switch op {
	case "+":
		return &object.Complex{Value: a + b}
	case "-":
		return &object.Complex{Value: a - b}
	case "*":
		return &object.Complex{Value: a * b}
	case "/":
		if b == 0 {
			return makeErr(c, "eval/arith/div/float")
		}
		return &object.Complex{Value: a / b}
	case "**":
		return &object.Complex{Value: cmplx.Pow(a, b)}
	}
	return noMethod(c, op)
}

// numericCompare orders real numbers. Complex values support only == and !=,
// which live on BasicObject; ordering a Complex is an operand error.
func numericCompare(c *registry.Call, op string, left, right object.Object) object.Object {
	lk, ok := numericKind(left)
	if !ok || lk == kindComplex {
		return makeErr(c, "eval/arith/operand", object.TrueType(left), "Numeric")
	}
	rk, ok := numericKind(right)
	if !ok || rk == kindComplex {
		if op == "<=>" {
			return object.NIL
		}
		return makeErr(c, "eval/arith/operand", object.TrueType(right), object.TrueType(left))
	}
	var cmp int
	if lk == kindFloat || rk == kindFloat {
		a, b := asFloat(left), asFloat(right)
		switch {
		case a < b:
			cmp = -1
		case a > b:
			cmp = 1
		}
	} else {
		cmp = asRat(left).Cmp(asRat(right))
	}
	switch op {
	case "<":
		return object.MakeBool(cmp < 0)
	case ">":
		return object.MakeBool(cmp > 0)
	case "<=":
		return object.MakeBool(cmp <= 0)
	case ">=":
		return object.MakeBool(cmp >= 0)
	case "<=>":
		return &object.Integer{Value: int64(cmp)}
	}
	return noMethod(c, op)
}
