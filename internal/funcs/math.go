package funcs

import (
	"math"
	"math/rand"

	"github.com/jcorbin/gobasic/internal/value"
)

// Math returns the numeric function library, drawing RND values from rng.
// The RANDOMIZE command reseeds rng from its argument.
func Math(rng *rand.Rand) Library {
	m := mathLib{rng: rng}
	return Library{
		Name: "math",
		Functions: map[string]Operation{
			"ABS": unary(func(v value.Value) (value.Value, error) {
				if v.Negative() {
					return v.Neg(), nil
				}
				return v.Convert(numeric(v.Type())), nil
			}),
			"SGN": unary(func(v value.Value) (value.Value, error) {
				switch {
				case v.Negative():
					return value.Int(-1), nil
				case v.IsZero():
					return value.Int(0), nil
				}
				return value.Int(1), nil
			}),
			"INT": unary(func(v value.Value) (value.Value, error) {
				if v.Type() == value.Real {
					return value.Float(float32(math.Floor(float64(v.Float())))), nil
				}
				return v.Convert(numeric(v.Type())), nil
			}),
			"SQR": realFunc(func(x float64) (float64, error) {
				if x < 0 {
					return 0, ErrArgument
				}
				return math.Sqrt(x), nil
			}),
			"SIN": realFunc(pure(math.Sin)),
			"COS": realFunc(pure(math.Cos)),
			"TAN": realFunc(pure(math.Tan)),
			"ATN": realFunc(pure(math.Atan)),
			"EXP": realFunc(pure(math.Exp)),
			"LOG": realFunc(func(x float64) (float64, error) {
				if x <= 0 {
					return 0, ErrArgument
				}
				return math.Log(x), nil
			}),
			"RND": m.rnd,
		},
		Commands: map[string]Operation{
			"RANDOMIZE": m.randomize,
		},
	}
}

type mathLib struct {
	rng *rand.Rand
}

// rnd returns a Real in [0, 1), or an Integer in [1, n] when given a
// positive integer n.
func (m mathLib) rnd(s Stack) error {
	v, err := s.PopValue()
	if err != nil {
		return err
	}
	if t := v.Type(); t != value.Real && !v.Negative() && !v.IsZero() {
		n := v.Long()
		r := m.rng.Int31n(n) + 1
		if t == value.LongInteger {
			return s.PushValue(value.Long(r))
		}
		return s.PushValue(value.Int(int16(r)))
	}
	return s.PushValue(value.Float(m.rng.Float32()))
}

func (m mathLib) randomize(s Stack) error {
	v, err := s.PopValue()
	if err != nil {
		return err
	}
	m.rng.Seed(int64(v.Long()))
	return nil
}

// numeric maps Boolean to Integer, leaving other numeric types alone.
func numeric(t value.Type) value.Type {
	if t == value.Boolean {
		return value.Integer
	}
	return t
}

func unary(f func(value.Value) (value.Value, error)) Operation {
	return func(s Stack) error {
		v, err := s.PopValue()
		if err == nil {
			v, err = f(v)
		}
		if err == nil {
			err = s.PushValue(v)
		}
		return err
	}
}

func realFunc(f func(float64) (float64, error)) Operation {
	return unary(func(v value.Value) (value.Value, error) {
		r, err := f(float64(v.Float()))
		if err == nil && (math.IsNaN(r) || math.IsInf(r, 0)) {
			err = ErrArgument
		}
		return value.Float(float32(r)), err
	})
}

func pure(f func(float64) float64) func(float64) (float64, error) {
	return func(x float64) (float64, error) { return f(x), nil }
}
