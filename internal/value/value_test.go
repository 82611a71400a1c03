package value_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcorbin/gobasic/internal/value"
)

func TestTypeOfName(t *testing.T) {
	for _, tc := range []struct {
		name  string
		reals bool
		want  value.Type
	}{
		{"A", true, value.Real},
		{"A", false, value.Integer},
		{"A%", true, value.Integer},
		{"A%%", true, value.LongInteger},
		{"AB!", false, value.Boolean},
		{"NAME$", true, value.String},
		{"X1", false, value.Integer},
	} {
		assert.Equal(t, tc.want, value.TypeOfName(tc.name, tc.reals), "type of %q (reals:%v)", tc.name, tc.reals)
	}
}

func TestWidening(t *testing.T) {
	for _, tc := range []struct {
		name string
		a, b value.Value
		sum  value.Value
	}{
		{"int+int", value.Int(2), value.Int(3), value.Int(5)},
		{"int+long", value.Int(2), value.Long(70000), value.Long(70002)},
		{"long+real", value.Long(1), value.Float(0.5), value.Float(1.5)},
		{"bool+int", value.Bool(true), value.Int(1), value.Int(2)},
		{"bool+bool", value.Bool(true), value.Bool(true), value.Int(2)},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.a.Add(tc.b)
			assert.Equal(t, tc.sum.Type(), got.Type(), "expected result type")
			assert.True(t, tc.sum.Equal(got), "expected %v, got %v", tc.sum, got)
			assert.Equal(t, got.Type(), tc.b.Add(tc.a).Type(), "widening must be symmetric")
		})
	}
}

func TestArithmetic(t *testing.T) {
	assert.Equal(t, value.Int(6), value.Int(2).Mul(value.Int(3)))
	assert.Equal(t, value.Int(3), value.Int(7).Div(value.Int(2)), "integer division truncates")
	assert.Equal(t, value.Int(-3), value.Int(-7).Div(value.Int(2)))
	assert.Equal(t, value.Int(1), value.Int(7).Mod(value.Int(3)))
	assert.Equal(t, value.Float(3.5), value.Float(7).Div(value.Int(2)))
	assert.Equal(t, value.Int(-1), value.Int(4).Sub(value.Int(5)))
}

func TestOverflowWraps(t *testing.T) {
	assert.Equal(t, value.Int(math.MinInt16), value.Int(math.MaxInt16).Add(value.Int(1)))
	assert.Equal(t, value.Int(-2), value.Int(math.MaxInt16).Mul(value.Int(2)))
	assert.Equal(t, value.Long(math.MinInt32), value.Long(math.MaxInt32).Add(value.Int(1)))
	assert.Equal(t, value.Int(0), value.Int(256).Pow(value.Int(2)), "power wraps in integer width")
}

func TestPow(t *testing.T) {
	assert.Equal(t, value.Int(1024), value.Int(2).Pow(value.Int(10)))
	assert.Equal(t, value.Int(1), value.Int(5).Pow(value.Int(0)))
	assert.Equal(t, value.Long(1<<20), value.Long(2).Pow(value.Int(20)))
	assert.Equal(t, value.Int(243), value.Int(3).Pow(value.Int(5)))
	assert.Equal(t, value.Long(math.MinInt32), value.Long(2).Pow(value.Long(31)))
	assert.Equal(t, value.Int(3477), value.Int(-3).Pow(value.Int(15)), "odd power wraps in integer width")

	// huge exponents finish in logarithmic steps
	assert.Equal(t, value.Long(1), value.Long(1).Pow(value.Long(2000000000)))
	assert.Equal(t, value.Long(-1), value.Long(-1).Pow(value.Long(2000000001)))
	assert.Equal(t, value.Long(0), value.Int(2).Pow(value.Long(math.MaxInt32)))

	got := value.Int(2).Pow(value.Int(-1))
	require.Equal(t, value.Real, got.Type(), "negative exponents compute reals")
	assert.True(t, got.Equal(value.Float(0.5)))

	got = value.Float(9).Pow(value.Float(0.5))
	assert.True(t, got.Equal(value.Float(3)))
}

func TestNeg(t *testing.T) {
	assert.Equal(t, value.Int(-1), value.Bool(true).Neg(), "true negates to -1")
	assert.Equal(t, value.Int(0), value.Bool(false).Neg())
	assert.Equal(t, value.Int(-5), value.Int(5).Neg())
	assert.Equal(t, value.Long(-5), value.Long(5).Neg())
	assert.Equal(t, value.Float(2.5), value.Float(-2.5).Neg())
}

func TestCompare(t *testing.T) {
	assert.True(t, value.Int(1).Less(value.Long(70000)))
	assert.True(t, value.Long(70000).Greater(value.Int(1)))
	assert.True(t, value.Int(3).Equal(value.Float(3)))
	assert.True(t, value.Bool(true).Equal(value.Int(1)))
	assert.True(t, value.Float(2).GreaterEqual(value.Int(2)))
	assert.True(t, value.Int(2).LessEqual(value.Int(2)))
	assert.True(t, value.Int(2).NotEqual(value.Int(3)))

	third := value.Float(1).Div(value.Float(3))
	assert.True(t, third.Mul(value.Float(3)).Equal(value.Float(1)), "reals compare almost equal")
	assert.False(t, value.Float(1).Equal(value.Float(1.001)))
}

func TestCodec(t *testing.T) {
	for _, v := range []value.Value{
		value.Int(-12345),
		value.Long(-123456789),
		value.Float(3.25),
		value.Bool(true),
		value.Bool(false),
	} {
		buf := make([]byte, v.Type().Size())
		v.Encode(buf)
		assert.Equal(t, v, value.Decode(v.Type(), buf), "decode(encode(%v))", v)
	}
}

func TestString(t *testing.T) {
	assert.Equal(t, "42", value.Int(42).String())
	assert.Equal(t, "-7", value.Long(-7).String())
	assert.Equal(t, "1.5", value.Float(1.5).String())
	assert.Equal(t, "1E+10", value.Float(1e10).String())
	assert.Equal(t, "TRUE", value.Bool(true).String())
}

func TestConvert(t *testing.T) {
	assert.Equal(t, value.Int(3), value.Float(3.9).Convert(value.Integer))
	assert.Equal(t, value.Bool(true), value.Int(-2).Convert(value.Boolean))
	assert.Equal(t, value.Float(7), value.Long(7).Convert(value.Real))
	assert.Equal(t, value.StringMarker, value.Int(1).Convert(value.String))
}
