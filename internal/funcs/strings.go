package funcs

import (
	"math"
	"strconv"
	"strings"

	"github.com/jcorbin/gobasic/internal/value"
)

// Strings returns the string function library.
func Strings() Library {
	return Library{
		Name: "strings",
		Functions: map[string]Operation{
			"LEN":    strLen,
			"ASC":    strAsc,
			"CHR$":   strChr,
			"LEFT$":  strLeft,
			"RIGHT$": strRight,
			"MID$":   strMid,
			"STR$":   strStr,
			"VAL":    strVal,
		},
	}
}

func strLen(s Stack) error {
	str, err := s.PopString()
	if err != nil {
		return err
	}
	return s.PushValue(value.Int(int16(len(str))))
}

func strAsc(s Stack) error {
	str, err := s.PopString()
	if err != nil {
		return err
	}
	if len(str) == 0 {
		return ErrArgument
	}
	return s.PushValue(value.Int(int16(str[0])))
}

func strChr(s Stack) error {
	n, err := popInt(s, 0x7f)
	if err != nil {
		return err
	}
	return s.PushString([]byte{byte(n)})
}

func strLeft(s Stack) error {
	n, err := popInt(s, math.MaxInt16)
	if err != nil {
		return err
	}
	str, err := s.PopString()
	if err != nil {
		return err
	}
	return s.PushString(str[:min(n, len(str))])
}

func strRight(s Stack) error {
	n, err := popInt(s, math.MaxInt16)
	if err != nil {
		return err
	}
	str, err := s.PopString()
	if err != nil {
		return err
	}
	return s.PushString(str[len(str)-min(n, len(str)):])
}

// strMid implements MID$(s$, start, count) with a 1-based start.
func strMid(s Stack) error {
	count, err := popInt(s, math.MaxInt16)
	if err != nil {
		return err
	}
	start, err := popInt(s, math.MaxInt16)
	if err != nil {
		return err
	}
	if start < 1 {
		return ErrArgument
	}
	str, err := s.PopString()
	if err != nil {
		return err
	}
	from := min(start-1, len(str))
	to := min(from+count, len(str))
	return s.PushString(str[from:to])
}

// strStr formats a number the way PRINT does, sign column included.
func strStr(s Stack) error {
	v, err := s.PopValue()
	if err != nil {
		return err
	}
	text := v.String()
	if !v.Negative() {
		text = " " + text
	}
	return s.PushString([]byte(text))
}

// strVal parses a whole string as a number, yielding 0 when it is not one.
func strVal(s Stack) error {
	str, err := s.PopString()
	if err != nil {
		return err
	}
	text := strings.TrimSpace(string(str))
	if n, err := strconv.ParseInt(text, 10, 32); err == nil {
		if n >= math.MinInt16 && n <= math.MaxInt16 {
			return s.PushValue(value.Int(int16(n)))
		}
		return s.PushValue(value.Long(int32(n)))
	}
	if f, err := strconv.ParseFloat(text, 32); err == nil {
		return s.PushValue(value.Float(float32(f)))
	}
	return s.PushValue(value.Int(0))
}
