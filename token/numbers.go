package token

import (
	"math"
	"strconv"
)

// number returns the length of the numeric literal at the start of d.
//
//	number := [+-]? digits ('.' digits)? ([eE] [+-]? digits)?
//
// A literal that is cut short or runs into identifier characters is an
// error.
func number(d []byte) (int, error) {
	i := 0
	if i < len(d) && (d[i] == '+' || d[i] == '-') {
		i++
	}
	n := asciiDigits(d[i:])
	if n == 0 {
		return i, ErrNumber
	}
	i += n
	if i < len(d) && d[i] == '.' {
		i++
		n = asciiDigits(d[i:])
		if n == 0 {
			return i, ErrNumber
		}
		i += n
	}
	if i < len(d) && (d[i] == 'e' || d[i] == 'E') {
		i++
		if i < len(d) && (d[i] == '+' || d[i] == '-') {
			i++
		}
		n = asciiDigits(d[i:])
		if n == 0 {
			return i, ErrNumber
		}
		i += n
	}
	if i < len(d) && (identChar(d[i]) || d[i] == '.') {
		return i, ErrNumber
	}
	return i, nil
}

func asciiDigits(d []byte) int {
	i := 0
	for i < len(d) {
		if !asciiDigit(d[i]) {
			return i
		}
		i++
	}
	return i
}

func asciiDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

// ParseNumber decodes a numeric literal. Literals outside the range of a
// float64 are rejected.
func ParseNumber(d []byte) (float64, error) {
	n, err := number(d)
	if err != nil {
		return 0, err
	}
	if n != len(d) {
		return 0, ErrNumber
	}
	f, err := strconv.ParseFloat(string(d), 64)
	if err != nil {
		return 0, ErrNumber
	}
	if math.IsInf(f, 0) {
		return 0, ErrNumber
	}
	return f, nil
}

// FormatNumber renders f in the shortest form that parses back to f.
// Integral values below 1e21 are written without an exponent.
func FormatNumber(f float64) (string, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "", ErrNumber
	}
	if f == math.Trunc(f) && math.Abs(f) < 1e21 {
		if f == 0 {
			// drop the sign of negative zero
			return "0", nil
		}
		return strconv.FormatFloat(f, 'f', -1, 64), nil
	}
	return strconv.FormatFloat(f, 'g', -1, 64), nil
}
