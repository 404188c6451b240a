package token

import (
	"errors"
	"testing"
)

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in  string
		out float64
		err bool
	}{
		{in: "1", out: 1},
		{in: "-1", out: -1},
		{in: "+2", out: 2},
		{in: "1.5", out: 1.5},
		{in: "1e10", out: 1e10},
		{in: "-1.5e-3", out: -1.5e-3},
		{in: "1E+2", out: 100},
		{in: "1.", err: true},
		{in: "1e", err: true},
		{in: "-", err: true},
		{in: ".5", err: true},
		{in: "1.5.2", err: true},
		{in: "12abc", err: true},
		{in: "1e999", err: true},
	}
	for _, tc := range tests {
		f, err := ParseNumber([]byte(tc.in))
		if tc.err {
			if err == nil {
				t.Errorf("%q: expected error, got %v", tc.in, f)
			} else if !errors.Is(err, ErrNumber) {
				t.Errorf("%q: got %v, want ErrNumber", tc.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("%q: %v", tc.in, err)
			continue
		}
		if f != tc.out {
			t.Errorf("%q: got %v want %v", tc.in, f, tc.out)
		}
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in  float64
		out string
	}{
		{1, "1"},
		{-1, "-1"},
		{1.5, "1.5"},
		{1e10, "10000000000"},
		{-1.5e-3, "-0.0015"},
		{1e21, "1e+21"},
		{1.5e-7, "1.5e-07"},
	}
	for _, tc := range tests {
		s, err := FormatNumber(tc.in)
		if err != nil {
			t.Fatal(err)
		}
		if s != tc.out {
			t.Errorf("%v: got %q want %q", tc.in, s, tc.out)
		}
		back, err := ParseNumber([]byte(s))
		if err != nil {
			t.Errorf("%q does not parse back: %v", s, err)
			continue
		}
		if back != tc.in {
			t.Errorf("%q parsed back to %v", s, back)
		}
	}
}
