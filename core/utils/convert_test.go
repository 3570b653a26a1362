package utils

import "testing"

func TestNormalizeITS(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "", want: ""},
		{in: "   ", want: ""},
		{in: "123", want: "123"},
		{in: " 123 ", want: "123"},
		{in: "00123", want: "123"},
		{in: "-5", want: "-5"},
		{in: "AB12", want: "AB12"},
		{in: " AB12\t", want: "AB12"},
	}

	for _, tt := range tests {
		if got := NormalizeITS(tt.in); got != tt.want {
			t.Errorf("NormalizeITS(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSameITS(t *testing.T) {
	s := func(v string) *string { return &v }

	tests := []struct {
		name string
		a, b *string
		want bool
	}{
		{name: "both nil", a: nil, b: nil, want: false},
		{name: "one nil", a: s("1"), b: nil, want: false},
		{name: "equal", a: s("100"), b: s("100"), want: true},
		{name: "numeric string vs padded", a: s("0100"), b: s(" 100"), want: true},
		{name: "blank never matches", a: s(" "), b: s(""), want: false},
		{name: "different", a: s("100"), b: s("200"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SameITS(tt.a, tt.b); got != tt.want {
				t.Errorf("SameITS() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestToIntOrZero(t *testing.T) {
	if got := ToIntOrZero("7"); got != 7 {
		t.Errorf("ToIntOrZero(7) = %d", got)
	}
	if got := ToIntOrZero("x"); got != 0 {
		t.Errorf("ToIntOrZero(x) = %d", got)
	}
	if got := ToInt64(" 42 "); got != 42 {
		t.Errorf("ToInt64 = %d", got)
	}
}

func TestToString(t *testing.T) {
	name := "x"
	tests := []struct {
		in   any
		want string
	}{
		{nil, ""},
		{"abc", "abc"},
		{&name, "x"},
		{(*string)(nil), ""},
		{7, "7"},
		{int64(9), "9"},
		{float64(100200300), "100200300"},
		{float64(2.5), "2.5"},
	}
	for _, tt := range tests {
		if got := ToString(tt.in); got != tt.want {
			t.Errorf("ToString(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
