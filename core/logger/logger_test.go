package logger

import (
	"errors"
	"reflect"
	"testing"
)

func TestNormalize(t *testing.T) {
	boom := errors.New("boom")

	tests := []struct {
		name string
		in   []any
		want []any
	}{
		{name: "empty", in: nil, want: nil},
		{name: "pairs untouched", in: []any{"k", 1}, want: []any{"k", 1}},
		{name: "lone error", in: []any{boom}, want: []any{"error", boom}},
		{name: "pairs plus trailing error", in: []any{"taruf_id", 7, boom}, want: []any{"taruf_id", 7, "error", boom}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalize(tt.in)
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("normalize(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
