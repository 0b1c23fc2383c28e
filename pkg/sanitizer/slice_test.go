package sanitizer

import (
	"reflect"
	"testing"
)

func TestNormalizeSuiteTypes(t *testing.T) {
	tests := []struct {
		name  string
		input []string
		want  []string
	}{
		{"nil input", nil, []string{}},
		{"drops empties", []string{"", "  ", "luxury villa"}, []string{"luxury villa"}},
		{"dedupes after normalization", []string{"Luxury Villa", "luxury  villa"}, []string{"luxury villa"}},
		{"preserves order", []string{"b suite", "a suite"}, []string{"b suite", "a suite"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeSuiteTypes(tt.input); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("NormalizeSuiteTypes(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizePriority(t *testing.T) {
	tests := []struct {
		input int
		want  int
	}{
		{-5, 0},
		{0, 0},
		{100, 100},
		{100000, 100000},
		{200000, 100000},
	}

	for _, tt := range tests {
		if got := NormalizePriority(tt.input); got != tt.want {
			t.Errorf("NormalizePriority(%d) = %d, want %d", tt.input, got, tt.want)
		}
	}
}
