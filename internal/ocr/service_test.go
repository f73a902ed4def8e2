package ocr

import (
	"reflect"
	"testing"
)

func TestParseLanguageHints(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"plain", "vi,fr", []string{"vi", "fr"}},
		{"spaces after commas", "vi, fr, zh", []string{"vi", "fr", "zh"}},
		{"surrounding whitespace", "  vi , fr  ", []string{"vi", "fr"}},
		{"blank elements dropped", "vi,,fr,", []string{"vi", "fr"}},
		{"empty", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseLanguageHints(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseLanguageHints(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
