package paging

import (
	"net/http/httptest"
	"testing"
)

func TestParseLimit(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  int64
	}{
		{"missing", "", DefaultLimit},
		{"valid", "?limit=5", 5},
		{"zero", "?limit=0", DefaultLimit},
		{"negative", "?limit=-3", DefaultLimit},
		{"not a number", "?limit=abc", DefaultLimit},
		{"clamped", "?limit=1000", MaxLimit},
		{"at max", "?limit=100", MaxLimit},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/builds"+tt.query, nil)
			if got := ParseLimit(r); got != tt.want {
				t.Errorf("ParseLimit(%q) = %d, want %d", tt.query, got, tt.want)
			}
		})
	}
}
