package pagination

import (
	"net/http/httptest"
	"testing"
)

func TestParseQueryParams(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		name         string
		url          string
		wantPage     int
		wantCategory string
		wantErr      bool
	}{
		{"no params", "/api/blog/posts", 0, "", false},
		{"page only", "/api/blog/posts?page=2", 2, "", false},
		{"page zero", "/api/blog/posts?page=0", 0, "", false},
		{"category only", "/api/blog/posts?category=growth", 0, "growth", false},
		{"both", "/api/blog/posts?page=3&category=product", 3, "product", false},
		{"negative page", "/api/blog/posts?page=-1", 0, "", true},
		{"non-numeric page", "/api/blog/posts?page=abc", 0, "", true},
		{"fractional page", "/api/blog/posts?page=1.5", 0, "", true},
		{"page above max", "/api/blog/posts?page=10001", 0, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", tt.url, nil)
			got, err := ParseQueryParams(r, cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if got.Page != tt.wantPage || got.Category != tt.wantCategory {
				t.Errorf("got %+v, want page=%d category=%q", got, tt.wantPage, tt.wantCategory)
			}
		})
	}
}
