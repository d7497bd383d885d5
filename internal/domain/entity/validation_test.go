package entity

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateSlug(t *testing.T) {
	tests := []struct {
		name    string
		slug    string
		wantErr bool
	}{
		{"simple", "hello-world", false},
		{"digits and dots", "go-1.24-released", false},
		{"underscore and tilde", "draft_v2~final", false},
		{"empty", "", true},
		{"uppercase", "Hello", true},
		{"slash", "a/b", true},
		{"space", "hello world", true},
		{"query chars", "post?id=1", true},
		{"angle bracket", "post<script>", true},
		{"too long", strings.Repeat("a", 257), true},
		{"at max length", strings.Repeat("a", 256), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSlug(tt.slug)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateSlug(%q) err=%v, wantErr=%v", tt.slug, err, tt.wantErr)
			}
		})
	}
}

func TestValidateSlug_ReturnsValidationError(t *testing.T) {
	err := ValidateSlug("BAD SLUG")
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if vErr.Field != "slug" {
		t.Errorf("Field = %q, want %q", vErr.Field, "slug")
	}
}

func TestBlogPost_CategoryIDs(t *testing.T) {
	post := &BlogPost{
		Categories: []BlogCategory{
			{ID: 3, Name: "Scheduling", Slug: "scheduling"},
			{ID: 1, Name: "Growth", Slug: "growth"},
			{ID: 3, Name: "Scheduling", Slug: "scheduling"},
		},
	}

	got := post.CategoryIDs()
	want := []int64{3, 1}
	if len(got) != len(want) {
		t.Fatalf("CategoryIDs() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("CategoryIDs() = %v, want %v", got, want)
		}
	}
}
