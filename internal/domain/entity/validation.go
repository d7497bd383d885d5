package entity

import "fmt"

// maxSlugLength bounds slug input taken from request paths.
const maxSlugLength = 256

// ValidateSlug validates a URL slug. Slugs are the public identifiers of
// posts and categories and must be URL-safe: lowercase letters, digits,
// and the unreserved punctuation '-', '.', '_', '~'.
// Returns a ValidationError if the slug is empty, too long, or contains
// a character outside that set.
func ValidateSlug(slug string) error {
	if slug == "" {
		return &ValidationError{Field: "slug", Message: "slug is required"}
	}
	if len(slug) > maxSlugLength {
		return &ValidationError{
			Field:   "slug",
			Message: fmt.Sprintf("slug must not exceed %d characters", maxSlugLength),
		}
	}
	for i := 0; i < len(slug); i++ {
		if !isSlugByte(slug[i]) {
			return &ValidationError{
				Field:   "slug",
				Message: fmt.Sprintf("slug contains invalid character %q", slug[i]),
			}
		}
	}
	return nil
}

func isSlugByte(b byte) bool {
	switch {
	case b >= 'a' && b <= 'z':
		return true
	case b >= '0' && b <= '9':
		return true
	case b == '-' || b == '.' || b == '_' || b == '~':
		return true
	}
	return false
}
