// Package entity defines the core domain entities and validation logic for the blog.
// It contains the fundamental business objects such as BlogPost and BlogCategory,
// along with their validation rules and domain-specific errors.
package entity

import "time"

// BlogPost represents a published blog post.
// Posts are authored in an external CMS; this service only reads them.
// Listing queries leave Content empty to save bandwidth; only the
// single-post fetch populates it.
type BlogPost struct {
	ID               int64
	Slug             string
	Title            string
	Description      string
	Content          string
	FeaturedImageURL string
	MetaImageURL     string
	AuthorName       string
	CreatedAt        time.Time
	Categories       []BlogCategory
}

// CategoryIDs returns the ids of the post's categories, deduplicated,
// preserving first-seen order.
func (p *BlogPost) CategoryIDs() []int64 {
	seen := make(map[int64]struct{}, len(p.Categories))
	ids := make([]int64, 0, len(p.Categories))
	for _, c := range p.Categories {
		if _, ok := seen[c.ID]; ok {
			continue
		}
		seen[c.ID] = struct{}{}
		ids = append(ids, c.ID)
	}
	return ids
}
