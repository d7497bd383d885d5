// Package postgres provides PostgreSQL implementations of repository interfaces.
package postgres

import (
	"fmt"
	"strings"
)

// PostQueryBuilder builds the variable parts of post queries: the optional
// category filter for listings and the IN clause used to expand category
// links for a page of posts. Shared between queries to keep placeholder
// numbering in one place.
type PostQueryBuilder struct{}

// NewPostQueryBuilder creates a new query builder instance.
func NewPostQueryBuilder() *PostQueryBuilder {
	return &PostQueryBuilder{}
}

// BuildCategoryFilter returns a WHERE clause restricting posts to a category
// slug, with numbered placeholders starting at paramIndex. An EXISTS subquery
// on the join table is used so a post linked to the category more than once
// still appears exactly once in the page.
// Returns an empty clause and no args when categorySlug is empty.
func (qb *PostQueryBuilder) BuildCategoryFilter(categorySlug string, paramIndex int) (clause string, args []interface{}) {
	if categorySlug == "" {
		return "", nil
	}
	clause = fmt.Sprintf(`WHERE EXISTS (
	SELECT 1 FROM blog_post_categories pc
	INNER JOIN blog_categories c ON c.id = pc.category_id
	WHERE pc.post_id = p.id AND c.slug = $%d
)`, paramIndex)
	return clause, []interface{}{categorySlug}
}

// BuildCategoryLinksQuery returns the query expanding category links for the
// given post ids, along with its arguments. The result rows are ordered by
// post id so callers can group them in a single pass.
func (qb *PostQueryBuilder) BuildCategoryLinksQuery(postIDs []int64) (query string, args []interface{}) {
	placeholders := make([]string, len(postIDs))
	args = make([]interface{}, len(postIDs))
	for i, id := range postIDs {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = id
	}
	query = fmt.Sprintf(`
SELECT pc.post_id, c.id, c.name, c.slug
FROM blog_post_categories pc
INNER JOIN blog_categories c ON c.id = pc.category_id
WHERE pc.post_id IN (%s)
ORDER BY pc.post_id, c.id`, strings.Join(placeholders, ", "))
	return query, args
}
