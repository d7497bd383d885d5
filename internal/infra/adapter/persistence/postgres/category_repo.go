package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"savvy-blog/internal/domain/entity"
	"savvy-blog/internal/observability/metrics"
	"savvy-blog/internal/repository"
	"savvy-blog/internal/resilience/circuitbreaker"
)

type CategoryRepo struct {
	db      *circuitbreaker.DBCircuitBreaker
	timeout time.Duration
}

func NewCategoryRepo(db *sql.DB) *CategoryRepo {
	return &CategoryRepo{db: circuitbreaker.NewDBCircuitBreaker(db), timeout: defaultQueryTimeout}
}

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// List retrieves all categories sorted ascending by name.
func (repo *CategoryRepo) List(ctx context.Context) ([]*entity.BlogCategory, error) {
	defer func(start time.Time) { metrics.RecordDBQuery("list_categories", time.Since(start)) }(time.Now())
	ctx, cancel := context.WithTimeout(ctx, repo.timeout)
	defer cancel()

	const query = `
SELECT id, name, slug
FROM blog_categories
ORDER BY name ASC`
	rows, err := repo.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	defer func() { _ = rows.Close() }()

	categories := make([]*entity.BlogCategory, 0, 20)
	for rows.Next() {
		var cat entity.BlogCategory
		if err := rows.Scan(&cat.ID, &cat.Name, &cat.Slug); err != nil {
			return nil, fmt.Errorf("List: Scan: %w", err)
		}
		categories = append(categories, &cat)
	}
	return categories, rows.Err()
}
