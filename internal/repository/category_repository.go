package repository

import (
	"context"

	"savvy-blog/internal/domain/entity"
)

type CategoryRepository interface {
	// List retrieves all categories sorted ascending by name.
	List(ctx context.Context) ([]*entity.BlogCategory, error)
}
