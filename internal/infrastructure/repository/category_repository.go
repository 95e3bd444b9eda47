package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/artbid/auction-marketplace-backend/internal/domain/auction"
)

// CategoryRepository reads the category taxonomy.
type CategoryRepository struct {
	db querier
}

func NewCategoryRepository(pool *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{db: pool}
}

func (r *CategoryRepository) List(ctx context.Context) ([]*auction.Category, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, image FROM categories ORDER BY name`)
	if err != nil {
		return nil, mapError(err, "category")
	}
	defer rows.Close()

	var categories []*auction.Category
	for rows.Next() {
		var c auction.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Image); err != nil {
			return nil, mapError(err, "category")
		}
		categories = append(categories, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, "category")
	}
	return categories, nil
}

func (r *CategoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*auction.Category, error) {
	var c auction.Category
	err := r.db.QueryRow(ctx,
		`SELECT id, name, image FROM categories WHERE id = $1`, id,
	).Scan(&c.ID, &c.Name, &c.Image)
	if err != nil {
		return nil, mapError(err, "category")
	}
	return &c, nil
}
