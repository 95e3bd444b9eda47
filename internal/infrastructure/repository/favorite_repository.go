package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/artbid/auction-marketplace-backend/internal/domain/auction"
)

// FavoriteRepository stores the sparse currently-liked set. The unique
// (auction_id, user_id) pair makes Upsert idempotent.
type FavoriteRepository struct {
	db querier
}

func NewFavoriteRepository(pool *pgxpool.Pool) *FavoriteRepository {
	return &FavoriteRepository{db: pool}
}

func (r *FavoriteRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*auction.Favorite, error) {
	query := `
		SELECT id, auction_id, user_id, created_at
		FROM auction_favorites
		WHERE user_id = $1
		ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, mapError(err, "favorite")
	}
	defer rows.Close()

	var favorites []*auction.Favorite
	for rows.Next() {
		var f auction.Favorite
		if err := rows.Scan(&f.ID, &f.AuctionID, &f.UserID, &f.CreatedAt); err != nil {
			return nil, mapError(err, "favorite")
		}
		favorites = append(favorites, &f)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, "favorite")
	}
	return favorites, nil
}

func (r *FavoriteRepository) Upsert(ctx context.Context, f *auction.Favorite) error {
	query := `
		INSERT INTO auction_favorites (id, auction_id, user_id, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (auction_id, user_id) DO NOTHING`

	_, err := r.db.Exec(ctx, query, f.ID, f.AuctionID, f.UserID, f.CreatedAt)
	if err != nil {
		return mapError(err, "favorite")
	}
	return nil
}

// Delete removes the row; deleting an absent favorite is a no-op.
func (r *FavoriteRepository) Delete(ctx context.Context, auctionID, userID uuid.UUID) error {
	query := `DELETE FROM auction_favorites WHERE auction_id = $1 AND user_id = $2`

	_, err := r.db.Exec(ctx, query, auctionID, userID)
	if err != nil {
		return mapError(err, "favorite")
	}
	return nil
}

func (r *FavoriteRepository) CountByAuction(ctx context.Context, auctionID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM auction_favorites WHERE auction_id = $1`, auctionID,
	).Scan(&count)
	if err != nil {
		return 0, mapError(err, "favorite")
	}
	return count, nil
}
