package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/artbid/auction-marketplace-backend/internal/domain/auction"
	"github.com/artbid/auction-marketplace-backend/internal/domain/errors"
	"github.com/artbid/auction-marketplace-backend/internal/domain/values"
	"github.com/artbid/auction-marketplace-backend/internal/service/marketplace"
)

// querier is satisfied by both *pgxpool.Pool and pgx.Tx, so the same
// repository code runs inside and outside transactions.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

const auctionColumns = `
	id, name, location, lot_ref_num, lot_num_two, piece_title,
	starting_price, current_bid,
	dimensions, framed_text, description,
	start_date, end_date, period, status,
	artist_name, artist_birth_date, artist_death_date, artist_address,
	artist_image, artist_bio, date_prod,
	image1, image2, image3, image4, video,
	body_style, medium, color_scheme, condition, warranty,
	category_id, owner_id, view_count, created_at, updated_at`

// AuctionRepository implements the auction read and lifecycle surfaces over
// PostgreSQL.
type AuctionRepository struct {
	db querier
}

// NewAuctionRepository creates an auction repository on the pool.
func NewAuctionRepository(pool *pgxpool.Pool) *AuctionRepository {
	return &AuctionRepository{db: pool}
}

// newAuctionTxRepository binds the repository to a transaction.
func newAuctionTxRepository(tx pgx.Tx) *AuctionRepository {
	return &AuctionRepository{db: tx}
}

func (r *AuctionRepository) GetByID(ctx context.Context, id uuid.UUID) (*auction.Auction, error) {
	query := `SELECT` + auctionColumns + ` FROM auctions WHERE id = $1`
	a, err := scanAuction(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, mapError(err, "auction")
	}
	return a, nil
}

// GetForUpdate locks the auction row for the remainder of the transaction.
// Callers must be inside a transaction or the lock releases immediately.
func (r *AuctionRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*auction.Auction, error) {
	query := `SELECT` + auctionColumns + ` FROM auctions WHERE id = $1 FOR UPDATE`
	a, err := scanAuction(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, mapError(err, "auction")
	}
	return a, nil
}

// SaveLifecycle persists the fields lifecycle evaluation mutates: status,
// view count, and the update timestamp.
func (r *AuctionRepository) SaveLifecycle(ctx context.Context, a *auction.Auction) error {
	query := `
		UPDATE auctions
		SET status = $2, view_count = $3, updated_at = $4
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, a.ID, a.Status.String(), a.ViewCount, a.UpdatedAt)
	if err != nil {
		return mapError(err, "auction")
	}
	if tag.RowsAffected() == 0 {
		return errors.NewNotFoundError("auction")
	}
	return nil
}

func (r *AuctionRepository) SetCurrentBid(ctx context.Context, id uuid.UUID, amount values.Money) error {
	query := `UPDATE auctions SET current_bid = $2, updated_at = NOW() WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, id, amount)
	if err != nil {
		return mapError(err, "auction")
	}
	if tag.RowsAffected() == 0 {
		return errors.NewNotFoundError("auction")
	}
	return nil
}

func (r *AuctionRepository) List(ctx context.Context) ([]*auction.Auction, error) {
	query := `SELECT` + auctionColumns + ` FROM auctions ORDER BY created_at DESC`
	return r.queryAuctions(ctx, query)
}

func (r *AuctionRepository) Filter(ctx context.Context, filter *marketplace.AuctionFilter) ([]*auction.Auction, error) {
	var conditions []string
	var args []any

	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.MinPrice != nil {
		conditions = append(conditions, "a.starting_price >= "+arg(*filter.MinPrice))
	}
	if filter.MaxPrice != nil {
		conditions = append(conditions, "a.starting_price <= "+arg(*filter.MaxPrice))
	}
	if filter.CategoryName != "" {
		conditions = append(conditions, "c.name ILIKE "+arg("%"+filter.CategoryName+"%"))
	}
	if filter.Status != nil {
		conditions = append(conditions, "a.status = "+arg(filter.Status.String()))
	}
	if filter.Period != nil {
		conditions = append(conditions, "a.period = "+arg(filter.Period.String()))
	}
	if filter.StartAfter != nil {
		conditions = append(conditions, "a.start_date >= "+arg(*filter.StartAfter))
	}
	if filter.EndBefore != nil {
		conditions = append(conditions, "a.end_date <= "+arg(*filter.EndBefore))
	}

	query := `SELECT ` + prefixColumns("a") + `
		FROM auctions a
		JOIN categories c ON c.id = a.category_id`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY a.created_at DESC"

	return r.queryAuctions(ctx, query, args...)
}

func (r *AuctionRepository) SearchByName(ctx context.Context, name string) ([]*auction.Auction, error) {
	query := `SELECT` + auctionColumns + `
		FROM auctions
		WHERE name ILIKE $1
		ORDER BY created_at DESC`
	return r.queryAuctions(ctx, query, "%"+name+"%")
}

func (r *AuctionRepository) ListByCategory(ctx context.Context, categoryID uuid.UUID) ([]*auction.Auction, error) {
	query := `SELECT` + auctionColumns + `
		FROM auctions
		WHERE category_id = $1
		ORDER BY created_at DESC`
	return r.queryAuctions(ctx, query, categoryID)
}

func (r *AuctionRepository) Related(ctx context.Context, categoryID, excludeID uuid.UUID, now time.Time, limit int) ([]*auction.Auction, error) {
	query := `SELECT` + auctionColumns + `
		FROM auctions
		WHERE category_id = $1 AND id <> $2 AND end_date > $3
		ORDER BY created_at DESC
		LIMIT $4`
	return r.queryAuctions(ctx, query, categoryID, excludeID, now, limit)
}

func (r *AuctionRepository) Top(ctx context.Context, minViews int64, now time.Time, status *auction.Status) ([]*auction.Auction, error) {
	query := `SELECT` + auctionColumns + `
		FROM auctions
		WHERE view_count > $1 AND end_date > $2`
	args := []any{minViews, now}
	if status != nil {
		query += ` AND status = $3`
		args = append(args, status.String())
	}
	query += ` ORDER BY view_count DESC`

	return r.queryAuctions(ctx, query, args...)
}

func (r *AuctionRepository) BestArtist(ctx context.Context) (*marketplace.ArtistProfile, error) {
	query := `
		SELECT artist_name, artist_image, artist_bio, COUNT(*) AS auction_count
		FROM auctions
		WHERE artist_name <> ''
		GROUP BY artist_name, artist_image, artist_bio
		ORDER BY auction_count DESC, artist_name
		LIMIT 1`

	var profile marketplace.ArtistProfile
	err := r.db.QueryRow(ctx, query).Scan(
		&profile.ArtistName, &profile.ArtistImage, &profile.ArtistBio, &profile.AuctionCount,
	)
	if err != nil {
		return nil, mapError(err, "artist")
	}

	auctions, err := r.queryAuctions(ctx,
		`SELECT`+auctionColumns+` FROM auctions WHERE artist_name = $1 ORDER BY created_at DESC`,
		profile.ArtistName)
	if err != nil {
		return nil, err
	}
	profile.Auctions = auctions

	return &profile, nil
}

func (r *AuctionRepository) queryAuctions(ctx context.Context, query string, args ...any) ([]*auction.Auction, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(err, "auction")
	}
	defer rows.Close()

	var auctions []*auction.Auction
	for rows.Next() {
		a, err := scanAuction(rows)
		if err != nil {
			return nil, mapError(err, "auction")
		}
		auctions = append(auctions, a)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, "auction")
	}
	return auctions, nil
}

func scanAuction(row pgx.Row) (*auction.Auction, error) {
	var a auction.Auction
	var currentBid sql.NullString
	var periodStr, statusStr string

	err := row.Scan(
		&a.ID, &a.Name, &a.Location, &a.LotRefNum, &a.LotNumTwo, &a.PieceTitle,
		&a.StartingPrice, &currentBid,
		&a.Dimensions, &a.FramedText, &a.Description,
		&a.StartDate, &a.EndDate, &periodStr, &statusStr,
		&a.ArtistName, &a.ArtistBirthDate, &a.ArtistDeathDate, &a.ArtistAddress,
		&a.ArtistImage, &a.ArtistBio, &a.DateProd,
		&a.Image1, &a.Image2, &a.Image3, &a.Image4, &a.Video,
		&a.BodyStyle, &a.Medium, &a.ColorScheme, &a.Condition, &a.Warranty,
		&a.CategoryID, &a.OwnerID, &a.ViewCount, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if currentBid.Valid {
		amount, err := values.NewMoneyFromString(currentBid.String)
		if err != nil {
			return nil, fmt.Errorf("parsing current_bid: %w", err)
		}
		a.CurrentBid = &amount
	}

	if a.Period, err = auction.ParsePeriod(periodStr); err != nil {
		return nil, err
	}
	if a.Status, err = auction.ParseStatus(statusStr); err != nil {
		return nil, err
	}

	return &a, nil
}

// prefixColumns qualifies the shared column list with a table alias for
// queries that join.
func prefixColumns(alias string) string {
	cols := strings.Split(auctionColumns, ",")
	for i, c := range cols {
		cols[i] = alias + "." + strings.TrimSpace(c)
	}
	return strings.Join(cols, ", ")
}
