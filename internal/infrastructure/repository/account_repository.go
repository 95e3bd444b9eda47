package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/artbid/auction-marketplace-backend/internal/domain/account"
)

// AccountRepository reads user identities for auth resolution.
type AccountRepository struct {
	db querier
}

func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{db: pool}
}

const userColumns = `
	id, username, email, full_name, phone, bio, image, address_id,
	hashed_password, is_active, is_staff, created_at, updated_at`

func (r *AccountRepository) GetByID(ctx context.Context, id uuid.UUID) (*account.User, error) {
	query := `SELECT` + userColumns + ` FROM users WHERE id = $1`
	return r.scanUser(r.db.QueryRow(ctx, query, id))
}

func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*account.User, error) {
	query := `SELECT` + userColumns + ` FROM users WHERE email = $1`
	return r.scanUser(r.db.QueryRow(ctx, query, email))
}

func (r *AccountRepository) scanUser(row interface{ Scan(dest ...any) error }) (*account.User, error) {
	var u account.User
	err := row.Scan(
		&u.ID, &u.Username, &u.Email, &u.FullName, &u.Phone, &u.Bio, &u.Image, &u.AddressID,
		&u.HashedPassword, &u.IsActive, &u.IsStaff, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, mapError(err, "user")
	}
	return &u, nil
}
