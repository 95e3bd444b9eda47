package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/artbid/auction-marketplace-backend/internal/domain/content"
)

// ContentRepository reads site content and stores contact submissions.
type ContentRepository struct {
	db querier
}

func NewContentRepository(pool *pgxpool.Pool) *ContentRepository {
	return &ContentRepository{db: pool}
}

func (r *ContentRepository) Faqs(ctx context.Context) ([]*content.Faq, error) {
	rows, err := r.db.Query(ctx, `SELECT id, question, answer FROM faqs ORDER BY created_at`)
	if err != nil {
		return nil, mapError(err, "faq")
	}
	defer rows.Close()

	var faqs []*content.Faq
	for rows.Next() {
		var f content.Faq
		if err := rows.Scan(&f.ID, &f.Question, &f.Answer); err != nil {
			return nil, mapError(err, "faq")
		}
		faqs = append(faqs, &f)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, "faq")
	}
	return faqs, nil
}

func (r *ContentRepository) About(ctx context.Context) ([]*content.About, error) {
	rows, err := r.db.Query(ctx, `SELECT id, title, description FROM abouts ORDER BY created_at`)
	if err != nil {
		return nil, mapError(err, "about")
	}
	defer rows.Close()

	var abouts []*content.About
	index := make(map[uuid.UUID]*content.About)
	for rows.Next() {
		var a content.About
		if err := rows.Scan(&a.ID, &a.Title, &a.Description); err != nil {
			return nil, mapError(err, "about")
		}
		abouts = append(abouts, &a)
		index[a.ID] = &a
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, "about")
	}
	if len(abouts) == 0 {
		return abouts, nil
	}

	imageRows, err := r.db.Query(ctx, `SELECT id, about_id, image FROM about_images ORDER BY created_at`)
	if err != nil {
		return nil, mapError(err, "about")
	}
	defer imageRows.Close()

	for imageRows.Next() {
		var img content.AboutImage
		var aboutID uuid.UUID
		if err := imageRows.Scan(&img.ID, &aboutID, &img.Image); err != nil {
			return nil, mapError(err, "about")
		}
		if a, ok := index[aboutID]; ok {
			a.Images = append(a.Images, img)
		}
	}
	if err := imageRows.Err(); err != nil {
		return nil, mapError(err, "about")
	}

	return abouts, nil
}

func (r *ContentRepository) SaveContact(ctx context.Context, c *content.Contact) error {
	query := `
		INSERT INTO contacts (id, name, email, message, created_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := r.db.Exec(ctx, query, c.ID, c.Name, c.Email, c.Message, c.CreatedAt)
	if err != nil {
		return mapError(err, "contact")
	}
	return nil
}
