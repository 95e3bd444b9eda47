package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/artbid/auction-marketplace-backend/internal/domain/geo"
)

// GeoRepository reads the geographic taxonomy.
type GeoRepository struct {
	db querier
}

func NewGeoRepository(pool *pgxpool.Pool) *GeoRepository {
	return &GeoRepository{db: pool}
}

func (r *GeoRepository) Regions(ctx context.Context) ([]*geo.Region, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name FROM regions ORDER BY name`)
	if err != nil {
		return nil, mapError(err, "region")
	}
	defer rows.Close()

	var regions []*geo.Region
	for rows.Next() {
		var region geo.Region
		if err := rows.Scan(&region.ID, &region.Name); err != nil {
			return nil, mapError(err, "region")
		}
		regions = append(regions, &region)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, "region")
	}
	return regions, nil
}

func (r *GeoRepository) Districts(ctx context.Context, regionID *uuid.UUID) ([]*geo.District, error) {
	query := `SELECT id, name, region_id FROM districts`
	var args []any
	if regionID != nil {
		query += ` WHERE region_id = $1`
		args = append(args, *regionID)
	}
	query += ` ORDER BY name`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(err, "district")
	}
	defer rows.Close()

	var districts []*geo.District
	for rows.Next() {
		var d geo.District
		if err := rows.Scan(&d.ID, &d.Name, &d.RegionID); err != nil {
			return nil, mapError(err, "district")
		}
		districts = append(districts, &d)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, "district")
	}
	return districts, nil
}

func (r *GeoRepository) Neighborhoods(ctx context.Context, districtID *uuid.UUID) ([]*geo.Neighborhood, error) {
	query := `SELECT id, name, district_id FROM neighborhoods`
	var args []any
	if districtID != nil {
		query += ` WHERE district_id = $1`
		args = append(args, *districtID)
	}
	query += ` ORDER BY name`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(err, "neighborhood")
	}
	defer rows.Close()

	var neighborhoods []*geo.Neighborhood
	for rows.Next() {
		var n geo.Neighborhood
		if err := rows.Scan(&n.ID, &n.Name, &n.DistrictID); err != nil {
			return nil, mapError(err, "neighborhood")
		}
		neighborhoods = append(neighborhoods, &n)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, "neighborhood")
	}
	return neighborhoods, nil
}
