// Package geo holds the geographic reference taxonomy: regions contain
// districts, districts contain neighborhoods, and addresses reference all
// three plus a house field.
package geo

import "github.com/google/uuid"

type Region struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type District struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	RegionID uuid.UUID `json:"region"`
}

type Neighborhood struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	DistrictID uuid.UUID `json:"district"`
}

type Address struct {
	ID             uuid.UUID `json:"id"`
	RegionID       uuid.UUID `json:"region"`
	DistrictID     uuid.UUID `json:"district"`
	NeighborhoodID uuid.UUID `json:"neighborhood"`
	House          string    `json:"house"`
}
