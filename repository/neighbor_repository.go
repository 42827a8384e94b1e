package repository

import (
	"context"
	"fmt"

	"neighborhelp-backend/models"
)

// NeighborRepository reads the log of accepted requests
type NeighborRepository struct {
	db DB
}

// NewNeighborRepository creates a new neighbor repository
func NewNeighborRepository(db DB) *NeighborRepository {
	return &NeighborRepository{db: db}
}

// List retrieves all neighbor records, most recently accepted first
func (r *NeighborRepository) List(ctx context.Context) ([]*models.Neighbor, error) {
	query := `
		SELECT id, name, email, request_type, request_date, location, summary, accepted_at
		FROM neighbors
		ORDER BY accepted_at DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list neighbors: %w", err)
	}
	defer rows.Close()

	var neighbors []*models.Neighbor
	for rows.Next() {
		n := &models.Neighbor{}
		err := rows.Scan(
			&n.ID,
			&n.Name,
			&n.Email,
			&n.RequestType,
			&n.RequestDate,
			&n.Location,
			&n.Summary,
			&n.AcceptedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan neighbor: %w", err)
		}
		neighbors = append(neighbors, n)
	}

	return neighbors, rows.Err()
}
