package repository

import (
	"context"
	"errors"
	"fmt"

	"neighborhelp-backend/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const selectRequestDetail = `
		SELECT r.id, r.profile_id, p.name, p.email, r.request_type, r.request_date,
			r.location, r.summary, r.created_at
		FROM requests r
		JOIN profiles p ON p.id = r.profile_id`

// RequestRepository handles database operations for pending help requests
type RequestRepository struct {
	db DB
}

// NewRequestRepository creates a new request repository
func NewRequestRepository(db DB) *RequestRepository {
	return &RequestRepository{db: db}
}

// CreateWithProfile inserts the requester profile and the request it owns
// in one transaction
func (r *RequestRepository) CreateWithProfile(ctx context.Context, profile *models.Profile, request *models.HelpRequest) error {
	return withTx(ctx, r.db, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			INSERT INTO profiles (name, email)
			VALUES ($1, $2)
			RETURNING id, created_at`,
			profile.Name, profile.Email,
		).Scan(&profile.ID, &profile.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to create profile: %w", err)
		}

		request.ProfileID = profile.ID
		err = tx.QueryRow(ctx, `
			INSERT INTO requests (profile_id, request_type, request_date, location, summary)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id, created_at`,
			request.ProfileID,
			request.RequestType,
			request.RequestDate,
			request.Location,
			request.Summary,
		).Scan(&request.ID, &request.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}

		return nil
	})
}

// ListDetails retrieves every pending request with its profile, newest first
func (r *RequestRepository) ListDetails(ctx context.Context) ([]*models.RequestDetail, error) {
	rows, err := r.db.Query(ctx, selectRequestDetail+`
		ORDER BY r.created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list requests: %w", err)
	}
	defer rows.Close()

	var details []*models.RequestDetail
	for rows.Next() {
		detail, err := scanRequestDetail(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan request: %w", err)
		}
		details = append(details, detail)
	}

	return details, rows.Err()
}

// GetDetail retrieves one pending request with its profile
func (r *RequestRepository) GetDetail(ctx context.Context, id uuid.UUID) (*models.RequestDetail, error) {
	detail, err := scanRequestDetail(r.db.QueryRow(ctx, selectRequestDetail+`
		WHERE r.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get request: %w", err)
	}

	return detail, nil
}

// Accept moves a pending request into the neighbors log.
//
// The request row is locked, copied into neighbors and then deleted, all in
// one transaction. A concurrent Accept on the same id waits on the lock and
// then finds nothing, so one request never yields two neighbors.
func (r *RequestRepository) Accept(ctx context.Context, id uuid.UUID) (*models.Neighbor, error) {
	var neighbor *models.Neighbor

	err := withTx(ctx, r.db, func(tx pgx.Tx) error {
		detail, err := scanRequestDetail(tx.QueryRow(ctx, selectRequestDetail+`
		WHERE r.id = $1
		FOR UPDATE OF r`, id))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrNotFound
			}
			return fmt.Errorf("failed to get request: %w", err)
		}

		n := models.NeighborFromDetail(detail)
		err = tx.QueryRow(ctx, `
			INSERT INTO neighbors (name, email, request_type, request_date, location, summary)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id, accepted_at`,
			n.Name,
			n.Email,
			n.RequestType,
			n.RequestDate,
			n.Location,
			n.Summary,
		).Scan(&n.ID, &n.AcceptedAt)
		if err != nil {
			return fmt.Errorf("failed to create neighbor: %w", err)
		}

		cmdTag, err := tx.Exec(ctx, `DELETE FROM requests WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("failed to delete request: %w", err)
		}
		if cmdTag.RowsAffected() != 1 {
			return ErrNotFound
		}

		neighbor = n
		return nil
	})
	if err != nil {
		return nil, err
	}

	return neighbor, nil
}

func scanRequestDetail(row pgx.Row) (*models.RequestDetail, error) {
	detail := &models.RequestDetail{}
	err := row.Scan(
		&detail.ID,
		&detail.ProfileID,
		&detail.Name,
		&detail.Email,
		&detail.RequestType,
		&detail.RequestDate,
		&detail.Location,
		&detail.Summary,
		&detail.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return detail, nil
}
