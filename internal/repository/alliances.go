package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/guillomef06/activity-tracker/internal/models"
)

var ErrAllianceNotFound = errors.New("alliance not found")

type AllianceRepository struct {
	db *pgxpool.Pool
}

func NewAllianceRepository(db *pgxpool.Pool) *AllianceRepository {
	return &AllianceRepository{db: db}
}

// GetByID retrieves an alliance by its ID
func (r *AllianceRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Alliance, error) {
	query := `
		SELECT id, name, owner_id, created_at, updated_at
		FROM alliances
		WHERE id = $1
	`

	var alliance models.Alliance
	err := r.db.QueryRow(ctx, query, id).Scan(
		&alliance.ID,
		&alliance.Name,
		&alliance.OwnerID,
		&alliance.CreatedAt,
		&alliance.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAllianceNotFound
		}
		return nil, err
	}

	return &alliance, nil
}

// GetWithStats retrieves an alliance together with member and activity counts
func (r *AllianceRepository) GetWithStats(ctx context.Context, id uuid.UUID) (*models.AllianceWithStats, error) {
	query := `
		SELECT
			a.id, a.name, a.owner_id, a.created_at, a.updated_at,
			(SELECT COUNT(*) FROM user_profiles u WHERE u.alliance_id = a.id) AS member_count,
			(SELECT COUNT(*) FROM activities act WHERE act.alliance_id = a.id) AS total_activities
		FROM alliances a
		WHERE a.id = $1
	`

	var alliance models.AllianceWithStats
	err := r.db.QueryRow(ctx, query, id).Scan(
		&alliance.ID,
		&alliance.Name,
		&alliance.OwnerID,
		&alliance.CreatedAt,
		&alliance.UpdatedAt,
		&alliance.MemberCount,
		&alliance.TotalActivities,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAllianceNotFound
		}
		return nil, err
	}

	return &alliance, nil
}

// Create inserts a new alliance
func (r *AllianceRepository) Create(ctx context.Context, alliance *models.Alliance) error {
	query := `
		INSERT INTO alliances (id, name, owner_id, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	if alliance.ID == uuid.Nil {
		alliance.ID = uuid.New()
	}

	return r.db.QueryRow(ctx, query, alliance.ID, alliance.Name, alliance.OwnerID).
		Scan(&alliance.CreatedAt, &alliance.UpdatedAt)
}

// UpdateName renames an alliance
func (r *AllianceRepository) UpdateName(ctx context.Context, id uuid.UUID, name string) error {
	result, err := r.db.Exec(ctx,
		`UPDATE alliances SET name = $1, updated_at = NOW() WHERE id = $2`,
		name, id,
	)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return ErrAllianceNotFound
	}
	return nil
}

// ListWithStats returns all alliances with aggregate counts, newest first
func (r *AllianceRepository) ListWithStats(ctx context.Context) ([]models.AllianceWithStats, error) {
	query := `
		SELECT
			a.id, a.name, a.owner_id, a.created_at, a.updated_at,
			(SELECT COUNT(*) FROM user_profiles u WHERE u.alliance_id = a.id) AS member_count,
			(SELECT COUNT(*) FROM activities act WHERE act.alliance_id = a.id) AS total_activities
		FROM alliances a
		ORDER BY a.created_at DESC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	alliances := []models.AllianceWithStats{}
	for rows.Next() {
		var alliance models.AllianceWithStats
		err := rows.Scan(
			&alliance.ID,
			&alliance.Name,
			&alliance.OwnerID,
			&alliance.CreatedAt,
			&alliance.UpdatedAt,
			&alliance.MemberCount,
			&alliance.TotalActivities,
		)
		if err != nil {
			return nil, err
		}
		alliances = append(alliances, alliance)
	}

	return alliances, rows.Err()
}
