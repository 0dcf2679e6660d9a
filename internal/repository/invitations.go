package repository

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/guillomef06/activity-tracker/internal/models"
)

var (
	ErrInvitationNotFound = errors.New("invitation not found")
	ErrInvitationExpired  = errors.New("invitation token has expired")
)

// DefaultInvitationTTL is how long a new invitation stays valid unless the
// admin chooses otherwise.
const DefaultInvitationTTL = 7 * 24 * time.Hour

type InvitationRepository struct {
	db *pgxpool.Pool
}

func NewInvitationRepository(db *pgxpool.Pool) *InvitationRepository {
	return &InvitationRepository{db: db}
}

// generateToken returns a 64-character hex token from 32 random bytes
func generateToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// Create inserts a new invitation token for an alliance
func (r *InvitationRepository) Create(ctx context.Context, allianceID, createdBy uuid.UUID, expiresIn time.Duration) (*models.InvitationToken, error) {
	token, err := generateToken()
	if err != nil {
		return nil, err
	}

	query := `
		INSERT INTO invitation_tokens (id, alliance_id, token, expires_at, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING created_at
	`

	invitation := &models.InvitationToken{
		ID:         uuid.New(),
		AllianceID: allianceID,
		Token:      token,
		ExpiresAt:  time.Now().Add(expiresIn),
		CreatedBy:  &createdBy,
	}

	err = r.db.QueryRow(ctx, query,
		invitation.ID,
		invitation.AllianceID,
		invitation.Token,
		invitation.ExpiresAt,
		createdBy,
	).Scan(&invitation.CreatedAt)
	if err != nil {
		return nil, err
	}

	return invitation, nil
}

// GetByToken looks up an invitation by its token value. Expired tokens
// return ErrInvitationExpired. Tokens are multi-use until expiry.
func (r *InvitationRepository) GetByToken(ctx context.Context, token string) (*models.InvitationToken, error) {
	query := `
		SELECT id, alliance_id, token, expires_at, used_at, used_by, created_by, created_at
		FROM invitation_tokens
		WHERE token = $1
	`

	var invitation models.InvitationToken
	err := r.db.QueryRow(ctx, query, token).Scan(
		&invitation.ID,
		&invitation.AllianceID,
		&invitation.Token,
		&invitation.ExpiresAt,
		&invitation.UsedAt,
		&invitation.UsedBy,
		&invitation.CreatedBy,
		&invitation.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInvitationNotFound
		}
		return nil, err
	}

	if invitation.ExpiresAt.Before(time.Now()) {
		return nil, ErrInvitationExpired
	}

	return &invitation, nil
}

// ListByAlliance returns an alliance's invitations with join counts, newest first
func (r *InvitationRepository) ListByAlliance(ctx context.Context, allianceID uuid.UUID) ([]models.InvitationWithStats, error) {
	query := `
		SELECT
			i.id, i.alliance_id, i.token, i.expires_at, i.used_at, i.used_by, i.created_by, i.created_at,
			(SELECT COUNT(*) FROM user_profiles u WHERE u.invitation_token_id = i.id) AS join_count
		FROM invitation_tokens i
		WHERE i.alliance_id = $1
		ORDER BY i.created_at DESC
	`

	rows, err := r.db.Query(ctx, query, allianceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	invitations := []models.InvitationWithStats{}
	for rows.Next() {
		var inv models.InvitationWithStats
		err := rows.Scan(
			&inv.ID,
			&inv.AllianceID,
			&inv.Token,
			&inv.ExpiresAt,
			&inv.UsedAt,
			&inv.UsedBy,
			&inv.CreatedBy,
			&inv.CreatedAt,
			&inv.JoinCount,
		)
		if err != nil {
			return nil, err
		}
		invitations = append(invitations, inv)
	}

	return invitations, rows.Err()
}

// Revoke expires an invitation immediately
func (r *InvitationRepository) Revoke(ctx context.Context, allianceID, invitationID uuid.UUID) error {
	result, err := r.db.Exec(ctx,
		`UPDATE invitation_tokens SET expires_at = NOW() WHERE id = $1 AND alliance_id = $2`,
		invitationID, allianceID,
	)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return ErrInvitationNotFound
	}
	return nil
}

// MarkUsed records the most recent join through a token
func (r *InvitationRepository) MarkUsed(ctx context.Context, invitationID, userID uuid.UUID) error {
	_, err := r.db.Exec(ctx,
		`UPDATE invitation_tokens SET used_at = NOW(), used_by = $1 WHERE id = $2`,
		userID, invitationID,
	)
	return err
}
