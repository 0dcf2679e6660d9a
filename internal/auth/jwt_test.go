package auth

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTService_RoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret", "activity-tracker")

	userID := uuid.New()
	allianceID := uuid.New()

	token, err := svc.GenerateToken(userID, &allianceID, "alice", "admin")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	require.NotNil(t, claims.AllianceID)
	assert.Equal(t, allianceID, *claims.AllianceID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "admin", claims.Role)
}

func TestJWTService_SuperAdminHasNoAlliance(t *testing.T) {
	svc := NewJWTService("test-secret", "activity-tracker")

	token, err := svc.GenerateToken(uuid.New(), nil, "root", "super_admin")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Nil(t, claims.AllianceID)
}

func TestJWTService_RejectsWrongSecret(t *testing.T) {
	svc := NewJWTService("test-secret", "activity-tracker")
	other := NewJWTService("other-secret", "activity-tracker")

	token, err := svc.GenerateToken(uuid.New(), nil, "alice", "member")
	require.NoError(t, err)

	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTService_RejectsGarbage(t *testing.T) {
	svc := NewJWTService("test-secret", "activity-tracker")
	_, err := svc.ValidateToken("not-a-token")
	assert.Error(t, err)
}
