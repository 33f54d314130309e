package memstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medizo/models"
	"medizo/store"
)

func TestUserStoreDuplicateEmail(t *testing.T) {
	s := NewUserStore()
	ctx := context.Background()

	u := models.User{Name: "Asha", Email: "asha@example.com", Role: models.RoleUser}
	require.NoError(t, s.Create(ctx, &u))
	assert.NotEmpty(t, u.ID)

	dup := models.User{Name: "Other", Email: "asha@example.com", Role: models.RoleUser}
	assert.ErrorIs(t, s.Create(ctx, &dup), store.ErrDuplicateEmail)
}

func TestUserStoreLookups(t *testing.T) {
	s := NewUserStore()
	ctx := context.Background()

	u := models.User{Name: "Asha", Email: "asha@example.com", Role: models.RoleUser}
	require.NoError(t, s.Create(ctx, &u))

	byEmail, err := s.GetByEmail(ctx, "asha@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byEmail.ID)

	byID, err := s.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Asha", byID.Name)

	_, err = s.GetByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, store.ErrNotFound)

	users, err := s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}
