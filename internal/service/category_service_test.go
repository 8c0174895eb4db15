package service

import (
	"context"
	"testing"

	"github.com/YanislavD/EventApp/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCategory_TrimsAndStores(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	category, err := env.categories.Create(ctx, "  Music  ")
	require.NoError(t, err)
	assert.Equal(t, "Music", category.Name)
	assert.True(t, category.Active)
}

func TestCreateCategory_Blank(t *testing.T) {
	env := newTestEnv(t)

	var validation *domain.ValidationError
	_, err := env.categories.Create(context.Background(), "   ")
	assert.ErrorAs(t, err, &validation)
}

func TestCreateCategory_DuplicateCaseInsensitive(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.categories.Create(ctx, "Music")
	require.NoError(t, err)

	_, err = env.categories.Create(ctx, "music")
	assert.ErrorIs(t, err, domain.ErrCategoryExists)

	_, err = env.categories.Create(ctx, "MUSIC")
	assert.ErrorIs(t, err, domain.ErrCategoryExists)
}

func TestListActive_ExcludesDeactivated(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	music := env.createCategory(t, "Music")
	env.createCategory(t, "Art")

	require.NoError(t, env.categories.Deactivate(ctx, music.ID))

	categories, err := env.categories.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 1)
	assert.Equal(t, "Art", categories[0].Name)
}

func TestGetActive_DeactivatedBehavesAsMissing(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	music := env.createCategory(t, "Music")
	require.NoError(t, env.categories.Deactivate(ctx, music.ID))

	_, err := env.categories.GetActive(ctx, music.ID)
	assert.ErrorIs(t, err, domain.ErrCategoryNotFound)

	require.NoError(t, env.categories.Activate(ctx, music.ID))
	got, err := env.categories.GetActive(ctx, music.ID)
	require.NoError(t, err)
	assert.Equal(t, music.ID, got.ID)
}

func TestSetActive_UnknownCategory(t *testing.T) {
	env := newTestEnv(t)

	err := env.categories.Deactivate(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrCategoryNotFound)
}

func TestDeactivate_KeepsExistingEventsIntact(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	creator := env.createUser(t, "creator")
	category := env.createCategory(t, "Music")

	event, err := env.events.Create(ctx, validInput(category.ID), creator)
	require.NoError(t, err)

	require.NoError(t, env.categories.Deactivate(ctx, category.ID))

	got, err := env.events.GetByID(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, category.ID, got.CategoryID)
}
