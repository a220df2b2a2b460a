package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/judn/backend/internal/domain/identity"
	"github.com/judn/backend/internal/domain/shared"
	"github.com/judn/backend/internal/infrastructure/persistence/models"
)

func setupActivityTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&models.ActivityModel{})
	require.NoError(t, err)

	return db
}

func TestActivityRepository_AppendAndFindAll(t *testing.T) {
	db := setupActivityTestDB(t)
	repo := NewGormActivityRepository(db)
	ctx := context.Background()

	actorID := uuid.New()
	otherActor := uuid.New()

	entries := []*identity.Activity{
		identity.NewActivity(actorID, identity.RoleOrderManager, "orders.update", "orders/JUDN-ABC123-XYZ01", "PUT /api/v1/admin/orders/1"),
		identity.NewActivity(actorID, identity.RoleOrderManager, "orders.update", "orders/JUDN-ABC123-XYZ02", "PUT /api/v1/admin/orders/2"),
		identity.NewActivity(otherActor, identity.RoleAdmin, "users.create", "users", "POST /api/v1/admin/users"),
	}
	for _, entry := range entries {
		require.NoError(t, repo.Append(ctx, entry))
	}

	t.Run("filters by actor", func(t *testing.T) {
		filter := identity.ActivityFilter{Filter: shared.DefaultFilter(), ActorID: &actorID}

		found, err := repo.FindAll(ctx, filter)
		require.NoError(t, err)
		assert.Len(t, found, 2)
		for _, entry := range found {
			assert.Equal(t, actorID, entry.ActorID)
		}

		count, err := repo.Count(ctx, filter)
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)
	})

	t.Run("filters by action", func(t *testing.T) {
		filter := identity.ActivityFilter{Filter: shared.DefaultFilter(), Action: "users.create"}

		found, err := repo.FindAll(ctx, filter)
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, "users", found[0].Resource)
		assert.Equal(t, identity.RoleAdmin, found[0].ActorRole)
	})

	t.Run("time window excludes older entries", func(t *testing.T) {
		future := time.Now().Add(time.Hour)
		filter := identity.ActivityFilter{Filter: shared.DefaultFilter(), From: &future}

		found, err := repo.FindAll(ctx, filter)
		require.NoError(t, err)
		assert.Empty(t, found)
	})

	t.Run("paginates newest first", func(t *testing.T) {
		filter := identity.ActivityFilter{Filter: shared.DefaultFilter()}
		filter.Page = 1
		filter.PageSize = 2
		filter.OrderBy = "timestamp"
		filter.OrderDir = "desc"

		found, err := repo.FindAll(ctx, filter)
		require.NoError(t, err)
		require.Len(t, found, 2)
		assert.True(t, !found[0].Timestamp.Before(found[1].Timestamp))
	})
}

func TestActivityRepository_RejectsUnknownSortField(t *testing.T) {
	db := setupActivityTestDB(t)
	repo := NewGormActivityRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Append(ctx, identity.NewActivity(uuid.New(), identity.RoleAdmin, "users.create", "users", "")))

	filter := identity.ActivityFilter{Filter: shared.DefaultFilter()}
	filter.OrderBy = "timestamp; DROP TABLE activities"

	// Falls back to the default sort column instead of injecting
	found, err := repo.FindAll(ctx, filter)
	require.NoError(t, err)
	assert.Len(t, found, 1)
}
