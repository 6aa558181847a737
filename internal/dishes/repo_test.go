package dishes

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/arjunpatwa/qrmenu-backend/pkg/db/models"
	"github.com/arjunpatwa/qrmenu-backend/pkg/pagination"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	// Hand-written DDL: the production models carry Postgres defaults
	// (gen_random_uuid) that sqlite cannot parse.
	ddl := `
CREATE TABLE IF NOT EXISTS dishes (
  id TEXT PRIMARY KEY,
  restaurant_id TEXT NOT NULL,
  name TEXT NOT NULL,
  description TEXT,
  price NUMERIC NOT NULL,
  image_url TEXT,
  category TEXT NOT NULL,
  subcategory TEXT,
  taste TEXT,
  is_veg INTEGER NOT NULL DEFAULT 0,
  is_available INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, conn.Exec(ddl).Error)
	return conn
}

func seedDish(t *testing.T, db *gorm.DB, restaurantID uuid.UUID, name, category string, available bool, createdAt time.Time) *models.Dish {
	t.Helper()
	dish := &models.Dish{
		ID:           uuid.New(),
		RestaurantID: restaurantID,
		Name:         name,
		Price:        100,
		Category:     category,
		IsAvailable:  available,
		CreatedAt:    createdAt,
	}
	require.NoError(t, db.Create(dish).Error)
	return dish
}

func TestRepositoryListFilters(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	restaurantID := uuid.New()
	base := time.Now().Add(-time.Hour)

	seedDish(t, db, restaurantID, "Masala Dosa", "South Indian", true, base)
	seedDish(t, db, restaurantID, "Paneer Tikka", "Starters", true, base.Add(time.Minute))
	seedDish(t, db, restaurantID, "Gulab Jamun", "Desserts", false, base.Add(2*time.Minute))
	seedDish(t, db, uuid.New(), "Other Tenant Dish", "South Indian", true, base.Add(3*time.Minute))

	rows, _, err := repo.List(ctx, restaurantID, ListFilter{})
	require.NoError(t, err)
	require.Len(t, rows, 3, "listing is tenant scoped")

	rows, _, err = repo.List(ctx, restaurantID, ListFilter{Category: "South Indian"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "Masala Dosa", rows[0].Name)

	rows, _, err = repo.List(ctx, restaurantID, ListFilter{OnlyAvailable: true})
	require.NoError(t, err)
	require.Len(t, rows, 2)

	rows, _, err = repo.List(ctx, restaurantID, ListFilter{Query: "DOSA"})
	require.NoError(t, err)
	require.Len(t, rows, 1, "search is case-insensitive")
}

func TestRepositoryListPagination(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	restaurantID := uuid.New()
	base := time.Now().Add(-time.Hour)

	for i := 0; i < 5; i++ {
		seedDish(t, db, restaurantID, "Dish", "South Indian", true, base.Add(time.Duration(i)*time.Minute))
	}

	page1, next, err := repo.List(ctx, restaurantID, ListFilter{Page: pagination.Params{Limit: 2}})
	require.NoError(t, err)
	require.Len(t, page1, 2)
	require.NotEmpty(t, next)

	page2, next2, err := repo.List(ctx, restaurantID, ListFilter{Page: pagination.Params{Limit: 2, Cursor: next}})
	require.NoError(t, err)
	require.Len(t, page2, 2)
	require.NotEmpty(t, next2)
	require.NotEqual(t, page1[0].ID, page2[0].ID)

	page3, next3, err := repo.List(ctx, restaurantID, ListFilter{Page: pagination.Params{Limit: 2, Cursor: next2}})
	require.NoError(t, err)
	require.Len(t, page3, 1)
	require.Empty(t, next3)
}

func TestRepositoryDeleteScopedToRestaurant(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	restaurantID := uuid.New()

	dish := seedDish(t, db, restaurantID, "Masala Dosa", "South Indian", true, time.Now())

	err := repo.Delete(ctx, uuid.New(), dish.ID)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound, "foreign tenant cannot delete")

	require.NoError(t, repo.Delete(ctx, restaurantID, dish.ID))

	_, err = repo.FindForRestaurant(ctx, restaurantID, dish.ID)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
