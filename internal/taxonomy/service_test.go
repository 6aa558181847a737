package taxonomy

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/arjunpatwa/qrmenu-backend/pkg/db/models"
	pkgerrors "github.com/arjunpatwa/qrmenu-backend/pkg/errors"
)

type stubDishCounter struct {
	counts map[string]int64
}

func (s *stubDishCounter) CountByCategory(_ context.Context, _ uuid.UUID, category string) (int64, error) {
	if s.counts == nil {
		return 0, nil
	}
	return s.counts[category], nil
}

func newTestService(t *testing.T, dishes dishCounter) (Service, *gorm.DB) {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	// Hand-written DDL: the production models carry Postgres defaults
	// (gen_random_uuid) that sqlite cannot parse.
	categories := `
CREATE TABLE IF NOT EXISTS categories (
  id TEXT PRIMARY KEY,
  restaurant_id TEXT NOT NULL,
  name TEXT NOT NULL,
  position INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
);`
	subcategories := `
CREATE TABLE IF NOT EXISTS subcategories (
  id TEXT PRIMARY KEY,
  category_id TEXT NOT NULL,
  name TEXT NOT NULL,
  position INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
);`
	tastes := `
CREATE TABLE IF NOT EXISTS tastes (
  id TEXT PRIMARY KEY,
  restaurant_id TEXT NOT NULL,
  name TEXT NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, conn.Exec(categories).Error)
	require.NoError(t, conn.Exec(subcategories).Error)
	require.NoError(t, conn.Exec(tastes).Error)

	if dishes == nil {
		dishes = &stubDishCounter{}
	}
	svc, err := NewService(NewRepository(conn), dishes)
	require.NoError(t, err)
	return svc, conn
}

func TestCategoryLifecycle(t *testing.T) {
	svc, _ := newTestService(t, nil)
	ctx := context.Background()
	restaurantID := uuid.New()

	created, err := svc.CreateCategory(ctx, restaurantID, "  South Indian ", 1)
	require.NoError(t, err)
	require.Equal(t, "South Indian", created.Name, "labels are trimmed")

	_, err = svc.CreateCategory(ctx, restaurantID, "South Indian", 2)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeConflict, typed.Code(), "duplicate names conflict")

	// Same name under a different restaurant is fine.
	_, err = svc.CreateCategory(ctx, uuid.New(), "South Indian", 1)
	require.NoError(t, err)

	listed, err := svc.ListCategories(ctx, restaurantID)
	require.NoError(t, err)
	require.Len(t, listed, 1)

	require.NoError(t, svc.DeleteCategory(ctx, restaurantID, created.ID))
	listed, err = svc.ListCategories(ctx, restaurantID)
	require.NoError(t, err)
	require.Empty(t, listed)
}

func TestDeleteCategoryInUseIsStateConflict(t *testing.T) {
	counter := &stubDishCounter{counts: map[string]int64{"South Indian": 3}}
	svc, _ := newTestService(t, counter)
	ctx := context.Background()
	restaurantID := uuid.New()

	created, err := svc.CreateCategory(ctx, restaurantID, "South Indian", 1)
	require.NoError(t, err)

	err = svc.DeleteCategory(ctx, restaurantID, created.ID)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeStateConflict, typed.Code())
}

func TestSubcategoryLifecycle(t *testing.T) {
	svc, _ := newTestService(t, nil)
	ctx := context.Background()
	restaurantID := uuid.New()

	category, err := svc.CreateCategory(ctx, restaurantID, "South Indian", 1)
	require.NoError(t, err)

	sub, err := svc.CreateSubcategory(ctx, restaurantID, category.ID, "Dosas", 1)
	require.NoError(t, err)

	_, err = svc.CreateSubcategory(ctx, restaurantID, category.ID, "Dosas", 2)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeConflict, typed.Code())

	ok, err := svc.HasSubcategory(ctx, restaurantID, "South Indian", "Dosas")
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, svc.DeleteSubcategory(ctx, restaurantID, category.ID, sub.ID))

	ok, err = svc.HasSubcategory(ctx, restaurantID, "South Indian", "Dosas")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestSubcategoryUnknownCategory(t *testing.T) {
	svc, _ := newTestService(t, nil)
	ctx := context.Background()

	_, err := svc.CreateSubcategory(ctx, uuid.New(), uuid.New(), "Dosas", 1)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestTasteLifecycle(t *testing.T) {
	svc, _ := newTestService(t, nil)
	ctx := context.Background()
	restaurantID := uuid.New()

	created, err := svc.CreateTaste(ctx, restaurantID, "Spicy")
	require.NoError(t, err)

	_, err = svc.CreateTaste(ctx, restaurantID, "Spicy")
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeConflict, typed.Code())

	ok, err := svc.HasTaste(ctx, restaurantID, "Spicy")
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, svc.DeleteTaste(ctx, restaurantID, created.ID))
	err = svc.DeleteTaste(ctx, restaurantID, created.ID)
	typed = pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestListCategoriesOrdersByPosition(t *testing.T) {
	svc, conn := newTestService(t, nil)
	ctx := context.Background()
	restaurantID := uuid.New()

	_, err := svc.CreateCategory(ctx, restaurantID, "Desserts", 3)
	require.NoError(t, err)
	_, err = svc.CreateCategory(ctx, restaurantID, "Starters", 1)
	require.NoError(t, err)
	_, err = svc.CreateCategory(ctx, restaurantID, "Mains", 2)
	require.NoError(t, err)

	// positions drive ordering regardless of insertion time
	var count int64
	require.NoError(t, conn.Model(&models.Category{}).Where("restaurant_id = ?", restaurantID).Count(&count).Error)
	require.EqualValues(t, 3, count)

	listed, err := svc.ListCategories(ctx, restaurantID)
	require.NoError(t, err)
	require.Len(t, listed, 3)
	require.Equal(t, []string{"Starters", "Mains", "Desserts"}, []string{listed[0].Name, listed[1].Name, listed[2].Name})
}
