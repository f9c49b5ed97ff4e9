package store_test

import (
	"context"
	"errors"
	"testing"

	"github.com/changhyeonkim/carwash-cms/go-api-server/internal/model"
	"github.com/changhyeonkim/carwash-cms/go-api-server/internal/shared/testutil"
	"github.com/changhyeonkim/carwash-cms/go-api-server/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupGormGateway(t *testing.T) (*store.GormGateway, *gorm.DB) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	t.Cleanup(func() {
		testutil.CleanupTestDB(t, db)
	})

	return store.NewGormGateway(db), db
}

func TestGormGateway_CreateAndRead(t *testing.T) {
	gateway, _ := setupGormGateway(t)
	ctx := context.Background()

	id, err := gateway.Create(ctx, "B001", "Alice", "2019 Honda Civic", true, false, "prefers hand dry")
	require.NoError(t, err)
	assert.Equal(t, "B001", id)

	member, err := gateway.Read(ctx, "B001")
	require.NoError(t, err)
	require.NotNil(t, member)
	assert.Equal(t, model.Member{
		ID:           "B001",
		Name:         "Alice",
		Car:          "2019 Honda Civic",
		IsActive:     true,
		ValidPayment: false,
		Notes:        "prefers hand dry",
	}, *member)
}

func TestGormGateway_CreateOverwritesExistingID(t *testing.T) {
	gateway, _ := setupGormGateway(t)
	ctx := context.Background()

	_, err := gateway.Create(ctx, "D002", "Bob", "Old car", true, true, "first")
	require.NoError(t, err)

	// Upsert: a second create on the same key overwrites every field
	_, err = gateway.Create(ctx, "D002", "Bobby", "New car", false, false, "")
	require.NoError(t, err)

	all, err := gateway.ReadAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Bobby", all[0].Name)
	assert.Equal(t, "New car", all[0].Car)
	assert.False(t, all[0].IsActive)
	assert.False(t, all[0].ValidPayment)
	assert.Empty(t, all[0].Notes)
}

func TestGormGateway_ReadMissingReturnsNil(t *testing.T) {
	gateway, _ := setupGormGateway(t)

	member, err := gateway.Read(context.Background(), "Z999")
	assert.NoError(t, err)
	assert.Nil(t, member)
}

func TestGormGateway_ReadAllEmptyCollection(t *testing.T) {
	gateway, db := setupGormGateway(t)
	testutil.SeedMembers(t, db, model.Member{ID: "B001", Name: "Alice"})
	testutil.TruncateTable(t, db, "users")

	all, err := gateway.ReadAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestGormGateway_ReadByPaymentStatus(t *testing.T) {
	gateway, db := setupGormGateway(t)
	testutil.SeedMembers(t, db,
		model.Member{ID: "B001", Name: "Alice", ValidPayment: true},
		model.Member{ID: "D002", Name: "Bob", ValidPayment: false},
		model.Member{ID: "U003", Name: "Charlie", ValidPayment: false},
	)

	unpaid, err := gateway.ReadByPaymentStatus(context.Background(), false)
	require.NoError(t, err)

	ids := make([]string, 0, len(unpaid))
	for _, m := range unpaid {
		ids = append(ids, m.ID)
	}
	assert.ElementsMatch(t, []string{"D002", "U003"}, ids)
}

func TestGormGateway_UpdateMergesOnlySuppliedFields(t *testing.T) {
	gateway, db := setupGormGateway(t)
	testutil.SeedMembers(t, db, model.Member{
		ID: "U003", Name: "Charlie", Car: "Jeep", IsActive: true, ValidPayment: true, Notes: "vip",
	})
	ctx := context.Background()

	car := "Ford F-150"
	paid := false
	id, err := gateway.Update(ctx, "U003", model.MemberPatch{Car: &car, ValidPayment: &paid})
	require.NoError(t, err)
	assert.Equal(t, "U003", id)

	member, err := gateway.Read(ctx, "U003")
	require.NoError(t, err)
	require.NotNil(t, member)
	assert.Equal(t, "Charlie", member.Name)
	assert.Equal(t, "Ford F-150", member.Car)
	assert.True(t, member.IsActive)
	assert.False(t, member.ValidPayment)
	assert.Equal(t, "vip", member.Notes)
}

func TestGormGateway_UpdateMissingReturnsNotFound(t *testing.T) {
	gateway, _ := setupGormGateway(t)

	car := "X"
	_, err := gateway.Update(context.Background(), "Z999", model.MemberPatch{Car: &car})
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.False(t, errors.Is(err, store.ErrStore))
}

func TestGormGateway_Delete(t *testing.T) {
	gateway, db := setupGormGateway(t)
	testutil.SeedMembers(t, db, model.Member{ID: "B001", Name: "Alice"})
	ctx := context.Background()

	id, err := gateway.Delete(ctx, "B001")
	require.NoError(t, err)
	assert.Equal(t, "B001", id)

	member, err := gateway.Read(ctx, "B001")
	assert.NoError(t, err)
	assert.Nil(t, member)

	_, err = gateway.Delete(ctx, "B001")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestGormGateway_TransportFailureWrapsStoreError(t *testing.T) {
	gateway, db := setupGormGateway(t)

	// Closing the pool makes every following call fail at the driver level
	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	_, err = gateway.ReadAll(context.Background())
	assert.ErrorIs(t, err, store.ErrStore)

	_, err = gateway.Read(context.Background(), "B001")
	assert.ErrorIs(t, err, store.ErrStore)

	_, err = gateway.Delete(context.Background(), "B001")
	assert.ErrorIs(t, err, store.ErrStore)
}
