package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/signdesk/signdesk/internal/clock"
	"github.com/signdesk/signdesk/internal/vendors/domain"
	"github.com/signdesk/signdesk/internal/vendors/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var testNow = time.Date(2026, time.January, 15, 12, 0, 0, 0, time.UTC)

func setupVendorService(t *testing.T) (domain.Service, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Vendor{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := New(Params{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Clock: clock.NewFakeClock(testNow),
		Repo:  repository.Provide(),
	})
	return svc, db
}

func createVendor(t *testing.T, svc domain.Service, name string, zips []string) domain.Vendor {
	t.Helper()
	vendor, err := svc.Create(context.Background(), domain.CreateVendorRequest{
		Name:         name,
		ServiceAreas: zips,
	})
	require.NoError(t, err)
	return vendor
}

func TestFindByZipMatchesServiceArea(t *testing.T) {
	svc, _ := setupVendorService(t)
	createVendor(t, svc, "North Signs", []string{"98101", "98102"})
	south := createVendor(t, svc, "South Signs", []string{"98201"})

	match, err := svc.FindByZip(context.Background(), "98201")
	require.NoError(t, err)
	require.NotNil(t, match)
	assert.Equal(t, south.ID, match.ID)

	none, err := svc.FindByZip(context.Background(), "12345")
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestFindByZipSkipsInactiveVendors(t *testing.T) {
	svc, db := setupVendorService(t)
	vendor := createVendor(t, svc, "North Signs", []string{"98101"})

	err := db.Model(&domain.Vendor{}).Where("id = ?", vendor.ID).Update("is_active", false).Error
	require.NoError(t, err)

	match, err := svc.FindByZip(context.Background(), "98101")
	require.NoError(t, err)
	assert.Nil(t, match)
}

func TestListFiltersByZip(t *testing.T) {
	svc, _ := setupVendorService(t)
	createVendor(t, svc, "North Signs", []string{"98101"})
	createVendor(t, svc, "Metro Signs", []string{"98101", "98201"})
	createVendor(t, svc, "South Signs", []string{"98201"})

	all, err := svc.List(context.Background(), domain.ListVendorsRequest{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	matched, err := svc.List(context.Background(), domain.ListVendorsRequest{ZipCode: "98101"})
	require.NoError(t, err)
	require.Len(t, matched, 2)
	for _, vendor := range matched {
		assert.True(t, vendor.ServesZip("98101"))
	}
}

func TestUpdateReplacesServiceAreas(t *testing.T) {
	svc, _ := setupVendorService(t)
	vendor := createVendor(t, svc, "North Signs", []string{"98101"})

	zips := []string{"98301", "98302"}
	updated, err := svc.Update(context.Background(), vendor.ID.String(), domain.UpdateVendorRequest{
		ServiceAreas: &zips,
	})
	require.NoError(t, err)
	assert.False(t, updated.ServesZip("98101"))
	assert.True(t, updated.ServesZip("98301"))
}

func TestCreateRejectsBlankName(t *testing.T) {
	svc, _ := setupVendorService(t)

	_, err := svc.Create(context.Background(), domain.CreateVendorRequest{Name: "   "})
	assert.ErrorIs(t, err, domain.ErrInvalidName)
}
