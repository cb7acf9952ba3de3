package repo

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rentfold/service-core/internal/rental/entity"
	"github.com/rentfold/service-core/pkg/storage"
)

func newTestRepo(t *testing.T) *RentalRepo {
	t.Helper()
	return NewRentalRepo(filepath.Join(t.TempDir(), "rentals.txt"), 400)
}

func sampleRental(id int) entity.Rental {
	return entity.Rental{
		ID:          id,
		HouseID:     5,
		TenantID:    11,
		LandlordID:  4,
		TenantName:  "Ayesha Khan",
		HouseTitle:  "Lakeview Apartment",
		RentalDate:  "2026-08-20",
		MonthlyRent: 18500.00,
		IsActive:    true,
	}
}

func TestCodecRoundTrip(t *testing.T) {
	rec := sampleRental(3)
	rec.IsActive = false

	got, ok := parseRental(formatRental(&rec))
	require.True(t, ok)
	require.Equal(t, rec, got)
}

func TestActiveFinders(t *testing.T) {
	r := newTestRepo(t)
	active := sampleRental(1)
	ended := sampleRental(2)
	ended.HouseID = 6
	ended.IsActive = false
	require.NoError(t, r.Insert(active))
	require.NoError(t, r.Insert(ended))

	require.True(t, r.HasActiveByHouse(5))
	require.False(t, r.HasActiveByHouse(6))
	require.True(t, r.HasActiveByTenantAndHouse(11, 5))
	require.False(t, r.HasActiveByTenantAndHouse(11, 6))
	require.False(t, r.HasActiveByTenantAndHouse(12, 5))
}

func TestListByTenantAndLandlord(t *testing.T) {
	r := newTestRepo(t)
	r1 := sampleRental(1)
	r2 := sampleRental(2)
	r2.TenantID = 12
	r2.LandlordID = 9
	require.NoError(t, r.Insert(r1))
	require.NoError(t, r.Insert(r2))

	require.Len(t, r.ListByTenant(11), 1)
	require.Len(t, r.ListByTenant(12), 1)
	require.Empty(t, r.ListByTenant(99))
	require.Len(t, r.ListByLandlord(4), 1)
	require.Len(t, r.ListByLandlord(9), 1)
}

func TestSaveThenLoadEquality(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rentals.txt")
	r := NewRentalRepo(path, 400)
	r1 := sampleRental(1)
	r2 := sampleRental(2)
	r2.IsActive = false
	require.NoError(t, r.Insert(r1))
	require.NoError(t, r.Insert(r2))
	require.NoError(t, r.Save())

	r2nd := NewRentalRepo(path, 400)
	require.NoError(t, r2nd.Load())
	require.Equal(t, []entity.Rental{r1, r2}, r2nd.List())
}

func TestLoadSkipsMalformedLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rentals.txt")
	content := "1|5|11|4|Ayesha Khan|Lakeview Apartment|2026-08-20|18500.00|1\n" +
		"2|5|11|4|missing fields\n" +
		"3|5|12|4|Bashir Mia|Lakeview Apartment|2026-08-21|18500.00|notabool\n" +
		"4|6|12|4|Bashir Mia|Garden Flat|2026-08-22|9000.00|0\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	r := NewRentalRepo(path, 400)
	require.NoError(t, r.Load())
	require.Equal(t, 2, r.Count())

	_, err := r.GetByID(1)
	require.NoError(t, err)
	_, err = r.GetByID(4)
	require.NoError(t, err)
	_, err = r.GetByID(3)
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestUpdateEndsRental(t *testing.T) {
	r := newTestRepo(t)
	require.NoError(t, r.Insert(sampleRental(1)))
	require.NoError(t, r.Update(1, func(rec *entity.Rental) {
		rec.IsActive = false
	}))
	got, err := r.GetByID(1)
	require.NoError(t, err)
	require.False(t, got.IsActive)
}
