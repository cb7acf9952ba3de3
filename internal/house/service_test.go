package house

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rentfold/service-core/internal/house/entity"
	houserepo "github.com/rentfold/service-core/internal/house/repo"
	rentalentity "github.com/rentfold/service-core/internal/rental/entity"
	rentalrepo "github.com/rentfold/service-core/internal/rental/repo"
	userentity "github.com/rentfold/service-core/internal/user/entity"
	"github.com/rentfold/service-core/pkg/storage"
)

func newTestService(t *testing.T) (*Service, *houserepo.HouseRepo, *rentalrepo.RentalRepo) {
	t.Helper()
	dir := t.TempDir()
	houses := houserepo.NewHouseRepo(filepath.Join(dir, "houses.txt"), 200)
	rentals := rentalrepo.NewRentalRepo(filepath.Join(dir, "rentals.txt"), 400)
	return NewService(houses, rentals, zap.NewNop().Sugar()), houses, rentals
}

func landlord() *userentity.User {
	return &userentity.User{
		ID:       4,
		Username: "rahim",
		FullName: "Rahim Uddin",
		Role:     userentity.RoleLandlord,
		IsActive: true,
	}
}

func validInput() CreateInput {
	return CreateInput{
		Title:       "Lakeview Apartment",
		Address:     "12 Lake Road",
		City:        "Dhaka",
		Area:        "Dhanmondi",
		Bedrooms:    3,
		Bathrooms:   2,
		Rent:        18500,
		Description: "South facing, third floor",
	}
}

func TestCreateSnapshotsOwner(t *testing.T) {
	s, _, _ := newTestService(t)
	h, err := s.Create(landlord(), validInput())
	require.NoError(t, err)
	require.Equal(t, 1, h.ID)
	require.Equal(t, 4, h.LandlordID)
	require.Equal(t, "Rahim Uddin", h.LandlordName)
	require.Equal(t, entity.StatusAvailable, h.Status)
	require.NotEmpty(t, h.DateAdded)
}

func TestCreateValidation(t *testing.T) {
	s, _, _ := newTestService(t)

	in := validInput()
	in.Title = ""
	_, err := s.Create(landlord(), in)
	require.ErrorIs(t, err, ErrValidation)

	in = validInput()
	in.Bedrooms = 51
	_, err = s.Create(landlord(), in)
	require.ErrorIs(t, err, ErrValidation)

	in = validInput()
	in.Bathrooms = -1
	_, err = s.Create(landlord(), in)
	require.ErrorIs(t, err, ErrValidation)

	in = validInput()
	in.Rent = -100
	_, err = s.Create(landlord(), in)
	require.ErrorIs(t, err, ErrValidation)

	in = validInput()
	in.Description = "has|pipe"
	_, err = s.Create(landlord(), in)
	require.ErrorIs(t, err, ErrValidation)
}

func TestUpdatePartial(t *testing.T) {
	s, _, _ := newTestService(t)
	h, err := s.Create(landlord(), validInput())
	require.NoError(t, err)

	title := "Renovated Lakeview"
	rent := 19500.0
	got, err := s.Update(4, h.ID, UpdateInput{Title: &title, Rent: &rent})
	require.NoError(t, err)
	require.Equal(t, "Renovated Lakeview", got.Title)
	require.Equal(t, 19500.0, got.Rent)
	// untouched fields keep their values
	require.Equal(t, "Dhanmondi", got.Area)
	require.Equal(t, 3, got.Bedrooms)
}

func TestUpdateRejectsOutOfRange(t *testing.T) {
	s, _, _ := newTestService(t)
	h, err := s.Create(landlord(), validInput())
	require.NoError(t, err)

	bad := 99
	_, err = s.Update(4, h.ID, UpdateInput{Bedrooms: &bad})
	require.ErrorIs(t, err, ErrValidation)
}

func TestUpdateNotOwner(t *testing.T) {
	s, _, _ := newTestService(t)
	h, err := s.Create(landlord(), validInput())
	require.NoError(t, err)

	title := "Hijacked"
	_, err = s.Update(99, h.ID, UpdateInput{Title: &title})
	require.ErrorIs(t, err, ErrNotOwner)
}

func TestDeleteGuardedByActiveRental(t *testing.T) {
	s, houses, rentals := newTestService(t)
	h, err := s.Create(landlord(), validInput())
	require.NoError(t, err)

	require.NoError(t, rentals.Insert(rentalentity.Rental{
		ID: 1, HouseID: h.ID, TenantID: 11, LandlordID: 4, IsActive: true,
	}))
	require.ErrorIs(t, s.Delete(4, h.ID), ErrHasActiveRental)
	require.Equal(t, 1, houses.Count())

	// an ended rental does not block deletion
	require.NoError(t, rentals.Update(1, func(r *rentalentity.Rental) {
		r.IsActive = false
	}))
	require.NoError(t, s.Delete(4, h.ID))
	_, err = houses.GetByID(h.ID)
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestDeleteNotOwner(t *testing.T) {
	s, _, _ := newTestService(t)
	h, err := s.Create(landlord(), validInput())
	require.NoError(t, err)
	require.ErrorIs(t, s.Delete(99, h.ID), ErrNotOwner)
}

func TestSetStatusUnvalidatedAgainstRentals(t *testing.T) {
	s, _, rentals := newTestService(t)
	h, err := s.Create(landlord(), validInput())
	require.NoError(t, err)

	// an active rental exists, yet the manual transition still succeeds;
	// only the rental lifecycle drives automatic transitions
	require.NoError(t, rentals.Insert(rentalentity.Rental{
		ID: 1, HouseID: h.ID, TenantID: 11, LandlordID: 4, IsActive: true,
	}))
	got, err := s.SetStatus(4, h.ID, entity.StatusAvailable)
	require.NoError(t, err)
	require.Equal(t, entity.StatusAvailable, got.Status)

	got, err = s.SetStatus(4, h.ID, entity.StatusMaintenance)
	require.NoError(t, err)
	require.Equal(t, entity.StatusMaintenance, got.Status)
}

func TestSetStatusRejectsUnknownState(t *testing.T) {
	s, _, _ := newTestService(t)
	h, err := s.Create(landlord(), validInput())
	require.NoError(t, err)
	_, err = s.SetStatus(4, h.ID, entity.Status(7))
	require.ErrorIs(t, err, ErrValidation)
}

func TestListFilters(t *testing.T) {
	s, _, _ := newTestService(t)
	_, err := s.Create(landlord(), validInput())
	require.NoError(t, err)
	other := landlord()
	other.ID = 9
	other.FullName = "Salma Begum"
	_, err = s.Create(other, validInput())
	require.NoError(t, err)

	require.Len(t, s.ListAll(), 2)
	require.Len(t, s.ListByOwner(4), 1)
	require.Len(t, s.ListAvailable(), 2)

	_, err = s.SetStatus(9, 2, entity.StatusMaintenance)
	require.NoError(t, err)
	require.Len(t, s.ListAvailable(), 1)
}
