package house

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/rentfold/service-core/internal/house/entity"
	houserepo "github.com/rentfold/service-core/internal/house/repo"
	rentalrepo "github.com/rentfold/service-core/internal/rental/repo"
	userentity "github.com/rentfold/service-core/internal/user/entity"
	"github.com/rentfold/service-core/pkg/storage"
)

var (
	ErrValidation      = errors.New("validation failed")
	ErrNotOwner        = errors.New("house is not owned by this landlord")
	ErrHasActiveRental = errors.New("house has active rentals")
)

const (
	maxBedrooms  = 50
	maxBathrooms = 50
)

// Service manages the house collection: landlord CRUD, manual status changes
// and the delete guard against active rentals.
type Service struct {
	houses  *houserepo.HouseRepo
	rentals *rentalrepo.RentalRepo
	logger  *zap.SugaredLogger
}

func NewService(houses *houserepo.HouseRepo, rentals *rentalrepo.RentalRepo, logger *zap.SugaredLogger) *Service {
	return &Service{houses: houses, rentals: rentals, logger: logger}
}

// CreateInput carries the fields a landlord supplies for a new listing.
type CreateInput struct {
	Title       string
	Address     string
	City        string
	Area        string
	Bedrooms    int
	Bathrooms   int
	Rent        float64
	Description string
}

// UpdateInput carries a partial edit; nil fields keep their current value.
type UpdateInput struct {
	Title       *string
	Address     *string
	City        *string
	Area        *string
	Bedrooms    *int
	Bathrooms   *int
	Rent        *float64
	Description *string
}

// Create validates the input and appends a new listing owned by the given
// landlord. The owner's name is snapshotted; status starts Available and
// DateAdded is today.
func (s *Service) Create(owner *userentity.User, in CreateInput) (*entity.House, error) {
	if in.Title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}
	if err := validateRanges(in.Bedrooms, in.Bathrooms, in.Rent); err != nil {
		return nil, err
	}
	for _, v := range []string{in.Title, in.Address, in.City, in.Area, in.Description} {
		if !storage.SafeField(v) {
			return nil, fmt.Errorf("%w: field may not contain '|' or line breaks", ErrValidation)
		}
	}

	h := entity.House{
		ID:           s.houses.NextID(),
		Title:        in.Title,
		Address:      in.Address,
		City:         in.City,
		Area:         in.Area,
		Bedrooms:     in.Bedrooms,
		Bathrooms:    in.Bathrooms,
		Rent:         in.Rent,
		Description:  in.Description,
		LandlordID:   owner.ID,
		LandlordName: owner.FullName,
		Status:       entity.StatusAvailable,
		DateAdded:    storage.Today(),
	}
	if err := s.houses.Insert(h); err != nil {
		return nil, err
	}
	s.persist()
	s.logger.Infow("house added", "id", h.ID, "landlord_id", h.LandlordID, "title", h.Title)
	return &h, nil
}

// Update applies a partial edit to a listing the landlord owns.
func (s *Service) Update(ownerID, houseID int, in UpdateInput) (*entity.House, error) {
	h, err := s.houses.GetByID(houseID)
	if err != nil {
		return nil, err
	}
	if h.LandlordID != ownerID {
		return nil, ErrNotOwner
	}

	bedrooms, bathrooms, rent := h.Bedrooms, h.Bathrooms, h.Rent
	if in.Bedrooms != nil {
		bedrooms = *in.Bedrooms
	}
	if in.Bathrooms != nil {
		bathrooms = *in.Bathrooms
	}
	if in.Rent != nil {
		rent = *in.Rent
	}
	if err := validateRanges(bedrooms, bathrooms, rent); err != nil {
		return nil, err
	}
	for _, v := range []*string{in.Title, in.Address, in.City, in.Area, in.Description} {
		if v != nil && !storage.SafeField(*v) {
			return nil, fmt.Errorf("%w: field may not contain '|' or line breaks", ErrValidation)
		}
	}
	if in.Title != nil && *in.Title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}

	if err := s.houses.Update(houseID, func(h *entity.House) {
		if in.Title != nil {
			h.Title = *in.Title
		}
		if in.Address != nil {
			h.Address = *in.Address
		}
		if in.City != nil {
			h.City = *in.City
		}
		if in.Area != nil {
			h.Area = *in.Area
		}
		h.Bedrooms = bedrooms
		h.Bathrooms = bathrooms
		h.Rent = rent
		if in.Description != nil {
			h.Description = *in.Description
		}
	}); err != nil {
		return nil, err
	}
	s.persist()
	return s.houses.GetByID(houseID)
}

// Delete removes a listing the landlord owns. Blocked while any active
// rental still references the house.
func (s *Service) Delete(ownerID, houseID int) error {
	h, err := s.houses.GetByID(houseID)
	if err != nil {
		return err
	}
	if h.LandlordID != ownerID {
		return ErrNotOwner
	}
	if s.rentals.HasActiveByHouse(houseID) {
		return ErrHasActiveRental
	}
	if err := s.houses.Delete(houseID); err != nil {
		return err
	}
	s.persist()
	s.logger.Infow("house deleted", "id", houseID, "landlord_id", ownerID)
	return nil
}

// SetStatus is the manual landlord transition. It is not validated against
// active rentals; only the rental lifecycle drives automatic transitions.
func (s *Service) SetStatus(ownerID, houseID int, status entity.Status) (*entity.House, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status", ErrValidation)
	}
	h, err := s.houses.GetByID(houseID)
	if err != nil {
		return nil, err
	}
	if h.LandlordID != ownerID {
		return nil, ErrNotOwner
	}
	if err := s.houses.Update(houseID, func(h *entity.House) {
		h.Status = status
	}); err != nil {
		return nil, err
	}
	s.persist()
	s.logger.Infow("house status changed", "id", houseID, "status", status.String())
	return s.houses.GetByID(houseID)
}

// Get fetches a listing by id.
func (s *Service) Get(id int) (*entity.House, error) {
	return s.houses.GetByID(id)
}

// ListAll returns every listing.
func (s *Service) ListAll() []entity.House {
	return s.houses.List()
}

// ListByOwner returns a landlord's listings.
func (s *Service) ListByOwner(landlordID int) []entity.House {
	return s.houses.ListByLandlord(landlordID)
}

// ListAvailable returns listings tenants can rent.
func (s *Service) ListAvailable() []entity.House {
	return s.houses.ListByStatus(entity.StatusAvailable)
}

func validateRanges(bedrooms, bathrooms int, rent float64) error {
	if bedrooms < 0 || bedrooms > maxBedrooms {
		return fmt.Errorf("%w: bedrooms must be between 0 and %d", ErrValidation, maxBedrooms)
	}
	if bathrooms < 0 || bathrooms > maxBathrooms {
		return fmt.Errorf("%w: bathrooms must be between 0 and %d", ErrValidation, maxBathrooms)
	}
	if rent < 0 {
		return fmt.Errorf("%w: rent must not be negative", ErrValidation)
	}
	return nil
}

func (s *Service) persist() {
	if err := s.houses.Save(); err != nil {
		s.logger.Warnw("house snapshot save failed; in-memory state is ahead of disk", "err", err)
	}
}
