package rental

import (
	"errors"

	"go.uber.org/zap"

	houseentity "github.com/rentfold/service-core/internal/house/entity"
	houserepo "github.com/rentfold/service-core/internal/house/repo"
	"github.com/rentfold/service-core/internal/rental/entity"
	rentalrepo "github.com/rentfold/service-core/internal/rental/repo"
	userentity "github.com/rentfold/service-core/internal/user/entity"
	"github.com/rentfold/service-core/pkg/storage"
)

var (
	ErrHouseUnavailable = errors.New("house is not available for rent")
	ErrAlreadyInactive  = errors.New("rental is already inactive")
	ErrNotRentalHolder  = errors.New("rental is not held by this tenant")
)

// Service coordinates the rental lifecycle against the house collection:
// renting flips an Available house to Rented, ending an active rental flips
// a Rented house back to Available. These are the only automatic status
// transitions in the system.
type Service struct {
	rentals *rentalrepo.RentalRepo
	houses  *houserepo.HouseRepo
	logger  *zap.SugaredLogger
}

func NewService(rentals *rentalrepo.RentalRepo, houses *houserepo.HouseRepo, logger *zap.SugaredLogger) *Service {
	return &Service{rentals: rentals, houses: houses, logger: logger}
}

// Rent creates an active rental for the tenant on an Available house. The
// tenant name, house title, owning landlord and current rent are snapshotted
// onto the rental record.
func (s *Service) Rent(tenant *userentity.User, houseID int) (*entity.Rental, error) {
	h, err := s.houses.GetByID(houseID)
	if err != nil {
		return nil, err
	}
	if h.Status != houseentity.StatusAvailable {
		return nil, ErrHouseUnavailable
	}
	if s.rentals.HasActiveByTenantAndHouse(tenant.ID, houseID) {
		return nil, ErrHouseUnavailable
	}

	rec := entity.Rental{
		ID:          s.rentals.NextID(),
		HouseID:     h.ID,
		TenantID:    tenant.ID,
		LandlordID:  h.LandlordID,
		TenantName:  tenant.FullName,
		HouseTitle:  h.Title,
		RentalDate:  storage.Today(),
		MonthlyRent: h.Rent,
		IsActive:    true,
	}
	if err := s.rentals.Insert(rec); err != nil {
		return nil, err
	}
	if err := s.houses.Update(houseID, func(h *houseentity.House) {
		h.Status = houseentity.StatusRented
	}); err != nil {
		return nil, err
	}
	s.persist()
	s.logger.Infow("rental created", "id", rec.ID, "house_id", rec.HouseID, "tenant_id", rec.TenantID)
	return &rec, nil
}

// End deactivates a rental held by the tenant. The referenced house goes
// back to Available only if it is currently Rented; a Maintenance state set
// by the landlord in the meantime is left alone.
func (s *Service) End(tenantID, rentalID int) (*entity.Rental, error) {
	rec, err := s.rentals.GetByID(rentalID)
	if err != nil {
		return nil, err
	}
	if rec.TenantID != tenantID {
		return nil, ErrNotRentalHolder
	}
	if !rec.IsActive {
		return nil, ErrAlreadyInactive
	}

	if err := s.rentals.Update(rentalID, func(r *entity.Rental) {
		r.IsActive = false
	}); err != nil {
		return nil, err
	}
	// the house may have been deleted only if no rental was active, so it
	// should exist here; tolerate a miss anyway
	_ = s.houses.Update(rec.HouseID, func(h *houseentity.House) {
		if h.Status == houseentity.StatusRented {
			h.Status = houseentity.StatusAvailable
		}
	})
	s.persist()
	s.logger.Infow("rental ended", "id", rentalID, "house_id", rec.HouseID)
	return s.rentals.GetByID(rentalID)
}

// Get fetches a rental by id.
func (s *Service) Get(id int) (*entity.Rental, error) {
	return s.rentals.GetByID(id)
}

// ListAll returns every rental, active and ended.
func (s *Service) ListAll() []entity.Rental {
	return s.rentals.List()
}

// ListByTenant returns a tenant's rental history.
func (s *Service) ListByTenant(tenantID int) []entity.Rental {
	return s.rentals.ListByTenant(tenantID)
}

// ListByLandlord returns the rentals recorded against a landlord's houses.
func (s *Service) ListByLandlord(landlordID int) []entity.Rental {
	return s.rentals.ListByLandlord(landlordID)
}

// persist saves both affected collections after a lifecycle transition.
func (s *Service) persist() {
	if err := s.rentals.Save(); err != nil {
		s.logger.Warnw("rental snapshot save failed; in-memory state is ahead of disk", "err", err)
	}
	if err := s.houses.Save(); err != nil {
		s.logger.Warnw("house snapshot save failed; in-memory state is ahead of disk", "err", err)
	}
}
