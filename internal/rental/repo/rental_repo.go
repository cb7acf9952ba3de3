package repo

import (
	"strconv"
	"strings"
	"sync"

	"github.com/rentfold/service-core/internal/rental/entity"
	"github.com/rentfold/service-core/pkg/storage"
)

const rentalFieldCount = 9

// RentalRepo owns the in-memory rental collection backed by rentals.txt.
// Rentals are never physically deleted; ended rentals remain as history.
type RentalRepo struct {
	mu       sync.RWMutex
	records  []entity.Rental
	path     string
	capacity int
}

func NewRentalRepo(path string, capacity int) *RentalRepo {
	return &RentalRepo{path: path, capacity: capacity}
}

// Load replaces the in-memory collection with the snapshot file contents.
func (r *RentalRepo) Load() error {
	lines, err := storage.ReadLines(r.path)
	if err != nil {
		return err
	}
	records := make([]entity.Rental, 0, len(lines))
	for _, line := range lines {
		rec, ok := parseRental(line)
		if !ok {
			continue
		}
		records = append(records, rec)
	}
	r.mu.Lock()
	r.records = records
	r.mu.Unlock()
	return nil
}

// Save rewrites the whole snapshot file in insertion order.
func (r *RentalRepo) Save() error {
	r.mu.RLock()
	lines := make([]string, 0, len(r.records))
	for i := range r.records {
		lines = append(lines, formatRental(&r.records[i]))
	}
	r.mu.RUnlock()
	return storage.WriteLines(r.path, lines)
}

// NextID returns max(existing ids)+1, or 1 for an empty collection.
func (r *RentalRepo) NextID() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	maxID := 0
	for i := range r.records {
		if r.records[i].ID > maxID {
			maxID = r.records[i].ID
		}
	}
	return maxID + 1
}

func (r *RentalRepo) Insert(rec entity.Rental) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.records) >= r.capacity {
		return storage.ErrCapacityExceeded
	}
	r.records = append(r.records, rec)
	return nil
}

func (r *RentalRepo) GetByID(id int) (*entity.Rental, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.records {
		if r.records[i].ID == id {
			rec := r.records[i]
			return &rec, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (r *RentalRepo) List() []entity.Rental {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]entity.Rental, len(r.records))
	copy(out, r.records)
	return out
}

// ListByTenant returns all rentals (active and ended) held by a tenant.
func (r *RentalRepo) ListByTenant(tenantID int) []entity.Rental {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []entity.Rental
	for i := range r.records {
		if r.records[i].TenantID == tenantID {
			out = append(out, r.records[i])
		}
	}
	return out
}

// ListByLandlord returns all rentals recorded against a landlord's houses.
func (r *RentalRepo) ListByLandlord(landlordID int) []entity.Rental {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []entity.Rental
	for i := range r.records {
		if r.records[i].LandlordID == landlordID {
			out = append(out, r.records[i])
		}
	}
	return out
}

// HasActiveByHouse reports whether any active rental references the house.
func (r *RentalRepo) HasActiveByHouse(houseID int) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.records {
		if r.records[i].HouseID == houseID && r.records[i].IsActive {
			return true
		}
	}
	return false
}

// HasActiveByTenantAndHouse reports whether the tenant already holds an
// active rental for the house.
func (r *RentalRepo) HasActiveByTenantAndHouse(tenantID, houseID int) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.records {
		if r.records[i].TenantID == tenantID && r.records[i].HouseID == houseID && r.records[i].IsActive {
			return true
		}
	}
	return false
}

// Update applies the mutator to the record with the given id in place.
func (r *RentalRepo) Update(id int, mutate func(*entity.Rental)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.records {
		if r.records[i].ID == id {
			mutate(&r.records[i])
			return nil
		}
	}
	return storage.ErrNotFound
}

func (r *RentalRepo) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.records)
}

// formatRental renders one rentals.txt line:
// id|house_id|tenant_id|landlord_id|tenant_name|house_title|rental_date|monthly_rent|active
func formatRental(rec *entity.Rental) string {
	return strings.Join([]string{
		strconv.Itoa(rec.ID),
		strconv.Itoa(rec.HouseID),
		strconv.Itoa(rec.TenantID),
		strconv.Itoa(rec.LandlordID),
		rec.TenantName,
		rec.HouseTitle,
		rec.RentalDate,
		strconv.FormatFloat(rec.MonthlyRent, 'f', 2, 64),
		storage.BoolField(rec.IsActive),
	}, "|")
}

func parseRental(line string) (entity.Rental, bool) {
	fields := strings.Split(line, "|")
	if len(fields) != rentalFieldCount {
		return entity.Rental{}, false
	}
	id, err := strconv.Atoi(fields[0])
	if err != nil || id <= 0 {
		return entity.Rental{}, false
	}
	houseID, err := strconv.Atoi(fields[1])
	if err != nil {
		return entity.Rental{}, false
	}
	tenantID, err := strconv.Atoi(fields[2])
	if err != nil {
		return entity.Rental{}, false
	}
	landlordID, err := strconv.Atoi(fields[3])
	if err != nil {
		return entity.Rental{}, false
	}
	rent, err := strconv.ParseFloat(fields[7], 64)
	if err != nil {
		return entity.Rental{}, false
	}
	active, err := storage.ParseBoolField(fields[8])
	if err != nil {
		return entity.Rental{}, false
	}
	return entity.Rental{
		ID:          id,
		HouseID:     houseID,
		TenantID:    tenantID,
		LandlordID:  landlordID,
		TenantName:  fields[4],
		HouseTitle:  fields[5],
		RentalDate:  fields[6],
		MonthlyRent: rent,
		IsActive:    active,
	}, true
}
