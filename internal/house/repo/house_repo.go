package repo

import (
	"strconv"
	"strings"
	"sync"

	"github.com/rentfold/service-core/internal/house/entity"
	"github.com/rentfold/service-core/pkg/storage"
)

const houseFieldCount = 13

// HouseRepo owns the in-memory house collection backed by houses.txt.
// Houses are the only records in the system that can be physically deleted.
type HouseRepo struct {
	mu       sync.RWMutex
	records  []entity.House
	path     string
	capacity int
}

func NewHouseRepo(path string, capacity int) *HouseRepo {
	return &HouseRepo{path: path, capacity: capacity}
}

// Load replaces the in-memory collection with the snapshot file contents.
func (r *HouseRepo) Load() error {
	lines, err := storage.ReadLines(r.path)
	if err != nil {
		return err
	}
	records := make([]entity.House, 0, len(lines))
	for _, line := range lines {
		h, ok := parseHouse(line)
		if !ok {
			continue
		}
		records = append(records, h)
	}
	r.mu.Lock()
	r.records = records
	r.mu.Unlock()
	return nil
}

// Save rewrites the whole snapshot file in insertion order.
func (r *HouseRepo) Save() error {
	r.mu.RLock()
	lines := make([]string, 0, len(r.records))
	for i := range r.records {
		lines = append(lines, formatHouse(&r.records[i]))
	}
	r.mu.RUnlock()
	return storage.WriteLines(r.path, lines)
}

// NextID returns max(existing ids)+1, or 1 for an empty collection. After a
// delete of the highest id that id can be handed out again; surviving ids are
// never reused.
func (r *HouseRepo) NextID() int {
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

func (r *HouseRepo) Insert(h entity.House) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.records) >= r.capacity {
		return storage.ErrCapacityExceeded
	}
	r.records = append(r.records, h)
	return nil
}

func (r *HouseRepo) GetByID(id int) (*entity.House, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.records {
		if r.records[i].ID == id {
			h := r.records[i]
			return &h, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (r *HouseRepo) List() []entity.House {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]entity.House, len(r.records))
	copy(out, r.records)
	return out
}

// ListByLandlord returns the houses owned by a landlord, in insertion order.
func (r *HouseRepo) ListByLandlord(landlordID int) []entity.House {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []entity.House
	for i := range r.records {
		if r.records[i].LandlordID == landlordID {
			out = append(out, r.records[i])
		}
	}
	return out
}

// ListByStatus returns the houses in a given state, in insertion order.
func (r *HouseRepo) ListByStatus(status entity.Status) []entity.House {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []entity.House
	for i := range r.records {
		if r.records[i].Status == status {
			out = append(out, r.records[i])
		}
	}
	return out
}

// Update applies the mutator to the record with the given id in place.
func (r *HouseRepo) Update(id int, mutate func(*entity.House)) error {
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

// Delete removes the record with the given id, shifting later records down
// so insertion order of the remainder is preserved.
func (r *HouseRepo) Delete(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.records {
		if r.records[i].ID == id {
			r.records = append(r.records[:i], r.records[i+1:]...)
			return nil
		}
	}
	return storage.ErrNotFound
}

func (r *HouseRepo) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.records)
}

// formatHouse renders one houses.txt line:
// id|title|address|city|area|bedrooms|bathrooms|rent|description|landlord_id|landlord_name|status|date_added
func formatHouse(h *entity.House) string {
	return strings.Join([]string{
		strconv.Itoa(h.ID),
		h.Title,
		h.Address,
		h.City,
		h.Area,
		strconv.Itoa(h.Bedrooms),
		strconv.Itoa(h.Bathrooms),
		strconv.FormatFloat(h.Rent, 'f', 2, 64),
		h.Description,
		strconv.Itoa(h.LandlordID),
		h.LandlordName,
		strconv.Itoa(int(h.Status)),
		h.DateAdded,
	}, "|")
}

func parseHouse(line string) (entity.House, bool) {
	fields := strings.Split(line, "|")
	if len(fields) != houseFieldCount {
		return entity.House{}, false
	}
	id, err := strconv.Atoi(fields[0])
	if err != nil || id <= 0 {
		return entity.House{}, false
	}
	bedrooms, err := strconv.Atoi(fields[5])
	if err != nil {
		return entity.House{}, false
	}
	bathrooms, err := strconv.Atoi(fields[6])
	if err != nil {
		return entity.House{}, false
	}
	rent, err := strconv.ParseFloat(fields[7], 64)
	if err != nil {
		return entity.House{}, false
	}
	landlordID, err := strconv.Atoi(fields[9])
	if err != nil {
		return entity.House{}, false
	}
	status, err := strconv.Atoi(fields[11])
	if err != nil {
		return entity.House{}, false
	}
	return entity.House{
		ID:           id,
		Title:        fields[1],
		Address:      fields[2],
		City:         fields[3],
		Area:         fields[4],
		Bedrooms:     bedrooms,
		Bathrooms:    bathrooms,
		Rent:         rent,
		Description:  fields[8],
		LandlordID:   landlordID,
		LandlordName: fields[10],
		Status:       entity.Status(status),
		DateAdded:    fields[12],
	}, true
}
