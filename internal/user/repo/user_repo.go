package repo

import (
	"strconv"
	"strings"
	"sync"

	"github.com/rentfold/service-core/internal/user/entity"
	"github.com/rentfold/service-core/pkg/storage"
)

const userFieldCount = 8

// UserRepo owns the in-memory user collection backed by users.txt.
// All lookups are linear scans; the collection is bounded by capacity.
type UserRepo struct {
	mu       sync.RWMutex
	records  []entity.User
	path     string
	capacity int
}

func NewUserRepo(path string, capacity int) *UserRepo {
	return &UserRepo{path: path, capacity: capacity}
}

// Load replaces the in-memory collection with the snapshot file contents.
// A missing file yields an empty collection; malformed lines are skipped.
func (r *UserRepo) Load() error {
	lines, err := storage.ReadLines(r.path)
	if err != nil {
		return err
	}
	records := make([]entity.User, 0, len(lines))
	for _, line := range lines {
		u, ok := parseUser(line)
		if !ok {
			continue
		}
		records = append(records, u)
	}
	r.mu.Lock()
	r.records = records
	r.mu.Unlock()
	return nil
}

// Save rewrites the whole snapshot file from the in-memory collection,
// one record per line in insertion order.
func (r *UserRepo) Save() error {
	r.mu.RLock()
	lines := make([]string, 0, len(r.records))
	for i := range r.records {
		lines = append(lines, formatUser(&r.records[i]))
	}
	r.mu.RUnlock()
	return storage.WriteLines(r.path, lines)
}

// NextID returns max(existing ids)+1, or 1 for an empty collection.
func (r *UserRepo) NextID() int {
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

// Insert appends a record. The caller must have assigned a unique ID.
func (r *UserRepo) Insert(u entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.records) >= r.capacity {
		return storage.ErrCapacityExceeded
	}
	r.records = append(r.records, u)
	return nil
}

// GetByID returns a copy of the first record with the given id.
func (r *UserRepo) GetByID(id int) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.records {
		if r.records[i].ID == id {
			u := r.records[i]
			return &u, nil
		}
	}
	return nil, storage.ErrNotFound
}

// GetByUsername returns a copy of the first record with the given username.
func (r *UserRepo) GetByUsername(username string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.records {
		if r.records[i].Username == username {
			u := r.records[i]
			return &u, nil
		}
	}
	return nil, storage.ErrNotFound
}

// List returns a copy of the entire collection in insertion order.
func (r *UserRepo) List() []entity.User {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]entity.User, len(r.records))
	copy(out, r.records)
	return out
}

// HasRole reports whether any record carries the given role.
func (r *UserRepo) HasRole(role entity.Role) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.records {
		if r.records[i].Role == role {
			return true
		}
	}
	return false
}

// Update applies the mutator to the record with the given id in place.
func (r *UserRepo) Update(id int, mutate func(*entity.User)) error {
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

// Count returns the number of records currently loaded.
func (r *UserRepo) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.records)
}

// formatUser renders one users.txt line:
// id|username|password|full_name|email|phone|role|active
func formatUser(u *entity.User) string {
	return strings.Join([]string{
		strconv.Itoa(u.ID),
		u.Username,
		u.Password,
		u.FullName,
		u.Email,
		u.Phone,
		strconv.Itoa(int(u.Role)),
		storage.BoolField(u.IsActive),
	}, "|")
}

// parseUser decodes one users.txt line. Lines with the wrong field count or
// non-numeric id/role/active fields are rejected, never partially loaded.
func parseUser(line string) (entity.User, bool) {
	fields := strings.Split(line, "|")
	if len(fields) != userFieldCount {
		return entity.User{}, false
	}
	id, err := strconv.Atoi(fields[0])
	if err != nil || id <= 0 {
		return entity.User{}, false
	}
	role, err := strconv.Atoi(fields[6])
	if err != nil {
		return entity.User{}, false
	}
	active, err := storage.ParseBoolField(fields[7])
	if err != nil {
		return entity.User{}, false
	}
	return entity.User{
		ID:       id,
		Username: fields[1],
		Password: fields[2],
		FullName: fields[3],
		Email:    fields[4],
		Phone:    fields[5],
		Role:     entity.Role(role),
		IsActive: active,
	}, true
}
