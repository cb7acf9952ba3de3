package storage

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Errors shared by the per-entity record stores. Services wrap these with
// domain context; handlers map them to HTTP status codes.
var (
	ErrNotFound               = errors.New("record not found")
	ErrCapacityExceeded       = errors.New("collection capacity exceeded")
	ErrPersistenceUnavailable = errors.New("persistence unavailable")
)

type Config struct {
	Dir        string
	MaxUsers   int
	MaxHouses  int
	MaxRentals int
}

// ConfigFromEnv reads storage config from environment variables
func ConfigFromEnv() Config {
	dir := os.Getenv("DATA_DIR")
	if dir == "" {
		dir = "."
	}
	return Config{
		Dir:        dir,
		MaxUsers:   envInt("MAX_USERS", 100),
		MaxHouses:  envInt("MAX_HOUSES", 200),
		MaxRentals: envInt("MAX_RENTALS", 400),
	}
}

func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return def
	}
	return n
}

// Store resolves snapshot file paths inside a data directory.
type Store struct {
	dir string
}

// Open ensures the data directory exists and returns a Store rooted there.
func Open(cfg Config) (*Store, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: create data dir: %v", ErrPersistenceUnavailable, err)
	}
	return &Store{dir: cfg.Dir}, nil
}

// Path returns the absolute location of a snapshot file within the data dir.
func (s *Store) Path(name string) string {
	return filepath.Join(s.dir, name)
}

// ReadLines loads every line of a snapshot file. A missing file is not an
// error: the collection simply starts empty.
func ReadLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: open %s: %v", ErrPersistenceUnavailable, path, err)
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 4096), 1<<20)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrPersistenceUnavailable, path, err)
	}
	return lines, nil
}

// WriteLines rewrites a snapshot file with the given lines. The write goes to
// a temp file in the same directory which is then renamed over the target, so
// a crash mid-write never truncates the previous snapshot.
func WriteLines(path string, lines []string) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: create temp for %s: %v", ErrPersistenceUnavailable, path, err)
	}
	w := bufio.NewWriter(tmp)
	for _, line := range lines {
		if _, err := w.WriteString(line + "\n"); err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
			return fmt.Errorf("%w: write %s: %v", ErrPersistenceUnavailable, path, err)
		}
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("%w: flush %s: %v", ErrPersistenceUnavailable, path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("%w: close %s: %v", ErrPersistenceUnavailable, path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("%w: replace %s: %v", ErrPersistenceUnavailable, path, err)
	}
	return nil
}

// BoolField encodes a boolean the way the snapshot format expects (0/1).
func BoolField(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

// ParseBoolField accepts the 0/1 encoding; any other value is malformed.
func ParseBoolField(s string) (bool, error) {
	switch s {
	case "0":
		return false, nil
	case "1":
		return true, nil
	}
	return false, fmt.Errorf("invalid bool field %q", s)
}

// SafeField reports whether a value can be stored without corrupting the
// pipe-delimited snapshot format, which has no escaping.
func SafeField(v string) bool {
	return !strings.ContainsAny(v, "|\n\r")
}

// Today returns the current date in the fixed snapshot format.
func Today() string {
	return time.Now().Format("2006-01-02")
}
