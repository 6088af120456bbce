package jsonfile

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/honeycarbs/hh-vacancies/internal/domain"
	"github.com/honeycarbs/hh-vacancies/internal/domain/vacancy"
	"github.com/honeycarbs/hh-vacancies/pkg/logging"
)

// DedupKey selects which field identifies a stored vacancy
type DedupKey string

const (
	// DedupByID is the default: one record per vacancy identifier
	DedupByID DedupKey = "id"
	// DedupByURL is the legacy mode keyed on the public listing URL
	DedupByURL DedupKey = "url"
)

// ParseDedupKey validates a config value
func ParseDedupKey(s string) (DedupKey, error) {
	switch DedupKey(s) {
	case "", DedupByID:
		return DedupByID, nil
	case DedupByURL:
		return DedupByURL, nil
	default:
		return "", fmt.Errorf("jsonfile: unknown dedup key %q (want id or url)", s)
	}
}

// Ensure Store implements vacancy.Store
var _ vacancy.Store = (*Store)(nil)

// Store keeps vacancies in a single JSON document of the form {"items": [...]}
type Store struct {
	path   string
	dedup  DedupKey
	logger *logging.Logger

	mu sync.Mutex
}

// Option configures Store
type Option func(*Store)

// WithDedupKey selects the uniqueness key
func WithDedupKey(k DedupKey) Option {
	return func(s *Store) {
		s.dedup = k
	}
}

// WithLogger sets the logger
func WithLogger(log *logging.Logger) Option {
	return func(s *Store) {
		s.logger = log
	}
}

// New creates a Store at path, creating the parent directory if needed
func New(path string, opts ...Option) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("jsonfile: path is required")
	}

	s := &Store{
		path:   path,
		dedup:  DedupByID,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, &domain.StorageError{Op: "init", Path: path, Err: err}
	}

	return s, nil
}

// Path returns the backing file path
func (s *Store) Path() string {
	return s.path
}

type document struct {
	Items []json.RawMessage `json:"items"`
}

// AppendIfAbsent writes the vacancy unless a record with the same key is already stored
func (s *Store) AppendIfAbsent(ctx context.Context, v domain.Vacancy) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	key, ok := s.vacancyKey(v)
	if !ok {
		return false, &domain.StorageError{Op: "append", Path: s.path, Err: fmt.Errorf("vacancy %s has no %s", v.ID, s.dedup)}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.read()
	if err != nil {
		return false, err
	}

	for _, rec := range records {
		if recKey, ok := s.recordKey(rec); ok && recKey == key {
			return false, nil
		}
	}

	records = append(records, v.Raw())
	if err := s.write(records); err != nil {
		return false, err
	}

	s.logger.Debug("vacancy stored", "vacancy_id", v.ID, "path", s.path)
	return true, nil
}

// ReadAll returns every stored record. A missing, empty or corrupt file yields no records
func (s *Store) ReadAll(ctx context.Context) ([]domain.RawRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.read()
}

// Delete removes the record with the given identifier
func (s *Store) Delete(ctx context.Context, id string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.read()
	if err != nil {
		return false, err
	}

	kept := make([]domain.RawRecord, 0, len(records))
	for _, rec := range records {
		if recID, ok := stringField(rec, "id"); ok && recID == id {
			continue
		}
		kept = append(kept, rec)
	}

	if len(kept) == len(records) {
		return false, nil
	}
	if err := s.write(kept); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Store) read() ([]domain.RawRecord, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []domain.RawRecord{}, nil
	}
	if err != nil {
		return nil, &domain.StorageError{Op: "read", Path: s.path, Err: err}
	}

	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return []domain.RawRecord{}, nil
	}
	if !json.Valid(data) {
		s.logger.Warn("vacancy store is not valid JSON, starting empty", "path", s.path)
		return []domain.RawRecord{}, nil
	}

	items, err := decodeItems(data)
	if err != nil {
		return nil, &domain.StorageError{Op: "decode", Path: s.path, Err: err}
	}
	return items, nil
}

// decodeItems accepts {"items": [...]} or a bare array, each element a keyed record
func decodeItems(data []byte) ([]domain.RawRecord, error) {
	var rawItems []json.RawMessage

	switch data[0] {
	case '[':
		if err := json.Unmarshal(data, &rawItems); err != nil {
			return nil, err
		}
	case '{':
		var doc document
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("items must be an array: %w", err)
		}
		rawItems = doc.Items
	default:
		return nil, fmt.Errorf("expected an object or array document")
	}

	records := make([]domain.RawRecord, 0, len(rawItems))
	for i, item := range rawItems {
		dec := json.NewDecoder(bytes.NewReader(item))
		dec.UseNumber()

		var rec map[string]any
		if err := dec.Decode(&rec); err != nil || rec == nil {
			return nil, fmt.Errorf("item %d is not a keyed record", i)
		}
		records = append(records, rec)
	}
	return records, nil
}

// write replaces the document through a temp file and rename so readers never see a partial write
func (s *Store) write(records []domain.RawRecord) error {
	if records == nil {
		records = []domain.RawRecord{}
	}

	data, err := json.MarshalIndent(map[string]any{"items": records}, "", "  ")
	if err != nil {
		return &domain.StorageError{Op: "encode", Path: s.path, Err: err}
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), "."+filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return &domain.StorageError{Op: "write", Path: s.path, Err: err}
	}
	tmpName := tmp.Name()
	defer func() {
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		_ = tmp.Close()
		return &domain.StorageError{Op: "write", Path: s.path, Err: err}
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return &domain.StorageError{Op: "write", Path: s.path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		return &domain.StorageError{Op: "write", Path: s.path, Err: err}
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		return &domain.StorageError{Op: "write", Path: s.path, Err: err}
	}
	return nil
}

func (s *Store) vacancyKey(v domain.Vacancy) (string, bool) {
	if s.dedup == DedupByURL {
		if v.URL == nil || *v.URL == "" {
			return "", false
		}
		return *v.URL, true
	}
	return v.ID, v.ID != ""
}

func (s *Store) recordKey(rec domain.RawRecord) (string, bool) {
	if s.dedup == DedupByURL {
		if u, ok := stringField(rec, "alternate_url"); ok {
			return u, true
		}
		return stringField(rec, "url")
	}
	return stringField(rec, "id")
}

func stringField(rec domain.RawRecord, key string) (string, bool) {
	switch v := rec[key].(type) {
	case string:
		return v, true
	case json.Number:
		return v.String(), true
	default:
		return "", false
	}
}
