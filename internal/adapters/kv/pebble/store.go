package pebble

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/bnema/support-chat-cli/internal/domain"
	"github.com/bnema/support-chat-cli/internal/ports"
	"github.com/cockroachdb/pebble"
)

// Store is a pebble-backed key-value medium. PutAll commits its entries in a
// single synced batch.
type Store struct {
	db *pebble.DB
}

var _ ports.KeyValueStore = (*Store)(nil)

func Open(path string) (*Store, error) {
	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("open pebble store: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("close pebble store: %w", err)
	}
	s.db = nil
	return nil
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := validateKey(key); err != nil {
		return "", err
	}

	value, closer, err := s.db.Get([]byte(key))
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return "", fmt.Errorf("pebble value %q: %w", key, domain.ErrKeyNotFound)
		}
		return "", fmt.Errorf("read pebble value %q: %w", key, err)
	}
	defer func() { _ = closer.Close() }()

	return string(append([]byte(nil), value...)), nil
}

func (s *Store) Put(ctx context.Context, key string, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := validateKey(key); err != nil {
		return err
	}

	if err := s.db.Set([]byte(key), []byte(value), pebble.Sync); err != nil {
		return fmt.Errorf("write pebble value %q: %w", key, err)
	}

	return nil
}

func (s *Store) PutAll(ctx context.Context, entries map[string]string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	keys := make([]string, 0, len(entries))
	for key := range entries {
		if err := validateKey(key); err != nil {
			return err
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)

	batch := s.db.NewBatch()
	defer func() { _ = batch.Close() }()

	for _, key := range keys {
		if err := batch.Set([]byte(key), []byte(entries[key]), nil); err != nil {
			return fmt.Errorf("stage pebble value %q: %w", key, err)
		}
	}

	if err := batch.Commit(pebble.Sync); err != nil {
		return fmt.Errorf("commit pebble batch: %w", err)
	}

	return nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := validateKey(key); err != nil {
		return err
	}

	if err := s.db.Delete([]byte(key), pebble.Sync); err != nil {
		return fmt.Errorf("delete pebble value %q: %w", key, err)
	}

	return nil
}

func validateKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return errors.New("key is empty")
	}
	return nil
}
