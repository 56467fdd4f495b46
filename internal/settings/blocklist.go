package settings

import (
	"context"
	"encoding/json"
	"errors"

	apperrors "github.com/spec-kit/docket-service/pkg/util"
)

const blocklistDocument = "blocked_students"

// BlocklistStore manages the set of administratively barred student numbers.
// Persisted as an ordered list but semantically a set; block and unblock are
// idempotent.
type BlocklistStore struct {
	docs DocumentStore
}

// NewBlocklistStore constructs the store.
func NewBlocklistStore(docs DocumentStore) *BlocklistStore {
	return &BlocklistStore{docs: docs}
}

// List returns the blocked student numbers.
func (s *BlocklistStore) List(ctx context.Context) ([]string, error) {
	data, err := s.docs.Load(ctx, blocklistDocument)
	if err != nil {
		if errors.Is(err, ErrDocumentNotFound) {
			return []string{}, nil
		}
		return nil, apperrors.NewPersistenceFailure("Could not read blocklist.", err)
	}

	var blocklist []string
	if err := json.Unmarshal(data, &blocklist); err != nil {
		// Corrupt documents read as empty, matching the settings fallback.
		return []string{}, nil
	}
	return blocklist, nil
}

// Contains reports whether a student number is blocked.
func (s *BlocklistStore) Contains(ctx context.Context, studentNumber string) (bool, error) {
	blocklist, err := s.List(ctx)
	if err != nil {
		return false, err
	}
	for _, number := range blocklist {
		if number == studentNumber {
			return true, nil
		}
	}
	return false, nil
}

// Block adds a student number; a no-op when already present.
func (s *BlocklistStore) Block(ctx context.Context, studentNumber string) error {
	blocklist, err := s.List(ctx)
	if err != nil {
		return err
	}
	for _, number := range blocklist {
		if number == studentNumber {
			return nil
		}
	}
	return s.save(ctx, append(blocklist, studentNumber))
}

// Unblock removes a student number; a no-op when absent.
func (s *BlocklistStore) Unblock(ctx context.Context, studentNumber string) error {
	blocklist, err := s.List(ctx)
	if err != nil {
		return err
	}
	kept := blocklist[:0]
	for _, number := range blocklist {
		if number != studentNumber {
			kept = append(kept, number)
		}
	}
	if len(kept) == len(blocklist) {
		return nil
	}
	return s.save(ctx, kept)
}

func (s *BlocklistStore) save(ctx context.Context, blocklist []string) error {
	data, err := json.MarshalIndent(blocklist, "", "    ")
	if err != nil {
		return err
	}
	if err := s.docs.Save(ctx, blocklistDocument, data); err != nil {
		return apperrors.NewPersistenceFailure("Could not save blocklist.", err)
	}
	return nil
}
