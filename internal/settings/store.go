package settings

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/redis/go-redis/v9"
)

// ErrDocumentNotFound is returned when a named document has never been saved.
var ErrDocumentNotFound = errors.New("document not found")

// DocumentStore persists small named JSON documents. Implementations are
// swappable: the admin panel works the same over files or Redis.
type DocumentStore interface {
	Load(ctx context.Context, name string) ([]byte, error)
	Save(ctx context.Context, name string, data []byte) error
}

type fileStore struct {
	dir string
}

// NewFileStore stores each document as <dir>/<name>.json.
func NewFileStore(dir string) DocumentStore {
	return &fileStore{dir: dir}
}

func (s *fileStore) Load(_ context.Context, name string) ([]byte, error) {
	data, err := os.ReadFile(s.path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrDocumentNotFound
		}
		return nil, err
	}
	return data, nil
}

func (s *fileStore) Save(_ context.Context, name string, data []byte) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(s.path(name), data, 0o644)
}

func (s *fileStore) path(name string) string {
	return filepath.Join(s.dir, name+".json")
}

type redisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore stores each document under <prefix>:<name>.
func NewRedisStore(client *redis.Client, prefix string) DocumentStore {
	if prefix == "" {
		prefix = "docket:documents"
	}
	return &redisStore{client: client, prefix: prefix}
}

func (s *redisStore) Load(ctx context.Context, name string) ([]byte, error) {
	data, err := s.client.Get(ctx, s.key(name)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrDocumentNotFound
		}
		return nil, err
	}
	return data, nil
}

func (s *redisStore) Save(ctx context.Context, name string, data []byte) error {
	return s.client.Set(ctx, s.key(name), data, 0).Err()
}

func (s *redisStore) key(name string) string {
	return fmt.Sprintf("%s:%s", s.prefix, name)
}
