package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	bolt "go.etcd.io/bbolt"

	"sidebar/internal/types"
)

var (
	bucketSessions = []byte("sessions")
	bucketGroups   = []byte("session_groups")
)

type bboltRepository struct {
	db       *bolt.DB
	sessions SessionStore
	groups   GroupStore
}

func NewBboltRepository(path string) (Repository, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("repository db path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, err
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 2 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	if err := initBboltSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &bboltRepository{
		db:       db,
		sessions: &bboltSessionStore{db: db},
		groups:   &bboltGroupStore{db: db},
	}, nil
}

func (r *bboltRepository) Sessions() SessionStore {
	return r.sessions
}

func (r *bboltRepository) Groups() GroupStore {
	return r.groups
}

func (r *bboltRepository) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

func initBboltSchema(db *bolt.DB) error {
	return db.Update(func(tx *bolt.Tx) error {
		for _, name := range [][]byte{bucketSessions, bucketGroups} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return err
			}
		}
		return nil
	})
}

type bboltSessionStore struct {
	db *bolt.DB
}

func (s *bboltSessionStore) List(ctx context.Context) ([]*types.Session, error) {
	out := make([]*types.Session, 0)
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketSessions).ForEach(func(_, v []byte) error {
			var session types.Session
			if err := json.Unmarshal(v, &session); err != nil {
				return err
			}
			out = append(out, &session)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out, nil
}

func (s *bboltSessionStore) Get(ctx context.Context, id string) (*types.Session, error) {
	var out *types.Session
	err := s.db.View(func(tx *bolt.Tx) error {
		raw := tx.Bucket(bucketSessions).Get([]byte(strings.TrimSpace(id)))
		if len(raw) == 0 {
			return ErrNotFound
		}
		var session types.Session
		if err := json.Unmarshal(raw, &session); err != nil {
			return err
		}
		out = &session
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *bboltSessionStore) Upsert(ctx context.Context, session *types.Session) (*types.Session, error) {
	next, err := normalizeSession(session)
	if err != nil {
		return nil, err
	}
	raw, err := json.Marshal(next)
	if err != nil {
		return nil, err
	}
	if err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketSessions).Put([]byte(next.ID), raw)
	}); err != nil {
		return nil, err
	}
	return next.Clone(), nil
}

func (s *bboltSessionStore) Delete(ctx context.Context, id string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketSessions)
		key := []byte(strings.TrimSpace(id))
		if b.Get(key) == nil {
			return ErrNotFound
		}
		return b.Delete(key)
	})
}

type bboltGroupStore struct {
	db *bolt.DB
}

func (s *bboltGroupStore) List(ctx context.Context) ([]types.SessionGroup, error) {
	out := make([]types.SessionGroup, 0)
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketGroups).ForEach(func(_, v []byte) error {
			var group types.SessionGroup
			if err := json.Unmarshal(v, &group); err != nil {
				return err
			}
			out = append(out, group)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Sort != out[j].Sort {
			return out[i].Sort < out[j].Sort
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (s *bboltGroupStore) Upsert(ctx context.Context, group types.SessionGroup) error {
	group.ID = strings.TrimSpace(group.ID)
	group.Name = strings.TrimSpace(group.Name)
	if group.ID == "" {
		return errors.New("group id is required")
	}
	if group.Name == "" {
		return errors.New("group name is required")
	}
	raw, err := json.Marshal(group)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketGroups).Put([]byte(group.ID), raw)
	})
}
