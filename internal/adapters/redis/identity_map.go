package redis

// Package redis provides Redis-based adapters for the sso-bridge system.

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/chargetogether/sso-bridge/internal/ports"
)

// IdentityMap is the Redis-backed mapping from (provider, external subject)
// to local user id. Entries are written once via SETNX and never re-pointed;
// concurrent first logins race on the conditional write and exactly one
// mapping survives.
type IdentityMap struct {
	client redis.UniversalClient
	prefix string
}

// NewIdentityMap creates an identity map on the given Redis client.
func NewIdentityMap(client redis.UniversalClient) *IdentityMap {
	return &IdentityMap{client: client, prefix: "extid:"}
}

// NewIdentityMapWithPrefix creates an identity map with a custom key prefix.
func NewIdentityMapWithPrefix(client redis.UniversalClient, prefix string) *IdentityMap {
	return &IdentityMap{client: client, prefix: prefix}
}

func (m *IdentityMap) key(provider, subjectID string) string {
	return m.prefix + provider + ":" + subjectID
}

// Lookup returns the user id linked to the given external subject.
func (m *IdentityMap) Lookup(ctx context.Context, provider, subjectID string) (string, error) {
	if provider == "" || subjectID == "" {
		return "", ports.ErrMappingNotFound
	}

	uid, err := m.client.Get(ctx, m.key(provider, subjectID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ports.ErrMappingNotFound
		}
		return "", fmt.Errorf("redis get: %w", err)
	}
	return uid, nil
}

// Put records the mapping with set-if-absent semantics. When the key is
// already present it is re-read and compared: the identical mapping is a
// success (idempotent re-link), a different user id is ErrAlreadyLinked.
func (m *IdentityMap) Put(ctx context.Context, mapping ports.Mapping) error {
	if mapping.Provider == "" || mapping.SubjectID == "" {
		return errors.New("provider and subject id are required")
	}
	if mapping.UserID == "" {
		return errors.New("user id is required")
	}

	key := m.key(mapping.Provider, mapping.SubjectID)
	set, err := m.client.SetNX(ctx, key, mapping.UserID, 0).Result()
	if err != nil {
		return fmt.Errorf("redis setnx: %w", err)
	}
	if set {
		return nil
	}

	existing, err := m.client.Get(ctx, key).Result()
	if err != nil {
		// The winner could have unlinked between our SETNX and GET; treat a
		// vanished key as a lost race the caller resolves by re-resolving.
		if errors.Is(err, redis.Nil) {
			return ports.ErrAlreadyLinked
		}
		return fmt.Errorf("redis get after setnx: %w", err)
	}
	if existing != mapping.UserID {
		return ports.ErrAlreadyLinked
	}
	return nil
}

// Remove deletes the mapping for the given external subject.
func (m *IdentityMap) Remove(ctx context.Context, provider, subjectID string) error {
	if provider == "" || subjectID == "" {
		return ports.ErrMappingNotFound
	}

	removed, err := m.client.Del(ctx, m.key(provider, subjectID)).Result()
	if err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	if removed == 0 {
		return ports.ErrMappingNotFound
	}
	return nil
}
