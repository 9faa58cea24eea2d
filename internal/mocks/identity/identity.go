package identity

// Package identity contains hand-written in-memory doubles for the identity
// ports. The map double keeps the production conditional-write semantics so
// service tests can exercise link races without Redis.

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/chargetogether/sso-bridge/internal/domain/model"
	"github.com/chargetogether/sso-bridge/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.IdentityMap   = (*MemoryIdentityMap)(nil)
	_ ports.UserDirectory = (*MemoryUserDirectory)(nil)
	_ ports.GroupService  = (*RecordingGroupService)(nil)
)

// MemoryIdentityMap is an in-memory identity map with the same
// write-once semantics as the Redis adapter.
type MemoryIdentityMap struct {
	mu      sync.Mutex
	entries map[string]string
}

// NewMemoryIdentityMap creates an empty in-memory identity map.
func NewMemoryIdentityMap() *MemoryIdentityMap {
	return &MemoryIdentityMap{entries: make(map[string]string)}
}

func mapKey(provider, subjectID string) string {
	return provider + ":" + subjectID
}

func (m *MemoryIdentityMap) Lookup(_ context.Context, provider, subjectID string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	userID, ok := m.entries[mapKey(provider, subjectID)]
	if !ok {
		return "", ports.ErrMappingNotFound
	}
	return userID, nil
}

func (m *MemoryIdentityMap) Put(_ context.Context, in ports.Mapping) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := mapKey(in.Provider, in.SubjectID)
	if existing, ok := m.entries[key]; ok {
		if existing == in.UserID {
			return nil
		}
		return ports.ErrAlreadyLinked
	}
	m.entries[key] = in.UserID
	return nil
}

func (m *MemoryIdentityMap) Remove(_ context.Context, provider, subjectID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := mapKey(provider, subjectID)
	if _, ok := m.entries[key]; !ok {
		return ports.ErrMappingNotFound
	}
	delete(m.entries, key)
	return nil
}

// Len returns the number of stored mappings.
func (m *MemoryIdentityMap) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// linkKey identifies one reverse-link slot on an account.
type linkKey struct {
	userID   string
	provider string
}

// MemoryUserDirectory is an in-memory account store enforcing the same
// uniqueness rules as the Postgres directory.
type MemoryUserDirectory struct {
	mu    sync.Mutex
	users map[string]model.User
	links map[linkKey]string

	// Hooks let individual tests inject failures or latency on specific
	// operations; nil hooks fall through to the default behavior.
	FindByEmailHook func(email string) error
	CreateUserHook  func(in ports.CreateUserInput) error
}

// NewMemoryUserDirectory creates an empty in-memory directory.
func NewMemoryUserDirectory() *MemoryUserDirectory {
	return &MemoryUserDirectory{
		users: make(map[string]model.User),
		links: make(map[linkKey]string),
	}
}

// Seed inserts an account directly, bypassing uniqueness checks. It returns
// the stored user for convenience.
func (d *MemoryUserDirectory) Seed(user model.User) model.User {
	d.mu.Lock()
	defer d.mu.Unlock()
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	d.users[user.ID] = user
	return user
}

func (d *MemoryUserDirectory) FindByEmail(_ context.Context, email string) (*model.User, error) {
	if d.FindByEmailHook != nil {
		if err := d.FindByEmailHook(email); err != nil {
			return nil, err
		}
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, u := range d.users {
		if u.Email == email {
			out := u
			return &out, nil
		}
	}
	return nil, ports.ErrUserNotFound
}

func (d *MemoryUserDirectory) CreateUser(_ context.Context, in ports.CreateUserInput) (*model.User, error) {
	if d.CreateUserHook != nil {
		if err := d.CreateUserHook(in); err != nil {
			return nil, err
		}
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, u := range d.users {
		if u.Username == in.Username {
			return nil, fmt.Errorf("%w: username already exists", ports.ErrAccountConflict)
		}
		if u.Email == in.Email {
			return nil, fmt.Errorf("%w: email already exists", ports.ErrAccountConflict)
		}
	}
	user := model.User{
		ID:       uuid.NewString(),
		Username: in.Username,
		Email:    in.Email,
	}
	d.users[user.ID] = user
	return &user, nil
}

func (d *MemoryUserDirectory) SetLinkedExternalID(_ context.Context, m ports.Mapping) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.links[linkKey{userID: m.UserID, provider: m.Provider}] = m.SubjectID
	return nil
}

func (d *MemoryUserDirectory) LinkedExternalID(_ context.Context, userID, provider string) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	subjectID, ok := d.links[linkKey{userID: userID, provider: provider}]
	if !ok {
		return "", ports.ErrNotLinked
	}
	return subjectID, nil
}

// UserCount returns the number of stored accounts.
func (d *MemoryUserDirectory) UserCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.users)
}

// UserByID returns a stored account by id.
func (d *MemoryUserDirectory) UserByID(id string) (model.User, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	u, ok := d.users[id]
	return u, ok
}

// RecordingGroupService records promotions and optionally fails them.
type RecordingGroupService struct {
	mu      sync.Mutex
	Members []string

	// Err, when set, is returned by every AddToPrivilegedGroup call.
	Err error
}

func (g *RecordingGroupService) AddToPrivilegedGroup(_ context.Context, userID string) error {
	if g.Err != nil {
		return g.Err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.Members = append(g.Members, userID)
	return nil
}

// Promoted returns a copy of the recorded member ids.
func (g *RecordingGroupService) Promoted() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]string, len(g.Members))
	copy(out, g.Members)
	return out
}
