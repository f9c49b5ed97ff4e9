package member

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/changhyeonkim/carwash-cms/go-api-server/internal/model"
	"github.com/changhyeonkim/carwash-cms/go-api-server/internal/shared/logger"
	"github.com/changhyeonkim/carwash-cms/go-api-server/internal/store"
	"golang.org/x/sync/singleflight"
)

// State is the read-only view rendered by the UI
type State struct {
	Members   []model.Member `json:"members"`
	IsLoading bool           `json:"isLoading"`
	Error     *string        `json:"error"`
}

// MemberCache is the in-memory copy of the member collection for one operator session.
//
// Every mutation calls the gateway first and patches the cache only after the
// call succeeded. The lock is never held across a gateway call; cache state is
// re-read under the lock once the call returns.
type MemberCache struct {
	gateway store.Gateway

	mu          sync.Mutex
	members     []model.Member
	active      bool // a session is present
	initialized bool
	loads       int // bulk loads in flight
	lastError   string
	generation  uint64 // bumped on Reset, stale loads are discarded

	loader singleflight.Group // coalesces Initialize
}

func NewMemberCache(gateway store.Gateway) *MemberCache {
	return &MemberCache{
		gateway: gateway,
	}
}

// Initialize bulk loads the collection when a session becomes authenticated.
// It is a no-op once initialized. Concurrent callers share one load. Failures
// are kept on State.Error, not returned, and leave the cache uninitialized so
// the next trigger retries.
func (c *MemberCache) Initialize(ctx context.Context) {
	c.mu.Lock()
	c.active = true
	if c.initialized {
		c.mu.Unlock()
		return
	}
	gen := c.generation
	c.mu.Unlock()

	// Keyed by generation so a load started before Reset is never joined
	_, _, _ = c.loader.Do(strconv.FormatUint(gen, 10), func() (any, error) {
		c.load(ctx, gen)
		return nil, nil
	})
}

func (c *MemberCache) load(ctx context.Context, gen uint64) {
	c.mu.Lock()
	if gen != c.generation || c.initialized {
		c.mu.Unlock()
		return
	}
	c.beginLoadLocked()
	c.mu.Unlock()

	members, err := c.gateway.ReadAll(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.endLoadLocked(gen) {
		return
	}

	if err != nil {
		logger.FromContext(ctx).Error("회원 목록 로드 실패", "error", err)
		// A refresh finished first; its result stands
		if c.initialized {
			return
		}
		c.lastError = loadFailedMessage
		c.members = nil
		return
	}

	c.members = members
	c.initialized = true
	logger.FromContext(ctx).Info("회원 목록 로드 완료", "count", len(members))
}

// Reset drops everything when the session ends, so the next sign-in reloads.
func (c *MemberCache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.generation++
	c.active = false
	c.members = nil
	c.initialized = false
	c.loads = 0
	c.lastError = ""
}

// GetMember returns the cached record or fetches it on a miss.
// Cached entries are authoritative for the lifetime of the session.
// Returns nil, nil when the record exists neither in the cache nor remotely.
func (c *MemberCache) GetMember(ctx context.Context, id string) (*model.Member, error) {
	c.mu.Lock()
	if i := c.indexLocked(id); i >= 0 {
		m := c.members[i]
		c.mu.Unlock()
		return &m, nil
	}
	c.mu.Unlock()

	remote, err := c.gateway.Read(ctx, id)
	if err != nil {
		logger.FromContext(ctx).Error("회원 조회 실패", "id", id, "error", err)
		return nil, err
	}
	if remote == nil {
		return nil, nil
	}

	// Concurrent misses for the same id may all reach this point
	c.mu.Lock()
	if c.indexLocked(remote.ID) < 0 {
		c.members = append(c.members, *remote)
	}
	c.mu.Unlock()

	return remote, nil
}

// CreateMember upserts remotely, then appends to the cache.
// The append is unconditional: creating an id that is already cached leaves two
// entries locally while the store holds one.
func (c *MemberCache) CreateMember(ctx context.Context, id, name, car string, isActive, validPayment bool, notes string) (string, error) {
	if _, err := c.gateway.Create(ctx, id, name, car, isActive, validPayment, notes); err != nil {
		logger.FromContext(ctx).Error("회원 생성 실패", "id", id, "error", err)
		return "", err
	}

	c.mu.Lock()
	c.members = append(c.members, *model.NewMember(id, name, car, isActive, validPayment, notes))
	c.mu.Unlock()

	return id, nil
}

// UpdateMember patches remotely, then merges the same fields into the cached entry.
func (c *MemberCache) UpdateMember(ctx context.Context, id string, patch model.MemberPatch) (string, error) {
	if _, err := c.gateway.Update(ctx, id, patch); err != nil {
		logger.FromContext(ctx).Error("회원 수정 실패", "id", id, "error", err)
		return "", err
	}

	c.mu.Lock()
	for i := range c.members {
		if c.members[i].ID == id {
			patch.Apply(&c.members[i])
		}
	}
	c.mu.Unlock()

	return id, nil
}

// DeleteMember deletes remotely, then drops the entry from the cache.
func (c *MemberCache) DeleteMember(ctx context.Context, id string) (string, error) {
	if _, err := c.gateway.Delete(ctx, id); err != nil {
		logger.FromContext(ctx).Error("회원 삭제 실패", "id", id, "error", err)
		return "", err
	}

	c.mu.Lock()
	kept := c.members[:0]
	for _, m := range c.members {
		if m.ID != id {
			kept = append(kept, m)
		}
	}
	c.members = kept
	c.mu.Unlock()

	return id, nil
}

// RefreshMembers replaces the whole cache with a fresh bulk load, discarding
// entries added by GetMember in the meantime. No-op without a session.
// Unlike Initialize, the failure is returned to the caller.
func (c *MemberCache) RefreshMembers(ctx context.Context) error {
	c.mu.Lock()
	if !c.active {
		c.mu.Unlock()
		return nil
	}
	gen := c.beginLoadLocked()
	c.mu.Unlock()

	members, err := c.gateway.ReadAll(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	current := c.endLoadLocked(gen)

	if err != nil {
		logger.FromContext(ctx).Error("회원 목록 새로고침 실패", "error", err)
		if current {
			c.lastError = refreshFailedMessage
		}
		return fmt.Errorf("refresh members: %w: %w", ErrCacheLoad, err)
	}

	if current {
		c.members = members
		c.initialized = true
	}
	return nil
}

// Snapshot copies the current state for rendering
func (c *MemberCache) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	state := State{
		Members:   make([]model.Member, len(c.members)),
		IsLoading: c.loads > 0,
	}
	copy(state.Members, c.members)
	if c.lastError != "" {
		msg := c.lastError
		state.Error = &msg
	}
	return state
}

// Members returns a copy of the cached records
func (c *MemberCache) Members() []model.Member {
	return c.Snapshot().Members
}

// Search filters the cached records by a case-insensitive name substring.
func (c *MemberCache) Search(name string) []model.Member {
	members := c.Members()
	term := strings.ToLower(strings.TrimSpace(name))
	if term == "" {
		return members
	}

	matched := make([]model.Member, 0, len(members))
	for _, m := range members {
		if strings.Contains(strings.ToLower(m.Name), term) {
			matched = append(matched, m)
		}
	}
	return matched
}

// Initialized reports whether a bulk load succeeded for the current session
func (c *MemberCache) Initialized() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.initialized
}

func (c *MemberCache) indexLocked(id string) int {
	for i := range c.members {
		if c.members[i].ID == id {
			return i
		}
	}
	return -1
}

func (c *MemberCache) beginLoadLocked() uint64 {
	c.loads++
	c.lastError = ""
	return c.generation
}

// endLoadLocked reports whether the load still belongs to the current session
func (c *MemberCache) endLoadLocked(gen uint64) bool {
	if gen != c.generation {
		return false
	}
	c.loads--
	return true
}
