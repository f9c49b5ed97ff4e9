package member

import (
	"context"
	"sync"

	"github.com/changhyeonkim/carwash-cms/go-api-server/internal/session"
	"github.com/changhyeonkim/carwash-cms/go-api-server/internal/shared/logger"
	"github.com/changhyeonkim/carwash-cms/go-api-server/internal/store"
)

// CacheRegistry owns one MemberCache per signed-in operator and drives it from session events.
type CacheRegistry struct {
	gateway store.Gateway

	mu     sync.Mutex
	caches map[string]*MemberCache
}

func NewCacheRegistry(gateway store.Gateway) *CacheRegistry {
	return &CacheRegistry{
		gateway: gateway,
		caches:  make(map[string]*MemberCache),
	}
}

// Subscribe attaches the registry to session events
func (r *CacheRegistry) Subscribe(notifier *session.Notifier) (unsubscribe func()) {
	return notifier.Subscribe(r.HandleSessionEvent)
}

// HandleSessionEvent loads the operator's cache on sign-in and resets it on sign-out.
func (r *CacheRegistry) HandleSessionEvent(ctx context.Context, ev session.Event) {
	log := logger.FromContext(ctx)

	if ev.Authenticated {
		log.Info("세션 시작 - 회원 캐시 로드", "operator_id", ev.OperatorID)
		r.open(ev.OperatorID).Initialize(ctx)
		return
	}

	r.mu.Lock()
	cache, ok := r.caches[ev.OperatorID]
	delete(r.caches, ev.OperatorID)
	r.mu.Unlock()

	if ok {
		cache.Reset()
		log.Info("세션 종료 - 회원 캐시 초기화", "operator_id", ev.OperatorID)
	}
}

// ForOperator returns the operator's cache, initializing it when the session was
// never announced (a still-valid token from before a restart) or the last load failed.
func (r *CacheRegistry) ForOperator(ctx context.Context, operatorID string) *MemberCache {
	cache := r.open(operatorID)
	if !cache.Initialized() {
		cache.Initialize(ctx)
	}
	return cache
}

func (r *CacheRegistry) open(operatorID string) *MemberCache {
	r.mu.Lock()
	defer r.mu.Unlock()

	cache, ok := r.caches[operatorID]
	if !ok {
		cache = NewMemberCache(r.gateway)
		r.caches[operatorID] = cache
	}
	return cache
}
