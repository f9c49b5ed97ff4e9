package testutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/changhyeonkim/carwash-cms/go-api-server/internal/model"
	"github.com/changhyeonkim/carwash-cms/go-api-server/internal/store"
)

// MockGateway is an in-memory store.Gateway for testing.
// It behaves like the real gateway unless a *Func override is set, and counts every call.
type MockGateway struct {
	mu    sync.Mutex
	docs  map[string]model.Member
	calls map[string]int

	CreateFunc  func(ctx context.Context, id, name, car string, isActive, validPayment bool, notes string) (string, error)
	ReadFunc    func(ctx context.Context, id string) (*model.Member, error)
	ReadAllFunc func(ctx context.Context) ([]model.Member, error)
	UpdateFunc  func(ctx context.Context, id string, patch model.MemberPatch) (string, error)
	DeleteFunc  func(ctx context.Context, id string) (string, error)
}

// Ensure MockGateway implements store.Gateway
var _ store.Gateway = (*MockGateway)(nil)

// NewMockGateway creates a mock gateway holding the given documents
func NewMockGateway(members ...model.Member) *MockGateway {
	g := &MockGateway{
		docs:  make(map[string]model.Member),
		calls: make(map[string]int),
	}
	g.Put(members...)
	return g
}

// Put writes documents directly, without counting a call
func (g *MockGateway) Put(members ...model.Member) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, m := range members {
		g.docs[m.ID] = m
	}
}

// Doc returns the stored document, bypassing the call counters
func (g *MockGateway) Doc(id string) (model.Member, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	m, ok := g.docs[id]
	return m, ok
}

// Calls returns how many times the named method ran
func (g *MockGateway) Calls(method string) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls[method]
}

func (g *MockGateway) count(method string) {
	g.mu.Lock()
	g.calls[method]++
	g.mu.Unlock()
}

func (g *MockGateway) Create(ctx context.Context, id, name, car string, isActive, validPayment bool, notes string) (string, error) {
	g.count("Create")
	if g.CreateFunc != nil {
		return g.CreateFunc(ctx, id, name, car, isActive, validPayment, notes)
	}
	g.Put(*model.NewMember(id, name, car, isActive, validPayment, notes))
	return id, nil
}

func (g *MockGateway) Read(ctx context.Context, id string) (*model.Member, error) {
	g.count("Read")
	if g.ReadFunc != nil {
		return g.ReadFunc(ctx, id)
	}
	m, ok := g.Doc(id)
	if !ok {
		return nil, nil
	}
	return &m, nil
}

func (g *MockGateway) ReadAll(ctx context.Context) ([]model.Member, error) {
	g.count("ReadAll")
	if g.ReadAllFunc != nil {
		return g.ReadAllFunc(ctx)
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	members := make([]model.Member, 0, len(g.docs))
	for _, m := range g.docs {
		members = append(members, m)
	}
	return members, nil
}

func (g *MockGateway) ReadByPaymentStatus(ctx context.Context, validPayment bool) ([]model.Member, error) {
	g.count("ReadByPaymentStatus")
	g.mu.Lock()
	defer g.mu.Unlock()
	var members []model.Member
	for _, m := range g.docs {
		if m.ValidPayment == validPayment {
			members = append(members, m)
		}
	}
	return members, nil
}

func (g *MockGateway) Update(ctx context.Context, id string, patch model.MemberPatch) (string, error) {
	g.count("Update")
	if g.UpdateFunc != nil {
		return g.UpdateFunc(ctx, id, patch)
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	m, ok := g.docs[id]
	if !ok {
		return "", fmt.Errorf("update member id=%s: %w", id, store.ErrNotFound)
	}
	patch.Apply(&m)
	g.docs[id] = m
	return id, nil
}

func (g *MockGateway) Delete(ctx context.Context, id string) (string, error) {
	g.count("Delete")
	if g.DeleteFunc != nil {
		return g.DeleteFunc(ctx, id)
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.docs[id]; !ok {
		return "", fmt.Errorf("delete member id=%s: %w", id, store.ErrNotFound)
	}
	delete(g.docs, id)
	return id, nil
}

func (g *MockGateway) HealthCheck(ctx context.Context) error {
	return nil
}
