package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/flashgen-api/internal/domain"
	"github.com/phrazzld/flashgen-api/internal/service"
	"github.com/phrazzld/flashgen-api/internal/store"
)

// MockPaymentProvider implements service.PaymentProvider for testing
type MockPaymentProvider struct {
	ChargeFn func(ctx context.Context, req service.ChargeRequest) (*service.ChargeResult, error)

	// Default response values
	Result *service.ChargeResult
	Err    error

	ChargeCalls struct {
		mu       sync.Mutex
		Count    int
		Requests []service.ChargeRequest
	}
}

var _ service.PaymentProvider = (*MockPaymentProvider)(nil)

// Charge implements service.PaymentProvider
func (m *MockPaymentProvider) Charge(ctx context.Context, req service.ChargeRequest) (*service.ChargeResult, error) {
	m.ChargeCalls.mu.Lock()
	m.ChargeCalls.Count++
	m.ChargeCalls.Requests = append(m.ChargeCalls.Requests, req)
	m.ChargeCalls.mu.Unlock()

	if m.ChargeFn != nil {
		return m.ChargeFn(ctx, req)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Result == nil {
		return &service.ChargeResult{}, nil
	}
	r := *m.Result
	return &r, nil
}

// CallCount returns the number of Charge calls so far.
func (m *MockPaymentProvider) CallCount() int {
	m.ChargeCalls.mu.Lock()
	defer m.ChargeCalls.mu.Unlock()
	return m.ChargeCalls.Count
}

// MockPaymentStore implements store.PaymentStore for testing
type MockPaymentStore struct {
	CreateFn func(ctx context.Context, record *domain.PaymentRecord) error

	mu      sync.Mutex
	Records []*domain.PaymentRecord
}

var _ store.PaymentStore = (*MockPaymentStore)(nil)

// Create implements store.PaymentStore
func (m *MockPaymentStore) Create(ctx context.Context, record *domain.PaymentRecord) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, record)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Records = append(m.Records, record)
	return nil
}

// Saved returns a copy of the records written so far.
func (m *MockPaymentStore) Saved() []*domain.PaymentRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*domain.PaymentRecord(nil), m.Records...)
}
