// Package mocks provides centralized mock implementations for testing.
//
// Each mock has function fields for overriding behavior, default return
// values, and mutex-guarded call tracking so tests can assert how many times
// a collaborator was reached and with what arguments.
//
// Usage:
//
//	provider := &mocks.MockPaymentProvider{
//	    Result: &service.ChargeResult{State: "PENDING", InvoiceID: "INV-1"},
//	}
//	svc, _ := service.NewPaymentService(provider, &mocks.MockPaymentStore{}, "KES", nil)
//	// ...
//	assert.Equal(t, 1, provider.ChargeCalls.Count)
package mocks
