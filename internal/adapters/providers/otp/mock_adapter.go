package otp

import (
	"context"
	"sync"

	"github.com/vikramraju/customer-feedback/backend/internal/domain/providers"
)

// MockAdapter implements an in-memory OTP provider for development and
// testing. Every send records a fixed code; Check compares against it.
type MockAdapter struct {
	mu    sync.Mutex
	codes map[string]string
	code  string
}

// NewMockAdapter creates a new mock OTP provider.
func NewMockAdapter() *MockAdapter {
	return &MockAdapter{
		codes: make(map[string]string),
		code:  "000000",
	}
}

// Send records a pending verification for the phone number.
func (m *MockAdapter) Send(ctx context.Context, phone, channel string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.codes[phone] = m.code
	return nil
}

// Check verifies the submitted code against the recorded one.
func (m *MockAdapter) Check(ctx context.Context, phone, code string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	expected, ok := m.codes[phone]
	if !ok {
		return false, nil
	}
	if expected != code {
		return false, nil
	}
	delete(m.codes, phone)
	return true, nil
}

var _ providers.OTPProvider = (*MockAdapter)(nil)
