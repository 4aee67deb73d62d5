package tui

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/hublogin/internal/core/domain"
)

// MockLoginService implements driving.LoginService for testing.
type MockLoginService struct {
	mu        sync.Mutex
	Submitted []string
	SubmitErr error
}

func (m *MockLoginService) LoginURL(resp domain.HubResponse) string {
	if resp.HasLoginURL() {
		return *resp.LoginURL
	}
	return "http://localhost:8888/globus-jupyterlab/login"
}

func (m *MockLoginService) OpenLogin(_ context.Context, resp domain.HubResponse) (string, error) {
	return m.LoginURL(resp), nil
}

func (m *MockLoginService) SubmitCode(_ context.Context, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Submitted = append(m.Submitted, code)
	return m.SubmitErr
}

func TestNewPorts(t *testing.T) {
	svc := &MockLoginService{}
	details := "prior failure"

	ports := NewPorts(svc, domain.HubResponse{Details: &details})

	assert.Equal(t, svc, ports.Login)
	assert.True(t, ports.HubResponse.HasDetails())
}

func TestPorts_Validate(t *testing.T) {
	assert.NoError(t, NewPorts(&MockLoginService{}, domain.HubResponse{}).Validate())
	assert.ErrorIs(t, (&Ports{}).Validate(), ErrMissingLoginService)

	var nilPorts *Ports
	assert.ErrorIs(t, nilPorts.Validate(), ErrInvalidPorts)
}
