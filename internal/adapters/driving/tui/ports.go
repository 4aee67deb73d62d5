// Package tui provides the interactive terminal login panel for hublogin.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/hublogin/internal/core/domain"
	"github.com/custodia-labs/hublogin/internal/core/ports/driving"
)

// Ports aggregates the driving ports and inputs required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Login opens the login page and submits authorization codes.
	Login driving.LoginService

	// HubResponse describes why the login panel is shown.
	HubResponse domain.HubResponse
}

// NewPorts creates a new Ports aggregate.
func NewPorts(login driving.LoginService, resp domain.HubResponse) *Ports {
	return &Ports{
		Login:       login,
		HubResponse: resp,
	}
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Login == nil {
		return ErrMissingLoginService
	}
	return nil
}
