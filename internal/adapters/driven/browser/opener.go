// Package browser opens URLs in the user's default browser.
package browser

import (
	"fmt"
	"net/url"
	"os/exec"
	"runtime"

	"github.com/custodia-labs/hublogin/internal/core/domain"
	"github.com/custodia-labs/hublogin/internal/core/ports/driven"
	"github.com/custodia-labs/hublogin/internal/logger"
)

// Ensure Opener implements the interface.
var _ driven.BrowserOpener = (*Opener)(nil)

// Runner starts an external command without waiting for it.
type Runner func(name string, args ...string) error

// Opener launches the platform URL handler.
type Opener struct {
	goos string
	run  Runner
}

// NewOpener creates an opener for the current platform.
func NewOpener() *Opener {
	return &Opener{
		goos: runtime.GOOS,
		run:  startCommand,
	}
}

// NewOpenerWithRunner creates an opener for goos using run. Used in tests.
func NewOpenerWithRunner(goos string, run Runner) *Opener {
	return &Opener{goos: goos, run: run}
}

// Open opens rawURL. System browsers choose their own window, so the window
// name and size are only logged.
func (o *Opener) Open(rawURL string, window domain.LoginWindow) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("parse url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("refusing to open %q: %w", rawURL, ErrUnsupportedScheme)
	}

	name, args, err := o.command(rawURL)
	if err != nil {
		return err
	}

	logger.Debug("opening %q window (%dx%d) via %s", window.Name, window.Width, window.Height, name)
	return o.run(name, args...)
}

func (o *Opener) command(rawURL string) (string, []string, error) {
	switch o.goos {
	case "darwin":
		return "open", []string{rawURL}, nil
	case "linux", "freebsd", "openbsd":
		return "xdg-open", []string{rawURL}, nil
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", rawURL}, nil
	default:
		return "", nil, fmt.Errorf("unsupported platform: %s", o.goos)
	}
}

func startCommand(name string, args ...string) error {
	return exec.Command(name, args...).Start()
}
