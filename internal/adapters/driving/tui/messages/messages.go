// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

// LoginOpened carries the outcome of opening the external login page.
// URL is set even when Err is non-nil so it can be shown to the user.
type LoginOpened struct {
	URL string
	Err error
}

// CallbackCompleted carries the result of a code submission.
type CallbackCompleted struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
