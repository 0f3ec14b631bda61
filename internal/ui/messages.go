package ui

import "github.com/zjrosen/polish/internal/session"

// cleanResultMsg delivers a finished cleaning request to the update loop.
// Stale results are discarded there by the session's guard.
type cleanResultMsg session.Result

// spinnerTickMsg advances the working spinner frame.
type spinnerTickMsg struct{}

// clipboardDoneMsg reports the outcome of a copy-to-clipboard command.
type clipboardDoneMsg struct {
	err error
}

// toastExpireMsg clears the transient status message. The id ties the
// expiry to the toast that scheduled it so a newer toast is not cleared
// by an older timer.
type toastExpireMsg struct {
	id int
}
