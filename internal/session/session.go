// Package session owns one editing session: the input and output text
// buffers with their undo histories, the request guard for the async
// cleaning operation, and the option snapshot policy. All mutating methods
// are expected to run on a single logical execution context (the Bubble
// Tea update loop); only the runner returned by IssueClean executes on a
// worker goroutine.
package session

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/zjrosen/polish/internal/cleaner"
	"github.com/zjrosen/polish/internal/history"
	"github.com/zjrosen/polish/internal/log"
	"github.com/zjrosen/polish/internal/pubsub"
)

// Archiver persists completed cleanings. Implemented by the sqlite
// repository; nil disables archiving.
type Archiver interface {
	Save(rec Record) error
}

// Record describes one completed cleaning for the archive.
type Record struct {
	ID        string
	SessionID string
	Input     string
	Output    string
	Options   cleaner.Options
	Duration  time.Duration
	CreatedAt time.Time
}

// Result carries a finished cleaning back to the update loop.
type Result struct {
	Ticket  history.Ticket
	Text    string
	Err     error
	Elapsed time.Duration
}

// Config configures a Session.
type Config struct {
	// Debounce is the commit coalescing interval for both buffers.
	Debounce time.Duration
	// Clock drives the buffers' debounce timers. Defaults to RealClock.
	Clock history.Clock
	// Cleaner produces cleaned text asynchronously. Required.
	Cleaner cleaner.Cleaner
	// Options is the initial cleaning options snapshot.
	Options cleaner.Options
	// Archive stores completed cleanings. Nil disables archiving.
	Archive Archiver
	// Changes receives a Change event for every history mutation on
	// either buffer. Nil disables notifications.
	Changes *pubsub.Broker[history.Change[string]]
}

// Session is one interactive editing session with independent input and
// output histories.
type Session struct {
	id      string
	input   *history.Buffer[string]
	output  *history.Buffer[string]
	guard   history.Guard
	cleaner cleaner.Cleaner
	archive Archiver

	opts     cleaner.Options
	errMsg   string
	cleaning bool
}

// New creates a session with empty buffers.
func New(cfg Config) *Session {
	return &Session{
		id: uuid.NewString(),
		input: history.NewBuffer(history.Config[string]{
			Debounce: cfg.Debounce,
			Clock:    cfg.Clock,
			Broker:   cfg.Changes,
		}),
		output: history.NewBuffer(history.Config[string]{
			Debounce: cfg.Debounce,
			Clock:    cfg.Clock,
			Broker:   cfg.Changes,
		}),
		cleaner: cfg.Cleaner,
		archive: cfg.Archive,
		opts:    cfg.Options,
	}
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Input returns the input buffer.
func (s *Session) Input() *history.Buffer[string] { return s.input }

// Output returns the output buffer.
func (s *Session) Output() *history.Buffer[string] { return s.output }

// Options returns the current cleaning options.
func (s *Session) Options() cleaner.Options { return s.opts }

// SetOptions replaces the cleaning options. In-flight requests keep the
// snapshot they were issued with.
func (s *Session) SetOptions(opts cleaner.Options) { s.opts = opts }

// Err returns the current user-visible error message, empty when none.
func (s *Session) Err() string { return s.errMsg }

// Cleaning reports whether a cleaning request is in flight and still
// relevant.
func (s *Session) Cleaning() bool { return s.cleaning }

// IssueClean flushes any pending input commit, snapshots the input text
// and options, issues a guard ticket, and returns a runner to execute on
// a worker goroutine. Every new issue supersedes all earlier ones; their
// results will be discarded on arrival. The returned runner performs no
// session mutation itself.
func (s *Session) IssueClean(ctx context.Context) (history.Ticket, func() Result) {
	s.input.Flush()
	ticket := s.guard.Issue()
	text := s.input.Value()
	opts := s.opts

	s.cleaning = true
	s.errMsg = ""
	log.Debug(log.CatSession, "clean issued", "session", s.id, "ticket", ticket, "bytes", len(text))

	runner := func() Result {
		start := time.Now()
		cleaned, err := s.cleaner.Clean(ctx, text, opts)
		return Result{
			Ticket:  ticket,
			Text:    cleaned,
			Err:     err,
			Elapsed: time.Since(start),
		}
	}
	return ticket, runner
}

// ApplyResult applies a finished cleaning if its ticket is still current.
// Superseded results are discarded silently regardless of success or
// failure; admitted successes force-commit the output buffer and archive
// the record; admitted failures surface as the session error without
// touching either history.
func (s *Session) ApplyResult(r Result) bool {
	if !s.guard.Admit(r.Ticket) {
		log.Debug(log.CatSession, "stale clean discarded", "session", s.id, "ticket", r.Ticket)
		return false
	}
	s.cleaning = false

	if r.Err != nil {
		s.errMsg = r.Err.Error()
		log.ErrorErr(log.CatSession, "clean failed", r.Err, "session", s.id)
		return false
	}

	s.errMsg = ""
	s.output.Set(r.Text, true)
	log.Info(log.CatSession, "clean applied", "session", s.id, "ticket", r.Ticket, "elapsed", r.Elapsed)

	if s.archive != nil {
		rec := Record{
			ID:        uuid.NewString(),
			SessionID: s.id,
			Input:     s.input.Value(),
			Output:    r.Text,
			Options:   s.opts,
			Duration:  r.Elapsed,
			CreatedAt: time.Now(),
		}
		if err := s.archive.Save(rec); err != nil {
			// Archive trouble must not disturb the editing session.
			log.ErrorErr(log.CatSession, "archive save failed", err, "session", s.id)
		}
	}
	return true
}

// ClearInput discards the input text with forced-commit semantics and, by
// application policy, resets the output buffer alongside it. Outstanding
// cleaning requests are superseded so no stale result lands afterwards.
func (s *Session) ClearInput() {
	s.guard.Invalidate()
	s.cleaning = false
	s.errMsg = ""
	s.input.Set("", true)
	s.output.Reset("")
}

// Reset reinitializes both buffers and discards all history and
// outstanding requests.
func (s *Session) Reset() {
	s.guard.Invalidate()
	s.cleaning = false
	s.errMsg = ""
	s.input.Reset("")
	s.output.Reset("")
}
