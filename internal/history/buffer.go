// Package history provides undo/redo tracking for interactively edited
// values. A Buffer holds the visible value plus ordered past/future stacks
// of committed checkpoints, and decides per mutation whether the new value
// becomes a checkpoint immediately, after a debounce window, or not at all.
// The package also provides Guard, which arbitrates overlapping async
// operations so only the most recently issued one may apply its result.
package history

import (
	"sync"
	"time"

	"github.com/zjrosen/polish/internal/pubsub"
)

// Op identifies which mutation produced a Change event.
type Op string

const (
	// OpCommit means a new checkpoint was pushed onto the past stack.
	OpCommit Op = "commit"
	// OpUndo means the present value was rolled back one checkpoint.
	OpUndo Op = "undo"
	// OpRedo means a previously undone checkpoint was restored.
	OpRedo Op = "redo"
	// OpReset means all history was discarded and the buffer reinitialized.
	OpReset Op = "reset"
)

// ChangedEvent is published on the buffer's broker for every committed
// checkpoint, undo, redo, and reset.
const ChangedEvent pubsub.EventType = "history.changed"

// Change describes a history mutation for subscribers (UI refresh, logging).
type Change[T comparable] struct {
	Op      Op
	Value   T // present value after the mutation
	CanUndo bool
	CanRedo bool
}

// Config configures a Buffer.
type Config[T comparable] struct {
	// Initial is the value the buffer starts with. It is the bottom of the
	// undo chain: repeated undos end at this value.
	Initial T
	// Debounce is the quiet period required before an unforced Set becomes
	// a checkpoint. Zero means every Set commits immediately.
	Debounce time.Duration
	// Clock provides timer scheduling. Defaults to RealClock if nil.
	Clock Clock
	// Broker, when non-nil, receives a Change event for every mutation
	// that alters history state.
	Broker *pubsub.Broker[Change[T]]
}

// Buffer tracks one editable value and its undo/redo history.
//
// The present value always reflects the latest Set immediately; history
// checkpoints lag behind it by at most one debounce window. past is ordered
// oldest to newest (undo pops the end), future is ordered nearest redo
// first (redo pops the front). lastCommitted is the snapshot that the next
// commit pushes onto past, which is not necessarily equal to present while
// edits sit inside an open debounce window.
//
// All methods are safe for concurrent use. The debounce timer fires on its
// own goroutine, so state is guarded by a mutex, and every scheduled commit
// carries a generation number: a fire that lost the race against a cancel
// observes the mismatch and does nothing.
type Buffer[T comparable] struct {
	mu            sync.Mutex
	present       T
	lastCommitted T
	past          []T
	future        []T

	debounce time.Duration
	clock    Clock
	broker   *pubsub.Broker[Change[T]]

	pending    Timer
	pendingGen uint64
}

// NewBuffer creates a buffer initialized to cfg.Initial with empty stacks.
func NewBuffer[T comparable](cfg Config[T]) *Buffer[T] {
	clock := cfg.Clock
	if clock == nil {
		clock = RealClock{}
	}
	return &Buffer[T]{
		present:       cfg.Initial,
		lastCommitted: cfg.Initial,
		debounce:      cfg.Debounce,
		clock:         clock,
		broker:        cfg.Broker,
	}
}

// Set updates the present value. Setting the current value is a no-op.
//
// When force is true or no debounce interval is configured, the change is
// committed synchronously. Otherwise any previously scheduled commit is
// cancelled and a fresh one is scheduled for one debounce interval from
// now, so rapid successive edits coalesce into a single checkpoint per
// quiet period.
func (b *Buffer[T]) Set(value T, force bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if value == b.present {
		return
	}
	b.present = value

	if force || b.debounce <= 0 {
		b.commitLocked()
		return
	}

	b.cancelPendingLocked()
	gen := b.pendingGen
	b.pending = b.clock.AfterFunc(b.debounce, func() {
		b.firePending(gen)
	})
}

// Flush commits immediately any edit still waiting inside an open
// debounce window. No-op when the present value is already committed and
// nothing is scheduled. Actions that must observe a stable checkpoint
// (issuing a cleaning request) call this instead of waiting out the timer.
func (b *Buffer[T]) Flush() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.pending == nil && b.present == b.lastCommitted {
		return
	}
	b.commitLocked()
}

// Undo rolls the present value back to the most recent checkpoint.
// No-op when the past stack is empty. Any pending debounced commit is
// cancelled; the in-flight present value moves to the redo stack as-is.
func (b *Buffer[T]) Undo() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.past) == 0 {
		return
	}
	b.cancelPendingLocked()

	b.future = append([]T{b.present}, b.future...)
	top := b.past[len(b.past)-1]
	b.past = b.past[:len(b.past)-1]
	b.present = top
	b.lastCommitted = top

	b.publishLocked(OpUndo)
}

// Redo restores the nearest undone checkpoint. Exact mirror of Undo;
// no-op when the future stack is empty.
func (b *Buffer[T]) Redo() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.future) == 0 {
		return
	}
	b.cancelPendingLocked()

	b.past = append(b.past, b.present)
	next := b.future[0]
	b.future = b.future[1:]
	b.present = next
	b.lastCommitted = next

	b.publishLocked(OpRedo)
}

// Reset discards all history and reinitializes the buffer to value,
// cancelling any pending debounced commit.
func (b *Buffer[T]) Reset(value T) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.cancelPendingLocked()
	b.present = value
	b.lastCommitted = value
	b.past = nil
	b.future = nil

	b.publishLocked(OpReset)
}

// Value returns the present value.
func (b *Buffer[T]) Value() T {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.present
}

// CanUndo reports whether the past stack is non-empty.
func (b *Buffer[T]) CanUndo() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.past) > 0
}

// CanRedo reports whether the future stack is non-empty.
func (b *Buffer[T]) CanRedo() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.future) > 0
}

// Past returns a copy of the past stack, oldest first.
func (b *Buffer[T]) Past() []T {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]T, len(b.past))
	copy(out, b.past)
	return out
}

// Future returns a copy of the future stack, nearest redo first.
func (b *Buffer[T]) Future() []T {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]T, len(b.future))
	copy(out, b.future)
	return out
}

// LastCommitted returns the value most recently pushed into history, or
// the initial/reset value when no commit has occurred yet.
func (b *Buffer[T]) LastCommitted() T {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lastCommitted
}

// firePending is the debounce timer callback. The generation check makes a
// fire that raced with Stop (or was superseded by a newer Set) a no-op.
func (b *Buffer[T]) firePending(gen uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if gen != b.pendingGen || b.pending == nil {
		return
	}
	b.pending = nil
	b.commitLocked()
}

// commitLocked pushes the last committed snapshot onto past, clears the
// redo stack, and records present as the new committed value.
func (b *Buffer[T]) commitLocked() {
	b.cancelPendingLocked()
	b.past = append(b.past, b.lastCommitted)
	b.future = nil
	b.lastCommitted = b.present

	b.publishLocked(OpCommit)
}

// cancelPendingLocked stops any outstanding timer and bumps the generation
// so an already-fired callback waiting on the mutex cannot commit.
func (b *Buffer[T]) cancelPendingLocked() {
	if b.pending != nil {
		b.pending.Stop()
		b.pending = nil
	}
	b.pendingGen++
}

func (b *Buffer[T]) publishLocked(op Op) {
	if b.broker == nil {
		return
	}
	b.broker.Publish(ChangedEvent, Change[T]{
		Op:      op,
		Value:   b.present,
		CanUndo: len(b.past) > 0,
		CanRedo: len(b.future) > 0,
	})
}
