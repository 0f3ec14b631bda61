package history

import "sync/atomic"

// Ticket correlates an issued async operation with its eventual completion.
// Tickets are strictly increasing per Guard.
type Ticket uint64

// Guard serializes the effect of overlapping async operations. Each
// operation takes a Ticket at issue time; when it completes, its result is
// applied only if no newer ticket has been issued since. The losing
// operation's underlying work is never cancelled, just its effect dropped.
//
// The counter is atomic so completions arriving from worker goroutines can
// consult it safely; effects themselves are expected to be applied on a
// single logical execution context (the tea update loop).
type Guard struct {
	current atomic.Uint64
}

// Issue allocates the next ticket and makes it current, superseding every
// previously issued ticket.
func (g *Guard) Issue() Ticket {
	return Ticket(g.current.Add(1))
}

// Admit reports whether a completion holding t is still the most recent
// operation and may apply its effect.
func (g *Guard) Admit(t Ticket) bool {
	return uint64(t) == g.current.Load()
}

// Invalidate supersedes all outstanding tickets without issuing a new one.
// Used when the guarded resource is reset and no in-flight result should
// land.
func (g *Guard) Invalidate() {
	g.current.Add(1)
}

// Current returns the most recently issued ticket.
func (g *Guard) Current() Ticket {
	return Ticket(g.current.Load())
}
