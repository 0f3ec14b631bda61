package history

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGuard_LatestTicketWins(t *testing.T) {
	var g Guard

	t1 := g.Issue()
	t2 := g.Issue()

	assert.False(t, g.Admit(t1), "superseded ticket must be rejected")
	assert.True(t, g.Admit(t2))
}

func TestGuard_StaleResultRejectedRegardlessOfCompletionOrder(t *testing.T) {
	var g Guard

	t1 := g.Issue()
	t2 := g.Issue()

	// t2 completes first, then t1 straggles in.
	assert.True(t, g.Admit(t2))
	assert.False(t, g.Admit(t1))

	// t1 completes first, t2 after: still only t2 is admitted.
	var g2 Guard
	u1 := g2.Issue()
	u2 := g2.Issue()
	assert.False(t, g2.Admit(u1))
	assert.True(t, g2.Admit(u2))
}

func TestGuard_AdmitIsRepeatableUntilSuperseded(t *testing.T) {
	var g Guard

	ticket := g.Issue()
	assert.True(t, g.Admit(ticket))
	assert.True(t, g.Admit(ticket), "admission does not consume the ticket")

	g.Issue()
	assert.False(t, g.Admit(ticket))
}

func TestGuard_InvalidateSupersedesAllOutstanding(t *testing.T) {
	var g Guard

	ticket := g.Issue()
	g.Invalidate()

	assert.False(t, g.Admit(ticket))
	assert.Equal(t, Ticket(2), g.Current())
}

func TestGuard_TicketsStrictlyIncrease(t *testing.T) {
	var g Guard

	prev := g.Issue()
	for i := 0; i < 100; i++ {
		next := g.Issue()
		require.Greater(t, next, prev)
		prev = next
	}
}

func TestGuard_ConcurrentIssueProducesUniqueTickets(t *testing.T) {
	var g Guard

	const n = 64
	tickets := make([]Ticket, n)
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			tickets[i] = g.Issue()
		}(i)
	}
	wg.Wait()

	seen := make(map[Ticket]bool, n)
	for _, ticket := range tickets {
		require.False(t, seen[ticket], "duplicate ticket %d", ticket)
		seen[ticket] = true
	}
}
