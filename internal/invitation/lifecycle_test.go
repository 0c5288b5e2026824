package invitation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestAdvance_UnknownIDReturnsFalse(t *testing.T) {
	repo := newTestRepository()

	require.False(t, repo.Advance("INV-0-missing", StatusOpened))
	require.Empty(t, repo.ListAll())
}

func TestAdvance_UnknownStatusReturnsFalse(t *testing.T) {
	repo := newTestRepository()

	inv, err := repo.Create(validRequest())
	require.NoError(t, err)

	require.False(t, repo.Advance(inv.ID, Status("misplaced")))

	stored, err := repo.Get(inv.ID)
	require.NoError(t, err)
	require.Equal(t, StatusSent, stored.Status)
}

func TestAdvance_FullFunnelStampsTimestamps(t *testing.T) {
	repo := newTestRepository()

	inv, err := repo.Create(validRequest())
	require.NoError(t, err)

	require.True(t, repo.Advance(inv.ID, StatusOpened))
	require.True(t, repo.Advance(inv.ID, StatusStarted))
	require.True(t, repo.Advance(inv.ID, StatusCompleted))

	stored, err := repo.Get(inv.ID)
	require.NoError(t, err)
	require.Equal(t, StatusCompleted, stored.Status)
	require.NotNil(t, stored.OpenedDate)
	require.NotNil(t, stored.StartedDate)
	require.NotNil(t, stored.CompletedDate)
	require.False(t, stored.OpenedDate.Before(stored.SentDate))
	require.False(t, stored.StartedDate.Before(*stored.OpenedDate))
	require.False(t, stored.CompletedDate.Before(*stored.StartedDate))
}

func TestAdvance_TimestampStampingIsIdempotent(t *testing.T) {
	repo := newTestRepository()

	clock := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	repo.now = func() time.Time {
		clock = clock.Add(time.Hour)
		return clock
	}

	inv, err := repo.Create(validRequest())
	require.NoError(t, err)

	require.True(t, repo.Advance(inv.ID, StatusOpened))
	first, err := repo.Get(inv.ID)
	require.NoError(t, err)
	require.NotNil(t, first.OpenedDate)

	// Re-entering the same status must not move the original timestamp.
	require.True(t, repo.Advance(inv.ID, StatusOpened))
	second, err := repo.Get(inv.ID)
	require.NoError(t, err)
	require.Equal(t, *first.OpenedDate, *second.OpenedDate)
}

func TestStatusIsTerminal_FunnelEnds(t *testing.T) {
	require.True(t, StatusCompleted.IsTerminal())
	require.True(t, StatusExpired.IsTerminal())
	require.True(t, StatusDeclined.IsTerminal())

	require.False(t, StatusSent.IsTerminal())
	require.False(t, StatusOpened.IsTerminal())
	require.False(t, StatusStarted.IsTerminal())
}

func TestAdvance_PermissiveTransitionsPreserved(t *testing.T) {
	repo := newTestRepository()

	inv, err := repo.Create(validRequest())
	require.NoError(t, err)

	require.True(t, repo.Advance(inv.ID, StatusCompleted))
	// Leaving a terminal state is allowed; the machine is deliberately
	// permissive and the earlier timestamp survives.
	require.True(t, repo.Advance(inv.ID, StatusSent))

	stored, err := repo.Get(inv.ID)
	require.NoError(t, err)
	require.Equal(t, StatusSent, stored.Status)
	require.NotNil(t, stored.CompletedDate)
}

func TestIsValid_FreshInvitation(t *testing.T) {
	repo := newTestRepository()

	inv, err := repo.Create(validRequest())
	require.NoError(t, err)
	require.True(t, repo.IsValid(inv.ID))
}

func TestIsValid_UnknownID(t *testing.T) {
	repo := newTestRepository()
	require.False(t, repo.IsValid("INV-0-missing"))
}

func TestIsValid_PastExpiryEvenWhileSent(t *testing.T) {
	repo := newTestRepository()

	inv, err := repo.Create(validRequest())
	require.NoError(t, err)

	// Move the clock past the expiry without touching the record.
	repo.now = func() time.Time { return inv.ExpiresDate.Add(time.Hour) }

	stored, err := repo.Get(inv.ID)
	require.NoError(t, err)
	require.Equal(t, StatusSent, stored.Status)
	require.False(t, repo.IsValid(inv.ID))
}

func TestIsValid_DeclinedAndExpiredStatuses(t *testing.T) {
	repo := newTestRepository()

	declined, err := repo.Create(validRequest())
	require.NoError(t, err)
	require.True(t, repo.Advance(declined.ID, StatusDeclined))
	require.False(t, repo.IsValid(declined.ID))

	expired, err := repo.Create(validRequest())
	require.NoError(t, err)
	require.True(t, repo.Advance(expired.ID, StatusExpired))
	require.False(t, repo.IsValid(expired.ID))
}

func TestIsValid_CompletedIsStillValid(t *testing.T) {
	repo := newTestRepository()

	inv, err := repo.Create(validRequest())
	require.NoError(t, err)
	require.True(t, repo.Advance(inv.ID, StatusCompleted))
	require.True(t, repo.IsValid(inv.ID))
}
