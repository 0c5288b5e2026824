package invitation

import "github.com/rs/zerolog/log"

// Advance moves an invitation to targetStatus and returns whether anything
// was updated. Unknown ids and unknown statuses return false rather than an
// error; callers must check the result.
//
// Transitions are permissive: nothing blocks re-entering an earlier status
// or leaving a terminal one, matching how the portal has always behaved.
// Engagement timestamps are only stamped the first time a status is reached,
// so replayed transitions never rewrite history.
func (r *Repository) Advance(id string, targetStatus Status) bool {
	if !targetStatus.IsValid() {
		return false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	inv, ok := r.records[id]
	if !ok {
		return false
	}

	previous := inv.Status
	inv.Status = targetStatus

	now := r.now()
	switch targetStatus {
	case StatusOpened:
		if inv.OpenedDate == nil {
			inv.OpenedDate = &now
		}
	case StatusStarted:
		if inv.StartedDate == nil {
			inv.StartedDate = &now
		}
	case StatusCompleted:
		if inv.CompletedDate == nil {
			inv.CompletedDate = &now
		}
	}

	log.Info().
		Str("invitation_id", id).
		Str("from", string(previous)).
		Str("to", string(targetStatus)).
		Bool("terminal", targetStatus.IsTerminal()).
		Msg("Invitation status advanced")

	return true
}

// IsValid reports whether an invitation can still be acted on: it exists,
// its expiry is in the future, and it has not been expired or declined.
// This is a read-time check only; no status transition happens here.
// Expiry is never evaluated by a background process.
func (r *Repository) IsValid(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	inv, ok := r.records[id]
	if !ok {
		return false
	}
	if r.now().After(inv.ExpiresDate) {
		return false
	}
	return inv.Status != StatusExpired && inv.Status != StatusDeclined
}
