package models

import "testing"

func TestCanTransition(t *testing.T) {
	allowed := []struct{ from, to BookingStatus }{
		{BookingPending, BookingAccepted},
		{BookingPending, BookingRejected},
		{BookingPending, BookingCancelled},
		{BookingAccepted, BookingCompleted},
		{BookingAccepted, BookingCancelled},
	}
	for _, tr := range allowed {
		if !CanTransition(tr.from, tr.to) {
			t.Errorf("%s -> %s should be allowed", tr.from, tr.to)
		}
	}

	// no skipping intermediate states
	if CanTransition(BookingPending, BookingCompleted) {
		t.Error("PENDING must not jump directly to COMPLETED")
	}
}

func TestTerminalStatesHaveNoOutgoingTransitions(t *testing.T) {
	all := []BookingStatus{BookingPending, BookingAccepted, BookingRejected, BookingCompleted, BookingCancelled}
	for _, from := range []BookingStatus{BookingRejected, BookingCompleted, BookingCancelled} {
		if !from.Terminal() {
			t.Errorf("%s should be terminal", from)
		}
		for _, to := range all {
			if CanTransition(from, to) {
				t.Errorf("terminal %s must not transition to %s", from, to)
			}
		}
	}
}
