package progress

import "testing"

// Discard must satisfy Sink and tolerate any calls without panicking.
func TestDiscardToleratesCalls(t *testing.T) {
	Discard.Status("anything")
	Discard.Completed(true)
	Discard.Completed(false)
}
