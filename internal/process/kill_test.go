package process

// Notes:
// - Real kill behavior is covered by the browser integration tests; unit
//   tests only check that unusual PIDs are handled without panicking.

import "testing"

func TestKillProcessGroup_InvalidPID(t *testing.T) {
	t.Parallel()

	KillProcessGroup(999999999)
}

func TestKillProcessGroup_NonPositivePIDIgnored(t *testing.T) {
	t.Parallel()

	// Would signal the test's own process group if not guarded.
	KillProcessGroup(0)
	KillProcessGroup(-1)
}
