// Package eventlog defines the narrow, read-only capability set the
// reconciliation core needs against the external materialization event
// log and run database, plus a concrete in-memory implementation usable
// from the CLI in dry-run mode and from tests.
package eventlog

import "github.com/hashmap-kz/assetsensor/internal/asset"

// Completion describes the most recent completed materialization of an
// asset.
type Completion struct {
	Timestamp float64
	RunID     string
}

// Planned describes the most recent planned materialization of an asset,
// whether or not the owning run has finished.
type Planned struct {
	RunID string
}

// Adapter is the capability set injected into the decision engine and tick
// orchestrator. All operations are read-only from the core's perspective;
// results reflect all events durably recorded at call time, with no
// cross-call atomicity promised.
type Adapter interface {
	// LatestCompleted returns the most recent completed materialization of
	// key, or ok=false if there is none.
	LatestCompleted(key asset.Key) (c Completion, ok bool, err error)

	// LatestPlanned returns the most recent planned-materialization event
	// for key, or ok=false if there is none.
	LatestPlanned(key asset.Key) (p Planned, ok bool, err error)

	// RunInProgress reports whether runID is in a non-terminal state.
	RunInProgress(runID string) (bool, error)

	// PlannedAssetsInRun returns every asset key planned to materialize
	// inside runID.
	PlannedAssetsInRun(runID string) (asset.Set, error)
}
