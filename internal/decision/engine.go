package decision

import (
	"fmt"

	"github.com/hashmap-kz/assetsensor/internal/asset"
	"github.com/hashmap-kz/assetsensor/internal/eventlog"
)

// Decide evaluates a single child asset against its parents.
//
//   - child: the asset being considered for launch this tick.
//   - parents: the child's direct parents (monitored or not — source and
//     external parents are evaluated identically; a known limitation is
//     that they can never produce a WillLaunch/NewUpdate status since
//     they have no observable materializations of their own inside this
//     system, short of one landing in the event log).
//   - cursor: the child's current cursor value (t_c).
//   - launchSet: the set of assets already decided-to-launch earlier in
//     this tick's topological order.
//   - waitForInProgress: Step A is only evaluated when this is true.
//
// Decide never mutates launchSet. Every returned map entry corresponds to
// exactly one parent in parents; a nil/empty parents set always yields an
// empty map and Launch()==false.
func Decide(log eventlog.Adapter, child asset.Key, parents asset.Set, cursor float64, launchSet asset.Set, waitForInProgress bool) (map[asset.Key]Status, error) {
	results := make(map[asset.Key]Status, len(parents))

	if waitForInProgress {
		abort, err := anyParentInProgress(log, parents, launchSet)
		if err != nil {
			return nil, fmt.Errorf("decision: checking in-progress parents of %s: %w", child.String(), err)
		}
		if abort {
			for p := range parents {
				results[p] = Status{Kind: NoChange}
			}
			return results, nil
		}
	}

	for p := range parents {
		status, err := evaluateParent(log, child, p, cursor, launchSet)
		if err != nil {
			return nil, fmt.Errorf("decision: evaluating parent %s of %s: %w", p.String(), child.String(), err)
		}
		results[p] = status
	}
	return results, nil
}

// anyParentInProgress implements Step A: scan parents once, skipping those
// already in launchSet, and abort (return true) as soon as one has a
// planned materialization inside a run that is still in progress.
func anyParentInProgress(log eventlog.Adapter, parents asset.Set, launchSet asset.Set) (bool, error) {
	for p := range parents {
		if launchSet.Contains(p) {
			continue
		}
		planned, ok, err := log.LatestPlanned(p)
		if err != nil {
			return false, err
		}
		if !ok {
			continue
		}
		inProgress, err := log.RunInProgress(planned.RunID)
		if err != nil {
			return false, err
		}
		if inProgress {
			return true, nil
		}
	}
	return false, nil
}

// evaluateParent implements Step B for a single parent.
func evaluateParent(log eventlog.Adapter, child, p asset.Key, cursor float64, launchSet asset.Set) (Status, error) {
	if launchSet.Contains(p) {
		// p will be launched by this same tick; true time is unknown.
		return Status{Kind: WillLaunch, Timestamp: 0}, nil
	}

	completion, ok, err := log.LatestCompleted(p)
	if err != nil {
		return Status{}, err
	}
	if !ok || completion.Timestamp <= cursor {
		return Status{Kind: NoChange}, nil
	}

	coMaterialized, err := log.PlannedAssetsInRun(completion.RunID)
	if err != nil {
		return Status{}, err
	}
	if coMaterialized.Contains(child) {
		// The run that produced p also produced child: child is already
		// current for this event, but the cursor must still advance past
		// it so it doesn't re-fire next tick.
		return Status{Kind: CoMaterialized, Timestamp: completion.Timestamp}, nil
	}
	return Status{Kind: NewUpdate, Timestamp: completion.Timestamp}, nil
}

// Launch implements Step C's launch predicate: given the per-parent
// statuses and the sensor's mode, decide whether the child launches.
func Launch(statuses map[asset.Key]Status, andCondition bool) bool {
	if len(statuses) == 0 {
		// A monitored asset with no parents never has anything to react
		// to; it is never launched by this rule (it would need an
		// explicit manual trigger, out of scope here).
		return false
	}
	if andCondition {
		for _, s := range statuses {
			if !s.Updated() {
				return false
			}
		}
		return true
	}
	for _, s := range statuses {
		if s.Updated() {
			return true
		}
	}
	return false
}

// NextCursor computes max(cursor, max contributing timestamp) over every
// parent status. The orchestrator calls this only for a child that is
// itself launching this tick; a child that does not launch keeps its
// seeded cursor value untouched, regardless of what its parents did. See
// DESIGN.md's note on cursor advance vs. launch for why the worked
// examples suggest otherwise.
func NextCursor(cursor float64, statuses map[asset.Key]Status) float64 {
	next := cursor
	for _, s := range statuses {
		if s.Timestamp > next {
			next = s.Timestamp
		}
	}
	return next
}
