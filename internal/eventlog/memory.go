package eventlog

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/hashmap-kz/assetsensor/internal/asset"
)

// plannedEvent records that a run intends to materialize an asset.
type plannedEvent struct {
	runID string
	key   asset.Key
}

// completedEvent records a successful materialization.
type completedEvent struct {
	runID     string
	key       asset.Key
	timestamp float64
}

// run tracks the lifecycle of a single run inside MemoryAdapter.
type run struct {
	id         string
	inProgress bool
}

// MemoryAdapter is an append-only, in-process Adapter implementation. It is
// the concrete stand-in for the out-of-scope external event-log store: the
// CLI uses it to run ticks locally from a snapshot file, and the decision,
// sensor and CLI tests drive scenarios through it directly.
type MemoryAdapter struct {
	runs      map[string]*run
	planned   []plannedEvent
	completed []completedEvent
}

// NewMemoryAdapter returns an empty event log.
func NewMemoryAdapter() *MemoryAdapter {
	return &MemoryAdapter{runs: make(map[string]*run)}
}

// StartRun begins a new run that plans to materialize the given keys, and
// returns its freshly minted run id. The run starts in progress.
func (m *MemoryAdapter) StartRun(planned ...asset.Key) string {
	id := uuid.NewString()
	m.runs[id] = &run{id: id, inProgress: true}
	for _, k := range planned {
		m.planned = append(m.planned, plannedEvent{runID: id, key: k})
	}
	return id
}

// Complete records a completed materialization of key at ts, as part of
// runID. It does not alter the run's in-progress state — callers that want
// the run to stop being "in progress" must also call Finish.
func (m *MemoryAdapter) Complete(runID string, key asset.Key, ts float64) {
	m.completed = append(m.completed, completedEvent{runID: runID, key: key, timestamp: ts})
}

// Finish marks runID as no longer in progress (terminal state).
func (m *MemoryAdapter) Finish(runID string) {
	if r, ok := m.runs[runID]; ok {
		r.inProgress = false
	}
}

func (m *MemoryAdapter) LatestCompleted(key asset.Key) (Completion, bool, error) {
	var latest Completion
	found := false
	for _, e := range m.completed {
		if e.key != key {
			continue
		}
		if !found || e.timestamp > latest.Timestamp {
			latest = Completion{Timestamp: e.timestamp, RunID: e.runID}
			found = true
		}
	}
	return latest, found, nil
}

func (m *MemoryAdapter) LatestPlanned(key asset.Key) (Planned, bool, error) {
	for i := len(m.planned) - 1; i >= 0; i-- {
		if m.planned[i].key == key {
			return Planned{RunID: m.planned[i].runID}, true, nil
		}
	}
	return Planned{}, false, nil
}

func (m *MemoryAdapter) RunInProgress(runID string) (bool, error) {
	r, ok := m.runs[runID]
	if !ok {
		return false, fmt.Errorf("eventlog: unknown run %q", runID)
	}
	return r.inProgress, nil
}

func (m *MemoryAdapter) PlannedAssetsInRun(runID string) (asset.Set, error) {
	out := asset.NewSet()
	for _, e := range m.planned {
		if e.runID == runID {
			out.Add(e.key)
		}
	}
	return out, nil
}

var _ Adapter = (*MemoryAdapter)(nil)
