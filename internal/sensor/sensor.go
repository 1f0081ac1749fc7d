// Package sensor implements the tick orchestrator: the public entry point
// that wires the graph builder, topological orderer, decision engine and
// cursor codec together into a single tick.
package sensor

import (
	"fmt"
	"regexp"

	"github.com/hashmap-kz/assetsensor/internal/asset"
	"github.com/hashmap-kz/assetsensor/internal/cursor"
	"github.com/hashmap-kz/assetsensor/internal/decision"
	"github.com/hashmap-kz/assetsensor/internal/eventlog"
	"github.com/hashmap-kz/assetsensor/internal/graph"
)

// DefaultStatus mirrors the framework's sensor activation state, passed
// through unchanged.
type DefaultStatus int

const (
	StatusStopped DefaultStatus = iota
	StatusRunning
)

// nameRE enforces a printable, separator-free sensor name: letters,
// digits, underscore, hyphen and dot, non-empty.
var nameRE = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

// Sensor is the full constructor surface for a reconciliation sensor. It
// is immutable once built by New.
type Sensor struct {
	Name                   string
	Selection              Selection
	AndCondition           bool
	WaitForInProgressRuns  bool
	MinimumIntervalSeconds *int
	Description            string
	DefaultStatus          DefaultStatus
}

// Selection resolves a sensor's asset-selection expression against a
// repository universe into a concrete key set. Kept as an interface so
// internal/repo's selection syntax is not a compile-time dependency of
// this package.
type Selection interface {
	Resolve(univ graph.Universe) ([]asset.Key, error)
}

// Config groups the optional constructor fields so New's signature stays
// small; only Name and Selection are required.
type Config struct {
	AndCondition           bool
	WaitForInProgressRuns  bool
	MinimumIntervalSeconds *int
	Description            string
	DefaultStatus          DefaultStatus
}

// New validates name eagerly and builds a Sensor. AndCondition and
// WaitForInProgressRuns both default to false on the zero Config, so New
// takes explicit bools via cfg rather than silently defaulting — callers
// that want the conservative defaults should pass
// Config{AndCondition: true, WaitForInProgressRuns: true}.
func New(name string, selection Selection, cfg Config) (*Sensor, error) {
	if !nameRE.MatchString(name) {
		return nil, fmt.Errorf("sensor: %w: %q", ErrInvalidName, name)
	}
	return &Sensor{
		Name:                   name,
		Selection:              selection,
		AndCondition:           cfg.AndCondition,
		WaitForInProgressRuns:  cfg.WaitForInProgressRuns,
		MinimumIntervalSeconds: cfg.MinimumIntervalSeconds,
		Description:            cfg.Description,
		DefaultStatus:          cfg.DefaultStatus,
	}, nil
}

// RunRequest is the boundary object emitted to the job execution system:
// at most one per tick.
type RunRequest struct {
	RunKey    string
	Selection []asset.Key // topological order, see graph.TopoSort
}

// SkipReason records, per asset, why a monitored child did not launch —
// operator-facing bookkeeping surfaced by the describe CLI command.
type SkipReason struct {
	Asset  asset.Key
	Reason string
}

// TickResult is everything a tick produced, whether or not a run was
// requested.
type TickResult struct {
	Run         *RunRequest // nil if nothing launched
	NextCursor  cursor.Cursor
	CursorBlob  string // "" if the cursor was not rewritten this tick
	SkipReasons []SkipReason
	TopoOrder   []asset.Key
	UpstreamMap graph.UpstreamMap
}

var ErrInvalidName = fmt.Errorf("invalid sensor name")

// Tick runs one invocation of the reconciliation sensor. It is a pure
// function of (cursorBlob, univ, log) to (TickResult, error): all I/O is
// through log (read-only) and univ (in-memory); the only side effect a
// caller needs to apply is persisting TickResult.CursorBlob when it is
// non-empty.
//
// A corrupt cursor blob is not returned as an error: it degrades to an
// empty cursor so a wedged sensor can self-heal on the next successful
// tick.
func (s *Sensor) Tick(log eventlog.Adapter, univ graph.Universe, cursorBlob string) (TickResult, error) {
	prev, ok := cursor.Decode(cursorBlob)
	if !ok {
		// Degrade to empty cursor rather than fail the tick. The
		// fallback is not logged, and nothing in the returned
		// TickResult marks that cursorBlob was unreadable.
		prev = cursor.New()
	}

	selected, err := s.Selection.Resolve(univ)
	if err != nil {
		return TickResult{}, fmt.Errorf("sensor %s: resolving selection: %w", s.Name, err)
	}

	upstream := graph.Build(selected, univ)
	order, err := graph.TopoSort(upstream)
	if err != nil {
		// Invariant violation: asset definitions are required to be
		// acyclic. Surface as a programmer error, do not silently
		// continue.
		return TickResult{}, fmt.Errorf("sensor %s: %w", s.Name, err)
	}

	launchSet := asset.NewSet()
	next := cursor.New()
	var launched []asset.Key
	var skips []SkipReason

	for _, child := range order {
		t := prev.Get(child)
		next.Set(child, t) // seed: preserved even if not launched

		parents := upstream[child]
		statuses, err := decision.Decide(log, child, parents, t, launchSet, s.WaitForInProgressRuns)
		if err != nil {
			return TickResult{}, fmt.Errorf("sensor %s: %w", s.Name, err)
		}

		if decision.Launch(statuses, s.AndCondition) {
			// Only a launching child's cursor overwrites the seeded value
			// with the max contributing timestamp; a child that does not
			// launch this tick keeps its cursor at t, unchanged by a
			// sibling's co-materialized or stale-parent timestamp.
			next.Set(child, decision.NextCursor(t, statuses))
			launchSet.Add(child)
			launched = append(launched, child)
		} else {
			skips = append(skips, SkipReason{Asset: child, Reason: skipReason(statuses, s.AndCondition)})
		}
	}

	result := TickResult{
		NextCursor:  next,
		SkipReasons: skips,
		TopoOrder:   order,
		UpstreamMap: upstream,
	}

	if len(launched) == 0 {
		// Not an error. Skip cursor write and emit nothing — a quiet
		// tick leaves the persisted cursor untouched.
		return result, nil
	}

	result.Run = &RunRequest{
		RunKey:    RunKey(next),
		Selection: launched,
	}
	result.CursorBlob = cursor.Encode(next)
	return result, nil
}

func skipReason(statuses map[asset.Key]decision.Status, andCondition bool) string {
	if len(statuses) == 0 {
		return "no parents"
	}
	if andCondition {
		return "not all parents updated"
	}
	return "no parent updated"
}
