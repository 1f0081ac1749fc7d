package eventlog

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/hashmap-kz/assetsensor/internal/asset"
)

// snapshotRun is one run's worth of event-log history in the YAML
// snapshot file the tick/describe CLI commands read, standing in for a
// live event-log store.
type snapshotRun struct {
	ID         string   `yaml:"id"`
	Planned    []string `yaml:"planned"`
	InProgress bool     `yaml:"in_progress"`
	Completed  []struct {
		Asset     string  `yaml:"asset"`
		Timestamp float64 `yaml:"timestamp"`
	} `yaml:"completed"`
}

type snapshot struct {
	Runs []snapshotRun `yaml:"runs"`
}

// LoadSnapshot parses a YAML event-log snapshot into a ready-to-query
// MemoryAdapter. Unlike StartRun, run ids are taken verbatim from the
// file rather than minted, so a snapshot is fully reproducible across
// ticks.
func LoadSnapshot(content []byte) (*MemoryAdapter, error) {
	var snap snapshot
	if err := yaml.Unmarshal(content, &snap); err != nil {
		return nil, fmt.Errorf("eventlog: parsing snapshot: %w", err)
	}

	m := NewMemoryAdapter()
	for _, r := range snap.Runs {
		if r.ID == "" {
			return nil, fmt.Errorf("eventlog: snapshot run missing id")
		}
		m.runs[r.ID] = &run{id: r.ID, inProgress: r.InProgress}
		for _, p := range r.Planned {
			m.planned = append(m.planned, plannedEvent{runID: r.ID, key: asset.New(p)})
		}
		for _, c := range r.Completed {
			m.completed = append(m.completed, completedEvent{runID: r.ID, key: asset.New(c.Asset), timestamp: c.Timestamp})
		}
	}
	return m, nil
}
