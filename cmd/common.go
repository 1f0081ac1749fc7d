package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/hashmap-kz/assetsensor/internal/eventlog"
	"github.com/hashmap-kz/assetsensor/internal/repo"
	"github.com/hashmap-kz/assetsensor/internal/sensor"
)

// tickOptions are the flags shared by tick and describe: both build the
// same universe/selection/sensor and run one tick, they differ only in
// whether the result is persisted.
type tickOptions struct {
	assetFiles     []string
	recursive      bool
	selectionExpr  string
	orCondition    bool
	noWaitInFlight bool
	eventLogFile   string
	cursorFile     string
	sensorName     string
}

func (o *tickOptions) registerFlags(f *pflag.FlagSet) {
	f.SortFlags = false
	f.StringSliceVarP(&o.assetFiles, "assets", "f", nil,
		"Asset-definition files, glob patterns, or directories.")
	f.BoolVarP(&o.recursive, "recursive", "R", false,
		"Recurse into directories specified with --assets.")
	f.StringVarP(&o.selectionExpr, "selection", "s", "*",
		`Asset selection expression: "*", a bare asset name, or "group:<name>", space-separated.`)
	f.BoolVar(&o.orCondition, "or-condition", false,
		"Launch when any parent updated, instead of requiring all parents (and_condition).")
	f.BoolVar(&o.noWaitInFlight, "no-wait-for-in-progress", false,
		"Do not defer evaluation while a parent's run is still in progress.")
	f.StringVar(&o.eventLogFile, "events", "",
		"YAML event-log snapshot file.")
	f.StringVar(&o.cursorFile, "cursor-file", "",
		"Path to the persisted cursor file (written by tick when a run is requested).")
	f.StringVar(&o.sensorName, "name", "reconciliation",
		"Sensor name.")
}

// buildTick loads every input named by o and returns a ready Sensor plus
// its supporting universe/event-log/cursor-blob, but does not run Tick
// itself: tick.go and describe.go differ in what they do with the
// result, not in how they assemble it.
func buildTick(o *tickOptions) (*sensor.Sensor, *repo.Universe, eventlog.Adapter, string, error) {
	if len(o.assetFiles) == 0 {
		return nil, nil, nil, "", fmt.Errorf("at least one --assets/-f must be specified")
	}

	univ, err := repo.Load(o.assetFiles, o.recursive)
	if err != nil {
		return nil, nil, nil, "", err
	}

	var log eventlog.Adapter = eventlog.NewMemoryAdapter()
	if o.eventLogFile != "" {
		content, err := os.ReadFile(o.eventLogFile)
		if err != nil {
			return nil, nil, nil, "", fmt.Errorf("reading --events: %w", err)
		}
		snap, err := eventlog.LoadSnapshot(content)
		if err != nil {
			return nil, nil, nil, "", err
		}
		log = snap
	}

	var cursorBlob string
	if o.cursorFile != "" {
		content, err := os.ReadFile(o.cursorFile)
		if err != nil && !os.IsNotExist(err) {
			return nil, nil, nil, "", fmt.Errorf("reading --cursor-file: %w", err)
		}
		cursorBlob = string(content)
	}

	s, err := sensor.New(o.sensorName, repo.ParseSelection(o.selectionExpr), sensor.Config{
		AndCondition:          !o.orCondition,
		WaitForInProgressRuns: !o.noWaitInFlight,
	})
	if err != nil {
		return nil, nil, nil, "", err
	}

	return s, univ, log, cursorBlob, nil
}
