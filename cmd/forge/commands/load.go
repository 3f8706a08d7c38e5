package commands

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/contentforge/contentforge/pkg/content"
	"github.com/contentforge/contentforge/pkg/discovery"
	"github.com/contentforge/contentforge/pkg/document"
	"github.com/contentforge/contentforge/pkg/loader"
	"github.com/contentforge/contentforge/pkg/registry"
	"github.com/contentforge/contentforge/pkg/telemetry"
)

func newLoadCommand() *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "load",
		Short: "Run a full content load pass",
		Long: `Discover content definitions, replay the host manifest's module arrival
order, and register every loadable kind into its type-index registry.

The pass never aborts on malformed content: each failure degrades the one
field or record involved and is counted for the end-of-pass report.`,
		Example: `  # Load content from ./content against host.yaml
  forge load -c ./content -m host.yaml

  # Fail the process when any validation error was counted
  forge load --strict`,
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := runPass()
			if err != nil {
				return err
			}
			report.print()
			if strict && report.errors > 0 {
				return fmt.Errorf("%d validation errors", report.errors)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "exit non-zero when validation errors were counted")

	return cmd
}

// passReport is the end-of-pass diagnostics summary: the aggregate counters
// and log stream are the only per-pass report, there is no per-document
// success value.
type passReport struct {
	errors   int64
	warnings int64
	counts   map[string]int
	stalled  map[loader.Kind][]string
}

func (r *passReport) print() {
	kinds := make([]string, 0, len(r.counts))
	for k := range r.counts {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	for _, k := range kinds {
		fmt.Printf("%-16s %d registered\n", k, r.counts[k])
	}

	for kind, missing := range r.stalled {
		if len(missing) > 0 {
			fmt.Printf("%-16s stalled, waiting for modules: %v\n", kind, missing)
		} else {
			fmt.Printf("%-16s stalled, waiting for start\n", kind)
		}
	}

	fmt.Printf("errors: %d, warnings: %d\n", r.errors, r.warnings)
}

// runPass performs one complete load pass and returns its report.
func runPass() (*passReport, error) {
	logger, err := telemetry.NewLogger(telemetry.LoggingConfig{
		Level:  opts.LogLevel,
		Format: opts.LogFormat,
	})
	if err != nil {
		return nil, err
	}
	logger = logger.WithRunID(uuid.NewString())

	metrics, err := telemetry.NewMetrics(telemetry.DefaultMetricsConfig())
	if err != nil {
		return nil, err
	}

	manifest, err := discovery.LoadManifest(opts.Manifest)
	if err != nil {
		return nil, err
	}

	docs, err := discovery.NewFinder(opts.ContentDirs, logger).Discover()
	if err != nil {
		return nil, err
	}

	diag := document.NewDiagnostics(metrics)
	ext := document.NewExtractor(logger, diag)
	pipe := content.NewPipeline(content.Config{
		DayLength: manifest.DayLength,
		Indexes:   manifest.Indexes,
	}, ext, logger)

	modules := registry.NewModules(logger)
	ldr := loader.New(modules, logger, metrics)

	latched := manifest.LatchedKinds()
	for _, d := range pipe.Descriptors(docs, latched) {
		if err := ldr.Register(d); err != nil {
			return nil, err
		}
	}

	// Replay the host: discovery finishes, modules arrive in manifest
	// order (each arrival sweeps), then latched kinds are released.
	ldr.SetDiscoveryComplete()
	for _, mod := range manifest.Modules {
		modules.Register(mod)
	}
	for kind := range latched {
		ldr.MarkReady(kind)
	}

	return &passReport{
		errors:   diag.Errors(),
		warnings: diag.Warnings(),
		counts: map[string]int{
			"resource":        pipe.Resources.Len(),
			"storage":         pipe.Storages.Len(),
			"object":          pipe.Objects.Len(),
			"recipe":          pipe.Recipes.Len(),
			"material":        pipe.Materials.Len(),
			"skill":           pipe.Skills.Len(),
			"evolving_object": pipe.Evolutions.Len(),
		},
		stalled: ldr.Stalled(),
	}, nil
}
