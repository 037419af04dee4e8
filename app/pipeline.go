package app

import (
	"context"
	"time"

	"titanicprep/domain/artifacts"
	"titanicprep/domain/core"
	"titanicprep/domain/passenger"
	"titanicprep/internal"
	"titanicprep/internal/errors"
	"titanicprep/internal/prep"
	"titanicprep/internal/profiling"
	"titanicprep/ports"

	"github.com/go-gota/gota/dataframe"
)

// StageReport captures the table shape after one stage
type StageReport struct {
	Name       string `json:"name"`
	Rows       int    `json:"rows"`
	Columns    int    `json:"columns"`
	DurationMs int64  `json:"duration_ms"`
}

// Report is the outcome of one pipeline run
type Report struct {
	RunID     core.RunID          `json:"run_id"`
	InputPath string              `json:"input_path"`
	Stages    []StageReport       `json:"stages"`
	Manifest  *artifacts.Manifest `json:"manifest"`
	RuntimeMs int64               `json:"runtime_ms"`
}

// Pipeline runs load, the transformation stages, and save in order
type Pipeline struct {
	runID    core.RunID
	loader   ports.TableLoader
	stages   []ports.Stage
	writer   ports.ArtifactWriter
	profiler *profiling.DistributionAnalyzer
	logger   *internal.Logger
}

// DefaultStages returns clean, engineer and encode in pipeline order
func DefaultStages(logger *internal.Logger) []ports.Stage {
	return []ports.Stage{
		prep.NewCleaner(logger),
		prep.NewFeatureEngineer(logger),
		prep.NewEncoder(logger),
	}
}

// NewPipeline creates a pipeline. With no stages given, DefaultStages is used.
func NewPipeline(runID core.RunID, loader ports.TableLoader, writer ports.ArtifactWriter, logger *internal.Logger, stages ...ports.Stage) *Pipeline {
	if logger == nil {
		logger = internal.NopLogger()
	}
	if len(stages) == 0 {
		stages = DefaultStages(logger)
	}
	return &Pipeline{
		runID:    runID,
		loader:   loader,
		stages:   stages,
		writer:   writer,
		profiler: profiling.NewDistributionAnalyzer(),
		logger:   logger,
	}
}

// Run processes the file at path end to end. The first failing step aborts
// the run.
func (p *Pipeline) Run(ctx context.Context, path string) (*Report, error) {
	startTime := time.Now()
	report := &Report{RunID: p.runID, InputPath: path}
	p.logger.Info("[Pipeline] run %s: processing %s", p.runID.Short(), path)

	stepStart := time.Now()
	df, err := p.loader.Load(ctx, path)
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", path)
	}
	report.Stages = append(report.Stages, p.observe("load", df, stepStart))

	for _, stage := range p.stages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		stepStart = time.Now()
		df, err = stage.Apply(df)
		if err != nil {
			return nil, errors.Wrapf(err, "stage %s failed", stage.Name())
		}
		report.Stages = append(report.Stages, p.observe(stage.Name(), df, stepStart))
	}

	manifest, err := p.writer.Save(ctx, df)
	if err != nil {
		return nil, errors.Wrap(err, "save artifacts")
	}
	report.Manifest = manifest
	report.RuntimeMs = time.Since(startTime).Milliseconds()

	p.logger.Info("[Pipeline] run %s finished in %dms", p.runID.Short(), report.RuntimeMs)
	return report, nil
}

func (p *Pipeline) observe(name string, df dataframe.DataFrame, start time.Time) StageReport {
	sr := StageReport{
		Name:       name,
		Rows:       df.Nrow(),
		Columns:    df.Ncol(),
		DurationMs: time.Since(start).Milliseconds(),
	}
	p.logger.Info("[Pipeline] %s: %d rows x %d columns", name, sr.Rows, sr.Columns)

	if p.logger.GetLevel() >= internal.LogLevelDebug {
		for _, profile := range p.profiler.ProfileColumns(df, passenger.ScaledColumns...) {
			p.logger.Debug("[Pipeline] %s: %s", name, profile)
		}
	}
	return sr
}
