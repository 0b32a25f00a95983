package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/arthur-debert/pagesmith/pkg/config"
	"github.com/arthur-debert/pagesmith/pkg/errors"
	"github.com/arthur-debert/pagesmith/pkg/filesystem"
	"github.com/arthur-debert/pagesmith/pkg/logging"
	"github.com/arthur-debert/pagesmith/pkg/paths"
	"github.com/arthur-debert/pagesmith/pkg/sitemap"
	"github.com/arthur-debert/pagesmith/pkg/templates"
	"github.com/arthur-debert/pagesmith/pkg/tree"
)

const (
	dirPerm  = 0755
	filePerm = 0644
)

// Options describes one run
type Options struct {
	// FS defaults to the OS filesystem
	FS filesystem.FS

	// ConfigPath is the base configuration file; empty means an empty mapping
	ConfigPath string
	// Overrides are key=value tokens applied to the base configuration in order
	Overrides []string

	// Inputs are template module paths, rendered independently
	Inputs []string
	// OutDir receives the rendered pages and is created if absent
	OutDir string
	// Indexes selects the outDir/<name>/index.html layout
	Indexes bool

	// Jobs bounds how many inputs render at once; values below 1 mean 1
	Jobs int
	// Partials are template files shared by every module
	Partials []string
	// SitemapBaseURL, when set, writes outDir/sitemap.xml listing written pages
	SitemapBaseURL string
}

// runner holds the state shared by every input of a run. The config tree is
// read-only once composed.
type runner struct {
	fs      filesystem.FS
	invoker *templates.Invoker
	config  tree.Node
	outDir  string
	indexes bool
	logger  zerolog.Logger
}

// Run composes the configuration once and renders every input with it.
//
// Errors that affect the whole run (configuration, overrides, partials, the
// output directory) are returned before any page is rendered. Errors of a
// single input are recorded in its Result and never stop the others.
func Run(ctx context.Context, opts Options) (*Report, error) {
	logger := logging.GetLogger("pipeline")
	start := time.Now()
	done := logging.LogOperationStart(logger, "run")
	defer done()

	if opts.OutDir == "" {
		return nil, errors.New(errors.ErrMissingOutdir, "missing required parameter: outdir")
	}

	fsys := opts.FS
	if fsys == nil {
		fsys = filesystem.NewOS()
	}

	root, err := config.Compose(fsys, opts.ConfigPath, opts.Overrides)
	if err != nil {
		return nil, err
	}
	logResolvedConfig(logger, root)

	invoker, err := templates.NewInvoker(fsys, templates.Options{Partials: opts.Partials})
	if err != nil {
		return nil, err
	}

	if err := fsys.MkdirAll(opts.OutDir, dirPerm); err != nil {
		return nil, errors.Wrapf(err, errors.ErrDirCreate, "failed to create output directory %s", opts.OutDir).
			WithDetail("path", opts.OutDir)
	}

	r := &runner{
		fs:      fsys,
		invoker: invoker,
		config:  root,
		outDir:  opts.OutDir,
		indexes: opts.Indexes,
		logger:  logger,
	}

	jobs := opts.Jobs
	if jobs < 1 {
		jobs = 1
	}

	results := make([]Result, len(opts.Inputs))
	var g errgroup.Group
	g.SetLimit(jobs)
	for i, input := range opts.Inputs {
		g.Go(func() error {
			results[i] = r.build(ctx, input)
			return nil
		})
	}
	_ = g.Wait()

	report := &Report{
		OutDir:  opts.OutDir,
		Config:  opts.ConfigPath,
		Indexes: opts.Indexes,
		Results: results,
	}

	if opts.SitemapBaseURL != "" {
		if err := r.writeSitemap(opts.SitemapBaseURL, report); err != nil {
			return nil, err
		}
	}

	report.Duration = time.Since(start)
	logger.Info().
		Int("written", len(report.Written())).
		Int("failed", len(report.Failed())).
		Int("skipped", len(report.Skipped())).
		Dur("duration", report.Duration).
		Msg("run completed")

	return report, nil
}

// build renders one input. It never returns an error; failures are recorded
// on the result.
func (r *runner) build(ctx context.Context, input string) Result {
	start := time.Now()
	defer logging.LogDuration(start, "build "+input)
	res := Result{Input: input}

	if !filesystem.Exists(r.fs, input) {
		r.logger.Debug().Str("input", input).Msg("input does not exist, skipping")
		res.Status = StatusSkipped
		return res
	}

	output, err := r.write(ctx, input)
	res.Output = output.Output
	res.Duration = time.Since(start)
	if err != nil {
		// Failures reach the user through the report renderer.
		r.logger.Debug().Err(err).Str("input", input).Msg("Failed to build file")
		res.Status = StatusFailed
		res.Err = err
		res.Error = err.Error()
		res.Code = errors.GetErrorCode(err)
		res.Details = errors.GetErrorDetails(err)
		return res
	}

	res.Status = StatusWritten
	res.Bytes = output.bytes
	r.logger.Info().
		Str("input", input).
		Str("output", res.Output).
		Int("bytes", res.Bytes).
		Msg("wrote page")
	return res
}

type written struct {
	paths.Resolution
	bytes int
}

func (r *runner) write(ctx context.Context, input string) (written, error) {
	text, err := r.invoker.Render(ctx, input, r.config)
	if err != nil {
		return written{}, err
	}

	dest := written{Resolution: paths.Resolve(input, r.outDir, r.indexes)}
	for _, dir := range dest.Dirs {
		if err := r.fs.MkdirAll(dir, dirPerm); err != nil {
			return dest, errors.Wrapf(err, errors.ErrDirCreate, "failed to create directory %s for %s", dir, input).
				WithDetails(map[string]interface{}{"path": dir, "input": input})
		}
	}

	data := []byte(text)
	if err := r.fs.WriteFile(dest.Output, data, filePerm); err != nil {
		return dest, errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s for %s", dest.Output, input).
			WithDetails(map[string]interface{}{"path": dest.Output, "input": input})
	}
	dest.bytes = len(data)
	return dest, nil
}

func (r *runner) writeSitemap(baseURL string, report *Report) error {
	var pages []string
	for _, res := range report.Written() {
		pages = append(pages, res.Output)
	}

	path, err := sitemap.Write(r.fs, baseURL, r.outDir, pages)
	if err != nil {
		return err
	}
	report.Sitemap = path
	return nil
}

// logResolvedConfig dumps the composed tree at info level (-v).
func logResolvedConfig(logger zerolog.Logger, root *tree.Mapping) {
	event := logger.Info()
	if !event.Enabled() {
		return
	}
	data, err := json.Marshal(root)
	if err != nil {
		event.Discard()
		logger.Warn().Err(err).Msg("could not encode resolved config")
		return
	}
	event.RawJSON("config", data).Msg("resolved config")
}
