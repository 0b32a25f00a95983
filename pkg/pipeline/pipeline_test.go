// pkg/pipeline/pipeline_test.go
// TEST TYPE: Integration Test
// DEPENDENCIES: Memory FS
// PURPOSE: Test whole runs: composition, per-path isolation, layouts, sitemap

package pipeline_test

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/pagesmith/pkg/errors"
	"github.com/arthur-debert/pagesmith/pkg/filesystem"
	"github.com/arthur-debert/pagesmith/pkg/pipeline"
	"github.com/arthur-debert/pagesmith/pkg/testutil"
)

func TestRunComposesOverrides(t *testing.T) {
	fsys := testutil.NewMemoryFS(t, map[string]string{
		"/site/config.yml": "projects:\n  - title: Old\n",
		"/src/page.tmpl":   `{{define "default"}}{{.env}}: {{(index .projects 0).title}}{{end}}`,
	})

	report, err := pipeline.Run(context.Background(), pipeline.Options{
		FS:         fsys,
		ConfigPath: "/site/config.yml",
		Overrides:  []string{"env=dev", `projects.0.title="The Best Project"`},
		Inputs:     []string{"/src/page.tmpl"},
		OutDir:     "/dist",
	})
	require.NoError(t, err)

	require.Len(t, report.Results, 1)
	assert.Equal(t, pipeline.StatusWritten, report.Results[0].Status)
	assert.Equal(t, "/dist/page.html", report.Results[0].Output)
	assert.Equal(t, "dev: The Best Project", testutil.ReadFile(t, fsys, "/dist/page.html"))
}

func TestRunIsolatesFailures(t *testing.T) {
	fsys := testutil.NewMemoryFS(t, map[string]string{
		"/src/broken.tmpl": `{{define "default"}}{{fail "template error"}}{{end}}`,
		"/src/good.tmpl":   `{{define "default"}}<p>ok</p>{{end}}`,
	})

	report, err := pipeline.Run(context.Background(), pipeline.Options{
		FS:     fsys,
		Inputs: []string{"/src/broken.tmpl", "/src/good.tmpl"},
		OutDir: "/dist",
	})
	require.NoError(t, err)

	require.Len(t, report.Results, 2)
	failed := report.Results[0]
	assert.Equal(t, pipeline.StatusFailed, failed.Status)
	assert.True(t, errors.IsErrorCode(failed.Err, errors.ErrTemplateExecute))
	assert.Contains(t, failed.Error, "/src/broken.tmpl")
	assert.Equal(t, errors.ErrTemplateExecute, failed.Code)
	assert.Equal(t, "/src/broken.tmpl", failed.Details["path"])

	assert.Equal(t, pipeline.StatusWritten, report.Results[1].Status)
	assert.Equal(t, "<p>ok</p>", testutil.ReadFile(t, fsys, "/dist/good.html"))
	assert.False(t, filesystem.Exists(fsys, "/dist/broken.html"))
}

func TestRunLeavesFailureReportingToRenderers(t *testing.T) {
	var buf bytes.Buffer
	oldLogger, oldLevel := log.Logger, zerolog.GlobalLevel()
	log.Logger = zerolog.New(&buf)
	zerolog.SetGlobalLevel(zerolog.WarnLevel)
	defer func() {
		log.Logger = oldLogger
		zerolog.SetGlobalLevel(oldLevel)
	}()

	fsys := testutil.NewMemoryFS(t, map[string]string{
		"/src/broken.tmpl": `{{define "default"}}{{fail "template error"}}{{end}}`,
	})

	report, err := pipeline.Run(context.Background(), pipeline.Options{
		FS:     fsys,
		Inputs: []string{"/src/broken.tmpl"},
		OutDir: "/dist",
	})
	require.NoError(t, err)
	require.Len(t, report.Failed(), 1)
	assert.Empty(t, buf.String(), "per-path failures must not be logged at the default level")
}

func TestRunSkipsMissingInputs(t *testing.T) {
	fsys := testutil.NewMemoryFS(t, map[string]string{
		"/src/page.tmpl": "hello",
	})

	report, err := pipeline.Run(context.Background(), pipeline.Options{
		FS:     fsys,
		Inputs: []string{"/src/missing.tmpl", "/src/page.tmpl"},
		OutDir: "/dist",
	})
	require.NoError(t, err)

	assert.Len(t, report.Skipped(), 1)
	assert.Equal(t, "/src/missing.tmpl", report.Skipped()[0].Input)
	assert.Empty(t, report.Failed())
	assert.False(t, filesystem.Exists(fsys, "/dist/missing.html"))
	assert.Equal(t, "hello", testutil.ReadFile(t, fsys, "/dist/page.html"))
}

func TestRunIndexesLayout(t *testing.T) {
	fsys := testutil.NewMemoryFS(t, map[string]string{
		"/src/index.tmpl": "home",
		"/src/about.tmpl": "about",
	})

	report, err := pipeline.Run(context.Background(), pipeline.Options{
		FS:      fsys,
		Inputs:  []string{"/src/index.tmpl", "/src/about.tmpl"},
		OutDir:  "/dist",
		Indexes: true,
	})
	require.NoError(t, err)
	require.Len(t, report.Written(), 2)

	assert.Equal(t, "home", testutil.ReadFile(t, fsys, "/dist/index.html"))
	assert.Equal(t, "about", testutil.ReadFile(t, fsys, "/dist/about/index.html"))
	assert.False(t, filesystem.Exists(fsys, "/dist/index/index.html"))
}

func TestRunFatalErrors(t *testing.T) {
	tests := []struct {
		name string
		opts pipeline.Options
		code errors.ErrorCode
	}{
		{
			name: "missing_outdir",
			opts: pipeline.Options{Inputs: []string{"/src/page.tmpl"}},
			code: errors.ErrMissingOutdir,
		},
		{
			name: "unreadable_config",
			opts: pipeline.Options{ConfigPath: "/nope.yml", OutDir: "/dist", Inputs: []string{"/src/page.tmpl"}},
			code: errors.ErrConfigLoad,
		},
		{
			name: "malformed_override",
			opts: pipeline.Options{Overrides: []string{"novalue"}, OutDir: "/dist", Inputs: []string{"/src/page.tmpl"}},
			code: errors.ErrInvalidOverride,
		},
		{
			name: "index_out_of_bounds",
			opts: pipeline.Options{Overrides: []string{"list=[1]", "list.3=x"}, OutDir: "/dist", Inputs: []string{"/src/page.tmpl"}},
			code: errors.ErrIndexOutOfBounds,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := testutil.NewMemoryFS(t, map[string]string{"/src/page.tmpl": "x"})
			tt.opts.FS = fsys

			report, err := pipeline.Run(context.Background(), tt.opts)
			require.Error(t, err)
			assert.Nil(t, report)
			assert.True(t, errors.IsErrorCode(err, tt.code), "got %v", err)
			assert.True(t, errors.IsFatal(err))
			assert.False(t, filesystem.Exists(fsys, "/dist/page.html"))
		})
	}
}

func TestRunParallelKeepsInputOrder(t *testing.T) {
	files := map[string]string{}
	var inputs []string
	for i := 0; i < 20; i++ {
		path := fmt.Sprintf("/src/page%02d.tmpl", i)
		files[path] = fmt.Sprintf(`{{define "default"}}page %d {{.site}}{{end}}`, i)
		inputs = append(inputs, path)
	}

	run := func(jobs int) (*pipeline.Report, filesystem.FS) {
		fsys := testutil.NewMemoryFS(t, files)
		report, err := pipeline.Run(context.Background(), pipeline.Options{
			FS:        fsys,
			Overrides: []string{"site=demo"},
			Inputs:    inputs,
			OutDir:    "/dist",
			Jobs:      jobs,
		})
		require.NoError(t, err)
		return report, fsys
	}

	serial, _ := run(1)
	parallel, fsys := run(8)

	require.Len(t, parallel.Results, len(serial.Results))
	for i := range serial.Results {
		assert.Equal(t, inputs[i], parallel.Results[i].Input)
		assert.Equal(t, serial.Results[i].Output, parallel.Results[i].Output)
		assert.Equal(t, serial.Results[i].Status, parallel.Results[i].Status)
		assert.Equal(t, serial.Results[i].Bytes, parallel.Results[i].Bytes)
	}
	assert.Equal(t, "page 7 demo", testutil.ReadFile(t, fsys, "/dist/page07.html"))
}

func TestRunSitemapListsWrittenPages(t *testing.T) {
	fsys := testutil.NewMemoryFS(t, map[string]string{
		"/src/index.tmpl":  "home",
		"/src/about.tmpl":  "about",
		"/src/broken.tmpl": `{{define "other"}}{{end}}`,
	})

	report, err := pipeline.Run(context.Background(), pipeline.Options{
		FS:             fsys,
		Inputs:         []string{"/src/index.tmpl", "/src/about.tmpl", "/src/broken.tmpl", "/src/missing.tmpl"},
		OutDir:         "/dist",
		Indexes:        true,
		SitemapBaseURL: "https://example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "/dist/sitemap.xml", report.Sitemap)

	xml := testutil.ReadFile(t, fsys, "/dist/sitemap.xml")
	assert.Contains(t, xml, "<loc>https://example.com/</loc>")
	assert.Contains(t, xml, "<loc>https://example.com/about/</loc>")
	assert.NotContains(t, xml, "broken")
	assert.NotContains(t, xml, "missing")
}

func TestRunWithPartials(t *testing.T) {
	fsys := testutil.NewMemoryFS(t, map[string]string{
		"/partials/layout.tmpl": `{{define "layout"}}<body>{{template "content" .}}</body>{{end}}`,
		"/src/page.tmpl":        `{{define "content"}}{{.title}}{{end}}{{define "default"}}{{template "layout" .}}{{end}}`,
	})

	_, err := pipeline.Run(context.Background(), pipeline.Options{
		FS:        fsys,
		Overrides: []string{"title=Hello"},
		Inputs:    []string{"/src/page.tmpl"},
		OutDir:    "/dist",
		Partials:  []string{"/partials/layout.tmpl"},
	})
	require.NoError(t, err)
	assert.Equal(t, "<body>Hello</body>", testutil.ReadFile(t, fsys, "/dist/page.html"))
}

func TestReportTotals(t *testing.T) {
	report := &pipeline.Report{Results: []pipeline.Result{
		{Input: "a", Status: pipeline.StatusWritten, Bytes: 10},
		{Input: "b", Status: pipeline.StatusFailed},
		{Input: "c", Status: pipeline.StatusWritten, Bytes: 5},
	}}

	assert.Equal(t, 15, report.TotalBytes())
	assert.Len(t, report.Written(), 2)
	assert.Len(t, report.Failed(), 1)
	assert.Empty(t, report.Skipped())
}
