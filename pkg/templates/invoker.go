package templates

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"text/template"
	"unicode"

	"github.com/Masterminds/sprig/v3"

	"github.com/arthur-debert/pagesmith/pkg/errors"
	"github.com/arthur-debert/pagesmith/pkg/filesystem"
	"github.com/arthur-debert/pagesmith/pkg/logging"
	"github.com/arthur-debert/pagesmith/pkg/tree"
)

// partial is a shared template file parsed into every module's set
type partial struct {
	name   string
	source string
}

// Invoker resolves template modules and renders them.
// It is safe for concurrent use: every Render parses its own template set.
type Invoker struct {
	fs       filesystem.FS
	partials []partial
	funcs    template.FuncMap
}

// Options configures an Invoker
type Options struct {
	// Partials are shared template files (layouts, components) that
	// modules can call with {{template "name" .}}
	Partials []string
}

// NewInvoker reads the partial files once and returns an Invoker
func NewInvoker(fsys filesystem.FS, opts Options) (*Invoker, error) {
	funcs := sprig.TxtFuncMap()
	funcs["toJSON"] = toJSON

	inv := &Invoker{
		fs:    fsys,
		funcs: funcs,
	}

	for _, path := range opts.Partials {
		src, err := fsys.ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrTemplateResolve, "failed to read partial %s", path).
				WithDetail("path", path)
		}
		inv.partials = append(inv.partials, partial{name: filepath.Base(path), source: string(src)})
	}

	return inv, nil
}

// Resolve parses the module at path and returns its rendering function,
// trying the default definition first and the legacy body second.
func (inv *Invoker) Resolve(path string) (Func, error) {
	module, res := inv.parse(path)
	if module == nil {
		return nil, resolveError(path, res)
	}

	fn, strategy, err := resolveModule(path, module)
	if err != nil {
		return nil, err
	}

	logger := logging.GetLogger("templates")
	logger.Debug().
		Str("path", path).
		Str("strategy", strategy).
		Msg("resolved template module")

	return fn, nil
}

// Render resolves the module at path, calls it with config and normalizes
// the output. The call runs on its own goroutine; Render waits for it or
// for ctx to be done, whichever comes first.
func (inv *Invoker) Render(ctx context.Context, path string, config tree.Node) (string, error) {
	fn, err := inv.Resolve(path)
	if err != nil {
		return "", err
	}

	type result struct {
		out string
		err error
	}
	done := make(chan result, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- result{err: fmt.Errorf("template panicked: %v", r)}
			}
		}()
		out, err := fn(tree.ToNative(config))
		done <- result{out: out, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", errors.Wrapf(ctx.Err(), errors.ErrTemplateExecute, "rendering %s was cancelled", path).
			WithDetail("path", path)
	case res := <-done:
		if res.err != nil {
			return "", errors.Wrapf(res.err, errors.ErrTemplateExecute, "failed to render %s", path).
				WithDetail("path", path)
		}
		return Normalize(res.out), nil
	}
}

// parse builds the template set for one module: partials first, then the
// module itself, so the module's definitions win over same-named partials.
func (inv *Invoker) parse(path string) (*template.Template, Resolution) {
	src, err := inv.fs.ReadFile(path)
	if err != nil {
		return nil, unresolved(ReasonRead, err)
	}

	module := template.New(moduleName(path)).
		Option("missingkey=default").
		Funcs(inv.funcs)

	for _, p := range inv.partials {
		if _, err := module.New(p.name).Parse(p.source); err != nil {
			return nil, unresolved(ReasonParse, fmt.Errorf("partial %s: %w", p.name, err))
		}
	}

	if _, err := module.Parse(string(src)); err != nil {
		return nil, unresolved(ReasonParse, err)
	}
	return module, Resolution{}
}

// Normalize collapses lines made only of whitespace (any Unicode space,
// including NBSP, \v and \f) into empty lines and trims surrounding
// whitespace. Lines with content keep their
// indentation.
func Normalize(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if strings.TrimFunc(line, unicode.IsSpace) == "" {
			lines[i] = ""
		}
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// toJSON encodes v for embedding config into pages (inline scripts, data attributes)
func toJSON(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
