package templates

import (
	"bytes"
	"fmt"
	"path/filepath"
	"text/template"
	"text/template/parse"

	"github.com/arthur-debert/pagesmith/pkg/errors"
)

// DefaultExport is the template name a module defines to export its
// rendering function
const DefaultExport = "default"

// Func renders a page from the configuration data
type Func func(data any) (string, error)

// Reason explains why a module did not resolve
type Reason int

const (
	// ReasonNone means the module resolved
	ReasonNone Reason = iota
	// ReasonLegacyModule means the module has a top-level body but no
	// default definition; the legacy strategy can load it
	ReasonLegacyModule
	// ReasonNoExport means the module has neither a default definition nor a body
	ReasonNoExport
	// ReasonRead means the module file could not be read
	ReasonRead
	// ReasonParse means the module is not a valid template
	ReasonParse
)

// String returns the string representation of the reason
func (r Reason) String() string {
	switch r {
	case ReasonNone:
		return "resolved"
	case ReasonLegacyModule:
		return "legacy module"
	case ReasonNoExport:
		return "no default export"
	case ReasonRead:
		return "unreadable"
	case ReasonParse:
		return "parse error"
	default:
		return "unknown"
	}
}

// Resolution is the outcome of one resolution strategy: either Func is set,
// or Reason (and possibly Err) says why not.
type Resolution struct {
	Func   Func
	Reason Reason
	Err    error
	// Strategy names the strategy that produced Func ("default" or "legacy")
	Strategy string
}

// Resolved reports whether a rendering function was found
func (r Resolution) Resolved() bool {
	return r.Func != nil
}

func unresolved(reason Reason, err error) Resolution {
	return Resolution{Reason: reason, Err: err}
}

// resolveDefault is the primary strategy: the module's default definition.
func resolveDefault(module *template.Template) Resolution {
	if def := module.Lookup(DefaultExport); def != nil && def.Tree != nil {
		return Resolution{Func: executor(module, DefaultExport), Strategy: "default"}
	}
	if hasBody(module) {
		return unresolved(ReasonLegacyModule, nil)
	}
	return unresolved(ReasonNoExport, nil)
}

// resolveLegacy is the secondary strategy: the whole module body is the page.
func resolveLegacy(module *template.Template) Resolution {
	if !hasBody(module) {
		return unresolved(ReasonNoExport, nil)
	}
	return Resolution{Func: executor(module, module.Name()), Strategy: "legacy"}
}

// resolveModule runs the primary strategy and falls back to the legacy one
// only when the module was recognized as a legacy module.
func resolveModule(path string, module *template.Template) (Func, string, error) {
	res := resolveDefault(module)
	if res.Reason == ReasonLegacyModule {
		res = resolveLegacy(module)
	}
	if !res.Resolved() {
		return nil, "", resolveError(path, res)
	}
	return res.Func, res.Strategy, nil
}

func resolveError(path string, res Resolution) error {
	if res.Err != nil {
		return errors.Wrapf(res.Err, errors.ErrTemplateResolve, "failed to resolve template %s (%s)", path, res.Reason).
			WithDetail("path", path).
			WithDetail("reason", res.Reason.String())
	}
	return errors.Newf(errors.ErrTemplateResolve,
		"failed to resolve template %s: no %q definition and no top-level body", path, DefaultExport).
		WithDetail("path", path).
		WithDetail("reason", res.Reason.String())
}

func hasBody(t *template.Template) bool {
	return t.Tree != nil && t.Tree.Root != nil && !parse.IsEmptyTree(t.Tree.Root)
}

func executor(module *template.Template, name string) Func {
	return func(data any) (string, error) {
		var buf bytes.Buffer
		if err := module.ExecuteTemplate(&buf, name, data); err != nil {
			return "", err
		}
		return buf.String(), nil
	}
}

// moduleName is the name a module is registered under in its template set
func moduleName(path string) string {
	return fmt.Sprintf("module:%s", filepath.Base(path))
}
