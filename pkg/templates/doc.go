// Package templates resolves and renders page template modules.
//
// A template module is a text/template file. Two conventions are accepted:
//
//	{{define "default"}}<html>...</html>{{end}}   exported page
//	<html>{{.title}}</html>                        legacy body
//
// Resolution is two-staged. The default definition is looked up first; only
// when the module has no default definition but does have a top-level body
// is the body used instead. Anything else (no export at all, an unreadable
// file, a parse error) is a TEMPLATE_RESOLVE error naming the module.
//
// Shared partials are parsed into every module's template set before the
// module itself, so a module can call {{template "layout" .}} and override a
// partial's definitions with its own. Sprig functions and toJSON are
// available to every module.
//
// Rendered text is normalized: lines made only of blanks become empty and
// the whole page is trimmed.
package templates
