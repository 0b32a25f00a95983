// Package paths maps template inputs to output files.
package paths

import (
	"path/filepath"
	"strings"
)

const (
	// OutputExt is the extension given to every rendered page
	OutputExt = ".html"

	// IndexName is the basename that maps to the root of the output
	// directory in indexes mode
	IndexName = "index"
)

// Resolution is where one input is written
type Resolution struct {
	// Output is the file the rendered text is written to
	Output string
	// Dirs lists directories that must exist before Output is written,
	// outermost first. Empty when Output lives directly in the output dir.
	Dirs []string
}

// Basename returns the input file name without its final extension:
// "src/page.tmpl" -> "page", "a.b.tmpl" -> "a.b".
func Basename(inputPath string) string {
	base := filepath.Base(inputPath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Resolve computes the output path for inputPath.
//
// Flat layout writes outDir/<basename>.html. Indexes layout writes
// outDir/<basename>/index.html, except for an input named index which is
// written to outDir/index.html rather than outDir/index/index.html.
func Resolve(inputPath, outDir string, indexes bool) Resolution {
	basename := Basename(inputPath)

	if !indexes {
		return Resolution{Output: filepath.Join(outDir, basename+OutputExt)}
	}

	if basename == IndexName {
		return Resolution{Output: filepath.Join(outDir, IndexName+OutputExt)}
	}

	dir := filepath.Join(outDir, basename)
	return Resolution{
		Output: filepath.Join(dir, IndexName+OutputExt),
		Dirs:   []string{dir},
	}
}
