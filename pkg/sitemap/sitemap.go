// Package sitemap writes a sitemap.xml listing the pages of a build.
package sitemap

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/beevik/etree"

	"github.com/arthur-debert/pagesmith/pkg/errors"
	"github.com/arthur-debert/pagesmith/pkg/filesystem"
	"github.com/arthur-debert/pagesmith/pkg/logging"
)

const (
	// FileName is the sitemap's name inside the output directory
	FileName = "sitemap.xml"

	// Namespace is the sitemaps.org schema
	Namespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

	indexFile = "index.html"
)

// URL maps a written page to its public URL. Pages named index.html are
// addressed by their directory: outDir/about/index.html -> base/about/.
func URL(baseURL, outDir, page string) string {
	base := strings.TrimRight(baseURL, "/")

	rel, err := filepath.Rel(outDir, page)
	if err != nil {
		rel = page
	}
	rel = filepath.ToSlash(rel)

	switch {
	case rel == indexFile:
		return base + "/"
	case strings.HasSuffix(rel, "/"+indexFile):
		return base + "/" + strings.TrimSuffix(rel, indexFile)
	default:
		return base + "/" + rel
	}
}

// Build returns the sitemap document for pages, sorted by URL.
func Build(baseURL, outDir string, pages []string) *etree.Document {
	urls := make([]string, 0, len(pages))
	for _, page := range pages {
		urls = append(urls, URL(baseURL, outDir, page))
	}
	sort.Strings(urls)

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	urlset := doc.CreateElement("urlset")
	urlset.CreateAttr("xmlns", Namespace)
	for _, u := range urls {
		urlset.CreateElement("url").CreateElement("loc").SetText(u)
	}

	doc.Indent(2)
	return doc
}

// Write builds the sitemap and writes it to outDir/sitemap.xml, returning
// the path written.
func Write(fsys filesystem.FS, baseURL, outDir string, pages []string) (string, error) {
	path := filepath.Join(outDir, FileName)

	data, err := Build(baseURL, outDir, pages).WriteToBytes()
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrFileWrite, "failed to encode %s", path).
			WithDetail("path", path)
	}

	if err := fsys.WriteFile(path, data, 0644); err != nil {
		return "", errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", path).
			WithDetail("path", path)
	}

	logger := logging.GetLogger("sitemap")
	logger.Info().
		Str("path", path).
		Int("urls", len(pages)).
		Msg("wrote sitemap")
	return path, nil
}
