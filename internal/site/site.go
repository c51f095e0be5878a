// Package site writes the static HTML shell that boots the compiled
// documentation app.
//
// The output directory ends up holding three files:
//
//   - app.js and docs.js, produced by the external compiler.
//   - index.html, produced here from tmpl/index.html.tmpl.
//
// The documentation JSON is placed into the page verbatim. It is not
// escaped or validated; callers own the guarantee that it is safe to embed
// in a script block.
package site

import (
	"embed"
	"io"
	"os"
	"path/filepath"
	"text/template"

	"github.com/pkg/errors"
)

const (
	IndexFile = "index.html"
	AppFile   = "app.js"
	DocsFile  = "docs.js"
)

//go:embed tmpl/index.html.tmpl
var tmplFS embed.FS

var indexTmpl = template.Must(template.ParseFS(tmplFS, "tmpl/index.html.tmpl"))

type indexData struct {
	AppFile  string
	DocsFile string
	DocsJSON string
}

// EnsureDir creates dir if it does not exist. Only the last path element is
// created, like "mkdir" without "-p". An existing directory is left as is.
func EnsureDir(dir string) (created bool, err error) {
	info, err := os.Stat(dir)
	if err == nil {
		if !info.IsDir() {
			return false, errors.Errorf("%s exists and is not a directory", dir)
		}
		return false, nil
	}
	if !os.IsNotExist(err) {
		return false, errors.Wrapf(err, "stat %s", dir)
	}

	if err := os.Mkdir(dir, 0755); err != nil {
		if os.IsExist(err) {
			return false, nil
		}
		return false, errors.Wrapf(err, "create output directory %s", dir)
	}
	return true, nil
}

// Render writes the index page with docsJSON in the docsJson position.
func Render(w io.Writer, docsJSON []byte) error {
	data := indexData{
		AppFile:  AppFile,
		DocsFile: DocsFile,
		DocsJSON: string(docsJSON),
	}
	if err := indexTmpl.Execute(w, data); err != nil {
		return errors.Wrap(err, "render "+IndexFile)
	}
	return nil
}

// WriteIndex renders the index page into dir and returns the written path.
func WriteIndex(dir string, docsJSON []byte) (string, error) {
	path := filepath.Join(dir, IndexFile)

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return "", errors.Wrapf(err, "write %s", path)
	}
	if err := Render(f, docsJSON); err != nil {
		f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", errors.Wrapf(err, "write %s", path)
	}
	return path, nil
}
