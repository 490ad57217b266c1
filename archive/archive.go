// Package archive packs a generated module directory into one zip bundle.
package archive

import (
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/klauspost/compress/zip"

	"github.com/teranos/padgen/errors"
	"github.com/teranos/padgen/internal/util"
)

// BundleName returns "<module>_<package with dots as underscores>_<suffix>.zip".
// An empty suffix is left out.
func BundleName(module, pkg, suffix string) string {
	parts := []string{module, util.Underscored(pkg)}
	if suffix != "" {
		parts = append(parts, suffix)
	}
	return strings.Join(parts, "_") + ".zip"
}

// Pack zips every file under moduleDir into dest, with entry names relative
// to moduleDir in lexical order and zero timestamps, so packing the same
// tree twice gives identical bytes. dest is replaced atomically.
func Pack(moduleDir, dest string) (int, error) {
	files, err := collect(moduleDir)
	if err != nil {
		return 0, err
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return 0, errors.Wrapf(err, "create directory for %s", dest)
	}

	tmp, err := os.CreateTemp(filepath.Dir(dest), ".bundle-*")
	if err != nil {
		return 0, errors.Wrap(err, "create temporary bundle")
	}
	defer os.Remove(tmp.Name())

	zw := newZipWriter(tmp)
	for _, rel := range files {
		zw.Add(filepath.ToSlash(rel), filepath.Join(moduleDir, rel))
	}
	if err := zw.Close(); err != nil {
		tmp.Close()
		return 0, errors.Wrapf(err, "write bundle %s", dest)
	}
	if err := tmp.Close(); err != nil {
		return 0, errors.Wrapf(err, "close bundle %s", dest)
	}
	if err := os.Rename(tmp.Name(), dest); err != nil {
		return 0, errors.Wrapf(err, "move bundle to %s", dest)
	}
	return len(files), nil
}

// Entries lists the file names stored in a bundle, in archive order.
func Entries(path string) ([]string, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open bundle %s", path)
	}
	defer r.Close()

	names := make([]string, 0, len(r.File))
	for _, f := range r.File {
		names = append(names, f.Name)
	}
	return names, nil
}

func collect(root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, errors.Wrapf(err, "module directory %s", root)
	}
	if !info.IsDir() {
		return nil, errors.Newf("%s is not a directory", root)
	}

	var files []string
	err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		files = append(files, rel)
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "walk %s", root)
	}
	sort.Strings(files)
	return files, nil
}

// zipWriter is a zip.Writer with a sticky error.
type zipWriter struct {
	err error
	w   *zip.Writer
}

func newZipWriter(w io.Writer) *zipWriter {
	return &zipWriter{w: zip.NewWriter(w)}
}

func (z *zipWriter) Close() error {
	err := z.w.Close()
	if z.err == nil {
		z.err = err
	}
	return z.err
}

func (z *zipWriter) Add(name, file string) {
	if z.err != nil {
		return
	}
	f, err := os.Open(file)
	if err != nil {
		z.err = err
		return
	}
	defer f.Close()

	w, err := z.w.CreateHeader(&zip.FileHeader{Name: name, Method: zip.Deflate})
	if err != nil {
		z.err = err
		return
	}
	if _, err := io.Copy(w, f); err != nil {
		z.err = err
	}
}
