package verify

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"

	"github.com/teranos/padgen/errors"
)

// Digest fingerprints a tree: relative paths and contents of every file,
// in lexical order. Two runs with the same seed and one worker produce the
// same digest.
func Digest(root string) (string, error) {
	h := xxhash.New()
	err := walkFiles(root, func(path string) error {
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		_, _ = h.WriteString(filepath.ToSlash(rel))
		_, _ = h.Write([]byte{0})
		_, _ = h.Write(data)
		_, _ = h.Write([]byte{0})
		return nil
	})
	if err != nil {
		return "", errors.Wrapf(err, "digest %s", root)
	}
	return fmt.Sprintf("%016x", h.Sum64()), nil
}
