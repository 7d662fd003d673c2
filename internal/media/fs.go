package media

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalStore writes files under a root directory and serves them from a
// static URL prefix.
type LocalStore struct {
	root       string
	publicBase string
}

func NewLocalStore(root, publicBase string) *LocalStore {
	return &LocalStore{root: root, publicBase: strings.TrimRight(publicBase, "/")}
}

func (s *LocalStore) Name() string { return "filesystem" }

// Put writes atomically: bytes land in a temp file in the target directory
// and are renamed into place, so a failure mid-write never corrupts files
// already written in the same batch.
func (s *LocalStore) Put(ctx context.Context, path, contentType string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	rel := filepath.FromSlash(strings.TrimPrefix(path, "/"))
	full := filepath.Join(s.root, rel)
	if err := s.ensureDir(filepath.Dir(full)); err != nil {
		return "", err
	}

	tmp, err := os.CreateTemp(filepath.Dir(full), ".upload-*")
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}
	if err := os.Rename(tmp.Name(), full); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}
	return s.publicBase + "/" + strings.TrimPrefix(path, "/"), nil
}

// ensureDir provisions every missing component of dir, checking existence
// before each create so repeated uploads to a provisioned path skip the
// mkdir calls entirely.
func (s *LocalStore) ensureDir(dir string) error {
	if _, err := os.Stat(s.root); os.IsNotExist(err) {
		if err := os.MkdirAll(s.root, 0o755); err != nil {
			return err
		}
	}
	rel, err := filepath.Rel(s.root, dir)
	if err != nil {
		return err
	}
	cur := s.root
	for _, part := range strings.Split(rel, string(filepath.Separator)) {
		if part == "" || part == "." {
			continue
		}
		cur = filepath.Join(cur, part)
		st, err := os.Stat(cur)
		switch {
		case err == nil:
			if !st.IsDir() {
				return fmt.Errorf("media: %s exists and is not a directory", cur)
			}
		case os.IsNotExist(err):
			if err := os.Mkdir(cur, 0o755); err != nil && !os.IsExist(err) {
				return err
			}
		default:
			return err
		}
	}
	return nil
}
