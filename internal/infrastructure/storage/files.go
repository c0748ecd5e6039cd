package storage

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// FileStore keeps uploaded documents on local disk.
type FileStore struct{ dir string }

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// StoredName prefixes the base filename with 10 hex chars of md5(uniq + filename).
// uniq is per upload, so two "scan.pdf" uploads land on different paths.
func StoredName(filename, uniq string) string {
	base := filepath.Base(strings.ReplaceAll(filename, "\\", "/"))
	sum := md5.Sum([]byte(uniq + "/" + filename))
	return hex.EncodeToString(sum[:])[:10] + "_" + base
}

// Save writes r under name and returns the full path. An existing file is never
// overwritten; the call fails with fs.ErrExist instead.
func (s *FileStore) Save(ctx context.Context, name string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	path := filepath.Join(s.dir, filepath.Base(name))
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		_ = os.Remove(path)
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	return path, nil
}

func (s *FileStore) Remove(path string) error {
	err := os.Remove(path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
