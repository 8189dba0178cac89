// Package blob keeps uploaded file bodies on local disk.
//
// Stored names never derive from the uploader's filename beyond its
// extension: a key is "<unix millis>-<random hex><ext>". Writes stream into
// "<key>.tmp", are hashed on the fly, synced and then renamed into place so a
// key either names a complete body or nothing.
package blob

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const tmpSuffix = ".tmp"

var (
	ErrNotFound   = errors.New("blob: not found")
	ErrInvalidKey = errors.New("blob: invalid key")
)

// Object describes a body that was written.
type Object struct {
	Key      string
	Size     int64
	Checksum string // hex sha256
}

// LocalStore is a flat directory of blobs.
type LocalStore struct {
	dir string
	now func() time.Time
}

// NewLocalStore creates dir if needed. An existing directory is fine.
func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("blob: create dir %s: %w", dir, err)
	}
	return &LocalStore{dir: dir, now: time.Now}, nil
}

// Dir returns the directory blobs live in.
func (s *LocalStore) Dir() string { return s.dir }

// NewKey returns a fresh storage key keeping only the lower-cased extension
// of suggestedName.
func (s *LocalStore) NewKey(suggestedName string) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(suggestedName)))
	if !validExt(ext) {
		ext = ""
	}
	token := strings.ReplaceAll(uuid.New().String(), "-", "")
	return strconv.FormatInt(s.now().UnixMilli(), 10) + "-" + token + ext
}

// Put streams r into a new blob.
func (s *LocalStore) Put(ctx context.Context, r io.Reader, suggestedName string) (Object, error) {
	if err := ctx.Err(); err != nil {
		return Object{}, err
	}

	key := s.NewKey(suggestedName)
	fullPath := filepath.Join(s.dir, key)
	tmpPath := fullPath + tmpSuffix

	f, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o640)
	if err != nil {
		return Object{}, fmt.Errorf("blob: create temp file: %w", err)
	}

	hasher := sha256.New()
	size, err := io.Copy(f, io.TeeReader(r, hasher))
	if err != nil {
		_ = f.Close()
		_ = os.Remove(tmpPath)
		return Object{}, fmt.Errorf("blob: write: %w", err)
	}

	if err := f.Sync(); err != nil {
		_ = f.Close()
		_ = os.Remove(tmpPath)
		return Object{}, fmt.Errorf("blob: fsync: %w", err)
	}

	if err := f.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return Object{}, fmt.Errorf("blob: close: %w", err)
	}

	if err := ctx.Err(); err != nil {
		_ = os.Remove(tmpPath)
		return Object{}, err
	}

	if err := os.Rename(tmpPath, fullPath); err != nil {
		_ = os.Remove(tmpPath)
		return Object{}, fmt.Errorf("blob: rename: %w", err)
	}

	return Object{
		Key:      key,
		Size:     size,
		Checksum: hex.EncodeToString(hasher.Sum(nil)),
	}, nil
}

// Open returns the body stored under key. The caller closes it.
func (s *LocalStore) Open(key string) (*os.File, error) {
	if err := checkKey(key); err != nil {
		return nil, err
	}

	f, err := os.Open(filepath.Join(s.dir, key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("blob: open %s: %w", key, err)
	}
	return f, nil
}

// Remove deletes the blob under key. A missing blob is not an error.
func (s *LocalStore) Remove(key string) error {
	if err := checkKey(key); err != nil {
		return err
	}

	err := os.Remove(filepath.Join(s.dir, key))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("blob: remove %s: %w", key, err)
	}
	return nil
}

// SweepTemp removes temp files left by interrupted writes that are older
// than olderThan, returning how many it removed.
func (s *LocalStore) SweepTemp(olderThan time.Duration) (int, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return 0, fmt.Errorf("blob: read dir: %w", err)
	}

	cutoff := s.now().Add(-olderThan)
	removed := 0
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), tmpSuffix) {
			continue
		}

		info, err := e.Info()
		if err != nil || info.ModTime().After(cutoff) {
			continue
		}

		if err := os.Remove(filepath.Join(s.dir, e.Name())); err == nil {
			removed++
		}
	}
	return removed, nil
}

func checkKey(key string) error {
	if key == "" || key == "." || strings.Contains(key, "..") ||
		strings.ContainsAny(key, `/\`) || strings.HasSuffix(key, tmpSuffix) {
		return ErrInvalidKey
	}
	return nil
}

func validExt(ext string) bool {
	if len(ext) < 2 || len(ext) > 16 {
		return false
	}
	for _, c := range ext[1:] {
		if (c < 'a' || c > 'z') && (c < '0' || c > '9') {
			return false
		}
	}
	return true
}
