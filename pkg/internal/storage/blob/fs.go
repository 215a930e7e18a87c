package blob

import (
	"context"
	"crypto/rand"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/oklog/ulid"
)

// FSStore 本地磁盘存储. 对象键是 ULID 加上原始扩展名，
// 键里不含路径分隔符，全部对象平铺在根目录下.
type FSStore struct {
	root string
}

// NewFSStore 创建本地磁盘存储，确保根目录存在.
func NewFSStore(root string) (*FSStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create storage root: %w", err)
	}

	return &FSStore{root: root}, nil
}

// newKey 生成对象键：ULID + 原始文件扩展名.
func newKey(originalName string) string {
	id := ulid.MustNew(ulid.Timestamp(time.Now()), rand.Reader)
	ext := strings.ToLower(filepath.Ext(originalName))

	return id.String() + ext
}

// Put 实现 Store 接口.
func (s *FSStore) Put(_ context.Context, originalName string, r io.Reader, _ int64) (string, string, error) {
	key := newKey(originalName)
	path := filepath.Join(s.root, key)

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", "", fmt.Errorf("create blob file: %w", err)
	}

	h := xxhash.New()

	if _, err := io.Copy(io.MultiWriter(f, h), r); err != nil {
		f.Close()
		os.Remove(path)

		return "", "", fmt.Errorf("write blob: %w", err)
	}

	if err := f.Close(); err != nil {
		os.Remove(path)

		return "", "", fmt.Errorf("close blob: %w", err)
	}

	return key, fmt.Sprintf("%016x", h.Sum64()), nil
}

// Get 实现 Store 接口.
func (s *FSStore) Get(_ context.Context, key string) (*Object, error) {
	path := filepath.Join(s.root, filepath.Base(key))

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open blob %s: %w", key, err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()

		return nil, fmt.Errorf("stat blob %s: %w", key, err)
	}

	return &Object{Reader: f, Size: info.Size()}, nil
}

// Ping 实现 Store 接口：根目录必须存在且是目录.
func (s *FSStore) Ping(_ context.Context) error {
	info, err := os.Stat(s.root)
	if err != nil {
		return fmt.Errorf("stat storage root: %w", err)
	}

	if !info.IsDir() {
		return fmt.Errorf("storage root %s is not a directory", s.root)
	}

	return nil
}

// Delete 实现 Store 接口.
func (s *FSStore) Delete(_ context.Context, key string) error {
	path := filepath.Join(s.root, filepath.Base(key))

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove blob %s: %w", key, err)
	}

	return nil
}
