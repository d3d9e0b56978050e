package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
)

const DefaultLocalURLPrefix = "/files"

type LocalStore struct {
	basePath  string
	publicURL string
}

func NewLocalStore(basePath, publicURL string) (*LocalStore, error) {
	if err := os.MkdirAll(basePath, os.ModePerm); err != nil {
		return nil, err
	}
	if publicURL == "" {
		publicURL = DefaultLocalURLPrefix
	}
	return &LocalStore{basePath: basePath, publicURL: publicURL}, nil
}

func (ls *LocalStore) getPathFromKey(key string) (string, error) {
	if err := validateKey(key); err != nil {
		return "", err
	}
	return filepath.Join(ls.basePath, filepath.FromSlash(key)), nil
}

func (ls *LocalStore) Put(ctx context.Context, key string, data io.Reader, size int64, contentType string) (string, error) {
	filePath, err := ls.getPathFromKey(key)
	if err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return "", err
	}

	file, err := os.Create(filePath)
	if err != nil {
		return "", err
	}

	written, err := io.Copy(file, data)
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	if err == nil && size >= 0 && written != size {
		err = fmt.Errorf("wrote %d bytes, expected %d", written, size)
	}
	if err != nil {
		os.Remove(filePath)
		return "", err
	}

	return joinURL(ls.publicURL, key), nil
}

func (ls *LocalStore) Get(key string) (io.ReadCloser, error) {
	filePath, err := ls.getPathFromKey(key)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("object %s not found: %w", key, err)
		}
		return nil, err
	}

	return file, nil
}

func (ls *LocalStore) Delete(_ context.Context, key string) error {
	filePath, err := ls.getPathFromKey(key)
	if err != nil {
		return err
	}

	err = os.Remove(filePath)
	if os.IsNotExist(err) {
		return nil
	}

	return err
}

func (ls *LocalStore) Ping(_ context.Context) error {
	info, err := os.Stat(ls.basePath)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", ls.basePath)
	}
	return nil
}

// Handler serves stored objects read-only, for mounting under the public URL
// prefix.
func (ls *LocalStore) Handler() http.Handler {
	return http.FileServer(http.Dir(ls.basePath))
}

func (ls *LocalStore) PublicURL() string {
	return ls.publicURL
}
