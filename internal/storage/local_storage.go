package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

type LocalStorage struct {
	basePath string
}

func NewLocalStorage(basePath string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, os.ModePerm); err != nil {
		return nil, err
	}
	return &LocalStorage{basePath: basePath}, nil
}

// getPathFromID fans blobs out over nested directories, one per id character.
func (ls *LocalStorage) getPathFromID(id string) (string, error) {
	if id == "" || strings.ContainsAny(id, `/\.`) {
		return "", fmt.Errorf("invalid blob id %q", id)
	}
	pathParts := strings.Split(id, "")
	return filepath.Join(ls.basePath, filepath.Join(pathParts...)), nil
}

func (ls *LocalStorage) Save(ctx context.Context, id string, data io.Reader) (int64, error) {
	filePath, err := ls.getPathFromID(id)
	if err != nil {
		return 0, err
	}

	if err := os.MkdirAll(filepath.Dir(filePath), os.ModePerm); err != nil {
		return 0, err
	}

	file, err := os.Create(filePath)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	n, err := io.Copy(file, data)
	if err != nil {
		os.Remove(filePath)
		return 0, err
	}
	return n, nil
}

func (ls *LocalStorage) Get(ctx context.Context, id string) (io.ReadCloser, error) {
	filePath, err := ls.getPathFromID(id)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("blob with id %s: %w", id, ErrBlobNotFound)
		}
		return nil, err
	}

	return file, nil
}

func (ls *LocalStorage) Delete(ctx context.Context, id string) error {
	filePath, err := ls.getPathFromID(id)
	if err != nil {
		return err
	}

	err = os.Remove(filePath)
	if os.IsNotExist(err) {
		return nil
	}

	return err
}
