// pkg/filestorage/local_filestorage.go

package filestorage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

type FileStorageInterface interface {
	Save(file io.Reader, originalFileName string, prefix string) (filePath string, err error)
	Delete(filePath string) error
}

type LocalFileStorage struct {
	basePath string
	now      func() time.Time
}

func NewLocalFileStorage(basePath string) (FileStorageInterface, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("не удалось создать директорию: %w", err)
	}
	return &LocalFileStorage{basePath: basePath, now: time.Now}, nil
}

// Save кладёт файл в basePath/prefix/yyyy/mm/dd под уникальным именем
// и возвращает путь относительно basePath.
func (s *LocalFileStorage) Save(file io.Reader, originalFileName string, prefix string) (string, error) {
	now := s.now()
	ext := strings.ToLower(filepath.Ext(originalFileName))
	uniqueFileName := fmt.Sprintf("%s-%s%s", now.Format("2006-01-02"), uuid.New().String(), ext)

	relDir := filepath.Join(prefix, now.Format("2006/01/02"))
	if err := os.MkdirAll(filepath.Join(s.basePath, relDir), 0o755); err != nil {
		return "", err
	}

	dst, err := os.Create(filepath.Join(s.basePath, relDir, uniqueFileName))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err = io.Copy(dst, file); err != nil {
		return "", err
	}

	return filepath.ToSlash(filepath.Join(relDir, uniqueFileName)), nil
}

// Delete: отсутствующий файл не считается ошибкой.
func (s *LocalFileStorage) Delete(relativePath string) error {
	clean := filepath.Clean("/" + relativePath)
	fullPath := filepath.Join(s.basePath, clean)

	if err := os.Remove(fullPath); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
