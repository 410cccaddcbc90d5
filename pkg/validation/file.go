package validation

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"slices"
	"strings"

	"kaawa-maintenance/pkg/config"
)

// ValidateFile проверяет размер, расширение и MIME-тип файла.
// contextName - ключ из config.UploadContexts (например, "transfer_import").
func ValidateFile(fileHeader *multipart.FileHeader, file io.ReadSeeker, contextName string) error {
	// 1. Получаем правила из конфига
	rules, ok := config.UploadContexts[contextName]
	if !ok {
		return fmt.Errorf("внутренняя ошибка: неизвестный контекст загрузки '%s'", contextName)
	}

	// 2. Проверка размера (если ограничение > 0)
	if rules.MaxSizeMB > 0 {
		maxSizeBytes := rules.MaxSizeMB * 1024 * 1024
		if fileHeader.Size > maxSizeBytes {
			return fmt.Errorf("el archivo (%.2f MB) supera el límite de %d MB", float64(fileHeader.Size)/1024/1024, rules.MaxSizeMB)
		}
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if len(rules.AllowedExts) > 0 && !slices.Contains(rules.AllowedExts, ext) {
		return fmt.Errorf("formato de archivo no permitido: %s", ext)
	}

	// 3. Проверка содержимого (Magic Numbers)
	buffer := make([]byte, 512)
	n, err := file.Read(buffer)
	if err != nil && err != io.EOF {
		return fmt.Errorf("error al leer el archivo")
	}

	// Важно: возвращаем курсор чтения в начало!
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("error al procesar el archivo")
	}

	mimeType := http.DetectContentType(buffer[:n])

	// 4. Сверка с разрешенными типами
	if !slices.Contains(rules.AllowedMimeTypes, mimeType) {
		return fmt.Errorf("tipo de archivo no permitido: %s", mimeType)
	}

	return nil
}
