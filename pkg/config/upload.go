package config

type UploadRule struct {
	AllowedMimeTypes []string
	AllowedExts      []string
	MaxSizeMB        int64
	PathPrefix       string
}

// UploadContexts - правила для каждого вида загружаемых файлов.
// CSV определяется как text/plain, XLSX - как zip-архив.
var UploadContexts = map[string]UploadRule{
	"transfer_import": {
		AllowedMimeTypes: []string{
			"text/plain; charset=utf-8",
			"text/csv; charset=utf-8",
			"application/zip",
			"application/octet-stream",
			"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		},
		AllowedExts: []string{".csv", ".xlsx"},
		MaxSizeMB:   10,
		PathPrefix:  "imports",
	},
}
