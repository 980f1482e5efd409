package domain

import (
	"path/filepath"
	"strings"
)

// Допустимые расширения загрузок (документы/таблицы/презентации)
var allowedUploadExt = map[string]struct{}{
	".pdf":  {},
	".doc":  {},
	".docx": {},
	".ppt":  {},
	".pptx": {},
	".xls":  {},
	".xlsx": {},
}

// Лимит размера одного файла
const MaxUploadFileBytes = 10 << 20 // 10 MiB

func AllowedUploadName(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	_, ok := allowedUploadExt[ext]
	return ok
}

// ValidToolkitInput — предусловия Create: непустые title/description,
// непустой список категорий без пустых значений.
func ValidToolkitInput(title, description string, categories []string) bool {
	if strings.TrimSpace(title) == "" || strings.TrimSpace(description) == "" {
		return false
	}
	if len(categories) == 0 {
		return false
	}
	for _, c := range categories {
		if strings.TrimSpace(c) == "" {
			return false
		}
	}
	return true
}

// SanitizeFilename чистит клиентское имя файла перед использованием
// в именах записей архива: убираем path-компоненты, control-символы
// и ведущие точки. Пустой остаток заменяем заглушкой.
func SanitizeFilename(name string) string {
	// берём только базовое имя, отрезая любые разделители путей
	name = strings.ReplaceAll(name, "\\", "/")
	name = name[strings.LastIndex(name, "/")+1:]

	var b strings.Builder
	for _, r := range name {
		if r < 0x20 || r == 0x7f {
			continue
		}
		b.WriteRune(r)
	}
	name = strings.TrimLeft(b.String(), ".")
	if name == "" {
		return "file"
	}
	return name
}
