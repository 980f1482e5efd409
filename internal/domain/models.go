package domain

import (
	"time"

	"github.com/google/uuid"
)

// Базовые идентификаторы
type UserID = uuid.UUID
type ToolkitID = uuid.UUID

// Пользователь
type User struct {
	ID        UserID    `json:"id"`
	Login     string    `json:"login"`
	PassHash  string    `json:"-"` // никогда не отдаём наружу
	CreatedAt time.Time `json:"created_at"`
}

// Статус тулкита: pending — intent-запись, файлы ещё переносятся;
// ready — манифест записан, тулкит виден наружу.
type ToolkitStatus string

const (
	ToolkitPending ToolkitStatus = "pending"
	ToolkitReady   ToolkitStatus = "ready"
)

// Тулкит: именованный, категоризированный набор скачиваемых файлов
type Toolkit struct {
	ID          ToolkitID     `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Categories  []string      `json:"category"`
	Status      ToolkitStatus `json:"-"`
	Files       []FileEntry   `json:"files"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// Метаданные одного файла внутри тулкита.
// OriginalName — имя, присланное клиентом (не доверяем);
// StoredName — сгенерированное сервером, уникальное в каталоге тулкита.
type FileEntry struct {
	OriginalName string `json:"originalName"`
	StoredName   string `json:"storedName"`
	MIME         string `json:"mimeType"`
	SizeBytes    int64  `json:"size"`
	Path         string `json:"path"` // /uploads/toolkit/<id>/<storedName>
}

// Частичное обновление: nil — поле не трогаем
type ToolkitUpdate struct {
	Title       *string
	Description *string
	Categories  []string
}
