package entities

import (
	"errors"
	"time"
)

// MaxTags - максимально допустимое количество тегов заметки.
const MaxTags = 10

// Ошибки домена заметок.
var (
	ErrNoteNotFound = errors.New("note not found")
	ErrEmptyTitle   = errors.New("title cannot be empty")
	ErrEmptyContent = errors.New("content cannot be empty")
	ErrTooManyTags  = errors.New("note cannot have more than 10 tags")
)

// Note представляет собой заметку пользователя. Content хранится как
// непрозрачный rich-text блок и ядром не разбирается.
type Note struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewNote создает новую заметку для пользователя. Порядок тегов сохраняется
// так, как его передал клиент.
func NewNote(userID, title, content string, tags []string) *Note {
	if tags == nil {
		tags = []string{}
	}
	now := time.Now()
	return &Note{
		UserID:    userID,
		Title:     title,
		Content:   content,
		Tags:      tags,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
