package api

import (
	"context"

	"notemark/internal/domain/entities"
)

// CreateNoteInput содержит данные для создания заметки.
type CreateNoteInput struct {
	Title   string
	Content string
	Tags    []string
}

// UpdateNoteInput содержит частичное обновление заметки: nil-поле
// означает "оставить прежнее значение".
type UpdateNoteInput struct {
	Title   *string
	Content *string
	Tags    *[]string
}

// NoteUseCase определяет сценарии работы с заметками. Все операции
// выполняются от имени владельца.
type NoteUseCase interface {
	Create(ctx context.Context, userID string, input CreateNoteInput) (*entities.Note, error)

	Get(ctx context.Context, noteID, userID string) (*entities.Note, error)

	List(ctx context.Context, userID, searchText, tagFilter string) ([]*entities.Note, error)

	Update(ctx context.Context, noteID, userID string, input UpdateNoteInput) (*entities.Note, error)

	Delete(ctx context.Context, noteID, userID string) error

	Tags(ctx context.Context, userID string) ([]string, error)
}
