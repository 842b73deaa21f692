package repositories

import (
	"context"

	"notemark/internal/domain/entities"
)

// NoteRepository определяет интерфейс хранилища заметок. Каждая операция
// чтения и изменения дополнительно фильтруется по владельцу: чужая заметка
// неотличима от несуществующей.
type NoteRepository interface {
	Create(ctx context.Context, note *entities.Note) (*entities.Note, error)

	GetByID(ctx context.Context, noteID, userID string) (*entities.Note, error)

	// ListByOwner возвращает заметки владельца, отсортированные по updated_at
	// по убыванию. searchText и tagFilter опциональны (пустая строка - без фильтра).
	ListByOwner(ctx context.Context, userID, searchText, tagFilter string) ([]*entities.Note, error)

	Update(ctx context.Context, note *entities.Note) (*entities.Note, error)

	Delete(ctx context.Context, noteID, userID string) error

	DistinctTags(ctx context.Context, userID string) ([]string, error)
}
