package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"notemark/internal/domain/entities"
	"notemark/internal/ports/api"
	"notemark/internal/ports/repositories"
	"notemark/pkg/logger"
)

const (
	methodCreateNote = "Create"
	methodGetNote    = "Get"
	methodListNotes  = "List"
	methodUpdateNote = "Update"
	methodDeleteNote = "Delete"
	methodListTags   = "Tags"

	msgCreatingNote = "creating note"
	msgGettingNote  = "getting note"
	msgListingNotes = "listing notes"
	msgListingTags  = "listing tags"
	msgNoteCreated  = "note created"
	msgNoteUpdated  = "note updated"
	msgNoteDeleted  = "note deleted"

	errCtxValidatingNote = "validating note"
	errCtxCreatingNote   = "creating note"
	errCtxGettingNote    = "getting note"
	errCtxListingNotes   = "listing notes"
	errCtxUpdatingNote   = "updating note"
	errCtxDeletingNote   = "deleting note"
	errCtxListingTags    = "listing tags"
)

// NoteUseCase реализует бизнес-логику работы с заметками. Все операции
// выполняются строго в рамках владельца.
type NoteUseCase struct {
	noteRepo repositories.NoteRepository
}

// NewNoteUseCase создает новый экземпляр NoteUseCase.
func NewNoteUseCase(noteRepo repositories.NoteRepository) api.NoteUseCase {
	return &NoteUseCase{noteRepo: noteRepo}
}

// Create создает новую заметку для пользователя.
func (uc *NoteUseCase) Create(ctx context.Context, userID string, input api.CreateNoteInput) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", methodCreateNote), zap.String("userID", userID))
	log.Debug(ctx, msgCreatingNote)

	if err := validateNoteFields(input.Title, input.Content, input.Tags); err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxValidatingNote, err)
	}

	note := entities.NewNote(userID, input.Title, input.Content, input.Tags)

	created, err := uc.noteRepo.Create(ctx, note)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxCreatingNote, err)
	}

	log.Info(ctx, msgNoteCreated, zap.String("noteID", created.ID))
	return created, nil
}

// Get возвращает заметку владельца по ID.
func (uc *NoteUseCase) Get(ctx context.Context, noteID, userID string) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", methodGetNote), zap.String("noteID", noteID))
	log.Debug(ctx, msgGettingNote)

	note, err := uc.noteRepo.GetByID(ctx, noteID, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxGettingNote, err)
	}
	return note, nil
}

// List возвращает заметки владельца с опциональным поиском и фильтром по тегу.
// Отсутствие совпадений - пустой список, не ошибка.
func (uc *NoteUseCase) List(ctx context.Context, userID, searchText, tagFilter string) ([]*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", methodListNotes), zap.String("userID", userID))
	log.Debug(ctx, msgListingNotes, zap.String("search", searchText), zap.String("tag", tagFilter))

	notes, err := uc.noteRepo.ListByOwner(ctx, userID, searchText, tagFilter)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxListingNotes, err)
	}
	return notes, nil
}

// Update частично обновляет заметку: меняются только переданные поля,
// остальные сохраняют прежние значения.
func (uc *NoteUseCase) Update(ctx context.Context, noteID, userID string, input api.UpdateNoteInput) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", methodUpdateNote), zap.String("noteID", noteID))

	note, err := uc.noteRepo.GetByID(ctx, noteID, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxUpdatingNote, err)
	}

	if input.Title != nil {
		note.Title = *input.Title
	}
	if input.Content != nil {
		note.Content = *input.Content
	}
	if input.Tags != nil {
		note.Tags = *input.Tags
		if note.Tags == nil {
			note.Tags = []string{}
		}
	}

	if err := validateNoteFields(note.Title, note.Content, note.Tags); err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxValidatingNote, err)
	}

	updated, err := uc.noteRepo.Update(ctx, note)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxUpdatingNote, err)
	}

	log.Info(ctx, msgNoteUpdated)
	return updated, nil
}

// Delete безвозвратно удаляет заметку владельца. Повторное удаление
// дает ту же ошибку not found, что и удаление чужой заметки.
func (uc *NoteUseCase) Delete(ctx context.Context, noteID, userID string) error {
	log := logger.Log(ctx).With(zap.String("method", methodDeleteNote), zap.String("noteID", noteID))

	if err := uc.noteRepo.Delete(ctx, noteID, userID); err != nil {
		return fmt.Errorf("%s: %w", errCtxDeletingNote, err)
	}

	log.Info(ctx, msgNoteDeleted)
	return nil
}

// Tags возвращает уникальные теги владельца, отсортированные по возрастанию.
func (uc *NoteUseCase) Tags(ctx context.Context, userID string) ([]string, error) {
	log := logger.Log(ctx).With(zap.String("method", methodListTags), zap.String("userID", userID))
	log.Debug(ctx, msgListingTags)

	tags, err := uc.noteRepo.DistinctTags(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxListingTags, err)
	}
	return tags, nil
}

// validateNoteFields проверяет инварианты заметки: непустой заголовок и
// содержимое, не более MaxTags тегов. Дубликаты тегов допустимы.
func validateNoteFields(title, content string, tags []string) error {
	if title == "" {
		return entities.ErrEmptyTitle
	}
	if content == "" {
		return entities.ErrEmptyContent
	}
	if len(tags) > entities.MaxTags {
		return entities.ErrTooManyTags
	}
	return nil
}
