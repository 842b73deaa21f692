package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"notemark/internal/domain/entities"
	"notemark/internal/ports/repositories"
	"notemark/pkg/logger"
)

// NoteRepository реализует интерфейс repositories.NoteRepository.
type NoteRepository struct {
	pool PgxPoolInterface
}

// NewNoteRepository создает новый репозиторий заметок.
func NewNoteRepository(pool PgxPoolInterface) repositories.NoteRepository {
	return &NoteRepository{pool: pool}
}

const noteColumns = "id, user_id, title, content, tags, created_at, updated_at"

// Create сохраняет новую заметку в БД.
func (r *NoteRepository) Create(ctx context.Context, note *entities.Note) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("repository", "note"), zap.String("method", "Create"))
	log.Debug(ctx, "creating new note", zap.String("userID", note.UserID))

	query := `
        INSERT INTO notes (user_id, title, content, tags)
        VALUES ($1, $2, $3, $4)
        RETURNING ` + noteColumns

	var created entities.Note
	err := r.pool.QueryRow(ctx, query,
		note.UserID, note.Title, note.Content, note.Tags,
	).Scan(
		&created.ID,
		&created.UserID,
		&created.Title,
		&created.Content,
		&created.Tags,
		&created.CreatedAt,
		&created.UpdatedAt,
	)

	if err != nil {
		log.Error(ctx, "failed to create note", zap.Error(err))
		return nil, fmt.Errorf("failed to create note: %w", err)
	}

	log.Debug(ctx, "note created", zap.String("noteID", created.ID))
	return &created, nil
}

// GetByID получает заметку по ID и ID владельца. Заметка другого владельца
// неотличима от несуществующей.
func (r *NoteRepository) GetByID(ctx context.Context, noteID, userID string) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("repository", "note"), zap.String("method", "GetByID"))
	log.Debug(ctx, "getting note", zap.String("noteID", noteID), zap.String("userID", userID))

	query := `
        SELECT ` + noteColumns + `
        FROM notes
        WHERE id = $1 AND user_id = $2`

	var note entities.Note
	err := r.pool.QueryRow(ctx, query, noteID, userID).Scan(
		&note.ID,
		&note.UserID,
		&note.Title,
		&note.Content,
		&note.Tags,
		&note.CreatedAt,
		&note.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "note not found", zap.String("noteID", noteID))
			return nil, entities.ErrNoteNotFound
		}
		log.Error(ctx, "failed to get note", zap.Error(err))
		return nil, fmt.Errorf("failed to get note: %w", err)
	}

	return &note, nil
}

// ListByOwner получает заметки владельца с опциональным поиском и фильтром
// по тегу, отсортированные по времени обновления по убыванию.
func (r *NoteRepository) ListByOwner(ctx context.Context, userID, searchText, tagFilter string) ([]*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("repository", "note"), zap.String("method", "ListByOwner"))
	log.Debug(ctx, "listing notes",
		zap.String("userID", userID),
		zap.String("search", searchText),
		zap.String("tag", tagFilter))

	filter := newNoteFilter(userID).
		WithSearchText(searchText).
		WithTag(tagFilter)

	query := `
        SELECT ` + noteColumns + `
        FROM notes
        ` + filter.WhereClause() + `
        ORDER BY updated_at DESC`

	rows, err := r.pool.Query(ctx, query, filter.Args()...)
	if err != nil {
		log.Error(ctx, "failed to list notes", zap.Error(err))
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	defer rows.Close()

	notes := make([]*entities.Note, 0)
	for rows.Next() {
		var note entities.Note
		err := rows.Scan(
			&note.ID,
			&note.UserID,
			&note.Title,
			&note.Content,
			&note.Tags,
			&note.CreatedAt,
			&note.UpdatedAt,
		)
		if err != nil {
			log.Error(ctx, "failed to scan note", zap.Error(err))
			return nil, fmt.Errorf("failed to scan note: %w", err)
		}
		notes = append(notes, &note)
	}

	if err := rows.Err(); err != nil {
		log.Error(ctx, "error iterating rows", zap.Error(err))
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return notes, nil
}

// Update обновляет существующую заметку и поднимает updated_at.
func (r *NoteRepository) Update(ctx context.Context, note *entities.Note) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("repository", "note"), zap.String("method", "Update"))
	log.Debug(ctx, "updating note", zap.String("noteID", note.ID))

	query := `
        UPDATE notes
        SET title = $1, content = $2, tags = $3, updated_at = now()
        WHERE id = $4 AND user_id = $5
        RETURNING ` + noteColumns

	var updated entities.Note
	err := r.pool.QueryRow(ctx, query,
		note.Title, note.Content, note.Tags, note.ID, note.UserID,
	).Scan(
		&updated.ID,
		&updated.UserID,
		&updated.Title,
		&updated.Content,
		&updated.Tags,
		&updated.CreatedAt,
		&updated.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "note not found or not owned by user")
			return nil, entities.ErrNoteNotFound
		}
		log.Error(ctx, "failed to update note", zap.Error(err))
		return nil, fmt.Errorf("failed to update note: %w", err)
	}

	return &updated, nil
}

// Delete безвозвратно удаляет заметку владельца.
func (r *NoteRepository) Delete(ctx context.Context, noteID, userID string) error {
	log := logger.Log(ctx).With(zap.String("repository", "note"), zap.String("method", "Delete"))
	log.Debug(ctx, "deleting note", zap.String("noteID", noteID))

	result, err := r.pool.Exec(ctx,
		`DELETE FROM notes WHERE id = $1 AND user_id = $2`,
		noteID, userID,
	)
	if err != nil {
		log.Error(ctx, "failed to delete note", zap.Error(err))
		return fmt.Errorf("failed to delete note: %w", err)
	}

	if result.RowsAffected() == 0 {
		log.Debug(ctx, "note not found or not owned by user")
		return entities.ErrNoteNotFound
	}

	return nil
}

// DistinctTags возвращает уникальные теги по всем заметкам владельца,
// отсортированные по возрастанию.
func (r *NoteRepository) DistinctTags(ctx context.Context, userID string) ([]string, error) {
	log := logger.Log(ctx).With(zap.String("repository", "note"), zap.String("method", "DistinctTags"))
	log.Debug(ctx, "aggregating tags", zap.String("userID", userID))

	rows, err := r.pool.Query(ctx,
		`SELECT DISTINCT tag FROM notes, unnest(tags) AS tag WHERE user_id = $1 ORDER BY tag ASC`,
		userID,
	)
	if err != nil {
		log.Error(ctx, "failed to aggregate tags", zap.Error(err))
		return nil, fmt.Errorf("failed to aggregate tags: %w", err)
	}
	defer rows.Close()

	tags := make([]string, 0)
	for rows.Next() {
		var tag string
		if err := rows.Scan(&tag); err != nil {
			log.Error(ctx, "failed to scan tag", zap.Error(err))
			return nil, fmt.Errorf("failed to scan tag: %w", err)
		}
		tags = append(tags, tag)
	}

	if err := rows.Err(); err != nil {
		log.Error(ctx, "error iterating rows", zap.Error(err))
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return tags, nil
}
