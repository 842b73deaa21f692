package http_test

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"notemark/internal/domain/entities"
)

// Потокобезопасные репозитории в памяти с той же семантикой, что и у
// реализаций поверх Postgres.

type memoryUserRepository struct {
	mu     sync.Mutex
	users  map[string]*entities.User
	nextID int
}

func newMemoryUserRepository() *memoryUserRepository {
	return &memoryUserRepository{users: make(map[string]*entities.User)}
}

func (r *memoryUserRepository) Create(_ context.Context, user *entities.User) (*entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	now := time.Now()

	created := *user
	created.ID = fmt.Sprintf("user-%d", r.nextID)
	created.CreatedAt = now
	created.UpdatedAt = now

	r.users[created.ID] = &created

	result := created
	return &result, nil
}

func (r *memoryUserRepository) FindByID(_ context.Context, id string) (*entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return nil, entities.ErrUserNotFound
	}

	result := *user
	return &result, nil
}

func (r *memoryUserRepository) FindByEmail(_ context.Context, email string) (*entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if strings.EqualFold(user.Email, email) {
			result := *user
			return &result, nil
		}
	}
	return nil, entities.ErrUserNotFound
}

func (r *memoryUserRepository) delete(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
}

type memoryNoteRepository struct {
	mu     sync.Mutex
	notes  map[string]*entities.Note
	nextID int
}

func newMemoryNoteRepository() *memoryNoteRepository {
	return &memoryNoteRepository{notes: make(map[string]*entities.Note)}
}

func (r *memoryNoteRepository) Create(_ context.Context, note *entities.Note) (*entities.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	now := time.Now()

	created := *note
	created.ID = fmt.Sprintf("note-%d", r.nextID)
	created.CreatedAt = now
	created.UpdatedAt = now

	r.notes[created.ID] = &created

	result := created
	return &result, nil
}

func (r *memoryNoteRepository) GetByID(_ context.Context, noteID, userID string) (*entities.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	note, ok := r.notes[noteID]
	if !ok || note.UserID != userID {
		return nil, entities.ErrNoteNotFound
	}

	result := *note
	return &result, nil
}

func (r *memoryNoteRepository) ListByOwner(_ context.Context, userID, searchText, tagFilter string) ([]*entities.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := make([]*entities.Note, 0)
	for _, note := range r.notes {
		if note.UserID != userID {
			continue
		}
		if searchText != "" && !matchesSearch(note, searchText) {
			continue
		}
		if tagFilter != "" && !hasTag(note, tagFilter) {
			continue
		}
		copied := *note
		result = append(result, &copied)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].UpdatedAt.After(result[j].UpdatedAt)
	})

	return result, nil
}

func (r *memoryNoteRepository) Update(_ context.Context, note *entities.Note) (*entities.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.notes[note.ID]
	if !ok || existing.UserID != note.UserID {
		return nil, entities.ErrNoteNotFound
	}

	updated := *note
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now()

	r.notes[updated.ID] = &updated

	result := updated
	return &result, nil
}

func (r *memoryNoteRepository) Delete(_ context.Context, noteID, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	note, ok := r.notes[noteID]
	if !ok || note.UserID != userID {
		return entities.ErrNoteNotFound
	}

	delete(r.notes, noteID)
	return nil
}

func (r *memoryNoteRepository) DistinctTags(_ context.Context, userID string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	seen := make(map[string]struct{})
	for _, note := range r.notes {
		if note.UserID != userID {
			continue
		}
		for _, tag := range note.Tags {
			seen[tag] = struct{}{}
		}
	}

	tags := make([]string, 0, len(seen))
	for tag := range seen {
		tags = append(tags, tag)
	}
	sort.Strings(tags)

	return tags, nil
}

func matchesSearch(note *entities.Note, searchText string) bool {
	needle := strings.ToLower(searchText)
	if strings.Contains(strings.ToLower(note.Title), needle) {
		return true
	}
	for _, tag := range note.Tags {
		if strings.Contains(strings.ToLower(tag), needle) {
			return true
		}
	}
	return false
}

func hasTag(note *entities.Note, tag string) bool {
	for _, t := range note.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
