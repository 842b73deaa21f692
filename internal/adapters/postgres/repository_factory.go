package postgres

import (
	"notemark/internal/ports/repositories"
)

// RepositoryFactory создает репозитории поверх одного пула соединений.
type RepositoryFactory struct {
	pool PgxPoolInterface
}

// NewRepositoryFactory создает новую фабрику репозиториев.
func NewRepositoryFactory(pool PgxPoolInterface) *RepositoryFactory {
	return &RepositoryFactory{pool: pool}
}

// UserRepository возвращает репозиторий пользователей.
func (f *RepositoryFactory) UserRepository() repositories.UserRepository {
	return NewUserRepository(f.pool)
}

// NoteRepository возвращает репозиторий заметок.
func (f *RepositoryFactory) NoteRepository() repositories.NoteRepository {
	return NewNoteRepository(f.pool)
}
