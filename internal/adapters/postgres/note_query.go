package postgres

import (
	"strconv"
	"strings"
)

// noteFilter собирает параметризованный предикат для выборки заметок.
// Условие по владельцу добавляется конструктором и не может быть убрано;
// поисковая строка и тег опциональны и соединяются через AND.
type noteFilter struct {
	conditions []string
	args       []interface{}
}

// newNoteFilter создает фильтр с обязательным условием по владельцу.
func newNoteFilter(userID string) *noteFilter {
	return &noteFilter{
		conditions: []string{"user_id = $1"},
		args:       []interface{}{userID},
	}
}

// WithSearchText добавляет регистронезависимый поиск подстроки по заголовку
// или любому тегу. Пустая строка не меняет фильтр.
func (f *noteFilter) WithSearchText(searchText string) *noteFilter {
	if searchText == "" {
		return f
	}

	pattern := "%" + escapeLike(searchText) + "%"
	f.args = append(f.args, pattern)
	placeholder := f.placeholder()

	f.conditions = append(f.conditions,
		"(title ILIKE "+placeholder+" ESCAPE '\\' OR EXISTS (SELECT 1 FROM unnest(tags) AS tag WHERE tag ILIKE "+placeholder+" ESCAPE '\\'))")
	return f
}

// WithTag добавляет точное совпадение тега. Пустая строка не меняет фильтр.
func (f *noteFilter) WithTag(tagFilter string) *noteFilter {
	if tagFilter == "" {
		return f
	}

	f.args = append(f.args, tagFilter)
	f.conditions = append(f.conditions, f.placeholder()+" = ANY(tags)")
	return f
}

// WhereClause возвращает готовое выражение WHERE.
func (f *noteFilter) WhereClause() string {
	return "WHERE " + strings.Join(f.conditions, " AND ")
}

// Args возвращает аргументы запроса в порядке плейсхолдеров.
func (f *noteFilter) Args() []interface{} {
	return f.args
}

// placeholder возвращает плейсхолдер последнего добавленного аргумента.
func (f *noteFilter) placeholder() string {
	return "$" + strconv.Itoa(len(f.args))
}

// escapeLike экранирует метасимволы LIKE, чтобы пользовательский ввод
// не превращался в шаблон.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
