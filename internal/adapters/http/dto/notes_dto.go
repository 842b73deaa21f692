package dto

// CreateNoteRequest запрос на создание заметки.
type CreateNoteRequest struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
}

// UpdateNoteRequest запрос на частичное обновление заметки.
// Отсутствующее в теле поле остается без изменений.
type UpdateNoteRequest struct {
	Title   *string   `json:"title"`
	Content *string   `json:"content"`
	Tags    *[]string `json:"tags"`
}

// DeletedNote тело ответа на удаление заметки.
type DeletedNote struct {
	ID string `json:"id"`
}
