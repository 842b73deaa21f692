// Package notes содержит HTTP обработчики для управления заметками.
package notes

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"notemark/internal/adapters/http/dto"
	"notemark/internal/adapters/http/middleware"
	"notemark/internal/adapters/http/respond"
	"notemark/internal/domain/entities"
	"notemark/internal/ports/api"
	"notemark/pkg/logger"
)

// Константы для логирования.
const (
	LogHandlerCreateNote = "handling create note request"
	LogHandlerGetNote    = "handling get note request"
	LogHandlerListNotes  = "handling list notes request"
	LogHandlerUpdateNote = "handling update note request"
	LogHandlerDeleteNote = "handling delete note request"
	LogHandlerListTags   = "handling list tags request"

	ErrMsgInvalidRequestBody = "invalid request body"
)

// Сообщения, видимые клиенту.
const (
	MsgNoteCreated    = "Note created successfully"
	MsgNoteUpdated    = "Note updated successfully"
	MsgNoteDeleted    = "Note deleted successfully"
	MsgMissingFields  = "Please provide title and content"
	MsgTooManyTags    = "A note can have at most 10 tags"
	MsgNoteNotFound   = "Note not found"
	MsgSomethingWrong = "Something went wrong"
)

// Handler обработчик HTTP-запросов для работы с заметками.
type Handler struct {
	noteUseCase api.NoteUseCase
}

// NewHandler создает новый экземпляр обработчика заметок.
func NewHandler(noteUseCase api.NoteUseCase) *Handler {
	return &Handler{noteUseCase: noteUseCase}
}

// CreateNote обрабатывает запрос на создание новой заметки.
func (h *Handler) CreateNote(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.CreateNote"))
	log.Debug(requestCtx, LogHandlerCreateNote)

	var req dto.CreateNoteRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Error(requestCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		return respond.Error(ctx, fiber.StatusBadRequest, ErrMsgInvalidRequestBody)
	}

	note, err := h.noteUseCase.Create(requestCtx, userID(ctx), api.CreateNoteInput{
		Title:   req.Title,
		Content: req.Content,
		Tags:    req.Tags,
	})
	if err != nil {
		log.Error(requestCtx, "failed to create note", zap.Error(err))
		return handleError(ctx, err)
	}

	return respond.Data(ctx, fiber.StatusCreated, MsgNoteCreated, note)
}

// GetNote обрабатывает запрос на получение заметки по ID.
func (h *Handler) GetNote(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.GetNote"))
	log.Debug(requestCtx, LogHandlerGetNote)

	note, err := h.noteUseCase.Get(requestCtx, ctx.Params("note_id"), userID(ctx))
	if err != nil {
		log.Error(requestCtx, "failed to get note", zap.Error(err))
		return handleError(ctx, err)
	}

	return respond.Data(ctx, fiber.StatusOK, "", note)
}

// ListNotes обрабатывает запрос списка заметок. Поддерживает поиск по
// подстроке (search) и фильтр по точному тегу (tag).
func (h *Handler) ListNotes(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.ListNotes"))
	log.Debug(requestCtx, LogHandlerListNotes)

	searchText := ctx.Query("search")
	tagFilter := ctx.Query("tag")

	notes, err := h.noteUseCase.List(requestCtx, userID(ctx), searchText, tagFilter)
	if err != nil {
		log.Error(requestCtx, "failed to list notes", zap.Error(err))
		return handleError(ctx, err)
	}

	return respond.List(ctx, len(notes), notes)
}

// UpdateNote обрабатывает запрос на частичное обновление заметки.
func (h *Handler) UpdateNote(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.UpdateNote"))
	log.Debug(requestCtx, LogHandlerUpdateNote)

	var req dto.UpdateNoteRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Error(requestCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		return respond.Error(ctx, fiber.StatusBadRequest, ErrMsgInvalidRequestBody)
	}

	note, err := h.noteUseCase.Update(requestCtx, ctx.Params("note_id"), userID(ctx), api.UpdateNoteInput{
		Title:   req.Title,
		Content: req.Content,
		Tags:    req.Tags,
	})
	if err != nil {
		log.Error(requestCtx, "failed to update note", zap.Error(err))
		return handleError(ctx, err)
	}

	return respond.Data(ctx, fiber.StatusOK, MsgNoteUpdated, note)
}

// DeleteNote обрабатывает запрос на удаление заметки.
func (h *Handler) DeleteNote(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.DeleteNote"))
	log.Debug(requestCtx, LogHandlerDeleteNote)

	noteID := ctx.Params("note_id")

	if err := h.noteUseCase.Delete(requestCtx, noteID, userID(ctx)); err != nil {
		log.Error(requestCtx, "failed to delete note", zap.Error(err))
		return handleError(ctx, err)
	}

	return respond.Data(ctx, fiber.StatusOK, MsgNoteDeleted, dto.DeletedNote{ID: noteID})
}

// ListTags обрабатывает запрос уникальных тегов пользователя.
func (h *Handler) ListTags(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.ListTags"))
	log.Debug(requestCtx, LogHandlerListTags)

	tags, err := h.noteUseCase.Tags(requestCtx, userID(ctx))
	if err != nil {
		log.Error(requestCtx, "failed to list tags", zap.Error(err))
		return handleError(ctx, err)
	}

	return respond.List(ctx, len(tags), tags)
}

// userID возвращает идентификатор пользователя, установленный
// middleware аутентификации.
func userID(ctx fiber.Ctx) string {
	id, _ := ctx.Locals(middleware.UserIDKey).(string)
	return id
}

// handleError сопоставляет доменные ошибки с HTTP-статусом и сообщением.
func handleError(ctx fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, entities.ErrNoteNotFound):
		return respond.Error(ctx, fiber.StatusNotFound, MsgNoteNotFound)
	case errors.Is(err, entities.ErrEmptyTitle), errors.Is(err, entities.ErrEmptyContent):
		return respond.Error(ctx, fiber.StatusBadRequest, MsgMissingFields)
	case errors.Is(err, entities.ErrTooManyTags):
		return respond.Error(ctx, fiber.StatusBadRequest, MsgTooManyTags)
	default:
		return respond.Error(ctx, fiber.StatusInternalServerError, MsgSomethingWrong)
	}
}
