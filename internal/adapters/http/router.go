// Package http содержит компоненты HTTP сервера.
package http

import (
	"github.com/gofiber/fiber/v3"

	"notemark/internal/adapters/http/auth"
	"notemark/internal/adapters/http/middleware"
	"notemark/internal/adapters/http/notes"
	"notemark/internal/adapters/http/respond"
	"notemark/internal/ports/api"
	"notemark/internal/ports/services"
)

// SetupRouter настраивает маршрутизацию HTTP сервера.
func SetupRouter(
	app *fiber.App,
	authUseCase api.AuthUseCase,
	userUseCase api.UserUseCase,
	noteUseCase api.NoteUseCase,
	tokenSvc services.TokenService,
) {
	authHandler := auth.NewHandler(authUseCase, userUseCase)
	notesHandler := notes.NewHandler(noteUseCase)

	// Middleware для всех запросов.
	app.Use(middleware.NewLoggerMiddleware())
	app.Use(middleware.NewRecoveryMiddleware())

	apiGroup := app.Group("/api")

	// Auth routes (публичные).
	authRoutes := apiGroup.Group("/auth")
	authRoutes.Post("/register", authHandler.Register)
	authRoutes.Post("/login", authHandler.Login)

	authRequired := middleware.NewAuthMiddleware(tokenSvc, userUseCase)

	meRoutes := apiGroup.Group("/auth")
	meRoutes.Use(authRequired)
	meRoutes.Get("/me", authHandler.GetProfile)

	// Маршруты заметок (требуют авторизации). Статический маршрут тегов
	// регистрируется раньше параметрического, иначе "tags" перехватится
	// как note_id.
	notesRoutes := apiGroup.Group("/notes")
	notesRoutes.Use(authRequired)
	notesRoutes.Get("/tags/all", notesHandler.ListTags)
	notesRoutes.Post("/", notesHandler.CreateNote)
	notesRoutes.Get("/", notesHandler.ListNotes)
	notesRoutes.Get("/:note_id", notesHandler.GetNote)
	notesRoutes.Put("/:note_id", notesHandler.UpdateNote)
	notesRoutes.Patch("/:note_id", notesHandler.UpdateNote)
	notesRoutes.Delete("/:note_id", notesHandler.DeleteNote)

	// Обработчик для несуществующих маршрутов.
	app.Use(func(c fiber.Ctx) error {
		return respond.Error(c, fiber.StatusNotFound, "Route not found")
	})
}
