// Package http содержит компоненты HTTP сервера.
package http

import (
	"github.com/gofiber/fiber/v3"

	"worklog/internal/server/adapters/http/auth"
	"worklog/internal/server/adapters/http/earnings"
	"worklog/internal/server/adapters/http/middleware"
	"worklog/internal/server/adapters/http/notes"
	"worklog/internal/server/ports/api"
	"worklog/internal/server/ports/services"
)

// SetupRouter настраивает маршрутизацию HTTP сервера.
func SetupRouter(
	app *fiber.App,
	authUseCase api.AuthUseCase,
	noteUseCase api.NoteUseCase,
	earningUseCase api.EarningUseCase,
	tokenSvc services.TokenService,
) {
	authHandler := auth.NewHandler(authUseCase)
	notesHandler := notes.NewHandler(noteUseCase)
	earningsHandler := earnings.NewHandler(earningUseCase)

	// Middleware для всех запросов.
	app.Use(middleware.NewLoggerMiddleware())
	app.Use(middleware.NewRecoveryMiddleware())

	// Публичные маршруты.
	app.Post("/register", authHandler.Register)
	app.Post("/login", authHandler.Login)

	// Защищенные маршруты.
	protected := app.Group("/api")
	protected.Use(middleware.NewAuthMiddleware(tokenSvc))

	protected.Get("/notes", notesHandler.ListNotes)
	protected.Post("/notes", notesHandler.SaveNote)
	protected.Put("/notes/:id", notesHandler.UpdateNote)
	protected.Delete("/notes/:id", notesHandler.DeleteNote)

	protected.Post("/daily-earnings", earningsHandler.SaveEarning)
	protected.Get("/daily-earnings/:userId/:year/:month", earningsHandler.ListByMonth)
	protected.Get("/monthly-summary/:userId/:year/:month", earningsHandler.MonthlySummary)

	// Обработчик для несуществующих маршрутов.
	app.Use(func(c fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "route not found",
		})
	})
}
