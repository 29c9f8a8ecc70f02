package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/process-hub/internal/application/auth"
	"github.com/jhoicas/process-hub/internal/application/process"
	"github.com/jhoicas/process-hub/internal/application/tracking"
	"github.com/jhoicas/process-hub/internal/application/usecase"
	"github.com/jhoicas/process-hub/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CatalogUC       *process.CatalogUseCase
	ClientUC        *usecase.ClientUseCase
	TimeUC          *tracking.TimeTrackingUseCase
	Sessions        *tracking.SessionManager
	RecordsUC       *usecase.RecordsUseCase
	AuthUC          *auth.AuthUseCase
	JWTSecret       string
	StoreConfigured bool
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	jwtAuth := AuthMiddleware(deps.JWTSecret)
	adminOnly := RequireRole(entity.RoleAdmin)

	// Airtable no depende del almacén; se registra antes del guard de /api.
	recordsHandler := NewRecordsHandler(deps.RecordsUC)
	app.Get("/api/airtable", jwtAuth, recordsHandler.List)

	api := app.Group("/api", RequireStore(deps.StoreConfigured))

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Catálogo: lectura pública, escritura autenticada
	catalogHandler := NewCatalogHandler(deps.CatalogUC)
	api.Get("/categories", catalogHandler.ListCategories)
	api.Get("/categories/:id", catalogHandler.GetCategory)
	api.Post("/categories", jwtAuth, adminOnly, catalogHandler.CreateCategory)
	api.Post("/phases", jwtAuth, catalogHandler.CreatePhase)
	api.Post("/steps", jwtAuth, catalogHandler.CreateStep)
	api.Put("/steps/:stepId", jwtAuth, catalogHandler.UpdateStep)
	api.Put("/categories/:categoryId/phases/:phaseId/steps/:stepId", jwtAuth, catalogHandler.UpdateStep)

	// Clientes
	clientHandler := NewClientHandler(deps.ClientUC)
	api.Get("/clients", clientHandler.List)
	api.Post("/clients", jwtAuth, adminOnly, clientHandler.Create)

	// Time tracking (protegido)
	tt := api.Group("/time-tracking", jwtAuth)
	timeHandler := NewTimeHandler(deps.TimeUC)
	tt.Post("/log", timeHandler.Log)
	tt.Get("/summary", timeHandler.Summary)
	tt.Get("/logs", timeHandler.Logs)
	tt.Get("/report.pdf", timeHandler.Report)

	sessionHandler := NewSessionHandler(deps.Sessions)
	tt.Post("/sessions", sessionHandler.Open)
	tt.Get("/sessions", sessionHandler.List)
	tt.Get("/sessions/:id", sessionHandler.Get)
	tt.Post("/sessions/:id/start", sessionHandler.Start)
	tt.Post("/sessions/:id/pause", sessionHandler.Pause)
	tt.Post("/sessions/:id/reset", sessionHandler.Reset)
	tt.Post("/sessions/:id/close", sessionHandler.Close)
}
