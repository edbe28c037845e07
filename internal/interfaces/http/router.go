package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Almacen-api/internal/application/auth"
	"github.com/jhoicas/Almacen-api/internal/application/usecase"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC    *auth.AuthUseCase
	ItemUC    *usecase.ItemUseCase
	UserUC    *usecase.UserUseCase
	ReportUC  *usecase.ReportUseCase
	JWTSecret string
}

// Router registra las rutas de la API. Cada ruta protegida pasa por AuthMiddleware
// (verificación del token) y RequirePermission (tabla de permisos por rol); los
// handlers reciben la identidad resuelta vía Locals y nunca confían en campos de
// identidad del cliente.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/me", AuthMiddleware(deps.JWTSecret), authHandler.Me)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Items
	items := protected.Group("/items")
	itemHandler := NewItemHandler(deps.ItemUC)
	items.Get("/", RequirePermission(entity.PermRead), itemHandler.List)
	items.Get("/export", RequirePermission(entity.PermRead), itemHandler.ExportXML)
	items.Post("/", RequirePermission(entity.PermCreate), itemHandler.Create)
	items.Put("/:id", RequirePermission(entity.PermUpdate), itemHandler.Update)
	items.Delete("/:id", RequirePermission(entity.PermDelete), itemHandler.Delete)

	// Users (solo manage_users)
	users := protected.Group("/users", RequirePermission(entity.PermManageUsers))
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", userHandler.List)
	users.Post("/", userHandler.Create)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)

	// Reports (generate_reports)
	reports := protected.Group("/reports", RequirePermission(entity.PermGenerateReports))
	reportHandler := NewReportHandler(deps.ReportUC)
	reports.Get("/", reportHandler.Get)
	reports.Get("/pdf", reportHandler.GetPDF)
}
