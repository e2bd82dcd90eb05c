package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pastor-mobile/church-admin-service/internal/api/http/handlers"
	"github.com/pastor-mobile/church-admin-service/internal/auth"
	"github.com/pastor-mobile/church-admin-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Admins         *handlers.AdminsHandler
	Directory      *handlers.DirectoryHandler
	Sermons        *handlers.SermonsHandler
	Series         *handlers.SeriesHandler
	Devotionals    *handlers.DevotionalsHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api/v1")

	authGroup := api.Group("/auth")
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/superadmin/login", cfg.Auth.SuperadminLogin)
	authGroup.Post("/admin/signup", cfg.Auth.Signup)
	authGroup.Post("/refresh", cfg.Auth.Refresh)
	authGroup.Post("/admin/forgot-password", cfg.Auth.ForgotPassword)
	authGroup.Post("/admin/verify-otp", cfg.Auth.VerifyOTP)
	authGroup.Post("/admin/reset-password", cfg.Auth.ResetPassword)
	authGroup.Post("/admin/resend-otp", cfg.Auth.ResendOTP)
	authGroup.Get("/me", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated(), cfg.Auth.Me)

	superadmin := api.Group("/superadmin",
		cfg.AuthMiddleware.Handle, auth.RequireRoles(domain.RoleSuperadmin))
	superadmin.Post("/admins", cfg.Admins.CreateAdmin)
	superadmin.Get("/admins", cfg.Admins.ListAdmins)
	superadmin.Get("/admins/count", cfg.Admins.CountAdmins)
	superadmin.Get("/admins/:id", cfg.Admins.GetAdmin)
	superadmin.Put("/admins/:id", cfg.Admins.UpdateAdmin)
	superadmin.Delete("/admins/:id", cfg.Admins.DeleteAdmin)

	adminOnly := auth.RequireRoles(domain.RoleSuperadmin, domain.RoleAdmin)

	// Admins get the same management surface plus self-service.
	admin := api.Group("/admin", cfg.AuthMiddleware.Handle, adminOnly)
	admin.Get("/me", cfg.Admins.Me)
	admin.Put("/me/update", cfg.Admins.UpdateMe)
	admin.Post("/admins", cfg.Admins.CreateAdmin)
	admin.Get("/admins", cfg.Admins.ListAdmins)
	admin.Get("/admins/count", cfg.Admins.CountAdmins)
	admin.Get("/admins/:id", cfg.Admins.GetAdmin)
	admin.Put("/admins/:id", cfg.Admins.UpdateAdmin)
	admin.Delete("/admins/:id", cfg.Admins.DeleteAdmin)

	users := api.Group("/user-management", cfg.AuthMiddleware.Handle, adminOnly)
	users.Post("/users", cfg.Directory.CreateUser)
	users.Get("/users", cfg.Directory.ListUsers)
	users.Get("/users/:id", cfg.Directory.GetUser)
	users.Put("/users/:id", cfg.Directory.UpdateUser)
	users.Delete("/users/:id", cfg.Directory.DeleteUser)

	permissions := api.Group("/permissions", cfg.AuthMiddleware.Handle, adminOnly)
	permissions.Get("/users", cfg.Directory.ListUserPermissions)
	permissions.Get("/users/:id", cfg.Directory.GetUserPermissions)
	permissions.Put("/users/:id", cfg.Directory.UpdateUserPermissions)
	permissions.Get("/by-role/:role", cfg.Directory.ListPermissionsByRole)
	permissions.Get("/roles", cfg.Directory.ListRoles)
	permissions.Get("/roles/:role", cfg.Directory.GetRole)
	permissions.Put("/roles/:role", cfg.Directory.UpdateRole)

	sermons := api.Group("/sermons", cfg.AuthMiddleware.Handle, adminOnly)
	sermons.Post("/", cfg.Sermons.CreateSermon)
	sermons.Get("/", cfg.Sermons.ListSermons)
	sermons.Get("/count", cfg.Sermons.CountSermons)
	sermons.Get("/:id", cfg.Sermons.GetSermon)
	sermons.Put("/:id", cfg.Sermons.UpdateSermon)
	sermons.Delete("/:id", cfg.Sermons.DeleteSermon)
	sermons.Post("/:id/series", cfg.Sermons.AssociateSeries)
	sermons.Get("/:id/series/available", cfg.Sermons.UnassociatedSeries)

	// Series reads are open to any signed-in account so teaching roles can
	// browse them; writes stay admin only.
	series := api.Group("/series", cfg.AuthMiddleware.Handle)
	series.Get("/", auth.RequireAuthenticated(), cfg.Series.ListSeries)
	series.Get("/count", auth.RequireAuthenticated(), cfg.Series.CountSeries)
	series.Get("/:id", auth.RequireAuthenticated(), cfg.Series.GetSeries)
	series.Get("/:id/sermons", auth.RequireAuthenticated(), cfg.Series.Sermons)
	series.Get("/:id/sermons/available", auth.RequireAuthenticated(), cfg.Series.AvailableSermons)
	series.Post("/", adminOnly, cfg.Series.CreateSeries)
	series.Put("/:id", adminOnly, cfg.Series.UpdateSeries)
	series.Delete("/:id", adminOnly, cfg.Series.DeleteSeries)
	series.Post("/:id/sermons", adminOnly, cfg.Series.AddSermons)
	series.Delete("/:id/sermons", adminOnly, cfg.Series.RemoveSermons)

	devotionals := api.Group("/devotionals", cfg.AuthMiddleware.Handle, adminOnly)
	devotionals.Post("/", cfg.Devotionals.CreateDevotional)
	devotionals.Get("/", cfg.Devotionals.ListDevotionals)
	devotionals.Get("/count", cfg.Devotionals.CountDevotionals)
	devotionals.Get("/:id", cfg.Devotionals.GetDevotional)
	devotionals.Put("/:id", cfg.Devotionals.UpdateDevotional)
	devotionals.Delete("/:id", cfg.Devotionals.DeleteDevotional)
}
