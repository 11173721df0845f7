package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/rotina-app/backend/api/handler"
)

type Handlers struct {
	Auth     *apiHandler.AuthHandler
	Profile  *apiHandler.ProfileHandler
	Activity *apiHandler.ActivityHandler
	Progress *apiHandler.ProgressHandler
	Stream   *apiHandler.StreamHandler
	Reminder *apiHandler.ReminderHandler
	Health   *apiHandler.HealthHandler
}

func New(handlers Handlers, authMiddleware func(fasthttp.RequestHandler) fasthttp.RequestHandler) *router.Router {
	r := router.New()

	r.GET("/health", handlers.Health.Check)

	// Auth routes
	r.POST("/api/v1/auth/register", handlers.Auth.Register)
	r.POST("/api/v1/auth/login", handlers.Auth.Login)
	r.POST("/api/v1/auth/refresh", handlers.Auth.Refresh)
	r.POST("/api/v1/auth/logout", authMiddleware(handlers.Auth.Logout))

	// Protected routes
	r.GET("/api/v1/profile", authMiddleware(handlers.Profile.GetProfile))
	r.PUT("/api/v1/profile", authMiddleware(handlers.Profile.UpdateProfile))
	r.PUT("/api/v1/profile/push-token", authMiddleware(handlers.Profile.SavePushToken))
	r.DELETE("/api/v1/profile/push-token", authMiddleware(handlers.Profile.ClearPushToken))

	r.GET("/api/v1/atividades", authMiddleware(handlers.Activity.List))
	r.POST("/api/v1/atividades", authMiddleware(handlers.Activity.Create))
	r.GET("/api/v1/atividades/stream", authMiddleware(handlers.Stream.Stream))
	r.GET("/api/v1/atividades/{id}", authMiddleware(handlers.Activity.Get))
	r.PUT("/api/v1/atividades/{id}", authMiddleware(handlers.Activity.Update))
	r.PATCH("/api/v1/atividades/{id}/conclusao", authMiddleware(handlers.Activity.ToggleCompletion))
	r.DELETE("/api/v1/atividades/{id}", authMiddleware(handlers.Activity.Delete))

	r.GET("/api/v1/progresso/diario", authMiddleware(handlers.Progress.Daily))
	r.GET("/api/v1/progresso/periodo", authMiddleware(handlers.Progress.Period))

	r.POST("/api/v1/lembretes", authMiddleware(handlers.Reminder.Schedule))

	return r
}
