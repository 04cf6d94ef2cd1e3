package routes

import (
	"github.com/RP1999/healthcare-application/internal/handlers"
	"github.com/RP1999/healthcare-application/internal/middleware"
	"github.com/RP1999/healthcare-application/internal/repository"
	"github.com/RP1999/healthcare-application/internal/token"
	"github.com/gofiber/fiber/v2"
)

type Deps struct {
	Env     string
	Tokens  *token.Manager
	Users   repository.UserRepository
	Auth    *handlers.AuthHandler
	Patient *handlers.PatientHandler
}

// Register wires the API route table. Registration, login and the health
// check are public; everything else sits behind RequireAuth.
func Register(app *fiber.App, d Deps) {
	api := app.Group("/api")

	api.Get("/health", handlers.Health(d.Env))

	auth := api.Group("/auth")
	auth.Post("/register", d.Auth.Register)
	auth.Post("/login", d.Auth.Login)

	requireAuth := middleware.RequireAuth(d.Tokens, d.Users)
	auth.Get("/me", requireAuth, d.Auth.Me)

	patients := api.Group("/patients", requireAuth)
	patients.Get("/", d.Patient.List)
	patients.Post("/", d.Patient.Create)
	patients.Get("/:id", d.Patient.Get)
	patients.Put("/:id", d.Patient.Update)
	patients.Delete("/:id", d.Patient.Delete)
}
