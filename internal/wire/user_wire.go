package wire

import (
	"answerq/internal/adaptor"
	"answerq/pkg/middleware"

	"github.com/go-chi/chi/v5"
)

// wireUser configures the account routes. Mutations are limited to the
// caller's own id by the handler.
func wireUser(r chi.Router, userHandler *adaptor.UserHandler) {
	r.With(middleware.RequireAuth()).Route("/users", func(r chi.Router) {
		r.Put("/change-email/{id}", userHandler.ChangeEmail)
		r.Put("/change-password/{id}", userHandler.ChangePassword)
	})
}

// wireUserDetails mounts under the authenticated /v1 group.
func wireUserDetails(r chi.Router, userHandler *adaptor.UserHandler) {
	r.Get("/users/user-details/{id}", userHandler.GetDetails)
}
