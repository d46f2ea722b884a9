//go:generate mockgen -source=signup.go -destination=signup_mock.go -package=handlers
package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/sbilibin2017/blog-api/internal/services"
)

// SignUpper defines the interface that the service must implement.
type SignUpper interface {
	Signup(ctx context.Context, username, email, password string) error
}

// SignupRequest represents the JSON body for user signup
// swagger:model SignupRequest
type SignupRequest struct {
	// Username
	// required: true
	// example: john_doe
	Username string `json:"username" validate:"required"`

	// Email
	// required: true
	// example: john@example.com
	Email string `json:"email" validate:"required"`

	// Password
	// required: true
	// example: secret123
	Password string `json:"password" validate:"required"`
}

// NewSignupHandler returns an HTTP handler for user signup.
// @Summary Register a new user
// @Description Creates a user account. Emails are unique; the password is stored as a bcrypt hash.
// @Tags users
// @Accept json
// @Produce json
// @Param request body handlers.SignupRequest true "User signup request"
// @Success 201 {object} handlers.MessageResponse "User registered in MongoDB"
// @Failure 400 {object} handlers.ErrorResponse "User already exists / invalid request"
// @Failure 413 {object} handlers.ErrorResponse "Request body too large"
// @Failure 500 {object} handlers.ErrorResponse "Server error"
// @Router /api/signup [post]
func NewSignupHandler(svc SignUpper) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SignupRequest
		if err := decodeRequest(w, r, &req); err != nil {
			requestLog(r).Warnw("invalid signup request", "error", err)
			writeDecodeError(w, err)
			return
		}

		err := svc.Signup(r.Context(), req.Username, req.Email, req.Password)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrUserAlreadyExists):
				writeError(w, http.StatusBadRequest, "User already exists")
			default:
				requestLog(r).Errorw("failed to sign up user", "error", err)
				writeError(w, http.StatusInternalServerError, msgServerError)
			}
			return
		}

		writeMessage(w, http.StatusCreated, "User registered in MongoDB")
	}
}
