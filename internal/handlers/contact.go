//go:generate mockgen -source=contact.go -destination=contact_mock.go -package=handlers
package handlers

import (
	"context"
	"net/http"
)

// ContactSubmitter defines the interface that the service must implement.
type ContactSubmitter interface {
	Submit(ctx context.Context, name, email, message string) error
}

// ContactRequest represents the JSON body of a contact message.
// All fields are optional.
// swagger:model ContactRequest
type ContactRequest struct {
	// example: Jane
	Name string `json:"name"`
	// example: jane@example.com
	Email string `json:"email"`
	// example: Hi there
	Message string `json:"message"`
}

// NewContactHandler returns an HTTP handler storing a contact message.
// @Summary Send a contact message
// @Description Stores a contact message stamped with the current time.
// @Tags contact
// @Accept json
// @Produce json
// @Param request body handlers.ContactRequest true "Contact message"
// @Success 201 {object} handlers.MessageResponse "Contact message saved!"
// @Failure 400 {object} handlers.ErrorResponse "Invalid request body"
// @Failure 413 {object} handlers.ErrorResponse "Request body too large"
// @Failure 500 {object} handlers.ErrorResponse "Server error"
// @Router /api/contact [post]
func NewContactHandler(svc ContactSubmitter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ContactRequest
		if err := decodeRequest(w, r, &req); err != nil {
			requestLog(r).Warnw("invalid contact request", "error", err)
			writeDecodeError(w, err)
			return
		}

		if err := svc.Submit(r.Context(), req.Name, req.Email, req.Message); err != nil {
			requestLog(r).Errorw("failed to save contact message", "error", err)
			writeError(w, http.StatusInternalServerError, msgServerError)
			return
		}

		writeMessage(w, http.StatusCreated, "Contact message saved!")
	}
}
