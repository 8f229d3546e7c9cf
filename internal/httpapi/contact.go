package httpapi

import (
	"errors"
	"net/http"

	"github.com/example/folio/internal/mailer"
)

func (s *Server) SendContact(w http.ResponseWriter, r *http.Request) {
	var payload mailer.Contact
	if !s.decodeJSON(w, r, &payload) {
		return
	}
	if err := s.mailer.Send(r.Context(), payload); err != nil {
		if errors.Is(err, mailer.ErrNotConfigured) {
			writeError(w, http.StatusServiceUnavailable, "unavailable", "contact form is not configured", nil)
			return
		}
		s.logger.Error("contact", "email", payload.Email, "error", err)
		writeError(w, http.StatusInternalServerError, "send_failed", "could not send message", nil)
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{Message: "message sent"})
}
