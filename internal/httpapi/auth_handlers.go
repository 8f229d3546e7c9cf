package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/example/folio/internal/events"
	"github.com/example/folio/internal/store"
)

func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	var payload LoginRequest
	if !s.decodeJSON(w, r, &payload) {
		return
	}
	admin, err := s.store.GetAdminByUsername(r.Context(), payload.Username)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		s.writeStoreError(w, r, err, "admin")
		return
	}
	if admin == nil || !admin.IsActive || bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(payload.Password)) != nil {
		s.logger.Warn("login failed", "username", strings.TrimSpace(payload.Username))
		writeError(w, http.StatusUnauthorized, "unauthorized", "invalid credentials", nil)
		return
	}

	if err := s.store.TouchAdminLogin(r.Context(), admin.ID); err != nil {
		s.writeStoreError(w, r, err, "admin")
		return
	}
	sess, err := s.sessions.Create(admin.ID, admin.Username)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal", "could not create session", nil)
		return
	}
	admin, err = s.store.GetAdmin(r.Context(), admin.ID)
	if err != nil {
		s.writeStoreError(w, r, err, "admin")
		return
	}
	s.logger.Info("login", "admin_id", admin.ID)
	writeJSON(w, http.StatusOK, LoginResponse{Token: sess.Token, ExpiresAt: sess.ExpiresAt, User: admin})
}

func (s *Server) Logout(w http.ResponseWriter, r *http.Request) {
	if token := bearerToken(r.Header.Get("Authorization")); token != "" {
		s.sessions.Delete(token)
	}
	writeJSON(w, http.StatusOK, MessageResponse{Message: "logged out"})
}

func (s *Server) Me(w http.ResponseWriter, r *http.Request) {
	p, ok := PrincipalFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "not authenticated", nil)
		return
	}
	resp := MeResponse{ID: p.ID, Source: p.Source, Permissions: p.PermissionList()}
	if p.AdminID > 0 {
		admin, err := s.store.GetAdmin(r.Context(), p.AdminID)
		if err != nil {
			s.writeStoreError(w, r, err, "admin")
			return
		}
		resp.User = admin
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) Register(w http.ResponseWriter, r *http.Request) {
	var payload RegisterRequest
	if !s.decodeJSON(w, r, &payload) {
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(payload.Password), s.bcryptCost)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal", "could not hash password", nil)
		return
	}
	admin, err := s.store.CreateAdmin(r.Context(), payload.Username, payload.Email, string(hash))
	if err != nil {
		s.writeStoreError(w, r, err, "admin")
		return
	}
	s.publish(r.Context(), events.Created, resAdmins, admin.ID)
	writeJSON(w, http.StatusCreated, admin)
}
