package transport

import (
	"net/http"
	"net/url"
	"time"

	"github.com/ganot/committee/internal/apperror"
	"github.com/ganot/committee/internal/domain/catalog"
	"github.com/ganot/committee/internal/domain/roster"
	"github.com/ganot/committee/internal/domain/user"
	"github.com/go-chi/chi/v5"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token     string     `json:"token"`
	ExpiresAt time.Time  `json:"expires_at"`
	User      *user.User `json:"user"`
}

type memberRequest struct {
	Email string `json:"email"`
}

type defaultSetResponse struct {
	MotionSet   *catalog.MotionSet   `json:"motion_set"`
	MotionTypes []catalog.MotionType `json:"motion_types"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req user.RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	u, err := s.svc.Users.Register(r.Context(), req)
	s.respond(w, r, http.StatusCreated, u, err)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	var fields apperror.Fields
	fields.Require("email", req.Email, "email is required")
	fields.Require("password", req.Password, "password is required")
	if err := fields.Err(); err != nil {
		writeError(w, r, s.logger, err)
		return
	}

	u, err := s.svc.Users.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	token, expires, err := s.svc.Tokens.Issue(u.ID)
	if err != nil {
		writeError(w, r, s.logger, apperror.Persistence("issuing token", err))
		return
	}
	writeJSON(w, http.StatusOK, loginResponse{Token: token, ExpiresAt: expires, User: u})
}

func (s *Server) handleCurrentUser(w http.ResponseWriter, r *http.Request) {
	u, err := s.svc.Users.Get(r.Context(), caller(r))
	s.respond(w, r, http.StatusOK, u, err)
}

// handleGetUser and handleGetUserByEmail let members look up the IDs that
// rosters and motions refer to.
func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	u, err := s.svc.Users.Get(r.Context(), chi.URLParam(r, "id"))
	s.respond(w, r, http.StatusOK, u, err)
}

func (s *Server) handleGetUserByEmail(w http.ResponseWriter, r *http.Request) {
	email, err := url.PathUnescape(chi.URLParam(r, "email"))
	if err != nil {
		writeError(w, r, s.logger, apperror.Validation(apperror.FieldError{Field: "email", Message: "malformed email"}))
		return
	}
	u, err := s.svc.Users.GetByEmail(r.Context(), email)
	s.respond(w, r, http.StatusOK, u, err)
}

func (s *Server) handleCreateRoster(w http.ResponseWriter, r *http.Request) {
	var req roster.CreateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	ro, err := s.svc.Rosters.Create(r.Context(), caller(r), req)
	s.respond(w, r, http.StatusCreated, ro, err)
}

func (s *Server) handleGetRoster(w http.ResponseWriter, r *http.Request) {
	ro, err := s.svc.Rosters.Get(r.Context(), chi.URLParam(r, "id"))
	s.respond(w, r, http.StatusOK, ro, err)
}

func (s *Server) handleDeleteRoster(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Rosters.Delete(r.Context(), caller(r), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAddRosterMember(w http.ResponseWriter, r *http.Request) {
	var req memberRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	ro, err := s.svc.Rosters.AddMemberByEmail(r.Context(), caller(r), chi.URLParam(r, "id"), req.Email)
	s.respond(w, r, http.StatusOK, ro, err)
}

func (s *Server) handleRemoveRosterMember(w http.ResponseWriter, r *http.Request) {
	var req memberRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	ro, err := s.svc.Rosters.RemoveMemberByEmail(r.Context(), caller(r), chi.URLParam(r, "id"), req.Email)
	s.respond(w, r, http.StatusOK, ro, err)
}

func (s *Server) handleListMotionTypes(w http.ResponseWriter, r *http.Request) {
	types, err := s.svc.Catalog.ListForOwner(r.Context(), caller(r))
	s.respond(w, r, http.StatusOK, types, err)
}

func (s *Server) handleCreateDefaultSet(w http.ResponseWriter, r *http.Request) {
	set, types, err := s.svc.Catalog.CreateDefaultSet(r.Context(), caller(r))
	s.respond(w, r, http.StatusCreated, defaultSetResponse{MotionSet: set, MotionTypes: types}, err)
}
