package server

import (
	"net/http"

	"choreboard/internal/domain"
)

type registerRequest struct {
	Name            string `json:"name"`
	ApartmentNumber string `json:"apartment_number"`
	Password        string `json:"password"`
}

type loginRequest struct {
	ApartmentNumber string `json:"apartment_number"`
	Password        string `json:"password"`
}

type sessionResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	session, err := s.users.Register(r.Context(), req.Name, req.ApartmentNumber, req.Password)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, sessionResponse{Token: session.Token, User: session.User})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	if req.ApartmentNumber == "" || req.Password == "" {
		s.writeError(w, r, badRequest("apartment_number and password are required"))
		return
	}

	session, err := s.users.Login(r.Context(), req.ApartmentNumber, req.Password)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, sessionResponse{Token: session.Token, User: session.User})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request, user *domain.User) {
	me, err := s.users.Me(r.Context(), user)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, me)
}

func (s *Server) handleVerifyManager(w http.ResponseWriter, r *http.Request, user *domain.User) {
	var req struct {
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	if err := s.users.VerifyManager(r.Context(), user, req.Password); err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"verified": true})
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request, user *domain.User) {
	users, err := s.users.ListUsers(r.Context(), user)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (s *Server) handleUserStats(w http.ResponseWriter, r *http.Request, user *domain.User) {
	stats, err := s.users.Stats(r.Context(), user)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
