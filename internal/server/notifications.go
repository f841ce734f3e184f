package server

import (
	"net/http"

	"choreboard/internal/domain"
)

func (s *Server) handleListNotifications(w http.ResponseWriter, r *http.Request, user *domain.User) {
	notifications, err := s.notifications.List(r.Context(), user)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if notifications == nil {
		notifications = []*domain.Notification{}
	}
	writeJSON(w, http.StatusOK, notifications)
}

func (s *Server) handleMarkRead(w http.ResponseWriter, r *http.Request, user *domain.User) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	notification, err := s.notifications.MarkRead(r.Context(), user, id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, notification)
}

func (s *Server) handleMarkAllRead(w http.ResponseWriter, r *http.Request, user *domain.User) {
	updated, err := s.notifications.MarkAllRead(r.Context(), user)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"updated": updated})
}
