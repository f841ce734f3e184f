package server

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handler returns the full API with logging, CORS and metrics applied.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet).Name("health")

	api.Handle("/auth/register", http.HandlerFunc(s.handleRegister)).Methods(http.MethodPost).Name("register")
	api.Handle("/auth/login", s.rateLimit("login", http.HandlerFunc(s.handleLogin))).Methods(http.MethodPost).Name("login")
	api.Handle("/auth/me", s.authenticated(s.handleMe)).Methods(http.MethodGet).Name("me")
	api.Handle("/auth/verify-manager", s.authenticated(s.handleVerifyManager)).Methods(http.MethodPost).Name("verify_manager")

	api.Handle("/tasks", s.authenticated(s.handleListTasks)).Methods(http.MethodGet).Name("list_tasks")
	api.Handle("/tasks", s.authenticated(s.handleCreateTask)).Methods(http.MethodPost).Name("create_task")
	api.Handle("/tasks/{id:[0-9]+}", s.authenticated(s.handleGetTask)).Methods(http.MethodGet).Name("get_task")
	api.Handle("/tasks/{id:[0-9]+}", s.authenticated(s.handleUpdateTask)).Methods(http.MethodPut).Name("update_task")
	api.Handle("/tasks/{id:[0-9]+}", s.authenticated(s.handleDeleteTask)).Methods(http.MethodDelete).Name("delete_task")
	api.Handle("/tasks/{id:[0-9]+}/complete", s.authenticated(s.handleCompleteTask)).Methods(http.MethodPost).Name("complete_task")
	api.Handle("/tasks/{id:[0-9]+}/important", s.authenticated(s.handleToggleImportant)).Methods(http.MethodPatch).Name("toggle_important")

	api.Handle("/users", s.authenticated(s.handleListUsers)).Methods(http.MethodGet).Name("list_users")
	api.Handle("/users/stats", s.authenticated(s.handleUserStats)).Methods(http.MethodGet).Name("user_stats")

	api.Handle("/notifications", s.authenticated(s.handleListNotifications)).Methods(http.MethodGet).Name("list_notifications")
	api.Handle("/notifications/read-all", s.authenticated(s.handleMarkAllRead)).Methods(http.MethodPatch).Name("mark_all_read")
	api.Handle("/notifications/{id:[0-9]+}/read", s.authenticated(s.handleMarkRead)).Methods(http.MethodPatch).Name("mark_read")

	api.Handle("/upload/image", s.authenticated(s.handleUploadImage)).Methods(http.MethodPost).Name("upload_image")

	addMetrics(r)

	if s.uploadDir != "" {
		prefix := s.publicUploadURL + "/"
		r.PathPrefix(prefix).Handler(http.StripPrefix(prefix, http.FileServer(http.Dir(s.uploadDir)))).Methods(http.MethodGet)
	}
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "route not found"})
	})

	return s.logRequests(s.cors(r))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
