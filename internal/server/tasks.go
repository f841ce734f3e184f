package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"choreboard/internal/domain"
	"choreboard/internal/service"
)

type taskResponse struct {
	ID              int64                `json:"id"`
	Name            string               `json:"name"`
	Description     string               `json:"description"`
	Frequency       domain.Frequency     `json:"frequency"`
	Location        domain.Location      `json:"location"`
	Image           string               `json:"image,omitempty"`
	IsImportant     bool                 `json:"is_important"`
	IsCompleted     bool                 `json:"is_completed"`
	Urgency         domain.Urgency       `json:"urgency"`
	NextDue         time.Time            `json:"next_due"`
	LastCompleted   *time.Time           `json:"last_completed,omitempty"`
	LastCompletedBy string               `json:"last_completed_by,omitempty"`
	CompletionImage string               `json:"completion_image,omitempty"`
	History         []*domain.Completion `json:"history,omitempty"`
}

func newTaskResponse(v *service.TaskView) taskResponse {
	resp := taskResponse{
		ID:          v.ID,
		Name:        v.Name,
		Description: v.Description,
		Frequency:   v.Frequency,
		Location:    v.Location,
		Image:       v.ImageURL,
		IsImportant: v.IsImportant,
		IsCompleted: v.Status.IsCompleted,
		Urgency:     v.Status.Urgency,
		NextDue:     v.Status.NextDue,
	}

	if c := v.LastCompletion; c != nil {
		completed := c.CompletedAt
		resp.LastCompleted = &completed
		resp.LastCompletedBy = c.UserName
		resp.CompletionImage = c.CompletionImage
	}

	return resp
}

type taskRequest struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Frequency   domain.Frequency `json:"frequency"`
	Location    string           `json:"location"`
	Image       string           `json:"image"`
	IsImportant bool             `json:"is_important"`
}

func (req taskRequest) input() (service.TaskInput, error) {
	location, err := domain.ParseLocation(req.Location)
	if err != nil {
		return service.TaskInput{}, fmt.Errorf("%w: %w", domain.ErrValidation, err)
	}

	return service.TaskInput{
		Name:        req.Name,
		Description: req.Description,
		Location:    location,
		Frequency:   req.Frequency,
		IsImportant: req.IsImportant,
		ImageURL:    req.Image,
	}, nil
}

type completeRequest struct {
	CompletionImage string `json:"completion_image"`
	Notes           string `json:"notes"`
}

func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request, _ *domain.User) {
	q, err := parseTaskQuery(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	views, err := s.tasks.ListTasks(r.Context(), q)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	resp := make([]taskResponse, 0, len(views))
	for _, v := range views {
		resp = append(resp, newTaskResponse(v))
	}
	writeJSON(w, http.StatusOK, resp)
}

func parseTaskQuery(r *http.Request) (service.TaskQuery, error) {
	var q service.TaskQuery
	params := r.URL.Query()

	if loc := params.Get("location"); loc != "" {
		parsed, err := domain.ParseLocation(loc)
		if err != nil {
			return q, fmt.Errorf("%w: %w", domain.ErrValidation, err)
		}
		q.Location = parsed
	}

	if freq := params.Get("frequency"); freq != "" {
		parsed, err := domain.ParseFrequency(freq)
		if err != nil {
			return q, fmt.Errorf("%w: %w", domain.ErrValidation, err)
		}
		q.Frequency = parsed
	}

	switch params.Get("includeCompleted") {
	case "":
	case "true":
		completed := true
		q.Completed = &completed
	case "false":
		completed := false
		q.Completed = &completed
	default:
		return q, badRequest("includeCompleted must be true or false")
	}

	q.Search = params.Get("search")
	return q, nil
}

func (s *Server) handleGetTask(w http.ResponseWriter, r *http.Request, _ *domain.User) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	detail, err := s.tasks.GetTask(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	resp := newTaskResponse(&detail.TaskView)
	resp.History = detail.History
	if resp.History == nil {
		resp.History = []*domain.Completion{}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request, user *domain.User) {
	var req taskRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	in, err := req.input()
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	view, err := s.tasks.CreateTask(r.Context(), user, in)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, newTaskResponse(view))
}

func (s *Server) handleUpdateTask(w http.ResponseWriter, r *http.Request, user *domain.User) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var req taskRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	in, err := req.input()
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	view, err := s.tasks.UpdateTask(r.Context(), user, id, in)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, newTaskResponse(view))
}

func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request, user *domain.User) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if err := s.tasks.DeleteTask(r.Context(), user, id); err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "task deleted"})
}

func (s *Server) handleCompleteTask(w http.ResponseWriter, r *http.Request, user *domain.User) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var req completeRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	completion, err := s.tasks.CompleteTask(r.Context(), user, id, service.CompletionInput{
		Image: req.CompletionImage,
		Notes: req.Notes,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, completion)
}

func (s *Server) handleToggleImportant(w http.ResponseWriter, r *http.Request, user *domain.User) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	important, err := s.tasks.ToggleImportant(r.Context(), user, id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"id": id, "is_important": important})
}

func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		return 0, badRequest("invalid id")
	}
	return id, nil
}

// an empty body decodes to the zero value
func decodeJSON(r *http.Request, dst interface{}) error {
	if r.Body == nil || r.ContentLength == 0 {
		return nil
	}

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return badRequest(fmt.Sprintf("invalid request body: %v", err))
	}
	return nil
}
