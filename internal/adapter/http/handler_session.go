package http

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/fixora/insights/infrastructure/http/response"
	"github.com/fixora/insights/internal/domain"
	"github.com/fixora/insights/internal/usecase"
)

// SessionService is the viewer session surface the handlers depend on
type SessionService interface {
	Create(ctx context.Context) usecase.Session
	Get(ctx context.Context, id string) (usecase.Session, error)
	Delete(ctx context.Context, id string) error
	SetFilters(ctx context.Context, id string, criteria domain.FilterCriteria) (usecase.Session, error)
	ToggleSort(ctx context.Context, id string, key domain.SortKey) (usecase.Session, error)
	SetPage(ctx context.Context, id string, page int) (usecase.Session, error)
	SetView(ctx context.Context, id string, view usecase.View) (usecase.Session, error)
	Reset(ctx context.Context, id string) (usecase.Session, error)
	Render(ctx context.Context, id string) (usecase.RenderResult, error)
}

// SessionHandler handles viewer session endpoints
type SessionHandler struct {
	sessions SessionService
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(sessions SessionService) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

// RegisterRoutes registers session routes
func (h *SessionHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/v1/sessions", h.CreateSession).Methods("POST")
	router.HandleFunc("/api/v1/sessions/{id}", h.GetSession).Methods("GET")
	router.HandleFunc("/api/v1/sessions/{id}", h.DeleteSession).Methods("DELETE")
	router.HandleFunc("/api/v1/sessions/{id}/filters", h.SetFilters).Methods("PUT")
	router.HandleFunc("/api/v1/sessions/{id}/sort", h.ToggleSort).Methods("POST")
	router.HandleFunc("/api/v1/sessions/{id}/page", h.SetPage).Methods("PUT")
	router.HandleFunc("/api/v1/sessions/{id}/view", h.SetView).Methods("PUT")
	router.HandleFunc("/api/v1/sessions/{id}/reset", h.Reset).Methods("POST")
	router.HandleFunc("/api/v1/sessions/{id}/render", h.Render).Methods("GET")
}

type sortRequest struct {
	Key string `json:"key"`
}

type pageRequest struct {
	Page int `json:"page"`
}

type viewRequest struct {
	View string `json:"view"`
}

// CreateSession starts a session in the initial state
func (h *SessionHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	response.Created(w, "Session created", h.sessions.Create(r.Context()))
}

// GetSession returns a session's state
func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	session, err := h.sessions.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		response.Fail(w, err)
		return
	}
	response.OK(w, "Session retrieved", session)
}

// DeleteSession ends a session
func (h *SessionHandler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		response.Fail(w, err)
		return
	}
	response.OK(w, "Session deleted", nil)
}

// SetFilters replaces the session's filters
func (h *SessionHandler) SetFilters(w http.ResponseWriter, r *http.Request) {
	var criteria domain.FilterCriteria
	if err := decodeJSON(r, &criteria); err != nil {
		response.Fail(w, err)
		return
	}
	h.respond(w, "Filters updated")(h.sessions.SetFilters(r.Context(), mux.Vars(r)["id"], criteria))
}

// ToggleSort selects or flips the session's sort key
func (h *SessionHandler) ToggleSort(w http.ResponseWriter, r *http.Request) {
	var req sortRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Fail(w, err)
		return
	}
	key, err := domain.ParseSortKey(req.Key)
	if err != nil {
		response.Fail(w, err)
		return
	}
	h.respond(w, "Sort updated")(h.sessions.ToggleSort(r.Context(), mux.Vars(r)["id"], key))
}

// SetPage moves the session to another page
func (h *SessionHandler) SetPage(w http.ResponseWriter, r *http.Request) {
	var req pageRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Fail(w, err)
		return
	}
	h.respond(w, "Page updated")(h.sessions.SetPage(r.Context(), mux.Vars(r)["id"], req.Page))
}

// SetView switches the session's visible screen
func (h *SessionHandler) SetView(w http.ResponseWriter, r *http.Request) {
	var req viewRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Fail(w, err)
		return
	}
	view, err := usecase.ParseView(req.View)
	if err != nil {
		response.Fail(w, err)
		return
	}
	h.respond(w, "View updated")(h.sessions.SetView(r.Context(), mux.Vars(r)["id"], view))
}

// Reset returns the session to its initial state
func (h *SessionHandler) Reset(w http.ResponseWriter, r *http.Request) {
	h.respond(w, "Session reset")(h.sessions.Reset(r.Context(), mux.Vars(r)["id"]))
}

// Render returns the payload of the session's current view
func (h *SessionHandler) Render(w http.ResponseWriter, r *http.Request) {
	result, err := h.sessions.Render(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		response.Fail(w, err)
		return
	}
	response.OK(w, "View rendered", result)
}

func (h *SessionHandler) respond(w http.ResponseWriter, message string) func(usecase.Session, error) {
	return func(session usecase.Session, err error) {
		if err != nil {
			response.Fail(w, err)
			return
		}
		response.OK(w, message, session)
	}
}
