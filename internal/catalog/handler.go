// internal/catalog/handler.go
package catalog

import (
	"net/http"

	"fitnexus/internal/httpx"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// SessionView is the wire form of a session.
type SessionView struct {
	Session
	Time string `json:"time,omitempty"`
}

// ViewOf renders a session for the wire.
func ViewOf(s Session) SessionView {
	return SessionView{Session: s, Time: s.Timeslot.Clock()}
}

func (h *Handler) HandleListSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.service.ListSessions(r.Context())
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	views := make([]SessionView, 0, len(sessions))
	for _, s := range sessions {
		views = append(views, ViewOf(s))
	}
	httpx.WriteJSON(w, http.StatusOK, views)
}

func (h *Handler) HandleAddSession(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ClassType  string `json:"class_type"`
		Instructor string `json:"instructor"`
		Timeslot   string `json:"timeslot"`
		Location   string `json:"location"`
	}
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, err)
		return
	}

	session, err := h.service.AddSession(r.Context(), AddSessionInput{
		ClassType:  req.ClassType,
		Instructor: req.Instructor,
		Timeslot:   req.Timeslot,
		Location:   req.Location,
	})
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, ViewOf(*session))
}
