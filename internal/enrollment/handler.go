// internal/enrollment/handler.go
package enrollment

import (
	"context"
	"net/http"

	"fitnexus/internal/httpx"
	"fitnexus/internal/membership"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) HandleCheckIn(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, h.service.CheckIn)
}

func (h *Handler) HandleCheckOut(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, h.service.CheckOut)
}

func (h *Handler) HandleGuestCheckIn(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, h.service.CheckInGuest)
}

func (h *Handler) HandleGuestCheckOut(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, h.service.CheckOutGuest)
}

func (h *Handler) handle(w http.ResponseWriter, r *http.Request, action func(context.Context, Request) (*Outcome, error)) {
	var req struct {
		ClassType  string `json:"class_type"`
		Instructor string `json:"instructor"`
		Location   string `json:"location"`
		FirstName  string `json:"first_name"`
		LastName   string `json:"last_name"`
		DOB        string `json:"dob"`
	}
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, err)
		return
	}
	dob, err := httpx.ParseDate("dob", req.DOB)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}

	outcome, err := action(r.Context(), Request{
		ClassType:  req.ClassType,
		Instructor: req.Instructor,
		Location:   req.Location,
		Member:     membership.Identity{FirstName: req.FirstName, LastName: req.LastName, DOB: dob},
	})
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, outcome)
}
