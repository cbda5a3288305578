// internal/membership/handler.go
package membership

import (
	"net/http"

	"fitnexus/internal/calendar"
	"fitnexus/internal/httpx"
)

type Handler struct {
	service Service
	clock   calendar.Clock
}

func NewHandler(service Service, clock calendar.Clock) *Handler {
	return &Handler{service: service, clock: clock}
}

// MemberView is the wire form of a member.
type MemberView struct {
	Member
	ZipCode string `json:"zip_code"`
	County  string `json:"county"`
	Expired bool   `json:"expired"`
	Fee     *Money `json:"fee,omitempty"`
}

func (h *Handler) view(m Member, withFee bool) MemberView {
	v := MemberView{
		Member:  m,
		ZipCode: m.Location.ZipCode(),
		County:  m.Location.County(),
		Expired: m.IsExpired(calendar.Today(h.clock)),
	}
	if withFee {
		fee := m.Fee()
		v.Fee = &fee
	}
	return v
}

func (h *Handler) HandleAddMember(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Tier      string `json:"tier"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		DOB       string `json:"dob"`
		Location  string `json:"location"`
	}
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, err)
		return
	}

	tier, err := ParseTier(req.Tier)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	dob, err := httpx.ParseDate("dob", req.DOB)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}

	member, err := h.service.AddMember(r.Context(), AddMemberInput{
		Tier:     tier,
		Identity: Identity{FirstName: req.FirstName, LastName: req.LastName, DOB: dob},
		Location: req.Location,
	})
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, h.view(*member, false))
}

func (h *Handler) HandleImportMember(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FirstName  string `json:"first_name"`
		LastName   string `json:"last_name"`
		DOB        string `json:"dob"`
		Expiration string `json:"expiration"`
		Location   string `json:"location"`
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
	expiration, err := httpx.ParseDate("expiration", req.Expiration)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}

	member, err := h.service.ImportMember(r.Context(), ImportMemberInput{
		Identity:   Identity{FirstName: req.FirstName, LastName: req.LastName, DOB: dob},
		Expiration: expiration,
		Location:   req.Location,
	})
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, h.view(*member, false))
}

func (h *Handler) HandleRemoveMember(w http.ResponseWriter, r *http.Request) {
	id, err := identityFromQuery(r)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	if err := h.service.RemoveMember(r.Context(), id); err != nil {
		httpx.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) HandleGetMember(w http.ResponseWriter, r *http.Request) {
	id, err := identityFromQuery(r)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	member, err := h.service.GetMember(r.Context(), id)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, h.view(*member, false))
}

func (h *Handler) HandleListMembers(w http.ResponseWriter, r *http.Request) {
	key, err := ParseSortKey(r.URL.Query().Get("sort"))
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	h.writeList(w, r, key, false)
}

// HandleListFees lists members in insertion order with the fee due.
func (h *Handler) HandleListFees(w http.ResponseWriter, r *http.Request) {
	h.writeList(w, r, SortNone, true)
}

func (h *Handler) writeList(w http.ResponseWriter, r *http.Request, key SortKey, withFee bool) {
	members, err := h.service.ListMembers(r.Context(), key)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	views := make([]MemberView, 0, len(members))
	for _, m := range members {
		views = append(views, h.view(m, withFee))
	}
	httpx.WriteJSON(w, http.StatusOK, views)
}

func identityFromQuery(r *http.Request) (Identity, error) {
	q := r.URL.Query()
	dob, err := httpx.ParseDate("dob", q.Get("dob"))
	if err != nil {
		return Identity{}, err
	}
	return Identity{FirstName: q.Get("first_name"), LastName: q.Get("last_name"), DOB: dob}, nil
}
