package handlers

import (
	"net/http"
	"strings"

	"github.com/DanielPopoola/shelter-api/internal/application"
	"github.com/DanielPopoola/shelter-api/internal/application/services"
	"github.com/DanielPopoola/shelter-api/internal/domain"
	"github.com/DanielPopoola/shelter-api/internal/interfaces/rest"
	"github.com/DanielPopoola/shelter-api/internal/interfaces/rest/middleware"
	"github.com/go-chi/chi/v5"
)

type applyAdoptionRequest struct {
	PetID         string               `json:"petId"`
	ApplicantInfo domain.ApplicantInfo `json:"applicantInfo"`
}

type reviewRequest struct {
	Status    string  `json:"status"`
	AdminNote *string `json:"adminNote"`
}

type inquiryRequest struct {
	PetID   string `json:"petId"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

type inquiryStatusRequest struct {
	Status string `json:"status"`
}

type volunteerRequest struct {
	Name         string   `json:"name"`
	Email        string   `json:"email"`
	Phone        string   `json:"phone"`
	Address      *string  `json:"address"`
	Availability string   `json:"availability"`
	Interests    []string `json:"interests"`
	Notes        *string  `json:"notes"`
}

func (h *Handlers) ApplyAdoption(w http.ResponseWriter, r *http.Request) {
	var req applyAdoptionRequest
	if err := rest.DecodeJSON(w, r, &req); err != nil {
		h.errs.Write(w, r, err)
		return
	}
	user, _ := middleware.UserFromContext(r.Context())

	app, err := h.svc.Adoptions.Apply(r.Context(), user.ID, services.ApplyAdoptionCommand(req))
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}
	rest.WriteData(w, http.StatusCreated, app)
}

func (h *Handlers) MyAdoptions(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFromContext(r.Context())
	status := domain.ReviewStatus(strings.ToUpper(rest.Query(r, "status")))

	page, err := h.svc.Adoptions.Mine(r.Context(), user.ID, status, rest.PageFrom(r, services.ReviewPageSize))
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}
	rest.WritePage(w, page)
}

func (h *Handlers) ListAdoptions(w http.ResponseWriter, r *http.Request) {
	filter := application.ReviewFilter{Status: domain.ReviewStatus(strings.ToUpper(rest.Query(r, "status")))}

	page, err := h.svc.Adoptions.List(r.Context(), filter, rest.PageFrom(r, services.ReviewPageSize))
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}
	rest.WritePage(w, page)
}

func (h *Handlers) ReviewAdoption(w http.ResponseWriter, r *http.Request) {
	var req reviewRequest
	if err := rest.DecodeJSON(w, r, &req); err != nil {
		h.errs.Write(w, r, err)
		return
	}

	app, err := h.svc.Adoptions.Review(r.Context(), chi.URLParam(r, "id"), services.ReviewCommand(req))
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}
	rest.WriteData(w, http.StatusOK, app)
}

func (h *Handlers) CreateInquiry(w http.ResponseWriter, r *http.Request) {
	var req inquiryRequest
	if err := rest.DecodeJSON(w, r, &req); err != nil {
		h.errs.Write(w, r, err)
		return
	}

	inquiry, err := h.svc.Inquiries.Create(r.Context(), services.CreateInquiryCommand(req))
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}
	rest.WriteData(w, http.StatusCreated, inquiry)
}

func (h *Handlers) ListInquiries(w http.ResponseWriter, r *http.Request) {
	status := domain.InquiryStatus(strings.ToUpper(rest.Query(r, "status")))

	page, err := h.svc.Inquiries.List(r.Context(), status, rest.PageFrom(r, services.ReviewPageSize))
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}
	rest.WritePage(w, page)
}

func (h *Handlers) UpdateInquiry(w http.ResponseWriter, r *http.Request) {
	var req inquiryStatusRequest
	if err := rest.DecodeJSON(w, r, &req); err != nil {
		h.errs.Write(w, r, err)
		return
	}

	status := domain.InquiryStatus(strings.ToUpper(strings.TrimSpace(req.Status)))
	inquiry, err := h.svc.Inquiries.UpdateStatus(r.Context(), chi.URLParam(r, "id"), status)
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}
	rest.WriteData(w, http.StatusOK, inquiry)
}

func (h *Handlers) ApplyVolunteer(w http.ResponseWriter, r *http.Request) {
	var req volunteerRequest
	if err := rest.DecodeJSON(w, r, &req); err != nil {
		h.errs.Write(w, r, err)
		return
	}

	app, err := h.svc.Volunteers.Apply(r.Context(), services.ApplyVolunteerCommand(req))
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}
	rest.WriteData(w, http.StatusCreated, app)
}

func (h *Handlers) ListVolunteers(w http.ResponseWriter, r *http.Request) {
	status := domain.ReviewStatus(strings.ToUpper(rest.Query(r, "status")))

	page, err := h.svc.Volunteers.List(r.Context(), status, rest.PageFrom(r, services.ReviewPageSize))
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}
	rest.WritePage(w, page)
}

func (h *Handlers) ReviewVolunteer(w http.ResponseWriter, r *http.Request) {
	var req reviewRequest
	if err := rest.DecodeJSON(w, r, &req); err != nil {
		h.errs.Write(w, r, err)
		return
	}

	app, err := h.svc.Volunteers.Review(r.Context(), chi.URLParam(r, "id"), services.ReviewCommand(req))
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}
	rest.WriteData(w, http.StatusOK, app)
}
