package handlers

import (
	"net/http"

	"github.com/DanielPopoola/shelter-api/internal/application/services"
	"github.com/DanielPopoola/shelter-api/internal/domain"
	"github.com/DanielPopoola/shelter-api/internal/interfaces/rest"
	"github.com/go-chi/chi/v5"
)

type eventRequest struct {
	Title         *string  `json:"title"`
	Description   *string  `json:"description"`
	Location      *string  `json:"location"`
	StartDateTime *string  `json:"startDateTime"`
	EndDateTime   *string  `json:"endDateTime"`
	Images        []string `json:"images"`
}

type storyRequest struct {
	Title         *string  `json:"title"`
	Body          *string  `json:"body"`
	CoverImage    *string  `json:"coverImage"`
	GalleryImages []string `json:"galleryImages"`
}

func (h *Handlers) ListEvents(w http.ResponseWriter, r *http.Request) {
	window := domain.EventWindow(rest.Query(r, "filter"))

	page, err := h.svc.Events.List(r.Context(), window, rest.PageFrom(r, services.ContentPageSize))
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}
	rest.WritePage(w, page)
}

func (h *Handlers) AdminListEvents(w http.ResponseWriter, r *http.Request) {
	page, err := h.svc.Events.List(r.Context(), domain.EventsAll, rest.PageFrom(r, services.ContentPageSize))
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}
	rest.WritePage(w, page)
}

func (h *Handlers) GetEvent(w http.ResponseWriter, r *http.Request) {
	event, err := h.svc.Events.GetBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}
	rest.WriteData(w, http.StatusOK, event)
}

func (h *Handlers) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req eventRequest
	if err := rest.DecodeJSON(w, r, &req); err != nil {
		h.errs.Write(w, r, err)
		return
	}

	event, err := h.svc.Events.Create(r.Context(), services.EventInput(req))
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}
	rest.WriteData(w, http.StatusCreated, event)
}

func (h *Handlers) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	var req eventRequest
	if err := rest.DecodeJSON(w, r, &req); err != nil {
		h.errs.Write(w, r, err)
		return
	}

	event, err := h.svc.Events.Update(r.Context(), chi.URLParam(r, "id"), services.EventInput(req))
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}
	rest.WriteData(w, http.StatusOK, event)
}

func (h *Handlers) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Events.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.errs.Write(w, r, err)
		return
	}
	rest.WriteMessage(w, http.StatusOK, "Event removed")
}

func (h *Handlers) ListStories(w http.ResponseWriter, r *http.Request) {
	page, err := h.svc.Stories.List(r.Context(), rest.PageFrom(r, services.ContentPageSize))
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}
	rest.WritePage(w, page)
}

// AdminListStories shares the public listing; stories have no draft state.
func (h *Handlers) AdminListStories(w http.ResponseWriter, r *http.Request) {
	h.ListStories(w, r)
}

func (h *Handlers) GetStory(w http.ResponseWriter, r *http.Request) {
	story, err := h.svc.Stories.GetBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}
	rest.WriteData(w, http.StatusOK, story)
}

func (h *Handlers) CreateStory(w http.ResponseWriter, r *http.Request) {
	var req storyRequest
	if err := rest.DecodeJSON(w, r, &req); err != nil {
		h.errs.Write(w, r, err)
		return
	}

	story, err := h.svc.Stories.Create(r.Context(), services.StoryInput(req))
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}
	rest.WriteData(w, http.StatusCreated, story)
}

func (h *Handlers) UpdateStory(w http.ResponseWriter, r *http.Request) {
	var req storyRequest
	if err := rest.DecodeJSON(w, r, &req); err != nil {
		h.errs.Write(w, r, err)
		return
	}

	story, err := h.svc.Stories.Update(r.Context(), chi.URLParam(r, "id"), services.StoryInput(req))
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}
	rest.WriteData(w, http.StatusOK, story)
}

func (h *Handlers) DeleteStory(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Stories.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.errs.Write(w, r, err)
		return
	}
	rest.WriteMessage(w, http.StatusOK, "Story removed")
}

func (h *Handlers) Analytics(w http.ResponseWriter, r *http.Request) {
	overview, err := h.svc.Analytics.Overview(r.Context())
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}
	rest.WriteData(w, http.StatusOK, overview)
}
