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

type petRequest struct {
	Name         string               `json:"name"`
	Species      string               `json:"species"`
	Breed        string               `json:"breed"`
	Age          int                  `json:"age"`
	Size         string               `json:"size"`
	Gender       string               `json:"gender"`
	Description  string               `json:"description"`
	MedicalNotes *string              `json:"medicalNotes"`
	SpecialNeeds bool                 `json:"specialNeeds"`
	Photos       []string             `json:"photos"`
	OwnerContact *domain.OwnerContact `json:"ownerContact"`
}

type petPatchRequest struct {
	Name         *string              `json:"name"`
	Species      *string              `json:"species"`
	Breed        *string              `json:"breed"`
	Age          *int                 `json:"age"`
	Size         *string              `json:"size"`
	Gender       *string              `json:"gender"`
	Description  *string              `json:"description"`
	MedicalNotes *string              `json:"medicalNotes"`
	SpecialNeeds *bool                `json:"specialNeeds"`
	Photos       []string             `json:"photos"`
	OwnerContact *domain.OwnerContact `json:"ownerContact"`
	Status       *domain.PetStatus    `json:"status"`
}

// petFilter reads the public listing filters. sortBy defaults to newest first;
// an explicit sortBy sorts ascending unless sortDir=desc.
func petFilter(r *http.Request) (application.PetFilter, error) {
	ageMin, err := rest.QueryInt(r, "ageMin")
	if err != nil {
		return application.PetFilter{}, err
	}
	ageMax, err := rest.QueryInt(r, "ageMax")
	if err != nil {
		return application.PetFilter{}, err
	}

	filter := application.PetFilter{
		Name:    rest.Query(r, "q"),
		Species: rest.Query(r, "species"),
		Breed:   rest.Query(r, "breed"),
		Size:    rest.Query(r, "size"),
		Gender:  rest.Query(r, "gender"),
		AgeMin:  ageMin,
		AgeMax:  ageMax,
	}

	switch sortBy := application.PetSort(rest.Query(r, "sortBy")); sortBy {
	case application.PetSortName, application.PetSortAge, application.PetSortCreatedAt:
		filter.SortBy = sortBy
		filter.SortAsc = !strings.EqualFold(rest.Query(r, "sortDir"), "desc")
	default:
		filter.SortBy = application.PetSortCreatedAt
	}
	return filter, nil
}

func (h *Handlers) ListPets(w http.ResponseWriter, r *http.Request) {
	filter, err := petFilter(r)
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}

	page, err := h.svc.Pets.ListPublic(r.Context(), filter, rest.PageFrom(r, services.PublicPetPageSize))
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}
	rest.WritePage(w, page)
}

func (h *Handlers) GetPet(w http.ResponseWriter, r *http.Request) {
	pet, err := h.svc.Pets.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}
	rest.WriteData(w, http.StatusOK, pet)
}

func (h *Handlers) SubmitPet(w http.ResponseWriter, r *http.Request) {
	var req petRequest
	if err := rest.DecodeJSON(w, r, &req); err != nil {
		h.errs.Write(w, r, err)
		return
	}
	user, _ := middleware.UserFromContext(r.Context())

	pet, err := h.svc.Pets.Submit(r.Context(), user.ID, services.SubmitPetCommand(req))
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}
	rest.WriteData(w, http.StatusCreated, pet)
}

func (h *Handlers) MySubmissions(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFromContext(r.Context())

	page, err := h.svc.Pets.MySubmissions(r.Context(), user.ID, rest.PageFrom(r, services.AdminPetPageSize))
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}
	rest.WritePage(w, page)
}

func (h *Handlers) UpdateMySubmission(w http.ResponseWriter, r *http.Request) {
	var req petPatchRequest
	if err := rest.DecodeJSON(w, r, &req); err != nil {
		h.errs.Write(w, r, err)
		return
	}
	user, _ := middleware.UserFromContext(r.Context())

	pet, err := h.svc.Pets.UpdateMySubmission(r.Context(), user.ID, chi.URLParam(r, "id"), domain.PetPatch(req))
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}
	rest.WriteData(w, http.StatusOK, pet)
}

func (h *Handlers) DeleteMySubmission(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFromContext(r.Context())

	if err := h.svc.Pets.DeleteMySubmission(r.Context(), user.ID, chi.URLParam(r, "id")); err != nil {
		h.errs.Write(w, r, err)
		return
	}
	rest.WriteMessage(w, http.StatusOK, "Pet submission removed")
}

func (h *Handlers) AdminListPets(w http.ResponseWriter, r *http.Request) {
	filter := application.PetFilter{
		Search: rest.Query(r, "search"),
		Status: domain.PetStatus(strings.ToUpper(rest.Query(r, "status"))),
		SortBy: application.PetSortCreatedAt,
	}

	page, err := h.svc.Pets.AdminList(r.Context(), filter, rest.PageFrom(r, services.AdminPetPageSize))
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}
	rest.WritePage(w, page)
}

func (h *Handlers) AdminCreatePet(w http.ResponseWriter, r *http.Request) {
	var req petRequest
	if err := rest.DecodeJSON(w, r, &req); err != nil {
		h.errs.Write(w, r, err)
		return
	}

	pet, err := h.svc.Pets.AdminCreate(r.Context(), services.SubmitPetCommand(req))
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}
	rest.WriteData(w, http.StatusCreated, pet)
}

func (h *Handlers) AdminUpdatePet(w http.ResponseWriter, r *http.Request) {
	var req petPatchRequest
	if err := rest.DecodeJSON(w, r, &req); err != nil {
		h.errs.Write(w, r, err)
		return
	}

	pet, err := h.svc.Pets.AdminUpdate(r.Context(), chi.URLParam(r, "id"), domain.PetPatch(req))
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}
	rest.WriteData(w, http.StatusOK, pet)
}

func (h *Handlers) AdminDeletePet(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Pets.AdminDelete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.errs.Write(w, r, err)
		return
	}
	rest.WriteMessage(w, http.StatusOK, "Pet removed")
}
