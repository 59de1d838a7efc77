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

type registerRequest struct {
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Password string  `json:"password"`
	Phone    *string `json:"phone"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type updateProfileRequest struct {
	Name     *string `json:"name"`
	Phone    *string `json:"phone"`
	Password *string `json:"password"`
}

type adminUpdateUserRequest struct {
	Name       *string      `json:"name"`
	Email      *string      `json:"email"`
	Role       *domain.Role `json:"role"`
	IsDisabled *bool        `json:"isDisabled"`
}

func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := rest.DecodeJSON(w, r, &req); err != nil {
		h.errs.Write(w, r, err)
		return
	}

	result, err := h.svc.Auth.Register(r.Context(), services.RegisterCommand(req))
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}
	rest.WriteData(w, http.StatusCreated, result)
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := rest.DecodeJSON(w, r, &req); err != nil {
		h.errs.Write(w, r, err)
		return
	}

	result, err := h.svc.Auth.Login(r.Context(), services.LoginCommand(req))
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}
	rest.WriteData(w, http.StatusOK, result)
}

func (h *Handlers) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		h.errs.Write(w, r, application.NewUnauthorizedError("Not authorized"))
		return
	}
	rest.WriteData(w, http.StatusOK, user)
}

func (h *Handlers) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req updateProfileRequest
	if err := rest.DecodeJSON(w, r, &req); err != nil {
		h.errs.Write(w, r, err)
		return
	}
	user, _ := middleware.UserFromContext(r.Context())

	updated, err := h.svc.Users.UpdateProfile(r.Context(), user.ID, services.UpdateProfileCommand(req))
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}
	rest.WriteData(w, http.StatusOK, updated)
}

func (h *Handlers) ListUsers(w http.ResponseWriter, r *http.Request) {
	disabled, err := rest.QueryBool(r, "isDisabled")
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}
	filter := application.UserFilter{
		Search:     rest.Query(r, "search"),
		Role:       domain.Role(strings.ToUpper(rest.Query(r, "role"))),
		IsDisabled: disabled,
	}

	page, err := h.svc.Users.List(r.Context(), filter, rest.PageFrom(r, services.UserPageSize))
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}
	rest.WritePage(w, page)
}

func (h *Handlers) GetUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.svc.Users.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}
	rest.WriteData(w, http.StatusOK, user)
}

func (h *Handlers) UpdateUser(w http.ResponseWriter, r *http.Request) {
	var req adminUpdateUserRequest
	if err := rest.DecodeJSON(w, r, &req); err != nil {
		h.errs.Write(w, r, err)
		return
	}

	user, err := h.svc.Users.AdminUpdate(r.Context(), chi.URLParam(r, "id"), services.AdminUpdateUserCommand(req))
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}
	rest.WriteData(w, http.StatusOK, user)
}

func (h *Handlers) DeleteUser(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Users.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.errs.Write(w, r, err)
		return
	}
	rest.WriteMessage(w, http.StatusOK, "User removed")
}
