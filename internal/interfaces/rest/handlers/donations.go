package handlers

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/DanielPopoola/shelter-api/internal/application"
	"github.com/DanielPopoola/shelter-api/internal/application/services"
	"github.com/DanielPopoola/shelter-api/internal/domain"
	"github.com/DanielPopoola/shelter-api/internal/interfaces/rest"
	"github.com/DanielPopoola/shelter-api/internal/interfaces/rest/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

type initDonationRequest struct {
	Amount     decimal.Decimal `json:"amount"`
	Purpose    string          `json:"purpose"`
	PetID      *string         `json:"petId"`
	DonorName  *string         `json:"donorName"`
	DonorEmail *string         `json:"donorEmail"`
	DonorPhone *string         `json:"donorPhone"`
}

type initDonationResponse struct {
	Success bool   `json:"success"`
	URL     string `json:"url"`
	TranID  string `json:"tranId"`
}

// gatewayCallback is the subset of the gateway's callback payload we read.
type gatewayCallback struct {
	TranID string  `json:"tran_id"`
	Status string  `json:"status"`
	ValID  *string `json:"val_id"`
}

func (h *Handlers) InitDonation(w http.ResponseWriter, r *http.Request) {
	var req initDonationRequest
	if err := rest.DecodeJSON(w, r, &req); err != nil {
		h.errs.Write(w, r, err)
		return
	}

	cmd := services.InitDonationCommand{
		Amount:     req.Amount,
		Purpose:    req.Purpose,
		PetID:      req.PetID,
		DonorName:  req.DonorName,
		DonorEmail: req.DonorEmail,
		DonorPhone: req.DonorPhone,
	}
	if user, ok := middleware.UserFromContext(r.Context()); ok {
		cmd.UserID = &user.ID
	}

	result, err := h.svc.Donations.Init(r.Context(), cmd)
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}

	rest.WriteJSON(w, http.StatusOK, initDonationResponse{Success: true, URL: result.URL, TranID: result.TranID})
}

// PaymentIPN answers the gateway in plain text; it only inspects the status code.
func (h *Handlers) PaymentIPN(w http.ResponseWriter, r *http.Request) {
	payload, err := h.readCallback(w, r)
	if err != nil {
		rest.WriteText(w, http.StatusBadRequest, "Invalid payload")
		return
	}

	err = h.svc.Donations.HandleIPN(r.Context(), services.IPNCommand{
		TranID: payload.TranID,
		Status: payload.Status,
		ValID:  payload.ValID,
	})
	switch {
	case err == nil:
		rest.WriteText(w, http.StatusOK, "IPN received")
	case errors.Is(err, domain.ErrNotFound):
		rest.WriteText(w, http.StatusNotFound, "Transaction not found")
	case errors.Is(err, domain.ErrUnrecognizedStatus):
		rest.WriteText(w, http.StatusBadRequest, "Unrecognized status")
	case application.ToHTTPStatus(err) == http.StatusBadRequest:
		rest.WriteText(w, http.StatusBadRequest, application.PublicMessage(err))
	default:
		h.logger.Error("ipn processing failed", "tran_id", payload.TranID, "error", err)
		rest.WriteText(w, http.StatusInternalServerError, "Server Error")
	}
}

func (h *Handlers) PaymentSuccess(w http.ResponseWriter, r *http.Request) {
	h.redirectCallback(w, r, services.SourceSuccess, domain.TransactionValid)
}

func (h *Handlers) PaymentFail(w http.ResponseWriter, r *http.Request) {
	h.redirectCallback(w, r, services.SourceFail, domain.TransactionFailed)
}

func (h *Handlers) PaymentCancel(w http.ResponseWriter, r *http.Request) {
	h.redirectCallback(w, r, services.SourceCancel, domain.TransactionCancelled)
}

// redirectCallback records the outcome and always sends the browser on to the front end.
func (h *Handlers) redirectCallback(
	w http.ResponseWriter,
	r *http.Request,
	source string,
	target domain.TransactionStatus,
) {
	tranID := chi.URLParam(r, "tranId")

	var valID *string
	if target == domain.TransactionValid {
		if payload, err := h.readCallback(w, r); err == nil {
			valID = payload.ValID
		}
	}

	if err := h.svc.Donations.Complete(r.Context(), source, tranID, target, valID); err != nil {
		h.logger.Error("payment callback not applied",
			"source", source,
			"tran_id", tranID,
			"error", err,
		)
	}

	location := h.redirectBaseURL + "/payment/" + source + "?tranId=" + url.QueryEscape(tranID)
	http.Redirect(w, r, location, http.StatusFound)
}

// readCallback accepts both form-encoded and JSON payloads.
func (h *Handlers) readCallback(w http.ResponseWriter, r *http.Request) (gatewayCallback, error) {
	var payload gatewayCallback
	if rest.IsJSON(r) {
		err := rest.DecodeJSON(w, r, &payload)
		return payload, err
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	if err := r.ParseForm(); err != nil {
		return payload, err
	}
	payload.TranID = r.PostForm.Get("tran_id")
	payload.Status = r.PostForm.Get("status")
	if v := strings.TrimSpace(r.PostForm.Get("val_id")); v != "" {
		payload.ValID = &v
	}
	return payload, nil
}

func (h *Handlers) GetDonation(w http.ResponseWriter, r *http.Request) {
	donation, err := h.svc.Donations.Get(r.Context(), chi.URLParam(r, "tranId"))
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}
	rest.WriteData(w, http.StatusOK, donation)
}

func (h *Handlers) ListDonations(w http.ResponseWriter, r *http.Request) {
	filter := application.DonationFilter{
		Status:  domain.TransactionStatus(strings.ToUpper(rest.Query(r, "status"))),
		Purpose: domain.DonationPurpose(strings.ToUpper(rest.Query(r, "purpose"))),
	}

	page, err := h.svc.Donations.List(r.Context(), filter, rest.PageFrom(r, 20))
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}
	rest.WritePage(w, page)
}
