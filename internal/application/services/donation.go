package services

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/DanielPopoola/shelter-api/internal/application"
	"github.com/DanielPopoola/shelter-api/internal/domain"
	"github.com/DanielPopoola/shelter-api/internal/metrics"
	"github.com/google/uuid"
)

const (
	tranIDPrefix   = "DON"
	tranIDAttempts = 3

	anonymousName  = "Anonymous"
	anonymousEmail = "no-email@example.com"
	anonymousPhone = "01711111111"
)

// Callback sources, used in logs and metrics.
const (
	SourceIPN     = "ipn"
	SourceSuccess = "success"
	SourceFail    = "fail"
	SourceCancel  = "cancel"
)

type DonationService struct {
	donations application.DonationRepository
	pets      application.PetRepository
	gateway   application.PaymentGateway
	baseURL   string
	logger    *slog.Logger
	newTranID func() string
}

func NewDonationService(
	donations application.DonationRepository,
	pets application.PetRepository,
	gateway application.PaymentGateway,
	baseURL string,
	logger *slog.Logger,
) *DonationService {
	return &DonationService{
		donations: donations,
		pets:      pets,
		gateway:   gateway,
		baseURL:   strings.TrimRight(baseURL, "/"),
		logger:    logger,
		newTranID: NewTranID,
	}
}

// NewTranID returns "DON" followed by 20 random upper-case hex characters.
func NewTranID() string {
	id := uuid.New()
	return tranIDPrefix + strings.ToUpper(hex.EncodeToString(id[:10]))
}

// WithTranIDGenerator replaces the id generator; tests use it to force collisions.
func (s *DonationService) WithTranIDGenerator(gen func() string) *DonationService {
	s.newTranID = gen
	return s
}

// Init records a PENDING donation and opens a gateway checkout session for it.
func (s *DonationService) Init(ctx context.Context, cmd InitDonationCommand) (*InitDonationResult, error) {
	purpose, err := domain.ParseDonationPurpose(cmd.Purpose)
	if err != nil {
		return nil, application.NewInvalidInputError(err)
	}

	petID := trimmedOrNil(cmd.PetID)
	if petID != nil {
		if err := s.ensurePetExists(ctx, *petID); err != nil {
			return nil, err
		}
	}

	donation, err := s.createPending(ctx, cmd, purpose, petID)
	if err != nil {
		return nil, err
	}
	tranID := donation.SSL.TranID

	session, err := s.gateway.InitSession(ctx, s.sessionRequest(donation))
	if err != nil {
		s.logger.Error("gateway session init failed",
			"tran_id", tranID,
			"error", err,
		)
		metrics.RecordDonationInit(string(purpose), "gateway_error")
		return nil, application.NewGatewayError(err)
	}

	if session.SessionKey != "" {
		if err := s.donations.SetSessionKey(ctx, tranID, session.SessionKey); err != nil {
			// The checkout page is already open; losing the key only affects admin lookups.
			s.logger.Error("failed to store gateway session key", "tran_id", tranID, "error", err)
		}
	}

	metrics.RecordDonationInit(string(purpose), "ok")
	s.logger.Info("donation initialized",
		"tran_id", tranID,
		"amount", donation.Amount.String(),
		"purpose", purpose,
	)

	return &InitDonationResult{TranID: tranID, URL: session.GatewayURL}, nil
}

func (s *DonationService) ensurePetExists(ctx context.Context, petID string) error {
	if _, err := uuid.Parse(petID); err != nil {
		return application.NewNotFoundError("Pet")
	}
	pet, err := s.pets.FindByID(ctx, petID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return application.NewNotFoundError("Pet")
		}
		return application.NewInternalError(err)
	}
	if pet.IsDeleted {
		return application.NewNotFoundError("Pet")
	}
	return nil
}

func (s *DonationService) createPending(
	ctx context.Context,
	cmd InitDonationCommand,
	purpose domain.DonationPurpose,
	petID *string,
) (*domain.Donation, error) {
	var lastErr error
	for attempt := 0; attempt < tranIDAttempts; attempt++ {
		donation, err := domain.NewDonation(uuid.New().String(), s.newTranID(), cmd.Amount, purpose)
		if err != nil {
			return nil, application.NewInvalidInputError(err)
		}
		donation.DonorName = trimmedOrNil(cmd.DonorName)
		donation.DonorEmail = trimmedOrNil(cmd.DonorEmail)
		donation.DonorPhone = trimmedOrNil(cmd.DonorPhone)
		donation.PetID = petID
		donation.UserID = cmd.UserID

		err = s.donations.Create(ctx, donation)
		if err == nil {
			return donation, nil
		}
		if !errors.Is(err, domain.ErrConflict) {
			return nil, application.NewInternalError(err)
		}
		s.logger.Warn("transaction id collision, regenerating", "tran_id", donation.SSL.TranID)
		lastErr = err
	}
	return nil, application.NewInternalError(fmt.Errorf("could not allocate transaction id: %w", lastErr))
}

func (s *DonationService) sessionRequest(d *domain.Donation) application.SessionRequest {
	callback := func(kind string) string {
		return fmt.Sprintf("%s/api/donations/payment/%s/%s", s.baseURL, kind, d.SSL.TranID)
	}

	return application.SessionRequest{
		TotalAmount:     d.Amount,
		Currency:        d.Currency,
		TranID:          d.SSL.TranID,
		SuccessURL:      callback(SourceSuccess),
		FailURL:         callback(SourceFail),
		CancelURL:       callback(SourceCancel),
		IPNURL:          s.baseURL + "/api/donations/payment/ipn",
		ProductName:     d.Purpose.ProductName(),
		ProductCategory: "Donation",
		ProductProfile:  "general",
		ShippingMethod:  "No",
		Customer: application.Payer{
			Name:     valueOr(d.DonorName, anonymousName),
			Email:    valueOr(d.DonorEmail, anonymousEmail),
			Phone:    valueOr(d.DonorPhone, anonymousPhone),
			Address1: "Dhaka",
			City:     "Dhaka",
			Postcode: "1000",
			Country:  "Bangladesh",
		},
	}
}

// Complete applies a browser-redirect callback. The caller redirects regardless of the outcome.
func (s *DonationService) Complete(
	ctx context.Context,
	source, tranID string,
	target domain.TransactionStatus,
	valID *string,
) error {
	donation, err := s.donations.FindByTranID(ctx, tranID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.logger.Warn("callback for unknown transaction", "source", source, "tran_id", tranID)
			metrics.RecordCallbackRejected(source, "unknown_tran_id")
		}
		return err
	}
	return s.apply(ctx, source, donation, target, valID)
}

// HandleIPN applies the gateway's server-to-server notification.
func (s *DonationService) HandleIPN(ctx context.Context, cmd IPNCommand) error {
	tranID := strings.TrimSpace(cmd.TranID)
	if tranID == "" {
		metrics.RecordCallbackRejected(SourceIPN, "missing_tran_id")
		return application.NewValidationError("tran_id is required")
	}

	donation, err := s.donations.FindByTranID(ctx, tranID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.logger.Warn("ipn for unknown transaction", "tran_id", tranID)
			metrics.RecordCallbackRejected(SourceIPN, "unknown_tran_id")
		}
		return err
	}

	target, err := domain.MapGatewayStatus(cmd.Status)
	if err != nil {
		s.logger.Warn("ipn with unrecognized status",
			"tran_id", tranID,
			"status", cmd.Status,
		)
		metrics.RecordCallbackRejected(SourceIPN, "unrecognized_status")
		return err
	}

	return s.apply(ctx, SourceIPN, donation, target, cmd.ValID)
}

// apply moves donation to target unless it already reached a terminal status.
// A late or repeated callback is acknowledged without changing the record.
func (s *DonationService) apply(
	ctx context.Context,
	source string,
	donation *domain.Donation,
	target domain.TransactionStatus,
	valID *string,
) error {
	tranID := donation.SSL.TranID
	current := donation.SSL.Status

	if err := donation.Complete(target, valID); err != nil {
		if errors.Is(err, domain.ErrInvalidTransition) && current.IsTerminal() {
			s.logger.Info("ignoring callback for finished transaction",
				"source", source,
				"tran_id", tranID,
				"current_status", current,
				"requested_status", target,
			)
			metrics.RecordDonationTransition(source, string(target), false)
			return nil
		}
		return application.NewInvalidStateError(err)
	}

	applied, err := s.donations.CompleteTransaction(ctx, tranID, target, valID)
	if err != nil {
		s.logger.Error("failed to update transaction", "source", source, "tran_id", tranID, "error", err)
		return err
	}
	metrics.RecordDonationTransition(source, string(target), applied)

	if !applied {
		s.logger.Info("transaction finished concurrently, callback ignored",
			"source", source,
			"tran_id", tranID,
			"requested_status", target,
		)
		return nil
	}

	s.logger.Info("transaction updated",
		"source", source,
		"tran_id", tranID,
		"from", current,
		"to", target,
	)
	return nil
}

// Get looks up a donation by its external transaction id.
func (s *DonationService) Get(ctx context.Context, tranID string) (*domain.Donation, error) {
	return s.donations.FindByTranID(ctx, tranID)
}

func (s *DonationService) List(
	ctx context.Context,
	filter application.DonationFilter,
	page domain.Page,
) (domain.PageResult[*domain.Donation], error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return domain.PageResult[*domain.Donation]{}, application.NewInvalidInputError(domain.NewInvalidStatusError("donation", string(filter.Status)))
	}
	if filter.Purpose != "" && !filter.Purpose.Valid() {
		return domain.PageResult[*domain.Donation]{}, application.NewInvalidInputError(domain.ErrInvalidPurpose)
	}
	items, total, err := s.donations.List(ctx, filter, page)
	if err != nil {
		return domain.PageResult[*domain.Donation]{}, err
	}
	return domain.NewPageResult(items, page, total), nil
}
