// Package domain holds the shelter entities and the rules attached to their status fields.
package domain

import (
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DonationCurrency is the only currency the gateway account accepts.
const DonationCurrency = "BDT"

// TransactionStatus is the gateway-side state of a donation
type TransactionStatus string

const (
	TransactionPending   TransactionStatus = "PENDING"
	TransactionValid     TransactionStatus = "VALID"
	TransactionFailed    TransactionStatus = "FAILED"
	TransactionCancelled TransactionStatus = "CANCELLED"
)

// IsTerminal reports whether no further transition is allowed out of s.
func (s TransactionStatus) IsTerminal() bool {
	return s == TransactionValid || s == TransactionFailed || s == TransactionCancelled
}

func (s TransactionStatus) Valid() bool {
	return s == TransactionPending || s.IsTerminal()
}

type DonationPurpose string

const (
	PurposeGeneral    DonationPurpose = "GENERAL"
	PurposeSponsorPet DonationPurpose = "SPONSOR_PET"
)

func (p DonationPurpose) Valid() bool {
	return p == PurposeGeneral || p == PurposeSponsorPet
}

// ParseDonationPurpose defaults an empty purpose to GENERAL.
func ParseDonationPurpose(s string) (DonationPurpose, error) {
	switch DonationPurpose(strings.ToUpper(strings.TrimSpace(s))) {
	case "", PurposeGeneral:
		return PurposeGeneral, nil
	case PurposeSponsorPet:
		return PurposeSponsorPet, nil
	}
	return "", ErrInvalidPurpose
}

// ProductName is the label shown to the payer on the gateway checkout page.
func (p DonationPurpose) ProductName() string {
	if p == PurposeSponsorPet {
		return "Pet Sponsorship"
	}
	return "General Donation"
}

// GatewayState is the gateway sub-record embedded in every donation.
type GatewayState struct {
	TranID     string            `json:"tranId"`
	Status     TransactionStatus `json:"status"`
	ValID      *string           `json:"valId,omitempty"`
	SessionKey *string           `json:"sessionKey,omitempty"`
}

type Donation struct {
	ID         string          `json:"id"`
	DonorName  *string         `json:"donorName,omitempty"`
	DonorEmail *string         `json:"donorEmail,omitempty"`
	DonorPhone *string         `json:"donorPhone,omitempty"`
	Amount     decimal.Decimal `json:"amount"`
	Currency   string          `json:"currency"`
	Purpose    DonationPurpose `json:"purpose"`
	PetID      *string         `json:"petId,omitempty"`
	UserID     *string         `json:"userId,omitempty"`
	SSL        GatewayState    `json:"ssl"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

// NewDonation builds a PENDING donation for the given external transaction id.
func NewDonation(id, tranID string, amount decimal.Decimal, purpose DonationPurpose) (*Donation, error) {
	if id == "" {
		return nil, NewMissingRequiredFieldError("id")
	}
	if tranID == "" {
		return nil, NewMissingRequiredFieldError("tranId")
	}
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	if purpose == "" {
		purpose = PurposeGeneral
	}

	now := time.Now().UTC()
	return &Donation{
		ID:       id,
		Amount:   amount,
		Currency: DonationCurrency,
		Purpose:  purpose,
		SSL: GatewayState{
			TranID: tranID,
			Status: TransactionPending,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Complete moves a PENDING donation into a terminal status.
func (d *Donation) Complete(target TransactionStatus, valID *string) error {
	if err := canTransition(d.SSL.Status, target); err != nil {
		return err
	}
	d.SSL.Status = target
	if valID != nil && *valID != "" {
		d.SSL.ValID = valID
	}
	d.UpdatedAt = time.Now().UTC()
	return nil
}

func canTransition(from, to TransactionStatus) error {
	if from == TransactionPending && slices.Contains(
		[]TransactionStatus{TransactionValid, TransactionFailed, TransactionCancelled}, to,
	) {
		return nil
	}
	return ErrInvalidTransition
}

// MapGatewayStatus translates the status vocabulary of the gateway's notification
// payload. Anything outside the known set yields ErrUnrecognizedStatus.
func MapGatewayStatus(raw string) (TransactionStatus, error) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "VALID", "VALIDATED":
		return TransactionValid, nil
	case "FAILED":
		return TransactionFailed, nil
	case "CANCELLED":
		return TransactionCancelled, nil
	}
	return "", ErrUnrecognizedStatus
}
