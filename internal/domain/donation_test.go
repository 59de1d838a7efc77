package domain_test

import (
	"testing"

	"github.com/DanielPopoola/shelter-api/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDonation(t *testing.T) {
	t.Run("creates pending donation", func(t *testing.T) {
		d, err := domain.NewDonation("don-1", "DON123", decimal.NewFromInt(1000), domain.PurposeSponsorPet)

		require.NoError(t, err)
		assert.Equal(t, "don-1", d.ID)
		assert.Equal(t, "DON123", d.SSL.TranID)
		assert.Equal(t, domain.TransactionPending, d.SSL.Status)
		assert.Equal(t, domain.DonationCurrency, d.Currency)
		assert.Equal(t, domain.PurposeSponsorPet, d.Purpose)
		assert.True(t, d.Amount.Equal(decimal.NewFromInt(1000)))
		assert.NotZero(t, d.CreatedAt)
	})

	t.Run("defaults purpose to general", func(t *testing.T) {
		d, err := domain.NewDonation("don-1", "DON123", decimal.NewFromInt(10), "")

		require.NoError(t, err)
		assert.Equal(t, domain.PurposeGeneral, d.Purpose)
	})

	t.Run("rejects zero and negative amounts", func(t *testing.T) {
		_, err := domain.NewDonation("don-1", "DON123", decimal.Zero, domain.PurposeGeneral)
		assert.ErrorIs(t, err, domain.ErrInvalidAmount)

		_, err = domain.NewDonation("don-1", "DON123", decimal.NewFromInt(-5), domain.PurposeGeneral)
		assert.ErrorIs(t, err, domain.ErrInvalidAmount)
	})

	t.Run("rejects empty transaction id", func(t *testing.T) {
		_, err := domain.NewDonation("don-1", "", decimal.NewFromInt(10), domain.PurposeGeneral)

		assert.ErrorIs(t, err, domain.ErrMissingRequiredField)
		assert.Contains(t, err.Error(), "tranId is required")
	})
}

func TestDonation_Complete(t *testing.T) {
	newPending := func(t *testing.T) *domain.Donation {
		d, err := domain.NewDonation("don-1", "DON123", decimal.NewFromInt(500), domain.PurposeGeneral)
		require.NoError(t, err)
		return d
	}

	t.Run("pending to valid records validation id", func(t *testing.T) {
		d := newPending(t)
		valID := "V1"

		require.NoError(t, d.Complete(domain.TransactionValid, &valID))
		assert.Equal(t, domain.TransactionValid, d.SSL.Status)
		require.NotNil(t, d.SSL.ValID)
		assert.Equal(t, "V1", *d.SSL.ValID)
	})

	t.Run("pending to failed and cancelled", func(t *testing.T) {
		for _, target := range []domain.TransactionStatus{domain.TransactionFailed, domain.TransactionCancelled} {
			d := newPending(t)
			require.NoError(t, d.Complete(target, nil))
			assert.Equal(t, target, d.SSL.Status)
			assert.Nil(t, d.SSL.ValID)
		}
	})

	t.Run("terminal states reject further transitions", func(t *testing.T) {
		d := newPending(t)
		require.NoError(t, d.Complete(domain.TransactionFailed, nil))

		err := d.Complete(domain.TransactionValid, nil)
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
		assert.Equal(t, domain.TransactionFailed, d.SSL.Status)
	})

	t.Run("cannot go back to pending", func(t *testing.T) {
		d := newPending(t)
		assert.ErrorIs(t, d.Complete(domain.TransactionPending, nil), domain.ErrInvalidTransition)
	})
}

func TestMapGatewayStatus(t *testing.T) {
	tests := []struct {
		raw     string
		want    domain.TransactionStatus
		wantErr bool
	}{
		{raw: "VALID", want: domain.TransactionValid},
		{raw: "VALIDATED", want: domain.TransactionValid},
		{raw: "validated", want: domain.TransactionValid},
		{raw: "FAILED", want: domain.TransactionFailed},
		{raw: "CANCELLED", want: domain.TransactionCancelled},
		{raw: "UNATTEMPTED", wantErr: true},
		{raw: "EXPIRED", wantErr: true},
		{raw: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := domain.MapGatewayStatus(tt.raw)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrUnrecognizedStatus)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseDonationPurpose(t *testing.T) {
	p, err := domain.ParseDonationPurpose("")
	require.NoError(t, err)
	assert.Equal(t, domain.PurposeGeneral, p)

	p, err = domain.ParseDonationPurpose("sponsor_pet")
	require.NoError(t, err)
	assert.Equal(t, domain.PurposeSponsorPet, p)
	assert.Equal(t, "Pet Sponsorship", p.ProductName())

	_, err = domain.ParseDonationPurpose("BITCOIN")
	assert.ErrorIs(t, err, domain.ErrInvalidPurpose)
}
