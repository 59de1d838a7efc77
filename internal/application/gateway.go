package application

import "github.com/shopspring/decimal"

// SessionRequest is everything the gateway needs to open a hosted checkout page.
type SessionRequest struct {
	TotalAmount     decimal.Decimal
	Currency        string
	TranID          string
	SuccessURL      string
	FailURL         string
	CancelURL       string
	IPNURL          string
	ProductName     string
	ProductCategory string
	ProductProfile  string
	ShippingMethod  string
	Customer        Payer
}

type Payer struct {
	Name     string
	Email    string
	Phone    string
	Address1 string
	City     string
	Postcode string
	Country  string
}

type SessionResponse struct {
	SessionKey string
	GatewayURL string
}
