package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/DanielPopoola/shelter-api/internal/application"
	"github.com/DanielPopoola/shelter-api/internal/config"
)

// SSLCommerzClient opens hosted checkout sessions. It never retries.
type SSLCommerzClient struct {
	endpoint      string
	storeID       string
	storePassword string
	httpClient    *http.Client
	logger        *slog.Logger
}

func NewSSLCommerzClient(cfg config.GatewayConfig, logger *slog.Logger) *SSLCommerzClient {
	host := sandboxHost
	if cfg.IsLive {
		host = liveHost
	}
	if cfg.APIURL != "" {
		host = strings.TrimRight(cfg.APIURL, "/")
	}

	return &SSLCommerzClient{
		endpoint:      host + sessionPath,
		storeID:       cfg.StoreID,
		storePassword: cfg.StorePassword,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: logger,
	}
}

func (c *SSLCommerzClient) InitSession(ctx context.Context, req application.SessionRequest) (*application.SessionResponse, error) {
	resp, err := postForm[sessionResponse](ctx, c, c.endpoint, c.encode(req))
	if err != nil {
		return nil, err
	}

	if !strings.EqualFold(resp.Status, statusSuccess) || resp.GatewayPageURL == "" {
		return nil, &GatewayError{
			Status:     resp.Status,
			Reason:     resp.FailedReason,
			StatusCode: http.StatusOK,
		}
	}

	c.logger.Debug("gateway session opened", "tran_id", req.TranID)

	return &application.SessionResponse{
		SessionKey: resp.SessionKey,
		GatewayURL: resp.GatewayPageURL,
	}, nil
}

func (c *SSLCommerzClient) encode(req application.SessionRequest) url.Values {
	v := url.Values{}
	v.Set("store_id", c.storeID)
	v.Set("store_passwd", c.storePassword)
	v.Set("total_amount", req.TotalAmount.StringFixed(2))
	v.Set("currency", req.Currency)
	v.Set("tran_id", req.TranID)
	v.Set("success_url", req.SuccessURL)
	v.Set("fail_url", req.FailURL)
	v.Set("cancel_url", req.CancelURL)
	v.Set("ipn_url", req.IPNURL)
	v.Set("shipping_method", req.ShippingMethod)
	v.Set("product_name", req.ProductName)
	v.Set("product_category", req.ProductCategory)
	v.Set("product_profile", req.ProductProfile)

	p := req.Customer
	v.Set("cus_name", p.Name)
	v.Set("cus_email", p.Email)
	v.Set("cus_phone", p.Phone)
	v.Set("cus_fax", p.Phone)
	v.Set("cus_add1", p.Address1)
	v.Set("cus_add2", p.Address1)
	v.Set("cus_city", p.City)
	v.Set("cus_state", p.City)
	v.Set("cus_postcode", p.Postcode)
	v.Set("cus_country", p.Country)

	for _, k := range []string{"ship_name", "ship_add1", "ship_add2", "ship_city", "ship_state", "ship_postcode", "ship_country"} {
		v.Set(k, "No")
	}
	return v
}

func postForm[Resp any](ctx context.Context, c *SSLCommerzClient, endpoint string, form url.Values) (*Resp, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("error making request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &GatewayError{
			Status:     http.StatusText(resp.StatusCode),
			Reason:     string(body),
			StatusCode: resp.StatusCode,
		}
	}

	var out Resp
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("error decoding json response: %w", err)
	}
	return &out, nil
}
