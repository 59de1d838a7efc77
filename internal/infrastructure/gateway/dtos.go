package gateway

const (
	sandboxHost = "https://sandbox.sslcommerz.com"
	liveHost    = "https://securepay.sslcommerz.com"
	sessionPath = "/gwprocess/v4/api.php"

	statusSuccess = "SUCCESS"
)

// sessionResponse is the subset of the session API reply the service relies on.
type sessionResponse struct {
	Status         string `json:"status"`
	FailedReason   string `json:"failedreason"`
	SessionKey     string `json:"sessionkey"`
	GatewayPageURL string `json:"GatewayPageURL"`
}
