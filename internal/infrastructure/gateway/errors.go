package gateway

import (
	"errors"
	"fmt"
)

// GatewayError is a rejected or malformed session response.
type GatewayError struct {
	Status     string
	Reason     string
	StatusCode int
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("gateway error [%s]: %s (status: %d)", e.Status, e.Reason, e.StatusCode)
}

func IsGatewayError(err error) (*GatewayError, bool) {
	var gwErr *GatewayError
	ok := errors.As(err, &gwErr)
	return gwErr, ok
}
