package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/DanielPopoola/shelter-api/internal/application"
	"github.com/DanielPopoola/shelter-api/internal/application/mocks"
	"github.com/DanielPopoola/shelter-api/internal/application/services"
	"github.com/DanielPopoola/shelter-api/internal/domain"
	"github.com/DanielPopoola/shelter-api/internal/infrastructure/security"
	"github.com/DanielPopoola/shelter-api/internal/interfaces/rest"
	"github.com/DanielPopoola/shelter-api/internal/interfaces/rest/handlers"
	"github.com/DanielPopoola/shelter-api/internal/interfaces/rest/middleware"
	"github.com/DanielPopoola/shelter-api/internal/testhelpers"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const frontendURL = "https://shelter.test"

type stubHealth struct{ err error }

func (s stubHealth) Ping(context.Context) error { return s.err }

type HandlersTestSuite struct {
	suite.Suite
	donations *mocks.DonationRepository
	pets      *mocks.PetRepository
	users     *mocks.UserRepository
	gateway   *mocks.MockPaymentGateway
	tokens    *security.JWTIssuer
	health    *stubHealth
	router    http.Handler

	admin   *domain.User
	regular *domain.User
}

func TestHandlersTestSuite(t *testing.T) {
	suite.Run(t, new(HandlersTestSuite))
}

func (s *HandlersTestSuite) SetupTest() {
	logger := testhelpers.DiscardLogger()

	s.donations = &mocks.DonationRepository{}
	s.pets = &mocks.PetRepository{}
	s.users = &mocks.UserRepository{}
	s.gateway = mocks.NewMockPaymentGateway(s.T())
	s.tokens = security.NewJWTIssuer("handler-test-secret-key", time.Hour)
	s.health = &stubHealth{}

	s.admin = &domain.User{ID: "10000000-0000-0000-0000-000000000001", Name: "Admin", Role: domain.RoleAdmin}
	s.regular = &domain.User{ID: "10000000-0000-0000-0000-000000000002", Name: "User", Role: domain.RoleUser}
	s.users.On("FindByID", mock.Anything, s.admin.ID).Return(s.admin, nil).Maybe()
	s.users.On("FindByID", mock.Anything, s.regular.ID).Return(s.regular, nil).Maybe()

	authSvc := services.NewAuthService(s.users, security.NewBcryptHasher(), s.tokens, logger)
	svc := handlers.Services{
		Auth:      authSvc,
		Users:     services.NewUserService(s.users, security.NewBcryptHasher(), logger),
		Pets:      services.NewPetService(s.pets, logger),
		Donations: services.NewDonationService(s.donations, s.pets, s.gateway, "https://api.shelter.test", logger),
	}

	errs := rest.NewErrorWriter(logger, false)
	auth := middleware.NewAuth(authSvc, errs, false, logger)
	s.router = handlers.NewHandlers(svc, s.health, frontendURL, errs, logger).
		Router(auth, handlers.RouterOptions{})
}

func (s *HandlersTestSuite) TearDownTest() {
	s.donations.AssertExpectations(s.T())
	s.pets.AssertExpectations(s.T())
}

func (s *HandlersTestSuite) token(user *domain.User) string {
	token, err := s.tokens.Issue(user)
	s.Require().NoError(err)
	return token
}

func (s *HandlersTestSuite) do(req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	s.router.ServeHTTP(rr, req)
	return rr
}

func (s *HandlersTestSuite) postJSON(path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return s.do(req)
}

func (s *HandlersTestSuite) postForm(path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return s.do(req)
}

func pendingDonation(tranID string) *domain.Donation {
	d, _ := domain.NewDonation("20000000-0000-0000-0000-000000000001", tranID, decimal.NewFromInt(500), domain.PurposeGeneral)
	return d
}

func (s *HandlersTestSuite) TestRoot() {
	rr := s.do(httptest.NewRequest(http.MethodGet, "/", nil))

	s.Equal(http.StatusOK, rr.Code)
	s.JSONEq(`{"message":"Animal Shelter API is running..."}`, rr.Body.String())
}

func (s *HandlersTestSuite) TestHealth() {
	rr := s.do(httptest.NewRequest(http.MethodGet, "/api/health", nil))
	s.Equal(http.StatusOK, rr.Code)
	s.JSONEq(`{"status":"ok","database":"up"}`, rr.Body.String())

	s.health.err = errors.New("connection refused")
	rr = s.do(httptest.NewRequest(http.MethodGet, "/api/health", nil))
	s.Equal(http.StatusServiceUnavailable, rr.Code)
	s.Contains(rr.Body.String(), `"database":"down"`)
}

func (s *HandlersTestSuite) TestNotFound() {
	rr := s.do(httptest.NewRequest(http.MethodGet, "/api/nope", nil))

	s.Equal(http.StatusNotFound, rr.Code)
	var resp rest.ErrorResponse
	s.Require().NoError(json.Unmarshal(rr.Body.Bytes(), &resp))
	s.False(resp.Success)
	s.Equal("Not Found - /api/nope", resp.Message)
	s.Equal(application.ErrCodeNotFound, resp.Code)
}

func (s *HandlersTestSuite) TestInitDonation_Success() {
	s.donations.On("Create", mock.Anything, mock.AnythingOfType("*domain.Donation")).Return(nil).Once()
	s.donations.On("SetSessionKey", mock.Anything, mock.AnythingOfType("string"), "S1").Return(nil).Once()
	s.gateway.EXPECT().InitSession(mock.Anything, mock.Anything).
		Return(&application.SessionResponse{SessionKey: "S1", GatewayURL: "https://sandbox.sslcommerz.com/pay/S1"}, nil).
		Once()

	rr := s.postJSON("/api/donations/init", `{"amount": 500, "donorName": "Rahim"}`)

	s.Require().Equal(http.StatusOK, rr.Code, rr.Body.String())
	var resp struct {
		Success bool   `json:"success"`
		URL     string `json:"url"`
		TranID  string `json:"tranId"`
	}
	s.Require().NoError(json.Unmarshal(rr.Body.Bytes(), &resp))
	s.True(resp.Success)
	s.Equal("https://sandbox.sslcommerz.com/pay/S1", resp.URL)
	s.True(strings.HasPrefix(resp.TranID, "DON"))
}

func (s *HandlersTestSuite) TestInitDonation_AttachesSignedInUser() {
	s.donations.On("Create", mock.Anything, mock.MatchedBy(func(d *domain.Donation) bool {
		return d.UserID != nil && *d.UserID == s.regular.ID
	})).Return(nil).Once()
	s.gateway.EXPECT().InitSession(mock.Anything, mock.Anything).
		Return(&application.SessionResponse{GatewayURL: "https://sandbox.sslcommerz.com/pay/S2"}, nil).
		Once()

	req := httptest.NewRequest(http.MethodPost, "/api/donations/init", strings.NewReader(`{"amount":"100"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.token(s.regular))
	rr := s.do(req)

	s.Equal(http.StatusOK, rr.Code, rr.Body.String())
}

func (s *HandlersTestSuite) TestInitDonation_RejectsBadInput() {
	tests := []struct {
		name string
		body string
	}{
		{name: "zero amount", body: `{"amount": 0}`},
		{name: "negative amount", body: `{"amount": -50}`},
		{name: "unknown purpose", body: `{"amount": 10, "purpose": "BITCOIN"}`},
		{name: "malformed json", body: `{"amount":`},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			rr := s.postJSON("/api/donations/init", tt.body)

			s.Equal(http.StatusBadRequest, rr.Code)
			s.Contains(rr.Body.String(), `"success":false`)
		})
	}
}

func (s *HandlersTestSuite) TestInitDonation_GatewayFailure() {
	s.donations.On("Create", mock.Anything, mock.AnythingOfType("*domain.Donation")).Return(nil).Once()
	s.gateway.EXPECT().InitSession(mock.Anything, mock.Anything).
		Return(nil, errors.New("Store Credential Error Or Store is De-active")).
		Once()

	rr := s.postJSON("/api/donations/init", `{"amount": 500}`)

	s.Equal(http.StatusBadGateway, rr.Code)
	var resp rest.ErrorResponse
	s.Require().NoError(json.Unmarshal(rr.Body.Bytes(), &resp))
	s.Equal("Payment initialization error", resp.Message)
	s.NotContains(rr.Body.String(), "Store Credential")
}

func (s *HandlersTestSuite) TestPaymentIPN_FormEncoded() {
	tranID := "DON00000000000000000001"
	s.donations.On("FindByTranID", mock.Anything, tranID).Return(pendingDonation(tranID), nil).Once()
	s.donations.On("CompleteTransaction", mock.Anything, tranID, domain.TransactionValid, mock.MatchedBy(func(v *string) bool {
		return v != nil && *v == "V1"
	})).Return(true, nil).Once()

	rr := s.postForm("/api/donations/payment/ipn", url.Values{
		"tran_id": {tranID},
		"status":  {"VALID"},
		"val_id":  {"V1"},
	})

	s.Equal(http.StatusOK, rr.Code)
	s.Equal("IPN received", rr.Body.String())
	s.Contains(rr.Header().Get("Content-Type"), "text/plain")
}

func (s *HandlersTestSuite) TestPaymentIPN_JSON() {
	tranID := "DON00000000000000000002"
	s.donations.On("FindByTranID", mock.Anything, tranID).Return(pendingDonation(tranID), nil).Once()
	s.donations.On("CompleteTransaction", mock.Anything, tranID, domain.TransactionFailed, (*string)(nil)).Return(true, nil).Once()

	rr := s.postJSON("/api/donations/payment/ipn", `{"tran_id":"`+tranID+`","status":"FAILED"}`)

	s.Equal(http.StatusOK, rr.Code)
	s.Equal("IPN received", rr.Body.String())
}

func (s *HandlersTestSuite) TestPaymentIPN_MissingTranID() {
	rr := s.postForm("/api/donations/payment/ipn", url.Values{"status": {"VALID"}})

	s.Equal(http.StatusBadRequest, rr.Code)
	s.donations.AssertNotCalled(s.T(), "FindByTranID", mock.Anything, mock.Anything)
}

func (s *HandlersTestSuite) TestPaymentIPN_UnknownTransaction() {
	s.donations.On("FindByTranID", mock.Anything, "DONUNKNOWN").Return(nil, domain.ErrNotFound).Once()

	rr := s.postForm("/api/donations/payment/ipn", url.Values{"tran_id": {"DONUNKNOWN"}, "status": {"VALID"}})

	s.Equal(http.StatusNotFound, rr.Code)
	s.Equal("Transaction not found", rr.Body.String())
}

func (s *HandlersTestSuite) TestPaymentIPN_UnrecognizedStatus() {
	tranID := "DON00000000000000000003"
	s.donations.On("FindByTranID", mock.Anything, tranID).Return(pendingDonation(tranID), nil).Once()

	rr := s.postForm("/api/donations/payment/ipn", url.Values{"tran_id": {tranID}, "status": {"UNATTEMPTED"}})

	s.Equal(http.StatusBadRequest, rr.Code)
	s.Equal("Unrecognized status", rr.Body.String())
	s.donations.AssertNotCalled(s.T(), "CompleteTransaction", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *HandlersTestSuite) TestPaymentIPN_LateCallbackAcknowledged() {
	tranID := "DON00000000000000000004"
	done := pendingDonation(tranID)
	require.NoError(s.T(), done.Complete(domain.TransactionCancelled, nil))
	s.donations.On("FindByTranID", mock.Anything, tranID).Return(done, nil).Once()

	rr := s.postForm("/api/donations/payment/ipn", url.Values{"tran_id": {tranID}, "status": {"VALID"}})

	s.Equal(http.StatusOK, rr.Code)
	s.donations.AssertNotCalled(s.T(), "CompleteTransaction", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *HandlersTestSuite) TestPaymentSuccess_Redirects() {
	tranID := "DON00000000000000000005"
	s.donations.On("FindByTranID", mock.Anything, tranID).Return(pendingDonation(tranID), nil).Once()
	s.donations.On("CompleteTransaction", mock.Anything, tranID, domain.TransactionValid, mock.MatchedBy(func(v *string) bool {
		return v != nil && *v == "V9"
	})).Return(true, nil).Once()

	rr := s.postForm("/api/donations/payment/success/"+tranID, url.Values{"val_id": {"V9"}})

	s.Equal(http.StatusFound, rr.Code)
	s.Equal(frontendURL+"/payment/success?tranId="+tranID, rr.Header().Get("Location"))
}

func (s *HandlersTestSuite) TestPaymentCallbacks_RedirectEvenWhenUnknown() {
	for _, source := range []string{"fail", "cancel"} {
		s.Run(source, func() {
			s.donations.On("FindByTranID", mock.Anything, "DONMISSING").Return(nil, domain.ErrNotFound).Once()

			rr := s.postForm("/api/donations/payment/"+source+"/DONMISSING", url.Values{})

			s.Equal(http.StatusFound, rr.Code)
			s.Equal(frontendURL+"/payment/"+source+"?tranId=DONMISSING", rr.Header().Get("Location"))
		})
	}
}

func (s *HandlersTestSuite) TestAdminRoutes_RequireAdmin() {
	req := httptest.NewRequest(http.MethodGet, "/api/admin/donations", nil)
	rr := s.do(req)
	s.Equal(http.StatusUnauthorized, rr.Code)
	s.Contains(rr.Body.String(), "Not authorized, no token")

	req = httptest.NewRequest(http.MethodGet, "/api/admin/donations", nil)
	req.Header.Set("Authorization", "Bearer "+s.token(s.regular))
	rr = s.do(req)
	s.Equal(http.StatusForbidden, rr.Code)
	s.Contains(rr.Body.String(), "Not authorized as an admin")
}

func (s *HandlersTestSuite) TestListDonations_RejectsUnknownFilters() {
	for _, query := range []string{"status=refunded", "purpose=bitcoin"} {
		s.Run(query, func() {
			req := httptest.NewRequest(http.MethodGet, "/api/admin/donations?"+query, nil)
			req.Header.Set("Authorization", "Bearer "+s.token(s.admin))
			rr := s.do(req)

			s.Equal(http.StatusBadRequest, rr.Code, rr.Body.String())
		})
	}
	s.donations.AssertNotCalled(s.T(), "List", mock.Anything, mock.Anything, mock.Anything)
}

func (s *HandlersTestSuite) TestListDonations_Admin() {
	d := pendingDonation("DON00000000000000000006")
	s.donations.On("List", mock.Anything,
		application.DonationFilter{Status: domain.TransactionPending},
		domain.Page{Number: 2, Limit: 5},
	).Return([]*domain.Donation{d}, 6, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/admin/donations?status=pending&page=2&limit=5", nil)
	req.Header.Set("Authorization", "Bearer "+s.token(s.admin))
	rr := s.do(req)

	s.Require().Equal(http.StatusOK, rr.Code, rr.Body.String())
	var resp struct {
		Success bool              `json:"success"`
		Data    []json.RawMessage `json:"data"`
		Meta    domain.PageMeta   `json:"meta"`
	}
	s.Require().NoError(json.Unmarshal(rr.Body.Bytes(), &resp))
	s.True(resp.Success)
	s.Len(resp.Data, 1)
	s.Equal(domain.PageMeta{Page: 2, Limit: 5, Total: 6, TotalPages: 2}, resp.Meta)
}

func (s *HandlersTestSuite) TestGetPet_MalformedIDIsNotFound() {
	rr := s.do(httptest.NewRequest(http.MethodGet, "/api/pets/not-a-uuid", nil))

	s.Equal(http.StatusNotFound, rr.Code)
	s.Contains(rr.Body.String(), "Pet not found")
}

func TestRouter_RateLimitsAuth(t *testing.T) {
	logger := testhelpers.DiscardLogger()
	users := &mocks.UserRepository{}
	users.On("FindByEmail", mock.Anything, "nobody@example.com").Return(nil, domain.ErrNotFound)

	authSvc := services.NewAuthService(users, security.NewBcryptHasher(), security.NewJWTIssuer("rate-limit-secret-key", time.Hour), logger)
	errs := rest.NewErrorWriter(logger, false)
	router := handlers.NewHandlers(handlers.Services{Auth: authSvc}, stubHealth{}, frontendURL, errs, logger).
		Router(middleware.NewAuth(authSvc, errs, false, logger), handlers.RouterOptions{
			RateLimitRequests: 2,
			RateLimitWindow:   time.Minute,
		})

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
			strings.NewReader(`{"email":"nobody@example.com","password":"secret1"}`))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		codes = append(codes, rr.Code)
	}

	assert.Equal(t, []int{http.StatusUnauthorized, http.StatusUnauthorized, http.StatusTooManyRequests}, codes)
}
