package tests

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/DanielPopoola/shelter-api/internal/application/services"
	"github.com/DanielPopoola/shelter-api/internal/config"
	"github.com/DanielPopoola/shelter-api/internal/domain"
	"github.com/DanielPopoola/shelter-api/internal/infrastructure/gateway"
	"github.com/DanielPopoola/shelter-api/internal/infrastructure/persistence/postgres"
	"github.com/DanielPopoola/shelter-api/internal/infrastructure/security"
	"github.com/DanielPopoola/shelter-api/internal/interfaces/rest"
	"github.com/DanielPopoola/shelter-api/internal/interfaces/rest/handlers"
	"github.com/DanielPopoola/shelter-api/internal/interfaces/rest/middleware"
	"github.com/DanielPopoola/shelter-api/internal/testhelpers"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

// fakeGateway records session requests and answers like the sandbox does.
type fakeGateway struct {
	mu       sync.Mutex
	requests []url.Values
}

func (f *fakeGateway) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	_ = r.ParseForm()
	f.mu.Lock()
	f.requests = append(f.requests, r.PostForm)
	f.mu.Unlock()

	tranID := r.PostForm.Get("tran_id")
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{
		"status":         "SUCCESS",
		"sessionkey":     "SESSION-" + tranID,
		"GatewayPageURL": "https://sandbox.sslcommerz.com/EasyCheckOut/" + tranID,
	})
}

func (f *fakeGateway) last() url.Values {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.requests) == 0 {
		return nil
	}
	return f.requests[len(f.requests)-1]
}

type IntegrationTestSuite struct {
	suite.Suite
	testDB  *testhelpers.TestDatabase
	gateway *fakeGateway
	server  *httptest.Server
	client  *http.Client
	tokens  *security.JWTIssuer
	cfg     *config.Config
}

func TestIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(IntegrationTestSuite))
}

func (s *IntegrationTestSuite) SetupSuite() {
	decimal.MarshalJSONWithoutQuotes = true

	s.testDB = testhelpers.SetupTestDatabase(s.T())
	s.gateway = &fakeGateway{}
	gatewaySrv := httptest.NewServer(s.gateway)
	s.T().Cleanup(gatewaySrv.Close)

	s.T().Setenv("SHELTER_PRIMARY__ENV", "test")
	s.T().Setenv("SHELTER_DATABASE__HOST", s.testDB.Config.Host)
	s.T().Setenv("SHELTER_DATABASE__USER", s.testDB.Config.User)
	s.T().Setenv("SHELTER_DATABASE__PASSWORD", s.testDB.Config.Password)
	s.T().Setenv("SHELTER_DATABASE__NAME", s.testDB.Config.Name)
	s.T().Setenv("SHELTER_GATEWAY__STORE_ID", "teststore")
	s.T().Setenv("SHELTER_GATEWAY__STORE_PASSWORD", "teststore@ssl")
	s.T().Setenv("SHELTER_GATEWAY__BASE_URL", "https://api.shelter.test")
	s.T().Setenv("SHELTER_GATEWAY__FRONTEND_URL", "https://shelter.test")
	s.T().Setenv("SHELTER_GATEWAY__API_URL", gatewaySrv.URL)
	s.T().Setenv("SHELTER_AUTH__JWT_SECRET", "integration-test-secret")

	cfg, err := config.LoadConfig()
	s.Require().NoError(err)
	cfg.Database = *s.testDB.Config
	s.cfg = cfg

	logger := testhelpers.DiscardLogger()
	db := s.testDB.DB

	petRepo := postgres.NewPetRepository(db)
	userRepo := postgres.NewUserRepository(db)
	hasher := security.NewBcryptHasher()
	s.tokens = security.NewJWTIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	authSvc := services.NewAuthService(userRepo, hasher, s.tokens, logger)

	svc := handlers.Services{
		Auth:       authSvc,
		Users:      services.NewUserService(userRepo, hasher, logger),
		Pets:       services.NewPetService(petRepo, logger),
		Adoptions:  services.NewAdoptionService(postgres.NewAdoptionRepository(db), petRepo, logger),
		Inquiries:  services.NewInquiryService(postgres.NewInquiryRepository(db), petRepo, logger),
		Volunteers: services.NewVolunteerService(postgres.NewVolunteerRepository(db), logger),
		Events:     services.NewEventService(postgres.NewEventRepository(db), logger),
		Stories:    services.NewStoryService(postgres.NewStoryRepository(db), logger),
		Donations: services.NewDonationService(
			postgres.NewDonationRepository(db),
			petRepo,
			gateway.NewSSLCommerzClient(cfg.Gateway, logger),
			cfg.Gateway.BaseURL,
			logger,
		),
		Analytics: services.NewAnalyticsService(postgres.NewAnalyticsRepository(db), logger),
	}

	errs := rest.NewErrorWriter(logger, false)
	router := handlers.NewHandlers(svc, db, cfg.Gateway.RedirectBaseURL(), errs, logger).
		Router(middleware.NewAuth(authSvc, errs, false, logger), handlers.RouterOptions{
			RequestTimeout: 10 * time.Second,
		})

	s.server = httptest.NewServer(router)
	s.client = &http.Client{
		Timeout: 10 * time.Second,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func (s *IntegrationTestSuite) TearDownSuite() {
	if s.server != nil {
		s.server.Close()
	}
	s.testDB.Cleanup(s.T())
}

func (s *IntegrationTestSuite) SetupTest() {
	s.testDB.CleanTables(s.T())
}

func (s *IntegrationTestSuite) request(method, path, token, contentType, body string) *http.Response {
	req, err := http.NewRequest(method, s.server.URL+path, strings.NewReader(body))
	s.Require().NoError(err)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := s.client.Do(req)
	s.Require().NoError(err)
	s.T().Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func (s *IntegrationTestSuite) json(method, path, token, body string) *http.Response {
	return s.request(method, path, token, "application/json", body)
}

func (s *IntegrationTestSuite) form(path string, values url.Values) *http.Response {
	return s.request(http.MethodPost, path, "", "application/x-www-form-urlencoded", values.Encode())
}

func (s *IntegrationTestSuite) decode(resp *http.Response, dst any) {
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(dst))
}

func (s *IntegrationTestSuite) text(resp *http.Response) string {
	b, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	return string(b)
}

func (s *IntegrationTestSuite) adminToken() string {
	admin := testhelpers.CreateUser(s.T(), s.testDB.DB, domain.RoleAdmin)
	token, err := s.tokens.Issue(admin)
	s.Require().NoError(err)
	return token
}

func (s *IntegrationTestSuite) donation(token, tranID string) domain.Donation {
	resp := s.json(http.MethodGet, "/api/donations/"+tranID, token, "")
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	var body struct {
		Data domain.Donation `json:"data"`
	}
	s.decode(resp, &body)
	return body.Data
}

func (s *IntegrationTestSuite) TestDonation_InitThenIPNValid() {
	admin := s.adminToken()

	resp := s.json(http.MethodPost, "/api/donations/init", "", `{"amount": 750, "donorName": "Karim"}`)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	var initResp struct {
		Success bool   `json:"success"`
		URL     string `json:"url"`
		TranID  string `json:"tranId"`
	}
	s.decode(resp, &initResp)
	s.True(initResp.Success)
	s.Equal("https://sandbox.sslcommerz.com/EasyCheckOut/"+initResp.TranID, initResp.URL)

	sent := s.gateway.last()
	s.Require().NotNil(sent)
	s.Equal(initResp.TranID, sent.Get("tran_id"))
	s.Equal("750.00", sent.Get("total_amount"))
	s.Equal("BDT", sent.Get("currency"))
	s.Equal("Karim", sent.Get("cus_name"))
	s.Equal("https://api.shelter.test/api/donations/payment/ipn", sent.Get("ipn_url"))
	s.Equal("https://api.shelter.test/api/donations/payment/success/"+initResp.TranID, sent.Get("success_url"))

	pending := s.donation(admin, initResp.TranID)
	s.Equal(domain.TransactionPending, pending.SSL.Status)
	s.Require().NotNil(pending.SSL.SessionKey)
	s.Equal("SESSION-"+initResp.TranID, *pending.SSL.SessionKey)

	resp = s.form("/api/donations/payment/ipn", url.Values{
		"tran_id": {initResp.TranID},
		"status":  {"VALID"},
		"val_id":  {"V1"},
	})
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Equal("IPN received", s.text(resp))

	valid := s.donation(admin, initResp.TranID)
	s.Equal(domain.TransactionValid, valid.SSL.Status)
	s.Require().NotNil(valid.SSL.ValID)
	s.Equal("V1", *valid.SSL.ValID)
	s.True(valid.Amount.Equal(decimal.NewFromInt(750)))

	// A late FAILED notification is acknowledged but does not overwrite VALID.
	resp = s.form("/api/donations/payment/ipn", url.Values{
		"tran_id": {initResp.TranID},
		"status":  {"FAILED"},
	})
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Equal(domain.TransactionValid, s.donation(admin, initResp.TranID).SSL.Status)
}

func (s *IntegrationTestSuite) TestDonation_CancelRedirect() {
	admin := s.adminToken()

	resp := s.json(http.MethodPost, "/api/donations/init", "", `{"amount": "100"}`)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	var initResp struct {
		TranID string `json:"tranId"`
	}
	s.decode(resp, &initResp)

	resp = s.form("/api/donations/payment/cancel/"+initResp.TranID, url.Values{})
	s.Equal(http.StatusFound, resp.StatusCode)
	s.Equal("https://shelter.test/payment/cancel?tranId="+initResp.TranID, resp.Header.Get("Location"))

	s.Equal(domain.TransactionCancelled, s.donation(admin, initResp.TranID).SSL.Status)
}

func (s *IntegrationTestSuite) TestDonation_UnknownIPNCreatesNothing() {
	resp := s.form("/api/donations/payment/ipn", url.Values{"tran_id": {"DONDOESNOTEXIST"}, "status": {"VALID"}})
	s.Equal(http.StatusNotFound, resp.StatusCode)
	s.Equal("Transaction not found", s.text(resp))

	var count int
	err := s.testDB.DB.Pool.QueryRow(s.T().Context(), `SELECT COUNT(*) FROM donations`).Scan(&count)
	s.Require().NoError(err)
	s.Zero(count)
}

func (s *IntegrationTestSuite) TestAdoption_ApprovalMovesPetToPendingAdoption() {
	admin := s.adminToken()

	resp := s.json(http.MethodPost, "/api/auth/register", "",
		`{"name":"Ayesha","email":"Ayesha@Example.com","password":"secret1"}`)
	s.Require().Equal(http.StatusCreated, resp.StatusCode)
	var registered struct {
		Data services.AuthResult `json:"data"`
	}
	s.decode(resp, &registered)
	s.Equal("ayesha@example.com", registered.Data.Email)
	s.Equal(domain.RoleUser, registered.Data.Role)
	userToken := registered.Data.Token

	resp = s.json(http.MethodPost, "/api/admin/pets", admin,
		`{"name":"Rocky","species":"Dog","breed":"Bulldog","age":4,"size":"Medium","gender":"Male","description":"Loyal companion."}`)
	s.Require().Equal(http.StatusCreated, resp.StatusCode)
	var created struct {
		Data domain.Pet `json:"data"`
	}
	s.decode(resp, &created)
	s.Equal(domain.PetAvailable, created.Data.Status)

	resp = s.json(http.MethodPost, "/api/adoptions/apply", userToken, `{
		"petId": "`+created.Data.ID+`",
		"applicantInfo": {"address":"123 Fake St","experience":"Had dogs before","householdInfo":"Single"}
	}`)
	s.Require().Equal(http.StatusCreated, resp.StatusCode)
	var applied struct {
		Data domain.AdoptionApplication `json:"data"`
	}
	s.decode(resp, &applied)
	s.Equal(domain.ReviewPending, applied.Data.Status)

	// Regular users cannot review.
	resp = s.json(http.MethodPatch, "/api/admin/adoptions/"+applied.Data.ID, userToken, `{"status":"APPROVED"}`)
	s.Equal(http.StatusForbidden, resp.StatusCode)

	resp = s.json(http.MethodPatch, "/api/admin/adoptions/"+applied.Data.ID, admin,
		`{"status":"APPROVED","adminNote":"Great fit"}`)
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	resp = s.json(http.MethodGet, "/api/pets/"+created.Data.ID, "", "")
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	var pet struct {
		Data domain.Pet `json:"data"`
	}
	s.decode(resp, &pet)
	s.Equal(domain.PetPendingAdoption, pet.Data.Status)

	resp = s.json(http.MethodGet, "/api/adoptions/my", userToken, "")
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	var mine struct {
		Data []domain.AdoptionApplication `json:"data"`
		Meta domain.PageMeta              `json:"meta"`
	}
	s.decode(resp, &mine)
	s.Require().Len(mine.Data, 1)
	s.Equal(domain.ReviewApproved, mine.Data[0].Status)
	s.Equal(1, mine.Meta.Total)
}

func (s *IntegrationTestSuite) TestPublicPets_HideUnreviewedSubmissions() {
	user := testhelpers.CreateUser(s.T(), s.testDB.DB, domain.RoleUser)
	token, err := s.tokens.Issue(user)
	s.Require().NoError(err)

	resp := s.json(http.MethodPost, "/api/pets/submit", token, `{"name":"Max","species":"Dog","age":1}`)
	s.Require().Equal(http.StatusCreated, resp.StatusCode)
	testhelpers.CreatePet(s.T(), s.testDB.DB, domain.PetAvailable)

	resp = s.json(http.MethodGet, "/api/pets", "", "")
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	var page struct {
		Data []domain.Pet   `json:"data"`
		Meta domain.PageMeta `json:"meta"`
	}
	s.decode(resp, &page)
	s.Require().Len(page.Data, 1)
	s.Equal("Buddy", page.Data[0].Name)
	s.Equal(9, page.Meta.Limit)
}
