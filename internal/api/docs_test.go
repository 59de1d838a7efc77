package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DanielPopoola/shelter-api/internal/api"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

func TestSpec_IsValid(t *testing.T) {
	doc, err := api.Spec(context.Background())
	require.NoError(t, err)

	for _, path := range []string{
		"/api/donations/init",
		"/api/donations/payment/ipn",
		"/api/donations/payment/success/{tranId}",
		"/api/pets",
		"/api/admin/analytics",
	} {
		assert.NotNil(t, doc.Paths.Find(path), path)
	}
}

func TestRegisterDocsRoutes(t *testing.T) {
	r := chi.NewRouter()
	api.RegisterDocsRoutes(r)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/docs/openapi.json", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "3.0.3", body["openapi"])
}

func TestRegister_ExposesDocThroughSwag(t *testing.T) {
	require.NoError(t, api.Register())
	require.NoError(t, api.Register())

	doc, err := swag.ReadDoc(api.InstanceName)
	require.NoError(t, err)
	assert.Contains(t, doc, `"/api/donations/payment/ipn"`)
	assert.Contains(t, doc, `"title":"Animal Shelter API"`)
}
