// Package api serves the OpenAPI description of the HTTP interface.
package api

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-chi/chi/v5"
	"github.com/swaggo/swag"
)

// InstanceName is the name the document is registered under with swag.
const InstanceName = "shelter"

//go:embed openapi.yaml
var specYAML []byte

var (
	registerOnce sync.Once
	registerErr  error
)

// Spec parses and validates the embedded document.
func Spec(ctx context.Context) (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(specYAML)
	if err != nil {
		return nil, fmt.Errorf("failed to load openapi spec: %w", err)
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("invalid openapi spec: %w", err)
	}
	return doc, nil
}

// Register validates the embedded document and registers its JSON form with swag,
// so swag.ReadDoc(InstanceName) returns it. Safe to call more than once.
func Register() error {
	registerOnce.Do(func() {
		doc, err := Spec(context.Background())
		if err != nil {
			registerErr = err
			return
		}
		body, err := json.Marshal(doc)
		if err != nil {
			registerErr = fmt.Errorf("failed to encode openapi spec: %w", err)
			return
		}
		swag.Register(InstanceName, &swag.Spec{
			InfoInstanceName: InstanceName,
			Title:            doc.Info.Title,
			Version:          doc.Info.Version,
			SwaggerTemplate:  string(body),
			LeftDelim:        "{{",
			RightDelim:       "}}",
		})
	})
	return registerErr
}

// RegisterDocsRoutes mounts GET /api/docs/openapi.json.
func RegisterDocsRoutes(r chi.Router) {
	r.Get("/api/docs/openapi.json", func(w http.ResponseWriter, _ *http.Request) {
		if err := Register(); err != nil {
			http.Error(w, "openapi spec unavailable", http.StatusInternalServerError)
			return
		}
		body, err := swag.ReadDoc(InstanceName)
		if err != nil {
			http.Error(w, "openapi spec unavailable", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	})
}
