package server

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"go.inout.gg/bastion/internal/config"
)

//go:embed openapi.json
var openAPITemplate []byte

var errMalformedOpenAPI = errors.New("bastion/server: malformed OpenAPI document")

// openAPIDocument returns the OpenAPI document with the API version and
// base path of cfg filled in.
func openAPIDocument(cfg *config.ApplicationConfig) ([]byte, error) {
	var doc map[string]any
	if err := json.Unmarshal(openAPITemplate, &doc); err != nil {
		return nil, fmt.Errorf("bastion/server: failed to parse OpenAPI document: %w", err)
	}

	info, ok := doc["info"].(map[string]any)
	if !ok {
		return nil, errMalformedOpenAPI
	}

	info["version"] = cfg.APIVersion
	doc["servers"] = []map[string]string{{
		"url":         cfg.BasePath(),
		"description": cfg.Environment + " server",
	}}

	b, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("bastion/server: failed to encode OpenAPI document: %w", err)
	}

	return b, nil
}

func openAPIHandler(doc []byte) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		if _, err := w.Write(doc); err != nil {
			d("failed to write OpenAPI document: %v", err)
		}
	}
}
