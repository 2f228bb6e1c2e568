// Package spec embeds the OpenAPI specification for the ELD Logbook API.
// It is imported by the HTTP server to serve the document at /openapi.yaml.
package spec

import _ "embed"

// OpenAPI contains the raw bytes of openapi.yaml, embedded at compile time.
// Serving it from the binary keeps the published contract and the running code in sync.
//
//go:embed openapi.yaml
var OpenAPI []byte
