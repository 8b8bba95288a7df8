// Package handler provides HTTP request handlers for the REST API.
package handler

import "github.com/devops-demo/items-api/internal/model"

// Service identity reported by the root and health endpoints.
const (
	ServiceName = "devops-fastapi"
	Version     = "1.0.0"
)

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version"`
}

// RootResponse represents the service metadata returned by the root endpoint.
type RootResponse struct {
	Message   string            `json:"message"`
	Version   string            `json:"version"`
	Endpoints map[string]string `json:"endpoints"`
}

// DeleteResponse represents the response to a successful delete.
type DeleteResponse struct {
	Message string     `json:"message"`
	Item    model.Item `json:"item"`
}
