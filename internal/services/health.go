package services

import (
	"context"
)

// HealthResult is the body of the health check
type HealthResult struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Backend string `json:"backend"`
}

// HealthService implements the health service
type HealthService struct {
	service string
	backend string
}

// NewHealthService creates a new health service
func NewHealthService(service, backend string) *HealthService {
	return &HealthService{service: service, backend: backend}
}

// Check implements the health check method. It does not dial the store.
func (s *HealthService) Check(ctx context.Context) (*HealthResult, error) {
	return &HealthResult{
		Status:  "healthy",
		Service: s.service,
		Backend: s.backend,
	}, nil
}
