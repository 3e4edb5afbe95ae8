package service

import "errors"

var (
	ErrIntegrationNotFound = errors.New("integration not found")
)
