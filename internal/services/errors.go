package services

import (
	"errors"
	"fmt"

	"github.com/scholar-stream/scholarship-service/internal/validator"
)

// Re-exported so handlers can errors.As against one package.
type ValidationErrors = validator.ValidationErrors

// Generic errors
var (
	ErrUnauthorized    = errors.New("unauthorized access")
	ErrForbidden       = errors.New("forbidden")
	ErrConflict        = errors.New("resource conflict")
	ErrBadRequest      = errors.New("bad request")
	ErrUpstreamFailure = errors.New("upstream provider failure")
)

// Domain errors
var (
	ErrUserNotFound        = errors.New("user not found")
	ErrUserAlreadyExists   = errors.New("user already exists")
	ErrScholarshipNotFound = errors.New("scholarship not found")
	ErrScholarshipClosed   = errors.New("scholarship application deadline has passed")
	ErrApplicationNotFound = errors.New("application not found")
	ErrReviewNotFound      = errors.New("review not found")
	ErrPaymentNotFound     = errors.New("payment not found")

	// Lifecycle guard violations. These map to 409: the request was
	// well-formed but the application's current status forbids it.
	ErrInvalidStatusTransition = errors.New("invalid application status transition")
	ErrApplicationNotEditable  = errors.New("application can only be edited while pending")
	ErrApplicationNotDeletable = errors.New("application can only be deleted while pending")

	ErrPaymentNotConfirmed = errors.New("payment session is not paid")
)

// PermissionError carries the denied action for the response body.
type PermissionError struct {
	Subject  string
	Resource string
	Action   string
	Reason   string
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("permission denied: %s cannot %s %s: %s", e.Subject, e.Action, e.Resource, e.Reason)
}

func NewPermissionError(subject, resource, action, reason string) *PermissionError {
	return &PermissionError{
		Subject:  subject,
		Resource: resource,
		Action:   action,
		Reason:   reason,
	}
}

// BusinessRuleError signals a request that is valid in shape but violates
// a domain rule other than the lifecycle guard.
type BusinessRuleError struct {
	Rule    string
	Message string
	Context map[string]interface{}
}

func (e *BusinessRuleError) Error() string {
	return fmt.Sprintf("business rule %s violated: %s", e.Rule, e.Message)
}

func NewBusinessRuleError(rule, message string) *BusinessRuleError {
	return &BusinessRuleError{Rule: rule, Message: message}
}
