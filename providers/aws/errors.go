package aws

import (
	"context"
	"errors"
	"strings"

	"github.com/aws/smithy-go"

	"github.com/reapr-io/reapr/internal/provider"
)

// conflictCodes are API errors meaning a dependent resource still holds a
// reference; the caller retries until the dependent converges.
var conflictCodes = []string{
	"DependencyViolation",
	"ResourceInUse",
	"InUse",
	"IncorrectState",
	"IncorrectInstanceState",
	"ResourceConflict",
}

// transientCodes are throttling and availability errors worth retrying.
var transientCodes = []string{
	"Throttling",
	"ThrottlingException",
	"RequestThrottled",
	"RequestLimitExceeded",
	"TooManyRequestsException",
	"ServiceUnavailable",
	"InternalError",
	"InternalFailure",
	"RequestTimeout",
}

// permanentCodes are authorization and validation errors that no amount of
// retrying fixes.
var permanentCodes = []string{
	"UnauthorizedOperation",
	"AccessDenied",
	"AuthFailure",
	"OptInRequired",
	"ValidationError",
	"MissingParameter",
	"Malformed",
}

// classify maps an SDK error to the provider taxonomy. Unknown API errors
// default to transient and go through the bounded retry.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return provider.NewError(provider.KindTransient, op, err)
	}

	var ae smithy.APIError
	if !errors.As(err, &ae) {
		// Network-level failure without an API error code.
		return provider.NewError(provider.KindTransient, op, err)
	}

	code := ae.ErrorCode()
	switch {
	case strings.Contains(code, "NotFound"):
		return provider.NewError(provider.KindNotFound, op, err)
	case matchesAny(code, conflictCodes):
		return provider.NewError(provider.KindConflict, op, err)
	case matchesAny(code, permanentCodes):
		return provider.NewError(provider.KindPermanent, op, err)
	case matchesAny(code, transientCodes):
		return provider.NewError(provider.KindTransient, op, err)
	}
	return provider.NewError(provider.KindTransient, op, err)
}

func matchesAny(code string, patterns []string) bool {
	for _, pattern := range patterns {
		if strings.Contains(code, pattern) {
			return true
		}
	}
	return false
}
