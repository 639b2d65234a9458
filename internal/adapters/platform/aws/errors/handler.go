package errors

import (
	"context"
	stderrs "errors"
	"fmt"

	"github.com/aws/smithy-go"

	"github.com/olusolaa/infra-board/internal/errors"
)

var (
	authErrorCodes = map[string]struct{}{
		"AuthFailure":                 {},
		"UnauthorizedOperation":       {},
		"AccessDenied":                {},
		"AccessDeniedException":       {},
		"ExpiredToken":                {},
		"ExpiredTokenException":       {},
		"InvalidClientTokenId":        {},
		"UnrecognizedClientException": {},
		"SignatureDoesNotMatch":       {},
	}
	notFoundErrorCodes = map[string]struct{}{
		"InvalidZone.NotFound":      {},
		"ResourceNotFoundException": {},
		"EntityNotFoundException":   {},
		"NotFoundException":         {},
		"OptInRequired":             {},
	}
)

// HandleAWSError classifies an SDK error by its smithy API error code.
// Cancellation is reported as a platform API error wrapping the context error.
func HandleAWSError(ctx context.Context, service, operation string, err error) error {
	if err == nil {
		return errors.New(errors.CodeInternal, fmt.Sprintf("unexpected nil error in AWS error handler for %s:%s", service, operation))
	}

	if ctx.Err() != nil {
		return errors.Wrap(ctx.Err(), errors.CodePlatformAPIError,
			fmt.Sprintf("context canceled during AWS %s:%s call", service, operation))
	}
	if stderrs.Is(err, context.Canceled) || stderrs.Is(err, context.DeadlineExceeded) {
		return errors.Wrap(err, errors.CodePlatformAPIError,
			fmt.Sprintf("context canceled during AWS %s:%s call", service, operation))
	}

	var apiErr smithy.APIError
	if stderrs.As(err, &apiErr) {
		code := apiErr.ErrorCode()
		if _, ok := authErrorCodes[code]; ok {
			return errors.WrapUserFacing(err, errors.CodePlatformAuthError,
				fmt.Sprintf("AWS rejected credentials for %s:%s (%s)", service, operation, code),
				"Check AWS credentials, profile and region, or disable zone discovery with platform.aws.enabled=false.")
		}
		if _, ok := notFoundErrorCodes[code]; ok {
			return errors.Wrap(err, errors.CodeResourceNotFound,
				fmt.Sprintf("AWS %s:%s found nothing (%s)", service, operation, code))
		}
	}

	return errors.Wrap(err, errors.CodePlatformAPIError, fmt.Sprintf("AWS %s:%s call failed", service, operation))
}

// DefaultErrorHandler implements the aws.ErrorHandler interface.
type DefaultErrorHandler struct{}

func (DefaultErrorHandler) Handle(ctx context.Context, service, operation string, err error) error {
	return HandleAWSError(ctx, service, operation, err)
}
