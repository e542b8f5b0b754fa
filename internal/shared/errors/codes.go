package errors

import "net/http"

// Business result codes carried in the response envelope. Zero means success;
// every failure kind has its own positive code so clients can branch without
// parsing messages.
const (
	CodeOK                  = 0
	CodeInvalidToken        = 100001
	CodeRepetitionLogin     = 100002
	CodeInvalidCredentials  = 100003
	CodeInvalidOldPassword  = 100004
	CodeRepetitionUser      = 100005
	CodeMissingFields       = 100006
	CodeNotFound            = 100007
	CodeInvalidFormFields   = 100010
	CodeConflictStatus      = 100011
	CodeInvalidCaptcha      = 100012
	CodeRepetitionOrderID   = 100013
	CodeIdentityMismatch    = 100014
	CodeCaptchaTooFrequent  = 100015
	CodeNotifyTimeout       = 100016
	CodeNotifyAlreadySent   = 100017
	CodeNotifyContentAbsent = 100018
	CodePermissionDenied    = 100019
	CodeInternal            = 100500
)

// Domain-specific error types beyond the generic set.
const (
	ErrorTypeInvalidCaptcha   ErrorType = "invalid_captcha"
	ErrorTypeIdentityMismatch ErrorType = "identity_mismatch"
	ErrorTypeDuplicateID      ErrorType = "duplicate_id"
	ErrorTypeNotification     ErrorType = "notification_error"
	ErrorTypeRateLimited      ErrorType = "rate_limited"
)

// NewInvalidTokenError is returned for any token failure the caller should fix
// by re-authenticating. The internal reason is carried in details for logs only.
func NewInvalidTokenError(details ...string) *AppError {
	return newError(ErrorTypeUnauthorized, http.StatusUnauthorized, CodeInvalidToken, "session expired, please sign in again", details...)
}

// NewRepetitionLoginError signals that a newer session exists for this identity.
func NewRepetitionLoginError() *AppError {
	return newError(ErrorTypeUnauthorized, http.StatusUnauthorized, CodeRepetitionLogin, "this account signed in elsewhere", "")
}

// NewPermissionDeniedError signals the role bitmask lacks the required capability.
func NewPermissionDeniedError() *AppError {
	return newError(ErrorTypeForbidden, http.StatusForbidden, CodePermissionDenied, "insufficient permission", "")
}

// NewInvalidCredentialsError deliberately does not reveal which field was wrong.
func NewInvalidCredentialsError() *AppError {
	return newError(ErrorTypeUnauthorized, http.StatusUnauthorized, CodeInvalidCredentials, "incorrect account or password", "")
}

// NewInvalidOldPasswordError is returned when a password change fails verification.
func NewInvalidOldPasswordError() *AppError {
	return newError(ErrorTypeValidation, http.StatusBadRequest, CodeInvalidOldPassword, "original password is incorrect", "")
}

// NewRepetitionUserError signals a unique-constraint hit on the profile table.
func NewRepetitionUserError() *AppError {
	return newError(ErrorTypeConflict, http.StatusConflict, CodeRepetitionUser, "user already exists", "")
}

// NewInvalidFormFieldsError wraps a request binding failure.
func NewInvalidFormFieldsError(details ...string) *AppError {
	return newError(ErrorTypeValidation, http.StatusBadRequest, CodeInvalidFormFields, "invalid form fields", details...)
}

// NewConflictStatusError is the conditional-update miss: the caller's view of
// the entity state is stale and the operation is safe to retry after refetch.
func NewConflictStatusError(details ...string) *AppError {
	return newError(ErrorTypeConflict, http.StatusConflict, CodeConflictStatus, "state changed, refresh and retry", details...)
}

// NewInvalidCaptchaError is returned when a captcha check fails.
func NewInvalidCaptchaError() *AppError {
	return newError(ErrorTypeInvalidCaptcha, http.StatusBadRequest, CodeInvalidCaptcha, "incorrect captcha", "")
}

// NewRepetitionOrderIDError signals the advisory case id lost the insert race;
// the caller must regenerate and resubmit.
func NewRepetitionOrderIDError() *AppError {
	return newError(ErrorTypeDuplicateID, http.StatusConflict, CodeRepetitionOrderID, "duplicate case id, please retry", "")
}

// NewIdentityMismatchError is returned when the field technician's
// proof-of-possession check (name + phone) fails against the dispatched worker.
func NewIdentityMismatchError() *AppError {
	return newError(ErrorTypeIdentityMismatch, http.StatusForbidden, CodeIdentityMismatch, "credentials do not match the assigned worker", "")
}

// NewCaptchaTooFrequentError is returned when the per-equipment SMS window is still open.
func NewCaptchaTooFrequentError() *AppError {
	return newError(ErrorTypeRateLimited, http.StatusTooManyRequests, CodeCaptchaTooFrequent, "captcha requested too frequently, try later", "")
}

// NewNotifyTimeoutError reports a committed transition whose notification send
// timed out. The transition itself must not be rolled back.
func NewNotifyTimeoutError() *AppError {
	return newError(ErrorTypeNotification, http.StatusOK, CodeNotifyTimeout, "work order updated, but the notification could not be delivered", "")
}

// NewNotifyAlreadySentError guards the idempotent resend endpoint.
func NewNotifyAlreadySentError() *AppError {
	return newError(ErrorTypeNotification, http.StatusConflict, CodeNotifyAlreadySent, "notification already sent for this case", "")
}

// NewNotifyContentAbsentError is returned when no fault-report history row
// exists to source the notification body from.
func NewNotifyContentAbsentError() *AppError {
	return newError(ErrorTypeNotification, http.StatusUnprocessableEntity, CodeNotifyContentAbsent, "no report content available for this case", "")
}
