package fluxcrystal

import (
	"encoding/json"
	"fmt"
	"time"
)

// ErrorCode identifies the kind of a typed API failure. The zero value,
// ErrorUnknown, is what mapError returns for an error response whose `code`
// is not recognized and whose HTTP status has no fallback (e.g. 500).
type ErrorCode string

// Error kinds. This is not the exhaustive ~400-class catalogue the Fluxer
// server can return (that is explicitly out of scope, see spec.md §1); it
// is a seed table of the common codes plus the HTTP-status fallbacks, and
// it is safe to extend at runtime via RegisterErrorCode.
const (
	ErrorUnknown            ErrorCode = ""
	ErrorBadRequest         ErrorCode = "bad_request"
	ErrorUnauthorized       ErrorCode = "unauthorized"
	ErrorForbidden          ErrorCode = "forbidden"
	ErrorNotFound           ErrorCode = "not_found"
	ErrorMethodNotAllowed   ErrorCode = "method_not_allowed"
	ErrorRateLimited        ErrorCode = "rate_limited"
	ErrorBadGateway         ErrorCode = "bad_gateway"
	ErrorServiceUnavailable ErrorCode = "service_unavailable"

	ErrorUnknownMessage     ErrorCode = "unknown_message"
	ErrorUnknownChannel     ErrorCode = "unknown_channel"
	ErrorUnknownGuild       ErrorCode = "unknown_guild"
	ErrorUnknownUser        ErrorCode = "unknown_user"
	ErrorUnknownMember      ErrorCode = "unknown_member"
	ErrorUnknownRole        ErrorCode = "unknown_role"
	ErrorUnknownInvite      ErrorCode = "unknown_invite"
	ErrorMissingPermissions ErrorCode = "missing_permissions"
	ErrorMissingAccess      ErrorCode = "missing_access"
)

// codeTable maps the server's wire `code` string to an ErrorCode. It is an
// unexported package-level var (not a function) so RegisterErrorCode can
// extend it without a library release, mirroring the original's
// module-level ERROR_CODE_MAPPING dict.
var codeTable = map[string]ErrorCode{
	"BAD_REQUEST":           ErrorBadRequest,
	"UNAUTHORIZED":          ErrorUnauthorized,
	"FORBIDDEN":             ErrorForbidden,
	"NOT_FOUND":             ErrorNotFound,
	"METHOD_NOT_ALLOWED":    ErrorMethodNotAllowed,
	"RATE_LIMITED":          ErrorRateLimited,
	"BAD_GATEWAY":           ErrorBadGateway,
	"SERVICE_UNAVAILABLE":   ErrorServiceUnavailable,
	"UNKNOWN_MESSAGE":       ErrorUnknownMessage,
	"UNKNOWN_CHANNEL":       ErrorUnknownChannel,
	"UNKNOWN_GUILD":         ErrorUnknownGuild,
	"UNKNOWN_USER":          ErrorUnknownUser,
	"UNKNOWN_MEMBER":        ErrorUnknownMember,
	"UNKNOWN_ROLE":          ErrorUnknownRole,
	"UNKNOWN_INVITE":        ErrorUnknownInvite,
	"MISSING_PERMISSIONS":   ErrorMissingPermissions,
	"MISSING_ACCESS":        ErrorMissingAccess,
}

// RegisterErrorCode adds or overrides a wire `code` string -> ErrorCode
// mapping. Safe to call from an init() in a host application that knows
// about server error codes this library doesn't ship a constant for.
func RegisterErrorCode(wireCode string, kind ErrorCode) {
	codeTable[wireCode] = kind
}

// statusFallback maps an HTTP status to an ErrorCode when the response body
// carries no recognized `code` field, per spec.md §4.B.
func statusFallback(status int) ErrorCode {
	switch status {
	case 400:
		return ErrorBadRequest
	case 401:
		return ErrorUnauthorized
	case 403:
		return ErrorForbidden
	case 404:
		return ErrorNotFound
	case 405:
		return ErrorMethodNotAllowed
	case 429:
		return ErrorRateLimited
	case 502:
		return ErrorBadGateway
	case 503:
		return ErrorServiceUnavailable
	default:
		return ErrorUnknown
	}
}

// APIError is returned for any non-success REST response. It is the sole
// exported error type the REST envelope produces.
type APIError struct {
	Code       ErrorCode
	HTTPStatus int
	Message    string
	// RetryAfter is non-zero only when Code == ErrorRateLimited.
	RetryAfter time.Duration
}

func (e *APIError) Error() string {
	if e.Code != ErrorUnknown {
		return fmt.Sprintf("fluxcrystal: %s (http %d): %s", e.Code, e.HTTPStatus, e.Message)
	}
	return fmt.Sprintf("fluxcrystal: http %d: %s", e.HTTPStatus, e.Message)
}

// errorEnvelope is the wire shape of a failed REST response, per spec.md §6.
type errorEnvelope struct {
	Code       string  `json:"code"`
	Message    string  `json:"message"`
	RetryAfter float64 `json:"retry_after"`
}

// mapError implements the pure function from spec.md §4.B: it returns body
// unchanged on success, or a non-nil *APIError selected first by the body's
// `code` field and, failing that, by HTTP status.
func mapError(body json.RawMessage, status int) (json.RawMessage, error) {
	if status == 204 {
		return json.RawMessage(`{}`), nil
	}
	if status >= 200 && status < 300 {
		return body, nil
	}

	var env errorEnvelope
	_ = json.Unmarshal(body, &env)

	kind, ok := codeTable[env.Code]
	if !ok {
		kind = statusFallback(status)
	}

	message := env.Message
	if message == "" {
		message = fmt.Sprintf("request failed with status %d", status)
	}

	apiErr := &APIError{Code: kind, HTTPStatus: status, Message: message}
	if kind == ErrorRateLimited {
		apiErr.RetryAfter = time.Duration(env.RetryAfter * float64(time.Second))
	}
	return nil, apiErr
}

// FatalGatewayError is returned from Bot.Start (via gatewayConnection.run)
// when the gateway closes with a fatal close code (spec.md §4.F). Callers can
// detect it with errors.As instead of string matching.
type FatalGatewayError struct {
	CloseCode int
	Reason    string
}

func (e *FatalGatewayError) Error() string {
	return fmt.Sprintf("fluxcrystal: fatal gateway close %d: %s", e.CloseCode, e.Reason)
}
