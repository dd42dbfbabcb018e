package fluxcrystal

import (
	"encoding/json"
	"testing"
	"time"
)

func TestMapError_Success(t *testing.T) {
	body := json.RawMessage(`{"id":"123"}`)
	out, err := mapError(body, 200)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(out) != string(body) {
		t.Fatalf("expected passthrough body, got %s", out)
	}
}

func TestMapError_NoContent(t *testing.T) {
	out, err := mapError(nil, 204)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(out) != "{}" {
		t.Fatalf("expected empty object, got %s", out)
	}
}

func TestMapError_KnownCode(t *testing.T) {
	body := json.RawMessage(`{"code":"UNKNOWN_MESSAGE","message":"no such message"}`)
	_, err := mapError(body, 404)
	var apiErr *APIError
	if !asAPIError(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T (%v)", err, err)
	}
	if apiErr.Code != ErrorUnknownMessage {
		t.Fatalf("expected ErrorUnknownMessage, got %v", apiErr.Code)
	}
	if apiErr.Message != "no such message" {
		t.Fatalf("unexpected message: %q", apiErr.Message)
	}
}

func TestMapError_StatusFallback(t *testing.T) {
	body := json.RawMessage(`{"code":"SOMETHING_UNRECOGNIZED"}`)
	_, err := mapError(body, 403)
	var apiErr *APIError
	if !asAPIError(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T", err)
	}
	if apiErr.Code != ErrorForbidden {
		t.Fatalf("expected ErrorForbidden fallback, got %v", apiErr.Code)
	}
}

func TestMapError_RateLimitedCarriesRetryAfter(t *testing.T) {
	body := json.RawMessage(`{"code":"RATE_LIMITED","message":"slow down","retry_after":1.5}`)
	_, err := mapError(body, 429)
	var apiErr *APIError
	if !asAPIError(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T", err)
	}
	if apiErr.Code != ErrorRateLimited {
		t.Fatalf("expected ErrorRateLimited, got %v", apiErr.Code)
	}
	if apiErr.RetryAfter != 1500*time.Millisecond {
		t.Fatalf("expected 1.5s retry_after, got %v", apiErr.RetryAfter)
	}
}

func TestRegisterErrorCode(t *testing.T) {
	RegisterErrorCode("MY_CUSTOM_CODE", ErrorCode("my_custom_code"))
	body := json.RawMessage(`{"code":"MY_CUSTOM_CODE","message":"custom"}`)
	_, err := mapError(body, 400)
	var apiErr *APIError
	if !asAPIError(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T", err)
	}
	if apiErr.Code != ErrorCode("my_custom_code") {
		t.Fatalf("expected registered code, got %v", apiErr.Code)
	}
}

// asAPIError is a tiny errors.As shim kept local to the test so the test
// file doesn't need to import "errors" just for this one assertion style.
func asAPIError(err error, target **APIError) bool {
	apiErr, ok := err.(*APIError)
	if !ok {
		return false
	}
	*target = apiErr
	return true
}
