package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/google/go-github/v84/github"
)

var (
	// ErrInvalidURL is returned when an endpoint cannot be resolved against the base URL.
	ErrInvalidURL = errors.New("invalid URL")
	// ErrInvalidToken is returned when GitHub answers 401 Unauthorized.
	ErrInvalidToken = errors.New("invalid or expired OAuth token")
)

// APIError is a non-401 response with a status code of 400 or above.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error (%d): %s", e.StatusCode, e.Body)
}

// NetworkError is a transport-level failure: DNS, TLS, refused connection, timeout.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string { return "network error: " + e.Err.Error() }
func (e *NetworkError) Unwrap() error { return e.Err }

// DecodingError is a successful response whose body does not match the expected shape.
type DecodingError struct {
	Err error
}

func (e *DecodingError) Error() string { return "data parsing error: " + e.Err.Error() }
func (e *DecodingError) Unwrap() error { return e.Err }

// classifyRESTError maps an error returned by go-github's Client.Do onto the
// gateway error kinds. context.Canceled is passed through untouched.
func classifyRESTError(err error) error {
	if err == nil || errors.Is(err, context.Canceled) {
		return err
	}

	var (
		rateErr  *github.RateLimitError
		abuseErr *github.AbuseRateLimitError
		otpErr   *github.TwoFactorAuthError
		errResp  *github.ErrorResponse
	)
	switch {
	case errors.As(err, &rateErr):
		return newAPIError(rateErr.Response, rateErr.Message)
	case errors.As(err, &abuseErr):
		return newAPIError(abuseErr.Response, abuseErr.Message)
	case errors.As(err, &otpErr):
		// A 401 asking for an OTP code; the token alone cannot authenticate.
		return ErrInvalidToken
	case errors.As(err, &errResp):
		if errResp.Response != nil && errResp.Response.StatusCode == http.StatusUnauthorized {
			return ErrInvalidToken
		}
		return newAPIError(errResp.Response, errResp.Message)
	}

	if isDecodingError(err) {
		return &DecodingError{Err: err}
	}
	return &NetworkError{Err: err}
}

// classifyGraphQLError does the same for the GraphQL client, which only
// reports failures as strings; statusCode is what the transport observed.
// GraphQL reports query errors inside a 2xx body, so a failed 2xx call means
// the body did not carry the requested data.
func classifyGraphQLError(err error, statusCode int) error {
	switch {
	case err == nil || errors.Is(err, context.Canceled):
		return err
	case statusCode == http.StatusUnauthorized:
		return ErrInvalidToken
	case statusCode >= http.StatusBadRequest:
		return &APIError{StatusCode: statusCode, Body: err.Error()}
	case statusCode == 0:
		return &NetworkError{Err: err}
	default:
		return &DecodingError{Err: err}
	}
}

func isDecodingError(err error) bool {
	var (
		syntaxErr *json.SyntaxError
		typeErr   *json.UnmarshalTypeError
	)
	return errors.As(err, &syntaxErr) || errors.As(err, &typeErr) || errors.Is(err, io.ErrUnexpectedEOF)
}

// newAPIError prefers the raw body, which go-github leaves readable on the
// response, over the parsed message.
func newAPIError(resp *http.Response, message string) *APIError {
	apiErr := &APIError{Body: message}
	if resp == nil {
		return apiErr
	}
	apiErr.StatusCode = resp.StatusCode
	if resp.Body != nil {
		if raw, err := io.ReadAll(resp.Body); err == nil && len(raw) > 0 {
			apiErr.Body = string(raw)
		}
	}
	return apiErr
}
