package httpapi

import (
	"context"
	"errors"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/fbref-crawler/internal/usecase"
)

const (
	googleAPIVersion = "2.0"
	errorDomain      = "fbref-crawler"
)

// googleResponseEnvelope follows the Google JSON style guide: exactly one of
// data or error is set.
type googleResponseEnvelope struct {
	APIVersion string           `json:"apiVersion"`
	Data       any              `json:"data,omitempty"`
	Error      *googleErrorBody `json:"error,omitempty"`
}

type googleErrorBody struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Status  string            `json:"status"`
	Errors  []googleErrorItem `json:"errors,omitempty"`
}

type googleErrorItem struct {
	Domain  string `json:"domain"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

type mappedError struct {
	HTTPStatus int
	Reason     string
	Status     string
}

var internalError = mappedError{http.StatusInternalServerError, "internalError", "INTERNAL"}

// errorMappings is checked in order; the first sentinel the error wraps wins.
var errorMappings = []struct {
	sentinels []error
	mapped    mappedError
}{
	{[]error{usecase.ErrInvalidInput}, mappedError{http.StatusBadRequest, "invalidInput", "INVALID_ARGUMENT"}},
	{[]error{usecase.ErrNotFound}, mappedError{http.StatusNotFound, "notFound", "NOT_FOUND"}},
	{[]error{usecase.ErrUnauthorized}, mappedError{http.StatusUnauthorized, "unauthorized", "UNAUTHENTICATED"}},
	{[]error{usecase.ErrDependencyUnavailable}, mappedError{http.StatusServiceUnavailable, "dependencyUnavailable", "UNAVAILABLE"}},
	{[]error{usecase.ErrNothingSaved}, mappedError{http.StatusUnprocessableEntity, "nothingSaved", "FAILED_PRECONDITION"}},
	{[]error{usecase.ErrFetchRateLimited}, mappedError{http.StatusTooManyRequests, "upstreamRateLimited", "RESOURCE_EXHAUSTED"}},
	{[]error{usecase.ErrFetchTimeout}, mappedError{http.StatusGatewayTimeout, "upstreamTimeout", "DEADLINE_EXCEEDED"}},
	{
		[]error{usecase.ErrFetchForbidden, usecase.ErrFetchNetwork, usecase.ErrFetchUnexpectedStatus},
		mappedError{http.StatusBadGateway, "upstreamUnavailable", "UNAVAILABLE"},
	},
}

func mapError(err error) mappedError {
	for _, m := range errorMappings {
		for _, sentinel := range m.sentinels {
			if errors.Is(err, sentinel) {
				return m.mapped
			}
		}
	}
	return internalError
}

func writeJSON(w http.ResponseWriter, status int, payload googleResponseEnvelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = sonic.ConfigDefault.NewEncoder(w).Encode(payload)
}

func writeSuccess(ctx context.Context, w http.ResponseWriter, status int, data any) {
	_, span := startSpan(ctx, "httpapi.writeSuccess")
	defer span.End()

	writeJSON(w, status, googleResponseEnvelope{APIVersion: googleAPIVersion, Data: data})
}

func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	_, span := startSpan(ctx, "httpapi.writeError")
	defer span.End()

	writeMappedError(w, mapError(err), err.Error())
}

// writeInternalError hides the cause; it is used after a recovered panic.
func writeInternalError(ctx context.Context, w http.ResponseWriter) {
	_, span := startSpan(ctx, "httpapi.writeInternalError")
	defer span.End()

	writeMappedError(w, internalError, "internal server error")
}

func writeMappedError(w http.ResponseWriter, mapped mappedError, msg string) {
	writeJSON(w, mapped.HTTPStatus, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Error: &googleErrorBody{
			Code:    mapped.HTTPStatus,
			Message: msg,
			Status:  mapped.Status,
			Errors:  []googleErrorItem{{Domain: errorDomain, Reason: mapped.Reason, Message: msg}},
		},
	})
}
