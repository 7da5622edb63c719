package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
	ErrNothingSaved          = errors.New("no items were successfully saved")
)

// Fetch taxonomy. Page fetchers wrap exactly one of these.
var (
	ErrFetchForbidden        = errors.New("fetch forbidden")
	ErrFetchRateLimited      = errors.New("fetch rate limited")
	ErrFetchTimeout          = errors.New("fetch timed out")
	ErrFetchNetwork          = errors.New("fetch network error")
	ErrFetchUnexpectedStatus = errors.New("fetch unexpected status")
)

// FetchErrorClass returns the taxonomy sentinel wrapped by err, or nil.
func FetchErrorClass(err error) error {
	for _, class := range []error{
		ErrFetchForbidden,
		ErrFetchRateLimited,
		ErrFetchTimeout,
		ErrFetchNetwork,
		ErrFetchUnexpectedStatus,
	} {
		if errors.Is(err, class) {
			return class
		}
	}
	return nil
}
