package service

import (
	"context"
	"errors"

	dErrors "astrotrack/pkg/domain-errors"
	"astrotrack/pkg/platform/sentinel"
)

// storeErr translates an infrastructure failure. Conflicts pass through
// untouched so the retry loop can see them.
func storeErr(err error, msg string) error {
	switch {
	case errors.Is(err, sentinel.ErrConflict):
		return err
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return dErrors.Wrap(err, dErrors.CodeTimeout, "operation aborted: "+msg)
	default:
		return dErrors.Wrap(err, dErrors.CodeUnavailable, msg)
	}
}

func wrapPersonErr(err error) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, "person not found")
	}
	return storeErr(err, "failed to load person")
}

// finalErr maps whatever escaped the transaction to a coded error.
func finalErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sentinel.ErrConflict) {
		return dErrors.Wrap(err, dErrors.CodeConcurrencyConflict, "concurrent update conflict; retry the request")
	}
	var de *dErrors.Error
	if errors.As(err, &de) {
		return err
	}
	return storeErr(err, "transaction failed")
}
