package firestore

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/api/googleapi"

	"github.com/danahertz/pastebook/internal/domain/port/driven"
)

// isMissingIndex reports whether err is Firestore's rejection of a combined
// filter+order query whose composite index has not been provisioned. The
// backend returns FAILED_PRECONDITION with a message pointing at the index
// creation console. Consumed only by List's fallback path, never surfaced.
func isMissingIndex(err error) bool {
	var gerr *googleapi.Error
	if !errors.As(err, &gerr) {
		return false
	}
	return gerr.Code == http.StatusBadRequest &&
		strings.Contains(strings.ToLower(gerr.Message), "requires an index")
}

// isNotFound reports whether err indicates a missing document.
func isNotFound(err error) bool {
	var gerr *googleapi.Error
	if !errors.As(err, &gerr) {
		return false
	}
	return gerr.Code == http.StatusNotFound
}

// remoteErr marks err as a remote-store failure so callers can detect the
// condition with errors.Is(err, driven.ErrRemoteUnavailable).
func remoteErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, driven.ErrRemoteUnavailable, err)
}
