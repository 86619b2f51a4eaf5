// Package recordstorerepo implements the repository ports on top of the
// hosted record-store backend. Conditional updates are not available there,
// so the atomicity of trade transitions relies on the service layer's
// per-key serialization; this backend is meant for single-instance
// deployments.
package recordstorerepo

import (
	"errors"
	"fmt"

	"github.com/truequeo/trueque_backend/internal/apperrors"
	"github.com/truequeo/trueque_backend/pkg/recordstore"
)

// translateErr maps record-store client errors onto the application error
// taxonomy so services and handlers can match with errors.Is.
func translateErr(err error, resource string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, recordstore.ErrNotFound):
		return fmt.Errorf("%s: %w", resource, apperrors.ErrNotFound)
	case errors.Is(err, recordstore.ErrConflict):
		return fmt.Errorf("%s: %w", resource, apperrors.ErrDuplicate)
	case errors.Is(err, recordstore.ErrUnavailable):
		return fmt.Errorf("%s: %w: %v", resource, apperrors.ErrUnavailable, err)
	default:
		return fmt.Errorf("%s: %w", resource, err)
	}
}
