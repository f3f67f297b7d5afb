package open_wizard

import (
	"fmt"

	"github.com/google/uuid"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.PackageID <= 0 {
		return fmt.Errorf("%w: packageID must be positive", ErrInvalidInput)
	}

	if req.ResourceID <= 0 {
		return fmt.Errorf("%w: resourceID must be positive", ErrInvalidInput)
	}

	if req.DraftID != "" {
		if _, err := uuid.Parse(req.DraftID); err != nil {
			return fmt.Errorf("%w: draftID must be a UUID", ErrInvalidInput)
		}
	}

	return nil
}
