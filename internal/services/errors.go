package services

import (
	"errors"
	"fmt"

	"github.com/anhbaysgalan1/balatro/internal/database"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidRequest     = errors.New("invalid request")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrConflict           = errors.New("conflict")
)

// storeError lifts constraint failures reported by the stores into request errors
func storeError(err error) error {
	switch {
	case errors.Is(err, database.ErrDuplicate):
		return fmt.Errorf("%w: %w", ErrConflict, err)
	case errors.Is(err, database.ErrOutOfRange), errors.Is(err, database.ErrMissingReference):
		return fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	return err
}
