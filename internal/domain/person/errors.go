package person

import (
	"errors"
	"fmt"
)

var (
	ErrPersonNotFound   = errors.New("person not found")
	ErrCPFAlreadyExists = errors.New("there is already a registered person with the CPF provided")
	ErrCPFMismatch      = errors.New("CPF mismatch")
)

// NotFoundError matches ErrPersonNotFound with errors.Is.
type NotFoundError struct {
	ID ID
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("person with ID %d not found", e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrPersonNotFound }
