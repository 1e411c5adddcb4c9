package usecase

import (
	"fmt"
	"net/mail"
	"strings"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func ValidateCreateLeadInput(input CreateLeadInput) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(input.FirstName) == "" {
		errors = append(errors, ValidationError{"first_name", "is required"})
	} else if len(input.FirstName) > 100 {
		errors = append(errors, ValidationError{"first_name", "must not exceed 100 characters"})
	}

	if strings.TrimSpace(input.LastName) == "" {
		errors = append(errors, ValidationError{"last_name", "is required"})
	} else if len(input.LastName) > 100 {
		errors = append(errors, ValidationError{"last_name", "must not exceed 100 characters"})
	}

	if strings.TrimSpace(input.Email) == "" {
		errors = append(errors, ValidationError{"email", "is required"})
	} else if _, err := mail.ParseAddress(input.Email); err != nil {
		errors = append(errors, ValidationError{"email", "is invalid"})
	}

	if strings.TrimSpace(input.Phone) == "" {
		errors = append(errors, ValidationError{"phone", "is required"})
	}

	if strings.TrimSpace(input.Cell) == "" {
		errors = append(errors, ValidationError{"cell", "is required"})
	}

	if strings.TrimSpace(input.PictureLarge) == "" {
		errors = append(errors, ValidationError{"picture_large", "is required"})
	}

	return errors
}
