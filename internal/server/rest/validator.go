package rest

import (
	"errors"

	"github.com/dmitrijs2005/opmlogin/internal/common"
	"github.com/go-playground/validator/v10"
)

// CustomValidator adapts go-playground/validator to echo.Validator.
type CustomValidator struct {
	validator *validator.Validate
}

func NewValidator() *CustomValidator {
	return &CustomValidator{validator: validator.New()}
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

var fieldMessages = map[string]string{
	"Email":    common.EmailRequiredMessage,
	"Password": common.PasswordRequiredMessage,
}

// validationMessage turns the first failed field into the message the form
// shows for it.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		if msg, ok := fieldMessages[verrs[0].StructField()]; ok {
			return msg
		}
		return verrs[0].Field() + " is invalid"
	}
	return "Invalid request"
}
