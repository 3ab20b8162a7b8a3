package validator

import (
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/bidmarket/goapi/domain"
)

// IsValidAccount returns is an account id valid or not
func IsValidAccount(accountId string) bool {
	return domain.AccountId(accountId).IsValid()
}

func NewCustomValidator(v *validator.Validate) echo.Validator {
	v.RegisterValidation("accountid", func(fl validator.FieldLevel) bool {
		return IsValidAccount(fl.Field().String())
	})
	return &CustomValidator{v}
}

type CustomValidator struct {
	validator *validator.Validate
}

func (v *CustomValidator) Validate(i interface{}) error {
	if err := v.validator.Struct(i); err != nil {
		return err
	}
	return nil
}
