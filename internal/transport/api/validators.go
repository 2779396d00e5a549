package api

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/gin-gonic/gin/binding"

	"github.com/go-playground/validator/v10"
)

const passwordSpecialChars = `!@#$%^&*()_+-=[]{};':"\|,.<>/?`

// validatePassword проверяет что пароль содержит заглавную букву, цифру и
// спецсимвол. Минимальная длина проверяется тегом min.
func validatePassword(fl validator.FieldLevel) bool {
	str, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}

	var hasUpper, hasDigit, hasSpecial bool
	for _, r := range str {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		case strings.ContainsRune(passwordSpecialChars, r):
			hasSpecial = true
		}
	}
	return hasUpper && hasDigit && hasSpecial
}

func registerValidators() error {
	v, _ := binding.Validator.Engine().(*validator.Validate)
	if err := v.RegisterValidation("password", validatePassword); err != nil {
		return fmt.Errorf("validator registration: %s", err.Error())
	}
	return nil
}
