package util

import (
	"fmt"
	"regexp"
	"time"

	"github.com/go-playground/validator/v10"
)

var Validate *validator.Validate

var uppercase = regexp.MustCompile(`[A-Z]`)

func init() {
	Validate = validator.New()

	Validate.RegisterValidation("hasuppercase", validateHasUppercase)
	Validate.RegisterValidation("yearmonth", validateYearMonth)
}

func validateHasUppercase(fl validator.FieldLevel) bool {
	return uppercase.MatchString(fl.Field().String())
}

func validateYearMonth(fl validator.FieldLevel) bool {
	_, err := time.Parse("2006-01", fl.Field().String())
	return err == nil
}

type ErrorResponse struct {
	Field string `json:"field"`
	Tag   string `json:"tag"`
	Msg   string `json:"message"`
}

func ValidateStruct(s interface{}) []*ErrorResponse {
	var errors []*ErrorResponse
	err := Validate.Struct(s)
	if err == nil {
		return nil
	}
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return []*ErrorResponse{{Msg: err.Error()}}
	}

	for _, err := range validationErrors {
		var element ErrorResponse
		element.Field = err.Field()
		element.Tag = err.Tag()

		switch err.Tag() {
		case "required":
			element.Msg = fmt.Sprintf("Field '%s' is required.", element.Field)
		case "min":
			element.Msg = fmt.Sprintf("Field '%s' must be at least %s.", element.Field, err.Param())
		case "max":
			element.Msg = fmt.Sprintf("Field '%s' must be at most %s.", element.Field, err.Param())
		case "email":
			element.Msg = "Email format is invalid."
		case "hasuppercase":
			element.Msg = "Password must contain at least one uppercase letter."
		case "yearmonth":
			element.Msg = fmt.Sprintf("Field '%s' must be a month formatted as YYYY-MM.", element.Field)
		case "datetime":
			element.Msg = fmt.Sprintf("Field '%s' must match the format %s.", element.Field, err.Param())
		case "url":
			element.Msg = fmt.Sprintf("Field '%s' must be a valid URL.", element.Field)
		case "oneof":
			element.Msg = fmt.Sprintf("Field '%s' must be one of: %s.", element.Field, err.Param())
		default:
			element.Msg = fmt.Sprintf("Field '%s' failed validation on tag '%s'.", element.Field, element.Tag)
		}
		errors = append(errors, &element)
	}
	return errors
}
