package csvimport

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// RowValidator checks decoded import rows against their `binding` struct tags,
// the same tags gin uses for request bodies
type RowValidator struct {
	v *validator.Validate
}

// NewRowValidator creates a validator that reports json field names
func NewRowValidator() *RowValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.SetTagName("binding")
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &RowValidator{v: v}
}

// Check validates row and records one error per failing field. It returns false when any field failed.
func (rv *RowValidator) Check(line int, row any, errs *ErrorCollection) bool {
	err := rv.v.Struct(row)
	if err == nil {
		return true
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		errs.AddMessage(line, "", CodeValidation, err.Error())
		return false
	}
	for _, fe := range verrs {
		code := CodeValidation
		if fe.Tag() == "required" {
			code = CodeRequiredField
		}
		errs.Add(RowError{
			Row:     line,
			Field:   fe.Field(),
			Code:    code,
			Message: fieldMessage(fe),
			Value:   fmt.Sprint(fe.Value()),
		})
	}
	return false
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("field '%s' is required", fe.Field())
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	case "email":
		return "must be a valid email address"
	}
	return fmt.Sprintf("failed '%s' validation", fe.Tag())
}
