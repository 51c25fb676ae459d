package validation

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/aatuh/api-shield/ports"
	"github.com/go-playground/validator/v10"
)

// ValidationError represents a validation error with field-specific details.
type ValidationError struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
	Value   string `json:"value,omitempty"`
	Code    string `json:"code"`
	Reason  string `json:"reason,omitempty"`
}

func (e ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// ValidationErrors represents multiple validation errors.
type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func (e ValidationErrors) Error() string {
	if len(e.Errors) == 0 {
		return "validation failed"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}

	msgs := make([]string, 0, len(e.Errors))
	for _, err := range e.Errors {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// IsInvalid reports whether err is, or wraps, a field validation failure.
func IsInvalid(err error) bool {
	var ve ValidationError
	var ves ValidationErrors
	return errors.As(err, &ve) || errors.As(err, &ves)
}

// ReasonOf returns the reason of the first field error in err.
func ReasonOf(err error) string {
	var ve ValidationError
	if errors.As(err, &ve) {
		return ve.Reason
	}
	var ves ValidationErrors
	if errors.As(err, &ves) && len(ves.Errors) > 0 {
		return ves.Errors[0].Reason
	}
	return ""
}

// Flatten returns the individual field errors in err.
func Flatten(err error) []ValidationError {
	var ve ValidationError
	if errors.As(err, &ve) {
		return []ValidationError{ve}
	}
	var ves ValidationErrors
	if errors.As(err, &ves) {
		return ves.Errors
	}
	return nil
}

// fieldChecks backs the custom struct tags. Struct validation re-runs the
// check on failure to recover its message and reason.
var fieldChecks = map[string]func(any) error{
	"cpf":      func(v any) error { return ValidateCPF(asString(v)) },
	"br_phone": func(v any) error { return ValidatePhone(asString(v)) },
	"cep":      func(v any) error { return ValidateCEP(asString(v)) },
	"price":    ValidatePrice,
	"nosqli":   func(v any) error { return ValidateNoSQLInjection(asString(v)) },
	"noxss":    func(v any) error { return ValidateNoXSS(asString(v)) },
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

// playgroundValidator adapts go-playground/validator to the toolkit interface.
type playgroundValidator struct {
	validator *validator.Validate
}

// New returns the default validator implementation with the identifier,
// price and content tags registered.
func New() ports.Validator {
	return NewPlaygroundValidator()
}

// NewPlaygroundValidator constructs a validator backed by github.com/go-playground/validator/v10.
func NewPlaygroundValidator() ports.Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		tag := fld.Tag.Get("json")
		if tag == "" {
			return fld.Name
		}
		name := strings.Split(tag, ",")[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	for tag, check := range fieldChecks {
		// Registration only fails for empty tags or nil funcs.
		_ = v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			return check(fieldValue(fl.Field())) == nil
		})
	}
	return &playgroundValidator{validator: v}
}

func fieldValue(rv reflect.Value) any {
	if !rv.IsValid() || !rv.CanInterface() {
		return nil
	}
	return rv.Interface()
}

func (p *playgroundValidator) Validate(ctx context.Context, value interface{}) error {
	if value == nil {
		return ValidationError{Message: "value is required", Code: CodeInvalid, Reason: "required"}
	}
	if isStruct(value) {
		return convertError(p.validator.StructCtx(ctx, value))
	}
	return nil
}

func (p *playgroundValidator) ValidateStruct(ctx context.Context, obj interface{}) error {
	if obj == nil {
		return ValidationError{Message: "object is required", Code: CodeInvalid, Reason: "required"}
	}
	return convertError(p.validator.StructCtx(ctx, obj))
}

func (p *playgroundValidator) ValidateField(ctx context.Context, obj interface{}, field string) error {
	if obj == nil {
		return ValidationError{Message: "object is required", Code: CodeInvalid, Reason: "required"}
	}
	if strings.TrimSpace(field) == "" {
		return ValidationError{Message: "field name is required", Code: CodeInvalid, Reason: "required"}
	}
	return convertError(p.validator.StructPartialCtx(ctx, obj, field))
}

func isStruct(v interface{}) bool {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return false
	}
	if rv.Kind() == reflect.Ptr {
		rv = rv.Elem()
	}
	return rv.IsValid() && rv.Kind() == reflect.Struct
}

func convertError(err error) error {
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}
	errs := ValidationErrors{}
	for _, fe := range ve {
		out := ValidationError{
			Field:   fe.Field(),
			Message: buildMessage(fe),
			Value:   fmt.Sprintf("%v", fe.Value()),
			Code:    CodeInvalid,
			Reason:  fe.Tag(),
		}
		if check, ok := fieldChecks[fe.Tag()]; ok {
			var detail ValidationError
			if errors.As(check(fe.Value()), &detail) {
				out.Message = detail.Message
				out.Reason = detail.Reason
			}
		}
		errs.Errors = append(errs.Errors, out)
	}
	if len(errs.Errors) == 1 {
		return errs.Errors[0]
	}
	return errs
}

func buildMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "len":
		return fmt.Sprintf("must be %s in length", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", fe.Param())
	default:
		if fe.Param() != "" {
			return fmt.Sprintf("failed '%s'=%s validation", fe.Tag(), fe.Param())
		}
		return fmt.Sprintf("failed '%s' validation", fe.Tag())
	}
}
