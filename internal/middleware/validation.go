package middleware

import (
	"fmt"
	"net/http"
	"net/url"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	apierrors "jobpulse/internal/errors"
)

// Validator binds query strings onto request contracts and validates them
// with struct tags. Field errors are reported under their JSON names.
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a validator that names fields by their json tag
func NewValidator() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Validator{validate: v}
}

// ValidateStruct validates a struct and returns validation errors
func (v *Validator) ValidateStruct(s interface{}) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return apierrors.InvalidRequestWithError(err)
	}

	validationErrors := make([]apierrors.ValidationError, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		validationErrors = append(validationErrors, apierrors.ValidationError{
			Field:   fe.Field(),
			Message: formatValidationError(fe),
		})
	}
	return apierrors.NewValidationErrors(validationErrors)
}

// Bind fills dst from the request's query string and chi URL params, then
// validates it. dst must be a pointer to a struct using `query` and `param`
// tags. Repeated parameters (and the bracketed `name[]` form) fill slices.
func (v *Validator) Bind(r *http.Request, dst interface{}) error {
	rv := reflect.ValueOf(dst)
	if rv.Kind() != reflect.Pointer || rv.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("bind target must be a pointer to struct, got %T", dst)
	}

	var errs []apierrors.ValidationError
	bindStruct(rv.Elem(), r.URL.Query(), func(name string) string {
		return chi.URLParam(r, name)
	}, &errs)
	if len(errs) > 0 {
		return apierrors.NewValidationErrors(errs)
	}

	return v.ValidateStruct(dst)
}

func bindStruct(sv reflect.Value, query url.Values, param func(string) string, errs *[]apierrors.ValidationError) {
	st := sv.Type()
	for i := 0; i < st.NumField(); i++ {
		field := st.Field(i)
		fv := sv.Field(i)

		if field.Anonymous && fv.Kind() == reflect.Struct {
			bindStruct(fv, query, param, errs)
			continue
		}
		if !fv.CanSet() {
			continue
		}

		if name := field.Tag.Get("param"); name != "" {
			if value := param(name); value != "" {
				fv.SetString(value)
			}
			continue
		}

		name := field.Tag.Get("query")
		if name == "" {
			continue
		}
		values := append(query[name], query[name+"[]"]...)
		if len(values) == 0 {
			continue
		}

		if err := setField(fv, values); err != nil {
			*errs = append(*errs, apierrors.ValidationError{Field: name, Message: err.Error()})
		}
	}
}

func setField(fv reflect.Value, values []string) error {
	switch fv.Kind() {
	case reflect.Slice:
		if fv.Type().Elem().Kind() != reflect.String {
			return fmt.Errorf("unsupported list type %s", fv.Type())
		}
		out := make([]string, 0, len(values))
		for _, value := range values {
			if value = strings.TrimSpace(value); value != "" {
				out = append(out, value)
			}
		}
		fv.Set(reflect.ValueOf(out))
	case reflect.String:
		fv.SetString(strings.TrimSpace(values[0]))
	case reflect.Int:
		n, err := strconv.Atoi(strings.TrimSpace(values[0]))
		if err != nil {
			return fmt.Errorf("must be a valid integer")
		}
		fv.SetInt(int64(n))
	case reflect.Bool:
		b, err := strconv.ParseBool(strings.TrimSpace(values[0]))
		if err != nil {
			return fmt.Errorf("must be true or false")
		}
		fv.SetBool(b)
	default:
		return fmt.Errorf("unsupported type %s", fv.Type())
	}
	return nil
}

// formatValidationError formats validation error messages
func formatValidationError(err validator.FieldError) string {
	field := err.Field()
	param := err.Param()

	switch err.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, param)
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, param)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(param, " ", ", "))
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, param)
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", field, param)
	default:
		return fmt.Sprintf("%s failed %s validation", field, err.Tag())
	}
}
