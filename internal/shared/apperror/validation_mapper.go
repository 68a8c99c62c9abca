package apperror

import (
	"errors"
	"net/http"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var camelBoundary = regexp.MustCompile(`([a-z0-9])([A-Z])`)

// formatFieldName turns a JSON field name (clockInTime, zip_code) into "Clock In Time".
func formatFieldName(s string) string {
	s = camelBoundary.ReplaceAllString(s, "$1 $2")
	s = strings.ReplaceAll(s, "_", " ")
	return cases.Title(language.English).String(s)
}

func MapValidationError(err error) error {
	var errs validator.ValidationErrors
	if errors.As(err, &errs) && len(errs) > 0 {
		e := errs[0]
		field := formatFieldName(e.Field())

		var mapped *AppError
		switch e.Tag() {
		case "required":
			mapped = RequiredField(field)
		case "hhmm":
			mapped = New(CodeInvalidInput, field+" must be in HH:mm format", http.StatusBadRequest)
		case "email":
			mapped = New(CodeInvalidInput, field+" must be a valid email address", http.StatusBadRequest)
		default:
			mapped = InvalidField(field)
		}
		mapped.Details = validationDetails(errs)
		return mapped
	}

	return Wrap(err, CodeInvalidInput, "Invalid input", http.StatusBadRequest)
}

func validationDetails(errs validator.ValidationErrors) []map[string]string {
	out := make([]map[string]string, 0, len(errs))
	for _, e := range errs {
		out = append(out, map[string]string{
			"field": e.Field(),
			"rule":  e.Tag(),
		})
	}
	return out
}
