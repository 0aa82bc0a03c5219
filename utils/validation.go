package utils

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// DateLayout is the calendar-date form accepted alongside RFC 3339.
const DateLayout = "2006-01-02"

// ReviewIssues lists the issue tags a review may carry.
var ReviewIssues = []string{
	"Charger not working",
	"Wrong location",
	"Price incorrect",
	"Poor maintenance",
	"Access issues",
	"Other",
}

// GetValidator returns the shared validator with json field names and custom rules.
func GetValidator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return fld.Name
			}
			return name
		})
		_ = v.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
			_, err := ParseDate(fl.Field().String())
			return err == nil
		})
		_ = v.RegisterValidation("review_issue", func(fl validator.FieldLevel) bool {
			issue := fl.Field().String()
			for _, allowed := range ReviewIssues {
				if issue == allowed {
					return true
				}
			}
			return false
		})
		validate = v
	})
	return validate
}

// ParseDate accepts "YYYY-MM-DD" or an RFC 3339 timestamp.
func ParseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(DateLayout, raw); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", raw)
	}
	return t.UTC(), nil
}

// ValidateStruct runs struct tag validation and reports every violation at once.
func ValidateStruct(s any) error {
	err := GetValidator().Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return NewValidationError("body", err.Error())
	}

	fields := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, FieldError{
			Field:   fieldPath(fe.Namespace()),
			Message: describe(fe),
		})
	}
	return &ValidationError{Fields: fields}
}

// BindAndValidate decodes the JSON body into dst and validates it.
func BindAndValidate(c *gin.Context, dst any) error {
	if err := c.ShouldBindJSON(dst); err != nil {
		return NewValidationError("body", "invalid request body: "+err.Error())
	}
	return ValidateStruct(dst)
}

// fieldPath drops the root struct name from a validator namespace.
func fieldPath(namespace string) string {
	if i := strings.Index(namespace, "."); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min", "gte":
		if fe.Kind() == reflect.String {
			return "must be at least " + fe.Param() + " characters"
		}
		return "must be at least " + fe.Param()
	case "max", "lte":
		if fe.Kind() == reflect.String {
			return "must be at most " + fe.Param() + " characters"
		}
		return "must be at most " + fe.Param()
	case "gt":
		return "must be greater than " + fe.Param()
	case "email":
		return "must be a valid email address"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "isodate":
		return "must be an ISO-8601 date"
	case "review_issue":
		return "must be one of: " + strings.Join(ReviewIssues, ", ")
	case "url":
		return "must be a valid URL"
	case "latitude", "longitude":
		return "must be a valid " + fe.Tag()
	default:
		return "failed " + fe.Tag() + " validation"
	}
}
