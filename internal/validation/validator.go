// Marquee - Movie Recommendations and Trending Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package validation validates API request structs with go-playground/validator.
//
// A single validator instance is shared process-wide; it caches struct
// metadata and is safe for concurrent use. Field names in messages come
// from the struct's `query` tag (falling back to `json`), so errors name
// the parameter the client actually sent:
//
//	type recommendationsRequest struct {
//	    Title string `query:"title" validate:"required,movietitle"`
//	    K     int    `query:"k" validate:"gte=0"`
//	}
//
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    apiErr := verr.ToAPIError()
//	    ...
//	}
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// MaxTitleLength bounds the movietitle validator.
const MaxTitleLength = 500

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// ValidationError is a single failed field.
type ValidationError struct {
	field   string
	tag     string
	param   string
	value   any
	message string
}

func (e *ValidationError) Field() string { return e.field }
func (e *ValidationError) Tag() string   { return e.tag }
func (e *ValidationError) Param() string { return e.param }
func (e *ValidationError) Value() any    { return e.value }
func (e *ValidationError) Error() string { return e.message }

// RequestValidationError collects every failed field of one request.
type RequestValidationError struct {
	errors []ValidationError
}

// Errors returns the individual field errors.
func (ve *RequestValidationError) Errors() []ValidationError {
	return ve.errors
}

func (ve *RequestValidationError) Error() string {
	if len(ve.errors) == 0 {
		return "validation failed"
	}
	messages := make([]string, len(ve.errors))
	for i := range ve.errors {
		messages[i] = ve.errors[i].message
	}
	return strings.Join(messages, "; ")
}

// APIError mirrors the API error body without importing the api package.
type APIError struct {
	Code    string
	Message string
	Details map[string]any
}

// ToAPIError converts the failures into a VALIDATION_ERROR error body.
func (ve *RequestValidationError) ToAPIError() *APIError {
	const code = "VALIDATION_ERROR"

	switch len(ve.errors) {
	case 0:
		return &APIError{Code: code, Message: "Validation failed"}
	case 1:
		err := ve.errors[0]
		return &APIError{
			Code:    code,
			Message: err.message,
			Details: map[string]any{"field": err.field, "tag": err.tag},
		}
	}

	fields := make([]map[string]any, len(ve.errors))
	for i, err := range ve.errors {
		fields[i] = map[string]any{"field": err.field, "tag": err.tag, "message": err.message}
	}
	return &APIError{
		Code:    code,
		Message: ve.Error(),
		Details: map[string]any{"fields": fields},
	}
}

// GetValidator returns the shared validator.
func GetValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(fieldName)

		// Registration only fails for an empty tag or nil func.
		_ = validate.RegisterValidation("movietitle", validateMovieTitle) //nolint:errcheck
	})
	return validate
}

func fieldName(f reflect.StructField) string {
	for _, tag := range []string{"query", "json"} {
		name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
		if name != "" && name != "-" {
			return name
		}
	}
	return f.Name
}

// validateMovieTitle accepts printable titles up to MaxTitleLength runes.
// Catalog lookups are exact, so no normalisation happens here.
func validateMovieTitle(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if len([]rune(s)) > MaxTitleLength {
		return false
	}
	for _, r := range s {
		if unicode.IsControl(r) {
			return false
		}
	}
	return true
}

// ValidateStruct validates s and returns nil or the collected failures.
func ValidateStruct(s any) *RequestValidationError {
	err := GetValidator().Struct(s)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return &RequestValidationError{errors: []ValidationError{{
			field:   "unknown",
			tag:     "unknown",
			message: err.Error(),
		}}}
	}

	fieldErrors := make([]ValidationError, len(validationErrs))
	for i, fe := range validationErrs {
		fieldErrors[i] = ValidationError{
			field:   fe.Field(),
			tag:     fe.Tag(),
			param:   fe.Param(),
			value:   fe.Value(),
			message: translateError(fe),
		}
	}
	return &RequestValidationError{errors: fieldErrors}
}

var errorMessageTemplates = map[string]string{
	"required":   "%s is required",
	"movietitle": "%s must be printable text of at most 500 characters",
}

var errorMessageWithParam = map[string]string{
	"oneof": "%s must be one of: %s",
	"gte":   "%s must be greater than or equal to %s",
	"lte":   "%s must be less than or equal to %s",
	"gt":    "%s must be greater than %s",
	"lt":    "%s must be less than %s",
}

func translateError(fe validator.FieldError) string {
	field, tag, param := fe.Field(), fe.Tag(), fe.Param()

	if template, ok := errorMessageTemplates[tag]; ok {
		return fmt.Sprintf(template, field)
	}
	if template, ok := errorMessageWithParam[tag]; ok {
		return fmt.Sprintf(template, field, param)
	}

	isString := fe.Kind() == reflect.String
	switch tag {
	case "min":
		if isString {
			return fmt.Sprintf("%s must be at least %s characters", field, param)
		}
		return fmt.Sprintf("%s must be at least %s", field, param)
	case "max":
		if isString {
			return fmt.Sprintf("%s must be at most %s characters", field, param)
		}
		return fmt.Sprintf("%s must be at most %s", field, param)
	default:
		return fmt.Sprintf("%s failed %s validation", field, tag)
	}
}
