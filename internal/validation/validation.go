//-------------------------------------------------------------------------
//
// pgEdge Security Data Store
//
// Portions copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package validation checks operation inputs against the rules carried in
// their validate struct tags before anything reaches storage.
package validation

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/pgEdge/pgedge-secdata/internal/model"
)

// DateLayout is the only accepted date format.
const DateLayout = "2006-01-02"

// ErrInvalidInput is matched by every *Error.
var ErrInvalidInput = errors.New("invalid input")

// Error reports the rule violations of one operation, keyed by field name.
type Error struct {
	Operation string
	Fields    map[string][]string
}

func (e *Error) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s: %s", name, strings.Join(e.Fields[name], ", ")))
	}
	return fmt.Sprintf("%s: invalid input: %s", e.Operation, strings.Join(parts, "; "))
}

// Is matches ErrInvalidInput.
func (e *Error) Is(target error) bool {
	return target == ErrInvalidInput
}

// Validator validates operation inputs. It is safe for concurrent use.
type Validator struct {
	v *validator.Validate
}

// New returns a Validator with the date, numeric and enum checks registered.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their json names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("date_format", validateDateFormat)
	_ = v.RegisterValidation("numeric_format", validateNumericFormat)
	_ = v.RegisterValidation("party_type", validatePartyType)
	_ = v.RegisterValidation("security_id_type", validateSecurityIDType)

	return &Validator{v: v}
}

// Validate checks input against its rules. It returns nil or an *Error.
func (val *Validator) Validate(operation string, input any) error {
	err := val.v.Struct(input)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%s: %w", operation, err)
	}

	out := &Error{Operation: operation, Fields: make(map[string][]string)}
	for _, fe := range verrs {
		out.Fields[fe.Field()] = append(out.Fields[fe.Field()], message(fe))
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "required field"
	case "min":
		return "empty values not allowed"
	case "max":
		return fmt.Sprintf("max length is %s", fe.Param())
	case "oneof", "party_type", "security_id_type":
		return fmt.Sprintf("unallowed value %v", fe.Value())
	case "date_format":
		return "must be a date in YYYY-MM-DD format"
	case "numeric_format":
		return "must be a number"
	}
	return fmt.Sprintf("failed %s check", fe.Tag())
}

// ParseDate parses a YYYY-MM-DD date.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// ParseNumber parses numeric text. Surrounding spaces are ignored and
// infinities and NaN are rejected.
func ParseNumber(s string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, fmt.Errorf("not a finite number: %q", s)
	}
	return f, nil
}

func validateDateFormat(fl validator.FieldLevel) bool {
	_, err := ParseDate(fl.Field().String())
	return err == nil
}

func validateNumericFormat(fl validator.FieldLevel) bool {
	_, err := ParseNumber(fl.Field().String())
	return err == nil
}

func validatePartyType(fl validator.FieldLevel) bool {
	return model.PartyType(fl.Field().String()).Valid()
}

func validateSecurityIDType(fl validator.FieldLevel) bool {
	return model.IDType(fl.Field().String()).Valid()
}
