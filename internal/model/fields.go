//-------------------------------------------------------------------------
//
// pgEdge Security Data Store
//
// Portions copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package model

import (
	"reflect"
	"strings"
)

// Field is one supplied column value. Value is a string as received from
// the caller, or a time.Time for service-stamped timestamps.
type Field struct {
	Column string
	Value  any
}

// Fields returns the supplied (non-nil) fields of an input struct, named
// by their json tags, in declaration order.
func Fields(input any) []Field {
	v := reflect.ValueOf(input)
	if v.Kind() == reflect.Pointer {
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil
	}

	t := v.Type()
	fields := make([]Field, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		name, _, _ := strings.Cut(t.Field(i).Tag.Get("json"), ",")
		if name == "" || name == "-" {
			continue
		}
		fv := v.Field(i)
		if fv.Kind() != reflect.Pointer || fv.IsNil() {
			continue
		}
		fields = append(fields, Field{Column: name, Value: fv.Elem().Interface()})
	}
	return fields
}

// Lookup returns the value of the named field.
func Lookup(fields []Field, column string) (any, bool) {
	for _, f := range fields {
		if f.Column == column {
			return f.Value, true
		}
	}
	return nil, false
}

// Str returns a pointer to s, for building inputs in code.
func Str(s string) *string {
	return &s
}
