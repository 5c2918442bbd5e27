//-------------------------------------------------------------------------
//
// pgEdge Security Data Store
//
// Portions copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrMalformedInput is returned by DecodeJSON when the input is not a
// single JSON object matching the target.
var ErrMalformedInput = errors.New("malformed input")

const unknownFieldPrefix = "json: unknown field "

// DecodeJSON decodes one JSON object from r into input. A field that
// input does not declare is reported as an *Error naming it; any other
// decoding failure matches ErrMalformedInput.
func DecodeJSON(r io.Reader, input any) error {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(input); err != nil {
		if name, ok := unknownField(err); ok {
			return &Error{
				Operation: "decode_input",
				Fields:    map[string][]string{name: {"unknown field"}},
			}
		}
		return fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}
	if dec.More() {
		return fmt.Errorf("%w: trailing data after JSON object", ErrMalformedInput)
	}
	return nil
}

func unknownField(err error) (string, bool) {
	quoted, ok := strings.CutPrefix(err.Error(), unknownFieldPrefix)
	if !ok {
		return "", false
	}
	name, uerr := strconv.Unquote(quoted)
	if uerr != nil {
		return quoted, true
	}
	return name, true
}
