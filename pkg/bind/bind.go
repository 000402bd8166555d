// Package bind decodes and validates an HTTP request body into a struct.
package bind

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"

	"github.com/masudmolla6/bistro-restaurant-server/config"
	"github.com/masudmolla6/bistro-restaurant-server/pkg/validate"
)

var (
	ErrEmptyBody    = errors.New("request body is required")
	ErrTrailingData = errors.New("request body must hold a single JSON value")
)

// FieldErrors maps a JSON field name to the first rule it broke.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	keys := make([]string, 0, len(fe))
	for k := range fe {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + ": " + fe[k]
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// JSON decodes one JSON value from r.Body into dest, capped at
// MAX_BODY_BYTES, then validates it. A FieldErrors result means the body was
// well formed but broke a rule; any other error means it could not be read.
func JSON(r *http.Request, dest any) error {
	if r.Body == nil || r.Body == http.NoBody {
		return ErrEmptyBody
	}
	r.Body = http.MaxBytesReader(nil, r.Body, config.MaxBodyBytes())

	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dest); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.Is(err, io.EOF):
			return ErrEmptyBody
		case errors.As(err, &maxErr):
			return fmt.Errorf("request body too large (max %d bytes)", maxErr.Limit)
		default:
			return fmt.Errorf("invalid JSON: %w", err)
		}
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return ErrTrailingData
	}

	if errs := validate.Struct(dest); validate.HasErrors(errs) {
		return FieldErrors(errs)
	}
	return nil
}
