package shared

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/phrazzld/books-api/internal/domain"
	"github.com/phrazzld/books-api/internal/schema"
)

var (
	// ErrMalformedJSON is returned when the request body is not valid JSON.
	ErrMalformedJSON = errors.New("malformed JSON request body")

	// ErrRequestTooLarge is returned when the request body exceeds the size limit.
	ErrRequestTooLarge = errors.New("request body too large")
)

// DecodePayload decodes the request body into a schema payload. Numbers are
// kept as json.Number so the validator can tell integers from fractions.
//
// A syntactically valid body that is not a JSON object yields a
// *domain.ValidationError.
func DecodePayload(r *http.Request) (schema.Payload, error) {
	if r.Body == nil {
		return nil, fmt.Errorf("%w: empty body", ErrMalformedJSON)
	}

	data, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, classifyDecodeError(err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("%w: empty body", ErrMalformedJSON)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, classifyDecodeError(err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		if err != nil {
			return nil, classifyDecodeError(err)
		}
		return nil, fmt.Errorf("%w: trailing data after JSON value", ErrMalformedJSON)
	}

	obj, ok := v.(map[string]any)
	if !ok {
		return nil, domain.NewValidationError([]string{schema.NotObjectMessage})
	}
	return schema.Payload(obj), nil
}

func classifyDecodeError(err error) error {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		return fmt.Errorf("%w: limit is %d bytes", ErrRequestTooLarge, maxBytesErr.Limit)
	}
	return fmt.Errorf("%w: %v", ErrMalformedJSON, err)
}
