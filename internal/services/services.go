// package services holds the HTTP clients for the rental backend
package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/Sam-eff/car-rental-site/internal/shared"
)

// APIError is a non-2xx response from the backend.
//
// Message is the backend's own explanation when it sent one.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%v (status %d): %s", shared.ErrAPIRequest, e.StatusCode, e.Message)
}

func (e *APIError) Unwrap() error {
	return shared.ErrAPIRequest
}

// ErrorMessage returns the backend's message carried by err, or "" when err is not an [APIError].
func ErrorMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return ""
}

// StatusCode returns the HTTP status carried by err, or 0 when err is not an [APIError].
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

func newAPIError(resp *APIResponse) *APIError {
	return &APIError{StatusCode: resp.StatusCode, Message: errorMessage(resp)}
}

// errorMessage extracts a readable message from an error body.
//
// Checks "error" then "detail"; a map of field errors becomes "field: message; ...".
func errorMessage(resp *APIResponse) string {
	if obj, ok := resp.JSONData.(map[string]any); ok {
		for _, key := range []string{"error", "detail", "message"} {
			if s, ok := obj[key].(string); ok && s != "" {
				return s
			}
		}

		fields := make([]string, 0, len(obj))
		for k := range obj {
			fields = append(fields, k)
		}
		sort.Strings(fields)

		parts := []string{}
		for _, field := range fields {
			switch v := obj[field].(type) {
			case string:
				parts = append(parts, field+": "+v)
			case []any:
				msgs := []string{}
				for _, m := range v {
					if s, ok := m.(string); ok {
						msgs = append(msgs, s)
					}
				}
				if len(msgs) > 0 {
					parts = append(parts, field+": "+strings.Join(msgs, " "))
				}
			}
		}
		if len(parts) > 0 {
			return strings.Join(parts, "; ")
		}
	}

	if body := strings.TrimSpace(string(resp.Body)); body != "" && !resp.IsJSON {
		return body
	}
	return http.StatusText(resp.StatusCode)
}

// page is the paginated envelope used by list endpoints.
type page[T any] struct {
	Count   int `json:"count"`
	Results []T `json:"results"`
}

// decodeList decodes either a bare JSON array or a {"results": [...]} page.
func decodeList[T any](body []byte) ([]T, error) {
	trimmed := strings.TrimSpace(string(body))

	if strings.HasPrefix(trimmed, "[") {
		items := []T{}
		if err := json.Unmarshal(body, &items); err != nil {
			return nil, fmt.Errorf("failed to decode list: %w", err)
		}
		return items, nil
	}

	var p page[T]
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, fmt.Errorf("failed to decode page: %w", err)
	}
	if p.Results == nil {
		p.Results = []T{}
	}
	return p.Results, nil
}
