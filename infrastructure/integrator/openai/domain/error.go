package openaidomain

import "fmt"

// APIError representa {"error": {"message": "...", "type": "...", "code": "..."}}
type APIError struct {
	StatusCode int
	Type       string
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("openai: http %d", e.StatusCode)
	}
	return fmt.Sprintf("openai: http %d %s: %s", e.StatusCode, e.Type, e.Message)
}
