package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrAssetNotFound is returned when a theme asset key does not exist
	ErrAssetNotFound = errors.New("asset not found")
	// ErrThemeNotFound is returned when the shop has no main theme
	ErrThemeNotFound = errors.New("no main theme found")
	// ErrProductNotFound is returned when a product id does not exist
	ErrProductNotFound = errors.New("product not found")
	// ErrShopRequired is returned when a request carries no valid shop domain
	ErrShopRequired = errors.New("shop parameter is required")
	// ErrConfigurationExists is returned when a configuration for the shop was created concurrently
	ErrConfigurationExists = errors.New("shop configuration already exists")
	// ErrNoAccessToken is returned when no offline session or fallback token exists for a shop
	ErrNoAccessToken = errors.New("no access token for shop")
	// ErrUnauthorized is returned when an admin request carries no valid session token
	ErrUnauthorized = errors.New("unauthorized")
	// ErrInvalidOAuthState is returned when an OAuth callback state is unknown or belongs to another shop
	ErrInvalidOAuthState = errors.New("invalid oauth state")
)

// themePermissionMarkers identify the platform's refusal to read themes
var themePermissionMarkers = []string{"read_themes", "Access denied for themes"}

// IsThemePermissionError reports whether err was caused by a missing themes read scope
func IsThemePermissionError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	for _, marker := range themePermissionMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

// UserError is a GraphQL mutation user error
type UserError struct {
	Field   []string `json:"field"`
	Message string   `json:"message"`
}

// UserErrorsError wraps user errors returned by an Admin API mutation
type UserErrorsError struct {
	Operation string
	Errors    []UserError
}

func (e *UserErrorsError) Error() string {
	msgs := make([]string, 0, len(e.Errors))
	for _, ue := range e.Errors {
		msgs = append(msgs, ue.Message)
	}
	return fmt.Sprintf("%s: %s", e.Operation, strings.Join(msgs, ", "))
}

// ValidationError is returned when request input is invalid
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}
