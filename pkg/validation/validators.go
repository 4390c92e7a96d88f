// Package validation provides format checks for Graph API identifiers and settings.
// The checks are advisory: the client only enforces them on its own configuration.
package validation

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
)

// Regular expressions for validating Graph data formats
var (
	// versionRegex matches Graph API versions such as v2.9 or v17.0
	versionRegex = regexp.MustCompile(`^v([1-9]\d*)\.(0|[1-9]\d*)$`)

	// localeRegex matches Facebook locale codes such as en_US or es_LA
	localeRegex = regexp.MustCompile(`^[a-z]{2}_[A-Z]{2}$`)

	// objectIDRegex matches numeric node ids and compound ids like {page-id}_{post-id}
	objectIDRegex = regexp.MustCompile(`^\d+(_\d+)?$`)
)

// IsValidVersion checks if a string is a Graph API version segment.
func IsValidVersion(s string) bool {
	return versionRegex.MatchString(s)
}

// IsValidLocale checks if a string is a Facebook locale code.
func IsValidLocale(s string) bool {
	return localeRegex.MatchString(s)
}

// IsValidObjectID checks if a string looks like a numeric Graph node id.
// Aliases such as "me" are valid path segments but not object ids.
func IsValidObjectID(s string) bool {
	return objectIDRegex.MatchString(s)
}

// IsAbsoluteURL reports whether s parses as a URL with a scheme and host.
func IsAbsoluteURL(s string) bool {
	u, err := url.Parse(s)
	return err == nil && u.Scheme != "" && u.Host != ""
}

// ValidateRedirectURI checks that a redirect URI is absolute and carries no fragment.
func ValidateRedirectURI(s string) error {
	if s == "" {
		return errors.New("redirect URI is empty")
	}

	u, err := url.Parse(s)
	if err != nil {
		return fmt.Errorf("redirect URI is malformed: %w", err)
	}

	var errs []error
	if u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("redirect URI must be absolute: %s", s))
	}
	if u.Fragment != "" {
		errs = append(errs, fmt.Errorf("redirect URI must not contain a fragment: %s", s))
	}

	if len(errs) > 0 {
		return fmt.Errorf("redirect URI validation failed: %w", errors.Join(errs...))
	}
	return nil
}
