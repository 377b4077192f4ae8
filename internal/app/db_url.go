package app

import (
	"net/url"
	"strings"
)

// normalizeDBURL opts the connection out of prepared binary results unless
// the URL already takes a position. The importer only ever feeds URL-form
// DB_URL values, so anything unparseable passes through untouched.
func normalizeDBURL(raw string, disablePreparedBinaryResult bool) string {
	if !disablePreparedBinaryResult {
		return raw
	}

	parsed, err := url.Parse(raw)
	if err != nil || parsed == nil {
		return raw
	}

	query := parsed.Query()
	if query.Get("disable_prepared_binary_result") == "" {
		query.Set("disable_prepared_binary_result", "yes")
		parsed.RawQuery = query.Encode()
	}

	return parsed.String()
}

// dbNameFromURL pulls the database name out of a URL-form DSN for span
// attribution on the otelsql wrapper.
func dbNameFromURL(raw string) string {
	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || parsed == nil || parsed.Scheme == "" {
		return ""
	}

	return strings.TrimSpace(strings.TrimPrefix(parsed.Path, "/"))
}
