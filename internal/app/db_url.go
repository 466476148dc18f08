package app

import (
	"net/url"
	"strings"
)

const preparedBinaryParam = "disable_prepared_binary_result"

// normalizeDBURL turns off binary results for unnamed prepared statements,
// which pooled postgres proxies cannot route. Explicit settings win.
func normalizeDBURL(raw string, disablePreparedBinaryResult bool) string {
	if !disablePreparedBinaryResult {
		return raw
	}

	trimmed := strings.TrimSpace(raw)
	if strings.Contains(trimmed, preparedBinaryParam) {
		return raw
	}

	if !strings.Contains(trimmed, "://") {
		// key=value DSN
		return trimmed + " " + preparedBinaryParam + "=yes"
	}

	parsed, err := url.Parse(trimmed)
	if err != nil || parsed == nil {
		return raw
	}

	query := parsed.Query()
	query.Set(preparedBinaryParam, "yes")
	parsed.RawQuery = query.Encode()

	return parsed.String()
}

func dbNameFromURL(raw string) string {
	trimmed := strings.TrimSpace(raw)
	parsed, err := url.Parse(trimmed)
	if err == nil && parsed != nil && parsed.Scheme != "" {
		if name := strings.TrimSpace(strings.TrimPrefix(parsed.Path, "/")); name != "" {
			return name
		}
	}

	for _, token := range strings.Fields(trimmed) {
		value, ok := strings.CutPrefix(token, "dbname=")
		if !ok {
			continue
		}
		if name := strings.Trim(strings.TrimSpace(value), `"'`); name != "" {
			return name
		}
	}

	return ""
}
