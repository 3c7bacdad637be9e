package notion

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var trailingHexID = regexp.MustCompile(`([0-9a-fA-F]{32})$`)

// NormalizeID accepts a dashed UUID, 32 hex characters, or a notion.so URL
// and returns the dashed lowercase form.
func NormalizeID(s string) (string, error) {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return "", fmt.Errorf("empty notion id")
	}

	if strings.Contains(raw, "://") || strings.HasPrefix(raw, "notion.so/") || strings.HasPrefix(raw, "www.notion.so/") {
		if !strings.Contains(raw, "://") {
			raw = "https://" + raw
		}
		u, err := url.Parse(raw)
		if err != nil {
			return "", fmt.Errorf("invalid notion url %q: %w", s, err)
		}
		segment := u.Path
		if i := strings.LastIndex(segment, "/"); i >= 0 {
			segment = segment[i+1:]
		}
		m := trailingHexID.FindStringSubmatch(segment)
		if m == nil {
			return "", fmt.Errorf("no notion id in url %q", s)
		}
		raw = m[1]
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid notion id %q: %w", s, err)
	}
	return id.String(), nil
}
