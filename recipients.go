package sitrep

import (
	"encoding/json"
	"strings"
)

// ParseRecipients turns the RECIPIENT_EMAIL value into an address list.
//
// A value starting with "[" is decoded as a JSON array of strings; blank
// entries are dropped. Any other value, or an array that fails to decode, is
// taken as a single literal recipient.
func ParseRecipients(raw string) []string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}

	if strings.HasPrefix(s, "[") {
		var list []string
		if err := json.Unmarshal([]byte(s), &list); err == nil {
			out := make([]string, 0, len(list))
			for _, addr := range list {
				if addr = strings.TrimSpace(addr); addr != "" {
					out = append(out, addr)
				}
			}
			return out
		}
	}

	return []string{s}
}
