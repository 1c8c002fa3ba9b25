// Package validation provides input normalization shared by the request
// payloads.
package validation

import (
	"regexp"
	"strings"
)

// MaxTopicNameLen is the longest a normalized topic name may be.
const MaxTopicNameLen = 50

var nonLetterRe = regexp.MustCompile(`[^a-z ]+`)

// NormalizeTopic canonicalizes a raw topic name: trim, lower-case, strip
// everything that is not a letter or space, collapse whitespace, then
// capitalize the first letter. An empty result means the input carried no
// letters and must be discarded by the caller.
func NormalizeTopic(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = nonLetterRe.ReplaceAllString(s, "")
	s = strings.Join(strings.Fields(s), " ")
	if s == "" {
		return ""
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// NormalizeTopics normalizes every name, dropping empties and duplicates
// while preserving first-seen order.
func NormalizeTopics(raw []string) []string {
	out := make([]string, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, r := range raw {
		name := NormalizeTopic(r)
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}
