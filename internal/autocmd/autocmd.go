// Package autocmd implements the two small name matchers the downstream
// script scanner depends on: recognizing an abbreviated "autocmd"/"au!"
// directive name, and recognizing an event list that should trigger
// filetype detection.
package autocmd

import "strings"

// MatchAutocmd reports whether name is a prefix of "autocmd" at least two
// characters long, optionally followed by a single trailing '!'
// (vim regex: au%[utocmd]!?).
func MatchAutocmd(name string) bool {
	const full = "autocmd"

	body := name
	if strings.HasSuffix(body, "!") {
		body = body[:len(body)-1]
	}

	if len(body) < 2 || len(body) > len(full) {
		return false
	}
	return body == full[:len(body)]
}

// MatchEvents reports whether list (a comma-separated, case-insensitive
// event name list) contains BufNewFile together with at least one of
// BufRead or BufReadPost. Entries longer than 15 characters are truncated
// before comparison, matching the reference implementation's fixed buffer.
func MatchEvents(list string) bool {
	const maxEventLen = 15

	var bufNewFile, bufRead, bufReadPost bool
	for _, part := range strings.Split(list, ",") {
		name := strings.ToLower(part)
		if len(name) > maxEventLen {
			name = name[:maxEventLen]
		}
		switch name {
		case "bufnewfile":
			bufNewFile = true
		case "bufread":
			bufRead = true
		case "bufreadpost":
			bufReadPost = true
		}
	}

	return bufNewFile && (bufRead || bufReadPost)
}
