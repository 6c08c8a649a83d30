package service

import (
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"

	"speedrun/app_error"
)

const maxNotesLength = 500

var videoHosts = []string{"youtube.com", "youtu.be"}

// ValidateEvidenceUrl accepts absolute http(s) links to youtube.com, any of
// its subdomains, or youtu.be.
func ValidateEvidenceUrl(raw string) error {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Hostname() == "" {
		return fmt.Errorf("%w: evidence url %q is not a valid URL", app_error.ErrInvalidFormat, raw)
	}
	host := strings.ToLower(u.Hostname())
	for _, videoHost := range videoHosts {
		if host == videoHost || strings.HasSuffix(host, "."+videoHost) {
			return nil
		}
	}
	return fmt.Errorf("%w: evidence must be a YouTube link", app_error.ErrInvalidFormat)
}

func validateNotes(notes string) error {
	if utf8.RuneCountInString(notes) > maxNotesLength {
		return fmt.Errorf("%w: notes must be at most %d characters", app_error.ErrInvalidFormat, maxNotesLength)
	}
	return nil
}
