package service

import (
	"regexp"
	"strings"

	domain "github.com/Dykstra-Hamel/DH-portal-sub000/internal/notify/domain"
)

// addressRe is a permissive shape check: local part, "@", domain with a dot.
// No DNS/MX verification happens here.
var addressRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidateRecipients partitions addresses into valid and invalid sets.
// Addresses are trimmed first; order and duplicates are preserved (the
// caller dedupes if it wants to). Empty input yields two empty lists.
func ValidateRecipients(addresses []string) domain.RecipientSet {
	rs := domain.RecipientSet{
		Valid:   make([]string, 0, len(addresses)),
		Invalid: []string{},
	}
	for _, a := range addresses {
		a = strings.TrimSpace(a)
		if addressRe.MatchString(a) {
			rs.Valid = append(rs.Valid, a)
		} else {
			rs.Invalid = append(rs.Invalid, a)
		}
	}
	return rs
}
