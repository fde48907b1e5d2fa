package validators

import "regexp"

// DNS label: lowercase alphanumeric and hyphen, no leading/trailing
// hyphen, max 63 chars.
var subdomainRe = regexp.MustCompile(`^[a-z0-9]([a-z0-9-]{0,61}[a-z0-9])?$`)

// Reserved labels that must never be claimed by a tenant.
var reservedSubdomains = map[string]bool{
	"master": true,
	"www":    true,
	"api":    true,
	"admin":  true,
}

func IsSubdomainValid(sub string) bool {
	return subdomainRe.MatchString(sub)
}

func IsSubdomainReserved(sub string) bool {
	return reservedSubdomains[sub]
}
