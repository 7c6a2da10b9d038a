package sanitizer

import "strings"

// NormalizeEmail lowercases an address and collapses repeated dots in its local part.
// Input without exactly one "@" is returned trimmed and lowercased.
func NormalizeEmail(email string) string {
	email = strings.ToLower(strings.TrimSpace(email))

	local, domain, ok := strings.Cut(email, "@")
	if !ok || strings.Contains(domain, "@") {
		return email
	}

	local = dotRegex.ReplaceAllString(local, ".")
	local = strings.Trim(local, ".")

	return local + "@" + domain
}

// MaskEmail keeps the first character of the local part and the domain,
// replacing the rest with asterisks. Used before addresses reach logs.
func MaskEmail(email string) string {
	email = strings.TrimSpace(email)

	local, domain, ok := strings.Cut(email, "@")
	if !ok || strings.Contains(domain, "@") || local == "" {
		return email
	}

	runes := []rune(local)
	if len(runes) == 1 {
		return "*@" + domain
	}

	return string(runes[0]) + strings.Repeat("*", len(runes)-1) + "@" + domain
}
