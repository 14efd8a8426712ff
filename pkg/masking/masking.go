// Package masking derives redacted display forms of identity fields for
// third-party listings. The transforms are lossy by design and must never be
// applied to values used for equality or lookup.
package masking

import (
	"fmt"
	"strings"
	"unicode"
)

const marker = "***"

// Name keeps the first whitespace-delimited token verbatim and reduces every
// following token to its uppercased initial plus a period.
// "Ada King Lovelace" -> "Ada K. L."
func Name(name string) string {
	parts := strings.Fields(name)
	if len(parts) == 0 {
		return ""
	}
	out := make([]string, 0, len(parts))
	out = append(out, parts[0])
	for _, p := range parts[1:] {
		r := []rune(p)
		out = append(out, string(unicode.ToUpper(r[0]))+".")
	}
	return strings.Join(out, " ")
}

// Email redacts the local part and the first domain label, keeping everything
// after the first domain dot verbatim. "ada@example.com" -> "ad***@ex***.com".
// Input without both sides of an '@' is returned unchanged.
func Email(email string) string {
	local, domain, ok := strings.Cut(email, "@")
	if !ok || local == "" || domain == "" {
		return email
	}
	label, ext, hasDot := strings.Cut(domain, ".")
	masked := keepPrefix(local) + "@" + keepPrefix(label)
	if hasDot {
		masked += "." + ext
	}
	return masked
}

// Telephone always reveals the area code and the last 4 subscriber digits,
// replacing the middle with a fixed-width run: "(11) *****-5678".
func Telephone(number, areaCode int) string {
	digits := fmt.Sprintf("%d", number)
	last := digits
	if len(digits) > 4 {
		last = digits[len(digits)-4:]
	}
	return fmt.Sprintf("(%d) *****-%s", areaCode, last)
}

// keepPrefix keeps 2 characters when there are more than 2, otherwise 1.
func keepPrefix(s string) string {
	r := []rune(s)
	keep := 1
	if len(r) > 2 {
		keep = 2
	}
	if len(r) < keep {
		keep = len(r)
	}
	return string(r[:keep]) + marker
}
