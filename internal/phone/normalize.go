// Package phone extracts canonical WhatsApp numbers from free-text
// contact fields.
package phone

import (
	"regexp"
	"strings"
)

// MobilePrefix is the canonical Argentine international mobile prefix:
// country code 54 plus the mobile marker 9.
const MobilePrefix = "549"

// Contact cells hold anything humans type: one number, several numbers
// separated by slashes or newlines, area codes with or without the
// country code, or nothing usable at all. A candidate token is a maximal
// run of digits that may interleave spaces, dots, dashes or parentheses,
// the punctuation people put inside what they read as one number.
// Slashes, commas and newlines separate distinct numbers and never join
// two candidates.
var candidateRun = regexp.MustCompile(`\d(?:[\d \t.\-()]*\d)?`)

var nonDigit = regexp.MustCompile(`[^\d]`)

// Normalize extracts the first usable number from a raw contact cell and
// rewrites it to canonical 549-prefixed form, 13 digits total. It returns
// "" when the cell holds no extractable number. The function is pure:
// equal input always yields equal output.
//
// When a cell holds several valid numbers only the first one (by
// position) is used; the rest are dropped. That is deliberate: the
// padrón gives no way to rank contacts, so the scan short-circuits on
// the first survivor.
func Normalize(raw string) string {
	for _, token := range candidateRun.FindAllString(raw, -1) {
		num := nonDigit.ReplaceAllString(token, "")
		if len(num) < 9 {
			continue
		}
		switch {
		case strings.HasPrefix(num, MobilePrefix):
			return num
		case strings.HasPrefix(num, "54"):
			// Country code without the mobile marker: insert the 9.
			return MobilePrefix + num[2:]
		default:
			// Local number: keep the trailing ten digits and prepend
			// the full mobile prefix.
			return MobilePrefix + num[max(0, len(num)-10):]
		}
	}
	return ""
}
