// Package signature normalizes raw transaction descriptions into canonical
// merchant keys. The extraction is heuristic: two descriptions from the same
// merchant chain should collapse to the same or an overlapping-prefix
// signature with high probability, but there is no uniqueness guarantee
// across merchants.
package signature

import (
	"regexp"
	"strings"
)

// MinLength is the shortest signature the rule-learning path will accept.
// Anything shorter carries too little merchant information to key a rule.
const MinLength = 2

// MaxWords caps the signature at its leading words; trailing tokens on card
// descriptions are usually location noise.
const MaxWords = 4

// Bank boilerplate phrases that carry no merchant information. Single-word
// entries are matched on word boundaries so they cannot mangle merchant
// names that merely contain them.
var boilerplate = []string{
	"purchase authorized on",
	"recurring payment authorized on",
	"debit card purchase",
	"pos purchase",
	"pos debit",
	"checkcard",
	"check card",
	"card purchase",
	"visa",
	"mastercard",
	"american express",
	"amex",
	"discover",
}

var (
	boilerplateRe   *regexp.Regexp
	longDigitsRe    = regexp.MustCompile(`\d{4,}`)
	storeNumberRe   = regexp.MustCompile(`(#\s*\d+|\bstore\s+\d+)`)
	dateTokenRe     = regexp.MustCompile(`\b\d{1,2}/\d{1,2}(/\d{2,4})?\b`)
	trailingDigitRe = regexp.MustCompile(`\s\d+\s*$`)
	nonLetterRe     = regexp.MustCompile(`[^a-z\s]`)
	whitespaceRe    = regexp.MustCompile(`\s+`)
)

func init() {
	parts := make([]string, len(boilerplate))
	for i, p := range boilerplate {
		parts[i] = `\b` + strings.ReplaceAll(regexp.QuoteMeta(p), " ", `\s+`) + `\b`
	}
	boilerplateRe = regexp.MustCompile(strings.Join(parts, "|"))
}

// stateCodes covers USPS two-letter state abbreviations plus DC. Card
// descriptions commonly end with "CITY ST".
var stateCodes = map[string]bool{
	"al": true, "ak": true, "az": true, "ar": true, "ca": true, "co": true,
	"ct": true, "de": true, "dc": true, "fl": true, "ga": true, "hi": true,
	"id": true, "il": true, "in": true, "ia": true, "ks": true, "ky": true,
	"la": true, "me": true, "md": true, "ma": true, "mi": true, "mn": true,
	"ms": true, "mo": true, "mt": true, "ne": true, "nv": true, "nh": true,
	"nj": true, "nm": true, "ny": true, "nc": true, "nd": true, "oh": true,
	"ok": true, "or": true, "pa": true, "ri": true, "sc": true, "sd": true,
	"tn": true, "tx": true, "ut": true, "vt": true, "va": true, "wa": true,
	"wv": true, "wi": true, "wy": true,
}

// Extract normalizes a raw transaction description into a lowercase,
// order-sensitive merchant key of at most MaxWords words.
func Extract(description string) string {
	s := strings.ToLower(description)

	s = boilerplateRe.ReplaceAllString(s, " ")
	s = storeNumberRe.ReplaceAllString(s, " ")
	s = dateTokenRe.ReplaceAllString(s, " ")
	s = longDigitsRe.ReplaceAllString(s, " ")
	s = trailingDigitRe.ReplaceAllString(s, " ")

	s = nonLetterRe.ReplaceAllString(s, "")
	s = strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))

	words := strings.Fields(s)

	// Trailing "CITY ST" pair: drop the state code, and the city with it
	// when a merchant name remains in front.
	if n := len(words); n >= 2 && stateCodes[words[n-1]] {
		words = words[:n-1]
		if len(words) >= 2 {
			words = words[:len(words)-1]
		}
	}

	if len(words) > MaxWords {
		words = words[:MaxWords]
	}

	return strings.Join(words, " ")
}

// Usable reports whether a signature is long enough to key a learned rule.
func Usable(sig string) bool {
	return len(sig) >= MinLength
}
