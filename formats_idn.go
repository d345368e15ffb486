package jsonschema

import (
	"strings"

	"golang.org/x/net/idna"
	"golang.org/x/text/unicode/bidi"
)

// idnProfile applies UTS-46 processing (case folding, normalization,
// CONTEXTJ/CONTEXTO checks, IDNA2008 DISALLOWED codepoints) the way a
// conforming idn-hostname/idn-email checker must, per RFC 5891.
var idnProfile = idna.New(
	idna.ValidateLabels(true),
	idna.VerifyDNSLength(true),
	idna.BidiRule(),
	idna.StrictDomainName(false),
)

// IsIDNHostname tells whether given string is a valid internationalized
// hostname, accepting both ASCII and non-ASCII labels. The plain Formats
// entry for "hostname" rejects anything outside ASCII; this widens that
// check with UTS-46 validation instead of a hand-rolled Unicode table.
func IsIDNHostname(v interface{}) bool {
	s, ok := v.(string)
	if !ok {
		return true
	}
	s = strings.TrimSuffix(s, ".")
	if s == "" {
		return false
	}
	_, err := idnProfile.ToASCII(s)
	return err == nil
}

// IsIDNEmail tells whether given string is a valid email address whose
// domain part may be internationalized. The local part is checked only for
// length (at most 64 bytes) and the bidi rule; IsEmail's ASCII rules are not
// applied to it. The domain part is checked with idna instead of requiring
// ASCII.
func IsIDNEmail(v interface{}) bool {
	s, ok := v.(string)
	if !ok {
		return true
	}
	if len(s) > 254 {
		return false
	}

	at := strings.LastIndexByte(s, '@')
	if at <= 0 || at == len(s)-1 {
		return false
	}
	local := s[:at]
	domain := s[at+1:]

	if len(local) > 64 {
		return false
	}

	if !localPartSatisfiesBidiRule(local) {
		return false
	}

	return IsIDNHostname(domain)
}

// localPartSatisfiesBidiRule applies RFC 5893's bidi rule to an IDN email's
// local part. idna.BidiRule() (used via idnProfile above) only checks the
// domain's labels, never the part before '@', so a local part built from
// right-to-left script runes needs its own check: per RFC 5893 §2 rule 1, a
// label containing an R or AL rune must start with one; per rule 2, such a
// label may not contain an L rune at all; a label with no R/AL rune instead
// must not contain any R, AL, or AN rune (rule 5).
func localPartSatisfiesBidiRule(s string) bool {
	runes := []rune(s)
	if len(runes) == 0 {
		return true
	}

	firstProps, _ := bidi.LookupRune(runes[0])
	firstClass := firstProps.Class()
	rtl := firstClass == bidi.R || firstClass == bidi.AL

	if !rtl {
		for _, r := range runes {
			props, _ := bidi.LookupRune(r)
			switch props.Class() {
			case bidi.R, bidi.AL, bidi.AN:
				return false
			}
		}
		return true
	}

	for _, r := range runes {
		props, _ := bidi.LookupRune(r)
		if props.Class() == bidi.L {
			return false
		}
	}
	return true
}
