/*
 * Copyright (c) 2018 The Go Authors. All rights reserved.
 * Use of this source code is governed by a BSD-style license that can be found in the LICENSE file.
 */

package httpurl

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/net/idna"
)

// idnaProfile performs nontransitional ToASCII mapping, matching the
// "IDN library" external collaborator described in §6.2: given an
// arbitrary Unicode host, map it to ASCII or signal invalid input.
// idna.Lookup already validates labels and applies the Unicode TR46
// nontransitional algorithm, so it is used as-is rather than hand-rolled.
var idnaProfile = idna.Lookup

// invalidHostnameBytes is the WHATWG-derived set of ASCII bytes that may
// never appear in a canonicalized host, beyond the control/DEL range that
// is always rejected.
const invalidHostnameBytes = " #%/:?@[\\]"

// canonicalizeHost implements §4.2: percent-decode, then dispatch to the
// IPv6, strict-IPv4, or IDN path depending on the decoded shape.
func canonicalizeHost(raw string) (string, error) {
	decoded := decodeComponent(raw, false)
	if decoded == "" {
		return "", errors.New("empty host")
	}

	if strings.Contains(decoded, ":") {
		return canonicalizeIPv6Host(decoded)
	}

	if isDigitsAndDots(decoded) {
		ip4, ok := formatStrictIPv4(decoded)
		if !ok {
			return "", errors.Errorf("invalid IPv4 host: %q", decoded)
		}
		return ip4, nil
	}

	return canonicalizeIDNHost(decoded)
}

// canonicalizeIDNHost applies IDN ToASCII and lowercases the result,
// rejecting empty results and results that carry WHATWG-forbidden bytes.
func canonicalizeIDNHost(decoded string) (string, error) {
	ascii, err := idnaProfile.ToASCII(decoded)
	if err != nil {
		return "", errors.Wrapf(err, "IDN ToASCII failed for %q", decoded)
	}
	ascii = strings.ToLower(ascii)
	if ascii == "" {
		return "", errors.Errorf("empty IDN result for %q", decoded)
	}
	if containsInvalidHostnameASCII(ascii) {
		return "", errors.Errorf("host %q contains forbidden characters", ascii)
	}
	return ascii, nil
}

// containsInvalidHostnameASCII mirrors the WHATWG host parsing forbidden
// host code points, restricted to the bytes that still matter once IDN
// mapping has already lowercased and Punycode-encoded the label.
func containsInvalidHostnameASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c <= 0x1f || c >= 0x7f {
			return true
		}
		if strings.IndexByte(invalidHostnameBytes, c) != -1 {
			return true
		}
	}
	return false
}

// isDigitsAndDots is the second alternative of §4.2 step 4's IP-address
// shape test: a nonempty run of ASCII digits and '.' with no letters,
// which forces a strict dotted-quad verification pass instead of letting
// the string fall through to IDN mapping as an ordinary hostname label.
func isDigitsAndDots(s string) bool {
	seenDigit := false
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c >= '0' && c <= '9':
			seenDigit = true
		case c == '.':
		default:
			return false
		}
	}
	return seenDigit
}

// formatStrictIPv4 validates s as exactly four decimal octets 0-255 with
// no unnecessary leading zeros, returning the canonical "a.b.c.d" form.
func formatStrictIPv4(s string) (string, bool) {
	parts := strings.Split(s, ".")
	if len(parts) != 4 {
		return "", false
	}
	var out strings.Builder
	for i, p := range parts {
		if p == "" || len(p) > 3 {
			return "", false
		}
		if len(p) > 1 && p[0] == '0' {
			return "", false
		}
		value := 0
		for j := 0; j < len(p); j++ {
			c := p[j]
			if c < '0' || c > '9' {
				return "", false
			}
			value = value*10 + int(c-'0')
		}
		if value > 255 {
			return "", false
		}
		if i > 0 {
			out.WriteByte('.')
		}
		out.WriteString(strconv.Itoa(value))
	}
	return out.String(), true
}
