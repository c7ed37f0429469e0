/*
 * Copyright (c) 2018 The Go Authors. All rights reserved.
 * Use of this source code is governed by a BSD-style license that can be found in the LICENSE file.
 */

package httpurl

import (
	"net/url"
	"strings"

	"github.com/pkg/errors"
)

// Get parses s into a URL, or returns a *ParseError describing why it
// isn't a valid http or https URL.
func Get(s string) (*URL, error) {
	b, err := parseAbsolute(s)
	if err != nil {
		return nil, err
	}
	return b.Build()
}

// Parse is Get without the error detail: it reports ok==false for any
// input Get would reject.
func Parse(s string) (*URL, bool) {
	u, err := Get(s)
	if err != nil {
		return nil, false
	}
	return u, true
}

// FromURL coerces a standard library *net/url.URL into a *URL, succeeding
// only for http/https URLs with a host. It covers both directions OkHttp
// keeps separate (of(URI) and from(HttpUrl)) since Go has one canonical
// URL type to convert from.
func FromURL(u *url.URL) (*URL, bool) {
	if u == nil {
		return nil, false
	}
	return Parse(u.String())
}

// trimASCIIWhitespace strips leading and trailing ASCII whitespace, the
// narrower "ASCII" variant of strings.TrimSpace's Unicode-aware trimming.
func trimASCIIWhitespace(s string) string {
	start := 0
	for start < len(s) && isASCIIWhitespace(s[start]) {
		start++
	}
	end := len(s)
	for end > start && isASCIIWhitespace(s[end-1]) {
		end--
	}
	return s[start:end]
}

func isASCIIWhitespace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v'
}

// scanScheme extracts the RFC 3986 scheme token preceding the first ':',
// if the text before it actually has scheme grammar (letter, then
// alnum/+/-/.). It does not judge whether the scheme is http/https —
// that's the caller's job, since a strict parse and a reference
// resolution react to a foreign scheme differently.
func scanScheme(input string) (scheme string, ok bool, remainder string) {
	idx := strings.IndexByte(input, ':')
	if idx <= 0 {
		return "", false, input
	}
	prefix := input[:idx]
	if !isSchemeLetter(prefix[0]) {
		return "", false, input
	}
	for i := 1; i < len(prefix); i++ {
		if !isSchemeChar(prefix[i]) {
			return "", false, input
		}
	}
	return strings.ToLower(prefix), true, input[idx+1:]
}

func isSchemeLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isSchemeChar(c byte) bool {
	return isSchemeLetter(c) || (c >= '0' && c <= '9') || c == '+' || c == '-' || c == '.'
}

func countLeadingSlashes(s string) int {
	n := 0
	for n < len(s) && (s[n] == '/' || s[n] == '\\') {
		n++
	}
	return n
}

// rawParts is the lexical result of scanning a URL or reference, before
// any component canonicalization: every field is still raw text straight
// out of the input.
type rawParts struct {
	hasAuthority bool
	hasUserinfo  bool
	rawUser      string
	hasPassword  bool
	rawPassword  string
	rawHost      string
	hasPort      bool
	rawPort      string
	rawPath      string
	hasQuery     bool
	rawQuery     string
	hasFragment  bool
	rawFragment  string
}

// scanAfterScheme splits the text following a scheme colon (or the whole
// trimmed input, for a schemeless reference) into authority and
// path/query/fragment. assumeAuthority forces authority parsing
// regardless of slash count — used when the scheme is already known to
// be http/https, which always carries an authority, even with zero or
// one leading slash ("http:host/path" is "http://host/path"). Without
// assumeAuthority, at least two leading '/' or '\' are required for an
// authority to be recognized at all, per §4.4's authority-slash rule.
func scanAfterScheme(remainder string, assumeAuthority bool) *rawParts {
	p := &rawParts{}
	slashRun := countLeadingSlashes(remainder)

	var rest string
	if assumeAuthority || slashRun >= 2 {
		p.hasAuthority = true
		rest = remainder[slashRun:]
		authorityEnd := strings.IndexAny(rest, "/\\?#")
		authorityText := rest
		if authorityEnd >= 0 {
			authorityText = rest[:authorityEnd]
			rest = rest[authorityEnd:]
		} else {
			rest = ""
		}
		parseAuthorityText(p, authorityText)
	} else {
		rest = remainder
	}

	if h := strings.IndexByte(rest, '#'); h >= 0 {
		p.hasFragment = true
		p.rawFragment = rest[h+1:]
		rest = rest[:h]
	}
	if q := strings.IndexByte(rest, '?'); q >= 0 {
		p.hasQuery = true
		p.rawQuery = rest[q+1:]
		rest = rest[:q]
	}
	p.rawPath = rest
	return p
}

// parseAuthorityText splits "user:password@host:port" (any piece
// optional) per §4.4 step 4: the userinfo/host split is on the *last* '@'
// so a literal '@' in a decoded password doesn't confuse it, and the
// host/port split is bracket-aware so a bare IPv6 literal's colons aren't
// mistaken for a port separator.
func parseAuthorityText(p *rawParts, text string) {
	if at := strings.LastIndexByte(text, '@'); at >= 0 {
		p.hasUserinfo = true
		userinfoText := text[:at]
		text = text[at+1:]
		if colon := strings.IndexByte(userinfoText, ':'); colon >= 0 {
			p.rawUser = userinfoText[:colon]
			p.hasPassword = true
			p.rawPassword = userinfoText[colon+1:]
		} else {
			p.rawUser = userinfoText
		}
	}

	if strings.HasPrefix(text, "[") {
		if end := strings.IndexByte(text, ']'); end >= 0 {
			p.rawHost = text[:end+1]
			rest := text[end+1:]
			if strings.HasPrefix(rest, ":") {
				p.rawPort = rest[1:]
			}
			p.hasPort = p.rawPort != ""
			return
		}
	}

	if colon := strings.LastIndexByte(text, ':'); colon >= 0 {
		p.rawHost = text[:colon]
		p.rawPort = text[colon+1:]
		p.hasPort = p.rawPort != ""
	} else {
		p.rawHost = text
	}
}

func parsePort(raw string) (int, bool) {
	if raw == "" {
		return 0, false
	}
	value := 0
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if c < '0' || c > '9' {
			return 0, false
		}
		value = value*10 + int(c-'0')
		if value > 65535 {
			return 0, false
		}
	}
	if value < 1 {
		return 0, false
	}
	return value, true
}

// parseAbsolute implements the strict, standalone half of §4.4: the
// input must carry its own http/https scheme and authority, with no base
// URL to fall back on.
func parseAbsolute(raw string) (*Builder, error) {
	trimmed := trimASCIIWhitespace(raw)
	scheme, hasScheme, remainder := scanScheme(trimmed)
	if !hasScheme {
		return nil, errNoScheme()
	}
	if scheme != "http" && scheme != "https" {
		return nil, errBadScheme(scheme)
	}

	p := scanAfterScheme(remainder, true)

	b := &Builder{scheme: scheme}

	if p.hasUserinfo {
		b.encodedUsername = encodeUserinfo(p.rawUser, true)
		if p.hasPassword {
			b.encodedPassword = encodeUserinfo(p.rawPassword, true)
		}
	}

	host, err := canonicalizeHost(p.rawHost)
	if err != nil || host == "" {
		return nil, errBadHost(p.rawHost)
	}
	b.host = host

	if p.hasPort {
		port, ok := parsePort(p.rawPort)
		if !ok {
			return nil, errBadPort(p.rawPort)
		}
		b.port = port
	}

	b.path = []string(parsePathFromRaw(foldBackslashes(p.rawPath)))

	if p.hasQuery {
		b.hasQuery = true
		b.encodedQuery = encodeQuery(p.rawQuery, true)
	}
	if p.hasFragment {
		b.hasFragment = true
		b.encodedFragment = encodeFragment(p.rawFragment, true)
	}

	return b, nil
}

var errForeignScheme = errors.New("reference has a non-http(s) absolute scheme")
