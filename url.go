/*
 * Copyright (c) 2018 The Go Authors. All rights reserved.
 * Use of this source code is governed by a BSD-style license that can be found in the LICENSE file.
 */

// Package httpurl provides an immutable, canonicalizing representation of
// http and https URLs, a mutating Builder, and a reference resolver that
// combines a base URL with a possibly-relative reference. Compared to a
// generic RFC 3986 parser it restricts the scheme space to http/https and
// applies WHATWG-style leniency: mixed '/' and '\' authority delimiters,
// percent-decoding inside IPv6 literals, IDN normalization of host names,
// and trimming of surrounding ASCII whitespace.
package httpurl

import (
	"net/url"
	"strconv"
	"strings"
)

// URL is an immutable, canonical http or https URL. Every string field
// holds the percent-encoded form; decoded views are computed on demand by
// the accessor methods below. Two URLs are equal exactly when every field
// matches; the path field is a slice, so compare URLs with Equal, not ==.
type URL struct {
	scheme          string
	encodedUsername string
	encodedPassword string
	host            string
	port            int
	path            pathSegments
	hasQuery        bool
	encodedQuery    string
	hasFragment     bool
	encodedFragment string
}

// defaultPort returns the scheme's default port: 80 for http, 443 for
// https. scheme must already be canonical.
func defaultPort(scheme string) int {
	if scheme == "https" {
		return 443
	}
	return 80
}

// Scheme returns "http" or "https".
func (u *URL) Scheme() string { return u.scheme }

// EncodedUsername returns the percent-encoded username, or "" if absent.
func (u *URL) EncodedUsername() string { return u.encodedUsername }

// Username returns the decoded username.
func (u *URL) Username() string { return decodeUserinfo(u.encodedUsername) }

// EncodedPassword returns the percent-encoded password, or "" if absent.
func (u *URL) EncodedPassword() string { return u.encodedPassword }

// Password returns the decoded password.
func (u *URL) Password() string { return decodeUserinfo(u.encodedPassword) }

// Host returns the canonical host: IDN ASCII lowercase, RFC 5952 IPv6
// (without brackets), or dotted-quad IPv4.
func (u *URL) Host() string { return u.host }

// Port returns the effective port: the value carried in the URL, or the
// scheme's default (80/443) when none was given.
func (u *URL) Port() int { return u.port }

// PathSize returns the number of path segments. Always >= 1.
func (u *URL) PathSize() int { return len(u.path) }

// EncodedPathSegments returns the percent-encoded path segments in order.
func (u *URL) EncodedPathSegments() []string {
	out := make([]string, len(u.path))
	copy(out, u.path)
	return out
}

// PathSegments returns the decoded path segments in order.
func (u *URL) PathSegments() []string {
	out := make([]string, len(u.path))
	for i, seg := range u.path {
		out[i] = decodePathSegment(seg)
	}
	return out
}

// EncodedPath returns the percent-encoded path, always starting with '/'.
func (u *URL) EncodedPath() string { return u.path.String() }

// HasQuery reports whether the URL carries a '?', including a '?' with
// nothing after it.
func (u *URL) HasQuery() bool { return u.hasQuery }

// EncodedQuery returns the raw percent-encoded query, without the leading
// '?'. Returns "" when HasQuery is false or the query is present-but-empty;
// use HasQuery to tell the two apart.
func (u *URL) EncodedQuery() string { return u.encodedQuery }

// Query returns the decoded query string, or "" if no '?' was present.
func (u *URL) Query() string {
	if !u.hasQuery {
		return ""
	}
	return decodeQueryPiece(u.encodedQuery)
}

// QuerySize returns the number of name[=value] pairs in the query, or 0
// if HasQuery is false.
func (u *URL) QuerySize() int {
	if !u.hasQuery {
		return 0
	}
	return len(splitQuery(u.encodedQuery))
}

// QueryParameterName returns the decoded name of the i'th query pair.
func (u *URL) QueryParameterName(i int) string {
	return splitQuery(u.encodedQuery)[i].decodedName()
}

// QueryParameterValue returns the decoded value of the i'th query pair,
// and whether that pair carried a value at all (as opposed to a bare
// name with no '=').
func (u *URL) QueryParameterValue(i int) (string, bool) {
	return splitQuery(u.encodedQuery)[i].decodedValue()
}

// QueryParameterNames returns the distinct decoded names across the
// query, in first-occurrence order.
func (u *URL) QueryParameterNames() []string {
	if !u.hasQuery {
		return nil
	}
	seen := make(map[string]bool)
	var names []string
	for _, p := range splitQuery(u.encodedQuery) {
		name := p.decodedName()
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	return names
}

// QueryParameterValues returns the decoded values of every pair whose
// decoded name equals name, in order. A pair with no value contributes
// an empty string, so it cannot be told apart from an empty value here;
// QueryParameterValue reports that distinction.
func (u *URL) QueryParameterValues(name string) []string {
	if !u.hasQuery {
		return nil
	}
	var values []string
	for _, p := range splitQuery(u.encodedQuery) {
		if p.decodedName() == name {
			v, _ := p.decodedValue()
			values = append(values, v)
		}
	}
	return values
}

// QueryParameter returns the decoded value of the first pair whose
// decoded name equals name, and whether that pair exists and carries a
// value. A bare name with no '=' reports ok==false, like a missing name.
func (u *URL) QueryParameter(name string) (string, bool) {
	if !u.hasQuery {
		return "", false
	}
	for _, p := range splitQuery(u.encodedQuery) {
		if p.decodedName() == name {
			return p.decodedValue()
		}
	}
	return "", false
}

// HasFragment reports whether the URL carries a '#'.
func (u *URL) HasFragment() bool { return u.hasFragment }

// EncodedFragment returns the percent-encoded fragment, without the
// leading '#', or "" if HasFragment is false.
func (u *URL) EncodedFragment() string { return u.encodedFragment }

// Fragment returns the decoded fragment, or "" if HasFragment is false.
func (u *URL) Fragment() string {
	if !u.hasFragment {
		return ""
	}
	return decodeFragmentValue(u.encodedFragment)
}

// String renders the canonical serialization:
// scheme://[userinfo@]host[:port]path[?query][#fragment].
func (u *URL) String() string {
	return u.stringWithFragment(u.encodedFragment)
}

// stringWithFragment renders the same canonical serialization as String,
// except the fragment component (still gated by hasFragment) is taken
// from encodedFragment rather than u.encodedFragment. URI uses this to
// substitute a control-stripped fragment without duplicating the rest of
// the serialization logic.
func (u *URL) stringWithFragment(encodedFragment string) string {
	var b strings.Builder
	b.WriteString(u.scheme)
	b.WriteString("://")

	if u.encodedUsername != "" || u.encodedPassword != "" {
		b.WriteString(u.encodedUsername)
		if u.encodedPassword != "" {
			b.WriteByte(':')
			b.WriteString(u.encodedPassword)
		}
		b.WriteByte('@')
	}

	if strings.Contains(u.host, ":") {
		b.WriteByte('[')
		b.WriteString(u.host)
		b.WriteByte(']')
	} else {
		b.WriteString(u.host)
	}

	if u.port != defaultPort(u.scheme) {
		b.WriteByte(':')
		b.WriteString(strconv.Itoa(u.port))
	}

	b.WriteString(u.path.String())

	if u.hasQuery {
		b.WriteByte('?')
		b.WriteString(u.encodedQuery)
	}
	if u.hasFragment {
		b.WriteByte('#')
		b.WriteString(encodedFragment)
	}
	return b.String()
}

// URL returns the *net/url.URL platform-URL projection of u: the outbound
// counterpart of FromURL. Since u.String() is always a valid absolute
// http/https URL, re-parsing it can't fail.
func (u *URL) URL() *url.URL {
	parsed, err := url.Parse(u.String())
	if err != nil {
		panic(err)
	}
	return parsed
}

// URI returns the stricter, always-valid generic-URI projection of u: a
// *net/url.URL built the same way as URL, except control characters
// (including U+2028 and U+2029) are stripped from the decoded fragment
// before it's re-encoded, so the fragment never reintroduces a character
// a generic URI forbids — the "controls stripped when exporting to a
// stricter URI representation" behavior the fragment encode set is
// designed around.
func (u *URL) URI() *url.URL {
	encodedFragment := u.encodedFragment
	if u.hasFragment {
		encodedFragment = encodeFragment(stripFragmentControls(u.Fragment()), false)
	}
	parsed, err := url.Parse(u.stringWithFragment(encodedFragment))
	if err != nil {
		panic(err)
	}
	return parsed
}

// stripFragmentControls removes every code point isFragmentControl
// flags, leaving the rest of s untouched.
func stripFragmentControls(s string) string {
	if !strings.ContainsFunc(s, isFragmentControl) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if isFragmentControl(r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Equal reports whether u and other have identical fields. URL is a
// plain struct of comparable fields except the path slice, so direct ==
// doesn't work; Equal does the field-by-field comparison instead.
func (u *URL) Equal(other *URL) bool {
	if u == other {
		return true
	}
	if u == nil || other == nil {
		return false
	}
	if u.scheme != other.scheme ||
		u.encodedUsername != other.encodedUsername ||
		u.encodedPassword != other.encodedPassword ||
		u.host != other.host ||
		u.port != other.port ||
		u.hasQuery != other.hasQuery ||
		u.encodedQuery != other.encodedQuery ||
		u.hasFragment != other.hasFragment ||
		u.encodedFragment != other.encodedFragment {
		return false
	}
	if len(u.path) != len(other.path) {
		return false
	}
	for i := range u.path {
		if u.path[i] != other.path[i] {
			return false
		}
	}
	return true
}

// NewBuilder returns a Builder seeded with every field of u, so that
// u.NewBuilder().Build() reproduces u unless further mutated.
func (u *URL) NewBuilder() *Builder {
	b := &Builder{
		scheme:          u.scheme,
		encodedUsername: u.encodedUsername,
		encodedPassword: u.encodedPassword,
		host:            u.host,
		port:            u.port,
		hasQuery:        u.hasQuery,
		encodedQuery:    u.encodedQuery,
		hasFragment:     u.hasFragment,
		encodedFragment: u.encodedFragment,
	}
	b.path = append([]string(nil), u.path...)
	return b
}

// Resolve combines u as a base with link, a possibly relative reference,
// per §4.7. It returns nil, false if link cannot be resolved into a valid
// http/https URL.
func (u *URL) Resolve(link string) (*URL, bool) {
	b, err := u.resolveReference(link)
	if err != nil {
		return nil, false
	}
	built, err := b.Build()
	if err != nil {
		return nil, false
	}
	return built, true
}

// NewBuilderFrom resolves ref against u and returns the resulting Builder
// without calling Build, so the caller can keep mutating before
// finalizing. It reports ok==false on the same failures as Resolve.
func (u *URL) NewBuilderFrom(ref string) (*Builder, bool) {
	b, err := u.resolveReference(ref)
	if err != nil {
		return nil, false
	}
	return b, true
}

