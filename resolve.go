/*
 * Copyright (c) 2018 The Go Authors. All rights reserved.
 * Use of this source code is governed by a BSD-style license that can be found in the LICENSE file.
 */

package httpurl

import "strings"

// resolveReference implements §4.7: combine u as a base with ref, a
// possibly relative reference, per RFC 3986 §5.2/§5.3 restricted to the
// http/https scheme space. It returns a *Builder rather than a *URL so
// NewBuilderFrom can hand the caller a still-mutable result.
func (u *URL) resolveReference(ref string) (*Builder, error) {
	trimmedRef := trimASCIIWhitespace(ref)
	scheme, hasScheme, remainder := scanScheme(trimmedRef)

	// "http:g" against a base whose scheme is also "http", with fewer than
	// two authority slashes, is RFC 3986 §5.3's degenerate case: the
	// scheme is discarded and parsing resumes as if ref were relative.
	if hasScheme && scheme == u.scheme && countLeadingSlashes(remainder) < 2 {
		hasScheme = false
		trimmedRef = remainder
	}

	var p *rawParts
	usesOwnScheme := false
	if hasScheme {
		if scheme != "http" && scheme != "https" {
			return nil, errForeignScheme
		}
		p = scanAfterScheme(remainder, true)
		usesOwnScheme = true
	} else {
		p = scanAfterScheme(trimmedRef, false)
	}

	b := &Builder{}

	if usesOwnScheme {
		b.scheme = scheme
	} else {
		b.scheme = u.scheme
	}

	if p.hasAuthority {
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

		refSegments := rawPathPieces(foldBackslashes(p.rawPath))
		for i, seg := range refSegments {
			refSegments[i] = encodePathSegment(seg, true)
		}
		b.path = []string(removeDotSegments(refSegments))
	} else {
		b.encodedUsername = u.encodedUsername
		b.encodedPassword = u.encodedPassword
		b.host = u.host
		b.port = u.port
		b.path = mergePaths(u, p.rawPath)
	}

	if usesOwnScheme || p.hasAuthority || p.rawPath != "" {
		// Own scheme, own authority, or a non-empty path: take ref's
		// query as-is, present or absent, never the base's.
		b.hasQuery = p.hasQuery
		if p.hasQuery {
			b.encodedQuery = encodeQuery(p.rawQuery, true)
		}
	} else if p.hasQuery {
		b.hasQuery = true
		b.encodedQuery = encodeQuery(p.rawQuery, true)
	} else {
		b.hasQuery = u.hasQuery
		b.encodedQuery = u.encodedQuery
	}

	b.hasFragment = p.hasFragment
	if p.hasFragment {
		b.encodedFragment = encodeFragment(p.rawFragment, true)
	}

	return b, nil
}

// mergePaths implements RFC 3986 §5.3's merge step for a reference with
// no authority of its own: an empty ref path keeps the base path
// untouched; a ref path starting with '/' replaces it outright (after
// dot-segment removal); anything else is appended after dropping the
// base path's last segment, then dot-segment-normalized as a whole.
func mergePaths(base *URL, rawRefPath string) []string {
	if rawRefPath == "" {
		out := make([]string, len(base.path))
		copy(out, base.path)
		return out
	}

	refPath := foldBackslashes(rawRefPath)
	refSegments := rawPathPieces(refPath)
	for i, seg := range refSegments {
		refSegments[i] = encodePathSegment(seg, true)
	}

	if strings.HasPrefix(refPath, "/") {
		return []string(removeDotSegments(refSegments))
	}

	baseSegments := append([]string(nil), base.path...)
	if len(baseSegments) > 0 {
		baseSegments = baseSegments[:len(baseSegments)-1]
	}
	merged := append(baseSegments, refSegments...)
	return []string(removeDotSegments(merged))
}
