/*
 * Copyright (c) 2018 The Go Authors. All rights reserved.
 * Use of this source code is governed by a BSD-style license that can be found in the LICENSE file.
 */

package httpurl

import (
	"strconv"
	"strings"
)

// Builder is the mutable counterpart to URL. It carries the same fields,
// independently settable, with path segments as a mutable ordered slice
// and query/fragment tracked with an explicit presence flag rather than a
// nil check. A Builder has a single owner: it is not safe for concurrent
// use, the same way a bytes.Buffer is not.
type Builder struct {
	scheme          string
	encodedUsername string
	encodedPassword string
	host            string
	port            int // 0 means "unset, use the scheme default at Build"
	path            []string
	hasQuery        bool
	encodedQuery    string
	hasFragment     bool
	encodedFragment string
}

// NewBuilder returns an empty Builder with no scheme or host set.
func NewBuilder() *Builder {
	return &Builder{}
}

// Scheme sets the scheme. It panics if scheme is not "http" or "https" —
// an invalid scheme is a contract violation by the caller, not a
// recoverable parse failure, so it is reported the way an out-of-range
// slice index would be.
func (b *Builder) Scheme(scheme string) *Builder {
	scheme = strings.ToLower(scheme)
	if scheme != "http" && scheme != "https" {
		panic(errBadScheme(scheme))
	}
	b.scheme = scheme
	return b
}

// Username sets the decoded username, encoding it for storage.
func (b *Builder) Username(username string) *Builder {
	b.encodedUsername = encodeUserinfo(username, false)
	return b
}

// EncodedUsername sets the username from an already percent-encoded form.
func (b *Builder) EncodedUsername(encodedUsername string) *Builder {
	b.encodedUsername = encodeUserinfo(encodedUsername, true)
	return b
}

// Password sets the decoded password, encoding it for storage.
func (b *Builder) Password(password string) *Builder {
	b.encodedPassword = encodeUserinfo(password, false)
	return b
}

// EncodedPassword sets the password from an already percent-encoded form.
func (b *Builder) EncodedPassword(encodedPassword string) *Builder {
	b.encodedPassword = encodeUserinfo(encodedPassword, true)
	return b
}

// Host sets the raw host text; it is canonicalized at Build time so that
// Build, not Host, is responsible for reporting an invalid host.
func (b *Builder) Host(host string) *Builder {
	b.host = host
	return b
}

// Port sets the port explicitly. It panics if port is outside 1-65535 —
// the same contract-violation treatment as Scheme.
func (b *Builder) Port(port int) *Builder {
	if port < 1 || port > 65535 {
		panic(errBadPort(strconv.Itoa(port)))
	}
	b.port = port
	return b
}

func (b *Builder) dropTrailingEmptySegment() {
	if n := len(b.path); n > 0 && b.path[n-1] == "" {
		b.path = b.path[:n-1]
	}
}

// AddPathSegment appends a single segment, never splitting it on '/' —
// any '/' in s is percent-encoded to %2F like any other path-segment
// encode-set character. A segment of "." or ".." is still collapsed by
// the usual dot-segment normalization, run incrementally after every
// path mutation.
func (b *Builder) AddPathSegment(segment string) *Builder {
	return b.addEncodedPathSegment(encodePathSegment(segment, false))
}

// AddEncodedPathSegment is AddPathSegment for an already percent-encoded
// segment.
func (b *Builder) AddEncodedPathSegment(encodedSegment string) *Builder {
	return b.addEncodedPathSegment(encodePathSegment(encodedSegment, true))
}

func (b *Builder) addEncodedPathSegment(encodedSegment string) *Builder {
	b.dropTrailingEmptySegment()
	b.path = append(b.path, encodedSegment)
	b.path = removeDotSegments(b.path)
	return b
}

// AddPathSegments splits s on '/' (after folding '\' to '/') and appends
// every resulting piece, dropping the path's existing trailing empty
// segment first the way a single AddPathSegment does. Dot segments inside
// s are normalized together with the rest of the path.
func (b *Builder) AddPathSegments(s string) *Builder {
	return b.addEncodedPathSegments(s, false)
}

// AddEncodedPathSegments is AddPathSegments for an already percent-encoded
// argument.
func (b *Builder) AddEncodedPathSegments(encoded string) *Builder {
	return b.addEncodedPathSegments(encoded, true)
}

func (b *Builder) addEncodedPathSegments(s string, alreadyEncoded bool) *Builder {
	pieces := splitOnSlashes(s)
	b.dropTrailingEmptySegment()
	for _, piece := range pieces {
		b.path = append(b.path, encodePathSegment(piece, alreadyEncoded))
	}
	b.path = removeDotSegments(b.path)
	return b
}

// SetPathSegment replaces the segment at index i. It panics with an
// indexError if i is out of range, and with a segmentError if s encodes
// to "." or "..", since either would be silently collapsed by dot-segment
// normalization once the URL's string form is parsed again — a surprise
// the caller should see immediately instead.
func (b *Builder) SetPathSegment(i int, segment string) *Builder {
	return b.setEncodedPathSegment(i, "SetPathSegment", encodePathSegment(segment, false))
}

// SetEncodedPathSegment is SetPathSegment for an already percent-encoded
// segment.
func (b *Builder) SetEncodedPathSegment(i int, encodedSegment string) *Builder {
	return b.setEncodedPathSegment(i, "SetEncodedPathSegment", encodePathSegment(encodedSegment, true))
}

func (b *Builder) setEncodedPathSegment(i int, op string, encodedSegment string) *Builder {
	if i < 0 || i >= len(b.path) {
		panic(&indexError{op: op, index: i, size: len(b.path)})
	}
	if isDotSegment(encodedSegment) || isDotDotSegment(encodedSegment) {
		panic(&segmentError{op: op, segment: encodedSegment})
	}
	b.path[i] = encodedSegment
	return b
}

// RemovePathSegment removes the segment at index i. It panics with an
// indexError if i is out of range. Removing the only remaining segment
// leaves the path at its root form, []string{""}, rather than empty.
func (b *Builder) RemovePathSegment(i int) *Builder {
	if i < 0 || i >= len(b.path) {
		panic(&indexError{op: "RemovePathSegment", index: i, size: len(b.path)})
	}
	b.path = append(b.path[:i], b.path[i+1:]...)
	if len(b.path) == 0 {
		b.path = []string{""}
	}
	return b
}

// Query sets the entire query from a single decoded string. A nil value
// clears the query entirely (HasQuery becomes false); a non-nil value,
// including an empty string, leaves the query present.
func (b *Builder) Query(query *string) *Builder {
	return b.setQuery(query, false)
}

// EncodedQuery is Query for an already percent-encoded raw query.
func (b *Builder) EncodedQuery(encodedQuery *string) *Builder {
	return b.setQuery(encodedQuery, true)
}

func (b *Builder) setQuery(query *string, alreadyEncoded bool) *Builder {
	if query == nil {
		b.hasQuery = false
		b.encodedQuery = ""
		return b
	}
	b.hasQuery = true
	b.encodedQuery = encodeQuery(*query, alreadyEncoded)
	return b
}

// AddQueryParameter appends a "name[=value]" pair, encoding both pieces
// with the query-component encode set. A nil value appends a bare name
// with no '='.
func (b *Builder) AddQueryParameter(name string, value *string) *Builder {
	return b.addEncodedQueryParameter(encodeQueryComponent(name, false), encodedValuePtr(value, false))
}

// AddEncodedQueryParameter is AddQueryParameter for an already
// percent-encoded name and value.
func (b *Builder) AddEncodedQueryParameter(encodedName string, encodedValue *string) *Builder {
	return b.addEncodedQueryParameter(encodeQueryComponent(encodedName, true), encodedValuePtr(encodedValue, true))
}

func encodedValuePtr(value *string, alreadyEncoded bool) *string {
	if value == nil {
		return nil
	}
	v := encodeQueryComponent(*value, alreadyEncoded)
	return &v
}

func (b *Builder) addEncodedQueryParameter(encodedName string, encodedValue *string) *Builder {
	if !b.hasQuery {
		b.hasQuery = true
	} else {
		b.encodedQuery += "&"
	}
	b.encodedQuery += encodedName
	if encodedValue != nil {
		b.encodedQuery += "=" + *encodedValue
	}
	return b
}

// SetQueryParameter replaces every pair whose decoded name equals name
// with a single pair carrying value, appending it if no pair matched.
func (b *Builder) SetQueryParameter(name string, value *string) *Builder {
	b.RemoveAllQueryParameters(name)
	if b.encodedQuery == "" {
		// Nothing else is left, so the new pair becomes the whole query.
		b.hasQuery = false
	}
	return b.AddQueryParameter(name, value)
}

// RemoveAllQueryParameters removes every pair whose decoded name equals
// name. If the query was present, it stays present — possibly as an
// empty string — even if every pair was removed.
func (b *Builder) RemoveAllQueryParameters(name string) *Builder {
	if !b.hasQuery {
		return b
	}
	pairs := splitQuery(b.encodedQuery)
	kept := pairs[:0]
	for _, p := range pairs {
		if p.decodedName() != name {
			kept = append(kept, p)
		}
	}
	b.encodedQuery = joinQuery(kept)
	return b
}

// Fragment sets the decoded fragment. A nil value clears it.
func (b *Builder) Fragment(fragment *string) *Builder {
	return b.setFragment(fragment, false)
}

// EncodedFragment is Fragment for an already percent-encoded fragment.
func (b *Builder) EncodedFragment(encodedFragment *string) *Builder {
	return b.setFragment(encodedFragment, true)
}

func (b *Builder) setFragment(fragment *string, alreadyEncoded bool) *Builder {
	if fragment == nil {
		b.hasFragment = false
		b.encodedFragment = ""
		return b
	}
	b.hasFragment = true
	b.encodedFragment = encodeFragment(*fragment, alreadyEncoded)
	return b
}

// Build validates and finalizes the Builder into an immutable URL. It
// returns a *ParseError — never a panic — for the two required fields
// that can be missing rather than merely invalid: scheme and host.
func (b *Builder) Build() (*URL, error) {
	if b.scheme == "" {
		return nil, errSchemeUnset()
	}
	if b.host == "" {
		return nil, errHostUnset()
	}
	host, err := canonicalizeHost(b.host)
	if err != nil || host == "" {
		return nil, errBadHost(b.host)
	}

	port := b.port
	if port == 0 {
		port = defaultPort(b.scheme)
	}

	path := b.path
	if len(path) == 0 {
		path = []string{""}
	}
	pathCopy := make([]string, len(path))
	copy(pathCopy, path)

	return &URL{
		scheme:          b.scheme,
		encodedUsername: b.encodedUsername,
		encodedPassword: b.encodedPassword,
		host:            host,
		port:            port,
		path:            pathSegments(pathCopy),
		hasQuery:        b.hasQuery,
		encodedQuery:    b.encodedQuery,
		hasFragment:     b.hasFragment,
		encodedFragment: b.encodedFragment,
	}, nil
}
