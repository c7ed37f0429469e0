/*
 * Copyright (c) 2018 The Go Authors. All rights reserved.
 * Use of this source code is governed by a BSD-style license that can be found in the LICENSE file.
 */

package httpurl

import "strings"

// queryPair is one "name[=value]" piece of a query string. A piece with no
// '=' has hasValue == false, distinct from a piece with an empty value
// after a bare '='.
type queryPair struct {
	name     string
	value    string
	hasValue bool
}

// splitQuery implements §4.6's pair projection: split the raw encoded
// query on '&', then split each piece on the first '='. An empty query
// string yields one pair with an absent value; "&" yields two such pairs.
func splitQuery(rawQuery string) []queryPair {
	pieces := strings.Split(rawQuery, "&")
	pairs := make([]queryPair, len(pieces))
	for i, piece := range pieces {
		if eq := strings.IndexByte(piece, '='); eq >= 0 {
			pairs[i] = queryPair{name: piece[:eq], value: piece[eq+1:], hasValue: true}
		} else {
			pairs[i] = queryPair{name: piece}
		}
	}
	return pairs
}

// joinQuery is the inverse of splitQuery: render pairs back to a single
// raw encoded query string.
func joinQuery(pairs []queryPair) string {
	var b strings.Builder
	for i, p := range pairs {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(p.name)
		if p.hasValue {
			b.WriteByte('=')
			b.WriteString(p.value)
		}
	}
	return b.String()
}

// decodedName returns a pair's decoded name, treating a decoded '+' the
// same as a decoded ' ' for lookup purposes (plusIsSpace applies to query
// decoding) — matching §4.6's addressing-by-decoded-name rule.
func (p queryPair) decodedName() string {
	return decodeQueryPiece(p.name)
}

func (p queryPair) decodedValue() (string, bool) {
	if !p.hasValue {
		return "", false
	}
	return decodeQueryPiece(p.value), true
}
