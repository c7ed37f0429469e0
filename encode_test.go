/*
 * Copyright (c) 2018 The Go Authors. All rights reserved.
 * Use of this source code is governed by a BSD-style license that can be found in the LICENSE file.
 */

package httpurl

import "testing"

func TestEncodePathSegment(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		input          string
		alreadyEncoded bool
		want           string
	}{
		{name: "space becomes percent-encoded", input: "a b", alreadyEncoded: false, want: "a%20b"},
		{name: "slash is escaped to percent-2F", input: "a/b", alreadyEncoded: false, want: "a%2Fb"},
		{name: "already-encoded valid triplet passes through", input: "a%2Fb", alreadyEncoded: true, want: "a%2Fb"},
		{name: "not-already-encoded percent is escaped", input: "a%2Fb", alreadyEncoded: false, want: "a%252Fb"},
		{name: "malformed triplet when already encoded and strict is escaped", input: "a%zzb", alreadyEncoded: true, want: "a%25zzb"},
		{name: "unreserved characters are untouched", input: "abc-._~123", alreadyEncoded: false, want: "abc-._~123"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := encodePathSegment(tt.input, tt.alreadyEncoded)
			if got != tt.want {
				t.Fatalf("encodePathSegment(%q, %v) = %q, want %q", tt.input, tt.alreadyEncoded, got, tt.want)
			}
		})
	}
}

func TestEncodeFragmentAllowsLiteralUnicode(t *testing.T) {
	t.Parallel()

	got := encodeFragment("café", false)
	want := "café"
	if got != want {
		t.Fatalf("encodeFragment unicode = %q, want %q", got, want)
	}
}

func TestEncodeFragmentStillEscapesControls(t *testing.T) {
	t.Parallel()

	got := encodeFragment("a b", false)
	want := "a%E2%80%A8b"
	if got != want {
		t.Fatalf("encodeFragment control = %q, want %q", got, want)
	}
}

func TestEncodeUserinfoIsASCIIOnly(t *testing.T) {
	t.Parallel()

	got := encodeUserinfo("café", false)
	want := "caf%C3%A9"
	if got != want {
		t.Fatalf("encodeUserinfo unicode = %q, want %q", got, want)
	}
}

func TestDecodeComponent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		encoded     string
		plusIsSpace bool
		want        string
	}{
		{name: "plain percent triplet", encoded: "a%20b", plusIsSpace: false, want: "a b"},
		{name: "plus is literal outside query", encoded: "a+b", plusIsSpace: false, want: "a+b"},
		{name: "plus is space in query", encoded: "a+b", plusIsSpace: true, want: "a b"},
		{name: "malformed triplet passes through literally", encoded: "a%zzb", plusIsSpace: false, want: "a%zzb"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := decodeComponent(tt.encoded, tt.plusIsSpace)
			if got != tt.want {
				t.Fatalf("decodeComponent(%q, %v) = %q, want %q", tt.encoded, tt.plusIsSpace, got, tt.want)
			}
		})
	}
}

func TestSanitizeUTF8ReplacesIllFormedBytes(t *testing.T) {
	t.Parallel()

	got := sanitizeUTF8([]byte{'a', 0xff, 'b'})
	want := "a�b"
	if got != want {
		t.Fatalf("sanitizeUTF8 = %q, want %q", got, want)
	}
}

func TestCanonicalizeIdempotentOnAlreadyEncoded(t *testing.T) {
	t.Parallel()

	once := encodePathSegment("a b/c", false)
	twice := encodePathSegment(once, true)
	if once != twice {
		t.Fatalf("encoding an already-encoded segment should be identity: once=%q twice=%q", once, twice)
	}
}
