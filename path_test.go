/*
 * Copyright (c) 2018 The Go Authors. All rights reserved.
 * Use of this source code is governed by a BSD-style license that can be found in the LICENSE file.
 */

package httpurl

import "testing"

func TestParsePathFromRaw(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "empty path is root", raw: "", want: "/"},
		{name: "root stays root", raw: "/", want: "/"},
		{name: "dot-dot pops previous segment", raw: "/A/../B", want: "/B"},
		{name: "dot is dropped", raw: "/a/./b", want: "/a/b"},
		{name: "leading dot-dot has nothing to pop", raw: "/../a", want: "/a"},
		{name: "trailing dot-dot leaves trailing slash", raw: "/a/b/..", want: "/a/"},
		{name: "percent-encoded dot is still a dot", raw: "/a/%2e%2e/b", want: "/b"},
		{name: "backslash folds to slash before splitting", raw: `\a\b`, want: "/a/b"},
		{name: "encoded slash inside a segment is not a separator", raw: "/a%2Fb%2Fc", want: "/a%2Fb%2Fc"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := parsePathFromRaw(foldBackslashes(tt.raw)).String()
			if got != tt.want {
				t.Fatalf("parsePathFromRaw(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestRemoveDotSegmentsIdempotent(t *testing.T) {
	t.Parallel()

	once := removeDotSegments([]string{"a", "..", "b", ".", "c"})
	twice := removeDotSegments(once)
	if once.String() != twice.String() {
		t.Fatalf("removeDotSegments not idempotent: once=%q twice=%q", once, twice)
	}
}

func TestIsDotSegment(t *testing.T) {
	t.Parallel()

	for _, seg := range []string{".", "%2e", "%2E"} {
		if !isDotSegment(seg) {
			t.Errorf("isDotSegment(%q) = false, want true", seg)
		}
	}
	for _, seg := range []string{"..", "a", ""} {
		if isDotSegment(seg) {
			t.Errorf("isDotSegment(%q) = true, want false", seg)
		}
	}
}

func TestIsDotDotSegment(t *testing.T) {
	t.Parallel()

	for _, seg := range []string{"..", "%2e.", ".%2e", "%2e%2e"} {
		if !isDotDotSegment(seg) {
			t.Errorf("isDotDotSegment(%q) = false, want true", seg)
		}
	}
	for _, seg := range []string{".", "a", ""} {
		if isDotDotSegment(seg) {
			t.Errorf("isDotDotSegment(%q) = true, want false", seg)
		}
	}
}
