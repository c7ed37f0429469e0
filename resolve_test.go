/*
 * Copyright (c) 2018 The Go Authors. All rights reserved.
 * Use of this source code is governed by a BSD-style license that can be found in the LICENSE file.
 */

package httpurl

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestURLResolve(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		base string
		ref  string
		want string
	}{
		{name: "relative path replaces last segment", base: "http://a/b/c/d;p?q", ref: "g", want: "http://a/b/c/g"},
		{name: "absolute path replaces whole path", base: "http://a/b/c/d;p?q", ref: "/g", want: "http://a/g"},
		{name: "empty reference inherits base path and query", base: "http://a/b/c/d;p?q", ref: "", want: "http://a/b/c/d;p?q"},
		{name: "fragment only inherits path and query", base: "http://a/b/c/d;p?q", ref: "#s", want: "http://a/b/c/d;p?q#s"},
		{name: "query only inherits path", base: "http://a/b/c/d;p?q", ref: "?y", want: "http://a/b/c/d;p?y"},
		{name: "dot-dot climbs out of path", base: "http://a/b/c/d;p?q", ref: "../g", want: "http://a/b/g"},
		{name: "excess dot-dot segments clamp at root", base: "http://a/b/c/d;p?q", ref: "../../../g", want: "http://a/g"},
		{name: "network-path reference replaces authority", base: "http://a/b/c/d;p?q", ref: "//g", want: "http://g/"},
		{name: "same scheme with one slash is still relative", base: "http://a/b/c/d;p?q", ref: "http:g", want: "http://a/b/c/g"},
		{name: "absolute url reference discards base entirely", base: "http://a/b/c/d;p?q", ref: "http://other/x", want: "http://other/x"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			base := mustParse(t, tt.base)
			got, ok := base.Resolve(tt.ref)
			require.True(t, ok, "Resolve(%q) against %q failed", tt.ref, tt.base)
			require.Equal(t, tt.want, got.String())
		})
	}
}

func TestURLResolveRejectsForeignScheme(t *testing.T) {
	t.Parallel()

	base := mustParse(t, "http://a/b")
	_, ok := base.Resolve("ftp://a/b")
	require.False(t, ok)
}

func TestURLResolveRejectsInvalidHost(t *testing.T) {
	t.Parallel()

	base := mustParse(t, "http://a/b")
	_, ok := base.Resolve("//ho st/path")
	require.False(t, ok)
}

func TestNewBuilderFromLeavesResultMutable(t *testing.T) {
	t.Parallel()

	base := mustParse(t, "http://a/b/c")
	b, ok := base.NewBuilderFrom("g")
	require.True(t, ok)
	u, err := b.AddPathSegment("h").Build()
	require.NoError(t, err)
	require.Equal(t, "/b/g/h", u.EncodedPath())
}

func TestMergePathsEmptyRefKeepsBasePath(t *testing.T) {
	t.Parallel()

	base := mustParse(t, "http://a/b/c")
	got := mergePaths(base, "")
	if len(got) != len(base.path) {
		t.Fatalf("mergePaths(base, \"\") = %v, want %v", got, base.path)
	}
	for i := range got {
		if got[i] != base.path[i] {
			t.Fatalf("mergePaths(base, \"\") = %v, want %v", got, base.path)
		}
	}
}
