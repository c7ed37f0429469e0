/*
 * Copyright (c) 2018 The Go Authors. All rights reserved.
 * Use of this source code is governed by a BSD-style license that can be found in the LICENSE file.
 */

package httpurl

import (
	"reflect"
	"testing"
)

func TestSplitQuery(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want []queryPair
	}{
		{name: "empty query is one absent pair", raw: "", want: []queryPair{{name: ""}}},
		{name: "single ampersand is two absent pairs", raw: "&", want: []queryPair{{name: ""}, {name: ""}}},
		{name: "bare name has no value", raw: "a", want: []queryPair{{name: "a"}}},
		{name: "name equals value", raw: "a=1", want: []queryPair{{name: "a", value: "1", hasValue: true}}},
		{name: "multiple pairs", raw: "a=1&b", want: []queryPair{{name: "a", value: "1", hasValue: true}, {name: "b"}}},
		{name: "first equals only splits the pair", raw: "a=1=2", want: []queryPair{{name: "a", value: "1=2", hasValue: true}}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := splitQuery(tt.raw)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("splitQuery(%q) = %+v, want %+v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestJoinQueryIsSplitQueryInverse(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"a=1&b&c=3", "", "a"} {
		raw := raw
		pairs := splitQuery(raw)
		if got := joinQuery(pairs); got != raw {
			t.Fatalf("joinQuery(splitQuery(%q)) = %q, want %q", raw, got, raw)
		}
	}
}

func TestQueryPairDecodedNameTreatsPlusAsSpace(t *testing.T) {
	t.Parallel()

	p := queryPair{name: "a+b"}
	if got := p.decodedName(); got != "a b" {
		t.Fatalf("decodedName() = %q, want %q", got, "a b")
	}
}
