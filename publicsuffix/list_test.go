/*
 * Copyright (c) 2018 The Go Authors. All rights reserved.
 * Use of this source code is governed by a BSD-style license that can be found in the LICENSE file.
 */

package publicsuffix

import (
	"bytes"
	"compress/gzip"
	"encoding/binary"
	"strings"
	"testing"
)

func buildSnapshot(t *testing.T, rules, exceptions []string) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	for _, section := range [][]string{rules, exceptions} {
		joined := strings.Join(section, "\n")
		var lengthBuf [4]byte
		binary.BigEndian.PutUint32(lengthBuf[:], uint32(len(joined)))
		if _, err := zw.Write(lengthBuf[:]); err != nil {
			t.Fatalf("writing section length: %v", err)
		}
		if _, err := zw.Write([]byte(joined)); err != nil {
			t.Fatalf("writing section body: %v", err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("closing gzip writer: %v", err)
	}
	return buf.Bytes()
}

func TestParseSnapshotRulesAndExceptions(t *testing.T) {
	t.Parallel()

	raw := buildSnapshot(t, []string{"com", "co.uk"}, []string{"city.kobe.jp"})

	db, err := parseSnapshot(raw)
	if err != nil {
		t.Fatalf("parseSnapshot returned error: %v", err)
	}

	if got, want := db.PublicSuffix("example.com"), "com"; got != want {
		t.Fatalf("PublicSuffix(example.com) = %q, want %q", got, want)
	}
	if got, want := db.PublicSuffix("example.co.uk"), "co.uk"; got != want {
		t.Fatalf("PublicSuffix(example.co.uk) = %q, want %q", got, want)
	}

	// city.kobe.jp is an exception: its own suffix is the remainder after
	// dropping the leftmost label, not "city.kobe.jp" itself.
	if got, want := db.PublicSuffix("city.kobe.jp"), "kobe.jp"; got != want {
		t.Fatalf("PublicSuffix(city.kobe.jp) = %q, want %q", got, want)
	}

	if got, want := db.PublicSuffix("unknown-tld"), "unknown-tld"; got != want {
		t.Fatalf("PublicSuffix(unknown-tld) = %q, want %q", got, want)
	}
}

func TestParseSnapshotEmptySections(t *testing.T) {
	t.Parallel()

	raw := buildSnapshot(t, nil, nil)

	db, err := parseSnapshot(raw)
	if err != nil {
		t.Fatalf("parseSnapshot returned error: %v", err)
	}
	if got, want := db.PublicSuffix("example.com"), "com"; got != want {
		t.Fatalf("PublicSuffix(example.com) = %q, want %q", got, want)
	}
}

func TestParseSnapshotRejectsTruncatedInput(t *testing.T) {
	t.Parallel()

	if _, err := parseSnapshot([]byte("not gzip")); err == nil {
		t.Fatal("parseSnapshot accepted non-gzip input")
	}
}

func TestDefaultLoadsBundledSnapshot(t *testing.T) {
	t.Parallel()

	db, err := Default()
	if err != nil {
		t.Fatalf("Default() returned error: %v", err)
	}
	if got, want := db.PublicSuffix("example.com"), "com"; got != want {
		t.Fatalf("PublicSuffix(example.com) = %q, want %q", got, want)
	}
}
