/*
 * Copyright (c) 2018 The Go Authors. All rights reserved.
 * Use of this source code is governed by a BSD-style license that can be found in the LICENSE file.
 */

package httpurl

import "strings"

// pathSegments is the encoded, already-slash-free representation of a path:
// the leading '/' is implicit between the empty receiver and segments[0],
// and between every pair of adjacent segments. A root path is []string{""}.
type pathSegments []string

func (p pathSegments) String() string {
	return "/" + strings.Join(p, "/")
}

// rawPathPieces splits an already-encoded path into its '/'-delimited
// pieces without touching dot segments, for callers (the resolver) that
// need to merge two segment lists before normalizing the combination.
func rawPathPieces(encodedPath string) []string {
	if encodedPath == "" {
		return []string{""}
	}
	trimmed := encodedPath
	if strings.HasPrefix(trimmed, "/") {
		trimmed = trimmed[1:]
	}
	return strings.Split(trimmed, "/")
}

// parsePathFromRaw turns a raw path straight out of the scanner (with '\'
// already folded to '/') into dot-segment-normalized encoded segments: each
// '/'-delimited piece is percent-encoded with alreadyEncoded=true before
// dot-segment recognition, so a literal "%2e" in the source text is still
// seen as a dot by removeDotSegments.
func parsePathFromRaw(rawPath string) pathSegments {
	pieces := rawPathPieces(rawPath)
	for i, piece := range pieces {
		pieces[i] = encodePathSegment(piece, true)
	}
	return removeDotSegments(pieces)
}

// isDotSegment reports whether seg, once its encoded dots are recognized,
// is "." — a percent-encoding of it is still a dot for this purpose only.
func isDotSegment(seg string) bool {
	return strings.EqualFold(seg, ".") || strings.EqualFold(seg, "%2e")
}

// isDotDotSegment reports whether seg is "..", likewise accepting any
// percent-encoded variant of either dot.
func isDotDotSegment(seg string) bool {
	switch {
	case strings.EqualFold(seg, ".."):
		return true
	case strings.EqualFold(seg, "%2e.") || strings.EqualFold(seg, ".%2e") || strings.EqualFold(seg, "%2e%2e"):
		return true
	default:
		return false
	}
}

// removeDotSegments implements RFC 3986 §5.2.4 on a segment list rather
// than on raw characters: each "." segment is dropped, each ".." pops the
// previous segment, and a terminal drop/pop leaves a trailing empty
// segment so a trailing slash survives.
func removeDotSegments(segs []string) pathSegments {
	out := make([]string, 0, len(segs))
	for i, seg := range segs {
		last := i == len(segs)-1
		switch {
		case isDotSegment(seg):
			if last {
				out = append(out, "")
			}
		case isDotDotSegment(seg):
			if len(out) > 0 {
				out = out[:len(out)-1]
			}
			if last {
				out = append(out, "")
			}
		default:
			out = append(out, seg)
		}
	}
	if len(out) == 0 {
		out = append(out, "")
	}
	return pathSegments(out)
}

// foldBackslashes applies the WHATWG leniency of treating '\' the same as
// '/' throughout a path.
func foldBackslashes(s string) string {
	return strings.ReplaceAll(s, `\`, "/")
}

// splitOnSlashes is the splitting step of Builder.AddPathSegments: '\'
// folds to '/' and the argument is split on '/'. Dropping the existing
// path's trailing empty segment and dot-segment normalization of the
// result are done by the caller, not here.
func splitOnSlashes(s string) []string {
	s = strings.ReplaceAll(s, `\`, "/")
	return strings.Split(s, "/")
}
