/*
 * Copyright (c) 2018 The Go Authors. All rights reserved.
 * Use of this source code is governed by a BSD-style license that can be found in the LICENSE file.
 */

package httpurl

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/disy-oss/httpurl/internal/asciiset"
)

// Encode sets per component, straight out of the component-design table.
// Every set additionally implies controls (<0x20, 0x7f) are always encoded;
// that part is handled in canonicalize rather than baked into the bitmaps.
var (
	encodeSetUserinfo      = asciiset.New(` "':;<=>@[]^` + "`" + `{}|/\?#`)
	encodeSetPathSegment   = asciiset.New(` "<>^` + "`" + `{}|/\?#`)
	encodeSetQuery         = asciiset.New(` "'<>#`)
	encodeSetQueryComponent = asciiset.New(` "'<>#&=+`)
	encodeSetFragment      = asciiset.New(` "#<>`)
)

const upperhex = "0123456789ABCDEF"

type codecOptions struct {
	alreadyEncoded bool
	strict         bool
	asciiOnly      bool
	unicodeAllowed bool
}

func isHexDigit(b byte) bool {
	return (b >= '0' && b <= '9') || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

func unhex(b byte) byte {
	switch {
	case b >= '0' && b <= '9':
		return b - '0'
	case b >= 'a' && b <= 'f':
		return b - 'a' + 10
	default:
		return b - 'A' + 10
	}
}

func validPercentTriplet(s string, i int) bool {
	return s[i] == '%' && i+2 < len(s) && isHexDigit(s[i+1]) && isHexDigit(s[i+2])
}

func writePercentByte(buf *strings.Builder, b byte) {
	buf.WriteByte('%')
	buf.WriteByte(upperhex[b>>4])
	buf.WriteByte(upperhex[b&0xf])
}

// isFragmentControl reports whether r is one of the control code points
// that must still be percent-encoded in the fragment even though the
// fragment otherwise allows literal Unicode (unicodeAllowed).
func isFragmentControl(r rune) bool {
	return unicode.IsControl(r) || r == '\u2028' || r == '\u2029'
}

// canonicalize is the shared engine behind every C3 component encoder: it
// re-renders input into its canonical percent-encoded form given a
// component's encode set and codec switches.
func canonicalize(input string, encodeSet asciiset.Set, opts codecOptions) string {
	var buf strings.Builder
	buf.Grow(len(input))
	for i := 0; i < len(input); {
		c := input[i]

		if opts.alreadyEncoded && (c == '\t' || c == '\n' || c == '\f' || c == '\r') {
			i++
			continue
		}

		r, size := utf8.DecodeRuneInString(input[i:])
		if r == utf8.RuneError && size <= 1 {
			// A lone invalid byte can't be re-encoded as a code point; emit its
			// raw byte percent-encoded so the output stays well-formed ASCII.
			writePercentByte(&buf, c)
			i++
			continue
		}

		switch {
		case c == '%':
			valid := validPercentTriplet(input, i)
			if valid && (opts.alreadyEncoded || !opts.strict) {
				buf.WriteString(input[i : i+3])
				i += 3
				continue
			}
			if !opts.alreadyEncoded || (opts.strict && !valid) {
				writePercentByte(&buf, '%')
				i++
				continue
			}
			// alreadyEncoded, lenient, malformed triplet: literal '%' passes through.
			buf.WriteByte('%')
			i++
			continue
		}

		mustEncode := r < 0x20 || r == 0x7f || (r < 0x80 && encodeSet.Contains(byte(r)))
		if !mustEncode && r >= 0x80 {
			switch {
			case opts.unicodeAllowed:
				mustEncode = isFragmentControl(r)
			case opts.asciiOnly:
				mustEncode = true
			default:
				mustEncode = false
			}
		}

		if mustEncode {
			var tmp [utf8.UTFMax]byte
			n := utf8.EncodeRune(tmp[:], r)
			for _, b := range tmp[:n] {
				writePercentByte(&buf, b)
			}
		} else {
			buf.WriteString(input[i : i+size])
		}
		i += size
	}
	return buf.String()
}

// decodeComponent is the C1 percent decoder. plusIsSpace decodes a literal
// '+' to a space, which is only meaningful for query names/values.
func decodeComponent(input string, plusIsSpace bool) string {
	raw := decodeToBytes(input, plusIsSpace)
	return sanitizeUTF8(raw)
}

func decodeToBytes(input string, plusIsSpace bool) []byte {
	buf := make([]byte, 0, len(input))
	for i := 0; i < len(input); i++ {
		c := input[i]
		switch {
		case c == '%' && validPercentTriplet(input, i):
			buf = append(buf, unhex(input[i+1])<<4|unhex(input[i+2]))
			i += 2
		case c == '+' && plusIsSpace:
			buf = append(buf, ' ')
		default:
			buf = append(buf, c)
		}
	}
	return buf
}

// sanitizeUTF8 interprets raw as UTF-8, replacing each ill-formed maximal
// subpart with U+FFFD, exactly as required of percent-decoded bytes that
// may not have been valid UTF-8 to begin with.
func sanitizeUTF8(raw []byte) string {
	if utf8.Valid(raw) {
		return string(raw)
	}
	var sb strings.Builder
	sb.Grow(len(raw))
	for len(raw) > 0 {
		r, size := utf8.DecodeRune(raw)
		if r == utf8.RuneError && size == 1 {
			// DecodeRune rejects one byte at a time; extend over the longest
			// prefix that could still begin a valid sequence.
			for k := 2; k <= 3 && k <= len(raw); k++ {
				if !utf8.FullRune(raw[:k]) {
					size = k
				}
			}
		}
		sb.WriteRune(r)
		raw = raw[size:]
	}
	return sb.String()
}

func encodeUserinfo(s string, alreadyEncoded bool) string {
	return canonicalize(s, encodeSetUserinfo, codecOptions{alreadyEncoded: alreadyEncoded, strict: true, asciiOnly: true})
}

func encodePathSegment(s string, alreadyEncoded bool) string {
	return canonicalize(s, encodeSetPathSegment, codecOptions{alreadyEncoded: alreadyEncoded, strict: true, asciiOnly: true})
}

func encodeQuery(s string, alreadyEncoded bool) string {
	return canonicalize(s, encodeSetQuery, codecOptions{alreadyEncoded: alreadyEncoded, strict: true, asciiOnly: true})
}

func encodeQueryComponent(s string, alreadyEncoded bool) string {
	return canonicalize(s, encodeSetQueryComponent, codecOptions{alreadyEncoded: alreadyEncoded, strict: true, asciiOnly: true})
}

func encodeFragment(s string, alreadyEncoded bool) string {
	return canonicalize(s, encodeSetFragment, codecOptions{alreadyEncoded: alreadyEncoded, strict: true, unicodeAllowed: true})
}

func decodeUserinfo(s string) string      { return decodeComponent(s, false) }
func decodePathSegment(s string) string   { return decodeComponent(s, false) }
func decodeQueryPiece(s string) string    { return decodeComponent(s, true) }
func decodeFragmentValue(s string) string { return decodeComponent(s, false) }
