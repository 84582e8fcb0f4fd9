// Package xhash implements the content hash used to detect whether a
// schematic/symbol text file has changed and the bus/vector
// name-expansion helpers used by hierarchy port-map construction and the
// CLI expand command.
package xhash

import (
	"bytes"

	"golang.org/x/text/transform"
)

// Hash computes the DJB2-like 32-bit content hash of a sheet file:
// h=5381; for each non-'\r' byte b: h=h*33+b. A CR byte is included
// only when it is not immediately followed by LF, which is what gives CRLF
// and LF variants of the same text an identical hash while still letting a
// bare CR (not part of a CRLF pair) affect the result.
//
// The loop must stay bit-exact across platforms and releases, so unlike
// the rest of the CRLF-normalization plumbing it is not routed through a
// library transform.
func Hash(data []byte) uint32 {
	var h uint32 = 5381
	for i := 0; i < len(data); i++ {
		b := data[i]
		if b == '\r' {
			if i+1 < len(data) && data[i+1] == '\n' {
				continue
			}
		}
		h = h*33 + uint32(b)
	}
	return h
}

// crlfToLF is a golang.org/x/text/transform.Transformer that normalizes
// CRLF sequences to LF on ingest, leaving bare CR bytes untouched. It is
// used by NormalizeLineEndings below; Hash itself does not need it since
// its CR handling already makes CRLF and LF equivalent, but the
// parser/serializer boundary normalizes independently of hashing when it
// reads a file into the in-memory model.
type crlfToLF struct{ transform.NopResetter }

func (crlfToLF) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	for nSrc < len(src) {
		b := src[nSrc]
		if b == '\r' {
			if nSrc+1 < len(src) {
				if src[nSrc+1] == '\n' {
					if nDst >= len(dst) {
						return nDst, nSrc, transform.ErrShortDst
					}
					dst[nDst] = '\n'
					nDst++
					nSrc += 2
					continue
				}
			} else if !atEOF {
				// Might be the start of a CRLF split across buffers.
				return nDst, nSrc, transform.ErrShortSrc
			}
		}
		if nDst >= len(dst) {
			return nDst, nSrc, transform.ErrShortDst
		}
		dst[nDst] = b
		nDst++
		nSrc++
	}
	return nDst, nSrc, nil
}

// NormalizeLineEndings rewrites every CRLF pair in data to a bare LF,
// leaving bare CR bytes alone, via the x/text transform pipeline (the
// external parser's ingest-time normalization step).
func NormalizeLineEndings(data []byte) ([]byte, error) {
	out, _, err := transform.Bytes(crlfToLF{}, data)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// IsPathAnnotation reports whether line is one of the path-annotation
// comment forms excluded from the content hash: "** sch_path:",
// "-- sch_path:", "// sym_path:".
func IsPathAnnotation(line []byte) bool {
	for _, prefix := range pathAnnotationPrefixes {
		if bytes.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}

var pathAnnotationPrefixes = [][]byte{
	[]byte("** sch_path:"),
	[]byte("-- sch_path:"),
	[]byte("// sym_path:"),
}

// HashFile computes the content hash of a text file's bytes, excluding any
// path-annotation lines before hashing. Lines are split on LF;
// CRLF endings are tolerated because Hash's CR rule already normalizes
// them.
func HashFile(data []byte) uint32 {
	var buf bytes.Buffer
	start := 0
	for i := 0; i < len(data); i++ {
		if data[i] == '\n' {
			line := data[start : i+1]
			if !IsPathAnnotation(line) {
				buf.Write(line)
			}
			start = i + 1
		}
	}
	if start < len(data) {
		line := data[start:]
		if !IsPathAnnotation(line) {
			buf.Write(line)
		}
	}
	return Hash(buf.Bytes())
}
