package xhash

import (
	"fmt"
	"strconv"
	"strings"
)

// ExpandLabel expands a bus-style name like "a[3:0]" into its comma-joined
// per-bit list "a[3],a[2],a[1],a[0]". A name with no "[hi:lo]" suffix
// expands to itself with multiplicity 1. The range may count up or down;
// the emitted order always matches the written direction (hi first if
// hi>=lo, lo first otherwise).
func ExpandLabel(name string) (expanded string, mult int) {
	open := strings.LastIndexByte(name, '[')
	if open < 0 || !strings.HasSuffix(name, "]") {
		return name, 1
	}
	base := name[:open]
	rangeStr := name[open+1 : len(name)-1]
	colon := strings.IndexByte(rangeStr, ':')
	if colon < 0 {
		return name, 1
	}
	hi, err1 := strconv.Atoi(strings.TrimSpace(rangeStr[:colon]))
	lo, err2 := strconv.Atoi(strings.TrimSpace(rangeStr[colon+1:]))
	if err1 != nil || err2 != nil {
		return name, 1
	}

	var bits []string
	if hi >= lo {
		for i := hi; i >= lo; i-- {
			bits = append(bits, fmt.Sprintf("%s[%d]", base, i))
		}
	} else {
		for i := hi; i <= lo; i++ {
			bits = append(bits, fmt.Sprintf("%s[%d]", base, i))
		}
	}
	return strings.Join(bits, ","), len(bits)
}

// FindNth returns the nth (1-based) comma-separated field of s, or "" if n
// is out of range (the expanded-list counterpart of xschem's find_nth).
func FindNth(s, sep string, n int) string {
	if n < 1 {
		return ""
	}
	fields := strings.Split(s, sep)
	if n > len(fields) {
		return ""
	}
	return fields[n-1]
}
