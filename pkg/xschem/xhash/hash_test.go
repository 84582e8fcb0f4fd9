package xhash

import "testing"

func TestHashEquivalence(t *testing.T) {
	a := []byte("ab\nc\n")
	b := []byte("ab\r\nc\r\n")
	if Hash(a) != Hash(b) {
		t.Errorf("Hash(LF) = %d, Hash(CRLF) = %d, want equal", Hash(a), Hash(b))
	}

	c := []byte("ab\rc")
	withBareCR := Hash(c)
	withoutCR := Hash([]byte("abc"))
	if withBareCR == withoutCR {
		t.Errorf("bare CR should affect the hash")
	}
}

func TestHashFileExcludesPathAnnotations(t *testing.T) {
	withPath := []byte("** sch_path: /foo/bar.sch\nline1\nline2\n")
	withoutPath := []byte("line1\nline2\n")
	if HashFile(withPath) != HashFile(withoutPath) {
		t.Errorf("HashFile should ignore sch_path annotation lines")
	}
}

func TestExpandLabel(t *testing.T) {
	cases := []struct {
		in       string
		expanded string
		mult     int
	}{
		{"a[3:0]", "a[3],a[2],a[1],a[0]", 4},
		{"a[0:3]", "a[0],a[1],a[2],a[3]", 4},
		{"n", "n", 1},
		{"#net[1:0]", "#net[1],#net[0]", 2},
	}
	for _, c := range cases {
		got, mult := ExpandLabel(c.in)
		if got != c.expanded || mult != c.mult {
			t.Errorf("ExpandLabel(%q) = (%q, %d), want (%q, %d)", c.in, got, mult, c.expanded, c.mult)
		}
	}
}

func TestFindNth(t *testing.T) {
	if got := FindNth("a,b,c", ",", 2); got != "b" {
		t.Errorf("FindNth = %q, want b", got)
	}
	if got := FindNth("a,b,c", ",", 5); got != "" {
		t.Errorf("FindNth out of range should be empty, got %q", got)
	}
}

func TestNormalizeLineEndings(t *testing.T) {
	out, err := NormalizeLineEndings([]byte("a\r\nb\rc\r\n"))
	if err != nil {
		t.Fatalf("NormalizeLineEndings error: %v", err)
	}
	if string(out) != "a\nb\rc\n" {
		t.Errorf("NormalizeLineEndings = %q, want %q", out, "a\nb\rc\n")
	}
}
