package attr

import "testing"

func TestGetSet(t *testing.T) {
	s := "name=R1\nvalue=10k"
	if Get(s, "value") != "10k" {
		t.Fatalf("Get value = %q", Get(s, "value"))
	}
	s = Set(s, "value", "4.7k")
	if Get(s, "value") != "4.7k" {
		t.Fatalf("Set did not update: %q", s)
	}
	s = Set(s, "footprint", "0805")
	if Get(s, "footprint") != "0805" {
		t.Fatalf("Set did not append: %q", s)
	}
}

func TestSetQuotesValuesWithSpaces(t *testing.T) {
	s := Set("", "descr", "hello world")
	if Get(s, "descr") != "hello world" {
		t.Fatalf("round-trip with spaces failed: %q -> %q", s, Get(s, "descr"))
	}
}

func TestSubstSymname(t *testing.T) {
	s := "schematic=@symname.sch"
	out := SubstSymname(s, "nand2")
	if Get(out, "schematic") != "nand2.sch" {
		t.Fatalf("SubstSymname = %q", Get(out, "schematic"))
	}
}

func TestUnset(t *testing.T) {
	s := "a=1\nb=2\nc=3"
	s = Unset(s, "b")
	if Has(s, "b") {
		t.Fatal("b should be removed")
	}
	if Get(s, "a") != "1" || Get(s, "c") != "3" {
		t.Fatalf("unexpected remainder: %q", s)
	}
}

func TestMalformedAttributeDoesNotPanic(t *testing.T) {
	s := `unterminated="oops`
	_ = Get(s, "unterminated")
	_ = Set(s, "x", "1")
}

func TestRectFlagsPrecedence(t *testing.T) {
	cases := []struct {
		attr string
		want int
	}{
		{"type=unscaled", RectFlagEmbeddedImage | RectFlagImageUnscaled},
		{"type=image", RectFlagEmbeddedImage},
		{"type=unlocked", RectFlagGraph | RectFlagUnlockedGraph},
		{"type=graph", RectFlagGraph},
		{"type=plain", 0},
	}
	for _, c := range cases {
		got := RectFlags(c.attr)
		if got != c.want {
			t.Errorf("RectFlags(%q) = %d, want %d", c.attr, got, c.want)
		}
	}
}

func TestUniqueName(t *testing.T) {
	taken := map[string]bool{"R1": true, "R1_1": true}
	got := UniqueName("R1", taken)
	if got != "R1_2" {
		t.Fatalf("UniqueName = %q, want R1_2", got)
	}
}
