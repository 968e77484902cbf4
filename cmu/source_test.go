package cmu_test

import (
	"testing"

	"gecko/cmu"
)

func TestParseSource(t *testing.T) {
	for _, src := range cmu.Sources() {
		parsed, ok := cmu.ParseSource(src.String())
		if !ok || parsed != src {
			t.Errorf("ParseSource(%q) = %s, %v", src.String(), parsed, ok)
		}
	}

	if _, ok := cmu.ParseSource(" HFXO "); !ok {
		t.Error("ParseSource is case or space sensitive")
	}
	for _, name := range []string{"", "none", "pll"} {
		if _, ok := cmu.ParseSource(name); ok {
			t.Errorf("ParseSource(%q) accepted", name)
		}
	}
}

func TestSourceString(t *testing.T) {
	if s := cmu.Source(42).String(); s != "source(42)" {
		t.Errorf("String() = %q", s)
	}
	if cmu.None.Valid() || !cmu.HFXO.Valid() || cmu.Source(42).Valid() {
		t.Error("Valid() wrong")
	}
}
