package term

import (
	"testing"
)

func TestParseTermRoundTrip(t *testing.T) {
	ctx := testCtx()

	testCases := []string{
		"A",
		"A.B.C",
		"[Collection].Element",
		"[Sequence:Iterator].[Sequence]",
		"τ_0_0.[layout: AnyObject]",
		"τ_1_2",
		"[P:T].[P:U].[Q]",
	}

	for _, tc := range testCases {
		t.Run(tc, func(t *testing.T) {
			parsed, err := ParseTerm(ctx, tc)
			if err != nil {
				t.Fatalf("parse of %q failed: %v", tc, err)
			}
			if parsed.String() != tc {
				t.Errorf("round trip of %q produced %q", tc, parsed)
			}
		})
	}
}

func TestParseTermInterns(t *testing.T) {
	ctx := testCtx()

	a, err := ParseTerm(ctx, "[Collection].Element")
	if err != nil {
		t.Fatal(err)
	}
	b, err := ParseTerm(ctx, "[Collection].Element")
	if err != nil {
		t.Fatal(err)
	}
	if ctx.Intern(a) != ctx.Intern(b) {
		t.Errorf("parsing the same spelling twice should intern to the same term")
	}
}

func TestParseTermSymbols(t *testing.T) {
	ctx := testCtx()

	parsed, err := ParseTerm(ctx, "[Sequence:Element].[layout: AnyObject]")
	if err != nil {
		t.Fatal(err)
	}
	if parsed.Len() != 2 {
		t.Fatalf("expected 2 symbols, got %d", parsed.Len())
	}
	if kind := parsed.Symbol(0).Kind(); kind != KindAssociatedType {
		t.Errorf("expected an associated type symbol, got %s", kind)
	}
	if proto := parsed.Symbol(0).Protocol(); proto != "Sequence" {
		t.Errorf("expected owning protocol Sequence, got %s", proto)
	}
	if kind := parsed.Symbol(1).Kind(); kind != KindLayout {
		t.Errorf("expected a layout symbol, got %s", kind)
	}

	param, err := ParseSymbol(ctx, "τ_1_2")
	if err != nil {
		t.Fatal(err)
	}
	depth, index := param.GenericParam()
	if depth != 1 || index != 2 {
		t.Errorf("expected generic parameter (1, 2), got (%d, %d)", depth, index)
	}
}

func TestParseTermErrors(t *testing.T) {
	ctx := testCtx()

	testCases := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"empty symbol", "A..B"},
		{"trailing dot", "A."},
		{"unbalanced open", "[Collection"},
		{"unbalanced close", "Collection]"},
		{"empty protocol", "[]"},
		{"empty layout", "[layout: ]"},
		{"malformed associated type", "[:Element]"},
		{"malformed generic param", "τ_0"},
		{"non-numeric generic param", "τ_a_b"},
		{"unparseable concrete", "[concrete: Int]"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParseTerm(ctx, tc.input); err == nil {
				t.Errorf("expected parse of %q to fail", tc.input)
			}
		})
	}
}
