package rewriting

import (
	"fmt"
	"io"

	"golang.org/x/exp/slices"

	"github.com/glossopoeia/rewrite/rewriting/term"
)

// A single application of a rewrite rule inside a larger term: the rule
// applied, the offset of the matched subterm, and whether the rule ran
// right-to-left. Steps are pure data so that derivations stay
// inspectable, invertible, and concatenable.
type RewriteStep struct {
	Offset  int
	RuleID  int
	Inverse bool
}

// Flip the direction of the step.
func (s *RewriteStep) Invert() {
	s.Inverse = !s.Inverse
}

// The pattern and replacement of the step as it executes: the rule's
// two sides, swapped for an inverse step.
func (s RewriteStep) sides(sys *RewriteSystem) (pattern, replacement term.Term) {
	rule := sys.GetRule(s.RuleID)
	if s.Inverse {
		return rule.RHS(), rule.LHS()
	}
	return rule.LHS(), rule.RHS()
}

// Apply the step to the term in place. The matched slice must equal the
// step's pattern; anything else means the path and the term have come
// apart, which is a bug in whoever assembled the path.
func (s RewriteStep) ApplyTo(t *term.MutableTerm, sys *RewriteSystem) {
	pattern, replacement := s.sides(sys)
	end := s.Offset + pattern.Len()
	if s.Offset < 0 || end > t.Len() || !slices.Equal(t.Symbols()[s.Offset:end], pattern.Symbols()) {
		panic("rewriting: rewrite step does not match the term")
	}
	t.RewriteSubTerm(s.Offset, end, replacement)
}

// Print the step in the form prefix.(lhs => rhs).suffix, with <= for an
// inverse step, then apply it to the cursor term so the next printed
// step sees the term it actually starts from.
func (s RewriteStep) Dump(w io.Writer, cursor *term.MutableTerm, sys *RewriteSystem) {
	rule := sys.GetRule(s.RuleID)
	pattern, _ := s.sides(sys)

	prefix := term.NewMutableTerm(cursor.Symbols()[:s.Offset]...)
	suffix := term.NewMutableTerm(cursor.Symbols()[s.Offset+pattern.Len():]...)

	if !prefix.IsEmpty() {
		fmt.Fprintf(w, "%s.", prefix)
	}
	arrow := " => "
	if s.Inverse {
		arrow = " <= "
	}
	fmt.Fprintf(w, "(%s%s%s)", rule.LHS(), arrow, rule.RHS())
	if !suffix.IsEmpty() {
		fmt.Fprintf(w, ".%s", suffix)
	}

	s.ApplyTo(cursor, sys)
}

// An ordered sequence of rewrite steps denoting a derivation between
// two terms. A path whose start and end coincide is a loop; the rewrite
// system records such loops as homotopy generators.
type RewritePath struct {
	steps []RewriteStep
}

// The recorded steps. Callers must not mutate the returned slice.
func (p *RewritePath) Steps() []RewriteStep {
	return p.steps
}

func (p *RewritePath) IsEmpty() bool {
	return len(p.steps) == 0
}

// Push a single step.
func (p *RewritePath) Add(step RewriteStep) {
	p.steps = append(p.steps, step)
}

// Concatenate another path onto this one. No simplification is
// performed; a step followed by its own inverse stays in the path.
func (p *RewritePath) Append(other RewritePath) {
	p.steps = append(p.steps, other.steps...)
}

// Reverse the derivation: reverse the step sequence and flip every
// step's direction. Inverting twice restores the original path.
func (p *RewritePath) Invert() {
	for i, j := 0, len(p.steps)-1; i < j; i, j = i+1, j-1 {
		p.steps[i], p.steps[j] = p.steps[j], p.steps[i]
	}
	for i := range p.steps {
		p.steps[i].Invert()
	}
}

func (p *RewritePath) Clone() RewritePath {
	return RewritePath{steps: slices.Clone(p.steps)}
}

// Apply every step of the path to the term in place.
func (p RewritePath) ApplyTo(t *term.MutableTerm, sys *RewriteSystem) {
	for _, step := range p.steps {
		step.ApplyTo(t, sys)
	}
}

// Print the steps applied in sequence to the cursor term, separated by
// a tensor product glyph. The cursor is mutated in tandem; pass a copy
// when the original must survive.
func (p RewritePath) Dump(w io.Writer, cursor *term.MutableTerm, sys *RewriteSystem) {
	first := true
	for _, step := range p.steps {
		if !first {
			fmt.Fprint(w, " ⊗ ")
		} else {
			first = false
		}
		step.Dump(w, cursor, sys)
	}
}

// A loop in the rewriting graph: applying the path to the basepoint
// yields the basepoint again. Every redundant way of deriving an
// equation materializes as one of these, so a later homotopy reduction
// pass can reason about which rules are consequences of others.
type HomotopyGenerator struct {
	Basepoint term.Term
	Loop      RewritePath
}
