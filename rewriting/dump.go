package rewriting

import (
	"fmt"
	"io"
)

// Write the rule table and the homotopy generators in their textual
// form. Each generator's loop is printed step by step against a cursor
// copy of its basepoint, so every printed step shows the term it is
// about to rewrite.
func (s *RewriteSystem) Dump(w io.Writer) {
	fmt.Fprintf(w, "Rewrite system: {\n")
	for i := range s.rules {
		fmt.Fprintf(w, "- %s\n", &s.rules[i])
	}
	fmt.Fprintf(w, "}\n")
	fmt.Fprintf(w, "Homotopy generators: {\n")
	for _, generator := range s.generators {
		fmt.Fprintf(w, "- %s: ", generator.Basepoint)
		generator.Loop.Dump(w, generator.Basepoint.Mutable(), s)
		fmt.Fprintf(w, "\n")
	}
	fmt.Fprintf(w, "}\n")
}
