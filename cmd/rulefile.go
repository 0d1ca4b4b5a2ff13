package cmd

import (
	"os"

	"github.com/pkg/errors"
	"github.com/rjNemo/underscore"
	"gopkg.in/yaml.v3"

	"github.com/glossopoeia/rewrite/rewriting"
	"github.com/glossopoeia/rewrite/rewriting/protocol"
	"github.com/glossopoeia/rewrite/rewriting/term"
)

// The on-disk rule set format: the protocol declarations the reduction
// order needs, and the initial rules with both sides in the printed
// term syntax.
type ruleFile struct {
	Protocols []protocolDecl `yaml:"protocols"`
	Rules     []rulePair     `yaml:"rules"`
}

type protocolDecl struct {
	Name     string   `yaml:"name"`
	Inherits []string `yaml:"inherits"`
}

type rulePair struct {
	LHS string `yaml:"lhs"`
	RHS string `yaml:"rhs"`
}

func loadRuleFile(ctx *term.Context, path string) ([]rewriting.RulePair, *protocol.Graph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, errors.Wrap(err, "reading rule file")
	}

	var file ruleFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, nil, errors.Wrap(err, "parsing rule file")
	}

	decls := underscore.Map(file.Protocols, func(p protocolDecl) protocol.Decl {
		return protocol.Decl{Name: p.Name, Inherits: p.Inherits}
	})
	graph := protocol.NewGraph(decls)

	pairs := make([]rewriting.RulePair, 0, len(file.Rules))
	for i, pair := range file.Rules {
		lhs, err := term.ParseTerm(ctx, pair.LHS)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "rule %d left hand side", i)
		}
		rhs, err := term.ParseTerm(ctx, pair.RHS)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "rule %d right hand side", i)
		}
		pairs = append(pairs, rewriting.RulePair{LHS: lhs, RHS: rhs})
	}
	return pairs, graph, nil
}

// Build a rewrite system from the --rules file.
func newSystem(ctx *term.Context) (*rewriting.RewriteSystem, error) {
	pairs, graph, err := loadRuleFile(ctx, rulesPath)
	if err != nil {
		return nil, err
	}
	system := rewriting.NewRewriteSystem(ctx)
	system.Initialize(pairs, graph)
	return system, nil
}
