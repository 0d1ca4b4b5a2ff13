package term

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ParseTerm parses the dotted textual form of a term, the same form the
// printers emit: symbols separated by dots, with dots inside bracketed
// symbols left alone. Used by the CLI rule loader and by tests; it is
// not a general type grammar.
//
//	[Collection].Element
//	[Sequence:Iterator].[Sequence]
//	τ_0_0.[layout: AnyObject]
//
// Superclass and concrete type symbols embed whole terms and have no
// parseable spelling; construct them through the Context instead.
func ParseTerm(ctx *Context, input string) (*MutableTerm, error) {
	parts, err := splitSymbols(input)
	if err != nil {
		return nil, err
	}
	if len(parts) == 0 {
		return nil, errors.New("empty term")
	}

	result := NewMutableTerm()
	for _, part := range parts {
		symbol, err := ParseSymbol(ctx, part)
		if err != nil {
			return nil, errors.Wrapf(err, "in term %q", input)
		}
		result.Add(symbol)
	}
	return result, nil
}

// ParseSymbol parses a single symbol in the printed form.
func ParseSymbol(ctx *Context, input string) (Symbol, error) {
	switch {
	case input == "":
		return Symbol{}, errors.New("empty symbol")

	case strings.HasPrefix(input, "[layout: ") && strings.HasSuffix(input, "]"):
		constraint := input[len("[layout: ") : len(input)-1]
		if constraint == "" {
			return Symbol{}, errors.Errorf("layout symbol %q has no constraint", input)
		}
		return ctx.LayoutSymbol(constraint), nil

	case strings.HasPrefix(input, "[superclass: "), strings.HasPrefix(input, "[concrete: "):
		return Symbol{}, errors.Errorf("symbol %q has no parseable spelling", input)

	case strings.HasPrefix(input, "[") && strings.HasSuffix(input, "]"):
		body := input[1 : len(input)-1]
		if body == "" {
			return Symbol{}, errors.Errorf("protocol symbol %q has no name", input)
		}
		if proto, name, ok := strings.Cut(body, ":"); ok {
			if proto == "" || name == "" {
				return Symbol{}, errors.Errorf("malformed associated type symbol %q", input)
			}
			return ctx.AssociatedTypeSymbol(proto, name), nil
		}
		return ctx.ProtocolSymbol(body), nil

	case strings.HasPrefix(input, "τ_"):
		coords := strings.Split(input[len("τ_"):], "_")
		if len(coords) != 2 {
			return Symbol{}, errors.Errorf("malformed generic parameter symbol %q", input)
		}
		depth, err := strconv.Atoi(coords[0])
		if err != nil {
			return Symbol{}, errors.Wrapf(err, "generic parameter depth in %q", input)
		}
		index, err := strconv.Atoi(coords[1])
		if err != nil {
			return Symbol{}, errors.Wrapf(err, "generic parameter index in %q", input)
		}
		return ctx.GenericParamSymbol(depth, index), nil

	case strings.ContainsAny(input, "[]"):
		return Symbol{}, errors.Errorf("malformed symbol %q", input)

	default:
		return ctx.NameSymbol(input), nil
	}
}

// Split a dotted term spelling into symbol spellings, honoring brackets.
func splitSymbols(input string) ([]string, error) {
	var parts []string
	var current strings.Builder
	depth := 0

	for _, r := range input {
		switch r {
		case '[':
			depth++
			current.WriteRune(r)
		case ']':
			depth--
			if depth < 0 {
				return nil, errors.Errorf("unbalanced brackets in %q", input)
			}
			current.WriteRune(r)
		case '.':
			if depth > 0 {
				current.WriteRune(r)
				continue
			}
			parts = append(parts, strings.TrimSpace(current.String()))
			current.Reset()
		default:
			current.WriteRune(r)
		}
	}
	if depth != 0 {
		return nil, errors.Errorf("unbalanced brackets in %q", input)
	}
	if current.Len() > 0 || len(parts) > 0 {
		parts = append(parts, strings.TrimSpace(current.String()))
	}
	return parts, nil
}
