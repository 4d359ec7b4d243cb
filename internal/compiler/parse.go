package compiler

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/roach88/pulsenet/internal/ir"
)

// ParseNetwork reads the line-oriented text format:
//
//	broadcaster -> a, b, c
//	%a -> b
//	&inv -> a
//
// One module per non-blank line. A "%" prefix declares a FlipFlop, "&" a
// Nand; the only untagged name allowed is broadcaster. Lines starting with
// "#" are comments. Declaration order is the line order.
func ParseNetwork(r io.Reader) (ir.Network, error) {
	var (
		n        ir.Network
		declared = make(map[string]int)
		line     int
	)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		spec, err := parseLine(text, line)
		if err != nil {
			return ir.Network{}, err
		}
		if first, dup := declared[spec.Name]; dup {
			return ir.Network{}, &CompileError{
				Field:   "name",
				Message: fmt.Sprintf("module %q already declared on line %d", spec.Name, first),
				Line:    line,
			}
		}
		declared[spec.Name] = line
		n.Modules = append(n.Modules, spec)
	}
	if err := scanner.Err(); err != nil {
		return ir.Network{}, fmt.Errorf("read network: %w", err)
	}

	return n, nil
}

// ParseNetworkString is ParseNetwork over an in-memory definition.
func ParseNetworkString(s string) (ir.Network, error) {
	return ParseNetwork(strings.NewReader(s))
}

func parseLine(text string, line int) (ir.ModuleSpec, error) {
	ident, dests, ok := strings.Cut(text, "->")
	if !ok {
		return ir.ModuleSpec{}, &CompileError{
			Field:   "wiring",
			Message: fmt.Sprintf("missing \"->\" in %q", text),
			Line:    line,
		}
	}

	spec, err := parseIdent(strings.TrimSpace(ident), line)
	if err != nil {
		return ir.ModuleSpec{}, err
	}

	dests = strings.TrimSpace(dests)
	if dests == "" {
		return ir.ModuleSpec{}, &CompileError{
			Field:   "destinations",
			Message: fmt.Sprintf("module %q has no destinations", spec.Name),
			Line:    line,
		}
	}
	for _, d := range strings.Split(dests, ",") {
		d = strings.TrimSpace(d)
		if !validName(d) {
			return ir.ModuleSpec{}, &CompileError{
				Field:   "destinations",
				Message: fmt.Sprintf("invalid destination %q of module %q", d, spec.Name),
				Line:    line,
			}
		}
		spec.Destinations = append(spec.Destinations, d)
	}

	return spec, nil
}

func parseIdent(ident string, line int) (ir.ModuleSpec, error) {
	var spec ir.ModuleSpec
	switch {
	case strings.HasPrefix(ident, "%"):
		spec.Kind, spec.Name = ir.KindFlipFlop, ident[1:]
	case strings.HasPrefix(ident, "&"):
		spec.Kind, spec.Name = ir.KindNand, ident[1:]
	case ident == ir.BroadcasterName:
		spec.Kind, spec.Name = ir.KindBroadcast, ident
	default:
		return spec, &CompileError{
			Field:   "name",
			Message: fmt.Sprintf("untagged module %q; only %s may omit %% or &", ident, ir.BroadcasterName),
			Line:    line,
		}
	}

	if !validName(spec.Name) {
		return spec, &CompileError{
			Field:   "name",
			Message: fmt.Sprintf("invalid module name %q", spec.Name),
			Line:    line,
		}
	}
	return spec, nil
}

// validName rejects empty names and names the text format cannot round-trip.
func validName(name string) bool {
	return name != "" && !strings.ContainsAny(name, " \t,%&#>")
}

// FormatNetwork renders n in the text format accepted by ParseNetwork.
func FormatNetwork(n ir.Network) string {
	var b strings.Builder
	for _, m := range n.Modules {
		b.WriteString(m.Kind.Prefix())
		b.WriteString(m.Name)
		b.WriteString(" -> ")
		b.WriteString(strings.Join(m.Destinations, ", "))
		b.WriteByte('\n')
	}
	return b.String()
}
