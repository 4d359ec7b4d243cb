package compiler

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"

	"github.com/roach88/pulsenet/internal/ir"
)

// CompileNetwork parses a CUE value into a Network.
// Uses CUE SDK's Go API directly (not CLI subprocess).
//
// The value must contain a modules struct; field order fixes declaration
// order:
//
//	modules: {
//		broadcaster: {kind: "broadcast", outputs: ["a"]}
//		a: {kind: "flipflop", outputs: ["inv"]}
//		inv: {kind: "nand", outputs: ["a"]}
//	}
func CompileNetwork(v cue.Value) (ir.Network, error) {
	if err := v.Err(); err != nil {
		return ir.Network{}, formatCUEError(err)
	}

	modulesVal := v.LookupPath(cue.ParsePath("modules"))
	if !modulesVal.Exists() {
		return ir.Network{}, &CompileError{
			Field:   "modules",
			Message: "modules is required",
			Pos:     v.Pos(),
		}
	}

	iter, err := modulesVal.Fields()
	if err != nil {
		return ir.Network{}, formatCUEError(err)
	}

	var n ir.Network
	for iter.Next() {
		spec, err := compileModule(iter.Label(), iter.Value())
		if err != nil {
			return ir.Network{}, err
		}
		n.Modules = append(n.Modules, spec)
	}

	if len(n.Modules) == 0 {
		return ir.Network{}, &CompileError{
			Field:   "modules",
			Message: "at least one module is required",
			Pos:     modulesVal.Pos(),
		}
	}

	return n, nil
}

func compileModule(name string, v cue.Value) (ir.ModuleSpec, error) {
	spec := ir.ModuleSpec{Name: name}

	kindVal := v.LookupPath(cue.ParsePath("kind"))
	if !kindVal.Exists() {
		return spec, &CompileError{
			Field:   fmt.Sprintf("modules.%s.kind", name),
			Message: "module kind is required",
			Pos:     v.Pos(),
		}
	}
	kindStr, err := kindVal.String()
	if err != nil {
		return spec, formatCUEError(err)
	}
	spec.Kind, err = ir.ParseModuleKind(kindStr)
	if err != nil {
		return spec, &CompileError{
			Field:   fmt.Sprintf("modules.%s.kind", name),
			Message: err.Error(),
			Pos:     kindVal.Pos(),
		}
	}

	outputsVal := v.LookupPath(cue.ParsePath("outputs"))
	if !outputsVal.Exists() {
		return spec, &CompileError{
			Field:   fmt.Sprintf("modules.%s.outputs", name),
			Message: "module outputs are required",
			Pos:     v.Pos(),
		}
	}
	outIter, err := outputsVal.List()
	if err != nil {
		return spec, formatCUEError(err)
	}
	for outIter.Next() {
		dest, err := outIter.Value().String()
		if err != nil {
			return spec, formatCUEError(err)
		}
		if !validName(dest) {
			return spec, &CompileError{
				Field:   fmt.Sprintf("modules.%s.outputs", name),
				Message: fmt.Sprintf("invalid destination %q", dest),
				Pos:     outIter.Value().Pos(),
			}
		}
		spec.Destinations = append(spec.Destinations, dest)
	}
	if len(spec.Destinations) == 0 {
		return spec, &CompileError{
			Field:   fmt.Sprintf("modules.%s.outputs", name),
			Message: "at least one output is required",
			Pos:     outputsVal.Pos(),
		}
	}

	return spec, nil
}

// CompileNetworkSource compiles CUE source text into a Network. filename
// is used only for error positions.
func CompileNetworkSource(filename string, src []byte) (ir.Network, error) {
	ctx := cuecontext.New()
	v := ctx.CompileBytes(src, cue.Filename(filename))
	return CompileNetwork(v)
}
