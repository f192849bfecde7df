package ports

import (
	"fmt"
	"io"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	cuejson "cuelang.org/go/encoding/json"
)

// descriptionSchema is unified with every structured description. Structs
// stay open, so Yosys extras such as "bits", "cells" or "netnames" pass.
const descriptionSchema = `
modules: [string]: ports: [string]: direction: string
`

// JSONExtractor reads structured port metadata:
//
//	{"modules": {"<module>": {"ports": {"<port>": {"direction": "input"}}}}}
//
// The document goes through CUE rather than encoding/json because CUE keeps
// object field order, and port order is significant.
type JSONExtractor struct {
	Options
}

// NewJSONExtractor creates a JSONExtractor.
func NewJSONExtractor(opts Options) *JSONExtractor {
	return &JSONExtractor{Options: opts}
}

// Extract implements Extractor.
func (x *JSONExtractor) Extract(r io.Reader, source string) (*Model, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &SchemaError{Code: ErrCodeUnreadable, Message: "reading port description", Source: source, Err: err}
	}

	expr, err := cuejson.Extract(source, data)
	if err != nil {
		return nil, schemaErrorFromCUE(ErrCodeUnreadable, source, "decoding JSON", err)
	}

	ctx := cuecontext.New()
	doc := ctx.BuildExpr(expr)
	if err := doc.Err(); err != nil {
		return nil, schemaErrorFromCUE(ErrCodeUnreadable, source, "building document", err)
	}

	schema := ctx.CompileString(descriptionSchema, cue.Filename("ports-schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("compiling port description schema: %w", err)
	}
	if err := doc.Unify(schema).Validate(cue.Concrete(true)); err != nil {
		return nil, schemaErrorFromCUE(ErrCodeMalformed, source, "port description does not match schema", err)
	}

	modules := doc.LookupPath(cue.ParsePath("modules"))
	if !modules.Exists() {
		return nil, &SchemaError{Code: ErrCodeNoModule, Message: `missing "modules" mapping`, Source: source}
	}

	name, mod, err := x.selectModule(modules, source)
	if err != nil {
		return nil, err
	}

	portsVal := mod.LookupPath(cue.ParsePath("ports"))
	if !portsVal.Exists() {
		return nil, &SchemaError{
			Code:    ErrCodeMalformed,
			Message: fmt.Sprintf("module %q has no \"ports\" mapping", name),
			Source:  source,
		}
	}

	var ports []Port
	iter, err := portsVal.Fields()
	if err != nil {
		return nil, schemaErrorFromCUE(ErrCodeMalformed, source, "iterating ports", err)
	}
	for iter.Next() {
		portName := iter.Selector().Unquoted()
		raw, err := iter.Value().LookupPath(cue.ParsePath("direction")).String()
		if err != nil {
			return nil, schemaErrorFromCUE(ErrCodeMalformed, source, fmt.Sprintf("port %q direction", portName), err)
		}
		dir, ok := ParseDirection(raw)
		if !ok {
			return nil, NewInvalidDirectionError(source, portName, raw)
		}
		ports = append(ports, Port{Name: portName, Direction: dir})
	}

	return buildModel(name, source, ports, x.Role)
}

// selectModule returns the module named by Options.Module, or the first one.
func (x *JSONExtractor) selectModule(modules cue.Value, source string) (string, cue.Value, error) {
	if x.Module != "" {
		mod := modules.LookupPath(cue.MakePath(cue.Str(x.Module)))
		if !mod.Exists() {
			return "", cue.Value{}, &SchemaError{
				Code:    ErrCodeNoModule,
				Message: fmt.Sprintf("module %q not found", x.Module),
				Source:  source,
			}
		}
		return x.Module, mod, nil
	}

	iter, err := modules.Fields()
	if err != nil {
		return "", cue.Value{}, schemaErrorFromCUE(ErrCodeMalformed, source, "iterating modules", err)
	}
	if !iter.Next() {
		return "", cue.Value{}, &SchemaError{Code: ErrCodeNoModule, Message: "no modules in description", Source: source}
	}
	return iter.Selector().Unquoted(), iter.Value(), nil
}

// schemaErrorFromCUE keeps the first CUE error and its line, if any.
func schemaErrorFromCUE(code SchemaErrorCode, source, msg string, err error) *SchemaError {
	se := &SchemaError{Code: code, Message: msg, Source: source, Err: err}
	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return se
	}
	first := errs[0]
	se.Err = first
	for _, pos := range cueerrors.Positions(first) {
		if pos.IsValid() && pos.Filename() == source {
			se.Line = pos.Line()
			break
		}
	}
	return se
}
