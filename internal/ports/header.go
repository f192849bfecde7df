package ports

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"
)

// Scope selects where HeaderExtractor looks for port declarations.
type Scope string

const (
	// ScopeHeader recognises declarations between the module line and the
	// line containing ");" (ANSI-style headers).
	ScopeHeader Scope = "header"

	// ScopeModule also recognises declarations after the header, up to
	// endmodule (non-ANSI headers such as "module top(a, b, y);").
	ScopeModule Scope = "module"
)

// ParseScope parses a scope name; the empty string means ScopeModule.
func ParseScope(s string) (Scope, error) {
	switch Scope(s) {
	case "", ScopeModule:
		return ScopeModule, nil
	case ScopeHeader:
		return ScopeHeader, nil
	}
	return "", fmt.Errorf("unknown scope %q: must be %q or %q", s, ScopeHeader, ScopeModule)
}

const headerTerminator = ");"

var (
	moduleLineRE = regexp.MustCompile(`^\s*module\b\s*([A-Za-z_][A-Za-z0-9_$]*)?`)
	endmoduleRE  = regexp.MustCompile(`^\s*endmodule\b`)
	portDeclRE   = regexp.MustCompile(`^\s*(input|output)\s+(?:(?:wire|reg|logic)\s+)?([A-Za-z_][A-Za-z_0-9]*)\s*[;,]?\s*$`)
	portLikeRE   = regexp.MustCompile(`^\s*(input|output)\b`)
)

var typeQualifiers = map[string]bool{"wire": true, "reg": true, "logic": true}

// HeaderExtractor scans a Verilog source line by line. It has no grammar:
// vector ports, multi-name declarations and single-line ANSI headers are
// not recognised.
type HeaderExtractor struct {
	Options
	Scope Scope
}

// NewHeaderExtractor creates a HeaderExtractor.
func NewHeaderExtractor(opts Options, scope Scope) *HeaderExtractor {
	if scope == "" {
		scope = ScopeModule
	}
	return &HeaderExtractor{Options: opts, Scope: scope}
}

type scanState int

const (
	stateOutside scanState = iota
	stateHeader
	stateBody
	stateDone
)

// Extract implements Extractor.
func (x *HeaderExtractor) Extract(r io.Reader, source string) (*Model, error) {
	var (
		module     string
		headerLine int
		ports      []Port
		state      = stateOutside
		lineNo     int
	)

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for state != stateDone && sc.Scan() {
		line := sc.Text()
		lineNo++

		switch state {
		case stateOutside:
			mm := moduleLineRE.FindStringSubmatch(line)
			if mm == nil {
				continue
			}
			if x.Module != "" && mm[1] != x.Module {
				continue
			}
			module, headerLine = mm[1], lineNo
			state = stateHeader
			if strings.Contains(line, headerTerminator) {
				state = stateBody
			}

		case stateHeader:
			ports = x.collect(ports, line, lineNo, source)
			if strings.Contains(line, headerTerminator) {
				state = stateBody
			}

		case stateBody:
			if endmoduleRE.MatchString(line) {
				state = stateDone
				continue
			}
			if x.Scope == ScopeModule {
				ports = x.collect(ports, line, lineNo, source)
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, &SchemaError{Code: ErrCodeUnreadable, Message: "reading module source", Source: source, Line: lineNo, Err: err}
	}

	if headerLine == 0 {
		msg := "no module header found"
		if x.Module != "" {
			msg = fmt.Sprintf("module %q not found", x.Module)
		}
		return nil, &SchemaError{Code: ErrCodeNoModule, Message: msg, Source: source}
	}

	slog.Debug("module header scanned",
		"source", source,
		"module", module,
		"line", headerLine,
		"ports", len(ports),
	)

	m, err := buildModel(module, source, ports, x.Role)
	if err != nil {
		var mp *MissingPortError
		if errors.As(err, &mp) {
			mp.Line = headerLine
		}
		return nil, err
	}
	return m, nil
}

// collect appends the port declared on line, if any. Lines that look like a
// declaration but are not the simple scalar form are reported and skipped.
func (x *HeaderExtractor) collect(ports []Port, line string, lineNo int, source string) []Port {
	mm := portDeclRE.FindStringSubmatch(line)
	if mm == nil || typeQualifiers[mm[2]] {
		if portLikeRE.MatchString(line) {
			slog.Warn("port declaration not recognised",
				"source", source,
				"line", lineNo,
				"text", strings.TrimSpace(line),
			)
		}
		return ports
	}
	return append(ports, Port{Name: mm[2], Direction: Direction(mm[1]), Line: lineNo})
}
