// Package ports extracts a canonical port model from upstream port
// descriptions.
//
// Two description formats are supported, each behind the Extractor
// interface:
//   - JSONExtractor reads Yosys-style structured metadata
//     ({"modules": {m: {"ports": {p: {"direction": ...}}}}})
//   - HeaderExtractor scans the module header of a Verilog source file
//
// The format is always chosen by the caller, never detected. Every
// identifier entering a Model has been through Sanitize, so generators can
// emit Model fields verbatim.
//
// Key invariants of a Model:
//   - exactly one clock input (name contains "clk")
//   - at least one data input, in encounter order
//   - at least one output, in encounter order
//   - no identifier appears twice
package ports
