package ports

import "github.com/roach88/mitergen/internal/ir"

// Fingerprint returns the content hash of the model. Two artifacts carrying
// the same fingerprint were generated from the same ports in the same order.
func (m *Model) Fingerprint() (string, error) {
	return ir.Fingerprint(ir.DomainPorts, ir.Object{
		"module":  ir.String(m.Module),
		"clock":   ir.String(m.Clock),
		"inputs":  ir.Strings(m.Inputs),
		"outputs": ir.Strings(m.Outputs),
		"role":    ir.String(string(m.Role)),
	})
}
