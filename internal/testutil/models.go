package testutil

import "github.com/roach88/mitergen/internal/ports"

// DataModel returns a data-role model of module "H" clocked by clk.
func DataModel(inputs []string, outputs ...string) *ports.Model {
	return &ports.Model{
		Module:  "H",
		Clock:   "clk",
		Inputs:  inputs,
		Outputs: outputs,
		Role:    ports.RoleData,
	}
}

// TriggerModel returns a trigger-role model of an existing miter whose
// single completion output is trigger.
func TriggerModel(module string, inputs []string, trigger string) *ports.Model {
	return &ports.Model{
		Module:  module,
		Clock:   "clk",
		Inputs:  inputs,
		Outputs: []string{trigger},
		Role:    ports.RoleTrigger,
	}
}
