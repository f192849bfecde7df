package testbench

import "text/template"

// Per cycle the driver steps CLOCK_LOW_EVAL, DRIVE_INPUTS, CLOCK_HIGH_EVAL,
// CHECK_TRIGGER, then either continues or halts on the first divergence.
var driverTpl = template.Must(template.New("testbench").Parse(`// Generated by mitergen. DO NOT EDIT.
{{if .Fingerprint}}// Port model sha256:{{.Fingerprint}}
{{end}}#include <verilated.h>
{{if .Trace}}#include <verilated_vcd_c.h>
{{end}}#include <{{.Class}}.h>
#include <cstdint>
#include <iostream>
#include <random>

int main(int argc, char **argv) {
    Verilated::commandArgs(argc, argv);
{{if .Trace}}    VerilatedVcdC* tfp = new VerilatedVcdC;
{{end}}    {{.Class}}* top = new {{.Class}};

{{if .Trace}}    Verilated::traceEverOn(true);
    top->trace(tfp, 99);
    tfp->open({{.TracePath}});

{{end}}    uint32_t seed = {{.Seed}};
    uint32_t cycles = {{.Cycles}};
    std::mt19937 rng(seed);
    auto rnd_bit = [&]() { return rng() & 1; };

    std::cerr << "[TB] seed=" << seed << " cycles=" << cycles << std::endl;

    for (uint32_t i = 0; i < cycles; ++i) {
        top->{{.Clock}} = 0;
        top->eval();
{{if .Trace}}        tfp->dump(static_cast<uint64_t>(i) * 10);
{{end}}{{range .Inputs}}        top->{{.}} = rnd_bit();
{{end}}
        top->{{.Clock}} = 1;
        top->eval();
{{if .Trace}}        tfp->dump(static_cast<uint64_t>(i) * 10 + 5);
{{end}}        if (top->{{.Trigger}}) {
            std::cerr << "[TB] Triggered at cycle " << i << std::endl;
{{range .Compared}}            if (!top->{{.}}) std::cerr << "[TB]   mismatch: {{.}}" << std::endl;
{{end}}{{if .Trace}}            tfp->close();
            delete tfp;
{{end}}            delete top;
            return 1;
        }
    }

    std::cerr << "[TB] PASS (" << cycles << " cycles)" << std::endl;
{{if .Trace}}    tfp->close();
    delete tfp;
{{end}}    delete top;
    return 0;
}
`))

type driverData struct {
	Fingerprint string
	Class       string
	Trace       bool
	TracePath   string // already a quoted C++ string literal
	Seed        string
	Cycles      uint32
	Clock       string
	Inputs      []string
	Trigger     string
	Compared    []string // comparison wires exported by a visible-layout wrapper
}
