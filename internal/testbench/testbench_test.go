package testbench

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/mitergen/internal/miter"
	"github.com/roach88/mitergen/internal/ports"
	"github.com/roach88/mitergen/internal/testutil"
)

func modelABY() *ports.Model {
	return testutil.DataModel([]string{"a", "b"}, "y")
}

func TestGenerateGoldenTrace(t *testing.T) {
	out, err := Generate(modelABY(), Options{
		Seed:        0xb15d635f,
		Cycles:      100,
		Trace:       true,
		TracePath:   "out/eq_top.vcd",
		Fingerprint: "feedface",
	})
	require.NoError(t, err)
	testutil.NewGolden(t).Assert(t, "trace_internal", out)
}

func TestGenerateGoldenVisibleNoTrace(t *testing.T) {
	m := &ports.Model{
		Module:  "H",
		Clock:   "clk",
		Inputs:  []string{"a___05Fb", "c"},
		Outputs: []string{"y", "z"},
		Role:    ports.RoleData,
	}
	out, err := Generate(m, Options{Seed: 1, Cycles: 5, Layout: miter.LayoutVisible})
	require.NoError(t, err)
	testutil.NewGolden(t).Assert(t, "notrace_visible", out)
}

func TestGenerateCycleSequence(t *testing.T) {
	out, err := Generate(modelABY(), Options{Seed: 7, Cycles: 10, Trace: true})
	require.NoError(t, err)
	text := string(out)

	low := strings.Index(text, "top->clk = 0;")
	dumpLow := strings.Index(text, "tfp->dump(static_cast<uint64_t>(i) * 10);")
	driveA := strings.Index(text, "top->a = rnd_bit();")
	driveB := strings.Index(text, "top->b = rnd_bit();")
	high := strings.Index(text, "top->clk = 1;")
	dumpHigh := strings.Index(text, "tfp->dump(static_cast<uint64_t>(i) * 10 + 5);")
	check := strings.Index(text, "if (top->trigger) {")

	for _, idx := range []int{low, dumpLow, driveA, driveB, high, dumpHigh, check} {
		require.NotEqual(t, -1, idx)
	}
	assert.Less(t, low, dumpLow)
	assert.Less(t, dumpLow, driveA)
	assert.Less(t, driveA, driveB, "inputs are driven in canonical order")
	assert.Less(t, driveB, high)
	assert.Less(t, high, dumpHigh)
	assert.Less(t, dumpHigh, check)

	assert.Contains(t, text, "uint32_t cycles = 10;")
	assert.Contains(t, text, "std::mt19937 rng(seed);")
	assert.Contains(t, text, `tfp->open("eq_top.vcd");`)
}

func TestGenerateTraceClosedOnEveryExit(t *testing.T) {
	out, err := Generate(modelABY(), Options{Seed: 1, Cycles: 1, Trace: true})
	require.NoError(t, err)
	text := string(out)

	assert.Equal(t, 1, strings.Count(text, "tfp->open("))
	assert.Equal(t, 2, strings.Count(text, "tfp->close();"))
	assert.Equal(t, 2, strings.Count(text, "delete top;"))

	fail := text[strings.Index(text, "if (top->trigger)"):strings.Index(text, "return 1;")]
	assert.Contains(t, fail, "tfp->close();")

	pass := text[strings.Index(text, "[TB] PASS"):strings.Index(text, "return 0;")]
	assert.Contains(t, pass, "tfp->close();")
}

func TestGenerateWithoutTrace(t *testing.T) {
	out, err := Generate(modelABY(), Options{Seed: 1, Cycles: 1})
	require.NoError(t, err)
	text := string(out)

	assert.NotContains(t, text, "verilated_vcd_c.h")
	assert.NotContains(t, text, "tfp")
	assert.NotContains(t, text, "traceEverOn")
}

func TestGenerateTriggerRole(t *testing.T) {
	m := testutil.TriggerModel("eq_top", []string{"_01_", "_02_"}, "done")
	out, err := Generate(m, Options{Seed: 0x5762b088, Cycles: 100, Trace: true, TracePath: "bug_dir/eq_top.vcd"})
	require.NoError(t, err)
	text := string(out)

	assert.Contains(t, text, "if (top->done) {")
	assert.Contains(t, text, "uint32_t seed = 0x5762b088;")
	assert.Contains(t, text, `tfp->open("bug_dir/eq_top.vcd");`)
	assert.Contains(t, text, "        top->_01_ = rnd_bit();\n        top->_02_ = rnd_bit();\n")

	_, err = Generate(m, Options{Seed: 1, Cycles: 1, Layout: miter.LayoutVisible})
	require.Error(t, err)
	assert.True(t, ports.IsInvalidArgument(err))
}

func TestGenerateCustomTop(t *testing.T) {
	out, err := Generate(modelABY(), Options{Top: "miter", Seed: 1, Cycles: 1})
	require.NoError(t, err)
	text := string(out)
	assert.Contains(t, text, "#include <Vmiter.h>")
	assert.Contains(t, text, "Vmiter* top = new Vmiter;")

	_, err = Generate(modelABY(), Options{Top: "9top", Seed: 1, Cycles: 1})
	require.Error(t, err)
	assert.True(t, ports.IsInvalidArgument(err))
}

func TestGenerateDeterministic(t *testing.T) {
	opts := Options{Seed: 99, Cycles: 1000, Trace: true, TracePath: "run/eq_top.vcd"}
	first, err := Generate(modelABY(), opts)
	require.NoError(t, err)
	again, err := Generate(modelABY(), opts)
	require.NoError(t, err)
	assert.Equal(t, first, again)

	opts.Seed = 100
	other, err := Generate(modelABY(), opts)
	require.NoError(t, err)
	assert.NotEqual(t, first, other)
}

func TestDefaultTracePath(t *testing.T) {
	assert.Equal(t, "eq_top.vcd", DefaultTracePath("", ""))
	assert.Equal(t, "out/eq_top.vcd", DefaultTracePath("out", "eq_top"))
	assert.Equal(t, "out/miter.vcd", DefaultTracePath("./out/", "miter"))
}
