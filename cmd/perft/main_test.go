package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRunExitCodes(t *testing.T) {
	cases := []struct {
		name string
		args []string
		want int
	}{
		{"no depth", nil, 2},
		{"bad fen", []string{"-depth", "1", "-fen", "8/8/8 w - - 0 1"}, 2},
		{"unknown flag", []string{"-nodes", "3"}, 2},
		{"divide", []string{"-depth", "1", "-divide"}, 0},
		{"count", []string{"-depth", "2", "-workers", "1"}, 0},
		{"missing suite", []string{"-suite", filepath.Join(t.TempDir(), "none.epd")}, 2},
	}
	for _, c := range cases {
		if got := run(c.args); got != c.want {
			t.Fatalf("%s: got exit %d want %d", c.name, got, c.want)
		}
	}
}

func TestRunStopsCPUProfileOnError(t *testing.T) {
	dir := t.TempDir()
	cpu := filepath.Join(dir, "cpu.prof")
	mem := filepath.Join(dir, "missing", "mem.prof")
	if got := run([]string{"-depth", "2", "-cpuprofile", cpu, "-memprofile", mem}); got != 2 {
		t.Fatalf("got exit %d want 2", got)
	}
	info, err := os.Stat(cpu)
	if err != nil {
		t.Fatalf("cpu profile: %v", err)
	}
	if info.Size() == 0 {
		t.Fatalf("cpu profile left empty")
	}
	// A profile still running would make the next start fail.
	if got := run([]string{"-depth", "1", "-cpuprofile", cpu}); got != 0 {
		t.Fatalf("second run: got exit %d want 0", got)
	}
}
