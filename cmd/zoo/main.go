// Package main provides the model zoo CLI.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/klauspost/cpuid/v2"
	"github.com/pkg/errors"

	"github.com/born-ml/zoo/backend/cpu"
	"github.com/born-ml/zoo/nn"
	"github.com/born-ml/zoo/tensor"
	"github.com/born-ml/zoo/zoo"
)

const version = "v0.1.0-dev"

func main() {
	log.SetFlags(0)
	log.SetPrefix("zoo: ")

	if err := run(os.Args[1:], os.Stdout); err != nil {
		log.Fatal(err)
	}
}

func run(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("zoo", flag.ContinueOnError)
	fs.SetOutput(out)
	workers := fs.Int("workers", 0, "Kernel worker goroutines (0 = one per physical core)")
	fs.Usage = func() { usage(fs) }
	if err := fs.Parse(args); err != nil {
		return err
	}

	backend := newBackend(*workers)

	cmd, rest := fs.Arg(0), fs.Args()
	if len(rest) > 0 {
		rest = rest[1:]
	}

	switch cmd {
	case "version":
		return versionCmd(out)
	case "list":
		return listCmd(out)
	case "summary":
		return summaryCmd(rest, out)
	case "forward":
		return forwardCmd(rest, out, backend)
	case "":
		usage(fs)
		return nil
	default:
		return errors.Errorf("unknown command %q", cmd)
	}
}

func usage(fs *flag.FlagSet) {
	w := fs.Output()
	fmt.Fprintf(w, "Born model zoo %s\n\n", version)
	fmt.Fprintln(w, "Usage: zoo [flags] <command> [command flags]")
	fmt.Fprintln(w, "\nCommands:")
	fmt.Fprintln(w, "  version    Show version and CPU capabilities")
	fmt.Fprintln(w, "  list       List available models")
	fmt.Fprintln(w, "  summary    Print per-layer output shapes and parameter counts")
	fmt.Fprintln(w, "  forward    Run one forward pass on random input")
	fmt.Fprintln(w, "\nFlags:")
	fs.PrintDefaults()
}

func newBackend(workers int) *cpu.Backend {
	if workers <= 0 {
		return cpu.New()
	}
	cfg := cpu.DefaultParallelism()
	cfg.NumWorkers = workers
	cfg.Enabled = workers > 1
	return cpu.NewWithParallelism(cfg)
}

func versionCmd(out io.Writer) error {
	fmt.Fprintf(out, "Born model zoo %s\n", version)
	fmt.Fprintf(out, "CPU:      %s\n", cpuid.CPU.BrandName)
	fmt.Fprintf(out, "Cores:    %d physical, %d logical\n", cpuid.CPU.PhysicalCores, cpuid.CPU.LogicalCores)
	fmt.Fprintf(out, "Features: %s\n", strings.Join(cpuid.CPU.FeatureSet(), " "))
	return nil
}

func listCmd(out io.Writer) error {
	for _, name := range zoo.Names() {
		shape, err := zoo.InputShape(name, 1)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%-10s input %v\n", name, shape)
	}
	return nil
}

// modelFlags parses the flags shared by summary and forward.
func modelFlags(name string, args []string, out io.Writer) (model string, batch int, err error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(out)
	fs.StringVar(&model, "model", "lenet", "Model name (see list)")
	fs.IntVar(&batch, "batch", 1, "Batch size")
	if err := fs.Parse(args); err != nil {
		return "", 0, err
	}
	return model, batch, nil
}

func summaryCmd(args []string, out io.Writer) error {
	name, batch, err := modelFlags("summary", args, out)
	if err != nil {
		return err
	}

	// Shape inference never touches storage, so a sequential backend suffices.
	backend := cpu.NewWithParallelism(cpu.Parallelism{})
	model, err := zoo.Build(name, backend)
	if err != nil {
		return err
	}
	input, err := zoo.InputShape(name, batch)
	if err != nil {
		return err
	}

	rows, err := nn.Summarize[*cpu.Backend](model, input)
	if err != nil {
		return errors.Wrapf(err, "summarize %s", name)
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Layer\tOutput\tParams\n")
	total := 0
	for _, row := range rows {
		indent := strings.Repeat("  ", row.Depth)
		fmt.Fprintf(tw, "%s%s %s\t%v\t%d\n", indent, row.Path, row.Layer, row.Output, row.Parameters)
		if row.Depth == 0 {
			total += row.Parameters
		}
	}
	fmt.Fprintf(tw, "Total\t%v\t%d\n", input, total)
	return tw.Flush()
}

func forwardCmd(args []string, out io.Writer, backend *cpu.Backend) error {
	name, batch, err := modelFlags("forward", args, out)
	if err != nil {
		return err
	}

	model, err := zoo.Build(name, backend)
	if err != nil {
		return err
	}
	shape, err := zoo.InputShape(name, batch)
	if err != nil {
		return err
	}
	if err := model.Initialize(shape); err != nil {
		return errors.Wrapf(err, "initialize %s", name)
	}

	x := tensor.Randn[float32](shape, backend)

	start := time.Now()
	y := model.Forward(x)
	elapsed := time.Since(start)

	fmt.Fprintf(out, "model:  %s\n", name)
	fmt.Fprintf(out, "input:  %v\n", shape)
	fmt.Fprintf(out, "output: %v\n", y.Shape())
	fmt.Fprintf(out, "class:  %d (first sample)\n", y.Argmax(1).Data()[0])
	fmt.Fprintf(out, "time:   %v\n", elapsed.Round(time.Microsecond))
	return nil
}
