package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/fitglue/bodymap/pkg/bodymap"
	"github.com/fitglue/bodymap/pkg/domain/file_generators"
	"github.com/fitglue/bodymap/pkg/domain/fit_parser"
	"github.com/fitglue/bodymap/pkg/domain/heatmap"
	"github.com/fitglue/bodymap/pkg/types"
)

type options struct {
	levels int
	from   string
	to     string
	gender string
	side   string
	output string
}

func main() {
	inputPath := flag.String("input", "", "Path to FIT file")
	opts := options{}
	flag.IntVar(&opts.levels, "levels", 5, "Number of intensity levels")
	flag.StringVar(&opts.from, "from", "#74b9ff", "Colour of the lowest intensity")
	flag.StringVar(&opts.to, "to", "#d63031", "Colour of the highest intensity")
	flag.StringVar(&opts.gender, "gender", "male", "Body outline: male or female")
	flag.StringVar(&opts.side, "side", "front", "Body side: front or back")
	flag.StringVar(&opts.output, "output", "", "Write the heatmap render to this file (.svg, .png or .webp)")
	flag.Parse()

	if *inputPath == "" {
		fmt.Println("Usage: fit-heatmap -input <file.fit> [-output heatmap.svg]")
		os.Exit(1)
	}

	data, err := os.ReadFile(*inputPath)
	if err != nil {
		fmt.Printf("Error reading file: %v\n", err)
		os.Exit(1)
	}

	if err := run(data, opts, os.Stdout); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func run(data []byte, opts options, out io.Writer) error {
	sets, err := fit_parser.ParseStrengthSets(data)
	if err != nil {
		return err
	}
	if len(sets) == 0 {
		fmt.Fprintln(out, "No active strength sets found.")
		return nil
	}

	fmt.Fprintln(out, "--- Exercises ---")
	ew := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(ew, "Exercise\tSets\tReps")
	for _, block := range fit_parser.GroupExercises(sets) {
		fmt.Fprintf(ew, "%s\t%d\t%d\n", block.Name, block.Sets, block.Reps)
	}
	ew.Flush()

	fmt.Fprintln(out, "\n--- Regions ---")
	rw := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(rw, "Region\tVolume\tShare\tLevel")
	for _, s := range heatmap.Scores(sets, opts.levels) {
		fmt.Fprintf(rw, "%s\t%.1f\t%.0f%%\t%d\n", s.Slug, s.Volume, s.Percentage*100, s.Intensity)
	}
	rw.Flush()

	if opts.output == "" {
		return nil
	}
	return writeRender(sets, opts)
}

func writeRender(sets []fit_parser.StrengthSet, opts options) error {
	colors, err := heatmap.Ramp(opts.from, opts.to, opts.levels)
	if err != nil {
		return err
	}
	format, err := file_generators.ParseFormat(strings.TrimPrefix(filepath.Ext(opts.output), "."))
	if err != nil {
		return err
	}

	req := &types.RenderRequest{
		Colors: colors,
		Data:   heatmap.Build(sets, opts.levels),
		Gender: opts.gender,
		Side:   opts.side,
	}

	renderer := &bodymap.Renderer{}
	rendered, err := renderer.Render(req)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := renderer.Encode(&buf, rendered, format); err != nil {
		return err
	}
	return os.WriteFile(opts.output, buf.Bytes(), 0o644)
}
