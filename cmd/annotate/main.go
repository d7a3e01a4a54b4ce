package main

import (
	"flag"
	"fmt"
	"os"

	"annotate/pkg/annotate"
)

func main() {
	opts := annotate.DefaultOptions()
	flag.BoolVar(&opts.AllLabels, "all-labels", false, "draw every issue as a stacked label instead of only the first")
	flag.BoolVar(&opts.SeverityColors, "severity-colors", false, "color label text by severity instead of black")
	flag.BoolVar(&opts.DrawBoxes, "draw-boxes", false, "outline the reported bounding box in the severity color")
	flag.StringVar(&opts.FontPath, "font", opts.FontPath, "preferred TrueType font file")
	flag.Float64Var(&opts.FontSize, "font-size", opts.FontSize, "label font size in points")
	flag.Usage = usage
	flag.Parse()

	args := flag.Args()
	if len(args) < 3 {
		usage()
		os.Exit(1)
	}

	diffPath := args[len(args)-2]
	outDir := args[len(args)-1]
	renders, references := annotate.SplitFiles(args[:len(args)-2])

	if err := annotate.New(opts).Annotate(renders, references, diffPath, outDir); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Println("Render/Reference Diff Annotator")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  annotate [flags] <render0>..<render3> <ref0>..<refN> <diff.json> <output_dir>")
	fmt.Println()
	fmt.Println("The last two arguments are the diff report and the output directory.")
	fmt.Println("Of the image arguments, the first four are renders and the rest are")
	fmt.Println("references. One annotated side-by-side PNG is written per diff entry.")
	fmt.Println()
	fmt.Println("Flags:")
	flag.CommandLine.SetOutput(os.Stdout)
	flag.PrintDefaults()
}
