package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"gtv/internal/engine"
	"gtv/internal/render"
)

var (
	generateOutput   string // --output: artifact filename override
	generateOutDir   string // --output-dir: artifact directory override
	generateCompress bool   // --compress: gzip the artifact
	generateFormat   string // --format: html viewer page or raw json document
)

var generateCmd = &cobra.Command{
	Use:   "generate <input>",
	Short: "Generate the interactive trace visualization",
	Long: `Runs the full pipeline on one node-list file and writes a
self-contained HTML visualization.

The input may be an XMI/XML document with //@nodes.N reference paths or a
YAML node list with integer references. The artifact lands in the output
directory from .gtv/config.json (default output_g_trace), named after the
input file unless overridden.

Examples:
  gtv generate traces/pipeline.xmi
  gtv generate pipeline.xmi -o report.html
  gtv generate pipeline.xmi --output-dir build --compress`,
	Args: cobra.ExactArgs(1),
	Run:  runGenerate,
}

func init() {
	generateCmd.Flags().StringVarP(&generateOutput, "output", "o", "",
		"Artifact filename (default: input basename with .html)")
	generateCmd.Flags().StringVar(&generateOutDir, "output-dir", "",
		"Artifact directory (default: from config)")
	generateCmd.Flags().BoolVar(&generateCompress, "compress", false,
		"Gzip-compress the artifact")
	generateCmd.Flags().StringVar(&generateFormat, "format", "html",
		"Artifact format: html or json")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) {
	inputPath := args[0]

	cfg := loadConfig()
	if generateOutput != "" {
		cfg.Output.Filename = generateOutput
	}
	if generateOutDir != "" {
		cfg.Output.Directory = generateOutDir
	}
	if generateCompress {
		cfg.Output.Compress = true
	}

	logger := newLogger(cfg)

	report, err := engine.New(logger).Run(inputPath)
	if err != nil {
		fatal(err)
	}

	renderer := render.NewRenderer(cfg.Output, logger)
	var path string
	switch generateFormat {
	case "html":
		path, err = renderer.Write(report.Document, inputPath)
	case "json":
		path, err = renderer.WriteJSON(report.Document, inputPath)
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown format %q (want html or json)\n", generateFormat)
		os.Exit(1)
	}
	if err != nil {
		fatal(err)
	}

	fmt.Printf("Visualization written to %s\n", path)
	if n := len(report.Warnings); n > 0 {
		fmt.Printf("%d warning(s); rerun with --log-level debug for pipeline detail\n", n)
	}
}
