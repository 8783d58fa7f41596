package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"flow-ai/threadview/internal/app"
	"flow-ai/threadview/internal/model"
	"flow-ai/threadview/internal/render"
	"flow-ai/threadview/internal/toolview"
)

var (
	renderFormat  string
	renderNoDedup bool
	renderVerbose bool
)

var renderCmd = &cobra.Command{
	Use:   "render FILE",
	Short: "Render a message dump offline",
	Long: `Reads a JSON or YAML message dump and prints the rendered view.
The dump is either a list of messages or an object with thread_id and messages.
Use - to read from stdin.`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringVarP(&renderFormat, "format", "f", "json", "output format: json or yaml")
	renderCmd.Flags().BoolVar(&renderNoDedup, "no-dedup", false, "keep superseded streaming placeholders")
	renderCmd.Flags().BoolVarP(&renderVerbose, "verbose", "v", false, "log tool parse failures")
}

// dump is the on-disk shape of a thread export.
type dump struct {
	ThreadID string          `yaml:"thread_id"`
	Messages []model.Message `yaml:"messages"`
}

func runRender(cmd *cobra.Command, args []string) error {
	level := "WARN"
	if renderVerbose {
		level = "DEBUG"
	}
	app.SetupLogger(level, "text")

	in := io.Reader(os.Stdin)
	if args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("open %s: %w", args[0], err)
		}
		defer func() { _ = f.Close() }()
		in = f
	}

	d, err := loadDump(in)
	if err != nil {
		return err
	}

	renderer := render.New(toolview.NewDefault(), slog.Default())
	view := renderer.Render(d.ThreadID, d.Messages, render.Options{Dedup: !renderNoDedup})
	return writeView(cmd.OutOrStdout(), view, renderFormat)
}

// loadDump decodes a message dump. YAML is a superset of JSON, so one
// decoder serves both.
func loadDump(r io.Reader) (*dump, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read dump: %w", err)
	}

	var d dump
	var node yaml.Node
	if err := yaml.Unmarshal(raw, &node); err != nil {
		return nil, fmt.Errorf("parse dump: %w", err)
	}
	if len(node.Content) == 0 {
		return nil, fmt.Errorf("parse dump: empty input")
	}
	if node.Content[0].Kind == yaml.SequenceNode {
		err = node.Content[0].Decode(&d.Messages)
	} else {
		err = node.Decode(&d)
	}
	if err != nil {
		return nil, fmt.Errorf("decode dump: %w", err)
	}

	for i := range d.Messages {
		if !d.Messages[i].Type.Valid() {
			return nil, fmt.Errorf("message %d: unknown type %q", i, d.Messages[i].Type)
		}
	}
	return &d, nil
}

func writeView(w io.Writer, view *render.View, format string) error {
	switch strings.ToLower(format) {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(view)
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(view); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format %q (want json or yaml)", format)
	}
}
