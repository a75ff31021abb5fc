package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/phanxgames/arbor"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

type rootFlags struct {
	config string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	cmd := &cobra.Command{
		Use:           "arbor",
		Short:         "Inspect and convert scene documents",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVarP(&flags.config, "config", "c", "", "TOML reader config file")
	cmd.AddCommand(newDumpCmd(flags), newEncodeCmd(), newVersionCmd())
	return cmd
}

func (f *rootFlags) loadConfig() (arbor.Config, error) {
	if f.config == "" {
		return arbor.DefaultConfig(), nil
	}
	return arbor.LoadConfigFile(f.config)
}

func newDumpCmd(root *rootFlags) *cobra.Command {
	var mode string
	cmd := &cobra.Command{
		Use:   "dump <scene>",
		Short: "Load a scene and print its node tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.loadConfig()
			if err != nil {
				return err
			}
			if mode != "" {
				cfg.AttachMode = mode
			}
			name := args[0]
			if cfg.AssetRoot == "" {
				cfg.AssetRoot = filepath.Dir(name)
				name = filepath.Base(name)
			}
			opts, err := cfg.Options()
			if err != nil {
				return err
			}

			var skipped []string
			opts = append(opts, arbor.WithListener(func(c arbor.Component, p *arbor.Payload) {
				if c == nil {
					skipped = append(skipped, fmt.Sprintf("%s #%d", p.ClassName, p.Index))
				}
			}))
			reader := arbor.NewReader(opts...)
			defer reader.Close()

			node, err := reader.LoadFile(filepath.ToSlash(name))
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			dumpNode(out, node, 0)
			for _, s := range skipped {
				fmt.Fprintf(out, "skipped component %s\n", s)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&mode, "mode", "m", "", `attach mode, "empty" or "render" (overrides config)`)
	return cmd
}

func dumpNode(w io.Writer, n *arbor.Node, depth int) {
	indent := strings.Repeat("  ", depth)
	fmt.Fprintf(w, "%s%s [%s] tag=%d pos=(%g,%g) scale=(%g,%g) rot=%g z=%d",
		indent, displayName(n), n.Type, n.Tag, n.X, n.Y, n.ScaleX, n.ScaleY, n.Rotation, n.ZOrder)
	if !n.Visible {
		fmt.Fprint(w, " hidden")
	}
	fmt.Fprintln(w)
	for _, c := range n.Components() {
		if c.Name() != "" {
			fmt.Fprintf(w, "%s  + %s %q\n", indent, c.ClassName(), c.Name())
		} else {
			fmt.Fprintf(w, "%s  + %s\n", indent, c.ClassName())
		}
	}
	for _, child := range n.Children() {
		dumpNode(w, child, depth+1)
	}
}

func displayName(n *arbor.Node) string {
	if n.Name == "" {
		return "(unnamed)"
	}
	return n.Name
}

func newEncodeCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "encode <scene.json>",
		Short: "Convert a JSON scene into the binary encoding",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := args[0]
			data, err := os.ReadFile(in)
			if err != nil {
				return errors.Wrapf(err, "read %s", in)
			}
			doc, err := arbor.ParseJSON(data)
			if err != nil {
				return errors.Wrapf(err, "parse %s", in)
			}
			bin, err := arbor.EncodeBinary(doc)
			if err != nil {
				return errors.Wrapf(err, "encode %s", in)
			}
			if output == "" {
				output = strings.TrimSuffix(in, filepath.Ext(in)) + ".bin"
			}
			if err := os.WriteFile(output, bin, 0o644); err != nil {
				return errors.Wrapf(err, "write %s", output)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d bytes)\n", output, len(bin))
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: input with .bin extension)")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the scene document format version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), arbor.Version)
		},
	}
}
