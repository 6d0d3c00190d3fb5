package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/syssam/relcheck/internal/modelgen"
	"github.com/syssam/relcheck/schemafile"
)

func genCmd() *cobra.Command {
	var (
		pkg string
		out string
	)
	cmd := &cobra.Command{
		Use:   "gen <snapshot>",
		Short: "generate Go builder source from a model snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := schemafile.Load(args[0])
			if err != nil {
				return err
			}
			src, err := modelgen.Generate(snap, pkg)
			if err != nil {
				return err
			}
			if out == "" {
				_, err = cmd.OutOrStdout().Write(src)
				return err
			}
			if err := os.WriteFile(out, src, 0o644); err != nil {
				return err
			}
			slog.Info("source written", "path", out, "package", pkg)
			return nil
		},
	}
	cmd.Flags().StringVarP(&pkg, "package", "p", "model", "package name of the generated file")
	cmd.Flags().StringVarP(&out, "out", "o", "", "file to write (stdout when omitted)")
	return cmd
}
