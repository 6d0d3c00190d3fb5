package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/syssam/relcheck/catalog"
	"github.com/syssam/relcheck/schemafile"
)

// dbFlags are the connection flags shared by inspect and diff.
type dbFlags struct {
	dsn     string
	dialect string
	schema  string
	timeout time.Duration
}

func (f *dbFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.dsn, "dsn", "", "database connection string")
	cmd.Flags().StringVar(&f.dialect, "dialect", "", "database dialect: mysql, postgres or sqlite")
	cmd.Flags().StringVar(&f.schema, "schema", "", "schema to inspect (ignored for sqlite)")
	cmd.Flags().DurationVar(&f.timeout, "timeout", 30*time.Second, "inspection timeout")
	_ = cmd.MarkFlagRequired("dsn")
	_ = cmd.MarkFlagRequired("dialect")
}

func (f *dbFlags) open() (*sql.DB, catalog.Dialect, error) {
	dialect := catalog.Dialect(f.dialect)
	var driver string
	switch dialect {
	case catalog.MySQL:
		driver = "mysql"
	case catalog.Postgres:
		driver = "postgres"
		if f.schema == "" {
			f.schema = "public"
		}
	case catalog.SQLite:
		driver = "sqlite"
	default:
		return nil, "", fmt.Errorf("unsupported dialect %q", f.dialect)
	}
	db, err := sql.Open(driver, f.dsn)
	if err != nil {
		return nil, "", fmt.Errorf("open database: %w", err)
	}
	return db, dialect, nil
}

func inspectCmd() *cobra.Command {
	var (
		flags dbFlags
		out   string
	)
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "read the database schema into a model snapshot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, dialect, err := flags.open()
			if err != nil {
				return err
			}
			defer db.Close()
			ctx, cancel := context.WithTimeout(cmd.Context(), flags.timeout)
			defer cancel()

			m, err := catalog.Inspect(ctx, db, dialect, flags.schema)
			if err != nil {
				return err
			}
			snap := schemafile.Encode(m)
			if out == "" {
				data, err := yaml.Marshal(snap)
				if err != nil {
					return fmt.Errorf("encode snapshot: %w", err)
				}
				_, err = os.Stdout.Write(data)
				return err
			}
			if err := schemafile.Save(out, snap); err != nil {
				return err
			}
			slog.Info("snapshot written", "path", out, "entities", len(snap.Entities))
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVarP(&out, "out", "o", "", "snapshot file to write (stdout when omitted)")
	return cmd
}

func diffCmd() *cobra.Command {
	var flags dbFlags
	cmd := &cobra.Command{
		Use:   "diff <snapshot>",
		Short: "report drift between a snapshot and the database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := schemafile.Load(args[0])
			if err != nil {
				return err
			}
			mapped, err := snap.Decode()
			if err != nil {
				return err
			}
			db, dialect, err := flags.open()
			if err != nil {
				return err
			}
			defer db.Close()
			ctx, cancel := context.WithTimeout(cmd.Context(), flags.timeout)
			defer cancel()

			inspected, err := catalog.Inspect(ctx, db, dialect, flags.schema)
			if err != nil {
				return err
			}
			drift := catalog.Diff(mapped, inspected)
			for _, line := range drift {
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			if len(drift) > 0 {
				return fmt.Errorf("%d schema differences found", len(drift))
			}
			slog.Info("no drift", "snapshot", args[0])
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}
