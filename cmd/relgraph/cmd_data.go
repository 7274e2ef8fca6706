package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/relgraph/migrate"
)

var importFormat string

var importCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Apply a migration document",
	Long: `Apply a JSON or YAML migration document to the configured database.

The whole document is validated first. Collections, then nodes, then
relations are applied in file order; the first failing step aborts the
import and earlier steps stay applied.

Examples:
  relgraph import seed.yaml
  relgraph import dump.txt --format json`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print database counts",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

var wipeCmd = &cobra.Command{
	Use:   "wipe",
	Short: "Remove every collection and node",
	Args:  cobra.NoArgs,
	RunE:  runWipe,
}

func init() {
	importCmd.Flags().StringVar(&importFormat, "format", "", "json or yaml (default: from the file extension)")
}

func runImport(cmd *cobra.Command, args []string) error {
	format := migrate.Format(importFormat)
	if format == "" {
		var err error
		if format, err = migrate.FormatFromPath(args[0]); err != nil {
			return err
		}
	}
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	doc, err := migrate.Decode(f, format)
	if err != nil {
		return err
	}

	db, err := openDatabase(cmd.Context())
	if err != nil {
		return err
	}
	defer closeDatabase(db)

	rep, err := migrate.Apply(cmd.Context(), db, doc, logger)
	fmt.Fprintf(cmd.OutOrStdout(), "collections created: %d, existed: %d, nodes: %d, relations: %d\n",
		rep.CollectionsCreated, rep.CollectionsExisted, rep.Nodes, rep.Relations)
	if err != nil {
		return err
	}

	return db.SaveErr()
}

func runStats(cmd *cobra.Command, args []string) error {
	db, err := openDatabase(cmd.Context())
	if err != nil {
		return err
	}
	defer closeDatabase(db)

	s := db.Store()
	assoc, err := s.NumAssociations()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "nodes:        %d\n", s.NumNodes())
	fmt.Fprintf(out, "collections:  %d\n", len(s.Collections()))
	fmt.Fprintf(out, "edges:        %d\n", s.Graph().EdgeCount())
	fmt.Fprintf(out, "associations: %d\n", assoc)

	return nil
}

func runWipe(cmd *cobra.Command, args []string) error {
	db, err := openDatabase(cmd.Context())
	if err != nil {
		return err
	}
	defer closeDatabase(db)

	db.Wipe()
	if err = db.SaveErr(); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "wiped")

	return nil
}
