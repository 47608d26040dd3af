package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

type rootOptions struct {
	configPath string
	dbPath     string
}

func newRootCmd() *cobra.Command {
	o := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "katalog",
		Short:         "Catalog admin dashboard and storefront API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVarP(&o.configPath, "config", "c", "", "YAML config file")
	cmd.PersistentFlags().StringVarP(&o.dbPath, "db", "d", "", "SQLite database path (default: katalog.sqlite3)")

	cmd.AddCommand(newServeCmd(o), newInitCmd(o), newUserCmd(o))
	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
