package main

import (
	"fmt"
	"path/filepath"

	bench "github.com/fjl/ycsb-bench"
	"github.com/spf13/cobra"
)

func newDumpCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "dump",
		Short: "List the records of a leveldb record store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			db := opts.db
			if db == "" {
				db = filepath.Join(opts.dir, "ycsb-records.db")
			}
			store, err := bench.OpenLevelStore(db)
			if err != nil {
				return err
			}
			defer store.Close()

			out := cmd.OutOrStdout()
			return store.Each(func(k bench.Key, r bench.Record) error {
				_, err := fmt.Fprintf(out, "%s %s\n", k.FileName(), r)
				return err
			})
		},
	}
}
