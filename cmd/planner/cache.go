package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newCacheCmd(g *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect and clear the persisted caches",
	}

	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Show the entries held by each cache",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(g)
			if err != nil {
				return err
			}
			defer func() { _ = s.close() }()

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tENTRIES\tMAX\tTTL\tPREFIX")
			for _, st := range s.caches.Registry.Stats() {
				fmt.Fprintf(w, "%s\t%d\t%d\t%s\t%s\n", st.Name, st.Size, st.MaxSize, st.TTL, st.Prefix)
			}
			return w.Flush()
		},
	}

	var name string
	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Clear one cache, or every cache when --name is omitted",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(g)
			if err != nil {
				return err
			}
			defer func() { _ = s.close() }()

			if name == "" {
				for _, c := range s.caches.Registry.All() {
					c.Clear()
				}
				fmt.Fprintln(cmd.OutOrStdout(), "All caches cleared.")
				return nil
			}

			c, err := s.caches.Registry.Get(name)
			if err != nil {
				return err
			}
			c.Clear()
			fmt.Fprintf(cmd.OutOrStdout(), "Cache %q cleared.\n", name)
			return nil
		},
	}
	clearCmd.Flags().StringVar(&name, "name", "", "cache to clear (flights, queries, airports)")

	cmd.AddCommand(statsCmd, clearCmd)
	return cmd
}
