package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/miounet11/ccjk-sub004/internal/audit"
	xstrings "github.com/miounet11/ccjk-sub004/internal/strings"
)

func historyCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent configuration changes",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := audit.Open(ccjkDir)
			if err != nil {
				return err
			}
			defer store.Close()

			events, err := store.Recent(limit)
			if err != nil {
				return err
			}
			if len(events) == 0 {
				fmt.Println("no history yet")
				return nil
			}

			for _, e := range events {
				mark := okMark
				switch e.Status {
				case audit.StatusWarning:
					mark = warnMark
				case audit.StatusError:
					mark = failMark
				}
				line := fmt.Sprintf("%s %s  %-8s %-16s %s",
					mark, e.CreatedAt.Local().Format("2006-01-02 15:04"),
					e.Category, e.Operation, e.Target)
				if e.Detail != "" {
					line += "  (" + xstrings.Truncate(e.Detail, 60) + ")"
				}
				fmt.Println(line)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of events to show")
	return cmd
}
