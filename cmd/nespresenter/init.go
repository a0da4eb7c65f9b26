package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ivlev/nespresenter/internal/scenario"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init <scenario>",
		Short: "Write an example scenario",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := scenario.Write(scenario.Example(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "[+] Example scenario written to %s\n", args[0])
			return nil
		},
	}
}
