package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ivlev/nespresenter/internal/scenario"
	"github.com/ivlev/nespresenter/internal/system"
)

func newCheckCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "check <scenario>",
		Short: "Validate a scenario and inspect the desktop",
		Long: `check loads the config and the scenario the same way a presentation
would, lists the steps and reports whether xdotool can reach an X display.
Only an invalid config or scenario fails the check.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := loadConfig(cmd, o); err != nil {
				return err
			}
			path, err := scenario.ResolvePath(args[0])
			if err != nil {
				return err
			}
			sc, err := scenario.Load(path)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "[+] %s: %q, %d steps\n", path, sc.Title(), sc.Len())
			for i, step := range sc.Steps {
				enter := ""
				if !step.Submit {
					enter = " (no enter)"
				}
				name := step.Description
				if name == "" {
					name = firstLine(step.Command)
				}
				fmt.Fprintf(out, "    %2d. %s%s\n", i+1, name, enter)
			}

			report, err := system.Probe(cmd.Context())
			if err != nil {
				fmt.Fprintf(out, "[!] environment probe failed: %v\n", err)
				return nil
			}
			fmt.Fprint(out, report.String())
			for _, w := range report.Warnings() {
				fmt.Fprintf(out, "[!] %s\n", w)
			}
			return nil
		},
	}
}

func firstLine(s string) string {
	for i, r := range s {
		if r == '\n' {
			return s[:i] + " ..."
		}
	}
	return s
}
