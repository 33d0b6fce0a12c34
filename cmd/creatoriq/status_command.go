package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"creatoriq/internal/preflight"
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiBlue   = "\x1b[34m"
	labelWidth = 20
)

type statusReport struct {
	Ready  bool               `json:"ready"`
	Checks []preflight.Result `json:"checks"`
}

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check directories, disk space, the store, and external services",
		RunE: func(cmd *cobra.Command, args []string) error {
			results := preflight.RunAll(cmd.Context(), ctx.config)
			report := statusReport{Ready: preflight.AllPassed(results), Checks: results}
			if ctx.useJSON(cmd) {
				return writeJSON(cmd, report)
			}
			renderStatus(cmd.OutOrStdout(), report, isTerminal(cmd.OutOrStdout()))
			return nil
		},
	}
}

func renderStatus(out io.Writer, report statusReport, colorize bool) {
	header := "== creatoriq status =="
	if colorize {
		header = ansiBlue + header + ansiReset
	}
	fmt.Fprintln(out, header)
	for _, result := range report.Checks {
		fmt.Fprintln(out, renderStatusLine(result, colorize))
	}
	if report.Ready {
		fmt.Fprintln(out, "All checks passed")
	} else {
		fmt.Fprintln(out, "Some checks failed; see details above")
	}
}

func renderStatusLine(result preflight.Result, colorize bool) string {
	label := "ERROR"
	color := ansiRed
	if result.Passed {
		label = "OK"
		color = ansiGreen
	}
	line := fmt.Sprintf("  %-*s [%s] %s", labelWidth, result.Name+":", label, strings.TrimSpace(result.Detail))
	if colorize {
		return color + line + ansiReset
	}
	return line
}
