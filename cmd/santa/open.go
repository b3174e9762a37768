package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mmynk/secretsanta/internal/export"
	"github.com/mmynk/secretsanta/internal/sharecode"
)

func newOpenCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "open <token-or-link>",
		Short: "Show the assignments in a share token or link",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOpen(cmd.OutOrStdout(), args[0], format)
		},
	}
	cmd.Flags().StringVar(&format, "format", "text", "output format: text, csv or json")

	return cmd
}

func runOpen(out io.Writer, input, format string) error {
	payload, err := sharecode.Parse(input)
	if err != nil {
		return err
	}

	switch format {
	case "text":
		if payload.Shared {
			fmt.Fprintln(out, "(shared view)")
		}
		_, err = io.WriteString(out, export.Text(payload.Results))
		return err
	case "csv":
		return export.WriteCSV(out, payload.Results)
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(payload)
	}
	return fmt.Errorf("unknown format %q (want text, csv or json)", format)
}
