package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/AngelCh415/campaign-analytics/internal/export"
	"github.com/AngelCh415/campaign-analytics/internal/models"
)

var generateFlags struct {
	format string
	out    string
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Write the (filtered) metric-annotated table as CSV or XLSX",
	Args:  cobra.NoArgs,
	RunE:  runGenerate,
}

func init() {
	generateCmd.Flags().StringVarP(&generateFlags.format, "format", "f", "csv", "Output format: csv or xlsx")
	generateCmd.Flags().StringVarP(&generateFlags.out, "out", "o", "-", "Output file, - for stdout")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	write := export.WriteCSV
	switch generateFlags.format {
	case "csv":
	case "xlsx":
		write = export.WriteXLSX
		if generateFlags.out == "-" {
			return fmt.Errorf("xlsx output needs --out")
		}
	default:
		return fmt.Errorf("unknown format %q", generateFlags.format)
	}

	f, err := parseFilter()
	if err != nil {
		return err
	}
	svc, _, err := loadService(cmd)
	if err != nil {
		return err
	}
	rows := svc.Filter(f)

	if generateFlags.out == "-" {
		if err := write(cmd.OutOrStdout(), rows); err != nil {
			return err
		}
	} else if err := writeFile(generateFlags.out, rows, write); err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "wrote %d rows\n", len(rows))
	return nil
}

// writeFile writes rows to path. A failed write or close removes the partial file.
func writeFile(path string, rows []models.Record, write func(io.Writer, []models.Record) error) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			os.Remove(path)
		}
	}()
	if err := write(file, rows); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
