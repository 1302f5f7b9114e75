package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"rhystmorgan/clientDesk/internal/audit"
	"rhystmorgan/clientDesk/internal/export"
	"rhystmorgan/clientDesk/internal/models"
)

var (
	printID      int64
	printPreview bool
	printWidth   int
)

var printCmd = &cobra.Command{
	Use:   "print",
	Short: "Render printable record cards as HTML",
	Long: `Renders a report of the filtered records, or the summary of a single
record with --id, as an HTML page ready for printing. With --preview the
page is rendered in the terminal instead of being written to a file.`,
	Args: cobra.NoArgs,
	RunE: runPrint,
}

func init() {
	addFilterFlags(printCmd)
	printCmd.Flags().Int64Var(&printID, "id", 0, "Print a single record by id")
	printCmd.Flags().BoolVar(&printPreview, "preview", false, "Render in the terminal instead of writing HTML")
	printCmd.Flags().IntVar(&printWidth, "width", 100, "Preview word wrap width")
}

func runPrint(cmd *cobra.Command, args []string) error {
	criteria, err := criteriaFromFlags(filterName, filterEmail, filterStatus)
	if err != nil {
		return err
	}

	client, err := newClient()
	if err != nil {
		return err
	}
	defer client.Close()

	at := time.Now()
	var (
		page  []byte
		count int
	)

	if printID > 0 {
		records, err := client.List(cmd.Context())
		if err != nil {
			return err
		}
		record, ok := findRecord(records, printID)
		if !ok {
			return fmt.Errorf("record %d not found", printID)
		}
		page, err = export.RecordHTML(record, at)
		if err != nil {
			return err
		}
		count = 1
	} else {
		records, err := fetchFiltered(cmd.Context(), client, criteria, resultLimit())
		if err != nil {
			return err
		}
		page, err = export.ReportHTML(records, criteria, at)
		if err != nil {
			return err
		}
		count = len(records)
	}

	if printPreview {
		previewer, err := export.NewPreviewer(export.WithWidth(printWidth))
		if err != nil {
			return err
		}
		out, err := previewer.Render(page)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	}

	path, err := writeOutput(cmd.OutOrStdout(), outputPath, export.PrintFileName(at), page)
	if err != nil {
		return err
	}

	auditor := newAuditor()
	if auditor != nil {
		if err := auditor.LogExport(audit.AuditActionPrint, path, count, describeCriteria(criteria)); err != nil {
			logger.Warn("audit write failed", zap.Error(err))
		}
		closeAuditor(auditor)
	}

	logger.Info("print page written", zap.String("path", path), zap.Int("count", count))
	if path != "-" {
		fmt.Fprintf(cmd.ErrOrStderr(), "Impressão de %d registros salva em %s\n", count, path)
	}
	return nil
}

func findRecord(records []models.Record, id int64) (models.Record, bool) {
	for _, record := range records {
		if record.ID == id {
			return record, true
		}
	}
	return models.Record{}, false
}
