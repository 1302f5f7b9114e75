package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"rhystmorgan/clientDesk/internal/audit"
	"rhystmorgan/clientDesk/internal/export"
	"rhystmorgan/clientDesk/internal/filter"
	"rhystmorgan/clientDesk/internal/models"
)

// Filter flags shared by export and print
var (
	filterName   string
	filterEmail  string
	filterStatus string
	filterMax    int
	outputPath   string
)

// recordLister is the part of the api client the batch commands need.
type recordLister interface {
	List(ctx context.Context) ([]models.Record, error)
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the filtered records to CSV",
	Long: `Loads every record from the backend, applies the filters and writes
the derived view as CSV. Without --output the file is written to the
export directory as usuarios_YYYY-MM-DD.csv. Use --output - for stdout.

Example:
  deskterm export --status ATIVO --name silva`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&filterName, "name", "", "Case-insensitive name substring")
	cmd.Flags().StringVar(&filterEmail, "email", "", "Case-insensitive email substring")
	cmd.Flags().StringVar(&filterStatus, "status", "", "Exact status (ATIVO, INATIVO, PENDENTE, BLOQUEADO)")
	cmd.Flags().IntVar(&filterMax, "max", 0, "Maximum records (default: max_results from config)")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file")
}

func init() {
	addFilterFlags(exportCmd)
}

// criteriaFromFlags builds filter criteria, rejecting unknown statuses.
func criteriaFromFlags(name, email, status string) (filter.Criteria, error) {
	criteria := filter.Criteria{Name: name, Email: email}
	if status != "" {
		parsed, ok := models.ParseStatus(status)
		if !ok {
			return filter.Criteria{}, fmt.Errorf("unknown status %q", status)
		}
		criteria.Status = parsed
	}
	return criteria, nil
}

// fetchFiltered loads all records and returns the derived view.
func fetchFiltered(ctx context.Context, service recordLister, criteria filter.Criteria, max int) ([]models.Record, error) {
	records, err := service.List(ctx)
	if err != nil {
		return nil, err
	}
	return filter.Apply(records, criteria, max), nil
}

func resultLimit() int {
	if filterMax > 0 {
		return filterMax
	}
	return appConfig.MaxResults
}

func runExport(cmd *cobra.Command, args []string) error {
	criteria, err := criteriaFromFlags(filterName, filterEmail, filterStatus)
	if err != nil {
		return err
	}

	client, err := newClient()
	if err != nil {
		return err
	}
	defer client.Close()

	records, err := fetchFiltered(cmd.Context(), client, criteria, resultLimit())
	if err != nil {
		return err
	}

	data, err := export.CSV(records)
	if err != nil {
		return err
	}

	path, err := writeOutput(cmd.OutOrStdout(), outputPath, export.CSVFileName(time.Now()), data)
	if err != nil {
		return err
	}

	auditor := newAuditor()
	if auditor != nil {
		if err := auditor.LogExport(audit.AuditActionExport, path, len(records), describeCriteria(criteria)); err != nil {
			logger.Warn("audit write failed", zap.Error(err))
		}
		closeAuditor(auditor)
	}

	logger.Info("csv exported", zap.String("path", path), zap.Int("count", len(records)))
	if path != "-" {
		fmt.Fprintf(cmd.ErrOrStderr(), "%d registros exportados para %s\n", len(records), path)
	}
	return nil
}

// writeOutput writes data to stdout for "-", to output when set, or to
// the export directory under defaultName. It returns where data went.
func writeOutput(stdout io.Writer, output, defaultName string, data []byte) (string, error) {
	switch output {
	case "-":
		_, err := stdout.Write(data)
		return "-", err
	case "":
		return dataStore.WriteExport(defaultName, data)
	default:
		if err := os.WriteFile(output, data, 0600); err != nil {
			return "", fmt.Errorf("failed to write %s: %w", output, err)
		}
		return output, nil
	}
}

func describeCriteria(criteria filter.Criteria) string {
	return strings.Join(criteria.Describe(), "; ")
}
