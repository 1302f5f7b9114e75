// Package export renders the derived view as CSV, as printable HTML cards,
// and as a terminal preview of that HTML.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"rhystmorgan/clientDesk/internal/models"
)

// CSVHeader is the fixed column order of every export.
var CSVHeader = []string{"ID", "Nome", "Email", "Telefone", "Endereço", "Renda", "Dependentes", "Status", "Observações", "Foto"}

// CSVFileName returns the default export name for the given day.
func CSVFileName(day time.Time) string {
	return fmt.Sprintf("usuarios_%s.csv", day.Format("2006-01-02"))
}

func csvRow(record models.Record) []string {
	return []string{
		strconv.FormatInt(record.ID, 10),
		record.Name,
		record.Email,
		record.Phone,
		record.Address,
		strconv.FormatFloat(record.Income, 'f', -1, 64),
		strconv.Itoa(record.NumOfDependents),
		string(record.Status),
		record.Observations,
		record.PhotoRef(),
	}
}

// WriteCSV writes a header row and one row per record, in order.
func WriteCSV(w io.Writer, records []models.Record) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(CSVHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, record := range records {
		if err := writer.Write(csvRow(record)); err != nil {
			return fmt.Errorf("failed to write record %d: %w", record.ID, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}

	return nil
}

// CSV returns the export as bytes.
func CSV(records []models.Record) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, records); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
