// ABOUTME: CSV export of the test summary
// ABOUTME: One row per result in status order
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
)

// CSVHeader is the header row of the CSV summary
var CSVHeader = []string{
	"Test Prefix",
	"Mix ID",
	"Submix Index",
	"Layout Index",
	"Status",
	"PSNR",
	"Is Lossy",
	"Reason",
	"Command",
}

// WriteCSV writes the header and one row per result
func (s *Summary) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return err
	}
	for _, r := range s.All() {
		row := []string{
			r.TestPrefix,
			strconv.FormatUint(uint64(r.MixPresentationID), 10),
			strconv.Itoa(r.SubMixIndex),
			strconv.Itoa(r.LayoutIndex),
			r.Status.String(),
			r.PSNRString(),
			r.LossyLabel(),
			r.Reason,
			r.Command,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// SaveCSV writes the CSV summary to path
func (s *Summary) SaveCSV(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create CSV summary: %w", err)
	}
	if err := s.WriteCSV(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to write CSV summary: %w", err)
	}
	return f.Close()
}
