// Package load persists transform results as delimited text files.
package load

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/cleared-dev/cashflow/internal/config"
	"github.com/cleared-dev/cashflow/internal/etlerr"
	"github.com/cleared-dev/cashflow/internal/model"
)

// WriteAll writes the cleaned transactions and the three summaries into dir,
// creating it if needed and overwriting existing files. It returns the paths
// written, in order. A failure part-way leaves earlier files in place.
func WriteAll(dir string, res *model.Result) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: creating output dir %s: %w", etlerr.ErrFileAccess, dir, err)
	}

	files := []struct {
		name  string
		write func(io.Writer) error
	}{
		{config.CleanFile, func(w io.Writer) error { return WriteTransactions(w, res.Header, res.Transactions) }},
		{config.MonthlyFile, func(w io.Writer) error { return WriteMonthly(w, res.Monthly) }},
		{config.RegionalFile, func(w io.Writer) error { return WriteRegional(w, res.Regional) }},
		{config.TopMerchantsFile, func(w io.Writer) error { return WriteTopMerchants(w, res.TopMerchants) }},
	}

	var written []string
	for _, f := range files {
		path := filepath.Join(dir, f.name)
		if err := WriteFile(path, f.write); err != nil {
			return written, err
		}
		written = append(written, path)
	}
	return written, nil
}

// WriteFile creates or truncates path and fills it with write.
func WriteFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: creating %s: %w", etlerr.ErrFileAccess, path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("%w: writing %s: %w", etlerr.ErrFileAccess, path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: closing %s: %w", etlerr.ErrFileAccess, path, err)
	}
	return nil
}
