package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/jneverifica/firmas-system/internal/core/domain"
)

// Loader reads the ficha catalog from a spreadsheet file. The catalog is
// reference data only; loading never touches persistent storage.
type Loader struct {
	path string
}

func NewLoader(path string) *Loader {
	return &Loader{path: path}
}

// Load reads the whole catalog from the first sheet. Cells come back as text,
// preserving leading zeros in identity codes and form numbers.
func (l *Loader) Load(ctx context.Context) ([]domain.CatalogRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := excelize.OpenFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("open catalog %s: %w", l.path, err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, fmt.Errorf("read catalog sheet: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: empty sheet", domain.ErrCatalogFormat)
	}

	cols, err := columnIndex(rows[0])
	if err != nil {
		return nil, err
	}

	records := make([]domain.CatalogRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := domain.CatalogRecord{
			Item:         cell(row, cols[domain.ColItem]),
			FormNumber:   cell(row, cols[domain.ColFormNumber]),
			OrgCode:      cell(row, cols[domain.ColOrgCode]),
			IdentityCode: cell(row, cols[domain.ColIdentityCode]),
		}
		if rec.IdentityCode == "" {
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

// columnIndex maps the required column names to their header positions.
func columnIndex(header []string) (map[string]int, error) {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}
	for _, name := range []string{domain.ColItem, domain.ColFormNumber, domain.ColOrgCode, domain.ColIdentityCode} {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("%w: %s", domain.ErrCatalogFormat, name)
		}
	}
	return cols, nil
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
