package lexicon

import (
	"encoding/csv"
	"fmt"
	"io"
)

// WriteCSV writes records as a four-column table with a header row.
func WriteCSV(w io.Writer, records []Record) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"term", "han", "vi", "fr"}); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}
	for _, rec := range records {
		if err := cw.Write([]string{rec.Term, rec.Han, rec.Vi, rec.Fr}); err != nil {
			return fmt.Errorf("writing CSV record %q: %w", rec.Term, err)
		}
	}

	cw.Flush()
	return cw.Error()
}
