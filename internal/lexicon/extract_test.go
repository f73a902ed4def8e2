package lexicon

import (
	"strings"
	"testing"
)

func TestExtractWellFormedRow(t *testing.T) {
	rows := []Row{{Cells: []string{"hạc", "— 鶴 ＝ con hạc — grue"}}}

	records := Extract(rows)
	if len(records) != 1 {
		t.Fatalf("len(records) = %d, want 1", len(records))
	}

	want := Record{Term: "hạc", Han: "鶴", Vi: "= con hạc", Fr: "— grue"}
	if records[0] != want {
		t.Errorf("record = %+v, want %+v", records[0], want)
	}
}

func TestExtractStripsMarkup(t *testing.T) {
	rows := []Row{{Cells: []string{
		"<b>hạc</b>",
		`— <span lang="zh">鶴</span> ＝ con hạc — <i>grue</i>`,
	}}}

	records := Extract(rows)
	if len(records) != 1 {
		t.Fatalf("len(records) = %d, want 1", len(records))
	}
	want := Record{Term: "hạc", Han: "鶴", Vi: "= con hạc", Fr: "— grue"}
	if records[0] != want {
		t.Errorf("record = %+v, want %+v", records[0], want)
	}
}

func TestExtractSilentlyDropsNonMatches(t *testing.T) {
	// Malformed rows are excluded without error: headers, notes and
	// typographical variants share the tables with real entries.
	tests := []struct {
		name string
		row  Row
	}{
		{"no separator", Row{Cells: []string{"x", "no separator here"}}},
		{"missing leading dash", Row{Cells: []string{"x", "鶴 ＝ con hạc — grue"}}},
		{"ascii equals instead of fullwidth", Row{Cells: []string{"x", "— 鶴 = con hạc — grue"}}},
		{"extra dash segment", Row{Cells: []string{"x", "— 鶴 ＝ con hạc — grue — bonus"}}},
		{"missing equals", Row{Cells: []string{"x", "— 鶴 con hạc — grue"}}},
		{"two equals signs", Row{Cells: []string{"x", "— 鶴 ＝ con ＝ hạc — grue"}}},
		{"empty french segment", Row{Cells: []string{"x", "— 鶴 ＝ con hạc — "}}},
		{"one cell", Row{Cells: []string{"only one"}}},
		{"three cells", Row{Cells: []string{"a", "— 鶴 ＝ con hạc — grue", "c"}}},
		{"no cells", Row{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if records := Extract([]Row{tt.row}); len(records) != 0 {
				t.Errorf("Extract emitted %d records, want 0: %+v", len(records), records)
			}
		})
	}
}

func TestExtractPreservesRowOrder(t *testing.T) {
	rows := []Row{
		{Cells: []string{"hạc", "— 鶴 ＝ con hạc — grue"}},
		{Cells: []string{"header row", "not an entry"}},
		{Cells: []string{"mã", "— 馬 ＝ con ngựa — cheval"}},
	}

	records := Extract(rows)
	if len(records) != 2 {
		t.Fatalf("len(records) = %d, want 2", len(records))
	}
	if records[0].Term != "hạc" || records[1].Term != "mã" {
		t.Errorf("terms = %q, %q, want hạc, mã", records[0].Term, records[1].Term)
	}
}

func TestParseTables(t *testing.T) {
	const page = `<html><body>
<p>intro</p>
<table>
  <tr><td>hạc</td><td>— 鶴 ＝ con hạc — grue</td></tr>
  <tr><td colspan="2">section header</td></tr>
</table>
<table>
  <tr><td><b>mã</b></td><td>— 馬 ＝ con ngựa — <i>cheval</i></td></tr>
</table>
</body></html>`

	rows, err := ParseTables(strings.NewReader(page))
	if err != nil {
		t.Fatalf("ParseTables: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("len(rows) = %d, want 3", len(rows))
	}

	records := Extract(rows)
	if len(records) != 2 {
		t.Fatalf("len(records) = %d, want 2", len(records))
	}
	want := []Record{
		{Term: "hạc", Han: "鶴", Vi: "= con hạc", Fr: "— grue"},
		{Term: "mã", Han: "馬", Vi: "= con ngựa", Fr: "— cheval"},
	}
	for i, rec := range records {
		if rec != want[i] {
			t.Errorf("record %d = %+v, want %+v", i, rec, want[i])
		}
	}
}

func TestParseTablesNestedTableRowsCountedOnce(t *testing.T) {
	const page = `<html><body>
<table>
  <tr><td>hạc</td><td>— 鶴 ＝ con hạc — grue</td></tr>
  <tr><td colspan="2">
    <table>
      <tr><td>mã</td><td>— 馬 ＝ con ngựa — cheval</td></tr>
    </table>
  </td></tr>
</table>
</body></html>`

	rows, err := ParseTables(strings.NewReader(page))
	if err != nil {
		t.Fatalf("ParseTables: %v", err)
	}
	// Two rows of the outer table plus one row of the inner: the inner
	// row must appear exactly once.
	if len(rows) != 3 {
		t.Fatalf("len(rows) = %d, want 3", len(rows))
	}

	records := Extract(rows)
	if len(records) != 2 {
		t.Fatalf("len(records) = %d, want 2", len(records))
	}
	if records[1].Term != "mã" {
		t.Errorf("records[1].Term = %q, want %q", records[1].Term, "mã")
	}
}

func TestExtractUnescapesEntities(t *testing.T) {
	rows := []Row{{Cells: []string{
		"h&#7841;c",
		"— 鶴 ＝ con hạc — grue &amp; h&eacute;ron",
	}}}

	records := Extract(rows)
	if len(records) != 1 {
		t.Fatalf("len(records) = %d, want 1", len(records))
	}
	if records[0].Term != "hạc" {
		t.Errorf("Term = %q, want %q", records[0].Term, "hạc")
	}
	if records[0].Fr != "— grue & héron" {
		t.Errorf("Fr = %q, want %q", records[0].Fr, "— grue & héron")
	}
}

func TestWriteCSV(t *testing.T) {
	var sb strings.Builder
	records := []Record{{Term: "hạc", Han: "鶴", Vi: "= con hạc", Fr: "— grue"}}

	if err := WriteCSV(&sb, records); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	want := "term,han,vi,fr\nhạc,鶴,= con hạc,— grue\n"
	if sb.String() != want {
		t.Errorf("CSV output = %q, want %q", sb.String(), want)
	}
}
