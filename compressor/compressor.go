// Package compressor packs sparse parsing tables. Rows and columns keep their numbers, so a
// packed table answers the same lookups as the table it was built from.
package compressor

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

var (
	ErrMalformedTable = errors.New("malformed table")
	ErrOutOfRange     = errors.New("index out of range")
)

// Table is a dense table laid out row by row.
type Table struct {
	entries []int
	rows    int
	cols    int
}

func NewTable(entries []int, cols int) (*Table, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: no entries", ErrMalformedTable)
	}
	if cols <= 0 {
		return nil, fmt.Errorf("%w: a table needs at least one column", ErrMalformedTable)
	}
	if len(entries)%cols != 0 {
		return nil, fmt.Errorf("%w: %v entries do not fill rows of %v columns", ErrMalformedTable, len(entries), cols)
	}
	return &Table{
		entries: entries,
		rows:    len(entries) / cols,
		cols:    cols,
	}, nil
}

func (t *Table) row(r int) []int {
	return t.entries[r*t.cols : (r+1)*t.cols]
}

type Compressor interface {
	Compress(t *Table) error
	Lookup(row, col int) (int, error)
	Size() (rows int, cols int)
}

var (
	_ Compressor = &UniqueRowsTable{}
	_ Compressor = &RowDisplacementTable{}
)

func checkRange(row, col, rows, cols int) error {
	if row < 0 || row >= rows || col < 0 || col >= cols {
		return fmt.Errorf("%w: [%v, %v] of a %vx%v table", ErrOutOfRange, row, col, rows, cols)
	}
	return nil
}

// UniqueRowsTable stores each distinct row once. It suits tables where many rows repeat, such
// as GOTO tables.
type UniqueRowsTable struct {
	Rows   [][]int
	RowNum []int
	cols   int
}

func NewUniqueRowsTable() *UniqueRowsTable {
	return &UniqueRowsTable{}
}

func (t *UniqueRowsTable) Compress(orig *Table) error {
	t.Rows = nil
	t.RowNum = make([]int, orig.rows)
	t.cols = orig.cols
	seen := map[string]int{}
	for r := 0; r < orig.rows; r++ {
		row := orig.row(r)
		key := rowKey(row)
		n, ok := seen[key]
		if !ok {
			n = len(t.Rows)
			seen[key] = n
			t.Rows = append(t.Rows, append([]int{}, row...))
		}
		t.RowNum[r] = n
	}
	return nil
}

func rowKey(row []int) string {
	var b strings.Builder
	for _, v := range row {
		b.WriteString(strconv.Itoa(v))
		b.WriteByte(',')
	}
	return b.String()
}

func (t *UniqueRowsTable) Lookup(row, col int) (int, error) {
	if err := checkRange(row, col, len(t.RowNum), t.cols); err != nil {
		return 0, err
	}
	return t.Rows[t.RowNum[row]][col], nil
}

func (t *UniqueRowsTable) Size() (int, int) {
	return len(t.RowNum), t.cols
}

const noOwner = -1

// RowDisplacementTable overlays all rows on one array, shifting each row until its non-empty
// entries land on free slots. Owner records which row a slot belongs to, so a lookup that hits
// another row's entry yields the empty value.
type RowDisplacementTable struct {
	Empty        int
	Entries      []int
	Owner        []int
	Displacement []int
	rows         int
	cols         int
}

func NewRowDisplacementTable(empty int) *RowDisplacementTable {
	return &RowDisplacementTable{
		Empty: empty,
	}
}

func (t *RowDisplacementTable) Compress(orig *Table) error {
	type rowCols struct {
		row  int
		cols []int
	}
	rs := make([]rowCols, orig.rows)
	for r := 0; r < orig.rows; r++ {
		rs[r].row = r
		for c, v := range orig.row(r) {
			if v != t.Empty {
				rs[r].cols = append(rs[r].cols, c)
			}
		}
	}
	// Placing dense rows first leaves the gaps to the sparse ones.
	sort.SliceStable(rs, func(i, j int) bool {
		return len(rs[i].cols) > len(rs[j].cols)
	})

	t.rows = orig.rows
	t.cols = orig.cols
	t.Displacement = make([]int, orig.rows)
	t.Entries = nil
	t.Owner = nil
	grow := func(n int) {
		for len(t.Entries) < n {
			t.Entries = append(t.Entries, t.Empty)
			t.Owner = append(t.Owner, noOwner)
		}
	}
	// Every row, even an empty one, may be looked up at any column.
	grow(orig.cols)

	for _, r := range rs {
		if len(r.cols) == 0 {
			continue
		}
		d := 0
		for !t.fits(d, r.cols) {
			d++
		}
		grow(d + orig.cols)
		for _, c := range r.cols {
			t.Entries[d+c] = orig.row(r.row)[c]
			t.Owner[d+c] = r.row
		}
		t.Displacement[r.row] = d
	}
	return nil
}

func (t *RowDisplacementTable) fits(d int, cols []int) bool {
	for _, c := range cols {
		if d+c < len(t.Owner) && t.Owner[d+c] != noOwner {
			return false
		}
	}
	return true
}

func (t *RowDisplacementTable) Lookup(row, col int) (int, error) {
	if err := checkRange(row, col, t.rows, t.cols); err != nil {
		return t.Empty, err
	}
	i := t.Displacement[row] + col
	if t.Owner[i] != row {
		return t.Empty, nil
	}
	return t.Entries[i], nil
}

func (t *RowDisplacementTable) Size() (int, int) {
	return t.rows, t.cols
}
