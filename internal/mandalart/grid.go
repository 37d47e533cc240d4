package mandalart

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

const (
	// SectionCount is the number of sub-grids in a mandalart chart
	SectionCount = 9
	// CellsPerSection is the number of cells in each sub-grid
	CellsPerSection = 9
	// TotalCells is the full 9x9 grid
	TotalCells = SectionCount * CellsPerSection
)

// Cell is one square of the grid. Its ID is derived from its position and is
// stable across resets, so edits always address the same sequence slot.
type Cell struct {
	ID           string `json:"id"`
	Value        string `json:"value"`
	SectionIndex int    `json:"sectionIndex"`
	CellIndex    int    `json:"cellIndex"`
}

// CellID derives the stable id for a grid position
func CellID(sectionIndex, cellIndex int) string {
	return strconv.Itoa(sectionIndex) + "-" + strconv.Itoa(cellIndex)
}

// NewEmptyCells builds the 81-cell grid in deterministic order
func NewEmptyCells() []Cell {
	cells := make([]Cell, 0, TotalCells)
	for sectionIndex := 0; sectionIndex < SectionCount; sectionIndex++ {
		for cellIndex := 0; cellIndex < CellsPerSection; cellIndex++ {
			cells = append(cells, Cell{
				ID:           CellID(sectionIndex, cellIndex),
				Value:        "",
				SectionIndex: sectionIndex,
				CellIndex:    cellIndex,
			})
		}
	}
	return cells
}

// ValidateCells checks that cells form exactly the 9x9 cross product
func ValidateCells(cells []Cell) error {
	if len(cells) != TotalCells {
		return fmt.Errorf("expected %d cells, got %d", TotalCells, len(cells))
	}
	seen := make(map[string]bool, TotalCells)
	for _, cell := range cells {
		if cell.SectionIndex < 0 || cell.SectionIndex >= SectionCount ||
			cell.CellIndex < 0 || cell.CellIndex >= CellsPerSection {
			return fmt.Errorf("cell %q out of range", cell.ID)
		}
		if cell.ID != CellID(cell.SectionIndex, cell.CellIndex) {
			return fmt.Errorf("cell id %q does not match position %d-%d", cell.ID, cell.SectionIndex, cell.CellIndex)
		}
		if seen[cell.ID] {
			return fmt.Errorf("duplicate cell %q", cell.ID)
		}
		seen[cell.ID] = true
	}
	return nil
}

// MarshalCells serializes the grid for storage. The round trip is lossless,
// empty values included.
func MarshalCells(cells []Cell) (string, error) {
	raw, err := json.Marshal(cells)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// UnmarshalCells restores a grid from its stored form
func UnmarshalCells(raw string) ([]Cell, error) {
	var cells []Cell
	if err := json.Unmarshal([]byte(raw), &cells); err != nil {
		return nil, err
	}
	return cells, nil
}

// MetadataField names one of the free-text document fields
type MetadataField string

const (
	FieldYear       MetadataField = "year"
	FieldTitle      MetadataField = "title"
	FieldKeyword    MetadataField = "keyword"
	FieldCommitment MetadataField = "commitment"
)

// Document is the authoritative grid document shape, shared by the server
// services and the client synchronization store.
type Document struct {
	Year       string `json:"year"`
	Title      string `json:"title"`
	Keyword    string `json:"keyword"`
	Commitment string `json:"commitment"`
	Cells      []Cell `json:"cells"`
}

// NewDocument returns an empty document for the current year
func NewDocument() Document {
	return Document{
		Year:  strconv.Itoa(time.Now().Year()),
		Cells: NewEmptyCells(),
	}
}

// SetMetadata updates one of the free-text fields
func (d *Document) SetMetadata(field MetadataField, value string) error {
	switch field {
	case FieldYear:
		d.Year = value
	case FieldTitle:
		d.Title = value
	case FieldKeyword:
		d.Keyword = value
	case FieldCommitment:
		d.Commitment = value
	default:
		return fmt.Errorf("unknown metadata field %q", field)
	}
	return nil
}

// UpdateCell sets the value of one cell, reporting whether the id matched
func (d *Document) UpdateCell(id, value string) bool {
	for i := range d.Cells {
		if d.Cells[i].ID == id {
			d.Cells[i].Value = value
			return true
		}
	}
	return false
}

// ResetSection clears the 9 cells of one sub-grid, leaving the rest untouched
func (d *Document) ResetSection(sectionIndex int) {
	for i := range d.Cells {
		if d.Cells[i].SectionIndex == sectionIndex {
			d.Cells[i].Value = ""
		}
	}
}

// Reset returns the document to the empty current-year state
func (d *Document) Reset() {
	*d = NewDocument()
}
