package mandalart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEmptyCells_Deterministic(t *testing.T) {
	cells := NewEmptyCells()

	require.Len(t, cells, TotalCells)
	assert.Equal(t, "0-0", cells[0].ID)
	assert.Equal(t, "8-8", cells[TotalCells-1].ID)

	// Exactly the cross product of the two 9-wide ranges, in order
	i := 0
	for section := 0; section < SectionCount; section++ {
		for cell := 0; cell < CellsPerSection; cell++ {
			assert.Equal(t, CellID(section, cell), cells[i].ID)
			assert.Equal(t, section, cells[i].SectionIndex)
			assert.Equal(t, cell, cells[i].CellIndex)
			assert.Equal(t, "", cells[i].Value)
			i++
		}
	}
}

func TestMarshalCells_RoundTrip(t *testing.T) {
	cells := NewEmptyCells()
	cells[40].Value = "main goal" // 4-4
	cells[0].Value = "first"

	raw, err := MarshalCells(cells)
	require.NoError(t, err)

	restored, err := UnmarshalCells(raw)
	require.NoError(t, err)

	// Exact round trip, empty values included
	require.Len(t, restored, TotalCells)
	for i := range cells {
		assert.Equal(t, cells[i].ID, restored[i].ID)
		assert.Equal(t, cells[i].Value, restored[i].Value)
		assert.Equal(t, cells[i].SectionIndex, restored[i].SectionIndex)
		assert.Equal(t, cells[i].CellIndex, restored[i].CellIndex)
	}
}

func TestValidateCells(t *testing.T) {
	assert.NoError(t, ValidateCells(NewEmptyCells()))

	short := NewEmptyCells()[:80]
	assert.Error(t, ValidateCells(short))

	bad := NewEmptyCells()
	bad[3].ID = "9-9"
	assert.Error(t, ValidateCells(bad))

	dup := NewEmptyCells()
	dup[1] = dup[0]
	assert.Error(t, ValidateCells(dup))
}

func TestDocument_UpdateCell(t *testing.T) {
	doc := NewDocument()

	assert.True(t, doc.UpdateCell("4-4", "hello"))

	for _, cell := range doc.Cells {
		if cell.ID == "4-4" {
			assert.Equal(t, "hello", cell.Value)
		} else {
			assert.Equal(t, "", cell.Value)
		}
	}

	assert.False(t, doc.UpdateCell("9-0", "nope"))
}

func TestDocument_ResetSection(t *testing.T) {
	doc := NewDocument()
	for i := range doc.Cells {
		doc.Cells[i].Value = "x"
	}

	doc.ResetSection(2)

	for _, cell := range doc.Cells {
		if cell.SectionIndex == 2 {
			assert.Equal(t, "", cell.Value)
		} else {
			assert.Equal(t, "x", cell.Value)
		}
	}
}

func TestDocument_SetMetadata(t *testing.T) {
	doc := NewDocument()

	require.NoError(t, doc.SetMetadata(FieldTitle, "My Year"))
	require.NoError(t, doc.SetMetadata(FieldKeyword, "focus"))
	require.NoError(t, doc.SetMetadata(FieldCommitment, "daily"))
	require.NoError(t, doc.SetMetadata(FieldYear, "2027"))

	assert.Equal(t, "My Year", doc.Title)
	assert.Equal(t, "focus", doc.Keyword)
	assert.Equal(t, "daily", doc.Commitment)
	assert.Equal(t, "2027", doc.Year)

	assert.Error(t, doc.SetMetadata("color", "red"))
}

func TestDocument_Reset(t *testing.T) {
	doc := NewDocument()
	doc.Title = "old"
	doc.UpdateCell("0-0", "goal")

	doc.Reset()

	assert.Equal(t, "", doc.Title)
	for _, cell := range doc.Cells {
		assert.Equal(t, "", cell.Value)
	}
}
