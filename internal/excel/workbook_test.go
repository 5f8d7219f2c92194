package excel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestReadWorkbookRejectsEmptyInput(t *testing.T) {
	_, err := ReadWorkbook(nil)
	assert.ErrorIs(t, err, ErrEmptyWorkbook)

	_, err = ReadWorkbook([]byte{})
	assert.ErrorIs(t, err, ErrEmptyWorkbook)
}

func TestReadWorkbookRejectsOversizedInput(t *testing.T) {
	_, err := ReadWorkbook(make([]byte, MaxWorkbookSize+1))
	assert.ErrorIs(t, err, ErrWorkbookSize)
}

func TestReadWorkbookRejectsGarbage(t *testing.T) {
	_, err := ReadWorkbook([]byte("this is not a zip container"))
	assert.Error(t, err)
}

func TestReadWorkbookPadsRaggedRows(t *testing.T) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()
	sheet := f.GetSheetName(0)
	header := []interface{}{"A", "B", "C"}
	require.NoError(t, f.SetSheetRow(sheet, "A1", &header))
	short := []interface{}{"only"}
	require.NoError(t, f.SetSheetRow(sheet, "A2", &short))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	grid, err := ReadWorkbook(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, grid, 2)
	assert.Len(t, grid[1], 3)
	assert.True(t, grid[1][2].IsEmpty())
}

func TestCellValueClassification(t *testing.T) {
	assert.Equal(t, CellEmpty, NewCellValue("   ").Kind)
	assert.Equal(t, CellNumber, NewCellValue("42").Kind)
	assert.Equal(t, CellDate, NewCellValue("1/15/26").Kind)
	assert.Equal(t, CellText, NewCellValue("Acme Corp").Kind)

	assert.Equal(t, "42", NewCellValue("42").String())
	assert.Equal(t, "42.5", NewCellValue("42.5").String())
}

func TestCellValueAmount(t *testing.T) {
	require.NotNil(t, NewCellValue("$1,250.40").Amount())
	assert.Equal(t, "1250.4", NewCellValue("$1,250.40").Amount().String())
	assert.Nil(t, NewCellValue("").Amount())
	assert.Nil(t, NewCellValue("n/a").Amount())
}
