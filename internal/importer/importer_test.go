package importer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestDetectCSVDelimiter_Comma(t *testing.T) {
	data := []byte("Label,Width,Height,Qty\nShelf,600,300,2\nDoor,400,800,1\n")
	assert.Equal(t, ',', DetectCSVDelimiter(data))
}

func TestDetectCSVDelimiter_Semicolon(t *testing.T) {
	data := []byte("Label;Width;Height;Qty\nShelf;600;300;2\nDoor;400;800;1\n")
	assert.Equal(t, ';', DetectCSVDelimiter(data))
}

func TestDetectCSVDelimiter_Tab(t *testing.T) {
	data := []byte("Label\tWidth\tHeight\tQty\nShelf\t600\t300\t2\nDoor\t400\t800\t1\n")
	assert.Equal(t, '\t', DetectCSVDelimiter(data))
}

func TestDetectCSVDelimiter_Pipe(t *testing.T) {
	data := []byte("Label|Width|Height|Qty\nShelf|600|300|2\nDoor|400|800|1\n")
	assert.Equal(t, '|', DetectCSVDelimiter(data))
}

func TestDetectColumns_StandardHeaders(t *testing.T) {
	row := []string{"Label", "Width", "Height", "Quantity"}
	mapping, isHeader := DetectColumns(row)

	require.True(t, isHeader)
	assert.Equal(t, 0, mapping.Label)
	assert.Equal(t, 1, mapping.Width)
	assert.Equal(t, 2, mapping.Height)
	assert.Equal(t, 3, mapping.Quantity)
}

func TestDetectColumns_CaseInsensitive(t *testing.T) {
	row := []string{"NAME", "WIDTH", "HEIGHT", "QTY"}
	mapping, isHeader := DetectColumns(row)

	require.True(t, isHeader)
	assert.Equal(t, 0, mapping.Label)
	assert.Equal(t, 1, mapping.Width)
}

func TestDetectColumns_AlternativeNames(t *testing.T) {
	row := []string{"Part Name", "W", "H", "Pcs"}
	mapping, isHeader := DetectColumns(row)

	require.True(t, isHeader)
	assert.Equal(t, 0, mapping.Label)
	assert.Equal(t, 1, mapping.Width)
	assert.Equal(t, 2, mapping.Height)
	assert.Equal(t, 3, mapping.Quantity)
}

func TestDetectColumns_ReorderedColumns(t *testing.T) {
	row := []string{"Qty", "Height", "Width", "Label"}
	mapping, isHeader := DetectColumns(row)

	require.True(t, isHeader)
	assert.Equal(t, 0, mapping.Quantity)
	assert.Equal(t, 1, mapping.Height)
	assert.Equal(t, 2, mapping.Width)
	assert.Equal(t, 3, mapping.Label)
}

func TestDetectColumns_NoHeader(t *testing.T) {
	row := []string{"Shelf", "600", "300", "2"}
	mapping, isHeader := DetectColumns(row)

	assert.False(t, isHeader)
	assert.Equal(t, ColumnMapping{Label: 0, Width: 1, Height: 2, Quantity: 3}, mapping)
}

func TestImportCSVFromReader_WithHeaders(t *testing.T) {
	data := "Label,Width,Height,Quantity\nShelf,600,300,2\nDoor,400,800,1\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	require.Empty(t, result.Errors)
	require.Len(t, result.Parts, 3)
	assert.Equal(t, "Shelf (1)", result.Parts[0].Label)
	assert.Equal(t, "Shelf (2)", result.Parts[1].Label)
	assert.Equal(t, "Door", result.Parts[2].Label)

	bb := result.Parts[0].BoundingBox()
	assert.InDelta(t, 600, bb.Width(), 1e-9)
	assert.InDelta(t, 300, bb.Height(), 1e-9)
}

func TestImportCSVFromReader_WithoutHeaders(t *testing.T) {
	data := "Shelf,600,300,2\nDoor,400,800,1\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	require.Len(t, result.Parts, 3)
	assert.Equal(t, "Shelf (1)", result.Parts[0].Label)
}

func TestImportCSVFromReader_SemicolonDelimiter(t *testing.T) {
	data := "Label;Width;Height;Quantity\nShelf;600;300;2\n"
	result := ImportCSVFromReader(strings.NewReader(data), ';')

	require.Empty(t, result.Errors)
	require.Len(t, result.Parts, 2)
}

func TestImportCSVFromReader_TabDelimiter(t *testing.T) {
	data := "Label\tWidth\tHeight\tQuantity\nShelf\t600\t300\t2\n"
	result := ImportCSVFromReader(strings.NewReader(data), '\t')

	require.Empty(t, result.Errors)
	require.Len(t, result.Parts, 2)
}

func TestImportCSVFromReader_ReorderedColumns(t *testing.T) {
	data := "Qty,Height,Width,Name\n2,300,600,Shelf\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	require.Empty(t, result.Errors)
	require.Len(t, result.Parts, 2)
	bb := result.Parts[0].BoundingBox()
	assert.InDelta(t, 600, bb.Width(), 1e-9)
	assert.InDelta(t, 300, bb.Height(), 1e-9)
}

func TestImportCSVFromReader_EmptyFile(t *testing.T) {
	result := ImportCSVFromReader(strings.NewReader(""), ',')
	assert.NotEmpty(t, result.Errors)
}

func TestImportCSVFromReader_InvalidWidth(t *testing.T) {
	data := "Label,Width,Height,Quantity\nShelf,abc,300,2\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	assert.NotEmpty(t, result.Errors)
	assert.Empty(t, result.Parts)
}

func TestImportCSVFromReader_InvalidQuantity(t *testing.T) {
	data := "Label,Width,Height,Quantity\nShelf,600,300,abc\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')
	assert.NotEmpty(t, result.Errors)
}

func TestImportCSVFromReader_NegativeValues(t *testing.T) {
	data := "Label,Width,Height,Quantity\nShelf,-600,300,2\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')
	assert.NotEmpty(t, result.Errors)
}

func TestImportCSVFromReader_ZeroQuantity(t *testing.T) {
	data := "Label,Width,Height,Quantity\nShelf,600,300,0\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')
	assert.NotEmpty(t, result.Errors)
}

func TestImportCSVFromReader_MixedValidAndInvalid(t *testing.T) {
	data := "Label,Width,Height,Quantity\nGood,600,300,2\nBad,abc,300,2\nAlsoGood,400,200,1\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	assert.Len(t, result.Parts, 3)
	assert.Len(t, result.Errors, 1)
}

func TestImportCSVFromReader_EmptyRows(t *testing.T) {
	data := "Label,Width,Height,Quantity\nShelf,600,300,2\n\n\nDoor,400,800,1\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')
	assert.Len(t, result.Parts, 3)
}

func TestImportCSVFromReader_EmptyLabel(t *testing.T) {
	data := "Label,Width,Height,Quantity\n,600,300,1\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	require.Len(t, result.Parts, 1)
	assert.Equal(t, "Part 1", result.Parts[0].Label)
}

func TestImportCSVFromReader_MissingRequiredColumnInHeader(t *testing.T) {
	data := "Label,Grain\nShelf,H\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	require.NotEmpty(t, result.Errors)
	found := false
	for _, e := range result.Errors {
		if strings.Contains(e, "required columns not found") {
			found = true
		}
	}
	assert.True(t, found)
}

func TestImportCSV_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "parts.csv")
	content := "Label,Width,Height,Quantity\nShelf,600,300,2\nDoor,400,800,1\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	result := ImportCSV(path)
	require.Empty(t, result.Errors)
	assert.Len(t, result.Parts, 3)
}

func TestImportCSV_SemicolonFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "parts.csv")
	content := "Label;Width;Height;Quantity\nShelf;600;300;2\nDoor;400;800;1\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	result := ImportCSV(path)
	assert.Len(t, result.Parts, 3)

	hasWarning := false
	for _, w := range result.Warnings {
		if strings.Contains(w, "semicolon") {
			hasWarning = true
		}
	}
	assert.True(t, hasWarning)
}

func TestImportCSV_FileNotFound(t *testing.T) {
	result := ImportCSV("/nonexistent/path/file.csv")
	assert.NotEmpty(t, result.Errors)
}

func TestImportCSV_EmptyFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.csv")
	require.NoError(t, os.WriteFile(path, []byte(""), 0644))

	result := ImportCSV(path)
	assert.NotEmpty(t, result.Errors)
}

func createTestExcel(t *testing.T, rows [][]interface{}) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "parts.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	for i, row := range rows {
		for j, cell := range row {
			cellRef, err := excelize.CoordinatesToCellName(j+1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(sheet, cellRef, cell))
		}
	}

	require.NoError(t, f.SaveAs(path))
	return path
}

func TestImportExcel_WithHeaders(t *testing.T) {
	path := createTestExcel(t, [][]interface{}{
		{"Label", "Width", "Height", "Quantity"},
		{"Shelf", 600, 300, 2},
		{"Door", 400, 800, 1},
	})

	result := ImportExcel(path)
	require.Empty(t, result.Errors)
	assert.Len(t, result.Parts, 3)
	assert.Equal(t, "Shelf (1)", result.Parts[0].Label)
}

func TestImportExcel_WithoutHeaders(t *testing.T) {
	path := createTestExcel(t, [][]interface{}{
		{"Shelf", 600, 300, 2},
		{"Door", 400, 800, 1},
	})

	result := ImportExcel(path)
	assert.Len(t, result.Parts, 3)
}

func TestImportExcel_ReorderedColumns(t *testing.T) {
	path := createTestExcel(t, [][]interface{}{
		{"Qty", "Name", "Height", "Width"},
		{2, "Shelf", 300, 600},
	})

	result := ImportExcel(path)
	require.Empty(t, result.Errors)
	require.Len(t, result.Parts, 2)
	assert.Equal(t, "Shelf (1)", result.Parts[0].Label)
}

func TestImportExcel_FileNotFound(t *testing.T) {
	result := ImportExcel("/nonexistent/file.xlsx")
	assert.NotEmpty(t, result.Errors)
}

func TestImportExcel_InvalidData(t *testing.T) {
	path := createTestExcel(t, [][]interface{}{
		{"Label", "Width", "Height", "Quantity"},
		{"Shelf", "abc", 300, 2},
	})

	result := ImportExcel(path)
	assert.NotEmpty(t, result.Errors)
}

func TestImportCSVFromReader_OnlyHeaders(t *testing.T) {
	data := "Label,Width,Height,Quantity\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')
	assert.Empty(t, result.Parts)
}

func TestImportCSVFromReader_WhitespaceInValues(t *testing.T) {
	data := "Label , Width , Height , Quantity\n Shelf , 600 , 300 , 2 \n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	require.Len(t, result.Parts, 2)
	bb := result.Parts[0].BoundingBox()
	assert.InDelta(t, 600, bb.Width(), 1e-9)
}

func TestImportCSVFromReader_DecimalValues(t *testing.T) {
	data := "Label,Width,Height,Quantity\nShelf,600.5,300.25,1\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	require.Len(t, result.Parts, 1)
	bb := result.Parts[0].BoundingBox()
	assert.InDelta(t, 600.5, bb.Width(), 1e-9)
	assert.InDelta(t, 300.25, bb.Height(), 1e-9)
}
