package importer

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func workbook(t *testing.T, rows ...[]interface{}) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestReadSheet(t *testing.T) {
	buf := workbook(t,
		[]interface{}{"Name", "Code", "Price", "Tax %"},
		[]interface{}{"Toor Dal", "DAL-1", 120, 5},
		[]interface{}{"", "", "", ""},
		[]interface{}{" Sugar ", "", 45.5},
	)

	rows, numbers, err := ReadSheet(buf)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []int{2, 4}, numbers)

	assert.Equal(t, "Toor Dal", rows[0].Get("name"))
	assert.Equal(t, "120", rows[0].Get("price"))
	assert.Equal(t, "5", rows[0].Get("tax", "taxpercent"))
	assert.Equal(t, "Sugar", rows[1].Get("Name"))
	assert.Equal(t, "45.5", rows[1].Get("price"))
	assert.Equal(t, "", rows[1].Get("code"))
}

func TestReadSheet_Errors(t *testing.T) {
	_, _, err := ReadSheet(bytes.NewBufferString("not a workbook"))
	assert.Error(t, err)

	_, _, err = ReadSheet(workbook(t))
	assert.ErrorIs(t, err, ErrNoHeader)
}

func TestNormalizeHeader(t *testing.T) {
	assert.Equal(t, "tax", NormalizeHeader(" Tax % "))
	assert.Equal(t, "discountpercent", NormalizeHeader("discount_percent"))
	assert.Equal(t, "price", NormalizeHeader("Price (₹)"))
}
