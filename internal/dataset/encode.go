package dataset

import (
	"bytes"
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/ipc"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/iwvelando/unemployment-dashboard/pkg/constants"
	"github.com/xuri/excelize/v2"
)

// xlsxSheet is the name of the worksheet holding the data rows.
const xlsxSheet = "Data"

// XLSX encodes the dataset as a single-sheet spreadsheet.
func (d *Dataset) XLSX() ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", xlsxSheet); err != nil {
		return nil, fmt.Errorf("failed to name worksheet: %w", err)
	}

	header := make([]interface{}, len(constants.Columns))
	for i, col := range constants.Columns {
		header[i] = col
	}
	if err := f.SetSheetRow(xlsxSheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}

	for i, rec := range d.records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := []interface{}{rec.Gender, rec.Nationality, rec.DegreeLevel, rec.YearQuarter, rec.Rate}
		if err := f.SetSheetRow(xlsxSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to encode workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// ArrowSchema describes the dataset as Arrow columns.
func ArrowSchema() *arrow.Schema {
	return arrow.NewSchema(
		[]arrow.Field{
			{Name: constants.ColumnGender, Type: arrow.BinaryTypes.String},
			{Name: constants.ColumnNationality, Type: arrow.BinaryTypes.String},
			{Name: constants.ColumnDegreeLevel, Type: arrow.BinaryTypes.String},
			{Name: constants.ColumnYearQuarter, Type: arrow.BinaryTypes.String},
			{Name: constants.ColumnRate, Type: arrow.PrimitiveTypes.Float64},
		},
		nil,
	)
}

// ArrowIPC encodes the dataset as an Arrow IPC stream holding one record batch.
func (d *Dataset) ArrowIPC() ([]byte, error) {
	schema := ArrowSchema()
	builder := array.NewRecordBuilder(memory.DefaultAllocator, schema)
	defer builder.Release()

	genderBuilder := builder.Field(0).(*array.StringBuilder)
	nationalityBuilder := builder.Field(1).(*array.StringBuilder)
	degreeBuilder := builder.Field(2).(*array.StringBuilder)
	quarterBuilder := builder.Field(3).(*array.StringBuilder)
	rateBuilder := builder.Field(4).(*array.Float64Builder)

	for _, rec := range d.records {
		genderBuilder.Append(rec.Gender)
		nationalityBuilder.Append(rec.Nationality)
		degreeBuilder.Append(rec.DegreeLevel)
		quarterBuilder.Append(rec.YearQuarter)
		rateBuilder.Append(rec.Rate)
	}

	record := builder.NewRecord()
	defer record.Release()

	var buf bytes.Buffer
	writer := ipc.NewWriter(&buf, ipc.WithSchema(schema))
	if err := writer.Write(record); err != nil {
		_ = writer.Close()
		return nil, fmt.Errorf("failed to write record: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to close writer: %w", err)
	}
	return buf.Bytes(), nil
}
