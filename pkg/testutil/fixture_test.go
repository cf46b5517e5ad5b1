package testutil

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/iwvelando/unemployment-dashboard/pkg/constants"
)

func TestSyntheticRowsShape(t *testing.T) {
	rows := SyntheticRows()
	if len(rows) != constants.ExpectedRows+1 {
		t.Fatalf("expected %d rows including header, got %d", constants.ExpectedRows+1, len(rows))
	}
	for i, row := range rows {
		if len(row) != constants.ExpectedColumns {
			t.Fatalf("row %d has %d columns", i, len(row))
		}
	}
}

func TestSyntheticCSVParses(t *testing.T) {
	records, err := csv.NewReader(bytes.NewReader(SyntheticCSV())).ReadAll()
	if err != nil {
		t.Fatalf("fixture CSV does not parse: %v", err)
	}
	if records[0][0] != constants.ColumnGender {
		t.Errorf("unexpected header %v", records[0])
	}
}

func TestExpectedMean(t *testing.T) {
	all := ExpectedMean(nil)
	female := ExpectedMean(map[string]string{constants.ColumnGender: "Female"})
	male := ExpectedMean(map[string]string{constants.ColumnGender: "Male"})
	if !(female > all && all > male) {
		t.Errorf("expected female > overall > male, got %v %v %v", female, all, male)
	}
}
