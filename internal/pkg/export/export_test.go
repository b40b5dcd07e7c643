package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleTable() Table {
	return Table{
		Title:    "Attendance Report",
		Subtitle: "2024-06-01 to 2024-06-02",
		Headers:  []string{"Employee", "Date", "Status"},
		Rows: [][]string{
			{"Asha Rao", "2024-06-01", "Present (On Time)"},
			{"Asha Rao", "2024-06-02", "Week Off"},
		},
	}
}

func TestCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatCSV, sampleTable()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Employee,Date,Status", lines[0])
	assert.Equal(t, "Asha Rao,2024-06-01,Present (On Time)", lines[1])
}

func TestXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatXLSX, sampleTable()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Attendance Report")
	require.NoError(t, err)
	require.Len(t, rows, 5)
	assert.Equal(t, "Attendance Report (2024-06-01 to 2024-06-02)", rows[0][0])
	assert.Equal(t, []string{"Employee", "Date", "Status"}, rows[2])
	assert.Equal(t, "Week Off", rows[4][2])
}

func TestPDF(t *testing.T) {
	table := sampleTable()
	for i := 0; i < 80; i++ {
		table.Rows = append(table.Rows, []string{"Ravi", "2024-06-03", "Absent"})
	}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatPDF, table))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestStatementPDF(t *testing.T) {
	var buf bytes.Buffer
	err := StatementPDF(&buf, Statement{
		Title:    "Salary Slip",
		Subtitle: "June 2024",
		Sections: []Section{{Heading: "Earnings", Lines: []Line{{Label: "Base", Value: "30000.00"}, {Label: "Net", Value: "26010.00", Bold: true}}}},
		Footer:   "Generated by the system",
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestWrite_RejectsJSON(t *testing.T) {
	assert.Error(t, Write(&bytes.Buffer{}, FormatJSON, sampleTable()))
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "application/pdf", FormatPDF.ContentType())
	assert.Equal(t, "report.xlsx", FormatXLSX.Filename("report"))
	assert.Equal(t, "Sheet1", sheetName("///"))
	assert.Len(t, sheetName(strings.Repeat("x", 40)), 31)
}
