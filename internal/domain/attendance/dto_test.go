package attendance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportFilter_Validate(t *testing.T) {
	f := ReportFilter{StartDate: "2024-03-01", EndDate: "2024-03-31"}
	require.NoError(t, f.Validate())
	assert.Equal(t, "json", f.Format)
	assert.Equal(t, 31, f.To.Day())

	f = ReportFilter{StartDate: "2024-03-10", EndDate: "2024-03-01", Format: "docx"}
	err := f.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "end_date")
	assert.Contains(t, err.Error(), "format")

	f = ReportFilter{StartDate: "2024-01-01", EndDate: "2024-06-30"}
	assert.Error(t, f.Validate())
}

func TestReportFilter_Validate_RangeCap(t *testing.T) {
	f := ReportFilter{StartDate: "2024-01-01", EndDate: "2024-04-02"}
	assert.NoError(t, f.Validate(), "93 days inclusive is allowed")

	f = ReportFilter{StartDate: "2024-01-01", EndDate: "2024-04-03"}
	err := f.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "93 days")

	f = ReportFilter{StartDate: "2024-06-05", EndDate: "2024-06-05"}
	assert.NoError(t, f.Validate())
}

func TestClassifyRequest_Validate_Overrides(t *testing.T) {
	full := 4.5
	r := ClassifyRequest{Date: "2024-06-03", FullDayHours: &full}
	assert.NoError(t, r.Validate(), "a lone full_day_hours is checked against the stored policy later")

	half, bigFull := 6.0, 5.0
	r = ClassifyRequest{Date: "2024-06-03", FullDayHours: &bigFull, HalfDayHours: &half}
	err := r.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "half_day_hours")

	grace, over := 300, 25.0
	r = ClassifyRequest{Date: "2024-06-03", LateGraceMinutes: &grace, FullDayHours: &over}
	err = r.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "late_grace_minutes")
	assert.Contains(t, err.Error(), "full_day_hours")
}

func TestReportResponse_Table(t *testing.T) {
	r := ReportResponse{
		StartDate: "2024-03-04",
		EndDate:   "2024-03-05",
		Employees: []EmployeeReport{{
			EmployeeCode: "EMP-001",
			EmployeeName: "Asha Rao",
			ShiftWindow:  "9:00 AM - 6:00 PM",
			Days: []ReportDay{
				{Date: "2024-03-04", Weekday: "Monday", PunchIn: "9:05 AM", PunchOut: "6:10 PM", WorkingHoursText: "9h 5m", Status: StatusPresentOnTime},
				{Date: "2024-03-05", Weekday: "Tuesday", PunchIn: "N/A", PunchOut: "N/A", WorkingHoursText: "N/A", Status: StatusAbsent},
			},
		}},
	}

	table := r.Table()
	assert.Equal(t, "2024-03-04 to 2024-03-05", table.Subtitle)
	require.Len(t, table.Rows, 2)
	for _, row := range table.Rows {
		assert.Len(t, row, len(table.Headers))
	}
	assert.Equal(t, "EMP-001", table.Rows[0][0])
	assert.Equal(t, string(StatusAbsent), table.Rows[1][8])
}
