package main

import (
	"strings"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommandTree(t *testing.T) {
	for _, path := range [][]string{
		{"migrate"},
		{"bootstrap"},
		{"holidays", "import"},
		{"classify"},
		{"payroll", "generate"},
		{"cron", "list"},
		{"cron", "run"},
	} {
		cmd, rest, err := rootCmd.Find(path)
		require.NoError(t, err, strings.Join(path, " "))
		assert.Empty(t, rest)
		assert.Equal(t, path[len(path)-1], cmd.Name())
		assert.NotNil(t, cmd.RunE, strings.Join(path, " "))
	}
}

func TestLoadCalendar(t *testing.T) {
	cal, err := loadCalendar(strings.NewReader(`
holidays:
  - date: 2025-01-26
    name: Republic Day
  - date: "2025-08-15"
    name: Independence Day
`))
	require.NoError(t, err)
	require.Len(t, cal.Holidays, 2)
	assert.Equal(t, "2025-01-26", cal.Holidays[0].Date)
	assert.Equal(t, "Independence Day", cal.Holidays[1].Name)
}

func TestLoadCalendar_Errors(t *testing.T) {
	cases := map[string]string{
		"empty":         ``,
		"no holidays":   "holidays: []\n",
		"unknown field": "holiday:\n  - date: 2025-01-26\n    name: X\n",
		"bad date":      "holidays:\n  - date: 26-01-2025\n    name: X\n",
		"duplicate": `holidays:
  - date: 2025-01-26
    name: A
  - date: 2025-01-26
    name: B
`,
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := loadCalendar(strings.NewReader(doc))
			assert.Error(t, err)
		})
	}
}

func TestBuildClassifyRequest_OnlyChangedOverrides(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.Flags().AddFlagSet(classifyCmd.Flags())
	require.NoError(t, cmd.ParseFlags([]string{
		"--date", "2025-03-03",
		"--shift-start", "9:00 AM",
		"--shift-end", "6:00 PM",
		"--week-off", "Saturday,Sunday",
		"--late-grace", "0",
	}))
	t.Cleanup(func() {
		classifyReq = attendance.ClassifyRequest{}
		lateGrace = 0
	})

	req := buildClassifyRequest(cmd)
	assert.Equal(t, "2025-03-03", req.Date)
	assert.Equal(t, []string{"Saturday", "Sunday"}, req.WeekOffDays)
	require.NotNil(t, req.LateGraceMinutes)
	assert.Equal(t, 0, *req.LateGraceMinutes)
	assert.Nil(t, req.FullDayHours)
	assert.Nil(t, req.HalfDayHours)
}

func TestPayrollRequest_DefaultsToPreviousMonth(t *testing.T) {
	payrollYear, payrollMonth, payrollEmployee = 0, 0, ""
	req := payrollRequest(time.Date(2025, time.January, 10, 12, 0, 0, 0, time.UTC))
	assert.Equal(t, 2024, req.Year)
	assert.Equal(t, 12, req.Month)
	assert.Nil(t, req.EmployeeID)

	payrollYear, payrollMonth, payrollEmployee = 2025, 2, "emp-1"
	t.Cleanup(func() { payrollYear, payrollMonth, payrollEmployee = 0, 0, "" })
	req = payrollRequest(time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, 2025, req.Year)
	assert.Equal(t, 2, req.Month)
	require.NotNil(t, req.EmployeeID)
	assert.Equal(t, "emp-1", *req.EmployeeID)
}
