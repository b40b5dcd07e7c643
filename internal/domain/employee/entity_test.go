package employee

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/shiftclock"
	"github.com/stretchr/testify/assert"
)

func TestEmployee_ShiftWindow(t *testing.T) {
	e := Employee{ShiftStart: "10:00 AM", ShiftEnd: "7:00 PM"}
	assert.Equal(t, shiftclock.New(10, 0), e.ShiftWindow().Start)
	assert.Equal(t, shiftclock.New(19, 0), e.ShiftWindow().End)

	broken := Employee{ShiftStart: "ten", ShiftEnd: "7:00 PM"}
	assert.Equal(t, shiftclock.DefaultWindow, broken.ShiftWindow())

	assert.Equal(t, shiftclock.DefaultWindow, Employee{}.ShiftWindow())
}

func TestEmployee_WeekOffs(t *testing.T) {
	e := Employee{WeekOffDays: []string{"Saturday", "sunday", "Funday"}}
	offs := e.WeekOffs()

	assert.True(t, offs[time.Saturday])
	assert.True(t, offs[time.Sunday])
	assert.False(t, offs[time.Monday])
	assert.Len(t, offs, 2)
}

func TestEmployee_Location(t *testing.T) {
	fallback := time.UTC
	tz := "Asia/Kolkata"
	bad := "Nowhere/Land"

	assert.Equal(t, "Asia/Kolkata", Employee{OfficeTimezone: &tz}.Location(fallback).String())
	assert.Equal(t, fallback, Employee{OfficeTimezone: &bad}.Location(fallback))
	assert.Equal(t, fallback, Employee{}.Location(fallback))
}

func TestCreateEmployeeRequest_Validate(t *testing.T) {
	req := CreateEmployeeRequest{
		EmployeeCode: "EMP-001",
		FullName:     "Asha Rao",
		Email:        "asha@example.com",
		WeekOffDays:  []string{"Sunday"},
	}
	assert.NoError(t, req.Validate())
	assert.Equal(t, "9:00 AM", req.ShiftStart)
	assert.Equal(t, "6:00 PM", req.ShiftEnd)

	bad := CreateEmployeeRequest{
		EmployeeCode: "",
		FullName:     "",
		ShiftStart:   "25:00",
		WeekOffDays:  []string{"Sunday", "Sunday"},
	}
	err := bad.Validate()
	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), "employee_code")
		assert.Contains(t, err.Error(), "full_name")
		assert.Contains(t, err.Error(), "shift_start")
		assert.Contains(t, err.Error(), "week_off_days")
	}

	role := "admin"
	withRole := CreateEmployeeRequest{EmployeeCode: "E1", FullName: "X", Role: &role}
	assert.Error(t, withRole.Validate())
}
