package visit

import "time"

// Visit is a field employee's stop at a dealer. It stays open until checked out.
type Visit struct {
	ID            string
	CompanyID     string
	EmployeeID    string
	DealerName    string
	DealerAddress string
	VisitDate     time.Time
	CheckInAt     time.Time
	CheckOutAt    *time.Time
	Latitude      *float64
	Longitude     *float64
	Purpose       string
	Outcome       *string
	Notes         *string
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// Join
	EmployeeName *string
	EmployeeCode *string
}

func (v Visit) IsOpen() bool {
	return v.CheckOutAt == nil
}

// Duration is zero while the visit is open.
func (v Visit) Duration() time.Duration {
	if v.CheckOutAt == nil {
		return 0
	}
	return v.CheckOutAt.Sub(v.CheckInAt)
}
