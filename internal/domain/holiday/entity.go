package holiday

import "time"

type Holiday struct {
	ID        string
	CompanyID string
	Date      time.Time
	Name      string
	CreatedAt time.Time
}
