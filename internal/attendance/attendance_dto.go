package attendance

type CreateClockInOutRequest struct {
	EmployeeID   string  `json:"employeeId" binding:"required"`
	Date         string  `json:"date" binding:"required"`
	ClockInTime  string  `json:"clockInTime" binding:"required,hhmm"`
	ClockOutTime *string `json:"clockOutTime" binding:"omitempty,hhmm"`
	Notes        *string `json:"notes"`
}

// UpdateClockInOutRequest is a partial update; nil fields are left alone and
// an empty clockOutTime counts as not supplied.
type UpdateClockInOutRequest struct {
	EmployeeID   *string `json:"employeeId" binding:"omitempty,min=1"`
	Date         *string `json:"date"`
	ClockInTime  *string `json:"clockInTime" binding:"omitempty,hhmm"`
	ClockOutTime *string `json:"clockOutTime" binding:"omitempty,hhmm"`
	Notes        *string `json:"notes"`
}

type ClockInSelfRequest struct {
	ClockInTime string  `json:"clockInTime" binding:"required,hhmm"`
	Notes       *string `json:"notes"`
}

type UpdateClockInSelfRequest struct {
	ClockOutTime *string `json:"clockOutTime" binding:"omitempty,hhmm"`
	Notes        *string `json:"notes"`
}

type ClockInOutResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employeeId"`
	FirstName    string  `json:"firstName"`
	LastName     string  `json:"lastName"`
	Date         string  `json:"date"`
	ClockInTime  string  `json:"clockInTime"`
	ClockOutTime *string `json:"clockOutTime"`
	Notes        *string `json:"notes"`
}
