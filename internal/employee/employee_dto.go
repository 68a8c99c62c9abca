package employee

type CreateEmployeeRequest struct {
	FirstName  string  `json:"firstName" binding:"required"`
	MiddleName *string `json:"middleName"`
	LastName   string  `json:"lastName" binding:"required"`

	DateOfBirth   string `json:"dateOfBirth" binding:"required"`
	Gender        string `json:"gender" binding:"required"`
	MaritalStatus string `json:"maritalStatus" binding:"required"`
	Nationality   string `json:"nationality" binding:"required"`

	Email          string  `json:"email" binding:"required,email"`
	Phone          string  `json:"phone" binding:"required"`
	AlternatePhone *string `json:"alternatePhone"`
	Address        string  `json:"address" binding:"required"`
	City           string  `json:"city" binding:"required"`
	State          string  `json:"state" binding:"required"`
	ZipCode        string  `json:"zipCode" binding:"required"`
	Country        string  `json:"country" binding:"required"`

	EmployeeID       string  `json:"employeeId" binding:"required"`
	Department       string  `json:"department" binding:"required"`
	Position         string  `json:"position" binding:"required"`
	JobTitle         string  `json:"jobTitle" binding:"required"`
	EmploymentType   string  `json:"employmentType" binding:"required"`
	DateOfJoining    string  `json:"dateOfJoining" binding:"required"`
	WorkLocation     string  `json:"workLocation" binding:"required"`
	ReportingManager *string `json:"reportingManager"`

	BankName      string `json:"bankName" binding:"required"`
	AccountNumber string `json:"accountNumber" binding:"required"`
	IFSCCode      string `json:"ifscCode" binding:"required"`

	EmergencyContactName     string `json:"emergencyContactName" binding:"required"`
	EmergencyContactRelation string `json:"emergencyContactRelation" binding:"required"`
	EmergencyContactPhone    string `json:"emergencyContactPhone" binding:"required"`
	EmergencyContactAddress  string `json:"emergencyContactAddress" binding:"required"`

	CitizenshipNumber *string `json:"citizenShipNumber"`
	PANNumber         *string `json:"panNumber"`
	PassportNumber    *string `json:"passportNumber"`
	DrivingLicense    *string `json:"drivingLicense"`

	BloodGroup *string `json:"bloodGroup"`
	Allergies  *string `json:"allergies"`
	Notes      *string `json:"notes"`
}

type EmployeeResponse struct {
	ID         string  `json:"id"`
	FirstName  string  `json:"firstName"`
	MiddleName *string `json:"middleName"`
	LastName   string  `json:"lastName"`

	DateOfBirth   string `json:"dateOfBirth"`
	Gender        string `json:"gender"`
	MaritalStatus string `json:"maritalStatus"`
	Nationality   string `json:"nationality"`

	Email          string  `json:"email"`
	Phone          string  `json:"phone"`
	AlternatePhone *string `json:"alternatePhone"`
	Address        string  `json:"address"`
	City           string  `json:"city"`
	State          string  `json:"state"`
	ZipCode        string  `json:"zipCode"`
	Country        string  `json:"country"`

	EmployeeID       string  `json:"employeeId"`
	Department       string  `json:"department"`
	Position         string  `json:"position"`
	JobTitle         string  `json:"jobTitle"`
	EmploymentType   string  `json:"employmentType"`
	DateOfJoining    string  `json:"dateOfJoining"`
	WorkLocation     string  `json:"workLocation"`
	ReportingManager *string `json:"reportingManager"`

	BankName      string `json:"bankName"`
	AccountNumber string `json:"accountNumber"`
	IFSCCode      string `json:"ifscCode"`

	EmergencyContactName     string `json:"emergencyContactName"`
	EmergencyContactRelation string `json:"emergencyContactRelation"`
	EmergencyContactPhone    string `json:"emergencyContactPhone"`
	EmergencyContactAddress  string `json:"emergencyContactAddress"`

	CitizenshipNumber *string `json:"citizenShipNumber"`
	PANNumber         *string `json:"panNumber"`
	PassportNumber    *string `json:"passportNumber"`
	DrivingLicense    *string `json:"drivingLicense"`

	BloodGroup *string `json:"bloodGroup"`
	Allergies  *string `json:"allergies"`
	Notes      *string `json:"notes"`

	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}
