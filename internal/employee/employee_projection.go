package employee

type fieldGetter func(EmployeeResponse) any

// employeeFields is the closed set of column names a list projection may
// request. Names match the JSON attribute names exactly.
var employeeFields = map[string]fieldGetter{
	"id":         func(e EmployeeResponse) any { return e.ID },
	"firstName":  func(e EmployeeResponse) any { return e.FirstName },
	"middleName": func(e EmployeeResponse) any { return e.MiddleName },
	"lastName":   func(e EmployeeResponse) any { return e.LastName },

	"dateOfBirth":   func(e EmployeeResponse) any { return e.DateOfBirth },
	"gender":        func(e EmployeeResponse) any { return e.Gender },
	"maritalStatus": func(e EmployeeResponse) any { return e.MaritalStatus },
	"nationality":   func(e EmployeeResponse) any { return e.Nationality },

	"email":          func(e EmployeeResponse) any { return e.Email },
	"phone":          func(e EmployeeResponse) any { return e.Phone },
	"alternatePhone": func(e EmployeeResponse) any { return e.AlternatePhone },
	"address":        func(e EmployeeResponse) any { return e.Address },
	"city":           func(e EmployeeResponse) any { return e.City },
	"state":          func(e EmployeeResponse) any { return e.State },
	"zipCode":        func(e EmployeeResponse) any { return e.ZipCode },
	"country":        func(e EmployeeResponse) any { return e.Country },

	"employeeId":       func(e EmployeeResponse) any { return e.EmployeeID },
	"department":       func(e EmployeeResponse) any { return e.Department },
	"position":         func(e EmployeeResponse) any { return e.Position },
	"jobTitle":         func(e EmployeeResponse) any { return e.JobTitle },
	"employmentType":   func(e EmployeeResponse) any { return e.EmploymentType },
	"dateOfJoining":    func(e EmployeeResponse) any { return e.DateOfJoining },
	"workLocation":     func(e EmployeeResponse) any { return e.WorkLocation },
	"reportingManager": func(e EmployeeResponse) any { return e.ReportingManager },

	"bankName":      func(e EmployeeResponse) any { return e.BankName },
	"accountNumber": func(e EmployeeResponse) any { return e.AccountNumber },
	"ifscCode":      func(e EmployeeResponse) any { return e.IFSCCode },

	"emergencyContactName":     func(e EmployeeResponse) any { return e.EmergencyContactName },
	"emergencyContactRelation": func(e EmployeeResponse) any { return e.EmergencyContactRelation },
	"emergencyContactPhone":    func(e EmployeeResponse) any { return e.EmergencyContactPhone },
	"emergencyContactAddress":  func(e EmployeeResponse) any { return e.EmergencyContactAddress },

	"citizenShipNumber": func(e EmployeeResponse) any { return e.CitizenshipNumber },
	"panNumber":         func(e EmployeeResponse) any { return e.PANNumber },
	"passportNumber":    func(e EmployeeResponse) any { return e.PassportNumber },
	"drivingLicense":    func(e EmployeeResponse) any { return e.DrivingLicense },

	"bloodGroup": func(e EmployeeResponse) any { return e.BloodGroup },
	"allergies":  func(e EmployeeResponse) any { return e.Allergies },
	"notes":      func(e EmployeeResponse) any { return e.Notes },

	"createdAt": func(e EmployeeResponse) any { return e.CreatedAt },
	"updatedAt": func(e EmployeeResponse) any { return e.UpdatedAt },
}

// FieldNames returns the known names among fields, in request order and
// without duplicates.
func FieldNames(fields []string) []string {
	out := make([]string, 0, len(fields))
	seen := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		if _, ok := employeeFields[f]; !ok {
			continue
		}
		if _, dup := seen[f]; dup {
			continue
		}
		seen[f] = struct{}{}
		out = append(out, f)
	}
	return out
}

// Project renders rows as column maps. With no known field requested every
// column is returned.
func Project(rows []EmployeeResponse, fields []string) []map[string]any {
	selected := FieldNames(fields)
	if len(selected) == 0 {
		selected = make([]string, 0, len(employeeFields))
		for name := range employeeFields {
			selected = append(selected, name)
		}
	}

	out := make([]map[string]any, len(rows))
	for i, row := range rows {
		m := make(map[string]any, len(selected))
		for _, name := range selected {
			m[name] = employeeFields[name](row)
		}
		out[i] = m
	}
	return out
}
