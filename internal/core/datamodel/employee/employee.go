package employee

type EmergencyContact struct {
	Name  string `json:"name,omitempty"`
	Phone string `json:"phone,omitempty"`
}

type Employee struct {
	ID               int64            `json:"id"`
	Name             string           `json:"name"`
	Email            string           `json:"email"`
	Phone            string           `json:"phone,omitempty"`
	Document         string           `json:"document,omitempty"`
	Address          string           `json:"address,omitempty"`
	Position         string           `json:"position"`
	Salary           int64            `json:"salary"`
	Schedule         string           `json:"schedule"`
	HireDate         string           `json:"hireDate"`
	Status           string           `json:"status"`
	EmergencyContact EmergencyContact `json:"emergencyContact"`
	Certifications   []string         `json:"certifications"`
}

// Defaults applied when an employee record is synthesized from a user
// whose role was changed to Employee.
const (
	DefaultPosition = "Workshop Assistant"
	DefaultSalary   = 1_800_000
	DefaultSchedule = "Mon-Fri 09:00-17:00"
	DefaultStatus   = "active"
)
