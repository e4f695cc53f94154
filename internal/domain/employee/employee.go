package employee

import "time"

// Employee is one portal account / personnel record. Compensation settings
// used by the paystub engine live on the generation request, not here; the
// record only carries the stable facts about the person.
type Employee struct {
	ID               string     `json:"id"`
	Email            string     `json:"email"`
	LegalFirstName   string     `json:"legalFirstName"`
	LegalLastName    string     `json:"legalLastName"`
	PreferredName    string     `json:"preferredName,omitempty"`
	JobTitle         string     `json:"jobTitle"`
	Department       string     `json:"department"`
	HireDate         time.Time  `json:"hireDate"`
	Phone            string     `json:"phone,omitempty"`
	Role             string     `json:"role"`
	EmploymentStatus string     `json:"employmentStatus"`
	LastLogin        *time.Time `json:"lastLogin,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
}

func (e Employee) FullName() string {
	return e.LegalFirstName + " " + e.LegalLastName
}
