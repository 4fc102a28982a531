package domain

import "strings"

// Role is the portal role assigned to an account.
type Role string

const (
	RoleStudent Role = "Student"
	RoleLead    Role = "Lead"
	RoleAdmin   Role = "Admin"
)

// IsValid reports whether the role is one of the known portal roles.
func (r Role) IsValid() bool {
	switch r {
	case RoleStudent, RoleLead, RoleAdmin:
		return true
	}
	return false
}

// UserStatus is the approval state stored in the User worksheet.
type UserStatus string

const (
	StatusApproved    UserStatus = "Approved"
	StatusNotApproved UserStatus = "NotApproved"
)

// User is a row in the "User" worksheet of the users workbook.
// Row is the 1-based sheet row the record was read from (0 when unsaved).
type User struct {
	Row           int
	RegisteredAt  string
	FullName      string
	College       string
	Branch        string
	RollNo        string
	YearOfPassing string
	PhoneLogin    string
	PhoneWhatsapp string
	UserName      string
	PasswordHash  string
	Status        UserStatus
	Role          Role
}

// IsApproved reports whether the account has been approved by an admin.
// The sheet is hand-edited at times, so the comparison is tolerant.
func (u *User) IsApproved() bool {
	return strings.EqualFold(strings.TrimSpace(string(u.Status)), string(StatusApproved))
}

// Admin is a row in the "Admin" worksheet.
type Admin struct {
	UserName string
	Password string
}

// Event is a row in the "Project_Demos_List" worksheet of the events
// workbook. ApprovedStatus and ConductedState carry the raw Yes/No cell
// values; links are filled in by an admin during stage-2 approval.
type Event struct {
	Row            int
	DemoDate       string
	Name           string
	Domain         string
	Description    string
	ApprovedStatus string
	ConductedState string
	WhatsappLink   string
	SheetLink      string
}

// IsApproved reports whether an admin has approved the event.
func (e *Event) IsApproved() bool {
	return strings.EqualFold(strings.TrimSpace(e.ApprovedStatus), "yes")
}

// IsConducted reports whether the demo day has already happened.
func (e *Event) IsConducted() bool {
	return strings.EqualFold(strings.TrimSpace(e.ConductedState), "yes")
}

// IsActive reports whether the event is open for enrollment: approved and
// not yet conducted.
func (e *Event) IsActive() bool {
	return e.IsApproved() && strings.EqualFold(strings.TrimSpace(e.ConductedState), "no")
}

// Submission is a row in an event workbook's "Project_List" worksheet.
// EventName is not stored in the sheet; it is tagged on during
// cross-event aggregation.
type Submission struct {
	Row              int
	StudentFullName  string
	College          string
	Branch           string
	ProjectTitle     string
	Description      string
	ReportLink       string
	PresentationLink string
	GitHubLink       string
	YouTubeLink      string
	LinkedinPostLink string
	EventName        string
}

// Evaluation is a row in an event workbook's "ProjectEvaluation" worksheet.
type Evaluation struct {
	Candidate    string
	ProjectTitle string
	AverageScore float64
	Evaluator    string
}
