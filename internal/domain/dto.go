package domain

// SignupRequest is the payload for account creation. Every field is
// required; the sheet has no notion of optional profile data.
type SignupRequest struct {
	FullName      string `json:"fullName" validate:"required,max=100"`
	College       string `json:"college" validate:"required,max=150"`
	Branch        string `json:"branch" validate:"required,max=100"`
	RollNo        string `json:"rollNo" validate:"required,max=50"`
	YearOfPassing string `json:"yearOfPassing" validate:"required,max=10"`
	PhoneLogin    string `json:"phoneLogin" validate:"required,min=6,max=15"`
	PhoneWhatsapp string `json:"phoneWhatsapp" validate:"required,min=6,max=15"`
	UserName      string `json:"userName" validate:"required,min=3,max=50"`
	Password      string `json:"password" validate:"required,min=6,max=72"`
}

// LoginRequest authenticates a student or lead. Identifier matches either
// the username or the login phone number.
type LoginRequest struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

// AdminLoginRequest authenticates against the Admin worksheet.
type AdminLoginRequest struct {
	UserName string `json:"userName" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// TokenResponse is returned on successful login.
type TokenResponse struct {
	Token     string  `json:"token"`
	ExpiresIn int     `json:"expiresIn"`
	User      UserDTO `json:"user"`
}

// UserDTO is the outward representation of a User row. The password hash
// never leaves the service layer.
type UserDTO struct {
	FullName      string `json:"fullName"`
	College       string `json:"college"`
	Branch        string `json:"branch"`
	RollNo        string `json:"rollNo,omitempty"`
	YearOfPassing string `json:"yearOfPassing,omitempty"`
	PhoneLogin    string `json:"phoneLogin"`
	PhoneWhatsapp string `json:"phoneWhatsapp,omitempty"`
	UserName      string `json:"userName"`
	Status        string `json:"status"`
	Role          string `json:"role"`
	RegisteredAt  string `json:"registeredAt,omitempty"`
}

// CreateEventRequest is the lead's stage-1 event submission. Links and
// approval are added later by an admin.
type CreateEventRequest struct {
	Name        string `json:"name" validate:"required,max=150"`
	DemoDate    string `json:"demoDate" validate:"required"`
	Domain      string `json:"domain" validate:"required,max=100"`
	Description string `json:"description" validate:"required,max=2000"`
}

// UpdateEventRequest covers the descriptive fields a lead may edit.
type UpdateEventRequest struct {
	Domain      string `json:"domain" validate:"required,max=100"`
	Description string `json:"description" validate:"required,max=2000"`
}

// ApproveEventRequest is the admin's stage-2 finalization.
type ApproveEventRequest struct {
	SheetLink    string `json:"sheetLink" validate:"required,url"`
	WhatsappLink string `json:"whatsappLink" validate:"omitempty,url"`
}

// EventDTO is the outward representation of an event row.
type EventDTO struct {
	Name         string `json:"name"`
	DemoDate     string `json:"demoDate"`
	Domain       string `json:"domain"`
	Description  string `json:"description"`
	Approved     bool   `json:"approved"`
	Conducted    bool   `json:"conducted"`
	WhatsappLink string `json:"whatsappLink,omitempty"`
	SheetLink    string `json:"sheetLink,omitempty"`
}

// EnrollmentRequest upserts the caller's submission for an event.
type EnrollmentRequest struct {
	ProjectTitle     string `json:"projectTitle" validate:"required,max=200"`
	Description      string `json:"description" validate:"required,max=5000"`
	ReportLink       string `json:"reportLink" validate:"omitempty,url"`
	PresentationLink string `json:"presentationLink" validate:"omitempty,url"`
	GitHubLink       string `json:"gitHubLink" validate:"omitempty,url"`
	YouTubeLink      string `json:"youTubeLink" validate:"omitempty,url"`
	LinkedinPostLink string `json:"linkedinPostLink" validate:"omitempty,url"`
}

// SubmissionDTO is the outward representation of a Project_List row.
type SubmissionDTO struct {
	StudentFullName  string `json:"studentFullName"`
	College          string `json:"college"`
	Branch           string `json:"branch"`
	ProjectTitle     string `json:"projectTitle"`
	Description      string `json:"description"`
	ReportLink       string `json:"reportLink,omitempty"`
	PresentationLink string `json:"presentationLink,omitempty"`
	GitHubLink       string `json:"gitHubLink,omitempty"`
	YouTubeLink      string `json:"youTubeLink,omitempty"`
	LinkedinPostLink string `json:"linkedinPostLink,omitempty"`
	EventName        string `json:"eventName,omitempty"`
}

// EvaluationRequest scores a candidate's demo across the four rubric
// dimensions. The server stores only the average.
type EvaluationRequest struct {
	Candidate    string `json:"candidate" validate:"required"`
	Presentation int    `json:"presentation" validate:"gte=0,lte=100"`
	Technical    int    `json:"technical" validate:"gte=0,lte=100"`
	Demo         int    `json:"demo" validate:"gte=0,lte=100"`
	QA           int    `json:"qa" validate:"gte=0,lte=100"`
}

// EvaluationDTO is the outward representation of an evaluation row.
type EvaluationDTO struct {
	Candidate    string  `json:"candidate"`
	ProjectTitle string  `json:"projectTitle"`
	AverageScore float64 `json:"averageScore"`
	Evaluator    string  `json:"evaluator"`
}

// QARequest asks a question about a project's report document.
type QARequest struct {
	ProjectTitle string `json:"projectTitle" validate:"required"`
	EventName    string `json:"eventName" validate:"omitempty"`
	Question     string `json:"question" validate:"required,max=2000"`
}

// QAResponse carries the generated answer plus the retrieved context
// chunks it was grounded on.
type QAResponse struct {
	Answer  string   `json:"answer"`
	Sources []string `json:"sources,omitempty"`
}

// ApproveUsersRequest approves a batch of pending accounts.
type ApproveUsersRequest struct {
	UserNames []string `json:"userNames" validate:"required,min=1,dive,required"`
}

// StatsDTO is the admin dashboard headline numbers.
type StatsDTO struct {
	ApprovedStudents int `json:"approvedStudents"`
	TotalEvents      int `json:"totalEvents"`
	TotalEnrollments int `json:"totalEnrollments"`
}

// SheetCreatedResponse is returned after copying the event template
// workbook.
type SheetCreatedResponse struct {
	SpreadsheetID string `json:"spreadsheetId"`
	SheetLink     string `json:"sheetLink"`
}

// ErrorResponse is a simple error envelope used by handlers.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
