package service_test

import (
	"context"
	"fmt"

	"github.com/pragyanai/demotrack/internal/repository"
	"github.com/pragyanai/demotrack/internal/sheets"
	"go.uber.org/zap"
)

const (
	usersSheetID  = "users-sheet"
	eventsSheetID = "events-sheet"
	templateID    = "template-sheet"
)

// fakeStore is an in-memory SheetStore seeded per worksheet. It counts
// reads so cache behavior can be asserted.
type fakeStore struct {
	headers map[string][]string
	rows    map[string][]map[string]string

	reads       map[string]int
	appends     []appendedRow
	cellUpdates []updatedCell
	rowUpdates  []updatedRow

	readErr map[string]error
}

type appendedRow struct {
	SpreadsheetID string
	Worksheet     string
	Values        []interface{}
}

type updatedCell struct {
	SpreadsheetID string
	Worksheet     string
	Row           int
	Col           int
	Value         string
}

type updatedRow struct {
	SpreadsheetID string
	Worksheet     string
	Row           int
	Values        []interface{}
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		headers: make(map[string][]string),
		rows:    make(map[string][]map[string]string),
		reads:   make(map[string]int),
		readErr: make(map[string]error),
	}
}

func key(spreadsheetID, worksheet string) string {
	return spreadsheetID + "/" + worksheet
}

func (f *fakeStore) seed(spreadsheetID, worksheet string, headers []string, rows ...map[string]string) {
	f.headers[key(spreadsheetID, worksheet)] = headers
	f.rows[key(spreadsheetID, worksheet)] = rows
}

func (f *fakeStore) failReads(spreadsheetID, worksheet string, err error) {
	f.readErr[key(spreadsheetID, worksheet)] = err
}

func (f *fakeStore) Records(ctx context.Context, spreadsheetID, worksheet string) ([]sheets.Record, []string, error) {
	k := key(spreadsheetID, worksheet)
	f.reads[k]++
	if err := f.readErr[k]; err != nil {
		return nil, nil, err
	}
	headers, ok := f.headers[k]
	if !ok {
		return nil, nil, fmt.Errorf("worksheet %q not seeded", k)
	}
	records := make([]sheets.Record, 0, len(f.rows[k]))
	for i, row := range f.rows[k] {
		records = append(records, sheets.Record{Row: i + 2, Values: row})
	}
	return records, headers, nil
}

func (f *fakeStore) AppendRow(ctx context.Context, spreadsheetID, worksheet string, row []interface{}) error {
	f.appends = append(f.appends, appendedRow{spreadsheetID, worksheet, row})
	return nil
}

func (f *fakeStore) UpdateRow(ctx context.Context, spreadsheetID, worksheet string, rowIndex int, row []interface{}) error {
	f.rowUpdates = append(f.rowUpdates, updatedRow{spreadsheetID, worksheet, rowIndex, row})
	return nil
}

func (f *fakeStore) UpdateCell(ctx context.Context, spreadsheetID, worksheet string, rowIndex, colIndex int, value string) error {
	f.cellUpdates = append(f.cellUpdates, updatedCell{spreadsheetID, worksheet, rowIndex, colIndex, value})
	return nil
}

var _ repository.SheetStore = (*fakeStore)(nil)

var userHeaders = []string{
	"Timestamp", "FullName", "CollegeName", "Branch",
	"RollNO(UniversityRegNo)", "YearofPassing_Passed",
	"Phone(login)", "Phone(Whatsapp)", "UserName", "Password",
	"Status(Approved/NotApproved)", "Role(Student/Lead)",
}

func userRow(fullName, phone, userName, passwordHash, status, role string) map[string]string {
	return map[string]string{
		"Timestamp":                    "2024-01-15 10:30:00",
		"FullName":                     fullName,
		"CollegeName":                  "PES University",
		"Branch":                       "CSE",
		"Phone(login)":                 phone,
		"Phone(Whatsapp)":              phone,
		"UserName":                     userName,
		"Password":                     passwordHash,
		"Status(Approved/NotApproved)": status,
		"Role(Student/Lead)":           role,
	}
}

var adminHeaders = []string{"UserName", "Password"}

var eventHeaders = []string{
	"DemoDate", "ProjectDemo_Event_Name", "Domain", "BriefDescription",
	"Reserved1", "Approved_Status", "Conducted_State", "WhatsappLink",
	"Project_Demo_Sheet_Link",
}

func eventRow(name, approved, conducted, sheetLink string) map[string]string {
	return map[string]string{
		"DemoDate":                "2024-03-10",
		"ProjectDemo_Event_Name":  name,
		"Domain":                  "GenAI",
		"BriefDescription":        "Project demos",
		"Approved_Status":         approved,
		"Conducted_State":         conducted,
		"WhatsappLink":            "",
		"Project_Demo_Sheet_Link": sheetLink,
	}
}

var projectHeaders = []string{
	"StudentFullName", "CollegeName", "Branch", "ProjectTitle",
	"Description", "ReportLink", "PresentationLink", "GitHubLink",
	"YouTubeLink", "Linkedin_Project_Post_Link",
}

func projectRow(student, title, reportLink string) map[string]string {
	return map[string]string{
		"StudentFullName":            student,
		"CollegeName":                "PES University",
		"Branch":                     "CSE",
		"ProjectTitle":               title,
		"Description":                "A project",
		"ReportLink":                 reportLink,
		"PresentationLink":           "",
		"GitHubLink":                 "",
		"YouTubeLink":                "",
		"Linkedin_Project_Post_Link": "",
	}
}

func sheetURL(id string) string {
	return "https://docs.google.com/spreadsheets/d/" + id
}

var nopLogger = zap.NewNop()
