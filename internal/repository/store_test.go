package repository_test

import (
	"context"
	"fmt"

	"github.com/pragyanai/demotrack/internal/repository"
	"github.com/pragyanai/demotrack/internal/sheets"
)

// cellWrite captures one UpdateCell call.
type cellWrite struct {
	SpreadsheetID string
	Worksheet     string
	Row           int
	Col           int
	Value         string
}

// rowWrite captures one AppendRow or UpdateRow call.
type rowWrite struct {
	SpreadsheetID string
	Worksheet     string
	Row           int
	Values        []interface{}
}

// fakeStore is an in-memory SheetStore. Worksheets are seeded with a
// header slice and row maps; writes are captured for assertions.
type fakeStore struct {
	headers map[string][]string
	rows    map[string][]map[string]string

	appends     []rowWrite
	rowUpdates  []rowWrite
	cellUpdates []cellWrite

	err error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		headers: make(map[string][]string),
		rows:    make(map[string][]map[string]string),
	}
}

func sheetKey(spreadsheetID, worksheet string) string {
	return spreadsheetID + "/" + worksheet
}

func (f *fakeStore) seed(spreadsheetID, worksheet string, headers []string, rows ...map[string]string) {
	key := sheetKey(spreadsheetID, worksheet)
	f.headers[key] = headers
	f.rows[key] = rows
}

func (f *fakeStore) Records(ctx context.Context, spreadsheetID, worksheet string) ([]sheets.Record, []string, error) {
	if f.err != nil {
		return nil, nil, f.err
	}
	key := sheetKey(spreadsheetID, worksheet)
	headers, ok := f.headers[key]
	if !ok {
		return nil, nil, fmt.Errorf("worksheet %q not seeded", key)
	}
	records := make([]sheets.Record, 0, len(f.rows[key]))
	for i, row := range f.rows[key] {
		records = append(records, sheets.Record{Row: i + 2, Values: row})
	}
	return records, headers, nil
}

func (f *fakeStore) AppendRow(ctx context.Context, spreadsheetID, worksheet string, row []interface{}) error {
	if f.err != nil {
		return f.err
	}
	f.appends = append(f.appends, rowWrite{SpreadsheetID: spreadsheetID, Worksheet: worksheet, Values: row})
	return nil
}

func (f *fakeStore) UpdateRow(ctx context.Context, spreadsheetID, worksheet string, rowIndex int, row []interface{}) error {
	if f.err != nil {
		return f.err
	}
	f.rowUpdates = append(f.rowUpdates, rowWrite{SpreadsheetID: spreadsheetID, Worksheet: worksheet, Row: rowIndex, Values: row})
	return nil
}

func (f *fakeStore) UpdateCell(ctx context.Context, spreadsheetID, worksheet string, rowIndex, colIndex int, value string) error {
	if f.err != nil {
		return f.err
	}
	f.cellUpdates = append(f.cellUpdates, cellWrite{SpreadsheetID: spreadsheetID, Worksheet: worksheet, Row: rowIndex, Col: colIndex, Value: value})
	return nil
}

var _ repository.SheetStore = (*fakeStore)(nil)

// userHeaders is the header row of the deployed User worksheet.
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
		"RollNO(UniversityRegNo)":      "PES123",
		"YearofPassing_Passed":         "2025",
		"Phone(login)":                 phone,
		"Phone(Whatsapp)":              phone,
		"UserName":                     userName,
		"Password":                     passwordHash,
		"Status(Approved/NotApproved)": status,
		"Role(Student/Lead)":           role,
	}
}

// eventHeaders is the header row of the Project_Demos_List worksheet.
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

// projectHeaders is the header row of an event workbook's Project_List.
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
