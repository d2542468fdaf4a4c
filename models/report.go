package models

// Report types accepted by the generator
const (
	ReportTypePending  = "pending"
	ReportTypeResolved = "resolved"
	ReportTypeStatus   = "status"
)

// Report holds the structure for the reports collection in mongo. Reports are
// write-once snapshots; Content is an opaque payload shaped by the report type.
type Report struct {
	ReportID      string                 `json:"reportID" bson:"reportID"`
	GeneratedDate string                 `json:"generatedDate" bson:"generatedDate"`
	ReportType    string                 `json:"reportType" bson:"reportType"`
	Content       map[string]interface{} `json:"content" bson:"content"`
}

// ReportRequest is the body for POST /reports
type ReportRequest struct {
	ReportType string `json:"reportType"`
	StartDate  string `json:"startDate,omitempty"`
	EndDate    string `json:"endDate,omitempty"`
	CIN        string `json:"cin,omitempty"`
}
