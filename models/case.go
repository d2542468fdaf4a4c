package models

import (
	"strings"

	"github.com/google/uuid"
)

// NewCIN generates a fresh Case Identification Number, CIN- followed by eight
// uppercase hex characters. Collisions are statistically negligible; the store
// keys cases by this value.
func NewCIN() string {
	raw := strings.ReplaceAll(uuid.New().String(), "-", "")
	return "CIN-" + strings.ToUpper(raw[:8])
}

// Case statuses. Updates accept arbitrary status strings; these are the values
// the reports and statistics queries key on.
const (
	CaseStatusPending    = "Pending"
	CaseStatusInProgress = "In Progress"
	CaseStatusResolved   = "Resolved"
	CaseStatusClosed     = "Closed"
)

// Case holds the structure for the cases collection in mongo. All dates are
// ISO-8601 UTC strings so that range queries compare lexically.
type Case struct {
	CIN                    string   `json:"cin" bson:"cin"`
	DefendantName          string   `json:"defendantName" bson:"defendantName"`
	DefendantAddress       string   `json:"defendantAddress" bson:"defendantAddress"`
	CrimeType              string   `json:"crimeType" bson:"crimeType"`
	CrimeDate              string   `json:"crimeDate" bson:"crimeDate"`
	CrimeLocation          string   `json:"crimeLocation" bson:"crimeLocation"`
	ArrestingOfficer       string   `json:"arrestingOfficer" bson:"arrestingOfficer"`
	ArrestDate             string   `json:"arrestDate" bson:"arrestDate"`
	PresidingJudge         string   `json:"presidingJudge" bson:"presidingJudge"`
	PublicProsecutor       string   `json:"publicProsecutor" bson:"publicProsecutor"`
	StartDate              string   `json:"startDate" bson:"startDate"`
	ExpectedCompletionDate string   `json:"expectedCompletionDate" bson:"expectedCompletionDate"`
	Hearing                []string `json:"hearing" bson:"hearing"`
	JudgementInfo          string   `json:"judgementInfo,omitempty" bson:"judgementInfo,omitempty"`
	Status                 string   `json:"status" bson:"status"`
	CreatedAt              string   `json:"createdAt" bson:"createdAt"`
	UpdatedAt              string   `json:"updatedAt" bson:"updatedAt"`
}

// CaseCreate is the request body for creating a case; the server fills in
// cin, status, hearing and timestamps.
type CaseCreate struct {
	DefendantName          string `json:"defendantName"`
	DefendantAddress       string `json:"defendantAddress"`
	CrimeType              string `json:"crimeType"`
	CrimeDate              string `json:"crimeDate"`
	CrimeLocation          string `json:"crimeLocation"`
	ArrestingOfficer       string `json:"arrestingOfficer"`
	ArrestDate             string `json:"arrestDate"`
	PresidingJudge         string `json:"presidingJudge"`
	PublicProsecutor       string `json:"publicProsecutor"`
	StartDate              string `json:"startDate"`
	ExpectedCompletionDate string `json:"expectedCompletionDate"`
}

// CaseUpdate is the partial-update body; only non-nil fields are applied.
type CaseUpdate struct {
	DefendantName          *string `json:"defendantName"`
	DefendantAddress       *string `json:"defendantAddress"`
	CrimeType              *string `json:"crimeType"`
	CrimeDate              *string `json:"crimeDate"`
	CrimeLocation          *string `json:"crimeLocation"`
	ArrestingOfficer       *string `json:"arrestingOfficer"`
	ArrestDate             *string `json:"arrestDate"`
	PresidingJudge         *string `json:"presidingJudge"`
	PublicProsecutor       *string `json:"publicProsecutor"`
	StartDate              *string `json:"startDate"`
	ExpectedCompletionDate *string `json:"expectedCompletionDate"`
	Status                 *string `json:"status"`
	JudgementInfo          *string `json:"judgementInfo"`
}

// HearingSchedule is the request body for appending a hearing date
type HearingSchedule struct {
	HearingDate string `json:"hearingDate"`
}
