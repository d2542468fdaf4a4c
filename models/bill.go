package models

// Bill statuses. A bill only ever moves Unpaid -> Paid.
const (
	BillStatusUnpaid = "Unpaid"
	BillStatusPaid   = "Paid"
)

// ViewBillAmount is the flat charge for a lawyer viewing a case
const ViewBillAmount = 100.0

// Bill holds the structure for the bills collection in mongo. CIN is the
// structured dedup key alongside the legacy description string; the bills
// collection carries a unique (lawyerID, cin) index.
type Bill struct {
	BillID        string  `json:"billID" bson:"billID"`
	Amount        float64 `json:"amount" bson:"amount"`
	GeneratedDate string  `json:"generatedDate" bson:"generatedDate"`
	LawyerID      string  `json:"lawyerID" bson:"lawyerID"`
	LawyerName    string  `json:"lawyerName" bson:"lawyerName"`
	Status        string  `json:"status" bson:"status"`
	Description   string  `json:"description" bson:"description"`
	CIN           string  `json:"cin" bson:"cin"`
}
