package models

// Statistics holds the computed case counts returned by GET /statistics.
// The bill counters are only populated for lawyer callers.
type Statistics struct {
	TotalCases      int64  `json:"totalCases"`
	PendingCases    int64  `json:"pendingCases"`
	InProgressCases int64  `json:"inProgressCases"`
	ResolvedCases   int64  `json:"resolvedCases"`
	TotalBills      *int64 `json:"totalBills,omitempty"`
	UnpaidBills     *int64 `json:"unpaidBills,omitempty"`
}
