package handlers

import (
	"encoding/json"
	"net/http"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/courtworks/jis-api/api"
	"github.com/courtworks/jis-api/config"
	"github.com/courtworks/jis-api/databases"
	"github.com/courtworks/jis-api/models"
)

// Statistics exported for testing purposes
type Statistics struct {
	CDB databases.CaseDatabase
	BDB databases.BillDatabase
}

// StatisticsHandler computes global case counts; lawyers also get their own
// bill counters.
func (s Statistics) StatisticsHandler(w http.ResponseWriter, r *http.Request) {
	caller := api.UserFromContext(r.Context())

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	var stats models.Statistics
	var err error

	if stats.TotalCases, err = s.CDB.CountDocuments(ctx, bson.M{}); err != nil {
		config.ErrorStatus("failed to count cases", http.StatusInternalServerError, w, err)
		return
	}
	if stats.PendingCases, err = s.CDB.CountDocuments(ctx, bson.M{"status": models.CaseStatusPending}); err != nil {
		config.ErrorStatus("failed to count cases", http.StatusInternalServerError, w, err)
		return
	}
	if stats.InProgressCases, err = s.CDB.CountDocuments(ctx, bson.M{"status": models.CaseStatusInProgress}); err != nil {
		config.ErrorStatus("failed to count cases", http.StatusInternalServerError, w, err)
		return
	}
	resolvedFilter := bson.M{"status": bson.M{"$in": []string{models.CaseStatusResolved, models.CaseStatusClosed}}}
	if stats.ResolvedCases, err = s.CDB.CountDocuments(ctx, resolvedFilter); err != nil {
		config.ErrorStatus("failed to count cases", http.StatusInternalServerError, w, err)
		return
	}

	if caller.Role == models.RoleLawyer {
		total, err := s.BDB.CountDocuments(ctx, bson.M{"lawyerID": caller.UserID})
		if err != nil {
			config.ErrorStatus("failed to count bills", http.StatusInternalServerError, w, err)
			return
		}
		unpaid, err := s.BDB.CountDocuments(ctx, bson.M{"lawyerID": caller.UserID, "status": models.BillStatusUnpaid})
		if err != nil {
			config.ErrorStatus("failed to count bills", http.StatusInternalServerError, w, err)
			return
		}
		stats.TotalBills = &total
		stats.UnpaidBills = &unpaid
	}

	b, err := json.Marshal(stats)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
