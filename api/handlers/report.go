package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/courtworks/jis-api/api"
	"github.com/courtworks/jis-api/config"
	"github.com/courtworks/jis-api/databases"
	"github.com/courtworks/jis-api/models"
)

// maxReportResults caps the report listing, most recent first
const maxReportResults = 100

// Report exported for testing purposes
type Report struct {
	DB  databases.ReportDatabase
	CDB databases.CaseDatabase
}

// CreateReportHandler generates and persists a report snapshot
func (re Report) CreateReportHandler(w http.ResponseWriter, r *http.Request) {
	var req models.ReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	limit := int64(maxListResults)

	var content map[string]interface{}
	switch {
	case req.ReportType == models.ReportTypePending:
		cases, err := re.CDB.Find(ctx, bson.M{"status": models.CaseStatusPending}, &options.FindOptions{Limit: &limit})
		if err != nil {
			config.ErrorStatus("failed to get pending cases", http.StatusInternalServerError, w, err)
			return
		}
		if len(cases) == 0 {
			cases = []models.Case{}
		}
		content = map[string]interface{}{
			"totalPendingCases": len(cases),
			"cases":             cases,
		}

	case req.ReportType == models.ReportTypeResolved:
		filter := bson.M{"status": bson.M{"$in": []string{models.CaseStatusResolved, models.CaseStatusClosed}}}
		if req.StartDate != "" && req.EndDate != "" {
			// ISO-8601 strings, so the range compares lexically
			filter["updatedAt"] = bson.M{"$gte": req.StartDate, "$lte": req.EndDate}
		}
		cases, err := re.CDB.Find(ctx, filter, &options.FindOptions{Limit: &limit})
		if err != nil {
			config.ErrorStatus("failed to get resolved cases", http.StatusInternalServerError, w, err)
			return
		}
		if len(cases) == 0 {
			cases = []models.Case{}
		}
		content = map[string]interface{}{
			"totalResolvedCases": len(cases),
			"cases":              cases,
			"dateRange": map[string]interface{}{
				"start": req.StartDate,
				"end":   req.EndDate,
			},
		}

	case req.ReportType == models.ReportTypeStatus && req.CIN != "":
		crimeCase, err := re.CDB.FindOne(ctx, bson.M{"cin": req.CIN})
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				config.ErrorStatus("case not found", http.StatusNotFound, w, err)
				return
			}
			config.ErrorStatus("failed to get case", http.StatusInternalServerError, w, err)
			return
		}
		content = map[string]interface{}{"case": crimeCase}

	default:
		config.ErrorStatus("invalid report type or missing parameters", http.StatusBadRequest, w, nil)
		return
	}

	report := models.Report{
		ReportID:      uuid.New().String(),
		GeneratedDate: nowISO(),
		ReportType:    req.ReportType,
		Content:       content,
	}
	if err := re.DB.InsertOne(ctx, report); err != nil {
		config.ErrorStatus("failed to persist report", http.StatusInternalServerError, w, err)
		return
	}

	b, err := json.Marshal(report)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	w.Write(b)
}

// ReportHandler lists persisted reports, most recent first
func (re Report) ReportHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	limit := int64(maxReportResults)
	reports, err := re.DB.Find(ctx, bson.M{}, &options.FindOptions{
		Limit: &limit,
		Sort:  bson.M{"generatedDate": -1},
	})
	if err != nil {
		config.ErrorStatus("failed to get reports", http.StatusInternalServerError, w, err)
		return
	}
	if len(reports) == 0 {
		reports = []models.Report{}
	}

	b, err := json.Marshal(reports)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
