package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"regexp"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/courtworks/jis-api/api"
	"github.com/courtworks/jis-api/config"
	"github.com/courtworks/jis-api/databases"
	"github.com/courtworks/jis-api/models"
)

// maxListResults caps unpaginated listings. Documented limit, not a driver
// default; raising it is an API contract change.
const maxListResults = 1000

// Case exported for testing purposes
type Case struct {
	DB  databases.CaseDatabase
	BDB databases.BillDatabase
}

func nowISO() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// CreateCaseHandler registers a new case with a fresh CIN
func (c Case) CreateCaseHandler(w http.ResponseWriter, r *http.Request) {
	var body models.CaseCreate
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	now := nowISO()
	crimeCase := models.Case{
		CIN:                    models.NewCIN(),
		DefendantName:          body.DefendantName,
		DefendantAddress:       body.DefendantAddress,
		CrimeType:              body.CrimeType,
		CrimeDate:              body.CrimeDate,
		CrimeLocation:          body.CrimeLocation,
		ArrestingOfficer:       body.ArrestingOfficer,
		ArrestDate:             body.ArrestDate,
		PresidingJudge:         body.PresidingJudge,
		PublicProsecutor:       body.PublicProsecutor,
		StartDate:              body.StartDate,
		ExpectedCompletionDate: body.ExpectedCompletionDate,
		Hearing:                []string{},
		Status:                 models.CaseStatusPending,
		CreatedAt:              now,
		UpdatedAt:              now,
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	if err := c.DB.InsertOne(ctx, crimeCase); err != nil {
		config.ErrorStatus("failed to create case", http.StatusInternalServerError, w, err)
		return
	}

	b, err := json.Marshal(crimeCase)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	w.Write(b)
}

// CaseHandler lists cases filtered by status, crimeType and keyword
func (c Case) CaseHandler(w http.ResponseWriter, r *http.Request) {
	filter := bson.M{}
	if status := r.URL.Query().Get("status"); status != "" {
		filter["status"] = status
	}
	if crimeType := r.URL.Query().Get("crimeType"); crimeType != "" {
		filter["crimeType"] = crimeType
	}
	if keyword := r.URL.Query().Get("keyword"); keyword != "" {
		// substring match, so the keyword itself is taken literally
		pattern := regexp.QuoteMeta(keyword)
		filter["$or"] = []bson.M{
			{"cin": primitive.Regex{Pattern: pattern, Options: "i"}},
			{"defendantName": primitive.Regex{Pattern: pattern, Options: "i"}},
			{"crimeType": primitive.Regex{Pattern: pattern, Options: "i"}},
			{"crimeLocation": primitive.Regex{Pattern: pattern, Options: "i"}},
		}
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	limit := int64(maxListResults)
	cases, err := c.DB.Find(ctx, filter, &options.FindOptions{Limit: &limit})
	if err != nil {
		config.ErrorStatus("failed to get cases", http.StatusInternalServerError, w, err)
		return
	}
	if len(cases) == 0 {
		cases = []models.Case{}
	}

	b, err := json.Marshal(cases)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// CaseByCINHandler returns a single case. Lawyer callers are billed for the
// view before the case is returned.
func (c Case) CaseByCINHandler(w http.ResponseWriter, r *http.Request) {
	cin := mux.Vars(r)["cin"]

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	crimeCase, err := c.DB.FindOne(ctx, bson.M{"cin": cin})
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			config.ErrorStatus("case not found", http.StatusNotFound, w, err)
			return
		}
		config.ErrorStatus("failed to get case", http.StatusInternalServerError, w, err)
		return
	}

	caller := api.UserFromContext(r.Context())
	if caller != nil && caller.Role == models.RoleLawyer {
		if err := ensureViewBill(ctx, c.BDB, crimeCase.CIN, caller); err != nil {
			config.ErrorStatus("failed to generate viewing bill", http.StatusInternalServerError, w, err)
			return
		}
	}

	b, err := json.Marshal(crimeCase)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// UpdateCaseHandler applies the supplied fields to a case. Status strings are
// not validated against the known set; any value is stored as-is.
func (c Case) UpdateCaseHandler(w http.ResponseWriter, r *http.Request) {
	cin := mux.Vars(r)["cin"]

	var body models.CaseUpdate
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	set := bson.M{"updatedAt": nowISO()}
	applyIfSet := func(field string, v *string) {
		if v != nil {
			set[field] = *v
		}
	}
	applyIfSet("defendantName", body.DefendantName)
	applyIfSet("defendantAddress", body.DefendantAddress)
	applyIfSet("crimeType", body.CrimeType)
	applyIfSet("crimeDate", body.CrimeDate)
	applyIfSet("crimeLocation", body.CrimeLocation)
	applyIfSet("arrestingOfficer", body.ArrestingOfficer)
	applyIfSet("arrestDate", body.ArrestDate)
	applyIfSet("presidingJudge", body.PresidingJudge)
	applyIfSet("publicProsecutor", body.PublicProsecutor)
	applyIfSet("startDate", body.StartDate)
	applyIfSet("expectedCompletionDate", body.ExpectedCompletionDate)
	applyIfSet("status", body.Status)
	applyIfSet("judgementInfo", body.JudgementInfo)

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	res, err := c.DB.UpdateOne(ctx, bson.M{"cin": cin}, bson.M{"$set": set})
	if err != nil {
		config.ErrorStatus("failed to update case", http.StatusInternalServerError, w, err)
		return
	}
	if res.MatchedCount == 0 {
		config.ErrorStatus("case not found", http.StatusNotFound, w, nil)
		return
	}

	updated, err := c.DB.FindOne(ctx, bson.M{"cin": cin})
	if err != nil {
		config.ErrorStatus("failed to get updated case", http.StatusInternalServerError, w, err)
		return
	}

	b, err := json.Marshal(updated)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// DeleteCaseHandler hard-deletes a case
func (c Case) DeleteCaseHandler(w http.ResponseWriter, r *http.Request) {
	cin := mux.Vars(r)["cin"]

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	deleted, err := c.DB.DeleteOne(ctx, bson.M{"cin": cin})
	if err != nil {
		config.ErrorStatus("failed to delete case", http.StatusInternalServerError, w, err)
		return
	}
	if deleted == 0 {
		config.ErrorStatus("case not found", http.StatusNotFound, w, nil)
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"message": "Case deleted successfully"}`))
}

// ScheduleHearingHandler appends a hearing date to a case. Dates are kept in
// append order; duplicates and out-of-order dates are allowed.
func (c Case) ScheduleHearingHandler(w http.ResponseWriter, r *http.Request) {
	cin := mux.Vars(r)["cin"]

	var body models.HearingSchedule
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	res, err := c.DB.UpdateOne(ctx, bson.M{"cin": cin}, bson.M{
		"$push": bson.M{"hearing": body.HearingDate},
		"$set":  bson.M{"updatedAt": nowISO()},
	})
	if err != nil {
		config.ErrorStatus("failed to schedule hearing", http.StatusInternalServerError, w, err)
		return
	}
	if res.MatchedCount == 0 {
		config.ErrorStatus("case not found", http.StatusNotFound, w, nil)
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"message": "Hearing scheduled successfully"}`))
}
