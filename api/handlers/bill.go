package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/courtworks/jis-api/api"
	"github.com/courtworks/jis-api/config"
	"github.com/courtworks/jis-api/databases"
	"github.com/courtworks/jis-api/models"
)

// Bill exported for testing purposes
type Bill struct {
	DB databases.BillDatabase
}

// viewBillDescription is the legacy dedup key; the structured cin field and
// the unique (lawyerID, cin) index carry the same constraint.
func viewBillDescription(cin string) string {
	return "Viewing case " + cin
}

// ensureViewBill creates the one-and-only viewing bill for a (lawyer, case)
// pair. Repeat calls are no-ops, including under concurrent identical views
// where the unique index turns the losing insert into a duplicate-key error.
func ensureViewBill(ctx context.Context, bdb databases.BillDatabase, cin string, lawyer *models.User) error {
	_, err := bdb.FindOne(ctx, bson.M{
		"lawyerID":    lawyer.UserID,
		"description": viewBillDescription(cin),
	})
	if err == nil {
		return nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return err
	}

	bill := models.Bill{
		BillID:        uuid.New().String(),
		Amount:        models.ViewBillAmount,
		GeneratedDate: nowISO(),
		LawyerID:      lawyer.UserID,
		LawyerName:    lawyer.Name,
		Status:        models.BillStatusUnpaid,
		Description:   viewBillDescription(cin),
		CIN:           cin,
	}
	if err := bdb.InsertOne(ctx, bill); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			zap.S().Debugw("viewing bill already exists",
				"lawyerID", lawyer.UserID,
				"cin", cin,
			)
			return nil
		}
		return err
	}
	return nil
}

// BillHandler lists bills. Lawyers only ever see their own; other roles see
// everything.
func (b Bill) BillHandler(w http.ResponseWriter, r *http.Request) {
	caller := api.UserFromContext(r.Context())

	filter := bson.M{}
	if caller.Role == models.RoleLawyer {
		filter["lawyerID"] = caller.UserID
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	limit := int64(maxListResults)
	bills, err := b.DB.Find(ctx, filter, &options.FindOptions{Limit: &limit})
	if err != nil {
		config.ErrorStatus("failed to get bills", http.StatusInternalServerError, w, err)
		return
	}
	if len(bills) == 0 {
		bills = []models.Bill{}
	}

	out, err := json.Marshal(bills)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(out)
}

// PayBillHandler marks a bill Paid. The filter includes the caller, so a bill
// owned by someone else looks exactly like a missing one.
func (b Bill) PayBillHandler(w http.ResponseWriter, r *http.Request) {
	billID := mux.Vars(r)["bill_id"]
	caller := api.UserFromContext(r.Context())

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	res, err := b.DB.UpdateOne(ctx,
		bson.M{"billID": billID, "lawyerID": caller.UserID},
		bson.M{"$set": bson.M{"status": models.BillStatusPaid}},
	)
	if err != nil {
		config.ErrorStatus("failed to pay bill", http.StatusInternalServerError, w, err)
		return
	}
	if res.MatchedCount == 0 {
		config.ErrorStatus("bill not found", http.StatusNotFound, w, nil)
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"message": "Bill paid successfully"}`))
}
