package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/courtworks/jis-api/api/handlers"
	"github.com/courtworks/jis-api/databases"
	"github.com/courtworks/jis-api/databases/mocks"
	"github.com/courtworks/jis-api/models"
)

func billFindCollection(db *MockDatabaseHelper, bills []models.Bill) *mocks.CollectionHelper {
	conn := &mocks.CollectionHelper{}
	cursor := &mocks.CursorHelper{}

	cursor.On("All", mock.Anything, mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		*(args.Get(1).(*[]models.Bill)) = bills
	})
	cursor.On("Close", mock.Anything).Return(nil)
	conn.On("Find", mock.Anything, mock.Anything, mock.Anything).Return(cursor, nil)
	db.On("Collection", "bills").Return(conn)
	return conn
}

func TestBill_BillHandlerLawyerScoped(t *testing.T) {
	db := &MockDatabaseHelper{}
	conn := billFindCollection(db, []models.Bill{
		{BillID: "bill-1", LawyerID: "lawyer-1", Amount: 100.0, Status: models.BillStatusUnpaid},
	})

	b := handlers.Bill{DB: databases.NewBillDatabase(db)}

	req := lawyerContext(httptest.NewRequest("GET", "/api/bills", nil))
	rr := httptest.NewRecorder()
	http.HandlerFunc(b.BillHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var bills []models.Bill
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &bills))
	assert.Len(t, bills, 1)
	assert.Equal(t, "bill-1", bills[0].BillID)

	// the lawyer only ever queries their own bills
	conn.AssertCalled(t, "Find", mock.Anything, bson.M{"lawyerID": "lawyer-1"}, mock.Anything)
}

func TestBill_BillHandlerRegistrarSeesAll(t *testing.T) {
	db := &MockDatabaseHelper{}
	conn := billFindCollection(db, []models.Bill{
		{BillID: "bill-1", LawyerID: "lawyer-1"},
		{BillID: "bill-2", LawyerID: "lawyer-2"},
	})

	b := handlers.Bill{DB: databases.NewBillDatabase(db)}

	req := registrarContext(httptest.NewRequest("GET", "/api/bills", nil))
	rr := httptest.NewRecorder()
	http.HandlerFunc(b.BillHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var bills []models.Bill
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &bills))
	assert.Len(t, bills, 2)

	conn.AssertCalled(t, "Find", mock.Anything, bson.M{}, mock.Anything)
}

func TestBill_BillHandlerEmptyResult(t *testing.T) {
	db := &MockDatabaseHelper{}
	billFindCollection(db, nil)

	b := handlers.Bill{DB: databases.NewBillDatabase(db)}

	req := lawyerContext(httptest.NewRequest("GET", "/api/bills", nil))
	rr := httptest.NewRecorder()
	http.HandlerFunc(b.BillHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "[]", rr.Body.String())
}

func TestBill_PayBillHandler(t *testing.T) {
	db := &MockDatabaseHelper{}
	conn := &mocks.CollectionHelper{}

	var update bson.M
	conn.On("UpdateOne", mock.Anything, bson.M{"billID": "bill-1", "lawyerID": "lawyer-1"}, mock.Anything).
		Return(&mongo.UpdateResult{MatchedCount: 1}, nil).
		Run(func(args mock.Arguments) {
			update = args.Get(2).(bson.M)
		})
	db.On("Collection", "bills").Return(conn)

	b := handlers.Bill{DB: databases.NewBillDatabase(db)}

	req := httptest.NewRequest("PUT", "/api/bills/bill-1/pay", nil)
	req = mux.SetURLVars(req, map[string]string{"bill_id": "bill-1"})
	req = lawyerContext(req)
	rr := httptest.NewRecorder()
	http.HandlerFunc(b.PayBillHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"message": "Bill paid successfully"}`, rr.Body.String())
	assert.Equal(t, bson.M{"$set": bson.M{"status": models.BillStatusPaid}}, update)
}

func TestBill_PayBillHandlerNotOwnedLooksMissing(t *testing.T) {
	db := &MockDatabaseHelper{}
	conn := &mocks.CollectionHelper{}
	conn.On("UpdateOne", mock.Anything, mock.Anything, mock.Anything).Return(&mongo.UpdateResult{MatchedCount: 0}, nil)
	db.On("Collection", "bills").Return(conn)

	b := handlers.Bill{DB: databases.NewBillDatabase(db)}

	req := httptest.NewRequest("PUT", "/api/bills/bill-9/pay", nil)
	req = mux.SetURLVars(req, map[string]string{"bill_id": "bill-9"})
	req = lawyerContext(req)
	rr := httptest.NewRecorder()
	http.HandlerFunc(b.PayBillHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)

	expected := models.ErrorMessageResponse{Response: models.MessageError{Message: "bill not found"}}
	eb, _ := json.Marshal(expected)
	assert.Equal(t, string(eb), rr.Body.String())
}
