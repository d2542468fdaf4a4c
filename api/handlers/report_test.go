package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/courtworks/jis-api/api/handlers"
	"github.com/courtworks/jis-api/databases"
	"github.com/courtworks/jis-api/databases/mocks"
	"github.com/courtworks/jis-api/models"
)

func reportInsertCollection(db *MockDatabaseHelper, inserted *models.Report) *mocks.CollectionHelper {
	conn := &mocks.CollectionHelper{}
	conn.On("InsertOne", mock.Anything, mock.Anything).Return(nil, nil).Run(func(args mock.Arguments) {
		*inserted = args.Get(1).(models.Report)
	})
	db.On("Collection", "reports").Return(conn)
	return conn
}

func caseFindCollection(db *MockDatabaseHelper, cases []models.Case, capture *bson.M) *mocks.CollectionHelper {
	conn := &mocks.CollectionHelper{}
	cursor := &mocks.CursorHelper{}

	cursor.On("All", mock.Anything, mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		*(args.Get(1).(*[]models.Case)) = cases
	})
	cursor.On("Close", mock.Anything).Return(nil)
	conn.On("Find", mock.Anything, mock.Anything, mock.Anything).Return(cursor, nil).Run(func(args mock.Arguments) {
		if capture != nil {
			*capture = args.Get(1).(bson.M)
		}
	})
	db.On("Collection", "cases").Return(conn)
	return conn
}

func TestReport_CreateReportHandlerInvalidType(t *testing.T) {
	db := &MockDatabaseHelper{}

	re := handlers.Report{DB: databases.NewReportDatabase(db), CDB: databases.NewCaseDatabase(db)}

	req := registrarContext(httptest.NewRequest("POST", "/api/reports", strings.NewReader(`{"reportType": "weekly"}`)))
	rr := httptest.NewRecorder()
	http.HandlerFunc(re.CreateReportHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)

	expected := models.ErrorMessageResponse{Response: models.MessageError{Message: "invalid report type or missing parameters"}}
	b, _ := json.Marshal(expected)
	assert.Equal(t, string(b), rr.Body.String())
}

func TestReport_CreateReportHandlerStatusWithoutCIN(t *testing.T) {
	db := &MockDatabaseHelper{}

	re := handlers.Report{DB: databases.NewReportDatabase(db), CDB: databases.NewCaseDatabase(db)}

	req := registrarContext(httptest.NewRequest("POST", "/api/reports", strings.NewReader(`{"reportType": "status"}`)))
	rr := httptest.NewRecorder()
	http.HandlerFunc(re.CreateReportHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestReport_CreateReportHandlerStatusUnknownCase(t *testing.T) {
	db := &MockDatabaseHelper{}
	caseCollection(db, nil, mongo.ErrNoDocuments)

	re := handlers.Report{DB: databases.NewReportDatabase(db), CDB: databases.NewCaseDatabase(db)}

	req := registrarContext(httptest.NewRequest("POST", "/api/reports", strings.NewReader(`{"reportType": "status", "cin": "CIN-DEADBEEF"}`)))
	rr := httptest.NewRecorder()
	http.HandlerFunc(re.CreateReportHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestReport_CreateReportHandlerPending(t *testing.T) {
	db := &MockDatabaseHelper{}

	var filter bson.M
	caseFindCollection(db, []models.Case{
		{CIN: "CIN-AAAA1111", Status: models.CaseStatusPending},
		{CIN: "CIN-BBBB2222", Status: models.CaseStatusPending},
	}, &filter)

	var persisted models.Report
	reportInsertCollection(db, &persisted)

	re := handlers.Report{DB: databases.NewReportDatabase(db), CDB: databases.NewCaseDatabase(db)}

	req := registrarContext(httptest.NewRequest("POST", "/api/reports", strings.NewReader(`{"reportType": "pending"}`)))
	rr := httptest.NewRecorder()
	http.HandlerFunc(re.CreateReportHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, bson.M{"status": models.CaseStatusPending}, filter)

	assert.Equal(t, models.ReportTypePending, persisted.ReportType)
	assert.NotEmpty(t, persisted.ReportID)
	assert.NotEmpty(t, persisted.GeneratedDate)
	assert.Equal(t, 2, persisted.Content["totalPendingCases"])

	var resp models.Report
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, persisted.ReportID, resp.ReportID)
}

func TestReport_CreateReportHandlerResolvedDateWindow(t *testing.T) {
	db := &MockDatabaseHelper{}

	var filter bson.M
	caseFindCollection(db, []models.Case{
		{CIN: "CIN-CCCC3333", Status: models.CaseStatusResolved},
	}, &filter)

	var persisted models.Report
	reportInsertCollection(db, &persisted)

	re := handlers.Report{DB: databases.NewReportDatabase(db), CDB: databases.NewCaseDatabase(db)}

	body := `{"reportType": "resolved", "startDate": "2024-01-01", "endDate": "2024-06-30"}`
	req := registrarContext(httptest.NewRequest("POST", "/api/reports", strings.NewReader(body)))
	rr := httptest.NewRecorder()
	http.HandlerFunc(re.CreateReportHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, bson.M{
		"status":    bson.M{"$in": []string{models.CaseStatusResolved, models.CaseStatusClosed}},
		"updatedAt": bson.M{"$gte": "2024-01-01", "$lte": "2024-06-30"},
	}, filter)

	assert.Equal(t, 1, persisted.Content["totalResolvedCases"])
	dateRange, ok := persisted.Content["dateRange"].(map[string]interface{})
	assert.True(t, ok)
	assert.Equal(t, "2024-01-01", dateRange["start"])
	assert.Equal(t, "2024-06-30", dateRange["end"])
}

func TestReport_CreateReportHandlerResolvedNoWindow(t *testing.T) {
	db := &MockDatabaseHelper{}

	var filter bson.M
	caseFindCollection(db, nil, &filter)

	var persisted models.Report
	reportInsertCollection(db, &persisted)

	re := handlers.Report{DB: databases.NewReportDatabase(db), CDB: databases.NewCaseDatabase(db)}

	req := registrarContext(httptest.NewRequest("POST", "/api/reports", strings.NewReader(`{"reportType": "resolved"}`)))
	rr := httptest.NewRecorder()
	http.HandlerFunc(re.CreateReportHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.NotContains(t, filter, "updatedAt")
	assert.Equal(t, 0, persisted.Content["totalResolvedCases"])
}

func TestReport_ReportHandlerSortedAndCapped(t *testing.T) {
	db := &MockDatabaseHelper{}
	conn := &mocks.CollectionHelper{}
	cursor := &mocks.CursorHelper{}

	cursor.On("All", mock.Anything, mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		*(args.Get(1).(*[]models.Report)) = []models.Report{
			{ReportID: "r-2", GeneratedDate: "2024-02-01T00:00:00Z"},
			{ReportID: "r-1", GeneratedDate: "2024-01-01T00:00:00Z"},
		}
	})
	cursor.On("Close", mock.Anything).Return(nil)

	var opts *options.FindOptions
	conn.On("Find", mock.Anything, bson.M{}, mock.Anything).Return(cursor, nil).Run(func(args mock.Arguments) {
		opts = args.Get(2).(*options.FindOptions)
	})
	db.On("Collection", "reports").Return(conn)

	re := handlers.Report{DB: databases.NewReportDatabase(db)}

	req := registrarContext(httptest.NewRequest("GET", "/api/reports", nil))
	rr := httptest.NewRecorder()
	http.HandlerFunc(re.ReportHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var reports []models.Report
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &reports))
	assert.Len(t, reports, 2)
	assert.Equal(t, "r-2", reports[0].ReportID)

	if assert.NotNil(t, opts) {
		assert.Equal(t, int64(100), *opts.Limit)
		assert.Equal(t, bson.M{"generatedDate": -1}, opts.Sort)
	}
}
