package handlers

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/courtworks/jis-api/api"
	"github.com/courtworks/jis-api/api/scheduler"
	"github.com/courtworks/jis-api/config"
	"github.com/courtworks/jis-api/databases"
)

// App stores the router and db connection, so it can be reused
type App struct {
	Router    *mux.Router
	Config    config.Config
	Scheduler *scheduler.Scheduler
	dbHelper  databases.DatabaseHelper
}

// New creates a new mux router and all the routes
func (a *App) New() *mux.Router {
	r := mux.NewRouter()

	udb := databases.NewUserDatabase(a.dbHelper)
	cdb := databases.NewCaseDatabase(a.dbHelper)
	bdb := databases.NewBillDatabase(a.dbHelper)
	rdb := databases.NewReportDatabase(a.dbHelper)
	prdb := databases.NewPasswordResetDatabase(a.dbHelper)

	auth := api.Auth{DB: udb, Secret: a.Config.JWTSecret}
	guard := func(op api.Operation, h http.HandlerFunc) http.Handler {
		return auth.Middleware(api.Require(op, h))
	}

	au := Auth{DB: udb, RDB: prdb, Secret: a.Config.JWTSecret, BaseURL: a.Config.BaseURL}
	c := Case{DB: cdb, BDB: bdb}
	b := Bill{DB: bdb}
	re := Report{DB: rdb, CDB: cdb}
	st := Statistics{CDB: cdb, BDB: bdb}

	// healthchex
	r.HandleFunc("/health", healthCheckHandler)

	apiCreate := r.PathPrefix("/api").Subrouter()

	apiCreate.Handle("/auth/login", http.HandlerFunc(au.LoginHandler)).Methods("POST")
	apiCreate.Handle("/auth/forgot-password", http.HandlerFunc(au.ForgotPasswordHandler)).Methods("POST")
	apiCreate.Handle("/auth/reset-password", http.HandlerFunc(au.ResetPasswordHandler)).Methods("POST")
	apiCreate.Handle("/auth/me", guard(api.OpWhoAmI, au.MeHandler)).Methods("GET")

	apiCreate.Handle("/cases", guard(api.OpCreateCase, c.CreateCaseHandler)).Methods("POST")
	apiCreate.Handle("/cases", guard(api.OpListCases, c.CaseHandler)).Methods("GET")
	apiCreate.Handle("/cases/{cin}", guard(api.OpViewCase, c.CaseByCINHandler)).Methods("GET")
	apiCreate.Handle("/cases/{cin}", guard(api.OpUpdateCase, c.UpdateCaseHandler)).Methods("PUT")
	apiCreate.Handle("/cases/{cin}", guard(api.OpDeleteCase, c.DeleteCaseHandler)).Methods("DELETE")
	apiCreate.Handle("/cases/{cin}/hearing", guard(api.OpScheduleHearing, c.ScheduleHearingHandler)).Methods("POST")

	apiCreate.Handle("/bills", guard(api.OpListBills, b.BillHandler)).Methods("GET")
	apiCreate.Handle("/bills/{bill_id}/pay", guard(api.OpPayBill, b.PayBillHandler)).Methods("PUT")

	apiCreate.Handle("/reports", guard(api.OpGenerateReport, re.CreateReportHandler)).Methods("POST")
	apiCreate.Handle("/reports", guard(api.OpListReports, re.ReportHandler)).Methods("GET")

	apiCreate.Handle("/statistics", guard(api.OpViewStatistics, st.StatisticsHandler)).Methods("GET")

	return r
}

// Initialize is invoked by main to connect with the database and create a router
func (a *App) Initialize() error {

	client, err := databases.NewClient(&a.Config)
	if err != nil {
		// if we fail to create a new database client, then kill the pod
		zap.S().With(err).Error("failed to create new client")
		return err
	}

	a.dbHelper = databases.NewDatabase(&a.Config, client)

	connectCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	err = client.Connect(connectCtx)
	if err != nil {
		// if we fail to connect to the database, then kill the pod
		zap.S().With(err).Error("failed to connect to database")
		return err
	}
	zap.S().Info("jis-api has connected to the database")

	bdb := databases.NewBillDatabase(a.dbHelper)
	if err := bdb.EnsureIndexes(connectCtx); err != nil {
		zap.S().With(err).Error("failed to ensure bill indexes")
		return err
	}

	udb := databases.NewUserDatabase(a.dbHelper)
	cdb := databases.NewCaseDatabase(a.dbHelper)
	if err := databases.EnsureSeedData(connectCtx, udb, cdb); err != nil {
		zap.S().With(err).Error("failed to seed data")
		return err
	}

	a.Scheduler = scheduler.New(
		databases.NewReportDatabase(a.dbHelper),
		cdb,
	)
	a.Scheduler.Start()

	// initialize api router
	a.initializeRoutes()
	return nil

}

func (a *App) initializeRoutes() {
	a.Router = a.New()
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, `{"alive": true}`)
}
