package scheduler

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/courtworks/jis-api/databases"
	"github.com/courtworks/jis-api/models"
)

// snapshotCaseLimit matches the cap applied to on-demand report generation
const snapshotCaseLimit = 1000

// Scheduler runs periodic background jobs against the case store
type Scheduler struct {
	cron *cron.Cron
	RDB  databases.ReportDatabase
	CDB  databases.CaseDatabase
}

// New creates a new scheduler instance
func New(rdb databases.ReportDatabase, cdb databases.CaseDatabase) *Scheduler {
	return &Scheduler{
		cron: cron.New(cron.WithLocation(time.UTC)),
		RDB:  rdb,
		CDB:  cdb,
	}
}

// Start begins the scheduler with all registered jobs
func (s *Scheduler) Start() {
	// Snapshot pending cases daily at 2 AM UTC
	_, err := s.cron.AddFunc("0 2 * * *", s.snapshotPendingCases)
	if err != nil {
		zap.S().Errorw("failed to register pending snapshot job", "error", err)
	}

	s.cron.Start()
	zap.S().Info("report snapshot scheduler started")
}

// Stop gracefully stops the scheduler
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	zap.S().Info("report snapshot scheduler stopped")
}

// snapshotPendingCases persists a pending-cases report, the same shape a
// registrar gets from requesting a "pending" report by hand.
func (s *Scheduler) snapshotPendingCases() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	limit := int64(snapshotCaseLimit)
	cases, err := s.CDB.Find(ctx, bson.M{"status": models.CaseStatusPending}, &options.FindOptions{Limit: &limit})
	if err != nil {
		zap.S().Errorw("failed to find pending cases for snapshot", "error", err)
		return
	}
	if len(cases) == 0 {
		cases = []models.Case{}
	}

	report := models.Report{
		ReportID:      uuid.New().String(),
		GeneratedDate: time.Now().UTC().Format(time.RFC3339),
		ReportType:    models.ReportTypePending,
		Content: map[string]interface{}{
			"totalPendingCases": len(cases),
			"cases":             cases,
		},
	}
	if err := s.RDB.InsertOne(ctx, report); err != nil {
		zap.S().Errorw("failed to persist pending snapshot", "error", err)
		return
	}

	zap.S().Infow("pending case snapshot persisted",
		"reportID", report.ReportID,
		"pendingCases", len(cases),
	)
}
