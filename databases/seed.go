package databases

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/courtworks/jis-api/models"
)

// EnsureSeedData creates the root registrar, a starter account per role and a
// few sample cases. Safe to run on every startup; existing records are left
// untouched.
func EnsureSeedData(ctx context.Context, udb UserDatabase, cdb CaseDatabase) error {
	seedUsers := []struct {
		user     models.User
		password string
	}{
		{models.User{Name: "Root Administrator", Email: "root@jis.local", Role: models.RoleRegistrar}, "password"},
		{models.User{Name: "John Smith", Email: "lawyer@test.com", Role: models.RoleLawyer, BarID: "BAR001"}, "password"},
		{models.User{Name: "Sarah Johnson", Email: "judge@test.com", Role: models.RoleJudge}, "password"},
		{models.User{Name: "Michael Brown", Email: "registrar@test.com", Role: models.RoleRegistrar}, "password"},
	}

	for _, s := range seedUsers {
		if _, err := udb.FindOne(ctx, bson.M{"email": s.user.Email}); err == nil {
			continue
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(s.password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		u := s.user
		u.UserID = uuid.New().String()
		u.Password = string(hash)
		if err := udb.InsertOne(ctx, u); err != nil {
			return err
		}
		zap.S().Infow("seeded user", "email", u.Email, "role", u.Role)
	}

	count, err := cdb.CountDocuments(ctx, bson.M{})
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	now := time.Now().UTC().Format(time.RFC3339)
	sampleCases := []models.Case{
		{
			DefendantName:          "Robert Williams",
			DefendantAddress:       "123 Main St, City A",
			CrimeType:              "Theft",
			CrimeDate:              "2024-01-15",
			CrimeLocation:          "Downtown Mall",
			ArrestingOfficer:       "Officer Davis",
			ArrestDate:             "2024-01-16",
			PresidingJudge:         "Hon. Sarah Johnson",
			PublicProsecutor:       "Alex Turner",
			StartDate:              "2024-02-01",
			ExpectedCompletionDate: "2024-06-01",
			Hearing:                []string{"2024-02-15", "2024-03-10"},
			Status:                 models.CaseStatusInProgress,
		},
		{
			DefendantName:          "Emily Davis",
			DefendantAddress:       "456 Oak Ave, City B",
			CrimeType:              "Fraud",
			CrimeDate:              "2024-02-20",
			CrimeLocation:          "Bank of Commerce",
			ArrestingOfficer:       "Officer Martinez",
			ArrestDate:             "2024-02-21",
			PresidingJudge:         "Hon. Sarah Johnson",
			PublicProsecutor:       "Rachel Green",
			StartDate:              "2024-03-01",
			ExpectedCompletionDate: "2024-08-01",
			Hearing:                []string{"2024-03-20"},
			Status:                 models.CaseStatusPending,
		},
		{
			DefendantName:          "James Wilson",
			DefendantAddress:       "789 Pine Rd, City C",
			CrimeType:              "Assault",
			CrimeDate:              "2023-11-10",
			CrimeLocation:          "City Park",
			ArrestingOfficer:       "Officer Thompson",
			ArrestDate:             "2023-11-11",
			PresidingJudge:         "Hon. Sarah Johnson",
			PublicProsecutor:       "David Lee",
			StartDate:              "2023-12-01",
			ExpectedCompletionDate: "2024-04-01",
			Hearing:                []string{"2023-12-15", "2024-01-20", "2024-02-25"},
			JudgementInfo:          "Defendant found guilty. Sentenced to 2 years imprisonment.",
			Status:                 models.CaseStatusResolved,
		},
	}

	for _, c := range sampleCases {
		c.CIN = models.NewCIN()
		c.CreatedAt = now
		c.UpdatedAt = now
		if err := cdb.InsertOne(ctx, c); err != nil {
			return err
		}
	}
	zap.S().Infow("seeded sample cases", "count", len(sampleCases))
	return nil
}
