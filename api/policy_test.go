package api_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/courtworks/jis-api/api"
	"github.com/courtworks/jis-api/models"
)

func TestAuthorizeRegistrarOnlyOperations(t *testing.T) {
	registrarOnly := []api.Operation{
		api.OpCreateCase,
		api.OpUpdateCase,
		api.OpDeleteCase,
		api.OpScheduleHearing,
		api.OpGenerateReport,
		api.OpListReports,
	}

	for _, op := range registrarOnly {
		assert.True(t, api.Authorize(models.RoleRegistrar, op), "registrar should be allowed %s", op)
		assert.False(t, api.Authorize(models.RoleLawyer, op), "lawyer should be denied %s", op)
		assert.False(t, api.Authorize(models.RoleJudge, op), "judge should be denied %s", op)
	}
}

func TestAuthorizePayBillLawyerOnly(t *testing.T) {
	assert.True(t, api.Authorize(models.RoleLawyer, api.OpPayBill))
	assert.False(t, api.Authorize(models.RoleJudge, api.OpPayBill))
	assert.False(t, api.Authorize(models.RoleRegistrar, api.OpPayBill))
}

func TestAuthorizeOpenOperations(t *testing.T) {
	open := []api.Operation{
		api.OpWhoAmI,
		api.OpViewCase,
		api.OpListCases,
		api.OpListBills,
		api.OpViewStatistics,
	}

	for _, op := range open {
		for _, role := range []string{models.RoleLawyer, models.RoleJudge, models.RoleRegistrar} {
			assert.True(t, api.Authorize(role, op), "%s should be allowed %s", role, op)
		}
	}
}

func TestAuthorizeUnknownRole(t *testing.T) {
	assert.False(t, api.Authorize("clerk", api.OpCreateCase))
	// unknown roles can still perform open operations once authenticated
	assert.True(t, api.Authorize("clerk", api.OpListCases))
}
