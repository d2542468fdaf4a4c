package api

import "github.com/courtworks/jis-api/models"

// Operation names every gated action in the system
type Operation string

// Operations gated by the authorization policy
const (
	OpWhoAmI          Operation = "whoami"
	OpCreateCase      Operation = "case:create"
	OpListCases       Operation = "case:list"
	OpViewCase        Operation = "case:view"
	OpUpdateCase      Operation = "case:update"
	OpDeleteCase      Operation = "case:delete"
	OpScheduleHearing Operation = "case:schedule-hearing"
	OpListBills       Operation = "bill:list"
	OpPayBill         Operation = "bill:pay"
	OpGenerateReport  Operation = "report:generate"
	OpListReports     Operation = "report:list"
	OpViewStatistics  Operation = "statistics:view"
)

// restrictedOps maps an operation to the roles allowed to perform it.
// Operations absent from this table are open to any authenticated role.
var restrictedOps = map[Operation]map[string]bool{
	OpCreateCase:      {models.RoleRegistrar: true},
	OpUpdateCase:      {models.RoleRegistrar: true},
	OpDeleteCase:      {models.RoleRegistrar: true},
	OpScheduleHearing: {models.RoleRegistrar: true},
	OpGenerateReport:  {models.RoleRegistrar: true},
	OpListReports:     {models.RoleRegistrar: true},
	OpPayBill:         {models.RoleLawyer: true},
}

// Authorize reports whether the given role may perform the operation
func Authorize(role string, op Operation) bool {
	allowed, restricted := restrictedOps[op]
	if !restricted {
		return true
	}
	return allowed[role]
}
