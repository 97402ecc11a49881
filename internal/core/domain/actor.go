package domain

import "github.com/shopspring/decimal"

// Actor is the opaque identity supplied by the authentication collaborator.
// The ledger core consumes it for approval gating; it never resolves
// identity itself.
type Actor struct {
	ActorID       string          `json:"actorID"`
	RoleLevel     int             `json:"roleLevel"`
	ApprovalLimit decimal.Decimal `json:"approvalLimit"` // zero means unlimited
}

// CanApprove reports whether the actor may post an entry of the given total.
func (a Actor) CanApprove(total decimal.Decimal) bool {
	if a.ApprovalLimit.IsZero() {
		return true
	}
	return total.LessThanOrEqual(a.ApprovalLimit)
}
