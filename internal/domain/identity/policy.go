package identity

import (
	"github.com/google/uuid"

	"github.com/societyhub/backend/internal/domain/shared"
)

// Operation identifies an action checked by the authorization policy
type Operation string

const (
	OpSocietyCreate Operation = "society.create"
	OpSocietyRead   Operation = "society.read"
	OpSocietyUpdate Operation = "society.update"
	OpSocietyDelete Operation = "society.delete"

	OpFlatCreate Operation = "flat.create"
	OpFlatRead   Operation = "flat.read"
	OpFlatUpdate Operation = "flat.update"
	OpFlatDelete Operation = "flat.delete"

	OpExpenseCreate Operation = "expense.create"
	OpExpenseRead   Operation = "expense.read"
	OpExpenseUpdate Operation = "expense.update"
	OpExpenseDelete Operation = "expense.delete"

	OpPaymentCreate     Operation = "payment.create"
	OpPaymentRead       Operation = "payment.read"
	OpPaymentUpdate     Operation = "payment.update"
	OpPaymentBulkCreate Operation = "payment.bulk_create"
	OpPaymentDelete     Operation = "payment.delete"

	OpReportRead Operation = "report.read"
)

// Actor is the authorization view of a user: who they are, what role they
// hold, and which society they belong to.
type Actor struct {
	ID        uuid.UUID
	Role      Role
	SocietyID *uuid.UUID
}

// mutationRoles maps each mutating operation to the non-admin roles allowed
// to perform it. Operations absent from this map are reads: any role may
// perform them within its own society. An empty set means admin-only.
var mutationRoles = map[Operation][]Role{
	OpSocietyCreate: {},
	OpSocietyUpdate: {RoleCommittee, RoleTreasurer},
	OpSocietyDelete: {},

	OpFlatCreate: {RoleCommittee, RoleTreasurer},
	OpFlatUpdate: {RoleCommittee, RoleTreasurer},
	OpFlatDelete: {RoleCommittee},

	OpExpenseCreate: {RoleCommittee, RoleTreasurer},
	OpExpenseUpdate: {RoleCommittee, RoleTreasurer},
	OpExpenseDelete: {RoleCommittee, RoleTreasurer},

	OpPaymentCreate:     {RoleCommittee, RoleTreasurer},
	OpPaymentUpdate:     {RoleCommittee, RoleTreasurer},
	OpPaymentBulkCreate: {RoleCommittee, RoleTreasurer},

	// Deleting a financial record is stricter than recording one.
	OpPaymentDelete: {RoleTreasurer},
}

// Authorize checks whether the actor may perform the operation against the
// target society. Rules, in order:
//
//  1. ADMIN is allowed everything, everywhere.
//  2. The target society must be the actor's home society (cross-tenant
//     isolation). Violations are FORBIDDEN.
//  3. Mutating operations additionally require the actor's role to be in the
//     operation's allow-set. Violations are UNAUTHORIZED.
//  4. Reads need only rule 2.
//
// Returns nil when allowed.
func Authorize(actor Actor, op Operation, targetSocietyID uuid.UUID) error {
	if actor.Role == RoleAdmin {
		return nil
	}

	// OpSocietyCreate has no target society; it falls straight through to
	// the role check below and always denies non-admins.
	if op != OpSocietyCreate {
		if actor.SocietyID == nil || *actor.SocietyID != targetSocietyID {
			return shared.ErrForbidden
		}
	}

	allowed, isMutation := mutationRoles[op]
	if !isMutation {
		return nil
	}
	for _, role := range allowed {
		if actor.Role == role {
			return nil
		}
	}
	return shared.ErrUnauthorized
}

// Allowed reports whether the actor may perform the operation against the
// target society.
func Allowed(actor Actor, op Operation, targetSocietyID uuid.UUID) bool {
	return Authorize(actor, op, targetSocietyID) == nil
}
