package authz

// Guard predicates, one per entity/action pair. Each is a pure function of
// the caller's resolved role and the row attributes it gates, so policy
// logic stays testable in isolation from storage.
//
// Read denials surface to callers as absence (zero rows / not found), write
// denials as a generic permission failure; neither reveals row existence.

// CanReadConflict gates conflict row reads: members only.
func CanReadConflict(caller Role) bool {
	return caller.Member()
}

// CanListMembers gates membership list reads. Any member may see the full
// member list of their conflict.
func CanListMembers(caller Role) bool {
	return caller.Member()
}

// CanSetReady gates the ready-for-decision flag: the member's own row,
// party roles only.
func CanSetReady(caller Role, ownRow bool) bool {
	return ownRow && caller.IsParty()
}

// CanAppeal gates the appeal action: a party that has not yet used its appeal.
func CanAppeal(caller Role, appealUsed bool) bool {
	return caller.IsParty() && !appealUsed
}

// CanSubmitInput gates input creation: any member authoring as themselves.
func CanSubmitInput(caller Role, self bool) bool {
	return caller.Member() && self
}

// CanReadInput gates input reads. The author always sees their own rows,
// the arbiter sees everything, and parties see inputs authored by either
// party. Witnesses see only what they authored.
func CanReadInput(caller, author Role, isAuthor bool) bool {
	if !caller.Member() {
		return false
	}
	if isAuthor || caller == RoleArbiter {
		return true
	}
	return caller.IsParty() && author.IsParty()
}

// CanEditInput gates input updates: author only. The collecting-stage
// precondition is enforced atomically alongside the update statement.
func CanEditInput(isAuthor bool) bool {
	return isAuthor
}

// CanAskQuestion gates question creation: the arbiter only.
func CanAskQuestion(caller Role) bool {
	return caller == RoleArbiter
}

// CanReadQuestion gates question reads: the addressee or the arbiter.
func CanReadQuestion(caller Role, isAddressee bool) bool {
	return isAddressee || caller == RoleArbiter
}

// CanAnswerQuestion gates answering: the addressee, while unanswered. The
// unanswered precondition is additionally enforced in the update statement
// so concurrent attempts cannot both commit.
func CanAnswerQuestion(isAddressee, answered bool) bool {
	return isAddressee && !answered
}

// CanReadDecision gates decision reads: any member.
func CanReadDecision(caller Role) bool {
	return caller.Member()
}

// CanDecide gates the privileged decision path: the arbiter role only.
// No other client role has any write access to decisions.
func CanDecide(caller Role) bool {
	return caller == RoleArbiter
}

// CanAdvanceStatus gates explicit conflict status transitions: arbiter only.
func CanAdvanceStatus(caller Role) bool {
	return caller == RoleArbiter
}

// CanAccessAudit always denies: the audit log is invisible to every client
// role for every operation.
func CanAccessAudit(Role) bool {
	return false
}
