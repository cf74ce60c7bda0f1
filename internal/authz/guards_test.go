package authz_test

import (
	"testing"

	"github.com/arbiterhq/arbiter/internal/authz"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		input   string
		want    authz.Role
		wantErr bool
	}{
		{"partyA", authz.RolePartyA, false},
		{"partyB", authz.RolePartyB, false},
		{"witness1", authz.RoleWitness1, false},
		{"witness2", authz.RoleWitness2, false},
		{"arb", authz.RoleArbiter, false},
		{"", authz.RoleNone, true},
		{"arbiter", authz.RoleNone, true},
		{"PartyA", authz.RoleNone, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := authz.ParseRole(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("error: got %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("role: got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRolePredicates(t *testing.T) {
	tests := []struct {
		role    authz.Role
		member  bool
		party   bool
		witness bool
	}{
		{authz.RolePartyA, true, true, false},
		{authz.RolePartyB, true, true, false},
		{authz.RoleWitness1, true, false, true},
		{authz.RoleWitness2, true, false, true},
		{authz.RoleArbiter, true, false, false},
		{authz.RoleNone, false, false, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			if got := tt.role.Member(); got != tt.member {
				t.Errorf("Member: got %v, want %v", got, tt.member)
			}
			if got := tt.role.IsParty(); got != tt.party {
				t.Errorf("IsParty: got %v, want %v", got, tt.party)
			}
			if got := tt.role.IsWitness(); got != tt.witness {
				t.Errorf("IsWitness: got %v, want %v", got, tt.witness)
			}
		})
	}
}

func TestCanSetReady(t *testing.T) {
	tests := []struct {
		name   string
		role   authz.Role
		ownRow bool
		want   bool
	}{
		{"party own row", authz.RolePartyA, true, true},
		{"party other row", authz.RolePartyB, false, false},
		{"witness own row", authz.RoleWitness1, true, false},
		{"arbiter own row", authz.RoleArbiter, true, false},
		{"non-member", authz.RoleNone, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := authz.CanSetReady(tt.role, tt.ownRow); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCanAppeal(t *testing.T) {
	tests := []struct {
		name       string
		role       authz.Role
		appealUsed bool
		want       bool
	}{
		{"party fresh appeal", authz.RolePartyA, false, true},
		{"party spent appeal", authz.RolePartyA, true, false},
		{"witness", authz.RoleWitness2, false, false},
		{"arbiter", authz.RoleArbiter, false, false},
		{"non-member", authz.RoleNone, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := authz.CanAppeal(tt.role, tt.appealUsed); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCanReadInput(t *testing.T) {
	tests := []struct {
		name     string
		caller   authz.Role
		author   authz.Role
		isAuthor bool
		want     bool
	}{
		{"author reads own", authz.RoleWitness1, authz.RoleWitness1, true, true},
		{"arbiter reads everything", authz.RoleArbiter, authz.RoleWitness2, false, true},
		{"party reads party input", authz.RolePartyA, authz.RolePartyB, false, true},
		{"party reads own", authz.RolePartyA, authz.RolePartyA, true, true},
		{"party cannot read witness input", authz.RolePartyA, authz.RoleWitness1, false, false},
		{"witness cannot read party input", authz.RoleWitness1, authz.RolePartyA, false, false},
		{"witness cannot read other witness", authz.RoleWitness1, authz.RoleWitness2, false, false},
		{"non-member reads nothing", authz.RoleNone, authz.RolePartyA, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := authz.CanReadInput(tt.caller, tt.author, tt.isAuthor); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestQuestionGuards(t *testing.T) {
	if !authz.CanAskQuestion(authz.RoleArbiter) {
		t.Error("arbiter should ask questions")
	}
	for _, role := range []authz.Role{authz.RolePartyA, authz.RolePartyB, authz.RoleWitness1, authz.RoleWitness2, authz.RoleNone} {
		if authz.CanAskQuestion(role) {
			t.Errorf("%q should not ask questions", role)
		}
	}

	if !authz.CanReadQuestion(authz.RolePartyA, true) {
		t.Error("addressee should read their question")
	}
	if !authz.CanReadQuestion(authz.RoleArbiter, false) {
		t.Error("arbiter should read all questions")
	}
	if authz.CanReadQuestion(authz.RolePartyA, false) {
		t.Error("non-addressee party should not read others' questions")
	}

	if !authz.CanAnswerQuestion(true, false) {
		t.Error("addressee should answer an open question")
	}
	if authz.CanAnswerQuestion(true, true) {
		t.Error("answered question should not accept a second answer")
	}
	if authz.CanAnswerQuestion(false, false) {
		t.Error("non-addressee should not answer")
	}
}

func TestDecisionGuards(t *testing.T) {
	for _, role := range []authz.Role{authz.RolePartyA, authz.RolePartyB, authz.RoleWitness1, authz.RoleWitness2, authz.RoleArbiter} {
		if !authz.CanReadDecision(role) {
			t.Errorf("%q should read the decision", role)
		}
	}
	if authz.CanReadDecision(authz.RoleNone) {
		t.Error("non-member should not read the decision")
	}

	if !authz.CanDecide(authz.RoleArbiter) {
		t.Error("arbiter should decide")
	}
	for _, role := range []authz.Role{authz.RolePartyA, authz.RolePartyB, authz.RoleWitness1, authz.RoleWitness2, authz.RoleNone} {
		if authz.CanDecide(role) {
			t.Errorf("%q should not decide", role)
		}
	}
}

func TestCanAccessAudit(t *testing.T) {
	for _, role := range []authz.Role{authz.RolePartyA, authz.RolePartyB, authz.RoleWitness1, authz.RoleWitness2, authz.RoleArbiter, authz.RoleNone} {
		if authz.CanAccessAudit(role) {
			t.Errorf("%q should never access the audit log", role)
		}
	}
}
