package arbiter

import (
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/arbiterhq/arbiter/internal/authz"
	"github.com/arbiterhq/arbiter/internal/conflicts"
	"github.com/arbiterhq/arbiter/internal/inputs"
	"github.com/arbiterhq/arbiter/internal/members"
	"github.com/arbiterhq/arbiter/internal/questions"
	"github.com/arbiterhq/arbiter/pkg/formatting"
)

func sampleDossier() *dossier {
	partyA := uuid.New()
	partyB := uuid.New()

	return &dossier{
		Conflict: &conflicts.Conflict{
			ID:          uuid.New(),
			Title:       "Broken fence",
			Description: "Dispute over who pays for the shared fence.",
			Language:    "en",
			Status:      conflicts.StatusReviewing,
		},
		Roster: []members.Member{
			{UserID: partyA, Role: authz.RolePartyA, DisplayName: "Dana"},
			{UserID: partyB, Role: authz.RolePartyB, DisplayName: "Omri"},
		},
		Inputs: []inputs.Input{
			{AuthorID: &partyA, Content: "The fence fell because of their renovation."},
			{AuthorID: &partyB, Content: "The fence was rotten long before we started."},
		},
		Answers: []questions.Question{
			{ToUserID: &partyA, QuestionText: "When did the fence fall?", AnswerText: "Last March.", Answered: true},
		},
	}
}

func TestBuildMessages(t *testing.T) {
	d := sampleDossier()
	system, user := buildMessages(d)

	if !strings.Contains(system, "decision_text") || !strings.Contains(system, "confidence") {
		t.Error("system prompt should name the verdict fields")
	}
	if strings.Contains(system, hebrewDirective) {
		t.Error("english conflict should not carry the hebrew directive")
	}

	for _, want := range []string{"Broken fence", "Dana", "Omri", "partyA", "renovation", "Last March"} {
		if !strings.Contains(user, want) {
			t.Errorf("user prompt missing %q", want)
		}
	}
}

func TestBuildMessagesHebrew(t *testing.T) {
	d := sampleDossier()
	d.Conflict.Language = "he"

	system, _ := buildMessages(d)
	if !strings.Contains(system, hebrewDirective) {
		t.Error("hebrew conflict should carry the hebrew directive")
	}
}

func TestBuildMessagesDepartedAuthor(t *testing.T) {
	d := sampleDossier()
	d.Inputs = append(d.Inputs, inputs.Input{AuthorID: nil, Content: "orphaned statement"})

	_, user := buildMessages(d)
	if !strings.Contains(user, "former member") {
		t.Error("departed authors should be labeled former member")
	}
}

func TestVerdictParsing(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    verdict
		wantErr bool
	}{
		{
			name:    "plain json",
			content: `{"decision_text": "Party A prevails.", "confidence": 0.85}`,
			want:    verdict{DecisionText: "Party A prevails.", Confidence: 0.85},
		},
		{
			name:    "fenced json",
			content: "```json\n{\"decision_text\": \"Split the cost.\", \"confidence\": 0.6}\n```",
			want:    verdict{DecisionText: "Split the cost.", Confidence: 0.6},
		},
		{
			name:    "prose only",
			content: "I find in favor of party A.",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := formatting.Parse[verdict](tt.content)
			if (err != nil) != tt.wantErr {
				t.Fatalf("error: got %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{-0.5, 0},
		{0, 0},
		{0.7, 0.7},
		{1, 1},
		{1.3, 1},
	}

	for _, tt := range tests {
		if got := clamp(tt.in); got != tt.want {
			t.Errorf("clamp(%f): got %f, want %f", tt.in, got, tt.want)
		}
	}
}
