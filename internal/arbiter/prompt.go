package arbiter

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are an impartial arbiter resolving a two-party dispute.
You receive the full case record: the dispute summary, both parties' arguments,
witness statements, and the parties' answers to clarifying questions.

Weigh the arguments and evidence, then issue a reasoned verdict. Address both
parties by the names used in the record. Be specific about which claims you
found convincing and why.

Respond with a single JSON object and nothing else:
{"decision_text": "<the full verdict>", "confidence": <number between 0 and 1>}

confidence expresses how strongly the record supports the verdict.`

const hebrewDirective = "Write decision_text in Hebrew."

// buildMessages renders the dossier into the system and user prompts.
func buildMessages(d *dossier) (string, string) {
	system := systemPrompt
	if d.Conflict.Language == "he" {
		system += "\n\n" + hebrewDirective
	}

	var b strings.Builder

	fmt.Fprintf(&b, "Dispute: %s\n", d.Conflict.Title)
	if d.Conflict.Description != "" {
		fmt.Fprintf(&b, "Background: %s\n", d.Conflict.Description)
	}

	b.WriteString("\nParticipants:\n")
	for _, m := range d.Roster {
		fmt.Fprintf(&b, "- %s (%s)\n", m.DisplayName, m.Role)
	}

	b.WriteString("\nSubmissions:\n")
	for _, in := range d.Inputs {
		role := d.roleOf(in.AuthorID)
		if role == "" {
			role = "unknown"
		}
		fmt.Fprintf(&b, "[%s, %s]\n%s\n\n", d.displayName(in.AuthorID), role, in.Content)
	}

	if len(d.Answers) > 0 {
		b.WriteString("Clarifications:\n")
		for _, q := range d.Answers {
			fmt.Fprintf(
				&b,
				"Q (to %s): %s\nA: %s\n\n",
				d.displayName(q.ToUserID),
				q.QuestionText,
				q.AnswerText,
			)
		}
	}

	return system, b.String()
}
