// Package questions implements arbiter-issued questions directed at a
// specific member. A question is answered at most once; the unanswered
// precondition rides inside the update statement itself.
package questions

import (
	"time"

	"github.com/google/uuid"
)

// Question represents an arbiter question addressed to one user.
type Question struct {
	ID           uuid.UUID  `json:"id"`
	ConflictID   uuid.UUID  `json:"conflict_id"`
	ToUserID     *uuid.UUID `json:"to_user_id"`
	QuestionText string     `json:"question_text"`
	AnswerText   string     `json:"answer_text"`
	Answered     bool       `json:"answered"`
	CreatedAt    time.Time  `json:"created_at"`
}

// AskCommand carries the data needed to issue a question.
type AskCommand struct {
	ToUserID     uuid.UUID `json:"to_user_id"`
	QuestionText string    `json:"question_text"`
}

// AnswerCommand carries the addressee's answer.
type AnswerCommand struct {
	AnswerText string `json:"answer_text"`
}
