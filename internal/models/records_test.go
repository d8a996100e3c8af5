package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnswerDetails(t *testing.T) {
	q := QuizRecord{
		TotalQuestions:     3,
		QuestionTexts:      []string{"What to do first?", "Where to hide?"},
		AnswerTexts:        []string{"Drop and cover", ""},
		CorrectAnswerTexts: []string{"Drop and cover"},
		AnswerCorrectness:  []bool{true, false},
	}

	details := q.AnswerDetails()
	require.Len(t, details, 3)

	assert.Equal(t, 1, details[0].Number)
	assert.Equal(t, "What to do first?", details[0].Question)
	assert.Equal(t, "Drop and cover", details[0].YourAnswer)
	assert.True(t, details[0].Correct)

	// empty answer text falls back, correct-answer slice is short
	assert.Equal(t, "No answer", details[1].YourAnswer)
	assert.Equal(t, "Unknown", details[1].CorrectAnswer)
	assert.False(t, details[1].Correct)

	// the third question has no data at all
	assert.Equal(t, "Question 3", details[2].Question)
	assert.Equal(t, "No answer", details[2].YourAnswer)
	assert.False(t, details[2].Correct)
}

func TestAnswerDetailsEmptyAttempt(t *testing.T) {
	assert.Empty(t, QuizRecord{}.AnswerDetails())
}
