package review

import (
	"fmt"
	"strings"
)

const reviewSystemPrompt = `You are a warm, encouraging Hindi-English vocabulary tutor for young learners. A student just answered a quiz question and you give short, specific feedback.`

func buildReviewUserMessage(input Input) string {
	var b strings.Builder

	q := input.Question
	b.WriteString(fmt.Sprintf("Question: %s\n", q.Prompt))
	b.WriteString(fmt.Sprintf("Correct answer: %s\n", q.Correct))
	b.WriteString(fmt.Sprintf("Student's answer: %s\n", input.Submission))
	if input.Correct {
		b.WriteString("The student answered correctly.\n")
	} else {
		b.WriteString("The student answered incorrectly.\n")
	}
	b.WriteString(fmt.Sprintf("Time taken: %.0f seconds\n", input.TimeTaken))
	b.WriteString(fmt.Sprintf("Topic: %s\n", q.Topic))
	if q.Explanation != "" {
		b.WriteString(fmt.Sprintf("Explanation from the question bank: %s\n", q.Explanation))
	}

	b.WriteString(`
Instructions:
1. Give 2-3 sentences of feedback. If wrong, name the likely confusion (similar-sounding word, transliteration slip) without scolding.
2. Offer 1-3 short memory aids for this word, such as a sound association or a simple usage sentence.
3. Use plain text. Write Hindi words in Roman transliteration as they appear in the question.`)

	return b.String()
}

const reportSystemPrompt = `You are a warm, encouraging Hindi-English vocabulary tutor. A student just finished a practice session and you summarize how it went.`

func buildReportUserMessage(input ReportInput) string {
	var b strings.Builder

	if input.PlayerName != "" {
		b.WriteString(fmt.Sprintf("Student: %s\n", input.PlayerName))
	}
	b.WriteString(fmt.Sprintf("Questions answered: %d (%d correct, %.0f%% accuracy)\n",
		input.TotalQuestions, input.CorrectAnswers, input.Accuracy))
	b.WriteString(fmt.Sprintf("Best streak: %d\n", input.MaxStreak))

	if len(input.StrongTopics) > 0 {
		b.WriteString(fmt.Sprintf("Strong topics: %s\n", strings.Join(input.StrongTopics, ", ")))
	}
	if len(input.WeakTopics) > 0 {
		b.WriteString(fmt.Sprintf("Topics with mistakes: %s\n", strings.Join(input.WeakTopics, ", ")))
	}

	b.WriteString(`
Instructions:
1. Write a 3-5 sentence summary of the session. Celebrate what went well before mentioning what needs work.
2. Suggest 1-3 concrete next steps, like reviewing a specific topic.
3. Keep the tone light. This is a game, not an exam.`)

	return b.String()
}
