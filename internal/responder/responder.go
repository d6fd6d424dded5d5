// Package responder produces the AI commentary attached to submissions.
// Only a placeholder implementation exists; a model-backed Responder can
// replace it without touching the HTTP layer.
package responder

import (
	"context"
	"hash/fnv"
)

type Responder interface {
	AnalyzeText(ctx context.Context, text string) (string, error)
	AnalyzeDrawing(ctx context.Context, drawingData string) (string, error)
}

var textReplies = []string{
	"AI says: 'I'm just a placeholder. Add your API key for real AI!'",
	"AI says: 'This is another possible interpretation.'",
	"AI says: 'A third possible AI response.'",
}

const drawingGuess = "AI guesses: 'This looks happy and creative!'"

// Placeholder returns canned responses. The same text always gets the
// same reply.
type Placeholder struct{}

func NewPlaceholder() *Placeholder {
	return &Placeholder{}
}

func (Placeholder) AnalyzeText(_ context.Context, text string) (string, error) {
	h := fnv.New32a()
	_, _ = h.Write([]byte(text))
	return textReplies[h.Sum32()%uint32(len(textReplies))], nil
}

func (Placeholder) AnalyzeDrawing(_ context.Context, _ string) (string, error) {
	return drawingGuess, nil
}
