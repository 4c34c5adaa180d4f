// Package agent wraps a Gemini chat that comments on a rendered
// portfolio dashboard. It is strictly read-only: the model sees
// markdown text and talks back, it never touches the store.
package agent

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

const analystInstruction = `You are a cautious assistant for a personal
fund portfolio. You receive a markdown dashboard of Chinese open-end
funds, ETFs and gold holdings. Summarize the day's movements in a few
short sentences, point out the largest contributors to the day's
profit or loss, and mention positions whose quote was unavailable.
Never give buy or sell advice.`

// Analyst holds one Gemini chat session.
type Analyst struct {
	Model  string
	Config *genai.GenerateContentConfig

	chat *genai.Chat
}

// NewAnalyst returns an analyst with the default model and instruction.
func NewAnalyst() *Analyst {
	return &Analyst{
		Model: "gemini-2.5-flash",
		Config: &genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{
				Parts: []*genai.Part{{Text: analystInstruction}},
			},
		},
	}
}

// Start creates the underlying chat session.
func (a *Analyst) Start(ctx context.Context, client *genai.Client) error {
	chat, err := client.Chats.Create(ctx, a.Model, a.Config, nil)
	if err != nil {
		return err
	}
	a.chat = chat
	return nil
}

// Comment sends the rendered dashboard, with an optional user question,
// and returns the model's commentary as markdown.
func (a *Analyst) Comment(ctx context.Context, dashboard, question string) (string, error) {
	if a.chat == nil {
		return "", fmt.Errorf("analyst not started")
	}

	parts := []*genai.Part{{Text: dashboard}}
	if question != "" {
		parts = append(parts, &genai.Part{Text: question})
	}

	resp, err := a.chat.Send(ctx, parts...)
	if err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no response from the analyst")
	}
	return resp.Candidates[0].Content.Parts[0].Text, nil
}
