package summary

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	usecaseErrors "github.com/johnquangdev/meetscribe/internal/usecase/errors"
	"github.com/johnquangdev/meetscribe/pkg/ai"
)

const (
	systemInstruction = "You are an expert meeting summarizer. Generate clear, well-structured summaries based on the provided instructions. Always format your response as clean HTML."

	temperature     = 0.3
	maxOutputTokens = 2000
)

var errEmptyOutput = errors.New("No summary generated from AI")

// templates are the preset instructions offered to users
var templates = map[string]string{
	"Executive Summary Format": "Create an executive summary with key highlights, decisions made, and strategic implications. Format with clear sections and bullet points for easy executive review.",
	"Action Items Only":        "Extract only action items, deadlines, and assigned responsibilities. List each item with the person responsible and due date clearly identified.",
	"Project Status Update":    "Summarize project progress, milestones achieved, upcoming deliverables, and any blockers or risks identified. Focus on status and next steps.",
	"Key Decisions & Outcomes": "Focus on decisions made during the meeting, outcomes achieved, and next steps. Include any voting results or consensus reached.",
}

// Generator turns a transcript and an instruction into an HTML summary
type Generator interface {
	Generate(ctx context.Context, transcript, instruction string) (string, error)
	Templates() map[string]string
}

type aiGenerator struct {
	client ai.TextGenerator
	logger *zap.Logger
}

// NewGenerator creates a Generator backed by an AI text provider
func NewGenerator(client ai.TextGenerator, logger *zap.Logger) Generator {
	return &aiGenerator{client: client, logger: logger}
}

// BuildPrompt frames the transcript with the user's instruction and the HTML formatting request
func BuildPrompt(instruction, transcript string) string {
	var b strings.Builder
	b.WriteString(instruction)
	b.WriteString("\n\nPlease process the following meeting transcript and generate a summary based on the instructions above:\n\n")
	b.WriteString(transcript)
	b.WriteString("\n\nFormat the output as clean HTML that can be displayed in a web page. Use appropriate tags like <h3>, <h4>, <ul>, <li>, <p>, <strong> for structure and formatting.")
	return b.String()
}

// Generate makes a single provider call. The output is returned verbatim.
func (g *aiGenerator) Generate(ctx context.Context, transcript, instruction string) (string, error) {
	out, err := g.client.GenerateText(ctx, ai.GenerateRequest{
		SystemInstruction: systemInstruction,
		Prompt:            BuildPrompt(instruction, transcript),
		Temperature:       temperature,
		MaxTokens:         maxOutputTokens,
	})
	if err != nil {
		g.logger.Error("❌ AI summary generation failed",
			zap.Int("transcript_length", len(transcript)),
			zap.Error(err))
		return "", &usecaseErrors.GenerationError{Err: err}
	}

	if strings.TrimSpace(out) == "" {
		g.logger.Warn("AI provider returned empty output")
		return "", &usecaseErrors.GenerationError{Err: errEmptyOutput}
	}

	g.logger.Info("✅ AI summary generated",
		zap.Int("transcript_length", len(transcript)),
		zap.Int("summary_length", len(out)))

	return out, nil
}

// Templates returns a fresh copy of the preset catalog
func (g *aiGenerator) Templates() map[string]string {
	out := make(map[string]string, len(templates))
	for name, instruction := range templates {
		out[name] = instruction
	}
	return out
}
