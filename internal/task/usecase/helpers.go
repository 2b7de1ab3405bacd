package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"task-assignment-bot/pkg/llmprovider"
	"task-assignment-bot/pkg/temporal"
)

// parseInputWithLLM sends the assembled prompt through the provider chain and
// returns the parsed fields plus the name of the provider that answered.
func (uc *implUseCase) parseInputWithLLM(ctx context.Context, prompt string) (parsedFields, string, error) {
	req := &llmprovider.Request{
		System:      systemPrompt,
		Prompt:      prompt,
		Temperature: 0.1, // Low temperature for deterministic JSON output
		MaxTokens:   500,
	}

	resp, err := uc.llm.GenerateContent(ctx, req)
	if err != nil {
		return parsedFields{}, "", fmt.Errorf("LLM request failed: %w", err)
	}

	uc.l.Debugf(ctx, "LLM raw response (%s): %s", resp.ProviderName, resp.Text)

	// Critical fix: sanitize before JSON unmarshal
	cleanedJSON := sanitizeJSONResponse(resp.Text)

	var fields parsedFields
	if err := json.Unmarshal([]byte(cleanedJSON), &fields); err != nil {
		uc.l.Errorf(ctx, "Failed to parse LLM response. Raw=%q Cleaned=%q", resp.Text, cleanedJSON)
		return parsedFields{}, resp.ProviderName, fmt.Errorf("failed to parse LLM JSON response: %w", err)
	}

	return fields, resp.ProviderName, nil
}

// sanitizeJSONResponse removes markdown code fences and leading/trailing prose
// that LLMs often add around JSON output.
func sanitizeJSONResponse(text string) string {
	// Remove ```json ... ``` or ``` ... ``` blocks
	re := regexp.MustCompile("(?s)```(?:json)?\\s*(.+?)\\s*```")
	matches := re.FindStringSubmatch(text)
	if len(matches) > 1 {
		return strings.TrimSpace(matches[1])
	}

	// No code block: find first [ or { and last ] or }
	start := strings.IndexAny(text, "[{")
	if start == -1 {
		return text
	}
	end := strings.LastIndexAny(text, "]}")
	if end == -1 || end < start {
		return text
	}
	return strings.TrimSpace(text[start : end+1])
}

// overlayExtraction writes the preprocessor's temporal fields over whatever
// the LLM produced. Deterministic regex output beats model output whenever
// the confidence threshold is met; the LLM keeps the fields the preprocessor
// does not cover (task, assignee, site, priority, repeat).
func overlayExtraction(fields *parsedFields, ext temporal.Extraction) {
	if ext.Confidence < temporal.ConfidenceUsableThreshold {
		return
	}
	if ext.Data.DueDate != "" {
		fields.DueDate = ext.Data.DueDate
	}
	if ext.Data.DueTime != "" {
		fields.DueTime = ext.Data.DueTime
	}
	if ext.Data.ReminderDate != "" {
		fields.ReminderDate = ext.Data.ReminderDate
	}
	if ext.Data.ReminderTime != "" {
		fields.ReminderTime = ext.Data.ReminderTime
	}
	if ext.Data.TimezoneContext != "" {
		fields.TimezoneContext = ext.Data.TimezoneContext
	}
}

// normalizePriority clamps the priority to the three values the sheet knows.
func normalizePriority(p string) string {
	switch strings.ToLower(strings.TrimSpace(p)) {
	case "low":
		return "low"
	case "high":
		return "high"
	default:
		return "medium"
	}
}
