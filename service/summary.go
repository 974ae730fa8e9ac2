package service

import (
	"context"
	"encoding/json"
	"meeting-summarizer/constant"
	"meeting-summarizer/entities"
	"strings"
)

const SummaryInstruction = `You are an assistant that summarizes meeting transcripts.
Respond with a single JSON object containing exactly these keys:
  "key_points":   an array of strings with the most important points discussed,
  "action_items": an array of strings with concrete tasks, owners and deadlines when mentioned,
  "main_topics":  an array of strings naming the main topics of the meeting.
Do not include any other keys, prose or markdown.`

const (
	DefaultSummaryTemperature float32 = 0.3
	DefaultSummaryMaxTokens           = 1000
)

// SummaryGenerator sends a transcript to a language model and returns its raw reply.
type SummaryGenerator interface {
	Generate(ctx context.Context, transcript string) (string, error)
}

type rawSummary struct {
	KeyPoints   []string `json:"key_points"`
	ActionItems []string `json:"action_items"`
	MainTopics  []string `json:"main_topics"`
}

// ParseSummary never fails: categories that are missing, empty, blank-only or
// unparseable get a placeholder entry. Other categories are returned as the model
// wrote them.
func ParseSummary(raw string) entities.Summary {
	var parsed rawSummary
	_ = json.Unmarshal([]byte(stripCodeFence(raw)), &parsed)

	return entities.Summary{
		KeyPoints:   orPlaceholder(parsed.KeyPoints, constant.NoKeyPoints),
		ActionItems: orPlaceholder(parsed.ActionItems, constant.NoActionItems),
		MainTopics:  orPlaceholder(parsed.MainTopics, constant.NoMainTopics),
	}
}

func orPlaceholder(items []string, placeholder string) []string {
	for _, item := range items {
		if strings.TrimSpace(item) != "" {
			return items
		}
	}
	return []string{placeholder}
}

// Models occasionally wrap JSON in a markdown fence despite the instruction.
func stripCodeFence(raw string) string {
	raw = strings.TrimSpace(raw)
	if !strings.HasPrefix(raw, "```") {
		return raw
	}
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")
	return strings.TrimSpace(raw)
}
