// Package translator converts file content into the configured target
// language through a chat-completion backend.
package translator

import (
	"context"
	"fmt"

	"github.com/abadojack/whatlanggo"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"

	"github.com/enkerewpo/autodocs/internal/llm"
	"github.com/enkerewpo/autodocs/pkg/log"
)

// Translator is the capability seam for the translation backend.
// Production code talks to an OpenAI-compatible API; tests use a double.
type Translator interface {
	Translate(ctx context.Context, content string) (string, error)
}

type llmTranslator struct {
	client *llm.Client
	target language.Tag
}

// NewLLMTranslator creates a Translator backed by a chat-completion client.
func NewLLMTranslator(client *llm.Client, target language.Tag) Translator {
	return &llmTranslator{
		client: client,
		target: target,
	}
}

func (t *llmTranslator) Translate(ctx context.Context, content string) (string, error) {
	targetName := display.English.Languages().Name(t.target)

	// Detect the source language so the model is not left guessing on
	// short or mixed content. Detection is advisory only.
	info := whatlanggo.Detect(content)
	if info.IsReliable() {
		log.Debug("Detected source language: %s (confidence %.2f)", info.Lang.String(), info.Confidence)
	}

	query := t.buildPrompt(content, info, targetName)

	translated, err := t.client.SimpleChat(ctx, query, "")
	if err != nil {
		return "", fmt.Errorf("translation request failed: %w", err)
	}
	return translated, nil
}

func (t *llmTranslator) buildPrompt(content string, info whatlanggo.Info, targetName string) string {
	if info.IsReliable() {
		return fmt.Sprintf(
			"translate the content from %s to %s: please just reply with the translated content\n%s",
			info.Lang.String(), targetName, content)
	}
	return fmt.Sprintf(
		"translate the content to %s: please just reply with the translated content\n%s",
		targetName, content)
}
