package chat

import (
	"fmt"
	"strings"

	"humanlenk-be/pkg/completion"
)

// FileRef names a file the user attached to the current turn.
type FileRef struct {
	Name string
	Type string
}

// Assembler builds the prompt window sent to the completion provider
// for a single chat turn.
type Assembler struct {
	systemPrompt string
	contextLimit int
}

// NewAssembler creates an assembler with the given base system prompt and
// the maximum number of history messages kept in the window.
func NewAssembler(systemPrompt string, contextLimit int) *Assembler {
	return &Assembler{
		systemPrompt: systemPrompt,
		contextLimit: contextLimit,
	}
}

// Assemble turns the recently fetched history (newest first, as it comes
// from the repository) into the provider message list: system prompt,
// the last contextLimit history messages in chronological order, then the
// new user message.
func (a *Assembler) Assemble(recent []completion.Message, newMessage string, file *FileRef) []completion.Message {
	history := make([]completion.Message, len(recent))
	copy(history, recent)

	// newest-first to chronological
	for i, j := 0, len(history)-1; i < j; i, j = i+1, j-1 {
		history[i], history[j] = history[j], history[i]
	}

	if a.contextLimit > 0 && len(history) > a.contextLimit {
		history = history[len(history)-a.contextLimit:]
	}

	messages := make([]completion.Message, 0, len(history)+2)
	messages = append(messages, completion.Message{
		Role:    "system",
		Content: a.renderSystemPrompt(file),
	})

	for _, msg := range history {
		messages = append(messages, completion.Message{
			Role:    strings.ToLower(msg.Role),
			Content: msg.Content,
		})
	}

	messages = append(messages, completion.Message{
		Role:    "user",
		Content: newMessage,
	})

	return messages
}

func (a *Assembler) renderSystemPrompt(file *FileRef) string {
	if file == nil {
		return a.systemPrompt
	}
	return fmt.Sprintf("%s\nThe user has referenced a file: %s (%s)", a.systemPrompt, file.Name, file.Type)
}
