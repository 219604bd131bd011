package constant

const (
	// ChatHistoryFetchLimit is how many recent messages are read from the
	// store per turn; ChatHistoryContextLimit is how many of those survive
	// into the prompt.
	ChatHistoryFetchLimit   = 10
	ChatHistoryContextLimit = 6

	ChatMessageMaxLength = 4000

	DefaultSessionTitle = "New Chat"

	// ChatFallbackReply is returned verbatim whenever the completion
	// provider fails or is not configured. Never surfaced as an error.
	ChatFallbackReply = "I'm sorry, but I'm not able to process your request right now. Please try again later."

	ChatSystemPromptV1 = `You are HumanLenk, a helpful AI assistant that can summarize, edit, and clarify content.
You can also help with file analysis when files are provided.
Be concise, helpful, and professional in your responses.`
)
