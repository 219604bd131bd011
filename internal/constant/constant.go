package constant

const (
	UserRoleUser  = "user"
	UserRoleAdmin = "admin"

	MessageRoleUser      = "user"
	MessageRoleAssistant = "assistant"
	MessageRoleSystem    = "system"

	FileStatusUploading  = "uploading"
	FileStatusProcessing = "processing"
	FileStatusCompleted  = "completed"
	FileStatusError      = "error"
)
