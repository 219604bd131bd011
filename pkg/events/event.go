package events

import "time"

// Event type codes carried on the audit bus.
const (
	TypeUserRegistered  = "USER_REGISTERED"
	TypeUserLogin       = "USER_LOGIN"
	TypeFileUploaded    = "FILE_UPLOADED"
	TypeFileDeleted     = "FILE_DELETED"
	TypeSurveySubmitted = "SURVEY_SUBMITTED"
	TypeChatTurn        = "CHAT_TURN_COMPLETED"
	TypeAdminUserChange = "ADMIN_USER_CHANGED"
)

// Event is what publishers hand to the bus. Payload keys are free-form
// but stay snake_case to match the log details convention.
type Event interface {
	EventType() string
	Payload() map[string]interface{}
	Timestamp() time.Time
}

// BaseEvent is the literal event struct services construct inline.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string { return e.Type }

func (e BaseEvent) Payload() map[string]interface{} { return e.Data }

func (e BaseEvent) Timestamp() time.Time { return e.OccurredAt }
