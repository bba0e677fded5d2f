package domain

import (
	"time"
)

// ActivityType identifies what kind of user action an ActivityEvent records.
type ActivityType string

const (
	ActivityLogin               ActivityType = "login"
	ActivityDocumentUploaded    ActivityType = "document_uploaded"
	ActivityAudioUploaded       ActivityType = "audio_uploaded"
	ActivityTextSummarized      ActivityType = "text_summarized"
	ActivityQuestionAsked       ActivityType = "question_asked"
	ActivityAssignmentCompleted ActivityType = "assignment_completed"
	ActivityQuizCompleted       ActivityType = "quiz_completed"
	ActivityStudySessionStart   ActivityType = "study_session_start"
	ActivityStudySessionEnd     ActivityType = "study_session_end"
	ActivityGoalSet             ActivityType = "goal_set"
	ActivityGoalCompleted       ActivityType = "goal_completed"

	// ActivityLeaderboardUpdated is a synthetic trigger emitted after a points
	// award; its metadata carries the user's rank so leaderboard badges can be
	// evaluated without the rule set doing I/O.
	ActivityLeaderboardUpdated ActivityType = "leaderboard_updated"
)

// Metadata holds the activity-specific payload of an event. Keys are
// validated per activity type at the ingestion boundary; evaluation code
// trusts the shape.
type Metadata map[string]interface{}

// ActivityEvent is an immutable record of a user action. Events are append
// only: once written they are never mutated or deleted.
type ActivityEvent struct {
	ID        string
	UserID    string
	Type      ActivityType
	Metadata  Metadata
	Timestamp time.Time
}

// metadataKeys lists the required metadata keys per activity type. Types not
// present here accept an empty metadata set.
var metadataKeys = map[ActivityType][]string{
	ActivityDocumentUploaded:    {"filename"},
	ActivityAudioUploaded:       {"filename"},
	ActivityTextSummarized:      {"text_length"},
	ActivityQuestionAsked:       {"question"},
	ActivityAssignmentCompleted: {"assignment_id", "score"},
	ActivityQuizCompleted:       {"quiz_id", "score"},
	ActivityStudySessionEnd:     {"duration_minutes"},
	ActivityGoalSet:             {"goal_id"},
	ActivityGoalCompleted:       {"goal_id"},
	ActivityLeaderboardUpdated:  {"position", "total_users"},
}

var validActivityTypes = map[ActivityType]struct{}{
	ActivityLogin:               {},
	ActivityDocumentUploaded:    {},
	ActivityAudioUploaded:       {},
	ActivityTextSummarized:      {},
	ActivityQuestionAsked:       {},
	ActivityAssignmentCompleted: {},
	ActivityQuizCompleted:       {},
	ActivityStudySessionStart:   {},
	ActivityStudySessionEnd:     {},
	ActivityGoalSet:             {},
	ActivityGoalCompleted:       {},
	ActivityLeaderboardUpdated:  {},
}

// ParseActivityType validates a raw string against the known activity types.
func ParseActivityType(raw string) (ActivityType, error) {
	at := ActivityType(raw)
	if _, ok := validActivityTypes[at]; !ok {
		return "", NewInvalidActivityTypeError(raw)
	}
	return at, nil
}

// Valid reports whether the activity type is one of the known variants.
func (t ActivityType) Valid() bool {
	_, ok := validActivityTypes[t]
	return ok
}

// RequiredMetadataKeys returns the metadata keys an event of this type must
// carry. The returned slice must not be mutated.
func (t ActivityType) RequiredMetadataKeys() []string {
	return metadataKeys[t]
}

// Validate checks the event's type and metadata shape. Invalid events are
// rejected at ingestion and never reach the evaluation engine.
func (e *ActivityEvent) Validate() error {
	if e.UserID == "" {
		return NewInvalidInputError("user ID is required")
	}
	if !e.Type.Valid() {
		return NewInvalidActivityTypeError(string(e.Type))
	}
	for _, key := range e.Type.RequiredMetadataKeys() {
		if _, ok := e.Metadata[key]; !ok {
			return NewInvalidInputError("missing metadata key for " + string(e.Type) + ": " + key)
		}
	}
	return nil
}

// IsStreakActivity reports whether the activity counts towards the study
// streak family.
func IsStreakActivity(t ActivityType) bool {
	switch t {
	case ActivityAssignmentCompleted, ActivityQuizCompleted, ActivityStudySessionEnd:
		return true
	}
	return false
}

// StudyStreakActivityTypes are the activity types that advance the study
// streak. Login advances its own family.
func StudyStreakActivityTypes() []ActivityType {
	return []ActivityType{
		ActivityAssignmentCompleted,
		ActivityQuizCompleted,
		ActivityStudySessionEnd,
	}
}
