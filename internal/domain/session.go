package domain

// Phase is the stage of a submit-to-result interaction
type Phase string

const (
	PhaseIdle        Phase = "idle"
	PhaseTranslating Phase = "translating"
	PhaseSucceeded   Phase = "succeeded"
	PhaseFailed      Phase = "failed"
)

// SessionState is the transient state of a translation session.
// Result and Record are set only in PhaseSucceeded, Err only in PhaseFailed.
type SessionState struct {
	Phase  Phase
	Result *TranslationResult
	Record *TranslationRecord
	Err    error
}

// IdleState returns the initial session state
func IdleState() SessionState {
	return SessionState{Phase: PhaseIdle}
}

// Message returns the user-facing error message of a failed state
func (s SessionState) Message() string {
	if s.Err == nil {
		return ""
	}
	return s.Err.Error()
}
