package domain

// TimerStatus tags a persisted timer snapshot.
type TimerStatus string

// StatusRunning is the only status ever written to the snapshot slot; a
// stopped timer is represented by clearing the slot.
const StatusRunning TimerStatus = "running"

// TimerSnapshot is the persisted state of an in-progress timer. It carries
// enough wall-clock information to rebuild elapsed time after a restart:
// SavedAtMS records when the snapshot was written, so the gap between then
// and the next load can be folded back into AccumulatedSeconds.
type TimerSnapshot struct {
	Status             TimerStatus `json:"status"`
	StartedAtMS        int64       `json:"started_at_ms"`
	AccumulatedSeconds int64       `json:"accumulated_seconds"`
	CompanyID          string      `json:"company_id"`
	Description        string      `json:"description"`
	SavedAtMS          int64       `json:"saved_at_ms"`
}
