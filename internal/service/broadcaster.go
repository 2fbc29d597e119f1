package service

// Broadcaster pushes live events to clients watching an assessment.
// The WebSocket hub implements this.
type Broadcaster interface {
	BroadcastToWatchers(assessmentID string, msgType string, payload interface{})
}
