package constant

const (
	// SessionEventsTopic is the in-process bus topic fanned out to
	// websocket clients and the audit stream.
	SessionEventsTopic = "cobrain.session.events"

	// Websocket frame types beyond the event types in pkg/events.
	FrameMessage = "message"
	FrameState   = "state"
)
