package service

// Broadcaster pushes live events to editor clients connected to a paper
type Broadcaster interface {
	BroadcastToPaper(paperID string, msgType string, payload interface{})
}
