package interfaces

import "context"

// QueueInterface is the deferred batch mutation queue: toggles are coalesced
// per streamer within a debounce window and flushed in one network call.
type QueueInterface interface {
	Enqueue(streamerUuid string, isActive bool)
	PendingLen() int
	Flush(ctx context.Context)
	Stop()
}
