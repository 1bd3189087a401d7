package stream

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
)

// FrameDelimiter terminates each frame on the wire: two consecutive
// newline bytes.
var FrameDelimiter = []byte("\n\n")

// eventBuffer bounds the event channel so a slow consumer applies
// backpressure to the producer instead of growing memory.
const eventBuffer = 10

// Kind discriminates decoded events.
type Kind string

const (
	// KindKeepAlive marks an empty network chunk. It is a liveness signal
	// and must not be mistaken for stream end.
	KindKeepAlive Kind = "keepalive"
	// KindJSON carries a structured frame in Data.
	KindJSON Kind = "json"
	// KindText carries a frame that failed structured decoding, verbatim.
	KindText Kind = "text"
)

// Event is one decoded unit of the response stream.
type Event struct {
	Kind Kind
	// Data holds the decoded JSON value for KindJSON events.
	Data any
	// Text holds the raw frame text for KindText events.
	Text string
}

// Decoder incrementally decodes a chunked response stream into events.
type Decoder struct {
	logger *slog.Logger
}

func NewDecoder(logger *slog.Logger) *Decoder {
	return &Decoder{logger: logger}
}

// Decode consumes chunks and returns an ordered event channel. The
// sequence is forward-only and non-restartable: each frame is decoded
// exactly once, in the order frames complete, independent of how the
// bytes were split across chunks.
//
// Frames are buffered across chunk boundaries until their terminating
// delimiter arrives. An empty chunk yields a keep-alive event. When the
// chunk source closes, the event channel closes; trailing bytes without a
// terminating delimiter are discarded, matching the upstream framing
// contract. Cancel ctx or close the chunk source to stop; abandoning the
// event channel alone stalls the producer at the buffer bound until one
// of those happens.
func (d *Decoder) Decode(ctx context.Context, chunks <-chan []byte) <-chan Event {
	events := make(chan Event, eventBuffer)

	go func() {
		defer close(events)

		var pending []byte
		for {
			select {
			case <-ctx.Done():
				return

			case chunk, ok := <-chunks:
				if !ok {
					// Source exhausted. Anything left in the buffer never
					// got its delimiter and is dropped.
					if len(pending) > 0 {
						d.logger.Debug("discarding undelimited trailing bytes",
							"count", len(pending),
						)
					}
					return
				}

				if len(chunk) == 0 {
					if !d.send(ctx, events, Event{Kind: KindKeepAlive}) {
						return
					}
					continue
				}

				pending = append(pending, chunk...)
				for {
					idx := bytes.Index(pending, FrameDelimiter)
					if idx < 0 {
						break
					}
					frame := pending[:idx]
					pending = pending[idx+len(FrameDelimiter):]
					if len(frame) == 0 {
						continue // back-to-back delimiters carry no data
					}
					if !d.send(ctx, events, decodeFrame(frame)) {
						return
					}
				}
			}
		}
	}()

	return events
}

// send delivers an event unless the context is cancelled first.
func (d *Decoder) send(ctx context.Context, events chan<- Event, ev Event) bool {
	select {
	case <-ctx.Done():
		return false
	case events <- ev:
		return true
	}
}

// decodeFrame attempts structured decoding and degrades to raw text.
// Garbled frames are expected under real network conditions and must not
// terminate an otherwise-healthy stream, so this never fails.
func decodeFrame(frame []byte) Event {
	var value any
	if err := json.Unmarshal(frame, &value); err != nil {
		return Event{Kind: KindText, Text: string(frame)}
	}
	return Event{Kind: KindJSON, Data: value}
}
