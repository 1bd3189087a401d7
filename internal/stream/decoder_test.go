package stream

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func testDecoder() *Decoder {
	return NewDecoder(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// feed sends each chunk in order and then closes the source.
func feed(chunks ...[]byte) <-chan []byte {
	out := make(chan []byte)
	go func() {
		defer close(out)
		for _, c := range chunks {
			out <- c
		}
	}()
	return out
}

func collect(t *testing.T, events <-chan Event) []Event {
	t.Helper()
	var got []Event
	timeout := time.After(5 * time.Second)
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return got
			}
			got = append(got, ev)
		case <-timeout:
			t.Fatal("timed out waiting for decoder events")
		}
	}
}

func TestDecodeSplitFrameAcrossChunks(t *testing.T) {
	// A frame split mid-JSON across two reads decodes to exactly two
	// structured events, in order.
	events := testDecoder().Decode(context.Background(),
		feed([]byte(`{"a":1}`+"\n\n"+`{"b":2`), []byte("}\n\n")))

	want := []Event{
		{Kind: KindJSON, Data: map[string]any{"a": float64(1)}},
		{Kind: KindJSON, Data: map[string]any{"b": float64(2)}},
	}
	if diff := cmp.Diff(want, collect(t, events)); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeChunkBoundaryIndependence(t *testing.T) {
	input := []byte(`{"token":"hel"}` + "\n\n" + `not-json{` + "\n\n" + `{"token":"lo"}` + "\n\n")

	decode := func(size int) []Event {
		var chunks [][]byte
		for i := 0; i < len(input); i += size {
			end := i + size
			if end > len(input) {
				end = len(input)
			}
			chunks = append(chunks, input[i:end])
		}
		return collect(t, testDecoder().Decode(context.Background(), feed(chunks...)))
	}

	want := decode(len(input))
	for _, size := range []int{1, 2, 3, 7, 16} {
		if diff := cmp.Diff(want, decode(size)); diff != "" {
			t.Errorf("chunk size %d changed the event sequence (-want +got):\n%s", size, diff)
		}
	}
}

func TestDecodeMalformedFrameDegradesToText(t *testing.T) {
	events := collect(t, testDecoder().Decode(context.Background(),
		feed([]byte("not-json{\n\n"))))

	want := []Event{{Kind: KindText, Text: "not-json{"}}
	if diff := cmp.Diff(want, events); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeEmptyChunkIsKeepAlive(t *testing.T) {
	events := collect(t, testDecoder().Decode(context.Background(),
		feed([]byte{}, []byte("{\"a\":1}\n\n"))))

	want := []Event{
		{Kind: KindKeepAlive},
		{Kind: KindJSON, Data: map[string]any{"a": float64(1)}},
	}
	if diff := cmp.Diff(want, events); diff != "" {
		t.Errorf("keep-alive not distinguished from stream end (-want +got):\n%s", diff)
	}
}

func TestDecodeBackToBackDelimiters(t *testing.T) {
	events := collect(t, testDecoder().Decode(context.Background(),
		feed([]byte("a\n\n\n\nb\n\n"))))

	want := []Event{
		{Kind: KindText, Text: "a"},
		{Kind: KindText, Text: "b"},
	}
	if diff := cmp.Diff(want, events); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeDiscardsUndelimitedTail(t *testing.T) {
	events := collect(t, testDecoder().Decode(context.Background(),
		feed([]byte("{\"a\":1}\n\ntrailing without delimiter"))))

	want := []Event{{Kind: KindJSON, Data: map[string]any{"a": float64(1)}}}
	if diff := cmp.Diff(want, events); diff != "" {
		t.Errorf("undelimited tail was not discarded (-want +got):\n%s", diff)
	}
}

func TestDecodeCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	chunks := make(chan []byte) // never closed, never written

	events := testDecoder().Decode(ctx, chunks)
	cancel()

	select {
	case _, ok := <-events:
		if ok {
			t.Fatal("expected closed event channel after cancellation")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("decoder did not stop after cancellation")
	}
}
