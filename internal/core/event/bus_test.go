package event

import "testing"

func TestBusDoubleBuffering(t *testing.T) {
	b := NewBus()
	var got []ChunkGenerated
	Subscribe(b, func(ev ChunkGenerated) { got = append(got, ev) })

	Emit(b, ChunkGenerated{ChunkID: 1, Placed: 7})

	// Same tick: nothing delivered yet.
	b.DispatchAll()
	if len(got) != 0 {
		t.Fatalf("event delivered before buffer swap: %d", len(got))
	}

	// Next tick start.
	b.SwapBuffers()
	b.DispatchAll()
	if len(got) != 1 || got[0].ChunkID != 1 || got[0].Placed != 7 {
		t.Fatalf("got %+v, want one ChunkGenerated{1,7}", got)
	}

	// A second swap clears the delivered batch; no redelivery.
	b.SwapBuffers()
	b.DispatchAll()
	if len(got) != 1 {
		t.Fatalf("event redelivered: %d", len(got))
	}
}

func TestBusMultipleTypes(t *testing.T) {
	b := NewBus()
	chunks, reaps := 0, 0
	Subscribe(b, func(ChunkGenerated) { chunks++ })
	Subscribe(b, func(PlatformsReaped) { reaps++ })

	Emit(b, ChunkGenerated{ChunkID: 1})
	Emit(b, ChunkGenerated{ChunkID: 2})
	Emit(b, PlatformsReaped{Count: 3})

	b.SwapBuffers()
	b.DispatchAll()
	if chunks != 2 || reaps != 1 {
		t.Fatalf("chunks=%d reaps=%d, want 2/1", chunks, reaps)
	}
}
