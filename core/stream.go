package core

// Citation is a single grounding metadata record attached to generated
// text. Citations from multiple chunks are concatenated in arrival order
// and never deduplicated or reordered.
type Citation struct {
	Title string `json:"title"`
	URI   string `json:"uri"`
}

// StreamChunk is an incremental unit of generated output delivered to a
// Sink. Exactly one of Text or Status is usually set: Text carries
// user-visible generated text, Status carries an out-of-band progress note
// (retry waits, research progress, image generation start). Citations ride
// alongside the text chunk that produced them.
type StreamChunk struct {
	Text      string     `json:"text,omitempty"`
	Status    string     `json:"status,omitempty"`
	Citations []Citation `json:"citations,omitempty"`
}

// Sink consumes stream chunks as they are produced. It is invoked
// synchronously between chunk reads and may fire many times per second, so
// implementations must not block. A nil Sink is valid and discards chunks.
type Sink func(StreamChunk)

// Emit invokes the sink if it is non-nil.
func (s Sink) Emit(chunk StreamChunk) {
	if s != nil {
		s(chunk)
	}
}
