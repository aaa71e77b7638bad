package pathutil

import "sync"

const (
	// "/components/messages/<msg>/payload/oneOf/0" is six segments.
	defaultPointerCap = 8
	// Pointers into deeply nested payload schemas are dropped, not pooled.
	maxPointerCap = 64
)

// pointerPool recycles the builders used by the reference walks over a
// document, one builder per walk.
var pointerPool = sync.Pool{
	New: func() any {
		return &PointerBuilder{
			segments: make([]string, 0, defaultPointerCap),
		}
	},
}

// Get returns an empty PointerBuilder. Pair it with Put once the walk no
// longer needs the pointer; strings taken from String stay valid.
func Get() *PointerBuilder {
	p := pointerPool.Get().(*PointerBuilder)
	p.Reset()
	return p
}

// Put recycles p. Builders that grew past maxPointerCap segments are left
// to the garbage collector.
func Put(p *PointerBuilder) {
	if p == nil || cap(p.segments) > maxPointerCap {
		return
	}
	pointerPool.Put(p)
}
