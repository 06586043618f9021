package engine

// Renderer is the presentation surface
// Init runs once before the first frame; Clear and Present bracket every actor pass
// DrawSprite blits an actor's asset bytes at its context's transform
type Renderer interface {
	Init(cfg Config) error
	Clear()
	DrawSprite(sprite []byte, ctx ActorContext) error
	Present() error
}

// Input reports whether a quit signal arrived since the last poll
// PollQuit must not block; pending events are drained on every call
type Input interface {
	PollQuit() bool
}

// AssetLoader returns asset bytes memoized by id
type AssetLoader interface {
	LoadOrGet(id uint32, path string) ([]byte, error)
}
