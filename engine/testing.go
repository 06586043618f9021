package engine

// HeadlessRenderer is a Renderer with no surface
// It counts frames and sprites so headless runs and tests can observe the loop
type HeadlessRenderer struct {
	Frames  int
	Clears  int
	Sprites int
}

// Init implements Renderer
func (r *HeadlessRenderer) Init(Config) error { return nil }

// Clear implements Renderer
func (r *HeadlessRenderer) Clear() { r.Clears++ }

// DrawSprite implements Renderer
func (r *HeadlessRenderer) DrawSprite([]byte, ActorContext) error {
	r.Sprites++
	return nil
}

// Present implements Renderer
func (r *HeadlessRenderer) Present() error {
	r.Frames++
	return nil
}

// QuitAfter is an Input that reports quit on poll number N and every poll after it
type QuitAfter struct {
	N     int
	polls int
}

// PollQuit implements Input
func (q *QuitAfter) PollQuit() bool {
	q.polls++
	return q.polls >= q.N
}
