package event

import "time"

// FrameCompleted is emitted after a frame's output phase and removals.
type FrameCompleted struct {
	Frame    uint64
	Updates  int // update steps run this frame
	Actors   int // active actors after removals
	Actions  int // active actions after removals
	Duration time.Duration
}

// SceneChanged is emitted when the director installs a new scene.
type SceneChanged struct {
	Frame   uint64
	Actors  int
	Actions int
}

// Stopped is emitted when direction ends.
type Stopped struct {
	Frames uint64
}
