package anim

import (
	"errors"
	"fmt"
	"sort"
)

// RepeatForever makes a clip loop until another clip is played.
const RepeatForever = -1

// TicksPerSecond is the fixed update rate clips are stepped at.
const TicksPerSecond = 60

var ErrInvalidClip = errors.New("anim: invalid clip")

// FrameRef names one frame of a texture atlas.
type FrameRef struct {
	Texture string
	Frame   string
}

// Clip is a named frame sequence. Repeat counts extra cycles after the first;
// RepeatForever loops.
type Clip struct {
	Key       string
	Frames    []FrameRef
	FrameRate float64
	Repeat    int
}

// TicksPerFrame converts the clip frame rate to update ticks, at least one.
func (c *Clip) TicksPerFrame() int {
	if c == nil || c.FrameRate <= 0 {
		return 1
	}
	ticks := int(float64(TicksPerSecond) / c.FrameRate)
	if ticks < 1 {
		ticks = 1
	}
	return ticks
}

// Library stores animation clips by key.
type Library struct {
	clips map[string]*Clip
}

// NewLibrary creates an empty library.
func NewLibrary() *Library {
	return &Library{clips: make(map[string]*Clip)}
}

// Create registers a clip. Registering a key again replaces the old clip.
func (l *Library) Create(clip Clip) error {
	if l == nil {
		return fmt.Errorf("%w: nil library", ErrInvalidClip)
	}
	if clip.Key == "" {
		return fmt.Errorf("%w: empty key", ErrInvalidClip)
	}
	if len(clip.Frames) == 0 {
		return fmt.Errorf("%w: %q has no frames", ErrInvalidClip, clip.Key)
	}
	if clip.FrameRate <= 0 {
		return fmt.Errorf("%w: %q frame rate %v", ErrInvalidClip, clip.Key, clip.FrameRate)
	}
	if clip.Repeat < RepeatForever {
		return fmt.Errorf("%w: %q repeat %d", ErrInvalidClip, clip.Key, clip.Repeat)
	}
	if l.clips == nil {
		l.clips = make(map[string]*Clip)
	}
	c := clip
	c.Frames = append([]FrameRef(nil), clip.Frames...)
	l.clips[clip.Key] = &c
	return nil
}

// Get returns a clip by key.
func (l *Library) Get(key string) (*Clip, bool) {
	if l == nil || key == "" {
		return nil, false
	}
	clip, ok := l.clips[key]
	return clip, ok
}

// Has reports whether key is registered.
func (l *Library) Has(key string) bool {
	_, ok := l.Get(key)
	return ok
}

// Len returns the number of registered clips.
func (l *Library) Len() int {
	if l == nil {
		return 0
	}
	return len(l.clips)
}

// Keys lists registered clip keys in sorted order.
func (l *Library) Keys() []string {
	if l == nil {
		return nil
	}
	keys := make([]string, 0, len(l.clips))
	for k := range l.clips {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
