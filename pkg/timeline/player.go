package timeline

import (
	"math"

	"github.com/google/uuid"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/finnvoss/glowgraph/pkg/scene"
)

// =============================================================================
// Player
// =============================================================================

// Player advances started timelines against a stage. It is driven by the
// host render loop: one Advance call per frame. All state is mutated on that
// single logical thread; the player does no locking and must not be shared
// across goroutines without external ordering.
type Player struct {
	stage   *scene.Stage
	now     float64
	handles []*Handle
}

// NewPlayer returns a player writing to the given stage.
func NewPlayer(stage *scene.Stage) *Player {
	return &Player{stage: stage}
}

// Now returns the player clock in seconds.
func (p *Player) Now() float64 { return p.now }

// Active returns the number of live handles.
func (p *Player) Active() int { return len(p.handles) }

// Start anchors a timeline at the current clock and returns its handle.
func (p *Player) Start(t *Timeline) *Handle {
	h := &Handle{
		ID:     uuid.New(),
		player: p,
		start:  p.now,
		tracks: make([]track, len(t.instrs)),
	}
	for i, in := range t.instrs {
		h.tracks[i] = track{in: in}
	}
	p.handles = append(p.handles, h)
	return h
}

// Advance moves the clock forward by dt seconds and applies every due
// mutation, handles in start order and tracks in declared order. Equal
// offsets therefore resolve last-write-wins within a timeline.
func (p *Player) Advance(dt float64) {
	p.now += dt
	for _, h := range p.handles {
		h.advance(p.now, p.stage)
	}
}

// remove drops a handle from the live set.
func (p *Player) remove(h *Handle) {
	for i, cur := range p.handles {
		if cur == h {
			p.handles = append(p.handles[:i], p.handles[i+1:]...)
			return
		}
	}
}

// =============================================================================
// Handle
// =============================================================================

// Handle owns one started timeline's full set of mutations, including every
// spawned loop. At most one phase handle is live at a time in the controller;
// the handle exists so that cancellation is a single synchronous operation.
type Handle struct {
	ID        uuid.UUID
	player    *Player
	start     float64
	tracks    []track
	cancelled bool
}

// Cancel stops every instruction belonging to the handle, loops included,
// before returning. Attributes freeze at their last written value; no write
// from this handle can land after Cancel returns.
func (h *Handle) Cancel() {
	if h.cancelled {
		return
	}
	h.cancelled = true
	h.player.remove(h)
}

// Cancelled reports whether Cancel has been called.
func (h *Handle) Cancelled() bool { return h.cancelled }

// Loops returns how many infinite loop instructions the handle owns.
func (h *Handle) Loops() int {
	n := 0
	for i := range h.tracks {
		if h.tracks[i].in.Kind == KindLoop {
			n++
		}
	}
	return n
}

// =============================================================================
// Track Runtime
// =============================================================================

// track is the runtime state of one instruction.
type track struct {
	in       Instruction
	done     bool
	haveFrom bool
	fromNum  float64
	fromCol  colorful.Color
}

// advance applies one handle's due mutations at absolute clock time now.
func (h *Handle) advance(now float64, stage *scene.Stage) {
	local := now - h.start
	for i := range h.tracks {
		t := &h.tracks[i]
		if t.done {
			continue
		}
		lt := local - t.in.At
		if lt < 0 {
			continue
		}
		switch t.in.Kind {
		case KindSet:
			t.applySet(stage)
			t.done = true
		case KindTween:
			t.applyTween(stage, lt)
		case KindLoop:
			t.applyLoop(stage, lt)
		}
	}
}

func (t *track) applySet(stage *scene.Stage) {
	switch {
	case t.in.Color:
		stage.SetString(t.in.Target, t.in.Attr, t.in.Hex)
	case t.in.TextSet:
		stage.SetString(t.in.Target, t.in.Attr, t.in.Text)
	default:
		stage.SetNumber(t.in.Target, t.in.Attr, t.in.Num)
	}
}

func (t *track) applyTween(stage *scene.Stage, lt float64) {
	if !t.haveFrom {
		t.captureFrom(stage)
	}
	progress := 1.0
	if t.in.Duration > 0 {
		progress = lt / t.in.Duration
	}
	if progress >= 1 {
		// Land exactly on the target, then retire the track.
		if t.in.Color {
			stage.SetString(t.in.Target, t.in.Attr, t.in.Hex)
		} else {
			stage.SetNumber(t.in.Target, t.in.Attr, t.in.Num)
		}
		t.done = true
		return
	}
	v := Ease(t.in.Easing, progress)
	if t.in.Color {
		to, err := colorful.Hex(t.in.Hex)
		if err != nil {
			return
		}
		stage.SetString(t.in.Target, t.in.Attr, t.fromCol.BlendRgb(to, v).Hex())
		return
	}
	stage.SetNumber(t.in.Target, t.in.Attr, t.fromNum+(t.in.Num-t.fromNum)*v)
}

func (t *track) applyLoop(stage *scene.Stage, lt float64) {
	cycle := t.in.Duration
	if t.in.Yoyo {
		cycle *= 2
	}
	ph := math.Mod(lt, cycle) / t.in.Duration
	if t.in.Yoyo && ph > 1 {
		ph = 2 - ph
	}
	v := Ease(t.in.Easing, ph)
	stage.SetNumber(t.in.Target, t.in.Attr, t.in.From+(t.in.Num-t.in.From)*v)
}

// captureFrom samples the attribute's current value as the tween origin. A
// missing element or unparseable color degrades to a jump to the target.
func (t *track) captureFrom(stage *scene.Stage) {
	t.haveFrom = true
	if t.in.Color {
		cur, ok := stage.String(t.in.Target, t.in.Attr)
		if ok {
			if c, err := colorful.Hex(cur); err == nil {
				t.fromCol = c
				return
			}
		}
		if c, err := colorful.Hex(t.in.Hex); err == nil {
			t.fromCol = c
		}
		return
	}
	if v, ok := stage.Number(t.in.Target, t.in.Attr); ok {
		t.fromNum = v
		return
	}
	t.fromNum = t.in.Num
}
