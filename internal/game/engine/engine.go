package engine

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/jakecoffman/cp"
	"go.uber.org/zap"

	"github.com/cmoritz/blackwood/internal/config"
	"github.com/cmoritz/blackwood/internal/game/player"
	"github.com/cmoritz/blackwood/internal/game/tilemap"
)

// Input is the held-intent snapshot for one tick. Opposite directions cancel.
type Input struct {
	Up, Down, Left, Right bool
	// Sprint scales speed while stamina lasts.
	Sprint bool
	// Confirm accepts a shown transition prompt.
	Confirm bool
}

// MapLoader resolves a room's tile map by display name. Rooms load on first
// visit and stay resident.
type MapLoader func(roomName string) (*tilemap.Map, error)

// TransitionState is the transition engine's state machine.
type TransitionState int

// Transition states.
const (
	// Idle means no exit interaction is in progress.
	Idle TransitionState = iota
	// PromptShown means the player overlaps a confirmable prompt zone.
	PromptShown
	// Transitioning means a room change is in progress and movement input
	// is discarded.
	Transitioning
)

// maxPlacementAttempts bounds the entrance placement retry-nudge.
const maxPlacementAttempts = 8

// diagonalScale normalizes diagonal movement magnitude.
var diagonalScale = 1 / math.Sqrt2

// Engine integrates player movement, resolves collisions, and runs room
// transitions. All mutation happens on the single update pass; only
// RunNextTick may be called from other goroutines.
type Engine struct {
	cfg    config.GameConfig
	log    *zap.Logger
	player *player.Player
	loader MapLoader

	current  *RoomGeometry
	resident map[string]*RoomGeometry

	state         TransitionState
	prompt        tilemap.Object
	sinceLastMove time.Duration
	reEnableIn    time.Duration

	// onRoomEntered fires after the player is placed in a new room.
	onRoomEntered func(roomName string)

	mu       sync.Mutex
	nextTick []func()
}

// New creates an Engine for the given player, starting in startRoom.
//
// Precondition: loader must resolve startRoom.
// Postcondition: the player is placed at the start room's spawn point, or an
// error is returned when the map cannot load.
func New(cfg config.GameConfig, log *zap.Logger, p *player.Player, loader MapLoader, startRoom string) (*Engine, error) {
	e := &Engine{
		cfg:           cfg,
		log:           log,
		player:        p,
		loader:        loader,
		resident:      make(map[string]*RoomGeometry),
		sinceLastMove: cfg.TransitionCooldown,
	}
	geom, err := e.room(startRoom)
	if err != nil {
		return nil, err
	}
	e.current = geom
	p.SetPosition(geom.SpawnPoint())
	p.SetRoomID(startRoom)
	return e, nil
}

// OnRoomEntered registers the callback fired after every room change.
func (e *Engine) OnRoomEntered(fn func(roomName string)) { e.onRoomEntered = fn }

// State returns the transition state.
func (e *Engine) State() TransitionState { return e.state }

// Prompt returns the active transition prompt zone while state is
// PromptShown.
func (e *Engine) Prompt() (tilemap.Object, bool) {
	return e.prompt, e.state == PromptShown
}

// CurrentRoom returns the resident geometry the player occupies.
func (e *Engine) CurrentRoom() *RoomGeometry { return e.current }

// RunNextTick schedules fn to run at the start of the next update pass.
// Safe to call from any goroutine; fn itself runs on the update thread.
func (e *Engine) RunNextTick(fn func()) {
	e.mu.Lock()
	e.nextTick = append(e.nextTick, fn)
	e.mu.Unlock()
}

// Update advances the engine by dt. It is synchronous and never blocks on
// I/O beyond a first-visit map load triggered by a transition.
func (e *Engine) Update(dt time.Duration, in Input) {
	e.drainNextTick()

	e.sinceLastMove += dt

	if e.state == Transitioning {
		e.reEnableIn -= dt
		if e.reEnableIn <= 0 {
			e.player.SetTransitioning(false)
			e.player.SetMovementEnabled(true)
			e.state = Idle
		}
		return
	}

	e.integrate(dt, in)
	e.checkTransitions(in)
}

func (e *Engine) drainNextTick() {
	e.mu.Lock()
	queued := e.nextTick
	e.nextTick = nil
	e.mu.Unlock()
	for _, fn := range queued {
		fn()
	}
}

// integrate applies one tick of movement: intent, sprint, diagonal
// normalization, axis-independent collision, and the final bounds clamp.
func (e *Engine) integrate(dt time.Duration, in Input) {
	p := e.player
	seconds := dt.Seconds()

	if p.Transitioning() || !p.MovementEnabled() {
		p.SetSpeed(cp.Vector{})
		e.regenStamina(seconds)
		return
	}

	dx, dy := intent(in)

	sprinting := in.Sprint && p.Stamina() > 0 && (dx != 0 || dy != 0)
	p.SetSprinting(sprinting)
	speed := e.cfg.BaseSpeed
	if sprinting {
		speed *= e.cfg.SprintMultiplier
		p.SetStamina(p.Stamina() - e.cfg.StaminaDrainPerSecond*seconds)
	} else {
		e.regenStamina(seconds)
	}

	vx := dx * speed
	vy := dy * speed
	if dx != 0 && dy != 0 {
		vx *= diagonalScale
		vy *= diagonalScale
	}

	pos := p.Position()
	half := e.cfg.PlayerHalfExtent

	// X axis first, then Y against the resolved X: diagonal contact slides
	// along walls instead of stopping dead.
	if vx != 0 {
		candidate := cp.Vector{X: pos.X + vx*seconds, Y: pos.Y}
		if e.current.blocked(candidate, half) {
			vx = 0
		} else {
			pos.X = candidate.X
		}
	}
	if vy != 0 {
		candidate := cp.Vector{X: pos.X, Y: pos.Y + vy*seconds}
		if e.current.blocked(candidate, half) {
			vy = 0
		} else {
			pos.Y = candidate.Y
		}
	}

	pos = clampToBounds(pos, e.current.Bounds(), half)
	p.SetPosition(pos)
	p.SetSpeed(cp.Vector{X: vx, Y: vy})
}

// intent converts held directions into a unit intent per axis, with opposite
// pairs cancelling.
func intent(in Input) (dx, dy float64) {
	if in.Right {
		dx++
	}
	if in.Left {
		dx--
	}
	if in.Down {
		dy++
	}
	if in.Up {
		dy--
	}
	return dx, dy
}

func (e *Engine) regenStamina(seconds float64) {
	p := e.player
	p.SetSprinting(false)
	p.SetStamina(p.Stamina() + e.cfg.StaminaRegenPerSecond*seconds)
}

// room returns resident geometry for roomName, loading the map on first
// visit.
func (e *Engine) room(roomName string) (*RoomGeometry, error) {
	if geom, ok := e.resident[roomName]; ok {
		return geom, nil
	}
	m, err := e.loader(roomName)
	if err != nil {
		return nil, fmt.Errorf("loading room %q: %w", roomName, err)
	}
	geom := NewRoomGeometry(roomName, m)
	e.resident[roomName] = geom
	return geom, nil
}
