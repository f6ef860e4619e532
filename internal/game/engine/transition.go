package engine

import (
	"math"

	"github.com/jakecoffman/cp"
	"go.uber.org/zap"

	"github.com/cmoritz/blackwood/internal/game/tilemap"
)

// checkTransitions drives the Idle -> PromptShown -> Transitioning machine.
// No check fires within the cooldown window of the previous transition, so a
// freshly placed player standing on the destination's exit geometry cannot
// oscillate back.
func (e *Engine) checkTransitions(in Input) {
	if e.sinceLastMove < e.cfg.TransitionCooldown {
		return
	}

	box := playerBox(e.player.Position(), e.cfg.PlayerHalfExtent)

	// Hard exit overlap transitions immediately.
	for _, exit := range e.current.Exits() {
		if box.Intersects(exit.Zone) {
			e.startTransition(exit.RoomName)
			return
		}
	}

	// Prompt zones only show a confirmable prompt; they never move the
	// player on their own.
	for _, prompt := range e.current.prompts {
		if box.Intersects(prompt.Rect()) {
			e.prompt = prompt
			if e.state != PromptShown {
				e.state = PromptShown
			}
			if in.Confirm {
				if exit, ok := e.nearestExit(prompt); ok {
					e.startTransition(exit.RoomName)
				}
			}
			return
		}
	}

	if e.state == PromptShown {
		e.state = Idle
	}
}

// nearestExit resolves which exit a prompt zone fronts: the exit zone whose
// center is closest to the prompt's.
func (e *Engine) nearestExit(prompt tilemap.Object) (tilemap.Exit, bool) {
	exits := e.current.Exits()
	if len(exits) == 0 {
		return tilemap.Exit{}, false
	}
	best := exits[0]
	bestDist := prompt.Center().DistanceSq(best.Zone.Center())
	for _, exit := range exits[1:] {
		if d := prompt.Center().DistanceSq(exit.Zone.Center()); d < bestDist {
			best, bestDist = exit, d
		}
	}
	return best, true
}

// startTransition moves the player into the named room: movement is disabled
// for the whole window, the destination loads if not resident, and the
// entrance position comes from the matching anchor.
func (e *Engine) startTransition(destName string) {
	source := e.current.Name

	e.player.SetMovementEnabled(false)
	e.player.SetTransitioning(true)
	e.player.SetSpeed(cp.Vector{})

	dest, err := e.room(destName)
	if err != nil {
		// A missing map is fatal for that room: stay put and recover.
		e.log.Error("room transition aborted",
			zap.String("from", source),
			zap.String("to", destName),
			zap.Error(err))
		e.player.SetTransitioning(false)
		e.player.SetMovementEnabled(true)
		return
	}

	e.player.SetPosition(e.entrancePosition(dest, source))
	e.player.SetRoomID(destName)
	e.current = dest
	e.sinceLastMove = 0
	e.state = Transitioning
	e.reEnableIn = e.cfg.TransitionDelay

	e.log.Debug("room transition",
		zap.String("from", source),
		zap.String("to", destName))

	if e.onRoomEntered != nil {
		e.onRoomEntered(destName)
	}
}

// entrancePosition computes where the player appears in dest when arriving
// from source. The matching "ENTER FROM" anchor is offset perpendicular to
// its orientation, away from the room edge, and nudged off any colliding
// geometry.
func (e *Engine) entrancePosition(dest *RoomGeometry, source string) cp.Vector {
	anchor, ok := dest.EntranceFrom(source)
	if !ok {
		return dest.SpawnPoint()
	}

	half := e.cfg.PlayerHalfExtent
	center := anchor.Center()
	margin := half + 2

	var step cp.Vector
	if anchor.Horizontal() {
		// Horizontal anchor: enter above or below it, toward room center.
		offset := anchor.Height/2 + margin
		step = cp.Vector{Y: math.Copysign(offset, dest.Bounds().Center().Y-center.Y)}
	} else {
		offset := anchor.Width/2 + margin
		step = cp.Vector{X: math.Copysign(offset, dest.Bounds().Center().X-center.X)}
	}

	pos := center.Add(step)
	for attempt := 0; attempt < maxPlacementAttempts && dest.blocked(pos, half); attempt++ {
		pos = pos.Add(step)
	}
	return clampToBounds(pos, dest.Bounds(), half)
}

// RestorePosition places the player in roomName at a saved position,
// bypassing anchor computation entirely.
//
// Postcondition: returns an error and leaves the engine unchanged when the
// room's map cannot load.
func (e *Engine) RestorePosition(roomName string, pos cp.Vector) error {
	geom, err := e.room(roomName)
	if err != nil {
		return err
	}
	e.current = geom
	e.player.SetPosition(pos)
	e.player.SetRoomID(roomName)
	e.state = Idle
	e.sinceLastMove = 0
	e.player.SetTransitioning(false)
	e.player.SetMovementEnabled(true)
	return nil
}
