package playback

import (
	"math"
	"time"

	"github.com/pable/go-cs-replay/internal/model"
	"github.com/pable/go-cs-replay/internal/radar"
)

// State is the playback state machine.
type State int

const (
	Stopped State = iota
	Playing
	Paused
)

func (s State) String() string {
	switch s {
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	default:
		return "stopped"
	}
}

// RenderPlayer is one dot in the render stream, already in canvas pixels.
type RenderPlayer struct {
	SteamID   string  `json:"player_id"`
	Name      string  `json:"name"`
	ScreenX   float64 `json:"screen_x"`
	ScreenY   float64 `json:"screen_y"`
	ViewAngle float64 `json:"view_angle"`
	Health    int     `json:"health"`
	Team      string  `json:"team"`
	Alive     bool    `json:"alive"`
}

// RenderFrame is one emission of the playback stream.
type RenderFrame struct {
	Tick    int            `json:"tick"`
	Time    float64        `json:"time"`
	State   string         `json:"state"`
	Players []RenderPlayer `json:"players"`
}

// Interpolator produces a continuous render stream from discrete frames. It
// is single-threaded and cooperative: the host (a render timer, an event
// loop, a test harness) drives it by calling Advance with the elapsed time.
type Interpolator struct {
	frames    []Frame
	mapper    *radar.Mapper
	sampleFPS float64
	speed     float64

	state    State
	index    int
	fraction float64
}

// NewInterpolator builds an interpolator over the given frames. sampleFPS is
// the rate the frames were sampled at; speed starts at 1.0.
func NewInterpolator(frames []Frame, mapper *radar.Mapper, sampleFPS float64) *Interpolator {
	if sampleFPS <= 0 {
		sampleFPS = 4
	}
	return &Interpolator{
		frames:    frames,
		mapper:    mapper,
		sampleFPS: sampleFPS,
		speed:     1.0,
		state:     Stopped,
	}
}

// Play starts or resumes playback. No-op without frames.
func (ip *Interpolator) Play() {
	if len(ip.frames) == 0 {
		return
	}
	ip.state = Playing
}

// Pause freezes playback; position and fraction are kept.
func (ip *Interpolator) Pause() {
	if ip.state == Playing {
		ip.state = Paused
	}
}

// Stop resets to the first sample. Callable from any state, idempotent.
func (ip *Interpolator) Stop() {
	ip.state = Stopped
	ip.index = 0
	ip.fraction = 0
}

// SetSpeed sets the playback speed multiplier. Non-positive values reset to 1.
func (ip *Interpolator) SetSpeed(speed float64) {
	if speed <= 0 {
		speed = 1.0
	}
	ip.speed = speed
}

// Seek jumps to a fraction of the stream in [0,1], resetting interpolation.
func (ip *Interpolator) Seek(progress float64) {
	if len(ip.frames) == 0 {
		return
	}
	progress = math.Max(0, math.Min(1, progress))
	ip.index = int(progress * float64(len(ip.frames)-1))
	ip.fraction = 0
}

func (ip *Interpolator) State() State { return ip.state }

// Time is the emitted global playback time in seconds of sampled stream.
func (ip *Interpolator) Time() float64 {
	return (float64(ip.index) + ip.fraction) / ip.sampleFPS
}

// Progress is the stream position in [0,1].
func (ip *Interpolator) Progress() float64 {
	if len(ip.frames) <= 1 {
		return 0
	}
	return (float64(ip.index) + ip.fraction) / float64(len(ip.frames)-1)
}

// Advance moves playback forward by dt of host time and returns the frame to
// render. While not Playing the current frame is returned unchanged, so the
// host can keep painting on every tick regardless of state. Reaching the
// last sample transitions to Paused, keeping the final frame on screen.
func (ip *Interpolator) Advance(dt time.Duration) RenderFrame {
	if ip.state == Playing && len(ip.frames) > 0 {
		ip.fraction += dt.Seconds() * ip.sampleFPS * ip.speed
		for ip.fraction >= 1.0 {
			if ip.index >= len(ip.frames)-1 {
				ip.fraction = 0
				ip.state = Paused
				break
			}
			ip.fraction -= 1.0
			ip.index++
		}
		if ip.index >= len(ip.frames)-1 && ip.state == Playing {
			// Landed exactly on the final sample: end of stream.
			ip.fraction = 0
			ip.state = Paused
		}
	}
	return ip.render()
}

func (ip *Interpolator) render() RenderFrame {
	rf := RenderFrame{State: ip.state.String(), Time: ip.Time()}
	if len(ip.frames) == 0 {
		return rf
	}

	cur := &ip.frames[ip.index]
	rf.Tick = cur.Tick
	var next *Frame
	if ip.index+1 < len(ip.frames) {
		next = &ip.frames[ip.index+1]
	}

	t := ip.fraction
	for _, ps := range cur.Players {
		state := ps
		if next != nil && t > 0 {
			if np, ok := next.player(ps.SteamID); ok {
				state.Pos = model.Position{
					X:    lerp(ps.Pos.X, np.Pos.X, t),
					Y:    lerp(ps.Pos.Y, np.Pos.Y, t),
					Z:    lerp(ps.Pos.Z, np.Pos.Z, t),
					Tick: cur.Tick,
				}
				state.Yaw = lerpAngle(ps.Yaw, np.Yaw, t)
			}
			// Absent from the next sample: hold the last known state.
		}

		if ip.mapper != nil && !ip.mapper.Valid(state.Pos) {
			continue
		}
		rp := RenderPlayer{
			SteamID:   state.SteamID,
			Name:      state.Name,
			ViewAngle: state.Yaw,
			Health:    state.Health,
			Team:      state.Team.String(),
			Alive:     state.Alive,
		}
		if ip.mapper != nil {
			rp.ScreenX, rp.ScreenY = ip.mapper.Forward(state.Pos.X, state.Pos.Y)
		} else {
			rp.ScreenX, rp.ScreenY = state.Pos.X, state.Pos.Y
		}
		rf.Players = append(rf.Players, rp)
	}
	return rf
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// lerpAngle blends two angles in degrees along the shortest arc, avoiding
// wrap-around artifacts at the 0°/360° boundary.
func lerpAngle(a, b, t float64) float64 {
	delta := math.Mod(b-a, 360)
	if delta > 180 {
		delta -= 360
	} else if delta < -180 {
		delta += 360
	}
	return a + delta*t
}
