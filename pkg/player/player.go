package player

import (
	"sync"
	"time"
)

const DefaultTickInterval = 250 * time.Millisecond

type Config struct {
	// StartTime is where the simulated clock begins. Zero value means the
	// timestamp of the first event, or wall-clock now for an empty log.
	StartTime time.Time

	// SpeedFactor is the multiplier applied to elapsed wall-clock time.
	// Zero freezes the simulated clock; negative values are clamped to
	// zero.
	SpeedFactor float64

	// TickInterval is the wall-clock cadence of periodic advancement.
	// Zero value means DefaultTickInterval.
	TickInterval time.Duration
}

// Player replays a fixed event log against a virtual clock decoupled from
// wall-clock time.
//
// While running, the simulated time at any instant is
//
//	simulatedTime + (wallNow - anchorWallTime) * speedFactor
//
// Every mutating operation (Play, Pause, SetSpeed, Seek, step) re-anchors
// this formula so speed changes are continuous and CurrentTime stays correct
// between ticks.
//
// Events up to the delivery cursor have been delivered exactly once, in
// timestamp order. A delivery session spans from a Play or Seek to the next
// Pause, Seek or exhaustion; within one session no event is delivered twice.
type Player struct {
	mutex sync.Mutex

	log *EventLog

	simulatedTime  time.Time // value at the anchor instant, or the frozen value when paused
	anchorWallTime time.Time
	speedFactor    float64
	running        bool

	cursor int

	tickInterval time.Duration
	stopTicker   chan struct{}

	subscribers []Subscriber

	wallClock func() time.Time
}

func NewPlayer(eventLog *EventLog, config Config) *Player {
	player := &Player{
		log:          eventLog,
		speedFactor:  config.SpeedFactor,
		tickInterval: config.TickInterval,
		wallClock:    time.Now,
	}

	if player.speedFactor < 0 {
		player.speedFactor = 0
	}
	if player.tickInterval == 0 {
		player.tickInterval = DefaultTickInterval
	}

	player.simulatedTime = config.StartTime
	if player.simulatedTime.IsZero() {
		if startTime, ok := eventLog.StartTime(); ok {
			player.simulatedTime = startTime
		} else {
			player.simulatedTime = player.wallClock()
		}
	}

	player.anchorWallTime = player.wallClock()

	return player
}

// Subscribe registers a consumer of the tick & event signals. Not safe to
// call once playback has started.
func (p *Player) Subscribe(subscriber Subscriber) {
	p.subscribers = append(p.subscribers, subscriber)
}

func (p *Player) Log() *EventLog {
	return p.log
}

// Play starts periodic advancement. Calling Play while already running is a
// no-op - it never resets the anchor or the simulated time.
func (p *Player) Play() {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if p.running {
		return
	}

	p.anchorWallTime = p.wallClock()
	p.running = true

	p.startTickerLocked()
}

// PlayAtSpeed applies the speed factor with SetSpeed's re-anchoring rule and
// then starts playback.
func (p *Player) PlayAtSpeed(factor float64) {
	p.SetSpeed(factor)
	p.Play()
}

// Pause freezes the simulated clock at its currently computed value.
// Idempotent. Once Pause returns no further signals are emitted.
func (p *Player) Pause() {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	p.pauseLocked()
}

// SetSpeed changes the speed factor without a discontinuity in simulated
// time - the current value is computed & frozen as the new anchor first.
func (p *Player) SetSpeed(factor float64) {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if factor < 0 {
		factor = 0
	}

	p.reanchorLocked()
	p.speedFactor = factor
}

// Seek jumps the simulated clock to the target time and relocates the
// delivery cursor to the first event at or after it. Nothing is delivered
// for skipped events. Seek starts a new delivery session: seeking backward
// re-exposes already delivered events as pending, and they are delivered
// again as the clock passes them going forward.
func (p *Player) Seek(target time.Time) {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	p.simulatedTime = target
	p.anchorWallTime = p.wallClock()
	p.cursor = p.log.IndexAtOrAfter(target)
}

// CurrentTime computes the simulated time. Pure - safe to call at any time,
// including while paused.
func (p *Player) CurrentTime() time.Time {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	return p.currentTimeLocked()
}

// AdvanceToNextEvent pauses playback, jumps the clock to the next pending
// event and delivers every event bearing exactly that timestamp. Returns
// false when the log is exhausted.
func (p *Player) AdvanceToNextEvent() bool {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	p.pauseLocked()

	if p.cursor >= p.log.Len() {
		return false
	}

	target := p.log.Event(p.cursor).Timestamp

	// The clock never moves backward, even if the pending event became due
	// between the last tick and the pause.
	if target.After(p.simulatedTime) {
		p.simulatedTime = target
	}
	p.anchorWallTime = p.wallClock()

	p.deliverDueLocked(target)

	return true
}

func (p *Player) Running() bool {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	return p.running
}

func (p *Player) Speed() float64 {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	return p.speedFactor
}

type State struct {
	SimulatedTime time.Time `groups:"basic"`
	SpeedFactor   float64   `groups:"basic"`
	Running       bool      `groups:"basic"`

	DeliveredEvents int  `groups:"basic"`
	TotalEvents     int  `groups:"basic"`
	Exhausted       bool `groups:"basic"`
}

func (p *Player) State() State {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	return State{
		SimulatedTime:   p.currentTimeLocked(),
		SpeedFactor:     p.speedFactor,
		Running:         p.running,
		DeliveredEvents: p.cursor,
		TotalEvents:     p.log.Len(),
		Exhausted:       p.cursor >= p.log.Len(),
	}
}

func (p *Player) currentTimeLocked() time.Time {
	if !p.running {
		return p.simulatedTime
	}

	elapsed := p.wallClock().Sub(p.anchorWallTime)

	return p.simulatedTime.Add(time.Duration(float64(elapsed) * p.speedFactor))
}

func (p *Player) reanchorLocked() {
	p.simulatedTime = p.currentTimeLocked()
	p.anchorWallTime = p.wallClock()
}

func (p *Player) pauseLocked() {
	if !p.running {
		return
	}

	p.reanchorLocked()
	p.running = false

	p.stopTickerLocked()
}

func (p *Player) startTickerLocked() {
	stop := make(chan struct{})
	p.stopTicker = stop

	go p.runTicker(stop)
}

func (p *Player) stopTickerLocked() {
	if p.stopTicker != nil {
		close(p.stopTicker)
		p.stopTicker = nil
	}
}

func (p *Player) runTicker(stop chan struct{}) {
	ticker := time.NewTicker(p.tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			p.tick()
		}
	}
}

// tick performs one round of periodic advancement: emit the tick signal,
// deliver every due event in order, and auto-pause once the log is
// exhausted.
func (p *Player) tick() {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if !p.running {
		return
	}

	simulatedTime := p.currentTimeLocked()

	for _, subscriber := range p.subscribers {
		subscriber.OnTick(simulatedTime)
	}

	p.deliverDueLocked(simulatedTime)

	if p.cursor >= p.log.Len() {
		p.simulatedTime = simulatedTime
		p.anchorWallTime = p.wallClock()
		p.running = false

		p.stopTickerLocked()
	}
}

func (p *Player) deliverDueLocked(simulatedTime time.Time) {
	end := p.log.IndexAfter(simulatedTime)

	for p.cursor < end {
		event := p.log.Event(p.cursor)
		p.cursor += 1

		for _, subscriber := range p.subscribers {
			subscriber.OnEvent(event)
		}
	}
}
