// Package ambience plays the page's background sound: a synthesized fire
// crackle, click ticks and an optional looping soundtrack, all mixed into
// one speaker stream whose loudness is metered for the fire glow.
package ambience

import (
	"fmt"
	"log"
	"math"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/speaker"
)

// DefaultSampleRate is used for the mixer when no track dictates one.
const DefaultSampleRate beep.SampleRate = 44100

// Player owns the speaker and a mixer every sound is added to. The chain is
// mixer -> volume -> pause control -> meter -> speaker.
type Player struct {
	sr     beep.SampleRate
	mixer  *beep.Mixer
	volume *effects.Volume
	ctrl   *beep.Ctrl
	meter  *Meter

	mu      sync.Mutex
	started bool
	track   *Track
}

func NewPlayer(sr beep.SampleRate) *Player {
	if sr <= 0 {
		sr = DefaultSampleRate
	}
	mixer := &beep.Mixer{}
	volume := &effects.Volume{Streamer: mixer, Base: 2}
	ctrl := &beep.Ctrl{Streamer: volume}
	return &Player{
		sr:     sr,
		mixer:  mixer,
		volume: volume,
		ctrl:   ctrl,
		meter:  NewMeter(ctrl, RingSize),
	}
}

// Start opens the audio device and begins playback of the mixer.
func (p *Player) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.started {
		return nil
	}
	if err := speaker.Init(p.sr, p.sr.N(time.Second/20)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(p.meter)
	p.started = true
	log.Printf("ambience: speaker started at %d Hz", p.sr)
	return nil
}

// Play adds s to the mix. It runs until s is drained.
func (p *Player) Play(s beep.Streamer) {
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}

// PlayFile decodes path and loops it in place of the previous soundtrack.
func (p *Player) PlayFile(path string) error {
	t, err := Open(path)
	if err != nil {
		return err
	}
	var s beep.Streamer = beep.Loop(-1, t)
	if t.Format.SampleRate != p.sr {
		s = beep.Resample(4, t.Format.SampleRate, p.sr, s)
	}

	p.mu.Lock()
	prev := p.track
	p.track = t
	p.mu.Unlock()

	speaker.Lock()
	if prev != nil {
		p.mixer.Clear()
	}
	p.mixer.Add(s)
	speaker.Unlock()

	if prev != nil {
		_ = prev.Close()
	}
	log.Printf("ambience: playing %s (%d Hz)", path, t.Format.SampleRate)
	return nil
}

// SetVolume sets the output gain from a level in [0, 1]. Zero mutes.
func (p *Player) SetVolume(level float64) {
	speaker.Lock()
	defer speaker.Unlock()
	if level <= 0 {
		p.volume.Silent = true
		return
	}
	p.volume.Silent = false
	p.volume.Volume = math.Log2(math.Min(level, 1))
}

// TogglePause pauses or resumes the whole mix and reports the new state.
func (p *Player) TogglePause() bool {
	speaker.Lock()
	defer speaker.Unlock()
	p.ctrl.Paused = !p.ctrl.Paused
	return p.ctrl.Paused
}

func (p *Player) Paused() bool {
	speaker.Lock()
	defer speaker.Unlock()
	return p.ctrl.Paused
}

// Track returns the current soundtrack, if any.
func (p *Player) Track() *Track {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.track
}

// Output is the metered stream the speaker consumes.
func (p *Player) Output() beep.Streamer { return p.meter }

func (p *Player) Meter() *Meter { return p.meter }

func (p *Player) SampleRate() beep.SampleRate { return p.sr }

// Close silences the mix and releases the soundtrack.
func (p *Player) Close() error {
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()

	p.mu.Lock()
	t := p.track
	p.track = nil
	p.mu.Unlock()
	if t != nil {
		return t.Close()
	}
	return nil
}
