package game

import (
	"errors"
	"log"
	"math/rand"

	"github.com/faiface/beep"
	"github.com/ncruces/zenity"

	"github.com/iburimskiy/embers/internal/ambience"
	"github.com/iburimskiy/embers/internal/config"
)

// meterWindow is how many frames the fire glow's loudness is measured over.
const meterWindow = 2048

// startAudio opens the speaker and queues the configured sounds. Failure is
// returned so the caller can log it and carry on silently.
func (g *Game) startAudio(cfg config.AudioConfig) error {
	if g.player != nil {
		return nil
	}
	p := ambience.NewPlayer(beep.SampleRate(cfg.SampleRate))
	if err := p.Start(); err != nil {
		return err
	}
	p.SetVolume(cfg.Volume)
	if cfg.Crackle {
		p.Play(ambience.Crackle(p.SampleRate(), rand.New(rand.NewSource(g.seed))))
	}
	g.player = p
	if cfg.Soundtrack != "" {
		if err := p.PlayFile(cfg.Soundtrack); err != nil {
			return err
		}
	}
	return nil
}

// flicker is the campfire glow modulation: the smoothed loudness of what
// the speaker is playing, or zero while silent.
func (g *Game) flicker() float64 {
	if g.player == nil || g.player.Paused() {
		return 0
	}
	return g.player.Meter().Smoothed(meterWindow)
}

// tick plays the short click that accompanies a burst.
func (g *Game) tick(x, y float64) {
	if g.player == nil {
		return
	}
	g.player.Play(ambience.Tick(g.player.SampleRate(), g.rng))
}

func (g *Game) togglePause() {
	if g.player == nil {
		return
	}
	g.player.TogglePause()
}

// openSoundtrackDialog asks for a file and loops it under the crackle. The
// speaker is started on demand when audio was disabled in the config.
func (g *Game) openSoundtrackDialog() error {
	filename, err := zenity.SelectFile(
		zenity.Title("Open Soundtrack"),
		zenity.FileFilters{{
			Name:     "Audio",
			Patterns: []string{"*.wav", "*.mp3", "*.flac"},
		}},
	)
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return nil
		}
		return err
	}

	cfg := g.cfg.Audio
	cfg.Soundtrack = ""
	if err := g.startAudio(cfg); err != nil {
		return err
	}
	if err := g.player.PlayFile(filename); err != nil {
		return err
	}
	log.Printf("game: playing %s", filename)
	return nil
}
