package ambience

import (
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/faiface/beep"
	"github.com/faiface/beep/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drain(t *testing.T, s beep.Streamer, n int) [][2]float64 {
	t.Helper()
	buf := make([][2]float64, n)
	got := 0
	for got < n {
		k, ok := s.Stream(buf[got:])
		got += k
		if !ok {
			break
		}
	}
	return buf[:got]
}

func TestMeterSnapshotOrder(t *testing.T) {
	i := 0.0
	src := beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		for k := range samples {
			i++
			samples[k] = [2]float64{i, -i}
		}
		return len(samples), true
	})
	m := NewMeter(src, 4)
	assert.Empty(t, m.Snapshot(3))

	drain(t, m, 3)
	assert.Equal(t, [][2]float64{{2, -2}, {3, -3}}, m.Snapshot(2))

	drain(t, m, 3)
	assert.Equal(t, [][2]float64{{3, -3}, {4, -4}, {5, -5}, {6, -6}}, m.Snapshot(10))
}

func TestMeterLevel(t *testing.T) {
	silence := beep.Silence(-1)
	m := NewMeter(silence, 16)
	drain(t, m, 16)
	assert.Zero(t, m.Level(16))

	loud := NewMeter(beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		for k := range samples {
			samples[k] = [2]float64{1, 1}
		}
		return len(samples), true
	}), 16)
	drain(t, loud, 16)
	assert.Equal(t, 1.0, loud.Level(16))
	assert.InDelta(t, 0.4, loud.Smoothed(16), 1e-12)
	assert.InDelta(t, 0.64, loud.Smoothed(16), 1e-12)
}

func TestCrackleIsEndlessAndBounded(t *testing.T) {
	c := Crackle(DefaultSampleRate, rand.New(rand.NewSource(1)))
	s := drain(t, c, int(DefaultSampleRate))
	require.Len(t, s, int(DefaultSampleRate))
	nonZero := 0
	for _, v := range s {
		assert.LessOrEqual(t, v[0], 1.0)
		assert.GreaterOrEqual(t, v[0], -1.0)
		if v[0] != 0 {
			nonZero++
		}
	}
	assert.Positive(t, nonZero)
	assert.NoError(t, c.Err())
}

func TestTickDrains(t *testing.T) {
	sr := beep.SampleRate(1000)
	s := drain(t, Tick(sr, rand.New(rand.NewSource(2))), 500)
	assert.Len(t, s, sr.N(TickLength))
}

func TestOpenRejectsUnknownType(t *testing.T) {
	_, err := Open("song.ogg")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported")
}

func writeWav(t *testing.T, sr beep.SampleRate, frames int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tone.WAV")
	f, err := os.Create(path)
	require.NoError(t, err)
	format := beep.Format{SampleRate: sr, NumChannels: 2, Precision: 2}
	src := beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		n := min(len(samples), frames)
		for k := 0; k < n; k++ {
			samples[k] = [2]float64{0.5, 0.5}
		}
		frames -= n
		return n, n > 0
	})
	require.NoError(t, wav.Encode(f, src, format))
	require.NoError(t, f.Close())
	return path
}

func TestOpenWav(t *testing.T) {
	path := writeWav(t, 8000, 800)
	tr, err := Open(path)
	require.NoError(t, err)
	defer tr.Close()
	assert.Equal(t, beep.SampleRate(8000), tr.Format.SampleRate)
	assert.Equal(t, 800, tr.Len())
}

func TestPlayerMixesAndLoops(t *testing.T) {
	p := NewPlayer(8000)
	path := writeWav(t, 8000, 100)
	require.NoError(t, p.PlayFile(path))
	require.NotNil(t, p.Track())

	out := drain(t, p.Output(), 250)
	require.Len(t, out, 250, "looping track never drains the mixer")
	assert.InDelta(t, 0.5, out[249][0], 1e-3)
	assert.Positive(t, p.Meter().Level(250))

	p.SetVolume(0)
	out = drain(t, p.Output(), 10)
	assert.Zero(t, out[9][0])

	p.SetVolume(0.5)
	out = drain(t, p.Output(), 10)
	assert.InDelta(t, 0.25, out[9][0], 1e-3)

	assert.True(t, p.TogglePause())
	out = drain(t, p.Output(), 10)
	assert.Zero(t, out[9][0])
	assert.False(t, p.TogglePause())

	require.NoError(t, p.Close())
	assert.Nil(t, p.Track())
}

func TestPlayerTickJoinsMix(t *testing.T) {
	p := NewPlayer(1000)
	p.Play(Tick(1000, rand.New(rand.NewSource(3))))
	out := drain(t, p.Output(), 100)
	assert.Len(t, out, 100)
	assert.Positive(t, p.Meter().Level(30))
}
