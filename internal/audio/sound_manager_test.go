package audio

import (
	"math/rand"
	"testing"
	"time"

	"github.com/gonewx/invaders/pkg/events"
	"github.com/gopxl/beep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// drain 读完整个流，返回样本数和峰值
func drain(s beep.Streamer) (int, float64) {
	buf := make([][2]float64, 512)
	total, peak := 0, 0.0
	for {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			if v := buf[i][0]; v > peak {
				peak = v
			} else if -v > peak {
				peak = -v
			}
		}
		total += n
		if !ok {
			return total, peak
		}
	}
}

func TestOscillatorLength(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for _, wave := range []Waveform{WaveSine, WaveSquare, WaveSaw, WaveNoise} {
		osc := NewOscillator(440, 0, 100*time.Millisecond, wave, sampleRate, rng)
		n, peak := drain(osc)
		assert.Equal(t, sampleRate.N(100*time.Millisecond), n)
		assert.LessOrEqual(t, peak, 1.0)
		assert.NoError(t, osc.Err())
	}
}

func TestEnvelopeFadesOut(t *testing.T) {
	d := 50 * time.Millisecond
	osc := NewOscillator(0, 0, d, WaveSquare, sampleRate, nil)
	env := NewEnvelope(osc, d, 10*time.Millisecond, 10*time.Millisecond, sampleRate)

	buf := make([][2]float64, sampleRate.N(d))
	n, _ := env.Stream(buf)
	require.Equal(t, len(buf), n)

	assert.Equal(t, 0.0, buf[0][0], "起音从 0 开始")
	assert.InDelta(t, 1.0, buf[n/2][0], 1e-9, "持续段满音量")
	assert.Less(t, buf[n-1][0], 0.01, "释音结束接近 0")
}

func TestEffectsForAllSounds(t *testing.T) {
	sm := NewSoundManager(1, nil)
	ids := []events.SoundID{
		events.SoundShoot,
		events.SoundAlienShoot,
		events.SoundHit,
		events.SoundExplosion,
		events.SoundMothership,
		events.SoundGameOver,
	}
	for _, id := range ids {
		t.Run(string(id), func(t *testing.T) {
			s := sm.effect(id)
			require.NotNil(t, s)
			n, _ := drain(s)
			assert.Greater(t, n, 0)
			assert.Less(t, n, sampleRate.N(2*time.Second), "音效是有限长度的")
		})
	}
	assert.Nil(t, sm.effect("unknown"))
}

func TestPlayBeforeInitializeIsNoop(t *testing.T) {
	sm := NewSoundManager(1, nil)
	assert.NotPanics(t, func() {
		sm.Play(events.SoundExplosion)
		sm.Close()
	})
	assert.Equal(t, 0, sm.mixer.Len())
}
