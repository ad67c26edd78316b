// Package audio 用 beep 合成游戏音效
//
// 所有音效在运行时由振荡器生成，不依赖任何音频资源文件。
package audio

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/gonewx/invaders/pkg/events"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"go.uber.org/zap"
)

const sampleRate = beep.SampleRate(44100)

// SoundManager 实现 game.SoundPlayer
// 未初始化或初始化失败时 Play 是空操作，游戏照常运行
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	rng         *rand.Rand
	initialized bool
	logger      *zap.Logger
}

// NewSoundManager 创建音效管理器
// volume 为线性主音量，取值 [0, 1]
func NewSoundManager(volume float64, logger *zap.Logger) *SoundManager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SoundManager{
		mixer:  &beep.Mixer{},
		volume: volume,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
		logger: logger.Named("SoundManager"),
	}
}

// Initialize 打开音频设备并开始播放混音器
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return fmt.Errorf("failed to init speaker: %w", err)
	}
	speaker.Play(sm.mixer)
	sm.initialized = true
	sm.logger.Info("audio initialized", zap.Int("sampleRate", int(sampleRate)))
	return nil
}

// Close 停止所有正在播放的音效
func (sm *SoundManager) Close() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	sm.initialized = false
}

// Play 播放一个音效，不阻塞
func (sm *SoundManager) Play(id events.SoundID) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	s := sm.effect(id)
	if s == nil {
		sm.logger.Debug("unknown sound", zap.String("id", string(id)))
		return
	}
	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
}

// effect 生成音效对应的流，未知音效返回 nil
func (sm *SoundManager) effect(id events.SoundID) beep.Streamer {
	var s beep.Streamer
	switch id {
	case events.SoundShoot:
		s = tone(880, -2400, 90*time.Millisecond, WaveSquare, sampleRate, sm.rng)
	case events.SoundAlienShoot:
		s = tone(330, -900, 120*time.Millisecond, WaveSaw, sampleRate, sm.rng)
	case events.SoundHit:
		s = tone(0, 0, 60*time.Millisecond, WaveNoise, sampleRate, sm.rng)
	case events.SoundExplosion:
		s = beep.Mix(
			tone(0, 0, 350*time.Millisecond, WaveNoise, sampleRate, sm.rng),
			withVolume(tone(70, -60, 350*time.Millisecond, WaveSine, sampleRate, sm.rng), 0.6),
		)
	case events.SoundMothership:
		s = beep.Seq(
			tone(440, 0, 100*time.Millisecond, WaveSine, sampleRate, sm.rng),
			tone(660, 0, 100*time.Millisecond, WaveSine, sampleRate, sm.rng),
			tone(440, 0, 100*time.Millisecond, WaveSine, sampleRate, sm.rng),
		)
	case events.SoundGameOver:
		s = beep.Seq(
			tone(392, 0, 200*time.Millisecond, WaveSquare, sampleRate, sm.rng),
			tone(330, 0, 200*time.Millisecond, WaveSquare, sampleRate, sm.rng),
			tone(262, -80, 400*time.Millisecond, WaveSquare, sampleRate, sm.rng),
		)
	default:
		return nil
	}
	return withVolume(s, sm.volume*0.5)
}
