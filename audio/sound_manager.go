package audio

import (
	"fmt"
	"log"
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/tuzbolin/event"
	"github.com/lixenwraith/tuzbolin/parameter"
)

// SoundManager plays the game events through the speaker
// Every method is a no-op until Initialize succeeds
type SoundManager struct {
	mu          sync.Mutex
	cfg         *AudioConfig
	mixer       *beep.Mixer
	ambience    *beep.Ctrl
	initialized bool
	// offline managers mix without a speaker
	offline bool
	played  [soundTypeCount]uint64
}

func NewSoundManager(cfg *AudioConfig) *SoundManager {
	if cfg == nil {
		cfg = DefaultAudioConfig()
	}
	return &SoundManager{
		cfg:   cfg,
		mixer: &beep.Mixer{},
	}
}

// Initialize opens the speaker and starts the mixer
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}
	if !sm.cfg.Enabled {
		return fmt.Errorf("%w: disabled", ErrAudioUnavailable)
	}

	rate := beep.SampleRate(sm.cfg.SampleRate)
	if err := speaker.Init(rate, rate.N(parameter.AudioBufferSize)); err != nil {
		return fmt.Errorf("%w: %v", ErrAudioUnavailable, err)
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// initOffline marks the manager ready without opening the speaker; the mixer is only streamed by the caller
func (sm *SoundManager) initOffline() {
	sm.mu.Lock()
	sm.initialized = true
	sm.offline = true
	sm.mu.Unlock()
}

// withMixer runs fn while the speaker is not pulling from the mixer
func (sm *SoundManager) withMixer(fn func(m *beep.Mixer)) {
	if !sm.offline {
		speaker.Lock()
		defer speaker.Unlock()
	}
	fn(sm.mixer)
}

// Cleanup stops every sound and detaches from the speaker
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	sm.withMixer(func(m *beep.Mixer) {
		if sm.ambience != nil {
			sm.ambience.Paused = true
		}
		m.Clear()
	})
	sm.ambience = nil
	if !sm.offline {
		speaker.Clear()
	}
	sm.initialized = false
}

// SoundForEvent maps a game event to its sound effect
func SoundForEvent(t event.EventType) (SoundType, bool) {
	switch t {
	case event.EventGoalScored:
		return SoundGoal, true
	case event.EventKickoff, event.EventMatchEnd:
		return SoundKickoff, true
	case event.EventBounce:
		return SoundBounce, true
	}
	return 0, false
}

// Play reacts to one drained game event
func (sm *SoundManager) Play(ev event.GameEvent) {
	switch ev.Type {
	case event.EventMatchStart:
		sm.StartAmbience()
	case event.EventMatchEnd:
		sm.StopAmbience()
	}
	if s, ok := SoundForEvent(ev.Type); ok {
		sm.PlaySound(s)
	}
}

// PlaySound mixes one instance of a sound effect
func (sm *SoundManager) PlaySound(s SoundType) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	streamer := GetSoundEffect(s, sm.cfg)
	if streamer == nil {
		return
	}
	sm.withMixer(func(m *beep.Mixer) { m.Add(streamer) })
	sm.played[s]++
}

// StartAmbience loops the crowd murmur; it does not restart a playing loop
func (sm *SoundManager) StartAmbience() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized || !sm.cfg.Ambient {
		return
	}
	if sm.ambience != nil {
		if sm.ambience.Paused {
			sm.withMixer(func(*beep.Mixer) { sm.ambience.Paused = false })
		}
		return
	}

	ctrl := &beep.Ctrl{Streamer: CreateAmbienceSound(sm.cfg)}
	sm.ambience = ctrl
	sm.withMixer(func(m *beep.Mixer) { m.Add(ctrl) })
	sm.played[SoundAmbience]++
	log.Printf("audio: ambience started")
}

func (sm *SoundManager) StopAmbience() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.ambience != nil {
		sm.withMixer(func(*beep.Mixer) { sm.ambience.Paused = true })
	}
}

// Active reports whether the speaker is open
func (sm *SoundManager) Active() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.initialized
}

// Played returns how many times a sound was started
func (sm *SoundManager) Played(s SoundType) uint64 {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.played[s]
}

// Playing is the number of streamers currently in the mix
func (sm *SoundManager) Playing() int {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if !sm.initialized {
		return 0
	}
	n := 0
	sm.withMixer(func(m *beep.Mixer) { n = m.Len() })
	return n
}
