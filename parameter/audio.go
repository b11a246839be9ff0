package parameter

import "time"

// Audio engine
const (
	AudioSampleRate = 48000
	AudioBufferSize = 100 * time.Millisecond
)

// Effect durations
const (
	GoalSoundDuration    = 3 * time.Second
	GoalSoundFadeOut     = 3 * time.Second
	KickoffSoundDuration = 450 * time.Millisecond
	KickoffSoundAttack   = 20 * time.Millisecond
	KickoffSoundRelease  = 120 * time.Millisecond
	BounceSoundDuration  = 80 * time.Millisecond
	BounceSoundAttack    = 2 * time.Millisecond
	BounceSoundRelease   = 60 * time.Millisecond
)

// Effect volumes, 0.0-1.0
const (
	MasterVolume   = 0.6
	GoalVolume     = 0.8
	KickoffVolume  = 0.5
	BounceVolume   = 0.4
	AmbienceVolume = 0.15
)
