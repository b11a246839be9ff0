package audio

import "errors"

// SoundType identifies a sound effect
type SoundType int

const (
	SoundGoal     SoundType = iota // Crowd cheer after a goal
	SoundKickoff                   // Referee whistle
	SoundBounce                    // Ball against a penguin
	SoundAmbience                  // Crowd murmur, looped during a match
	soundTypeCount
)

func (s SoundType) String() string {
	switch s {
	case SoundGoal:
		return "goal"
	case SoundKickoff:
		return "kickoff"
	case SoundBounce:
		return "bounce"
	case SoundAmbience:
		return "ambience"
	}
	return "unknown"
}

var ErrAudioUnavailable = errors.New("audio output unavailable")
