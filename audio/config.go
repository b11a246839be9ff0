package audio

import "github.com/lixenwraith/tuzbolin/parameter"

// AudioConfig holds the output format and the mix levels
type AudioConfig struct {
	Enabled       bool
	Ambient       bool
	MasterVolume  float64
	EffectVolumes [soundTypeCount]float64
	SampleRate    int
}

func DefaultAudioConfig() *AudioConfig {
	return &AudioConfig{
		Enabled:      true,
		Ambient:      true,
		MasterVolume: parameter.MasterVolume,
		EffectVolumes: [soundTypeCount]float64{
			SoundGoal:     parameter.GoalVolume,
			SoundKickoff:  parameter.KickoffVolume,
			SoundBounce:   parameter.BounceVolume,
			SoundAmbience: parameter.AmbienceVolume,
		},
		SampleRate: parameter.AudioSampleRate,
	}
}

// volume is the final gain of a sound type
func (c *AudioConfig) volume(s SoundType) float64 {
	return min(max(c.EffectVolumes[s]*c.MasterVolume, 0), 1)
}
