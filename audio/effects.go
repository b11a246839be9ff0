package audio

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/lixenwraith/tuzbolin/parameter"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator generates raw audio waves; a negative duration streams forever
type oscillator struct {
	freq     float64
	vibrato  float64 // frequency modulation depth, Hz
	phase    float64
	lfo      float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
	rng      *rand.Rand
	lowpass  float64 // one-pole smoothing of noise, 0 disables
	last     float64
}

func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return newOscillator(freq, duration, wave, rate)
}

func newOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) *oscillator {
	samples := -1
	if duration >= 0 {
		samples = rate.N(duration)
	}
	return &oscillator{
		freq:     freq,
		duration: samples,
		wave:     wave,
		rate:     rate,
		rng:      rand.New(rand.NewPCG(uint64(freq*1000), uint64(samples))),
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.duration >= 0 && o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveNoise:
			val = o.rng.Float64()*2 - 1
			if o.lowpass > 0 {
				o.last += o.lowpass * (val - o.last)
				val = o.last
			}
		}

		samples[i][0] = val
		samples[i][1] = val

		freq := o.freq
		if o.vibrato != 0 {
			o.lfo += 6 / float64(o.rate)
			freq += o.vibrato * math.Sin(2*math.Pi*o.lfo)
		}
		o.phase += freq / float64(o.rate)
		o.phase = o.phase - math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies attack/release shaping to a stream
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	sustainSamples int
	totalSamples   int
}

// NewEnvelope creates an attack/sustain/release envelope over duration
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := rate.N(attack)
	rel := rate.N(release)
	sus := max(total-att-rel, 0)

	return &envelope{
		streamer:       s,
		attackSamples:  att,
		releaseSamples: rel,
		sustainSamples: sus,
		totalSamples:   total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attackSamples && e.attackSamples > 0 {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		releaseStart := e.attackSamples + e.sustainSamples
		if e.position >= releaseStart && e.releaseSamples > 0 {
			remaining := e.totalSamples - e.position
			vol = max(float64(remaining)/float64(e.releaseSamples), 0)
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}

	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume wraps s in a linear gain; math.Log2(0) is -Inf so zero is silent
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// CreateGoalSound is a crowd roar under a rising major chord, fading out
func CreateGoalSound(cfg *AudioConfig) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)
	d := parameter.GoalSoundDuration

	roar := newOscillator(0, d, WaveNoise, rate)
	roar.lowpass = 0.08

	chord := beep.Mix(
		newVolume(NewOscillator(392.00, d, WaveSine, rate), 0.3), // G4
		newVolume(NewOscillator(493.88, d, WaveSine, rate), 0.2), // B4
		newVolume(NewOscillator(587.33, d, WaveSine, rate), 0.2), // D5
	)
	mixed := beep.Mix(newVolume(roar, 0.6), chord)
	shaped := NewEnvelope(mixed, d, 150*time.Millisecond, parameter.GoalSoundFadeOut, rate)

	return newVolume(shaped, cfg.volume(SoundGoal))
}

// CreateKickoffSound is a short referee whistle
func CreateKickoffSound(cfg *AudioConfig) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)
	d := parameter.KickoffSoundDuration

	whistle := newOscillator(2100, d, WaveSine, rate)
	whistle.vibrato = 90
	breath := newOscillator(0, d, WaveNoise, rate)
	breath.lowpass = 0.5

	mixed := beep.Mix(newVolume(whistle, 0.8), newVolume(breath, 0.1))
	shaped := NewEnvelope(mixed, d, parameter.KickoffSoundAttack, parameter.KickoffSoundRelease, rate)

	return newVolume(shaped, cfg.volume(SoundKickoff))
}

// CreateBounceSound is a dull knock
func CreateBounceSound(cfg *AudioConfig) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)
	d := parameter.BounceSoundDuration

	knock := NewOscillator(180, d, WaveSine, rate)
	shaped := NewEnvelope(knock, d, parameter.BounceSoundAttack, parameter.BounceSoundRelease, rate)

	return newVolume(shaped, cfg.volume(SoundBounce))
}

// CreateAmbienceSound is an endless low crowd murmur
func CreateAmbienceSound(cfg *AudioConfig) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)

	murmur := newOscillator(0, -1, WaveNoise, rate)
	murmur.lowpass = 0.02

	return newVolume(murmur, cfg.volume(SoundAmbience))
}

// GetSoundEffect returns the streamer for a sound type, nil if unknown
func GetSoundEffect(soundType SoundType, cfg *AudioConfig) beep.Streamer {
	switch soundType {
	case SoundGoal:
		return CreateGoalSound(cfg)
	case SoundKickoff:
		return CreateKickoffSound(cfg)
	case SoundBounce:
		return CreateBounceSound(cfg)
	case SoundAmbience:
		return CreateAmbienceSound(cfg)
	default:
		return nil
	}
}
