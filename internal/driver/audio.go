package driver

import (
	"sync/atomic"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
)

// AudioDevice plays a constant square-wave beep while the guest's sound
// timer is non-zero, replacing the reference driver's cgo audio callback
// with a beep.Streamer -- no cgo, no exported C symbol, same "tone on/off"
// contract the core's SndCtrl handler expects.
type AudioDevice struct {
	sampleRate beep.SampleRate
	on         int32
	phase      float64
	freq       float64
}

// NewAudioDevice opens the speaker at a fixed sample rate and starts the
// tone streamer immediately; SetTone controls whether it's audible.
func NewAudioDevice() (*AudioDevice, error) {
	const sampleRate = beep.SampleRate(22050)

	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/20)); err != nil {
		return nil, err
	}

	dev := &AudioDevice{sampleRate: sampleRate, freq: 440}
	speaker.Play(dev)
	return dev, nil
}

// SetTone is installed as the Context's SndCtrl handler.
func (d *AudioDevice) SetTone(_ interface{}, enable bool) {
	v := int32(0)
	if enable {
		v = 1
	}
	atomic.StoreInt32(&d.on, v)
}

// Stream implements beep.Streamer: a square wave when on, silence otherwise.
func (d *AudioDevice) Stream(samples [][2]float64) (int, bool) {
	on := atomic.LoadInt32(&d.on) != 0
	step := d.freq / float64(d.sampleRate)

	for i := range samples {
		v := 0.0
		if on {
			if d.phase < 0.5 {
				v = 0.2
			} else {
				v = -0.2
			}
		}
		samples[i][0], samples[i][1] = v, v

		d.phase += step
		if d.phase >= 1 {
			d.phase -= 1
		}
	}

	return len(samples), true
}

// Err implements beep.Streamer.
func (d *AudioDevice) Err() error { return nil }
