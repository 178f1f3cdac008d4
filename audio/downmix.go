// SPDX-License-Identifier: EPL-2.0

package audio

import "fmt"

// Downmixer averages the channels of an interleaved Source into one channel.
// Mono sources pass through untouched.
type Downmixer struct {
	src Source
	tmp []float32
}

func NewDownmixer(src Source) *Downmixer {
	return &Downmixer{
		src: src,
		tmp: make([]float32, src.BufSize()*max(src.Channels(), 1)),
	}
}

func (d *Downmixer) SampleRate() int { return d.src.SampleRate() }
func (d *Downmixer) Channels() int   { return 1 }
func (d *Downmixer) BufSize() int    { return d.src.BufSize() }

func (d *Downmixer) Close() error {
	if err := d.src.Close(); err != nil {
		return fmt.Errorf("closing downmix source: %w", err)
	}

	return nil
}

// ReadSamples writes up to len(dst) mono frames.
func (d *Downmixer) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	channels := d.src.Channels()
	if channels <= 1 {
		return d.src.ReadSamples(dst)
	}

	need := len(dst) * channels
	if cap(d.tmp) < need {
		d.tmp = make([]float32, need)
	}
	d.tmp = d.tmp[:need]

	n, err := d.src.ReadSamples(d.tmp)
	if n == 0 {
		return 0, err
	}
	if n%channels != 0 {
		return 0, ErrInvalidDstSize
	}

	frames := n / channels
	scale := 1 / float32(channels)

	if channels == 2 {
		for f := range frames {
			dst[f] = (d.tmp[2*f] + d.tmp[2*f+1]) * 0.5
		}

		return frames, err
	}

	for f := range frames {
		var sum float32
		for _, s := range d.tmp[f*channels : (f+1)*channels] {
			sum += s
		}
		dst[f] = sum * scale
	}

	return frames, err
}
