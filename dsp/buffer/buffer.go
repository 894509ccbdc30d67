package buffer

import (
	"errors"
	"fmt"
	"time"

	"github.com/cwbudde/algo-vecmath"
)

var (
	// ErrNoChannels is returned when a buffer would hold zero channels.
	ErrNoChannels = errors.New("buffer: at least one channel required")
	// ErrSampleRate is returned for non-positive sample rates.
	ErrSampleRate = errors.New("buffer: sample rate must be positive")
	// ErrRaggedChannels is returned when channel lengths differ.
	ErrRaggedChannels = errors.New("buffer: channels differ in length")
)

// Buffer holds channels of float64 samples, nominally in [-1, 1], at a
// shared sample rate in Hz.
type Buffer struct {
	channels   [][]float64
	sampleRate int
}

// New returns a zero-filled buffer with the given shape.
func New(channels, length, sampleRate int) (*Buffer, error) {
	if channels < 1 {
		return nil, ErrNoChannels
	}

	if length < 0 {
		length = 0
	}

	chans := make([][]float64, channels)
	for i := range chans {
		chans[i] = make([]float64, length)
	}

	return Wrap(sampleRate, chans...)
}

// FromChannels copies the given channels into a new buffer.
func FromChannels(sampleRate int, channels ...[]float64) (*Buffer, error) {
	chans := make([][]float64, len(channels))
	for i, ch := range channels {
		chans[i] = append([]float64(nil), ch...)
	}

	return Wrap(sampleRate, chans...)
}

// Mono copies samples into a one-channel buffer.
func Mono(sampleRate int, samples []float64) (*Buffer, error) {
	return FromChannels(sampleRate, samples)
}

// Wrap builds a buffer around channels without copying. The caller hands
// over ownership and must not modify the slices afterwards.
func Wrap(sampleRate int, channels ...[]float64) (*Buffer, error) {
	b := &Buffer{channels: channels, sampleRate: sampleRate}

	err := b.Validate()
	if err != nil {
		return nil, err
	}

	return b, nil
}

// Validate checks the buffer invariants.
func (b *Buffer) Validate() error {
	if b.sampleRate <= 0 {
		return fmt.Errorf("%w: %d", ErrSampleRate, b.sampleRate)
	}

	if len(b.channels) == 0 {
		return ErrNoChannels
	}

	n := len(b.channels[0])
	for i, ch := range b.channels[1:] {
		if len(ch) != n {
			return fmt.Errorf("%w: channel %d has %d samples, channel 0 has %d", ErrRaggedChannels, i+1, len(ch), n)
		}
	}

	return nil
}

// SampleRate returns the sample rate in Hz.
func (b *Buffer) SampleRate() int { return b.sampleRate }

// NumChannels returns the channel count.
func (b *Buffer) NumChannels() int { return len(b.channels) }

// Len returns the number of samples per channel.
func (b *Buffer) Len() int {
	if len(b.channels) == 0 {
		return 0
	}

	return len(b.channels[0])
}

// Duration returns the playback length.
func (b *Buffer) Duration() time.Duration {
	return time.Duration(float64(b.Len()) / float64(b.sampleRate) * float64(time.Second))
}

// Channel returns channel i. The slice is shared with the buffer and must be
// treated as read-only.
func (b *Buffer) Channel(i int) []float64 { return b.channels[i] }

// Channels returns all channels. The slices are shared with the buffer and
// must be treated as read-only.
func (b *Buffer) Channels() [][]float64 { return b.channels }

// Clone returns a deep copy.
func (b *Buffer) Clone() *Buffer {
	out := &Buffer{channels: make([][]float64, len(b.channels)), sampleRate: b.sampleRate}
	for i, ch := range b.channels {
		out.channels[i] = append([]float64(nil), ch...)
	}

	return out
}

// ChannelFunc transforms one channel. in is read-only; out has the same
// length as in and is zero on entry.
type ChannelFunc func(ch int, in, out []float64) error

// Map applies fn to every channel independently and returns the results as
// a new buffer of the same shape. The first error aborts the mapping.
func (b *Buffer) Map(fn ChannelFunc) (*Buffer, error) {
	out := &Buffer{channels: make([][]float64, len(b.channels)), sampleRate: b.sampleRate}

	for i, ch := range b.channels {
		dst := make([]float64, len(ch))

		err := fn(i, ch, dst)
		if err != nil {
			return nil, err
		}

		out.channels[i] = dst
	}

	return out, nil
}

// Downmix returns a mono buffer holding the arithmetic mean of all channels.
func (b *Buffer) Downmix() *Buffer {
	n := b.Len()
	mono := make([]float64, n)

	if len(b.channels) == 1 {
		copy(mono, b.channels[0])

		return &Buffer{channels: [][]float64{mono}, sampleRate: b.sampleRate}
	}

	for _, ch := range b.channels {
		vecmath.AddBlockInPlace(mono, ch)
	}

	vecmath.ScaleBlockInPlace(mono, 1/float64(len(b.channels)))

	return &Buffer{channels: [][]float64{mono}, sampleRate: b.sampleRate}
}

// Stereo returns a two-channel copy. Mono input is duplicated into both
// channels; input with more than two channels keeps the first two.
func (b *Buffer) Stereo() *Buffer {
	left := append([]float64(nil), b.channels[0]...)

	var right []float64
	if len(b.channels) == 1 {
		right = append([]float64(nil), b.channels[0]...)
	} else {
		right = append([]float64(nil), b.channels[1]...)
	}

	return &Buffer{channels: [][]float64{left, right}, sampleRate: b.sampleRate}
}
