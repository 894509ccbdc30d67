package media

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/cwbudde/algo-mms/dsp/buffer"
)

// DefaultBitDepth is the PCM depth used when writing WAV files.
const DefaultBitDepth = 16

var (
	// ErrNotWAV is returned for input that is not a RIFF/WAVE file.
	ErrNotWAV = errors.New("media: not a WAV file")
	// ErrUnsupportedWAV is returned for WAV encodings other than integer PCM.
	ErrUnsupportedWAV = errors.New("media: unsupported WAV encoding")
)

const (
	wavFormatPCM        = 1
	wavFormatExtensible = 0xFFFE
)

// ReadWAV decodes an integer PCM WAV stream into a buffer with samples
// scaled to [-1, 1).
func ReadWAV(r io.ReadSeeker) (*buffer.Buffer, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, ErrNotWAV
	}

	if dec.WavAudioFormat != wavFormatPCM && dec.WavAudioFormat != wavFormatExtensible {
		return nil, fmt.Errorf("%w: format tag %#x", ErrUnsupportedWAV, dec.WavAudioFormat)
	}

	pcm, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("media: decode wav: %w", err)
	}

	depth := int(dec.BitDepth)
	if depth < 8 || depth > 32 {
		return nil, fmt.Errorf("%w: %d-bit", ErrUnsupportedWAV, depth)
	}

	nch := pcm.Format.NumChannels
	if nch < 1 {
		return nil, fmt.Errorf("%w: %d channels", ErrUnsupportedWAV, nch)
	}

	frames := len(pcm.Data) / nch
	scale := 1 / math.Ldexp(1, depth-1)

	// 8-bit WAV stores unsigned samples.
	offset := 0
	if depth == 8 {
		offset = 128
	}

	channels := make([][]float64, nch)
	for c := range channels {
		ch := make([]float64, frames)
		for i := range ch {
			ch[i] = float64(pcm.Data[i*nch+c]-offset) * scale
		}

		channels[c] = ch
	}

	return buffer.Wrap(pcm.Format.SampleRate, channels...)
}

// WriteWAV encodes buf as integer PCM with the given bit depth. Samples are
// clipped to the representable range.
func WriteWAV(w io.WriteSeeker, buf *buffer.Buffer, bitDepth int) error {
	if bitDepth != 8 && bitDepth != 16 && bitDepth != 24 && bitDepth != 32 {
		return fmt.Errorf("%w: %d-bit", ErrUnsupportedWAV, bitDepth)
	}

	nch := buf.NumChannels()
	frames := buf.Len()
	full := math.Ldexp(1, bitDepth-1)

	offset := 0
	if bitDepth == 8 {
		offset = 128
	}

	data := make([]int, frames*nch)

	for c := range nch {
		for i, v := range buf.Channel(c) {
			data[i*nch+c] = quantize(v, full) + offset
		}
	}

	enc := wav.NewEncoder(w, buf.SampleRate(), bitDepth, nch, wavFormatPCM)

	err := enc.Write(&audio.IntBuffer{
		Format:         &audio.Format{NumChannels: nch, SampleRate: buf.SampleRate()},
		Data:           data,
		SourceBitDepth: bitDepth,
	})
	if err != nil {
		return fmt.Errorf("media: encode wav: %w", err)
	}

	err = enc.Close()
	if err != nil {
		return fmt.Errorf("media: encode wav: %w", err)
	}

	return nil
}

func quantize(v, full float64) int {
	if math.IsNaN(v) {
		return 0
	}

	q := math.Round(v * full)
	q = math.Max(-full, math.Min(full-1, q))

	return int(q)
}

// ReadWAVFile decodes the WAV file at path.
func ReadWAVFile(path string) (*buffer.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ReadWAV(f)
}

// WriteWAVFile writes buf to path as 16-bit PCM. A partially written file
// is removed on failure.
func WriteWAVFile(path string, buf *buffer.Buffer) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	err = WriteWAV(f, buf, DefaultBitDepth)
	if cerr := f.Close(); err == nil {
		err = cerr
	}

	if err != nil {
		_ = os.Remove(path)

		return err
	}

	return nil
}
