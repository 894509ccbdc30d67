package media

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
)

// Transcoder performs the container-level steps of a job.
type Transcoder interface {
	// ExtractAudio writes the audio of src to dst as 16-bit PCM WAV.
	ExtractAudio(ctx context.Context, src, dst string) error
	// FilterVideo re-encodes the video of src through a -vf graph, dropping
	// audio. Graphs are tried in order until one succeeds.
	FilterVideo(ctx context.Context, src, dst string, graphs []string) error
	// Mux combines the video of video with the audio of audio into dst.
	Mux(ctx context.Context, video, audio, dst string) error
	// Convert transcodes an audio file to the format implied by dst.
	Convert(ctx context.Context, src, dst string) error
}

// FFmpegTranscoder implements Transcoder on top of a Runner.
type FFmpegTranscoder struct {
	Runner Runner
}

// NewTranscoder returns a Transcoder driving r.
func NewTranscoder(r Runner) *FFmpegTranscoder {
	return &FFmpegTranscoder{Runner: r}
}

func (t *FFmpegTranscoder) ExtractAudio(ctx context.Context, src, dst string) error {
	return t.Runner.Run(ctx, "-i", src, "-vn", "-acodec", "pcm_s16le", "-f", "wav", dst)
}

func (t *FFmpegTranscoder) FilterVideo(ctx context.Context, src, dst string, graphs []string) error {
	if len(graphs) == 0 {
		return errors.New("media: no filter graph")
	}

	var err error

	for i, graph := range graphs {
		err = t.Runner.Run(ctx, "-i", src, "-vf", graph, "-c:v", "libx264", "-preset", "fast", "-an", dst)
		if err == nil || ctx.Err() != nil {
			return err
		}

		if i < len(graphs)-1 {
			logrus.WithFields(logrus.Fields{
				"function": "FilterVideo",
				"graph":    graph,
				"fallback": graphs[i+1],
				"error":    err.Error(),
			}).Warn("Video filter failed, trying fallback")
		}
	}

	return err
}

func (t *FFmpegTranscoder) Mux(ctx context.Context, video, audio, dst string) error {
	return t.Runner.Run(ctx,
		"-i", video, "-i", audio,
		"-map", "0:v:0", "-map", "1:a:0",
		"-c:v", "copy", "-c:a", "aac",
		"-shortest", dst)
}

func (t *FFmpegTranscoder) Convert(ctx context.Context, src, dst string) error {
	return t.Runner.Run(ctx, "-i", src, "-vn", dst)
}
