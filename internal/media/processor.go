package media

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/cwbudde/algo-mms/dsp/buffer"
	"github.com/cwbudde/algo-mms/dsp/effectchain"
	"github.com/cwbudde/algo-mms/fault"
)

const (
	opPlan    = "media.plan"
	opProcess = "media.process"
)

var videoExtensions = map[string]bool{
	".mp4": true, ".m4v": true, ".mov": true, ".mkv": true, ".webm": true, ".avi": true,
}

var audioExtensions = map[string]bool{
	".wav": true, ".mp3": true, ".flac": true, ".ogg": true, ".opus": true, ".m4a": true, ".aac": true,
}

// IsVideo reports whether path has a known video container extension.
func IsVideo(path string) bool {
	return videoExtensions[strings.ToLower(filepath.Ext(path))]
}

// IsMedia reports whether path has a known audio or video extension.
func IsMedia(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))

	return videoExtensions[ext] || audioExtensions[ext]
}

func isWAV(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".wav")
}

// Plan is a validated job: video stages in configured order followed by the
// audio chain.
type Plan struct {
	Video []VideoStage
	Audio *effectchain.Config
	specs []effectchain.Spec
}

// Specs returns the filter list the plan was built from.
func (p *Plan) Specs() []effectchain.Spec {
	out := make([]effectchain.Spec, len(p.specs))
	for i, s := range p.specs {
		out[i] = s.Clone()
	}

	return out
}

// Len returns the total number of stages.
func (p *Plan) Len() int {
	return len(p.Video) + p.Audio.Len()
}

// NewPlan splits specs into video and audio stages and validates both.
// Identifiers found in neither catalog are fault.KindInvalidParameter.
func NewPlan(catalog *effectchain.Catalog, specs []effectchain.Spec) (*Plan, error) {
	if catalog == nil {
		catalog = effectchain.DefaultCatalog()
	}

	plan := &Plan{specs: make([]effectchain.Spec, 0, len(specs))}

	var audio []effectchain.Spec

	for i, spec := range specs {
		plan.specs = append(plan.specs, spec.Clone())

		if _, ok := LookupVideoFilter(spec.ID); ok {
			stage, err := BindVideo(spec)
			if err != nil {
				return nil, fault.Wrap(fault.KindInvalidParameter, opPlan, err)
			}

			plan.Video = append(plan.Video, stage)

			continue
		}

		if _, ok := catalog.Lookup(spec.ID); !ok {
			return nil, fault.InvalidParameter(opPlan, "filter %d: unknown filter %q", i, spec.ID)
		}

		audio = append(audio, spec)
	}

	cfg, err := effectchain.Configure(catalog, audio)
	if err != nil {
		return nil, err
	}

	plan.Audio = cfg

	return plan, nil
}

// Processor runs plans against files.
type Processor struct {
	Transcoder Transcoder
	// Catalog resolves audio filters. Nil means the default catalog.
	Catalog *effectchain.Catalog
	// WorkDir holds intermediate files. Empty means os.TempDir().
	WorkDir  string
	Observer effectchain.Observer
	// Inspect, if set, sees the decoded and the filtered audio of each run
	// before encoding. Both buffers must be treated as read-only.
	Inspect func(in, out *buffer.Buffer)
}

// NewProcessor returns a processor using t for container work.
func NewProcessor(t Transcoder, workDir string) *Processor {
	return &Processor{Transcoder: t, WorkDir: workDir}
}

// Plan validates specs against the processor's catalogs.
func (p *Processor) Plan(specs []effectchain.Spec) (*Plan, error) {
	return NewPlan(p.Catalog, specs)
}

// job tracks the temporary files of one run.
type job struct {
	dir   string
	id    string
	temps []string
}

func (j *job) temp(label, ext string) string {
	p := filepath.Join(j.dir, fmt.Sprintf("%s_%s%s", j.id, label, ext))
	j.temps = append(j.temps, p)

	return p
}

func (j *job) cleanup() {
	for _, p := range j.temps {
		err := os.Remove(p)
		if err != nil && !os.IsNotExist(err) {
			logrus.WithFields(logrus.Fields{
				"function": "cleanup",
				"path":     p,
				"error":    err.Error(),
			}).Warn("Failed to remove intermediate file")
		}
	}
}

// Run processes src into dst according to plan. Video input gets its video
// stages applied and is muxed with the processed audio; audio input is
// written as audio. Intermediate files are removed on every path. On
// failure dst is removed as well.
func (p *Processor) Run(ctx context.Context, plan *Plan, src, dst string) (err error) {
	if plan == nil {
		return fault.InvalidParameter(opProcess, "no plan")
	}

	srcVideo := IsVideo(src)
	if !srcVideo && len(plan.Video) > 0 {
		return fault.InvalidParameter(opProcess, "video filters need a video input, got %s", filepath.Base(src))
	}

	if srcVideo && !IsVideo(dst) {
		return fault.InvalidParameter(opProcess, "video input needs a video output, got %s", filepath.Base(dst))
	}

	dir := p.WorkDir
	if dir == "" {
		dir = os.TempDir()
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("media: work dir: %w", err)
	}

	j := &job{dir: dir, id: uuid.NewString()}
	defer j.cleanup()

	defer func() {
		if err != nil {
			_ = os.Remove(dst)
		}
	}()

	log := logrus.WithFields(logrus.Fields{
		"function": "Processor.Run",
		"job":      j.id,
		"src":      filepath.Base(src),
		"stages":   plan.Len(),
	})
	log.Info("Processing started")

	start := time.Now()

	video := src
	if srcVideo {
		video, err = p.runVideo(ctx, j, plan, src)
		if err != nil {
			return err
		}
	}

	in, err := p.decode(ctx, j, src)
	if err != nil {
		return err
	}

	chain := effectchain.NewChain(plan.Audio, effectchain.WithObserver(p.offset(len(plan.Video), plan.Len())))

	out, err := chain.Apply(ctx, in)
	if err != nil {
		return err
	}

	if p.Inspect != nil {
		p.Inspect(in, out)
	}

	err = p.encode(ctx, j, out, video, dst, srcVideo)
	if err != nil {
		return err
	}

	log.WithField("elapsed", time.Since(start).String()).Info("Processing finished")

	return nil
}

func (p *Processor) runVideo(ctx context.Context, j *job, plan *Plan, src string) (string, error) {
	cur := src

	for i, stage := range plan.Video {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		p.notify(effectchain.Event{Phase: effectchain.StageStarted, Index: i, Total: plan.Len(), ID: stage.Spec.ID})
		start := time.Now()

		next := j.temp(fmt.Sprintf("vidstep_%d", i), ".mp4")

		err := p.Transcoder.FilterVideo(ctx, cur, next, stage.GraphCandidates())
		if err != nil {
			p.notify(effectchain.Event{
				Phase: effectchain.StageFailed, Index: i, Total: plan.Len(), ID: stage.Spec.ID,
				Elapsed: time.Since(start), Err: err,
			})

			return "", fmt.Errorf("media: video stage %d (%s): %w", i, stage.Spec.ID, err)
		}

		p.notify(effectchain.Event{
			Phase: effectchain.StageFinished, Index: i, Total: plan.Len(), ID: stage.Spec.ID,
			Elapsed: time.Since(start),
		})

		cur = next
	}

	return cur, nil
}

func (p *Processor) decode(ctx context.Context, j *job, src string) (*buffer.Buffer, error) {
	wavPath := src
	if !isWAV(src) {
		wavPath = j.temp("audio_orig", ".wav")

		err := p.Transcoder.ExtractAudio(ctx, src, wavPath)
		if err != nil {
			return nil, err
		}
	}

	buf, err := ReadWAVFile(wavPath)
	if err != nil {
		return nil, fault.Wrap(fault.KindExternalProcess, opProcess, err)
	}

	return buf, nil
}

func (p *Processor) encode(ctx context.Context, j *job, out *buffer.Buffer, video, dst string, srcVideo bool) error {
	if !srcVideo && isWAV(dst) {
		return WriteWAVFile(dst, out)
	}

	wavPath := j.temp("audio_proc", ".wav")

	err := WriteWAVFile(wavPath, out)
	if err != nil {
		return err
	}

	if srcVideo {
		return p.Transcoder.Mux(ctx, video, wavPath, dst)
	}

	return p.Transcoder.Convert(ctx, wavPath, dst)
}

func (p *Processor) notify(ev effectchain.Event) {
	if p.Observer != nil {
		p.Observer(ev)
	}
}

// offset renumbers audio chain events so they follow the video stages.
func (p *Processor) offset(n, total int) effectchain.Observer {
	return func(ev effectchain.Event) {
		ev.Index += n
		ev.Total = total
		p.notify(ev)
	}
}
