package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/cwbudde/algo-mms/dsp/buffer"
	"github.com/cwbudde/algo-mms/dsp/effectchain"
	"github.com/cwbudde/algo-mms/internal/analysis"
	"github.com/cwbudde/algo-mms/internal/cli"
	"github.com/cwbudde/algo-mms/internal/config"
	"github.com/cwbudde/algo-mms/internal/media"
	"github.com/cwbudde/algo-mms/internal/server"
	"github.com/cwbudde/algo-mms/internal/session"
	"github.com/cwbudde/algo-mms/internal/ui"
	"github.com/cwbudde/algo-mms/internal/watch"
)

func newProcessor(cfg config.Config, workDir string) *media.Processor {
	ff := media.NewFFmpeg(cfg.FFmpeg, cfg.ProcessTimeout.Duration, cfg.DiagnosticLimit)

	return media.NewProcessor(media.NewTranscoder(ff), workDir)
}

// ServeCmd runs the HTTP service.
type ServeCmd struct {
	Listen    string `short:"l" help:"Listen address." placeholder:"ADDR"`
	DataDir   string `type:"path" help:"Directory for uploads and results." placeholder:"DIR"`
	StaticDir string `type:"path" help:"Directory with index.html and static assets." placeholder:"DIR"`
}

// Run starts the server and blocks until ctx is cancelled.
func (c *ServeCmd) Run(g *Globals) error {
	ctx := g.context()

	cfg, err := g.load()
	if err != nil {
		return err
	}

	if c.Listen != "" {
		cfg.Listen = c.Listen
	}

	if c.DataDir != "" {
		cfg.DataDir = c.DataDir
	}

	if c.StaticDir != "" {
		cfg.StaticDir = c.StaticDir
	}

	proc := newProcessor(cfg, filepath.Join(cfg.DataDir, "work"))

	store, err := session.NewStore(cfg.DataDir, proc)
	if err != nil {
		return err
	}

	srv := server.New(store, server.Options{
		StaticDir: cfg.StaticDir,
		MaxUpload: cfg.MaxUploadBytes(),
	})

	return srv.ListenAndServe(ctx, cfg.Listen)
}

// ProcessCmd filters one file.
type ProcessCmd struct {
	Input   string   `arg:"" type:"existingfile" help:"Media file to process."`
	Output  string   `short:"o" required:"" type:"path" help:"Output file." placeholder:"FILE"`
	Filters []string `short:"f" required:"" help:"Filter as id[:name=value,...]; repeat for a chain." placeholder:"SPEC"`
	Report  bool     `short:"r" help:"Print level and spectrum of input and output audio."`
	Plain   bool     `help:"Log progress instead of showing the interactive view."`
}

// Run processes the file.
func (c *ProcessCmd) Run(g *Globals) error {
	ctx := g.context()

	cfg, err := g.load()
	if err != nil {
		return err
	}

	specs, err := effectchain.ParseSpecs(c.Filters)
	if err != nil {
		return err
	}

	work, err := os.MkdirTemp("", "mms-")
	if err != nil {
		return err
	}
	defer os.RemoveAll(work)

	proc := newProcessor(cfg, work)

	plan, err := proc.Plan(specs)
	if err != nil {
		return err
	}

	var cmp *analysis.Comparison
	if c.Report {
		proc.Inspect = func(in, out *buffer.Buffer) {
			res, err := analysis.Compare(in, out)
			if err != nil {
				logrus.WithFields(logrus.Fields{
					"function": "ProcessCmd.Run",
					"error":    err.Error(),
				}).Warn("Analysis failed")

				return
			}

			cmp = &res
		}
	}

	if c.Plain || !isTerminal(os.Stdout) {
		if err := proc.Run(ctx, plan, c.Input, c.Output); err != nil {
			return err
		}

		cli.PrintKeyValue(os.Stdout, "Output", c.Output)

		if cmp != nil {
			fmt.Println(cli.ComparisonTable(*cmp))
		}

		return nil
	}

	return c.runInteractive(ctx, proc, plan, &cmp)
}

// runInteractive shows the progress view. cmp is filled by proc.Inspect
// during the run when a report was requested.
func (c *ProcessCmd) runInteractive(ctx context.Context, proc *media.Processor, plan *media.Plan, cmp **analysis.Comparison) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	ids := make([]string, 0, plan.Len())
	for _, s := range plan.Video {
		ids = append(ids, s.Spec.ID)
	}

	ids = append(ids, plan.Audio.IDs()...)

	p := tea.NewProgram(ui.NewModel(c.Input, ids))

	// Log lines would tear the view; failures are shown in the summary.
	logrus.SetOutput(io.Discard)
	defer logrus.SetOutput(os.Stderr)

	proc.Observer = func(ev effectchain.Event) { p.Send(ui.StageMsg{Event: ev}) }

	done := make(chan error, 1)

	go func() {
		err := proc.Run(ctx, plan, c.Input, c.Output)
		p.Send(ui.DoneMsg{OutputPath: c.Output, Comparison: *cmp, Err: err})
		done <- err
	}()

	final, err := p.Run()
	if err != nil {
		cancel()
		<-done

		return err
	}

	if m, ok := final.(ui.Model); ok && m.Cancelled {
		cancel()
		<-done

		return context.Canceled
	}

	return <-done
}

// WatchCmd filters files dropped into a directory.
type WatchCmd struct {
	Dir     string   `arg:"" optional:"" type:"existingdir" help:"Directory to watch (default from config)."`
	Output  string   `short:"o" type:"path" help:"Directory for processed files." placeholder:"DIR"`
	Filters []string `short:"f" help:"Filter as id[:name=value,...]; repeat for a chain." placeholder:"SPEC"`
	Workers int      `short:"w" help:"Files processed in parallel." placeholder:"N"`
}

// Run watches until ctx is cancelled.
func (c *WatchCmd) Run(g *Globals) error {
	ctx := g.context()

	cfg, err := g.load()
	if err != nil {
		return err
	}

	dir := cfg.Watch.Dir
	if c.Dir != "" {
		dir = c.Dir
	}

	if dir == "" {
		return errors.New("watch: no directory given on the command line or in [watch] dir")
	}

	out := cfg.Watch.OutDir
	if c.Output != "" {
		out = c.Output
	}

	filters := cfg.Watch.Filters
	if len(c.Filters) > 0 {
		filters = c.Filters
	}

	workers := cfg.Watch.Workers
	if c.Workers > 0 {
		workers = c.Workers
	}

	specs, err := effectchain.ParseSpecs(filters)
	if err != nil {
		return err
	}

	work, err := os.MkdirTemp("", "mms-watch-")
	if err != nil {
		return err
	}
	defer os.RemoveAll(work)

	proc := newProcessor(cfg, work)

	plan, err := proc.Plan(specs)
	if err != nil {
		return err
	}

	w := &watch.Watcher{
		Dir:     dir,
		OutDir:  out,
		Plan:    plan,
		Runner:  proc,
		Workers: workers,
	}

	return w.Run(ctx)
}

// FiltersCmd lists the filter catalog.
type FiltersCmd struct {
	JSON bool `help:"Print the catalog as JSON."`
}

// Run prints the catalog.
func (c *FiltersCmd) Run() error {
	filters := media.Describe(nil)

	if c.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")

		return enc.Encode(filters)
	}

	fmt.Println(cli.TitleStyle.Render("Filters"))
	fmt.Println(cli.FiltersTable(filters))

	return nil
}

func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}

	return info.Mode()&os.ModeCharDevice != 0
}
