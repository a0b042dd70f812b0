// Copyright 2024 Gustavo C. Viegas. All rights reserved.

// Command animeval evaluates a blend tree over a
// procedural biped and logs the resulting joint
// positions.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gviegas/anim"
	"github.com/gviegas/anim/blend"
	"github.com/gviegas/anim/clip"
	"github.com/gviegas/anim/internal/metrics"
	"github.com/gviegas/anim/kinematics"
	"github.com/gviegas/anim/pose"
	"github.com/gviegas/anim/skin"
)

func main() {
	configFile := flag.String("config", "", "Path to config.json file")
	tree := flag.String("tree", "", "Path to blend tree description (default: built-in)")
	ticks := flag.Int("ticks", 0, "Number of ticks to evaluate (default: 120)")
	dt := flag.Float64("dt", 0, "Tick duration in seconds (default: 1/60)")
	mode := flag.String("mode", "", "Clip interpolation: step, nearest, lerp, catmullrom or hermite")
	speed := flag.Float64("speed", -1, "Normalized character speed in [0, 1]")
	chars := flag.Int("characters", 0, "Number of characters (default: 1)")
	level := flag.String("log", "", "Log level: debug, info, warn or error (default: info)")
	addr := flag.String("metrics", "", "Serve Prometheus metrics on this address and wait for interrupt")
	flag.Parse()

	var cfg Config
	if *configFile != "" {
		var err error
		if cfg, err = Load(*configFile); err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}
	cfg.Resolve(Flags{
		Tree:        *tree,
		Ticks:       *ticks,
		DT:          *dt,
		Mode:        *mode,
		Speed:       *speed,
		Characters:  *chars,
		LogLevel:    *level,
		MetricsAddr: *addr,
	})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := run(ctx, &cfg, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *Config, w io.Writer) error {
	lvl, _ := cfg.Level()
	log := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
	anim.SetLogger(log)
	defer anim.SetLogger(nil)

	mode, _ := clip.ParseMode(cfg.Mode)
	treeCfg := blend.Config{Mode: mode}
	var srv *http.Server
	if cfg.MetricsAddr != "" {
		reg := prometheus.NewRegistry()
		treeCfg.Observer = metrics.New(reg)
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		srv = &http.Server{Addr: cfg.MetricsAddr, Handler: mux}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error("metrics server failed", "err", err)
			}
		}()
		log.Info("serving metrics", "addr", cfg.MetricsAddr)
	}

	sess, err := newSession(cfg, &treeCfg)
	if err != nil {
		return err
	}
	start := time.Now()
	for i := range cfg.Ticks {
		if ctx.Err() != nil {
			break
		}
		sess.Update(cfg.DT)
		log.Debug("tick", "n", i)
	}
	log.Info("evaluated",
		"characters", sess.Len(),
		"ticks", cfg.Ticks,
		"mode", cfg.Mode,
		"elapsed", time.Since(start))
	report(log, sess)

	if srv != nil {
		<-ctx.Done()
		shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutCtx)
	}
	return nil
}

// params holds the character parameters read by the
// blend tree.
type params struct {
	speed float32
}

func (p *params) bindings() map[string]*float32 {
	return map[string]*float32{"speed": &p.speed}
}

func newSession(cfg *Config, treeCfg *blend.Config) (*anim.Session, error) {
	g, cp, err := newRig()
	if err != nil {
		return nil, err
	}
	bind, err := pose.NewState(g.Hierarchy())
	if err != nil {
		return nil, err
	}
	bind.Sample.Copy(g.Pose(poseZero))
	bind.Resolve(g.Pose(poseBase), g)
	kinematics.SolveForward(bind)

	text := defaultTree
	if cfg.Tree != "" {
		b, err := os.ReadFile(cfg.Tree)
		if err != nil {
			return nil, err
		}
		text = string(b)
	}

	var sess anim.Session
	for i := range cfg.Characters {
		p := &params{speed: cfg.Speed}
		desc, err := blend.Parse(strings.NewReader(text), p.bindings())
		if err != nil {
			return nil, err
		}
		tree, err := desc.Build(g, cp, treeCfg)
		if err != nil {
			return nil, err
		}
		sk, err := skin.New(bind)
		if err != nil {
			return nil, err
		}
		c, err := anim.NewCharacter(fmt.Sprintf("biped%d", i), tree, sk)
		if err != nil {
			return nil, err
		}
		sess.Insert(c)
	}
	return &sess, nil
}

func report(log *slog.Logger, sess *anim.Session) {
	for _, c := range sess.All() {
		attrs := []any{"character", c.Name, "reach", c.Reach()}
		for _, j := range [...]string{"head", "l_foot", "r_foot"} {
			if p, ok := c.Position(j); ok {
				attrs = append(attrs, j, fmt.Sprintf("%.3f,%.3f,%.3f", p[0], p[1], p[2]))
			}
		}
		log.Info("pose", attrs...)
	}
}
