// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"image/png"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"mgrl.dev/core/base/errors"
	"mgrl.dev/core/config"
	"mgrl.dev/core/events"
	"mgrl.dev/core/input"
	"mgrl.dev/core/logx"
	"mgrl.dev/core/xyz"
)

// options are the flags shared by all commands.
type options struct {
	config    string
	vv, v, q  bool
	cfg       *config.Config
	frames    int
	picks     []string
	out       string
	addr      string
	frameRate int
	watch     bool
}

func newRootCmd() *cobra.Command {
	o := &options{}
	root := &cobra.Command{
		Use:           "mgrl",
		Short:         "Run scene graphs headlessly",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return o.setup()
		},
	}
	pf := root.PersistentFlags()
	pf.StringVarP(&o.config, "config", "c", "", "config file (.toml, .yaml or .yml)")
	pf.BoolVar(&o.vv, "vv", false, "show debug messages")
	pf.BoolVarP(&o.v, "verbose", "v", false, "show info messages")
	pf.BoolVarP(&o.q, "quiet", "q", false, "show only errors")

	root.AddCommand(newRenderCmd(o), newServeCmd(o), newConfigCmd(o))
	return root
}

// setup loads the config and configures logging.
func (o *options) setup() error {
	if o.config != "" {
		cfg, err := config.Open(o.config)
		if err != nil {
			return err
		}
		o.cfg = cfg
	} else {
		o.cfg = config.New()
	}
	if o.vv || o.v || o.q {
		logx.UserLevel.Set(logx.LevelFromFlags(o.vv, o.v, o.q))
	} else {
		logx.UserLevel.Set(errors.Must1(o.cfg.LogLevel()))
	}
	logx.SetDefaultLogger()
	return nil
}

func newRenderCmd(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render frames of the demo scene and report the draw order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.render(cmd)
		},
	}
	f := cmd.Flags()
	f.IntVarP(&o.frames, "frames", "n", 1, "number of frames to render")
	f.StringArrayVarP(&o.picks, "pick", "p", nil, "pointer event to pick before the first frame, as type:x,y (for example mousedown:0.5,0.5)")
	f.StringVarP(&o.out, "output", "o", "", "write the last frame to this PNG file")
	return cmd
}

// parsePick parses a pointer event written as type:x,y.
func parsePick(s string) (events.Pointer, error) {
	ts, pos, ok := strings.Cut(s, ":")
	if !ok {
		return events.Pointer{}, fmt.Errorf("invalid pick %q: want type:x,y", s)
	}
	typ, err := events.ParseType(ts)
	if err != nil {
		return events.Pointer{}, err
	}
	var x, y float64
	if _, err := fmt.Sscanf(pos, "%g,%g", &x, &y); err != nil {
		return events.Pointer{}, fmt.Errorf("invalid pick position %q: %w", pos, err)
	}
	return events.NewPointer(typ, x, y, time.Now()), nil
}

func (o *options) render(cmd *cobra.Command) error {
	d := newDemo(o.cfg)
	defer d.scene.Destroy()
	w := cmd.OutOrStdout()
	for _, ps := range o.picks {
		ev, err := parsePick(ps)
		if err != nil {
			return err
		}
		d.picker.Request(ev)
	}
	d.scene.On(events.Click.String(), func(data any) {
		info := data.(*xyz.PickInfo)
		fmt.Fprintf(w, "click %v\n", info.Selected.AsNode())
	})
	for _, typ := range []events.Types{events.MouseDown, events.MouseUp} {
		d.scene.On(typ.String(), func(data any) {
			info := data.(*xyz.PickInfo)
			if info.Picked == nil {
				fmt.Fprintf(w, "%v miss\n", typ)
				return
			}
			fmt.Fprintf(w, "%v %v\n", typ, info.Picked.AsNode())
		})
	}
	for i := range o.frames {
		if err := d.frame(); err != nil {
			return err
		}
		fmt.Fprintf(w, "frame %d: %s\n", i+1, strings.Join(d.renderer.Labels(false), " "))
	}
	if o.out == "" {
		return nil
	}
	f, err := os.Create(o.out)
	if err != nil {
		return err
	}
	return errors.Join(png.Encode(f, d.renderer.Frame()), f.Close())
}

func newServeCmd(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Render the demo scene continuously, picking pointer events received over WebSocket at /ws",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return o.serve(ctx)
		},
	}
	f := cmd.Flags()
	f.StringVar(&o.addr, "addr", "localhost:8080", "address to listen on")
	f.IntVar(&o.frameRate, "fps", 60, "frames per second")
	f.BoolVarP(&o.watch, "watch", "w", false, "reapply the config file each time it changes")
	return cmd
}

func (o *options) serve(ctx context.Context) error {
	d := newDemo(o.cfg)
	defer d.scene.Destroy()
	d.scene.Picking.Enabled = true
	d.scene.On(events.Click.String(), func(data any) {
		info := data.(*xyz.PickInfo)
		slog.Info("click", "node", info.Selected.AsNode().String(), "x", info.Trigger.X, "y", info.Trigger.Y)
	})

	reload := make(chan *config.Config, 1)
	if o.watch && o.config != "" {
		w, err := config.Watch(o.config, func(cfg *config.Config) {
			// keep only the latest config for the render loop
			select {
			case <-reload:
			default:
			}
			reload <- cfg
		})
		if err != nil {
			return err
		}
		defer w.Close()
	}

	mux := http.NewServeMux()
	mux.Handle("/ws", input.NewServer(d.picker))
	srv := &http.Server{Addr: o.addr, Handler: mux}
	errc := make(chan error, 1)
	go func() {
		slog.Info("serving", "addr", o.addr)
		errc <- srv.ListenAndServe()
	}()

	tick := time.NewTicker(time.Second / time.Duration(max(o.frameRate, 1)))
	defer tick.Stop()
	for {
		select {
		case <-ctx.Done():
			sctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return srv.Shutdown(sctx)
		case err := <-errc:
			return err
		case cfg := <-reload:
			d.apply(cfg)
			logx.UserLevel.Set(errors.Log1(cfg.LogLevel()))
		case <-tick.C:
			errors.Log(d.frame())
		}
	}
}

func newConfigCmd(o *options) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := config.ParseFormat(format)
			if err != nil {
				return err
			}
			return o.cfg.Write(cmd.OutOrStdout(), f)
		},
	}
	cmd.Flags().StringVar(&format, "format", "toml", "output format: toml or yaml")
	return cmd
}
