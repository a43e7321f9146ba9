package main

import (
	"flag"
	"net/http"
	"runtime"

	"blockworld/internal/config"
	"blockworld/internal/meshing"
	"blockworld/internal/profiling"
	"blockworld/internal/world"
	"blockworld/internal/worldgen"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/xlab/closer"
)

type options struct {
	configPath  string
	worldPath   string
	seed        uint
	radius      int
	ticks       int
	previewPath string
	metricsAddr string
	atlas       bool
}

func parseFlags() (options, map[string]bool) {
	var opts options
	flag.StringVar(&opts.configPath, "config", "", "settings file (YAML); defaults to $"+config.EnvPath)
	flag.StringVar(&opts.worldPath, "world", "", "world snapshot path (overrides settings)")
	flag.UintVar(&opts.seed, "seed", 0, "seed for a new world (overrides settings)")
	flag.IntVar(&opts.radius, "radius", 0, "chunk streaming radius around spawn (overrides view distance)")
	flag.IntVar(&opts.ticks, "ticks", 300, "physics ticks to simulate at 60 Hz")
	flag.StringVar(&opts.previewPath, "preview", "", "write a top-down colour preview PNG here")
	flag.StringVar(&opts.metricsAddr, "metrics", "", "serve Prometheus metrics on this address and wait for a signal")
	flag.BoolVar(&opts.atlas, "atlas", false, "mesh with atlas texture coordinates instead of flat colours")
	flag.Parse()

	set := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return opts, set
}

func main() {
	opts, set := parseFlags()

	if _, err := config.Load(opts.configPath); err != nil {
		logrus.WithError(err).Fatal("load settings")
	}
	if set["seed"] {
		config.SetSeed(uint32(opts.seed))
	}
	if set["world"] {
		config.SetWorldPath(opts.worldPath)
	}
	if set["radius"] {
		config.SetViewDistance(opts.radius)
	}
	setupLogging(config.GetLogLevel())

	if opts.configPath != "" {
		if err := config.Save(opts.configPath); err != nil {
			logrus.WithError(err).Warn("write settings back")
		}
	}

	w := loadWorld(config.GetWorldPath(), config.GetSeed())
	closer.Bind(func() {
		if err := w.Save(config.GetWorldPath()); err != nil {
			logrus.WithError(err).Error("save world")
		}
	})

	if opts.metricsAddr != "" {
		go func() {
			logrus.WithField("addr", opts.metricsAddr).Info("serving metrics")
			if err := http.ListenAndServe(opts.metricsAddr, promhttp.Handler()); err != nil && err != http.ErrServerClosed {
				logrus.WithError(err).Error("metrics server")
			}
		}()
	}

	gen := worldgen.New(w.Seed)
	spawn := gen.SpawnPoint()
	loaded := w.StreamAround(world.ChunkCoordOf(spawn.X(), spawn.Z()), config.GetChunkLoadRadius(), gen)
	logrus.WithFields(logrus.Fields{
		"generated": loaded,
		"chunks":    w.Len(),
		"seed":      w.Seed,
	}).Info("world ready")

	simulate(w, gen, spawn, opts.ticks)

	mode := meshing.ModeColor
	if opts.atlas {
		mode = meshing.ModeAtlas
	}
	if err := buildMeshes(w, mode); err != nil {
		logrus.WithError(err).Error("build meshes")
	}

	if opts.previewPath != "" {
		if err := writePreview(opts.previewPath, w, previewScale); err != nil {
			logrus.WithError(err).Error("write preview")
		} else {
			logrus.WithField("path", opts.previewPath).Info("preview written")
		}
	}

	logrus.WithField("top", profiling.TopN(5)).Info("timings")

	if opts.metricsAddr != "" {
		closer.Hold()
		return
	}
	closer.Close()
}

func setupLogging(level string) {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		logrus.WithField("level", level).Warn("unknown log level, using info")
		lvl = logrus.InfoLevel
	}
	logrus.SetLevel(lvl)
}

// loadWorld reads the snapshot at path. A corrupt snapshot is reported and replaced by
// a fresh world; it gets overwritten on exit.
func loadWorld(path string, seed uint32) *world.World {
	w, err := world.Load(path, seed)
	if err == nil {
		return w
	}
	entry := logrus.WithError(err).WithField("path", path)
	if errors.Is(err, world.ErrCorruptSnapshot) {
		entry.Warn("snapshot is corrupt, starting a new world")
	} else {
		entry.Warn("snapshot unreadable, starting a new world")
	}
	return world.New(seed)
}

// buildMeshes meshes every dirty chunk on the worker pool and stores the results in a cache.
func buildMeshes(w *world.World, mode meshing.Mode) error {
	layout := config.GetAtlas()
	b := meshing.NewBuilder(mode)
	b.Atlas = meshing.Atlas{Columns: layout.Columns, Rows: layout.Rows, TileSize: layout.TileSize}

	cache, err := meshing.NewCache(max(w.Len(), 1), b)
	if err != nil {
		return err
	}
	pool := meshing.NewWorkerPool(runtime.NumCPU(), 64, b)
	defer pool.Shutdown()

	dirty := w.DirtyChunks()
	var vertices, indices int
	for _, r := range pool.BuildAll(w, dirty) {
		cache.Put(r.Coord, r.Mesh)
		if c, ok := w.Chunk(r.Coord.X, r.Coord.Z); ok {
			c.MarkClean()
		}
		vertices += len(r.Mesh.Vertices)
		indices += len(r.Mesh.Indices)
	}
	logrus.WithFields(logrus.Fields{
		"chunks":   len(dirty),
		"cached":   cache.Len(),
		"vertices": vertices,
		"indices":  indices,
	}).Info("meshes built")
	return nil
}
