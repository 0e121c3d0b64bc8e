package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"

	persistlog "dinerline.ai/internal/persistence/log"
	"dinerline.ai/internal/protocol"
	"dinerline.ai/internal/sim/catalogs"
	"dinerline.ai/internal/sim/engine"
	"dinerline.ai/internal/sim/runner"
	"dinerline.ai/internal/sim/tuning"
	"dinerline.ai/internal/transport/ws"
)

func main() {
	var (
		addr       = flag.String("addr", ":8080", "http listen address")
		configDir  = flag.String("configs", "./configs", "config directory")
		dataDir    = flag.String("data", "./data", "runtime data directory")
		tuningPath = flag.String("tuning", "", "path to tuning.yaml (default: <configs>/tuning.yaml)")
		seed       = flag.Int64("seed", 0, "rng seed (0: use tuning)")
		intervalMS = flag.Int("turn_interval_ms", -1, "turn timer in ms, 0 advances a turn per move (-1: use tuning)")
		disableDB  = flag.Bool("disable_db", false, "disable the sqlite run index")
	)
	flag.Parse()

	logger := log.New(os.Stdout, "[server] ", log.LstdFlags|log.Lmicroseconds)

	cats, err := catalogs.Load(*configDir)
	if err != nil {
		logger.Fatalf("load catalogs: %v", err)
	}

	tp := strings.TrimSpace(*tuningPath)
	if tp == "" {
		tp = filepath.Join(*configDir, "tuning.yaml")
	}
	tune, err := tuning.Load(tp)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Fatalf("load tuning: %v", err)
		}
		logger.Printf("tuning not found (%s); using defaults", tp)
		tune = tuning.Defaults()
	}
	if *seed != 0 {
		tune.Seed = *seed
	}
	if *intervalMS >= 0 {
		tune.TurnIntervalMS = *intervalMS
	}

	eng, err := engine.New(engine.ConfigFromTuning(tune), &cats.Templates)
	if err != nil {
		logger.Fatalf("engine: %v", err)
	}
	eng.SetLogger(logger)

	runID := uuid.NewString()
	runDir := filepath.Join(*dataDir, "runs", runID)
	if err := persistlog.WriteRunMeta(runDir, persistlog.RunMeta{
		RunID:           runID,
		StartedAt:       time.Now().UTC().Format(time.RFC3339),
		Config:          eng.Config(),
		TemplatesDigest: cats.Templates.Digest,
		TemplateCount:   cats.Templates.Size(),
	}); err != nil {
		logger.Fatalf("write run meta: %v", err)
	}

	turnLog := persistlog.NewTurnLogger(runDir)
	defer turnLog.Close()
	loggers := engine.TurnLoggers{turnLog}

	// Optional: read-model index (does not affect sim determinism).
	idx, err := openRuntimeIndex(*dataDir, *disableDB)
	if err != nil {
		logger.Fatalf("open index backend: %v", err)
	}
	if idx != nil {
		defer idx.Close()
		if err := idx.UpsertCatalogs(*configDir, cats, tune); err != nil {
			logger.Printf("index backend: upsert catalogs: %v", err)
		}
		if err := idx.RecordRun(runInfo(runID, eng.Config(), cats)); err != nil {
			logger.Printf("index backend: record run: %v", err)
		}
		loggers = append(loggers, idx)
	}
	eng.SetTurnLogger(loggers)

	run := runner.New(eng, time.Duration(tune.TurnIntervalMS)*time.Millisecond, logger)
	wsSrv := ws.NewServer(run, protocol.WelcomeMsg{
		RunID: runID,
		Params: protocol.SessionParams{
			Width:          tune.Width,
			Height:         tune.Height,
			TurnIntervalMS: tune.TurnIntervalMS,
			Seed:           tune.Seed,
		},
		Templates: protocol.DigestRef{Digest: cats.Templates.Digest, Count: cats.Templates.Size()},
	}, logger)
	eng.SetPresenter(wsSrv)

	ctx, cancel := signalContext()
	defer cancel()

	runDone := make(chan struct{})
	go func() {
		defer close(runDone)
		if err := run.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Printf("runner stopped: %v", err)
			cancel()
		}
	}()

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(rw http.ResponseWriter, r *http.Request) {
		rw.WriteHeader(http.StatusOK)
		_, _ = rw.Write([]byte("ok\n"))
	})
	mux.HandleFunc("/metrics", func(rw http.ResponseWriter, r *http.Request) {
		rw.Header().Set("Content-Type", "text/plain; version=0.0.4")
		writeMetrics(rw, runID, run.Status(), idx)
	})
	mux.HandleFunc("/v1/ws", wsSrv.Handler())

	srv := &http.Server{
		Addr:              *addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel2()
		_ = srv.Shutdown(ctx2)
	}()

	logger.Printf("run=%s seed=%d interval_ms=%d listening on %s", runID, tune.Seed, tune.TurnIntervalMS, *addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("ListenAndServe: %v", err)
	}
	// The engine must stop writing before the turn log and index close.
	cancel()
	<-runDone
	st := run.Status()
	logger.Printf("run=%s stopped at turn=%d level=%d score=%d", runID, st.Turn, st.Level, st.Score)
}

func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	ch := make(chan os.Signal, 2)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-ch
		cancel()
	}()
	return ctx, cancel
}
