package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"github.com/sunbind/sunbind"
	"github.com/sunbind/sunbind/types"
)

// Lotka-Volterra coefficients.
const (
	alpha = 1.5
	beta  = 1.0
	delta = 1.0
	gamma = 3.0

	tFinal    = 10.0
	preyLimit = 2.0
)

func lotkaVolterra(t float64, y, ydot types.Vector) int {
	prey, pred := y[0], y[1]
	ydot[0] = alpha*prey - beta*prey*pred
	ydot[1] = delta*prey*pred - gamma*pred
	return types.StatusSuccess
}

// preyCrossing fires whenever the prey population crosses preyLimit.
func preyCrossing(t float64, y types.Vector, gout []float64) int {
	gout[0] = y[0] - preyLimit
	return types.StatusSuccess
}

func newRuntime(lc fx.Lifecycle, cfg types.Config) (*sunbind.Runtime, error) {
	rt, err := sunbind.NewRuntime(cfg)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error { return rt.Close() },
	})
	return rt, nil
}

func registerMetrics(lc fx.Lifecycle, rt *sunbind.Runtime, log *zap.Logger) {
	cfg := rt.Config().Metrics
	if !cfg.Enabled {
		return
	}
	r := chi.NewRouter()
	r.Handle("/metrics", rt.MetricsHandler())
	srv := &http.Server{
		Addr:         cfg.Listen,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			log.Info("metrics server starting", zap.String("addr", cfg.Listen))
			go func() {
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("metrics server failed", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})
}

func solve(rt *sunbind.Runtime, log *zap.Logger) error {
	it, err := rt.NewIntegrator(lotkaVolterra, 0, []float64{10, 5})
	if err != nil {
		return err
	}
	defer it.Free()

	if err := it.RootInit(1, preyCrossing); err != nil {
		return err
	}
	rec, err := rt.Record(it, nil)
	if err != nil {
		return err
	}

	for {
		sol, err := it.Evolve(tFinal)
		if err != nil {
			return err
		}
		if !sol.RootFound {
			fmt.Printf("t=%.3f prey=%.4f predators=%.4f\n", sol.T, sol.Y[0], sol.Y[1])
			break
		}
		dir, err := it.RootInfo()
		if err != nil {
			return err
		}
		fmt.Printf("t=%.3f prey crossed %.1f (direction %+d)\n", sol.T, preyLimit, dir[0])
	}
	steps, err := it.Steps()
	if err != nil {
		return err
	}
	log.Info("forward run done", zap.Int64("steps", steps), zap.Int("checkpoints", rec.Saved()))

	// integrating the prey backward gives minus its time integral
	b, err := it.CreateBackward(func(t float64, y, yB, yBdot types.Vector) int {
		yBdot[0] = y[0]
		return types.StatusSuccess
	}, tFinal, []float64{0})
	if err != nil {
		return err
	}
	if err := it.EvolveBackward(0); err != nil {
		return err
	}
	state, err := b.State()
	if err != nil {
		return err
	}
	fmt.Printf("mean prey over [0, %.0f]: %.4f\n", tFinal, -state.Y[0]/tFinal)

	if p, found, err := rt.Store().Nearest(tFinal / 2); err == nil && found {
		fmt.Printf("checkpoint nearest t=%.1f: step %d t=%.3f prey=%.4f\n", tFinal/2, p.Step, p.T, p.Y[0])
	}
	return nil
}

func run(lc fx.Lifecycle, sd fx.Shutdowner, rt *sunbind.Runtime, log *zap.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				code := 0
				if err := solve(rt, log); err != nil {
					log.Error("solve failed", zap.Error(err))
					code = 1
				}
				if rt.Config().Metrics.Enabled && code == 0 {
					// keep serving /metrics until interrupted
					return
				}
				_ = sd.Shutdown(fx.ExitCode(code))
			}()
			return nil
		},
	})
}

func main() {
	path := os.Getenv("SUNBIND_CONFIG")
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	app := fx.New(
		fx.Provide(func() (types.Config, error) { return sunbind.LoadConfig(path) }),
		fx.Provide(newRuntime),
		fx.Provide(func(rt *sunbind.Runtime) *zap.Logger { return rt.Logger() }),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log.WithOptions(zap.IncreaseLevel(zap.WarnLevel))}
		}),
		fx.Invoke(registerMetrics),
		fx.Invoke(run),
	)
	app.Run()
}
