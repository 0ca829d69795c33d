package cli

import (
	"context"
	"fmt"
	"time"

	"transaction_form/internal/adapters/storage"
	"transaction_form/internal/fub"
	"transaction_form/platform/cache"
	"transaction_form/platform/config"
	"transaction_form/platform/db"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const checkTimeout = 10 * time.Second

type probe struct {
	name string
	run  func(ctx context.Context) error
}

type probeResult struct {
	name string
	err  error
}

func checkCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Probe the CRM and every configured backing service",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := e.requireAPIKey(); err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), checkTimeout)
			defer cancel()

			results := runProbes(ctx, e.probes())

			var failed error
			for _, r := range results {
				if r.err != nil {
					failLabel.Fprint(e.out, "FAIL ")
					fmt.Fprintf(e.out, "%s: %v\n", r.name, r.err)
					if failed == nil {
						failed = r.err
					}
					continue
				}
				okLabel.Fprint(e.out, "OK   ")
				fmt.Fprintln(e.out, r.name)
			}
			if failed != nil {
				return &ExitError{Code: ExitUpstream, Err: fmt.Errorf("check failed: %w", failed)}
			}
			return nil
		},
	}
}

func (e *env) probes() []probe {
	cfg := e.cfg
	probes := []probe{{
		name: "followupboss",
		run: func(ctx context.Context) error {
			return fub.NewModule(cfg, nil, e.log).Service().Ping(ctx)
		},
	}}

	if cfg.GetRedisURL() != "" {
		probes = append(probes, probe{name: "redis", run: func(ctx context.Context) error {
			rdb, err := cache.NewRedisClient(ctx, cfg)
			if err != nil {
				return err
			}
			return rdb.Close()
		}})
	}

	switch cfg.GetFormStore() {
	case config.FormStorePostgres:
		probes = append(probes, probe{name: "postgres", run: func(ctx context.Context) error {
			pool, err := db.NewPool(ctx, cfg)
			if err != nil {
				return err
			}
			defer pool.Close()
			return db.NewPoolAdapter(pool).Ping(ctx)
		}})
	case config.FormStoreMinIO:
		probes = append(probes, probe{name: "minio", run: func(ctx context.Context) error {
			objects, err := storage.NewMinIOService(cfg)
			if err != nil {
				return err
			}
			_, err = objects.ListKeys(ctx, cfg.GetMinioBucketForms(), "forms/")
			return err
		}})
	}
	return probes
}

// runProbes runs every probe concurrently. Results keep the probe order and
// one failure does not cancel the others.
func runProbes(ctx context.Context, probes []probe) []probeResult {
	results := make([]probeResult, len(probes))
	var g errgroup.Group
	for i, p := range probes {
		g.Go(func() error {
			results[i] = probeResult{name: p.name, err: p.run(ctx)}
			return nil
		})
	}
	_ = g.Wait()
	return results
}
