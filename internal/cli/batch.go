package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/shouni/chart-image-kit/pkg/domain"
)

// manifestEntry はバッチ実行のマニフェスト1行分です。
type manifestEntry struct {
	RunID        string              `json:"run_id"`
	ChartType    domain.ChartType    `json:"chart_type"`
	Seed         int64               `json:"seed"`
	ImagePath    string              `json:"image_path,omitempty"`
	MetadataPath string              `json:"metadata_path,omitempty"`
	Record       *domain.ChartRecord `json:"record,omitempty"`
	Error        string              `json:"error,omitempty"`
}

func (a *App) newBatchCmd() *cobra.Command {
	var (
		typeNames   []string
		seedFrom    int64
		seedTo      int64
		concurrency int
		rf          requestFlags
	)

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Generate every (type, seed) pair in parallel and write a JSONL manifest",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if seedFrom > seedTo {
				return fmt.Errorf("seed-from (%d) must not exceed seed-to (%d)", seedFrom, seedTo)
			}
			if concurrency < 1 {
				return fmt.Errorf("concurrency must be at least 1, got %d", concurrency)
			}

			types := domain.AllChartTypes()
			if len(typeNames) > 0 {
				types = make([]domain.ChartType, 0, len(typeNames))
				for _, name := range typeNames {
					t, err := domain.ParseChartType(name)
					if err != nil {
						return err
					}
					types = append(types, t)
				}
			}

			var reqs []domain.ChartRequest
			for _, t := range types {
				for seed := seedFrom; seed <= seedTo; seed++ {
					req, err := rf.request(t, seed)
					if err != nil {
						return err
					}
					reqs = append(reqs, req)
				}
			}

			core, err := a.newCore()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			runID := uuid.NewString()
			entries := make([]manifestEntry, len(reqs))

			g, gctx := errgroup.WithContext(ctx)
			g.SetLimit(concurrency)
			for i, req := range reqs {
				g.Go(func() error {
					entry := manifestEntry{RunID: runID, ChartType: req.Options.ChartType(), Seed: *req.Seed}
					res, err := core.Generate(gctx, req)
					if err != nil {
						if errors.Is(err, gctx.Err()) {
							return err
						}
						slog.WarnContext(gctx, "チャートの生成に失敗しました", "chart_type", entry.ChartType, "seed", entry.Seed, "error", err)
						entry.Error = err.Error()
					} else {
						entry.ImagePath = res.ImagePath
						entry.MetadataPath = res.MetadataPath
						entry.Record = &res.Record
					}
					entries[i] = entry
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}

			manifestPath := filepath.Join(core.Settings().OutputDir, fmt.Sprintf("manifest_%s.jsonl", runID))
			failed, err := writeManifest(manifestPath, entries)
			if err != nil {
				return err
			}

			slog.InfoContext(ctx, "バッチ生成が完了しました",
				"run_id", runID, "total", len(entries), "failed", failed, "manifest", manifestPath)
			fmt.Fprintf(a.stdout, "manifest: %s\n", manifestPath)
			if failed > 0 {
				return fmt.Errorf("%d of %d charts failed (see %s)", failed, len(entries), manifestPath)
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&typeNames, "types", nil, "Chart types to generate (default: all)")
	cmd.Flags().Int64Var(&seedFrom, "seed-from", 0, "First seed (inclusive)")
	cmd.Flags().Int64Var(&seedTo, "seed-to", 9, "Last seed (inclusive)")
	cmd.Flags().IntVarP(&concurrency, "concurrency", "j", 4, "Number of charts generated in parallel")
	rf.register(cmd)
	return cmd
}

// writeManifest はエントリを1行1件の JSON で書き出し、失敗件数を返します。
func writeManifest(path string, entries []manifestEntry) (int, error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("マニフェストの作成に失敗しました: %w", err)
	}
	defer f.Close()

	failed := 0
	enc := json.NewEncoder(f)
	for _, e := range entries {
		if e.Error != "" {
			failed++
		}
		if err := enc.Encode(e); err != nil {
			return failed, fmt.Errorf("マニフェストの書き込みに失敗しました: %w", err)
		}
	}
	return failed, f.Close()
}
