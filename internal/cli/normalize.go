package cli

import (
	"bytes"
	"context"
	"fmt"

	"github.com/shouni/go-remote-io/pkg/remoteio"
	"github.com/spf13/cobra"

	"github.com/shouni/chart-image-kit/pkg/imgutil"
)

func (a *App) newNormalizeCmd() *cobra.Command {
	var (
		size    int
		overlay string
		opacity float64
		out     string
		quality int
	)

	cmd := &cobra.Command{
		Use:   "normalize IMAGE",
		Short: "Pad an image onto a white square canvas and optionally tint it",
		Long: `IMAGE may be a local path, a gs:// or s3:// URI, or an http(s) URL.
Remote results are written back with the same storage clients; --out is
required when IMAGE is an http(s) URL.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src := args[0]
			opts := imgutil.NormalizeOptions{
				Size:           size,
				OverlayOpacity: &opacity,
				Destination:    out,
				JPEGQuality:    quality,
			}
			if overlay != "" {
				c, err := imgutil.ParseRGBA(overlay)
				if err != nil {
					return err
				}
				opts.Overlay = &c
			}

			dst := out
			if dst == "" {
				if imgutil.IsHTTPURL(src) {
					return fmt.Errorf("--out is required when IMAGE is an http(s) URL")
				}
				dst = src
			}

			if isLocalPath(src) && isLocalPath(dst) {
				if err := imgutil.NormalizeFile(src, opts); err != nil {
					return err
				}
			} else if err := a.normalizeRemote(cmd.Context(), src, dst, opts); err != nil {
				return err
			}

			fmt.Fprintf(a.stdout, "normalized: %s\n", dst)
			return nil
		},
	}

	cmd.Flags().IntVar(&size, "size", 224, "Minimum side length of the square canvas")
	cmd.Flags().StringVar(&overlay, "overlay", "", `Overlay colour, e.g. "rgba(230,240,250,1)" (default: none)`)
	cmd.Flags().Float64Var(&opacity, "opacity", imgutil.DefaultOverlayOpacity, "Overlay opacity in [0, 1]")
	cmd.Flags().StringVar(&out, "out", "", "Output path or gs:// / s3:// URI (default: overwrite IMAGE)")
	cmd.Flags().IntVar(&quality, "quality", imgutil.DefaultJPEGQuality, "JPEG quality when writing .jpg")
	return cmd
}

func isLocalPath(p string) bool {
	return !imgutil.IsHTTPURL(p) && !remoteio.IsRemoteURI(p)
}

// normalizeRemote は src をメモリに読み込んで正規化し、dst に書き戻します。
func (a *App) normalizeRemote(ctx context.Context, src, dst string, opts imgutil.NormalizeOptions) error {
	reader, closeReader, err := a.inputReader(ctx, src)
	if err != nil {
		return err
	}
	defer closeReader()

	source, err := imgutil.NewImageSource(reader, a.httpClient)
	if err != nil {
		return err
	}
	data, err := source.Fetch(ctx, src)
	if err != nil {
		return err
	}

	normalized, err := imgutil.NormalizeBytes(data, dst, opts)
	if err != nil {
		return err
	}

	writer, closeWriter, err := a.outputWriter(ctx, dst)
	if err != nil {
		return err
	}
	defer closeWriter()

	return writeAll(ctx, writer, dst, bytes.NewReader(normalized))
}
