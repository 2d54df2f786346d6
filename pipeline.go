package xbpp

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/ptodt/xbpp/array"
)

// OutputPath returns the array file written for input when converting into
// dir with format f.
func OutputPath(dir, input string, f array.Format) string {
	return filepath.Join(dir, array.ReplaceExtension(filepath.Base(input), f.Extension()))
}

func (c *Converter) feedFiles(ctx context.Context, files []string) (<-chan string, <-chan error, error) {
	out := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)
		for _, file := range files {
			select {
			case out <- file:
			case <-ctx.Done():
				errc <- fmt.Errorf("batch cancelled: %w", ctx.Err())
				return
			}
		}
	}()
	return out, errc, nil
}

func (c *Converter) fileWorker(ctx context.Context, dir string, in <-chan string) (<-chan error, error) {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		for file := range in {
			if err := ctx.Err(); err != nil {
				errc <- err
				return
			}

			cfg := c.cfg
			// Give every array its own symbol unless one was chosen explicitly
			if name := array.Name(cfg.Format); name == "" || name == array.DefaultName {
				base := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
				cfg.Format = array.Rename(cfg.Format, array.Identifier(base))
			}

			if _, err := c.convertFile(cfg, file, OutputPath(dir, file, cfg.Format)); err != nil {
				errc <- err
				return
			}
		}
	}()
	return errc, nil
}

func waitForPipeline(cancel context.CancelFunc, errs ...<-chan error) error {
	errc := mergeErrors(errs...)
	var first error
	for err := range errc {
		if err != nil && first == nil {
			first = err
			cancel()
		}
	}
	return first
}

func mergeErrors(cs ...<-chan error) <-chan error {
	var wg sync.WaitGroup
	out := make(chan error, len(cs))
	wg.Add(len(cs))
	for _, c := range cs {
		go func(c <-chan error) {
			for n := range c {
				out <- n
			}
			wg.Done()
		}(c)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

// Batch converts every file in files, writing the results into dir. Files
// are converted concurrently; the first failure cancels the remaining work
// and is returned. Inputs that would write the same output file are
// rejected before anything is converted.
func (c *Converter) Batch(ctx context.Context, dir string, files []string) error {
	seen := make(map[string]string, len(files))
	for _, file := range files {
		out := OutputPath(dir, file, c.cfg.Format)
		if prev, ok := seen[out]; ok {
			return fmt.Errorf("%s and %s both convert to %s", prev, file, out)
		}
		seen[out] = file
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	var errcList []<-chan error

	in, errc, err := c.feedFiles(ctx, files)
	if err != nil {
		return err
	}
	errcList = append(errcList, errc)

	workers := runtime.NumCPU()
	if workers > len(files) {
		workers = len(files)
	}
	for i := 0; i < workers; i++ {
		errc, err := c.fileWorker(ctx, dir, in)
		if err != nil {
			return err
		}
		errcList = append(errcList, errc)
	}

	return waitForPipeline(cancelFunc, errcList...)
}
