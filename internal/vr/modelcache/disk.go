package modelcache

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/midgard-vr/internal/engine/texture"
)

// CachedFile is a texture PNG found in a cache directory.
type CachedFile struct {
	Path    string
	Size    int64
	ModTime time.Time
}

// Verified is the result of decoding one cached file.
type Verified struct {
	CachedFile
	Width, Height int
	Err           error
}

// List returns every PNG under dir, sorted by path. A missing directory is
// an empty cache.
func List(dir string) ([]CachedFile, error) {
	var files []CachedFile
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) && path == dir {
				return fs.SkipAll
			}
			return err
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".png") {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		files = append(files, CachedFile{Path: path, Size: info.Size(), ModTime: info.ModTime()})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing texture cache %s: %w", dir, err)
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, nil
}

// Verify fully decodes every file, at most workers at a time. The result
// keeps the order of files. It fails only when ctx is cancelled; decode
// errors are reported per file.
func Verify(ctx context.Context, files []CachedFile, workers int) ([]Verified, error) {
	out := make([]Verified, len(files))
	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for i, f := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			w, h, err := texture.VerifyPNG(f.Path)
			out[i] = Verified{CachedFile: f, Width: w, Height: h, Err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Clean deletes cached files. With onlyBroken set, only files that fail
// Verify are removed. It returns the removed paths.
func Clean(ctx context.Context, dir string, onlyBroken bool, workers int) ([]string, error) {
	files, err := List(dir)
	if err != nil {
		return nil, err
	}
	if onlyBroken {
		checked, err := Verify(ctx, files, workers)
		if err != nil {
			return nil, err
		}
		files = files[:0]
		for _, v := range checked {
			if v.Err != nil {
				files = append(files, v.CachedFile)
			}
		}
	}

	var removed []string
	for _, f := range files {
		if err := os.Remove(f.Path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return removed, fmt.Errorf("removing %s: %w", f.Path, err)
		}
		removed = append(removed, f.Path)
	}
	return removed, nil
}
