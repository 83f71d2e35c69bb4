package modelcache

import (
	"context"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/Faultbox/midgard-vr/internal/engine/texture"
)

// fillCache writes two good PNGs, one truncated PNG and a non-PNG file.
func fillCache(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	good := texture.Solid(4, 2, color.RGBA{R: 255, A: 255})
	for _, name := range []string{"a.png", filepath.Join("sub", "b.png")} {
		if err := texture.WritePNG(filepath.Join(dir, name), good); err != nil {
			t.Fatalf("WritePNG: %v", err)
		}
	}
	data, err := os.ReadFile(filepath.Join(dir, "a.png"))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "broken.png"), data[:len(data)/2], 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return dir
}

func TestList(t *testing.T) {
	dir := fillCache(t)

	files, err := List(dir)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	want := []string{"a.png", "broken.png", filepath.Join("sub", "b.png")}
	if len(files) != len(want) {
		t.Fatalf("files: got %d, want %d", len(files), len(want))
	}
	for i, f := range files {
		if got := filepath.Join(dir, want[i]); f.Path != got {
			t.Errorf("file %d: got %s, want %s", i, f.Path, got)
		}
		if f.Size == 0 {
			t.Errorf("%s: size should be recorded", f.Path)
		}
	}
}

func TestListMissingDir(t *testing.T) {
	files, err := List(filepath.Join(t.TempDir(), "nope"))
	if err != nil || len(files) != 0 {
		t.Errorf("List(missing): got %d files, err %v; want none", len(files), err)
	}
}

func TestVerify(t *testing.T) {
	dir := fillCache(t)
	files, err := List(dir)
	if err != nil {
		t.Fatalf("List: %v", err)
	}

	checked, err := Verify(context.Background(), files, 2)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	for _, v := range checked {
		broken := filepath.Base(v.Path) == "broken.png"
		if broken != (v.Err != nil) {
			t.Errorf("%s: got err %v", v.Path, v.Err)
		}
		if !broken && (v.Width != 4 || v.Height != 2) {
			t.Errorf("%s: got %dx%d, want 4x2", v.Path, v.Width, v.Height)
		}
	}
}

func TestVerifyCancelled(t *testing.T) {
	dir := fillCache(t)
	files, _ := List(dir)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Verify(ctx, files, 1); err == nil {
		t.Error("Verify with a cancelled context should fail")
	}
}

func TestClean(t *testing.T) {
	dir := fillCache(t)

	removed, err := Clean(context.Background(), dir, true, 0)
	if err != nil {
		t.Fatalf("Clean broken: %v", err)
	}
	if len(removed) != 1 || filepath.Base(removed[0]) != "broken.png" {
		t.Errorf("removed: got %v, want [broken.png]", removed)
	}

	removed, err = Clean(context.Background(), dir, false, 0)
	if err != nil {
		t.Fatalf("Clean all: %v", err)
	}
	if len(removed) != 2 {
		t.Errorf("removed: got %d, want 2", len(removed))
	}
	if _, err := os.Stat(filepath.Join(dir, "notes.txt")); err != nil {
		t.Errorf("non-PNG files should be left alone: %v", err)
	}
}
