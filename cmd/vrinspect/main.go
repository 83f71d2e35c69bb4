// vrinspect is a graphical browser for the render model texture cache.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/AllenDang/cimgui-go/backend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/sqweek/dialog"

	"github.com/Faultbox/midgard-vr/internal/engine/texture"
	"github.com/Faultbox/midgard-vr/internal/engine/ui"
	"github.com/Faultbox/midgard-vr/internal/vr/modelcache"
)

const (
	leftPanelWidth = 360
	previewBg      = 0.2
)

func main() {
	runtime.LockOSThread()

	dir := flag.String("dir", "cache/vr", "Texture cache directory to open")
	flag.Parse()

	app, err := NewApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer app.Close()

	app.OpenDir(*dir)
	app.Run()
}

// App is the inspector state. Everything except the fields guarded by mu
// is touched only from the render loop.
type App struct {
	backend *ui.Backend

	dir      string
	files    []modelcache.CachedFile
	search   string
	selected int

	mu         sync.Mutex
	status     map[string]modelcache.Verified
	verifying  bool
	pendingDir string
	message    string

	preview     *backend.Texture
	previewPath string
	previewSize [2]int
	previewErr  error
	zoom        float32
}

// NewApp creates the inspector window.
func NewApp() (*App, error) {
	b, err := ui.NewBackend("VR Texture Cache", 1280, 800)
	if err != nil {
		return nil, err
	}
	return &App{
		backend:  b,
		selected: -1,
		status:   make(map[string]modelcache.Verified),
		zoom:     1,
	}, nil
}

// Run starts the main loop.
func (app *App) Run() {
	app.backend.Run(app.render)
}

// Close releases the preview texture.
func (app *App) Close() {
	app.releasePreview()
}

// OpenDir lists dir and makes it the current cache directory.
func (app *App) OpenDir(dir string) {
	files, err := modelcache.List(dir)
	if err != nil {
		app.setMessage(err.Error())
		return
	}
	app.dir = dir
	app.files = files
	app.selected = -1
	app.releasePreview()

	app.mu.Lock()
	app.status = make(map[string]modelcache.Verified)
	app.message = fmt.Sprintf("%d textures", len(files))
	app.mu.Unlock()

	app.backend.SetWindowTitle("VR Texture Cache - " + dir)
}

// openDirDialog runs the folder picker off the render loop; the choice is
// applied by render on the next frame.
func (app *App) openDirDialog() {
	go func() {
		dir, err := dialog.Directory().Title("Open Texture Cache").Browse()
		if err != nil {
			if err != dialog.ErrCancelled {
				fmt.Fprintf(os.Stderr, "Folder dialog error: %v\n", err)
			}
			return
		}
		app.mu.Lock()
		app.pendingDir = dir
		app.mu.Unlock()
	}()
}

// startVerify decodes every listed file in the background.
func (app *App) startVerify() {
	app.mu.Lock()
	if app.verifying {
		app.mu.Unlock()
		return
	}
	app.verifying = true
	app.message = "verifying..."
	app.mu.Unlock()

	files := append([]modelcache.CachedFile(nil), app.files...)
	go func() {
		checked, err := modelcache.Verify(context.Background(), files, runtime.NumCPU())

		app.mu.Lock()
		defer app.mu.Unlock()
		app.verifying = false
		if err != nil {
			app.message = err.Error()
			return
		}
		broken := 0
		for _, v := range checked {
			app.status[v.Path] = v
			if v.Err != nil {
				broken++
			}
		}
		app.message = fmt.Sprintf("%d textures, %d broken", len(checked), broken)
	}()
}

func (app *App) cleanBroken() {
	removed, err := modelcache.Clean(context.Background(), app.dir, true, runtime.NumCPU())
	if err != nil {
		app.setMessage(err.Error())
		return
	}
	app.OpenDir(app.dir)
	app.setMessage(fmt.Sprintf("removed %d broken textures", len(removed)))
}

func (app *App) setMessage(msg string) {
	app.mu.Lock()
	app.message = msg
	app.mu.Unlock()
}

func (app *App) render() {
	app.mu.Lock()
	dir := app.pendingDir
	app.pendingDir = ""
	app.mu.Unlock()
	if dir != "" {
		app.OpenDir(dir)
	}

	if ui.IsKeyPressed(imgui.KeyF5) {
		app.OpenDir(app.dir)
	}

	app.renderMenuBar()

	x, y, w, h := app.backend.GetViewport()
	flags := imgui.WindowFlagsNoMove | imgui.WindowFlagsNoResize | imgui.WindowFlagsNoCollapse

	imgui.SetNextWindowPos(imgui.NewVec2(x, y))
	imgui.SetNextWindowSize(imgui.NewVec2(leftPanelWidth, h))
	if imgui.BeginV("Textures", nil, flags) {
		app.renderFileList()
	}
	imgui.End()

	imgui.SetNextWindowPos(imgui.NewVec2(x+leftPanelWidth, y))
	imgui.SetNextWindowSize(imgui.NewVec2(w-leftPanelWidth, h))
	if imgui.BeginV("Preview", nil, flags) {
		app.renderPreview()
	}
	imgui.End()
}

func (app *App) renderMenuBar() {
	if !imgui.BeginMainMenuBar() {
		return
	}
	if imgui.BeginMenu("File") {
		if imgui.MenuItemBool("Open cache folder...") {
			app.openDirDialog()
		}
		if imgui.MenuItemBool("Reload") {
			app.OpenDir(app.dir)
		}
		imgui.EndMenu()
	}
	if imgui.BeginMenu("Cache") {
		if imgui.MenuItemBool("Verify all") {
			app.startVerify()
		}
		if imgui.MenuItemBool("Remove broken") {
			app.cleanBroken()
		}
		imgui.EndMenu()
	}
	imgui.EndMainMenuBar()
}

func (app *App) renderFileList() {
	app.mu.Lock()
	msg := app.message
	busy := app.verifying
	app.mu.Unlock()

	imgui.Text(app.dir)
	imgui.TextDisabled(msg)

	imgui.BeginDisabledV(busy)
	if imgui.Button("Verify") {
		app.startVerify()
	}
	imgui.EndDisabled()

	imgui.InputTextWithHint("##search", "Filter textures...", &app.search, 0, nil)
	imgui.Separator()

	if !imgui.BeginChildStrV("FileList", imgui.NewVec2(0, 0), imgui.ChildFlagsNone, 0) {
		imgui.EndChild()
		return
	}
	filter := strings.ToLower(app.search)
	for i, f := range app.files {
		name := app.relPath(f.Path)
		if filter != "" && !strings.Contains(strings.ToLower(name), filter) {
			continue
		}

		app.mu.Lock()
		v, checked := app.status[f.Path]
		app.mu.Unlock()

		if checked && v.Err != nil {
			imgui.PushStyleColorVec4(imgui.ColText, imgui.NewVec4(0.9, 0.3, 0.3, 1))
		}
		if imgui.SelectableBoolV(name+"##"+f.Path, i == app.selected, 0, imgui.NewVec2(0, 0)) {
			app.selected = i
		}
		if checked && v.Err != nil {
			imgui.PopStyleColor()
		}
	}
	imgui.EndChild()
}

func (app *App) renderPreview() {
	if app.selected < 0 || app.selected >= len(app.files) {
		imgui.TextDisabled("Select a texture")
		return
	}
	f := app.files[app.selected]
	if f.Path != app.previewPath {
		app.loadPreview(f.Path)
	}

	imgui.Text(app.relPath(f.Path))
	imgui.Text(fmt.Sprintf("File: %d bytes, modified %s", f.Size, f.ModTime.Format("2006-01-02 15:04:05")))

	app.mu.Lock()
	v, checked := app.status[f.Path]
	app.mu.Unlock()
	switch {
	case !checked:
		imgui.TextDisabled("Not verified")
	case v.Err != nil:
		imgui.TextColored(imgui.NewVec4(0.9, 0.3, 0.3, 1), v.Err.Error())
	default:
		imgui.TextColored(imgui.NewVec4(0.4, 0.8, 0.4, 1), "Verified")
	}

	if app.previewErr != nil {
		imgui.TextColored(imgui.NewVec4(0.9, 0.3, 0.3, 1), app.previewErr.Error())
		return
	}
	if app.preview == nil {
		return
	}

	imgui.Text(fmt.Sprintf("Size: %d x %d", app.previewSize[0], app.previewSize[1]))
	imgui.Text("Zoom:")
	imgui.SameLine()
	if imgui.Button("-##zoom") && app.zoom > 0.25 {
		app.zoom -= 0.25
	}
	imgui.SameLine()
	imgui.Text(fmt.Sprintf("%.0f%%", app.zoom*100))
	imgui.SameLine()
	if imgui.Button("+##zoom") && app.zoom < 4.0 {
		app.zoom += 0.25
	}
	imgui.SameLine()
	if imgui.Button("Reset##zoom") {
		app.zoom = 1.0
	}
	imgui.Separator()

	w := float32(app.previewSize[0]) * app.zoom
	h := float32(app.previewSize[1]) * app.zoom
	if imgui.BeginChildStrV("Image", imgui.NewVec2(0, 0), imgui.ChildFlagsNone, imgui.WindowFlagsHorizontalScrollbar) {
		imgui.ImageWithBgV(
			app.preview.ID,
			imgui.NewVec2(w, h),
			imgui.NewVec2(0, 0),
			imgui.NewVec2(1, 1),
			imgui.NewVec4(previewBg, previewBg, previewBg, 1.0),
			imgui.NewVec4(1, 1, 1, 1),
		)
	}
	imgui.EndChild()
}

func (app *App) loadPreview(path string) {
	app.releasePreview()
	app.previewPath = path

	img, err := texture.Load(path)
	if err != nil {
		app.previewErr = err
		return
	}
	app.preview = app.backend.NewTexture(img)
	app.previewSize = [2]int{img.Bounds().Dx(), img.Bounds().Dy()}
}

func (app *App) releasePreview() {
	if app.preview != nil {
		app.preview.Release()
		app.preview = nil
	}
	app.previewPath = ""
	app.previewErr = nil
}

func (app *App) relPath(path string) string {
	if rel, err := filepath.Rel(app.dir, path); err == nil {
		return rel
	}
	return path
}
