// Package modelcache loads tracked-device render models and their textures
// from the runtime, persists textures as PNG files and binds engine
// materials to the resulting meshes.
//
// Loads are asynchronous on the runtime side. Callers poll RenderModel every
// frame until it reports Ready or Failed. Failure is sticky: a failed slot is
// never retried until Reset.
package modelcache

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-vr/internal/engine/material"
	"github.com/Faultbox/midgard-vr/internal/engine/model"
	"github.com/Faultbox/midgard-vr/internal/engine/texture"
	"github.com/Faultbox/midgard-vr/internal/openvr"
	"github.com/Faultbox/midgard-vr/internal/vr/coords"
)

// LoadState is the progress of an asynchronous load.
type LoadState int

const (
	Loading LoadState = iota
	Ready
	Failed
)

func (s LoadState) String() string {
	switch s {
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	}
	return fmt.Sprintf("LoadState(%d)", int(s))
}

type modelEntry struct {
	device  string
	name    string
	payload *openvr.RenderModel
	mesh    *model.RenderModel
	state   LoadState
	texture int
	bound   bool
}

type textureEntry struct {
	id     openvr.TextureID
	name   string
	path   string
	state  LoadState
	cached bool
}

// Cache holds every model and texture slot handed out since the last Reset.
type Cache struct {
	models    openvr.RenderModels
	materials *material.Registry
	dir       string

	entries  []*modelEntry
	byName   map[string]int
	textures []*textureEntry
	byID     map[openvr.TextureID]int
}

// New returns an empty cache writing textures into dir.
func New(models openvr.RenderModels, materials *material.Registry, dir string) *Cache {
	return &Cache{
		models:    models,
		materials: materials,
		dir:       dir,
		byName:    make(map[string]int),
		byID:      make(map[openvr.TextureID]int),
	}
}

// Dir returns the texture cache directory.
func (c *Cache) Dir() string { return c.dir }

// SetDir changes where textures preloaded from now on are written.
func (c *Cache) SetDir(dir string) { c.dir = dir }

// PreloadRenderModel reserves a slot for a model and returns its index.
// Asking for the same model name again returns the same index.
func (c *Cache) PreloadRenderModel(device, name string) int {
	if idx, ok := c.byName[name]; ok {
		return idx
	}
	c.entries = append(c.entries, &modelEntry{
		device:  device,
		name:    name,
		state:   Loading,
		texture: -1,
	})
	idx := len(c.entries) - 1
	c.byName[name] = idx
	return idx
}

// PreloadRenderModelTexture reserves a slot for a runtime texture, keyed by
// its id. A PNG already present in the cache directory counts as loaded.
func (c *Cache) PreloadRenderModelTexture(device string, id openvr.TextureID) int {
	if idx, ok := c.byID[id]; ok {
		return idx
	}

	name := fmt.Sprintf("%s%d", device, id)
	path := filepath.Join(c.dir, name+".png")
	_, err := os.Stat(path)

	c.textures = append(c.textures, &textureEntry{
		id:     id,
		name:   name,
		path:   path,
		state:  Loading,
		cached: err == nil,
	})
	idx := len(c.textures) - 1
	c.byID[id] = idx
	return idx
}

// RenderModel advances the load of a model slot and returns the mesh once
// both the model and its texture are ready.
func (c *Cache) RenderModel(idx int) (*model.RenderModel, LoadState) {
	if idx < 0 || idx >= len(c.entries) {
		return nil, Failed
	}
	e := c.entries[idx]
	switch e.state {
	case Failed:
		return nil, Failed
	case Ready:
		return e.mesh, Ready
	}

	if e.mesh == nil {
		if st := c.loadModel(e); st != Ready {
			return nil, st
		}
	}

	if !e.bound && e.payload.DiffuseTextureID != openvr.InvalidTextureID {
		if e.texture < 0 {
			e.texture = c.PreloadRenderModelTexture(e.device, e.payload.DiffuseTextureID)
		}
		switch c.loadTexture(e.texture) {
		case Loading:
			return nil, Loading
		case Failed:
			e.state = Failed
			return nil, Failed
		}

		matName, err := c.materialFor(c.textures[e.texture])
		if err != nil {
			log().Error("VR render model material", zap.String("model", e.name), zap.Error(err))
			e.state = Failed
			return nil, Failed
		}
		e.mesh.SetMaterial(matName)
		e.bound = true
	}

	e.state = Ready
	return e.mesh, Ready
}

func (c *Cache) loadModel(e *modelEntry) LoadState {
	if c.models == nil {
		e.state = Failed
		return Failed
	}

	payload, err := c.models.LoadRenderModelAsync(e.name)
	if errors.Is(err, openvr.RenderModelErrorLoading) {
		return Loading
	}
	if err != nil {
		log().Warn("VR render model failed", zap.String("model", e.name), zap.Error(err))
		e.state = Failed
		return Failed
	}
	if payload == nil {
		e.state = Failed
		return Failed
	}
	e.payload = payload

	mesh, err := model.NewRenderModel(e.name, payload, coords.PointFromRuntime)
	if err != nil {
		log().Warn("VR render model rejected", zap.String("model", e.name), zap.Error(err))
		e.state = Failed
		return Failed
	}
	e.mesh = mesh
	return Ready
}

func (c *Cache) loadTexture(idx int) LoadState {
	t := c.textures[idx]
	if t.state != Loading {
		return t.state
	}
	if t.cached {
		t.state = Ready
		return Ready
	}
	if c.models == nil {
		t.state = Failed
		return Failed
	}

	tm, err := c.models.LoadTextureAsync(t.id)
	if errors.Is(err, openvr.RenderModelErrorLoading) {
		return Loading
	}
	if err != nil || tm == nil {
		log().Warn("VR render model texture failed", zap.String("texture", t.name), zap.Error(err))
		t.state = Failed
		return Failed
	}

	img, err := texture.FromBGRA(int(tm.Width), int(tm.Height), tm.Data)
	c.models.FreeTexture(tm)
	if err != nil {
		log().Warn("VR render model texture unreadable", zap.String("texture", t.name), zap.Error(err))
		t.state = Failed
		return Failed
	}
	if err := texture.WritePNG(t.path, img); err != nil {
		log().Error("VR texture cache write failed", zap.String("path", t.path), zap.Error(err))
		t.state = Failed
		return Failed
	}

	t.cached = true
	t.state = Ready
	return Ready
}

// materialFor returns the material mapped to a texture, creating an emissive
// shadow-casting one named after it when none exists.
func (c *Cache) materialFor(t *textureEntry) (string, error) {
	if name := c.materials.MapEntry(t.name); name != "" {
		return name, nil
	}
	m := &material.Material{
		Name:        t.name + "_Mat",
		MapTo:       t.name,
		DiffuseMap:  t.path,
		Emissive:    true,
		CastShadows: true,
	}
	if err := c.materials.Register(m); err != nil {
		return "", fmt.Errorf("creating placeholder material: %w", err)
	}
	return m.Name, nil
}

// RenderModelTextureName returns the texture name of a texture slot.
func (c *Cache) RenderModelTextureName(idx int) (string, bool) {
	if idx < 0 || idx >= len(c.textures) {
		return "", false
	}
	return c.textures[idx].name, true
}

// TexturePath returns where a texture slot's PNG lives.
func (c *Cache) TexturePath(idx int) (string, bool) {
	if idx < 0 || idx >= len(c.textures) {
		return "", false
	}
	return c.textures[idx].path, true
}

// TextureState returns the load state of a texture slot.
func (c *Cache) TextureState(idx int) LoadState {
	if idx < 0 || idx >= len(c.textures) {
		return Failed
	}
	return c.textures[idx].state
}

// ModelTexture returns the texture slot a model is bound to, or -1.
func (c *Cache) ModelTexture(idx int) int {
	if idx < 0 || idx >= len(c.entries) {
		return -1
	}
	return c.entries[idx].texture
}

// Len returns the number of model and texture slots.
func (c *Cache) Len() (models, textures int) {
	return len(c.entries), len(c.textures)
}

// Reset gives runtime payloads back and forgets every slot.
func (c *Cache) Reset() {
	for _, e := range c.entries {
		if e.payload != nil && c.models != nil {
			c.models.FreeRenderModel(e.payload)
		}
	}
	c.entries = nil
	c.textures = nil
	c.byName = make(map[string]int)
	c.byID = make(map[openvr.TextureID]int)
}
