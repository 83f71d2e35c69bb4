package openvrtest

import (
	"github.com/Faultbox/midgard-vr/internal/openvr"
)

// RenderModels is a scriptable openvr.RenderModels. A load returns
// RenderModelErrorLoading for as many calls as Pending says, then the model
// (or the scripted error).
type RenderModels struct {
	Models       map[string]*openvr.RenderModel
	ModelPending map[string]int
	ModelErrs    map[string]error
	ModelCalls   map[string]int
	FreedModels  int

	Textures       map[openvr.TextureID]*openvr.TextureMap
	TexturePending map[openvr.TextureID]int
	TextureErrs    map[openvr.TextureID]error
	TextureCalls   map[openvr.TextureID]int
	FreedTextures  int
}

// NewRenderModels returns an empty render-model fake.
func NewRenderModels() *RenderModels {
	return &RenderModels{
		Models:         map[string]*openvr.RenderModel{},
		ModelPending:   map[string]int{},
		ModelErrs:      map[string]error{},
		ModelCalls:     map[string]int{},
		Textures:       map[openvr.TextureID]*openvr.TextureMap{},
		TexturePending: map[openvr.TextureID]int{},
		TextureErrs:    map[openvr.TextureID]error{},
		TextureCalls:   map[openvr.TextureID]int{},
	}
}

func (r *RenderModels) LoadRenderModelAsync(name string) (*openvr.RenderModel, error) {
	r.ModelCalls[name]++
	if r.ModelPending[name] > 0 {
		r.ModelPending[name]--
		return nil, openvr.RenderModelErrorLoading
	}
	if err := r.ModelErrs[name]; err != nil {
		return nil, err
	}
	m, ok := r.Models[name]
	if !ok {
		return nil, openvr.RenderModelErrorInvalidModel
	}
	return m, nil
}

func (r *RenderModels) FreeRenderModel(*openvr.RenderModel) { r.FreedModels++ }

func (r *RenderModels) LoadTextureAsync(id openvr.TextureID) (*openvr.TextureMap, error) {
	r.TextureCalls[id]++
	if r.TexturePending[id] > 0 {
		r.TexturePending[id]--
		return nil, openvr.RenderModelErrorLoading
	}
	if err := r.TextureErrs[id]; err != nil {
		return nil, err
	}
	t, ok := r.Textures[id]
	if !ok {
		return nil, openvr.RenderModelErrorInvalidTexture
	}
	return t, nil
}

func (r *RenderModels) FreeTexture(*openvr.TextureMap) { r.FreedTextures++ }

// Triangle returns a one-triangle model using the given diffuse texture.
func Triangle(texture openvr.TextureID) *openvr.RenderModel {
	return &openvr.RenderModel{
		Vertices: []openvr.RenderModelVertex{
			{Position: openvr.Vector3{0, 0, 0}, Normal: openvr.Vector3{0, 0, 1}, TexCoord: openvr.Vector2{0, 0}},
			{Position: openvr.Vector3{1, 0, 0}, Normal: openvr.Vector3{0, 0, 1}, TexCoord: openvr.Vector2{1, 0}},
			{Position: openvr.Vector3{0, 1, 0}, Normal: openvr.Vector3{0, 0, 1}, TexCoord: openvr.Vector2{0, 1}},
		},
		Indices:          []uint16{0, 1, 2},
		DiffuseTextureID: texture,
	}
}

// SolidTexture returns a w x h texture filled with one BGRA pixel value.
func SolidTexture(w, h uint16, b, g, r, a byte) *openvr.TextureMap {
	data := make([]byte, int(w)*int(h)*4)
	for i := 0; i < len(data); i += 4 {
		data[i], data[i+1], data[i+2], data[i+3] = b, g, r, a
	}
	return &openvr.TextureMap{Width: w, Height: h, Data: data}
}
