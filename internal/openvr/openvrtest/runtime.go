// Package openvrtest provides an in-memory VR runtime for tests and for the
// host's simulate mode. Every fake records what it was asked to do and can be
// scripted through its exported fields.
package openvrtest

import (
	"github.com/Faultbox/midgard-vr/internal/openvr"
)

var (
	_ openvr.Runtime      = (*Runtime)(nil)
	_ openvr.System       = (*System)(nil)
	_ openvr.Compositor   = (*Compositor)(nil)
	_ openvr.Input        = (*Input)(nil)
	_ openvr.Overlay      = (*Overlay)(nil)
	_ openvr.Chaperone    = (*Chaperone)(nil)
	_ openvr.RenderModels = (*RenderModels)(nil)
)

// RuntimeName is the name the fake runtime is registered under.
const RuntimeName = "simulated"

func init() {
	openvr.RegisterRuntime(RuntimeName, func() (openvr.Runtime, error) { return New(), nil })
}

// Runtime is a scriptable openvr.Runtime.
type Runtime struct {
	HmdPresent      bool
	InitErr         error
	RenderModelsErr error

	Sys    *System
	Comp   *Compositor
	In     *Input
	Ovl    *Overlay
	Chap   *Chaperone
	Models *RenderModels

	App           openvr.ApplicationType
	InitCalls     int
	ShutdownCalls int
	running       bool
}

// New returns a runtime with one connected HMD and every interface present.
func New() *Runtime {
	return &Runtime{
		HmdPresent: true,
		Sys:        NewSystem(),
		Comp:       NewCompositor(),
		In:         NewInput(),
		Ovl:        NewOverlay(),
		Chap:       NewChaperone(),
		Models:     NewRenderModels(),
	}
}

// Running reports whether Init succeeded and Shutdown has not been called.
func (r *Runtime) Running() bool { return r.running }

func (r *Runtime) IsHmdPresent() bool { return r.HmdPresent }

func (r *Runtime) Init(app openvr.ApplicationType) (openvr.System, error) {
	r.InitCalls++
	r.App = app
	if r.InitErr != nil {
		return nil, r.InitErr
	}
	r.running = true
	return r.Sys, nil
}

func (r *Runtime) Shutdown() {
	r.ShutdownCalls++
	r.running = false
}

func (r *Runtime) Compositor() openvr.Compositor {
	if !r.running || r.Comp == nil {
		return nil
	}
	return r.Comp
}

func (r *Runtime) Input() openvr.Input {
	if !r.running || r.In == nil {
		return nil
	}
	return r.In
}

func (r *Runtime) Overlay() openvr.Overlay {
	if !r.running || r.Ovl == nil {
		return nil
	}
	return r.Ovl
}

func (r *Runtime) Chaperone() openvr.Chaperone {
	if !r.running || r.Chap == nil {
		return nil
	}
	return r.Chap
}

func (r *Runtime) RenderModels() (openvr.RenderModels, error) {
	if r.RenderModelsErr != nil {
		return nil, r.RenderModelsErr
	}
	if !r.running || r.Models == nil {
		return nil, openvr.InitErrorNotInitialized
	}
	return r.Models, nil
}
