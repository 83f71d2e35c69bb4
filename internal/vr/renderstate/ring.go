package renderstate

import (
	"fmt"

	"github.com/Faultbox/midgard-vr/internal/gpu"
)

const (
	// MinRingDepth keeps the compositor from sampling a texture while the
	// next frame resolves into it.
	MinRingDepth = 2
	// DefaultRingDepth is used when nothing else is configured.
	DefaultRingDepth = 3
)

// Ring is a fixed set of textures eye images are resolved into before
// submission, used round robin.
type Ring struct {
	textures []gpu.Texture
	current  int
}

// NewRing allocates depth textures of the given size. depth is raised to
// MinRingDepth when smaller.
func NewRing(device gpu.Device, depth, width, height int, format gpu.Format) (*Ring, error) {
	if depth < MinRingDepth {
		depth = MinRingDepth
	}

	r := &Ring{textures: make([]gpu.Texture, 0, depth)}
	for i := 0; i < depth; i++ {
		tex, err := device.NewTexture(width, height, format)
		if err != nil {
			r.Release()
			return nil, fmt.Errorf("creating eye ring slot %d: %w", i, err)
		}
		r.textures = append(r.textures, tex)
	}
	return r, nil
}

// Current returns the slot the next resolve goes into.
func (r *Ring) Current() gpu.Texture {
	if len(r.textures) == 0 {
		return nil
	}
	return r.textures[r.current]
}

// Advance moves to the next slot.
func (r *Ring) Advance() {
	if len(r.textures) == 0 {
		return
	}
	r.current = (r.current + 1) % len(r.textures)
}

// Len returns the ring depth.
func (r *Ring) Len() int {
	return len(r.textures)
}

// Release frees every slot.
func (r *Ring) Release() {
	for _, tex := range r.textures {
		tex.Release()
	}
	r.textures = nil
	r.current = 0
}
