package system

import (
	"image"
	"sync"
)

// ImagePool reuses frame buffers of equal size so the image renderer does
// not allocate a full RGBA picture on every change.
type ImagePool struct {
	pools map[string]*sync.Pool
	mu    sync.RWMutex
}

func NewImagePool() *ImagePool {
	return &ImagePool{pools: make(map[string]*sync.Pool)}
}

var framePool = NewImagePool()

// GetImage returns a buffer with the given bounds from the shared pool.
// Its pixels are whatever the previous user left behind.
func GetImage(rect image.Rectangle) *image.RGBA {
	return framePool.Get(rect)
}

// PutImage hands a buffer back to the shared pool.
func PutImage(img *image.RGBA) {
	framePool.Put(img)
}

func (p *ImagePool) Get(rect image.Rectangle) *image.RGBA {
	key := rect.String()
	p.mu.RLock()
	pool, ok := p.pools[key]
	p.mu.RUnlock()

	if !ok {
		p.mu.Lock()
		pool, ok = p.pools[key]
		if !ok {
			pool = &sync.Pool{
				New: func() any {
					return image.NewRGBA(rect)
				},
			}
			p.pools[key] = pool
		}
		p.mu.Unlock()
	}

	return pool.Get().(*image.RGBA)
}

// Put ignores buffers of a size that was never requested.
func (p *ImagePool) Put(img *image.RGBA) {
	if img == nil {
		return
	}
	p.mu.RLock()
	pool, ok := p.pools[img.Rect.String()]
	p.mu.RUnlock()

	if ok {
		pool.Put(img)
	}
}
