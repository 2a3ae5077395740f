// Package blend implements the composite operators of the smudge engine.
//
// Operators work on 8-bit pixels with straight (non-premultiplied) alpha in
// the last channel of the pixel, as laid out by a color.Space. Each operator
// is bound to one color space and identified by a string id such as "over"
// or "copy".
package blend

import (
	"sort"
	"sync"

	"github.com/gogpu/smudge/internal/color"
)

// Operator ids.
const (
	IDOver       = "over"
	IDCopy       = "copy"
	IDBehind     = "behind"
	IDErase      = "erase"
	IDMultiply   = "multiply"
	IDScreen     = "screen"
	IDDarken     = "darken"
	IDLighten    = "lighten"
	IDOverlay    = "overlay"
	IDDifference = "difference"
)

// Params describes one composite call.
//
// Rows and Cols give the number of pixels processed. Row strides are in
// bytes. A SrcRowStride of zero means the first source pixel is used for
// every destination pixel. Mask is optional and holds one weight byte per
// pixel; nil behaves as a fully opaque mask.
type Params struct {
	Dst          []byte
	DstRowStride int

	Src          []byte
	SrcRowStride int

	Mask          []byte
	MaskRowStride int

	Rows, Cols int
	Opacity    uint8
}

// Op composites a source buffer into a destination buffer.
type Op interface {
	// ID returns the operator id.
	ID() string
	// Space returns the color space the operator understands.
	Space() *color.Space
	// Composite blends p.Src into p.Dst in place.
	Composite(p Params)
}

// pixelFunc blends one source pixel into one destination pixel.
// opacity already includes the mask weight and is never zero.
type pixelFunc func(dst, src []byte, alpha int, opacity uint8)

type op struct {
	id    string
	space *color.Space
	fn    pixelFunc
}

func (o *op) ID() string          { return o.id }
func (o *op) Space() *color.Space { return o.space }

func (o *op) Composite(p Params) {
	if p.Rows <= 0 || p.Cols <= 0 || p.Opacity == 0 {
		return
	}

	ps := o.space.PixelSize()
	alpha := o.space.AlphaIndex()
	srcInc := ps
	if p.SrcRowStride == 0 {
		srcInc = 0
	}

	for y := 0; y < p.Rows; y++ {
		dstRow := p.Dst[y*p.DstRowStride:]
		srcRow := p.Src[y*p.SrcRowStride:]
		var maskRow []byte
		if p.Mask != nil {
			maskRow = p.Mask[y*p.MaskRowStride:]
		}

		for x := 0; x < p.Cols; x++ {
			opacity := p.Opacity
			if maskRow != nil {
				opacity = mul(opacity, maskRow[x])
				if opacity == 0 {
					continue
				}
			}
			d := dstRow[x*ps : x*ps+ps]
			s := srcRow[x*srcInc : x*srcInc+ps]
			o.fn(d, s, alpha, opacity)
		}
	}
}

var factories = map[string]pixelFunc{
	IDOver:       compositeOver,
	IDCopy:       compositeCopy,
	IDBehind:     compositeBehind,
	IDErase:      compositeErase,
	IDMultiply:   separable(blendMultiply),
	IDScreen:     separable(blendScreen),
	IDDarken:     separable(blendDarken),
	IDLighten:    separable(blendLighten),
	IDOverlay:    separable(blendOverlay),
	IDDifference: separable(blendDifference),
}

type opKey struct {
	space string
	id    string
}

var (
	cacheMu sync.RWMutex
	cache   = make(map[opKey]Op)
)

// Lookup resolves the operator id within space.
// It reports false for unknown ids or a nil space.
func Lookup(space *color.Space, id string) (Op, bool) {
	if space == nil {
		return nil, false
	}
	key := opKey{space: space.ID(), id: id}

	cacheMu.RLock()
	o, ok := cache[key]
	cacheMu.RUnlock()
	if ok {
		return o, true
	}

	fn, ok := factories[id]
	if !ok {
		return nil, false
	}

	cacheMu.Lock()
	defer cacheMu.Unlock()
	if o, ok := cache[key]; ok {
		return o, true
	}
	o = &op{id: id, space: space, fn: fn}
	cache[key] = o
	return o, true
}

// IDs returns all operator ids in sorted order.
func IDs() []string {
	ids := make([]string, 0, len(factories))
	for id := range factories {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
