package main

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"

	"blockworld/internal/world"

	"github.com/pkg/errors"
	"golang.org/x/image/draw"
)

const previewScale = 4

// renderPreview paints the top solid block of every loaded column, one pixel per column,
// shaded by height. Unloaded columns stay transparent.
func renderPreview(w *world.World) *image.RGBA {
	chunks := w.Chunks()
	if len(chunks) == 0 {
		return image.NewRGBA(image.Rect(0, 0, 1, 1))
	}

	minX, minZ, maxX, maxZ := chunks[0].X, chunks[0].Z, chunks[0].X, chunks[0].Z
	for _, c := range chunks {
		minX, maxX = min(minX, c.X), max(maxX, c.X)
		minZ, maxZ = min(minZ, c.Z), max(maxZ, c.Z)
	}

	img := image.NewRGBA(image.Rect(0, 0, (maxX-minX+1)*world.ChunkSizeX, (maxZ-minZ+1)*world.ChunkSizeZ))
	for _, c := range chunks {
		ox := (c.X - minX) * world.ChunkSizeX
		oz := (c.Z - minZ) * world.ChunkSizeZ
		for z := 0; z < world.ChunkSizeZ; z++ {
			for x := 0; x < world.ChunkSizeX; x++ {
				y := c.HighestSolid(x, z)
				if y < 0 {
					continue
				}
				img.SetRGBA(ox+x, oz+z, columnColor(c.GetBlock(x, y, z), y))
			}
		}
	}
	return img
}

func columnColor(b world.BlockType, y int) color.RGBA {
	col := b.Color()
	shade := 0.6 + 0.4*float32(y)/float32(world.ChunkSizeY-1)
	return color.RGBA{
		R: uint8(min(col.X()*shade, 1) * 255),
		G: uint8(min(col.Y()*shade, 1) * 255),
		B: uint8(min(col.Z()*shade, 1) * 255),
		A: 255,
	}
}

// writePreview renders the loaded world, upscales it by scale and writes it as PNG.
func writePreview(path string, w *world.World, scale int) error {
	src := renderPreview(w)
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*scale, b.Dy()*scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrapf(err, "create preview dir for %s", path)
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create preview %s", path)
	}
	defer f.Close()
	if err := png.Encode(f, dst); err != nil {
		return errors.Wrapf(err, "encode preview %s", path)
	}
	return errors.Wrapf(f.Close(), "close preview %s", path)
}
