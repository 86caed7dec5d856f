package main

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"

	"golang.org/x/image/draw"

	"voxmesh/internal/meshing"
	"voxmesh/internal/voxel"
)

// Each direction is drawn as 32 depth slices of 32x32 cells, tiled eight
// across with a one pixel gutter. Within a slice x is the row and y the bit.
const (
	tilesPerRow = 8
	tileStride  = voxel.ChunkSize + 1
)

var gutter = color.RGBA{R: 24, G: 24, B: 24, A: 255}

func blockRGBA(bt voxel.BlockType) color.RGBA {
	c := bt.Color()
	return color.RGBA{R: uint8(c[0] * 255), G: uint8(c[1] * 255), B: uint8(c[2] * 255), A: 255}
}

// planeImage renders every block type's plane for direction d.
func planeImage(ps *meshing.Planes, d voxel.Direction) *image.RGBA {
	rows := voxel.ChunkSize / tilesPerRow
	img := image.NewRGBA(image.Rect(0, 0, tilesPerRow*tileStride-1, rows*tileStride-1))
	draw.Draw(img, img.Bounds(), image.NewUniform(gutter), image.Point{}, draw.Src)
	for depth := range voxel.ChunkSize {
		ox := depth % tilesPerRow * tileStride
		oy := depth / tilesPerRow * tileStride
		draw.Draw(img, image.Rect(ox, oy, ox+voxel.ChunkSize, oy+voxel.ChunkSize), image.Black, image.Point{}, draw.Src)
	}
	for bt := voxel.BlockType(1); bt < voxel.NumBlockTypes; bt++ {
		pl := ps.Get(d, bt)
		if pl == nil {
			continue
		}
		c := blockRGBA(bt)
		for depth := range pl {
			ox := depth % tilesPerRow * tileStride
			oy := depth / tilesPerRow * tileStride
			for row, col := range pl[depth] {
				for bit := range voxel.ChunkSize {
					if col>>bit&1 != 0 {
						img.SetRGBA(ox+row, oy+bit, c)
					}
				}
			}
		}
	}
	return img
}

// dumpPlanes writes one PNG per direction into dir, upscaled by scale with
// nearest-neighbour sampling, and returns the file paths.
func dumpPlanes(dir string, key voxel.ChunkKey, ps *meshing.Planes, scale int) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("dump planes: %w", err)
	}
	scale = max(scale, 1)
	var files []string
	for _, d := range voxel.Directions {
		src := planeImage(ps, d)
		b := src.Bounds()
		dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*scale, b.Dy()*scale))
		draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)

		name := filepath.Join(dir, fmt.Sprintf("chunk_%d_%d_%d_%s.png", key.X, key.Y, key.Z, d))
		if err := writePNG(name, dst); err != nil {
			return files, err
		}
		files = append(files, name)
	}
	return files, nil
}

func writePNG(name string, img image.Image) error {
	f, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("dump planes: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", name, err)
	}
	return f.Close()
}
