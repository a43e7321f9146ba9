package world

import (
	"github.com/go-gl/mathgl/mgl32"
)

type BlockType uint8

const (
	BlockTypeAir BlockType = iota
	BlockTypeDirt
	BlockTypeSand
	BlockTypeGrass
	BlockTypeWood
	BlockTypeLeaves
	BlockTypePlanks
	BlockTypeGlass
	BlockTypeWater
	BlockTypeStone

	// NumBlockTypes is the size of the block catalogue. Any value >= NumBlockTypes is invalid.
	NumBlockTypes
)

// BlockProperties holds the static, per-kind data of a block type.
type BlockProperties struct {
	Name        string
	Solid       bool
	Transparent bool
	Color       mgl32.Vec3
	// Atlas tile (column, row); HasTile is false for kinds that are never drawn.
	AtlasCol, AtlasRow int
	HasTile            bool
}

var catalog = [NumBlockTypes]BlockProperties{
	BlockTypeAir:    {Name: "air", Transparent: true},
	BlockTypeDirt:   {Name: "dirt", Solid: true, Color: mgl32.Vec3{0.55, 0.27, 0.07}, AtlasCol: 0, HasTile: true},
	BlockTypeSand:   {Name: "sand", Solid: true, Color: mgl32.Vec3{0.76, 0.70, 0.50}, AtlasCol: 1, HasTile: true},
	BlockTypeGrass:  {Name: "grass", Solid: true, Color: mgl32.Vec3{0.13, 0.55, 0.13}, AtlasCol: 2, HasTile: true},
	BlockTypeWood:   {Name: "wood", Solid: true, Color: mgl32.Vec3{0.40, 0.26, 0.13}, AtlasCol: 3, HasTile: true},
	BlockTypeLeaves: {Name: "leaves", Solid: true, Transparent: true, Color: mgl32.Vec3{0.0, 0.39, 0.0}, AtlasCol: 4, HasTile: true},
	BlockTypePlanks: {Name: "planks", Solid: true, Color: mgl32.Vec3{0.72, 0.52, 0.04}, AtlasCol: 5, HasTile: true},
	BlockTypeGlass:  {Name: "glass", Solid: true, Transparent: true, Color: mgl32.Vec3{0.8, 0.9, 1.0}, AtlasCol: 6, HasTile: true},
	BlockTypeWater:  {Name: "water", Solid: true, Transparent: true, Color: mgl32.Vec3{0.0, 0.4, 0.8}, AtlasCol: 7, HasTile: true},
	BlockTypeStone:  {Name: "stone", Solid: true, Color: mgl32.Vec3{0.5, 0.5, 0.5}, AtlasCol: 8, HasTile: true},
}

// Properties returns the catalogue entry for t. Invalid kinds resolve to air.
func (t BlockType) Properties() BlockProperties {
	if !t.Valid() {
		return catalog[BlockTypeAir]
	}
	return catalog[t]
}

// Valid reports whether t is part of the catalogue.
func (t BlockType) Valid() bool {
	return t < NumBlockTypes
}

func (t BlockType) IsSolid() bool {
	return t.Properties().Solid
}

func (t BlockType) IsTransparent() bool {
	return t.Properties().Transparent
}

// Color returns the flat shading color of the block
func (t BlockType) Color() mgl32.Vec3 {
	return t.Properties().Color
}

// AtlasTile returns the (column, row) of the block's texture inside the atlas.
func (t BlockType) AtlasTile() (col, row int, ok bool) {
	p := t.Properties()
	return p.AtlasCol, p.AtlasRow, p.HasTile
}

func (t BlockType) String() string {
	if !t.Valid() {
		return "invalid"
	}
	return catalog[t].Name
}

// BlockTypeByName looks a kind up by its catalogue name.
func BlockTypeByName(name string) (BlockType, bool) {
	for i := range catalog {
		if catalog[i].Name == name {
			return BlockType(i), true
		}
	}
	return BlockTypeAir, false
}

// BlockFace identifies a face of a block
type BlockFace int

const (
	FaceNorth BlockFace = iota // +Z
	FaceSouth                  // -Z
	FaceEast                   // +X
	FaceWest                   // -X
	FaceTop
	FaceBottom
)

// Normal returns the unit offset towards the neighbouring cell across the face.
func (f BlockFace) Normal() [3]int {
	switch f {
	case FaceNorth:
		return [3]int{0, 0, 1}
	case FaceSouth:
		return [3]int{0, 0, -1}
	case FaceEast:
		return [3]int{1, 0, 0}
	case FaceWest:
		return [3]int{-1, 0, 0}
	case FaceTop:
		return [3]int{0, 1, 0}
	default:
		return [3]int{0, -1, 0}
	}
}
