package item

import "blockworld/internal/world"

// MaxStackSize is the most items of one kind a slot can hold.
const MaxStackSize = 64

// ItemStack represents a stack of blocks held in an inventory slot.
// The zero value is an empty slot.
type ItemStack struct {
	Type  world.BlockType
	Count int
}

// NewItemStack creates a new item stack
func NewItemStack(t world.BlockType, count int) ItemStack {
	return ItemStack{
		Type:  t,
		Count: count,
	}
}

// IsEmpty reports whether the slot holds nothing.
func (s ItemStack) IsEmpty() bool {
	return s.Count <= 0 || s.Type == world.BlockTypeAir
}

// Room returns how many more items of the same kind fit on this stack.
func (s ItemStack) Room() int {
	if s.IsEmpty() {
		return MaxStackSize
	}
	return max(MaxStackSize-s.Count, 0)
}

// IsItemEqual checks if two stacks contain the same item type
func (s ItemStack) IsItemEqual(other ItemStack) bool {
	return s.Type == other.Type
}
