package inventory

import (
	"blockworld/internal/item"
	"blockworld/internal/world"
)

const (
	ToolbarSize = 9
	StorageSize = 27
	Size        = ToolbarSize + StorageSize
)

// Inventory holds the toolbar (slots 0-8) followed by the storage area (slots 9-35).
// Slots are plain values; moving items between them is an index swap.
type Inventory struct {
	Slots    [Size]item.ItemStack
	selected int // toolbar index 0-8
}

func New() *Inventory {
	return &Inventory{}
}

// WithStarterItems returns an inventory with a full stack of every placeable block
// spread across the toolbar.
func WithStarterItems() *Inventory {
	inv := New()
	starter := []world.BlockType{
		world.BlockTypeDirt,
		world.BlockTypeGrass,
		world.BlockTypeSand,
		world.BlockTypeWood,
		world.BlockTypePlanks,
		world.BlockTypeLeaves,
		world.BlockTypeGlass,
		world.BlockTypeStone,
	}
	for i, t := range starter {
		inv.Slots[i] = item.NewItemStack(t, item.MaxStackSize)
	}
	return inv
}

// Slot returns the stack at index i, or an empty stack when i is out of range.
func (inv *Inventory) Slot(i int) item.ItemStack {
	if i < 0 || i >= Size {
		return item.ItemStack{}
	}
	return inv.Slots[i]
}

// Add puts n items of kind t into the inventory, topping up existing stacks first and
// then filling empty slots, both in index order. Returns true if everything fit; when it
// doesn't, whatever fit stays added.
func (inv *Inventory) Add(t world.BlockType, n int) bool {
	if t == world.BlockTypeAir || !t.Valid() || n <= 0 {
		return false
	}
	probe := item.NewItemStack(t, n)

	for i := range inv.Slots {
		s := &inv.Slots[i]
		if s.IsEmpty() || !s.IsItemEqual(probe) {
			continue
		}
		toAdd := min(n, s.Room())
		s.Count += toAdd
		n -= toAdd
		if n == 0 {
			return true
		}
	}

	for i := range inv.Slots {
		if !inv.Slots[i].IsEmpty() {
			continue
		}
		toAdd := min(n, item.MaxStackSize)
		inv.Slots[i] = item.NewItemStack(t, toAdd)
		n -= toAdd
		if n == 0 {
			return true
		}
	}
	return false
}

// RemoveSelected takes n items from the selected toolbar slot. It fails without
// changing anything when the slot holds fewer than n.
func (inv *Inventory) RemoveSelected(n int) bool {
	s := &inv.Slots[inv.selected]
	if n <= 0 || s.IsEmpty() || s.Count < n {
		return false
	}
	s.Count -= n
	if s.Count == 0 {
		*s = item.ItemStack{}
	}
	return true
}

// Selected returns the stack in the selected toolbar slot.
func (inv *Inventory) Selected() item.ItemStack {
	return inv.Slots[inv.selected]
}

// SelectedBlock returns the kind to place from the selected slot, false when it is empty.
func (inv *Inventory) SelectedBlock() (world.BlockType, bool) {
	s := inv.Selected()
	if s.IsEmpty() {
		return world.BlockTypeAir, false
	}
	return s.Type, true
}

// SelectedSlot returns the selected toolbar index.
func (inv *Inventory) SelectedSlot() int {
	return inv.selected
}

// Next selects the toolbar slot to the right, wrapping around.
func (inv *Inventory) Next() {
	inv.selected = (inv.selected + 1) % ToolbarSize
}

// Prev selects the toolbar slot to the left, wrapping around.
func (inv *Inventory) Prev() {
	inv.selected = (inv.selected + ToolbarSize - 1) % ToolbarSize
}

// Select picks toolbar slot i. Out of range indices are ignored.
func (inv *Inventory) Select(i int) bool {
	if i < 0 || i >= ToolbarSize {
		return false
	}
	inv.selected = i
	return true
}

// Move transfers the stack at from onto to. Matching kinds merge as far as the target
// has room; anything else swaps the two slots.
func (inv *Inventory) Move(from, to int) bool {
	if from < 0 || from >= Size || to < 0 || to >= Size || from == to {
		return false
	}
	src, dst := &inv.Slots[from], &inv.Slots[to]
	if src.IsEmpty() {
		return false
	}

	if !dst.IsEmpty() && dst.IsItemEqual(*src) && dst.Room() > 0 {
		moved := min(src.Count, dst.Room())
		dst.Count += moved
		src.Count -= moved
		if src.Count == 0 {
			*src = item.ItemStack{}
		}
		return true
	}

	inv.Slots[from], inv.Slots[to] = inv.Slots[to], inv.Slots[from]
	return true
}

// Count returns the total number of items of kind t across all slots.
func (inv *Inventory) Count(t world.BlockType) int {
	total := 0
	for _, s := range inv.Slots {
		if !s.IsEmpty() && s.Type == t {
			total += s.Count
		}
	}
	return total
}

// FirstEmpty returns the index of the first empty slot, or -1 when the inventory is full.
func (inv *Inventory) FirstEmpty() int {
	for i, s := range inv.Slots {
		if s.IsEmpty() {
			return i
		}
	}
	return -1
}
