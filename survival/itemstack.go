package survival

// itemEmptySlot is the sentinel item-id meaning "empty slot"; it
// suppresses the trailing count+uses fields everywhere an item stack
// appears on the wire.
const itemEmptySlot = -1

// ItemStack is the (id, count, uses) triple used by block placement,
// window click, set slot, and window-items arrays. Count and Uses are
// meaningful only when ID != -1 (Empty reports that case).
type ItemStack struct {
	ID    int16
	Count int8
	Uses  int16
}

// Empty reports whether the stack is the sentinel empty slot.
func (s ItemStack) Empty() bool {
	return s.ID == itemEmptySlot
}

// itemStackWireSize reports the number of bytes an ItemStack occupies
// at the given offset (relative to the buffer's unconsumed front):
// 2 bytes for an empty slot, 5 bytes otherwise.
func itemStackWireSize(buf *Buffer, offset int) (int, error) {
	idBytes, ok := buf.PeekAt(offset, shortSize)
	if !ok {
		return 0, ErrNeedMore
	}
	id := int16(uint16(idBytes[0])<<8 | uint16(idBytes[1]))
	if id == itemEmptySlot {
		return shortSize, nil
	}
	return shortSize + byteSize + shortSize, nil
}

// ReadItemStack consumes an ItemStack: the id, and — iff id != -1 —
// the count and uses fields.
func (b *Buffer) ReadItemStack() ItemStack {
	id := b.ReadShort()
	if id == itemEmptySlot {
		return ItemStack{ID: id}
	}
	count := b.ReadByte()
	uses := b.ReadShort()
	return ItemStack{ID: id, Count: count, Uses: uses}
}

// WriteItemStack serializes an ItemStack, inverse of ReadItemStack.
func (b *Buffer) WriteItemStack(s ItemStack) {
	b.WriteShort(s.ID)
	if s.ID == itemEmptySlot {
		return
	}
	b.WriteByte(s.Count)
	b.WriteShort(s.Uses)
}

// ReadItemStackNoSentinel consumes the PickupSpawn wire shape: an
// item stack whose id is never -1, so count and uses are always
// present (no sentinel check).
func (b *Buffer) ReadItemStackNoSentinel() ItemStack {
	id := b.ReadShort()
	count := b.ReadByte()
	uses := b.ReadShort()
	return ItemStack{ID: id, Count: count, Uses: uses}
}

// WriteItemStackNoSentinel serializes the PickupSpawn item-stack
// shape: id, count, uses, unconditionally.
func (b *Buffer) WriteItemStackNoSentinel(s ItemStack) {
	b.WriteShort(s.ID)
	b.WriteByte(s.Count)
	b.WriteShort(s.Uses)
}
