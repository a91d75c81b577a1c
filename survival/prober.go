package survival

import "encoding/binary"

// Probe decides whether buf currently holds a complete packet for the
// opcode at its front, without consuming anything. It returns the
// total byte length of that packet (including the opcode byte) on
// success.
//
// Per the two-phase contract: a NeedMore result means the caller
// should wait for more bytes and probe again — the same bytes must
// never be treated as Malformed later. A Malformed result is
// terminal.
//
// dir selects which of the two wire shapes to probe for opcodes whose
// request and response payloads differ (presently only Login); every
// other opcode probes identically regardless of dir.
func Probe(dir Direction, buf *Buffer) (int, error) {
	opcodeByte, ok := buf.PeekAt(0, byteSize)
	if !ok {
		return 0, ErrNeedMore
	}
	opcode := opcodeByte[0]

	if !legalDirection(dir, opcode) {
		return 0, unsupportedOpcodeErr(dir, opcode)
	}

	switch opcode {
	case OpKeepAlive:
		return fixedTotal(buf, 5)
	case OpLogin:
		if dir == Request {
			return probeStringTail(buf, 1+4, 8+4+4)
		}
		return probeStringTail(buf, 1+4, 8+4+1+1+1+1)
	case OpHandshake, OpChat, OpDisconnect:
		return probeStringTail(buf, 1, 0)
	case OpTimeUpdate:
		return fixedTotal(buf, 9)
	case OpEntityEquipment:
		return fixedTotal(buf, 11)
	case OpSpawnPosition:
		return fixedTotal(buf, 13)
	case OpUseEntity:
		return fixedTotal(buf, 10)
	case OpUpdateHealth:
		return fixedTotal(buf, 9)
	case OpRespawn:
		return fixedTotal(buf, 14)
	case OpOnGround:
		return fixedTotal(buf, 2)
	case OpPlayerPosition:
		return fixedTotal(buf, 34)
	case OpPlayerLook:
		return fixedTotal(buf, 10)
	case OpPlayerMoveLook:
		return fixedTotal(buf, 42)
	case OpPlayerDigging:
		return fixedTotal(buf, 12)
	case OpBlockPlacement:
		return probeItemStackTail(buf, 1+4+1+4+1)
	case OpHoldChange:
		return fixedTotal(buf, 3)
	case OpAnimation:
		return fixedTotal(buf, 6)
	case OpEntityAction:
		return fixedTotal(buf, 6)
	case OpNamedEntitySpawn:
		return probeStringTail(buf, 1+4, 4*3+1+1+2)
	case OpPickupSpawn:
		return fixedTotal(buf, 25)
	case OpCollectItem:
		return fixedTotal(buf, 9)
	case OpSpawnObject:
		return probeSpawnObject(buf)
	case OpSpawnMob:
		return probeSpawnMob(buf)
	case OpPainting:
		return probeStringTail(buf, 1+4, 4*3+4)
	case OpExperienceOrb:
		return fixedTotal(buf, 19)
	case OpEntityVelocity:
		return fixedTotal(buf, 11)
	case OpEntityDestroy, OpEntityCreate:
		return fixedTotal(buf, 5)
	case OpEntityRelativeMove:
		return fixedTotal(buf, 8)
	case OpEntityLook:
		return fixedTotal(buf, 7)
	case OpEntityLookMove:
		return fixedTotal(buf, 10)
	case OpEntityTeleport:
		return fixedTotal(buf, 19)
	case OpEntityStatus:
		return fixedTotal(buf, 6)
	case OpEntityAttach:
		return fixedTotal(buf, 9)
	case OpEntityMetadata:
		return probeMetadataTail(buf, 1+4)
	case OpEntityEffect:
		return fixedTotal(buf, 9)
	case OpRemoveEntityEffect:
		return fixedTotal(buf, 6)
	case OpExperience:
		return fixedTotal(buf, 5)
	case OpPreChunk:
		return fixedTotal(buf, 10)
	case OpMapChunk:
		return probeMapChunk(buf)
	case OpMultiBlockChange:
		return probeMultiBlockChange(buf)
	case OpBlockChange:
		return fixedTotal(buf, 12)
	case OpBlockAction:
		return fixedTotal(buf, 13)
	case OpExplosion:
		return probeExplosion(buf)
	case OpSoundEffect:
		return fixedTotal(buf, 18)
	case OpState:
		return fixedTotal(buf, 3)
	case OpThunderbolt:
		return fixedTotal(buf, 18)
	case OpOpenWindow:
		return probeStringTail(buf, 1+1+1, 1)
	case OpCloseWindow:
		return fixedTotal(buf, 2)
	case OpWindowClick:
		return probeItemStackTail(buf, 1+1+2+1+2+1)
	case OpSetSlot:
		return probeItemStackTail(buf, 1+1+2)
	case OpWindowItems:
		return probeWindowItems(buf)
	case OpUpdateProgressBar:
		return fixedTotal(buf, 6)
	case OpTransaction:
		return fixedTotal(buf, 5)
	case OpCreativeInventoryAction:
		return fixedTotal(buf, 9)
	case OpUpdateSign:
		return probeUpdateSign(buf)
	case OpItemData:
		return probeItemData(buf)
	case OpIncrementStatistic:
		return fixedTotal(buf, 6)
	case OpPlayerListItem:
		return probeStringTail(buf, 1, 1+2)
	case OpListPing:
		return fixedTotal(buf, 1)
	default:
		return 0, malformedf("unknown opcode 0x%02X", opcode)
	}
}

// legalDirection reports whether opcode may legally be parsed on dir.
// Ping is legal only for Disconnect, the synthesized reply to a
// ListPing.
func legalDirection(dir Direction, opcode byte) bool {
	switch opcode {
	case OpDisconnect:
		return dir == Request || dir == Response || dir == Ping
	case OpKeepAlive, OpLogin, OpHandshake, OpChat, OpRespawn, OpPlayerMoveLook,
		OpAnimation, OpEntityMetadata, OpEntityEffect, OpRemoveEntityEffect,
		OpCloseWindow, OpTransaction, OpCreativeInventoryAction, OpUpdateSign:
		return dir == Request || dir == Response
	case OpUseEntity, OpOnGround, OpPlayerPosition, OpPlayerLook, OpPlayerDigging,
		OpBlockPlacement, OpHoldChange, OpEntityAction, OpWindowClick,
		OpIncrementStatistic, OpListPing:
		return dir == Request
	default:
		return dir == Response
	}
}

// ---- shared probe helpers ----

// fixedTotal reports total if buf already holds that many bytes, else
// NeedMore. Used for every opcode with no variable-length tail.
func fixedTotal(buf *Buffer, total int) (int, error) {
	if _, ok := buf.PeekAt(0, total); !ok {
		return 0, ErrNeedMore
	}
	return total, nil
}

// probeStringTail handles the common "fixed prefix, then one
// length-prefixed string, then a fixed suffix" shape. lenOffset is
// where the string's u16 length prefix begins; suffixAfterString is
// how many more fixed bytes follow the string.
func probeStringTail(buf *Buffer, lenOffset, suffixAfterString int) (int, error) {
	lenBytes, ok := buf.PeekAt(lenOffset, stringLenSz)
	if !ok {
		return 0, ErrNeedMore
	}
	k := int(binary.BigEndian.Uint16(lenBytes))
	total := lenOffset + stringLenSz + k*2 + suffixAfterString
	if _, ok := buf.PeekAt(0, total); !ok {
		return 0, ErrNeedMore
	}
	return total, nil
}

// probeItemStackTail handles "fixed prefix of itemOffset bytes, then
// one item stack" (block placement, window click, set slot).
func probeItemStackTail(buf *Buffer, itemOffset int) (int, error) {
	size, err := itemStackWireSize(buf, itemOffset)
	if err != nil {
		return 0, err
	}
	total := itemOffset + size
	if _, ok := buf.PeekAt(0, total); !ok {
		return 0, ErrNeedMore
	}
	return total, nil
}

// probeMetadataTail handles "fixed prefix of metaOffset bytes, then a
// metadata stream" (EntityMetadata).
func probeMetadataTail(buf *Buffer, metaOffset int) (int, error) {
	size, err := probeMetadata(buf, metaOffset)
	if err != nil {
		return 0, err
	}
	return metaOffset + size, nil
}

func probeSpawnObject(buf *Buffer) (int, error) {
	const flagOffset = 1 + 4 + 1 + 4*3
	flagBytes, ok := buf.PeekAt(flagOffset, intSize)
	if !ok {
		return 0, ErrNeedMore
	}
	flag := int32(binary.BigEndian.Uint32(flagBytes))
	total := flagOffset + intSize
	if flag > 0 {
		total += shortSize * 3
	}
	if _, ok := buf.PeekAt(0, total); !ok {
		return 0, ErrNeedMore
	}
	return total, nil
}

func probeSpawnMob(buf *Buffer) (int, error) {
	const metaOffset = 1 + 4 + 1 + 4*3 + 1 + 1
	size, err := probeMetadata(buf, metaOffset)
	if err != nil {
		return 0, err
	}
	return metaOffset + size, nil
}

func probeMapChunk(buf *Buffer) (int, error) {
	const lenOffset = 1 + 4 + 2 + 4 + 1 + 1 + 1
	lenBytes, ok := buf.PeekAt(lenOffset, intSize)
	if !ok {
		return 0, ErrNeedMore
	}
	length := int(int32(binary.BigEndian.Uint32(lenBytes)))
	if length < 0 {
		return 0, malformedf("map chunk negative length %d", length)
	}
	total := lenOffset + intSize + length
	if _, ok := buf.PeekAt(0, total); !ok {
		return 0, ErrNeedMore
	}
	return total, nil
}

func probeMultiBlockChange(buf *Buffer) (int, error) {
	const lenOffset = 1 + 4 + 4
	lenBytes, ok := buf.PeekAt(lenOffset, shortSize)
	if !ok {
		return 0, ErrNeedMore
	}
	count := int(binary.BigEndian.Uint16(lenBytes))
	total := lenOffset + shortSize + count*(shortSize+byteSize+byteSize)
	if _, ok := buf.PeekAt(0, total); !ok {
		return 0, ErrNeedMore
	}
	return total, nil
}

func probeExplosion(buf *Buffer) (int, error) {
	const lenOffset = 1 + 8*3 + 4
	lenBytes, ok := buf.PeekAt(lenOffset, intSize)
	if !ok {
		return 0, ErrNeedMore
	}
	count := int(int32(binary.BigEndian.Uint32(lenBytes)))
	if count < 0 {
		return 0, malformedf("explosion negative record count %d", count)
	}
	total := lenOffset + intSize + count*3
	if _, ok := buf.PeekAt(0, total); !ok {
		return 0, ErrNeedMore
	}
	return total, nil
}

func probeWindowItems(buf *Buffer) (int, error) {
	const countOffset = 1 + 1
	countBytes, ok := buf.PeekAt(countOffset, shortSize)
	if !ok {
		return 0, ErrNeedMore
	}
	count := int(binary.BigEndian.Uint16(countBytes))
	pos := countOffset + shortSize
	for i := 0; i < count; i++ {
		size, err := itemStackWireSize(buf, pos)
		if err != nil {
			return 0, err
		}
		pos += size
	}
	if _, ok := buf.PeekAt(0, pos); !ok {
		return 0, ErrNeedMore
	}
	return pos, nil
}

func probeUpdateSign(buf *Buffer) (int, error) {
	pos := 1 + 4 + 2 + 4
	for i := 0; i < 4; i++ {
		lenBytes, ok := buf.PeekAt(pos, stringLenSz)
		if !ok {
			return 0, ErrNeedMore
		}
		k := int(binary.BigEndian.Uint16(lenBytes))
		pos += stringLenSz + k*2
	}
	if _, ok := buf.PeekAt(0, pos); !ok {
		return 0, ErrNeedMore
	}
	return pos, nil
}

// probeItemData reads textLen as a uint16, matching the corrected
// three-uint16-field wire shape (see §9's ItemData serialize note) —
// not the source's byte-length typo.
func probeItemData(buf *Buffer) (int, error) {
	const lenOffset = 1 + 2 + 2
	lenBytes, ok := buf.PeekAt(lenOffset, shortSize)
	if !ok {
		return 0, ErrNeedMore
	}
	textLen := int(binary.BigEndian.Uint16(lenBytes))
	total := lenOffset + shortSize + textLen
	if _, ok := buf.PeekAt(0, total); !ok {
		return 0, ErrNeedMore
	}
	return total, nil
}
