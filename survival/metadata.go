package survival

// Entity-metadata value type tags (the high 3 bits of the leading
// entry byte), taken from PacketLength.c's SVType* switch.
const (
	metaTypeByte           = 0
	metaTypeShort          = 1
	metaTypeInt            = 2
	metaTypeFloat          = 3
	metaTypeString         = 4
	metaTypeShortByteShort = 5 // item stack: short+byte+short
	metaTypeIntIntInt      = 6 // block position: three ints
)

// metaSentinel terminates a metadata stream wherever a key/type byte
// is expected.
const metaSentinel = 0x7F

// MetadataEntry is one (key, typed value) pair of an entity-metadata
// stream. Exactly one of the typed fields is meaningful, selected by
// Type.
type MetadataEntry struct {
	Key  byte
	Type byte

	ByteValue   int8
	ShortValue  int16
	IntValue    int32
	FloatValue  float32
	StringValue string

	// ShortByteShort: item stack (id, count, uses).
	S1 int16
	B1 int8
	S2 int16

	// IntIntInt: block position.
	I1, I2, I3 int32
}

// Metadata is an ordered sequence of entries, terminated on the wire
// by metaSentinel.
type Metadata []MetadataEntry

// metadataEntrySize reports the wire size of a single entry's value
// (excluding its leading key/type byte), or 0 with a non-nil error
// if the probe ran off the end of the buffer or hit an unknown type.
//
// offset is relative to the buffer's unconsumed front; it marks the
// start of the value bytes (i.e. one past the entry's key/type byte).
func metadataEntrySize(buf *Buffer, typ byte, offset int) (int, error) {
	switch typ {
	case metaTypeByte:
		return byteSize, nil
	case metaTypeShort:
		return shortSize, nil
	case metaTypeInt:
		return intSize, nil
	case metaTypeFloat:
		return floatSize, nil
	case metaTypeString:
		lenBytes, ok := buf.PeekAt(offset, stringLenSz)
		if !ok {
			return 0, ErrNeedMore
		}
		k := int(uint16(lenBytes[0])<<8 | uint16(lenBytes[1]))
		return stringLenSz + k*2, nil
	case metaTypeShortByteShort:
		return shortSize + byteSize + shortSize, nil
	case metaTypeIntIntInt:
		return intSize * 3, nil
	default:
		return 0, malformedf("unknown metadata type tag %d", typ)
	}
}

// probeMetadata walks a metadata stream starting at offset (relative
// to the buffer's unconsumed front) and returns the number of bytes
// the stream occupies, including its terminating sentinel byte.
func probeMetadata(buf *Buffer, offset int) (int, error) {
	pos := offset
	for {
		tagByte, ok := buf.PeekAt(pos, byteSize)
		if !ok {
			return 0, ErrNeedMore
		}
		tag := tagByte[0]
		pos++
		if tag == metaSentinel {
			return pos - offset, nil
		}
		typ := tag >> 5
		size, err := metadataEntrySize(buf, typ, pos)
		if err != nil {
			return 0, err
		}
		// metadataEntrySize may itself need to peek past the end for
		// string lengths; re-check once we know the full size.
		if _, ok := buf.PeekAt(pos, size); !ok {
			return 0, ErrNeedMore
		}
		pos += size
	}
}

// ReadMetadata consumes a metadata stream, including its terminating
// sentinel. The caller must have already probed the stream complete.
func (b *Buffer) ReadMetadata() Metadata {
	var entries Metadata
	for {
		tag := b.ReadUByte()
		if tag == metaSentinel {
			return entries
		}
		key := tag & 0x1F
		typ := tag >> 5
		e := MetadataEntry{Key: key, Type: typ}
		switch typ {
		case metaTypeByte:
			e.ByteValue = b.ReadByte()
		case metaTypeShort:
			e.ShortValue = b.ReadShort()
		case metaTypeInt:
			e.IntValue = b.ReadInt()
		case metaTypeFloat:
			e.FloatValue = b.ReadFloat()
		case metaTypeString:
			e.StringValue = b.ReadString()
		case metaTypeShortByteShort:
			e.S1 = b.ReadShort()
			e.B1 = b.ReadByte()
			e.S2 = b.ReadShort()
		case metaTypeIntIntInt:
			e.I1 = b.ReadInt()
			e.I2 = b.ReadInt()
			e.I3 = b.ReadInt()
		}
		entries = append(entries, e)
	}
}

// WriteMetadata serializes a Metadata stream followed by the
// terminating sentinel byte.
func (b *Buffer) WriteMetadata(m Metadata) {
	for _, e := range m {
		b.WriteUByte((e.Type << 5) | (e.Key & 0x1F))
		switch e.Type {
		case metaTypeByte:
			b.WriteByte(e.ByteValue)
		case metaTypeShort:
			b.WriteShort(e.ShortValue)
		case metaTypeInt:
			b.WriteInt(e.IntValue)
		case metaTypeFloat:
			b.WriteFloat(e.FloatValue)
		case metaTypeString:
			b.WriteString(e.StringValue)
		case metaTypeShortByteShort:
			b.WriteShort(e.S1)
			b.WriteByte(e.B1)
			b.WriteShort(e.S2)
		case metaTypeIntIntInt:
			b.WriteInt(e.I1)
			b.WriteInt(e.I2)
			b.WriteInt(e.I3)
		}
	}
	b.WriteUByte(metaSentinel)
}
