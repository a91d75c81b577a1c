package survival

// Parse consumes exactly one packet from the front of buf and returns
// it. The caller must already have called Probe on an identical dir
// and buf and gotten back a successful length — Parse does not
// re-validate that enough bytes are present, and will panic via
// Buffer.Take if they are not.
func Parse(dir Direction, buf *Buffer) (Packet, error) {
	opcode := buf.ReadUByte()
	if !legalDirection(dir, opcode) {
		return Packet{}, unsupportedOpcodeErr(dir, opcode)
	}

	pkt := Packet{Direction: dir, Opcode: opcode}

	switch opcode {
	case OpKeepAlive:
		pkt.Payload = KeepAlive{ID: buf.ReadInt()}
	case OpLogin:
		if dir == Request {
			pkt.Payload = parseLoginRequest(buf)
		} else {
			pkt.Payload = parseLoginResponse(buf)
		}
	case OpHandshake:
		pkt.Payload = Handshake{Value: buf.ReadString()}
	case OpChat:
		pkt.Payload = Chat{Message: buf.ReadString()}
	case OpDisconnect:
		pkt.Payload = Disconnect{Text: buf.ReadString()}
	case OpTimeUpdate:
		pkt.Payload = TimeUpdate{Time: buf.ReadLong()}
	case OpEntityEquipment:
		pkt.Payload = EntityEquipment{
			EntityID: buf.ReadInt(),
			Slot:     buf.ReadShort(),
			Item:     buf.ReadShort(),
			Damage:   buf.ReadShort(),
		}
	case OpSpawnPosition:
		pkt.Payload = SpawnPosition{X: buf.ReadInt(), Y: buf.ReadInt(), Z: buf.ReadInt()}
	case OpUseEntity:
		pkt.Payload = UseEntity{
			User:         buf.ReadInt(),
			Target:       buf.ReadInt(),
			MouseAtPoint: buf.ReadBool(),
		}
	case OpUpdateHealth:
		pkt.Payload = UpdateHealth{
			Health:         buf.ReadShort(),
			Food:           buf.ReadShort(),
			FoodSaturation: buf.ReadFloat(),
		}
	case OpRespawn:
		pkt.Payload = Respawn{
			World:        buf.ReadByte(),
			Difficulty:   buf.ReadByte(),
			CreativeMode: buf.ReadByte(),
			WorldHeight:  buf.ReadShort(),
			MapSeed:      buf.ReadLong(),
		}
	case OpOnGround:
		pkt.Payload = OnGround{Value: buf.ReadBool()}
	case OpPlayerPosition:
		pkt.Payload = PlayerPosition{
			X:        buf.ReadDouble(),
			Y:        buf.ReadDouble(),
			Stance:   buf.ReadDouble(),
			Z:        buf.ReadDouble(),
			OnGround: buf.ReadBool(),
		}
	case OpPlayerLook:
		pkt.Payload = PlayerLook{
			Yaw:      buf.ReadFloat(),
			Pitch:    buf.ReadFloat(),
			OnGround: buf.ReadBool(),
		}
	case OpPlayerMoveLook:
		pkt.Payload = parsePlayerMoveLook(dir, buf)
	case OpPlayerDigging:
		pkt.Payload = PlayerDigging{
			Status: buf.ReadByte(),
			X:      buf.ReadInt(),
			Y:      buf.ReadByte(),
			Z:      buf.ReadInt(),
			Face:   buf.ReadByte(),
		}
	case OpBlockPlacement:
		pkt.Payload = BlockPlacement{
			X:         buf.ReadInt(),
			Y:         buf.ReadByte(),
			Z:         buf.ReadInt(),
			Direction: buf.ReadByte(),
			Item:      buf.ReadItemStack(),
		}
	case OpHoldChange:
		pkt.Payload = HoldChange{Slot: buf.ReadShort()}
	case OpAnimation:
		pkt.Payload = Animation{EntityID: buf.ReadInt(), Animation: buf.ReadByte()}
	case OpEntityAction:
		pkt.Payload = EntityAction{EntityID: buf.ReadInt(), Action: buf.ReadByte()}
	case OpNamedEntitySpawn:
		pkt.Payload = NamedEntitySpawn{
			EntityID:    buf.ReadInt(),
			Name:        buf.ReadString(),
			X:           buf.ReadInt(),
			Y:           buf.ReadInt(),
			Z:           buf.ReadInt(),
			Rotation:    buf.ReadByte(),
			Pitch:       buf.ReadByte(),
			CurrentItem: buf.ReadShort(),
		}
	case OpPickupSpawn:
		pkt.Payload = PickupSpawn{
			EntityID: buf.ReadInt(),
			Item:     buf.ReadItemStackNoSentinel(),
			X:        buf.ReadInt(),
			Y:        buf.ReadInt(),
			Z:        buf.ReadInt(),
			Rotation: buf.ReadByte(),
			Pitch:    buf.ReadByte(),
			Roll:     buf.ReadByte(),
		}
	case OpCollectItem:
		pkt.Payload = CollectItem{Collected: buf.ReadInt(), Collector: buf.ReadInt()}
	case OpSpawnObject:
		pkt.Payload = parseSpawnObject(buf)
	case OpSpawnMob:
		pkt.Payload = SpawnMob{
			EntityID: buf.ReadInt(),
			Type:     buf.ReadByte(),
			X:        buf.ReadInt(),
			Y:        buf.ReadInt(),
			Z:        buf.ReadInt(),
			Yaw:      buf.ReadByte(),
			Pitch:    buf.ReadByte(),
			Metadata: buf.ReadMetadata(),
		}
	case OpPainting:
		pkt.Payload = Painting{
			EntityID:  buf.ReadInt(),
			Title:     buf.ReadString(),
			X:         buf.ReadInt(),
			Y:         buf.ReadInt(),
			Z:         buf.ReadInt(),
			Direction: buf.ReadInt(),
		}
	case OpExperienceOrb:
		pkt.Payload = ExperienceOrb{
			EntityID: buf.ReadInt(),
			X:        buf.ReadInt(),
			Y:        buf.ReadInt(),
			Z:        buf.ReadInt(),
			Count:    buf.ReadShort(),
		}
	case OpEntityVelocity:
		pkt.Payload = EntityVelocity{
			EntityID: buf.ReadInt(),
			VX:       buf.ReadShort(),
			VY:       buf.ReadShort(),
			VZ:       buf.ReadShort(),
		}
	case OpEntityDestroy:
		pkt.Payload = EntityDestroy{EntityID: buf.ReadInt()}
	case OpEntityCreate:
		pkt.Payload = EntityCreate{EntityID: buf.ReadInt()}
	case OpEntityRelativeMove:
		pkt.Payload = EntityRelativeMove{
			EntityID: buf.ReadInt(),
			DX:       buf.ReadByte(),
			DY:       buf.ReadByte(),
			DZ:       buf.ReadByte(),
		}
	case OpEntityLook:
		pkt.Payload = EntityLook{EntityID: buf.ReadInt(), Yaw: buf.ReadByte(), Pitch: buf.ReadByte()}
	case OpEntityLookMove:
		pkt.Payload = EntityLookMove{
			EntityID: buf.ReadInt(),
			DX:       buf.ReadByte(),
			DY:       buf.ReadByte(),
			DZ:       buf.ReadByte(),
			Yaw:      buf.ReadByte(),
			Pitch:    buf.ReadByte(),
		}
	case OpEntityTeleport:
		pkt.Payload = EntityTeleport{
			EntityID: buf.ReadInt(),
			X:        buf.ReadInt(),
			Y:        buf.ReadInt(),
			Z:        buf.ReadInt(),
			Yaw:      buf.ReadByte(),
			Pitch:    buf.ReadByte(),
		}
	case OpEntityStatus:
		pkt.Payload = EntityStatus{EntityID: buf.ReadInt(), Status: buf.ReadByte()}
	case OpEntityAttach:
		pkt.Payload = EntityAttach{EntityID: buf.ReadInt(), VehicleID: buf.ReadInt()}
	case OpEntityMetadata:
		pkt.Payload = EntityMetadata{EntityID: buf.ReadInt(), Metadata: buf.ReadMetadata()}
	case OpEntityEffect:
		pkt.Payload = EntityEffect{
			EntityID:  buf.ReadInt(),
			Effect:    buf.ReadByte(),
			Amplifier: buf.ReadByte(),
			Duration:  buf.ReadShort(),
		}
	case OpRemoveEntityEffect:
		pkt.Payload = RemoveEntityEffect{EntityID: buf.ReadInt(), Effect: buf.ReadByte()}
	case OpExperience:
		pkt.Payload = Experience{
			Bar:             buf.ReadByte(),
			Level:           buf.ReadByte(),
			TotalExperience: buf.ReadShort(),
		}
	case OpPreChunk:
		pkt.Payload = PreChunk{X: buf.ReadInt(), Z: buf.ReadInt(), Mode: buf.ReadBool()}
	case OpMapChunk:
		pkt.Payload = parseMapChunk(buf)
	case OpMultiBlockChange:
		pkt.Payload = parseMultiBlockChange(buf)
	case OpBlockChange:
		pkt.Payload = BlockChange{
			X:        buf.ReadInt(),
			Y:        buf.ReadByte(),
			Z:        buf.ReadInt(),
			Type:     buf.ReadByte(),
			Metadata: buf.ReadByte(),
		}
	case OpBlockAction:
		pkt.Payload = BlockAction{
			X:     buf.ReadInt(),
			Y:     buf.ReadShort(),
			Z:     buf.ReadInt(),
			Data1: buf.ReadByte(),
			Data2: buf.ReadByte(),
		}
	case OpExplosion:
		pkt.Payload = parseExplosion(buf)
	case OpSoundEffect:
		pkt.Payload = SoundEffect{
			EffectID: buf.ReadInt(),
			X:        buf.ReadInt(),
			Y:        buf.ReadByte(),
			Z:        buf.ReadInt(),
			Data:     buf.ReadInt(),
		}
	case OpState:
		pkt.Payload = State{Reason: buf.ReadByte(), GameMode: buf.ReadByte()}
	case OpThunderbolt:
		pkt.Payload = Thunderbolt{
			EntityID: buf.ReadInt(),
			Unknown:  buf.ReadBool(),
			X:        buf.ReadInt(),
			Y:        buf.ReadInt(),
			Z:        buf.ReadInt(),
		}
	case OpOpenWindow:
		pkt.Payload = OpenWindow{
			WindowID:      buf.ReadByte(),
			InventoryType: buf.ReadByte(),
			Title:         buf.ReadString(),
			SlotCount:     buf.ReadByte(),
		}
	case OpCloseWindow:
		pkt.Payload = CloseWindow{WindowID: buf.ReadByte()}
	case OpWindowClick:
		pkt.Payload = WindowClick{
			WindowID:     buf.ReadByte(),
			Slot:         buf.ReadShort(),
			RightClick:   buf.ReadBool(),
			ActionNumber: buf.ReadShort(),
			Shift:        buf.ReadBool(),
			Item:         buf.ReadItemStack(),
		}
	case OpSetSlot:
		pkt.Payload = SetSlot{
			WindowID: buf.ReadByte(),
			Slot:     buf.ReadShort(),
			Item:     buf.ReadItemStack(),
		}
	case OpWindowItems:
		pkt.Payload = parseWindowItems(buf)
	case OpUpdateProgressBar:
		pkt.Payload = UpdateProgressBar{
			WindowID:    buf.ReadByte(),
			ProgressBar: buf.ReadShort(),
			Value:       buf.ReadShort(),
		}
	case OpTransaction:
		pkt.Payload = Transaction{
			WindowID:     buf.ReadByte(),
			ActionNumber: buf.ReadShort(),
			Accepted:     buf.ReadBool(),
		}
	case OpCreativeInventoryAction:
		pkt.Payload = CreativeInventoryAction{
			Slot:     buf.ReadShort(),
			ItemID:   buf.ReadShort(),
			Quantity: buf.ReadShort(),
			Damage:   buf.ReadShort(),
		}
	case OpUpdateSign:
		pkt.Payload = UpdateSign{
			X:  buf.ReadInt(),
			Y:  buf.ReadShort(),
			Z:  buf.ReadInt(),
			L1: buf.ReadString(),
			L2: buf.ReadString(),
			L3: buf.ReadString(),
			L4: buf.ReadString(),
		}
	case OpItemData:
		pkt.Payload = parseItemData(buf)
	case OpIncrementStatistic:
		pkt.Payload = IncrementStatistic{StatisticID: buf.ReadInt(), Amount: buf.ReadByte()}
	case OpPlayerListItem:
		pkt.Payload = PlayerListItem{
			PlayerName: buf.ReadString(),
			Online:     buf.ReadBool(),
			Ping:       buf.ReadShort(),
		}
	case OpListPing:
		pkt.Payload = ListPing{}
	default:
		return Packet{}, malformedf("unknown opcode 0x%02X", opcode)
	}

	return pkt, nil
}

func parseLoginRequest(buf *Buffer) LoginRequest {
	version := buf.ReadInt()
	username := buf.ReadString()
	unused1 := buf.ReadLong()
	unused2 := buf.ReadInt()
	var unused3 [4]int8
	for i := range unused3 {
		unused3[i] = buf.ReadByte()
	}
	return LoginRequest{
		Version:  version,
		Username: username,
		Unused1:  unused1,
		Unused2:  unused2,
		Unused3:  unused3,
	}
}

func parseLoginResponse(buf *Buffer) LoginResponse {
	return LoginResponse{
		EntityID:    buf.ReadInt(),
		Unused:      buf.ReadString(),
		MapSeed:     buf.ReadLong(),
		ServerMode:  buf.ReadInt(),
		Dimension:   buf.ReadByte(),
		Unused2:     buf.ReadByte(),
		WorldHeight: buf.ReadUByte(),
		MaxPlayers:  buf.ReadUByte(),
	}
}

// parsePlayerMoveLook accounts for the one place the request and
// response wire shapes disagree on field order: the request puts
// stance between Y and Z the same as PlayerPosition, while the
// response puts stance between X and Y. In both, the look fields
// follow Z and precede ground. Both share the same Go struct (PlayerMoveLook); only the read order
// differs.
func parsePlayerMoveLook(dir Direction, buf *Buffer) PlayerMoveLook {
	if dir == Request {
		x := buf.ReadDouble()
		y := buf.ReadDouble()
		stance := buf.ReadDouble()
		z := buf.ReadDouble()
		yaw := buf.ReadFloat()
		pitch := buf.ReadFloat()
		onGround := buf.ReadBool()
		return PlayerMoveLook{X: x, Y: y, Stance: stance, Z: z, Yaw: yaw, Pitch: pitch, OnGround: onGround}
	}
	x := buf.ReadDouble()
	stance := buf.ReadDouble()
	y := buf.ReadDouble()
	z := buf.ReadDouble()
	yaw := buf.ReadFloat()
	pitch := buf.ReadFloat()
	onGround := buf.ReadBool()
	return PlayerMoveLook{X: x, Y: y, Stance: stance, Z: z, Yaw: yaw, Pitch: pitch, OnGround: onGround}
}

// parseSpawnObject applies the corrected rule for the flag>0 tail: the
// three extra fields are int16, matching the serialize side, rather
// than the original source's broken conditional (see the
// ItemData/SpawnObject fix note).
func parseSpawnObject(buf *Buffer) SpawnObject {
	entityID := buf.ReadInt()
	typ := buf.ReadByte()
	x := buf.ReadInt()
	y := buf.ReadInt()
	z := buf.ReadInt()
	flag := buf.ReadInt()
	obj := SpawnObject{EntityID: entityID, Type: typ, X: x, Y: y, Z: z, Flag: flag}
	if flag > 0 {
		obj.Extra = &SpawnObjectExtra{
			X: buf.ReadShort(),
			Y: buf.ReadShort(),
			Z: buf.ReadShort(),
		}
	}
	return obj
}

func parseMapChunk(buf *Buffer) MapChunk {
	x := buf.ReadInt()
	y := buf.ReadShort()
	z := buf.ReadInt()
	sx := buf.ReadByte()
	sy := buf.ReadByte()
	sz := buf.ReadByte()
	length := buf.ReadInt()
	data := buf.Take(int(length))
	owned := make([]byte, len(data))
	copy(owned, data)
	return MapChunk{X: x, Y: y, Z: z, SizeX: sx, SizeY: sy, SizeZ: sz, Data: owned}
}

func parseMultiBlockChange(buf *Buffer) MultiBlockChange {
	chunkX := buf.ReadInt()
	chunkZ := buf.ReadInt()
	count := int(buf.ReadUShort())
	blocks := make([]BlockChangeEntry, count)
	for i := range blocks {
		blocks[i] = BlockChangeEntry{
			Coordinate: buf.ReadShort(),
			Type:       buf.ReadByte(),
			Metadata:   buf.ReadByte(),
		}
	}
	return MultiBlockChange{ChunkX: chunkX, ChunkZ: chunkZ, Blocks: blocks}
}

func parseExplosion(buf *Buffer) Explosion {
	x := buf.ReadDouble()
	y := buf.ReadDouble()
	z := buf.ReadDouble()
	radius := buf.ReadFloat()
	count := int(buf.ReadInt())
	records := make([]ExplosionRecord, count)
	for i := range records {
		records[i] = ExplosionRecord{
			DX: buf.ReadByte(),
			DY: buf.ReadByte(),
			DZ: buf.ReadByte(),
		}
	}
	return Explosion{X: x, Y: y, Z: z, Radius: radius, Records: records}
}

func parseWindowItems(buf *Buffer) WindowItems {
	windowID := buf.ReadByte()
	count := int(buf.ReadUShort())
	items := make([]ItemStack, count)
	for i := range items {
		items[i] = buf.ReadItemStack()
	}
	return WindowItems{WindowID: windowID, Items: items}
}

// parseItemData reads textLen as a uint16 and Text as the raw
// textLen bytes verbatim (not a length-prefixed UTF-16BE string) —
// the corrected three-uint16-field shape from §9's ItemData
// serialize note, kept symmetric between parse and serialize.
func parseItemData(buf *Buffer) ItemData {
	itemType := buf.ReadShort()
	itemID := buf.ReadShort()
	textLen := int(buf.ReadUShort())
	raw := buf.Take(textLen)
	text := make([]byte, len(raw))
	copy(text, raw)
	return ItemData{ItemType: itemType, ItemID: itemID, Text: string(text)}
}
