package survival

// Serialize appends the wire encoding of pkt to buf. It is the
// structural inverse of Parse: for any Packet p with a legal
// (Direction, Opcode) pair, Parse(p.Direction, serialize-then-drain)
// reproduces p.
func Serialize(pkt Packet, buf *Buffer) error {
	if !legalDirection(pkt.Direction, pkt.Opcode) {
		return unsupportedOpcodeErr(pkt.Direction, pkt.Opcode)
	}
	buf.WriteUByte(pkt.Opcode)

	switch pkt.Opcode {
	case OpKeepAlive:
		p := pkt.Payload.(KeepAlive)
		buf.WriteInt(p.ID)
	case OpLogin:
		if pkt.Direction == Request {
			p := pkt.Payload.(LoginRequest)
			buf.WriteInt(p.Version)
			buf.WriteString(p.Username)
			buf.WriteLong(p.Unused1)
			buf.WriteInt(p.Unused2)
			for _, v := range p.Unused3 {
				buf.WriteByte(v)
			}
		} else {
			p := pkt.Payload.(LoginResponse)
			buf.WriteInt(p.EntityID)
			buf.WriteString(p.Unused)
			buf.WriteLong(p.MapSeed)
			buf.WriteInt(p.ServerMode)
			buf.WriteByte(p.Dimension)
			buf.WriteByte(p.Unused2)
			buf.WriteUByte(p.WorldHeight)
			buf.WriteUByte(p.MaxPlayers)
		}
	case OpHandshake:
		p := pkt.Payload.(Handshake)
		buf.WriteString(p.Value)
	case OpChat:
		p := pkt.Payload.(Chat)
		buf.WriteString(p.Message)
	case OpDisconnect:
		p := pkt.Payload.(Disconnect)
		buf.WriteString(p.Text)
	case OpTimeUpdate:
		p := pkt.Payload.(TimeUpdate)
		buf.WriteLong(p.Time)
	case OpEntityEquipment:
		p := pkt.Payload.(EntityEquipment)
		buf.WriteInt(p.EntityID)
		buf.WriteShort(p.Slot)
		buf.WriteShort(p.Item)
		buf.WriteShort(p.Damage)
	case OpSpawnPosition:
		p := pkt.Payload.(SpawnPosition)
		buf.WriteInt(p.X)
		buf.WriteInt(p.Y)
		buf.WriteInt(p.Z)
	case OpUseEntity:
		p := pkt.Payload.(UseEntity)
		buf.WriteInt(p.User)
		buf.WriteInt(p.Target)
		buf.WriteBool(p.MouseAtPoint)
	case OpUpdateHealth:
		p := pkt.Payload.(UpdateHealth)
		buf.WriteShort(p.Health)
		buf.WriteShort(p.Food)
		buf.WriteFloat(p.FoodSaturation)
	case OpRespawn:
		p := pkt.Payload.(Respawn)
		buf.WriteByte(p.World)
		buf.WriteByte(p.Difficulty)
		buf.WriteByte(p.CreativeMode)
		buf.WriteShort(p.WorldHeight)
		buf.WriteLong(p.MapSeed)
	case OpOnGround:
		p := pkt.Payload.(OnGround)
		buf.WriteBool(p.Value)
	case OpPlayerPosition:
		p := pkt.Payload.(PlayerPosition)
		buf.WriteDouble(p.X)
		buf.WriteDouble(p.Y)
		buf.WriteDouble(p.Stance)
		buf.WriteDouble(p.Z)
		buf.WriteBool(p.OnGround)
	case OpPlayerLook:
		p := pkt.Payload.(PlayerLook)
		buf.WriteFloat(p.Yaw)
		buf.WriteFloat(p.Pitch)
		buf.WriteBool(p.OnGround)
	case OpPlayerMoveLook:
		serializePlayerMoveLook(pkt.Direction, pkt.Payload.(PlayerMoveLook), buf)
	case OpPlayerDigging:
		p := pkt.Payload.(PlayerDigging)
		buf.WriteByte(p.Status)
		buf.WriteInt(p.X)
		buf.WriteByte(p.Y)
		buf.WriteInt(p.Z)
		buf.WriteByte(p.Face)
	case OpBlockPlacement:
		p := pkt.Payload.(BlockPlacement)
		buf.WriteInt(p.X)
		buf.WriteByte(p.Y)
		buf.WriteInt(p.Z)
		buf.WriteByte(p.Direction)
		buf.WriteItemStack(p.Item)
	case OpHoldChange:
		p := pkt.Payload.(HoldChange)
		buf.WriteShort(p.Slot)
	case OpAnimation:
		p := pkt.Payload.(Animation)
		buf.WriteInt(p.EntityID)
		buf.WriteByte(p.Animation)
	case OpEntityAction:
		p := pkt.Payload.(EntityAction)
		buf.WriteInt(p.EntityID)
		buf.WriteByte(p.Action)
	case OpNamedEntitySpawn:
		p := pkt.Payload.(NamedEntitySpawn)
		buf.WriteInt(p.EntityID)
		buf.WriteString(p.Name)
		buf.WriteInt(p.X)
		buf.WriteInt(p.Y)
		buf.WriteInt(p.Z)
		buf.WriteByte(p.Rotation)
		buf.WriteByte(p.Pitch)
		buf.WriteShort(p.CurrentItem)
	case OpPickupSpawn:
		p := pkt.Payload.(PickupSpawn)
		buf.WriteInt(p.EntityID)
		buf.WriteItemStackNoSentinel(p.Item)
		buf.WriteInt(p.X)
		buf.WriteInt(p.Y)
		buf.WriteInt(p.Z)
		buf.WriteByte(p.Rotation)
		buf.WriteByte(p.Pitch)
		buf.WriteByte(p.Roll)
	case OpCollectItem:
		p := pkt.Payload.(CollectItem)
		buf.WriteInt(p.Collected)
		buf.WriteInt(p.Collector)
	case OpSpawnObject:
		p := pkt.Payload.(SpawnObject)
		buf.WriteInt(p.EntityID)
		buf.WriteByte(p.Type)
		buf.WriteInt(p.X)
		buf.WriteInt(p.Y)
		buf.WriteInt(p.Z)
		buf.WriteInt(p.Flag)
		if p.Flag > 0 {
			if p.Extra == nil {
				return malformedf("spawn object flag %d > 0 with no extra data", p.Flag)
			}
			buf.WriteShort(p.Extra.X)
			buf.WriteShort(p.Extra.Y)
			buf.WriteShort(p.Extra.Z)
		}
	case OpSpawnMob:
		p := pkt.Payload.(SpawnMob)
		buf.WriteInt(p.EntityID)
		buf.WriteByte(p.Type)
		buf.WriteInt(p.X)
		buf.WriteInt(p.Y)
		buf.WriteInt(p.Z)
		buf.WriteByte(p.Yaw)
		buf.WriteByte(p.Pitch)
		buf.WriteMetadata(p.Metadata)
	case OpPainting:
		p := pkt.Payload.(Painting)
		buf.WriteInt(p.EntityID)
		buf.WriteString(p.Title)
		buf.WriteInt(p.X)
		buf.WriteInt(p.Y)
		buf.WriteInt(p.Z)
		buf.WriteInt(p.Direction)
	case OpExperienceOrb:
		p := pkt.Payload.(ExperienceOrb)
		buf.WriteInt(p.EntityID)
		buf.WriteInt(p.X)
		buf.WriteInt(p.Y)
		buf.WriteInt(p.Z)
		buf.WriteShort(p.Count)
	case OpEntityVelocity:
		p := pkt.Payload.(EntityVelocity)
		buf.WriteInt(p.EntityID)
		buf.WriteShort(p.VX)
		buf.WriteShort(p.VY)
		buf.WriteShort(p.VZ)
	case OpEntityDestroy:
		p := pkt.Payload.(EntityDestroy)
		buf.WriteInt(p.EntityID)
	case OpEntityCreate:
		p := pkt.Payload.(EntityCreate)
		buf.WriteInt(p.EntityID)
	case OpEntityRelativeMove:
		p := pkt.Payload.(EntityRelativeMove)
		buf.WriteInt(p.EntityID)
		buf.WriteByte(p.DX)
		buf.WriteByte(p.DY)
		buf.WriteByte(p.DZ)
	case OpEntityLook:
		p := pkt.Payload.(EntityLook)
		buf.WriteInt(p.EntityID)
		buf.WriteByte(p.Yaw)
		buf.WriteByte(p.Pitch)
	case OpEntityLookMove:
		p := pkt.Payload.(EntityLookMove)
		buf.WriteInt(p.EntityID)
		buf.WriteByte(p.DX)
		buf.WriteByte(p.DY)
		buf.WriteByte(p.DZ)
		buf.WriteByte(p.Yaw)
		buf.WriteByte(p.Pitch)
	case OpEntityTeleport:
		p := pkt.Payload.(EntityTeleport)
		buf.WriteInt(p.EntityID)
		buf.WriteInt(p.X)
		buf.WriteInt(p.Y)
		buf.WriteInt(p.Z)
		buf.WriteByte(p.Yaw)
		buf.WriteByte(p.Pitch)
	case OpEntityStatus:
		p := pkt.Payload.(EntityStatus)
		buf.WriteInt(p.EntityID)
		buf.WriteByte(p.Status)
	case OpEntityAttach:
		p := pkt.Payload.(EntityAttach)
		buf.WriteInt(p.EntityID)
		buf.WriteInt(p.VehicleID)
	case OpEntityMetadata:
		p := pkt.Payload.(EntityMetadata)
		buf.WriteInt(p.EntityID)
		buf.WriteMetadata(p.Metadata)
	case OpEntityEffect:
		p := pkt.Payload.(EntityEffect)
		buf.WriteInt(p.EntityID)
		buf.WriteByte(p.Effect)
		buf.WriteByte(p.Amplifier)
		buf.WriteShort(p.Duration)
	case OpRemoveEntityEffect:
		p := pkt.Payload.(RemoveEntityEffect)
		buf.WriteInt(p.EntityID)
		buf.WriteByte(p.Effect)
	case OpExperience:
		p := pkt.Payload.(Experience)
		buf.WriteByte(p.Bar)
		buf.WriteByte(p.Level)
		buf.WriteShort(p.TotalExperience)
	case OpPreChunk:
		p := pkt.Payload.(PreChunk)
		buf.WriteInt(p.X)
		buf.WriteInt(p.Z)
		buf.WriteBool(p.Mode)
	case OpMapChunk:
		p := pkt.Payload.(MapChunk)
		buf.WriteInt(p.X)
		buf.WriteShort(p.Y)
		buf.WriteInt(p.Z)
		buf.WriteByte(p.SizeX)
		buf.WriteByte(p.SizeY)
		buf.WriteByte(p.SizeZ)
		buf.WriteInt(int32(len(p.Data)))
		buf.Append(p.Data)
	case OpMultiBlockChange:
		p := pkt.Payload.(MultiBlockChange)
		buf.WriteInt(p.ChunkX)
		buf.WriteInt(p.ChunkZ)
		buf.WriteUShort(uint16(len(p.Blocks)))
		for _, e := range p.Blocks {
			buf.WriteShort(e.Coordinate)
			buf.WriteByte(e.Type)
			buf.WriteByte(e.Metadata)
		}
	case OpBlockChange:
		p := pkt.Payload.(BlockChange)
		buf.WriteInt(p.X)
		buf.WriteByte(p.Y)
		buf.WriteInt(p.Z)
		buf.WriteByte(p.Type)
		buf.WriteByte(p.Metadata)
	case OpBlockAction:
		p := pkt.Payload.(BlockAction)
		buf.WriteInt(p.X)
		buf.WriteShort(p.Y)
		buf.WriteInt(p.Z)
		buf.WriteByte(p.Data1)
		buf.WriteByte(p.Data2)
	case OpExplosion:
		p := pkt.Payload.(Explosion)
		buf.WriteDouble(p.X)
		buf.WriteDouble(p.Y)
		buf.WriteDouble(p.Z)
		buf.WriteFloat(p.Radius)
		buf.WriteInt(int32(len(p.Records)))
		for _, r := range p.Records {
			buf.WriteByte(r.DX)
			buf.WriteByte(r.DY)
			buf.WriteByte(r.DZ)
		}
	case OpSoundEffect:
		p := pkt.Payload.(SoundEffect)
		buf.WriteInt(p.EffectID)
		buf.WriteInt(p.X)
		buf.WriteByte(p.Y)
		buf.WriteInt(p.Z)
		buf.WriteInt(p.Data)
	case OpState:
		p := pkt.Payload.(State)
		buf.WriteByte(p.Reason)
		buf.WriteByte(p.GameMode)
	case OpThunderbolt:
		p := pkt.Payload.(Thunderbolt)
		buf.WriteInt(p.EntityID)
		buf.WriteBool(p.Unknown)
		buf.WriteInt(p.X)
		buf.WriteInt(p.Y)
		buf.WriteInt(p.Z)
	case OpOpenWindow:
		p := pkt.Payload.(OpenWindow)
		buf.WriteByte(p.WindowID)
		buf.WriteByte(p.InventoryType)
		buf.WriteString(p.Title)
		buf.WriteByte(p.SlotCount)
	case OpCloseWindow:
		p := pkt.Payload.(CloseWindow)
		buf.WriteByte(p.WindowID)
	case OpWindowClick:
		p := pkt.Payload.(WindowClick)
		buf.WriteByte(p.WindowID)
		buf.WriteShort(p.Slot)
		buf.WriteBool(p.RightClick)
		buf.WriteShort(p.ActionNumber)
		buf.WriteBool(p.Shift)
		buf.WriteItemStack(p.Item)
	case OpSetSlot:
		p := pkt.Payload.(SetSlot)
		buf.WriteByte(p.WindowID)
		buf.WriteShort(p.Slot)
		buf.WriteItemStack(p.Item)
	case OpWindowItems:
		p := pkt.Payload.(WindowItems)
		buf.WriteByte(p.WindowID)
		buf.WriteUShort(uint16(len(p.Items)))
		for _, it := range p.Items {
			buf.WriteItemStack(it)
		}
	case OpUpdateProgressBar:
		p := pkt.Payload.(UpdateProgressBar)
		buf.WriteByte(p.WindowID)
		buf.WriteShort(p.ProgressBar)
		buf.WriteShort(p.Value)
	case OpTransaction:
		p := pkt.Payload.(Transaction)
		buf.WriteByte(p.WindowID)
		buf.WriteShort(p.ActionNumber)
		buf.WriteBool(p.Accepted)
	case OpCreativeInventoryAction:
		p := pkt.Payload.(CreativeInventoryAction)
		buf.WriteShort(p.Slot)
		buf.WriteShort(p.ItemID)
		buf.WriteShort(p.Quantity)
		buf.WriteShort(p.Damage)
	case OpUpdateSign:
		p := pkt.Payload.(UpdateSign)
		buf.WriteInt(p.X)
		buf.WriteShort(p.Y)
		buf.WriteInt(p.Z)
		buf.WriteString(p.L1)
		buf.WriteString(p.L2)
		buf.WriteString(p.L3)
		buf.WriteString(p.L4)
	case OpItemData:
		p := pkt.Payload.(ItemData)
		buf.WriteShort(p.ItemType)
		buf.WriteShort(p.ItemID)
		buf.WriteUShort(uint16(len(p.Text)))
		buf.Append([]byte(p.Text))
	case OpIncrementStatistic:
		p := pkt.Payload.(IncrementStatistic)
		buf.WriteInt(p.StatisticID)
		buf.WriteByte(p.Amount)
	case OpPlayerListItem:
		p := pkt.Payload.(PlayerListItem)
		buf.WriteString(p.PlayerName)
		buf.WriteBool(p.Online)
		buf.WriteShort(p.Ping)
	case OpListPing:
		// empty body
	default:
		return malformedf("unknown opcode 0x%02X", pkt.Opcode)
	}

	return nil
}

// serializePlayerMoveLook mirrors parsePlayerMoveLook's direction-
// dependent field order.
func serializePlayerMoveLook(dir Direction, p PlayerMoveLook, buf *Buffer) {
	if dir == Request {
		buf.WriteDouble(p.X)
		buf.WriteDouble(p.Y)
		buf.WriteDouble(p.Stance)
		buf.WriteDouble(p.Z)
		buf.WriteFloat(p.Yaw)
		buf.WriteFloat(p.Pitch)
		buf.WriteBool(p.OnGround)
		return
	}
	buf.WriteDouble(p.X)
	buf.WriteDouble(p.Stance)
	buf.WriteDouble(p.Y)
	buf.WriteDouble(p.Z)
	buf.WriteFloat(p.Yaw)
	buf.WriteFloat(p.Pitch)
	buf.WriteBool(p.OnGround)
}
