package protocol

// ChannelLoad is one entry of CHANNEL_LIST_RESP. Load is a 0-100 percentage.
type ChannelLoad struct {
	ChannelID int32
	Load      uint8
}

func (e *ChannelLoad) encode(b *PacketBuilder) {
	b.WriteInt32(e.ChannelID).WriteUint8(e.Load)
}

func (e *ChannelLoad) decode(r *Reader) {
	e.ChannelID = r.Int32()
	e.Load = r.Uint8()
}

// ZoneInfo describes the zone the player is currently in.
type ZoneInfo struct {
	ZoneID int32
	Name   string
	Width  float32
	Height float32
}

func (*ZoneInfo) Kind() Kind { return KindZoneInfo }

func (m *ZoneInfo) encode(b *PacketBuilder) {
	b.WriteInt32(m.ZoneID).WriteString(m.Name).WriteFloat32(m.Width).WriteFloat32(m.Height)
}

func (m *ZoneInfo) decode(r *Reader) {
	m.ZoneID = r.Int32()
	m.Name = r.String()
	m.Width = r.Float32()
	m.Height = r.Float32()
}

// ChannelInfo is received as CHANNEL_INFO.
type ChannelInfo struct {
	ChannelID int32
	Players   int32
	Capacity  int32
}

func (*ChannelInfo) Kind() Kind { return KindChannelInfo }

func (m *ChannelInfo) encode(b *PacketBuilder) {
	b.WriteInt32(m.ChannelID).WriteInt32(m.Players).WriteInt32(m.Capacity)
}

func (m *ChannelInfo) decode(r *Reader) {
	m.ChannelID = r.Int32()
	m.Players = r.Int32()
	m.Capacity = r.Int32()
}

// ChannelListReq is sent as CHANNEL_LIST_REQ.
type ChannelListReq struct{ empty }

func (*ChannelListReq) Kind() Kind { return KindChannelListReq }

// ChannelListResp is received as CHANNEL_LIST_RESP.
type ChannelListResp struct {
	Channels []ChannelLoad
}

func (*ChannelListResp) Kind() Kind { return KindChannelListResp }

func (m *ChannelListResp) encode(b *PacketBuilder) {
	writeList(b, m.Channels)
}

func (m *ChannelListResp) decode(r *Reader) {
	m.Channels = readList[ChannelLoad](r)
}

// ChannelChange is sent as CHANNEL_CHANGE.
type ChannelChange struct {
	ChannelID int32
}

func (*ChannelChange) Kind() Kind { return KindChannelChange }

func (m *ChannelChange) encode(b *PacketBuilder) {
	b.WriteInt32(m.ChannelID)
}

func (m *ChannelChange) decode(r *Reader) {
	m.ChannelID = r.Int32()
}

// ChannelChangeResult is received as CHANNEL_CHANGE_RESULT.
type ChannelChangeResult struct {
	Result    uint8
	ChannelID int32
}

func (*ChannelChangeResult) Kind() Kind { return KindChannelChangeResult }

func (m *ChannelChangeResult) encode(b *PacketBuilder) {
	b.WriteUint8(m.Result).WriteInt32(m.ChannelID)
}

func (m *ChannelChangeResult) decode(r *Reader) {
	m.Result = r.Uint8()
	m.ChannelID = r.Int32()
}

// ZoneChange requests a transfer through a portal.
type ZoneChange struct {
	PortalID int32
}

func (*ZoneChange) Kind() Kind { return KindZoneChange }

func (m *ZoneChange) encode(b *PacketBuilder) {
	b.WriteInt32(m.PortalID)
}

func (m *ZoneChange) decode(r *Reader) {
	m.PortalID = r.Int32()
}

// ZoneChangeResult is received as ZONE_CHANGE_RESULT.
type ZoneChangeResult struct {
	Result uint8
	ZoneID int32
	Pos    Vec3
}

func (*ZoneChangeResult) Kind() Kind { return KindZoneChangeResult }

func (m *ZoneChangeResult) encode(b *PacketBuilder) {
	b.WriteUint8(m.Result)
	if m.Result != 0 {
		return
	}
	b.WriteInt32(m.ZoneID).WriteVec3(m.Pos)
}

func (m *ZoneChangeResult) decode(r *Reader) {
	m.Result = r.Uint8()
	if m.Result != 0 {
		return
	}
	m.ZoneID = r.Int32()
	m.Pos = r.Vec3()
}

// Move reports the local player position.
type Move struct {
	Pos Vec3
}

func (*Move) Kind() Kind { return KindMove }

func (m *Move) encode(b *PacketBuilder) {
	b.WriteVec3(m.Pos)
}

func (m *Move) decode(r *Reader) {
	m.Pos = r.Vec3()
}

// MoveBroadcast relays the position of an entity in view.
type MoveBroadcast struct {
	EntityID uint64
	Pos      Vec3
}

func (*MoveBroadcast) Kind() Kind { return KindMoveBroadcast }

func (m *MoveBroadcast) encode(b *PacketBuilder) {
	b.WriteUint64(m.EntityID).WriteVec3(m.Pos)
}

func (m *MoveBroadcast) decode(r *Reader) {
	m.EntityID = r.Uint64()
	m.Pos = r.Vec3()
}

// Stop is sent as STOP.
type Stop struct {
	Pos Vec3
}

func (*Stop) Kind() Kind { return KindStop }

func (m *Stop) encode(b *PacketBuilder) {
	b.WriteVec3(m.Pos)
}

func (m *Stop) decode(r *Reader) {
	m.Pos = r.Vec3()
}

// StopBroadcast is received as STOP_BROADCAST.
type StopBroadcast struct {
	EntityID uint64
	Pos      Vec3
}

func (*StopBroadcast) Kind() Kind { return KindStopBroadcast }

func (m *StopBroadcast) encode(b *PacketBuilder) {
	b.WriteUint64(m.EntityID).WriteVec3(m.Pos)
}

func (m *StopBroadcast) decode(r *Reader) {
	m.EntityID = r.Uint64()
	m.Pos = r.Vec3()
}

// Teleport is received as TELEPORT.
type Teleport struct {
	Pos Vec3
}

func (*Teleport) Kind() Kind { return KindTeleport }

func (m *Teleport) encode(b *PacketBuilder) {
	b.WriteVec3(m.Pos)
}

func (m *Teleport) decode(r *Reader) {
	m.Pos = r.Vec3()
}

// PositionCorrection overrides the local position after the server rejected a move.
type PositionCorrection struct {
	Pos Vec3
}

func (*PositionCorrection) Kind() Kind { return KindPositionCorrection }

func (m *PositionCorrection) encode(b *PacketBuilder) {
	b.WriteVec3(m.Pos)
}

func (m *PositionCorrection) decode(r *Reader) {
	m.Pos = r.Vec3()
}

// Jump is sent as JUMP.
type Jump struct{ empty }

func (*Jump) Kind() Kind { return KindJump }

// JumpBroadcast is received as JUMP_BROADCAST.
type JumpBroadcast struct {
	EntityID uint64
}

func (*JumpBroadcast) Kind() Kind { return KindJumpBroadcast }

func (m *JumpBroadcast) encode(b *PacketBuilder) {
	b.WriteUint64(m.EntityID)
}

func (m *JumpBroadcast) decode(r *Reader) {
	m.EntityID = r.Uint64()
}

// Dash is sent as DASH.
type Dash struct {
	Dir Vec3
}

func (*Dash) Kind() Kind { return KindDash }

func (m *Dash) encode(b *PacketBuilder) {
	b.WriteVec3(m.Dir)
}

func (m *Dash) decode(r *Reader) {
	m.Dir = r.Vec3()
}

// DashBroadcast is received as DASH_BROADCAST.
type DashBroadcast struct {
	EntityID uint64
	Dir      Vec3
}

func (*DashBroadcast) Kind() Kind { return KindDashBroadcast }

func (m *DashBroadcast) encode(b *PacketBuilder) {
	b.WriteUint64(m.EntityID).WriteVec3(m.Dir)
}

func (m *DashBroadcast) decode(r *Reader) {
	m.EntityID = r.Uint64()
	m.Dir = r.Vec3()
}

// Appear announces an entity entering the area of interest.
type Appear struct {
	EntityID uint64
	Pos      Vec3
}

func (*Appear) Kind() Kind { return KindAppear }

func (m *Appear) encode(b *PacketBuilder) {
	b.WriteUint64(m.EntityID).WriteVec3(m.Pos)
}

func (m *Appear) decode(r *Reader) {
	m.EntityID = r.Uint64()
	m.Pos = r.Vec3()
}

// Disappear announces an entity leaving the area of interest.
type Disappear struct {
	EntityID uint64
}

func (*Disappear) Kind() Kind { return KindDisappear }

func (m *Disappear) encode(b *PacketBuilder) {
	b.WriteUint64(m.EntityID)
}

func (m *Disappear) decode(r *Reader) {
	m.EntityID = r.Uint64()
}

// PlayerInfo is received as PLAYER_INFO.
type PlayerInfo struct {
	EntityID uint64
	Name     string
	Level    int32
	Job      int32
}

func (*PlayerInfo) Kind() Kind { return KindPlayerInfo }

func (m *PlayerInfo) encode(b *PacketBuilder) {
	b.WriteUint64(m.EntityID).WriteString(m.Name).WriteInt32(m.Level).WriteInt32(m.Job)
}

func (m *PlayerInfo) decode(r *Reader) {
	m.EntityID = r.Uint64()
	m.Name = r.String()
	m.Level = r.Int32()
	m.Job = r.Int32()
}

// MonsterSpawn is received as MONSTER_SPAWN.
type MonsterSpawn struct {
	EntityID   uint64
	TemplateID int32
	Level      int32
	HP         int32
	MaxHP      int32
	Pos        Vec3
}

func (*MonsterSpawn) Kind() Kind { return KindMonsterSpawn }

func (m *MonsterSpawn) encode(b *PacketBuilder) {
	b.WriteUint64(m.EntityID).
		WriteInt32(m.TemplateID).
		WriteInt32(m.Level).
		WriteInt32(m.HP).
		WriteInt32(m.MaxHP).
		WriteVec3(m.Pos)
}

func (m *MonsterSpawn) decode(r *Reader) {
	m.EntityID = r.Uint64()
	m.TemplateID = r.Int32()
	m.Level = r.Int32()
	m.HP = r.Int32()
	m.MaxHP = r.Int32()
	m.Pos = r.Vec3()
}

// NpcSpawn is received as NPC_SPAWN.
type NpcSpawn struct {
	EntityID uint64
	NpcID    int32
	Pos      Vec3
}

func (*NpcSpawn) Kind() Kind { return KindNpcSpawn }

func (m *NpcSpawn) encode(b *PacketBuilder) {
	b.WriteUint64(m.EntityID).WriteInt32(m.NpcID).WriteVec3(m.Pos)
}

func (m *NpcSpawn) decode(r *Reader) {
	m.EntityID = r.Uint64()
	m.NpcID = r.Int32()
	m.Pos = r.Vec3()
}

// EntityState is received as ENTITY_STATE.
type EntityState struct {
	EntityID uint64
	HP       int32
	MaxHP    int32
	MP       int32
	MaxMP    int32
}

func (*EntityState) Kind() Kind { return KindEntityState }

func (m *EntityState) encode(b *PacketBuilder) {
	b.WriteUint64(m.EntityID).
		WriteInt32(m.HP).
		WriteInt32(m.MaxHP).
		WriteInt32(m.MP).
		WriteInt32(m.MaxMP)
}

func (m *EntityState) decode(r *Reader) {
	m.EntityID = r.Uint64()
	m.HP = r.Int32()
	m.MaxHP = r.Int32()
	m.MP = r.Int32()
	m.MaxMP = r.Int32()
}

// DropAppear is received as DROP_APPEAR.
type DropAppear struct {
	DropID uint64
	ItemID int32
	Count  int32
	Pos    Vec3
}

func (*DropAppear) Kind() Kind { return KindDropAppear }

func (m *DropAppear) encode(b *PacketBuilder) {
	b.WriteUint64(m.DropID).WriteInt32(m.ItemID).WriteInt32(m.Count).WriteVec3(m.Pos)
}

func (m *DropAppear) decode(r *Reader) {
	m.DropID = r.Uint64()
	m.ItemID = r.Int32()
	m.Count = r.Int32()
	m.Pos = r.Vec3()
}

// DropDisappear is received as DROP_DISAPPEAR.
type DropDisappear struct {
	DropID uint64
}

func (*DropDisappear) Kind() Kind { return KindDropDisappear }

func (m *DropDisappear) encode(b *PacketBuilder) {
	b.WriteUint64(m.DropID)
}

func (m *DropDisappear) decode(r *Reader) {
	m.DropID = r.Uint64()
}
