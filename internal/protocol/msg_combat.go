package protocol

type SkillSlot struct {
	SkillID int32
	Level   int32
}

func (e *SkillSlot) encode(b *PacketBuilder) {
	b.WriteInt32(e.SkillID).WriteInt32(e.Level)
}

func (e *SkillSlot) decode(r *Reader) {
	e.SkillID = r.Int32()
	e.Level = r.Int32()
}

// Attack is sent as ATTACK.
type Attack struct {
	Target uint64
}

func (*Attack) Kind() Kind { return KindAttack }

func (m *Attack) encode(b *PacketBuilder) {
	b.WriteUint64(m.Target)
}

func (m *Attack) decode(r *Reader) {
	m.Target = r.Uint64()
}

// AttackResult reports the outcome of a basic attack.
type AttackResult struct {
	Result      uint8
	Attacker    uint64
	Target      uint64
	Damage      int32
	TargetHP    int32
	TargetMaxHP int32
}

func (*AttackResult) Kind() Kind { return KindAttackResult }

func (m *AttackResult) encode(b *PacketBuilder) {
	b.WriteUint8(m.Result).
		WriteUint64(m.Attacker).
		WriteUint64(m.Target).
		WriteInt32(m.Damage).
		WriteInt32(m.TargetHP).
		WriteInt32(m.TargetMaxHP)
}

func (m *AttackResult) decode(r *Reader) {
	m.Result = r.Uint8()
	m.Attacker = r.Uint64()
	m.Target = r.Uint64()
	m.Damage = r.Int32()
	m.TargetHP = r.Int32()
	m.TargetMaxHP = r.Int32()
}

// SkillUse is sent as SKILL_USE.
type SkillUse struct {
	SkillID int32
	Target  uint64
}

func (*SkillUse) Kind() Kind { return KindSkillUse }

func (m *SkillUse) encode(b *PacketBuilder) {
	b.WriteInt32(m.SkillID).WriteUint64(m.Target)
}

func (m *SkillUse) decode(r *Reader) {
	m.SkillID = r.Int32()
	m.Target = r.Uint64()
}

// SkillResult is received as SKILL_RESULT.
type SkillResult struct {
	Result   uint8
	Caster   uint64
	Target   uint64
	SkillID  int32
	Damage   int32
	TargetHP int32
}

func (*SkillResult) Kind() Kind { return KindSkillResult }

func (m *SkillResult) encode(b *PacketBuilder) {
	b.WriteUint8(m.Result).
		WriteUint64(m.Caster).
		WriteUint64(m.Target).
		WriteInt32(m.SkillID).
		WriteInt32(m.Damage).
		WriteInt32(m.TargetHP)
}

func (m *SkillResult) decode(r *Reader) {
	m.Result = r.Uint8()
	m.Caster = r.Uint64()
	m.Target = r.Uint64()
	m.SkillID = r.Int32()
	m.Damage = r.Int32()
	m.TargetHP = r.Int32()
}

// BuffApply is received as BUFF_APPLY.
type BuffApply struct {
	EntityID   uint64
	BuffID     int32
	DurationMs int32
}

func (*BuffApply) Kind() Kind { return KindBuffApply }

func (m *BuffApply) encode(b *PacketBuilder) {
	b.WriteUint64(m.EntityID).WriteInt32(m.BuffID).WriteInt32(m.DurationMs)
}

func (m *BuffApply) decode(r *Reader) {
	m.EntityID = r.Uint64()
	m.BuffID = r.Int32()
	m.DurationMs = r.Int32()
}

// BuffRemove is received as BUFF_REMOVE.
type BuffRemove struct {
	EntityID uint64
	BuffID   int32
}

func (*BuffRemove) Kind() Kind { return KindBuffRemove }

func (m *BuffRemove) encode(b *PacketBuilder) {
	b.WriteUint64(m.EntityID).WriteInt32(m.BuffID)
}

func (m *BuffRemove) decode(r *Reader) {
	m.EntityID = r.Uint64()
	m.BuffID = r.Int32()
}

// EntityDie is received as ENTITY_DIE.
type EntityDie struct {
	EntityID uint64
	Killer   uint64
}

func (*EntityDie) Kind() Kind { return KindEntityDie }

func (m *EntityDie) encode(b *PacketBuilder) {
	b.WriteUint64(m.EntityID).WriteUint64(m.Killer)
}

func (m *EntityDie) decode(r *Reader) {
	m.EntityID = r.Uint64()
	m.Killer = r.Uint64()
}

// Respawn is sent as RESPAWN.
type Respawn struct{ empty }

func (*Respawn) Kind() Kind { return KindRespawn }

// RespawnResult is received as RESPAWN_RESULT.
type RespawnResult struct {
	Result uint8
	HP     int32
	Pos    Vec3
}

func (*RespawnResult) Kind() Kind { return KindRespawnResult }

func (m *RespawnResult) encode(b *PacketBuilder) {
	b.WriteUint8(m.Result)
	if m.Result != 0 {
		return
	}
	b.WriteInt32(m.HP).WriteVec3(m.Pos)
}

func (m *RespawnResult) decode(r *Reader) {
	m.Result = r.Uint8()
	if m.Result != 0 {
		return
	}
	m.HP = r.Int32()
	m.Pos = r.Vec3()
}

// ExpGain is received as EXP_GAIN.
type ExpGain struct {
	Gained int64
	Total  int64
}

func (*ExpGain) Kind() Kind { return KindExpGain }

func (m *ExpGain) encode(b *PacketBuilder) {
	b.WriteInt64(m.Gained).WriteInt64(m.Total)
}

func (m *ExpGain) decode(r *Reader) {
	m.Gained = r.Int64()
	m.Total = r.Int64()
}

// LevelUp is received as LEVEL_UP.
type LevelUp struct {
	EntityID uint64
	Level    int32
}

func (*LevelUp) Kind() Kind { return KindLevelUp }

func (m *LevelUp) encode(b *PacketBuilder) {
	b.WriteUint64(m.EntityID).WriteInt32(m.Level)
}

func (m *LevelUp) decode(r *Reader) {
	m.EntityID = r.Uint64()
	m.Level = r.Int32()
}

// StatUpdate carries the full stat block of the local player.
type StatUpdate struct {
	HP      int32
	MaxHP   int32
	MP      int32
	MaxMP   int32
	Attack  int32
	Defense int32
}

func (*StatUpdate) Kind() Kind { return KindStatUpdate }

func (m *StatUpdate) encode(b *PacketBuilder) {
	b.WriteInt32(m.HP).
		WriteInt32(m.MaxHP).
		WriteInt32(m.MP).
		WriteInt32(m.MaxMP).
		WriteInt32(m.Attack).
		WriteInt32(m.Defense)
}

func (m *StatUpdate) decode(r *Reader) {
	m.HP = r.Int32()
	m.MaxHP = r.Int32()
	m.MP = r.Int32()
	m.MaxMP = r.Int32()
	m.Attack = r.Int32()
	m.Defense = r.Int32()
}

// Cooldown is received as COOLDOWN.
type Cooldown struct {
	SkillID  int32
	RemainMs int32
}

func (*Cooldown) Kind() Kind { return KindCooldown }

func (m *Cooldown) encode(b *PacketBuilder) {
	b.WriteInt32(m.SkillID).WriteInt32(m.RemainMs)
}

func (m *Cooldown) decode(r *Reader) {
	m.SkillID = r.Int32()
	m.RemainMs = r.Int32()
}

// TargetSelect is sent as TARGET_SELECT.
type TargetSelect struct {
	Target uint64
}

func (*TargetSelect) Kind() Kind { return KindTargetSelect }

func (m *TargetSelect) encode(b *PacketBuilder) {
	b.WriteUint64(m.Target)
}

func (m *TargetSelect) decode(r *Reader) {
	m.Target = r.Uint64()
}

// SkillList is received as SKILL_LIST.
type SkillList struct {
	Skills []SkillSlot
}

func (*SkillList) Kind() Kind { return KindSkillList }

func (m *SkillList) encode(b *PacketBuilder) {
	writeList(b, m.Skills)
}

func (m *SkillList) decode(r *Reader) {
	m.Skills = readList[SkillSlot](r)
}
