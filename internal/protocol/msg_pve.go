package protocol

type QuestEntry struct {
	QuestID  int32
	State    uint8
	Progress int32
}

func (e *QuestEntry) encode(b *PacketBuilder) {
	b.WriteInt32(e.QuestID).WriteUint8(e.State).WriteInt32(e.Progress)
}

func (e *QuestEntry) decode(r *Reader) {
	e.QuestID = r.Int32()
	e.State = r.Uint8()
	e.Progress = r.Int32()
}

// QuestList is received as QUEST_LIST.
type QuestList struct {
	Quests []QuestEntry
}

func (*QuestList) Kind() Kind { return KindQuestList }

func (m *QuestList) encode(b *PacketBuilder) {
	writeList(b, m.Quests)
}

func (m *QuestList) decode(r *Reader) {
	m.Quests = readList[QuestEntry](r)
}

// QuestAccept is sent as QUEST_ACCEPT.
type QuestAccept struct {
	QuestID int32
}

func (*QuestAccept) Kind() Kind { return KindQuestAccept }

func (m *QuestAccept) encode(b *PacketBuilder) {
	b.WriteInt32(m.QuestID)
}

func (m *QuestAccept) decode(r *Reader) {
	m.QuestID = r.Int32()
}

// QuestAcceptResult is received as QUEST_ACCEPT_RESULT.
type QuestAcceptResult struct {
	Result  uint8
	QuestID int32
}

func (*QuestAcceptResult) Kind() Kind { return KindQuestAcceptResult }

func (m *QuestAcceptResult) encode(b *PacketBuilder) {
	b.WriteUint8(m.Result).WriteInt32(m.QuestID)
}

func (m *QuestAcceptResult) decode(r *Reader) {
	m.Result = r.Uint8()
	m.QuestID = r.Int32()
}

// QuestProgress is received as QUEST_PROGRESS.
type QuestProgress struct {
	QuestID  int32
	Progress int32
	Goal     int32
}

func (*QuestProgress) Kind() Kind { return KindQuestProgress }

func (m *QuestProgress) encode(b *PacketBuilder) {
	b.WriteInt32(m.QuestID).WriteInt32(m.Progress).WriteInt32(m.Goal)
}

func (m *QuestProgress) decode(r *Reader) {
	m.QuestID = r.Int32()
	m.Progress = r.Int32()
	m.Goal = r.Int32()
}

// QuestComplete is sent as QUEST_COMPLETE.
type QuestComplete struct {
	QuestID int32
}

func (*QuestComplete) Kind() Kind { return KindQuestComplete }

func (m *QuestComplete) encode(b *PacketBuilder) {
	b.WriteInt32(m.QuestID)
}

func (m *QuestComplete) decode(r *Reader) {
	m.QuestID = r.Int32()
}

// QuestCompleteResult reports quest turn-in. Rewards are only present on success.
type QuestCompleteResult struct {
	Result  uint8
	QuestID int32
	Exp     int64
	Gold    int64
}

func (*QuestCompleteResult) Kind() Kind { return KindQuestCompleteResult }

func (m *QuestCompleteResult) encode(b *PacketBuilder) {
	b.WriteUint8(m.Result).WriteInt32(m.QuestID)
	if m.Result != 0 {
		return
	}
	b.WriteInt64(m.Exp).WriteInt64(m.Gold)
}

func (m *QuestCompleteResult) decode(r *Reader) {
	m.Result = r.Uint8()
	m.QuestID = r.Int32()
	if m.Result != 0 {
		return
	}
	m.Exp = r.Int64()
	m.Gold = r.Int64()
}

// QuestAbandon is sent as QUEST_ABANDON.
type QuestAbandon struct {
	QuestID int32
}

func (*QuestAbandon) Kind() Kind { return KindQuestAbandon }

func (m *QuestAbandon) encode(b *PacketBuilder) {
	b.WriteInt32(m.QuestID)
}

func (m *QuestAbandon) decode(r *Reader) {
	m.QuestID = r.Int32()
}

// DungeonEnter is sent as DUNGEON_ENTER.
type DungeonEnter struct {
	DungeonID int32
}

func (*DungeonEnter) Kind() Kind { return KindDungeonEnter }

func (m *DungeonEnter) encode(b *PacketBuilder) {
	b.WriteInt32(m.DungeonID)
}

func (m *DungeonEnter) decode(r *Reader) {
	m.DungeonID = r.Int32()
}

// DungeonEnterResult is received as DUNGEON_ENTER_RESULT.
type DungeonEnterResult struct {
	Result     uint8
	InstanceID uint32
	ZoneID     int32
}

func (*DungeonEnterResult) Kind() Kind { return KindDungeonEnterResult }

func (m *DungeonEnterResult) encode(b *PacketBuilder) {
	b.WriteUint8(m.Result)
	if m.Result != 0 {
		return
	}
	b.WriteUint32(m.InstanceID).WriteInt32(m.ZoneID)
}

func (m *DungeonEnterResult) decode(r *Reader) {
	m.Result = r.Uint8()
	if m.Result != 0 {
		return
	}
	m.InstanceID = r.Uint32()
	m.ZoneID = r.Int32()
}

// DungeonLeave is sent as DUNGEON_LEAVE.
type DungeonLeave struct{ empty }

func (*DungeonLeave) Kind() Kind { return KindDungeonLeave }

// DungeonClear is received as DUNGEON_CLEAR.
type DungeonClear struct {
	InstanceID uint32
	ClearMs    int32
}

func (*DungeonClear) Kind() Kind { return KindDungeonClear }

func (m *DungeonClear) encode(b *PacketBuilder) {
	b.WriteUint32(m.InstanceID).WriteInt32(m.ClearMs)
}

func (m *DungeonClear) decode(r *Reader) {
	m.InstanceID = r.Uint32()
	m.ClearMs = r.Int32()
}

// BossHP is received as BOSS_HP.
type BossHP struct {
	EntityID uint64
	HP       int32
	MaxHP    int32
	Phase    uint8
}

func (*BossHP) Kind() Kind { return KindBossHP }

func (m *BossHP) encode(b *PacketBuilder) {
	b.WriteUint64(m.EntityID).WriteInt32(m.HP).WriteInt32(m.MaxHP).WriteUint8(m.Phase)
}

func (m *BossHP) decode(r *Reader) {
	m.EntityID = r.Uint64()
	m.HP = r.Int32()
	m.MaxHP = r.Int32()
	m.Phase = r.Uint8()
}

// DuelRequest is sent as DUEL_REQUEST.
type DuelRequest struct {
	Target uint64
}

func (*DuelRequest) Kind() Kind { return KindDuelRequest }

func (m *DuelRequest) encode(b *PacketBuilder) {
	b.WriteUint64(m.Target)
}

func (m *DuelRequest) decode(r *Reader) {
	m.Target = r.Uint64()
}

// DuelRequestRecv is received as DUEL_REQUEST_RECV.
type DuelRequestRecv struct {
	Requester uint64
	Name      string
}

func (*DuelRequestRecv) Kind() Kind { return KindDuelRequestRecv }

func (m *DuelRequestRecv) encode(b *PacketBuilder) {
	b.WriteUint64(m.Requester).WriteString(m.Name)
}

func (m *DuelRequestRecv) decode(r *Reader) {
	m.Requester = r.Uint64()
	m.Name = r.String()
}

// DuelRespond is sent as DUEL_RESPOND.
type DuelRespond struct {
	Requester uint64
	Accept    bool
}

func (*DuelRespond) Kind() Kind { return KindDuelRespond }

func (m *DuelRespond) encode(b *PacketBuilder) {
	b.WriteUint64(m.Requester).WriteBool(m.Accept)
}

func (m *DuelRespond) decode(r *Reader) {
	m.Requester = r.Uint64()
	m.Accept = r.Bool()
}

// DuelStart is received as DUEL_START.
type DuelStart struct {
	Opponent    uint64
	CountdownMs int32
}

func (*DuelStart) Kind() Kind { return KindDuelStart }

func (m *DuelStart) encode(b *PacketBuilder) {
	b.WriteUint64(m.Opponent).WriteInt32(m.CountdownMs)
}

func (m *DuelStart) decode(r *Reader) {
	m.Opponent = r.Uint64()
	m.CountdownMs = r.Int32()
}

// DuelEnd is received as DUEL_END.
type DuelEnd struct {
	Winner uint64
	Loser  uint64
}

func (*DuelEnd) Kind() Kind { return KindDuelEnd }

func (m *DuelEnd) encode(b *PacketBuilder) {
	b.WriteUint64(m.Winner).WriteUint64(m.Loser)
}

func (m *DuelEnd) decode(r *Reader) {
	m.Winner = r.Uint64()
	m.Loser = r.Uint64()
}

// ArenaQueue is sent as ARENA_QUEUE.
type ArenaQueue struct {
	Mode uint8
}

func (*ArenaQueue) Kind() Kind { return KindArenaQueue }

func (m *ArenaQueue) encode(b *PacketBuilder) {
	b.WriteUint8(m.Mode)
}

func (m *ArenaQueue) decode(r *Reader) {
	m.Mode = r.Uint8()
}

// ArenaQueueResult is received as ARENA_QUEUE_RESULT.
type ArenaQueueResult struct {
	Result  uint8
	Mode    uint8
	WaitSec int32
}

func (*ArenaQueueResult) Kind() Kind { return KindArenaQueueResult }

func (m *ArenaQueueResult) encode(b *PacketBuilder) {
	b.WriteUint8(m.Result).WriteUint8(m.Mode).WriteInt32(m.WaitSec)
}

func (m *ArenaQueueResult) decode(r *Reader) {
	m.Result = r.Uint8()
	m.Mode = r.Uint8()
	m.WaitSec = r.Int32()
}

// ArenaCancel is sent as ARENA_CANCEL.
type ArenaCancel struct{ empty }

func (*ArenaCancel) Kind() Kind { return KindArenaCancel }

// ArenaMatchFound is received as ARENA_MATCH_FOUND.
type ArenaMatchFound struct {
	MatchID uint32
	Mode    uint8
}

func (*ArenaMatchFound) Kind() Kind { return KindArenaMatchFound }

func (m *ArenaMatchFound) encode(b *PacketBuilder) {
	b.WriteUint32(m.MatchID).WriteUint8(m.Mode)
}

func (m *ArenaMatchFound) decode(r *Reader) {
	m.MatchID = r.Uint32()
	m.Mode = r.Uint8()
}

// ArenaScore is received as ARENA_SCORE.
type ArenaScore struct {
	TeamA     int32
	TeamB     int32
	RemainSec int32
}

func (*ArenaScore) Kind() Kind { return KindArenaScore }

func (m *ArenaScore) encode(b *PacketBuilder) {
	b.WriteInt32(m.TeamA).WriteInt32(m.TeamB).WriteInt32(m.RemainSec)
}

func (m *ArenaScore) decode(r *Reader) {
	m.TeamA = r.Int32()
	m.TeamB = r.Int32()
	m.RemainSec = r.Int32()
}

// ArenaEnd is received as ARENA_END.
type ArenaEnd struct {
	MatchID     uint32
	WinnerTeam  uint8
	RatingDelta int32
}

func (*ArenaEnd) Kind() Kind { return KindArenaEnd }

func (m *ArenaEnd) encode(b *PacketBuilder) {
	b.WriteUint32(m.MatchID).WriteUint8(m.WinnerTeam).WriteInt32(m.RatingDelta)
}

func (m *ArenaEnd) decode(r *Reader) {
	m.MatchID = r.Uint32()
	m.WinnerTeam = r.Uint8()
	m.RatingDelta = r.Int32()
}

// PkStatus is received as PK_STATUS.
type PkStatus struct {
	EntityID uint64
	PkMode   uint8
	Karma    int32
}

func (*PkStatus) Kind() Kind { return KindPkStatus }

func (m *PkStatus) encode(b *PacketBuilder) {
	b.WriteUint64(m.EntityID).WriteUint8(m.PkMode).WriteInt32(m.Karma)
}

func (m *PkStatus) decode(r *Reader) {
	m.EntityID = r.Uint64()
	m.PkMode = r.Uint8()
	m.Karma = r.Int32()
}

// PkModeSet is sent as PK_MODE_SET.
type PkModeSet struct {
	Mode uint8
}

func (*PkModeSet) Kind() Kind { return KindPkModeSet }

func (m *PkModeSet) encode(b *PacketBuilder) {
	b.WriteUint8(m.Mode)
}

func (m *PkModeSet) decode(r *Reader) {
	m.Mode = r.Uint8()
}
