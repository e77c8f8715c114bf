package protocol

type PartyMember struct {
	EntityID uint64
	Name     string
	Level    int32
	HP       int32
	MaxHP    int32
}

func (e *PartyMember) encode(b *PacketBuilder) {
	b.WriteUint64(e.EntityID).
		WriteString(e.Name).
		WriteInt32(e.Level).
		WriteInt32(e.HP).
		WriteInt32(e.MaxHP)
}

func (e *PartyMember) decode(r *Reader) {
	e.EntityID = r.Uint64()
	e.Name = r.String()
	e.Level = r.Int32()
	e.HP = r.Int32()
	e.MaxHP = r.Int32()
}

type FriendEntry struct {
	Name   string
	Online bool
}

func (e *FriendEntry) encode(b *PacketBuilder) {
	b.WriteString(e.Name).WriteBool(e.Online)
}

func (e *FriendEntry) decode(r *Reader) {
	e.Name = r.String()
	e.Online = r.Bool()
}

// Chat sends a message on a chat channel.
type Chat struct {
	Channel uint8
	Text    string
}

func (*Chat) Kind() Kind { return KindChat }

func (m *Chat) encode(b *PacketBuilder) {
	b.WriteUint8(m.Channel).WriteString(m.Text)
}

func (m *Chat) decode(r *Reader) {
	m.Channel = r.Uint8()
	m.Text = r.String()
}

// ChatBroadcast is received as CHAT_BROADCAST.
type ChatBroadcast struct {
	Channel uint8
	Sender  uint64
	Name    string
	Text    string
}

func (*ChatBroadcast) Kind() Kind { return KindChatBroadcast }

func (m *ChatBroadcast) encode(b *PacketBuilder) {
	b.WriteUint8(m.Channel).WriteUint64(m.Sender).WriteString(m.Name).WriteString(m.Text)
}

func (m *ChatBroadcast) decode(r *Reader) {
	m.Channel = r.Uint8()
	m.Sender = r.Uint64()
	m.Name = r.String()
	m.Text = r.String()
}

// Whisper is sent as WHISPER.
type Whisper struct {
	Target string
	Text   string
}

func (*Whisper) Kind() Kind { return KindWhisper }

func (m *Whisper) encode(b *PacketBuilder) {
	b.WriteString(m.Target).WriteString(m.Text)
}

func (m *Whisper) decode(r *Reader) {
	m.Target = r.String()
	m.Text = r.String()
}

// WhisperRecv is received as WHISPER_RECV.
type WhisperRecv struct {
	Sender string
	Text   string
}

func (*WhisperRecv) Kind() Kind { return KindWhisperRecv }

func (m *WhisperRecv) encode(b *PacketBuilder) {
	b.WriteString(m.Sender).WriteString(m.Text)
}

func (m *WhisperRecv) decode(r *Reader) {
	m.Sender = r.String()
	m.Text = r.String()
}

// WhisperResult is received as WHISPER_RESULT.
type WhisperResult struct {
	Result uint8
}

func (*WhisperResult) Kind() Kind { return KindWhisperResult }

func (m *WhisperResult) encode(b *PacketBuilder) {
	b.WriteUint8(m.Result)
}

func (m *WhisperResult) decode(r *Reader) {
	m.Result = r.Uint8()
}

// PartyInvite is sent as PARTY_INVITE.
type PartyInvite struct {
	Target uint64
}

func (*PartyInvite) Kind() Kind { return KindPartyInvite }

func (m *PartyInvite) encode(b *PacketBuilder) {
	b.WriteUint64(m.Target)
}

func (m *PartyInvite) decode(r *Reader) {
	m.Target = r.Uint64()
}

// PartyInviteRecv is received as PARTY_INVITE_RECV.
type PartyInviteRecv struct {
	Inviter uint64
	Name    string
}

func (*PartyInviteRecv) Kind() Kind { return KindPartyInviteRecv }

func (m *PartyInviteRecv) encode(b *PacketBuilder) {
	b.WriteUint64(m.Inviter).WriteString(m.Name)
}

func (m *PartyInviteRecv) decode(r *Reader) {
	m.Inviter = r.Uint64()
	m.Name = r.String()
}

// PartyRespond is sent as PARTY_RESPOND.
type PartyRespond struct {
	Inviter uint64
	Accept  bool
}

func (*PartyRespond) Kind() Kind { return KindPartyRespond }

func (m *PartyRespond) encode(b *PacketBuilder) {
	b.WriteUint64(m.Inviter).WriteBool(m.Accept)
}

func (m *PartyRespond) decode(r *Reader) {
	m.Inviter = r.Uint64()
	m.Accept = r.Bool()
}

// PartyInfo is a full party snapshot.
type PartyInfo struct {
	PartyID uint32
	Leader  uint64
	Members []PartyMember
}

func (*PartyInfo) Kind() Kind { return KindPartyInfo }

func (m *PartyInfo) encode(b *PacketBuilder) {
	b.WriteUint32(m.PartyID).WriteUint64(m.Leader)
	writeList(b, m.Members)
}

func (m *PartyInfo) decode(r *Reader) {
	m.PartyID = r.Uint32()
	m.Leader = r.Uint64()
	m.Members = readList[PartyMember](r)
}

// PartyLeave is sent as PARTY_LEAVE.
type PartyLeave struct{ empty }

func (*PartyLeave) Kind() Kind { return KindPartyLeave }

// PartyLeft is received as PARTY_LEFT.
type PartyLeft struct {
	EntityID uint64
}

func (*PartyLeft) Kind() Kind { return KindPartyLeft }

func (m *PartyLeft) encode(b *PacketBuilder) {
	b.WriteUint64(m.EntityID)
}

func (m *PartyLeft) decode(r *Reader) {
	m.EntityID = r.Uint64()
}

// PartyKick is sent as PARTY_KICK.
type PartyKick struct {
	Target uint64
}

func (*PartyKick) Kind() Kind { return KindPartyKick }

func (m *PartyKick) encode(b *PacketBuilder) {
	b.WriteUint64(m.Target)
}

func (m *PartyKick) decode(r *Reader) {
	m.Target = r.Uint64()
}

// FriendAdd is sent as FRIEND_ADD.
type FriendAdd struct {
	Name string
}

func (*FriendAdd) Kind() Kind { return KindFriendAdd }

func (m *FriendAdd) encode(b *PacketBuilder) {
	b.WriteString(m.Name)
}

func (m *FriendAdd) decode(r *Reader) {
	m.Name = r.String()
}

// FriendAddResult is received as FRIEND_ADD_RESULT.
type FriendAddResult struct {
	Result uint8
	Name   string
}

func (*FriendAddResult) Kind() Kind { return KindFriendAddResult }

func (m *FriendAddResult) encode(b *PacketBuilder) {
	b.WriteUint8(m.Result).WriteString(m.Name)
}

func (m *FriendAddResult) decode(r *Reader) {
	m.Result = r.Uint8()
	m.Name = r.String()
}

// FriendListReq is sent as FRIEND_LIST_REQ.
type FriendListReq struct{ empty }

func (*FriendListReq) Kind() Kind { return KindFriendListReq }

// FriendList is received as FRIEND_LIST.
type FriendList struct {
	Friends []FriendEntry
}

func (*FriendList) Kind() Kind { return KindFriendList }

func (m *FriendList) encode(b *PacketBuilder) {
	writeList(b, m.Friends)
}

func (m *FriendList) decode(r *Reader) {
	m.Friends = readList[FriendEntry](r)
}

// FriendRemove is sent as FRIEND_REMOVE.
type FriendRemove struct {
	Name string
}

func (*FriendRemove) Kind() Kind { return KindFriendRemove }

func (m *FriendRemove) encode(b *PacketBuilder) {
	b.WriteString(m.Name)
}

func (m *FriendRemove) decode(r *Reader) {
	m.Name = r.String()
}

// FriendStatus is received as FRIEND_STATUS.
type FriendStatus struct {
	Name   string
	Online bool
}

func (*FriendStatus) Kind() Kind { return KindFriendStatus }

func (m *FriendStatus) encode(b *PacketBuilder) {
	b.WriteString(m.Name).WriteBool(m.Online)
}

func (m *FriendStatus) decode(r *Reader) {
	m.Name = r.String()
	m.Online = r.Bool()
}

// GuildCreate is sent as GUILD_CREATE.
type GuildCreate struct {
	Name string
}

func (*GuildCreate) Kind() Kind { return KindGuildCreate }

func (m *GuildCreate) encode(b *PacketBuilder) {
	b.WriteString(m.Name)
}

func (m *GuildCreate) decode(r *Reader) {
	m.Name = r.String()
}

// GuildCreateResult is received as GUILD_CREATE_RESULT.
type GuildCreateResult struct {
	Result  uint8
	GuildID uint32
}

func (*GuildCreateResult) Kind() Kind { return KindGuildCreateResult }

func (m *GuildCreateResult) encode(b *PacketBuilder) {
	b.WriteUint8(m.Result)
	if m.Result != 0 {
		return
	}
	b.WriteUint32(m.GuildID)
}

func (m *GuildCreateResult) decode(r *Reader) {
	m.Result = r.Uint8()
	if m.Result != 0 {
		return
	}
	m.GuildID = r.Uint32()
}

// GuildInfo is received as GUILD_INFO.
type GuildInfo struct {
	GuildID uint32
	Name    string
	Level   int32
	Members int32
}

func (*GuildInfo) Kind() Kind { return KindGuildInfo }

func (m *GuildInfo) encode(b *PacketBuilder) {
	b.WriteUint32(m.GuildID).WriteString(m.Name).WriteInt32(m.Level).WriteInt32(m.Members)
}

func (m *GuildInfo) decode(r *Reader) {
	m.GuildID = r.Uint32()
	m.Name = r.String()
	m.Level = r.Int32()
	m.Members = r.Int32()
}

// GuildInvite is sent as GUILD_INVITE.
type GuildInvite struct {
	Target uint64
}

func (*GuildInvite) Kind() Kind { return KindGuildInvite }

func (m *GuildInvite) encode(b *PacketBuilder) {
	b.WriteUint64(m.Target)
}

func (m *GuildInvite) decode(r *Reader) {
	m.Target = r.Uint64()
}

// GuildInviteRecv is received as GUILD_INVITE_RECV.
type GuildInviteRecv struct {
	GuildID uint32
	Name    string
}

func (*GuildInviteRecv) Kind() Kind { return KindGuildInviteRecv }

func (m *GuildInviteRecv) encode(b *PacketBuilder) {
	b.WriteUint32(m.GuildID).WriteString(m.Name)
}

func (m *GuildInviteRecv) decode(r *Reader) {
	m.GuildID = r.Uint32()
	m.Name = r.String()
}

// GuildLeave is sent as GUILD_LEAVE.
type GuildLeave struct{ empty }

func (*GuildLeave) Kind() Kind { return KindGuildLeave }

// Emote is sent as EMOTE.
type Emote struct {
	Emote uint8
}

func (*Emote) Kind() Kind { return KindEmote }

func (m *Emote) encode(b *PacketBuilder) {
	b.WriteUint8(m.Emote)
}

func (m *Emote) decode(r *Reader) {
	m.Emote = r.Uint8()
}

// EmoteBroadcast is received as EMOTE_BROADCAST.
type EmoteBroadcast struct {
	EntityID uint64
	Emote    uint8
}

func (*EmoteBroadcast) Kind() Kind { return KindEmoteBroadcast }

func (m *EmoteBroadcast) encode(b *PacketBuilder) {
	b.WriteUint64(m.EntityID).WriteUint8(m.Emote)
}

func (m *EmoteBroadcast) decode(r *Reader) {
	m.EntityID = r.Uint64()
	m.Emote = r.Uint8()
}
