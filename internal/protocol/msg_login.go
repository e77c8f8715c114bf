package protocol

// CharSummary is one entry of CHAR_LIST_RESP.
type CharSummary struct {
	CharID uint32
	Name   string
	Level  int32
	Job    int32
}

func (e *CharSummary) encode(b *PacketBuilder) {
	b.WriteUint32(e.CharID).
		WriteFixedString(e.Name, NameSize).
		WriteInt32(e.Level).
		WriteInt32(e.Job)
}

func (e *CharSummary) decode(r *Reader) {
	e.CharID = r.Uint32()
	e.Name = r.FixedString(NameSize)
	e.Level = r.Int32()
	e.Job = r.Int32()
}

// Login authenticates the account on the field server.
type Login struct {
	Username string
	Password string
}

func (*Login) Kind() Kind { return KindLogin }

func (m *Login) encode(b *PacketBuilder) {
	b.WriteString(m.Username).WriteString(m.Password)
}

func (m *Login) decode(r *Reader) {
	m.Username = r.String()
	m.Password = r.String()
}

// LoginResult answers LOGIN. AccountID is only sent on success; it is zero when the payload is a bare result byte.
type LoginResult struct {
	Result    LoginCode
	AccountID uint32
}

func (*LoginResult) Kind() Kind { return KindLoginResult }

func (m *LoginResult) encode(b *PacketBuilder) {
	b.WriteUint8(uint8(m.Result)).WriteUint32(m.AccountID)
}

func (m *LoginResult) decode(r *Reader) {
	m.Result = LoginCode(r.Uint8())
	if r.Remaining() >= 4 {
		m.AccountID = r.Uint32()
	}
}

// Logout is sent as LOGOUT.
type Logout struct{ empty }

func (*Logout) Kind() Kind { return KindLogout }

// LogoutResult is received as LOGOUT_RESULT.
type LogoutResult struct {
	Result uint8
}

func (*LogoutResult) Kind() Kind { return KindLogoutResult }

func (m *LogoutResult) encode(b *PacketBuilder) {
	b.WriteUint8(m.Result)
}

func (m *LogoutResult) decode(r *Reader) {
	m.Result = r.Uint8()
}

// CharListReq is sent as CHAR_LIST_REQ.
type CharListReq struct{ empty }

func (*CharListReq) Kind() Kind { return KindCharListReq }

// CharListResp lists the characters of the logged in account.
type CharListResp struct {
	Characters []CharSummary
}

func (*CharListResp) Kind() Kind { return KindCharListResp }

func (m *CharListResp) encode(b *PacketBuilder) {
	writeList(b, m.Characters)
}

func (m *CharListResp) decode(r *Reader) {
	m.Characters = readList[CharSummary](r)
}

// CharCreate is sent as CHAR_CREATE.
type CharCreate struct {
	Name string
	Job  int32
}

func (*CharCreate) Kind() Kind { return KindCharCreate }

func (m *CharCreate) encode(b *PacketBuilder) {
	b.WriteString(m.Name).WriteInt32(m.Job)
}

func (m *CharCreate) decode(r *Reader) {
	m.Name = r.String()
	m.Job = r.Int32()
}

// CharCreateResult is received as CHAR_CREATE_RESULT.
type CharCreateResult struct {
	Result uint8
	CharID uint32
}

func (*CharCreateResult) Kind() Kind { return KindCharCreateResult }

func (m *CharCreateResult) encode(b *PacketBuilder) {
	b.WriteUint8(m.Result)
	if m.Result != 0 {
		return
	}
	b.WriteUint32(m.CharID)
}

func (m *CharCreateResult) decode(r *Reader) {
	m.Result = r.Uint8()
	if m.Result != 0 {
		return
	}
	m.CharID = r.Uint32()
}

// CharDelete is sent as CHAR_DELETE.
type CharDelete struct {
	CharID uint32
}

func (*CharDelete) Kind() Kind { return KindCharDelete }

func (m *CharDelete) encode(b *PacketBuilder) {
	b.WriteUint32(m.CharID)
}

func (m *CharDelete) decode(r *Reader) {
	m.CharID = r.Uint32()
}

// CharDeleteResult is received as CHAR_DELETE_RESULT.
type CharDeleteResult struct {
	Result uint8
	CharID uint32
}

func (*CharDeleteResult) Kind() Kind { return KindCharDeleteResult }

func (m *CharDeleteResult) encode(b *PacketBuilder) {
	b.WriteUint8(m.Result).WriteUint32(m.CharID)
}

func (m *CharDeleteResult) decode(r *Reader) {
	m.Result = r.Uint8()
	m.CharID = r.Uint32()
}

// CharSelect picks the character to enter the world with.
type CharSelect struct {
	CharID uint32
}

func (*CharSelect) Kind() Kind { return KindCharSelect }

func (m *CharSelect) encode(b *PacketBuilder) {
	b.WriteUint32(m.CharID)
}

func (m *CharSelect) decode(r *Reader) {
	m.CharID = r.Uint32()
}

// EnterGame completes character selection. The entity, zone and position fields are only present on success.
type EnterGame struct {
	Result   uint8
	EntityID uint64
	ZoneID   int32
	Pos      Vec3
}

func (*EnterGame) Kind() Kind { return KindEnterGame }

func (m *EnterGame) encode(b *PacketBuilder) {
	b.WriteUint8(m.Result)
	if m.Result != 0 {
		return
	}
	b.WriteUint64(m.EntityID).WriteInt32(m.ZoneID).WriteVec3(m.Pos)
}

func (m *EnterGame) decode(r *Reader) {
	m.Result = r.Uint8()
	if m.Result != 0 {
		return
	}
	m.EntityID = r.Uint64()
	m.ZoneID = r.Int32()
	m.Pos = r.Vec3()
}
