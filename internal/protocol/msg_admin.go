package protocol

// AdminCommand is sent as ADMIN_COMMAND.
type AdminCommand struct {
	Command string
}

func (*AdminCommand) Kind() Kind { return KindAdminCommand }

func (m *AdminCommand) encode(b *PacketBuilder) {
	b.WriteString(m.Command)
}

func (m *AdminCommand) decode(r *Reader) {
	m.Command = r.String()
}

// AdminCommandResult is received as ADMIN_COMMAND_RESULT.
type AdminCommandResult struct {
	Result uint8
	Text   string
}

func (*AdminCommandResult) Kind() Kind { return KindAdminCommandResult }

func (m *AdminCommandResult) encode(b *PacketBuilder) {
	b.WriteUint8(m.Result).WriteString(m.Text)
}

func (m *AdminCommandResult) decode(r *Reader) {
	m.Result = r.Uint8()
	m.Text = r.String()
}

// AdminAnnounce is received as ADMIN_ANNOUNCE.
type AdminAnnounce struct {
	Text string
}

func (*AdminAnnounce) Kind() Kind { return KindAdminAnnounce }

func (m *AdminAnnounce) encode(b *PacketBuilder) {
	b.WriteString(m.Text)
}

func (m *AdminAnnounce) decode(r *Reader) {
	m.Text = r.String()
}

// AdminShutdownNotice is received as ADMIN_SHUTDOWN_NOTICE.
type AdminShutdownNotice struct {
	Seconds int32
}

func (*AdminShutdownNotice) Kind() Kind { return KindAdminShutdownNotice }

func (m *AdminShutdownNotice) encode(b *PacketBuilder) {
	b.WriteInt32(m.Seconds)
}

func (m *AdminShutdownNotice) decode(r *Reader) {
	m.Seconds = r.Int32()
}

// AdminTeleport is sent as ADMIN_TELEPORT.
type AdminTeleport struct {
	ZoneID int32
	Pos    Vec3
}

func (*AdminTeleport) Kind() Kind { return KindAdminTeleport }

func (m *AdminTeleport) encode(b *PacketBuilder) {
	b.WriteInt32(m.ZoneID).WriteVec3(m.Pos)
}

func (m *AdminTeleport) decode(r *Reader) {
	m.ZoneID = r.Int32()
	m.Pos = r.Vec3()
}

// AdminSpawn is sent as ADMIN_SPAWN.
type AdminSpawn struct {
	TemplateID int32
	Count      int32
}

func (*AdminSpawn) Kind() Kind { return KindAdminSpawn }

func (m *AdminSpawn) encode(b *PacketBuilder) {
	b.WriteInt32(m.TemplateID).WriteInt32(m.Count)
}

func (m *AdminSpawn) decode(r *Reader) {
	m.TemplateID = r.Int32()
	m.Count = r.Int32()
}

// AdminGodMode is sent as ADMIN_GOD_MODE.
type AdminGodMode struct {
	On bool
}

func (*AdminGodMode) Kind() Kind { return KindAdminGodMode }

func (m *AdminGodMode) encode(b *PacketBuilder) {
	b.WriteBool(m.On)
}

func (m *AdminGodMode) decode(r *Reader) {
	m.On = r.Bool()
}

// AdminState is received as ADMIN_STATE.
type AdminState struct {
	God       bool
	Invisible bool
}

func (*AdminState) Kind() Kind { return KindAdminState }

func (m *AdminState) encode(b *PacketBuilder) {
	b.WriteBool(m.God).WriteBool(m.Invisible)
}

func (m *AdminState) decode(r *Reader) {
	m.God = r.Bool()
	m.Invisible = r.Bool()
}
