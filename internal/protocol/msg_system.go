package protocol

// GateRouteReq asks the gate for a field server address.
type GateRouteReq struct{ empty }

func (*GateRouteReq) Kind() Kind { return KindGateRouteReq }

// GateRouteResp carries the field server address. Port and IP are only present when Result is RouteOK.
type GateRouteResp struct {
	Result RouteCode
	Port   uint16
	IP     string
}

func (*GateRouteResp) Kind() Kind { return KindGateRouteResp }

func (m *GateRouteResp) encode(b *PacketBuilder) {
	b.WriteUint8(uint8(m.Result))
	if m.Result != RouteOK {
		return
	}
	b.WriteUint16(m.Port).WriteString(m.IP)
}

func (m *GateRouteResp) decode(r *Reader) {
	m.Result = RouteCode(r.Uint8())
	if m.Result != RouteOK {
		return
	}
	m.Port = r.Uint16()
	m.IP = r.String()
}

// Heartbeat keeps an idle field connection alive.
type Heartbeat struct {
	Seq uint32
}

func (*Heartbeat) Kind() Kind { return KindHeartbeat }

func (m *Heartbeat) encode(b *PacketBuilder) {
	b.WriteUint32(m.Seq)
}

func (m *Heartbeat) decode(r *Reader) {
	m.Seq = r.Uint32()
}

// HeartbeatAck is received as HEARTBEAT_ACK.
type HeartbeatAck struct {
	Seq          uint32
	ServerTimeMs int64
}

func (*HeartbeatAck) Kind() Kind { return KindHeartbeatAck }

func (m *HeartbeatAck) encode(b *PacketBuilder) {
	b.WriteUint32(m.Seq).WriteInt64(m.ServerTimeMs)
}

func (m *HeartbeatAck) decode(r *Reader) {
	m.Seq = r.Uint32()
	m.ServerTimeMs = r.Int64()
}

// ServerNotice is received as SERVER_NOTICE.
type ServerNotice struct {
	Level uint8
	Text  string
}

func (*ServerNotice) Kind() Kind { return KindServerNotice }

func (m *ServerNotice) encode(b *PacketBuilder) {
	b.WriteUint8(m.Level).WriteString(m.Text)
}

func (m *ServerNotice) decode(r *Reader) {
	m.Level = r.Uint8()
	m.Text = r.String()
}

// ErrorResp reports that the server rejected a request of kind ReqKind.
type ErrorResp struct {
	ReqKind uint16
	Code    uint16
}

func (*ErrorResp) Kind() Kind { return KindErrorResp }

func (m *ErrorResp) encode(b *PacketBuilder) {
	b.WriteUint16(m.ReqKind).WriteUint16(m.Code)
}

func (m *ErrorResp) decode(r *Reader) {
	m.ReqKind = r.Uint16()
	m.Code = r.Uint16()
}

// Kick precedes a server initiated disconnect.
type Kick struct {
	Reason uint8
	Text   string
}

func (*Kick) Kind() Kind { return KindKick }

func (m *Kick) encode(b *PacketBuilder) {
	b.WriteUint8(m.Reason).WriteString(m.Text)
}

func (m *Kick) decode(r *Reader) {
	m.Reason = r.Uint8()
	m.Text = r.String()
}

// ServerTime is received as SERVER_TIME.
type ServerTime struct {
	UnixMs int64
}

func (*ServerTime) Kind() Kind { return KindServerTime }

func (m *ServerTime) encode(b *PacketBuilder) {
	b.WriteInt64(m.UnixMs)
}

func (m *ServerTime) decode(r *Reader) {
	m.UnixMs = r.Int64()
}
