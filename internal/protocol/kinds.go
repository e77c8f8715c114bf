package protocol

import (
	"fmt"
	"sort"
)

// Kind is the 16-bit message kind carried in every frame header.
type Kind uint16

// Direction tells which side of the connection sends a kind.
type Direction uint8

const (
	ToServer Direction = iota + 1
	ToClient
)

var directionNames = map[Direction]string{
	ToServer: "C->S",
	ToClient: "S->C",
}

func (d Direction) String() string {
	if n, ok := directionNames[d]; ok {
		return n
	}
	return "unknown"
}

// Group is the feature area a kind belongs to. It is derived from the code range.
type Group uint8

const (
	GroupSystem Group = iota
	GroupLogin
	GroupZone
	GroupMovement
	GroupAOI
	GroupCombat
	GroupInventory
	GroupSocial
	GroupEconomy
	GroupPvE
	GroupAdmin
	GroupUnknown
)

var groupNames = map[Group]string{
	GroupSystem:    "system",
	GroupLogin:     "login",
	GroupZone:      "zone",
	GroupMovement:  "movement",
	GroupAOI:       "aoi",
	GroupCombat:    "combat",
	GroupInventory: "inventory",
	GroupSocial:    "social",
	GroupEconomy:   "economy",
	GroupPvE:       "pve",
	GroupAdmin:     "admin",
	GroupUnknown:   "unknown",
}

func (g Group) String() string {
	return groupNames[g]
}

// ParseGroup resolves a group by its lowercase name.
func ParseGroup(name string) (Group, bool) {
	for g, n := range groupNames {
		if n == name {
			return g, true
		}
	}
	return GroupUnknown, false
}

type kindInfo struct {
	name      string
	direction Direction
	newRecord func() Record
}

// Known reports whether k is part of the catalog.
func (k Kind) Known() bool {
	_, ok := catalog[k]
	return ok
}

func (k Kind) String() string {
	if info, ok := catalog[k]; ok {
		return info.name
	}
	return fmt.Sprintf("UNKNOWN(%d)", uint16(k))
}

// Direction returns the sending side of k, or 0 for unknown kinds.
func (k Kind) Direction() Direction {
	return catalog[k].direction
}

// Group returns the feature area of k.
func (k Kind) Group() Group {
	switch {
	case k < 100:
		return GroupSystem
	case k < 200:
		return GroupLogin
	case k < 300:
		return GroupZone
	case k < 400:
		return GroupMovement
	case k < 500:
		return GroupAOI
	case k < 600:
		return GroupCombat
	case k < 700:
		return GroupInventory
	case k < 800:
		return GroupSocial
	case k < 900:
		return GroupEconomy
	case k < 1000:
		return GroupPvE
	case k < 1100:
		return GroupAdmin
	default:
		return GroupUnknown
	}
}

// Kinds returns every cataloged kind in ascending code order.
func Kinds() []Kind {
	out := make([]Kind, 0, len(catalog))
	for k := range catalog {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// KindByName resolves a kind from its catalog name, e.g. "LOGIN".
func KindByName(name string) (Kind, bool) {
	for k, info := range catalog {
		if info.name == name {
			return k, true
		}
	}
	return 0, false
}

// RouteCode is the result of a gate route request.
type RouteCode uint8

const (
	RouteOK RouteCode = iota
	RouteNoFieldServer
	RouteServerFull
	RouteMaintenance
)

var routeCodeNames = map[RouteCode]string{
	RouteOK:            "ok",
	RouteNoFieldServer: "no_field_server",
	RouteServerFull:    "server_full",
	RouteMaintenance:   "maintenance",
}

func (c RouteCode) String() string {
	if n, ok := routeCodeNames[c]; ok {
		return n
	}
	return fmt.Sprintf("route_code(%d)", uint8(c))
}

// LoginCode is the result of a login attempt.
type LoginCode uint8

const (
	LoginOK LoginCode = iota
	LoginNoSuchAccount
	LoginWrongPassword
	LoginAlreadyOnline
	LoginBanned
)

var loginCodeNames = map[LoginCode]string{
	LoginOK:            "ok",
	LoginNoSuchAccount: "no_such_account",
	LoginWrongPassword: "wrong_password",
	LoginAlreadyOnline: "already_online",
	LoginBanned:        "banned",
}

func (c LoginCode) String() string {
	if n, ok := loginCodeNames[c]; ok {
		return n
	}
	return fmt.Sprintf("login_code(%d)", uint8(c))
}

// Vec3 is a world position or direction.
type Vec3 struct {
	X, Y, Z float32
}

// Record is the typed payload of one message kind.
type Record interface {
	Kind() Kind
	encode(b *PacketBuilder)
	decode(r *Reader)
}

// EntityBroadcast is implemented by server broadcasts that move or
// show/hide a single entity.
type EntityBroadcast interface {
	Record
	Subject() uint64
}

func (m *Appear) Subject() uint64        { return m.EntityID }
func (m *Disappear) Subject() uint64     { return m.EntityID }
func (m *MoveBroadcast) Subject() uint64 { return m.EntityID }
func (m *StopBroadcast) Subject() uint64 { return m.EntityID }
func (m *JumpBroadcast) Subject() uint64 { return m.EntityID }
func (m *DashBroadcast) Subject() uint64 { return m.EntityID }

// empty is embedded by records without payload.
type empty struct{}

func (empty) encode(*PacketBuilder) {}
func (empty) decode(*Reader)        {}

// Parse decodes payload into a fresh record for kind. Trailing bytes beyond
// the layout of kind are ignored.
func Parse(kind Kind, payload []byte) (Record, error) {
	info, ok := catalog[kind]
	if !ok {
		return nil, &ProtocolError{Kind: kind, Err: ErrUnknownKind}
	}

	rec := info.newRecord()
	r := NewReader(payload)
	rec.decode(r)
	if err := r.Err(); err != nil {
		return nil, &ProtocolError{Kind: kind, Offset: r.Offset(), Err: err}
	}
	return rec, nil
}

// Marshal encodes the payload of rec without a frame header.
func Marshal(rec Record) []byte {
	b := NewPacketBuilder()
	rec.encode(b)
	return b.Bytes()
}

// Encode returns rec as a complete frame.
func Encode(rec Record) []byte {
	return Build(rec.Kind(), Marshal(rec))
}

type listEntry[T any] interface {
	*T
	encode(b *PacketBuilder)
	decode(r *Reader)
}

func readList[T any, P listEntry[T]](r *Reader) []T {
	n := r.Count()
	if n == 0 || r.Err() != nil {
		return nil
	}
	out := make([]T, n)
	for i := range out {
		P(&out[i]).decode(r)
	}
	if r.Err() != nil {
		return nil
	}
	return out
}

func writeList[T any, P listEntry[T]](b *PacketBuilder, items []T) {
	n := b.WriteCount(len(items))
	for i := 0; i < n; i++ {
		P(&items[i]).encode(b)
	}
}
