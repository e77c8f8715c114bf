package protocol

type InventorySlot struct {
	Slot   int32
	ItemID int32
	Count  int32
}

func (e *InventorySlot) encode(b *PacketBuilder) {
	b.WriteInt32(e.Slot).WriteInt32(e.ItemID).WriteInt32(e.Count)
}

func (e *InventorySlot) decode(r *Reader) {
	e.Slot = r.Int32()
	e.ItemID = r.Int32()
	e.Count = r.Int32()
}

// InventoryReq is sent as INVENTORY_REQ.
type InventoryReq struct{ empty }

func (*InventoryReq) Kind() Kind { return KindInventoryReq }

// InventoryList is a full inventory snapshot. Empty slots are omitted.
type InventoryList struct {
	Slots []InventorySlot
}

func (*InventoryList) Kind() Kind { return KindInventoryList }

func (m *InventoryList) encode(b *PacketBuilder) {
	writeList(b, m.Slots)
}

func (m *InventoryList) decode(r *Reader) {
	m.Slots = readList[InventorySlot](r)
}

// ItemUse is sent as ITEM_USE.
type ItemUse struct {
	Slot int32
}

func (*ItemUse) Kind() Kind { return KindItemUse }

func (m *ItemUse) encode(b *PacketBuilder) {
	b.WriteInt32(m.Slot)
}

func (m *ItemUse) decode(r *Reader) {
	m.Slot = r.Int32()
}

// ItemUseResult is received as ITEM_USE_RESULT.
type ItemUseResult struct {
	Result    uint8
	Slot      int32
	Remaining int32
}

func (*ItemUseResult) Kind() Kind { return KindItemUseResult }

func (m *ItemUseResult) encode(b *PacketBuilder) {
	b.WriteUint8(m.Result).WriteInt32(m.Slot).WriteInt32(m.Remaining)
}

func (m *ItemUseResult) decode(r *Reader) {
	m.Result = r.Uint8()
	m.Slot = r.Int32()
	m.Remaining = r.Int32()
}

// ItemEquip is sent as ITEM_EQUIP.
type ItemEquip struct {
	Slot int32
}

func (*ItemEquip) Kind() Kind { return KindItemEquip }

func (m *ItemEquip) encode(b *PacketBuilder) {
	b.WriteInt32(m.Slot)
}

func (m *ItemEquip) decode(r *Reader) {
	m.Slot = r.Int32()
}

// ItemEquipResult is received as ITEM_EQUIP_RESULT.
type ItemEquipResult struct {
	Result    uint8
	Slot      int32
	EquipSlot uint8
}

func (*ItemEquipResult) Kind() Kind { return KindItemEquipResult }

func (m *ItemEquipResult) encode(b *PacketBuilder) {
	b.WriteUint8(m.Result).WriteInt32(m.Slot).WriteUint8(m.EquipSlot)
}

func (m *ItemEquipResult) decode(r *Reader) {
	m.Result = r.Uint8()
	m.Slot = r.Int32()
	m.EquipSlot = r.Uint8()
}

// ItemUnequip is sent as ITEM_UNEQUIP.
type ItemUnequip struct {
	EquipSlot uint8
}

func (*ItemUnequip) Kind() Kind { return KindItemUnequip }

func (m *ItemUnequip) encode(b *PacketBuilder) {
	b.WriteUint8(m.EquipSlot)
}

func (m *ItemUnequip) decode(r *Reader) {
	m.EquipSlot = r.Uint8()
}

// ItemUnequipResult is received as ITEM_UNEQUIP_RESULT.
type ItemUnequipResult struct {
	Result    uint8
	EquipSlot uint8
}

func (*ItemUnequipResult) Kind() Kind { return KindItemUnequipResult }

func (m *ItemUnequipResult) encode(b *PacketBuilder) {
	b.WriteUint8(m.Result).WriteUint8(m.EquipSlot)
}

func (m *ItemUnequipResult) decode(r *Reader) {
	m.Result = r.Uint8()
	m.EquipSlot = r.Uint8()
}

// ItemDrop is sent as ITEM_DROP.
type ItemDrop struct {
	Slot  int32
	Count int32
}

func (*ItemDrop) Kind() Kind { return KindItemDrop }

func (m *ItemDrop) encode(b *PacketBuilder) {
	b.WriteInt32(m.Slot).WriteInt32(m.Count)
}

func (m *ItemDrop) decode(r *Reader) {
	m.Slot = r.Int32()
	m.Count = r.Int32()
}

// ItemDropResult is received as ITEM_DROP_RESULT.
type ItemDropResult struct {
	Result uint8
}

func (*ItemDropResult) Kind() Kind { return KindItemDropResult }

func (m *ItemDropResult) encode(b *PacketBuilder) {
	b.WriteUint8(m.Result)
}

func (m *ItemDropResult) decode(r *Reader) {
	m.Result = r.Uint8()
}

// ItemPickup is sent as ITEM_PICKUP.
type ItemPickup struct {
	DropID uint64
}

func (*ItemPickup) Kind() Kind { return KindItemPickup }

func (m *ItemPickup) encode(b *PacketBuilder) {
	b.WriteUint64(m.DropID)
}

func (m *ItemPickup) decode(r *Reader) {
	m.DropID = r.Uint64()
}

// ItemPickupResult is received as ITEM_PICKUP_RESULT.
type ItemPickupResult struct {
	Result uint8
	ItemID int32
	Count  int32
}

func (*ItemPickupResult) Kind() Kind { return KindItemPickupResult }

func (m *ItemPickupResult) encode(b *PacketBuilder) {
	b.WriteUint8(m.Result)
	if m.Result != 0 {
		return
	}
	b.WriteInt32(m.ItemID).WriteInt32(m.Count)
}

func (m *ItemPickupResult) decode(r *Reader) {
	m.Result = r.Uint8()
	if m.Result != 0 {
		return
	}
	m.ItemID = r.Int32()
	m.Count = r.Int32()
}

// ItemMove is sent as ITEM_MOVE.
type ItemMove struct {
	From int32
	To   int32
}

func (*ItemMove) Kind() Kind { return KindItemMove }

func (m *ItemMove) encode(b *PacketBuilder) {
	b.WriteInt32(m.From).WriteInt32(m.To)
}

func (m *ItemMove) decode(r *Reader) {
	m.From = r.Int32()
	m.To = r.Int32()
}

// ItemMoveResult is received as ITEM_MOVE_RESULT.
type ItemMoveResult struct {
	Result uint8
}

func (*ItemMoveResult) Kind() Kind { return KindItemMoveResult }

func (m *ItemMoveResult) encode(b *PacketBuilder) {
	b.WriteUint8(m.Result)
}

func (m *ItemMoveResult) decode(r *Reader) {
	m.Result = r.Uint8()
}

// InventoryUpdate replaces a single slot. A zero Count empties it.
type InventoryUpdate struct {
	Slot   int32
	ItemID int32
	Count  int32
}

func (*InventoryUpdate) Kind() Kind { return KindInventoryUpdate }

func (m *InventoryUpdate) encode(b *PacketBuilder) {
	b.WriteInt32(m.Slot).WriteInt32(m.ItemID).WriteInt32(m.Count)
}

func (m *InventoryUpdate) decode(r *Reader) {
	m.Slot = r.Int32()
	m.ItemID = r.Int32()
	m.Count = r.Int32()
}

// EquipmentUpdate is received as EQUIPMENT_UPDATE.
type EquipmentUpdate struct {
	EntityID  uint64
	EquipSlot uint8
	ItemID    int32
}

func (*EquipmentUpdate) Kind() Kind { return KindEquipmentUpdate }

func (m *EquipmentUpdate) encode(b *PacketBuilder) {
	b.WriteUint64(m.EntityID).WriteUint8(m.EquipSlot).WriteInt32(m.ItemID)
}

func (m *EquipmentUpdate) decode(r *Reader) {
	m.EntityID = r.Uint64()
	m.EquipSlot = r.Uint8()
	m.ItemID = r.Int32()
}
