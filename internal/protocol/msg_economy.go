package protocol

type ShopItem struct {
	ItemID int32
	Price  int32
}

func (e *ShopItem) encode(b *PacketBuilder) {
	b.WriteInt32(e.ItemID).WriteInt32(e.Price)
}

func (e *ShopItem) decode(r *Reader) {
	e.ItemID = r.Int32()
	e.Price = r.Int32()
}

type AuctionEntry struct {
	AuctionID uint32
	ItemID    int32
	Count     int32
	Price     int64
}

func (e *AuctionEntry) encode(b *PacketBuilder) {
	b.WriteUint32(e.AuctionID).WriteInt32(e.ItemID).WriteInt32(e.Count).WriteInt64(e.Price)
}

func (e *AuctionEntry) decode(r *Reader) {
	e.AuctionID = r.Uint32()
	e.ItemID = r.Int32()
	e.Count = r.Int32()
	e.Price = r.Int64()
}

type MailHeader struct {
	MailID  uint32
	Sender  string
	Subject string
	Read    bool
}

func (e *MailHeader) encode(b *PacketBuilder) {
	b.WriteUint32(e.MailID).WriteString(e.Sender).WriteString(e.Subject).WriteBool(e.Read)
}

func (e *MailHeader) decode(r *Reader) {
	e.MailID = r.Uint32()
	e.Sender = r.String()
	e.Subject = r.String()
	e.Read = r.Bool()
}

// GoldUpdate is received as GOLD_UPDATE.
type GoldUpdate struct {
	Gold int64
}

func (*GoldUpdate) Kind() Kind { return KindGoldUpdate }

func (m *GoldUpdate) encode(b *PacketBuilder) {
	b.WriteInt64(m.Gold)
}

func (m *GoldUpdate) decode(r *Reader) {
	m.Gold = r.Int64()
}

// ShopOpen is sent as SHOP_OPEN.
type ShopOpen struct {
	Npc uint64
}

func (*ShopOpen) Kind() Kind { return KindShopOpen }

func (m *ShopOpen) encode(b *PacketBuilder) {
	b.WriteUint64(m.Npc)
}

func (m *ShopOpen) decode(r *Reader) {
	m.Npc = r.Uint64()
}

// ShopList is received as SHOP_LIST.
type ShopList struct {
	Npc   uint64
	Items []ShopItem
}

func (*ShopList) Kind() Kind { return KindShopList }

func (m *ShopList) encode(b *PacketBuilder) {
	b.WriteUint64(m.Npc)
	writeList(b, m.Items)
}

func (m *ShopList) decode(r *Reader) {
	m.Npc = r.Uint64()
	m.Items = readList[ShopItem](r)
}

// ShopBuy is sent as SHOP_BUY.
type ShopBuy struct {
	ItemID int32
	Count  int32
}

func (*ShopBuy) Kind() Kind { return KindShopBuy }

func (m *ShopBuy) encode(b *PacketBuilder) {
	b.WriteInt32(m.ItemID).WriteInt32(m.Count)
}

func (m *ShopBuy) decode(r *Reader) {
	m.ItemID = r.Int32()
	m.Count = r.Int32()
}

// ShopBuyResult reports a purchase. Gold is the balance after the purchase.
type ShopBuyResult struct {
	Result uint8
	ItemID int32
	Count  int32
	Gold   int64
}

func (*ShopBuyResult) Kind() Kind { return KindShopBuyResult }

func (m *ShopBuyResult) encode(b *PacketBuilder) {
	b.WriteUint8(m.Result)
	if m.Result != 0 {
		return
	}
	b.WriteInt32(m.ItemID).WriteInt32(m.Count).WriteInt64(m.Gold)
}

func (m *ShopBuyResult) decode(r *Reader) {
	m.Result = r.Uint8()
	if m.Result != 0 {
		return
	}
	m.ItemID = r.Int32()
	m.Count = r.Int32()
	m.Gold = r.Int64()
}

// ShopSell is sent as SHOP_SELL.
type ShopSell struct {
	Slot  int32
	Count int32
}

func (*ShopSell) Kind() Kind { return KindShopSell }

func (m *ShopSell) encode(b *PacketBuilder) {
	b.WriteInt32(m.Slot).WriteInt32(m.Count)
}

func (m *ShopSell) decode(r *Reader) {
	m.Slot = r.Int32()
	m.Count = r.Int32()
}

// ShopSellResult is received as SHOP_SELL_RESULT.
type ShopSellResult struct {
	Result uint8
	Gold   int64
}

func (*ShopSellResult) Kind() Kind { return KindShopSellResult }

func (m *ShopSellResult) encode(b *PacketBuilder) {
	b.WriteUint8(m.Result)
	if m.Result != 0 {
		return
	}
	b.WriteInt64(m.Gold)
}

func (m *ShopSellResult) decode(r *Reader) {
	m.Result = r.Uint8()
	if m.Result != 0 {
		return
	}
	m.Gold = r.Int64()
}

// TradeRequest is sent as TRADE_REQUEST.
type TradeRequest struct {
	Target uint64
}

func (*TradeRequest) Kind() Kind { return KindTradeRequest }

func (m *TradeRequest) encode(b *PacketBuilder) {
	b.WriteUint64(m.Target)
}

func (m *TradeRequest) decode(r *Reader) {
	m.Target = r.Uint64()
}

// TradeRequestRecv is received as TRADE_REQUEST_RECV.
type TradeRequestRecv struct {
	Requester uint64
	Name      string
}

func (*TradeRequestRecv) Kind() Kind { return KindTradeRequestRecv }

func (m *TradeRequestRecv) encode(b *PacketBuilder) {
	b.WriteUint64(m.Requester).WriteString(m.Name)
}

func (m *TradeRequestRecv) decode(r *Reader) {
	m.Requester = r.Uint64()
	m.Name = r.String()
}

// TradeRespond is sent as TRADE_RESPOND.
type TradeRespond struct {
	Requester uint64
	Accept    bool
}

func (*TradeRespond) Kind() Kind { return KindTradeRespond }

func (m *TradeRespond) encode(b *PacketBuilder) {
	b.WriteUint64(m.Requester).WriteBool(m.Accept)
}

func (m *TradeRespond) decode(r *Reader) {
	m.Requester = r.Uint64()
	m.Accept = r.Bool()
}

// TradeStart is received as TRADE_START.
type TradeStart struct {
	Partner uint64
}

func (*TradeStart) Kind() Kind { return KindTradeStart }

func (m *TradeStart) encode(b *PacketBuilder) {
	b.WriteUint64(m.Partner)
}

func (m *TradeStart) decode(r *Reader) {
	m.Partner = r.Uint64()
}

// TradeAddItem is sent as TRADE_ADD_ITEM.
type TradeAddItem struct {
	Slot  int32
	Count int32
}

func (*TradeAddItem) Kind() Kind { return KindTradeAddItem }

func (m *TradeAddItem) encode(b *PacketBuilder) {
	b.WriteInt32(m.Slot).WriteInt32(m.Count)
}

func (m *TradeAddItem) decode(r *Reader) {
	m.Slot = r.Int32()
	m.Count = r.Int32()
}

// TradeItemAdded is received as TRADE_ITEM_ADDED.
type TradeItemAdded struct {
	Owner  uint64
	ItemID int32
	Count  int32
}

func (*TradeItemAdded) Kind() Kind { return KindTradeItemAdded }

func (m *TradeItemAdded) encode(b *PacketBuilder) {
	b.WriteUint64(m.Owner).WriteInt32(m.ItemID).WriteInt32(m.Count)
}

func (m *TradeItemAdded) decode(r *Reader) {
	m.Owner = r.Uint64()
	m.ItemID = r.Int32()
	m.Count = r.Int32()
}

// TradeSetGold is sent as TRADE_SET_GOLD.
type TradeSetGold struct {
	Gold int64
}

func (*TradeSetGold) Kind() Kind { return KindTradeSetGold }

func (m *TradeSetGold) encode(b *PacketBuilder) {
	b.WriteInt64(m.Gold)
}

func (m *TradeSetGold) decode(r *Reader) {
	m.Gold = r.Int64()
}

// TradeGoldSet is received as TRADE_GOLD_SET.
type TradeGoldSet struct {
	Owner uint64
	Gold  int64
}

func (*TradeGoldSet) Kind() Kind { return KindTradeGoldSet }

func (m *TradeGoldSet) encode(b *PacketBuilder) {
	b.WriteUint64(m.Owner).WriteInt64(m.Gold)
}

func (m *TradeGoldSet) decode(r *Reader) {
	m.Owner = r.Uint64()
	m.Gold = r.Int64()
}

// TradeConfirm is sent as TRADE_CONFIRM.
type TradeConfirm struct{ empty }

func (*TradeConfirm) Kind() Kind { return KindTradeConfirm }

// TradeCancel is sent as TRADE_CANCEL.
type TradeCancel struct{ empty }

func (*TradeCancel) Kind() Kind { return KindTradeCancel }

// TradeResult is received as TRADE_RESULT.
type TradeResult struct {
	Result uint8
}

func (*TradeResult) Kind() Kind { return KindTradeResult }

func (m *TradeResult) encode(b *PacketBuilder) {
	b.WriteUint8(m.Result)
}

func (m *TradeResult) decode(r *Reader) {
	m.Result = r.Uint8()
}

// AuctionListReq is sent as AUCTION_LIST_REQ.
type AuctionListReq struct {
	Page uint8
}

func (*AuctionListReq) Kind() Kind { return KindAuctionListReq }

func (m *AuctionListReq) encode(b *PacketBuilder) {
	b.WriteUint8(m.Page)
}

func (m *AuctionListReq) decode(r *Reader) {
	m.Page = r.Uint8()
}

// AuctionList is received as AUCTION_LIST.
type AuctionList struct {
	Entries []AuctionEntry
}

func (*AuctionList) Kind() Kind { return KindAuctionList }

func (m *AuctionList) encode(b *PacketBuilder) {
	writeList(b, m.Entries)
}

func (m *AuctionList) decode(r *Reader) {
	m.Entries = readList[AuctionEntry](r)
}

// AuctionRegister is sent as AUCTION_REGISTER.
type AuctionRegister struct {
	Slot  int32
	Count int32
	Price int64
}

func (*AuctionRegister) Kind() Kind { return KindAuctionRegister }

func (m *AuctionRegister) encode(b *PacketBuilder) {
	b.WriteInt32(m.Slot).WriteInt32(m.Count).WriteInt64(m.Price)
}

func (m *AuctionRegister) decode(r *Reader) {
	m.Slot = r.Int32()
	m.Count = r.Int32()
	m.Price = r.Int64()
}

// AuctionRegisterResult is received as AUCTION_REGISTER_RESULT.
type AuctionRegisterResult struct {
	Result    uint8
	AuctionID uint32
}

func (*AuctionRegisterResult) Kind() Kind { return KindAuctionRegisterResult }

func (m *AuctionRegisterResult) encode(b *PacketBuilder) {
	b.WriteUint8(m.Result)
	if m.Result != 0 {
		return
	}
	b.WriteUint32(m.AuctionID)
}

func (m *AuctionRegisterResult) decode(r *Reader) {
	m.Result = r.Uint8()
	if m.Result != 0 {
		return
	}
	m.AuctionID = r.Uint32()
}

// AuctionBuy is sent as AUCTION_BUY.
type AuctionBuy struct {
	AuctionID uint32
}

func (*AuctionBuy) Kind() Kind { return KindAuctionBuy }

func (m *AuctionBuy) encode(b *PacketBuilder) {
	b.WriteUint32(m.AuctionID)
}

func (m *AuctionBuy) decode(r *Reader) {
	m.AuctionID = r.Uint32()
}

// AuctionBuyResult is received as AUCTION_BUY_RESULT.
type AuctionBuyResult struct {
	Result uint8
}

func (*AuctionBuyResult) Kind() Kind { return KindAuctionBuyResult }

func (m *AuctionBuyResult) encode(b *PacketBuilder) {
	b.WriteUint8(m.Result)
}

func (m *AuctionBuyResult) decode(r *Reader) {
	m.Result = r.Uint8()
}

// MailListReq is sent as MAIL_LIST_REQ.
type MailListReq struct{ empty }

func (*MailListReq) Kind() Kind { return KindMailListReq }

// MailList is received as MAIL_LIST.
type MailList struct {
	Mails []MailHeader
}

func (*MailList) Kind() Kind { return KindMailList }

func (m *MailList) encode(b *PacketBuilder) {
	writeList(b, m.Mails)
}

func (m *MailList) decode(r *Reader) {
	m.Mails = readList[MailHeader](r)
}

// MailSend is sent as MAIL_SEND.
type MailSend struct {
	To      string
	Subject string
	Body    string
	Gold    int64
}

func (*MailSend) Kind() Kind { return KindMailSend }

func (m *MailSend) encode(b *PacketBuilder) {
	b.WriteString(m.To).WriteString(m.Subject).WriteString(m.Body).WriteInt64(m.Gold)
}

func (m *MailSend) decode(r *Reader) {
	m.To = r.String()
	m.Subject = r.String()
	m.Body = r.String()
	m.Gold = r.Int64()
}

// MailSendResult is received as MAIL_SEND_RESULT.
type MailSendResult struct {
	Result uint8
}

func (*MailSendResult) Kind() Kind { return KindMailSendResult }

func (m *MailSendResult) encode(b *PacketBuilder) {
	b.WriteUint8(m.Result)
}

func (m *MailSendResult) decode(r *Reader) {
	m.Result = r.Uint8()
}

// MailRead is sent as MAIL_READ.
type MailRead struct {
	MailID uint32
}

func (*MailRead) Kind() Kind { return KindMailRead }

func (m *MailRead) encode(b *PacketBuilder) {
	b.WriteUint32(m.MailID)
}

func (m *MailRead) decode(r *Reader) {
	m.MailID = r.Uint32()
}

// MailContent is received as MAIL_CONTENT.
type MailContent struct {
	MailID uint32
	Body   string
	ItemID int32
	Count  int32
	Gold   int64
}

func (*MailContent) Kind() Kind { return KindMailContent }

func (m *MailContent) encode(b *PacketBuilder) {
	b.WriteUint32(m.MailID).
		WriteString(m.Body).
		WriteInt32(m.ItemID).
		WriteInt32(m.Count).
		WriteInt64(m.Gold)
}

func (m *MailContent) decode(r *Reader) {
	m.MailID = r.Uint32()
	m.Body = r.String()
	m.ItemID = r.Int32()
	m.Count = r.Int32()
	m.Gold = r.Int64()
}
