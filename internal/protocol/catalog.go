package protocol

// Message kinds. Codes are a wire contract with the server and are never renumbered.
const (
	// System messages: gate routing, heartbeat and server notices
	KindGateRouteReq  Kind = 1
	KindGateRouteResp Kind = 2
	KindHeartbeat     Kind = 10
	KindHeartbeatAck  Kind = 11
	KindServerNotice  Kind = 20
	KindErrorResp     Kind = 21
	KindKick          Kind = 22
	KindServerTime    Kind = 23

	// Login and character selection messages
	KindLogin            Kind = 100
	KindLoginResult      Kind = 101
	KindLogout           Kind = 102
	KindLogoutResult     Kind = 103
	KindCharListReq      Kind = 110
	KindCharListResp     Kind = 111
	KindCharCreate       Kind = 112
	KindCharCreateResult Kind = 113
	KindCharDelete       Kind = 114
	KindCharDeleteResult Kind = 115
	KindCharSelect       Kind = 116
	KindEnterGame        Kind = 117

	// Zone, channel, movement and area-of-interest messages
	KindZoneInfo            Kind = 200
	KindChannelInfo         Kind = 201
	KindChannelListReq      Kind = 202
	KindChannelListResp     Kind = 203
	KindChannelChange       Kind = 204
	KindChannelChangeResult Kind = 205
	KindZoneChange          Kind = 206
	KindZoneChangeResult    Kind = 207
	KindMove                Kind = 300
	KindMoveBroadcast       Kind = 301
	KindStop                Kind = 302
	KindStopBroadcast       Kind = 303
	KindTeleport            Kind = 304
	KindPositionCorrection  Kind = 305
	KindJump                Kind = 306
	KindJumpBroadcast       Kind = 307
	KindDash                Kind = 308
	KindDashBroadcast       Kind = 309
	KindAppear              Kind = 400
	KindDisappear           Kind = 401
	KindPlayerInfo          Kind = 402
	KindMonsterSpawn        Kind = 403
	KindNpcSpawn            Kind = 404
	KindEntityState         Kind = 405
	KindDropAppear          Kind = 406
	KindDropDisappear       Kind = 407

	// Combat, skill and progression messages
	KindAttack        Kind = 500
	KindAttackResult  Kind = 501
	KindSkillUse      Kind = 502
	KindSkillResult   Kind = 503
	KindBuffApply     Kind = 504
	KindBuffRemove    Kind = 505
	KindEntityDie     Kind = 506
	KindRespawn       Kind = 507
	KindRespawnResult Kind = 508
	KindExpGain       Kind = 509
	KindLevelUp       Kind = 510
	KindStatUpdate    Kind = 511
	KindCooldown      Kind = 512
	KindTargetSelect  Kind = 513
	KindSkillList     Kind = 514

	// Inventory and equipment messages
	KindInventoryReq      Kind = 600
	KindInventoryList     Kind = 601
	KindItemUse           Kind = 602
	KindItemUseResult     Kind = 603
	KindItemEquip         Kind = 604
	KindItemEquipResult   Kind = 605
	KindItemUnequip       Kind = 606
	KindItemUnequipResult Kind = 607
	KindItemDrop          Kind = 608
	KindItemDropResult    Kind = 609
	KindItemPickup        Kind = 610
	KindItemPickupResult  Kind = 611
	KindItemMove          Kind = 612
	KindItemMoveResult    Kind = 613
	KindInventoryUpdate   Kind = 614
	KindEquipmentUpdate   Kind = 615

	// Chat, party, friend and guild messages
	KindChat              Kind = 700
	KindChatBroadcast     Kind = 701
	KindWhisper           Kind = 702
	KindWhisperRecv       Kind = 703
	KindWhisperResult     Kind = 704
	KindPartyInvite       Kind = 710
	KindPartyInviteRecv   Kind = 711
	KindPartyRespond      Kind = 712
	KindPartyInfo         Kind = 713
	KindPartyLeave        Kind = 714
	KindPartyLeft         Kind = 715
	KindPartyKick         Kind = 716
	KindFriendAdd         Kind = 720
	KindFriendAddResult   Kind = 721
	KindFriendListReq     Kind = 722
	KindFriendList        Kind = 723
	KindFriendRemove      Kind = 724
	KindFriendStatus      Kind = 725
	KindGuildCreate       Kind = 730
	KindGuildCreateResult Kind = 731
	KindGuildInfo         Kind = 732
	KindGuildInvite       Kind = 733
	KindGuildInviteRecv   Kind = 734
	KindGuildLeave        Kind = 735
	KindEmote             Kind = 740
	KindEmoteBroadcast    Kind = 741

	// Gold, shop, trade, auction and mail messages
	KindGoldUpdate            Kind = 800
	KindShopOpen              Kind = 801
	KindShopList              Kind = 802
	KindShopBuy               Kind = 803
	KindShopBuyResult         Kind = 804
	KindShopSell              Kind = 805
	KindShopSellResult        Kind = 806
	KindTradeRequest          Kind = 810
	KindTradeRequestRecv      Kind = 811
	KindTradeRespond          Kind = 812
	KindTradeStart            Kind = 813
	KindTradeAddItem          Kind = 814
	KindTradeItemAdded        Kind = 815
	KindTradeSetGold          Kind = 816
	KindTradeGoldSet          Kind = 817
	KindTradeConfirm          Kind = 818
	KindTradeCancel           Kind = 819
	KindTradeResult           Kind = 820
	KindAuctionListReq        Kind = 830
	KindAuctionList           Kind = 831
	KindAuctionRegister       Kind = 832
	KindAuctionRegisterResult Kind = 833
	KindAuctionBuy            Kind = 834
	KindAuctionBuyResult      Kind = 835
	KindMailListReq           Kind = 840
	KindMailList              Kind = 841
	KindMailSend              Kind = 842
	KindMailSendResult        Kind = 843
	KindMailRead              Kind = 844
	KindMailContent           Kind = 845

	// Quest, dungeon, duel, arena and PK messages
	KindQuestList           Kind = 900
	KindQuestAccept         Kind = 901
	KindQuestAcceptResult   Kind = 902
	KindQuestProgress       Kind = 903
	KindQuestComplete       Kind = 904
	KindQuestCompleteResult Kind = 905
	KindQuestAbandon        Kind = 906
	KindDungeonEnter        Kind = 910
	KindDungeonEnterResult  Kind = 911
	KindDungeonLeave        Kind = 912
	KindDungeonClear        Kind = 913
	KindBossHP              Kind = 914
	KindDuelRequest         Kind = 920
	KindDuelRequestRecv     Kind = 921
	KindDuelRespond         Kind = 922
	KindDuelStart           Kind = 923
	KindDuelEnd             Kind = 924
	KindArenaQueue          Kind = 930
	KindArenaQueueResult    Kind = 931
	KindArenaCancel         Kind = 932
	KindArenaMatchFound     Kind = 933
	KindArenaScore          Kind = 934
	KindArenaEnd            Kind = 935
	KindPkStatus            Kind = 940
	KindPkModeSet           Kind = 941

	// GM and operator messages
	KindAdminCommand        Kind = 1000
	KindAdminCommandResult  Kind = 1001
	KindAdminAnnounce       Kind = 1002
	KindAdminShutdownNotice Kind = 1003
	KindAdminTeleport       Kind = 1004
	KindAdminSpawn          Kind = 1005
	KindAdminGodMode        Kind = 1006
	KindAdminState          Kind = 1007
)

var catalog = map[Kind]kindInfo{
	KindGateRouteReq:  {"GATE_ROUTE_REQ", ToServer, func() Record { return new(GateRouteReq) }},
	KindGateRouteResp: {"GATE_ROUTE_RESP", ToClient, func() Record { return new(GateRouteResp) }},
	KindHeartbeat:     {"HEARTBEAT", ToServer, func() Record { return new(Heartbeat) }},
	KindHeartbeatAck:  {"HEARTBEAT_ACK", ToClient, func() Record { return new(HeartbeatAck) }},
	KindServerNotice:  {"SERVER_NOTICE", ToClient, func() Record { return new(ServerNotice) }},
	KindErrorResp:     {"ERROR_RESP", ToClient, func() Record { return new(ErrorResp) }},
	KindKick:          {"KICK", ToClient, func() Record { return new(Kick) }},
	KindServerTime:    {"SERVER_TIME", ToClient, func() Record { return new(ServerTime) }},

	KindLogin:            {"LOGIN", ToServer, func() Record { return new(Login) }},
	KindLoginResult:      {"LOGIN_RESULT", ToClient, func() Record { return new(LoginResult) }},
	KindLogout:           {"LOGOUT", ToServer, func() Record { return new(Logout) }},
	KindLogoutResult:     {"LOGOUT_RESULT", ToClient, func() Record { return new(LogoutResult) }},
	KindCharListReq:      {"CHAR_LIST_REQ", ToServer, func() Record { return new(CharListReq) }},
	KindCharListResp:     {"CHAR_LIST_RESP", ToClient, func() Record { return new(CharListResp) }},
	KindCharCreate:       {"CHAR_CREATE", ToServer, func() Record { return new(CharCreate) }},
	KindCharCreateResult: {"CHAR_CREATE_RESULT", ToClient, func() Record { return new(CharCreateResult) }},
	KindCharDelete:       {"CHAR_DELETE", ToServer, func() Record { return new(CharDelete) }},
	KindCharDeleteResult: {"CHAR_DELETE_RESULT", ToClient, func() Record { return new(CharDeleteResult) }},
	KindCharSelect:       {"CHAR_SELECT", ToServer, func() Record { return new(CharSelect) }},
	KindEnterGame:        {"ENTER_GAME", ToClient, func() Record { return new(EnterGame) }},

	KindZoneInfo:            {"ZONE_INFO", ToClient, func() Record { return new(ZoneInfo) }},
	KindChannelInfo:         {"CHANNEL_INFO", ToClient, func() Record { return new(ChannelInfo) }},
	KindChannelListReq:      {"CHANNEL_LIST_REQ", ToServer, func() Record { return new(ChannelListReq) }},
	KindChannelListResp:     {"CHANNEL_LIST_RESP", ToClient, func() Record { return new(ChannelListResp) }},
	KindChannelChange:       {"CHANNEL_CHANGE", ToServer, func() Record { return new(ChannelChange) }},
	KindChannelChangeResult: {"CHANNEL_CHANGE_RESULT", ToClient, func() Record { return new(ChannelChangeResult) }},
	KindZoneChange:          {"ZONE_CHANGE", ToServer, func() Record { return new(ZoneChange) }},
	KindZoneChangeResult:    {"ZONE_CHANGE_RESULT", ToClient, func() Record { return new(ZoneChangeResult) }},
	KindMove:                {"MOVE", ToServer, func() Record { return new(Move) }},
	KindMoveBroadcast:       {"MOVE_BROADCAST", ToClient, func() Record { return new(MoveBroadcast) }},
	KindStop:                {"STOP", ToServer, func() Record { return new(Stop) }},
	KindStopBroadcast:       {"STOP_BROADCAST", ToClient, func() Record { return new(StopBroadcast) }},
	KindTeleport:            {"TELEPORT", ToClient, func() Record { return new(Teleport) }},
	KindPositionCorrection:  {"POSITION_CORRECTION", ToClient, func() Record { return new(PositionCorrection) }},
	KindJump:                {"JUMP", ToServer, func() Record { return new(Jump) }},
	KindJumpBroadcast:       {"JUMP_BROADCAST", ToClient, func() Record { return new(JumpBroadcast) }},
	KindDash:                {"DASH", ToServer, func() Record { return new(Dash) }},
	KindDashBroadcast:       {"DASH_BROADCAST", ToClient, func() Record { return new(DashBroadcast) }},
	KindAppear:              {"APPEAR", ToClient, func() Record { return new(Appear) }},
	KindDisappear:           {"DISAPPEAR", ToClient, func() Record { return new(Disappear) }},
	KindPlayerInfo:          {"PLAYER_INFO", ToClient, func() Record { return new(PlayerInfo) }},
	KindMonsterSpawn:        {"MONSTER_SPAWN", ToClient, func() Record { return new(MonsterSpawn) }},
	KindNpcSpawn:            {"NPC_SPAWN", ToClient, func() Record { return new(NpcSpawn) }},
	KindEntityState:         {"ENTITY_STATE", ToClient, func() Record { return new(EntityState) }},
	KindDropAppear:          {"DROP_APPEAR", ToClient, func() Record { return new(DropAppear) }},
	KindDropDisappear:       {"DROP_DISAPPEAR", ToClient, func() Record { return new(DropDisappear) }},

	KindAttack:        {"ATTACK", ToServer, func() Record { return new(Attack) }},
	KindAttackResult:  {"ATTACK_RESULT", ToClient, func() Record { return new(AttackResult) }},
	KindSkillUse:      {"SKILL_USE", ToServer, func() Record { return new(SkillUse) }},
	KindSkillResult:   {"SKILL_RESULT", ToClient, func() Record { return new(SkillResult) }},
	KindBuffApply:     {"BUFF_APPLY", ToClient, func() Record { return new(BuffApply) }},
	KindBuffRemove:    {"BUFF_REMOVE", ToClient, func() Record { return new(BuffRemove) }},
	KindEntityDie:     {"ENTITY_DIE", ToClient, func() Record { return new(EntityDie) }},
	KindRespawn:       {"RESPAWN", ToServer, func() Record { return new(Respawn) }},
	KindRespawnResult: {"RESPAWN_RESULT", ToClient, func() Record { return new(RespawnResult) }},
	KindExpGain:       {"EXP_GAIN", ToClient, func() Record { return new(ExpGain) }},
	KindLevelUp:       {"LEVEL_UP", ToClient, func() Record { return new(LevelUp) }},
	KindStatUpdate:    {"STAT_UPDATE", ToClient, func() Record { return new(StatUpdate) }},
	KindCooldown:      {"COOLDOWN", ToClient, func() Record { return new(Cooldown) }},
	KindTargetSelect:  {"TARGET_SELECT", ToServer, func() Record { return new(TargetSelect) }},
	KindSkillList:     {"SKILL_LIST", ToClient, func() Record { return new(SkillList) }},

	KindInventoryReq:      {"INVENTORY_REQ", ToServer, func() Record { return new(InventoryReq) }},
	KindInventoryList:     {"INVENTORY_LIST", ToClient, func() Record { return new(InventoryList) }},
	KindItemUse:           {"ITEM_USE", ToServer, func() Record { return new(ItemUse) }},
	KindItemUseResult:     {"ITEM_USE_RESULT", ToClient, func() Record { return new(ItemUseResult) }},
	KindItemEquip:         {"ITEM_EQUIP", ToServer, func() Record { return new(ItemEquip) }},
	KindItemEquipResult:   {"ITEM_EQUIP_RESULT", ToClient, func() Record { return new(ItemEquipResult) }},
	KindItemUnequip:       {"ITEM_UNEQUIP", ToServer, func() Record { return new(ItemUnequip) }},
	KindItemUnequipResult: {"ITEM_UNEQUIP_RESULT", ToClient, func() Record { return new(ItemUnequipResult) }},
	KindItemDrop:          {"ITEM_DROP", ToServer, func() Record { return new(ItemDrop) }},
	KindItemDropResult:    {"ITEM_DROP_RESULT", ToClient, func() Record { return new(ItemDropResult) }},
	KindItemPickup:        {"ITEM_PICKUP", ToServer, func() Record { return new(ItemPickup) }},
	KindItemPickupResult:  {"ITEM_PICKUP_RESULT", ToClient, func() Record { return new(ItemPickupResult) }},
	KindItemMove:          {"ITEM_MOVE", ToServer, func() Record { return new(ItemMove) }},
	KindItemMoveResult:    {"ITEM_MOVE_RESULT", ToClient, func() Record { return new(ItemMoveResult) }},
	KindInventoryUpdate:   {"INVENTORY_UPDATE", ToClient, func() Record { return new(InventoryUpdate) }},
	KindEquipmentUpdate:   {"EQUIPMENT_UPDATE", ToClient, func() Record { return new(EquipmentUpdate) }},

	KindChat:              {"CHAT", ToServer, func() Record { return new(Chat) }},
	KindChatBroadcast:     {"CHAT_BROADCAST", ToClient, func() Record { return new(ChatBroadcast) }},
	KindWhisper:           {"WHISPER", ToServer, func() Record { return new(Whisper) }},
	KindWhisperRecv:       {"WHISPER_RECV", ToClient, func() Record { return new(WhisperRecv) }},
	KindWhisperResult:     {"WHISPER_RESULT", ToClient, func() Record { return new(WhisperResult) }},
	KindPartyInvite:       {"PARTY_INVITE", ToServer, func() Record { return new(PartyInvite) }},
	KindPartyInviteRecv:   {"PARTY_INVITE_RECV", ToClient, func() Record { return new(PartyInviteRecv) }},
	KindPartyRespond:      {"PARTY_RESPOND", ToServer, func() Record { return new(PartyRespond) }},
	KindPartyInfo:         {"PARTY_INFO", ToClient, func() Record { return new(PartyInfo) }},
	KindPartyLeave:        {"PARTY_LEAVE", ToServer, func() Record { return new(PartyLeave) }},
	KindPartyLeft:         {"PARTY_LEFT", ToClient, func() Record { return new(PartyLeft) }},
	KindPartyKick:         {"PARTY_KICK", ToServer, func() Record { return new(PartyKick) }},
	KindFriendAdd:         {"FRIEND_ADD", ToServer, func() Record { return new(FriendAdd) }},
	KindFriendAddResult:   {"FRIEND_ADD_RESULT", ToClient, func() Record { return new(FriendAddResult) }},
	KindFriendListReq:     {"FRIEND_LIST_REQ", ToServer, func() Record { return new(FriendListReq) }},
	KindFriendList:        {"FRIEND_LIST", ToClient, func() Record { return new(FriendList) }},
	KindFriendRemove:      {"FRIEND_REMOVE", ToServer, func() Record { return new(FriendRemove) }},
	KindFriendStatus:      {"FRIEND_STATUS", ToClient, func() Record { return new(FriendStatus) }},
	KindGuildCreate:       {"GUILD_CREATE", ToServer, func() Record { return new(GuildCreate) }},
	KindGuildCreateResult: {"GUILD_CREATE_RESULT", ToClient, func() Record { return new(GuildCreateResult) }},
	KindGuildInfo:         {"GUILD_INFO", ToClient, func() Record { return new(GuildInfo) }},
	KindGuildInvite:       {"GUILD_INVITE", ToServer, func() Record { return new(GuildInvite) }},
	KindGuildInviteRecv:   {"GUILD_INVITE_RECV", ToClient, func() Record { return new(GuildInviteRecv) }},
	KindGuildLeave:        {"GUILD_LEAVE", ToServer, func() Record { return new(GuildLeave) }},
	KindEmote:             {"EMOTE", ToServer, func() Record { return new(Emote) }},
	KindEmoteBroadcast:    {"EMOTE_BROADCAST", ToClient, func() Record { return new(EmoteBroadcast) }},

	KindGoldUpdate:            {"GOLD_UPDATE", ToClient, func() Record { return new(GoldUpdate) }},
	KindShopOpen:              {"SHOP_OPEN", ToServer, func() Record { return new(ShopOpen) }},
	KindShopList:              {"SHOP_LIST", ToClient, func() Record { return new(ShopList) }},
	KindShopBuy:               {"SHOP_BUY", ToServer, func() Record { return new(ShopBuy) }},
	KindShopBuyResult:         {"SHOP_BUY_RESULT", ToClient, func() Record { return new(ShopBuyResult) }},
	KindShopSell:              {"SHOP_SELL", ToServer, func() Record { return new(ShopSell) }},
	KindShopSellResult:        {"SHOP_SELL_RESULT", ToClient, func() Record { return new(ShopSellResult) }},
	KindTradeRequest:          {"TRADE_REQUEST", ToServer, func() Record { return new(TradeRequest) }},
	KindTradeRequestRecv:      {"TRADE_REQUEST_RECV", ToClient, func() Record { return new(TradeRequestRecv) }},
	KindTradeRespond:          {"TRADE_RESPOND", ToServer, func() Record { return new(TradeRespond) }},
	KindTradeStart:            {"TRADE_START", ToClient, func() Record { return new(TradeStart) }},
	KindTradeAddItem:          {"TRADE_ADD_ITEM", ToServer, func() Record { return new(TradeAddItem) }},
	KindTradeItemAdded:        {"TRADE_ITEM_ADDED", ToClient, func() Record { return new(TradeItemAdded) }},
	KindTradeSetGold:          {"TRADE_SET_GOLD", ToServer, func() Record { return new(TradeSetGold) }},
	KindTradeGoldSet:          {"TRADE_GOLD_SET", ToClient, func() Record { return new(TradeGoldSet) }},
	KindTradeConfirm:          {"TRADE_CONFIRM", ToServer, func() Record { return new(TradeConfirm) }},
	KindTradeCancel:           {"TRADE_CANCEL", ToServer, func() Record { return new(TradeCancel) }},
	KindTradeResult:           {"TRADE_RESULT", ToClient, func() Record { return new(TradeResult) }},
	KindAuctionListReq:        {"AUCTION_LIST_REQ", ToServer, func() Record { return new(AuctionListReq) }},
	KindAuctionList:           {"AUCTION_LIST", ToClient, func() Record { return new(AuctionList) }},
	KindAuctionRegister:       {"AUCTION_REGISTER", ToServer, func() Record { return new(AuctionRegister) }},
	KindAuctionRegisterResult: {"AUCTION_REGISTER_RESULT", ToClient, func() Record { return new(AuctionRegisterResult) }},
	KindAuctionBuy:            {"AUCTION_BUY", ToServer, func() Record { return new(AuctionBuy) }},
	KindAuctionBuyResult:      {"AUCTION_BUY_RESULT", ToClient, func() Record { return new(AuctionBuyResult) }},
	KindMailListReq:           {"MAIL_LIST_REQ", ToServer, func() Record { return new(MailListReq) }},
	KindMailList:              {"MAIL_LIST", ToClient, func() Record { return new(MailList) }},
	KindMailSend:              {"MAIL_SEND", ToServer, func() Record { return new(MailSend) }},
	KindMailSendResult:        {"MAIL_SEND_RESULT", ToClient, func() Record { return new(MailSendResult) }},
	KindMailRead:              {"MAIL_READ", ToServer, func() Record { return new(MailRead) }},
	KindMailContent:           {"MAIL_CONTENT", ToClient, func() Record { return new(MailContent) }},

	KindQuestList:           {"QUEST_LIST", ToClient, func() Record { return new(QuestList) }},
	KindQuestAccept:         {"QUEST_ACCEPT", ToServer, func() Record { return new(QuestAccept) }},
	KindQuestAcceptResult:   {"QUEST_ACCEPT_RESULT", ToClient, func() Record { return new(QuestAcceptResult) }},
	KindQuestProgress:       {"QUEST_PROGRESS", ToClient, func() Record { return new(QuestProgress) }},
	KindQuestComplete:       {"QUEST_COMPLETE", ToServer, func() Record { return new(QuestComplete) }},
	KindQuestCompleteResult: {"QUEST_COMPLETE_RESULT", ToClient, func() Record { return new(QuestCompleteResult) }},
	KindQuestAbandon:        {"QUEST_ABANDON", ToServer, func() Record { return new(QuestAbandon) }},
	KindDungeonEnter:        {"DUNGEON_ENTER", ToServer, func() Record { return new(DungeonEnter) }},
	KindDungeonEnterResult:  {"DUNGEON_ENTER_RESULT", ToClient, func() Record { return new(DungeonEnterResult) }},
	KindDungeonLeave:        {"DUNGEON_LEAVE", ToServer, func() Record { return new(DungeonLeave) }},
	KindDungeonClear:        {"DUNGEON_CLEAR", ToClient, func() Record { return new(DungeonClear) }},
	KindBossHP:              {"BOSS_HP", ToClient, func() Record { return new(BossHP) }},
	KindDuelRequest:         {"DUEL_REQUEST", ToServer, func() Record { return new(DuelRequest) }},
	KindDuelRequestRecv:     {"DUEL_REQUEST_RECV", ToClient, func() Record { return new(DuelRequestRecv) }},
	KindDuelRespond:         {"DUEL_RESPOND", ToServer, func() Record { return new(DuelRespond) }},
	KindDuelStart:           {"DUEL_START", ToClient, func() Record { return new(DuelStart) }},
	KindDuelEnd:             {"DUEL_END", ToClient, func() Record { return new(DuelEnd) }},
	KindArenaQueue:          {"ARENA_QUEUE", ToServer, func() Record { return new(ArenaQueue) }},
	KindArenaQueueResult:    {"ARENA_QUEUE_RESULT", ToClient, func() Record { return new(ArenaQueueResult) }},
	KindArenaCancel:         {"ARENA_CANCEL", ToServer, func() Record { return new(ArenaCancel) }},
	KindArenaMatchFound:     {"ARENA_MATCH_FOUND", ToClient, func() Record { return new(ArenaMatchFound) }},
	KindArenaScore:          {"ARENA_SCORE", ToClient, func() Record { return new(ArenaScore) }},
	KindArenaEnd:            {"ARENA_END", ToClient, func() Record { return new(ArenaEnd) }},
	KindPkStatus:            {"PK_STATUS", ToClient, func() Record { return new(PkStatus) }},
	KindPkModeSet:           {"PK_MODE_SET", ToServer, func() Record { return new(PkModeSet) }},

	KindAdminCommand:        {"ADMIN_COMMAND", ToServer, func() Record { return new(AdminCommand) }},
	KindAdminCommandResult:  {"ADMIN_COMMAND_RESULT", ToClient, func() Record { return new(AdminCommandResult) }},
	KindAdminAnnounce:       {"ADMIN_ANNOUNCE", ToClient, func() Record { return new(AdminAnnounce) }},
	KindAdminShutdownNotice: {"ADMIN_SHUTDOWN_NOTICE", ToClient, func() Record { return new(AdminShutdownNotice) }},
	KindAdminTeleport:       {"ADMIN_TELEPORT", ToServer, func() Record { return new(AdminTeleport) }},
	KindAdminSpawn:          {"ADMIN_SPAWN", ToServer, func() Record { return new(AdminSpawn) }},
	KindAdminGodMode:        {"ADMIN_GOD_MODE", ToServer, func() Record { return new(AdminGodMode) }},
	KindAdminState:          {"ADMIN_STATE", ToClient, func() Record { return new(AdminState) }},
}
