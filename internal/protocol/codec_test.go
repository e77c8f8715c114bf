package protocol

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildLoginFrame(t *testing.T) {
	frame := Encode(&Login{Username: "abc", Password: "p1"})

	assert.Equal(t, []byte{3, 'a', 'b', 'c', 2, 'p', '1'}, frame[HeaderSize:])
	assert.Equal(t, uint32(13), binary.LittleEndian.Uint32(frame[0:4]))
	assert.Equal(t, uint16(KindLogin), binary.LittleEndian.Uint16(frame[4:6]))
}

func TestParseGateRouteResp(t *testing.T) {
	payload := []byte{0, 0x1F, 0x90, 9, '1', '2', '7', '.', '0', '.', '0', '.', '1'}

	rec, err := Parse(KindGateRouteResp, payload)
	require.NoError(t, err)

	resp, ok := rec.(*GateRouteResp)
	require.True(t, ok)
	assert.Equal(t, RouteOK, resp.Result)
	assert.Equal(t, uint16(36895), resp.Port)
	assert.Equal(t, "127.0.0.1", resp.IP)
}

func TestParseFailureResultsOmitTail(t *testing.T) {
	t.Run("login result without account", func(t *testing.T) {
		rec, err := Parse(KindLoginResult, []byte{2})
		require.NoError(t, err)
		res := rec.(*LoginResult)
		assert.Equal(t, LoginWrongPassword, res.Result)
		assert.Equal(t, uint32(0), res.AccountID)
	})

	t.Run("gate route failure", func(t *testing.T) {
		rec, err := Parse(KindGateRouteResp, []byte{2})
		require.NoError(t, err)
		assert.Equal(t, &GateRouteResp{Result: RouteServerFull}, rec)
	})

	t.Run("enter game failure", func(t *testing.T) {
		rec, err := Parse(KindEnterGame, []byte{4})
		require.NoError(t, err)
		assert.Equal(t, &EnterGame{Result: 4}, rec)
	})

	t.Run("char create failure", func(t *testing.T) {
		rec, err := Parse(KindCharCreateResult, []byte{1})
		require.NoError(t, err)
		assert.Equal(t, &CharCreateResult{Result: 1}, rec)
	})
}

func TestParseEnterGame(t *testing.T) {
	payload := NewPacketBuilder().
		WriteUint8(0).
		WriteUint64(42).
		WriteInt32(3).
		WriteVec3(Vec3{X: 1, Y: 2.5, Z: -3}).
		Bytes()

	rec, err := Parse(KindEnterGame, payload)
	require.NoError(t, err)
	assert.Equal(t, &EnterGame{EntityID: 42, ZoneID: 3, Pos: Vec3{X: 1, Y: 2.5, Z: -3}}, rec)
}

func TestParseTruncated(t *testing.T) {
	tests := []struct {
		name    string
		kind    Kind
		payload []byte
		offset  int
	}{
		{"empty login result", KindLoginResult, nil, 0},
		{"enter game success without position", KindEnterGame, []byte{0, 42, 0, 0, 0, 0, 0, 0, 0}, 9},
		{"move short", KindMove, make([]byte, 11), 8},
		{"route ip past end", KindGateRouteResp, []byte{0, 1, 0, 9, '1', '2'}, 4},
		{"char list count exceeds entries", KindCharListResp, append([]byte{2}, make([]byte, 44)...), 45},
		{"attack result short", KindAttackResult, make([]byte, 20), 17},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := Parse(tt.kind, tt.payload)
			require.Error(t, err)
			assert.Nil(t, rec)
			assert.True(t, errors.Is(err, ErrTruncated))

			var perr *ProtocolError
			require.True(t, errors.As(err, &perr))
			assert.Equal(t, tt.kind, perr.Kind)
			assert.Equal(t, tt.offset, perr.Offset)
		})
	}
}

func TestParseInvalidEncoding(t *testing.T) {
	_, err := Parse(KindLogin, []byte{2, 0xff, 0xfe, 1, 'p'})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidEncoding)

	name := make([]byte, NameSize)
	name[0] = 0xc3
	payload := NewPacketBuilder().WriteUint8(1).WriteUint32(7).WriteBytes(name).WriteInt32(1).WriteInt32(1).Bytes()
	_, err = Parse(KindCharListResp, payload)
	assert.ErrorIs(t, err, ErrInvalidEncoding)
}

func TestFixedNameStopsAtTerminator(t *testing.T) {
	name := make([]byte, NameSize)
	copy(name, "Aria")
	// garbage after the terminator is never decoded
	name[10] = 0xff
	name[11] = 0xfe

	payload := NewPacketBuilder().
		WriteUint8(1).
		WriteUint32(7).
		WriteBytes(name).
		WriteInt32(12).
		WriteInt32(3).
		Bytes()

	rec, err := Parse(KindCharListResp, payload)
	require.NoError(t, err)
	assert.Equal(t, []CharSummary{{CharID: 7, Name: "Aria", Level: 12, Job: 3}}, rec.(*CharListResp).Characters)
}

func TestFixedNameFillsWindow(t *testing.T) {
	full := strings.Repeat("x", NameSize)
	rec, err := Parse(KindCharListResp, Marshal(&CharListResp{Characters: []CharSummary{{Name: full}}}))
	require.NoError(t, err)
	assert.Equal(t, full, rec.(*CharListResp).Characters[0].Name)
}

func TestParseUnknownKind(t *testing.T) {
	kind := Kind(4242)
	assert.False(t, kind.Known())
	assert.Equal(t, "UNKNOWN(4242)", kind.String())

	_, err := Parse(kind, []byte{1, 2, 3})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestParseIgnoresTrailingBytes(t *testing.T) {
	payload := append(Marshal(&Disappear{EntityID: 9}), 0xAA, 0xBB)
	rec, err := Parse(KindDisappear, payload)
	require.NoError(t, err)
	assert.Equal(t, &Disappear{EntityID: 9}, rec)
}

func TestWriteStringTruncatesOnRuneBoundary(t *testing.T) {
	long := strings.Repeat("é", 200)
	payload := NewPacketBuilder().WriteString(long).Bytes()

	assert.Equal(t, byte(254), payload[0])
	assert.Len(t, payload, 255)

	r := NewReader(payload)
	assert.Equal(t, strings.Repeat("é", 127), r.String())
	assert.NoError(t, r.Err())
}

func TestListCountCapped(t *testing.T) {
	slots := make([]InventorySlot, 300)
	rec, err := Parse(KindInventoryList, Marshal(&InventoryList{Slots: slots}))
	require.NoError(t, err)
	assert.Len(t, rec.(*InventoryList).Slots, 255)
}

func TestCatalog(t *testing.T) {
	kinds := Kinds()
	assert.Greater(t, len(kinds), 150)

	names := make(map[string]Kind)
	for _, k := range kinds {
		info := catalog[k]
		rec := info.newRecord()
		assert.Equal(t, k, rec.Kind(), "record for %s reports wrong kind", info.name)
		assert.NotEqual(t, GroupUnknown, k.Group(), info.name)
		assert.Contains(t, []Direction{ToServer, ToClient}, k.Direction(), info.name)

		if prev, dup := names[info.name]; dup {
			t.Errorf("name %s used by %d and %d", info.name, prev, k)
		}
		names[info.name] = k

		byName, ok := KindByName(info.name)
		assert.True(t, ok)
		assert.Equal(t, k, byName)
	}

	assert.Equal(t, GroupLogin, KindLogin.Group())
	assert.Equal(t, GroupAOI, KindAppear.Group())
	assert.Equal(t, GroupAdmin, KindAdminState.Group())
}

func TestRoundTripEveryKind(t *testing.T) {
	for _, k := range Kinds() {
		t.Run(k.String(), func(t *testing.T) {
			want := catalog[k].newRecord()
			seed := 0
			fill(reflect.ValueOf(want).Elem(), &seed)

			frame := Encode(want)
			assert.Equal(t, uint32(len(frame)), binary.LittleEndian.Uint32(frame[0:4]))

			decoded, err := DecodeFrame(frame)
			require.NoError(t, err)
			require.Equal(t, k, decoded.Kind)

			got, err := Parse(decoded.Kind, decoded.Payload)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

// fill populates every settable field with distinct non-zero values. Result
// fields stay zero so result-gated tails are encoded.
func fill(v reflect.Value, seed *int) {
	switch v.Kind() {
	case reflect.Struct:
		for i := 0; i < v.NumField(); i++ {
			f := v.Field(i)
			if !f.CanSet() || v.Type().Field(i).Name == "Result" {
				continue
			}
			fill(f, seed)
		}
	case reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		*seed++
		v.SetUint(uint64(*seed))
	case reflect.Int32, reflect.Int64:
		*seed++
		v.SetInt(int64(-*seed))
	case reflect.Float32:
		*seed++
		v.SetFloat(float64(*seed) + 0.5)
	case reflect.Bool:
		v.SetBool(true)
	case reflect.String:
		*seed++
		v.SetString(fmt.Sprintf("s%d", *seed))
	case reflect.Slice:
		s := reflect.MakeSlice(v.Type(), 2, 2)
		for i := 0; i < s.Len(); i++ {
			fill(s.Index(i), seed)
		}
		v.Set(s)
	}
}

func TestReadFrameStream(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteFrame(&buf, KindJump, nil))
	require.NoError(t, WriteFrame(&buf, KindMove, Marshal(&Move{Pos: Vec3{X: 1}})))

	f1, err := ReadFrame(&buf, MaxFrameSize)
	require.NoError(t, err)
	assert.Equal(t, KindJump, f1.Kind)
	assert.Empty(t, f1.Payload)

	f2, err := ReadFrame(&buf, MaxFrameSize)
	require.NoError(t, err)
	assert.Equal(t, KindMove, f2.Kind)
	assert.Len(t, f2.Payload, 12)
}

func TestReadFrameRejectsBadLengths(t *testing.T) {
	tooSmall := []byte{5, 0, 0, 0, 1, 0}
	_, err := ReadFrame(bytes.NewReader(tooSmall), MaxFrameSize)
	assert.ErrorIs(t, err, ErrInvalidFrame)

	tooLarge := Build(KindChat, make([]byte, MaxFrameSize))
	_, err = ReadFrame(bytes.NewReader(tooLarge), MaxFrameSize)
	assert.ErrorIs(t, err, ErrFrameTooLarge)

	_, err = DecodeFrame([]byte{1, 2, 3})
	assert.ErrorIs(t, err, ErrInvalidFrame)
}
