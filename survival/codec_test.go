package survival_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/mickamy/craftd-proxy/survival"
)

// feed builds a Buffer pre-loaded with raw bytes, as if just read off
// the wire.
func feed(b ...byte) *survival.Buffer {
	buf := survival.NewBuffer()
	buf.Append(b)
	return buf
}

// roundTrip asserts that serializing pkt reproduces wantBytes exactly,
// and that probing+parsing wantBytes reproduces pkt.
func roundTrip(t *testing.T, pkt survival.Packet, wantBytes []byte) {
	t.Helper()

	out := survival.NewBuffer()
	if err := survival.Serialize(pkt, out); err != nil {
		t.Fatalf("serialize: %v", err)
	}
	got, _ := out.PeekAt(0, out.Len())
	if !bytes.Equal(got, wantBytes) {
		t.Fatalf("serialize: got % X, want % X", got, wantBytes)
	}

	in := feed(wantBytes...)
	n, err := survival.Probe(pkt.Direction, in)
	if err != nil {
		t.Fatalf("probe: %v", err)
	}
	if n != len(wantBytes) {
		t.Fatalf("probe: got %d, want %d", n, len(wantBytes))
	}
	parsed, err := survival.Parse(pkt.Direction, in)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if parsed.Opcode != pkt.Opcode || parsed.Direction != pkt.Direction {
		t.Fatalf("parse: got opcode %02X dir %s, want %02X dir %s",
			parsed.Opcode, parsed.Direction, pkt.Opcode, pkt.Direction)
	}
	if in.Len() != 0 {
		t.Fatalf("parse left %d unconsumed bytes, want 0", in.Len())
	}
	if parsed.Payload != pkt.Payload {
		t.Fatalf("parse: got payload %+v, want %+v", parsed.Payload, pkt.Payload)
	}
}

// S1
func TestKeepAliveRequestRoundTrip(t *testing.T) {
	t.Parallel()
	pkt := survival.Packet{
		Direction: survival.Request,
		Opcode:    survival.OpKeepAlive,
		Payload:   survival.KeepAlive{ID: 1},
	}
	roundTrip(t, pkt, []byte{0x00, 0x00, 0x00, 0x00, 0x01})
}

// S2
func TestHandshakeRequestParsesUsername(t *testing.T) {
	t.Parallel()
	in := feed(0x02, 0x00, 0x02, 0x00, 0x41, 0x00, 0x42)
	n, err := survival.Probe(survival.Request, in)
	if err != nil {
		t.Fatalf("probe: %v", err)
	}
	if n != 7 {
		t.Fatalf("got %d, want 7", n)
	}
	pkt, err := survival.Parse(survival.Request, in)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	hs := pkt.Payload.(survival.Handshake)
	if hs.Value != "AB" {
		t.Fatalf("got %q, want AB", hs.Value)
	}
}

// S3
func TestBlockPlacementEmptyHandRoundTrip(t *testing.T) {
	t.Parallel()
	wire := []byte{
		0x0F,
		0x00, 0x00, 0x00, 0x00,
		0x40,
		0x00, 0x00, 0x00, 0x00,
		0x00,
		0xFF, 0xFF,
	}
	pkt := survival.Packet{
		Direction: survival.Request,
		Opcode:    survival.OpBlockPlacement,
		Payload: survival.BlockPlacement{
			X: 0, Y: 0x40, Z: 0, Direction: 0,
			Item: survival.ItemStack{ID: -1},
		},
	}
	roundTrip(t, pkt, wire)
}

// S4
func TestBlockPlacementStoneInHand(t *testing.T) {
	t.Parallel()
	wire := []byte{
		0x0F,
		0x00, 0x00, 0x00, 0x00,
		0x40,
		0x00, 0x00, 0x00, 0x00,
		0x00,
		0x00, 0x01, 0x01, 0x00, 0x00,
	}
	in := feed(wire...)
	n, err := survival.Probe(survival.Request, in)
	if err != nil {
		t.Fatalf("probe: %v", err)
	}
	if n != 16 {
		t.Fatalf("got %d, want 16", n)
	}
	pkt, err := survival.Parse(survival.Request, in)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	bp := pkt.Payload.(survival.BlockPlacement)
	if bp.Item.Empty() {
		t.Fatal("expected a non-empty item stack")
	}
	if bp.Item.ID != 1 || bp.Item.Count != 1 || bp.Item.Uses != 0 {
		t.Fatalf("got %+v, want {ID:1 Count:1 Uses:0}", bp.Item)
	}
}

// S5 (prober/parser half; the proxy-level Disconnect-Ping emission is
// covered in the proxy package's tests)
func TestListPingRoundTrip(t *testing.T) {
	t.Parallel()
	in := feed(0xFE)
	n, err := survival.Probe(survival.Request, in)
	if err != nil {
		t.Fatalf("probe: %v", err)
	}
	if n != 1 {
		t.Fatalf("got %d, want 1", n)
	}
	pkt, err := survival.Parse(survival.Request, in)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if _, ok := pkt.Payload.(survival.ListPing); !ok {
		t.Fatalf("got payload type %T, want ListPing", pkt.Payload)
	}
}

// S6
func TestChatIncrementalDelivery(t *testing.T) {
	t.Parallel()
	in := feed(0x03, 0x00, 0x05, 0x00, 0x48)
	_, err := survival.Probe(survival.Request, in)
	if !errors.Is(err, survival.ErrNeedMore) {
		t.Fatalf("got %v, want ErrNeedMore", err)
	}

	in.Append([]byte{0x00, 0x45, 0x00, 0x4C, 0x00, 0x4C, 0x00, 0x4F})
	n, err := survival.Probe(survival.Request, in)
	if err != nil {
		t.Fatalf("probe after completion: %v", err)
	}
	if n != 13 {
		t.Fatalf("got %d, want 13", n)
	}
	pkt, err := survival.Parse(survival.Request, in)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	chat := pkt.Payload.(survival.Chat)
	if chat.Message != "HELLO" {
		t.Fatalf("got %q, want HELLO", chat.Message)
	}
}

// S7
func TestMalformedMetadataTypeTag(t *testing.T) {
	t.Parallel()
	// EntityMetadata, entity id 1, one entry with type tag 111b (7,
	// unassigned) and key 0, followed by the sentinel.
	in := feed(0x28, 0x00, 0x00, 0x00, 0x01, 0xE0, 0x7F)
	_, err := survival.Probe(survival.Response, in)
	if !errors.Is(err, survival.ErrMalformed) {
		t.Fatalf("got %v, want ErrMalformed", err)
	}
}

func TestDirectionDispatchIsIllegalBothWays(t *testing.T) {
	t.Parallel()
	// UseEntity is request-only.
	in := feed(0x07, 0, 0, 0, 1, 0, 0, 0, 2, 0)
	if _, err := survival.Probe(survival.Response, in); !errors.Is(err, survival.ErrUnsupportedOpcode) {
		t.Fatalf("got %v, want ErrUnsupportedOpcode", err)
	}
	// TimeUpdate is response-only.
	in2 := feed(0x04, 0, 0, 0, 0, 0, 0, 0, 0)
	if _, err := survival.Probe(survival.Request, in2); !errors.Is(err, survival.ErrUnsupportedOpcode) {
		t.Fatalf("got %v, want ErrUnsupportedOpcode", err)
	}
}

func TestItemStackSentinelWireSizes(t *testing.T) {
	t.Parallel()
	out := survival.NewBuffer()
	out.WriteItemStack(survival.ItemStack{ID: -1})
	if out.Len() != 2 {
		t.Fatalf("empty stack: got %d bytes, want 2", out.Len())
	}

	out2 := survival.NewBuffer()
	out2.WriteItemStack(survival.ItemStack{ID: 5, Count: 3, Uses: 0})
	if out2.Len() != 5 {
		t.Fatalf("non-empty stack: got %d bytes, want 5", out2.Len())
	}

	empty := out.Take(out.Len())
	decoded := feed(empty...)
	if got := decoded.ReadItemStack(); !got.Empty() {
		t.Fatalf("got %+v, want empty", got)
	}
}

func TestMetadataRequiresSentinel(t *testing.T) {
	t.Parallel()
	// EntityMetadata, entity id 1, no entries, missing sentinel.
	in := feed(0x28, 0x00, 0x00, 0x00, 0x01)
	if _, err := survival.Probe(survival.Response, in); !errors.Is(err, survival.ErrNeedMore) {
		t.Fatalf("got %v, want ErrNeedMore", err)
	}
	in.Append([]byte{0x7F})
	n, err := survival.Probe(survival.Response, in)
	if err != nil {
		t.Fatalf("probe after sentinel: %v", err)
	}
	if n != 6 {
		t.Fatalf("got %d, want 6", n)
	}
}

func TestProbeIsPure(t *testing.T) {
	t.Parallel()
	in := feed(0x00, 0x00, 0x00, 0x00, 0x01)
	n1, err1 := survival.Probe(survival.Request, in)
	n2, err2 := survival.Probe(survival.Request, in)
	if n1 != n2 || err1 != err2 {
		t.Fatalf("probe not repeatable: (%d,%v) vs (%d,%v)", n1, err1, n2, err2)
	}
	if in.Len() != 5 {
		t.Fatalf("probe must not consume, got len %d, want 5", in.Len())
	}
}

func TestSpawnObjectWithAndWithoutExtra(t *testing.T) {
	t.Parallel()

	noExtra := survival.Packet{
		Direction: survival.Response,
		Opcode:    survival.OpSpawnObject,
		Payload: survival.SpawnObject{
			EntityID: 1, Type: 2, X: 3, Y: 4, Z: 5, Flag: 0,
		},
	}
	out := survival.NewBuffer()
	if err := survival.Serialize(noExtra, out); err != nil {
		t.Fatalf("serialize: %v", err)
	}
	if out.Len() != 22 {
		t.Fatalf("flag=0: got %d bytes, want 22", out.Len())
	}

	withExtra := survival.Packet{
		Direction: survival.Response,
		Opcode:    survival.OpSpawnObject,
		Payload: survival.SpawnObject{
			EntityID: 1, Type: 2, X: 3, Y: 4, Z: 5, Flag: 1,
			Extra: &survival.SpawnObjectExtra{X: 10, Y: 20, Z: 30},
		},
	}
	out2 := survival.NewBuffer()
	if err := survival.Serialize(withExtra, out2); err != nil {
		t.Fatalf("serialize: %v", err)
	}
	if out2.Len() != 28 {
		t.Fatalf("flag=1: got %d bytes, want 28", out2.Len())
	}

	raw, _ := out2.PeekAt(0, out2.Len())
	in := feed(raw...)
	if _, err := survival.Probe(survival.Response, in); err != nil {
		t.Fatalf("probe: %v", err)
	}
	pkt, err := survival.Parse(survival.Response, in)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	so := pkt.Payload.(survival.SpawnObject)
	if so.Extra == nil || so.Extra.X != 10 || so.Extra.Y != 20 || so.Extra.Z != 30 {
		t.Fatalf("got %+v, want Extra{10,20,30}", so.Extra)
	}
}

func TestItemDataRoundTrip(t *testing.T) {
	t.Parallel()
	pkt := survival.Packet{
		Direction: survival.Response,
		Opcode:    survival.OpItemData,
		Payload: survival.ItemData{
			ItemType: 1, ItemID: 2, Text: "durability",
		},
	}
	out := survival.NewBuffer()
	if err := survival.Serialize(pkt, out); err != nil {
		t.Fatalf("serialize: %v", err)
	}
	raw, _ := out.PeekAt(0, out.Len())
	in := feed(raw...)
	n, err := survival.Probe(survival.Response, in)
	if err != nil {
		t.Fatalf("probe: %v", err)
	}
	if n != len(raw) {
		t.Fatalf("got %d, want %d", n, len(raw))
	}
	parsed, err := survival.Parse(survival.Response, in)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	id := parsed.Payload.(survival.ItemData)
	if id.Text != "durability" {
		t.Fatalf("got %q, want durability", id.Text)
	}
}

func TestPlayerMoveLookFieldOrderDiffersByDirection(t *testing.T) {
	t.Parallel()
	payload := survival.PlayerMoveLook{
		X: 1, Y: 2, Stance: 3, Z: 4, Yaw: 5, Pitch: 6, OnGround: true,
	}

	req := survival.Packet{Direction: survival.Request, Opcode: survival.OpPlayerMoveLook, Payload: payload}
	resp := survival.Packet{Direction: survival.Response, Opcode: survival.OpPlayerMoveLook, Payload: payload}

	reqOut := survival.NewBuffer()
	if err := survival.Serialize(req, reqOut); err != nil {
		t.Fatalf("serialize request: %v", err)
	}
	respOut := survival.NewBuffer()
	if err := survival.Serialize(resp, respOut); err != nil {
		t.Fatalf("serialize response: %v", err)
	}
	reqBytes, _ := reqOut.PeekAt(0, reqOut.Len())
	respBytes, _ := respOut.PeekAt(0, respOut.Len())
	if bytes.Equal(reqBytes, respBytes) {
		t.Fatal("expected request and response encodings to differ in field order")
	}

	reqIn := feed(reqBytes...)
	if _, err := survival.Probe(survival.Request, reqIn); err != nil {
		t.Fatalf("probe request: %v", err)
	}
	reqParsed, err := survival.Parse(survival.Request, reqIn)
	if err != nil {
		t.Fatalf("parse request: %v", err)
	}
	if reqParsed.Payload.(survival.PlayerMoveLook) != payload {
		t.Fatalf("got %+v, want %+v", reqParsed.Payload, payload)
	}

	respIn := feed(respBytes...)
	if _, err := survival.Probe(survival.Response, respIn); err != nil {
		t.Fatalf("probe response: %v", err)
	}
	respParsed, err := survival.Parse(survival.Response, respIn)
	if err != nil {
		t.Fatalf("parse response: %v", err)
	}
	if respParsed.Payload.(survival.PlayerMoveLook) != payload {
		t.Fatalf("got %+v, want %+v", respParsed.Payload, payload)
	}
}

func TestSanitizeIsIdempotentAndPreservesColorEscapes(t *testing.T) {
	t.Parallel()
	s := "hi\x01é §c red"
	once := survival.Sanitize(s)
	twice := survival.Sanitize(once)
	if once != twice {
		t.Fatalf("sanitize not idempotent: %q vs %q", once, twice)
	}
	for _, r := range once {
		if r != '§' && r != '?' && !(r >= 0x20 && r <= 0x7E) {
			t.Fatalf("unexpected character %q in sanitized output %q", r, once)
		}
	}
	if !bytes.Contains([]byte(once), []byte("§c")) {
		t.Fatalf("expected color escape §c preserved in %q", once)
	}
}
