package capture

import (
	"bytes"
	"net"
	"net/netip"
	"strings"
	"testing"
	"time"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcapgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	charpackets "github.com/udisondev/ronet/internal/charserver/serverpackets"
	"github.com/udisondev/ronet/internal/constants"
	"github.com/udisondev/ronet/internal/model"
	"github.com/udisondev/ronet/internal/testutil"
	"github.com/udisondev/ronet/internal/zoneserver/clientpackets"
	zonepackets "github.com/udisondev/ronet/internal/zoneserver/serverpackets"
)

const (
	clientAddr = "10.0.0.2:50000"
	zoneAddr   = "10.0.0.1:5121"
	charAddr   = "10.0.0.1:6121"
	loginAddr  = "10.0.0.1:6900"
)

type tcpSegment struct {
	src, dst string
	seq      uint32
	syn      bool
	fin      bool
	payload  []byte
}

// writePcap сериализует сегменты в pcap (Ethernet/IPv4/TCP).
func writePcap(t *testing.T, segs ...tcpSegment) *bytes.Buffer {
	t.Helper()

	var buf bytes.Buffer
	w := pcapgo.NewWriter(&buf)
	require.NoError(t, w.WriteFileHeader(65536, layers.LinkTypeEthernet))

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	for i, s := range segs {
		src := netip.MustParseAddrPort(s.src)
		dst := netip.MustParseAddrPort(s.dst)

		eth := &layers.Ethernet{
			SrcMAC:       net.HardwareAddr{0x02, 0, 0, 0, 0, 0x01},
			DstMAC:       net.HardwareAddr{0x02, 0, 0, 0, 0, 0x02},
			EthernetType: layers.EthernetTypeIPv4,
		}
		ip := &layers.IPv4{
			Version:  4,
			TTL:      64,
			Protocol: layers.IPProtocolTCP,
			SrcIP:    src.Addr().AsSlice(),
			DstIP:    dst.Addr().AsSlice(),
		}
		tcp := &layers.TCP{
			SrcPort: layers.TCPPort(src.Port()),
			DstPort: layers.TCPPort(dst.Port()),
			Seq:     s.seq,
			SYN:     s.syn,
			FIN:     s.fin,
			ACK:     !s.syn,
			Window:  65535,
		}
		require.NoError(t, tcp.SetNetworkLayerForChecksum(ip))

		sb := gopacket.NewSerializeBuffer()
		opts := gopacket.SerializeOptions{FixLengths: true, ComputeChecksums: true}
		require.NoError(t, gopacket.SerializeLayers(sb, opts, eth, ip, tcp, gopacket.Payload(s.payload)))

		data := sb.Bytes()
		ci := gopacket.CaptureInfo{
			Timestamp:     base.Add(time.Duration(i) * time.Millisecond),
			CaptureLength: len(data),
			Length:        len(data),
		}
		require.NoError(t, w.WritePacket(ci, data))
	}
	return &buf
}

func analyze(t *testing.T, segs ...tcpSegment) ([]Packet, *Analyzer) {
	t.Helper()
	var got []Packet
	a := New(DefaultPorts, func(p Packet) { got = append(got, p) })
	require.NoError(t, a.ReadPcap(writePcap(t, segs...)))
	return got, a
}

func names(packets []Packet) []string {
	out := make([]string, 0, len(packets))
	for _, p := range packets {
		out = append(out, p.Name)
	}
	return out
}

func aidPacket(aid uint32) []byte {
	return testutil.Frame(constants.ZCAID, testutil.U32(aid))
}

func acceptEnterPacket() []byte {
	spawn := model.NewPosition(152, 100, 0).Encode()
	return testutil.Frame(constants.ZCAcceptEnter,
		testutil.U32(123456),
		spawn[:],
		[]byte{5, 5},
		testutil.U16(0))
}

func TestClassify(t *testing.T) {
	tests := []struct {
		src, dst uint16
		proto    Protocol
		dir      Direction
	}{
		{50000, 6900, ProtocolLogin, ToServer},
		{6900, 50000, ProtocolLogin, ToClient},
		{50000, 6121, ProtocolChar, ToServer},
		{5121, 50000, ProtocolZone, ToClient},
		{50000, 80, ProtocolUnknown, ToServer},
	}
	for _, tt := range tests {
		proto, dir := DefaultPorts.Classify(tt.src, tt.dst)
		assert.Equal(t, tt.proto, proto, "%d->%d", tt.src, tt.dst)
		assert.Equal(t, tt.dir, dir, "%d->%d", tt.src, tt.dst)
	}
	assert.Equal(t, ProtocolUnknown, Ports{}.protocol(0))
}

func TestZoneStreamSplitAcrossSegments(t *testing.T) {
	enter := clientpackets.Enter2{AccountID: 2000001, CharID: 150001, AuthCode: 7, ClientTime: 1, Sex: model.SexMale}.Write()
	server := append(aidPacket(2000001), acceptEnterPacket()...)

	got, a := analyze(t,
		tcpSegment{src: clientAddr, dst: zoneAddr, seq: 100, syn: true},
		tcpSegment{src: zoneAddr, dst: clientAddr, seq: 900, syn: true},
		tcpSegment{src: clientAddr, dst: zoneAddr, seq: 101, payload: enter},
		tcpSegment{src: zoneAddr, dst: clientAddr, seq: 901, payload: server[:11]},
		tcpSegment{src: zoneAddr, dst: clientAddr, seq: 912, payload: server[11:]},
	)

	require.Equal(t, []string{"CZ_ENTER2", "ZC_AID", "ZC_ACCEPT_ENTER2"}, names(got))

	assert.Equal(t, ToServer, got[0].Direction)
	assert.Nil(t, got[0].Decoded)
	assert.Equal(t, enter, got[0].Data)

	aid, ok := got[1].Decoded.(*zonepackets.AID)
	require.True(t, ok)
	assert.Equal(t, uint32(2000001), aid.AccountID)
	assert.Equal(t, ProtocolZone, got[1].Protocol)
	assert.Equal(t, ToClient, got[1].Direction)
	assert.Equal(t, netip.MustParseAddrPort(zoneAddr), got[1].Src)

	accept, ok := got[2].Decoded.(*zonepackets.AcceptEnter)
	require.True(t, ok)
	assert.Equal(t, uint32(123456), accept.StartTime)
	assert.Equal(t, uint16(152), accept.Spawn.X)
	assert.Equal(t, uint16(100), accept.Spawn.Y)

	sum := a.Summary()
	assert.Equal(t, 5, sum.Segments)
	assert.Equal(t, 3, sum.Packets)
	assert.Zero(t, sum.BrokenStreams)
}

func TestCharStreamSkipsAccountEcho(t *testing.T) {
	payload := append(testutil.U32(2000001),
		testutil.NotifyZoneServerPacket(150001, "prontera", [4]byte{127, 0, 0, 1}, 5121)...)

	got, _ := analyze(t,
		tcpSegment{src: charAddr, dst: clientAddr, seq: 5000, syn: true},
		tcpSegment{src: charAddr, dst: clientAddr, seq: 5001, payload: payload[:2]},
		tcpSegment{src: charAddr, dst: clientAddr, seq: 5003, payload: payload[2:]},
	)

	require.Equal(t, []string{AccountIDEchoName, "HC_NOTIFY_ZONESVR"}, names(got))
	assert.Equal(t, uint32(2000001), got[0].Decoded)

	zone, ok := got[1].Decoded.(*charpackets.NotifyZoneServer)
	require.True(t, ok)
	assert.Equal(t, uint32(150001), zone.CharID)
	assert.Equal(t, uint16(5121), zone.Port)
}

func TestCharStreamWithoutSynHasNoEcho(t *testing.T) {
	// Захват начался посреди соединения: эха account id уже не будет.
	got, _ := analyze(t,
		tcpSegment{src: charAddr, dst: clientAddr, seq: 5001,
			payload: testutil.NotifyZoneServerPacket(150001, "prontera", [4]byte{127, 0, 0, 1}, 5121)},
	)

	require.Equal(t, []string{"HC_NOTIFY_ZONESVR"}, names(got))
}

func TestRetransmissionIsNotDuplicated(t *testing.T) {
	a1 := aidPacket(1)
	a2 := aidPacket(2)
	both := append(append([]byte{}, a1...), a2...)

	got, _ := analyze(t,
		tcpSegment{src: zoneAddr, dst: clientAddr, seq: 1000, payload: a1},
		tcpSegment{src: zoneAddr, dst: clientAddr, seq: 1000, payload: a1},
		// Повтор с перекрытием: новые только последние 6 байт.
		tcpSegment{src: zoneAddr, dst: clientAddr, seq: 1000, payload: both},
	)

	require.Len(t, got, 2)
	assert.Equal(t, uint32(1), got[0].Decoded.(*zonepackets.AID).AccountID)
	assert.Equal(t, uint32(2), got[1].Decoded.(*zonepackets.AID).AccountID)
}

func TestGapDropsBufferedBytes(t *testing.T) {
	partial := aidPacket(1)[:3]

	got, a := analyze(t,
		tcpSegment{src: zoneAddr, dst: clientAddr, seq: 1000, payload: partial},
		tcpSegment{src: zoneAddr, dst: clientAddr, seq: 2000, payload: aidPacket(2)},
	)

	require.Len(t, got, 1)
	assert.Equal(t, uint32(2), got[0].Decoded.(*zonepackets.AID).AccountID)
	assert.Equal(t, 1, a.Summary().Gaps)
}

func TestUnknownZonePacketBreaksStream(t *testing.T) {
	junk := []byte{0xFF, 0xFF, 0x01, 0x02}

	got, a := analyze(t,
		tcpSegment{src: zoneAddr, dst: clientAddr, seq: 1000, payload: append(aidPacket(1), junk...)},
		tcpSegment{src: zoneAddr, dst: clientAddr, seq: 1010, payload: aidPacket(2)},
	)

	// Пакет до неизвестного id успевает выйти, дальше поток не разбирается.
	require.Equal(t, []string{"ZC_AID"}, names(got))
	assert.Equal(t, 1, a.Summary().BrokenStreams)
}

func TestFinForgetsStream(t *testing.T) {
	got, _ := analyze(t,
		tcpSegment{src: zoneAddr, dst: clientAddr, seq: 1000, payload: append(aidPacket(1), aidPacket(9)[:3]...)},
		tcpSegment{src: zoneAddr, dst: clientAddr, seq: 1009, fin: true},
		// Новое соединение с тем же адресом начинается с чистого состояния.
		tcpSegment{src: zoneAddr, dst: clientAddr, seq: 7000, syn: true},
		tcpSegment{src: zoneAddr, dst: clientAddr, seq: 7001, payload: aidPacket(2)},
	)

	require.Equal(t, []string{"ZC_AID", "ZC_AID"}, names(got))
}

func TestUnrelatedTrafficIgnored(t *testing.T) {
	got, a := analyze(t,
		tcpSegment{src: clientAddr, dst: "10.0.0.9:80", seq: 1, payload: []byte("GET / HTTP/1.1\r\n")},
	)

	assert.Empty(t, got)
	assert.Equal(t, 1, a.Summary().Ignored)
	assert.Zero(t, a.Summary().Segments)
}

func TestDecodeErrorIsReported(t *testing.T) {
	// ZC_NOTIFY_CHAT короче заголовка с gid.
	bad := testutil.VarFrame(constants.ZCNotifyChat, []byte{1, 2})

	got, a := analyze(t,
		tcpSegment{src: zoneAddr, dst: clientAddr, seq: 1, payload: bad},
	)

	require.Len(t, got, 1)
	assert.Error(t, got[0].DecodeErr)
	assert.Nil(t, got[0].Decoded)

	stats := a.Stats()
	require.Len(t, stats, 1)
	assert.Equal(t, 1, stats[0].DecodeErrors)
}

func TestStatsOrderedAndCounted(t *testing.T) {
	refuse := testutil.Frame(constants.ACRefuseLogin, []byte{1}, testutil.Str("", 20))

	_, a := analyze(t,
		tcpSegment{src: zoneAddr, dst: clientAddr, seq: 1, payload: append(aidPacket(1), aidPacket(2)...)},
		tcpSegment{src: loginAddr, dst: clientAddr, seq: 1, payload: refuse},
	)

	stats := a.Stats()
	require.Len(t, stats, 2)

	assert.Equal(t, ProtocolLogin, stats[0].Protocol)
	assert.Equal(t, "AC_REFUSE_LOGIN", stats[0].Name)
	assert.Equal(t, 1, stats[0].Count)
	assert.Equal(t, constants.ACRefuseLoginSize, stats[0].Bytes)

	assert.Equal(t, ProtocolZone, stats[1].Protocol)
	assert.Equal(t, 2, stats[1].Count)
	assert.Equal(t, 2*constants.ZCAIDSize, stats[1].Bytes)
}

func TestReadPcapRejectsGarbage(t *testing.T) {
	a := New(DefaultPorts, nil)
	err := a.ReadPcap(strings.NewReader("definitely not a pcap file"))
	assert.Error(t, err)
}

func TestReadFileMissing(t *testing.T) {
	a := New(DefaultPorts, nil)
	assert.Error(t, a.ReadFile(t.TempDir()+"/absent.pcap"))
}

func TestPrinter(t *testing.T) {
	got, _ := analyze(t,
		tcpSegment{src: zoneAddr, dst: clientAddr, seq: 1, payload: aidPacket(2000001)},
		tcpSegment{src: clientAddr, dst: zoneAddr, seq: 1, payload: clientpackets.ActorInit{}.Write()},
	)
	require.Len(t, got, 2)

	var out bytes.Buffer
	pr := NewPrinter(&out, true)
	for _, p := range got {
		pr.Print(p)
	}

	text := out.String()
	assert.Contains(t, text, "zone  S->C")
	assert.Contains(t, text, "0x0283 ZC_AID")
	assert.Contains(t, text, "AccountID: (uint32) 2000001")
	assert.Contains(t, text, "CZ_NOTIFY_ACTORINIT")
	// Запросы без декодера печатаются hex-дампом.
	assert.Contains(t, text, "00000000  7d 00")

	out.Reset()
	NewPrinter(&out, false).Print(got[0])
	assert.Equal(t, 1, strings.Count(out.String(), "\n"))
}
