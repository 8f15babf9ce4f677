package sensor

import "github.com/backkem/vfs0097/pkg/transport"

// Startup command payloads, taken from captures of the Windows driver's
// startup exchange. Their internal structure is undocumented; they are
// replayed verbatim and only selected responses are interpreted.
var (
	initMsg1 = []byte{0x01}
	initMsg2 = []byte{0x19, 0x00, 0x00, 0x00, 0x00}
	initMsg3 = []byte{0x3e, 0x00, 0x00, 0x00, 0x00}
	initMsg4 = []byte{0x40, 0x08, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}
	initMsg5 = []byte{0x3e, 0x01, 0x00, 0x00, 0x00}
	initMsg6 = []byte{0x43, 0x02, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}
)

const (
	// readyReplyLen is the length of the status reply a provisioned
	// sensor sends to the first startup command.
	readyReplyLen = 38

	// readyFlag is the value of the reply's last byte on a provisioned
	// sensor. Unprovisioned sensors report 0x02 there.
	readyFlag = 0x07
)

// InitExchanges returns the request/response script of a successful
// startup against a provisioned sensor whose flash holds partition. It
// exists to drive Open against an in-process transport.Pipe, with
// transport.ServeScript playing the sensor.
func InitExchanges(partition []byte) []transport.Exchange {
	ready := make([]byte, readyReplyLen)
	ready[readyReplyLen-1] = readyFlag
	ack := []byte{0x00, 0x00}

	return []transport.Exchange{
		{Request: initMsg1, Response: ready},
		{Request: initMsg2, Response: ack},
		{Request: initMsg3, Response: ack},
		{Request: initMsg4, Response: ack},
		{Request: initMsg5, Response: ack},
		{Request: initMsg6, Response: partition},
	}
}
