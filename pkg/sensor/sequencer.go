package sensor

import (
	"context"
	"fmt"

	"github.com/pion/logging"

	"github.com/backkem/vfs0097/pkg/channel"
	"github.com/backkem/vfs0097/pkg/flash"
	"github.com/backkem/vfs0097/pkg/keystore"
)

// State identifies a step of the startup sequence.
type State int

const (
	StateIdle State = iota
	StateSendInit1
	StateCheckInitialized
	StateSendInit2
	StateGetPartitionHeader
	StateSendInit4
	StateGetFlashInfo
	StateReadFlashTLSData
	StateInitKeys
	StateHandshake
	StateDone
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateSendInit1:
		return "SendInit1"
	case StateCheckInitialized:
		return "CheckInitialized"
	case StateSendInit2:
		return "SendInit2"
	case StateGetPartitionHeader:
		return "GetPartitionHeader"
	case StateSendInit4:
		return "SendInit4"
	case StateGetFlashInfo:
		return "GetFlashInfo"
	case StateReadFlashTLSData:
		return "ReadFlashTLSData"
	case StateInitKeys:
		return "InitKeys"
	case StateHandshake:
		return "Handshake"
	case StateDone:
		return "Done"
	case StateFailed:
		return "Failed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Sequencer drives the fixed startup sequence that brings a sensor from
// power-on to recovered key material. Each exchange-bearing state sends
// one command and stores the reply for the state that interprets it.
type Sequencer struct {
	channel *channel.Channel
	parser  *flash.Parser
	store   *keystore.Store
	log     logging.LeveledLogger

	state State
	reply []byte
}

// NewSequencer creates a Sequencer dispatching recovered blocks into
// store. A nil loggerFactory selects the default factory.
func NewSequencer(ch *channel.Channel, store *keystore.Store, loggerFactory logging.LoggerFactory) *Sequencer {
	if loggerFactory == nil {
		loggerFactory = logging.NewDefaultLoggerFactory()
	}
	return &Sequencer{
		channel: ch,
		parser:  flash.NewParser(loggerFactory),
		store:   store,
		log:     loggerFactory.NewLogger("sensor"),
	}
}

// State returns the current sequence state.
func (s *Sequencer) State() State {
	return s.state
}

// Run executes the startup sequence to completion. Any transport failure
// is fatal and leaves the sequencer in StateFailed; the caller must not
// reuse it afterwards.
func (s *Sequencer) Run(ctx context.Context) error {
	if s.state != StateIdle {
		return fmt.Errorf("sensor: startup already ran, state %v", s.state)
	}

	s.state = StateSendInit1
	for {
		var err error
		switch s.state {
		case StateSendInit1:
			err = s.exchange(ctx, initMsg1, StateCheckInitialized)

		case StateCheckInitialized:
			err = s.checkInitialized()

		case StateSendInit2:
			err = s.exchange(ctx, initMsg2, StateGetPartitionHeader)

		case StateGetPartitionHeader:
			err = s.exchange(ctx, initMsg3, StateSendInit4)

		case StateSendInit4:
			err = s.exchange(ctx, initMsg4, StateGetFlashInfo)

		case StateGetFlashInfo:
			err = s.exchange(ctx, initMsg5, StateReadFlashTLSData)

		case StateReadFlashTLSData:
			err = s.exchange(ctx, initMsg6, StateInitKeys)

		case StateInitKeys:
			err = s.initKeys()

		case StateHandshake:
			err = s.handshake(ctx)

		case StateDone:
			return nil
		}

		if err != nil {
			s.log.Errorf("startup failed in %v: %v", s.state, err)
			s.state = StateFailed
			return err
		}
	}
}

func (s *Sequencer) exchange(ctx context.Context, request []byte, next State) error {
	reply, err := s.channel.Exchange(ctx, request)
	if err != nil {
		return err
	}
	s.reply = reply
	s.state = next
	return nil
}

// checkInitialized interprets the reply to the first startup command. A
// reply of unexpected length is only logged and startup proceeds; until
// captures from other firmware revisions show what such replies mean,
// treating them as fatal would be guesswork.
func (s *Sequencer) checkInitialized() error {
	if len(s.reply) != readyReplyLen {
		s.log.Warnf("unrecognized init reply, %d bytes", len(s.reply))
	} else if flag := s.reply[readyReplyLen-1]; flag != readyFlag {
		s.log.Errorf("sensor is not initialized, init byte is %#02x "+
			"(should be %#02x on initialized devices, 0x02 otherwise)", flag, readyFlag)
		return ErrNotProvisioned
	}
	s.state = StateSendInit2
	return nil
}

func (s *Sequencer) initKeys() error {
	if err := s.parser.Parse(s.reply, s.store); err != nil {
		return err
	}
	s.state = StateHandshake
	return nil
}

func (s *Sequencer) handshake(ctx context.Context) error {
	h := NewHandshake(s.channel, s.store, s.log)
	if err := h.Run(ctx); err != nil {
		return err
	}
	s.state = StateDone
	return nil
}
