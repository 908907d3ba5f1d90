package wire

import (
	"fmt"

	"github.com/google/uuid"
)

// OutputLevel tags an ActionOutputLine's severity.
type OutputLevel byte

const (
	LevelInfo OutputLevel = iota
	LevelWarn
	LevelError
	LevelSuccess
)

// NodeMessageKind tags the controller-to-agent message union.
type NodeMessageKind byte

const (
	NodeMessageAction NodeMessageKind = iota
	NodeMessageShutdown
)

// NodeMessage is one frame sent from the controller down to the node
// agent: either one action to run, or the shutdown signal.
type NodeMessage struct {
	Kind   NodeMessageKind
	Action *ActionData // set when Kind == NodeMessageAction
}

// ActionData is the wire form of one compiled action: an opaque,
// agent-interpreted payload keyed by Kind.
type ActionData struct {
	ID      uuid.UUID
	Name    string
	Kind    string
	Payload []byte
}

// EncodeNodeMessage serializes msg into a frame payload.
func EncodeNodeMessage(msg NodeMessage) []byte {
	e := NewEncoder()
	e.Byte(byte(msg.Kind))
	switch msg.Kind {
	case NodeMessageAction:
		encodeActionData(e, msg.Action)
	case NodeMessageShutdown:
	}
	return e.Bytes()
}

func encodeActionData(e *Encoder, a *ActionData) {
	e.RawBytes(a.ID[:])
	e.String(a.Name)
	e.String(a.Kind)
	e.RawBytes(a.Payload)
}

func decodeActionData(d *Decoder) (*ActionData, error) {
	idBytes, err := d.RawBytes()
	if err != nil {
		return nil, err
	}
	id, err := uuid.FromBytes(idBytes)
	if err != nil {
		return nil, err
	}
	name, err := d.String()
	if err != nil {
		return nil, err
	}
	kind, err := d.String()
	if err != nil {
		return nil, err
	}
	payload, err := d.RawBytes()
	if err != nil {
		return nil, err
	}
	return &ActionData{ID: id, Name: name, Kind: kind, Payload: payload}, nil
}

// DecodeNodeMessage parses a frame payload produced by
// EncodeNodeMessage.
func DecodeNodeMessage(payload []byte) (NodeMessage, error) {
	d := NewDecoder(payload)
	kindByte, err := d.Byte()
	if err != nil {
		return NodeMessage{}, err
	}
	kind := NodeMessageKind(kindByte)
	switch kind {
	case NodeMessageAction:
		action, err := decodeActionData(d)
		if err != nil {
			return NodeMessage{}, err
		}
		return NodeMessage{Kind: kind, Action: action}, nil
	case NodeMessageShutdown:
		return NodeMessage{Kind: kind}, nil
	default:
		return NodeMessage{}, fmt.Errorf("wire: unknown NodeMessage kind %d", kindByte)
	}
}

// ActionMessageKind tags the agent-to-controller message union.
type ActionMessageKind byte

const (
	ActionMessageStarted ActionMessageKind = iota
	ActionMessageOutputLine
	ActionMessageResult
	ActionMessageNodeShutdown
	ActionMessageNodeStartFailed
)

// ActionMessage is one frame sent from the node agent up to the
// controller.
type ActionMessage struct {
	Kind ActionMessageKind

	ActionID uuid.UUID // Started, OutputLine, Result

	Content string      // OutputLine
	Level   OutputLevel // OutputLine

	Success bool // Result, NodeShutdown

	Reason string // NodeStartFailed
}

// Started builds an ActionStarted message.
func Started(id uuid.UUID) ActionMessage {
	return ActionMessage{Kind: ActionMessageStarted, ActionID: id}
}

// OutputLine builds an ActionOutputLine message.
func OutputLine(id uuid.UUID, content string, level OutputLevel) ActionMessage {
	return ActionMessage{Kind: ActionMessageOutputLine, ActionID: id, Content: content, Level: level}
}

// Result builds an ActionResult message.
func Result(id uuid.UUID, success bool) ActionMessage {
	return ActionMessage{Kind: ActionMessageResult, ActionID: id, Success: success}
}

// NodeShutdownMsg builds a NodeShutdown message.
func NodeShutdownMsg(success bool) ActionMessage {
	return ActionMessage{Kind: ActionMessageNodeShutdown, Success: success}
}

// NodeStartFailed builds a NodeStartFailed message.
func NodeStartFailed(reason string) ActionMessage {
	return ActionMessage{Kind: ActionMessageNodeStartFailed, Reason: reason}
}

// EncodeActionMessage serializes msg into a frame payload.
func EncodeActionMessage(msg ActionMessage) []byte {
	e := NewEncoder()
	e.Byte(byte(msg.Kind))
	switch msg.Kind {
	case ActionMessageStarted:
		e.RawBytes(msg.ActionID[:])
	case ActionMessageOutputLine:
		e.RawBytes(msg.ActionID[:])
		e.String(msg.Content)
		e.Byte(byte(msg.Level))
	case ActionMessageResult:
		e.RawBytes(msg.ActionID[:])
		e.Bool(msg.Success)
	case ActionMessageNodeShutdown:
		e.Bool(msg.Success)
	case ActionMessageNodeStartFailed:
		e.String(msg.Reason)
	}
	return e.Bytes()
}

// DecodeActionMessage parses a frame payload produced by
// EncodeActionMessage.
func DecodeActionMessage(payload []byte) (ActionMessage, error) {
	d := NewDecoder(payload)
	kindByte, err := d.Byte()
	if err != nil {
		return ActionMessage{}, err
	}
	kind := ActionMessageKind(kindByte)

	readID := func() (uuid.UUID, error) {
		raw, err := d.RawBytes()
		if err != nil {
			return uuid.UUID{}, err
		}
		return uuid.FromBytes(raw)
	}

	switch kind {
	case ActionMessageStarted:
		id, err := readID()
		if err != nil {
			return ActionMessage{}, err
		}
		return Started(id), nil
	case ActionMessageOutputLine:
		id, err := readID()
		if err != nil {
			return ActionMessage{}, err
		}
		content, err := d.String()
		if err != nil {
			return ActionMessage{}, err
		}
		levelByte, err := d.Byte()
		if err != nil {
			return ActionMessage{}, err
		}
		return OutputLine(id, content, OutputLevel(levelByte)), nil
	case ActionMessageResult:
		id, err := readID()
		if err != nil {
			return ActionMessage{}, err
		}
		success, err := d.Bool()
		if err != nil {
			return ActionMessage{}, err
		}
		return Result(id, success), nil
	case ActionMessageNodeShutdown:
		success, err := d.Bool()
		if err != nil {
			return ActionMessage{}, err
		}
		return NodeShutdownMsg(success), nil
	case ActionMessageNodeStartFailed:
		reason, err := d.String()
		if err != nil {
			return ActionMessage{}, err
		}
		return NodeStartFailed(reason), nil
	default:
		return ActionMessage{}, fmt.Errorf("wire: unknown ActionMessage kind %d", kindByte)
	}
}
