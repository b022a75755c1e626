package hub

import "encoding/json"

// Server to client event names.
const (
	EventReceiveInitialState       = "ReceiveInitialState"
	EventReceiveNoteUpdate         = "ReceiveNoteUpdate"
	EventNoteShared                = "NoteShared"
	EventNoteDeleted               = "NoteDeleted"
	EventReceiveWhiteboardElement  = "ReceiveWhiteboardElement"
	EventReceiveWhiteboardElements = "ReceiveWhiteboardElements"
	EventWhiteboardElementDeleted  = "WhiteboardElementDeleted"
	EventWhiteboardCleared         = "WhiteboardCleared"
	EventWhiteboardCreated         = "WhiteboardCreated"
	EventWhiteboardDeleted         = "WhiteboardDeleted"
	EventWhiteboardShared          = "WhiteboardShared"
	EventReceiveWhiteboardNames    = "ReceiveWhiteboardNames"
	EventFriendAdded               = "FriendAdded"
	EventFriendRemoved             = "FriendRemoved"
	EventFriendsReceived           = "FriendsReceived"
)

type eventFrame struct {
	Type string `json:"type"`
	Data []any  `json:"data"`
}

// EncodeEvent renders a named event with positional arguments.
func EncodeEvent(event string, args ...any) ([]byte, error) {
	if args == nil {
		args = []any{}
	}
	return json.Marshal(eventFrame{Type: event, Data: args})
}

// SendTo delivers an event to a single channel.
func SendTo(ch Channel, event string, args ...any) error {
	frame, err := EncodeEvent(event, args...)
	if err != nil {
		return err
	}
	if !ch.Deliver(frame) {
		return ErrDeliveryDropped
	}
	return nil
}
