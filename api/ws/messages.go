package ws

import (
	"encoding/json"
	"fmt"

	"github.com/syncnotes/syncnotes/service"
)

// Client to server call names.
const (
	CallUpdateUser                = "UpdateUser"
	CallSendNoteUpdate            = "SendNoteUpdate"
	CallDeleteNote                = "DeleteNote"
	CallRequestWhiteboardElements = "RequestWhiteboardElements"
	CallSendWhiteboardElement     = "SendWhiteboardElement"
	CallDeleteWhiteboardElement   = "DeleteWhiteboardElement"
	CallClearWhiteboard           = "ClearWhiteboard"
	CallGetWhiteboardNames        = "GetWhiteboardNames"
	CallCreateWhiteboard          = "CreateWhiteboard"
	CallDeleteWhiteboard          = "DeleteWhiteboard"
	CallGetFriends                = "GetFriends"
	CallAddFriend                 = "AddFriend"
	CallRemoveFriend              = "RemoveFriend"
	CallShareNote                 = "ShareNote"
	CallShareWhiteboard           = "ShareWhiteboard"
)

const completionType = "completion"

type invocation struct {
	Type         string            `json:"type"`
	InvocationId string            `json:"invocationId"`
	Data         []json.RawMessage `json:"data"`
}

type completionError struct {
	Code    service.Code `json:"code"`
	Message string       `json:"message"`
}

type completion struct {
	Type         string           `json:"type"`
	InvocationId string           `json:"invocationId"`
	Success      bool             `json:"success"`
	Error        *completionError `json:"error,omitempty"`
}

func newCompletion(invocationId string, err error) completion {
	c := completion{Type: completionType, InvocationId: invocationId, Success: err == nil}
	if err != nil {
		c.Error = &completionError{Code: service.CodeOf(err), Message: service.MessageOf(err)}
	}
	return c
}

// arg decodes the i-th positional argument.
func arg[T any](inv invocation, i int) (T, error) {
	var v T
	if i >= len(inv.Data) {
		return v, &service.Fault{
			Code:    service.CodeInvalidArgument,
			Message: fmt.Sprintf("%s expects at least %d argument(s)", inv.Type, i+1),
		}
	}
	if err := json.Unmarshal(inv.Data[i], &v); err != nil {
		return v, &service.Fault{
			Code:    service.CodeInvalidArgument,
			Message: fmt.Sprintf("argument %d of %s is malformed", i+1, inv.Type),
		}
	}
	return v, nil
}
