package ws

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"slices"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/gommon/log"
	"github.com/syncnotes/syncnotes/hub"
	"github.com/syncnotes/syncnotes/models"
	"github.com/syncnotes/syncnotes/service"
	"github.com/syncnotes/syncnotes/session"
)

// callTimeout bounds the store work of a single call.
const callTimeout = 15 * time.Second

type Handler struct {
	Service  *service.Service
	Sessions *session.Controller
	options  ClientOptions
}

func NewHandler(svc *service.Service, sessions *session.Controller, opts ClientOptions) *Handler {
	return &Handler{
		Service:  svc,
		Sessions: sessions,
		options:  opts,
	}
}

// NewWsUpgrader accepts any origin when allowedOrigins is empty.
func (h *Handler) NewWsUpgrader(allowedOrigins []string) websocket.Upgrader {
	return websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			if len(allowedOrigins) == 0 {
				return true
			}
			return slices.Contains(allowedOrigins, r.Header.Get("Origin"))
		},
	}
}

// ServeWS upgrades the request and runs the session for the given bearer
// token.
func (h *Handler) ServeWS(wsUpgrader websocket.Upgrader, w http.ResponseWriter, r *http.Request, token string, shutdownCtx context.Context) {
	conn, err := wsUpgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warnf("ws: failed to upgrade connection: %v", err)
		return
	}

	client := NewClient(conn, h.options, h.HandleWsMessage)
	client.session = h.Sessions.Open(client)
	go client.WritePump(shutdownCtx)

	// Must upgrade the connection in order to be able to send custom close message
	if err := client.session.Authenticate(r.Context(), token); err != nil {
		if errors.Is(err, session.ErrUnauthorized) {
			client.closeWith(websocket.ClosePolicyViolation, "Unauthorized")
		} else {
			client.closeWith(websocket.CloseInternalServerErr, "Connection failed")
		}
		return
	}

	go client.ReadPump()
}

// HandleWsMessage runs one call to completion. Calls of one client are
// handled in order.
func (h *Handler) HandleWsMessage(client *Client, messageBytes []byte) {
	var inv invocation
	if err := json.Unmarshal(messageBytes, &inv); err != nil {
		log.Warnf("ws: invalid JSON from user %s: %v", client.UserId(), err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
	defer cancel()

	err := h.dispatch(ctx, client, inv)
	if err != nil {
		logFault(inv.Type, client.UserId(), err)
	}

	if err := h.reply(client, newCompletion(inv.InvocationId, err)); err != nil {
		log.Debugf("ws: completion for %s not delivered: %v", inv.Type, err)
	}
}

func (h *Handler) dispatch(ctx context.Context, client *Client, inv invocation) error {
	userId := client.UserId()
	svc := h.Service

	switch inv.Type {
	case CallUpdateUser:
		user, err := arg[models.User](inv, 0)
		if err != nil {
			return err
		}
		_, err = svc.UpdateUser(ctx, userId, user)
		return err

	case CallSendNoteUpdate:
		note, err := arg[models.Note](inv, 0)
		if err != nil {
			return err
		}
		_, err = svc.UpsertNote(ctx, userId, note)
		return err

	case CallDeleteNote:
		noteId, err := arg[string](inv, 0)
		if err != nil {
			return err
		}
		return svc.DeleteNote(ctx, userId, noteId)

	case CallRequestWhiteboardElements:
		name, err := arg[string](inv, 0)
		if err != nil {
			return err
		}
		elements, err := svc.RequestWhiteboardElements(ctx, userId, name)
		if err != nil {
			return err
		}
		return hub.SendTo(client, hub.EventReceiveWhiteboardElements, elements)

	case CallSendWhiteboardElement:
		element, err := arg[models.WhiteboardElement](inv, 0)
		if err != nil {
			return err
		}
		_, err = svc.UpsertWhiteboardElement(ctx, userId, element)
		return err

	case CallDeleteWhiteboardElement:
		elementId, err := arg[string](inv, 0)
		if err != nil {
			return err
		}
		return svc.DeleteWhiteboardElement(ctx, userId, elementId)

	case CallClearWhiteboard:
		name, err := arg[string](inv, 0)
		if err != nil {
			return err
		}
		return svc.ClearWhiteboard(ctx, userId, name)

	case CallGetWhiteboardNames:
		names, err := svc.GetWhiteboardNames(ctx, userId)
		if err != nil {
			return err
		}
		return hub.SendTo(client, hub.EventReceiveWhiteboardNames, names)

	case CallCreateWhiteboard:
		name, err := arg[string](inv, 0)
		if err != nil {
			return err
		}
		_, err = svc.CreateWhiteboard(ctx, userId, name)
		return err

	case CallDeleteWhiteboard:
		name, err := arg[string](inv, 0)
		if err != nil {
			return err
		}
		return svc.DeleteWhiteboard(ctx, userId, name)

	case CallGetFriends:
		friends, err := svc.GetFriends(ctx, userId)
		if err != nil {
			return err
		}
		return hub.SendTo(client, hub.EventFriendsReceived, friends)

	case CallAddFriend:
		email, err := arg[string](inv, 0)
		if err != nil {
			return err
		}
		friend, err := svc.AddFriend(ctx, userId, email)
		if err != nil {
			return err
		}
		return hub.SendTo(client, hub.EventFriendAdded, friend)

	case CallRemoveFriend:
		friendId, err := arg[string](inv, 0)
		if err != nil {
			return err
		}
		if err := svc.RemoveFriend(ctx, userId, friendId); err != nil {
			return err
		}
		return hub.SendTo(client, hub.EventFriendRemoved, friendId)

	case CallShareNote:
		noteId, err := arg[string](inv, 0)
		if err != nil {
			return err
		}
		friendId, err := arg[string](inv, 1)
		if err != nil {
			return err
		}
		_, err = svc.ShareNote(ctx, userId, noteId, friendId)
		return err

	case CallShareWhiteboard:
		name, err := arg[string](inv, 0)
		if err != nil {
			return err
		}
		friendId, err := arg[string](inv, 1)
		if err != nil {
			return err
		}
		if err := svc.ShareWhiteboard(ctx, userId, name, friendId); err != nil {
			return err
		}
		return hub.SendTo(client, hub.EventWhiteboardShared, name)

	default:
		return &service.Fault{Code: service.CodeInvalidArgument, Message: "unknown method " + inv.Type}
	}
}

func (h *Handler) reply(client *Client, c completion) error {
	frame, err := json.Marshal(c)
	if err != nil {
		return err
	}
	if !client.Deliver(frame) {
		return hub.ErrDeliveryDropped
	}
	return nil
}

func logFault(call string, userId string, err error) {
	if service.CodeOf(err) == service.CodeStoreFailure {
		// already logged with its cause by the service
		log.Debugf("ws: %s by user %s failed: %v", call, userId, err)
		return
	}
	log.Warnf("ws: %s by user %s rejected: %v", call, userId, err)
}
