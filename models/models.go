package models

import "time"

const (
	DefaultNoteName    = "Untitled"
	DefaultColor       = "#000000"
	DefaultStrokeWidth = 2
)

type User struct {
	Id           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Color        string `json:"color"`
	PasswordHash string `json:"-"`
}

type Note struct {
	Id                 string    `json:"id"`
	Name               string    `json:"name"`
	Content            string    `json:"content"`
	OwnerId            string    `json:"ownerId"`
	SharedWith         []string  `json:"sharedWith"`
	LastModified       time.Time `json:"lastModified"`
	LastModifiedBy     string    `json:"lastModifiedBy"`
	LastModifiedByName string    `json:"lastModifiedByName,omitempty"`
}

func (n Note) GetOwnerId() string      { return n.OwnerId }
func (n Note) GetSharedWith() []string { return n.SharedWith }

// Whiteboard is the aggregate that owns a set of elements. Ownership and
// sharing live here; elements inherit both.
type Whiteboard struct {
	Name           string    `json:"name"`
	OwnerId        string    `json:"ownerId"`
	SharedWith     []string  `json:"sharedWith"`
	LastModified   time.Time `json:"lastModified"`
	LastModifiedBy string    `json:"lastModifiedBy"`
}

func (w Whiteboard) GetOwnerId() string      { return w.OwnerId }
func (w Whiteboard) GetSharedWith() []string { return w.SharedWith }

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type WhiteboardElement struct {
	Id                 string    `json:"id"`
	WhiteboardName     string    `json:"whiteboardName"`
	Type               string    `json:"type"`
	Color              string    `json:"color"`
	StrokeWidth        float64   `json:"strokeWidth"`
	Points             []Point   `json:"points"`
	Text               string    `json:"text"`
	OwnerId            string    `json:"ownerId"`
	SharedWith         []string  `json:"sharedWith"`
	LastModified       time.Time `json:"lastModified"`
	LastModifiedBy     string    `json:"lastModifiedBy"`
	LastModifiedByName string    `json:"lastModifiedByName,omitempty"`
}

func (e WhiteboardElement) GetOwnerId() string      { return e.OwnerId }
func (e WhiteboardElement) GetSharedWith() []string { return e.SharedWith }

// Friendship is directed; either direction is enough to allow sharing.
type Friendship struct {
	UserId   string `json:"userId"`
	FriendId string `json:"friendId"`
}

type Snapshot struct {
	Notes           []Note              `json:"notes"`
	Elements        []WhiteboardElement `json:"elements"`
	WhiteboardNames []string            `json:"whiteboardNames"`
}
