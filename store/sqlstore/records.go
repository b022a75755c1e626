package sqlstore

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/syncnotes/syncnotes/models"
)

type userRecord struct {
	Id           string `gorm:"primaryKey"`
	Name         string
	Email        string `gorm:"uniqueIndex"`
	Color        string
	PasswordHash string
}

func (userRecord) TableName() string { return "users" }

type noteRecord struct {
	Id             string `gorm:"primaryKey"`
	Name           string
	Content        string
	OwnerId        string `gorm:"index"`
	LastModified   time.Time
	LastModifiedBy string
	Shares         []noteShareRecord `gorm:"foreignKey:NoteId"`
}

func (noteRecord) TableName() string { return "notes" }

type noteShareRecord struct {
	NoteId string `gorm:"primaryKey"`
	UserId string `gorm:"primaryKey;index"`
}

func (noteShareRecord) TableName() string { return "note_shares" }

type whiteboardRecord struct {
	Name           string `gorm:"primaryKey"`
	OwnerId        string `gorm:"index"`
	LastModified   time.Time
	LastModifiedBy string
	Shares         []whiteboardShareRecord `gorm:"foreignKey:WhiteboardName"`
}

func (whiteboardRecord) TableName() string { return "whiteboards" }

type whiteboardShareRecord struct {
	WhiteboardName string `gorm:"primaryKey"`
	UserId         string `gorm:"primaryKey;index"`
}

func (whiteboardShareRecord) TableName() string { return "whiteboard_shares" }

type elementRecord struct {
	Id             string `gorm:"primaryKey"`
	WhiteboardName string `gorm:"index"`
	Type           string
	Color          string
	StrokeWidth    float64
	Points         points `gorm:"type:text"`
	Text           string
	OwnerId        string
	CreatedAt      time.Time `gorm:"autoCreateTime"`
	LastModified   time.Time
	LastModifiedBy string
}

func (elementRecord) TableName() string { return "whiteboard_elements" }

type friendshipRecord struct {
	UserId   string `gorm:"primaryKey"`
	FriendId string `gorm:"primaryKey;index"`
}

func (friendshipRecord) TableName() string { return "friendships" }

// points is stored as a JSON column.
type points []models.Point

func (p *points) Scan(value any) error {
	switch v := value.(type) {
	case nil:
		*p = nil
		return nil
	case []byte:
		return json.Unmarshal(v, p)
	case string:
		return json.Unmarshal([]byte(v), p)
	default:
		return fmt.Errorf("unsupported points column type %T", value)
	}
}

func (p points) Value() (driver.Value, error) {
	if p == nil {
		return "[]", nil
	}
	b, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func toUser(r userRecord) models.User {
	return models.User{
		Id:           r.Id,
		Name:         r.Name,
		Email:        r.Email,
		Color:        r.Color,
		PasswordHash: r.PasswordHash,
	}
}

func fromUser(u models.User) userRecord {
	return userRecord{
		Id:           u.Id,
		Name:         u.Name,
		Email:        u.Email,
		Color:        u.Color,
		PasswordHash: u.PasswordHash,
	}
}

func toNote(r noteRecord) models.Note {
	shared := make([]string, 0, len(r.Shares))
	for _, s := range r.Shares {
		shared = append(shared, s.UserId)
	}
	return models.Note{
		Id:             r.Id,
		Name:           r.Name,
		Content:        r.Content,
		OwnerId:        r.OwnerId,
		SharedWith:     shared,
		LastModified:   r.LastModified,
		LastModifiedBy: r.LastModifiedBy,
	}
}

func fromNote(n models.Note) noteRecord {
	return noteRecord{
		Id:             n.Id,
		Name:           n.Name,
		Content:        n.Content,
		OwnerId:        n.OwnerId,
		LastModified:   n.LastModified,
		LastModifiedBy: n.LastModifiedBy,
	}
}

func toWhiteboard(r whiteboardRecord) models.Whiteboard {
	shared := make([]string, 0, len(r.Shares))
	for _, s := range r.Shares {
		shared = append(shared, s.UserId)
	}
	return models.Whiteboard{
		Name:           r.Name,
		OwnerId:        r.OwnerId,
		SharedWith:     shared,
		LastModified:   r.LastModified,
		LastModifiedBy: r.LastModifiedBy,
	}
}

func fromWhiteboard(w models.Whiteboard) whiteboardRecord {
	return whiteboardRecord{
		Name:           w.Name,
		OwnerId:        w.OwnerId,
		LastModified:   w.LastModified,
		LastModifiedBy: w.LastModifiedBy,
	}
}

func toElement(r elementRecord) models.WhiteboardElement {
	return models.WhiteboardElement{
		Id:             r.Id,
		WhiteboardName: r.WhiteboardName,
		Type:           r.Type,
		Color:          r.Color,
		StrokeWidth:    r.StrokeWidth,
		Points:         []models.Point(r.Points),
		Text:           r.Text,
		OwnerId:        r.OwnerId,
		SharedWith:     []string{},
		LastModified:   r.LastModified,
		LastModifiedBy: r.LastModifiedBy,
	}
}

func fromElement(e models.WhiteboardElement) elementRecord {
	return elementRecord{
		Id:             e.Id,
		WhiteboardName: e.WhiteboardName,
		Type:           e.Type,
		Color:          e.Color,
		StrokeWidth:    e.StrokeWidth,
		Points:         points(e.Points),
		Text:           e.Text,
		OwnerId:        e.OwnerId,
		LastModified:   e.LastModified,
		LastModifiedBy: e.LastModifiedBy,
	}
}
