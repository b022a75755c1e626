package service_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/syncnotes/syncnotes/models"
	"github.com/syncnotes/syncnotes/service"
)

func TestLastWriteWinsNote(t *testing.T) {
	stamp := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	existing := models.Note{Id: "n1", Name: "a", Content: "old", OwnerId: "alice", SharedWith: []string{"bob"}, LastModified: stamp, LastModifiedBy: "alice"}
	incoming := models.Note{Id: "n1", Name: "b", Content: "new", OwnerId: "mallory", SharedWith: []string{"mallory"}, LastModifiedBy: "mallory"}

	merged := service.LastWriteWins{}.MergeNote(existing, incoming)

	assert.Equal(t, "b", merged.Name)
	assert.Equal(t, "new", merged.Content)
	assert.Equal(t, "alice", merged.OwnerId)
	assert.Equal(t, []string{"bob"}, merged.SharedWith)
	assert.Equal(t, stamp, merged.LastModified)
	assert.Equal(t, "alice", merged.LastModifiedBy)
}

func TestLastWriteWinsElement(t *testing.T) {
	existing := models.WhiteboardElement{Id: "e1", WhiteboardName: "W", Type: "line", Color: "#000000", OwnerId: "alice"}
	incoming := models.WhiteboardElement{
		Id:             "e1",
		WhiteboardName: "Other",
		Type:           "text",
		Color:          "#ffffff",
		StrokeWidth:    5,
		Points:         []models.Point{{X: 1, Y: 2}},
		Text:           "hi",
		OwnerId:        "mallory",
	}

	merged := service.LastWriteWins{}.MergeElement(existing, incoming)

	assert.Equal(t, "text", merged.Type)
	assert.Equal(t, "#ffffff", merged.Color)
	assert.Equal(t, 5.0, merged.StrokeWidth)
	assert.Equal(t, incoming.Points, merged.Points)
	assert.Equal(t, "hi", merged.Text)
	assert.Equal(t, "W", merged.WhiteboardName)
	assert.Equal(t, "alice", merged.OwnerId)
}
