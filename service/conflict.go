package service

import "github.com/syncnotes/syncnotes/models"

// ConflictPolicy decides the state persisted when an edit arrives for an
// entity that already exists. Ownership, sharing and modification metadata
// are managed by the caller and must not be taken from incoming.
type ConflictPolicy interface {
	MergeNote(existing models.Note, incoming models.Note) models.Note
	MergeElement(existing models.WhiteboardElement, incoming models.WhiteboardElement) models.WhiteboardElement
}

// LastWriteWins overwrites the mutable fields with the incoming values.
type LastWriteWins struct{}

var _ ConflictPolicy = LastWriteWins{}

func (LastWriteWins) MergeNote(existing models.Note, incoming models.Note) models.Note {
	merged := existing
	merged.Name = incoming.Name
	merged.Content = incoming.Content
	return merged
}

func (LastWriteWins) MergeElement(existing models.WhiteboardElement, incoming models.WhiteboardElement) models.WhiteboardElement {
	merged := existing
	merged.Type = incoming.Type
	merged.Color = incoming.Color
	merged.StrokeWidth = incoming.StrokeWidth
	merged.Points = incoming.Points
	merged.Text = incoming.Text
	return merged
}
