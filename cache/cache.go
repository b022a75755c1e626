package cache

import "context"

// NameCache holds user display names used to decorate last-modified
// metadata. A miss is reported with ok=false and a nil error.
type NameCache interface {
	GetDisplayName(ctx context.Context, userId string) (name string, ok bool, err error)
	SetDisplayName(ctx context.Context, userId string, name string) error
	InvalidateDisplayName(ctx context.Context, userId string) error
}
