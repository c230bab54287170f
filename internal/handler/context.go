package handler

type ContextKey string

var (
	SubCtxKey   ContextKey = "sub"
	LocationCtx ContextKey = "location"
	ZoneCtx     ContextKey = "zone"
)
