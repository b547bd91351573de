package handler

import (
	"partygo/backend/internal/chathub"
	"partygo/backend/internal/match"
	"partygo/backend/internal/storage"
)

// Handler holds the dependencies shared by every HTTP endpoint.
type Handler struct {
	Hub       *chathub.Hub
	Storage   storage.Storage
	Resolver  *match.Resolver
	JWTSecret []byte
}

func NewHandler(hub *chathub.Hub, s storage.Storage, resolver *match.Resolver, jwtSecret string) *Handler {
	return &Handler{
		Hub:       hub,
		Storage:   s,
		Resolver:  resolver,
		JWTSecret: []byte(jwtSecret),
	}
}
