package repositories

import (
	dnderr "github.com/KirkDiggler/battle-arena/internal/errors"
)

// RecordKind names the stored entity in repository errors
type RecordKind string

const (
	RecordBattle RecordKind = "battle"
	RecordPlayer RecordKind = "player"
)

func NewRecordNotFoundError(kind RecordKind, id string) error {
	return dnderr.NotFoundf("%s not found: %s", kind, id).
		WithMeta("kind", string(kind)).
		WithMeta("id", id)
}

func NewRecordExistsError(kind RecordKind, id string) error {
	return dnderr.Newf(dnderr.CodeAlreadyExists, "%s already exists: %s", kind, id).
		WithMeta("kind", string(kind)).
		WithMeta("id", id)
}
