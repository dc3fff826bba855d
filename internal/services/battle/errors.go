package battle

import (
	engine "github.com/KirkDiggler/battle-arena/internal/battle"
	dnderr "github.com/KirkDiggler/battle-arena/internal/errors"
)

var (
	ErrNoActiveCreature    = dnderr.InvalidArgument("No active Pokémon selected")
	ErrCreatureNotFound    = dnderr.NotFound("Pokémon not found")
	ErrOpponentNotFound    = dnderr.NotFound("Opponent not found")
	ErrOpponentNoCreature  = dnderr.InvalidArgument("Opponent has no active Pokémon")
	ErrNoOpponentAvailable = dnderr.NotFound("No opponent available for battle")
	ErrSelfOpponent        = dnderr.InvalidArgument("You cannot battle yourself")
	ErrActiveBattleExists  = dnderr.FailedPrecondition("You already have an active battle")
	ErrBattleNotFound      = dnderr.NotFound("Battle not found")
	ErrNoActiveBattle      = dnderr.NotFound("You have no active battle")
	ErrAutomaticSide       = dnderr.PermissionDenied("Your side is played automatically in this battle")

	// Re-exported so transports need only this package
	ErrNotParticipant  = engine.ErrNotParticipant
	ErrBattleNotActive = engine.ErrBattleNotActive
	ErrNotYourTurn     = engine.ErrNotYourTurn
)
