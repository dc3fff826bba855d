package battle

import (
	dnderr "github.com/KirkDiggler/battle-arena/internal/errors"
)

// Failures raised by the engine. They are reported to the caller as-is and
// never cause a partial mutation.
var (
	ErrNotParticipant  = dnderr.PermissionDenied("You are not a participant in this battle")
	ErrBattleNotActive = dnderr.FailedPrecondition("Battle is not active")
	ErrNotYourTurn     = dnderr.FailedPrecondition("It is not your turn")
	ErrInvalidAction   = dnderr.InvalidArgument("Invalid action")
	ErrInvalidItemType = dnderr.InvalidArgument("Invalid item type")

	ErrNoPotionRemaining   = dnderr.ResourceExhausted("No potions remaining")
	ErrNoXAttackRemaining  = dnderr.ResourceExhausted("No X-Attack remaining")
	ErrNoXDefenseRemaining = dnderr.ResourceExhausted("No X-Defense remaining")
)
