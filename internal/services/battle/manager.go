package battle

import (
	"context"
	"log"
	"time"

	engine "github.com/KirkDiggler/battle-arena/internal/battle"
	"github.com/KirkDiggler/battle-arena/internal/entities"
	dnderr "github.com/KirkDiggler/battle-arena/internal/errors"
	"github.com/KirkDiggler/battle-arena/internal/repositories"
	"github.com/KirkDiggler/battle-arena/internal/repositories/battles"
)

// SubmitTurn resolves one exchange: any automatic action still owed, the
// caller's action, then the automatic counter-action, all under one lock
func (s *service) SubmitTurn(ctx context.Context, input *SubmitTurnInput) (*TurnOutcome, error) {
	if input == nil {
		return nil, dnderr.InvalidArgument("input cannot be nil")
	}
	if input.BattleID == "" || input.PlayerID == "" {
		return nil, dnderr.InvalidArgument("battle ID and player ID are required")
	}

	outcome := &TurnOutcome{}
	battle, err := s.withBattle(ctx, input.BattleID, func(b *entities.Battle) error {
		if err := authorize(b, input.PlayerID); err != nil {
			return err
		}

		owed, err := s.settleOwedTurn(ctx, b, input.PlayerID)
		if err != nil {
			return err
		}
		outcome.Owed = owed
		if !b.IsActive() {
			return nil
		}

		if !b.IsPlayerTurn(input.PlayerID) {
			return ErrNotYourTurn
		}
		if !input.Action.Valid() {
			return engine.ErrInvalidAction
		}

		result, err := s.processor.Process(b, input.PlayerID, input.Action)
		if err != nil {
			return err
		}
		outcome.Result = result
		if result.BattleComplete {
			return s.recordResult(ctx, result)
		}

		counter, err := s.automaticTurn(ctx, b)
		if err != nil {
			return err
		}
		outcome.Counter = counter
		return nil
	})
	if err != nil {
		return nil, err
	}

	outcome.Battle = battle
	outcome.BattleComplete = battle.Status == entities.BattleStatusCompleted
	outcome.WinnerID = battle.WinnerID

	for _, result := range []*engine.TurnResult{outcome.Owed, outcome.Result, outcome.Counter} {
		if result != nil {
			s.metrics.TurnResolved(string(result.Turn.Action))
		}
	}
	if outcome.BattleComplete {
		s.metrics.BattleCompleted()
		log.Printf("Battle %s completed on turn %d, winner %s", battle.ID, battle.TurnNumber, battle.WinnerID)
	}

	return outcome, nil
}

// UseItem applies the item and hands control to the opponent, whose
// automatic action is owed until the caller's next call
func (s *service) UseItem(ctx context.Context, input *UseItemInput) (*ItemOutcome, error) {
	if input == nil {
		return nil, dnderr.InvalidArgument("input cannot be nil")
	}
	if input.BattleID == "" || input.PlayerID == "" {
		return nil, dnderr.InvalidArgument("battle ID and player ID are required")
	}

	var item engine.ItemType
	outcome := &ItemOutcome{}
	battle, err := s.withBattle(ctx, input.BattleID, func(b *entities.Battle) error {
		if err := authorize(b, input.PlayerID); err != nil {
			return err
		}

		owed, err := s.settleOwedTurn(ctx, b, input.PlayerID)
		if err != nil {
			return err
		}
		outcome.Owed = owed
		if !b.IsActive() {
			outcome.Message = "The battle ended before the item could be used."
			return nil
		}

		if !b.IsPlayerTurn(input.PlayerID) {
			return ErrNotYourTurn
		}
		item, err = engine.ParseItemType(string(input.Item))
		if err != nil {
			return err
		}

		result, err := engine.UseItem(b, input.PlayerID, item)
		if err != nil {
			return err
		}
		b.HandOver(input.PlayerID)
		b.PendingAutoTurn = true

		outcome.Success = true
		outcome.Message = result.Message
		outcome.HPRestored = result.HPRestored
		outcome.NewHP = result.NewHP
		outcome.BoostTurnsRemaining = result.BoostTurnsRemaining
		return nil
	})
	if err != nil {
		return nil, err
	}

	outcome.Battle = battle
	outcome.Inventory = inventorySnapshot(battle.Side(input.PlayerID).Inventory)
	outcome.BattleComplete = battle.Status == entities.BattleStatusCompleted
	outcome.WinnerID = battle.WinnerID

	if outcome.Owed != nil {
		s.metrics.TurnResolved(string(outcome.Owed.Turn.Action))
	}
	if outcome.Success {
		s.metrics.ItemUsed(string(item))
		log.Printf("Battle %s: %s used %s", battle.ID, input.PlayerID, item)
	}
	if outcome.BattleComplete {
		s.metrics.BattleCompleted()
	}

	return outcome, nil
}

// GetBattle returns the battle if the requester fights in it. No lock is taken.
func (s *service) GetBattle(ctx context.Context, battleID, requesterID string) (*entities.Battle, error) {
	if battleID == "" {
		return nil, dnderr.InvalidArgument("battle ID is required")
	}

	battle, err := s.battleRepo.Get(ctx, battleID)
	if err != nil {
		if dnderr.IsNotFound(err) {
			return nil, ErrBattleNotFound
		}
		return nil, dnderr.Wrap(err, "failed to get battle")
	}

	if !battle.IsParticipant(requesterID) {
		return nil, ErrNotParticipant
	}

	return battle, nil
}

func (s *service) GetActiveBattle(ctx context.Context, playerID string) (*entities.Battle, error) {
	if playerID == "" {
		return nil, dnderr.InvalidArgument("player ID is required")
	}

	battle, err := s.battleRepo.GetActiveByPlayer(ctx, playerID)
	if err != nil {
		if dnderr.IsNotFound(err) {
			return nil, ErrNoActiveBattle
		}
		return nil, dnderr.Wrap(err, "failed to get active battle")
	}

	return battle, nil
}

// withBattle runs fn on a freshly read battle while holding its lock
func (s *service) withBattle(ctx context.Context, battleID string, fn battles.MutateFunc) (*entities.Battle, error) {
	if s.actionTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.actionTimeout)
		defer cancel()
	}

	requested := time.Now()
	battle, err := s.battleRepo.WithLock(ctx, battleID, func(b *entities.Battle) error {
		s.metrics.ObserveLockWait(time.Since(requested))
		return fn(b)
	})
	if err != nil {
		if isMissingBattle(err) {
			return nil, ErrBattleNotFound
		}
		return nil, err
	}

	return battle, nil
}

func isMissingBattle(err error) bool {
	return dnderr.IsNotFound(err) && dnderr.GetMeta(err)["kind"] == string(repositories.RecordBattle)
}

// authorize checks participation, then status, then that the caller
// controls their own side
func authorize(b *entities.Battle, playerID string) error {
	side := b.Side(playerID)
	if side == nil {
		return ErrNotParticipant
	}
	if !b.IsActive() {
		return ErrBattleNotActive
	}
	if side.IsAI {
		return ErrAutomaticSide
	}
	return nil
}

// settleOwedTurn resolves the automatic action left pending by an item use
// or a faster opponent before the caller may act
func (s *service) settleOwedTurn(ctx context.Context, b *entities.Battle, playerID string) (*engine.TurnResult, error) {
	if !b.PendingAutoTurn {
		return nil, nil
	}
	b.PendingAutoTurn = false

	if b.IsPlayerTurn(playerID) {
		return nil, nil
	}

	return s.automaticTurn(ctx, b)
}

// automaticTurn plays whichever side is on turn with the opponent selector
func (s *service) automaticTurn(ctx context.Context, b *entities.Battle) (*engine.TurnResult, error) {
	action, err := s.selector.SelectAction()
	if err != nil {
		return nil, dnderr.Wrap(err, "failed to select opponent action")
	}

	result, err := s.processor.Process(b, b.CurrentTurnPlayerID, action)
	if err != nil {
		return nil, err
	}

	if result.BattleComplete {
		if err := s.recordResult(ctx, result); err != nil {
			return nil, err
		}
	}

	return result, nil
}

func (s *service) recordResult(ctx context.Context, result *engine.TurnResult) error {
	if err := s.playerRepo.RecordResult(ctx, result.WinnerID, result.LoserID); err != nil {
		return dnderr.Wrap(err, "failed to record battle result")
	}
	return nil
}

func inventorySnapshot(inv entities.Inventory) map[engine.ItemType]int {
	return map[engine.ItemType]int{
		engine.ItemPotion:   inv.Potions,
		engine.ItemXAttack:  inv.XAttack,
		engine.ItemXDefense: inv.XDefense,
	}
}
