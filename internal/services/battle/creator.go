package battle

import (
	"context"
	"errors"
	"log"
	"sort"

	"github.com/KirkDiggler/battle-arena/internal/catalog"
	"github.com/KirkDiggler/battle-arena/internal/dice"
	"github.com/KirkDiggler/battle-arena/internal/entities"
	dnderr "github.com/KirkDiggler/battle-arena/internal/errors"
	"github.com/KirkDiggler/battle-arena/internal/metrics"
)

// combatant is a player paired with the template snapshot they fight with
type combatant struct {
	player   *entities.Player
	owned    *entities.OwnedCreature
	creature *entities.Creature
}

// CreateBattle creates a new battle for the initiator
func (s *service) CreateBattle(ctx context.Context, input *CreateBattleInput) (*entities.Battle, error) {
	if input == nil {
		return nil, dnderr.InvalidArgument("input cannot be nil")
	}
	if input.PlayerID == "" {
		return nil, dnderr.InvalidArgument("player ID is required")
	}

	initiator, err := s.playerRepo.Get(ctx, input.PlayerID)
	if err != nil {
		return nil, dnderr.Wrap(err, "failed to get player")
	}

	if _, err := s.battleRepo.GetActiveByPlayer(ctx, initiator.ID); err == nil {
		return nil, ErrActiveBattleExists
	} else if !dnderr.IsNotFound(err) {
		return nil, dnderr.Wrap(err, "failed to check active battle")
	}

	challenger, err := s.resolveInitiator(initiator, input.CreatureID)
	if err != nil {
		return nil, err
	}

	opponentPlayer, err := s.resolveOpponent(ctx, initiator, input.OpponentID)
	if err != nil {
		return nil, err
	}

	opponent, err := s.resolveCombatant(opponentPlayer, opponentPlayer.ActiveCreature(), ErrOpponentNoCreature)
	if err != nil {
		return nil, err
	}

	// Ties favor the initiator
	first, second := challenger, opponent
	if opponent.creature.BaseSpeed > challenger.creature.BaseSpeed {
		first, second = opponent, challenger
	}

	now := s.timeProvider.Now()
	battle := &entities.Battle{
		ID:                  s.uuidGenerator.New(),
		Sides:               [2]*entities.BattleSide{newSide(first, first == opponent), newSide(second, second == opponent)},
		Status:              entities.BattleStatusActive,
		TurnNumber:          1,
		CurrentTurnPlayerID: first.player.ID,
		// The automatic side moving first still owes its opening action
		PendingAutoTurn: first == opponent,
		CreatedAt:       now,
	}

	if err := s.battleRepo.Create(ctx, battle); err != nil {
		return nil, dnderr.Wrap(err, "failed to create battle")
	}

	kind := metrics.OpponentHuman
	if opponentPlayer.IsAI {
		kind = metrics.OpponentAI
	}
	s.metrics.BattleStarted(kind)

	log.Printf("Battle %s created: %s (%s) vs %s (%s), %s moves first",
		battle.ID, initiator.Username, challenger.creature.Key,
		opponentPlayer.Username, opponent.creature.Key, first.player.Username)

	return battle, nil
}

func newSide(c *combatant, automatic bool) *entities.BattleSide {
	return &entities.BattleSide{
		PlayerID:        c.player.ID,
		Username:        c.player.Username,
		IsAI:            automatic,
		OwnedCreatureID: c.owned.ID,
		Creature:        c.creature,
		CurrentHP:       c.creature.MaxHP(),
		Inventory:       entities.DefaultInventory(),
	}
}

func (s *service) resolveInitiator(initiator *entities.Player, creatureID string) (*combatant, error) {
	if creatureID == "" {
		return s.resolveCombatant(initiator, initiator.ActiveCreature(), ErrNoActiveCreature)
	}

	owned := initiator.FindCreature(creatureID)
	if owned == nil {
		return nil, ErrCreatureNotFound
	}
	return s.resolveCombatant(initiator, owned, ErrCreatureNotFound)
}

// resolveCombatant snapshots the owned creature's template; missing is
// returned when there is nothing to fight with
func (s *service) resolveCombatant(player *entities.Player, owned *entities.OwnedCreature, missing error) (*combatant, error) {
	if owned == nil {
		return nil, missing
	}

	creature, err := s.catalog.Get(owned.CreatureKey)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			log.Printf("Player %s owns unknown creature %q", player.ID, owned.CreatureKey)
			return nil, missing
		}
		return nil, dnderr.Wrap(err, "failed to get creature template")
	}

	return &combatant{player: player, owned: owned, creature: creature}, nil
}

func (s *service) resolveOpponent(ctx context.Context, initiator *entities.Player, opponentID string) (*entities.Player, error) {
	if opponentID != "" {
		if opponentID == initiator.ID {
			return nil, ErrSelfOpponent
		}
		opponent, err := s.playerRepo.Get(ctx, opponentID)
		if err != nil {
			if dnderr.IsNotFound(err) {
				return nil, ErrOpponentNotFound
			}
			return nil, dnderr.Wrap(err, "failed to get opponent")
		}
		return opponent, nil
	}

	eligible, err := s.playerRepo.ListWithActiveCreature(ctx)
	if err != nil {
		return nil, dnderr.Wrap(err, "failed to list opponents")
	}

	candidates := make([]*entities.Player, 0, len(eligible))
	for _, p := range eligible {
		if p.ID != initiator.ID {
			candidates = append(candidates, p)
		}
	}
	if len(candidates) == 0 {
		return s.ensureAIOpponent(ctx)
	}

	sort.Slice(candidates, func(i, j int) bool { return candidates[i].ID < candidates[j].ID })
	idx, err := dice.Pick(s.roller, len(candidates))
	if err != nil {
		return nil, dnderr.Wrap(err, "failed to pick opponent")
	}

	return candidates[idx], nil
}

// ensureAIOpponent returns the standing AI player, creating it on first use
// and giving it a random creature whenever it has none
func (s *service) ensureAIOpponent(ctx context.Context) (*entities.Player, error) {
	ai, err := s.playerRepo.GetByUsername(ctx, s.aiUsername)
	if err != nil && !dnderr.IsNotFound(err) {
		return nil, dnderr.Wrap(err, "failed to get AI opponent")
	}

	if ai == nil {
		ai = &entities.Player{
			ID:        s.uuidGenerator.New(),
			Username:  s.aiUsername,
			IsAI:      true,
			CreatedAt: s.timeProvider.Now(),
		}
		if err := s.playerRepo.Create(ctx, ai); err != nil {
			if dnderr.GetCode(err) != dnderr.CodeAlreadyExists {
				return nil, dnderr.Wrap(err, "failed to create AI opponent")
			}
			// Lost a race with another battle creating it
			if ai, err = s.playerRepo.GetByUsername(ctx, s.aiUsername); err != nil {
				return nil, dnderr.Wrap(err, "failed to get AI opponent")
			}
		} else {
			log.Printf("Created AI opponent %s (%s)", ai.Username, ai.ID)
		}
	}

	if ai.ActiveCreature() != nil {
		return ai, nil
	}

	creature, err := s.catalog.Random(s.roller)
	if err != nil {
		if errors.Is(err, catalog.ErrEmpty) {
			return nil, ErrNoOpponentAvailable
		}
		return nil, dnderr.Wrap(err, "failed to pick AI creature")
	}

	owned := ai.FindCreatureByKey(creature.Key)
	if owned == nil {
		owned = &entities.OwnedCreature{
			ID:          s.uuidGenerator.New(),
			PlayerID:    ai.ID,
			CreatureKey: creature.Key,
		}
		ai.Creatures = append(ai.Creatures, owned)
	}
	ai.ActiveCreatureID = owned.ID

	if err := s.playerRepo.Update(ctx, ai); err != nil {
		return nil, dnderr.Wrap(err, "failed to update AI opponent")
	}

	return ai, nil
}
