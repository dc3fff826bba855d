package battle

import (
	"context"
	"errors"
	"testing"

	engine "github.com/KirkDiggler/battle-arena/internal/battle"
	"github.com/KirkDiggler/battle-arena/internal/entities"
	battleService "github.com/KirkDiggler/battle-arena/internal/services/battle"
	mockbattle "github.com/KirkDiggler/battle-arena/internal/services/battle/mock"
	playerService "github.com/KirkDiggler/battle-arena/internal/services/player"
	mockplayer "github.com/KirkDiggler/battle-arena/internal/services/player/mock"
	"github.com/KirkDiggler/battle-arena/internal/testutils"
	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type HandlerTestSuite struct {
	suite.Suite
	ctx           context.Context
	mockCtrl      *gomock.Controller
	battleService *mockbattle.MockService
	playerService *mockplayer.MockService
	handler       *Handler
	battle        *entities.Battle
}

func (s *HandlerTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.mockCtrl = gomock.NewController(s.T())
	s.battleService = mockbattle.NewMockService(s.mockCtrl)
	s.playerService = mockplayer.NewMockService(s.mockCtrl)
	s.handler = NewHandler(&HandlerConfig{
		BattleService: s.battleService,
		PlayerService: s.playerService,
	})

	ash := testutils.CreateTestPlayer("ash", "Ash", "charmander")
	gary := testutils.CreateTestPlayer("gary", "Gary", "bulbasaur")
	s.battle = testutils.CreateTestBattle("b-1", ash, gary,
		testutils.CreateTestCreature("charmander", 39, 52, 43, 65, "fire"),
		testutils.CreateTestCreature("bulbasaur", 45, 49, 49, 45, "grass"))
	s.battle.Sides[1].IsAI = true

	s.playerService.EXPECT().EnsurePlayer(gomock.Any(), "ash", "Ash").Return(ash, nil).AnyTimes()
}

func (s *HandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}

func (s *HandlerTestSuite) request(sub string, opts map[string]string) *Request {
	return &Request{UserID: "ash", Username: "Ash", Subcommand: sub, Options: opts}
}

func (s *HandlerTestSuite) TestStart() {
	s.battleService.EXPECT().
		CreateBattle(gomock.Any(), &battleService.CreateBattleInput{PlayerID: "ash", OpponentID: "gary"}).
		Return(s.battle, nil)

	data := s.handler.Execute(s.ctx, s.request(SubcommandStart, map[string]string{"opponent": "gary"}))

	s.Require().Len(data.Embeds, 1)
	s.Equal("⚔️ Ash vs Gary", data.Embeds[0].Title)
	s.Equal("The battle begins!", data.Embeds[0].Description)
	s.Len(data.Components, 2)
	s.Zero(data.Flags & discordgo.MessageFlagsEphemeral)
}

func (s *HandlerTestSuite) TestStart_WithExplicitPokemon() {
	s.playerService.EXPECT().
		AcquireCreature(gomock.Any(), "ash", "squirtle").
		Return(&entities.OwnedCreature{ID: "ash-squirtle", PlayerID: "ash", CreatureKey: "squirtle"}, nil)
	s.battleService.EXPECT().
		CreateBattle(gomock.Any(), &battleService.CreateBattleInput{PlayerID: "ash", CreatureID: "ash-squirtle"}).
		Return(s.battle, nil)

	data := s.handler.Execute(s.ctx, s.request(SubcommandStart, map[string]string{"pokemon": "squirtle"}))

	s.Len(data.Embeds, 1)
}

func (s *HandlerTestSuite) TestStart_UnknownPokemonCreatesNothing() {
	s.playerService.EXPECT().
		AcquireCreature(gomock.Any(), "ash", "missingno").
		Return(nil, playerService.ErrCreatureNotFound)

	data := s.handler.Execute(s.ctx, s.request(SubcommandStart, map[string]string{"pokemon": "missingno"}))

	s.Equal("❌ Pokémon not found", data.Content)
	s.Equal(discordgo.MessageFlagsEphemeral, data.Flags)
}

func (s *HandlerTestSuite) TestAttack_UsesActiveBattle() {
	after := s.battle.Clone()
	after.TurnNumber = 3
	s.battleService.EXPECT().GetActiveBattle(gomock.Any(), "ash").Return(s.battle, nil)
	s.battleService.EXPECT().
		SubmitTurn(gomock.Any(), &battleService.SubmitTurnInput{BattleID: "b-1", PlayerID: "ash", Action: entities.ActionAttack}).
		Return(&battleService.TurnOutcome{
			Battle:  after,
			Result:  &engine.TurnResult{Turn: &entities.Turn{Message: "Ash attacks! Dealt 15 damage."}},
			Counter: &engine.TurnResult{Turn: &entities.Turn{Message: "Gary chose to defend!"}},
		}, nil)

	data := s.handler.Execute(s.ctx, s.request(SubcommandAttack, nil))

	s.Require().Len(data.Embeds, 1)
	s.Equal("Ash attacks! Dealt 15 damage.\nGary chose to defend!", data.Embeds[0].Description)
	s.Equal("Turn 3 · Ash to move", data.Embeds[0].Footer.Text)
}

func (s *HandlerTestSuite) TestDefend_FromButtonSkipsLookup() {
	s.battleService.EXPECT().
		SubmitTurn(gomock.Any(), &battleService.SubmitTurnInput{BattleID: "b-1", PlayerID: "ash", Action: entities.ActionDefend}).
		Return(&battleService.TurnOutcome{
			Battle: s.battle,
			Result: &engine.TurnResult{Turn: &entities.Turn{Message: "Ash chose to defend!"}},
		}, nil)

	req, err := parseCustomID(customID(SubcommandDefend, "b-1"))
	s.Require().NoError(err)
	req.UserID, req.Username = "ash", "Ash"

	data := s.handler.Execute(s.ctx, req)

	s.Equal("Ash chose to defend!", data.Embeds[0].Description)
}

func (s *HandlerTestSuite) TestItem() {
	s.battleService.EXPECT().GetActiveBattle(gomock.Any(), "ash").Return(s.battle, nil)
	s.battleService.EXPECT().
		UseItem(gomock.Any(), &battleService.UseItemInput{BattleID: "b-1", PlayerID: "ash", Item: engine.ItemPotion}).
		Return(&battleService.ItemOutcome{
			Battle:  s.battle,
			Success: true,
			Message: "Used Potion! Restored 20 HP.",
		}, nil)

	data := s.handler.Execute(s.ctx, s.request(SubcommandItem, map[string]string{"item": "potion"}))

	s.Equal("🎒 Used Potion! Restored 20 HP.", data.Embeds[0].Description)
	s.Equal(colorItem, data.Embeds[0].Color)
}

func (s *HandlerTestSuite) TestStatus() {
	s.battle.Turns = []*entities.Turn{{TurnNumber: 1, Message: "Ash attacks! Dealt 15 damage."}}
	s.battleService.EXPECT().GetActiveBattle(gomock.Any(), "ash").Return(s.battle, nil)

	data := s.handler.Execute(s.ctx, s.request(SubcommandStatus, nil))

	s.Equal("`1` Ash attacks! Dealt 15 damage.", data.Embeds[0].Description)
}

func (s *HandlerTestSuite) TestStarter() {
	s.playerService.EXPECT().ChooseCreature(gomock.Any(), "ash", "pikachu").
		Return(testutils.CreateTestPlayer("ash", "Ash", "pikachu"), nil)

	data := s.handler.Execute(s.ctx, s.request(SubcommandStarter, map[string]string{"pokemon": "pikachu"}))

	s.Contains(data.Content, "pikachu is now your active Pokémon")
	s.NotZero(data.Flags & discordgo.MessageFlagsEphemeral)
}

func (s *HandlerTestSuite) TestRoster() {
	s.playerService.EXPECT().ListCreatures(gomock.Any()).Return([]*entities.Creature{
		{Key: "pikachu", Name: "Pikachu", PokedexNumber: 25, BaseHP: 35, BaseAttack: 55, BaseDefense: 40, BaseSpeed: 90, PrimaryType: "electric"},
	}, nil)

	data := s.handler.Execute(s.ctx, s.request(SubcommandRoster, nil))

	s.Require().Len(data.Embeds[0].Fields, 1)
	s.Equal("#025 Pikachu", data.Embeds[0].Fields[0].Name)
}

func (s *HandlerTestSuite) TestProfile() {
	ash := testutils.CreateTestPlayer("ash", "Ash", "pikachu")
	ash.Wins, ash.Losses = 5, 3
	s.playerService.EXPECT().GetProfile(gomock.Any(), "ash").Return(&playerService.Profile{
		Player:         ash,
		ActiveCreature: &entities.Creature{Key: "pikachu", Name: "Pikachu", PrimaryType: "electric"},
		WinRate:        ash.WinRate(),
	}, nil)

	data := s.handler.Execute(s.ctx, s.request(SubcommandProfile, nil))

	s.Equal(discordgo.MessageFlagsEphemeral, data.Flags)
	s.Require().Len(data.Embeds, 1)
	fields := data.Embeds[0].Fields
	s.Require().Len(fields, 4)
	s.Equal("5", fields[0].Value)
	s.Equal("3", fields[1].Value)
	s.Equal("62.5%", fields[2].Value)
	s.Equal("Pikachu (Type: electric)", fields[3].Value)
}

func (s *HandlerTestSuite) TestErrorsAreEphemeral() {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "state error shown verbatim", err: battleService.ErrNotYourTurn, want: "❌ It is not your turn"},
		{name: "authorization error shown verbatim", err: battleService.ErrNotParticipant, want: "❌ You are not a participant in this battle"},
		{name: "exhaustion shown verbatim", err: engine.ErrNoPotionRemaining, want: "❌ No potions remaining"},
		{name: "infrastructure error hidden", err: errors.New("dial tcp: refused"), want: "❌ Something went wrong, please try again."},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.battleService.EXPECT().GetActiveBattle(gomock.Any(), "ash").Return(s.battle, nil)
			s.battleService.EXPECT().SubmitTurn(gomock.Any(), gomock.Any()).Return(nil, tt.err)

			data := s.handler.Execute(s.ctx, s.request(SubcommandAttack, nil))

			s.Equal(tt.want, data.Content)
			s.NotZero(data.Flags & discordgo.MessageFlagsEphemeral)
		})
	}
}

func (s *HandlerTestSuite) TestNoActiveBattle() {
	s.battleService.EXPECT().GetActiveBattle(gomock.Any(), "ash").Return(nil, battleService.ErrNoActiveBattle)

	data := s.handler.Execute(s.ctx, s.request(SubcommandDefend, nil))

	s.Equal("❌ You have no active battle", data.Content)
}

func (s *HandlerTestSuite) TestUnknownSubcommand() {
	data := s.handler.Execute(s.ctx, s.request("flee", nil))

	s.Contains(data.Content, "unknown subcommand")
}

func TestParseCustomID(t *testing.T) {
	tests := []struct {
		id      string
		want    *Request
		wantErr bool
	}{
		{id: "battle:attack:b-1", want: &Request{Subcommand: SubcommandAttack, BattleID: "b-1"}},
		{id: "battle:status:b-1", want: &Request{Subcommand: SubcommandStatus, BattleID: "b-1"}},
		{id: "battle:item:x-defense:b-1", want: &Request{Subcommand: SubcommandItem, BattleID: "b-1", Options: map[string]string{"item": "x-defense"}}},
		{id: "combat:attack:b-1", wantErr: true},
		{id: "battle:item:b-1", wantErr: true},
		{id: "battle:flee:b-1", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			got, err := parseCustomID(tt.id)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tt.id)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Subcommand != tt.want.Subcommand || got.BattleID != tt.want.BattleID || got.Options["item"] != tt.want.Options["item"] {
				t.Fatalf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}
