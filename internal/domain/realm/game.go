package realm

import "log/slog"

// Game binds an Engine to one State and exposes the boolean-returning surface
// used by interactive hosts. Rejections are logged at debug level and leave
// the state untouched.
type Game struct {
	engine Engine
	state  *State
}

func NewGame(engine Engine) *Game {
	return &Game{engine: engine, state: engine.NewGame()}
}

// LoadGame restores snap, reinitializing when it does not validate.
func LoadGame(engine Engine, snap Snapshot) (*Game, error) {
	s, err := engine.Restore(snap)
	if err != nil {
		slog.Warn("persisted game rejected, starting a new one", "err", err)
		return NewGame(engine), err
	}
	return &Game{engine: engine, state: s}, nil
}

func (g *Game) Engine() Engine {
	return g.engine
}

func (g *Game) Tick(dtMillis float64) TickResult {
	return g.engine.Tick(g.state, dtMillis)
}

func (g *Game) AcquireParcel(x, y int, biome BiomeKind) bool {
	_, err := g.engine.AcquireParcel(g.state, x, y, biome)
	return g.accepted("acquire_parcel", err, "x", x, "y", y, "biome", biome)
}

func (g *Game) UpgradeCastle() bool {
	_, err := g.engine.UpgradeCastle(g.state)
	return g.accepted("upgrade_castle", err)
}

func (g *Game) AllocateStatPoint(stat StatKey) bool {
	return g.accepted("allocate_stat", g.engine.AllocateStatPoint(g.state, stat), "stat", stat)
}

// SellResources returns the gold gained, or 0 when the sale was rejected.
func (g *Game) SellResources(kind ResourceKind, amount float64) float64 {
	gained, err := g.engine.SellResources(g.state, kind, amount)
	if !g.accepted("sell", err, "kind", kind, "amount", amount) {
		return 0
	}
	return gained
}

func (g *Game) BuyResources(kind ResourceKind, amount float64) bool {
	_, err := g.engine.BuyResources(g.state, kind, amount)
	return g.accepted("buy", err, "kind", kind, "amount", amount)
}

func (g *Game) PurchaseOrUpgradeAnimal(id AnimalID) bool {
	_, err := g.engine.PurchaseOrUpgradeAnimal(g.state, id)
	return g.accepted("purchase_animal", err, "animal", id)
}

func (g *Game) ConvertGrounds(x, y int, building BiomeKind) bool {
	_, err := g.engine.ConvertGrounds(g.state, x, y, building)
	return g.accepted("convert_grounds", err, "x", x, "y", y, "building", building)
}

func (g *Game) SetPlayerName(name string) bool {
	_, err := g.engine.SetPlayerName(g.state, name)
	return g.accepted("set_name", err)
}

func (g *Game) accepted(action string, err error, attrs ...any) bool {
	if err == nil {
		return true
	}
	slog.Debug("action rejected", append([]any{"action", action, "err", err}, attrs...)...)
	return false
}

func (g *Game) Grid() Grid {
	return g.state.Grid.Clone()
}

func (g *Game) Resources() Resources {
	return g.state.Resources
}

func (g *Game) Rates() ResourceRates {
	return g.state.Rates
}

func (g *Game) Level() LevelState {
	return g.state.Level
}

func (g *Game) Stats() CharacterStats {
	return g.state.Stats
}

func (g *Game) FarmLevels() FarmLevels {
	return g.state.Farm.Clone()
}

func (g *Game) PlayerName() string {
	return g.state.PlayerName
}

func (g *Game) View() View {
	return g.engine.View(g.state)
}

func (g *Game) Snapshot() Snapshot {
	return g.engine.Snapshot(g.state)
}
