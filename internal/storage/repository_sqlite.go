package storage

import (
	"time"

	"github.com/Moutabir-omar/MA-Orangegame/internal/game"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type sqliteRepository struct {
	db *gorm.DB
	// publicGamesTTL bounds how long an open lobby stays listed.
	publicGamesTTL time.Duration
}

func NewSQLiteRepository(db *gorm.DB, publicGamesTTL time.Duration) Repository {
	return &sqliteRepository{db: db, publicGamesTTL: publicGamesTTL}
}

func (r *sqliteRepository) CreateGame(g *game.Game) error {
	return r.db.Create(g).Error
}

func (r *sqliteRepository) GetGameByID(id uint) (*game.Game, error) {
	var g game.Game
	err := r.db.
		Preload("Players", func(db *gorm.DB) *gorm.DB { return db.Order("game_players.id") }).
		Preload("Players.Rounds", func(db *gorm.DB) *gorm.DB { return db.Order("player_rounds.round") }).
		First(&g, id).Error
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *sqliteRepository) FindGameByJoinCode(code string) (*game.Game, error) {
	var g game.Game
	err := r.db.Preload("Players").Where("join_code = ?", code).First(&g).Error
	return &g, err
}

func (r *sqliteRepository) UpdateGame(g *game.Game) error {
	return r.db.Session(&gorm.Session{FullSaveAssociations: true}).Save(g).Error
}

func (r *sqliteRepository) GetPublicGames() ([]game.Game, error) {
	var games []game.Game
	cutoff := time.Now().Add(-r.publicGamesTTL)
	err := r.db.Preload("Players").
		Where("private = ? AND status = ? AND created_at > ?", false, game.StatusWaitingForPlayers, cutoff).
		Order("created_at desc").
		Find(&games).Error
	if err != nil {
		return nil, err
	}
	// Only list lobbies that still have a free role.
	filtered := make([]game.Game, 0, len(games))
	for i := range games {
		if len(games[i].Players) < len(game.Roles) {
			filtered = append(filtered, games[i])
		}
	}
	return filtered, nil
}

func (r *sqliteRepository) FindTimedOutGames(now time.Time) ([]game.Game, error) {
	var games []game.Game
	err := r.db.
		Where("status = ? AND phase = ? AND action_deadline <> ? AND action_deadline <= ?",
			game.StatusInProgress, game.PhaseCollecting, time.Time{}, now).
		Find(&games).Error
	return games, err
}

func (r *sqliteRepository) RemovePlayerByEmail(gameID uint, email string) error {
	tx := r.db.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	var p game.Player
	if err := tx.Where("game_id = ? AND player_email = ? AND is_ai = ?", gameID, email, false).
		First(&p).Error; err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Where("player_id = ?", p.ID).Delete(&game.PlayerRound{}).Error; err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Delete(&p).Error; err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit().Error
}

// AppendOrder keeps the first fact for a (game, player, round) key and
// ignores re-appends, so a round commit retried after a storage failure
// does not trip the unique index on rows that already landed.
func (r *sqliteRepository) AppendOrder(o *game.PlayerOrder) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "game_id"}, {Name: "player_id"}, {Name: "round"}},
		DoNothing: true,
	}).Create(o).Error
}

func (r *sqliteRepository) GetOrdersForGame(gameID uint) ([]game.PlayerOrder, error) {
	var orders []game.PlayerOrder
	err := r.db.Where("game_id = ?", gameID).
		Order("round").Order("role").
		Find(&orders).Error
	return orders, err
}

func (r *sqliteRepository) UpsertUser(email, uuid, name string) error {
	var u game.User
	if err := r.db.Where("email = ?", email).First(&u).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			u = game.User{Email: email, PlayerUUID: uuid, PlayerName: name}
		} else {
			return err
		}
	}
	if name != "" {
		u.PlayerName = name
	}
	if uuid != "" {
		u.PlayerUUID = uuid
	}
	return r.db.Save(&u).Error
}

func (r *sqliteRepository) GetStatsByEmail(email string) (*game.User, error) {
	var u game.User
	if err := r.db.Where("email = ?", email).First(&u).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return &game.User{Email: email}, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *sqliteRepository) SaveUser(u *game.User) error {
	return r.db.Save(u).Error
}

// GetTopPlayers returns the leaderboard: most completed games first, then
// lowest best total cost.
func (r *sqliteRepository) GetTopPlayers(limit int) ([]game.User, error) {
	if limit <= 0 {
		limit = 10
	}
	var users []game.User
	err := r.db.Model(&game.User{}).
		Where("games_completed > 0").
		Order("games_completed DESC").
		Order("best_total_cost ASC").
		Limit(limit).
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (r *sqliteRepository) UpdateStatsOnGameEnd(g *game.Game) error {
	completed := g.Status == game.StatusCompleted
	for i := range g.Players {
		p := &g.Players[i]
		if p.IsAI || p.PlayerEmail == "" {
			continue
		}
		var u game.User
		if err := r.db.Where("email = ?", p.PlayerEmail).First(&u).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				u = game.User{Email: p.PlayerEmail, PlayerUUID: p.PlayerUUID, PlayerName: p.PlayerName}
			} else {
				return err
			}
		}
		u.GamesPlayed++
		if completed {
			u.GamesCompleted++
			u.TotalCost += p.CumulativeCost
			if u.BestTotalCost == 0 || p.CumulativeCost < u.BestTotalCost {
				u.BestTotalCost = p.CumulativeCost
			}
		}
		if err := r.db.Save(&u).Error; err != nil {
			return err
		}
	}
	return nil
}
