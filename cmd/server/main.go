package main

import (
	"log"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/weavr-net/weavr-server/internal/config"
	"github.com/weavr-net/weavr-server/internal/entity"
	"github.com/weavr-net/weavr-server/internal/server"
	"github.com/weavr-net/weavr-server/pkg/database"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db := database.Connect()

	if err := migrate(db); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	if err := seedLeaderboards(db); err != nil {
		log.Fatalf("failed to seed leaderboards: %v", err)
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Printf("invalid REDIS_URL, running without redis: %v", err)
		} else {
			redisClient = redis.NewClient(opts)
		}
	}

	srv := server.NewServer(cfg, db, redisClient)

	log.Printf("listening on :%s", cfg.Port)
	if err := srv.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&entity.User{},
		&entity.Passion{},
		&entity.Goal{},
		&entity.Connection{},
		&entity.Introduction{},
		&entity.Group{},
		&entity.GroupMembership{},
		&entity.Leaderboard{},
		&entity.LeaderboardEntry{},
		&entity.UserActivity{},
		&entity.UserPointLog{},
		&entity.WeavrWisdom{},
		&entity.Notification{},
	)
}

// seedLeaderboards makes sure the two built-in boards exist. Their criteria
// are the only ones the recompute engine understands.
func seedLeaderboards(db *gorm.DB) error {
	defaults := []entity.Leaderboard{
		{Name: "Weavr Reputation", Criteria: entity.CriteriaWeavrReputation},
		{Name: "Top Introducers", Criteria: entity.CriteriaIntroductionsMade},
	}

	for _, board := range defaults {
		var existing entity.Leaderboard
		err := db.Where("name = ?", board.Name).First(&existing).Error
		if err == nil {
			continue
		}
		if err != gorm.ErrRecordNotFound {
			return err
		}
		if err := db.Create(&board).Error; err != nil {
			return err
		}
	}
	return nil
}
