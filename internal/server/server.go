package server

import (
	"log"
	"strings"
	"time"

	"github.com/weavr-net/weavr-server/internal/config"
	"github.com/weavr-net/weavr-server/internal/middleware"
	"github.com/weavr-net/weavr-server/pkg/storage"

	activityHttp "github.com/weavr-net/weavr-server/internal/modules/activity/delivery/http"
	activityRepo "github.com/weavr-net/weavr-server/internal/modules/activity/repository"
	activityService "github.com/weavr-net/weavr-server/internal/modules/activity/service"

	connectionHttp "github.com/weavr-net/weavr-server/internal/modules/connection/delivery/http"
	connectionRepo "github.com/weavr-net/weavr-server/internal/modules/connection/repository"
	connectionService "github.com/weavr-net/weavr-server/internal/modules/connection/service"

	goalHttp "github.com/weavr-net/weavr-server/internal/modules/goal/delivery/http"
	goalRepo "github.com/weavr-net/weavr-server/internal/modules/goal/repository"
	goalService "github.com/weavr-net/weavr-server/internal/modules/goal/service"

	groupHttp "github.com/weavr-net/weavr-server/internal/modules/group/delivery/http"
	groupRepo "github.com/weavr-net/weavr-server/internal/modules/group/repository"
	groupService "github.com/weavr-net/weavr-server/internal/modules/group/service"

	introductionHttp "github.com/weavr-net/weavr-server/internal/modules/introduction/delivery/http"
	introductionRepo "github.com/weavr-net/weavr-server/internal/modules/introduction/repository"
	introductionService "github.com/weavr-net/weavr-server/internal/modules/introduction/service"

	leaderboardHttp "github.com/weavr-net/weavr-server/internal/modules/leaderboard/delivery/http"
	leaderboardRepo "github.com/weavr-net/weavr-server/internal/modules/leaderboard/repository"
	leaderboardService "github.com/weavr-net/weavr-server/internal/modules/leaderboard/service"

	networkHttp "github.com/weavr-net/weavr-server/internal/modules/network/delivery/http"
	networkRepo "github.com/weavr-net/weavr-server/internal/modules/network/repository"
	networkService "github.com/weavr-net/weavr-server/internal/modules/network/service"

	notificationHttp "github.com/weavr-net/weavr-server/internal/modules/notification/delivery/http"
	notificationRepo "github.com/weavr-net/weavr-server/internal/modules/notification/repository"
	notificationService "github.com/weavr-net/weavr-server/internal/modules/notification/service"

	searchService "github.com/weavr-net/weavr-server/internal/modules/search/service"

	userHttp "github.com/weavr-net/weavr-server/internal/modules/user/delivery/http"
	userRepo "github.com/weavr-net/weavr-server/internal/modules/user/repository"
	userService "github.com/weavr-net/weavr-server/internal/modules/user/service"

	wisdomHttp "github.com/weavr-net/weavr-server/internal/modules/wisdom/delivery/http"
	wisdomRepo "github.com/weavr-net/weavr-server/internal/modules/wisdom/repository"
	wisdomService "github.com/weavr-net/weavr-server/internal/modules/wisdom/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/meilisearch/meilisearch-go"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Server struct {
	engine      *gin.Engine
	db          *gorm.DB
	redisClient *redis.Client
}

func NewServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *Server {
	users := userRepo.NewUserRepository(db)

	imageStorage, err := storage.NewCloudinaryStorage()
	if err != nil {
		log.Fatalf("failed to initialize cloudinary storage: %v", err)
	}

	meiliHost := cfg.MeiliSearchHost
	if !strings.HasPrefix(meiliHost, "http") {
		meiliHost = "http://" + meiliHost + ":7700"
	}
	meiliClient := meilisearch.New(meiliHost, meilisearch.WithAPIKey(cfg.MeiliMasterKey))
	wisdomSearch := searchService.NewWisdomSearch(meiliClient)

	userSvc := userService.NewUserService(users, imageStorage, cfg.JWTSecret, cfg.JWTTTL, cfg.CloudinaryUploadFolder)
	userHandler := userHttp.NewUserHandler(userSvc)

	goals := goalRepo.NewGoalRepository(db)
	goalSvc := goalService.NewGoalService(goals)
	goalHandler := goalHttp.NewGoalHandler(goalSvc)

	connections := connectionRepo.NewConnectionRepository(db)
	connectionSvc := connectionService.NewConnectionService(connections, users)
	connectionHandler := connectionHttp.NewConnectionHandler(connectionSvc)

	activities := activityRepo.NewActivityRepository(db)
	activitySvc := activityService.NewActivityService(activities)
	activityHandler := activityHttp.NewActivityHandler(activitySvc)

	notifications := notificationRepo.NewNotificationRepository(db)
	notificationSvc := notificationService.NewNotificationService(notifications, redisClient)
	notificationHandler := notificationHttp.NewNotificationHandler(notificationSvc, redisClient)

	introductions := introductionRepo.NewIntroductionRepository(db)
	introductionSvc := introductionService.NewIntroductionService(introductions, users, connections, activitySvc, notificationSvc)
	introductionHandler := introductionHttp.NewIntroductionHandler(introductionSvc)

	groups := groupRepo.NewGroupRepository(db)
	groupSvc := groupService.NewGroupService(groups)
	groupHandler := groupHttp.NewGroupHandler(groupSvc)

	graph := networkRepo.NewGraphRepository(db)
	networkSvc := networkService.NewNetworkService(graph)
	networkHandler := networkHttp.NewNetworkHandler(networkSvc)

	boards := leaderboardRepo.NewLeaderboardRepository(db)
	scores := leaderboardService.NewScoreSource(connections, introductions)
	var lease leaderboardService.RecomputeLease
	if redisClient != nil {
		lease = leaderboardService.NewRedisLease(redisClient)
	}
	leaderboardSvc := leaderboardService.NewLeaderboardService(boards, scores, lease)
	leaderboardHandler := leaderboardHttp.NewLeaderboardHandler(leaderboardSvc)

	articles := wisdomRepo.NewWisdomRepository(db)
	wisdomSvc := wisdomService.NewWisdomService(articles, wisdomSearch)
	wisdomHandler := wisdomHttp.NewWisdomHandler(wisdomSvc)

	router := gin.New()
	setupCORS(router, cfg)
	router.Use(gin.Recovery())
	router.Use(gin.Logger())

	authMiddleware := middleware.NewAuthMiddleware(users)

	api := router.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/register", userHandler.Register)
		auth.POST("/login", userHandler.Login)
	}

	protected := api.Group("")
	protected.Use(authMiddleware.RequireAuth())
	{
		// User routes
		protected.GET("/users", userHandler.ListUsers)
		protected.GET("/users/me", userHandler.GetMe)
		protected.PUT("/users/me", userHandler.UpdateMe)
		protected.DELETE("/users/me", userHandler.DeleteMe)
		protected.POST("/users/me/avatar", userHandler.UploadAvatar)
		protected.POST("/users/me/passions", userHandler.AttachPassion)
		protected.DELETE("/users/me/passions/:name", userHandler.DetachPassion)
		protected.GET("/users/:user_id", userHandler.GetUser)

		// Network analytics routes
		protected.GET("/users/:user_id/network/proximity", networkHandler.GetProximity)
		protected.GET("/users/:user_id/network/strength", networkHandler.GetConnectionStrength)
		protected.GET("/users/:user_id/network/suggested-connections", networkHandler.GetSuggestions)
		protected.GET("/users/:user_id/network/connected", connectionHandler.CheckConnectionBetween)
		protected.GET("/users/:user_id/network/rank", leaderboardHandler.GetRankFor)
		protected.GET("/users/:user_id/network/streak", activityHandler.GetStreakFor)
		protected.PUT("/users/:user_id/network/streak", activityHandler.RecordStreakFor)
		protected.POST("/users/:user_id/points/:action", activityHandler.AwardPointsFor)

		// Goal routes
		protected.POST("/goals", goalHandler.CreateGoal)
		protected.GET("/goals", goalHandler.GetMyGoals)
		protected.PUT("/goals/:id", goalHandler.UpdateGoal)
		protected.DELETE("/goals/:id", goalHandler.DeleteGoal)

		// Connection routes
		protected.POST("/connections", connectionHandler.Connect)
		protected.GET("/connections", connectionHandler.GetMyConnections)
		protected.GET("/connections/:id/status", connectionHandler.CheckConnection)
		protected.DELETE("/connections/:id", connectionHandler.Disconnect)

		// Introduction routes
		protected.POST("/introductions", introductionHandler.CreateIntroduction)
		protected.GET("/introductions/sent", introductionHandler.GetSent)
		protected.GET("/introductions/received", introductionHandler.GetReceived)
		protected.PUT("/introductions/:id/status", introductionHandler.UpdateStatus)

		// Group routes
		protected.POST("/groups", groupHandler.CreateGroup)
		protected.GET("/groups", groupHandler.ListGroups)
		protected.GET("/groups/:id", groupHandler.GetGroup)
		protected.DELETE("/groups/:id", groupHandler.DeleteGroup)
		protected.POST("/groups/:id/join", groupHandler.JoinGroup)
		protected.POST("/groups/:id/leave", groupHandler.LeaveGroup)
		protected.GET("/groups/:id/members", groupHandler.GetMembers)

		// Leaderboard routes
		protected.GET("/leaderboards", leaderboardHandler.ListLeaderboards)
		protected.GET("/leaderboards/:id", leaderboardHandler.GetLeaderboard)
		protected.POST("/leaderboards/:id/join", leaderboardHandler.JoinLeaderboard)
		protected.POST("/leaderboards/:id/recompute", leaderboardHandler.Recompute)
		protected.GET("/leaderboards/:id/rank", leaderboardHandler.GetMyRank)

		adminBoards := protected.Group("/leaderboards")
		adminBoards.Use(authMiddleware.RequireSuperuser())
		{
			adminBoards.POST("", leaderboardHandler.CreateLeaderboard)
			adminBoards.DELETE("/:id", leaderboardHandler.DeleteLeaderboard)
		}

		// Activity routes
		protected.GET("/activity/streak", activityHandler.GetStreak)
		protected.POST("/activity/record", activityHandler.RecordActivity)
		protected.POST("/activity/points", activityHandler.AwardPoints)
		protected.GET("/activity/points/total", activityHandler.GetPointsTotal)
		protected.GET("/activity/points/history", activityHandler.GetPointsHistory)

		// Wisdom routes
		protected.POST("/wisdom", wisdomHandler.CreateWisdom)
		protected.GET("/wisdom", wisdomHandler.ListWisdom)
		protected.GET("/wisdom/search", wisdomHandler.ListWisdom)
		protected.GET("/wisdom/search-token", wisdomHandler.SearchToken)
		protected.GET("/wisdom/:id", wisdomHandler.GetWisdom)
		protected.PUT("/wisdom/:id", wisdomHandler.UpdateWisdom)
		protected.DELETE("/wisdom/:id", wisdomHandler.DeleteWisdom)
		protected.POST("/wisdom/:id/vote", wisdomHandler.Vote)

		// Notification routes
		protected.GET("/notifications", notificationHandler.GetNotifications)
		protected.GET("/notifications/unread-count", notificationHandler.UnreadCount)
		protected.PUT("/notifications/:id/read", notificationHandler.MarkAsRead)
		protected.PUT("/notifications/read-all", notificationHandler.MarkAllAsRead)
		protected.GET("/notifications/ws", notificationHandler.HandleWebSocket)
	}

	return &Server{
		engine:      router,
		db:          db,
		redisClient: redisClient,
	}
}

func (s *Server) Run(addr string) error {
	return s.engine.Run(addr)
}

func setupCORS(router *gin.Engine, cfg *config.Config) {
	origins := strings.Split(cfg.AllowedOrigins, ",")

	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}
