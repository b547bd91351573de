package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"partygo/backend/internal/api/handler"
	"partygo/backend/internal/chathub"
	"partygo/backend/internal/config"
	"partygo/backend/internal/match"
	"partygo/backend/internal/models"
	"partygo/backend/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupDependencies(cfg config.Config) (*gorm.DB, *redis.Client) {
	db, err := gorm.Open(postgres.Open(cfg.PostgresDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect PostgreSQL: %v", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx := context.Background()
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect Redis: %v", err)
	}

	err = db.AutoMigrate(
		&models.Party{},
		&models.User{},
		&models.UserProfile{},
		&models.PartyUserInfo{},
		&models.ChatRoom{},
		&models.Chat{},
		&models.ChatReadStatus{},
		&models.MatchProposal{},
	)
	if err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Database and Redis connections established, migrations complete.")
	return db, rdb
}

func main() {
	log.Println("Starting PartyGo Backend...")

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Error loading .env file")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, rdb := setupDependencies(cfg)
	s := storage.NewStorageService(db, rdb)

	registry := chathub.NewRegistry()
	hub := chathub.NewHub(registry, s)
	resolver := match.NewResolver(s)

	go hub.Run()
	hub.StartPubSubListener()

	r := gin.Default()
	h := handler.NewHandler(hub, s, resolver, cfg.JWTSecret)

	r.GET("/auth/token", h.GetToken)
	r.GET("/ws/:chatRoom_id", h.ServeWebSocket)

	user := r.Group("/user")
	{
		user.POST("/chat", h.CreateChat)
		user.POST("/chatContents", h.ChatContents)
		user.POST("/lastReadChat", h.LastReadChat)
		user.POST("/chatRoom", h.CreateChatRoom)
		user.POST("/chatRooms", h.ChatRooms)
		user.GET("/matchUserList", h.MatchUserList)
		user.POST("/matchSelect", h.MatchSelect)
		user.GET("/matchConfirm", h.MatchConfirm)
		user.GET("/matchSelect/:party_id", h.MatchResolve)
		user.GET("/party/matchTime/:id", h.PartyMatchTime)
	}

	manager := r.Group("/manager")
	{
		manager.POST("/party", h.CreateParty)
		manager.PUT("/party/open/:id", h.PartyOpen)
		manager.PUT("/party/matchStart/:id", h.PartyMatchStart)
	}

	server := &http.Server{
		Addr:           cfg.HTTPAddr,
		Handler:        r,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	log.Fatal(server.ListenAndServe())
}
