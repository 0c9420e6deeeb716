package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	config "clipflow/configs"
	"clipflow/internal/api/handlers"
	"clipflow/internal/api/middleware"
	job "clipflow/internal/jobs"
	"clipflow/internal/queue"
	"clipflow/internal/repository"
	"clipflow/internal/scheduler"
	"clipflow/internal/service"
	"github.com/robfig/cron"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Failed to load environment variables", err)
	}

	cfg := config.LoadConfig()

	db, err := sql.Open("postgres", cfg.PostgresURI)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer closeDB(db)

	if err := db.Ping(); err != nil {
		log.Fatalf("Database is unreachable: %v", err)
	}

	redisConn := asynq.RedisClientOpt{Addr: cfg.RedisURI}
	client := asynq.NewClient(redisConn)
	defer client.Close()

	app := fiber.New(fiber.Config{
		ReadTimeout:  10 * time.Minute,
		WriteTimeout: 10 * time.Minute,
		BodyLimit:    100 * 1024 * 1024, // 100 MB
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		},
	})

	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOriginsFunc: func(origin string) bool {
			return true
		},
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           3600,
	}))

	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	mediaAssetRepo := repository.NewMediaAssetRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	apiKeyRepo := repository.NewApiKeyRepository(db)
	subscriptionRepo := repository.NewSubscriptionRepository(db)
	workerRepo := repository.NewWorkerRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	receiptRepo := repository.NewTaskReceiptRepository(db)

	sched := scheduler.New(scheduler.Config{
		MaxVideosPerDay:      cfg.Scheduler.MaxVideosPerDay,
		DayStartHour:         cfg.Scheduler.DayStartHour,
		DayEndHour:           cfg.Scheduler.DayEndHour,
		GoodIntervalMinutes:  cfg.Scheduler.GoodIntervalMinutes,
		TightIntervalMinutes: cfg.Scheduler.TightIntervalMinutes,
	})

	authService := service.NewAuthService(*cfg, userRepo)
	userService := service.NewUserService(userRepo)
	r2Service := service.NewR2Service(*cfg)
	mediaService := service.NewMediaService(*cfg, mediaAssetRepo, *r2Service)
	settingsService := service.NewSettingsService(settingsRepo)
	apiKeyService := service.NewApiKeyService(apiKeyRepo)
	subscriptionService := service.NewSubscriptionService(*cfg, userRepo, subscriptionRepo)
	batchService := service.NewBatchService(db, sched, postRepo, mediaAssetRepo, settingsRepo, subscriptionService)
	postService := service.NewPostService(postRepo)
	workerService := service.NewWorkerService(*cfg, workerRepo)
	taskService := service.NewTaskService(*cfg, db, taskRepo, postRepo, workerRepo, settingsRepo, mediaAssetRepo, receiptRepo)

	authMiddleware := middleware.NewAuthMiddleware(*cfg, apiKeyService)

	auth := handlers.NewAuthHandler(*cfg, authService)
	app.Get("/login", auth.Login)
	app.Get("/login/callback", auth.LoginCallbackHandler)

	payment := handlers.NewPaymentHandler(subscriptionService)
	app.Post("/webhook/payment", payment.PaymentWebhook)

	api := app.Group("/api")
	api.Use(authMiddleware.AuthMiddleware())

	user := handlers.NewUserHandler(userService)
	api.Get("/user/info", user.GetUserInfo)
	api.Post("/user/remove", user.RemoveUser)

	settings := handlers.NewSettingsHandler(settingsService)
	api.Get("/settings/info", settings.GetSettingsInfo)
	api.Post("/settings/update", settings.UpdateSettings)

	apiKeys := handlers.NewApiKeyHandler(apiKeyService)
	api.Post("/api_key/new", apiKeys.CreateApiKey)
	api.Get("/api_key/list", apiKeys.ListKeys)
	api.Post("/api_key/remove", apiKeys.RemoveAPIKey)

	video := handlers.NewVideoHandler(mediaService)
	api.Post("/videos/upload", video.UploadVideos)
	api.Get("/videos", video.ListVideos)
	api.Post("/videos/remove", video.RemoveVideo)

	batch := handlers.NewBatchHandler(batchService, client)
	api.Post("/batches/preview", batch.PreviewBatch)
	api.Post("/batches/create", batch.CreateBatch)

	post := handlers.NewPostHandler(postService)
	api.Get("/posts", post.ListPosts)
	api.Post("/posts/cancel", post.CancelPost)
	api.Post("/posts/remove", post.RemovePost)

	worker := handlers.NewWorkerHandler(workerService)
	api.Post("/workers/register", worker.RegisterWorker)
	api.Get("/workers", worker.ListWorkers)
	api.Post("/workers/heartbeat", worker.Heartbeat)
	api.Post("/workers/status", worker.SetWorkerStatus)
	api.Post("/workers/remove", worker.RemoveWorker)

	task := handlers.NewTaskHandler(taskService)
	api.Get("/tasks/next", task.NextTask)
	api.Post("/tasks/complete", task.CompleteTask)
	api.Get("/tasks/receipts", task.ListReceipts)

	// cron jobs
	taskReaperJob := job.NewTaskReaperJob(taskService)

	//queue
	queueW := queue.NewQueue(taskService)

	c := cron.New()
	c.AddFunc("@every 00h05m00s", taskReaperJob.ReapExpiredClaims)
	c.AddFunc("@every 00h05m00s", taskReaperJob.ReopenOverduePosts)
	c.Start()

	go func() {
		server := asynq.NewServer(redisConn, asynq.Config{
			Concurrency: 10,
		})

		mux := asynq.NewServeMux()
		mux.HandleFunc(queue.TaskTypePublishPost, queueW.HandlePublishPostTask)

		log.Println("Starting the Asynq server...")
		if err := server.Run(mux); err != nil {
			log.Fatalf("Could not start Asynq server: %v", err)
		}
	}()

	go func() {
		if err := app.Listen(":3000"); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()
	log.Println("Server is running on http://localhost:3000")

	gracefulShutdown(app, db)
}

func closeDB(db *sql.DB) {
	fmt.Fprint(os.Stdout, "Closing database connection... ")
	if err := db.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to close database: %v", err)
		return
	}
	fmt.Fprintln(os.Stdout, "Done")
}

func gracefulShutdown(app *fiber.App, db *sql.DB) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Fatalf("Failed to shut down server: %v", err)
	}

	closeDB(db)
	log.Println("Server shutdown complete.")
}
