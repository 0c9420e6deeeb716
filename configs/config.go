package config

import (
	"os"
	"strconv"
)

type R2 struct {
	AccountID     string
	AccessKey     string
	SecretKey     string
	BucketName    string
	PublicBaseURL string
}

type Scheduler struct {
	MaxVideosPerDay      int
	DayStartHour         int
	DayEndHour           int
	GoodIntervalMinutes  int
	TightIntervalMinutes int
}

type Tasks struct {
	PayoutCents         int64
	ClaimTimeoutMinutes int
	MaxAttempts         int
}

type Config struct {
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURI  string
	PostgresURI        string
	DatabaseName       string
	RedisURI           string
	FrontendURL        string
	R2                 R2
	Scheduler          Scheduler
	Tasks              Tasks
	SecretKey          string
	CookieName         string
}

func LoadConfig() *Config {
	return &Config{
		GoogleClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
		GoogleRedirectURI:  getEnv("GOOGLE_REDIRECT_URI", "http://localhost:3000/login/callback"),
		PostgresURI:        getEnv("POSTGRES_URI", ""),
		DatabaseName:       getEnv("DATABASE_NAME", ""),
		RedisURI:           getEnv("REDIS_URI", ""),
		FrontendURL:        getEnv("FRONTEND_URL", "http://localhost:5173"),
		R2: R2{
			AccountID:     getEnv("R2_ACCOUNT_ID", ""),
			AccessKey:     getEnv("R2_ACCESS_KEY", ""),
			SecretKey:     getEnv("R2_SECRET_KEY", ""),
			BucketName:    getEnv("R2_BUCKET_NAME", ""),
			PublicBaseURL: getEnv("R2_PUBLIC_BASE_URL", ""),
		},
		Scheduler: Scheduler{
			MaxVideosPerDay:      getEnvInt("SCHEDULER_MAX_VIDEOS_PER_DAY", 10),
			DayStartHour:         getEnvInt("SCHEDULER_DAY_START_HOUR", 6),
			DayEndHour:           getEnvInt("SCHEDULER_DAY_END_HOUR", 23),
			GoodIntervalMinutes:  getEnvInt("SCHEDULER_GOOD_INTERVAL_MINUTES", 90),
			TightIntervalMinutes: getEnvInt("SCHEDULER_TIGHT_INTERVAL_MINUTES", 45),
		},
		Tasks: Tasks{
			PayoutCents:         int64(getEnvInt("TASK_PAYOUT_CENTS", 25)),
			ClaimTimeoutMinutes: getEnvInt("TASK_CLAIM_TIMEOUT_MINUTES", 15),
			MaxAttempts:         getEnvInt("TASK_MAX_ATTEMPTS", 3),
		},
		SecretKey:  getEnv("SECRET_KEY", ""),
		CookieName: getEnv("COOKIE_NAME", ""),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
