package main

import "time"

type Config struct {
	Host                      string        `env:"HOST,default=localhost"`
	Port                      int           `env:"PORT,default=8080"`
	LogLevel                  string        `env:"LOG_LEVEL,default=info"`
	BadgerFilepath            string        `env:"BADGER_FILEPATH,required=true"`
	AuthTokenSecret           string        `env:"AUTH_TOKEN_SECRET,required=true"`
	AuthTokenDuration         time.Duration `env:"AUTH_TOKEN_DURATION,default=24h"`
	HistoryLimit              int           `env:"HISTORY_LIMIT,default=50"`
	RestartInterval           time.Duration `env:"RESTART_INTERVAL,default=5s"`
	GCInterval                time.Duration `env:"GC_INTERVAL,default=10m"`
	HealthInterval            time.Duration `env:"HEALTH_INTERVAL,default=1m"`
	ModerationWordsPath       string        `env:"MODERATION_WORDS_PATH"`
	ModerationCharReplacement string        `env:"MODERATION_CHARACTER_REPLACEMENT,default=*"`
	ShutdownTimeout           time.Duration `env:"SHUTDOWN_TIMEOUT,default=10s"`
}
