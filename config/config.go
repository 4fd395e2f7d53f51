package config

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Server     Server
	Database   Database
	Proctoring Proctoring
}

type Server struct {
	Port string
}

type Database struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

// Proctoring holds the tunable thresholds for the weak cheating
// heuristic on answer submissions. An answer is flagged when its tab
// switch count or time spent is strictly greater than the threshold.
type Proctoring struct {
	MaxTabSwitches   int
	MaxAnswerSeconds int
}

func NewConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("PROCTORING_MAX_TAB_SWITCHES", 3)
	viper.SetDefault("PROCTORING_MAX_ANSWER_SECONDS", 600)

	if err := viper.ReadInConfig(); err != nil {
		log.Warn().Err(err).Msg("Error reading config file")
	}

	var config Config

	config.Server.Port = viper.GetString("SERVER_PORT")
	config.Database.Host = viper.GetString("DATABASE_HOST")
	config.Database.Port = viper.GetString("DATABASE_PORT")
	config.Database.User = viper.GetString("DATABASE_USER")
	config.Database.Password = viper.GetString("DATABASE_PASSWORD")
	config.Database.Name = viper.GetString("DATABASE_NAME")

	config.Proctoring.MaxTabSwitches = viper.GetInt("PROCTORING_MAX_TAB_SWITCHES")
	config.Proctoring.MaxAnswerSeconds = viper.GetInt("PROCTORING_MAX_ANSWER_SECONDS")

	log.Info().Str("port", config.Server.Port).Msg("Config loaded")
	return &config, nil
}
