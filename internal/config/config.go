package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App       App       `mapstructure:",squash"`
	Server    Server    `mapstructure:",squash"`
	Dataset   Dataset   `mapstructure:",squash"`
	Dashboard Dashboard `mapstructure:",squash"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
	Debug    bool   `mapstructure:"debug"`
}

type Server struct {
	Host            string        `mapstructure:"host"`
	Port            string        `mapstructure:"port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	AllowedOrigins  []string      `mapstructure:"cors_allowed_origins"`
}

type Dataset struct {
	Path string `mapstructure:"dataset_path"`
}

type Dashboard struct {
	Title          string `mapstructure:"dashboard_title"`
	PlotlyURL      string `mapstructure:"plotly_url"`
	SnapshotWidth  int    `mapstructure:"snapshot_width"`
	SnapshotHeight int    `mapstructure:"snapshot_height"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8050)
	viper.SetDefault("SHUTDOWN_TIMEOUT", "15s")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "")

	viper.SetDefault("DATASET_PATH", "ecommerce_estatistica.csv")

	viper.SetDefault("DASHBOARD_TITLE", "Estatísticas de E-commerce")
	viper.SetDefault("PLOTLY_URL", "https://cdn.plot.ly/plotly-2.35.2.min.js")
	viper.SetDefault("SNAPSHOT_WIDTH", 1024)
	viper.SetDefault("SNAPSHOT_HEIGHT", 576)

	// Modo debug ligado por padrão
	viper.SetDefault("DEBUG", true)
	viper.SetDefault("LOG_LEVEL", "info")
}

func NewConfig() (*Config, error) {
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Debug("Usando apenas variáveis de ambiente e valores padrão (viper não conseguiu ler .env): ", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	// Modo debug força logs detalhados
	if config.App.Debug {
		config.App.LogLevel = logrus.DebugLevel.String()
	}

	config.Server.AllowedOrigins = compact(config.Server.AllowedOrigins)

	return config, nil
}

// Address retorna o endereço host:porta do servidor
func (s Server) Address() string {
	return s.Host + ":" + s.Port
}

func compact(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),               // Diretório atual
		filepath.Join(filepath.Dir(cwd), ".env"), // Diretório pai
	}

	for _, location := range locations {
		logrus.Debug("Tentando carregar .env de:", location)
		if err := godotenv.Load(location); err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Debug("Nenhum arquivo .env encontrado, seguindo com variáveis de ambiente")
}
