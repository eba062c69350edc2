package cli

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config は empctl の接続設定です。設定ファイル (config.yaml) と
// EMPCTL_ プレフィックスの環境変数から読み込みます。
type Config struct {
	ServerURL string
	StateDir  string
}

// LoadConfig は viper 経由でクライアント設定を読み込みます。設定
// ファイルが無い場合は既定値を使います。
func LoadConfig() (Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	defaultStateDir := ""
	if dir, err := os.UserConfigDir(); err == nil {
		defaultStateDir = filepath.Join(dir, "empctl")
		v.AddConfigPath(defaultStateDir)
	}
	v.AddConfigPath(".")

	v.SetEnvPrefix("EMPCTL")
	v.AutomaticEnv()

	v.SetDefault("server_url", "http://localhost:8080")
	v.SetDefault("state_dir", defaultStateDir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, err
		}
	}

	cfg := Config{
		ServerURL: v.GetString("server_url"),
		StateDir:  v.GetString("state_dir"),
	}
	if cfg.StateDir == "" {
		cfg.StateDir = ".empctl"
	}

	return cfg, nil
}
