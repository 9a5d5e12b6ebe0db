package game

import (
	"fmt"
	"time"

	env "github.com/caarlos0/env/v11"
)

const (
	FrameDuration = time.Second / 60
	// terminals only report key presses, a key counts as held this long after its last press
	KeyHoldWindow = 250 * time.Millisecond

	SurfaceWidth  = 1200.0
	SurfaceHeight = 800.0

	DefaultGravity   = 0.5
	DefaultJumpPower = -10.0
	DefaultDx        = 5.0
	DefaultAvatarW   = 150.0
	DefaultAvatarH   = 150.0

	updateChannelSize = 1
	resetChannelSize  = 1
)

type AssetName string

const (
	AvatarAsset    AssetName = "avatar"
	GoalAsset      AssetName = "goal"
	MountainAsset  AssetName = "mountain"
	Mountain1Asset AssetName = "mountain_1"
	Mountain3Asset AssetName = "mountain_3"
)

// RequiredAssets must all load before a session loop may start.
var RequiredAssets = []AssetName{AvatarAsset, GoalAsset, MountainAsset, Mountain1Asset, Mountain3Asset}

var AssetColors = map[AssetName]string{
	AvatarAsset:    "214",
	GoalAsset:      "226",
	MountainAsset:  "101",
	Mountain1Asset: "137",
	Mountain3Asset: "95",
}

// Settings come from the environment, every field but LevelPath has a default.
type Settings struct {
	Host                string `env:"URKU_HOST" envDefault:"0.0.0.0"`
	Port                string `env:"URKU_PORT" envDefault:"6263"`
	PrivateKeyPath      string `env:"URKU_PRIVATE_KEY_PATH" envDefault:".ssh/urku_ed25519"`
	DBPath              string `env:"URKU_DB_PATH" envDefault:"journeys.db"`
	LevelPath           string `env:"URKU_LEVEL_PATH"`
	LogLevel            string `env:"URKU_LOG_LEVEL" envDefault:"info"`
	MaxConnectionsPerIP int    `env:"URKU_MAX_CONNECTIONS_PER_IP" envDefault:"2"`
}

const defaultMaxConnectionsPerIP = 2

func LoadSettings() (Settings, error) {
	return parseSettings(env.Options{})
}

// parseSettings reads opts.Environment when set and the process environment otherwise.
func parseSettings(opts env.Options) (Settings, error) {
	var settings Settings
	if err := env.ParseWithOptions(&settings, opts); err != nil {
		return Settings{}, fmt.Errorf("settings: %w", err)
	}
	if settings.MaxConnectionsPerIP <= 0 {
		settings.MaxConnectionsPerIP = defaultMaxConnectionsPerIP
	}
	return settings, nil
}
