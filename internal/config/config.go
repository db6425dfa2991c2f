package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/JonnyRank/bigdataball-data/internal/platform/logging"
	"github.com/JonnyRank/bigdataball-data/internal/platform/resilience"
)

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
)

type Config struct {
	AppEnv         string
	ServiceName    string
	ServiceVersion string

	LogLevel  logging.Level
	LogFormat logging.Format
	LogFile   string

	DBDriver      string
	DBURL         string
	DBAutoMigrate bool

	DataDir       string
	Fantasy       Folders
	Player        Folders
	ColumnMapFile string
	CSVExportDir  string

	MatchThreshold     int
	TrailingWindowDays int

	SlateEntriesPath   string
	SlatePriorSeason   string
	SlateCurrentSeason string
	SlateMinPriorGP    int

	DriveEnabled         bool
	DriveCredentialsFile string
	DriveTokenFile       string
	DriveTimeout         time.Duration
	DriveMaxWorkers      int
	DriveBreaker         resilience.CircuitBreakerConfig
	DriveJobs            []DatasetJob

	NotifyEnabled bool
	NotifyURLs    []string
	NotifyTimeout time.Duration

	HTTPAddr         string
	HTTPReadTimeout  time.Duration
	InternalJobToken string

	UptraceEnabled bool
	UptraceDSN     string

	PyroscopeEnabled       bool
	PyroscopeServerAddress string
	PyroscopeUploadRate    time.Duration
}

// Folders is the incoming/archive pair of one log category.
type Folders struct {
	Incoming string
	Archive  string
}

// DatasetJob describes one remote feed to mirror into a local folder.
type DatasetJob struct {
	Name        string `validate:"required"`
	FolderID    string `validate:"required"`
	Match       string `validate:"required"`
	Destination string `validate:"required"`
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	logFormat := logging.FormatConsole
	if appEnv != EnvDev {
		logFormat = logging.FormatJSON
	}
	if raw := strings.TrimSpace(getEnv("APP_LOG_FORMAT", "")); raw != "" {
		logFormat, err = parseLogFormat(raw)
		if err != nil {
			return Config{}, err
		}
	}

	dataDir := filepath.Clean(getEnv("DATA_DIR", "data"))

	dbDriver, err := parseDBDriver(getEnv("DB_DRIVER", DriverSQLite))
	if err != nil {
		return Config{}, err
	}
	dbURL := strings.TrimSpace(getEnv("DB_URL", ""))
	if dbURL == "" {
		if dbDriver == DriverPostgres {
			return Config{}, fmt.Errorf("DB_URL is required when DB_DRIVER=%s", DriverPostgres)
		}
		dbURL = filepath.Join(dataDir, "nba_fantasy_logs.db")
	}
	dbAutoMigrate, err := strconv.ParseBool(getEnv("DB_AUTO_MIGRATE", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse DB_AUTO_MIGRATE: %w", err)
	}

	matchThreshold, err := getEnvAsInt("MATCH_THRESHOLD", 90)
	if err != nil {
		return Config{}, fmt.Errorf("parse MATCH_THRESHOLD: %w", err)
	}
	if matchThreshold < 0 || matchThreshold > 100 {
		return Config{}, fmt.Errorf("MATCH_THRESHOLD must be between 0 and 100")
	}

	trailingWindowDays, err := getEnvAsInt("TRAILING_WINDOW_DAYS", 30)
	if err != nil {
		return Config{}, fmt.Errorf("parse TRAILING_WINDOW_DAYS: %w", err)
	}
	if trailingWindowDays <= 0 {
		return Config{}, fmt.Errorf("TRAILING_WINDOW_DAYS must be > 0")
	}

	slateMinPriorGP, err := getEnvAsInt("SLATE_MIN_PRIOR_GP", 20)
	if err != nil {
		return Config{}, fmt.Errorf("parse SLATE_MIN_PRIOR_GP: %w", err)
	}
	if slateMinPriorGP < 0 {
		return Config{}, fmt.Errorf("SLATE_MIN_PRIOR_GP must be >= 0")
	}

	driveEnabled, err := strconv.ParseBool(getEnv("DRIVE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse DRIVE_ENABLED: %w", err)
	}
	driveTimeout, err := time.ParseDuration(getEnv("DRIVE_TIMEOUT", "60s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse DRIVE_TIMEOUT: %w", err)
	}
	if driveTimeout <= 0 {
		return Config{}, fmt.Errorf("DRIVE_TIMEOUT must be > 0")
	}
	driveMaxWorkers, err := getEnvAsInt("DRIVE_MAX_WORKERS", 1)
	if err != nil {
		return Config{}, fmt.Errorf("parse DRIVE_MAX_WORKERS: %w", err)
	}
	if driveMaxWorkers <= 0 {
		return Config{}, fmt.Errorf("DRIVE_MAX_WORKERS must be > 0")
	}
	breakerThreshold, err := getEnvAsInt("DRIVE_CB_FAILURE_THRESHOLD", 3)
	if err != nil {
		return Config{}, fmt.Errorf("parse DRIVE_CB_FAILURE_THRESHOLD: %w", err)
	}
	breakerOpenTimeout, err := time.ParseDuration(getEnv("DRIVE_CB_OPEN_TIMEOUT", "30s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse DRIVE_CB_OPEN_TIMEOUT: %w", err)
	}

	fantasy := Folders{
		Incoming: getEnv("FANTASY_INCOMING_DIR", filepath.Join(dataDir, "Daily_Fantasy_Logs")),
		Archive:  getEnv("FANTASY_ARCHIVE_DIR", filepath.Join(dataDir, "Archived_Fantasy_Logs")),
	}
	player := Folders{
		Incoming: getEnv("PLAYER_INCOMING_DIR", filepath.Join(dataDir, "Daily_Player_Logs")),
		Archive:  getEnv("PLAYER_ARCHIVE_DIR", filepath.Join(dataDir, "Archived_Player_Logs")),
	}

	var jobs []DatasetJob
	if driveEnabled {
		jobs = datasetJobs(fantasy, player)
		if len(jobs) == 0 {
			return Config{}, fmt.Errorf("DRIVE_ENABLED=true requires DRIVE_DFS_FOLDER_ID or DRIVE_PLAYER_FOLDER_ID")
		}
		if err := validateJobs(jobs); err != nil {
			return Config{}, err
		}
	}

	notifyEnabled, err := strconv.ParseBool(getEnv("NOTIFY_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse NOTIFY_ENABLED: %w", err)
	}
	notifyURLs := splitCSV(getEnv("NOTIFY_URLS", ""))
	if notifyEnabled && len(notifyURLs) == 0 {
		return Config{}, fmt.Errorf("NOTIFY_URLS is required when NOTIFY_ENABLED=true")
	}
	notifyTimeout, err := time.ParseDuration(getEnv("NOTIFY_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse NOTIFY_TIMEOUT: %w", err)
	}

	httpReadTimeout, err := time.ParseDuration(getEnv("HTTP_READ_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse HTTP_READ_TIMEOUT: %w", err)
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}

	pyroscopeEnabled, err := strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	pyroscopeServerAddress := strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if pyroscopeEnabled && pyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	pyroscopeUploadRate, err := time.ParseDuration(getEnv("PYROSCOPE_UPLOAD_RATE", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_UPLOAD_RATE: %w", err)
	}
	if pyroscopeUploadRate <= 0 {
		return Config{}, fmt.Errorf("PYROSCOPE_UPLOAD_RATE must be > 0")
	}

	return Config{
		AppEnv:         appEnv,
		ServiceName:    getEnv("SERVICE_NAME", "bigdataball-data"),
		ServiceVersion: getEnv("SERVICE_VERSION", "dev"),

		LogLevel:  parseLogLevel(getEnv("APP_LOG_LEVEL", "info")),
		LogFormat: logFormat,
		LogFile:   strings.TrimSpace(getEnv("LOG_FILE", "")),

		DBDriver:      dbDriver,
		DBURL:         dbURL,
		DBAutoMigrate: dbAutoMigrate,

		DataDir:       dataDir,
		Fantasy:       fantasy,
		Player:        player,
		ColumnMapFile: strings.TrimSpace(getEnv("COLUMN_MAP_FILE", "")),
		CSVExportDir:  getEnv("CSV_EXPORT_DIR", filepath.Join(dataDir, "csv_exports")),

		MatchThreshold:     matchThreshold,
		TrailingWindowDays: trailingWindowDays,

		SlateEntriesPath:   getEnv("SLATE_ENTRIES_PATH", defaultEntriesPath()),
		SlatePriorSeason:   strings.TrimSpace(getEnv("SLATE_PRIOR_SEASON", "")),
		SlateCurrentSeason: strings.TrimSpace(getEnv("SLATE_CURRENT_SEASON", "")),
		SlateMinPriorGP:    slateMinPriorGP,

		DriveEnabled:         driveEnabled,
		DriveCredentialsFile: getEnv("DRIVE_CREDENTIALS_FILE", "client_secrets.json"),
		DriveTokenFile:       getEnv("DRIVE_TOKEN_FILE", "token.json"),
		DriveTimeout:         driveTimeout,
		DriveMaxWorkers:      driveMaxWorkers,
		DriveBreaker: resilience.NormalizeCircuitBreakerConfig(resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: breakerThreshold,
			OpenTimeout:      breakerOpenTimeout,
		}),
		DriveJobs: jobs,

		NotifyEnabled: notifyEnabled,
		NotifyURLs:    notifyURLs,
		NotifyTimeout: notifyTimeout,

		HTTPAddr:         getEnv("HTTP_ADDR", ":8080"),
		HTTPReadTimeout:  httpReadTimeout,
		InternalJobToken: strings.TrimSpace(getEnv("INTERNAL_JOB_TOKEN", "")),

		UptraceEnabled: uptraceEnabled,
		UptraceDSN:     uptraceDSN,

		PyroscopeEnabled:       pyroscopeEnabled,
		PyroscopeServerAddress: pyroscopeServerAddress,
		PyroscopeUploadRate:    pyroscopeUploadRate,
	}, nil
}

func datasetJobs(fantasy, player Folders) []DatasetJob {
	var jobs []DatasetJob
	if id := strings.TrimSpace(getEnv("DRIVE_DFS_FOLDER_ID", "")); id != "" {
		jobs = append(jobs, DatasetJob{
			Name:        "DFS Feed",
			FolderID:    id,
			Match:       getEnv("DRIVE_DFS_MATCH", "-dfs-feed.xlsx"),
			Destination: fantasy.Incoming,
		})
	}
	if id := strings.TrimSpace(getEnv("DRIVE_PLAYER_FOLDER_ID", "")); id != "" {
		jobs = append(jobs, DatasetJob{
			Name:        "Player Feed",
			FolderID:    id,
			Match:       getEnv("DRIVE_PLAYER_MATCH", "season-player-feed.xlsx"),
			Destination: player.Incoming,
		})
	}
	return jobs
}

func validateJobs(jobs []DatasetJob) error {
	validate := validator.New(validator.WithRequiredStructEnabled())
	for _, job := range jobs {
		if err := validate.Struct(job); err != nil {
			return fmt.Errorf("invalid dataset job %q: %w", job.Name, err)
		}
	}
	return nil
}

func defaultEntriesPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "DKEntries.csv"
	}
	return filepath.Join(home, "Downloads", "DKEntries.csv")
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func parseLogFormat(v string) (logging.Format, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case string(logging.FormatJSON):
		return logging.FormatJSON, nil
	case string(logging.FormatConsole):
		return logging.FormatConsole, nil
	default:
		return "", fmt.Errorf("invalid APP_LOG_FORMAT %q: valid values are json, console", v)
	}
}

func parseDBDriver(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case DriverSQLite, "sqlite":
		return DriverSQLite, nil
	case DriverPostgres, "postgresql":
		return DriverPostgres, nil
	default:
		return "", fmt.Errorf("invalid DB_DRIVER %q: valid values are %s, %s", v, DriverSQLite, DriverPostgres)
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
