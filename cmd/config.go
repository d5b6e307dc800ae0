package cmd

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"

	"expect.dev/pkg/expect/internal/controller"
)

const (
	configVersionKey     = "version"
	currentConfigVersion = 1

	configBaseName   = "expect"
	configFileName   = configBaseName + ".yaml"
	configFolderPath = "."

	envPrefix = "EXPECT"
)

// Flag names.
const (
	verboseFlagName      = "verbose"
	logFileFlagName      = "log-file"
	colorFlagName        = "color"
	excludeFlagName      = "exclude"
	listParallelFlagName = "parallel"
	listFormatFlagName   = "format"
)

// Configuration keys and their defaults. Every key can also be set through
// the environment, e.g. EXPECT_LIST_PARALLEL=8.
const (
	uiColorKey            = "ui.color"
	listParallelConfigKey = "list.parallel"
	listFormatConfigKey   = "list.format"
	excludeConfigKey      = "paths.exclude"

	logFilenameKey   = "log.filename"
	logLevelKey      = "log.level"
	logVerboseKey    = "log.verbose"
	logMaxSizeKey    = "log.max_size"
	logMaxBackupsKey = "log.max_backups"
	logMaxAgeKey     = "log.max_age"
	logCompressKey   = "log.compress"

	defaultUIColor      = colorAuto
	defaultListParallel = 4
	defaultListFormat   = controller.FormatTable

	defaultLogFilename   = ".expect.log"
	defaultLogLevel      = int(slog.LevelInfo)
	defaultLogMaxSize    = 10
	defaultLogMaxBackups = 3
	defaultLogMaxAge     = 28
)

// Values accepted by --color.
const (
	colorAuto   = "auto"
	colorAlways = "always"
	colorNever  = "never"
)

var globalLogger *slog.Logger

func init() {
	setConfigDefaults(viper.GetViper())
	readConfig(viper.GetViper(), os.Stderr)
}

func setConfigDefaults(v *viper.Viper) {
	v.SetConfigName(configBaseName)
	v.SetConfigType("yaml")
	v.AddConfigPath(configFolderPath)
	v.SetConfigFile(filepath.Join(configFolderPath, configFileName))
	v.AutomaticEnv()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	v.SetDefault(configVersionKey, currentConfigVersion)
	v.SetDefault(uiColorKey, defaultUIColor)
	v.SetDefault(listParallelConfigKey, defaultListParallel)
	v.SetDefault(listFormatConfigKey, defaultListFormat)
	v.SetDefault(excludeConfigKey, []string{})

	v.SetDefault(logFilenameKey, defaultLogFilename)
	v.SetDefault(logLevelKey, defaultLogLevel)
	v.SetDefault(logVerboseKey, false)
	v.SetDefault(logMaxSizeKey, defaultLogMaxSize)
	v.SetDefault(logMaxBackupsKey, defaultLogMaxBackups)
	v.SetDefault(logMaxAgeKey, defaultLogMaxAge)
	v.SetDefault(logCompressKey, true)
}

// readConfig loads expect.yaml when present. A broken file is reported on
// stderr and the defaults stay in effect.
func readConfig(v *viper.Viper, stderr io.Writer) bool {
	err := v.ReadInConfig()
	if err == nil {
		return true
	}

	var notFound viper.ConfigFileNotFoundError
	if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
		_, _ = fmt.Fprintf(stderr, "expect: ignoring %s: %v\n", v.ConfigFileUsed(), err)
	}

	return false
}

// useColor resolves the ui.color setting for output written to w.
func useColor(mode string, w io.Writer) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", colorAuto:
		return controller.IsTTY(w), nil
	case colorAlways:
		return true, nil
	case colorNever:
		return false, nil
	}

	return false, fmt.Errorf("invalid %s %q (want %s, %s or %s)", colorFlagName, mode, colorAuto, colorAlways, colorNever)
}

func parseSlogLevel(value string, defaultLevel slog.Level) slog.Level {
	level := strings.ToLower(strings.TrimSpace(value))

	switch level {
	case "":
		return defaultLevel
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}

	// Numeric slog levels, e.g. -4 for debug.
	if n, err := strconv.Atoi(level); err == nil {
		return slog.Level(n)
	}

	return defaultLevel
}

// logSettings is the log section of the configuration.
type logSettings struct {
	path       string
	level      slog.Level
	maxSize    int
	maxBackups int
	maxAge     int
	compress   bool
}

func readLogSettings(v *viper.Viper, logPath string, verbose bool) logSettings {
	settings := logSettings{
		path:       strings.TrimSpace(logPath),
		level:      parseSlogLevel(v.GetString(logLevelKey), slog.LevelInfo),
		maxSize:    v.GetInt(logMaxSizeKey),
		maxBackups: v.GetInt(logMaxBackupsKey),
		maxAge:     v.GetInt(logMaxAgeKey),
		compress:   v.GetBool(logCompressKey),
	}

	if settings.path == "" {
		settings.path = strings.TrimSpace(v.GetString(logFilenameKey))
	}

	if settings.path == "" {
		settings.path = defaultLogFilename
	}

	if verbose {
		settings.level = slog.LevelDebug
	}

	return settings
}

// configureLogger points the default slog logger at a rotating log file.
// Promotions and restores are logged at Info, everything else at Debug.
func configureLogger(logPath string, verbose bool) {
	settings := readLogSettings(viper.GetViper(), logPath, verbose)

	logWriter := &lumberjack.Logger{
		Filename:   settings.path,
		MaxSize:    settings.maxSize,
		MaxBackups: settings.maxBackups,
		MaxAge:     settings.maxAge,
		Compress:   settings.compress,
	}

	handler := slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		AddSource: true,
		Level:     settings.level,
	})

	globalLogger = slog.New(handler)
	slog.SetDefault(globalLogger)
}
