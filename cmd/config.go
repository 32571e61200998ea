package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"

	m "mklinkdef.dev/pkg/mklinkdef/internal/model"
)

const (
	configVersionKey     = "version"
	currentConfigVersion = 1

	configBaseName   = "mklinkdef"
	configFileName   = configBaseName + ".yaml"
	configFolderPath = "."

	integratedFlagName = "integrated"
	projectDirFlagName = "project-dir"
	verboseFlagName    = "verbose"
	logFileFlagName    = "log-file"
	exitCodeFlagName   = "exit-code"

	integratedConfigKey = "integrated"
	projectDirConfigKey = "project_dir"

	hostVersionKey     = "host.version"
	hostInstallRootKey = "host.install_root"
	hostArchKey        = "host.arch"

	hostVersionEnv     = "CMSSW_VERSION"
	hostInstallRootEnv = "CMSSW_BASE"
	hostArchEnv        = "SCRAM_ARCH"

	dictionaryNameKey     = "dictionary.name"
	dictionaryCompilerKey = "dictionary.compiler"
	dictionaryHelperKey   = "dictionary.include_helper"
	dictionaryTimeoutKey  = "dictionary.timeout"

	defaultIntegrated         = false
	defaultProjectDir         = "."
	defaultDictionaryName     = "MultiDrawDict"
	defaultDictionaryCompiler = "rootcling"
	defaultDictionaryHelper   = "root-config"
	defaultDictionaryTimeout  = 0

	envPrefix  = "MKLINKDEF"
	dotEnvFile = ".env"

	logFilenameKey   = "log.filename"
	logLevelKey      = "log.level"
	logMaxSizeKey    = "log.max_size"
	logMaxBackupsKey = "log.max_backups"
	logMaxAgeKey     = "log.max_age"
	logCompressKey   = "log.compress"

	defaultLogFilename   = ".mklinkdef.log"
	defaultLogLevel      = int(slog.LevelInfo)
	defaultLogMaxSize    = 10
	defaultLogMaxBackups = 3
	defaultLogMaxAge     = 28
	defaultLogCompress   = true
)

var globalLogger *slog.Logger

func init() {
	// Values already in the environment win over the .env file.
	_ = godotenv.Load(dotEnvFile)

	viper.SetConfigName(configBaseName)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configFolderPath)
	viper.SetConfigFile(filepath.Join(configFolderPath, configFileName))
	viper.AutomaticEnv()
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	// The host environment uses its own variable names.
	_ = viper.BindEnv(hostVersionKey, hostVersionEnv)
	_ = viper.BindEnv(hostInstallRootKey, hostInstallRootEnv)
	_ = viper.BindEnv(hostArchKey, hostArchEnv)

	viper.SetDefault(configVersionKey, currentConfigVersion)
	viper.SetDefault(integratedConfigKey, defaultIntegrated)
	viper.SetDefault(projectDirConfigKey, defaultProjectDir)
	viper.SetDefault(dictionaryNameKey, defaultDictionaryName)
	viper.SetDefault(dictionaryCompilerKey, defaultDictionaryCompiler)
	viper.SetDefault(dictionaryHelperKey, defaultDictionaryHelper)
	viper.SetDefault(dictionaryTimeoutKey, defaultDictionaryTimeout)

	viper.SetDefault(logFilenameKey, defaultLogFilename)
	viper.SetDefault(logLevelKey, defaultLogLevel)
	viper.SetDefault(logMaxSizeKey, defaultLogMaxSize)
	viper.SetDefault(logMaxBackupsKey, defaultLogMaxBackups)
	viper.SetDefault(logMaxAgeKey, defaultLogMaxAge)
	viper.SetDefault(logCompressKey, defaultLogCompress)

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist) {
			return
		}

		fmt.Fprintf(os.Stderr, "mklinkdef: ignoring %s: %v\n", configFileName, err)
	}
}

// loadConfig builds the run configuration from flags, config file and
// environment. It is called once per command.
func loadConfig() (m.Config, error) {
	projectDir, err := filepath.Abs(viper.GetString(projectDirConfigKey))
	if err != nil {
		return m.Config{}, err
	}

	mode := m.Standalone
	if viper.GetBool(integratedConfigKey) {
		mode = m.Integrated
	}

	return m.Config{
		Mode:           mode,
		ProjectDir:     m.Path(projectDir),
		HostVersion:    viper.GetString(hostVersionKey),
		InstallRoot:    m.Path(viper.GetString(hostInstallRootKey)),
		Arch:           viper.GetString(hostArchKey),
		DictionaryName: viper.GetString(dictionaryNameKey),
		CompilerBin:    viper.GetString(dictionaryCompilerKey),
		IncludeHelper:  viper.GetString(dictionaryHelperKey),
		Timeout:        dictionaryTimeout(),
	}, nil
}

// dictionaryTimeout bounds each external process; the config value is in
// seconds and zero disables the bound.
func dictionaryTimeout() time.Duration {
	return time.Duration(viper.GetInt64(dictionaryTimeoutKey)) * time.Second
}

func parseSlogLevel(value string, defaultLevel slog.Level) slog.Level {
	level := strings.ToLower(strings.TrimSpace(value))
	if level == "" {
		return defaultLevel
	}

	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}

	// Allow numeric slog levels as well (e.g. -4 for debug).
	if n, err := strconv.Atoi(level); err == nil {
		return slog.Level(n)
	}

	return defaultLevel
}

// configureLogger configures the global slog logger.
//
// By default it logs at Info; if verbose is true it logs at Debug.
func configureLogger(logPath string, verbose bool) {
	if strings.TrimSpace(logPath) == "" {
		logPath = viper.GetString(logFilenameKey)
	}

	if strings.TrimSpace(logPath) == "" {
		logPath = defaultLogFilename
	}

	var logLevel slog.Level
	if verbose {
		logLevel = slog.LevelDebug
	} else {
		logLevel = parseSlogLevel(viper.GetString(logLevelKey), slog.LevelInfo)
	}

	logWriter := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    viper.GetInt(logMaxSizeKey),
		MaxBackups: viper.GetInt(logMaxBackupsKey),
		MaxAge:     viper.GetInt(logMaxAgeKey),
		Compress:   viper.GetBool(logCompressKey),
	}

	handler := slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		AddSource: true,
		Level:     logLevel,
	})

	globalLogger = slog.New(handler)
	slog.SetDefault(globalLogger)
}
