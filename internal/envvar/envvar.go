package envvar

const (
	// NvinitEnv is the environment variable used to determine the environment
	NvinitEnv = "NVINIT_ENV"

	// NvinitConfigPath is the environment variable used to override the config file path
	NvinitConfigPath = "NVINIT_CONFIG"

	// NvinitDataPath is the environment variable used to override the Neovim data directory
	NvinitDataPath = "NVINIT_DATA_PATH"

	// NvinitLogFile is the environment variable used to override the log file location
	NvinitLogFile = "NVINIT_LOG_FILE"
)
