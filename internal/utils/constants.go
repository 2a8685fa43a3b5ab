package utils

// ConfigFileName is the per-directory configuration file consulted by the CLI.
const ConfigFileName = ".bundle.yaml"

// GlobalConfigDirectoryName is the home-relative directory holding the global configuration.
const GlobalConfigDirectoryName = ".config/bundle"

// LoggerInitializationFailedMessageFormat reports a logger construction failure.
const LoggerInitializationFailedMessageFormat = "logger initialization failed: %w"

// ApplicationExecutionFailedMessage prefixes fatal application errors.
const ApplicationExecutionFailedMessage = "application execution failed"
