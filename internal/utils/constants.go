package utils

// EmptyString represents a reusable empty string constant.
const EmptyString = ""

// ErrorLogFormat defines the formatting string for error log messages.
const ErrorLogFormat = "Error: %v"

// LoggerInitializationFailedMessageFormat reports a failure to construct the application logger.
const LoggerInitializationFailedMessageFormat = "logger initialization failed: %w"

// ApplicationExecutionFailedMessage prefixes fatal command execution errors.
const ApplicationExecutionFailedMessage = "application execution failed"

// ConfigFileName is the name of the treemark configuration file.
const ConfigFileName = ".treemark.yaml"

// GlobalConfigDirectoryName is the directory under the user home that holds global configuration.
const GlobalConfigDirectoryName = ".treemark"
