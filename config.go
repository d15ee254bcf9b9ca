package quizpack

import "github.com/goliatone/go-quizpack/internal/runtimeconfig"

var (
	ErrStorageProviderUnknown       = runtimeconfig.ErrStorageProviderUnknown
	ErrStorageDSNRequired           = runtimeconfig.ErrStorageDSNRequired
	ErrRedisURLRequired             = runtimeconfig.ErrRedisURLRequired
	ErrCacheTTLInvalid              = runtimeconfig.ErrCacheTTLInvalid
	ErrImportModeInvalid            = runtimeconfig.ErrImportModeInvalid
	ErrLegacyIDsInvalid             = runtimeconfig.ErrLegacyIDsInvalid
	ErrSelectedCategoryLimitInvalid = runtimeconfig.ErrSelectedCategoryLimitInvalid
	ErrLoggingProviderUnknown       = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid          = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid         = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config        = runtimeconfig.Config
	StorageConfig = runtimeconfig.StorageConfig
	CacheConfig   = runtimeconfig.CacheConfig
	ImportConfig  = runtimeconfig.ImportConfig
	LoggingConfig = runtimeconfig.LoggingConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}

// LoadConfig reads a YAML config file over the defaults.
func LoadConfig(path string) (Config, error) {
	return runtimeconfig.LoadFile(path)
}
