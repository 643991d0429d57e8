package ods

import (
	"os"
	"strconv"
	"strings"
	"sync"
)

// Config holds process-wide, init-once-read-many settings, grounded on
// the teacher's GetConfig/OverrideConfig/env-lookup family (misc.go).
// A recommended redesign (spec.md §9) would thread this through
// explicitly at Container construction instead of as global state; this
// port keeps the teacher's shape since nothing in spec.md demands the
// redesign yet.
type Config struct {
	// TolerantMode downgrades UnknownType decode errors to a
	// materialized Invalid tag (spec.md §4.1, §7).
	TolerantMode bool

	// ReadBufferSize is loaded from ODS_BUFFERSIZE. No read path in this
	// package consults it: a compressed container file is read whole with
	// io.ReadAll.
	ReadBufferSize int

	// LogLevel controls the operational logger's verbosity: "debug",
	// "info", "warn", "error", "disabled".
	LogLevel string

	// DefaultCompressor names the Compressor used for whole-file I/O
	// when a Container is opened without an explicit one.
	DefaultCompressor string

	set bool
}

func intFromEnv(key string) (val int, found bool) {
	valStr, found := os.LookupEnv(key)
	if !found {
		return 0, false
	}
	val, err := strconv.Atoi(valStr)
	if err != nil {
		return 0, false
	}
	return val, true
}

func intFromEnvDefault(key string, def int) int {
	val, found := intFromEnv(key)
	if !found {
		return def
	}
	return val
}

func boolFromEnv(key string) (val bool, found bool) {
	valStr, found := os.LookupEnv(key)
	if !found {
		return false, false
	}
	val, err := strconv.ParseBool(valStr)
	if err != nil {
		return false, false
	}
	return val, true
}

func boolFromEnvDefault(key string, def bool) bool {
	val, found := boolFromEnv(key)
	if !found {
		return def
	}
	return val
}

func strFromEnvDefault(key, def string) string {
	val, found := os.LookupEnv(key)
	if !found {
		return def
	}
	return val
}

var (
	configMu sync.Mutex
	config   Config
)

// GetConfig returns the process configuration, lazily initializing it
// from the environment on first call.
func GetConfig() Config {
	configMu.Lock()
	defer configMu.Unlock()
	if !config.set {
		config.TolerantMode = boolFromEnvDefault("ODS_TOLERANT", false)
		config.ReadBufferSize = intFromEnvDefault("ODS_BUFFERSIZE", 2*1024*1024)
		config.LogLevel = strings.ToLower(strFromEnvDefault("ODS_LOGLEVEL", "info"))
		config.DefaultCompressor = strFromEnvDefault("ODS_DEFAULT_COMPRESSOR", "identity")
		applyLogLevel(config.LogLevel)
		config.set = true
	}
	return config
}

// OverrideConfig replaces the process configuration wholesale, bypassing
// environment lookup. Subsequent GetConfig calls return newConfig as-is.
func OverrideConfig(newConfig Config) {
	configMu.Lock()
	defer configMu.Unlock()
	newConfig.set = true
	config = newConfig
	applyLogLevel(config.LogLevel)
}

// IsTolerantMode reports the current tolerant-parsing flag (spec.md §4.7).
func IsTolerantMode() bool {
	return GetConfig().TolerantMode
}
