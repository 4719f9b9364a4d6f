package models

// MConfig is the on-disk configuration shape, loaded from YAML.
type MConfig struct {
	Name     string `yaml:"name"`
	LogLevel string `yaml:"log_level"`

	AdminHost string `yaml:"admin_host"`
	AdminPort int    `yaml:"admin_port"`

	Transport MTransportConfig `yaml:"transport"`
	Sync      MSyncConfig      `yaml:"sync"`
	Ordering  MOrderingConfig  `yaml:"ordering"`
	HealthLog MHealthLogConfig `yaml:"health_log"`

	// Accounts bootstraps connections at startup. Account provisioning
	// itself (issuing/rotating account credentials) is out of scope; this
	// only lists which already-provisioned accounts the daemon should
	// open a connection to on boot.
	Accounts []MAccountConfig `yaml:"accounts"`
}

// MAccountConfig names one account to connect to at startup.
type MAccountConfig struct {
	AccountID        string `yaml:"account_id"`
	ApplicationTag   string `yaml:"application_tag"`
	HistoryStartTime string `yaml:"history_start_time"` // RFC3339; empty means no cutoff
}

// MTransportConfig describes the websocket endpoint the core connects to.
type MTransportConfig struct {
	URL               string `yaml:"url"`
	HandshakeTimeoutS int    `yaml:"handshake_timeout_seconds"`
}

// MSyncConfig carries the retry/backoff/timeout constants of spec.md §5
// and §9 as overridable fields rather than hardcoded constants.
type MSyncConfig struct {
	SynchronizeInitialRetrySeconds int `yaml:"synchronize_initial_retry_seconds"`
	SynchronizeMaxRetrySeconds     int `yaml:"synchronize_max_retry_seconds"`
	SubscribeInitialBackoffSeconds int `yaml:"subscribe_initial_backoff_seconds"`
	SubscribeMaxBackoffSeconds     int `yaml:"subscribe_max_backoff_seconds"`
	WaitSynchronizedTimeoutSeconds int `yaml:"wait_synchronized_timeout_seconds"`
	WaitSynchronizedIntervalMillis int `yaml:"wait_synchronized_interval_millis"`
}

// MOrderingConfig configures the packet orderer. Only
// PacketOrderingTimeoutSeconds reaches the orderer; WaitListCapacity is
// defaulted and validated but not read, and the orderer's wait-list bound
// is the fixed orderer.WaitListCapacity (100).
type MOrderingConfig struct {
	WaitListCapacity           int `yaml:"wait_list_capacity"`
	PacketOrderingTimeoutSeconds int `yaml:"packet_ordering_timeout_seconds"`
}

// MHealthLogConfig configures the optional health-sample recorder.
type MHealthLogConfig struct {
	Enabled            bool   `yaml:"enabled"`
	Driver             string `yaml:"driver"` // "sqlite" or "postgres"
	DSN                string `yaml:"dsn"`
	SampleIntervalSeconds int `yaml:"sample_interval_seconds"`
}
