package config

import "time"

type config struct {
	Server        server        `yaml:"server" mapstructure:"server"`
	Mysql         mysql         `yaml:"mysql" mapstructure:"mysql"`
	Redis         redis         `yaml:"redis" mapstructure:"redis"`
	RabbitMq      rabbitmq      `yaml:"rabbitmq" mapstructure:"rabbitmq"`
	Elasticsearch elasticsearch `yaml:"elasticsearch" mapstructure:"elasticsearch"`
	Store         store         `yaml:"store" mapstructure:"store"`
	Interaction   interaction   `yaml:"interaction" mapstructure:"interaction"`
	Pagination    pagination    `yaml:"pagination" mapstructure:"pagination"`
	Search        search        `yaml:"search" mapstructure:"search"`
	Jwt           jwt           `yaml:"jwt" mapstructure:"jwt"`
	Sentinel      sentinel      `yaml:"sentinel" mapstructure:"sentinel"`
	Jaeger        jaeger        `yaml:"jaeger" mapstructure:"jaeger"`
}

type server struct {
	HostPorts string `yaml:"host_ports"`
	NodeID    int64  `yaml:"node_id"`
	PprofAddr string `yaml:"pprof_addr"`
}

type mysql struct {
	Addr     string `yaml:"addr"`
	Database string `yaml:"database"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Charset  string `yaml:"charset"`
}

type redis struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type rabbitmq struct {
	Addr     string `yaml:"addr"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

type elasticsearch struct {
	Addr  string `yaml:"addr"`
	Index string `yaml:"index"`
}

// store.backend: mysql | memory
type store struct {
	Backend string        `yaml:"backend"`
	Timeout time.Duration `yaml:"timeout"`
}

type interaction struct {
	ToggleMaxAttempts int           `yaml:"toggle_max_attempts" mapstructure:"toggle_max_attempts"`
	UseLock           bool          `yaml:"use_lock" mapstructure:"use_lock"`
	LockTTL           time.Duration `yaml:"lock_ttl" mapstructure:"lock_ttl"`
	OrphanPolicy      string        `yaml:"orphan_policy" mapstructure:"orphan_policy"`
}

type pagination struct {
	DefaultSize int `yaml:"default_size" mapstructure:"default_size"`
	MaxSize     int `yaml:"max_size" mapstructure:"max_size"`
}

// search.backend: mysql | elasticsearch | memory
type search struct {
	Backend string `yaml:"backend"`
}

type jwt struct {
	Secret     string        `yaml:"secret"`
	Timeout    time.Duration `yaml:"timeout"`
	MaxRefresh time.Duration `yaml:"max_refresh" mapstructure:"max_refresh"`
}

type sentinel struct {
	ToggleQPS float64 `yaml:"toggle_qps" mapstructure:"toggle_qps"`
}

type jaeger struct {
	Addr string `yaml:"addr"`
}
