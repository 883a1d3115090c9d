package config

import (
	"os"
	"path/filepath"

	"VidTube.com/pkg/constants"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

var ConfigInfo config

func setDefaults() {
	viper.SetDefault("server.host_ports", constants.DefaultServerHostPorts)
	viper.SetDefault("server.node_id", 1)
	viper.SetDefault("mysql.charset", "utf8mb4")
	viper.SetDefault("elasticsearch.index", constants.DefaultVideoIndex)
	viper.SetDefault("store.backend", "mysql")
	viper.SetDefault("store.timeout", constants.StoreTimeout)
	viper.SetDefault("interaction.toggle_max_attempts", constants.ToggleMaxAttempts)
	viper.SetDefault("interaction.lock_ttl", constants.ToggleLockTTL)
	viper.SetDefault("interaction.orphan_policy", constants.DefaultOrphanPolicy)
	viper.SetDefault("pagination.default_size", constants.DefaultLimit)
	viper.SetDefault("pagination.max_size", constants.MaxLimit)
	viper.SetDefault("search.backend", constants.DefaultSearchBackend)
	viper.SetDefault("jwt.timeout", "24h")
	viper.SetDefault("jwt.max_refresh", "72h")
	viper.SetDefault("sentinel.toggle_qps", constants.DefaultToggleQPS)
}

// viper 对 key 大小写不敏感；配置文件缺失时仍然使用默认值启动
func Init() {
	wd, _ := os.Getwd()
	logrus.Infof("Current working directory: %s", wd)

	setDefaults()
	viper.SetConfigType("yaml")
	viper.SetConfigName("config.yml")

	configPaths := []string{
		"../../config",
		"./config",
		"../config",
		".",
	}
	for _, path := range configPaths {
		viper.AddConfigPath(path)
		absPath, _ := filepath.Abs(path)
		logrus.Debugf("Added config path: %s (absolute: %s)", path, absPath)
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			logrus.Warnf("config file not found, using defaults: %v", err)
		} else {
			logrus.Errorf("config error: %v", err)
		}
	} else {
		logrus.Infof("Successfully read config file: %s", viper.ConfigFileUsed())
	}
	load()
}

// 手动从 viper 取值，duration 字段交给 viper 解析
func load() {
	ConfigInfo.Server.HostPorts = viper.GetString("server.host_ports")
	ConfigInfo.Server.NodeID = viper.GetInt64("server.node_id")
	ConfigInfo.Server.PprofAddr = viper.GetString("server.pprof_addr")

	ConfigInfo.Mysql.Addr = viper.GetString("mysql.addr")
	ConfigInfo.Mysql.Database = viper.GetString("mysql.database")
	ConfigInfo.Mysql.Username = viper.GetString("mysql.username")
	ConfigInfo.Mysql.Password = viper.GetString("mysql.password")
	ConfigInfo.Mysql.Charset = viper.GetString("mysql.charset")

	ConfigInfo.Redis.Addr = viper.GetString("redis.addr")
	ConfigInfo.Redis.Password = viper.GetString("redis.password")
	ConfigInfo.Redis.DB = viper.GetInt("redis.db")

	ConfigInfo.RabbitMq.Addr = viper.GetString("rabbitmq.addr")
	ConfigInfo.RabbitMq.Username = viper.GetString("rabbitmq.username")
	ConfigInfo.RabbitMq.Password = viper.GetString("rabbitmq.password")

	ConfigInfo.Elasticsearch.Addr = viper.GetString("elasticsearch.addr")
	ConfigInfo.Elasticsearch.Index = viper.GetString("elasticsearch.index")

	ConfigInfo.Store.Backend = viper.GetString("store.backend")
	ConfigInfo.Store.Timeout = viper.GetDuration("store.timeout")

	ConfigInfo.Interaction.ToggleMaxAttempts = viper.GetInt("interaction.toggle_max_attempts")
	ConfigInfo.Interaction.UseLock = viper.GetBool("interaction.use_lock")
	ConfigInfo.Interaction.LockTTL = viper.GetDuration("interaction.lock_ttl")
	ConfigInfo.Interaction.OrphanPolicy = viper.GetString("interaction.orphan_policy")

	ConfigInfo.Pagination.DefaultSize = viper.GetInt("pagination.default_size")
	ConfigInfo.Pagination.MaxSize = viper.GetInt("pagination.max_size")

	ConfigInfo.Search.Backend = viper.GetString("search.backend")

	ConfigInfo.Jwt.Secret = viper.GetString("jwt.secret")
	ConfigInfo.Jwt.Timeout = viper.GetDuration("jwt.timeout")
	ConfigInfo.Jwt.MaxRefresh = viper.GetDuration("jwt.max_refresh")

	ConfigInfo.Sentinel.ToggleQPS = viper.GetFloat64("sentinel.toggle_qps")

	ConfigInfo.Jaeger.Addr = viper.GetString("jaeger.addr")

	logrus.Infof("Config loaded - store: %s, search: %s, MySQL: %s:%s@%s/%s",
		ConfigInfo.Store.Backend, ConfigInfo.Search.Backend,
		ConfigInfo.Mysql.Username, "***", ConfigInfo.Mysql.Addr, ConfigInfo.Mysql.Database)
}

// MysqlDSN 由 mysql 段拼出 gorm 使用的 DSN
func MysqlDSN() string {
	m := ConfigInfo.Mysql
	return m.Username + ":" + m.Password + "@tcp(" + m.Addr + ")/" + m.Database +
		"?charset=" + m.Charset + "&parseTime=True&loc=Local"
}
