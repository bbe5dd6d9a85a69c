package config

import (
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/go-sql-driver/mysql"
)

const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Database 记录库配置
type Database struct {
	Driver   string `json:"driver" yaml:"driver"`
	Host     string `json:"host" yaml:"host"`
	Port     int    `json:"port" yaml:"port"`
	Username string `json:"username" yaml:"username"`
	Password string `json:"password" yaml:"password"`
	Database string `json:"database" yaml:"database"`
	// Path sqlite 文件路径
	Path    string `json:"path" yaml:"path"`
	SSLMode string `json:"sslmode" yaml:"sslmode"`

	MaxOpenConns    int `json:"max_open_conns" yaml:"max_open_conns"`
	MaxIdleConns    int `json:"max_idle_conns" yaml:"max_idle_conns"`
	ConnMaxLifetime int `json:"conn_max_lifetime_seconds" yaml:"conn_max_lifetime_seconds"`
	ConnMaxIdleTime int `json:"conn_max_idle_seconds" yaml:"conn_max_idle_seconds"`
	// Timeout 单次操作超时(秒)
	Timeout int `json:"timeout_seconds" yaml:"timeout_seconds"`
}

func (d *Database) applyDefaults() {
	if d.Driver == "" {
		d.Driver = DriverMySQL
	}
	if d.Port == 0 {
		switch d.Driver {
		case DriverMySQL:
			d.Port = 3306
		case DriverPostgres:
			d.Port = 5432
		}
	}
	if d.MaxOpenConns == 0 {
		d.MaxOpenConns = 10
	}
	if d.MaxIdleConns == 0 {
		d.MaxIdleConns = 5
	}
	if d.ConnMaxLifetime == 0 {
		d.ConnMaxLifetime = 3600
	}
	if d.ConnMaxIdleTime == 0 {
		d.ConnMaxIdleTime = 1800
	}
	if d.Timeout == 0 {
		d.Timeout = 5
	}
	if d.SSLMode == "" {
		d.SSLMode = "disable"
	}
}

// OpTimeout 单次操作超时
func (d *Database) OpTimeout() time.Duration {
	return time.Duration(d.Timeout) * time.Second
}

// Dsn 按驱动拼接连接串
func (d *Database) Dsn() string {
	switch d.Driver {
	case DriverPostgres:
		return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			d.Host, d.Port, d.Username, d.Password, d.Database, d.SSLMode)
	case DriverSQLite:
		return d.Path
	default:
		cfg := mysql.NewConfig()
		cfg.User = d.Username
		cfg.Passwd = d.Password
		cfg.Net = "tcp"
		cfg.Addr = net.JoinHostPort(d.Host, strconv.Itoa(d.Port))
		cfg.DBName = d.Database
		cfg.ParseTime = true
		cfg.Loc = time.Local
		// 幂等更新(评分重复提交)时 RowsAffected 返回匹配行数而不是变更行数
		cfg.ClientFoundRows = true
		cfg.Timeout = d.OpTimeout()
		cfg.Params = map[string]string{"charset": "utf8mb4"}
		return cfg.FormatDSN()
	}
}
