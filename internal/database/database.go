package database

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	_ "github.com/sijms/go-ora/v2"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	apperrors "collegetowns/internal/errors"
)

// Supported drivers.
const (
	DriverOracle = "oracle"
	DriverSQLite = "sqlite"
)

// dsn builds a properly encoded connection string for Oracle Autonomous Database
func dsn(username, password, host, port, service string, walletLocation string) string {
	if walletLocation != "" {
		// Use wallet-based mTLS connection
		return fmt.Sprintf(
			"oracle://%s:%s@%s:%s/%s?ssl=true&wallet_location=%s",
			url.PathEscape(username), url.PathEscape(password), host, port, service, url.PathEscape(walletLocation))
	}

	return (&url.URL{
		Scheme:   "oracle",
		User:     url.UserPassword(username, password), // escapes automatically
		Host:     host + ":" + port,
		Path:     "/" + service, // keep full service name
		RawQuery: "ssl=true",    // ADB requires TCPS on 1522
	}).String()
}

// DBConfig holds database connection configuration
type DBConfig struct {
	Driver         string `yaml:"driver" envconfig:"DRIVER" default:"oracle"`
	Host           string `yaml:"host" envconfig:"HOST" default:"localhost"`
	Port           string `yaml:"port" envconfig:"PORT" default:"1521"`
	Service        string `yaml:"service" envconfig:"SERVICE" default:"XE"`
	Username       string `yaml:"username" envconfig:"USERNAME"`
	Password       string `yaml:"password" envconfig:"PASSWORD"`
	WalletLocation string `yaml:"wallet_location" envconfig:"WALLET_LOCATION"`
	DSN            string `yaml:"dsn" envconfig:"DSN"`
	Table          string `yaml:"table" envconfig:"TABLE" default:"CITY_ZHVI_ALLHOMES"`
}

// ConnString returns the driver-specific connection string.
func (c DBConfig) ConnString() string {
	if c.DSN != "" || c.Driver == DriverSQLite {
		return c.DSN
	}
	return dsn(c.Username, c.Password, c.Host, c.Port, c.Service, c.WalletLocation)
}

// Database holds the database connection and configuration
type Database struct {
	db     *sql.DB
	config DBConfig
	logger *zap.Logger
}

// NewDatabase opens and pings a connection.
func NewDatabase(ctx context.Context, config DBConfig, logger *zap.Logger) (*Database, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if config.Driver != DriverOracle && config.Driver != DriverSQLite {
		return nil, apperrors.NewConfigError(fmt.Sprintf("unsupported database driver %q", config.Driver), nil)
	}

	logger.Info("connecting to housing database",
		zap.String("driver", config.Driver),
		zap.String("host", config.Host),
		zap.String("table", config.Table))

	db, err := sql.Open(config.Driver, config.ConnString())
	if err != nil {
		return nil, apperrors.NewStorageError("failed to open database connection", err)
	}

	// Test the connection
	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, apperrors.NewStorageError("failed to ping database", err)
	}

	return &Database{
		db:     db,
		config: config,
		logger: logger,
	}, nil
}

// Close closes the database connection
func (d *Database) Close() error {
	return d.db.Close()
}

var identifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

// identifying columns are matched case-insensitively since Oracle upper-cases
// unquoted names.
var canonicalColumns = []string{"RegionID", "RegionName", "State", "Metro", "CountyName", "SizeRank"}

func canonicalColumn(name string) string {
	for _, c := range canonicalColumns {
		if strings.EqualFold(name, c) {
			return c
		}
	}
	return name
}

// QueryHousing returns every row of the wide city table: a header of column
// names followed by string records. NULL cells become "".
func (d *Database) QueryHousing(ctx context.Context, table string) ([]string, [][]string, error) {
	if !identifier.MatchString(table) {
		return nil, nil, apperrors.NewConfigError(fmt.Sprintf("invalid table name %q", table), nil)
	}

	start := time.Now()
	rows, err := d.db.QueryContext(ctx, "SELECT * FROM "+table)
	if err != nil {
		return nil, nil, apperrors.NewStorageError("failed to query housing table", err).WithContext("table", table)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, nil, apperrors.NewStorageError("failed to read housing columns", err)
	}
	header := make([]string, len(cols))
	for i, c := range cols {
		header[i] = canonicalColumn(c)
	}

	var records [][]string
	cells := make([]sql.NullString, len(cols))
	dest := make([]interface{}, len(cols))
	for i := range cells {
		dest[i] = &cells[i]
	}
	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return nil, nil, apperrors.NewStorageError("failed to scan housing row", err)
		}
		rec := make([]string, len(cols))
		for i, c := range cells {
			if c.Valid {
				rec[i] = c.String
			}
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewStorageError("failed to iterate housing rows", err)
	}

	d.logger.Debug("housing table loaded",
		zap.String("table", table),
		zap.Int("rows", len(records)),
		zap.Int("columns", len(header)),
		zap.Duration("elapsed", time.Since(start).Truncate(time.Millisecond)))
	return header, records, nil
}

// HousingSource reads the wide city table from a database table.
type HousingSource struct {
	DB    *Database
	Table string
}

// Load implements housing.Source.
func (s HousingSource) Load(ctx context.Context) ([]string, [][]string, error) {
	table := s.Table
	if table == "" {
		table = s.DB.config.Table
	}
	return s.DB.QueryHousing(ctx, table)
}
