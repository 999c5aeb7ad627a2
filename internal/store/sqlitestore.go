package store

import (
	"database/sql"
	"database/sql/driver"
	"fmt"
	"strings"

	glebarez "github.com/glebarez/sqlite"
	libsql "github.com/tursodatabase/libsql-client-go/libsql"
	"gorm.io/datatypes"
	gsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/oxhq/vmatch/internal/value"
)

// storeRow is the gorm model backing sqliteStore: one row per spilled
// element, ordered by Seq. Grounded on the teacher's db/sqlite.go
// connection/migration shape, repurposed from domain entities (Stage,
// Apply, Session) to a single generic element table. The JSON column
// uses datatypes.JSON rather than a plain string so the sqlite/libsql
// side can index or query into element fields directly if a future
// caller needs that (e.g. `WHERE json->>'id' = ?`).
type storeRow struct {
	Seq  int `gorm:"primaryKey;autoIncrement:false"`
	JSON datatypes.JSON
}

// sqliteStore is the opt-in LargeValueStore backend selected by
// internal/config when StoreConfig.Backend == "sqlite". It
// trades the disk store's single-file seek for a SQL round-trip per Get,
// in exchange for the option of pointing a store at a remote libsql/Turso
// database (dsn beginning with "libsql://" or "https://") instead of a
// process-local temp file.
type sqliteStore struct {
	db     *gorm.DB
	conn   *sql.DB
	count  int
	closed bool
}

// SQLiteConfig selects the DSN an sqliteStore connects to. An empty DSN
// uses a shared in-memory SQLite database ("file::memory:?cache=shared");
// a "libsql://" or "https://" DSN
// connects to a remote database via the libsql driver, mirroring the
// teacher's db.Connect(dsn, debug) isURL branch.
type SQLiteConfig struct {
	DSN       string
	AuthToken string
	Debug     bool
}

func newSQLiteStore(items []value.Value, cfg SQLiteConfig) (*sqliteStore, error) {
	dialector, conn, err := sqliteDialector(cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIO, err)
	}

	gcfg := &gorm.Config{}
	db, err := gorm.Open(dialector, gcfg)
	if err != nil {
		if conn != nil {
			conn.Close()
		}
		return nil, fmt.Errorf("%w: %v", ErrIO, err)
	}

	if err := db.AutoMigrate(&storeRow{}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIO, err)
	}

	rows := make([]storeRow, len(items))
	for i, v := range items {
		rows[i] = storeRow{Seq: i, JSON: datatypes.JSON(v.JSONString())}
	}
	if len(rows) > 0 {
		if err := db.CreateInBatches(rows, 500).Error; err != nil {
			return nil, fmt.Errorf("%w: %v", ErrIO, err)
		}
	}

	return &sqliteStore{db: db, conn: conn, count: len(items)}, nil
}

// sqliteDialector mirrors the teacher's db.Connect: a remote DSN goes
// through the libsql connector wrapped in gorm's sqlite dialector; a
// local/empty DSN opens the pure-Go glebarez driver directly, so a store
// never requires cgo.
func sqliteDialector(cfg SQLiteConfig) (gorm.Dialector, *sql.DB, error) {
	if isRemoteDSN(cfg.DSN) {
		var (
			connector driver.Connector
			err       error
		)
		if cfg.AuthToken != "" {
			connector, err = libsql.NewConnector(cfg.DSN, libsql.WithAuthToken(cfg.AuthToken))
		} else {
			connector, err = libsql.NewConnector(cfg.DSN)
		}
		if err != nil {
			return nil, nil, fmt.Errorf("creating libsql connector: %w", err)
		}
		conn := sql.OpenDB(connector)
		return gsqlite.New(gsqlite.Config{
			DriverName: "libsql",
			Conn:       conn,
			DSN:        cfg.DSN,
		}), conn, nil
	}

	dsn := cfg.DSN
	if dsn == "" {
		dsn = "file::memory:?cache=shared"
	}
	return glebarez.Open(dsn), nil, nil
}

func isRemoteDSN(dsn string) bool {
	return strings.HasPrefix(dsn, "libsql://") || strings.HasPrefix(dsn, "https://") || strings.HasPrefix(dsn, "http://")
}

func (s *sqliteStore) Size() int {
	return s.count
}

func (s *sqliteStore) Get(i int) (value.Value, error) {
	if s.closed {
		return value.Value{}, ErrClosed
	}
	if i < 0 || i >= s.count {
		return value.Value{}, ErrOutOfRange
	}
	var row storeRow
	if err := s.db.Where("seq = ?", i).First(&row).Error; err != nil {
		return value.Value{}, fmt.Errorf("%w: %v", ErrIO, err)
	}
	return value.ParseJSON(string(row.JSON))
}

func (s *sqliteStore) Iterator() Iterator {
	it := &sqliteIterator{store: s}
	rows, err := s.db.Model(&storeRow{}).Order("seq asc").Rows()
	if err != nil {
		it.err = fmt.Errorf("%w: %v", ErrIO, err)
		return it
	}
	it.rows = rows
	return it
}

func (s *sqliteStore) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	if s.conn != nil {
		return s.conn.Close()
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return nil
	}
	return sqlDB.Close()
}

type sqliteIterator struct {
	store *sqliteStore
	rows  *sql.Rows
	cur   value.Value
	err   error
}

func (it *sqliteIterator) Next() bool {
	if it.err != nil || it.rows == nil || it.store.closed {
		return false
	}
	if !it.rows.Next() {
		it.rows.Close()
		return false
	}
	var row storeRow
	if err := it.store.db.ScanRows(it.rows, &row); err != nil {
		it.err = err
		it.rows.Close()
		return false
	}
	v, err := value.ParseJSON(string(row.JSON))
	if err != nil {
		it.err = err
		it.rows.Close()
		return false
	}
	it.cur = v
	return true
}

func (it *sqliteIterator) Value() value.Value { return it.cur }
func (it *sqliteIterator) Err() error         { return it.err }
