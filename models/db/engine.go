// Copyright 2014 The Gogs Authors. All rights reserved.
// Copyright 2018 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"code.kwd.dev/wordfilter/modules/log"
	"code.kwd.dev/wordfilter/modules/setting"

	_ "github.com/go-sql-driver/mysql"  // Needed for the MySQL driver
	_ "github.com/lib/pq"               // Needed for the Postgresql driver
	_ "github.com/mattn/go-sqlite3"     // Needed for the SQLite3 driver
	_ "github.com/microsoft/go-mssqldb" // Needed for the MSSQL driver
	"xorm.io/xorm"
	"xorm.io/xorm/names"
)

var (
	x      *xorm.Engine
	tables []any
)

// Engine represents a xorm engine or session.
type Engine interface {
	Table(tableNameOrBean any) *xorm.Session
	Count(...any) (int64, error)
	Delete(...any) (int64, error)
	Exec(...any) (sql.Result, error)
	Find(any, ...any) error
	Get(beans ...any) (bool, error)
	ID(any) *xorm.Session
	In(string, ...any) *xorm.Session
	Insert(...any) (int64, error)
	Where(any, ...any) *xorm.Session
	Desc(colNames ...string) *xorm.Session
	Limit(limit int, start ...int) *xorm.Session
	Exist(...any) (bool, error)
	Cols(...string) *xorm.Session
	Update(bean any, condiBean ...any) (int64, error)
	Context(ctx context.Context) *xorm.Session
}

var (
	_ Engine = &xorm.Engine{}
	_ Engine = &xorm.Session{}
)

// RegisterModel registers a model, its table is created or updated by SyncAllTables
func RegisterModel(bean any) {
	tables = append(tables, bean)
}

// NewEngine returns a new xorm engine from the configuration
func NewEngine() (*xorm.Engine, error) {
	connStr, err := setting.DBConnStr()
	if err != nil {
		return nil, err
	}

	engine, err := xorm.NewEngine(setting.Database.Type.String(), connStr)
	if err != nil {
		return nil, err
	}
	engine.SetMapper(names.GonicMapper{})
	if setting.Database.Type.IsMySQL() {
		engine.Dialect().SetParams(map[string]string{"rowFormat": "DYNAMIC"})
	}
	engine.SetSchema(setting.Database.Schema)
	return engine, nil
}

// SetDefaultEngine sets the default engine for db
func SetDefaultEngine(ctx context.Context, eng *xorm.Engine) {
	x = eng
	DefaultContext = &Context{Context: ctx, e: x}
}

// UnsetDefaultEngine closes and unsets the default engine
func UnsetDefaultEngine() {
	if x != nil {
		_ = x.Close()
		x = nil
	}
	DefaultContext = nil
}

// InitEngine initializes the xorm engine from the settings and syncs all registered tables
func InitEngine(ctx context.Context) error {
	xe, err := NewEngine()
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	xe.SetLogger(NewXORMLogger(setting.Database.LogSQL))
	xe.ShowSQL(setting.Database.LogSQL)
	xe.SetMaxOpenConns(setting.Database.MaxOpenConns)
	xe.SetMaxIdleConns(setting.Database.MaxIdleConns)
	xe.SetConnMaxLifetime(setting.Database.ConnMaxLifetime)

	SetDefaultEngine(ctx, xe)
	if err = x.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}
	return SyncAllTables()
}

// SyncAllTables sync the schemas of all tables
func SyncAllTables() error {
	if err := x.StoreEngine("InnoDB").Sync(tables...); err != nil {
		return fmt.Errorf("sync database struct error: %w", err)
	}
	log.Trace("Synced %d tables: %s", len(tables), strings.Join(TableNames(), ", "))
	return nil
}

// TableNames returns the names of all registered tables
func TableNames() []string {
	tableNames := make([]string, 0, len(tables))
	for _, bean := range tables {
		tableNames = append(tableNames, x.TableName(bean))
	}
	return tableNames
}

// IsTableNotEmpty returns true if table has at least one record
func IsTableNotEmpty(beanOrTableName any) (bool, error) {
	return x.Table(beanOrTableName).Exist()
}
