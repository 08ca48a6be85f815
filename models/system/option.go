// Copyright 2021 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package system

import (
	"context"
	"fmt"

	"code.kwd.dev/wordfilter/models/db"
	"code.kwd.dev/wordfilter/modules/optional"
	"code.kwd.dev/wordfilter/modules/timeutil"
	"code.kwd.dev/wordfilter/modules/util"

	"xorm.io/builder"
)

// Option is a named site option, names are stored as given (they are case sensitive)
type Option struct {
	ID          int64              `xorm:"pk autoincr"`
	Name        string             `xorm:"varchar(191) UNIQUE NOT NULL"`
	Value       string             `xorm:"TEXT"`
	Version     int                `xorm:"version"`
	CreatedUnix timeutil.TimeStamp `xorm:"created"`
	UpdatedUnix timeutil.TimeStamp `xorm:"updated"`
}

// TableName sets the table name for the option struct
func (o *Option) TableName() string {
	return "option"
}

func init() {
	db.RegisterModel(new(Option))
}

// ErrOptionNotExist is returned by DeleteOption when there is no such option
type ErrOptionNotExist struct {
	Name string
}

// IsErrOptionNotExist checks if an error is a ErrOptionNotExist
func IsErrOptionNotExist(err error) bool {
	_, ok := err.(ErrOptionNotExist)
	return ok
}

func (err ErrOptionNotExist) Error() string {
	return fmt.Sprintf("option does not exist [name: %s]", err.Name)
}

func (err ErrOptionNotExist) Unwrap() error {
	return util.ErrNotExist
}

// GetOption returns the value of an option, None when it has never been set
func GetOption(ctx context.Context, name string) (optional.Option[string], error) {
	o := &Option{}
	has, err := db.GetEngine(ctx).Where("name = ?", name).Get(o)
	if err != nil {
		return optional.None[string](), err
	} else if !has {
		return optional.None[string](), nil
	}
	return optional.Some(o.Value), nil
}

// GetOptions returns the values of the options which have been set
func GetOptions(ctx context.Context, names ...string) (map[string]string, error) {
	opts := make([]*Option, 0, len(names))
	if err := db.GetEngine(ctx).Where(builder.In("name", names)).Find(&opts); err != nil {
		return nil, err
	}
	values := make(map[string]string, len(opts))
	for _, o := range opts {
		values[o.Name] = o.Value
	}
	return values, nil
}

// SetOption creates or replaces an option, the last write wins
func SetOption(ctx context.Context, name, value string) error {
	if name == "" {
		return util.NewInvalidArgumentErrorf("option name must not be empty")
	}
	return db.WithTx(ctx, func(ctx context.Context) error {
		e := db.GetEngine(ctx)
		// try to update existing row
		res, err := e.Exec("UPDATE `option` SET version=version+1, value=?, updated_unix=? WHERE name=?", value, timeutil.TimeStampNow(), name)
		if err != nil {
			return err
		}
		if rows, _ := res.RowsAffected(); rows != 0 {
			return nil
		}
		// if no existing row, insert a new row
		_, err = e.Insert(&Option{Name: name, Value: value})
		return err
	})
}

// DeleteOption removes an option
func DeleteOption(ctx context.Context, name string) error {
	n, err := db.GetEngine(ctx).Where("name = ?", name).Delete(&Option{})
	if err != nil {
		return err
	} else if n == 0 {
		return ErrOptionNotExist{Name: name}
	}
	return nil
}
