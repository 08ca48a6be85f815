// Copyright 2014 The Gogs Authors. All rights reserved.
// Copyright 2019 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package user

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"code.kwd.dev/wordfilter/models/db"
	"code.kwd.dev/wordfilter/modules/timeutil"
	"code.kwd.dev/wordfilter/modules/util"

	"golang.org/x/crypto/bcrypt"
)

// PasswordHashCost is the bcrypt cost of new password hashes, tests lower it
var PasswordHashCost = bcrypt.DefaultCost

var validUsernamePattern = regexp.MustCompile(`^[\da-zA-Z][\w.-]{0,38}$`)

// User represents an operator who can sign in
type User struct {
	ID            int64              `xorm:"pk autoincr"`
	LowerName     string             `xorm:"UNIQUE NOT NULL"`
	Name          string             `xorm:"UNIQUE NOT NULL"`
	Passwd        string             `xorm:"NOT NULL"`
	IsAdmin       bool               `xorm:"INDEX"`
	Capabilities  string             `xorm:"TEXT"`
	CreatedUnix   timeutil.TimeStamp `xorm:"INDEX created"`
	UpdatedUnix   timeutil.TimeStamp `xorm:"INDEX updated"`
	LastLoginUnix timeutil.TimeStamp `xorm:"INDEX"`
}

func init() {
	db.RegisterModel(new(User))
}

// ErrUserNotExist represents a "UserNotExist" kind of error.
type ErrUserNotExist struct {
	UID  int64
	Name string
}

// IsErrUserNotExist checks if an error is a ErrUserNotExist.
func IsErrUserNotExist(err error) bool {
	_, ok := err.(ErrUserNotExist)
	return ok
}

func (err ErrUserNotExist) Error() string {
	return fmt.Sprintf("user does not exist [uid: %d, name: %s]", err.UID, err.Name)
}

// Unwrap unwraps this error as a ErrNotExist error
func (err ErrUserNotExist) Unwrap() error {
	return util.ErrNotExist
}

// ErrUserAlreadyExist represents a "user already exists" error.
type ErrUserAlreadyExist struct {
	Name string
}

// IsErrUserAlreadyExist checks if an error is a ErrUserAlreadyExists.
func IsErrUserAlreadyExist(err error) bool {
	_, ok := err.(ErrUserAlreadyExist)
	return ok
}

func (err ErrUserAlreadyExist) Error() string {
	return fmt.Sprintf("user already exists [name: %s]", err.Name)
}

// Unwrap unwraps this error as a ErrExist error
func (err ErrUserAlreadyExist) Unwrap() error {
	return util.ErrAlreadyExist
}

// SetPassword hashes a password and stores it on the user
func (u *User) SetPassword(passwd string) error {
	if passwd == "" {
		return util.NewInvalidArgumentErrorf("password must not be empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(passwd), PasswordHashCost)
	if err != nil {
		return err
	}
	u.Passwd = string(hash)
	return nil
}

// ValidatePassword checks if the given password matches the one belonging to the user.
func (u *User) ValidatePassword(passwd string) bool {
	return u.Passwd != "" && bcrypt.CompareHashAndPassword([]byte(u.Passwd), []byte(passwd)) == nil
}

// CreateUser creates a record in the database for a new user
func CreateUser(ctx context.Context, u *User, passwd string) error {
	if !validUsernamePattern.MatchString(u.Name) {
		return util.NewInvalidArgumentErrorf("invalid user name %q", u.Name)
	}
	u.LowerName = strings.ToLower(u.Name)
	if err := u.SetPassword(passwd); err != nil {
		return err
	}

	return db.WithTx(ctx, func(ctx context.Context) error {
		exist, err := db.GetEngine(ctx).Exist(&User{LowerName: u.LowerName})
		if err != nil {
			return err
		} else if exist {
			return ErrUserAlreadyExist{u.Name}
		}
		return db.Insert(ctx, u)
	})
}

// GetUserByID returns the user object by given ID if exists.
func GetUserByID(ctx context.Context, id int64) (*User, error) {
	u := new(User)
	has, err := db.GetEngine(ctx).ID(id).Get(u)
	if err != nil {
		return nil, err
	} else if !has {
		return nil, ErrUserNotExist{UID: id}
	}
	return u, nil
}

// GetUserByName returns user by given name.
func GetUserByName(ctx context.Context, name string) (*User, error) {
	if len(name) == 0 {
		return nil, ErrUserNotExist{Name: name}
	}
	u := &User{LowerName: strings.ToLower(name)}
	has, err := db.GetEngine(ctx).Get(u)
	if err != nil {
		return nil, err
	} else if !has {
		return nil, ErrUserNotExist{Name: name}
	}
	return u, nil
}

// UpdateUserCols update user according special columns
func UpdateUserCols(ctx context.Context, u *User, cols ...string) error {
	_, err := db.GetEngine(ctx).ID(u.ID).Cols(cols...).Update(u)
	return err
}

// SetLastLogin records the current time as the last sign in
func (u *User) SetLastLogin() {
	u.LastLoginUnix = timeutil.TimeStampNow()
}
