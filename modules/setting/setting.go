// Copyright 2014 The Gogs Authors. All rights reserved.
// Copyright 2017 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package setting

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"code.kwd.dev/wordfilter/modules/log"

	ini "gopkg.in/ini.v1"
)

var (
	// AppPath represents the path to the binary
	AppPath string
	// AppWorkPath is the "working directory", it contains the "custom" directory and the default "data" directory
	AppWorkPath string
	// CustomPath is the directory holding the custom configuration
	CustomPath string
	// CustomConf is the absolute path of the config file
	CustomConf string

	// Cfg is the loaded configuration, it is never nil after loading
	Cfg *ini.File

	// RunMode is "dev" or "prod"
	RunMode string
	// IsProd reports whether RunMode is "prod"
	IsProd bool
)

func init() {
	var err error
	if AppPath, err = os.Executable(); err != nil {
		AppPath = os.Args[0]
	}
	AppWorkPath = filepath.Dir(AppPath)
	CustomPath = filepath.Join(AppWorkPath, "custom")
	CustomConf = filepath.Join(CustomPath, "conf", "app.ini")
	Cfg = ini.Empty()
}

// ArgWorkPathAndCustomConf holds the paths passed from the command line
type ArgWorkPathAndCustomConf struct {
	WorkPath   string
	CustomPath string
	CustomConf string
}

// InitWorkPathAndCommonConfig resolves the work path, custom path and config file from the
// command line arguments and the environment (WORDFILTER_WORK_DIR, WORDFILTER_CUSTOM).
func InitWorkPathAndCommonConfig(getEnvFn func(name string) string, args ArgWorkPathAndCustomConf) {
	if v := getEnvFn("WORDFILTER_WORK_DIR"); v != "" {
		AppWorkPath = v
	}
	if args.WorkPath != "" {
		AppWorkPath = args.WorkPath
	}
	AppWorkPath, _ = filepath.Abs(AppWorkPath)

	CustomPath = filepath.Join(AppWorkPath, "custom")
	if v := getEnvFn("WORDFILTER_CUSTOM"); v != "" {
		CustomPath = v
	}
	if args.CustomPath != "" {
		CustomPath = args.CustomPath
	}
	if !filepath.IsAbs(CustomPath) {
		CustomPath = filepath.Join(AppWorkPath, CustomPath)
	}

	CustomConf = filepath.Join(CustomPath, "conf", "app.ini")
	if args.CustomConf != "" {
		CustomConf = args.CustomConf
		if !filepath.IsAbs(CustomConf) {
			CustomConf = filepath.Join(AppWorkPath, CustomConf)
		}
	}
}

// NewConfigFromData loads a configuration from an ini string, mostly used by tests
func NewConfigFromData(data string) (*ini.File, error) {
	cfg, err := ini.LoadSources(ini.LoadOptions{IgnoreInlineComment: true}, []byte(data))
	if err != nil {
		return nil, fmt.Errorf("unable to parse config: %w", err)
	}
	return cfg, nil
}

// NewConfigFromFile loads the config file, a missing file results in an empty configuration
func NewConfigFromFile(file string) (*ini.File, error) {
	cfg := ini.Empty(ini.LoadOptions{IgnoreInlineComment: true})
	if file != "" {
		if _, err := os.Stat(file); err == nil {
			if err = cfg.Append(file); err != nil {
				return nil, fmt.Errorf("failed to load config file %q: %w", file, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("unable to check if %q is a file: %w", file, err)
		} else {
			log.Warn("Config file %q does not exist, using defaults", file)
		}
	}
	return cfg, nil
}

// LoadCommonSettings loads the settings from CustomConf, failing hard on errors
func LoadCommonSettings() {
	cfg, err := NewConfigFromFile(CustomConf)
	if err != nil {
		log.Fatal("Unable to load settings: %v", err)
		return
	}
	if err = LoadSettingsFrom(cfg); err != nil {
		log.Fatal("Unable to load settings: %v", err)
	}
}

// LoadSettingsFrom maps every known section of "rootCfg" into the package variables
func LoadSettingsFrom(rootCfg *ini.File) error {
	Cfg = rootCfg

	RunMode = strings.ToLower(rootCfg.Section("").Key("RUN_MODE").MustString("prod"))
	IsProd = RunMode == "prod"

	loadLogFrom(rootCfg)
	loadServerFrom(rootCfg)
	if err := loadDBSettingFrom(rootCfg); err != nil {
		return err
	}
	if err := loadSecurityFrom(rootCfg); err != nil {
		return err
	}
	loadSessionFrom(rootCfg)
	loadCacheFrom(rootCfg)
	loadMetricsFrom(rootCfg)
	if err := loadCorsFrom(rootCfg); err != nil {
		return err
	}
	loadWordFilterFrom(rootCfg)
	return nil
}
