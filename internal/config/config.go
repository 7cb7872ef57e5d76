// Package config resolves wizard settings from flags, environment and an
// optional YAML file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	fileName  = "wdk-wizard"
	fileType  = "yaml"
	envPrefix = "WDK_WIZARD"
)

// Keys, also used as flag names where a flag exists.
const (
	KeyDir               = "dir"
	KeyCargo             = "cargo"
	KeyPause             = "pause"
	KeyInstallDescriptor = "install_descriptor"
	KeyTUI               = "tui"
	KeyVerbose           = "verbose"
)

// Config is the resolved set of settings for one run
type Config struct {
	// Dir is the directory the crate is created in
	Dir string
	// Cargo is the cargo binary to invoke
	Cargo string
	// Pause holds the console open after the run
	Pause bool
	// InstallDescriptor writes <crate>.inx
	InstallDescriptor bool
	// TUI uses huh forms instead of line prompts
	TUI bool
	// Verbose enables debug logging on stderr
	Verbose bool
	// File is the config file that was read, if any
	File string
}

// Dir returns the per-user config directory (~/.config/wdk-wizard/).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".config", fileName)
	}
	return filepath.Join(home, ".config", fileName)
}

// Load resolves settings. Precedence is flag, then environment
// (WDK_WIZARD_*), then the config file, then defaults. configFile may be
// empty, in which case wdk-wizard.yaml is looked up in the working
// directory and in Dir(). A missing file is fine; a malformed one is not.
func Load(configFile string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	v.SetDefault(KeyDir, ".")
	v.SetDefault(KeyCargo, "cargo")
	v.SetDefault(KeyPause, true)
	v.SetDefault(KeyInstallDescriptor, true)
	v.SetDefault(KeyTUI, false)
	v.SetDefault(KeyVerbose, false)

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	if configFile == "" {
		configFile = findConfigFile()
	}
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	if flags != nil {
		if err := bindFlags(v, flags); err != nil {
			return nil, err
		}
	}

	return &Config{
		Dir:               v.GetString(KeyDir),
		Cargo:             v.GetString(KeyCargo),
		Pause:             v.GetBool(KeyPause),
		InstallDescriptor: v.GetBool(KeyInstallDescriptor),
		TUI:               v.GetBool(KeyTUI),
		Verbose:           v.GetBool(KeyVerbose),
		File:              v.ConfigFileUsed(),
	}, nil
}

// findConfigFile returns the first wdk-wizard.yaml in the working directory
// or Dir(). Only the exact file name matches; an extensionless wdk-wizard
// file is ignored.
func findConfigFile() string {
	for _, dir := range []string{".", Dir()} {
		path := filepath.Join(dir, fileName+"."+fileType)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// flagKeys maps flag names to config keys. Negated flags (--no-pause) are
// handled separately.
var flagKeys = map[string]string{
	"dir":     KeyDir,
	"cargo":   KeyCargo,
	"tui":     KeyTUI,
	"verbose": KeyVerbose,
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for name, key := range flagKeys {
		if f := flags.Lookup(name); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return fmt.Errorf("binding flag --%s: %w", name, err)
			}
		}
	}

	negated := map[string]string{
		"no-pause": KeyPause,
		"no-inx":   KeyInstallDescriptor,
	}
	for name, key := range negated {
		f := flags.Lookup(name)
		if f == nil || !f.Changed {
			continue
		}
		set, err := flags.GetBool(name)
		if err != nil {
			return fmt.Errorf("reading flag --%s: %w", name, err)
		}
		if set {
			v.Set(key, false)
		}
	}

	return nil
}
