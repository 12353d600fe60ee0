// Package config holds the runtime options of the glint command and binds
// them to flags, environment variables and an optional config file.
package config

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable glint reads.
const EnvPrefix = "GLINT"

// Options holds all CLI configuration.
type Options struct {
	LogLevel   string
	TreeFile   string
	ConfigFile string
	Width      int
	Height     int
	ColorMode  string
	Border     string
	Skeleton   bool
}

// Border styles accepted by --border.
var borderNames = []string{"single", "rounded", "double", "ascii", "thick", "hidden"}

// NewOptions returns Options with defaults applied.
func NewOptions() *Options {
	return &Options{
		LogLevel:  "info",
		ColorMode: "auto",
		Border:    "single",
	}
}

// AddFlags binds configuration flags to the provided Cobra command.
func (o *Options) AddFlags(cmd *cobra.Command) {
	o.BindFlags(cmd.PersistentFlags())
}

// BindFlags attaches flags to an arbitrary FlagSet and returns the flag names.
func (o *Options) BindFlags(fs *pflag.FlagSet) []string {
	var names []string
	fs.StringVar(&o.LogLevel, "log-level", o.LogLevel, "Log level: debug, info, warn or error")
	names = append(names, "log-level")
	fs.StringVarP(&o.TreeFile, "file", "f", o.TreeFile, "Element tree file (YAML)")
	names = append(names, "file")
	fs.StringVar(&o.ConfigFile, "config", o.ConfigFile, "Config file (default glint.yaml in the working directory)")
	names = append(names, "config")
	fs.IntVarP(&o.Width, "width", "W", o.Width, "Screen width in cells; 0 uses the terminal width")
	names = append(names, "width")
	fs.IntVarP(&o.Height, "height", "H", o.Height, "Screen height in cells; 0 uses the terminal height")
	names = append(names, "height")
	fs.StringVar(&o.ColorMode, "color", o.ColorMode, "Color output: auto, always or never")
	names = append(names, "color")
	fs.StringVar(&o.Border, "border", o.Border, "Default border style: "+strings.Join(borderNames, ", "))
	names = append(names, "border")
	fs.BoolVar(&o.Skeleton, "skeleton", o.Skeleton, "Lay out without reading state; state-dependent values are left out")
	names = append(names, "skeleton")
	return names
}

// NewViper returns a viper instance reading GLINT_* environment variables and
// the config file named by path, or glint.yaml when path is empty.
func NewViper(path string) *viper.Viper {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("glint")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	return v
}

// Load fills flags that were not set on the command line from the
// environment and config file. A missing default config file is not an
// error; a missing explicit one is.
func (o *Options) Load(v *viper.Viper, fs *pflag.FlagSet) error {
	if err := v.BindPFlags(fs); err != nil {
		return errors.Wrap(err, "bind flags")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || o.ConfigFile != "" {
			return errors.Wrap(err, "read config")
		}
	}
	var setErr error
	fs.VisitAll(func(f *pflag.Flag) {
		if setErr != nil || f.Changed || !v.IsSet(f.Name) {
			return
		}
		val := fmt.Sprintf("%v", v.Get(f.Name))
		if val == "" {
			return
		}
		if err := f.Value.Set(val); err != nil {
			setErr = errors.Wrapf(err, "config value for %s", f.Name)
		}
	})
	return setErr
}

// Validate ensures provided options are coherent.
func (o *Options) Validate() error {
	if o.Width < 0 || o.Height < 0 {
		return errors.Errorf("screen size cannot be negative, got %dx%d", o.Width, o.Height)
	}
	switch strings.ToLower(o.ColorMode) {
	case "auto", "always", "never":
		o.ColorMode = strings.ToLower(o.ColorMode)
	default:
		return errors.Errorf("invalid color mode %q (expected auto, always or never)", o.ColorMode)
	}
	o.Border = strings.ToLower(o.Border)
	valid := false
	for _, name := range borderNames {
		if o.Border == name {
			valid = true
			break
		}
	}
	if !valid {
		return errors.Errorf("invalid border %q (expected one of %s)", o.Border, strings.Join(borderNames, ", "))
	}
	if o.TreeFile == "" {
		return errors.New("no tree file given (use --file or GLINT_FILE)")
	}
	return nil
}
