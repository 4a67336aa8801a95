package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/alexflint/go-arg"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ronanpaixao/SkyAlchemy/config"
	"github.com/ronanpaixao/SkyAlchemy/ds"
)

type (
	Args struct {
		Config  string   `arg:"--config,env:SKYALCHEMY_CONFIG" help:"path to a TOML config file" placeholder:"FILE"`
		Plugins []string `arg:"--plugin,separate" help:"plugin file, repeatable; replaces the configured list" placeholder:"ESM"`
		Strings []string `arg:"--strings,separate" help:"string table file, repeatable; replaces the configured list" placeholder:"FILE"`
		Output  string   `arg:"-o,--output" help:"write JSON here instead of stdout" placeholder:"FILE"`
		Force   bool     `help:"overwrite the output file"`
		Verbose bool     `arg:"-v,--verbose" help:"log at debug level"`

		Plugin      *PluginCmd      `arg:"subcommand:plugin" help:"dump the records of the plugin database"`
		StringTable *StringsCmd     `arg:"subcommand:strings" help:"dump merged string tables"`
		Savegame    *SavegameCmd    `arg:"subcommand:savegame" help:"dump a decoded savegame"`
		Inventory   *InventoryCmd   `arg:"subcommand:inventory" help:"dump the player inventory of a savegame"`
		Interactive *InteractiveCmd `arg:"subcommand:interactive" help:"load with a progress display, then dump the inventory"`
	}
	PluginCmd struct {
		Files []string `arg:"positional" help:"plugin files loaded after the configured ones"`
		Types []string `arg:"--type,separate" help:"record type to dump, repeatable; all when absent" placeholder:"TYPE"`
	}
	StringsCmd struct {
		Files []string `arg:"positional,required" help:"string table files, merged in order"`
	}
	SavegameCmd struct {
		File        string `arg:"positional,required" help:"path to the savegame" placeholder:"SAVE.ess"`
		ChangeForms bool   `arg:"--change-forms" help:"include every change form"`
	}
	InventoryCmd struct {
		File string `arg:"positional,required" help:"path to the savegame" placeholder:"SAVE.ess"`
	}
	InteractiveCmd struct {
		File string `arg:"positional,required" help:"path to the savegame" placeholder:"SAVE.ess"`
	}

	ErrOutputExists struct {
		Path string
	}
)

func (r ErrOutputExists) Error() string {
	return fmt.Sprintf(`"%s" exists; pass --force to overwrite it`, r.Path)
}

func (Args) Description() string {
	des := strings.Join(
		[]string{
			"Read the ingredients off your back.\n",
			"A CLI utility to decode Skyrim plugins (ESM/ESP), string tables",
			"and savegames (ESS) to JSON.",
		},
		"\n",
	)
	des += "\n"
	return des
}

func CheckExistence(path string) bool {
	_, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return false
	}
	return err == nil
}

// Settings merges the config file with the flags; flags win.
func (a Args) Settings() (config.Config, error) {
	settings, err := config.Load(a.Config)
	if err != nil {
		return config.Config{}, err
	}
	if len(a.Plugins) > 0 {
		settings.Plugins = a.Plugins
	}
	if len(a.Strings) > 0 {
		settings.Strings = a.Strings
	}
	if a.Verbose {
		settings.LogLevel = zerolog.DebugLevel.String()
	}
	return settings, nil
}

func SetupLogging(settings config.Config) error {
	level, err := settings.Level()
	if err != nil {
		return err
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	return nil
}

// WriteOutput writes v as JSON to path, or to stdout when path is empty.
func WriteOutput(path string, force bool, v any) error {
	bs, err := ds.DumpJSON(v)
	if err != nil {
		return err
	}
	if path == "" {
		_, err := os.Stdout.Write(bs)
		return err
	}
	if CheckExistence(path) && !force {
		return ErrOutputExists{Path: path}
	}
	if err := os.WriteFile(path, bs, 0644); err != nil {
		err := errors.Wrapf(err, `cli.WriteOutput error writing "%s"`, path)
		return err
	}
	log.Info().Str("path", path).Msg("output written")
	return nil
}

func Run(args Args, settings config.Config) error {
	var (
		value any
		err   error
	)
	switch {
	case args.Plugin != nil:
		settings.Plugins = append(settings.Plugins, args.Plugin.Files...)
		value, err = DumpPlugins(settings, args.Plugin.Types)
	case args.StringTable != nil:
		value, err = DumpStrings(args.StringTable.Files)
	case args.Savegame != nil:
		value, err = DumpSavegame(settings, args.Savegame.File, args.Savegame.ChangeForms)
	case args.Inventory != nil:
		value, err = DumpInventory(settings, args.Inventory.File)
	case args.Interactive != nil:
		value, err = StartInteractive(settings, args.Interactive.File)
	default:
		return ds.ErrUnreachableCode{Caller: "cli.Run"}
	}
	if err != nil {
		return err
	}
	return WriteOutput(args.Output, args.Force, value)
}

func Start() {
	args := Args{}
	parser := arg.MustParse(&args)
	if parser.Subcommand() == nil {
		parser.Fail("missing subcommand")
	}

	settings, err := args.Settings()
	if err != nil {
		println("Error happened reading config: " + err.Error())
		os.Exit(1)
	}
	if err := SetupLogging(settings); err != nil {
		println("Error happened setting up logging: " + err.Error())
		os.Exit(1)
	}
	if err := Run(args, settings); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}
