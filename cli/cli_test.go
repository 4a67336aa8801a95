package cli

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/iancoleman/orderedmap"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/ronanpaixao/SkyAlchemy/config"
	"github.com/ronanpaixao/SkyAlchemy/ds"
	"github.com/ronanpaixao/SkyAlchemy/tes/esm"
	"github.com/ronanpaixao/SkyAlchemy/tes/esm/egroup"
	"github.com/ronanpaixao/SkyAlchemy/tes/esm/erecord"
	"github.com/ronanpaixao/SkyAlchemy/tes/ess"
	"github.com/ronanpaixao/SkyAlchemy/tes/ess/schange"
	"github.com/ronanpaixao/SkyAlchemy/tes/ess/sheader"
	"github.com/ronanpaixao/SkyAlchemy/tes/lbytes"
	"github.com/ronanpaixao/SkyAlchemy/tes/refid"
	"github.com/ronanpaixao/SkyAlchemy/tes/strtable"
	"github.com/ronanpaixao/SkyAlchemy/ui"
)

const wheatID = 0x0004B0BA

type CommandTestSuite struct {
	Dir         string
	PluginPath  string
	StringsPath string
	SavePath    string
	Settings    config.Config
	R           *require.Assertions
	suite.Suite
}

func (suite *CommandTestSuite) write(name string, bs []byte) string {
	path := filepath.Join(suite.Dir, name)
	suite.R.NoError(os.WriteFile(path, bs, 0644))
	return path
}

func (suite *CommandTestSuite) SetupSuite() {
	suite.R = suite.Require()
	suite.Dir = suite.T().TempDir()

	wheat := erecord.EncodeRecord(
		erecord.Header{Type: erecord.TypeIngredient, FormID: wheatID},
		erecord.ZStringField("EDID", "Wheat"),
		erecord.ZStringField("FULL", "Wheat"),
		erecord.ValueWeightField(2, 0.1),
	)
	suite.PluginPath = suite.write(
		"Skyrim.esm",
		egroup.EncodeGroup(egroup.Group{Label: erecord.TypeIngredient}, wheat),
	)

	table := strtable.New()
	table.Put(2, "Shout")
	table.Put(1, "Dragonborn")
	suite.StringsPath = suite.write("Skyrim_English.strings", strtable.Encode(table, strtable.KindStrings))

	playerForm := schange.ChangeForm{
		RefID: refid.RefID{Namespace: refid.NamespaceFormIndex, Value: schange.PlayerValue},
		Type:  schange.FormTypeActor,
		Data: lbytes.Concat(
			make([]byte, schange.PlayerInventoryOffset),
			lbytes.MustEncodeVsval(1),
			schange.EncodeInventoryItem(refid.RefID{Namespace: refid.NamespaceDefault, Value: wheatID}, 4),
		),
	}
	suite.SavePath = suite.write("quicksave.ess", ess.Layout{
		Header: sheader.Header{
			Version:        9,
			PlayerName:     "Prisoner",
			PlayerLevel:    3,
			PlayerLocation: "Riverwood",
			Filetime:       time.Date(2016, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		Plugins:     []string{"Skyrim.esm"},
		ChangeForms: [][]byte{schange.EncodeChangeForm(playerForm, false)},
	}.Encode())

	suite.Settings = config.Default()
	suite.Settings.Plugins = []string{suite.PluginPath}
}

func (suite *CommandTestSuite) TestSettingsFlagsOverrideFile() {
	path := suite.write("skyalchemy.toml", []byte(`
plugins = ["Dawnguard.esm"]
strings = ["Dawnguard_English.strings"]
log_level = "warn"
`))
	settings, err := Args{Config: path}.Settings()
	suite.R.NoError(err)
	suite.R.Equal([]string{"Dawnguard.esm"}, settings.Plugins)
	suite.R.Equal("warn", settings.LogLevel)

	settings, err = Args{Config: path, Plugins: []string{"Skyrim.esm"}, Verbose: true}.Settings()
	suite.R.NoError(err)
	suite.R.Equal([]string{"Skyrim.esm"}, settings.Plugins)
	suite.R.Equal([]string{"Dawnguard_English.strings"}, settings.Strings)
	suite.R.Equal("debug", settings.LogLevel)
}

func (suite *CommandTestSuite) TestDumpStrings() {
	om, err := DumpStrings([]string{suite.StringsPath})
	suite.R.NoError(err)
	suite.R.Equal([]string{"00000001", "00000002"}, om.Keys())
	value, _ := om.Get("00000001")
	suite.R.Equal("Dragonborn", value)
}

func (suite *CommandTestSuite) TestDumpPlugins() {
	om, err := DumpPlugins(suite.Settings, nil)
	suite.R.NoError(err)
	plugins, ok := om.Get("plugins")
	suite.R.True(ok)
	suite.R.Len(plugins.([]esm.Plugin), 1)

	value, ok := om.Get("records")
	suite.R.True(ok)
	records := value.(*orderedmap.OrderedMap)
	suite.R.Equal([]string{erecord.TypeIngredient}, records.Keys())

	bs, err := ds.DumpJSON(om)
	suite.R.NoError(err)
	suite.R.Contains(string(bs), `"editor_id": "Wheat"`)
}

func (suite *CommandTestSuite) TestDumpSavegame() {
	om, err := DumpSavegame(suite.Settings, suite.SavePath, false)
	suite.R.NoError(err)
	count, _ := om.Get("change_form_count")
	suite.R.Equal(1, count)
	_, ok := om.Get("change_forms")
	suite.R.False(ok)

	om, err = DumpSavegame(suite.Settings, suite.SavePath, true)
	suite.R.NoError(err)
	_, ok = om.Get("change_forms")
	suite.R.True(ok)
}

func (suite *CommandTestSuite) TestDumpInventory() {
	om, err := DumpInventory(suite.Settings, suite.SavePath)
	suite.R.NoError(err)
	name, _ := om.Get("player")
	suite.R.Equal("Prisoner", name)

	value, _ := om.Get("inventory")
	summaries := value.([]ess.Summary)
	suite.R.Len(summaries, 1)
	suite.R.Equal(erecord.TypeIngredient, summaries[0].Type)
	suite.R.Equal(int32(4), summaries[0].Count)

	value, _ = om.Get("ingredients")
	ingredients := value.([]*orderedmap.OrderedMap)
	suite.R.Len(ingredients, 1)
	ingredientName, _ := ingredients[0].Get("name")
	suite.R.Equal("Wheat", ingredientName)
}

func (suite *CommandTestSuite) TestProgressHooks() {
	var statuses []ui.Status
	_, err := LoadSavegame(suite.Settings, suite.SavePath, ProgressHooks(func(status ui.Status) {
		statuses = append(statuses, status)
	}))
	suite.R.NoError(err)
	suite.R.NotEmpty(statuses)
	last := statuses[len(statuses)-1]
	suite.R.Contains(last.Label, string(ess.StageDone))
}

func (suite *CommandTestSuite) TestLoadSavegameMissing() {
	_, err := LoadSavegame(suite.Settings, filepath.Join(suite.Dir, "missing.ess"), Hooks{})
	suite.R.Error(err)
}

func (suite *CommandTestSuite) TestWriteOutput() {
	path := filepath.Join(suite.Dir, "out.json")
	suite.R.NoError(WriteOutput(path, false, map[string]int{"count": 1}))

	var exists ErrOutputExists
	err := WriteOutput(path, false, map[string]int{"count": 2})
	suite.R.True(errors.As(err, &exists))

	suite.R.NoError(WriteOutput(path, true, map[string]int{"count": 2}))
	bs, err := os.ReadFile(path)
	suite.R.NoError(err)
	suite.R.Equal("{\n  \"count\": 2\n}\n", string(bs))
}

func (suite *CommandTestSuite) TestRunWithoutCommand() {
	var unreachable ds.ErrUnreachableCode
	err := Run(Args{}, suite.Settings)
	suite.R.True(errors.As(err, &unreachable))
}

func TestCommands(t *testing.T) {
	suite.Run(t, new(CommandTestSuite))
}
