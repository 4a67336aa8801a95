package sheader

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/ronanpaixao/SkyAlchemy/tes/lbytes"
)

// ReadMagic consumes the 13 magic bytes.
func ReadMagic(reader *lbytes.Reader) error {
	magic, err := reader.ReadString(len(Magic))
	if err != nil || magic != Magic {
		return ErrBadMagic{Actual: magic}
	}
	return nil
}

// DecodeHeader reads the size-prefixed header block. The version is
// checked before anything else is read.
func DecodeHeader(reader *lbytes.Reader) (*Header, error) {
	size, err := reader.ReadUint32()
	if err != nil {
		err := errors.Wrap(err, "sheader.DecodeHeader error reading size")
		return nil, err
	}
	block, err := reader.Sub(int(size))
	if err != nil {
		err := errors.Wrap(err, "sheader.DecodeHeader error reading header block")
		return nil, err
	}
	version, err := block.ReadUint32()
	if err != nil {
		err := errors.Wrap(err, "sheader.DecodeHeader error reading version")
		return nil, err
	}
	if version < MinVersion || version > MaxVersion {
		return nil, ErrUnsupportedVersion{Version: version}
	}

	instructions := []lbytes.Instruction{
		{
			Key:          "save_number",
			ReadFunction: lbytes.CreateUint32ReadFunction(block),
		},
		{
			Key:          "player_name",
			ReadFunction: lbytes.CreateWStringReadFunction(block),
		},
		{
			Key:          "player_level",
			ReadFunction: lbytes.CreateUint32ReadFunction(block),
		},
		{
			Key:          "player_location",
			ReadFunction: lbytes.CreateWStringReadFunction(block),
		},
		{
			Key:          "game_date",
			ReadFunction: lbytes.CreateWStringReadFunction(block),
		},
		{
			Key:          "player_race_editor_id",
			ReadFunction: lbytes.CreateWStringReadFunction(block),
		},
		{
			Key:          "player_sex",
			ReadFunction: createSexReadFunction(block),
		},
		{
			Key:          "player_cur_exp",
			ReadFunction: lbytes.CreateFloat32ReadFunction(block),
		},
		{
			Key:          "player_lvl_up_exp",
			ReadFunction: lbytes.CreateFloat32ReadFunction(block),
		},
		{
			Key:          "filetime",
			ReadFunction: lbytes.CreateFiletimeReadFunction(block),
		},
		{
			Key:          "shot_width",
			ReadFunction: lbytes.CreateUint32ReadFunction(block),
		},
		{
			Key:          "shot_height",
			ReadFunction: lbytes.CreateUint32ReadFunction(block),
		},
	}
	header, err := lbytes.ExecuteInstructions[Header](instructions)
	if err != nil {
		err := errors.Wrap(err, "sheader.DecodeHeader error")
		return nil, err
	}
	header.Version = version
	if err := block.ExpectEnd("sheader.DecodeHeader"); err != nil {
		return nil, err
	}
	return header, nil
}

func createSexReadFunction(reader *lbytes.Reader) lbytes.ReadFunction {
	return func() (any, error) {
		offset := reader.Offset()
		value, err := reader.ReadUint16()
		if err != nil {
			return nil, err
		}
		if _, ok := sexNames[Sex(value)]; !ok {
			return nil, lbytes.ErrMalformedPrimitive{
				Kind:   lbytes.KindUint16,
				Offset: offset,
				Reason: fmt.Sprintf("player sex must be 0 or 1; got %d", value),
			}
		}
		return value, nil
	}
}

// DecodePlugins reads the size-prefixed plugin list: a uint8 count followed
// by that many wstrings.
func DecodePlugins(reader *lbytes.Reader) ([]string, error) {
	size, err := reader.ReadUint32()
	if err != nil {
		err := errors.Wrap(err, "sheader.DecodePlugins error reading size")
		return nil, err
	}
	block, err := reader.Sub(int(size))
	if err != nil {
		err := errors.Wrap(err, "sheader.DecodePlugins error reading plugin block")
		return nil, err
	}
	count, err := block.ReadUint8()
	if err != nil {
		err := errors.Wrap(err, "sheader.DecodePlugins error reading count")
		return nil, err
	}
	plugins := make([]string, 0, count)
	for i := 0; i < int(count); i++ {
		plugin, err := block.ReadWString()
		if err != nil {
			err := errors.Wrapf(err, "sheader.DecodePlugins error reading plugin %d of %d", i, count)
			return nil, err
		}
		plugins = append(plugins, plugin)
	}
	if err := block.ExpectEnd("sheader.DecodePlugins"); err != nil {
		return nil, err
	}
	return plugins, nil
}

func DecodeFileLocationTable(reader *lbytes.Reader) (*FileLocationTable, error) {
	keys := []string{
		"form_id_array_count_offset",
		"unknown_table3_offset",
		"global_data_table1_offset",
		"global_data_table2_offset",
		"change_forms_offset",
		"global_data_table3_offset",
		"global_data_table1_count",
		"global_data_table2_count",
		"global_data_table3_count",
		"change_form_count",
	}
	instructions := make([]lbytes.Instruction, 0, len(keys)+ReservedWords)
	for _, key := range keys {
		instructions = append(instructions, lbytes.Instruction{
			Key:          key,
			ReadFunction: lbytes.CreateUint32ReadFunction(reader),
		})
	}
	for i := 0; i < ReservedWords; i++ {
		instructions = append(instructions, lbytes.Instruction{
			ReadFunction: lbytes.CreateUint32ReadFunction(reader),
		})
	}
	table, err := lbytes.ExecuteInstructions[FileLocationTable](instructions)
	if err != nil {
		err := errors.Wrap(err, "sheader.DecodeFileLocationTable error")
		return nil, err
	}
	return table, nil
}
