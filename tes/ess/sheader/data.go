// Package sheader decodes the fixed-layout parts at the start of a
// savegame: the header block, the plugin list and the file location table.
package sheader

import (
	"time"
)

type (
	Header struct {
		Version            uint32    `json:"version"`
		SaveNumber         uint32    `json:"save_number"`
		PlayerName         string    `json:"player_name"`
		PlayerLevel        uint32    `json:"player_level"`
		PlayerLocation     string    `json:"player_location"`
		GameDate           string    `json:"game_date"`
		PlayerRaceEditorID string    `json:"player_race_editor_id"`
		PlayerSex          Sex       `json:"player_sex"`
		PlayerCurExp       float32   `json:"player_cur_exp"`
		PlayerLvlUpExp     float32   `json:"player_lvl_up_exp"`
		Filetime           time.Time `json:"filetime"`
		ShotWidth          uint32    `json:"shot_width"`
		ShotHeight         uint32    `json:"shot_height"`
	}
	Sex uint16
	// FileLocationTable holds the absolute offsets and counts of the
	// savegame tables.
	FileLocationTable struct {
		FormIDArrayCountOffset uint32 `json:"form_id_array_count_offset"`
		UnknownTable3Offset    uint32 `json:"unknown_table3_offset"`
		GlobalDataTable1Offset uint32 `json:"global_data_table1_offset"`
		GlobalDataTable2Offset uint32 `json:"global_data_table2_offset"`
		ChangeFormsOffset      uint32 `json:"change_forms_offset"`
		GlobalDataTable3Offset uint32 `json:"global_data_table3_offset"`
		GlobalDataTable1Count  uint32 `json:"global_data_table1_count"`
		GlobalDataTable2Count  uint32 `json:"global_data_table2_count"`
		GlobalDataTable3Count  uint32 `json:"global_data_table3_count"`
		ChangeFormCount        uint32 `json:"change_form_count"`
	}
)

const (
	Magic      = "TESV_SAVEGAME"
	MinVersion = 7
	MaxVersion = 9
	// ReservedWords follow the file location table fields.
	ReservedWords = 15
	// FileLocationTableSize is the table size in bytes, reserved words
	// included.
	FileLocationTableSize = (10 + ReservedWords) * 4
	// ScreenshotChannels is the number of bytes per screenshot pixel (RGB).
	ScreenshotChannels = 3
)

const (
	SexMale   = Sex(0)
	SexFemale = Sex(1)
)

var sexNames = map[Sex]string{
	SexMale:   "male",
	SexFemale: "female",
}

func (s Sex) String() string {
	return sexNames[s]
}

// ScreenshotSize is the byte length of the raw RGB screenshot; ok is false
// when that length exceeds limit.
func (h Header) ScreenshotSize(limit int64) (size int, ok bool) {
	if h.ShotWidth == 0 || h.ShotHeight == 0 {
		return 0, true
	}
	row := uint64(ScreenshotChannels) * uint64(h.ShotWidth)
	if limit < 0 || uint64(h.ShotHeight) > uint64(limit)/row {
		return 0, false
	}
	return int(row * uint64(h.ShotHeight)), true
}
