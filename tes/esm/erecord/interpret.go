package erecord

import (
	"github.com/pkg/errors"

	"github.com/ronanpaixao/SkyAlchemy/tes/esm/efield"
	"github.com/ronanpaixao/SkyAlchemy/tes/lbytes"
)

// text decodes a display string field: a string table id in localized
// files, an inline zstring otherwise.
func (c Context) text(field efield.Field) (string, error) {
	if !c.Localized {
		return lbytes.ZString(field.Data), nil
	}
	_, s, err := field.Reader().ReadLString(c.Strings)
	if err != nil {
		err := errors.Wrapf(err, `erecord text error reading "%s"`, field.Type)
		return "", err
	}
	return s, nil
}

// interpretCommon handles the fields every record type shares. It reports
// whether the field was consumed.
func interpretCommon(common *Common, field efield.Field, ctx Context) (bool, error) {
	switch field.Type {
	case "EDID":
		common.EditorID = lbytes.ZString(field.Data)
		return true, nil
	case "FULL":
		fullName, err := ctx.text(field)
		if err != nil {
			return true, err
		}
		common.FullName = fullName
		return true, nil
	}
	return false, nil
}

// interpretEffect handles EFID and EFIT; EFIT applies to the last EFID.
func interpretEffect(effects *Effects, formID uint32, field efield.Field) (bool, error) {
	switch field.Type {
	case "EFID":
		effectID, err := field.Reader().ReadUint32()
		if err != nil {
			return true, errors.Wrap(err, "EFID error")
		}
		effects.Effects = append(effects.Effects, Effect{EffectID: effectID})
		return true, nil
	case "EFIT":
		if len(effects.Effects) == 0 {
			return true, ErrDanglingEffectData{FormID: formID}
		}
		last := &effects.Effects[len(effects.Effects)-1]
		reader := field.Reader()
		err := error(nil)
		if last.Magnitude, err = reader.ReadFloat32(); err != nil {
			return true, errors.Wrap(err, "EFIT error reading magnitude")
		}
		if last.AreaOfEffect, err = reader.ReadUint32(); err != nil {
			return true, errors.Wrap(err, "EFIT error reading area")
		}
		if last.Duration, err = reader.ReadUint32(); err != nil {
			return true, errors.Wrap(err, "EFIT error reading duration")
		}
		return true, nil
	}
	return false, nil
}

func readValueWeight(field efield.Field) (ValueWeight, error) {
	reader := field.Reader()
	value, err := reader.ReadUint32()
	if err != nil {
		return ValueWeight{}, errors.Wrap(err, "DATA error reading value")
	}
	weight, err := reader.ReadFloat32()
	if err != nil {
		return ValueWeight{}, errors.Wrap(err, "DATA error reading weight")
	}
	return ValueWeight{Value: value, Weight: weight}, nil
}

func readKeywords(field efield.Field) ([]uint32, error) {
	reader := field.Reader()
	keywords := make([]uint32, 0, len(field.Data)/4)
	for reader.Remaining() >= 4 {
		keyword, err := reader.ReadUint32()
		if err != nil {
			return nil, errors.Wrap(err, "KWDA error")
		}
		keywords = append(keywords, keyword)
	}
	return keywords, nil
}

func decodePluginHeader(common Common, fields []efield.Field, ctx Context) (Record, error) {
	record := &PluginHeader{Common: common}
	for _, field := range fields {
		switch field.Type {
		case "HEDR":
			reader := field.Reader()
			err := error(nil)
			if record.Version, err = reader.ReadFloat32(); err != nil {
				return nil, errors.Wrap(err, "HEDR error reading version")
			}
			if record.RecordCount, err = reader.ReadInt(); err != nil {
				return nil, errors.Wrap(err, "HEDR error reading record count")
			}
			if record.NextID, err = reader.ReadUint32(); err != nil {
				return nil, errors.Wrap(err, "HEDR error reading next id")
			}
		case "CNAM":
			record.Author = lbytes.ZString(field.Data)
		case "SNAM":
			record.Description = lbytes.ZString(field.Data)
		case "MAST":
			record.Masters = append(record.Masters, lbytes.ZString(field.Data))
		}
	}
	return record, nil
}

func decodeMagicEffect(common Common, fields []efield.Field, ctx Context) (Record, error) {
	record := &MagicEffect{Common: common}
	for _, field := range fields {
		handled, err := interpretCommon(&record.Common, field, ctx)
		if err != nil {
			return nil, err
		}
		if handled {
			continue
		}
		switch field.Type {
		case "DATA":
			if err := record.readData(field.Reader()); err != nil {
				return nil, err
			}
		case "ESCE":
			counter, err := field.Reader().ReadUint32()
			if err != nil {
				return nil, errors.Wrap(err, "ESCE error")
			}
			record.CounterEffects = append(record.CounterEffects, counter)
		case "DNAM":
			description, err := ctx.text(field)
			if err != nil {
				return nil, err
			}
			record.Description = description
		case "KWDA":
			keywords, err := readKeywords(field)
			if err != nil {
				return nil, err
			}
			record.Keywords = keywords
		}
	}
	return record, nil
}

func (r *MagicEffect) readData(reader *lbytes.Reader) error {
	steps := []func() error{
		func() (err error) { r.Flags, err = reader.ReadUint32(); return },
		func() (err error) { r.BaseCost, err = reader.ReadFloat32(); return },
		func() (err error) { r.RelatedID, err = reader.ReadUint32(); return },
		func() (err error) { r.Skill, err = reader.ReadInt(); return },
		func() (err error) { r.ResistanceAV, err = reader.ReadUint32(); return },
		func() error { return reader.Skip(16) },
		func() (err error) { r.SkillLevel, err = reader.ReadUint32(); return },
		func() (err error) { r.Area, err = reader.ReadUint32(); return },
		func() (err error) { r.CastingTime, err = reader.ReadFloat32(); return },
		func() error { return reader.Skip(12) },
		func() (err error) { r.EffectType, err = reader.ReadUint32(); return },
		func() (err error) { r.PrimaryAV, err = reader.ReadInt(); return },
	}
	for i, step := range steps {
		if err := step(); err != nil {
			return errors.Wrapf(err, "MGEF DATA error at step %d", i)
		}
	}
	return nil
}

func decodeIngredient(common Common, fields []efield.Field, ctx Context) (Record, error) {
	record := &Ingredient{Common: common}
	for _, field := range fields {
		handled, err := interpretCommon(&record.Common, field, ctx)
		if err != nil {
			return nil, err
		}
		if handled {
			continue
		}
		handled, err = interpretEffect(&record.Effects, common.Header.FormID, field)
		if err != nil {
			return nil, err
		}
		if handled {
			continue
		}
		switch field.Type {
		case "DATA":
			valueWeight, err := readValueWeight(field)
			if err != nil {
				return nil, err
			}
			record.ValueWeight = valueWeight
		case "KWDA":
			keywords, err := readKeywords(field)
			if err != nil {
				return nil, err
			}
			record.Keywords = keywords
		}
	}
	return record, nil
}

func decodePotion(common Common, fields []efield.Field, ctx Context) (Record, error) {
	record := &Potion{Common: common}
	for _, field := range fields {
		handled, err := interpretCommon(&record.Common, field, ctx)
		if err != nil {
			return nil, err
		}
		if handled {
			continue
		}
		handled, err = interpretEffect(&record.Effects, common.Header.FormID, field)
		if err != nil {
			return nil, err
		}
		if handled {
			continue
		}
		switch field.Type {
		case "DATA":
			weight, err := field.Reader().ReadFloat32()
			if err != nil {
				return nil, errors.Wrap(err, "ALCH DATA error")
			}
			record.Weight = weight
		case "ENIT":
			reader := field.Reader()
			value, err := reader.ReadUint32()
			if err != nil {
				return nil, errors.Wrap(err, "ALCH ENIT error reading value")
			}
			flags, err := reader.ReadUint32()
			if err != nil {
				return nil, errors.Wrap(err, "ALCH ENIT error reading flags")
			}
			record.Value = value
			record.Flags = PotionFlags(flags)
		case "KWDA":
			keywords, err := readKeywords(field)
			if err != nil {
				return nil, err
			}
			record.Keywords = keywords
		}
	}
	return record, nil
}

func decodeEnchantment(common Common, fields []efield.Field, ctx Context) (Record, error) {
	record := &Enchantment{Common: common}
	for _, field := range fields {
		handled, err := interpretCommon(&record.Common, field, ctx)
		if err != nil {
			return nil, err
		}
		if handled {
			continue
		}
		handled, err = interpretEffect(&record.Effects, common.Header.FormID, field)
		if err != nil {
			return nil, err
		}
		if handled {
			continue
		}
		if field.Type == "ENIT" {
			if err := record.Item.read(field.Reader()); err != nil {
				return nil, err
			}
		}
	}
	return record, nil
}

func (e *EnchantedItem) read(reader *lbytes.Reader) error {
	for _, target := range []*uint32{&e.Cost, &e.Flags, &e.CastType, &e.EnchantAmount, &e.Delivery, &e.EnchantType} {
		value, err := reader.ReadUint32()
		if err != nil {
			return errors.Wrap(err, "ENCH ENIT error")
		}
		*target = value
	}
	err := error(nil)
	if e.ChargeTime, err = reader.ReadFloat32(); err != nil {
		return errors.Wrap(err, "ENCH ENIT error reading charge time")
	}
	if e.BaseEnchantment, err = reader.ReadUint32(); err != nil {
		return errors.Wrap(err, "ENCH ENIT error reading base enchantment")
	}
	return nil
}

func decodeArmor(common Common, fields []efield.Field, ctx Context) (Record, error) {
	record := &Armor{Common: common}
	for _, field := range fields {
		handled, err := interpretCommon(&record.Common, field, ctx)
		if err != nil {
			return nil, err
		}
		if handled {
			continue
		}
		switch field.Type {
		case "EITM":
			record.Enchantment, err = field.Reader().ReadUint32()
		case "EAMT":
			record.EnchantmentAmount, err = field.Reader().ReadUint16()
		case "DESC":
			record.Description, err = ctx.text(field)
		case "DATA":
			record.ValueWeight, err = readValueWeight(field)
		case "DNAM":
			record.ArmorRating, err = field.Reader().ReadUint32()
		}
		if err != nil {
			return nil, errors.Wrapf(err, "ARMO %s error", field.Type)
		}
	}
	return record, nil
}

func decodeMisc(common Common, fields []efield.Field, ctx Context) (Record, error) {
	record := &Misc{Common: common}
	valueWeight, err := decodeValueWeightOnly(&record.Common, fields, ctx)
	if err != nil {
		return nil, err
	}
	record.ValueWeight = valueWeight
	return record, nil
}

func decodeKey(common Common, fields []efield.Field, ctx Context) (Record, error) {
	record := &Key{Common: common}
	valueWeight, err := decodeValueWeightOnly(&record.Common, fields, ctx)
	if err != nil {
		return nil, err
	}
	record.ValueWeight = valueWeight
	return record, nil
}

func decodeValueWeightOnly(common *Common, fields []efield.Field, ctx Context) (ValueWeight, error) {
	valueWeight := ValueWeight{}
	for _, field := range fields {
		handled, err := interpretCommon(common, field, ctx)
		if err != nil {
			return ValueWeight{}, err
		}
		if handled {
			continue
		}
		if field.Type == "DATA" {
			vw, err := readValueWeight(field)
			if err != nil {
				return ValueWeight{}, errors.Wrapf(err, "%s DATA error", common.Header.Type)
			}
			valueWeight = vw
		}
	}
	return valueWeight, nil
}

func decodeScroll(common Common, fields []efield.Field, ctx Context) (Record, error) {
	record := &Scroll{Common: common}
	for _, field := range fields {
		handled, err := interpretCommon(&record.Common, field, ctx)
		if err != nil {
			return nil, err
		}
		if handled {
			continue
		}
		handled, err = interpretEffect(&record.Effects, common.Header.FormID, field)
		if err != nil {
			return nil, err
		}
		if handled {
			continue
		}
		switch field.Type {
		case "DESC":
			record.Description, err = ctx.text(field)
		case "DATA":
			record.ValueWeight, err = readValueWeight(field)
		}
		if err != nil {
			return nil, errors.Wrapf(err, "SCRL %s error", field.Type)
		}
	}
	return record, nil
}

func decodeBook(common Common, fields []efield.Field, ctx Context) (Record, error) {
	record := &Book{Common: common}
	for _, field := range fields {
		handled, err := interpretCommon(&record.Common, field, ctx)
		if err != nil {
			return nil, err
		}
		if handled {
			continue
		}
		switch field.Type {
		case "DESC":
			record.Description, err = ctx.text(field)
		case "CNAM":
			record.Description2, err = ctx.text(field)
		case "DATA":
			err = record.readData(field.Reader())
		}
		if err != nil {
			return nil, errors.Wrapf(err, "BOOK %s error", field.Type)
		}
	}
	return record, nil
}

func (r *Book) readData(reader *lbytes.Reader) error {
	err := error(nil)
	if r.Flags, err = reader.ReadUint8(); err != nil {
		return err
	}
	if r.BookType, err = reader.ReadUint8(); err != nil {
		return err
	}
	if err = reader.Skip(1); err != nil {
		return err
	}
	if r.Teaches, err = reader.ReadUint32(); err != nil {
		return err
	}
	if r.Value, err = reader.ReadUint32(); err != nil {
		return err
	}
	r.Weight, err = reader.ReadFloat32()
	return err
}

func decodeWeapon(common Common, fields []efield.Field, ctx Context) (Record, error) {
	record := &Weapon{Common: common}
	for _, field := range fields {
		handled, err := interpretCommon(&record.Common, field, ctx)
		if err != nil {
			return nil, err
		}
		if handled {
			continue
		}
		switch field.Type {
		case "DESC":
			record.Description, err = ctx.text(field)
		case "CNAM":
			record.Template, err = field.Reader().ReadUint32()
		case "DATA":
			err = record.readData(field.Reader())
		case "EAMT":
			record.EnchantmentCharge, err = field.Reader().ReadUint16()
		case "EITM":
			record.Enchantment, err = field.Reader().ReadUint32()
		}
		if err != nil {
			return nil, errors.Wrapf(err, "WEAP %s error", field.Type)
		}
	}
	return record, nil
}

func (r *Weapon) readData(reader *lbytes.Reader) error {
	err := error(nil)
	if r.Value, err = reader.ReadUint32(); err != nil {
		return err
	}
	if r.Weight, err = reader.ReadFloat32(); err != nil {
		return err
	}
	r.Damage, err = reader.ReadUint16()
	return err
}

func decodeAmmo(common Common, fields []efield.Field, ctx Context) (Record, error) {
	record := &Ammo{Common: common}
	for _, field := range fields {
		handled, err := interpretCommon(&record.Common, field, ctx)
		if err != nil {
			return nil, err
		}
		if handled {
			continue
		}
		switch field.Type {
		case "DESC":
			record.Description, err = ctx.text(field)
		case "DATA":
			err = record.readData(field.Reader())
		case "EAMT":
			record.EnchantmentCharge, err = field.Reader().ReadUint16()
		case "EITM":
			record.Enchantment, err = field.Reader().ReadUint32()
		}
		if err != nil {
			return nil, errors.Wrapf(err, "AMMO %s error", field.Type)
		}
	}
	return record, nil
}

func (r *Ammo) readData(reader *lbytes.Reader) error {
	err := error(nil)
	if r.Projectile, err = reader.ReadUint32(); err != nil {
		return err
	}
	if r.Flags, err = reader.ReadUint32(); err != nil {
		return err
	}
	if r.Damage, err = reader.ReadFloat32(); err != nil {
		return err
	}
	r.Value, err = reader.ReadUint32()
	return err
}

func decodeSoulGem(common Common, fields []efield.Field, ctx Context) (Record, error) {
	record := &SoulGem{Common: common}
	for _, field := range fields {
		handled, err := interpretCommon(&record.Common, field, ctx)
		if err != nil {
			return nil, err
		}
		if handled {
			continue
		}
		switch field.Type {
		case "SOUL":
			soul, readErr := field.Reader().ReadUint8()
			record.Soul, err = SoulSize(soul), readErr
		case "SLCP":
			capacity, readErr := field.Reader().ReadUint8()
			record.Capacity, err = SoulSize(capacity), readErr
		case "DATA":
			record.ValueWeight, err = readValueWeight(field)
		}
		if err != nil {
			return nil, errors.Wrapf(err, "SLGM %s error", field.Type)
		}
	}
	return record, nil
}
