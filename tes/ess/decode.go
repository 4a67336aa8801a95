package ess

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/ronanpaixao/SkyAlchemy/tes/ess/schange"
	"github.com/ronanpaixao/SkyAlchemy/tes/ess/sglobal"
	"github.com/ronanpaixao/SkyAlchemy/tes/ess/sheader"
	"github.com/ronanpaixao/SkyAlchemy/tes/lbytes"
	"github.com/ronanpaixao/SkyAlchemy/tes/refid"
)

type decoder struct {
	reader   *lbytes.Reader
	options  Options
	document *Document
}

// Decode reads a whole savegame. It fails on the first structural problem
// and returns no partial document.
func Decode(bs []byte, options Options) (*Document, error) {
	d := decoder{
		reader:  lbytes.NewBytesReader(bs),
		options: options,
		document: &Document{
			Registry: refid.NewRegistry(options.Defaults),
		},
	}
	steps := []struct {
		stage Stage
		run   func() error
	}{
		{stage: StageHeader, run: d.decodeHeader},
		{stage: StageGlobalData1, run: d.globalDataStep(
			func(t sheader.FileLocationTable) (uint32, uint32) {
				return t.GlobalDataTable1Offset, t.GlobalDataTable1Count
			},
		)},
		{stage: StageGlobalData2, run: d.globalDataStep(
			func(t sheader.FileLocationTable) (uint32, uint32) {
				return t.GlobalDataTable2Offset, t.GlobalDataTable2Count
			},
		)},
		{stage: StageChangeForms, run: d.decodeChangeForms},
		{stage: StageGlobalData3, run: d.globalDataStep(
			func(t sheader.FileLocationTable) (uint32, uint32) {
				return t.GlobalDataTable3Offset, t.GlobalDataTable3Count
			},
		)},
		{stage: StageFormIDs, run: d.decodeFormIDs},
		{stage: StageUnknownTable, run: d.checkUnknownTable3},
	}
	for _, step := range steps {
		if err := step.run(); err != nil {
			err := errors.Wrapf(err, `ess.Decode error in stage "%s"`, step.stage)
			return nil, err
		}
		log.Debug().
			Str("stage", string(step.stage)).
			Int64("offset", d.reader.Offset()).
			Msg("savegame stage decoded")
		d.progress(step.stage, 1, 1)
	}
	d.document.Registry.Freeze()
	d.progress(StageDone, 1, 1)
	return d.document, nil
}

func (d *decoder) progress(stage Stage, done int, total int) {
	if d.options.OnProgress == nil {
		return
	}
	d.options.OnProgress(Progress{
		Stage:  stage,
		Offset: d.reader.Offset(),
		Size:   d.reader.Size(),
		Done:   done,
		Total:  total,
	})
}

func (d *decoder) decodeHeader() error {
	if err := sheader.ReadMagic(d.reader); err != nil {
		return err
	}
	header, err := sheader.DecodeHeader(d.reader)
	if err != nil {
		return err
	}
	d.document.Header = *header
	size, ok := header.ScreenshotSize(d.reader.Remaining())
	if !ok {
		return lbytes.ErrMalformedPrimitive{
			Kind:   lbytes.KindBytes,
			Offset: d.reader.Offset(),
			Reason: fmt.Sprintf("screenshot of %dx%d exceeds the %d remaining bytes", header.ShotWidth, header.ShotHeight, d.reader.Remaining()),
		}
	}
	if d.document.Screenshot, err = d.reader.ReadBytes(size); err != nil {
		return errors.Wrap(err, "decodeHeader error reading screenshot")
	}
	if d.document.FormVersion, err = d.reader.ReadUint8(); err != nil {
		return errors.Wrap(err, "decodeHeader error reading form version")
	}
	if d.document.Plugins, err = sheader.DecodePlugins(d.reader); err != nil {
		return err
	}
	table, err := sheader.DecodeFileLocationTable(d.reader)
	if err != nil {
		return err
	}
	d.document.FileLocationTable = *table
	log.Debug().
		Uint32("version", header.Version).
		Str("player", header.PlayerName).
		Int("plugins", len(d.document.Plugins)).
		Msg("savegame header decoded")
	return nil
}

func (d *decoder) globalDataStep(
	locate func(t sheader.FileLocationTable) (uint32, uint32),
) func() error {
	return func() error {
		offset, count := locate(d.document.FileLocationTable)
		if err := d.reader.SeekTo(int64(offset)); err != nil {
			return errors.Wrap(err, "globalDataStep error seeking")
		}
		blocks, err := sglobal.DecodeTable(d.reader, count, d.document.Registry)
		if err != nil {
			return err
		}
		d.document.GlobalData = append(d.document.GlobalData, blocks...)
		return nil
	}
}

func (d *decoder) decodeChangeForms() error {
	table := d.document.FileLocationTable
	if err := d.reader.SeekTo(int64(table.ChangeFormsOffset)); err != nil {
		return errors.Wrap(err, "decodeChangeForms error seeking")
	}
	total := int(table.ChangeFormCount)
	d.document.ChangeForms = make([]schange.ChangeForm, 0, d.reader.Capacity(table.ChangeFormCount, schange.MinHeaderSize))
	for i := 0; i < total; i++ {
		cf, err := schange.Decode(d.reader)
		if err != nil {
			err := errors.Wrapf(err, "decodeChangeForms error reading change form %d of %d", i, total)
			return err
		}
		d.document.ChangeForms = append(d.document.ChangeForms, cf)
		if (i+1)%ProgressInterval == 0 {
			d.progress(StageChangeForms, i+1, total)
		}
	}
	return nil
}

func readUint32Array(reader *lbytes.Reader) ([]uint32, error) {
	count, err := reader.ReadUint32()
	if err != nil {
		return nil, errors.Wrap(err, "readUint32Array error reading count")
	}
	if int64(count)*4 > reader.Remaining() {
		return nil, lbytes.ErrMalformedPrimitive{
			Kind:   lbytes.KindUint32,
			Offset: reader.Offset(),
			Reason: "array count exceeds remaining data",
		}
	}
	values := make([]uint32, count)
	for i := range values {
		if values[i], err = reader.ReadUint32(); err != nil {
			return nil, errors.Wrapf(err, "readUint32Array error reading item %d", i)
		}
	}
	return values, nil
}

// decodeFormIDs reads the form id array and the visited worldspace array
// that follows it, then indexes the form ids.
func (d *decoder) decodeFormIDs() error {
	offset := d.document.FileLocationTable.FormIDArrayCountOffset
	if err := d.reader.SeekTo(int64(offset)); err != nil {
		return errors.Wrap(err, "decodeFormIDs error seeking")
	}
	formIDs, err := readUint32Array(d.reader)
	if err != nil {
		return errors.Wrap(err, "decodeFormIDs error reading form ids")
	}
	d.document.FormIDs = formIDs
	if d.document.VisitedWorldspaces, err = readUint32Array(d.reader); err != nil {
		return errors.Wrap(err, "decodeFormIDs error reading visited worldspaces")
	}
	return d.document.Registry.IndexFormIDs(formIDs)
}

// checkUnknownTable3 requires the declared size of the last table to match
// the rest of the file exactly.
func (d *decoder) checkUnknownTable3() error {
	offset := d.document.FileLocationTable.UnknownTable3Offset
	if err := d.reader.SeekTo(int64(offset)); err != nil {
		return errors.Wrap(err, "checkUnknownTable3 error seeking")
	}
	size, err := d.reader.ReadUint32()
	if err != nil {
		return errors.Wrap(err, "checkUnknownTable3 error reading size")
	}
	if int64(size) != d.reader.Remaining() {
		return lbytes.ErrTrailingDataMismatch{
			Caller:   "ess.checkUnknownTable3",
			Expected: d.reader.Offset() + int64(size),
			Actual:   d.reader.Size(),
		}
	}
	d.document.UnknownTable3Size = size
	if err := d.reader.Skip(int64(size)); err != nil {
		return err
	}
	return d.reader.ExpectEnd("ess.Decode")
}
