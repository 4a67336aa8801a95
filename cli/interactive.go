package cli

import (
	"fmt"

	"github.com/ronanpaixao/SkyAlchemy/config"
	"github.com/ronanpaixao/SkyAlchemy/tes/esm"
	"github.com/ronanpaixao/SkyAlchemy/tes/ess"
	"github.com/ronanpaixao/SkyAlchemy/ui"
)

// ProgressHooks forwards decoder progress to report as ui statuses.
func ProgressHooks(report func(ui.Status)) Hooks {
	return Hooks{
		OnPlugin: func(progress esm.Progress) {
			report(ui.Status{
				Label: fmt.Sprintf("%s (%d records)", progress.Plugin, progress.Records),
				Done:  progress.Offset,
				Total: progress.Size,
			})
		},
		OnSavegame: func(progress ess.Progress) {
			label := string(progress.Stage)
			if progress.Total > 0 {
				label = fmt.Sprintf("%s %d/%d", label, progress.Done, progress.Total)
			}
			report(ui.Status{
				Label: label,
				Done:  progress.Offset,
				Total: progress.Size,
			})
		},
	}
}

func StartInteractive(settings config.Config, path string) (any, error) {
	job := func(report func(ui.Status)) (any, error) {
		doc, err := LoadSavegame(settings, path, ProgressHooks(report))
		if err != nil {
			return nil, err
		}
		return inventoryReport(doc), nil
	}
	return ui.Run("SkyAlchemy: loading "+path, job)
}
