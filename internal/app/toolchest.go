package app

import (
	"fmt"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"omniview/rename"
)

// buildToolchest assembles the right pane: one control group per
// taxonomy field, the live filename preview, and the action buttons.
func (u *uiState) buildToolchest() fyne.CanvasObject {
	var groups []fyne.CanvasObject
	for _, field := range u.engine().Taxonomy().Fields {
		groups = append(groups, u.buildFieldGroup(field)...)
	}

	preview := widget.NewLabelWithData(u.previewBind)
	preview.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	preview.Wrapping = fyne.TextWrapBreak

	u.applyBtn = widget.NewButtonWithIcon("Apply Rename", theme.ConfirmIcon(), func() { u.onApply() })
	u.applyBtn.Importance = widget.HighImportance
	clearBtn := widget.NewButtonWithIcon("Clear", theme.ContentClearIcon(), func() { u.onClear() })
	u.batchBtn = widget.NewButtonWithIcon("Batch Rename", theme.MediaSkipNextIcon(), func() { u.onBatch() })
	u.batchBtn.Disable()

	box := container.NewVBox(
		widget.NewLabelWithStyle("Renaming Toolchest", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewSeparator(),
	)
	box.Objects = append(box.Objects, groups...)
	box.Objects = append(box.Objects,
		widget.NewSeparator(),
		widget.NewLabelWithStyle("Preview", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		preview,
		container.NewGridWithColumns(2, u.applyBtn, clearBtn),
		u.batchBtn,
	)
	return container.NewVScroll(box)
}

func (u *uiState) buildFieldGroup(field rename.TaxonomyField) []fyne.CanvasObject {
	header := widget.NewLabelWithStyle(field.Label, fyne.TextAlignLeading, fyne.TextStyle{Bold: true})

	if field.FixedChoice() {
		key := field.Key
		btns := make([]fyne.CanvasObject, 0, len(field.Options))
		for _, opt := range field.Options {
			code := opt.Code
			b := widget.NewButton(code, func() { u.onChoice(key, code) })
			b.Importance = widget.MediumImportance
			u.choices[key] = append(u.choices[key], &choiceButton{btn: b, code: code})
			btns = append(btns, b)
		}
		return []fyne.CanvasObject{header, container.NewGridWithColumns(4, btns...)}
	}

	switch field.Key {
	case rename.FieldDate:
		u.dateEntry = widget.NewEntry()
		u.dateEntry.SetPlaceHolder("YYYYMMDD")
		u.dateEntry.SetText(u.engine().Segments().Value(rename.FieldDate))
		u.dateEntry.OnChanged = func(v string) { u.onFreeText(rename.FieldDate, v) }
		today := widget.NewButton("Today", func() {
			u.dateEntry.SetText(rename.DateStamp(time.Now()))
		})
		return []fyne.CanvasObject{header, container.NewBorder(nil, nil, nil, today, u.dateEntry)}

	case rename.FieldClient:
		u.clientEntry = widget.NewEntry()
		u.clientEntry.SetPlaceHolder("Client code")
		u.clientSugg = container.NewHBox()
		u.clientEntry.OnChanged = func(v string) {
			u.onFreeText(rename.FieldClient, v)
			u.refreshSuggestions(rename.FieldClient, u.clientSugg, u.clientEntry, v)
		}
		return []fyne.CanvasObject{header, u.clientEntry, u.clientSugg}

	case rename.FieldJob:
		u.jobEntry = widget.NewEntry()
		u.jobEntry.SetPlaceHolder("Job number")
		u.jobSugg = container.NewHBox()
		u.jobEntry.OnChanged = func(v string) {
			u.onFreeText(rename.FieldJob, v)
			u.refreshSuggestions(rename.FieldJob, u.jobSugg, u.jobEntry, v)
		}
		return []fyne.CanvasObject{header, u.jobEntry, u.jobSugg}

	default:
		u.descEntry = widget.NewEntry()
		u.descEntry.SetPlaceHolder("Description")
		u.descEntry.OnChanged = func(v string) { u.onFreeText(rename.FieldDesc, v) }
		return []fyne.CanvasObject{header, u.descEntry}
	}
}

func (u *uiState) onChoice(field, code string) {
	if err := u.engine().Segments().Select(field, code); err != nil {
		u.appendLog(fmt.Sprintf("select %s: %v", field, err))
		return
	}
	u.refreshChoices()
	u.refreshPreview()
}

func (u *uiState) onFreeText(field, value string) {
	if err := u.engine().Segments().SetText(field, value); err != nil {
		u.appendLog(fmt.Sprintf("set %s: %v", field, err))
		return
	}
	u.refreshPreview()
}

// refreshSuggestions rebuilds the prediction buttons under a free-text
// entry from the memory matches for the current input.
func (u *uiState) refreshSuggestions(field string, box *fyne.Container, entry *widget.Entry, query string) {
	box.Objects = nil
	for _, match := range u.engine().Suggest(field, query) {
		value := match
		b := widget.NewButton(value, func() { entry.SetText(value) })
		b.Importance = widget.LowImportance
		box.Objects = append(box.Objects, b)
	}
	box.Refresh()
}

// buildHistoryPane assembles the rename ledger list with CSV export.
func (u *uiState) buildHistoryPane() fyne.CanvasObject {
	u.historyList = widget.NewList(
		func() int { return len(u.history) },
		func() fyne.CanvasObject {
			lbl := widget.NewLabel("")
			lbl.Truncation = fyne.TextTruncateEllipsis
			return lbl
		},
		func(i widget.ListItemID, obj fyne.CanvasObject) {
			if i >= len(u.history) {
				return
			}
			e := u.history[i]
			obj.(*widget.Label).SetText(fmt.Sprintf("%s  %s -> %s",
				e.When.Format("15:04"), e.OldName, e.NewName))
		},
	)

	exportBtn := widget.NewButtonWithIcon("Export CSV", theme.DocumentSaveIcon(), func() { u.onExportHistory() })
	header := container.NewBorder(nil, nil,
		widget.NewLabelWithStyle("Rename History", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		exportBtn)
	return container.NewBorder(header, nil, nil, nil, u.historyList)
}

func (u *uiState) onExportHistory() {
	if u.engine().History().Len() == 0 {
		dialog.ShowInformation("Export", "No renames recorded yet", u.w)
		return
	}
	fd := dialog.NewFileSave(func(uc fyne.URIWriteCloser, err error) {
		if err != nil || uc == nil {
			return
		}
		defer uc.Close()
		if err := u.service.ExportHistory(uc); err != nil {
			dialog.ShowError(err, u.w)
			return
		}
		u.appendLog(fmt.Sprintf("exported %d history entries", u.engine().History().Len()))
	}, u.w)
	fd.SetFileName("rename-history.csv")
	fd.Show()
}
