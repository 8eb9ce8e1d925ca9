package app

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/data/binding"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"omniview/rename"
)

const logDebounceInterval = 150 * time.Millisecond

type choiceButton struct {
	btn  *widget.Button
	code string
}

type uiState struct {
	service *Service

	w           fyne.Window
	tree        *widget.Tree
	children    map[string][]string
	byPath      map[string]*rename.FileEntry
	detail      *widget.Label
	status      *widget.Label
	log         *widget.Entry
	statusBind  binding.String
	previewBind binding.String
	logBind     binding.String
	logLines    []string
	logMu       sync.Mutex
	logUpdateCh chan struct{}

	choices     map[string][]*choiceButton
	dateEntry   *widget.Entry
	clientEntry *widget.Entry
	jobEntry    *widget.Entry
	descEntry   *widget.Entry
	clientSugg  *fyne.Container
	jobSugg     *fyne.Container

	applyBtn    *widget.Button
	batchBtn    *widget.Button
	historyList *widget.List
	history     []rename.HistoryEntry
}

func buildUI(a fyne.App, svc *Service) *uiState {
	u := &uiState{
		service:  svc,
		children: make(map[string][]string),
		byPath:   make(map[string]*rename.FileEntry),
		choices:  make(map[string][]*choiceButton),
	}
	cfg := svc.Config()
	u.w = a.NewWindow("OmniView Workspace")

	u.statusBind = binding.NewString()
	_ = u.statusBind.Set("Ready")
	u.previewBind = binding.NewString()
	u.logBind = binding.NewString()
	u.startLogUpdater()

	u.log = widget.NewEntryWithData(u.logBind)
	u.log.MultiLine = true
	u.log.Wrapping = fyne.TextWrapWord
	u.log.SetPlaceHolder("Activity log")
	u.log.Disable()

	u.status = widget.NewLabelWithData(u.statusBind)
	u.detail = widget.NewLabel("No file selected")
	u.detail.Wrapping = fyne.TextWrapWord

	explorer := u.buildExplorer()
	toolchest := u.buildToolchest()
	u.rebuildTreeIndex()

	middle := container.NewBorder(
		container.NewVBox(
			widget.NewLabelWithStyle("Selection", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			u.detail,
			widget.NewSeparator(),
		),
		container.NewVBox(
			widget.NewSeparator(),
			widget.NewLabelWithStyle("Activity", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			container.NewMax(u.log),
			u.status,
		),
		nil, nil,
		u.buildHistoryPane(),
	)

	inner := container.NewHSplit(middle, toolchest)
	inner.Offset = 0.45
	split := container.NewHSplit(explorer, inner)
	split.Offset = 0.28

	u.w.SetContent(split)
	u.w.Resize(fyne.NewSize(cfg.WindowWidth, cfg.WindowHeight))

	dirs, files := svc.Stats()
	u.appendLog(fmt.Sprintf("opened %s (%d folders, %d files)", cfg.WorkspaceDir, dirs, files))
	u.refreshChoices()
	u.refreshPreview()
	return u
}

func (u *uiState) engine() *rename.Engine { return u.service.Engine() }

func (u *uiState) refreshPreview() {
	name := u.engine().Preview()
	if name == "" {
		name = "(select a file and set segments)"
	}
	_ = u.previewBind.Set(name)
	u.refreshBatchButton()
}

func (u *uiState) refreshBatchButton() {
	if u.batchBtn == nil {
		return
	}
	n := u.service.CheckedCount()
	if n == 0 {
		u.batchBtn.SetText("Batch Rename")
		u.batchBtn.Disable()
		return
	}
	u.batchBtn.SetText(fmt.Sprintf("Batch Rename (%d)", n))
	u.batchBtn.Enable()
}

func (u *uiState) refreshChoices() {
	segs := u.engine().Segments()
	for field, btns := range u.choices {
		active := segs.Value(field)
		for _, cb := range btns {
			if cb.code == active {
				cb.btn.Importance = widget.HighImportance
			} else {
				cb.btn.Importance = widget.MediumImportance
			}
			cb.btn.Refresh()
		}
	}
}

// refreshInputs pushes the segment values back into the free-text
// entries after a clear or a completed rename.
func (u *uiState) refreshInputs() {
	segs := u.engine().Segments()
	u.dateEntry.SetText(segs.Value(rename.FieldDate))
	u.clientEntry.SetText(segs.Value(rename.FieldClient))
	u.jobEntry.SetText(segs.Value(rename.FieldJob))
	u.descEntry.SetText(segs.Value(rename.FieldDesc))
}

func (u *uiState) refreshDetail(entry *rename.FileEntry) {
	if entry == nil {
		u.detail.SetText("No file selected")
		return
	}
	if entry.IsDir() {
		u.detail.SetText(fmt.Sprintf("%s\nfolder, %d items", entry.Path, len(entry.Children)))
		return
	}
	u.detail.SetText(fmt.Sprintf("%s\n%s, %s", entry.Path, typeBadge(entry.Ext), formatSize(entry.Size)))
}

func (u *uiState) refreshHistory() {
	u.history = u.engine().History().Entries()
	u.historyList.Refresh()
}

func (u *uiState) onApply() {
	res, err := u.service.ApplyRename(context.Background())
	if err != nil {
		u.reportError("rename", err)
		return
	}
	u.rebuildTreeIndex()
	u.tree.Refresh()
	u.refreshInputs()
	u.refreshChoices()
	u.refreshPreview()
	u.refreshHistory()
	u.refreshDetail(u.engine().ActiveFile())
	u.setStatus(fmt.Sprintf("Renamed to %s", res.NewName))
	u.appendLog(fmt.Sprintf("renamed %s -> %s", res.OldName, res.NewName))
}

func (u *uiState) onBatch() {
	n := u.service.CheckedCount()
	if n == 0 {
		return
	}
	dialog.ShowConfirm("Batch Rename",
		fmt.Sprintf("Rename %d checked files with the current template?", n),
		func(ok bool) {
			if !ok {
				return
			}
			u.runBatch()
		}, u.w)
}

func (u *uiState) runBatch() {
	res, err := u.service.ApplyBatch(context.Background())
	if err != nil {
		u.reportError("batch rename", err)
		return
	}
	u.rebuildTreeIndex()
	u.tree.Refresh()
	u.refreshHistory()
	u.refreshBatchButton()
	u.setStatus(fmt.Sprintf("Batch renamed %d/%d files", res.Succeeded, res.Total))
	u.appendLog(fmt.Sprintf("batch renamed %d/%d files", res.Succeeded, res.Total))
	for _, f := range res.Failures {
		u.appendLog(fmt.Sprintf("batch failed for %s: %v", f.Path, f.Err))
	}
	if len(res.Failures) > 0 {
		dialog.ShowInformation("Batch Rename",
			fmt.Sprintf("%d of %d files failed; see the activity log.", len(res.Failures), res.Total), u.w)
	}
}

func (u *uiState) onClear() {
	u.engine().ClearSegments()
	u.refreshInputs()
	u.refreshChoices()
	u.refreshPreview()
	u.setStatus("Segments cleared")
}

func (u *uiState) reportError(op string, err error) {
	if rename.IsValidation(err) {
		u.setStatus(capitalize(err.Error()))
		return
	}
	dialog.ShowError(err, u.w)
	u.setStatus("Error")
	u.appendLog(fmt.Sprintf("%s error: %v", op, err))
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func (u *uiState) appendLog(msg string) {
	now := time.Now().Format("15:04:05")
	line := fmt.Sprintf("[%s] %s", now, msg)

	u.logMu.Lock()
	u.logLines = append(u.logLines, line)
	if len(u.logLines) > 200 {
		u.logLines = u.logLines[len(u.logLines)-200:]
	}
	u.logMu.Unlock()

	if u.logUpdateCh == nil {
		u.flushLog()
		return
	}
	select {
	case u.logUpdateCh <- struct{}{}:
	default:
	}
}

func (u *uiState) startLogUpdater() {
	if u.logUpdateCh != nil {
		return
	}
	u.logUpdateCh = make(chan struct{}, 1)
	go u.logUpdateLoop()
}

func (u *uiState) logUpdateLoop() {
	timer := time.NewTimer(logDebounceInterval)
	if !timer.Stop() {
		<-timer.C
	}
	for {
		select {
		case <-u.logUpdateCh:
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(logDebounceInterval)
		case <-timer.C:
			u.flushLog()
		}
	}
}

func (u *uiState) flushLog() {
	u.logMu.Lock()
	text := strings.Join(u.logLines, "\n")
	u.logMu.Unlock()
	_ = u.logBind.Set(text)
}

func (u *uiState) setStatus(text string) {
	_ = u.statusBind.Set(text)
}
