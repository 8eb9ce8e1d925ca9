package app

import (
	"context"
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"omniview/rename"
)

// buildExplorer assembles the left pane: the workspace tree with a
// batch check box per file and a rescan control.
func (u *uiState) buildExplorer() fyne.CanvasObject {
	u.tree = widget.NewTree(
		func(uid widget.TreeNodeID) []widget.TreeNodeID {
			return u.children[uid]
		},
		func(uid widget.TreeNodeID) bool {
			if uid == "" {
				return true
			}
			e, ok := u.byPath[uid]
			return ok && e.IsDir()
		},
		func(branch bool) fyne.CanvasObject {
			if branch {
				return widget.NewLabel("")
			}
			check := widget.NewCheck("", nil)
			badge := widget.NewLabel("")
			badge.TextStyle = fyne.TextStyle{Monospace: true}
			name := widget.NewLabel("")
			name.Truncation = fyne.TextTruncateEllipsis
			return container.NewBorder(nil, nil, container.NewHBox(check, badge), nil, name)
		},
		func(uid widget.TreeNodeID, branch bool, obj fyne.CanvasObject) {
			e, ok := u.byPath[uid]
			if !ok {
				return
			}
			if branch {
				obj.(*widget.Label).SetText(e.Name)
				return
			}
			row := obj.(*fyne.Container)
			left := row.Objects[1].(*fyne.Container)
			check := left.Objects[0].(*widget.Check)
			badge := left.Objects[1].(*widget.Label)
			name := row.Objects[0].(*widget.Label)

			check.OnChanged = nil
			check.SetChecked(u.service.IsChecked(uid))
			check.OnChanged = func(bool) {
				if _, err := u.service.ToggleChecked(uid); err != nil {
					u.appendLog(fmt.Sprintf("check %s: %v", uid, err))
				}
				u.refreshBatchButton()
			}
			badge.SetText(typeBadge(e.Ext))
			name.SetText(e.Name)
		},
	)
	u.tree.OnSelected = func(uid widget.TreeNodeID) {
		entry, err := u.service.SelectPath(uid)
		if err != nil {
			u.appendLog(fmt.Sprintf("select %s: %v", uid, err))
			return
		}
		u.refreshDetail(entry)
		u.refreshPreview()
	}

	rescanBtn := widget.NewButtonWithIcon("Rescan", theme.ViewRefreshIcon(), func() { u.onRescan() })
	header := container.NewBorder(nil, nil,
		widget.NewLabelWithStyle("Explorer", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		rescanBtn)
	return container.NewBorder(header, nil, nil, nil, u.tree)
}

// rebuildTreeIndex rebuilds the uid lookup maps after a scan.
func (u *uiState) rebuildTreeIndex() {
	children := make(map[string][]string)
	byPath := make(map[string]*rename.FileEntry)
	var walk func(parent string, list []*rename.FileEntry)
	walk = func(parent string, list []*rename.FileEntry) {
		for _, e := range list {
			children[parent] = append(children[parent], e.Path)
			byPath[e.Path] = e
			if e.IsDir() {
				walk(e.Path, e.Children)
			}
		}
	}
	walk("", u.service.Entries())
	u.children = children
	u.byPath = byPath
}

func (u *uiState) onRescan() {
	if err := u.service.Rescan(context.Background()); err != nil {
		u.reportError("rescan", err)
		return
	}
	u.rebuildTreeIndex()
	u.tree.Refresh()
	u.refreshBatchButton()
	dirs, files := u.service.Stats()
	u.setStatus(fmt.Sprintf("Scanned %d folders, %d files", dirs, files))
}
