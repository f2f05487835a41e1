//go:build windows

package fileresolver

import (
	"fmt"
	"strings"

	ole "github.com/go-ole/go-ole"
	"github.com/go-ole/go-ole/oleutil"
)

func init() {
	SetExplorerFolderLookup(ExplorerFolderPath)
}

// ExplorerFolderPath asks the running Explorer's Shell.Application COM
// object for the folder path of the top-level window whose window handle
// matches hwnd, used for the Explorer fast path that bypasses title
// parsing entirely (spec §4.4: "a folder window's title rarely names the
// folder it shows").
func ExplorerFolderPath(hwnd uintptr) (string, error) {
	if err := ole.CoInitialize(0); err != nil {
		return "", fmt.Errorf("CoInitialize: %w", err)
	}
	defer ole.CoUninitialize()

	unknown, err := oleutil.CreateObject("Shell.Application")
	if err != nil {
		return "", fmt.Errorf("creating Shell.Application: %w", err)
	}
	defer unknown.Release()

	shell, err := unknown.QueryInterface(ole.IID_IDispatch)
	if err != nil {
		return "", fmt.Errorf("querying IDispatch: %w", err)
	}
	defer shell.Release()

	windowsResult, err := oleutil.CallMethod(shell, "Windows")
	if err != nil {
		return "", fmt.Errorf("Shell.Application.Windows: %w", err)
	}
	windowsDisp := windowsResult.ToIDispatch()
	defer windowsDisp.Release()

	countResult, err := oleutil.GetProperty(windowsDisp, "Count")
	if err != nil {
		return "", fmt.Errorf("Windows.Count: %w", err)
	}
	count := int(countResult.Val)

	for i := 0; i < count; i++ {
		itemResult, err := oleutil.CallMethod(windowsDisp, "Item", i)
		if err != nil {
			continue
		}
		item := itemResult.ToIDispatch()
		if item == nil {
			continue
		}

		hwndResult, err := oleutil.CallMethod(item, "HWND")
		if err != nil {
			item.Release()
			continue
		}
		if uintptr(hwndResult.Val) != hwnd {
			item.Release()
			continue
		}

		docResult, err := oleutil.GetProperty(item, "Document")
		if err != nil {
			item.Release()
			continue
		}
		doc := docResult.ToIDispatch()

		folderResult, err := oleutil.CallMethod(doc, "Folder")
		doc.Release()
		item.Release()
		if err != nil {
			continue
		}
		folder := folderResult.ToIDispatch()
		defer folder.Release()

		selfResult, err := oleutil.GetProperty(folder, "Self")
		if err != nil {
			continue
		}
		self := selfResult.ToIDispatch()
		defer self.Release()

		pathResult, err := oleutil.GetProperty(self, "Path")
		if err != nil {
			continue
		}
		path := pathResult.ToString()
		if strings.TrimSpace(path) != "" {
			return path, nil
		}
	}

	return "", fmt.Errorf("no matching Explorer window for handle")
}
