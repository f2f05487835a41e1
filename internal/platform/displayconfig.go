//go:build windows

package platform

import (
	"fmt"
	"unsafe"
)

// The DisplayConfig family (QueryDisplayConfig / DisplayConfigGetDeviceInfo)
// is how the DisplayModel gets EDID manufacturer/product/connector data
// without touching the registry directly: DISPLAYCONFIG_DEVICE_INFO_GET_TARGET_NAME
// carries edidManufactureId/edidProductCodeId/connectorInstance plus a
// flags bit telling us whether those ids are valid at all (spec §4.1 step 2).

var (
	procGetDisplayConfigBufferSizes = user32.NewProc("GetDisplayConfigBufferSizes")
	procQueryDisplayConfig          = user32.NewProc("QueryDisplayConfig")
	procDisplayConfigGetDeviceInfo  = user32.NewProc("DisplayConfigGetDeviceInfo")
)

const (
	qdcOnlyActivePaths = 0x00000002

	errInsufficientBuffer = 122
	errSuccess            = 0

	dcTypeGetSourceName = 1
	dcTypeGetTargetName = 2
)

// luid mirrors the Win32 LUID type.
type luid struct {
	LowPart  uint32
	HighPart int32
}

// pathInfo mirrors the parts of DISPLAYCONFIG_PATH_INFO this package reads:
// the source/target identifiers needed to request device info blocks.
type pathInfo struct {
	SourceAdapterID luid
	SourceID        uint32
	TargetAdapterID luid
	TargetID        uint32
	_               [40]byte // remaining DISPLAYCONFIG_PATH_INFO fields, unused
}

type modeInfo [64]byte // DISPLAYCONFIG_MODE_INFO, opaque to this package

// deviceInfoHeader mirrors DISPLAYCONFIG_DEVICE_INFO_HEADER.
type deviceInfoHeader struct {
	Type      uint32
	Size      uint32
	AdapterID luid
	ID        uint32
}

// targetDeviceName mirrors DISPLAYCONFIG_TARGET_DEVICE_NAME.
type targetDeviceName struct {
	Header                  deviceInfoHeader
	Flags                   uint32
	OutputTechnology        uint32
	EdidManufactureID       uint16
	EdidProductCodeID       uint16
	ConnectorInstance       uint32
	MonitorFriendlyDeviceName [64]uint16
	MonitorDevicePath       [128]uint16
}

const targetFlagEdidIDsValid = 0x1

// sourceDeviceName mirrors DISPLAYCONFIG_SOURCE_DEVICE_NAME.
type sourceDeviceName struct {
	Header     deviceInfoHeader
	ViewGdiDeviceName [32]uint16
}

// DisplayPath is one active path returned by QueryDisplayConfig, resolved
// down to the fields DisplayModel needs.
type DisplayPath struct {
	SourceGDIDeviceName string // e.g. \\.\DISPLAY1
	TargetFriendlyName  string
	TargetDevicePath    string
	EdidManufacturerID  uint16
	EdidProductCode     uint16
	ConnectorInstance   uint32
	EdidValid           bool
}

// QueryActiveDisplayPaths enumerates the active display-config paths and
// resolves each to source/target device info. It returns an error carrying
// the Win32 return code when either buffer sizing or the query itself
// fails; DisplayModel then falls back to GDI-only identities.
func QueryActiveDisplayPaths() ([]DisplayPath, error) {
	var numPaths, numModes uint32
	ret, _, _ := procGetDisplayConfigBufferSizes.Call(
		uintptr(qdcOnlyActivePaths),
		uintptr(unsafe.Pointer(&numPaths)),
		uintptr(unsafe.Pointer(&numModes)),
	)
	if ret != errSuccess {
		return nil, fmt.Errorf("GetDisplayConfigBufferSizes failed: %d", ret)
	}
	if numPaths == 0 {
		return nil, nil
	}

	paths := make([]pathInfo, numPaths)
	modes := make([]modeInfo, numModes)

	ret, _, _ = procQueryDisplayConfig.Call(
		uintptr(qdcOnlyActivePaths),
		uintptr(unsafe.Pointer(&numPaths)),
		uintptr(unsafe.Pointer(&paths[0])),
		uintptr(unsafe.Pointer(&numModes)),
		uintptr(unsafe.Pointer(&modes[0])),
		0,
	)
	if ret != errSuccess {
		return nil, fmt.Errorf("QueryDisplayConfig failed: %d", ret)
	}

	out := make([]DisplayPath, 0, numPaths)
	for i := uint32(0); i < numPaths; i++ {
		p := paths[i]

		var src sourceDeviceName
		src.Header.Type = dcTypeGetSourceName
		src.Header.Size = uint32(unsafe.Sizeof(src))
		src.Header.AdapterID = p.SourceAdapterID
		src.Header.ID = p.SourceID
		procDisplayConfigGetDeviceInfo.Call(uintptr(unsafe.Pointer(&src)))

		var tgt targetDeviceName
		tgt.Header.Type = dcTypeGetTargetName
		tgt.Header.Size = uint32(unsafe.Sizeof(tgt))
		tgt.Header.AdapterID = p.TargetAdapterID
		tgt.Header.ID = p.TargetID
		procDisplayConfigGetDeviceInfo.Call(uintptr(unsafe.Pointer(&tgt)))

		out = append(out, DisplayPath{
			SourceGDIDeviceName: utf16ArrayToString(src.ViewGdiDeviceName[:]),
			TargetFriendlyName:  utf16ArrayToString(tgt.MonitorFriendlyDeviceName[:]),
			TargetDevicePath:    utf16ArrayToString(tgt.MonitorDevicePath[:]),
			EdidManufacturerID:  tgt.EdidManufactureID,
			EdidProductCode:     tgt.EdidProductCodeID,
			ConnectorInstance:   tgt.ConnectorInstance,
			EdidValid:           tgt.Flags&targetFlagEdidIDsValid != 0,
		})
	}
	return out, nil
}

func utf16ArrayToString(buf []uint16) string {
	for i, c := range buf {
		if c == 0 {
			return string(utf16Decode(buf[:i]))
		}
	}
	return string(utf16Decode(buf))
}

func utf16Decode(buf []uint16) []rune {
	runes := make([]rune, 0, len(buf))
	for _, c := range buf {
		runes = append(runes, rune(c))
	}
	return runes
}
