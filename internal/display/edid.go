package display

import "fmt"

// EdidInfo is the subset of the OS EDID device-info block the fingerprint
// and monitor-enumeration algorithms need: manufacturer id, product code,
// connector instance, and whether the block was valid at all.
type EdidInfo struct {
	ManufacturerID   uint16
	ProductCode      uint16
	ConnectorInstance uint32
	Valid            bool
	DevicePath       string
}

// Identity formats the per-monitor string spec §4.1 step 3 describes:
// "MMMM:PPPP:I" (hex-uppercase, colon-separated) when EDID is valid, else
// "noedid:<monitor-device-path>".
func (e EdidInfo) Identity() string {
	if !e.Valid {
		return fmt.Sprintf("noedid:%s", e.DevicePath)
	}
	return fmt.Sprintf("%04X:%04X:%d", e.ManufacturerID, e.ProductCode, e.ConnectorInstance)
}

// GDIIdentity is the fallback identifier used when the display-config query
// itself fails and monitor enumeration falls back to GDI only (spec §4.1:
// "gdi:<device-name>").
func GDIIdentity(deviceName string) string {
	return fmt.Sprintf("gdi:%s", deviceName)
}
