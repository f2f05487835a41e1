package model

import "errors"

var (
	errInvalidLaunchArgConfidence = errors.New("launch argument set but confidence below 80")
	errInvalidExplorerConfidence  = errors.New("EXPLORER_FOLDER source must carry confidence 95")
)
