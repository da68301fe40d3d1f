// Package services defines the error taxonomy shared by every pipeline stage.
//
// Each stage tags failures with one of the exported sentinel markers so the
// pipeline and its callers can classify with errors.Is. Wrap builds the
// message chain; Kind recovers the stage name for display.
package services
