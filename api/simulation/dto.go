// Package simulationapi exposes a running simulation over HTTP.
package simulationapi

import "github.com/beka-birhanu/vinom-maze/game"

// FrameResponse is the body of GET /simulation.
type FrameResponse struct {
	Running bool       `json:"running"`
	DelayMS int64      `json:"delay_ms"`
	Frame   game.Frame `json:"frame"`
}
