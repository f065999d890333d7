package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kode4food/strand"
	"github.com/kode4food/strand/pkg/api"
)

// healthResponse reports service liveness and basic engine counters
type healthResponse struct {
	Status      string `json:"status"`
	Service     string `json:"service"`
	Version     string `json:"version"`
	ActiveFlows int    `json:"active_flows"`
}

func (s *Server) handleHealth(c *gin.Context) {
	active := 0
	for _, d := range s.engine.ActiveFlows() {
		if d.Status == api.FlowActive {
			active++
		}
	}

	c.JSON(http.StatusOK, healthResponse{
		Status:      "ok",
		Service:     strand.Name,
		Version:     strand.Version,
		ActiveFlows: active,
	})
}
