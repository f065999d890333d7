package server

import (
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/kode4food/strand/pkg/journal"
	"github.com/kode4food/strand/pkg/api"
)

// stepsResponse returns a flow's recorded step trail
type stepsResponse struct {
	FlowID api.ID           `json:"flow_id"`
	Steps  []*journal.Entry `json:"steps"`
	Count  int              `json:"count"`
}

var (
	ErrInvalidFlowID = errors.New("invalid flow id")
	ErrFlowNotFound  = errors.New("flow not found")
	ErrGetFlowSteps  = errors.New("failed to get flow steps")
)

func (s *Server) listFlows(c *gin.Context) {
	flows := s.engine.ActiveFlows()
	slices.SortFunc(flows, func(l, r *api.FlowDigest) int {
		return int(l.FlowID - r.FlowID)
	})

	c.JSON(http.StatusOK, api.FlowsListResponse{
		Flows: flows,
		Count: len(flows),
	})
}

func (s *Server) getFlow(c *gin.Context) {
	flowID, ok := parseFlowID(c)
	if !ok {
		return
	}

	digest, ok := s.engine.FlowDigest(flowID)
	if !ok {
		c.JSON(http.StatusNotFound, api.ErrorResponse{
			Error:  fmt.Sprintf("%s: %d", ErrFlowNotFound, flowID),
			Status: http.StatusNotFound,
		})
		return
	}

	c.JSON(http.StatusOK, digest)
}

func (s *Server) getFlowSteps(c *gin.Context) {
	flowID, ok := parseFlowID(c)
	if !ok {
		return
	}

	steps, err := s.journal.Steps(c.Request.Context(), flowID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{
			Error:  fmt.Sprintf("%s: %v", ErrGetFlowSteps, err),
			Status: http.StatusInternalServerError,
		})
		return
	}

	c.JSON(http.StatusOK, stepsResponse{
		FlowID: flowID,
		Steps:  steps,
		Count:  len(steps),
	})
}

func parseFlowID(c *gin.Context) (api.ID, bool) {
	raw := c.Param("flowID")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{
			Error:  fmt.Sprintf("%s: %q", ErrInvalidFlowID, raw),
			Status: http.StatusBadRequest,
		})
		return 0, false
	}
	return api.ID(id), true
}
