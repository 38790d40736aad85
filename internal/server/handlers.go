package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/manjumh021/flow-manager/internal/engine"
)

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "Flow Manager",
	})
}

// handleValidate reports every problem in a definition in one response.
// It never fails: an invalid definition is a 200 with valid:false.
func (s *Server) handleValidate(c *gin.Context) {
	raw, ok := bindRawDefinition(c)
	if !ok {
		return
	}

	violations := engine.Check(raw)
	valid := true
	for _, v := range violations {
		if v.Severity == engine.SeverityError {
			valid = false
			break
		}
	}

	resp := gin.H{
		"valid":      valid,
		"violations": violations,
	}
	if valid {
		resp["message"] = "flow definition is valid"
	}
	c.JSON(http.StatusOK, resp)
}

// handleExecute runs a flow synchronously and returns the final
// execution state: 200 when COMPLETED, 500 for FAILED or ERROR.
func (s *Server) handleExecute(c *gin.Context) {
	flow, ok := s.parseFlow(c)
	if !ok {
		return
	}

	state := s.orchestrator.Execute(c.Request.Context(), flow)

	code := http.StatusOK
	if state.Status != engine.StatusCompleted {
		code = http.StatusInternalServerError
	}
	c.JSON(code, state)
}

// handleStart launches a run and returns its initial snapshot; callers
// poll /flow/status for progress. The run is detached from the request
// context so a closed connection does not abandon it.
func (s *Server) handleStart(c *gin.Context) {
	flow, ok := s.parseFlow(c)
	if !ok {
		return
	}

	state := s.orchestrator.Begin(flow)
	go s.orchestrator.Run(context.Background(), flow, state.ExecutionID)

	c.JSON(http.StatusAccepted, state)
}

func (s *Server) handleStatus(c *gin.Context) {
	executionID := c.Param("execution_id")

	state, err := s.store.Get(executionID)
	if err != nil {
		if errors.Is(err, engine.ErrExecutionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": fmt.Sprintf("execution ID %q not found", executionID),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, state)
}

func bindRawDefinition(c *gin.Context) (map[string]any, bool) {
	var raw map[string]any
	if err := c.ShouldBindJSON(&raw); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "no JSON data provided",
			"details": err.Error(),
		})
		return nil, false
	}
	return raw, true
}

// parseFlow binds and validates the request body, writing the error
// response itself when the definition is rejected.
func (s *Server) parseFlow(c *gin.Context) (*engine.Flow, bool) {
	raw, ok := bindRawDefinition(c)
	if !ok {
		return nil, false
	}

	flow, err := engine.Parse(raw)
	if err != nil {
		var verr *engine.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":      "invalid flow definition",
				"violations": verr.Violations,
			})
			return nil, false
		}
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid flow definition",
			"details": err.Error(),
		})
		return nil, false
	}
	return flow, true
}
