package server

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mcncl/jsonkit/internal/errors"
	"github.com/mcncl/jsonkit/internal/tools"
)

// ToolView is the listing form of a tool.
type ToolView struct {
	Type        tools.ToolType       `json:"type"`
	Name        string               `json:"name"`
	Category    tools.Category       `json:"category"`
	Description string               `json:"description"`
	Parameters  []tools.ParameterDef `json:"parameters"`
}

// ExecuteInput is the body of POST /v1/tools/:type. Text takes precedence
// over Input when both are present.
type ExecuteInput struct {
	Text    *string         `json:"text"`
	Input   json.RawMessage `json:"input"`
	Options map[string]any  `json:"options"`
}

func (in ExecuteInput) document() string {
	if in.Text != nil {
		return *in.Text
	}
	return string(in.Input)
}

func (s *Server) listToolsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		all := s.registry.GetAll()
		views := make([]ToolView, 0, len(all))
		for _, t := range all {
			params := t.Parameters
			if params == nil {
				params = []tools.ParameterDef{}
			}
			views = append(views, ToolView{
				Type:        t.Type,
				Name:        t.Name,
				Category:    t.Category,
				Description: t.Description,
				Parameters:  params,
			})
		}
		c.JSON(http.StatusOK, views)
	}
}

func (s *Server) executeToolHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		t := tools.ToolType(c.Param("type"))
		if !s.registry.Has(t) {
			res := tools.Failed(errors.NewToolNotFoundError(string(t)), nil)
			c.JSON(http.StatusNotFound, res)
			return
		}

		var input ExecuteInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		res := s.registry.ExecuteMap(t, tools.FromText(input.document()), input.Options)
		c.JSON(statusFor(res), res)
	}
}

// statusFor maps an envelope to an HTTP status.
func statusFor(res tools.Result) int {
	if res.Success {
		return http.StatusOK
	}
	switch res.Code {
	case errors.ErrorTypeToolNotFound:
		return http.StatusNotFound
	case errors.ErrorTypeInvalidJSON, errors.ErrorTypeMissingParameter, errors.ErrorTypeInput:
		return http.StatusBadRequest
	default:
		return http.StatusUnprocessableEntity
	}
}
