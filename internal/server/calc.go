package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"dn-damage-calc/internal/calc"
	"dn-damage-calc/internal/setbonus"
	"dn-damage-calc/internal/stat"
)

// CalcHandler serves the stateless calculator endpoints.
type CalcHandler struct {
	logger *zap.Logger
}

func NewCalcHandler(logger *zap.Logger) *CalcHandler {
	return &CalcHandler{logger: logger}
}

type classMeta struct {
	Name    string       `json:"name"`
	Weights calc.Weights `json:"weights"`
	Primary []stat.Type  `json:"primary"`
}

// Meta lists the closed sets a client needs to build its forms.
// GET /api/meta
func (h *CalcHandler) Meta(c *gin.Context) {
	classes := make([]classMeta, 0, len(calc.Classes))
	for _, cl := range calc.Classes {
		classes = append(classes, classMeta{Name: cl.String(), Weights: cl.Weights(), Primary: cl.PrimaryStats()})
	}
	c.JSON(http.StatusOK, gin.H{
		"classes":      classes,
		"statTypes":    stat.Types,
		"elements":     calc.Elements,
		"patches":      calc.FDTable,
		"defaultPatch": calc.DefaultPatch,
		"maxPresets":   maxPresets,
	})
}

// bindSnapshot reads a {build, skill} body. ?format=browser selects the
// browser calculator layout.
func bindSnapshot(c *gin.Context) (calc.Snapshot, error) {
	raw, err := c.GetRawData()
	if err != nil {
		return calc.Snapshot{}, err
	}
	format := calc.FormatJSON
	if c.Query("format") == string(calc.FormatBrowser) {
		format = calc.FormatBrowser
	}
	return calc.DecodeSnapshot(raw, format)
}

// Calculate evaluates both sides of a build.
// POST /api/calc[?format=browser][&text=1]
func (h *CalcHandler) Calculate(c *gin.Context) {
	snap, err := bindSnapshot(c)
	if err != nil {
		h.logger.Debug("rejected snapshot", zap.String("trace_id", GetTraceID(c)), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cmp := calc.Compare(snap.Build, snap.Skill)
	if c.Query("text") != "" {
		c.String(http.StatusOK, calc.FormatComparison(cmp, snap.Skill))
		return
	}
	c.JSON(http.StatusOK, cmp)
}

var errBadSide = errors.New("side must be 0 or 1")

type toggleRequest struct {
	Tiers  setbonus.List `json:"tiers"`
	Pieces int           `json:"pieces"`
	Side   stat.Side     `json:"side"`
}

// ToggleTier switches a tier on one side, cascading to keep the prefix rule.
// POST /api/setbonus/toggle
func (h *CalcHandler) ToggleTier(c *gin.Context) {
	var req toggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !req.Side.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": errBadSide.Error()})
		return
	}
	req.Tiers.Toggle(req.Pieces, req.Side)
	c.JSON(http.StatusOK, gin.H{"tiers": req.Tiers})
}

type moveRequest struct {
	Tiers setbonus.List `json:"tiers"`
	From  int           `json:"from"`
	Side  stat.Side     `json:"side"`
	Row   int           `json:"row"`
	To    int           `json:"to"`
}

// MoveRow relocates a row between tiers.
// POST /api/setbonus/move
func (h *CalcHandler) MoveRow(c *gin.Context) {
	var req moveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !req.Side.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": errBadSide.Error()})
		return
	}
	if !req.Tiers.MoveRow(req.From, req.Side, req.Row, req.To) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "row cannot be moved"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"tiers": req.Tiers})
}

// CopyTiers makes the comparison side of every tier a copy of the current side.
// POST /api/setbonus/copy
func (h *CalcHandler) CopyTiers(c *gin.Context) {
	var req struct {
		Tiers setbonus.List `json:"tiers"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	req.Tiers.CopyToAlt()
	c.JSON(http.StatusOK, gin.H{"tiers": req.Tiers})
}
