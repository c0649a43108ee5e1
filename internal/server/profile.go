package server

import (
	"errors"
	"net/http"
	"regexp"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"dn-damage-calc/internal/calc"
	"dn-damage-calc/internal/store"
)

const maxPresets = store.MaxPresets

var profileName = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// ProfileHandler serves the per-profile workspace and presets.
type ProfileHandler struct {
	workspace *store.Workspace
	presets   *store.Presets
	logger    *zap.Logger
}

func NewProfileHandler(ws *store.Workspace, presets *store.Presets, logger *zap.Logger) *ProfileHandler {
	return &ProfileHandler{workspace: ws, presets: presets, logger: logger}
}

func (h *ProfileHandler) profile(c *gin.Context) (string, bool) {
	p := c.Param("profile")
	if !profileName.MatchString(p) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid profile"})
		return "", false
	}
	return p, true
}

func (h *ProfileHandler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, store.ErrSlotRange), errors.Is(err, calc.ErrMalformed):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		h.logger.Error("store failure", zap.Error(err), zap.String("trace_id", GetTraceID(c)))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storage unavailable"})
	}
}

type workspaceResponse struct {
	calc.Snapshot
	Result calc.Comparison `json:"result"`
}

// GetWorkspace returns the stored workspace and its evaluation.
// GET /api/profiles/:profile/workspace
func (h *ProfileHandler) GetWorkspace(c *gin.Context) {
	p, ok := h.profile(c)
	if !ok {
		return
	}
	snap := h.workspace.Load(c.Request.Context(), p)
	c.JSON(http.StatusOK, workspaceResponse{Snapshot: snap, Result: calc.Compare(snap.Build, snap.Skill)})
}

// PutWorkspace replaces the stored workspace.
// PUT /api/profiles/:profile/workspace[?format=browser]
func (h *ProfileHandler) PutWorkspace(c *gin.Context) {
	p, ok := h.profile(c)
	if !ok {
		return
	}
	snap, err := bindSnapshot(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.workspace.Save(c.Request.Context(), p, snap); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, workspaceResponse{Snapshot: snap, Result: calc.Compare(snap.Build, snap.Skill)})
}

// ListPresets returns the presets of a profile in slot order.
// GET /api/profiles/:profile/presets
func (h *ProfileHandler) ListPresets(c *gin.Context) {
	p, ok := h.profile(c)
	if !ok {
		return
	}
	list, err := h.presets.List(c.Request.Context(), p)
	if err != nil {
		h.fail(c, err)
		return
	}
	if list == nil {
		list = []store.Preset{}
	}
	c.JSON(http.StatusOK, gin.H{"presets": list, "capacity": maxPresets})
}

type savePresetRequest struct {
	Name string `json:"name"`
	calc.Snapshot
}

// SavePreset stores a build and skill into a slot.
// PUT /api/profiles/:profile/presets/:slot
func (h *ProfileHandler) SavePreset(c *gin.Context) {
	p, ok := h.profile(c)
	if !ok {
		return
	}
	slot, err := strconv.Atoi(c.Param("slot"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid slot"})
		return
	}
	req := savePresetRequest{Snapshot: calc.DefaultSnapshot()}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := req.Skill.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	preset, err := h.presets.Save(c.Request.Context(), p, slot, req.Name, req.Snapshot)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, preset)
}

// GetPreset returns one preset.
// GET /api/profiles/:profile/presets/id/:id
func (h *ProfileHandler) GetPreset(c *gin.Context) {
	p, ok := h.profile(c)
	if !ok {
		return
	}
	preset, err := h.presets.Get(c.Request.Context(), p, c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, preset)
}

// LoadPreset copies a preset into the workspace.
// POST /api/profiles/:profile/presets/id/:id/load
func (h *ProfileHandler) LoadPreset(c *gin.Context) {
	p, ok := h.profile(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	preset, err := h.presets.Get(ctx, p, c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	snap := preset.Snapshot()
	if err := h.workspace.Save(ctx, p, snap); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, workspaceResponse{Snapshot: snap, Result: calc.Compare(snap.Build, snap.Skill)})
}

// DeletePreset removes a preset; later presets move up.
// DELETE /api/profiles/:profile/presets/id/:id
func (h *ProfileHandler) DeletePreset(c *gin.Context) {
	p, ok := h.profile(c)
	if !ok {
		return
	}
	if err := h.presets.Delete(c.Request.Context(), p, c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ImportPresets replaces the presets with a browser dn-presets document.
// POST /api/profiles/:profile/presets/import
func (h *ProfileHandler) ImportPresets(c *gin.Context) {
	p, ok := h.profile(c)
	if !ok {
		return
	}
	raw, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	imported, skipped, err := h.presets.ImportBrowser(c.Request.Context(), p, string(raw))
	if err != nil {
		h.fail(c, err)
		return
	}
	if imported == nil {
		imported = []store.Preset{}
	}
	c.JSON(http.StatusOK, gin.H{"presets": imported, "skipped": skipped})
}
