package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"dn-damage-calc/internal/goldsplit"
)

// SplitGold divides a raid sale between members.
// POST /api/goldsplit
func (h *CalcHandler) SplitGold(c *gin.Context) {
	var req goldsplit.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	res, err := goldsplit.Split(req)
	switch {
	case errors.Is(err, goldsplit.ErrStampsExceed):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	case err != nil:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"share": res.Share, "poolCopper": res.Pool, "text": res.Share.String()})
}
