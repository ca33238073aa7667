package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"praktikasud-backend/models"
	"praktikasud-backend/service"
)

func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

func respondOK(c *gin.Context, status int, data any) {
	c.JSON(status, gin.H{
		"success": true,
		"data":    data,
	})
}

// userPayload identifies the chat user a request comes from
type userPayload struct {
	UserID    int64  `json:"user_id" form:"user_id"`
	Username  string `json:"username" form:"username"`
	FirstName string `json:"first_name" form:"first_name"`
	LastName  string `json:"last_name" form:"last_name"`
}

func (u userPayload) toModel() models.User {
	return models.User{
		UserID:    u.UserID,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
}

// userFromForm reads user fields from a multipart form
func userFromForm(c *gin.Context) (models.User, bool) {
	var u userPayload
	if raw := c.PostForm("user_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return models.User{}, false
		}
		u.UserID = id
	}
	u.Username = c.PostForm("username")
	u.FirstName = c.PostForm("first_name")
	u.LastName = c.PostForm("last_name")
	return u.toModel(), true
}

func consultationData(res *service.ConsultationResult) gin.H {
	data := gin.H{
		"parts":       res.Parts,
		"domain":      res.Domain,
		"degraded":    res.Degraded,
		"duration_ms": res.Duration.Milliseconds(),
	}
	if res.Bankruptcy.HasProcedure() {
		data["procedure"] = res.Bankruptcy.Procedure
		if res.Bankruptcy.DebtAmount != nil {
			data["debt_amount"] = *res.Bankruptcy.DebtAmount
		}
	}
	if res.EnrichmentSource != "" {
		data["enrichment_source"] = res.EnrichmentSource
	}
	if res.Degraded {
		data["reason"] = res.Reason
	}
	return data
}
