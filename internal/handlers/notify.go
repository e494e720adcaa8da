package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/renthaus/enlistd/internal/notify"
	"github.com/renthaus/enlistd/internal/requestdata"
)

type NotifyHandler struct {
	hub *notify.Hub
}

func NewNotifyHandler(hub *notify.Hub) *NotifyHandler {
	return &NotifyHandler{hub: hub}
}

// Stream serves the owner's SSE event stream. The channel is the caller's
// own email, so a landlord only receives events for their enlistments.
func (h *NotifyHandler) Stream(c *gin.Context) {
	owner := requestdata.CallerID(c.Request.Context())
	if owner == "" {
		RespondError(c, http.StatusForbidden, "unauthorized", nil)
		return
	}
	client := h.hub.NewClient(owner)
	h.hub.AddChannel(client, owner)
	defer h.hub.CloseClient(client)

	h.hub.ServeHTTP(c.Writer, c.Request, client)
}
