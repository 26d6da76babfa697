package ws

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/blockhub/internal/domain/preview"
	"github.com/GriffinCanCode/blockhub/internal/shared/id"
)

// Preview relays the preview protocol of one channel.
// Query: role=host|preview, channel=chan_...
func (h *Handler) Preview(c *gin.Context) {
	role, err := preview.ParseRole(c.Query("role"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	channel := id.ChannelID(c.Query("channel"))
	if !id.IsValidPrefixed(channel.String(), id.ChannelPrefix) {
		c.JSON(http.StatusBadRequest, gin.H{"error": preview.ErrInvalidChannel.Error()})
		return
	}

	cn, ok := h.upgrade(c, endpointPreview)
	if !ok {
		return
	}
	defer h.release(cn, endpointPreview)

	if err := h.hub.Join(channel, role, cn); err != nil {
		_ = cn.sendError(err.Error())
		return
	}
	defer h.hub.Leave(channel, role, cn)

	logger := h.logger.With(zap.String("channel", channel.String()), zap.String("role", string(role)))
	for {
		_, data, err := cn.ws.ReadMessage()
		if err != nil {
			if isUnexpectedClose(err) {
				logger.Debug("Preview socket closed", zap.Error(err))
			}
			return
		}

		m, err := preview.Decode(data)
		if err == nil {
			err = h.hub.Dispatch(channel, role, cn, m)
		}
		if err != nil {
			logger.Debug("Preview message rejected", zap.Error(err))
			if sendErr := cn.sendError(err.Error()); sendErr != nil {
				return
			}
		}
	}
}
