package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hustlehub/backend/common"
)

func ErrorHandler(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err

		if apiErr, ok := err.(common.APIError); ok {
			response := gin.H{"error": apiErr.Message}
			if apiErr.Fields != nil {
				response["fields"] = apiErr.Fields
			}
			c.JSON(apiErr.Status, response)
			return
		}

		var gwErr *common.GatewayError
		if errors.As(err, &gwErr) {
			logger.Error("payment gateway failure",
				slog.String("op", gwErr.Op),
				slog.Bool("money_moved", gwErr.MoneyMoved),
				slog.String("error", gwErr.Error()),
			)
			c.JSON(http.StatusBadGateway, gin.H{
				"error":       "payment provider error",
				"money_moved": gwErr.MoneyMoved,
			})
			return
		}

		var invErr *common.InvariantError
		if errors.As(err, &invErr) {
			logger.Error("invariant violation", slog.String("error", invErr.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
