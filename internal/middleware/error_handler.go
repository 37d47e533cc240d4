package middleware

import (
	apiError "mandalart/internal/errors"
	"errors"
	"log"

	"github.com/gin-gonic/gin"
)

func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next() // Execute the handler first

		// detect any errors
		if len(c.Errors) > 0 {
			err := c.Errors.Last().Err

			var appErr *apiError.AppError

			// if it's not our custom AppError
			if !errors.As(err, &appErr) {
				// If it's a raw error we didn't wrap, treat as Internal
				appErr = apiError.ErrInternalServer(err)
			}

			// LOGGING
			if appErr.Code >= 500 {
				log.Printf("[ERROR] %v\n", appErr.Error())
			} else {
				log.Printf("[INFO] %s\n", appErr.Error())
			}

			// Respond with JSON
			c.AbortWithStatusJSON(appErr.Code, gin.H{"error": appErr.Message})
		}
	}
}
