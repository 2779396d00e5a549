package api

import (
	"github.com/gin-gonic/gin"

	"github.com/investogold/goldvest/internal/transport/api/middlewares"
)

// getUserIDFromContext берет из контекста gin ID текущего юзера. ID устанавливается в
// middlewares.AuthRequired. В случае, если значения в контексте нет или ошибка утверждения типа -
// вернется пустая строка.
func getUserIDFromContext(c *gin.Context) string {
	userIDValue, exist := c.Get(middlewares.CurrentUserIDKey)
	if !exist {
		return ""
	}
	userID, ok := userIDValue.(string)
	if !ok {
		return ""
	}
	return userID
}
