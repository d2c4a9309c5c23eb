package middlewares

import (
	"net/http"
	"strings"

	"github.com/fhru/sibarkumen-sub000/config"
	"github.com/fhru/sibarkumen-sub000/models"
	"github.com/fhru/sibarkumen-sub000/utils"

	"github.com/gin-gonic/gin"
)

func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Token tidak ditemukan"})
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		claims, err := utils.VerifyToken(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Token tidak valid"})
			c.Abort()
			return
		}

		// angka di MapClaims selalu float64
		uid, ok := claims["user_id"].(float64)
		if !ok || uid <= 0 {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Token tidak valid"})
			c.Abort()
			return
		}

		c.Set("user_id", uint(uid))
		c.Set("nama", claims["nama"])
		c.Set("role", claims["role"])
		c.Next()
	}
}

// RequirePerm memeriksa capability per permission code. Role admin lolos
// tanpa cek baris user_permissions.
func RequirePerm(code string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if role, _ := c.Get("role"); role == "admin" {
			c.Next()
			return
		}

		uid, _ := c.Get("user_id")
		var cnt int64
		err := config.DB.Model(&models.UserPermission{}).
			Joins("JOIN permissions ON permissions.id = user_permissions.permission_id").
			Where("user_permissions.user_id = ? AND permissions.code = ?", uid, code).
			Count(&cnt).Error
		if err != nil || cnt == 0 {
			c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "Tidak punya izin " + code})
			c.Abort()
			return
		}
		c.Next()
	}
}
