package controllers

import (
	"net/http"
	"time"

	"github.com/fhru/sibarkumen-sub000/config"
	"github.com/fhru/sibarkumen-sub000/models"
	"github.com/fhru/sibarkumen-sub000/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

type LoginInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func Login(c *gin.Context) {
	var in LoginInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.FailBind(c, err)
		return
	}

	var user models.User
	if err := config.DB.Where("username = ? AND is_active = true", in.Username).First(&user).Error; err != nil {
		utils.Fail(c, http.StatusUnauthorized, "Username atau password salah")
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)) != nil {
		utils.Fail(c, http.StatusUnauthorized, "Username atau password salah")
		return
	}

	token, err := utils.GenerateToken(user.ID, user.FullName, user.Role)
	if err != nil {
		utils.FailError(c, err)
		return
	}

	now := time.Now()
	config.DB.Model(&user).Update("last_login_at", &now)

	utils.OK(c, "Login sukses", gin.H{
		"token": token,
		"user":  user,
	})
}

func Profile(c *gin.Context) {
	uid, err := currentUserID(c)
	if err != nil {
		utils.Fail(c, http.StatusUnauthorized, err.Error())
		return
	}

	var user models.User
	if err := config.DB.First(&user, uid).Error; err != nil {
		utils.FailError(c, utils.ErrNotFound)
		return
	}

	type Row struct{ Code string }
	var rows []Row
	config.DB.Raw(`
		SELECT p.code FROM permissions p
		JOIN user_permissions up ON up.permission_id = p.id
		WHERE up.user_id = ?`, user.ID).Scan(&rows)

	perms := make([]string, 0, len(rows))
	for _, r := range rows {
		perms = append(perms, r.Code)
	}

	utils.OK(c, "Berhasil mengambil profil pengguna", gin.H{
		"user":  user,
		"perms": perms,
	})
}
