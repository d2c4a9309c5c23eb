package utils

import (
	"errors"
	"net/http"
	"strings"

	"github.com/fhru/sibarkumen-sub000/config"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// Semua operasi mengembalikan bentuk seragam {success, message, data} supaya
// UI tidak perlu branching per jenis error.

func OK(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": message,
		"data":    data,
	})
}

func Created(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": message,
		"data":    data,
	})
}

func Fail(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"message": message,
	})
}

// FailBind memetakan kegagalan binding ke pesan per field supaya UI bisa
// menunjuk input mana yang salah, bukan cuma "tidak valid".
func FailBind(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, fe.Field()+" ("+fe.Tag()+")")
		}
		Fail(c, http.StatusBadRequest, "Payload tidak valid: "+strings.Join(fields, ", "))
		return
	}
	Fail(c, http.StatusBadRequest, "Payload tidak valid")
}

// FailError memetakan taksonomi error domain ke status HTTP + pesan seragam.
func FailError(c *gin.Context, err error) {
	var (
		insufficient *InsufficientStockError
		transition   *InvalidTransitionError
		numbering    *NumberingConflictError
	)
	switch {
	case errors.Is(err, ErrUnauthorized):
		Fail(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, ErrNotFound):
		Fail(c, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrValidasi):
		Fail(c, http.StatusBadRequest, err.Error())
	case errors.As(err, &transition):
		Fail(c, http.StatusConflict, err.Error())
	case errors.Is(err, ErrStaleItem):
		Fail(c, http.StatusConflict, err.Error())
	case errors.As(err, &insufficient):
		Fail(c, http.StatusBadRequest, err.Error())
	case errors.As(err, &numbering):
		// degradasi invariant penomoran, perlu perhatian ops
		config.LogError(config.GetLogger(), "utils", "FailError", "penomoran dokumen", numbering.JenisDokumen, err)
		Fail(c, http.StatusInternalServerError, err.Error())
	default:
		Fail(c, http.StatusInternalServerError, err.Error())
	}
}
