package controllers

import (
	"errors"
	"strconv"

	"github.com/fhru/sibarkumen-sub000/service"

	"github.com/gin-gonic/gin"
)

// Ledger dipakai semua controller dokumen. Default row lock (postgres);
// test menggantinya dengan optimistic lock karena sqlite tidak punya
// SELECT ... FOR UPDATE.
var Ledger = service.NewStokLedger(service.RowLock{})

func currentUserID(c *gin.Context) (uint, error) {
	v, ok := c.Get("user_id")
	if !ok {
		return 0, errors.New("user_id tidak ada di context")
	}
	id, ok := v.(uint)
	if !ok || id == 0 {
		return 0, errors.New("user_id tidak valid")
	}
	return id, nil
}

func paramID(c *gin.Context) (uint, error) {
	n, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || n == 0 {
		return 0, errors.New("id tidak valid")
	}
	return uint(n), nil
}
