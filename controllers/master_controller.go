package controllers

import (
	"github.com/fhru/sibarkumen-sub000/config"
	"github.com/fhru/sibarkumen-sub000/models"
	"github.com/fhru/sibarkumen-sub000/utils"

	"github.com/gin-gonic/gin"
)

// Data master dikelola aplikasi lain; endpoint di sini read-only untuk
// dropdown form dokumen.

func GetAllSatuan(c *gin.Context) {
	var rows []models.Satuan
	if err := config.DB.Order("nama ASC").Find(&rows).Error; err != nil {
		utils.FailError(c, err)
		return
	}
	utils.OK(c, "Berhasil mengambil data satuan", rows)
}

func GetAllJabatan(c *gin.Context) {
	var rows []models.Jabatan
	if err := config.DB.Order("nama ASC").Find(&rows).Error; err != nil {
		utils.FailError(c, err)
		return
	}
	utils.OK(c, "Berhasil mengambil data jabatan", rows)
}

func GetAllPegawai(c *gin.Context) {
	q := config.DB.Preload("Jabatan").Order("nama ASC")
	if s := c.Query("q"); s != "" {
		like := "%" + s + "%"
		q = q.Where("nama LIKE ? OR nip LIKE ?", like, like)
	}
	var rows []models.Pegawai
	if err := q.Find(&rows).Error; err != nil {
		utils.FailError(c, err)
		return
	}
	utils.OK(c, "Berhasil mengambil data pegawai", rows)
}

func GetAllPenyedia(c *gin.Context) {
	var rows []models.Penyedia
	if err := config.DB.Order("nama ASC").Find(&rows).Error; err != nil {
		utils.FailError(c, err)
		return
	}
	utils.OK(c, "Berhasil mengambil data penyedia", rows)
}

func GetAllSumberDana(c *gin.Context) {
	var rows []models.SumberDana
	if err := config.DB.Order("nama ASC").Find(&rows).Error; err != nil {
		utils.FailError(c, err)
		return
	}
	utils.OK(c, "Berhasil mengambil data sumber dana", rows)
}
