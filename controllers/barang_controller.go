package controllers

import (
	"net/http"
	"strconv"

	"github.com/fhru/sibarkumen-sub000/config"
	"github.com/fhru/sibarkumen-sub000/models"
	"github.com/fhru/sibarkumen-sub000/utils"

	"github.com/gin-gonic/gin"
)

type BarangInput struct {
	Nama     string `json:"nama" binding:"required"`
	Kode     string `json:"kode" binding:"required"`
	SatuanID uint   `json:"satuan_id" binding:"required"`
}

func CreateBarang(c *gin.Context) {
	var in BarangInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.FailBind(c, err)
		return
	}

	barang := models.Barang{
		Nama:     in.Nama,
		Kode:     in.Kode,
		SatuanID: in.SatuanID,
	}
	if err := config.DB.Create(&barang).Error; err != nil {
		if utils.IsUniqueViolation(err) {
			utils.Fail(c, http.StatusBadRequest, "Kode barang sudah digunakan")
			return
		}
		utils.FailError(c, err)
		return
	}

	config.DB.Preload("Satuan").First(&barang, barang.ID)
	utils.Revalidate("barang")
	utils.Created(c, "Barang berhasil ditambahkan", barang)
}

func GetAllBarang(c *gin.Context) {
	q := config.DB.Preload("Satuan").Order("nama ASC")
	if s := c.Query("q"); s != "" {
		like := "%" + s + "%"
		q = q.Where("nama LIKE ? OR kode LIKE ?", like, like)
	}

	var barangs []models.Barang
	if err := q.Find(&barangs).Error; err != nil {
		utils.FailError(c, err)
		return
	}
	utils.OK(c, "Berhasil mengambil data barang", barangs)
}

func GetBarangByID(c *gin.Context) {
	id, err := paramID(c)
	if err != nil {
		utils.Fail(c, http.StatusBadRequest, err.Error())
		return
	}

	var barang models.Barang
	if err := config.DB.Preload("Satuan").First(&barang, id).Error; err != nil {
		utils.FailError(c, utils.ErrNotFound)
		return
	}
	utils.OK(c, "Berhasil mengambil data barang", barang)
}

// UpdateBarang hanya menyentuh atribut deskriptif. Stok tidak bisa diubah
// dari sini; jalurnya dokumen + ledger.
func UpdateBarang(c *gin.Context) {
	id, err := paramID(c)
	if err != nil {
		utils.Fail(c, http.StatusBadRequest, err.Error())
		return
	}

	var barang models.Barang
	if err := config.DB.First(&barang, id).Error; err != nil {
		utils.FailError(c, utils.ErrNotFound)
		return
	}

	var in BarangInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.FailBind(c, err)
		return
	}

	updates := map[string]any{
		"nama":      in.Nama,
		"kode":      in.Kode,
		"satuan_id": in.SatuanID,
	}
	if err := config.DB.Model(&barang).Updates(updates).Error; err != nil {
		if utils.IsUniqueViolation(err) {
			utils.Fail(c, http.StatusBadRequest, "Kode barang sudah digunakan")
			return
		}
		utils.FailError(c, err)
		return
	}

	config.DB.Preload("Satuan").First(&barang, id)
	utils.Revalidate("barang")
	utils.OK(c, "Barang berhasil diperbarui", barang)
}

// DeleteBarang menolak barang yang sudah punya riwayat mutasi: jurnalnya
// harus tetap bisa ditelusuri.
func DeleteBarang(c *gin.Context) {
	id, err := paramID(c)
	if err != nil {
		utils.Fail(c, http.StatusBadRequest, err.Error())
		return
	}

	var barang models.Barang
	if err := config.DB.First(&barang, id).Error; err != nil {
		utils.FailError(c, utils.ErrNotFound)
		return
	}

	var cnt int64
	if err := config.DB.Model(&models.StokMutasi{}).Where("barang_id = ?", id).Count(&cnt).Error; err != nil {
		utils.FailError(c, err)
		return
	}
	if cnt > 0 {
		utils.Fail(c, http.StatusBadRequest, "Barang sudah punya riwayat mutasi, tidak bisa dihapus")
		return
	}

	if err := config.DB.Unscoped().Delete(&barang).Error; err != nil {
		utils.FailError(c, err)
		return
	}
	utils.Revalidate("barang")
	utils.OK(c, "Barang berhasil dihapus", nil)
}

// GetBarangMutasi mengembalikan jurnal mutasi satu barang, terbaru dulu,
// dengan pagination page/limit.
func GetBarangMutasi(c *gin.Context) {
	id, err := paramID(c)
	if err != nil {
		utils.Fail(c, http.StatusBadRequest, err.Error())
		return
	}

	var barang models.Barang
	if err := config.DB.First(&barang, id).Error; err != nil {
		utils.FailError(c, utils.ErrNotFound)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	var total int64
	config.DB.Model(&models.StokMutasi{}).Where("barang_id = ?", id).Count(&total)

	var rows []models.StokMutasi
	if err := config.DB.
		Where("barang_id = ?", id).
		Order("id DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&rows).Error; err != nil {
		utils.FailError(c, err)
		return
	}

	utils.OK(c, "Berhasil mengambil mutasi barang", gin.H{
		"barang": barang,
		"mutasi": rows,
		"page":   page,
		"limit":  limit,
		"total":  total,
	})
}
