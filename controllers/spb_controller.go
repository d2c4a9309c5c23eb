package controllers

import (
	"net/http"
	"time"

	"github.com/fhru/sibarkumen-sub000/config"
	"github.com/fhru/sibarkumen-sub000/models"
	"github.com/fhru/sibarkumen-sub000/service"
	"github.com/fhru/sibarkumen-sub000/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type SPBItemInput struct {
	BarangID   uint    `json:"barang_id" binding:"required"`
	Qty        int64   `json:"qty" binding:"required,gt=0"`
	Keterangan *string `json:"keterangan"`
}

type SPBInput struct {
	Tanggal    time.Time      `json:"tanggal" binding:"required"`
	PemohonID  uint           `json:"pemohon_id" binding:"required"`
	Keterangan string         `json:"keterangan"`
	Items      []SPBItemInput `json:"items" binding:"required,min=1,dive"`
}

// CreateSPB memulai rantai SPB -> SPPB -> BAST keluar. Permintaan belum
// menyentuh stok sama sekali.
func CreateSPB(c *gin.Context) {
	var in SPBInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.FailBind(c, err)
		return
	}
	uid, err := currentUserID(c)
	if err != nil {
		utils.Fail(c, http.StatusUnauthorized, err.Error())
		return
	}

	var docID uint
	err = service.TxWithNomor(config.DB, service.DocSPB, service.SeriesNomor{JenisDokumen: service.DocSPB}, func(tx *gorm.DB, nomor string) error {
		items := make([]models.SPBItem, 0, len(in.Items))
		for _, it := range in.Items {
			items = append(items, models.SPBItem{
				BarangID:   it.BarangID,
				Qty:        it.Qty,
				Keterangan: it.Keterangan,
			})
		}
		doc := models.SPB{
			Nomor:       nomor,
			Tanggal:     in.Tanggal,
			PemohonID:   in.PemohonID,
			Status:      models.SPBAwaitingRelease,
			Keterangan:  in.Keterangan,
			Items:       items,
			CreatedByID: uid,
		}
		if err := tx.Create(&doc).Error; err != nil {
			return err
		}
		docID = doc.ID
		return nil
	})
	if err != nil {
		utils.FailError(c, err)
		return
	}

	var doc models.SPB
	config.DB.Preload("Pemohon.Jabatan").Preload("Items.Barang").First(&doc, docID)
	utils.Revalidate("spb")
	utils.Created(c, "SPB berhasil dibuat", doc)
}

// UpdateSPB hanya boleh selama SPB belum diproses (masih AWAITING_RELEASE).
func UpdateSPB(c *gin.Context) {
	id, err := paramID(c)
	if err != nil {
		utils.Fail(c, http.StatusBadRequest, err.Error())
		return
	}
	var in SPBInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.FailBind(c, err)
		return
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		var doc models.SPB
		if err := tx.First(&doc, id).Error; err != nil {
			return utils.ErrNotFound
		}
		if doc.Status != models.SPBAwaitingRelease {
			return &utils.InvalidTransitionError{
				Dokumen: "SPB " + doc.Nomor,
				Status:  string(doc.Status),
				Aksi:    "diubah",
			}
		}

		items := make([]models.SPBItem, 0, len(in.Items))
		for _, it := range in.Items {
			items = append(items, models.SPBItem{
				SPBID:      doc.ID,
				BarangID:   it.BarangID,
				Qty:        it.Qty,
				Keterangan: it.Keterangan,
			})
		}
		if err := tx.Unscoped().Where("spb_id = ?", doc.ID).Delete(&models.SPBItem{}).Error; err != nil {
			return err
		}
		if err := tx.Create(&items).Error; err != nil {
			return err
		}
		return tx.Model(&doc).Updates(map[string]any{
			"tanggal":    in.Tanggal,
			"pemohon_id": in.PemohonID,
			"keterangan": in.Keterangan,
		}).Error
	})
	if err != nil {
		utils.FailError(c, err)
		return
	}

	var doc models.SPB
	config.DB.Preload("Pemohon.Jabatan").Preload("Items.Barang").First(&doc, id)
	utils.Revalidate("spb")
	utils.OK(c, "SPB berhasil diperbarui", doc)
}

// CancelSPB menutup permintaan tanpa penyerahan.
func CancelSPB(c *gin.Context) {
	id, err := paramID(c)
	if err != nil {
		utils.Fail(c, http.StatusBadRequest, err.Error())
		return
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		var doc models.SPB
		if err := tx.First(&doc, id).Error; err != nil {
			return utils.ErrNotFound
		}
		if err := service.PastikanSPBTransisi(&doc, models.SPBCancelled, "dibatalkan"); err != nil {
			return err
		}
		return tx.Model(&doc).Update("status", models.SPBCancelled).Error
	})
	if err != nil {
		utils.FailError(c, err)
		return
	}
	utils.Revalidate("spb")
	utils.OK(c, "SPB berhasil dibatalkan", nil)
}

// DeleteSPB menghapus permintaan yang belum diproses. Hard delete: nomornya
// bebas dipakai lagi oleh generator.
func DeleteSPB(c *gin.Context) {
	id, err := paramID(c)
	if err != nil {
		utils.Fail(c, http.StatusBadRequest, err.Error())
		return
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		var doc models.SPB
		if err := tx.First(&doc, id).Error; err != nil {
			return utils.ErrNotFound
		}
		if doc.Status != models.SPBAwaitingRelease {
			return &utils.InvalidTransitionError{
				Dokumen: "SPB " + doc.Nomor,
				Status:  string(doc.Status),
				Aksi:    "dihapus",
			}
		}
		if err := tx.Unscoped().Where("spb_id = ?", doc.ID).Delete(&models.SPBItem{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&doc).Error
	})
	if err != nil {
		utils.FailError(c, err)
		return
	}
	utils.Revalidate("spb")
	utils.OK(c, "SPB berhasil dihapus", nil)
}

func GetAllSPB(c *gin.Context) {
	q := config.DB.Preload("Pemohon.Jabatan").Preload("Items.Barang").Order("id DESC")
	if s := c.Query("status"); s != "" {
		q = q.Where("status = ?", s)
	}

	var rows []models.SPB
	if err := q.Find(&rows).Error; err != nil {
		utils.FailError(c, err)
		return
	}
	utils.OK(c, "Berhasil mengambil data SPB", rows)
}

func GetSPBByID(c *gin.Context) {
	id, err := paramID(c)
	if err != nil {
		utils.Fail(c, http.StatusBadRequest, err.Error())
		return
	}

	var doc models.SPB
	if err := config.DB.Preload("Pemohon.Jabatan").Preload("Items.Barang").First(&doc, id).Error; err != nil {
		utils.FailError(c, utils.ErrNotFound)
		return
	}
	utils.OK(c, "Berhasil mengambil data SPB", doc)
}
