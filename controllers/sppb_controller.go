package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/fhru/sibarkumen-sub000/config"
	"github.com/fhru/sibarkumen-sub000/models"
	"github.com/fhru/sibarkumen-sub000/service"
	"github.com/fhru/sibarkumen-sub000/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type SPPBItemInput struct {
	BarangID   uint    `json:"barang_id" binding:"required"`
	Qty        int64   `json:"qty" binding:"required,gt=0"`
	Keterangan *string `json:"keterangan"`
}

type SPPBInput struct {
	SPBID       uint            `json:"spb_id" binding:"required"`
	Tanggal     time.Time       `json:"tanggal" binding:"required"`
	PenyetujuID uint            `json:"penyetuju_id" binding:"required"`
	PenerimaID  uint            `json:"penerima_id"` // kosong = pemohon SPB
	Keterangan  string          `json:"keterangan"`
	Items       []SPPBItemInput `json:"items" binding:"required,min=1,dive"`
}

type SPPBUpdateInput struct {
	Tanggal     time.Time       `json:"tanggal" binding:"required"`
	PenyetujuID uint            `json:"penyetuju_id" binding:"required"`
	PenerimaID  uint            `json:"penerima_id"`
	Keterangan  string          `json:"keterangan"`
	Items       []SPPBItemInput `json:"items" binding:"required,min=1,dive"`
}

// validasi item SPPB terhadap SPB asalnya dan stok saat ini. Qty disetujui
// boleh lebih kecil dari yang diminta, tidak boleh untuk barang di luar SPB,
// dan total per barang (baris ganda dijumlahkan) tidak boleh melebihi stok.
func cekItemSPPB(tx *gorm.DB, spb *models.SPB, items []SPPBItemInput) error {
	diminta := make(map[uint]bool, len(spb.Items))
	for _, it := range spb.Items {
		diminta[it.BarangID] = true
	}

	lines := make([]service.LineQty, 0, len(items))
	for _, it := range items {
		if !diminta[it.BarangID] {
			return fmt.Errorf("%w: barang %d tidak ada di SPB %s", utils.ErrValidasi, it.BarangID, spb.Nomor)
		}
		lines = append(lines, service.LineQty{BarangID: it.BarangID, Qty: it.Qty})
	}
	for id, q := range service.SumQtyPerBarang(lines) {
		var b models.Barang
		if err := tx.First(&b, id).Error; err != nil {
			return utils.ErrNotFound
		}
		if q > b.Stok {
			return &utils.InsufficientStockError{NamaBarang: b.Nama, Stok: b.Stok, Butuh: q}
		}
	}
	return nil
}

// CreateSPPB memproses satu SPB: permintaan ditutup (COMPLETED) dan perintah
// penyerahan lahir berstatus AWAITING_HANDOVER. Stok belum berkurang di sini;
// baru saat BAST keluar dibuat.
func CreateSPPB(c *gin.Context) {
	var in SPPBInput
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
	err = service.TxWithNomor(config.DB, service.DocSPPB, service.SeriesNomor{JenisDokumen: service.DocSPPB}, func(tx *gorm.DB, nomor string) error {
		var spb models.SPB
		if err := tx.Preload("Items").First(&spb, in.SPBID).Error; err != nil {
			return utils.ErrNotFound
		}
		if err := service.PastikanSPBTransisi(&spb, models.SPBCompleted, "diproses jadi SPPB"); err != nil {
			return err
		}
		if err := cekItemSPPB(tx, &spb, in.Items); err != nil {
			return err
		}

		penerimaID := in.PenerimaID
		if penerimaID == 0 {
			penerimaID = spb.PemohonID
		}

		items := make([]models.SPPBItem, 0, len(in.Items))
		for _, it := range in.Items {
			items = append(items, models.SPPBItem{
				BarangID:   it.BarangID,
				Qty:        it.Qty,
				Keterangan: it.Keterangan,
			})
		}
		doc := models.SPPB{
			Nomor:       nomor,
			Tanggal:     in.Tanggal,
			SPBID:       spb.ID,
			PenyetujuID: in.PenyetujuID,
			PenerimaID:  penerimaID,
			Status:      models.SPPBAwaitingHandover,
			Keterangan:  in.Keterangan,
			Items:       items,
			CreatedByID: uid,
		}
		if err := tx.Create(&doc).Error; err != nil {
			return err
		}
		docID = doc.ID

		return tx.Model(&spb).Update("status", models.SPBCompleted).Error
	})
	if err != nil {
		utils.FailError(c, err)
		return
	}

	var doc models.SPPB
	config.DB.Preload("SPB").Preload("Penyetuju.Jabatan").Preload("Penerima.Jabatan").
		Preload("Items.Barang").First(&doc, docID)
	utils.Revalidate("spb", "sppb")
	utils.Created(c, "SPPB berhasil dibuat", doc)
}

// UpdateSPPB hanya boleh selama barangnya belum diserahkan (belum ada BAST).
// Relasi ke SPB tidak bisa dipindah.
func UpdateSPPB(c *gin.Context) {
	id, err := paramID(c)
	if err != nil {
		utils.Fail(c, http.StatusBadRequest, err.Error())
		return
	}
	var in SPPBUpdateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.FailBind(c, err)
		return
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		var doc models.SPPB
		if err := tx.First(&doc, id).Error; err != nil {
			return utils.ErrNotFound
		}
		if doc.Status != models.SPPBAwaitingHandover {
			return &utils.InvalidTransitionError{
				Dokumen: "SPPB " + doc.Nomor,
				Status:  string(doc.Status),
				Aksi:    "diubah",
			}
		}

		var spb models.SPB
		if err := tx.Preload("Items").First(&spb, doc.SPBID).Error; err != nil {
			return err
		}
		if err := cekItemSPPB(tx, &spb, in.Items); err != nil {
			return err
		}

		penerimaID := in.PenerimaID
		if penerimaID == 0 {
			penerimaID = spb.PemohonID
		}

		items := make([]models.SPPBItem, 0, len(in.Items))
		for _, it := range in.Items {
			items = append(items, models.SPPBItem{
				SPPBID:     doc.ID,
				BarangID:   it.BarangID,
				Qty:        it.Qty,
				Keterangan: it.Keterangan,
			})
		}
		if err := tx.Unscoped().Where("sppb_id = ?", doc.ID).Delete(&models.SPPBItem{}).Error; err != nil {
			return err
		}
		if err := tx.Create(&items).Error; err != nil {
			return err
		}
		return tx.Model(&doc).Updates(map[string]any{
			"tanggal":      in.Tanggal,
			"penyetuju_id": in.PenyetujuID,
			"penerima_id":  penerimaID,
			"keterangan":   in.Keterangan,
		}).Error
	})
	if err != nil {
		utils.FailError(c, err)
		return
	}

	var doc models.SPPB
	config.DB.Preload("SPB").Preload("Penyetuju.Jabatan").Preload("Penerima.Jabatan").
		Preload("Items.Barang").First(&doc, id)
	utils.Revalidate("sppb")
	utils.OK(c, "SPPB berhasil diperbarui", doc)
}

// DeleteSPPB membatalkan perintah penyerahan yang belum dieksekusi dan
// membuka lagi SPB asalnya.
func DeleteSPPB(c *gin.Context) {
	id, err := paramID(c)
	if err != nil {
		utils.Fail(c, http.StatusBadRequest, err.Error())
		return
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		var doc models.SPPB
		if err := tx.First(&doc, id).Error; err != nil {
			return utils.ErrNotFound
		}
		if doc.Status != models.SPPBAwaitingHandover {
			return &utils.InvalidTransitionError{
				Dokumen: "SPPB " + doc.Nomor,
				Status:  string(doc.Status),
				Aksi:    "dihapus",
			}
		}

		var spb models.SPB
		if err := tx.First(&spb, doc.SPBID).Error; err != nil {
			return err
		}
		if err := service.PastikanSPBTransisi(&spb, models.SPBAwaitingRelease, "dibuka lagi"); err != nil {
			return err
		}
		if err := tx.Model(&spb).Update("status", models.SPBAwaitingRelease).Error; err != nil {
			return err
		}

		if err := tx.Unscoped().Where("sppb_id = ?", doc.ID).Delete(&models.SPPBItem{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&doc).Error
	})
	if err != nil {
		utils.FailError(c, err)
		return
	}
	utils.Revalidate("spb", "sppb")
	utils.OK(c, "SPPB berhasil dihapus", nil)
}

func GetAllSPPB(c *gin.Context) {
	q := config.DB.Preload("SPB").Preload("Penyetuju.Jabatan").Preload("Penerima.Jabatan").
		Preload("Items.Barang").Order("id DESC")
	if s := c.Query("status"); s != "" {
		q = q.Where("status = ?", s)
	}

	var rows []models.SPPB
	if err := q.Find(&rows).Error; err != nil {
		utils.FailError(c, err)
		return
	}
	utils.OK(c, "Berhasil mengambil data SPPB", rows)
}

func GetSPPBByID(c *gin.Context) {
	id, err := paramID(c)
	if err != nil {
		utils.Fail(c, http.StatusBadRequest, err.Error())
		return
	}

	var doc models.SPPB
	if err := config.DB.Preload("SPB.Pemohon").Preload("Penyetuju.Jabatan").Preload("Penerima.Jabatan").
		Preload("Items.Barang").First(&doc, id).Error; err != nil {
		utils.FailError(c, utils.ErrNotFound)
		return
	}
	utils.OK(c, "Berhasil mengambil data SPPB", doc)
}
