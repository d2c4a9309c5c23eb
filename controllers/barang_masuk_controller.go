package controllers

import (
	"net/http"
	"time"

	"github.com/fhru/sibarkumen-sub000/config"
	"github.com/fhru/sibarkumen-sub000/models"
	"github.com/fhru/sibarkumen-sub000/service"
	"github.com/fhru/sibarkumen-sub000/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type BarangMasukItemInput struct {
	BarangID uint            `json:"barang_id" binding:"required"`
	Qty      int64           `json:"qty" binding:"required,gt=0"`
	Harga    decimal.Decimal `json:"harga"`
}

type BarangMasukInput struct {
	NomorReferensi string                 `json:"nomor_referensi"`
	Tanggal        time.Time              `json:"tanggal" binding:"required"`
	SumberDanaID   uint                   `json:"sumber_dana_id" binding:"required"`
	PenyediaID     uint                   `json:"penyedia_id" binding:"required"`
	PenyetujuID    uint                   `json:"penyetuju_id" binding:"required"`
	Keterangan     string                 `json:"keterangan"`
	Items          []BarangMasukItemInput `json:"items" binding:"required,min=1,dive"`
}

func lineQtyBarangMasuk(items []models.BarangMasukItem) []service.LineQty {
	lines := make([]service.LineQty, 0, len(items))
	for _, it := range items {
		lines = append(lines, service.LineQty{BarangID: it.BarangID, Qty: it.Qty})
	}
	return lines
}

// CreateBarangMasuk menulis dokumen penerimaan dan mutasi IN-nya dalam satu
// transaksi bernomor.
func CreateBarangMasuk(c *gin.Context) {
	var in BarangMasukInput
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
	err = service.TxWithNomor(config.DB, service.DocBarangMasuk, service.SeriesNomor{JenisDokumen: service.DocBarangMasuk}, func(tx *gorm.DB, nomor string) error {
		items := make([]models.BarangMasukItem, 0, len(in.Items))
		for _, it := range in.Items {
			items = append(items, models.BarangMasukItem{
				BarangID: it.BarangID,
				Qty:      it.Qty,
				Harga:    it.Harga,
			})
		}

		doc := models.BarangMasuk{
			Nomor:          nomor,
			NomorReferensi: in.NomorReferensi,
			Tanggal:        in.Tanggal,
			SumberDanaID:   in.SumberDanaID,
			PenyediaID:     in.PenyediaID,
			PenyetujuID:    in.PenyetujuID,
			Keterangan:     in.Keterangan,
			Items:          items,
			CreatedByID:    uid,
		}
		if err := tx.Create(&doc).Error; err != nil {
			return err
		}
		docID = doc.ID

		delta := service.HitungDelta(nil, service.SumQtyPerBarang(lineQtyBarangMasuk(doc.Items)))
		return Ledger.ApplyDelta(tx, service.ArahMasuk, delta, service.MutasiRef{
			Nomor:         nomor,
			SourceTag:     models.TagBarangMasukCreate,
			Keterangan:    "Penerimaan barang",
			CorrelationID: uuid.NewString(),
			Tanggal:       in.Tanggal,
		})
	})
	if err != nil {
		utils.FailError(c, err)
		return
	}

	var doc models.BarangMasuk
	config.DB.Preload("SumberDana").Preload("Penyedia").Preload("Penyetuju").
		Preload("Items.Barang").First(&doc, docID)
	utils.Revalidate("barang", "barang-masuk")
	utils.Created(c, "Barang masuk berhasil dicatat", doc)
}

// UpdateBarangMasuk merekonsiliasi stok lewat delta: hanya barang yang qty-nya
// berubah yang dapat mutasi baru, satu entri netto per barang.
func UpdateBarangMasuk(c *gin.Context) {
	id, err := paramID(c)
	if err != nil {
		utils.Fail(c, http.StatusBadRequest, err.Error())
		return
	}
	var in BarangMasukInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.FailBind(c, err)
		return
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		var doc models.BarangMasuk
		if err := tx.Preload("Items").First(&doc, id).Error; err != nil {
			return utils.ErrNotFound
		}

		lama := service.SumQtyPerBarang(lineQtyBarangMasuk(doc.Items))

		items := make([]models.BarangMasukItem, 0, len(in.Items))
		baru := make([]service.LineQty, 0, len(in.Items))
		for _, it := range in.Items {
			items = append(items, models.BarangMasukItem{
				BarangMasukID: doc.ID,
				BarangID:      it.BarangID,
				Qty:           it.Qty,
				Harga:         it.Harga,
			})
			baru = append(baru, service.LineQty{BarangID: it.BarangID, Qty: it.Qty})
		}

		delta := service.HitungDelta(lama, service.SumQtyPerBarang(baru))
		if err := Ledger.ApplyDelta(tx, service.ArahMasuk, delta, service.MutasiRef{
			Nomor:         doc.Nomor,
			SourceTag:     models.TagBarangMasukEdit,
			Keterangan:    "Koreksi penerimaan barang",
			CorrelationID: uuid.NewString(),
			Tanggal:       in.Tanggal,
		}); err != nil {
			return err
		}

		if err := tx.Unscoped().Where("barang_masuk_id = ?", doc.ID).Delete(&models.BarangMasukItem{}).Error; err != nil {
			return err
		}
		if err := tx.Create(&items).Error; err != nil {
			return err
		}
		return tx.Model(&doc).Updates(map[string]any{
			"nomor_referensi": in.NomorReferensi,
			"tanggal":         in.Tanggal,
			"sumber_dana_id":  in.SumberDanaID,
			"penyedia_id":     in.PenyediaID,
			"penyetuju_id":    in.PenyetujuID,
			"keterangan":      in.Keterangan,
		}).Error
	})
	if err != nil {
		utils.FailError(c, err)
		return
	}

	var doc models.BarangMasuk
	config.DB.Preload("SumberDana").Preload("Penyedia").Preload("Penyetuju").
		Preload("Items.Barang").First(&doc, id)
	utils.Revalidate("barang", "barang-masuk")
	utils.OK(c, "Barang masuk berhasil diperbarui", doc)
}

// DeleteBarangMasuk membalik seluruh efek IN dokumen lalu menghapus barisnya.
// Gagal kalau stok hasil pembalikan akan negatif (barang sudah terlanjur
// keluar lewat BAST).
func DeleteBarangMasuk(c *gin.Context) {
	id, err := paramID(c)
	if err != nil {
		utils.Fail(c, http.StatusBadRequest, err.Error())
		return
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		var doc models.BarangMasuk
		if err := tx.Preload("Items").First(&doc, id).Error; err != nil {
			return utils.ErrNotFound
		}

		if err := Ledger.ReverseAll(tx, service.ArahMasuk, lineQtyBarangMasuk(doc.Items), service.MutasiRef{
			Nomor:         doc.Nomor,
			SourceTag:     models.TagBarangMasukDelete,
			Keterangan:    "Pembatalan penerimaan barang",
			CorrelationID: uuid.NewString(),
			Tanggal:       time.Now().UTC(),
		}); err != nil {
			return err
		}

		if err := tx.Unscoped().Where("barang_masuk_id = ?", doc.ID).Delete(&models.BarangMasukItem{}).Error; err != nil {
			return err
		}
		// hard delete supaya nomor dokumen benar-benar bebas lagi
		return tx.Unscoped().Delete(&doc).Error
	})
	if err != nil {
		utils.FailError(c, err)
		return
	}
	utils.Revalidate("barang", "barang-masuk")
	utils.OK(c, "Barang masuk berhasil dihapus", nil)
}

func GetAllBarangMasuk(c *gin.Context) {
	var rows []models.BarangMasuk
	if err := config.DB.
		Preload("SumberDana").Preload("Penyedia").Preload("Penyetuju").
		Preload("Items.Barang").
		Order("id DESC").
		Find(&rows).Error; err != nil {
		utils.FailError(c, err)
		return
	}
	utils.OK(c, "Berhasil mengambil data barang masuk", rows)
}

func GetBarangMasukByID(c *gin.Context) {
	id, err := paramID(c)
	if err != nil {
		utils.Fail(c, http.StatusBadRequest, err.Error())
		return
	}

	var doc models.BarangMasuk
	if err := config.DB.
		Preload("SumberDana").Preload("Penyedia").Preload("Penyetuju").
		Preload("Items.Barang").
		First(&doc, id).Error; err != nil {
		utils.FailError(c, utils.ErrNotFound)
		return
	}
	utils.OK(c, "Berhasil mengambil data barang masuk", doc)
}
