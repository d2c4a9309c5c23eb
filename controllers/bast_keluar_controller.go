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
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type BASTKeluarItemInput struct {
	BarangID  uint            `json:"barang_id" binding:"required"`
	Qty       int64           `json:"qty" binding:"required,gt=0"`
	Harga     decimal.Decimal `json:"harga"`
	PPNPersen decimal.Decimal `json:"ppn_persen"`
}

type BASTKeluarInput struct {
	SPPBID           uint                  `json:"sppb_id" binding:"required"`
	Tanggal          time.Time             `json:"tanggal" binding:"required"`
	PihakPertamaID   uint                  `json:"pihak_pertama_id" binding:"required"`
	JabatanPertamaID uint                  `json:"jabatan_pertama_id" binding:"required"`
	PihakKeduaID     uint                  `json:"pihak_kedua_id" binding:"required"`
	JabatanKeduaID   uint                  `json:"jabatan_kedua_id" binding:"required"`
	Keterangan       string                `json:"keterangan"`
	Items            []BASTKeluarItemInput `json:"items" binding:"required,min=1,dive"`
}

// item BAST harus barang yang disetujui SPPB, total qty per barang maksimal
// qty disetujui. Dijumlahkan dulu: baris ganda untuk barang yang sama tidak
// boleh menembus batas persetujuan.
func cekItemBAST(sppb *models.SPPB, items []BASTKeluarItemInput) error {
	disetujui := make(map[uint]int64, len(sppb.Items))
	for _, it := range sppb.Items {
		disetujui[it.BarangID] += it.Qty
	}

	lines := make([]service.LineQty, 0, len(items))
	for _, it := range items {
		lines = append(lines, service.LineQty{BarangID: it.BarangID, Qty: it.Qty})
	}
	for id, q := range service.SumQtyPerBarang(lines) {
		batas, ada := disetujui[id]
		if !ada {
			return fmt.Errorf("%w: barang %d tidak ada di SPPB %s", utils.ErrValidasi, id, sppb.Nomor)
		}
		if q > batas {
			return fmt.Errorf("%w: total qty barang %d melebihi yang disetujui SPPB %s", utils.ErrValidasi, id, sppb.Nomor)
		}
	}
	return nil
}

func buildItemBAST(items []BASTKeluarItemInput) ([]models.BASTKeluarItem, []service.LineQty, decimal.Decimal, decimal.Decimal) {
	rows := make([]models.BASTKeluarItem, 0, len(items))
	lines := make([]service.LineQty, 0, len(items))
	subtotal := decimal.Zero
	totalPPN := decimal.Zero
	for _, it := range items {
		row := models.BASTKeluarItem{
			BarangID:  it.BarangID,
			Qty:       it.Qty,
			Harga:     it.Harga,
			PPNPersen: it.PPNPersen,
		}
		row.HitungNilai()
		rows = append(rows, row)
		lines = append(lines, service.LineQty{BarangID: it.BarangID, Qty: it.Qty})
		subtotal = subtotal.Add(decimal.NewFromInt(it.Qty).Mul(it.Harga))
		totalPPN = totalPPN.Add(row.PPNNilai)
	}
	return rows, lines, subtotal.Round(2), totalPPN.Round(2)
}

// CreateBASTKeluar mengeksekusi penyerahan: mutasi OUT per barang, SPPB
// ditutup, semuanya satu transaksi dengan insert dokumen. Nomor diturunkan
// dari nomor SPB asal rantai supaya ketiga dokumen mudah dijajarkan; kalau
// nomor itu sudah terpakai, jatuh ke nomor urut biasa.
func CreateBASTKeluar(c *gin.Context) {
	var in BASTKeluarInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.FailBind(c, err)
		return
	}
	uid, err := currentUserID(c)
	if err != nil {
		utils.Fail(c, http.StatusUnauthorized, err.Error())
		return
	}

	// nomor SPB dibutuhkan untuk strategi penomoran turunan
	var sppbAwal models.SPPB
	if err := config.DB.Preload("SPB").First(&sppbAwal, in.SPPBID).Error; err != nil {
		utils.FailError(c, utils.ErrNotFound)
		return
	}
	strat := service.TurunanNomor{
		JenisDokumen: service.DocBASTKeluar,
		DariJenis:    service.DocSPB,
		DariNomor:    sppbAwal.SPB.Nomor,
		Fallback:     service.SeriesNomor{JenisDokumen: service.DocBASTKeluar},
	}

	var docID uint
	err = service.TxWithNomor(config.DB, service.DocBASTKeluar, strat, func(tx *gorm.DB, nomor string) error {
		var sppb models.SPPB
		if err := tx.Preload("Items").First(&sppb, in.SPPBID).Error; err != nil {
			return utils.ErrNotFound
		}
		if err := service.PastikanSPPBTransisi(&sppb, models.SPPBCompleted, "diserahkan"); err != nil {
			return err
		}
		if err := cekItemBAST(&sppb, in.Items); err != nil {
			return err
		}

		items, lines, subtotal, totalPPN := buildItemBAST(in.Items)
		doc := models.BASTKeluar{
			Nomor:            nomor,
			Tanggal:          in.Tanggal,
			SPPBID:           sppb.ID,
			PihakPertamaID:   in.PihakPertamaID,
			JabatanPertamaID: in.JabatanPertamaID,
			PihakKeduaID:     in.PihakKeduaID,
			JabatanKeduaID:   in.JabatanKeduaID,
			Subtotal:         subtotal,
			TotalPPN:         totalPPN,
			GrandTotal:       subtotal.Add(totalPPN),
			Keterangan:       in.Keterangan,
			Items:            items,
			CreatedByID:      uid,
		}
		if err := tx.Create(&doc).Error; err != nil {
			return err
		}
		docID = doc.ID

		delta := service.HitungDelta(nil, service.SumQtyPerBarang(lines))
		if err := Ledger.ApplyDelta(tx, service.ArahKeluar, delta, service.MutasiRef{
			Nomor:         nomor,
			SourceTag:     models.TagBASTCreate,
			Keterangan:    "Penyerahan barang",
			CorrelationID: uuid.NewString(),
			Tanggal:       in.Tanggal,
		}); err != nil {
			return err
		}

		return tx.Model(&sppb).Update("status", models.SPPBCompleted).Error
	})
	if err != nil {
		utils.FailError(c, err)
		return
	}

	var doc models.BASTKeluar
	config.DB.Preload("SPPB.SPB").
		Preload("PihakPertama").Preload("JabatanPertama").
		Preload("PihakKedua").Preload("JabatanKedua").
		Preload("Items.Barang").First(&doc, docID)
	utils.Revalidate("barang", "sppb", "bast-keluar")
	utils.Created(c, "BAST keluar berhasil dibuat", doc)
}

// UpdateBASTKeluar merekonsiliasi stok lewat delta qty per barang dan
// menghitung ulang nilai. Dokumen yang sudah dicetak terkunci.
func UpdateBASTKeluar(c *gin.Context) {
	id, err := paramID(c)
	if err != nil {
		utils.Fail(c, http.StatusBadRequest, err.Error())
		return
	}
	var in BASTKeluarInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.FailBind(c, err)
		return
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		var doc models.BASTKeluar
		if err := tx.Preload("Items").First(&doc, id).Error; err != nil {
			return utils.ErrNotFound
		}
		if doc.Printed {
			return &utils.InvalidTransitionError{
				Dokumen: "BAST " + doc.Nomor,
				Status:  "PRINTED",
				Aksi:    "diubah",
			}
		}

		var sppb models.SPPB
		if err := tx.Preload("Items").First(&sppb, doc.SPPBID).Error; err != nil {
			return err
		}
		if err := cekItemBAST(&sppb, in.Items); err != nil {
			return err
		}

		lama := make([]service.LineQty, 0, len(doc.Items))
		for _, it := range doc.Items {
			lama = append(lama, service.LineQty{BarangID: it.BarangID, Qty: it.Qty})
		}

		items, baru, subtotal, totalPPN := buildItemBAST(in.Items)
		delta := service.HitungDelta(service.SumQtyPerBarang(lama), service.SumQtyPerBarang(baru))
		if err := Ledger.ApplyDelta(tx, service.ArahKeluar, delta, service.MutasiRef{
			Nomor:         doc.Nomor,
			SourceTag:     models.TagBASTEdit,
			Keterangan:    "Koreksi penyerahan barang",
			CorrelationID: uuid.NewString(),
			Tanggal:       in.Tanggal,
		}); err != nil {
			return err
		}

		for i := range items {
			items[i].BASTKeluarID = doc.ID
		}
		if err := tx.Unscoped().Where("bast_keluar_id = ?", doc.ID).Delete(&models.BASTKeluarItem{}).Error; err != nil {
			return err
		}
		if err := tx.Create(&items).Error; err != nil {
			return err
		}
		return tx.Model(&doc).Updates(map[string]any{
			"tanggal":            in.Tanggal,
			"pihak_pertama_id":   in.PihakPertamaID,
			"jabatan_pertama_id": in.JabatanPertamaID,
			"pihak_kedua_id":     in.PihakKeduaID,
			"jabatan_kedua_id":   in.JabatanKeduaID,
			"subtotal":           subtotal,
			"total_ppn":          totalPPN,
			"grand_total":        subtotal.Add(totalPPN),
			"keterangan":         in.Keterangan,
		}).Error
	})
	if err != nil {
		utils.FailError(c, err)
		return
	}

	var doc models.BASTKeluar
	config.DB.Preload("SPPB.SPB").
		Preload("PihakPertama").Preload("JabatanPertama").
		Preload("PihakKedua").Preload("JabatanKedua").
		Preload("Items.Barang").First(&doc, id)
	utils.Revalidate("barang", "bast-keluar")
	utils.OK(c, "BAST keluar berhasil diperbarui", doc)
}

// DeleteBASTKeluar membatalkan penyerahan: stok kembali (satu ADJUSTMENT per
// baris) dan SPPB dibuka lagi menunggu penyerahan ulang.
func DeleteBASTKeluar(c *gin.Context) {
	id, err := paramID(c)
	if err != nil {
		utils.Fail(c, http.StatusBadRequest, err.Error())
		return
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		var doc models.BASTKeluar
		if err := tx.Preload("Items").First(&doc, id).Error; err != nil {
			return utils.ErrNotFound
		}

		lines := make([]service.LineQty, 0, len(doc.Items))
		for _, it := range doc.Items {
			lines = append(lines, service.LineQty{BarangID: it.BarangID, Qty: it.Qty})
		}
		if err := Ledger.ReverseAll(tx, service.ArahKeluar, lines, service.MutasiRef{
			Nomor:         doc.Nomor,
			SourceTag:     models.TagBASTDelete,
			Keterangan:    "Pembatalan penyerahan barang",
			CorrelationID: uuid.NewString(),
			Tanggal:       time.Now().UTC(),
		}); err != nil {
			return err
		}

		var sppb models.SPPB
		if err := tx.First(&sppb, doc.SPPBID).Error; err != nil {
			return err
		}
		if err := service.PastikanSPPBTransisi(&sppb, models.SPPBAwaitingHandover, "dibuka lagi"); err != nil {
			return err
		}
		if err := tx.Model(&sppb).Update("status", models.SPPBAwaitingHandover).Error; err != nil {
			return err
		}

		if err := tx.Unscoped().Where("bast_keluar_id = ?", doc.ID).Delete(&models.BASTKeluarItem{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&doc).Error
	})
	if err != nil {
		utils.FailError(c, err)
		return
	}
	utils.Revalidate("barang", "sppb", "bast-keluar")
	utils.OK(c, "BAST keluar berhasil dihapus", nil)
}

// PrintBASTKeluar menandai dokumen sudah dicetak (idempoten) dan mengembalikan
// data lengkap untuk rendering.
func PrintBASTKeluar(c *gin.Context) {
	id, err := paramID(c)
	if err != nil {
		utils.Fail(c, http.StatusBadRequest, err.Error())
		return
	}

	var doc models.BASTKeluar
	if err := config.DB.Preload("SPPB.SPB.Pemohon").
		Preload("PihakPertama").Preload("JabatanPertama").
		Preload("PihakKedua").Preload("JabatanKedua").
		Preload("Items.Barang.Satuan").First(&doc, id).Error; err != nil {
		utils.FailError(c, utils.ErrNotFound)
		return
	}

	if !doc.Printed {
		if err := config.DB.Model(&doc).Update("printed", true).Error; err != nil {
			utils.FailError(c, err)
			return
		}
		doc.Printed = true
	}
	utils.OK(c, "BAST keluar siap dicetak", doc)
}

func GetAllBASTKeluar(c *gin.Context) {
	var rows []models.BASTKeluar
	if err := config.DB.Preload("SPPB.SPB").
		Preload("PihakPertama").Preload("PihakKedua").
		Preload("Items.Barang").
		Order("id DESC").Find(&rows).Error; err != nil {
		utils.FailError(c, err)
		return
	}
	utils.OK(c, "Berhasil mengambil data BAST keluar", rows)
}

func GetBASTKeluarByID(c *gin.Context) {
	id, err := paramID(c)
	if err != nil {
		utils.Fail(c, http.StatusBadRequest, err.Error())
		return
	}

	var doc models.BASTKeluar
	if err := config.DB.Preload("SPPB.SPB.Pemohon").
		Preload("PihakPertama").Preload("JabatanPertama").
		Preload("PihakKedua").Preload("JabatanKedua").
		Preload("Items.Barang.Satuan").First(&doc, id).Error; err != nil {
		utils.FailError(c, utils.ErrNotFound)
		return
	}
	utils.OK(c, "Berhasil mengambil data BAST keluar", doc)
}
