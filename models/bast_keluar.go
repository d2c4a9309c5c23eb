package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// BASTKeluar = berita acara serah terima keluar; bukti fisik barang SPPB
// diserahkan. Membuatnya mengurangi stok (mutasi OUT per item) dan menutup
// SPPB; menghapusnya mengembalikan stok dan membuka SPPB lagi.
//
// Subtotal/PPN/grand total dihitung sekali saat tulis dan disimpan sebagai
// nilai tampilan — bukan ledger uang.
type BASTKeluar struct {
	gorm.Model
	Nomor   string    `json:"nomor" gorm:"uniqueIndex;size:60"`
	Tanggal time.Time `json:"tanggal" gorm:"not null"`

	SPPBID uint `json:"sppb_id" gorm:"uniqueIndex;not null"`
	SPPB   SPPB `json:"sppb"`

	PihakPertamaID   uint    `json:"pihak_pertama_id"`
	PihakPertama     Pegawai `json:"pihak_pertama" gorm:"foreignKey:PihakPertamaID"`
	JabatanPertamaID uint    `json:"jabatan_pertama_id"`
	JabatanPertama   Jabatan `json:"jabatan_pertama" gorm:"foreignKey:JabatanPertamaID"`
	PihakKeduaID     uint    `json:"pihak_kedua_id"`
	PihakKedua       Pegawai `json:"pihak_kedua" gorm:"foreignKey:PihakKeduaID"`
	JabatanKeduaID   uint    `json:"jabatan_kedua_id"`
	JabatanKedua     Jabatan `json:"jabatan_kedua" gorm:"foreignKey:JabatanKeduaID"`

	Subtotal   decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"subtotal"`
	TotalPPN   decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"total_ppn"`
	GrandTotal decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"grand_total"`

	Printed    bool   `json:"printed" gorm:"not null;default:false"`
	Keterangan string `json:"keterangan" gorm:"size:255"`

	Items []BASTKeluarItem `json:"items" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`

	CreatedByID uint `json:"created_by_id" gorm:"index"`
}

func (BASTKeluar) TableName() string { return "bast_keluars" }

type BASTKeluarItem struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	BASTKeluarID uint            `gorm:"index;not null" json:"bast_keluar_id"`
	BarangID     uint            `gorm:"not null" json:"barang_id"`
	Barang       *Barang         `json:"barang,omitempty"`
	Qty          int64           `gorm:"not null" json:"qty"`
	Harga        decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"harga"`
	PPNPersen    decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"ppn_persen"`
	PPNNilai     decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"ppn_nilai"`
	Total        decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"total"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// HitungNilai mengisi PPNNilai dan Total dari qty*harga dan persen PPN.
func (it *BASTKeluarItem) HitungNilai() {
	bruto := decimal.NewFromInt(it.Qty).Mul(it.Harga)
	it.PPNNilai = bruto.Mul(it.PPNPersen).Div(decimal.NewFromInt(100)).Round(2)
	it.Total = bruto.Add(it.PPNNilai)
}
