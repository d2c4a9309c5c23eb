package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// BarangMasuk (BAST masuk) = dokumen penerimaan barang. Tidak punya status:
// keberadaannya berarti barang sudah diterima; hapus dokumen = membalik
// efek stoknya.
type BarangMasuk struct {
	gorm.Model
	Nomor          string    `json:"nomor" gorm:"uniqueIndex;size:60"`
	NomorReferensi string    `json:"nomor_referensi" gorm:"size:60"`
	Tanggal        time.Time `json:"tanggal" gorm:"not null"`

	SumberDanaID uint       `json:"sumber_dana_id"`
	SumberDana   SumberDana `json:"sumber_dana"`
	PenyediaID   uint       `json:"penyedia_id"`
	Penyedia     Penyedia   `json:"penyedia"`
	// pegawai yang menyetujui penerimaan
	PenyetujuID uint    `json:"penyetuju_id"`
	Penyetuju   Pegawai `json:"penyetuju" gorm:"foreignKey:PenyetujuID"`

	Keterangan string `json:"keterangan" gorm:"size:255"`

	Items []BarangMasukItem `json:"items" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`

	CreatedByID uint `json:"created_by_id" gorm:"index"`
}

func (BarangMasuk) TableName() string { return "barang_masuks" }

type BarangMasukItem struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	BarangMasukID uint            `gorm:"index;not null" json:"barang_masuk_id"`
	BarangID      uint            `gorm:"not null" json:"barang_id"`
	Barang        *Barang         `json:"barang,omitempty"`
	Qty           int64           `gorm:"not null" json:"qty"`
	Harga         decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"harga"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}
