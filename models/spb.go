package models

import (
	"time"

	"gorm.io/gorm"
)

type SPBStatus string

const (
	SPBAwaitingRelease SPBStatus = "AWAITING_RELEASE"
	SPBCompleted       SPBStatus = "COMPLETED"
	SPBCancelled       SPBStatus = "CANCELLED"
)

// SPB = Surat Permintaan Barang. Tidak menyentuh stok; hanya awal rantai
// SPB -> SPPB -> BAST keluar.
type SPB struct {
	gorm.Model
	Nomor   string    `json:"nomor" gorm:"uniqueIndex;size:60"`
	Tanggal time.Time `json:"tanggal" gorm:"not null"`

	PemohonID uint    `json:"pemohon_id"`
	Pemohon   Pegawai `json:"pemohon" gorm:"foreignKey:PemohonID"`

	Status     SPBStatus `json:"status" gorm:"size:20;index;not null"`
	Keterangan string    `json:"keterangan" gorm:"size:255"`

	Items []SPBItem `json:"items" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`

	CreatedByID uint `json:"created_by_id" gorm:"index"`
}

// Dipatok eksplisit karena query nomor urut menembak tabel via nama mentah.
func (SPB) TableName() string { return "spbs" }

type SPBItem struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	SPBID      uint      `gorm:"index;not null" json:"spb_id"`
	BarangID   uint      `gorm:"not null" json:"barang_id"`
	Barang     *Barang   `json:"barang,omitempty"`
	Qty        int64     `gorm:"not null" json:"qty"`
	Keterangan *string   `gorm:"size:255" json:"keterangan"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
