package models

import (
	"time"

	"gorm.io/gorm"
)

type SPPBStatus string

const (
	SPPBAwaitingHandover SPPBStatus = "AWAITING_HANDOVER"
	SPPBCompleted        SPPBStatus = "COMPLETED"
)

// SPPB = Surat Perintah Penyerahan Barang; dibuat dari satu SPB (1:1,
// relasi tidak bisa dipindah setelah dibuat). Qty disetujui boleh berbeda
// dari qty diminta tapi tidak boleh melebihi stok saat persetujuan.
type SPPB struct {
	gorm.Model
	Nomor   string    `json:"nomor" gorm:"uniqueIndex;size:60"`
	Tanggal time.Time `json:"tanggal" gorm:"not null"`

	SPBID uint `json:"spb_id" gorm:"uniqueIndex;not null"`
	SPB   SPB  `json:"spb"`

	PenyetujuID uint    `json:"penyetuju_id"`
	Penyetuju   Pegawai `json:"penyetuju" gorm:"foreignKey:PenyetujuID"`
	// default: pemohon SPB
	PenerimaID uint    `json:"penerima_id"`
	Penerima   Pegawai `json:"penerima" gorm:"foreignKey:PenerimaID"`

	Status     SPPBStatus `json:"status" gorm:"size:20;index;not null"`
	Keterangan string     `json:"keterangan" gorm:"size:255"`

	Items []SPPBItem `json:"items" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`

	CreatedByID uint `json:"created_by_id" gorm:"index"`
}

func (SPPB) TableName() string { return "sppbs" }

type SPPBItem struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	SPPBID     uint      `gorm:"index;not null" json:"sppb_id"`
	BarangID   uint      `gorm:"not null" json:"barang_id"`
	Barang     *Barang   `json:"barang,omitempty"`
	Qty        int64     `gorm:"not null" json:"qty"`
	Keterangan *string   `gorm:"size:255" json:"keterangan"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
