package models

import "time"

type MutasiKind string

const (
	MutasiIN         MutasiKind = "IN"
	MutasiOUT        MutasiKind = "OUT"
	MutasiAdjustment MutasiKind = "ADJUSTMENT"
)

// Tag sumber transaksi: jenis dokumen + aksi yang menghasilkan mutasi.
const (
	TagBarangMasukCreate = "BARANG_MASUK_CREATE"
	TagBarangMasukEdit   = "BARANG_MASUK_EDIT"
	TagBarangMasukDelete = "BARANG_MASUK_DELETE"
	TagBASTCreate        = "BAST_KELUAR_CREATE"
	TagBASTEdit          = "BAST_KELUAR_EDIT"
	TagBASTDelete        = "BAST_KELUAR_DELETE"
)

// StokMutasi adalah jurnal append-only perubahan stok. Baris tidak pernah
// di-update atau dihapus; koreksi selalu lewat baris kompensasi baru.
// Untuk IN/OUT tepat satu dari QtyMasuk/QtyKeluar yang terisi; ADJUSTMENT
// boleh memakai salah satu sesuai arah. Efek netto selalu QtyMasuk-QtyKeluar.
type StokMutasi struct {
	ID       uint       `gorm:"primaryKey" json:"id"`
	BarangID uint       `gorm:"index;not null" json:"barang_id"`
	Barang   *Barang    `json:"barang,omitempty"`
	Tanggal  time.Time  `gorm:"not null" json:"tanggal"`
	Kind     MutasiKind `gorm:"size:12;index;not null" json:"kind"`

	QtyMasuk  int64 `gorm:"not null;default:0" json:"qty_masuk"`
	QtyKeluar int64 `gorm:"not null;default:0" json:"qty_keluar"`

	// stok barang tepat setelah mutasi ini commit
	Saldo int64 `gorm:"not null" json:"saldo"`

	// nomor dokumen sumber, mis. "012/BAST-K/2026"
	RefNomor  string `gorm:"size:60;index" json:"ref_nomor"`
	SourceTag string `gorm:"size:40;index" json:"source_tag"`

	// semua mutasi dari satu aksi dokumen berbagi satu correlation id
	CorrelationID string `gorm:"size:36;index" json:"correlation_id"`

	Keterangan string    `gorm:"size:255" json:"keterangan"`
	CreatedAt  time.Time `json:"created_at"`
}

// Netto mengembalikan efek bertanda mutasi terhadap stok.
func (m StokMutasi) Netto() int64 {
	return m.QtyMasuk - m.QtyKeluar
}
