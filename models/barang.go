package models

import "gorm.io/gorm"

// Barang adalah satuan stok. Stok TIDAK boleh diubah langsung oleh controller;
// satu-satunya jalur adalah service.StokLedger supaya stok selalu sama dengan
// penjumlahan seluruh mutasi yang sudah commit.
type Barang struct {
	gorm.Model
	Nama     string `json:"nama"`
	Kode     string `json:"kode" gorm:"uniqueIndex;size:60"`
	SatuanID uint   `json:"satuan_id"`
	Satuan   Satuan `json:"satuan"`
	Stok     int64  `json:"stok"`

	// Versi dipakai strategi optimistic lock; naik satu setiap mutasi stok.
	Versi int64 `json:"-" gorm:"not null;default:0"`
}
