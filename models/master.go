package models

import "gorm.io/gorm"

// Data master (satuan, pegawai, penyedia, sumber dana, jabatan) dikelola
// aplikasi lain; di sini hanya dipakai sebagai lookup referensi dokumen.

type Satuan struct {
	gorm.Model
	Nama string `json:"nama" gorm:"size:60"`
}

type Jabatan struct {
	gorm.Model
	Nama string `json:"nama" gorm:"size:120"`
}

type Pegawai struct {
	gorm.Model
	NIP       string  `json:"nip" gorm:"size:30;uniqueIndex"`
	Nama      string  `json:"nama" gorm:"size:180"`
	JabatanID uint    `json:"jabatan_id"`
	Jabatan   Jabatan `json:"jabatan"`
}

// Penyedia = pihak ketiga asal barang (counterparty pada BAST masuk).
type Penyedia struct {
	gorm.Model
	Nama   string `json:"nama" gorm:"size:180"`
	Alamat string `json:"alamat" gorm:"size:255"`
}

// SumberDana = asal pengadaan (DIPA, hibah, dst).
type SumberDana struct {
	gorm.Model
	Nama string `json:"nama" gorm:"size:120"`
}
