package config

import "github.com/fhru/sibarkumen-sub000/models"

func SeedPermissions() {
	codes := []models.Permission{
		{Code: "BARANG_MASUK", Name: "Penerimaan Barang (BAST Masuk)"},
		{Code: "SPB", Name: "Surat Permintaan Barang"},
		{Code: "SPPB", Name: "Surat Perintah Penyerahan Barang"},
		{Code: "BAST_KELUAR", Name: "BAST Keluar"},
		{Code: "LIHAT_MUTASI", Name: "Lihat Mutasi Stok"},
	}
	for _, p := range codes {
		var cnt int64
		DB.Model(&models.Permission{}).Where("code = ?", p.Code).Count(&cnt)
		if cnt == 0 {
			DB.Create(&p)
		}
	}
}
