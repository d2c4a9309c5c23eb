package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/fhru/sibarkumen-sub000/models"
	"github.com/fhru/sibarkumen-sub000/utils"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// sqlite tidak punya SELECT ... FOR UPDATE, jadi semua test memakai strategi
// optimistic lock.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Permission{},
		&models.UserPermission{},
		&models.Satuan{},
		&models.Jabatan{},
		&models.Pegawai{},
		&models.Penyedia{},
		&models.SumberDana{},
		&models.Barang{},
		&models.StokMutasi{},
		&models.BarangMasuk{},
		&models.BarangMasukItem{},
		&models.SPB{},
		&models.SPBItem{},
		&models.SPPB{},
		&models.SPPBItem{},
		&models.BASTKeluar{},
		&models.BASTKeluarItem{},
	))
	return db
}

func buatBarang(t *testing.T, db *gorm.DB, kode string, stok int64) *models.Barang {
	t.Helper()
	b := models.Barang{Nama: "Barang " + kode, Kode: kode, Stok: stok}
	require.NoError(t, db.Create(&b).Error)
	return &b
}

// stok harus selalu sama dengan penjumlahan netto seluruh mutasi ditambah
// stok awal seed.
func cekInvarianStok(t *testing.T, db *gorm.DB, barangID uint, stokAwal int64) {
	t.Helper()
	var b models.Barang
	require.NoError(t, db.First(&b, barangID).Error)

	var rows []models.StokMutasi
	require.NoError(t, db.Where("barang_id = ?", barangID).Find(&rows).Error)
	total := stokAwal
	for _, m := range rows {
		total += m.Netto()
	}
	require.Equal(t, total, b.Stok)
}

func TestApplyMasukMenambahStokDanMenulisJurnal(t *testing.T) {
	db := newTestDB(t)
	l := NewStokLedger(OptimisticLock{})
	b := buatBarang(t, db, "BRG-1", 5)

	var saldo int64
	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		saldo, err = l.Apply(tx, MutasiInput{
			BarangID:  b.ID,
			Kind:      models.MutasiIN,
			QtyMasuk:  10,
			Tanggal:   time.Now(),
			RefNomor:  "001/BAST-M/2026",
			SourceTag: models.TagBarangMasukCreate,
		})
		return err
	})
	require.NoError(t, err)
	require.EqualValues(t, 15, saldo)

	var m models.StokMutasi
	require.NoError(t, db.Where("barang_id = ?", b.ID).First(&m).Error)
	require.Equal(t, models.MutasiIN, m.Kind)
	require.EqualValues(t, 10, m.QtyMasuk)
	require.EqualValues(t, 15, m.Saldo)
	require.Equal(t, "001/BAST-M/2026", m.RefNomor)

	cekInvarianStok(t, db, b.ID, 5)
}

func TestApplyKeluarStokTidakCukup(t *testing.T) {
	db := newTestDB(t)
	l := NewStokLedger(OptimisticLock{})
	b := buatBarang(t, db, "BRG-2", 3)

	err := db.Transaction(func(tx *gorm.DB) error {
		_, err := l.Apply(tx, MutasiInput{
			BarangID:  b.ID,
			Kind:      models.MutasiOUT,
			QtyKeluar: 4,
		})
		return err
	})

	var insufficient *utils.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	require.EqualValues(t, 3, insufficient.Stok)
	require.EqualValues(t, 4, insufficient.Butuh)

	// rollback penuh: stok utuh, jurnal kosong
	var b2 models.Barang
	require.NoError(t, db.First(&b2, b.ID).Error)
	require.EqualValues(t, 3, b2.Stok)

	var cnt int64
	db.Model(&models.StokMutasi{}).Where("barang_id = ?", b.ID).Count(&cnt)
	require.Zero(t, cnt)
}

func TestApplyValidasiKind(t *testing.T) {
	db := newTestDB(t)
	l := NewStokLedger(OptimisticLock{})
	b := buatBarang(t, db, "BRG-3", 0)

	cases := []MutasiInput{
		{BarangID: b.ID, Kind: models.MutasiIN, QtyMasuk: 0},
		{BarangID: b.ID, Kind: models.MutasiIN, QtyMasuk: 5, QtyKeluar: 1},
		{BarangID: b.ID, Kind: models.MutasiOUT, QtyKeluar: 0},
		{BarangID: b.ID, Kind: models.MutasiAdjustment},
		{BarangID: b.ID, Kind: models.MutasiAdjustment, QtyMasuk: 1, QtyKeluar: 1},
		{BarangID: b.ID, Kind: "APALAH", QtyMasuk: 1},
	}
	for _, in := range cases {
		err := db.Transaction(func(tx *gorm.DB) error {
			_, err := l.Apply(tx, in)
			return err
		})
		require.Error(t, err, "input %+v", in)
	}
}

// Baris barang berubah di antara baca dan tulis: strategi optimistic harus
// menolak dengan ErrStaleItem, bukan menimpa diam-diam.
func TestOptimisticLockMenolakBarisBasi(t *testing.T) {
	db := newTestDB(t)
	b := buatBarang(t, db, "BRG-5", 10)

	basi, err := OptimisticLock{}.Fetch(db, b.ID)
	require.NoError(t, err)

	// mutasi lain commit duluan
	require.NoError(t, OptimisticLock{}.UpdateStok(db, basi, 12))

	err = OptimisticLock{}.UpdateStok(db, basi, 7)
	require.ErrorIs(t, err, utils.ErrStaleItem)

	var b2 models.Barang
	require.NoError(t, db.First(&b2, b.ID).Error)
	require.EqualValues(t, 12, b2.Stok)
}

func TestApplySaldoBerurutan(t *testing.T) {
	db := newTestDB(t)
	l := NewStokLedger(OptimisticLock{})
	b := buatBarang(t, db, "BRG-4", 0)

	langkah := []struct {
		in    MutasiInput
		saldo int64
	}{
		{MutasiInput{BarangID: b.ID, Kind: models.MutasiIN, QtyMasuk: 20}, 20},
		{MutasiInput{BarangID: b.ID, Kind: models.MutasiOUT, QtyKeluar: 12}, 8},
		{MutasiInput{BarangID: b.ID, Kind: models.MutasiAdjustment, QtyMasuk: 12}, 20},
	}
	for _, lk := range langkah {
		var saldo int64
		err := db.Transaction(func(tx *gorm.DB) error {
			var err error
			saldo, err = l.Apply(tx, lk.in)
			return err
		})
		require.NoError(t, err)
		require.Equal(t, lk.saldo, saldo)
	}
	cekInvarianStok(t, db, b.ID, 0)
}
