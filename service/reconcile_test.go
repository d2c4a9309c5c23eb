package service

import (
	"testing"

	"github.com/fhru/sibarkumen-sub000/models"
	"github.com/fhru/sibarkumen-sub000/utils"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestHitungDelta(t *testing.T) {
	lama := map[uint]int64{1: 10, 2: 5, 3: 7}
	baru := map[uint]int64{1: 6, 2: 5, 4: 3}

	delta := HitungDelta(lama, baru)

	require.Equal(t, map[uint]int64{
		1: -4, // dikurangi
		3: -7, // baris dihapus
		4: 3,  // baris baru
	}, delta)
	// qty tidak berubah -> tidak boleh ada entri
	require.NotContains(t, delta, uint(2))
}

func TestSumQtyPerBarangMenggabungBarisGanda(t *testing.T) {
	sum := SumQtyPerBarang([]LineQty{
		{BarangID: 1, Qty: 4},
		{BarangID: 2, Qty: 1},
		{BarangID: 1, Qty: 3},
	})
	require.Equal(t, map[uint]int64{1: 7, 2: 1}, sum)
}

// Edit dokumen masuk 10 -> 6 harus menghasilkan tepat satu mutasi netto -4,
// bukan pembalikan 10 plus penulisan ulang 6.
func TestApplyDeltaEditMasukSatuEntriNetto(t *testing.T) {
	db := newTestDB(t)
	l := NewStokLedger(OptimisticLock{})
	b := buatBarang(t, db, "BRG-10", 10)

	delta := HitungDelta(map[uint]int64{b.ID: 10}, map[uint]int64{b.ID: 6})
	err := db.Transaction(func(tx *gorm.DB) error {
		return l.ApplyDelta(tx, ArahMasuk, delta, MutasiRef{
			Nomor:     "001/BAST-M/2026",
			SourceTag: models.TagBarangMasukEdit,
		})
	})
	require.NoError(t, err)

	var rows []models.StokMutasi
	require.NoError(t, db.Where("barang_id = ?", b.ID).Find(&rows).Error)
	require.Len(t, rows, 1)
	require.Equal(t, models.MutasiAdjustment, rows[0].Kind)
	require.EqualValues(t, 4, rows[0].QtyKeluar)
	require.EqualValues(t, 6, rows[0].Saldo)

	var b2 models.Barang
	require.NoError(t, db.First(&b2, b.ID).Error)
	require.EqualValues(t, 6, b2.Stok)
}

func TestApplyDeltaArahKeluar(t *testing.T) {
	db := newTestDB(t)
	l := NewStokLedger(OptimisticLock{})
	b := buatBarang(t, db, "BRG-11", 20)

	// edit BAST keluar 5 -> 8: tambahan OUT 3
	err := db.Transaction(func(tx *gorm.DB) error {
		return l.ApplyDelta(tx, ArahKeluar,
			HitungDelta(map[uint]int64{b.ID: 5}, map[uint]int64{b.ID: 8}),
			MutasiRef{Nomor: "001/BAST-K/2026", SourceTag: models.TagBASTEdit})
	})
	require.NoError(t, err)

	// edit lagi 8 -> 2: stok kembali 6 lewat ADJUSTMENT masuk
	err = db.Transaction(func(tx *gorm.DB) error {
		return l.ApplyDelta(tx, ArahKeluar,
			HitungDelta(map[uint]int64{b.ID: 8}, map[uint]int64{b.ID: 2}),
			MutasiRef{Nomor: "001/BAST-K/2026", SourceTag: models.TagBASTEdit})
	})
	require.NoError(t, err)

	var rows []models.StokMutasi
	require.NoError(t, db.Where("barang_id = ?", b.ID).Order("id ASC").Find(&rows).Error)
	require.Len(t, rows, 2)
	require.Equal(t, models.MutasiOUT, rows[0].Kind)
	require.EqualValues(t, 3, rows[0].QtyKeluar)
	require.Equal(t, models.MutasiAdjustment, rows[1].Kind)
	require.EqualValues(t, 6, rows[1].QtyMasuk)

	var b2 models.Barang
	require.NoError(t, db.First(&b2, b.ID).Error)
	require.EqualValues(t, 23, b2.Stok)
}

func TestReverseAllHapusDokumenKeluar(t *testing.T) {
	db := newTestDB(t)
	l := NewStokLedger(OptimisticLock{})
	b := buatBarang(t, db, "BRG-12", 8)

	err := db.Transaction(func(tx *gorm.DB) error {
		return l.ReverseAll(tx, ArahKeluar,
			[]LineQty{{BarangID: b.ID, Qty: 12}},
			MutasiRef{Nomor: "002/BAST-K/2026", SourceTag: models.TagBASTDelete})
	})
	require.NoError(t, err)

	var b2 models.Barang
	require.NoError(t, db.First(&b2, b.ID).Error)
	require.EqualValues(t, 20, b2.Stok)

	var m models.StokMutasi
	require.NoError(t, db.Where("barang_id = ?", b.ID).First(&m).Error)
	require.Equal(t, models.MutasiAdjustment, m.Kind)
	require.EqualValues(t, 12, m.QtyMasuk)
}

// Hapus dokumen masuk menurunkan stok; kalau barangnya sudah terlanjur keluar,
// pembalikan harus gagal dan transaksi batal.
func TestReverseAllHapusDokumenMasukStokKurang(t *testing.T) {
	db := newTestDB(t)
	l := NewStokLedger(OptimisticLock{})
	b := buatBarang(t, db, "BRG-13", 4)

	err := db.Transaction(func(tx *gorm.DB) error {
		return l.ReverseAll(tx, ArahMasuk,
			[]LineQty{{BarangID: b.ID, Qty: 10}},
			MutasiRef{Nomor: "003/BAST-M/2026", SourceTag: models.TagBarangMasukDelete})
	})

	var insufficient *utils.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)

	var b2 models.Barang
	require.NoError(t, db.First(&b2, b.ID).Error)
	require.EqualValues(t, 4, b2.Stok)
}
